package models

import "testing"

func TestParseVehicleCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"c", CategoryCar},
		{"t", CategoryCV},
		{"b", CategoryBike},
		{"Car", CategoryCar},
		{"car", CategoryCar},
		{"COMMERCIAL VEHICLE", CategoryCV},
		{"Motorbike", CategoryBike},
		{"CAR", CategoryCar},
		{"CV", CategoryCV},
		{"BIKE", CategoryBike},
		{"", ""},
		{"x", ""},
		{"truck", ""},
	}
	for _, tt := range tests {
		if got := ParseVehicleCategory(tt.raw); got != tt.want {
			t.Errorf("ParseVehicleCategory(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
