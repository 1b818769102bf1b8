package config

import "testing"

func TestDatabaseConfigEmbedded(t *testing.T) {
	tests := []struct {
		host     string
		password string
		want     bool
	}{
		{"localhost", "", true},
		{"localhost", "secret", false},
		{"db.internal", "", false},
		{"db.internal", "secret", false},
	}
	for _, tt := range tests {
		cfg := DatabaseConfig{Host: tt.host, Password: tt.password}
		if got := cfg.Embedded(); got != tt.want {
			t.Errorf("Embedded() with host %q password set %v = %v, want %v",
				tt.host, tt.password != "", got, tt.want)
		}
	}
}
