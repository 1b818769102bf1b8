package models

import "strings"

// Closed single-letter code sets. Only codes listed here are ever persisted;
// the importer normalizes anything unrecognized to NULL.

// Axle position codes
const (
	AxleFront = "F"
	AxleRear  = "R"
	AxleBoth  = "B"
)

var AxleLabels = map[string]string{
	AxleFront: "Front",
	AxleRear:  "Rear",
	AxleBoth:  "Front and rear",
}

// Assembly side codes
const (
	SideNone  = "N"
	SideLeft  = "L"
	SideRight = "R"
	SideBoth  = "B"
)

var AssemblySideLabels = map[string]string{
	SideNone:  "None",
	SideLeft:  "Left",
	SideRight: "Right",
	SideBoth:  "Left and right",
}

// Disc type codes
const (
	DiscSolid      = "S"
	DiscVentilated = "V"
)

var DiscTypeLabels = map[string]string{
	DiscSolid:      "Solid",
	DiscVentilated: "Ventilated",
}

// Material codes
const (
	MaterialAluminium = "A"
	MaterialCastIron  = "C"
	MaterialPlastic   = "P"
	MaterialSteel     = "S"
)

var MaterialLabels = map[string]string{
	MaterialAluminium: "Aluminium",
	MaterialCastIron:  "Cast Iron",
	MaterialPlastic:   "Plastic",
	MaterialSteel:     "Steel",
}

// Caliper position codes
const (
	PositionLeft  = "L"
	PositionRight = "R"
	PositionBoth  = "B"
)

var CaliperPositionLabels = map[string]string{
	PositionLeft:  "Left",
	PositionRight: "Right",
	PositionBoth:  "Left and Right",
}

// Wear indicator codes
const (
	WearWithout  = "W"
	WearAcoustic = "A"
	WearElectric = "E"
	WearPrepared = "P"
)

var WearIndicatorLabels = map[string]string{
	WearWithout:  "Without",
	WearAcoustic: "Acoustic",
	WearElectric: "Electric",
	WearPrepared: "Prepared for wear indicator",
}

// Pad accessory type codes
const (
	PadAccWearIndicator = "W"
	PadAccAssemblyKit   = "A"
)

var PadAccessoryTypeLabels = map[string]string{
	PadAccWearIndicator: "Wear Indicator",
	PadAccAssemblyKit:   "Assembly Kit",
}

// Vehicle category codes
const (
	CategoryCar  = "c"
	CategoryCV   = "t"
	CategoryBike = "b"
)

var VehicleCategoryLabels = map[string]string{
	CategoryCar:  "Car",
	CategoryCV:   "Commercial Vehicle",
	CategoryBike: "Motorbike",
}

var vehicleCategoryNames = map[string]string{
	"CAR":  CategoryCar,
	"CV":   CategoryCV,
	"BIKE": CategoryBike,
}

// ParseVehicleCategory accepts a canonical code ('c'/'t'/'b'), a label
// ("Car", "Commercial Vehicle", "Motorbike", case-insensitive) or a name
// ("CAR", "CV", "BIKE") and returns the canonical code, or "" when the
// input matches none of them.
func ParseVehicleCategory(value string) string {
	if value == "" {
		return ""
	}
	if _, ok := VehicleCategoryLabels[value]; ok {
		return value
	}
	for code, label := range VehicleCategoryLabels {
		if strings.EqualFold(label, value) {
			return code
		}
	}
	if code, ok := vehicleCategoryNames[strings.ToUpper(value)]; ok {
		return code
	}
	return ""
}
