package models

import (
	"github.com/shopspring/decimal"
)

// Product is implemented by all fourteen concrete product variants.
type Product interface {
	Base() *ProductBase
	Apply(Fields)
	Clone() Product
	TableName() string
}

// Value is one normalized field value. Exactly one pointer is set, or none
// when the source value was absent or unparseable.
type Value struct {
	Str  *string
	Dec  *decimal.Decimal
	Int  *int
	Bool *bool
}

// Fields is a normalized row: canonical field name to typed value. A key is
// present only when the source file carried a column for it, so records
// updated in place keep stored values for columns the file omits.
type Fields map[string]Value

func (f Fields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// HasValue reports whether the field is present and non-absent.
func (f Fields) HasValue(name string) bool {
	v, ok := f[name]
	return ok && (v.Str != nil || v.Dec != nil || v.Int != nil || v.Bool != nil)
}

func (f Fields) Str(name string) *string          { return f[name].Str }
func (f Fields) Dec(name string) *decimal.Decimal { return f[name].Dec }
func (f Fields) Int(name string) *int             { return f[name].Int }

func (f Fields) Bool(name string) bool {
	if v := f[name].Bool; v != nil {
		return *v
	}
	return false
}

func (f Fields) Set(name string, v Value) { f[name] = v }

// FieldKind selects the normalizer applied to a canonical field.
type FieldKind int

const (
	KindText FieldKind = iota // trimmed free text
	KindMaxLen                // whitespace-collapsed text clamped to MaxLen
	KindTokens                // token extraction joined with ", ", clamped post-join
	KindDecimal
	KindInt
	KindEAN
	KindAxle
	KindSide
	KindDiscType
	KindMaterial
	KindCaliperPosition
	KindWearIndicator
	KindPadAccessoryType
	KindBoolPreAssembled // "not" flips to false, otherwise true; absent stays absent
	KindBoolManualValve  // "manual" means true, otherwise false; absent stays absent
	KindBoolParkingBrake // "parking brake" means true, otherwise false
	KindBoolWith         // "with" means true, otherwise false
)

// FieldSpec is one canonical field's normalizer binding.
type FieldSpec struct {
	Kind   FieldKind
	MaxLen int
}

// Schema maps canonical field names to their normalizers for one variant.
type Schema map[string]FieldSpec

// baseSchema covers the ProductBase fields shared by every variant. Code is
// not listed: it is the row key and only ever trimmed, never normalized.
func baseSchema() Schema {
	return Schema{
		"ean":                 {Kind: KindEAN},
		"price":               {Kind: KindDecimal},
		"quantity":            {Kind: KindInt},
		"type_label":          {Kind: KindMaxLen, MaxLen: 100},
		"image_url":           {Kind: KindText},
		"technical_image_url": {Kind: KindText},
	}
}

func schemaWith(extra Schema) Schema {
	s := baseSchema()
	for k, v := range extra {
		s[k] = v
	}
	return s
}

var baseAliases = map[string][]string{
	"code":                {"part_number", "pn"},
	"ean":                 {"ean code", "ean_code", "ean13", "ean 13"},
	"price":               {"mpc", "final price", "unit_price", "price_eur"},
	"quantity":            {"qty", "stock"},
	"type_label":          {"type", "title", "name"},
	"image_url":           {"image"},
	"technical_image_url": {"technical image", "tech_image", "technical_image"},
}

func aliasesWith(extra map[string][]string) map[string][]string {
	a := make(map[string][]string, len(baseAliases)+len(extra))
	for k, v := range baseAliases {
		a[k] = v
	}
	for k, v := range extra {
		// extra alias lists extend the base ones in declared order
		a[k] = append(append([]string{}, a[k]...), v...)
	}
	return a
}

// defaultSideFromAxle fills assembly_side from the already-normalized axle
// code when the file supplied no side of its own.
func defaultSideFromAxle(fs Fields) {
	if !fs.HasValue("assembly_side") && fs.HasValue("axle") {
		fs.Set("assembly_side", Value{Str: fs.Str("axle")})
	}
}

// ProductType describes one concrete product variant: its tag, how to build
// records and result slices, and how its source columns map and normalize.
// The slice order below is the resolution order for loose code references;
// it must stay stable.
type ProductType struct {
	Tag        string
	Label      string
	Table      string
	New        func() Product
	NewSlice   func() interface{}
	Aliases    map[string][]string
	Schema     Schema
	PreProcess func(Fields)
}

var ProductTypes = []*ProductType{
	{
		Tag:      "disc",
		Label:    "Brake Discs",
		Table:    "discs",
		New:      func() Product { return &Disc{} },
		NewSlice: func() interface{} { return &[]Disc{} },
		Aliases: aliasesWith(map[string][]string{
			"code":             {"disc_code"},
			"diameter_mm":      {"diameter Ø", "diameter", "ø"},
			"thickness_th_mm":  {"thickness (th)", "thickness", "th"},
			"min_thickness_mm": {"min. thickness", "min_thickness", "min th"},
			"height_mm":        {"height (a)", "height"},
			"num_holes":        {"number of holes (c)", "holes"},
			"disc_type":        {"brake disc type", "type_code"},
			"center_bore_mm":   {"centering (b)", "center_bore", "cb"},
			"tightening_torque": {"tightening torque", "torque"},
			"axle":             {},
			"assembly_side":    {"side"},
			"units_per_box":    {"units per box", "box_qty"},
		}),
		Schema: schemaWith(Schema{
			"diameter_mm":       {Kind: KindDecimal},
			"thickness_th_mm":   {Kind: KindDecimal},
			"min_thickness_mm":  {Kind: KindDecimal},
			"height_mm":         {Kind: KindDecimal},
			"num_holes":         {Kind: KindInt},
			"disc_type":         {Kind: KindDiscType},
			"center_bore_mm":    {Kind: KindDecimal},
			"tightening_torque": {Kind: KindInt},
			"axle":              {Kind: KindAxle},
			"assembly_side":     {Kind: KindSide},
			"units_per_box":     {Kind: KindInt},
		}),
		PreProcess: defaultSideFromAxle,
	},
	{
		Tag:      "drum",
		Label:    "Brake Drum",
		Table:    "drums",
		New:      func() Product { return &Drum{} },
		NewSlice: func() interface{} { return &[]Drum{} },
		Aliases: aliasesWith(map[string][]string{
			"code":            {"drum_code"},
			"diameter_mm":     {"diameter Ø", "diameter", "ø"},
			"width_mm":        {"width"},
			"height_mm":       {"height (a)", "height"},
			"num_holes":       {"number of holes (c)", "holes"},
			"center_bore_mm":  {"centering (b)", "center_bore", "cb"},
			"max_diameter_mm": {"max diameter", "max_diameter", "diameter max"},
			"axle":            {"position"},
		}),
		Schema: schemaWith(Schema{
			"diameter_mm":     {Kind: KindDecimal},
			"width_mm":        {Kind: KindDecimal},
			"height_mm":       {Kind: KindDecimal},
			"num_holes":       {Kind: KindInt},
			"center_bore_mm":  {Kind: KindDecimal},
			"max_diameter_mm": {Kind: KindDecimal},
			"axle":            {Kind: KindAxle},
		}),
	},
	{
		Tag:      "pad",
		Label:    "Brake Pad",
		Table:    "pads",
		New:      func() Product { return &Pad{} },
		NewSlice: func() interface{} { return &[]Pad{} },
		Aliases: aliasesWith(map[string][]string{
			"code":           {"pad_code"},
			"width_mm":       {"width", "width (w)"},
			"thickness_mm":   {"thickness", "thickness (t)"},
			"height_mm":      {"height", "height (h)"},
			"braking_system": {"braking system", "brake system", "system"},
			"wva_number":     {"wva number", "wva", "wva no.", "wva_no"},
			"wear_indicator": {"wear indicator", "indicator", "wear_ind"},
			"accessories":    {"accs", "acc"},
			"axle":           {"position"},
			"fmsi":           {"fmsi ref", "fmsi number"},
		}),
		Schema: schemaWith(Schema{
			"width_mm":       {Kind: KindDecimal},
			"thickness_mm":   {Kind: KindDecimal},
			"height_mm":      {Kind: KindDecimal},
			"braking_system": {Kind: KindMaxLen, MaxLen: 30},
			"wva_number":     {Kind: KindMaxLen, MaxLen: 30},
			"wear_indicator": {Kind: KindWearIndicator},
			"accessories":    {Kind: KindMaxLen, MaxLen: 100},
			"axle":           {Kind: KindAxle},
			"fmsi":           {Kind: KindTokens, MaxLen: 70},
		}),
	},
	{
		Tag:      "pad_accessory",
		Label:    "Pad Accessory",
		Table:    "pad_accessories",
		New:      func() Product { return &PadAccessory{} },
		NewSlice: func() interface{} { return &[]PadAccessory{} },
		Aliases: aliasesWith(map[string][]string{
			"braking_system": {"brake system", "system"},
			"accessory_type": {},
			"axle":           {"position"},
			"length_mm":      {"length"},
			"assembly_side":  {"side"},
		}),
		Schema: schemaWith(Schema{
			"braking_system": {Kind: KindMaxLen, MaxLen: 30},
			"accessory_type": {Kind: KindPadAccessoryType},
			"axle":           {Kind: KindAxle},
			"length_mm":      {Kind: KindDecimal},
			"assembly_side":  {Kind: KindSide},
		}),
		PreProcess: defaultSideFromAxle,
	},
	{
		Tag:      "hose",
		Label:    "Hose",
		Table:    "hoses",
		New:      func() Product { return &Hose{} },
		NewSlice: func() interface{} { return &[]Hose{} },
		Aliases: aliasesWith(map[string][]string{
			"axle":        {"position"},
			"length_mm":   {"length"},
			"threading_1": {"threading 1"},
			"threading_2": {"threading 2"},
		}),
		Schema: schemaWith(Schema{
			"axle":        {Kind: KindAxle},
			"length_mm":   {Kind: KindDecimal},
			"threading_1": {Kind: KindMaxLen, MaxLen: 30},
			"threading_2": {Kind: KindMaxLen, MaxLen: 30},
		}),
	},
	{
		Tag:      "wheel_cylinder",
		Label:    "Wheel Cylinder",
		Table:    "wheel_cylinders",
		New:      func() Product { return &WheelCylinder{} },
		NewSlice: func() interface{} { return &[]WheelCylinder{} },
		Aliases:  cylinderAliases(),
		Schema:   cylinderSchema(),
	},
	{
		Tag:      "master_cylinder",
		Label:    "Master Cylinder",
		Table:    "master_cylinders",
		New:      func() Product { return &MasterCylinder{} },
		NewSlice: func() interface{} { return &[]MasterCylinder{} },
		Aliases:  cylinderAliases(),
		Schema:   cylinderSchema(),
	},
	{
		Tag:      "clutch_cylinder",
		Label:    "Clutch Cylinder",
		Table:    "clutch_cylinders",
		New:      func() Product { return &ClutchCylinder{} },
		NewSlice: func() interface{} { return &[]ClutchCylinder{} },
		Aliases:  cylinderAliases(),
		Schema:   cylinderSchema(),
	},
	{
		Tag:      "clutch_master_cylinder",
		Label:    "Clutch Master Cylinder",
		Table:    "clutch_master_cylinders",
		New:      func() Product { return &ClutchMasterCylinder{} },
		NewSlice: func() interface{} { return &[]ClutchMasterCylinder{} },
		Aliases:  cylinderAliases(),
		Schema:   cylinderSchema(),
	},
	{
		Tag:      "caliper",
		Label:    "Caliper",
		Table:    "calipers",
		New:      func() Product { return &Caliper{} },
		NewSlice: func() interface{} { return &[]Caliper{} },
		Aliases: aliasesWith(map[string][]string{
			"axle":           {},
			"position":       {},
			"braking_system": {"brake system", "system"},
			"diameter_mm":    {"diameter", "ø"},
			"num_pistons":    {},
			"assembly_side":  {"side"},
		}),
		Schema: schemaWith(Schema{
			"diameter_mm":    {Kind: KindDecimal},
			"num_pistons":    {Kind: KindInt},
			"braking_system": {Kind: KindMaxLen, MaxLen: 30},
			"position":       {Kind: KindCaliperPosition},
			"axle":           {Kind: KindAxle},
			"assembly_side":  {Kind: KindSide},
		}),
		PreProcess: defaultSideFromAxle,
	},
	{
		Tag:      "shoe_kit",
		Label:    "Shoe Kit",
		Table:    "shoe_kits",
		New:      func() Product { return &ShoeKit{} },
		NewSlice: func() interface{} { return &[]ShoeKit{} },
		Aliases: aliasesWith(map[string][]string{
			"diameter_mm":                 {"diameter", "ø"},
			"width_mm":                    {"width", "mm"},
			"master_cylinder_diameter_mm": {},
			"is_pre_assembled":            {},
			"braking_system":              {"brake system", "system"},
			"axle":                        {},
			"is_manual_proportioning_valve": {},
		}),
		Schema: schemaWith(Schema{
			"diameter_mm":                 {Kind: KindDecimal},
			"width_mm":                    {Kind: KindDecimal},
			"master_cylinder_diameter_mm": {Kind: KindDecimal},
			"is_pre_assembled":            {Kind: KindBoolPreAssembled},
			"braking_system":              {Kind: KindMaxLen, MaxLen: 30},
			"axle":                        {Kind: KindAxle},
			"is_manual_proportioning_valve": {Kind: KindBoolManualValve},
		}),
		PreProcess: func(fs Fields) {
			// flag not supplied means a plain kit without the manual valve
			if !fs.HasValue("is_manual_proportioning_valve") {
				f := false
				fs.Set("is_manual_proportioning_valve", Value{Bool: &f})
			}
		},
	},
	{
		Tag:      "shoe",
		Label:    "Shoe",
		Table:    "shoes",
		New:      func() Product { return &Shoe{} },
		NewSlice: func() interface{} { return &[]Shoe{} },
		Aliases: aliasesWith(map[string][]string{
			"diameter_mm":         {"diameter", "mm"},
			"width_mm":            {"width", "mm"},
			"is_parking_brake":    {},
			"has_handbrake_lever": {},
			"has_accessories":     {},
			"axle":                {},
			"braking_system":      {"brake system", "system"},
		}),
		Schema: schemaWith(Schema{
			"diameter_mm":         {Kind: KindDecimal},
			"width_mm":            {Kind: KindDecimal},
			"is_parking_brake":    {Kind: KindBoolParkingBrake},
			"has_handbrake_lever": {Kind: KindBoolWith},
			"has_accessories":     {Kind: KindBoolWith},
			"axle":                {Kind: KindAxle},
			"braking_system":      {Kind: KindMaxLen, MaxLen: 30},
		}),
	},
	{
		Tag:      "proportioning_valve",
		Label:    "Proportioning Valve",
		Table:    "proportioning_valves",
		New:      func() Product { return &ProportioningValve{} },
		NewSlice: func() interface{} { return &[]ProportioningValve{} },
		Aliases: aliasesWith(map[string][]string{
			"threading":      {},
			"material":       {},
			"braking_system": {"brake system", "system"},
		}),
		Schema: schemaWith(Schema{
			"threading":      {Kind: KindMaxLen, MaxLen: 30},
			"material":       {Kind: KindMaterial},
			"braking_system": {Kind: KindMaxLen, MaxLen: 30},
		}),
	},
	{
		Tag:      "kit",
		Label:    "Kit",
		Table:    "kits",
		New:      func() Product { return &Kit{} },
		NewSlice: func() interface{} { return &[]Kit{} },
		Aliases: aliasesWith(map[string][]string{
			"disc_per_box": {},
			"pad_per_box":  {},
			"axle":         {},
		}),
		Schema: schemaWith(Schema{
			"disc_per_box": {Kind: KindInt},
			"pad_per_box":  {Kind: KindInt},
			"axle":         {Kind: KindAxle},
		}),
	},
}

func cylinderAliases() map[string][]string {
	return aliasesWith(map[string][]string{
		"axle":           {"position"},
		"threading":      {},
		"braking_system": {"brake system", "system"},
		"material":       {},
		"diameter_mm":    {"diameter", "ø"},
	})
}

func cylinderSchema() Schema {
	return schemaWith(Schema{
		"axle":           {Kind: KindAxle},
		"threading":      {Kind: KindMaxLen, MaxLen: 30},
		"braking_system": {Kind: KindMaxLen, MaxLen: 30},
		"material":       {Kind: KindMaterial},
		"diameter_mm":    {Kind: KindDecimal},
	})
}

var productTypesByTag = func() map[string]*ProductType {
	m := make(map[string]*ProductType, len(ProductTypes))
	for _, pt := range ProductTypes {
		m[pt.Tag] = pt
	}
	return m
}()

// ProductTypeByTag returns the variant descriptor for a tag, or nil.
func ProductTypeByTag(tag string) *ProductType {
	return productTypesByTag[tag]
}

// MigrationModels lists every persisted model for AutoMigrate.
func MigrationModels() []interface{} {
	return []interface{}{
		&Disc{}, &Drum{}, &Pad{}, &PadAccessory{}, &Hose{},
		&WheelCylinder{}, &MasterCylinder{}, &ClutchCylinder{}, &ClutchMasterCylinder{},
		&Caliper{}, &ShoeKit{}, &Shoe{}, &ProportioningValve{}, &Kit{},
		&Brand{}, &VehicleModel{}, &Car{}, &CommercialVehicle{}, &Year{}, &MotorBike{},
		&FitmentLink{}, &ImportRun{},
	}
}
