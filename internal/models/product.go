package models

import (
	"github.com/shopspring/decimal"
)

// ProductBase carries the fields shared by every product variant. Code is
// the supplier part number and the primary key; it is never regenerated
// once set. Available is derived on every import pass and is not
// authoritative on its own.
type ProductBase struct {
	Code              string           `gorm:"primaryKey;size:30" json:"code"`
	EAN               *string          `gorm:"column:ean;size:14;uniqueIndex" json:"ean"`
	Price             *decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	Quantity          uint             `gorm:"default:0" json:"quantity"`
	Available         bool             `gorm:"default:false" json:"available"`
	TypeLabel         string           `gorm:"size:100;default:''" json:"typeLabel"`
	ImageURL          string           `gorm:"default:''" json:"imageUrl"`
	TechnicalImageURL string           `gorm:"default:''" json:"technicalImageUrl"`
}

// apply copies the shared fields present in the normalized field set.
// Fields missing from the source file leave stored values untouched.
func (b *ProductBase) apply(fs Fields) {
	if fs.Has("ean") {
		b.EAN = fs.Str("ean")
	}
	if fs.Has("price") {
		b.Price = fs.Dec("price")
	}
	if fs.Has("quantity") {
		if q := fs.Int("quantity"); q != nil && *q >= 0 {
			b.Quantity = uint(*q)
		} else {
			b.Quantity = 0
		}
	}
	if fs.Has("type_label") {
		b.TypeLabel = strOrEmpty(fs.Str("type_label"))
	}
	if fs.Has("image_url") {
		b.ImageURL = strOrEmpty(fs.Str("image_url"))
	}
	if fs.Has("technical_image_url") {
		b.TechnicalImageURL = strOrEmpty(fs.Str("technical_image_url"))
	}
}

// RecomputeAvailable derives the availability flag. A price of 0.00 still
// counts as priced: the rule is price-is-present, not price-is-positive.
func (b *ProductBase) RecomputeAvailable() {
	b.Available = b.Quantity > 0 || b.Price != nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sideOrNone(s *string) string {
	if s == nil {
		return SideNone
	}
	return *s
}

// Disc is a brake disc.
type Disc struct {
	ProductBase
	DiameterMM       *decimal.Decimal `gorm:"type:numeric(6,2)" json:"diameterMm"`
	ThicknessThMM    *decimal.Decimal `gorm:"type:numeric(6,2)" json:"thicknessThMm"`
	MinThicknessMM   *decimal.Decimal `gorm:"type:numeric(6,2)" json:"minThicknessMm"`
	HeightMM         *decimal.Decimal `gorm:"type:numeric(6,2)" json:"heightMm"`
	NumHoles         *int             `json:"numHoles"`
	DiscType         *string          `gorm:"size:1" json:"discType"`
	CenterBoreMM     *decimal.Decimal `gorm:"type:numeric(6,2)" json:"centerBoreMm"`
	TighteningTorque *int             `json:"tighteningTorque"`
	Axle             *string          `gorm:"size:1" json:"axle"`
	AssemblySide     string           `gorm:"size:1;default:'N'" json:"assemblySide"`
	UnitsPerBox      *int             `json:"unitsPerBox"`
}

func (Disc) TableName() string { return "discs" }

func (d *Disc) Base() *ProductBase { return &d.ProductBase }

func (d *Disc) Clone() Product { c := *d; return &c }

func (d *Disc) Apply(fs Fields) {
	d.ProductBase.apply(fs)
	if fs.Has("diameter_mm") {
		d.DiameterMM = fs.Dec("diameter_mm")
	}
	if fs.Has("thickness_th_mm") {
		d.ThicknessThMM = fs.Dec("thickness_th_mm")
	}
	if fs.Has("min_thickness_mm") {
		d.MinThicknessMM = fs.Dec("min_thickness_mm")
	}
	if fs.Has("height_mm") {
		d.HeightMM = fs.Dec("height_mm")
	}
	if fs.Has("num_holes") {
		d.NumHoles = fs.Int("num_holes")
	}
	if fs.Has("disc_type") {
		d.DiscType = fs.Str("disc_type")
	}
	if fs.Has("center_bore_mm") {
		d.CenterBoreMM = fs.Dec("center_bore_mm")
	}
	if fs.Has("tightening_torque") {
		d.TighteningTorque = fs.Int("tightening_torque")
	}
	if fs.Has("axle") {
		d.Axle = fs.Str("axle")
	}
	if fs.Has("assembly_side") {
		d.AssemblySide = sideOrNone(fs.Str("assembly_side"))
	}
	if fs.Has("units_per_box") {
		d.UnitsPerBox = fs.Int("units_per_box")
	}
}

// Drum is a brake drum.
type Drum struct {
	ProductBase
	DiameterMM    *decimal.Decimal `gorm:"type:numeric(6,2)" json:"diameterMm"`
	WidthMM       *decimal.Decimal `gorm:"type:numeric(6,2)" json:"widthMm"`
	HeightMM      *decimal.Decimal `gorm:"type:numeric(6,2)" json:"heightMm"`
	NumHoles      *int             `json:"numHoles"`
	CenterBoreMM  *decimal.Decimal `gorm:"type:numeric(6,2)" json:"centerBoreMm"`
	MaxDiameterMM *decimal.Decimal `gorm:"type:numeric(6,2)" json:"maxDiameterMm"`
	Axle          *string          `gorm:"size:1" json:"axle"`
}

func (Drum) TableName() string { return "drums" }

func (d *Drum) Base() *ProductBase { return &d.ProductBase }

func (d *Drum) Clone() Product { c := *d; return &c }

func (d *Drum) Apply(fs Fields) {
	d.ProductBase.apply(fs)
	if fs.Has("diameter_mm") {
		d.DiameterMM = fs.Dec("diameter_mm")
	}
	if fs.Has("width_mm") {
		d.WidthMM = fs.Dec("width_mm")
	}
	if fs.Has("height_mm") {
		d.HeightMM = fs.Dec("height_mm")
	}
	if fs.Has("num_holes") {
		d.NumHoles = fs.Int("num_holes")
	}
	if fs.Has("center_bore_mm") {
		d.CenterBoreMM = fs.Dec("center_bore_mm")
	}
	if fs.Has("max_diameter_mm") {
		d.MaxDiameterMM = fs.Dec("max_diameter_mm")
	}
	if fs.Has("axle") {
		d.Axle = fs.Str("axle")
	}
}

// Pad is a brake pad set.
type Pad struct {
	ProductBase
	WidthMM       *decimal.Decimal `gorm:"type:numeric(6,2)" json:"widthMm"`
	ThicknessMM   *decimal.Decimal `gorm:"type:numeric(6,2)" json:"thicknessMm"`
	HeightMM      *decimal.Decimal `gorm:"type:numeric(6,2)" json:"heightMm"`
	BrakingSystem *string          `gorm:"size:30" json:"brakingSystem"`
	WVANumber     *string          `gorm:"column:wva_number;size:30" json:"wvaNumber"`
	WearIndicator *string          `gorm:"size:1" json:"wearIndicator"`
	Accessories   *string          `gorm:"size:100" json:"accessories"`
	Axle          *string          `gorm:"size:1" json:"axle"`
	FMSI          *string          `gorm:"column:fmsi;size:70" json:"fmsi"`
}

func (Pad) TableName() string { return "pads" }

func (p *Pad) Base() *ProductBase { return &p.ProductBase }

func (p *Pad) Clone() Product { c := *p; return &c }

func (p *Pad) Apply(fs Fields) {
	p.ProductBase.apply(fs)
	if fs.Has("width_mm") {
		p.WidthMM = fs.Dec("width_mm")
	}
	if fs.Has("thickness_mm") {
		p.ThicknessMM = fs.Dec("thickness_mm")
	}
	if fs.Has("height_mm") {
		p.HeightMM = fs.Dec("height_mm")
	}
	if fs.Has("braking_system") {
		p.BrakingSystem = fs.Str("braking_system")
	}
	if fs.Has("wva_number") {
		p.WVANumber = fs.Str("wva_number")
	}
	if fs.Has("wear_indicator") {
		p.WearIndicator = fs.Str("wear_indicator")
	}
	if fs.Has("accessories") {
		p.Accessories = fs.Str("accessories")
	}
	if fs.Has("axle") {
		p.Axle = fs.Str("axle")
	}
	if fs.Has("fmsi") {
		p.FMSI = fs.Str("fmsi")
	}
}

// PadAccessory is a fitting accessory for pads (wear indicator leads,
// assembly kits).
type PadAccessory struct {
	ProductBase
	BrakingSystem *string          `gorm:"size:30" json:"brakingSystem"`
	AccessoryType *string          `gorm:"size:1" json:"accessoryType"`
	Axle          *string          `gorm:"size:1" json:"axle"`
	LengthMM      *decimal.Decimal `gorm:"type:numeric(6,2)" json:"lengthMm"`
	AssemblySide  string           `gorm:"size:1;default:'N'" json:"assemblySide"`
}

func (PadAccessory) TableName() string { return "pad_accessories" }

func (p *PadAccessory) Base() *ProductBase { return &p.ProductBase }

func (p *PadAccessory) Clone() Product { c := *p; return &c }

func (p *PadAccessory) Apply(fs Fields) {
	p.ProductBase.apply(fs)
	if fs.Has("braking_system") {
		p.BrakingSystem = fs.Str("braking_system")
	}
	if fs.Has("accessory_type") {
		p.AccessoryType = fs.Str("accessory_type")
	}
	if fs.Has("axle") {
		p.Axle = fs.Str("axle")
	}
	if fs.Has("length_mm") {
		p.LengthMM = fs.Dec("length_mm")
	}
	if fs.Has("assembly_side") {
		p.AssemblySide = sideOrNone(fs.Str("assembly_side"))
	}
}

// Hose is a brake hose.
type Hose struct {
	ProductBase
	LengthMM   *decimal.Decimal `gorm:"type:numeric(6,2)" json:"lengthMm"`
	Threading1 *string          `gorm:"size:30" json:"threading1"`
	Threading2 *string          `gorm:"size:30" json:"threading2"`
	Axle       *string          `gorm:"size:1" json:"axle"`
}

func (Hose) TableName() string { return "hoses" }

func (h *Hose) Base() *ProductBase { return &h.ProductBase }

func (h *Hose) Clone() Product { c := *h; return &c }

func (h *Hose) Apply(fs Fields) {
	h.ProductBase.apply(fs)
	if fs.Has("length_mm") {
		h.LengthMM = fs.Dec("length_mm")
	}
	if fs.Has("threading_1") {
		h.Threading1 = fs.Str("threading_1")
	}
	if fs.Has("threading_2") {
		h.Threading2 = fs.Str("threading_2")
	}
	if fs.Has("axle") {
		h.Axle = fs.Str("axle")
	}
}

// CylinderBase holds the fields shared by the four cylinder variants.
type CylinderBase struct {
	ProductBase
	DiameterMM    *decimal.Decimal `gorm:"type:numeric(6,2)" json:"diameterMm"`
	Threading     *string          `gorm:"size:30" json:"threading"`
	Material      *string          `gorm:"size:1" json:"material"`
	BrakingSystem *string          `gorm:"size:30" json:"brakingSystem"`
	Axle          *string          `gorm:"size:1" json:"axle"`
}

func (c *CylinderBase) apply(fs Fields) {
	c.ProductBase.apply(fs)
	if fs.Has("diameter_mm") {
		c.DiameterMM = fs.Dec("diameter_mm")
	}
	if fs.Has("threading") {
		c.Threading = fs.Str("threading")
	}
	if fs.Has("material") {
		c.Material = fs.Str("material")
	}
	if fs.Has("braking_system") {
		c.BrakingSystem = fs.Str("braking_system")
	}
	if fs.Has("axle") {
		c.Axle = fs.Str("axle")
	}
}

type WheelCylinder struct{ CylinderBase }

func (WheelCylinder) TableName() string { return "wheel_cylinders" }

func (c *WheelCylinder) Base() *ProductBase { return &c.ProductBase }

func (c *WheelCylinder) Clone() Product { n := *c; return &n }

func (c *WheelCylinder) Apply(fs Fields) { c.CylinderBase.apply(fs) }

type MasterCylinder struct{ CylinderBase }

func (MasterCylinder) TableName() string { return "master_cylinders" }

func (c *MasterCylinder) Base() *ProductBase { return &c.ProductBase }

func (c *MasterCylinder) Clone() Product { n := *c; return &n }

func (c *MasterCylinder) Apply(fs Fields) { c.CylinderBase.apply(fs) }

type ClutchCylinder struct{ CylinderBase }

func (ClutchCylinder) TableName() string { return "clutch_cylinders" }

func (c *ClutchCylinder) Base() *ProductBase { return &c.ProductBase }

func (c *ClutchCylinder) Clone() Product { n := *c; return &n }

func (c *ClutchCylinder) Apply(fs Fields) { c.CylinderBase.apply(fs) }

type ClutchMasterCylinder struct{ CylinderBase }

func (ClutchMasterCylinder) TableName() string { return "clutch_master_cylinders" }

func (c *ClutchMasterCylinder) Base() *ProductBase { return &c.ProductBase }

func (c *ClutchMasterCylinder) Clone() Product { n := *c; return &n }

func (c *ClutchMasterCylinder) Apply(fs Fields) { c.CylinderBase.apply(fs) }

// Caliper is a brake caliper.
type Caliper struct {
	ProductBase
	DiameterMM    *decimal.Decimal `gorm:"type:numeric(6,2)" json:"diameterMm"`
	NumPistons    *int             `json:"numPistons"`
	BrakingSystem *string          `gorm:"size:30" json:"brakingSystem"`
	Position      *string          `gorm:"size:1" json:"position"`
	Axle          *string          `gorm:"size:1" json:"axle"`
	AssemblySide  string           `gorm:"size:1;default:'N'" json:"assemblySide"`
}

func (Caliper) TableName() string { return "calipers" }

func (c *Caliper) Base() *ProductBase { return &c.ProductBase }

func (c *Caliper) Clone() Product { n := *c; return &n }

func (c *Caliper) Apply(fs Fields) {
	c.ProductBase.apply(fs)
	if fs.Has("diameter_mm") {
		c.DiameterMM = fs.Dec("diameter_mm")
	}
	if fs.Has("num_pistons") {
		c.NumPistons = fs.Int("num_pistons")
	}
	if fs.Has("braking_system") {
		c.BrakingSystem = fs.Str("braking_system")
	}
	if fs.Has("position") {
		c.Position = fs.Str("position")
	}
	if fs.Has("axle") {
		c.Axle = fs.Str("axle")
	}
	if fs.Has("assembly_side") {
		c.AssemblySide = sideOrNone(fs.Str("assembly_side"))
	}
}

// ShoeKit is a pre-assembled (or not) drum brake shoe kit.
type ShoeKit struct {
	ProductBase
	DiameterMM                 *decimal.Decimal `gorm:"type:numeric(6,2)" json:"diameterMm"`
	WidthMM                    *decimal.Decimal `gorm:"type:numeric(6,2)" json:"widthMm"`
	MasterCylinderDiameterMM   *decimal.Decimal `gorm:"type:numeric(6,2)" json:"masterCylinderDiameterMm"`
	IsPreAssembled             bool             `gorm:"default:false" json:"isPreAssembled"`
	BrakingSystem              *string          `gorm:"size:30" json:"brakingSystem"`
	Axle                       *string          `gorm:"size:1" json:"axle"`
	IsManualProportioningValve bool             `gorm:"default:false" json:"isManualProportioningValve"`
}

func (ShoeKit) TableName() string { return "shoe_kits" }

func (s *ShoeKit) Base() *ProductBase { return &s.ProductBase }

func (s *ShoeKit) Clone() Product { n := *s; return &n }

func (s *ShoeKit) Apply(fs Fields) {
	s.ProductBase.apply(fs)
	if fs.Has("diameter_mm") {
		s.DiameterMM = fs.Dec("diameter_mm")
	}
	if fs.Has("width_mm") {
		s.WidthMM = fs.Dec("width_mm")
	}
	if fs.Has("master_cylinder_diameter_mm") {
		s.MasterCylinderDiameterMM = fs.Dec("master_cylinder_diameter_mm")
	}
	if fs.Has("is_pre_assembled") {
		s.IsPreAssembled = fs.Bool("is_pre_assembled")
	}
	if fs.Has("braking_system") {
		s.BrakingSystem = fs.Str("braking_system")
	}
	if fs.Has("axle") {
		s.Axle = fs.Str("axle")
	}
	if fs.Has("is_manual_proportioning_valve") {
		s.IsManualProportioningValve = fs.Bool("is_manual_proportioning_valve")
	}
}

// Shoe is a single drum brake shoe.
type Shoe struct {
	ProductBase
	DiameterMM        *decimal.Decimal `gorm:"type:numeric(6,2)" json:"diameterMm"`
	WidthMM           *decimal.Decimal `gorm:"type:numeric(6,2)" json:"widthMm"`
	IsParkingBrake    bool             `gorm:"default:false" json:"isParkingBrake"`
	HasHandbrakeLever bool             `gorm:"default:false" json:"hasHandbrakeLever"`
	HasAccessories    bool             `gorm:"default:false" json:"hasAccessories"`
	Axle              *string          `gorm:"size:1" json:"axle"`
	BrakingSystem     *string          `gorm:"size:30" json:"brakingSystem"`
}

func (Shoe) TableName() string { return "shoes" }

func (s *Shoe) Base() *ProductBase { return &s.ProductBase }

func (s *Shoe) Clone() Product { n := *s; return &n }

func (s *Shoe) Apply(fs Fields) {
	s.ProductBase.apply(fs)
	if fs.Has("diameter_mm") {
		s.DiameterMM = fs.Dec("diameter_mm")
	}
	if fs.Has("width_mm") {
		s.WidthMM = fs.Dec("width_mm")
	}
	if fs.Has("is_parking_brake") {
		s.IsParkingBrake = fs.Bool("is_parking_brake")
	}
	if fs.Has("has_handbrake_lever") {
		s.HasHandbrakeLever = fs.Bool("has_handbrake_lever")
	}
	if fs.Has("has_accessories") {
		s.HasAccessories = fs.Bool("has_accessories")
	}
	if fs.Has("axle") {
		s.Axle = fs.Str("axle")
	}
	if fs.Has("braking_system") {
		s.BrakingSystem = fs.Str("braking_system")
	}
}

// ProportioningValve is a brake force proportioning valve.
type ProportioningValve struct {
	ProductBase
	Threading     *string `gorm:"size:30" json:"threading"`
	Material      *string `gorm:"size:1" json:"material"`
	BrakingSystem *string `gorm:"size:30" json:"brakingSystem"`
}

func (ProportioningValve) TableName() string { return "proportioning_valves" }

func (v *ProportioningValve) Base() *ProductBase { return &v.ProductBase }

func (v *ProportioningValve) Clone() Product { n := *v; return &n }

func (v *ProportioningValve) Apply(fs Fields) {
	v.ProductBase.apply(fs)
	if fs.Has("threading") {
		v.Threading = fs.Str("threading")
	}
	if fs.Has("material") {
		v.Material = fs.Str("material")
	}
	if fs.Has("braking_system") {
		v.BrakingSystem = fs.Str("braking_system")
	}
}

// Kit is a combined disc+pad service kit.
type Kit struct {
	ProductBase
	DiscPerBox *int    `json:"discPerBox"`
	PadPerBox  *int    `json:"padPerBox"`
	Axle       *string `gorm:"size:1" json:"axle"`
}

func (Kit) TableName() string { return "kits" }

func (k *Kit) Base() *ProductBase { return &k.ProductBase }

func (k *Kit) Clone() Product { n := *k; return &n }

func (k *Kit) Apply(fs Fields) {
	k.ProductBase.apply(fs)
	if fs.Has("disc_per_box") {
		k.DiscPerBox = fs.Int("disc_per_box")
	}
	if fs.Has("pad_per_box") {
		k.PadPerBox = fs.Int("pad_per_box")
	}
	if fs.Has("axle") {
		k.Axle = fs.Str("axle")
	}
}
