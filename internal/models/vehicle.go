package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Vehicle reference data is keyed by the external numeric ids the source
// feed assigns (brand_id, model_id, type_id, disp_id). Primary keys are
// therefore not autogenerated, matching the upsert-by-external-id import.

// Brand is a vehicle make. Category restricts which vehicle variant the
// brand may be attached to; the importer enforces that at write time.
type Brand struct {
	ID       int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name     string `gorm:"size:50;not null" json:"name"`
	Category string `gorm:"size:1;not null;index" json:"category"`
}

func (Brand) TableName() string { return "brands" }

// VehicleModel is a model line within a brand, with an optional production
// date range.
type VehicleModel struct {
	ID        int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	BrandID   int64      `gorm:"not null;index" json:"brandId"`
	Brand     Brand      `json:"-"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	DateStart *time.Time `json:"dateStart"`
	DateEnd   *time.Time `json:"dateEnd"`
}

func (VehicleModel) TableName() string { return "vehicle_models" }

// Car is a passenger car variant of one model line.
type Car struct {
	ID        int64        `gorm:"primaryKey;autoIncrement:false" json:"id"`
	BrandID   int64        `gorm:"not null;index" json:"brandId"`
	Brand     Brand        `json:"-"`
	ModelID   int64        `gorm:"not null;index" json:"modelId"`
	Model     VehicleModel `json:"-"`
	Name      string       `gorm:"size:100;not null" json:"name"`
	KW        uint         `gorm:"column:kw;default:0" json:"kw"`
	CV        uint         `gorm:"column:cv;default:0" json:"cv"`
	DateStart *time.Time   `json:"dateStart"`
	DateEnd   *time.Time   `json:"dateEnd"`
}

func (Car) TableName() string { return "cars" }

// DisplayName renders the admin-facing description string.
func (c Car) DisplayName() string {
	return fmt.Sprintf("%s (%s - %s) %d KW/%d CV",
		c.Name, fmtMonthYear(c.DateStart, "?"), fmtMonthYear(c.DateEnd, "?"), c.KW, c.CV)
}

// CommercialVehicle is a truck/van variant of one model line.
type CommercialVehicle struct {
	ID        int64        `gorm:"primaryKey;autoIncrement:false" json:"id"`
	BrandID   int64        `gorm:"not null;index" json:"brandId"`
	Brand     Brand        `json:"-"`
	ModelID   int64        `gorm:"not null;index" json:"modelId"`
	Model     VehicleModel `json:"-"`
	Name      string       `gorm:"size:100;not null" json:"name"`
	KW        uint         `gorm:"column:kw;default:0" json:"kw"`
	CV        uint         `gorm:"column:cv;default:0" json:"cv"`
	DateStart *time.Time   `json:"dateStart"`
	DateEnd   *time.Time   `json:"dateEnd"`
}

func (CommercialVehicle) TableName() string { return "commercial_vehicles" }

func (c CommercialVehicle) DisplayName() string {
	return fmt.Sprintf("%s (%s - %s) %d KW/%d CV",
		c.Name, fmtMonthYear(c.DateStart, "?"), fmtMonthYear(c.DateEnd, "?"), c.KW, c.CV)
}

// Year is a single model year, shared by motorbikes via a join table.
type Year struct {
	ID    int64 `gorm:"primaryKey" json:"-"`
	Value int   `gorm:"uniqueIndex;not null" json:"value"`
}

func (Year) TableName() string { return "years" }

// MotorBike is a displacement variant of one bike model line with the set
// of model years it applies to. Years are deduplicated and unordered.
type MotorBike struct {
	ID           int64        `gorm:"primaryKey;autoIncrement:false" json:"id"`
	BrandID      int64        `gorm:"not null;index" json:"brandId"`
	Brand        Brand        `json:"-"`
	ModelID      int64        `gorm:"not null;index" json:"modelId"`
	Model        VehicleModel `json:"-"`
	Displacement int          `gorm:"not null" json:"displacement"`
	Years        []Year       `gorm:"many2many:motorbike_years" json:"years"`
}

func (MotorBike) TableName() string { return "motorbikes" }

func fmtMonthYear(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.Format("01/06")
}

// Vehicle type tags
const (
	VehicleTagCar  = "car"
	VehicleTagCV   = "commercial_vehicle"
	VehicleTagBike = "motorbike"
)

// VehicleType describes one vehicle variant. The slice order is the
// resolution order for relation imports: an ambiguous external id is
// claimed by the earliest variant under the "first" preference policy.
type VehicleType struct {
	Tag      string
	Category string
	Label    string
	Exists   func(db *gorm.DB, id int64) (bool, error)
}

var VehicleTypes = []*VehicleType{
	{
		Tag:      VehicleTagCar,
		Category: CategoryCar,
		Label:    "Car",
		Exists:   existsByID(&Car{}),
	},
	{
		Tag:      VehicleTagCV,
		Category: CategoryCV,
		Label:    "Commercial Vehicle",
		Exists:   existsByID(&CommercialVehicle{}),
	},
	{
		Tag:      VehicleTagBike,
		Category: CategoryBike,
		Label:    "Motorbike",
		Exists:   existsByID(&MotorBike{}),
	},
}

func existsByID(model interface{}) func(db *gorm.DB, id int64) (bool, error) {
	return func(db *gorm.DB, id int64) (bool, error) {
		var n int64
		if err := db.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
			return false, err
		}
		return n > 0, nil
	}
}

var vehicleTypesByTag = func() map[string]*VehicleType {
	m := make(map[string]*VehicleType, len(VehicleTypes))
	for _, vt := range VehicleTypes {
		m[vt.Tag] = vt
	}
	return m
}()

// VehicleTypeByTag returns the variant descriptor for a tag, or nil.
func VehicleTypeByTag(tag string) *VehicleType {
	return vehicleTypesByTag[tag]
}

// VehicleTypeByCategory maps a category code ('c'/'t'/'b') to its variant.
func VehicleTypeByCategory(category string) *VehicleType {
	for _, vt := range VehicleTypes {
		if vt.Category == category {
			return vt
		}
	}
	return nil
}
