package models

import "fmt"

// FitmentLink connects one product record of any variant to one vehicle
// record of any variant. The 4-tuple is unique; links are immutable once
// created (delete-and-recreate only).
type FitmentLink struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductType string `gorm:"size:30;not null;uniqueIndex:uniq_product_vehicle,priority:1;index:idx_fitment_product,priority:1" json:"productType"`
	ProductCode string `gorm:"size:30;not null;uniqueIndex:uniq_product_vehicle,priority:2;index:idx_fitment_product,priority:2" json:"productCode"`
	VehicleType string `gorm:"size:30;not null;uniqueIndex:uniq_product_vehicle,priority:3;index:idx_fitment_vehicle,priority:1" json:"vehicleType"`
	VehicleID   int64  `gorm:"not null;uniqueIndex:uniq_product_vehicle,priority:4;index:idx_fitment_vehicle,priority:2" json:"vehicleId"`
}

func (FitmentLink) TableName() string { return "fitment_links" }

// ValidateLink checks both variant tags against the registries. The allowed
// tag sets are registry lookups, not per-row hardcoding.
func ValidateLink(l FitmentLink) error {
	if ProductTypeByTag(l.ProductType) == nil {
		return fmt.Errorf("unknown product type tag %q", l.ProductType)
	}
	if VehicleTypeByTag(l.VehicleType) == nil {
		return fmt.Errorf("unknown vehicle type tag %q", l.VehicleType)
	}
	if l.ProductCode == "" {
		return fmt.Errorf("empty product code")
	}
	return nil
}
