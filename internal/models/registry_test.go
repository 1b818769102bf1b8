package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProductRegistryComplete(t *testing.T) {
	wantTags := []string{
		"disc", "drum", "pad", "pad_accessory", "hose",
		"wheel_cylinder", "master_cylinder", "clutch_cylinder",
		"clutch_master_cylinder", "caliper", "shoe_kit", "shoe",
		"proportioning_valve", "kit",
	}
	if len(ProductTypes) != len(wantTags) {
		t.Fatalf("registry has %d types, want %d", len(ProductTypes), len(wantTags))
	}
	for i, want := range wantTags {
		if ProductTypes[i].Tag != want {
			t.Errorf("position %d: tag %q, want %q", i, ProductTypes[i].Tag, want)
		}
	}

	seenTags := make(map[string]bool)
	seenTables := make(map[string]bool)
	for _, pt := range ProductTypes {
		if seenTags[pt.Tag] {
			t.Errorf("duplicate tag %q", pt.Tag)
		}
		seenTags[pt.Tag] = true
		if seenTables[pt.Table] {
			t.Errorf("duplicate table %q", pt.Table)
		}
		seenTables[pt.Table] = true

		rec := pt.New()
		if rec.TableName() != pt.Table {
			t.Errorf("%s: record table %q does not match descriptor %q", pt.Tag, rec.TableName(), pt.Table)
		}
		if pt.Schema == nil || pt.Aliases == nil {
			t.Errorf("%s: missing schema or aliases", pt.Tag)
		}
		// every variant carries the shared base fields
		for _, field := range []string{"ean", "price", "quantity"} {
			if _, ok := pt.Schema[field]; !ok {
				t.Errorf("%s: schema missing base field %s", pt.Tag, field)
			}
		}
	}
}

func TestProductTypeByTag(t *testing.T) {
	if pt := ProductTypeByTag("disc"); pt == nil || pt.Tag != "disc" {
		t.Errorf("ProductTypeByTag(disc) = %v", pt)
	}
	if pt := ProductTypeByTag("nonsense"); pt != nil {
		t.Errorf("ProductTypeByTag(nonsense) = %v, want nil", pt)
	}
}

func TestVehicleRegistryComplete(t *testing.T) {
	wantTags := []string{VehicleTagCar, VehicleTagCV, VehicleTagBike}
	if len(VehicleTypes) != len(wantTags) {
		t.Fatalf("registry has %d vehicle types, want %d", len(VehicleTypes), len(wantTags))
	}
	for i, want := range wantTags {
		if VehicleTypes[i].Tag != want {
			t.Errorf("position %d: tag %q, want %q", i, VehicleTypes[i].Tag, want)
		}
	}
	if vt := VehicleTypeByCategory(CategoryCV); vt == nil || vt.Tag != VehicleTagCV {
		t.Errorf("VehicleTypeByCategory(t) = %v", vt)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	price := decimal.NewFromFloat(19.99)
	disc := &Disc{ProductBase: ProductBase{Code: "D1", Price: &price, Quantity: 2}}

	clone := disc.Clone().(*Disc)
	clone.Quantity = 9
	clone.Code = "D2"

	if disc.Quantity != 2 || disc.Code != "D1" {
		t.Errorf("mutating the clone changed the original: %+v", disc)
	}
}

func TestApplyLeavesOmittedFieldsAlone(t *testing.T) {
	d := decimal.NewFromInt(280)
	disc := &Disc{
		ProductBase: ProductBase{Code: "D1", Quantity: 5},
		DiameterMM:  &d,
	}

	// row with a quantity column only
	q := 8
	disc.Apply(Fields{"quantity": {Int: &q}})

	if disc.Quantity != 8 {
		t.Errorf("quantity = %d, want 8", disc.Quantity)
	}
	if disc.DiameterMM == nil || !disc.DiameterMM.Equal(d) {
		t.Errorf("diameter changed without a source column: %v", disc.DiameterMM)
	}
}

func TestDefaultSideFromAxle(t *testing.T) {
	axle := AxleRear
	fs := Fields{"axle": {Str: &axle}}
	defaultSideFromAxle(fs)
	if got := fs.Str("assembly_side"); got == nil || *got != AxleRear {
		t.Errorf("assembly_side = %v, want R", got)
	}

	// an explicit side is never overridden
	side := SideLeft
	fs = Fields{"axle": {Str: &axle}, "assembly_side": {Str: &side}}
	defaultSideFromAxle(fs)
	if got := fs.Str("assembly_side"); got == nil || *got != SideLeft {
		t.Errorf("assembly_side = %v, want L", got)
	}
}

func TestRecomputeAvailable(t *testing.T) {
	zero := decimal.Zero
	tests := []struct {
		name string
		base ProductBase
		want bool
	}{
		{"stocked", ProductBase{Quantity: 3}, true},
		{"priced", ProductBase{Price: &zero}, true},
		{"neither", ProductBase{}, false},
	}
	for _, tt := range tests {
		tt.base.RecomputeAvailable()
		if tt.base.Available != tt.want {
			t.Errorf("%s: available = %v, want %v", tt.name, tt.base.Available, tt.want)
		}
	}
}

func TestValidateLink(t *testing.T) {
	good := FitmentLink{ProductType: "disc", ProductCode: "D1", VehicleType: VehicleTagCar, VehicleID: 1}
	if err := ValidateLink(good); err != nil {
		t.Errorf("valid link rejected: %v", err)
	}

	bad := []FitmentLink{
		{ProductType: "widget", ProductCode: "D1", VehicleType: VehicleTagCar, VehicleID: 1},
		{ProductType: "disc", ProductCode: "D1", VehicleType: "boat", VehicleID: 1},
		{ProductType: "disc", ProductCode: "", VehicleType: VehicleTagCar, VehicleID: 1},
	}
	for i, l := range bad {
		if err := ValidateLink(l); err == nil {
			t.Errorf("bad link %d accepted", i)
		}
	}
}

func TestMigrationModelsCoverRegistry(t *testing.T) {
	migrated := make(map[string]bool)
	for _, m := range MigrationModels() {
		if p, ok := m.(Product); ok {
			migrated[p.TableName()] = true
		}
	}
	for _, pt := range ProductTypes {
		if !migrated[pt.Table] {
			t.Errorf("table %q missing from migration set", pt.Table)
		}
	}
}
