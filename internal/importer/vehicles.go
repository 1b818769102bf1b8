package importer

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/autoparts-eu/brakecat/internal/models"
)

// The reference feed spells vehicle categories out in full.
var vehicleCategoryByFeedName = map[string]string{
	"Car":   models.CategoryCar,
	"Truck": models.CategoryCV,
	"Bike":  models.CategoryBike,
}

// VehicleSummary aggregates per-entity counters for a reference-data run.
type VehicleSummary struct {
	Brands   int `json:"brands"`
	Models   int `json:"models"`
	Cars     int `json:"cars"`
	CVs      int `json:"commercialVehicles"`
	Bikes    int `json:"motorbikes"`
	Skipped  int `json:"skipped"`
}

// ImportVehicleData imports the five reference CSVs (brand.csv, model.csv,
// type.csv, bikeDisplacement.csv, bikeYear.csv) from dir, upserting every
// record by its external id inside one transaction, so re-imports are
// idempotent.
func ImportVehicleData(db *gorm.DB, dir string) (VehicleSummary, error) {
	var sum VehicleSummary
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := importBrands(tx, filepath.Join(dir, "brand.csv"), &sum); err != nil {
			return err
		}
		if err := importVehicleModels(tx, filepath.Join(dir, "model.csv"), &sum); err != nil {
			return err
		}
		if err := importVehicleTypes(tx, filepath.Join(dir, "type.csv"), &sum); err != nil {
			return err
		}
		return importBikes(tx,
			filepath.Join(dir, "bikeDisplacement.csv"),
			filepath.Join(dir, "bikeYear.csv"), &sum)
	})
	if err != nil {
		return sum, err
	}
	log.Printf("✅ Reference data imported: %d brands, %d models, %d cars, %d commercial vehicles, %d motorbikes (%d skipped)",
		sum.Brands, sum.Models, sum.Cars, sum.CVs, sum.Bikes, sum.Skipped)
	return sum, nil
}

func importBrands(tx *gorm.DB, path string, sum *VehicleSummary) error {
	log.Printf(" • Importing brands from %s", path)
	_, rows, err := ReadCSVFile(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		id, err := strconv.ParseInt(strings.TrimSpace(row["brand_id"]), 10, 64)
		if err != nil {
			sum.Skipped++
			continue
		}
		category, ok := vehicleCategoryByFeedName[strings.TrimSpace(row["vehicle_type"])]
		if !ok {
			log.Printf("⚠️  Skipping brand %q: unknown vehicle type %q", row["brand_name"], row["vehicle_type"])
			sum.Skipped++
			continue
		}
		brand := models.Brand{
			ID:       id,
			Name:     strings.TrimSpace(row["brand_name"]),
			Category: category,
		}
		if err := upsertByID(tx, &brand); err != nil {
			return fmt.Errorf("brand %d: %w", id, err)
		}
		sum.Brands++
	}
	return nil
}

func importVehicleModels(tx *gorm.DB, path string, sum *VehicleSummary) error {
	log.Printf(" • Importing models from %s", path)
	_, rows, err := ReadCSVFile(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		id, err1 := strconv.ParseInt(strings.TrimSpace(row["model_id"]), 10, 64)
		brandID, err2 := strconv.ParseInt(strings.TrimSpace(row["brand_id"]), 10, 64)
		if err1 != nil || err2 != nil {
			sum.Skipped++
			continue
		}
		var brand models.Brand
		if err := tx.First(&brand, brandID).Error; err != nil {
			log.Printf("⚠️  Skipping model %q: unknown brand_id %d", row["model_name"], brandID)
			sum.Skipped++
			continue
		}
		m := models.VehicleModel{
			ID:        id,
			BrandID:   brand.ID,
			Name:      strings.TrimSpace(row["model_name"]),
			DateStart: ParseMonthYear(row["date_start"]),
			DateEnd:   ParseMonthYear(row["date_end"]),
		}
		if err := upsertByID(tx, &m); err != nil {
			return fmt.Errorf("model %d: %w", id, err)
		}
		sum.Models++
	}
	return nil
}

func importVehicleTypes(tx *gorm.DB, path string, sum *VehicleSummary) error {
	log.Printf(" • Importing cars and commercial vehicles from %s", path)
	_, rows, err := ReadCSVFile(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		id, err1 := strconv.ParseInt(strings.TrimSpace(row["type_id"]), 10, 64)
		modelID, err2 := strconv.ParseInt(strings.TrimSpace(row["model_id"]), 10, 64)
		if err1 != nil || err2 != nil {
			sum.Skipped++
			continue
		}
		var model models.VehicleModel
		if err := tx.Preload("Brand").First(&model, modelID).Error; err != nil {
			log.Printf("⚠️  Skipping type %q: unknown model_id %d", row["type_name"], modelID)
			sum.Skipped++
			continue
		}

		name := strings.TrimSpace(row["type_name"])
		kw := uintOrZero(row["kw"])
		cv := uintOrZero(row["cv"])
		dateStart := ParseMonthYear(row["date_start"])
		dateEnd := ParseMonthYear(row["date_end"])

		// the brand's category decides which variant the row lands in;
		// this is where brand/vehicle consistency is enforced
		switch model.Brand.Category {
		case models.CategoryCar:
			car := models.Car{
				ID: id, BrandID: model.BrandID, ModelID: model.ID,
				Name: name, KW: kw, CV: cv,
				DateStart: dateStart, DateEnd: dateEnd,
			}
			if err := upsertByID(tx, &car); err != nil {
				return fmt.Errorf("car %d: %w", id, err)
			}
			sum.Cars++
		case models.CategoryCV:
			cvRec := models.CommercialVehicle{
				ID: id, BrandID: model.BrandID, ModelID: model.ID,
				Name: name, KW: kw, CV: cv,
				DateStart: dateStart, DateEnd: dateEnd,
			}
			if err := upsertByID(tx, &cvRec); err != nil {
				return fmt.Errorf("commercial vehicle %d: %w", id, err)
			}
			sum.CVs++
		default:
			sum.Skipped++
		}
	}
	return nil
}

func importBikes(tx *gorm.DB, dispPath, yearPath string, sum *VehicleSummary) error {
	log.Printf(" • Importing bike years from %s", yearPath)
	_, yearRows, err := ReadCSVFile(yearPath)
	if err != nil {
		return err
	}
	yearsByDisp := make(map[int64][]int)
	for _, row := range yearRows {
		dispID, err1 := strconv.ParseInt(strings.TrimSpace(row["disp_id"]), 10, 64)
		year, err2 := strconv.Atoi(strings.TrimSpace(row["year_value"]))
		if err1 != nil || err2 != nil {
			sum.Skipped++
			continue
		}
		yearsByDisp[dispID] = append(yearsByDisp[dispID], year)
	}

	log.Printf(" • Importing bike displacements from %s", dispPath)
	_, dispRows, err := ReadCSVFile(dispPath)
	if err != nil {
		return err
	}
	for _, row := range dispRows {
		dispID, err1 := strconv.ParseInt(strings.TrimSpace(row["disp_id"]), 10, 64)
		modelID, err2 := strconv.ParseInt(strings.TrimSpace(row["model_id"]), 10, 64)
		displacement, err3 := strconv.Atoi(strings.TrimSpace(row["value"]))
		if err1 != nil || err2 != nil || err3 != nil {
			sum.Skipped++
			continue
		}
		var model models.VehicleModel
		if err := tx.Preload("Brand").First(&model, modelID).Error; err != nil {
			log.Printf("⚠️  Skipping bike disp_id=%d: unknown model_id %d", dispID, modelID)
			sum.Skipped++
			continue
		}
		if model.Brand.Category != models.CategoryBike {
			log.Printf("⚠️  Skipping bike disp_id=%d: brand %q is not a bike brand", dispID, model.Brand.Name)
			sum.Skipped++
			continue
		}

		bike := models.MotorBike{
			ID:           dispID,
			BrandID:      model.BrandID,
			ModelID:      model.ID,
			Displacement: displacement,
		}
		if err := upsertByID(tx, &bike); err != nil {
			return fmt.Errorf("motorbike %d: %w", dispID, err)
		}

		years, err := yearRecords(tx, yearsByDisp[dispID])
		if err != nil {
			return fmt.Errorf("motorbike %d years: %w", dispID, err)
		}
		if err := tx.Model(&bike).Association("Years").Replace(years); err != nil {
			return fmt.Errorf("motorbike %d years: %w", dispID, err)
		}
		sum.Bikes++
	}
	return nil
}

// yearRecords deduplicates the year values and get-or-creates their rows.
func yearRecords(tx *gorm.DB, values []int) ([]models.Year, error) {
	uniq := make(map[int]struct{}, len(values))
	for _, v := range values {
		uniq[v] = struct{}{}
	}
	sorted := make([]int, 0, len(uniq))
	for v := range uniq {
		sorted = append(sorted, v)
	}
	sort.Ints(sorted)

	out := make([]models.Year, 0, len(sorted))
	for _, v := range sorted {
		var y models.Year
		if err := tx.Where(models.Year{Value: v}).FirstOrCreate(&y).Error; err != nil {
			return nil, err
		}
		out = append(out, y)
	}
	return out, nil
}

func upsertByID(tx *gorm.DB, rec interface{}) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(rec).Error
}

func uintOrZero(raw string) uint {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return uint(n)
}

// ParseMonthYear converts the feed's "MM/YY" strings into the first day of
// that month. Empty values and the ">" open-ended sentinel yield nil.
func ParseMonthYear(s string) *time.Time {
	return parseMonthYearAt(s, time.Now().Year()%100)
}

// parseMonthYearAt resolves the two-digit year against a cutoff: years at
// or below the cutoff land in 20xx, the rest in 19xx.
func parseMonthYearAt(s string, cutoff int) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == ">" {
		return nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return nil
	}
	month, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	year, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || month < 1 || month > 12 || year < 0 || year > 99 {
		return nil
	}
	full := 1900 + year
	if year <= cutoff {
		full = 2000 + year
	}
	t := time.Date(full, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return &t
}
