package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/autoparts-eu/brakecat/internal/models"
)

// ProductStore is the slice of the relational store the product pipeline
// needs. The GORM implementation is used in production; tests substitute
// an in-memory map.
type ProductStore interface {
	// Find returns the stored record for a code, or nil when absent.
	Find(pt *models.ProductType, code string) (models.Product, error)
	// Upsert inserts or updates the record keyed by its code.
	Upsert(p models.Product) error
}

// ProductOptions controls one product import run.
type ProductOptions struct {
	DryRun bool
}

// ProductSummary is the per-run outcome report. Dry runs produce the same
// counts as real runs minus persistence.
type ProductSummary struct {
	Total     int `json:"total"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
}

// ImportProductRows runs the pipeline over already-parsed rows: alias
// resolution, normalization, upsert-by-code, type preprocessing and
// availability derivation.
func ImportProductRows(store ProductStore, pt *models.ProductType, headers []string, rows []map[string]string, opts ProductOptions) (ProductSummary, error) {
	var sum ProductSummary
	headerNorm := normalizedHeaders(headers)

	// a dry run keeps this pass's would-be writes in memory so a file that
	// repeats a code counts the same as in a real run
	var overlay map[string]models.Product
	if opts.DryRun {
		overlay = make(map[string]models.Product)
	}

	for _, row := range rows {
		sum.Total++

		rawCode, _ := resolveRaw(row, headerNorm, "code", pt.Aliases["code"])
		code := strings.TrimSpace(rawCode)
		if code == "" {
			log.Printf("[%s] skipping row %d: missing code", strings.ToUpper(pt.Tag), sum.Total)
			sum.Skipped++
			continue
		}

		fs := NormalizeRow(pt, row, headerNorm)
		if pt.PreProcess != nil {
			pt.PreProcess(fs)
		}

		existing, ok := overlay[code]
		if !ok {
			var err error
			existing, err = store.Find(pt, code)
			if err != nil {
				return sum, fmt.Errorf("lookup %s %q: %w", pt.Tag, code, err)
			}
		}

		var rec models.Product
		creating := existing == nil
		if creating {
			rec = pt.New()
			rec.Base().Code = code
		} else {
			rec = existing
		}
		prev := rec.Clone()

		rec.Apply(fs)
		rec.Base().RecomputeAvailable()

		if !creating && equalProducts(prev, rec) {
			sum.Unchanged++
			continue
		}

		if opts.DryRun {
			overlay[code] = rec
		} else if err := store.Upsert(rec); err != nil {
			// uniqueness collisions (EAN) degrade to a row skip
			log.Printf("[%s] skipping %q: %v", strings.ToUpper(pt.Tag), code, err)
			sum.Skipped++
			continue
		}
		if creating {
			sum.Created++
		} else {
			sum.Updated++
		}
	}
	return sum, nil
}

// ImportProductsFile imports one product CSV for one variant. The whole
// file commits in a single transaction; a dry run performs every step but
// persistence and reports identical counters.
func ImportProductsFile(db *gorm.DB, pt *models.ProductType, path string, opts ProductOptions) (ProductSummary, error) {
	if pt == nil {
		return ProductSummary{}, errors.New("no product type selected")
	}
	headers, rows, err := ReadCSVFile(path)
	if err != nil {
		return ProductSummary{}, err
	}

	log.Printf("📦 Importing %s from %s (%d rows)...", pt.Label, path, len(rows))

	var sum ProductSummary
	if opts.DryRun {
		sum, err = ImportProductRows(&gormProductStore{db: db}, pt, headers, rows, opts)
	} else {
		err = db.Transaction(func(tx *gorm.DB) error {
			var txErr error
			sum, txErr = ImportProductRows(&gormProductStore{db: tx}, pt, headers, rows, opts)
			return txErr
		})
	}
	if err != nil {
		return sum, err
	}

	logSummary(pt.Label, opts.DryRun, sum)
	return sum, nil
}

func logSummary(label string, dryRun bool, sum ProductSummary) {
	log.Printf("---- %s import summary ----", label)
	log.Printf("Rows read:  %d", sum.Total)
	log.Printf("Created:    %d", sum.Created)
	log.Printf("Updated:    %d", sum.Updated)
	log.Printf("Unchanged:  %d", sum.Unchanged)
	log.Printf("Skipped:    %d", sum.Skipped)
	if dryRun {
		log.Println("Dry-run: no changes written.")
	}
}

// equalProducts compares records via their JSON form. Decimal columns come
// back from Postgres with fixed scale ("12.50" for a parsed "12.5"), so
// string fields that both carry a decimal point compare by numeric value;
// otherwise re-imports of an unchanged file would never short-circuit.
func equalProducts(a, b models.Product) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	if bytes.Equal(aj, bj) {
		return true
	}
	var av, bv interface{}
	if json.Unmarshal(aj, &av) != nil || json.Unmarshal(bj, &bv) != nil {
		return false
	}
	return equalJSONValues(av, bv)
}

func equalJSONValues(a, b interface{}) bool {
	switch x := a.(type) {
	case map[string]interface{}:
		y, ok := b.(map[string]interface{})
		if !ok || len(x) != len(y) {
			return false
		}
		for k, v := range x {
			w, ok := y[k]
			if !ok || !equalJSONValues(v, w) {
				return false
			}
		}
		return true
	case []interface{}:
		y, ok := b.([]interface{})
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equalJSONValues(x[i], y[i]) {
				return false
			}
		}
		return true
	case string:
		y, ok := b.(string)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		// codes and EANs have no decimal point and never reach the
		// numeric comparison
		if !strings.Contains(x, ".") && !strings.Contains(y, ".") {
			return false
		}
		xd, errX := decimal.NewFromString(x)
		yd, errY := decimal.NewFromString(y)
		return errX == nil && errY == nil && xd.Equal(yd)
	default:
		return a == b
	}
}

type gormProductStore struct {
	db *gorm.DB
}

func (s *gormProductStore) Find(pt *models.ProductType, code string) (models.Product, error) {
	rec := pt.New()
	err := s.db.Where("code = ?", code).First(rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *gormProductStore) Upsert(p models.Product) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		UpdateAll: true,
	}).Create(p).Error
}
