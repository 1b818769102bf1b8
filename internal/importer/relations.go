package importer

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/autoparts-eu/brakecat/internal/models"
)

// Vehicle preference policies for external ids that exist in more than one
// vehicle variant store.
const (
	PreferFirst = "first" // earliest-registered variant wins
	PreferLast  = "last"  // latest-registered variant wins
	PreferAll   = "all"   // link every matching variant
)

// ProductResolver finds which product variant owns a code. Variants are
// searched in registry order; when the same code exists in two variants the
// earlier-registered one silently wins (documented limitation).
type ProductResolver interface {
	ResolveCode(code string) (tag string, found bool, err error)
}

// VehicleResolver returns the variant tags holding a given external id, in
// registry order.
type VehicleResolver interface {
	ResolveID(id int64) ([]string, error)
}

// LinkOutcome reports what became of one inserted link.
type LinkOutcome int

const (
	LinkCreated LinkOutcome = iota
	LinkDuplicate
	LinkDeferred // buffered; accounted for at Flush
)

// LinkSink receives resolved fitment links. Insert honors the uniqueness
// invariant; a duplicate reports LinkDuplicate rather than an error. Bulk
// implementations buffer rows, report LinkDeferred, and account for them at
// Flush, where the duplicate count is approximate by design.
type LinkSink interface {
	Insert(l models.FitmentLink) (LinkOutcome, error)
	Flush() (created, duplicates int, err error)
}

// RelationOptions controls one relation import run.
type RelationOptions struct {
	DryRun    bool
	Prefer    string // first, last or all
	UseBulk   bool
	BatchSize int
}

// RelationSummary is the per-run outcome report. Counters are exact in
// per-row mode and approximate in bulk mode.
type RelationSummary struct {
	Total          int `json:"total"`
	Created        int `json:"created"`
	Duplicates     int `json:"duplicates"`
	SkippedProduct int `json:"skippedProductMissing"`
	SkippedVehicle int `json:"skippedVehicleMissing"`
}

// ImportRelationRows resolves each (code, type_id) row into fitment links.
func ImportRelationRows(products ProductResolver, vehicles VehicleResolver, sink LinkSink, headers []string, rows []map[string]string, opts RelationOptions) (RelationSummary, error) {
	var sum RelationSummary

	codeCol, typeCol := "", ""
	for _, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "code":
			codeCol = h
		case "type_id":
			typeCol = h
		}
	}
	if codeCol == "" || typeCol == "" {
		return sum, fmt.Errorf("relations CSV missing required columns code, type_id (found: %s)", strings.Join(headers, ", "))
	}

	prefer := opts.Prefer
	if prefer == "" {
		prefer = PreferFirst
	}
	if prefer != PreferFirst && prefer != PreferLast && prefer != PreferAll {
		return sum, fmt.Errorf("unknown preference policy %q", prefer)
	}

	for _, row := range rows {
		sum.Total++
		code := strings.TrimSpace(row[codeCol])
		if code == "" {
			sum.SkippedProduct++
			continue
		}
		typeID, err := strconv.ParseInt(strings.TrimSpace(row[typeCol]), 10, 64)
		if err != nil {
			sum.SkippedVehicle++
			continue
		}

		tag, found, err := products.ResolveCode(code)
		if err != nil {
			return sum, fmt.Errorf("resolve product %q: %w", code, err)
		}
		if !found {
			sum.SkippedProduct++
			continue
		}

		vtags, err := vehicles.ResolveID(typeID)
		if err != nil {
			return sum, fmt.Errorf("resolve vehicle %d: %w", typeID, err)
		}
		if len(vtags) == 0 {
			sum.SkippedVehicle++
			continue
		}
		switch prefer {
		case PreferFirst:
			vtags = vtags[:1]
		case PreferLast:
			vtags = vtags[len(vtags)-1:]
		}

		for _, vtag := range vtags {
			link := models.FitmentLink{
				ProductType: tag,
				ProductCode: code,
				VehicleType: vtag,
				VehicleID:   typeID,
			}
			if err := models.ValidateLink(link); err != nil {
				return sum, err
			}
			outcome, err := sink.Insert(link)
			if err != nil {
				return sum, fmt.Errorf("insert link %s/%s -> %s/%d: %w", tag, code, vtag, typeID, err)
			}
			switch outcome {
			case LinkCreated:
				sum.Created++
			case LinkDuplicate:
				sum.Duplicates++
			}
		}
	}

	created, dups, err := sink.Flush()
	if err != nil {
		return sum, fmt.Errorf("flush links: %w", err)
	}
	sum.Created += created
	sum.Duplicates += dups
	return sum, nil
}

// ImportRelationsFile imports one relations CSV against the live stores.
func ImportRelationsFile(db *gorm.DB, path string, opts RelationOptions) (RelationSummary, error) {
	headers, rows, err := ReadCSVFile(path)
	if err != nil {
		return RelationSummary{}, err
	}

	log.Printf("🔗 Importing relations from %s (%d rows)...", path, len(rows))

	var sum RelationSummary
	run := func(tx *gorm.DB) error {
		var sink LinkSink
		switch {
		case opts.DryRun:
			sink = newDryLinkSink(tx)
		case opts.UseBulk:
			sink = newBulkLinkSink(tx, opts.BatchSize)
		default:
			sink = &gormLinkSink{db: tx}
		}
		var txErr error
		sum, txErr = ImportRelationRows(&gormProductResolver{db: tx}, &gormVehicleResolver{db: tx}, sink, headers, rows, opts)
		return txErr
	}

	if opts.DryRun {
		err = run(db)
	} else {
		err = db.Transaction(run)
	}
	if err != nil {
		return sum, err
	}

	log.Println("---- Relations import summary ----")
	log.Printf("Rows read:             %d", sum.Total)
	log.Printf("Created relations:     %d", sum.Created)
	log.Printf("Skipped (no product):  %d", sum.SkippedProduct)
	log.Printf("Skipped (no vehicle):  %d", sum.SkippedVehicle)
	if opts.DryRun {
		log.Println("Dry-run: no changes written.")
	} else {
		log.Printf("Duplicates (existing): %d", sum.Duplicates)
	}
	return sum, nil
}

type gormProductResolver struct {
	db *gorm.DB
}

func (r *gormProductResolver) ResolveCode(code string) (string, bool, error) {
	for _, pt := range models.ProductTypes {
		var n int64
		if err := r.db.Table(pt.Table).Where("code = ?", code).Count(&n).Error; err != nil {
			return "", false, err
		}
		if n > 0 {
			return pt.Tag, true, nil
		}
	}
	return "", false, nil
}

type gormVehicleResolver struct {
	db *gorm.DB
}

func (r *gormVehicleResolver) ResolveID(id int64) ([]string, error) {
	var tags []string
	for _, vt := range models.VehicleTypes {
		ok, err := vt.Exists(r.db, id)
		if err != nil {
			return nil, err
		}
		if ok {
			tags = append(tags, vt.Tag)
		}
	}
	return tags, nil
}

// gormLinkSink inserts one link per row with insert-or-ignore semantics;
// duplicate accounting is exact.
type gormLinkSink struct {
	db *gorm.DB
}

func (s *gormLinkSink) Insert(l models.FitmentLink) (LinkOutcome, error) {
	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&l)
	if res.Error != nil {
		return LinkDuplicate, res.Error
	}
	if res.RowsAffected > 0 {
		return LinkCreated, nil
	}
	return LinkDuplicate, nil
}

func (s *gormLinkSink) Flush() (int, int, error) { return 0, 0, nil }

// bulkLinkSink buffers links and flushes them with conflict-ignore at the
// configured batch size. Conflicts are swallowed by the store, so the
// duplicate count is attempted-minus-created.
type bulkLinkSink struct {
	db        *gorm.DB
	batchSize int
	bucket    []models.FitmentLink
	created   int
	dups      int
}

func newBulkLinkSink(db *gorm.DB, batchSize int) *bulkLinkSink {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &bulkLinkSink{db: db, batchSize: batchSize}
}

func (s *bulkLinkSink) Insert(l models.FitmentLink) (LinkOutcome, error) {
	s.bucket = append(s.bucket, l)
	if len(s.bucket) >= s.batchSize {
		if err := s.flushBucket(); err != nil {
			return LinkDeferred, err
		}
	}
	// per-link attribution is unavailable in bulk mode
	return LinkDeferred, nil
}

func (s *bulkLinkSink) Flush() (int, int, error) {
	if err := s.flushBucket(); err != nil {
		return 0, 0, err
	}
	created, dups := s.created, s.dups
	s.created, s.dups = 0, 0
	return created, dups, nil
}

// dryLinkSink counts what a per-row run would do without writing: a link
// already stored, or repeated within the same file, counts as a duplicate.
type dryLinkSink struct {
	db   *gorm.DB
	seen map[models.FitmentLink]struct{}
}

func newDryLinkSink(db *gorm.DB) *dryLinkSink {
	return &dryLinkSink{db: db, seen: make(map[models.FitmentLink]struct{})}
}

func (s *dryLinkSink) Insert(l models.FitmentLink) (LinkOutcome, error) {
	key := l
	key.ID = 0
	if _, ok := s.seen[key]; ok {
		return LinkDuplicate, nil
	}
	var n int64
	err := s.db.Model(&models.FitmentLink{}).
		Where("product_type = ? AND product_code = ? AND vehicle_type = ? AND vehicle_id = ?",
			l.ProductType, l.ProductCode, l.VehicleType, l.VehicleID).
		Count(&n).Error
	if err != nil {
		return LinkDuplicate, err
	}
	if n > 0 {
		return LinkDuplicate, nil
	}
	s.seen[key] = struct{}{}
	return LinkCreated, nil
}

func (s *dryLinkSink) Flush() (int, int, error) { return 0, 0, nil }

func (s *bulkLinkSink) flushBucket() error {
	if len(s.bucket) == 0 {
		return nil
	}
	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&s.bucket)
	if res.Error != nil {
		return res.Error
	}
	s.created += int(res.RowsAffected)
	s.dups += len(s.bucket) - int(res.RowsAffected)
	s.bucket = s.bucket[:0]
	return nil
}
