package importer

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/autoparts-eu/brakecat/internal/models"
)

// memProductStore is an in-memory ProductStore so pipeline tests run
// without Postgres. Records are stored cloned, like a real store would.
type memProductStore struct {
	records map[string]models.Product
	failOn  map[string]error
}

func newMemProductStore() *memProductStore {
	return &memProductStore{
		records: make(map[string]models.Product),
		failOn:  make(map[string]error),
	}
}

func (s *memProductStore) Find(pt *models.ProductType, code string) (models.Product, error) {
	rec, ok := s.records[pt.Tag+"/"+code]
	if !ok {
		return nil, nil
	}
	return rec.Clone(), nil
}

func (s *memProductStore) Upsert(p models.Product) error {
	code := p.Base().Code
	if err, ok := s.failOn[code]; ok {
		return err
	}
	s.records[tagOf(p)+"/"+code] = p.Clone()
	return nil
}

func tagOf(p models.Product) string {
	for _, pt := range models.ProductTypes {
		if pt.Table == p.TableName() {
			return pt.Tag
		}
	}
	return ""
}

func discType(t *testing.T) *models.ProductType {
	t.Helper()
	pt := models.ProductTypeByTag("disc")
	if pt == nil {
		t.Fatal("disc type not registered")
	}
	return pt
}

func TestImportProductRowsCreatesDisc(t *testing.T) {
	store := newMemProductStore()
	pt := discType(t)

	headers := []string{"part_number", "diameter", "axle"}
	rows := []map[string]string{
		{"part_number": "D100", "diameter": "280", "axle": "front"},
	}

	sum, err := ImportProductRows(store, pt, headers, rows, ProductOptions{})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if sum.Created != 1 || sum.Updated != 0 || sum.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	rec, err := store.Find(pt, "D100")
	if err != nil || rec == nil {
		t.Fatalf("stored disc not found: %v", err)
	}
	disc := rec.(*models.Disc)
	if disc.Code != "D100" {
		t.Errorf("code = %q", disc.Code)
	}
	if disc.DiameterMM == nil || disc.DiameterMM.String() != "280" {
		t.Errorf("diameter = %v, want 280", disc.DiameterMM)
	}
	if disc.Axle == nil || *disc.Axle != models.AxleFront {
		t.Errorf("axle = %v, want F", disc.Axle)
	}
	// no side column in the file, so the axle code becomes the side
	if disc.AssemblySide != models.AxleFront {
		t.Errorf("assembly side = %q, want F", disc.AssemblySide)
	}
	// no stock and no price
	if disc.Available {
		t.Error("disc should not be available without price or stock")
	}
}

func TestImportProductRowsIdempotent(t *testing.T) {
	store := newMemProductStore()
	pt := discType(t)

	headers := []string{"part_number", "diameter", "mpc", "qty"}
	rows := []map[string]string{
		{"part_number": "D100", "diameter": "280", "mpc": "12,50 €", "qty": "3"},
	}

	first, err := ImportProductRows(store, pt, headers, rows, ProductOptions{})
	if err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	if first.Created != 1 {
		t.Fatalf("first summary: %+v", first)
	}

	second, err := ImportProductRows(store, pt, headers, rows, ProductOptions{})
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if second.Unchanged != 1 || second.Created != 0 || second.Updated != 0 {
		t.Fatalf("re-import should be unchanged, got %+v", second)
	}
}

func TestImportProductRowsUpdatesInPlace(t *testing.T) {
	store := newMemProductStore()
	pt := discType(t)

	_, err := ImportProductRows(store, pt,
		[]string{"part_number", "diameter", "qty"},
		[]map[string]string{{"part_number": "D100", "diameter": "280", "qty": "5"}},
		ProductOptions{})
	if err != nil {
		t.Fatalf("seed import failed: %v", err)
	}

	// second file has no diameter column; the stored diameter must survive
	sum, err := ImportProductRows(store, pt,
		[]string{"part_number", "qty"},
		[]map[string]string{{"part_number": "D100", "qty": "7"}},
		ProductOptions{})
	if err != nil {
		t.Fatalf("update import failed: %v", err)
	}
	if sum.Updated != 1 {
		t.Fatalf("summary: %+v", sum)
	}

	rec, _ := store.Find(pt, "D100")
	disc := rec.(*models.Disc)
	if disc.Quantity != 7 {
		t.Errorf("quantity = %d, want 7", disc.Quantity)
	}
	if disc.DiameterMM == nil || disc.DiameterMM.String() != "280" {
		t.Errorf("diameter lost on update: %v", disc.DiameterMM)
	}
}

func TestImportProductRowsAvailability(t *testing.T) {
	store := newMemProductStore()
	pt := discType(t)

	headers := []string{"part_number", "mpc", "qty"}
	rows := []map[string]string{
		{"part_number": "A1", "mpc": "9,90", "qty": "0"},
		{"part_number": "A2", "mpc": "", "qty": "4"},
		{"part_number": "A3", "mpc": "", "qty": "0"},
		{"part_number": "A4", "mpc": "0.00", "qty": "0"},
	}

	if _, err := ImportProductRows(store, pt, headers, rows, ProductOptions{}); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	wantAvailable := map[string]bool{
		"A1": true,  // priced
		"A2": true,  // stocked
		"A3": false, // neither
		"A4": true,  // a price of 0.00 still counts as priced
	}
	for code, want := range wantAvailable {
		rec, _ := store.Find(pt, code)
		if rec == nil {
			t.Fatalf("%s not stored", code)
		}
		if got := rec.Base().Available; got != want {
			t.Errorf("%s available = %v, want %v", code, got, want)
		}
	}
}

func TestImportProductRowsSkipsMissingCode(t *testing.T) {
	store := newMemProductStore()
	pt := discType(t)

	sum, err := ImportProductRows(store, pt,
		[]string{"part_number", "diameter"},
		[]map[string]string{
			{"part_number": "", "diameter": "300"},
			{"part_number": "D2", "diameter": "250"},
		},
		ProductOptions{})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if sum.Skipped != 1 || sum.Created != 1 || sum.Total != 2 {
		t.Fatalf("summary: %+v", sum)
	}
}

func TestImportProductRowsStoreErrorDegradesToSkip(t *testing.T) {
	store := newMemProductStore()
	store.failOn["D1"] = errors.New("duplicate key value violates unique constraint")
	pt := discType(t)

	sum, err := ImportProductRows(store, pt,
		[]string{"part_number", "ean"},
		[]map[string]string{
			{"part_number": "D1", "ean": "4006633123457"},
			{"part_number": "D2", "ean": "4006633123458"},
		},
		ProductOptions{})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if sum.Skipped != 1 || sum.Created != 1 {
		t.Fatalf("summary: %+v", sum)
	}
}

func TestImportProductRowsDryRunCountersMatch(t *testing.T) {
	pt := discType(t)
	headers := []string{"part_number", "diameter", "mpc"}
	rows := []map[string]string{
		{"part_number": "D100", "diameter": "280", "mpc": "12,50"},
		{"part_number": "D200", "diameter": "300", "mpc": "14,00"},
		{"part_number": "", "diameter": "260", "mpc": "1,00"},
	}

	wet := newMemProductStore()
	wetSum, err := ImportProductRows(wet, pt, headers, rows, ProductOptions{})
	if err != nil {
		t.Fatalf("wet run failed: %v", err)
	}

	dry := newMemProductStore()
	drySum, err := ImportProductRows(dry, pt, headers, rows, ProductOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}

	if drySum != wetSum {
		t.Errorf("dry counters %+v differ from wet counters %+v", drySum, wetSum)
	}
	if len(dry.records) != 0 {
		t.Errorf("dry run persisted %d records", len(dry.records))
	}
}

func TestImportProductRowsDryRunRepeatedCode(t *testing.T) {
	pt := discType(t)
	headers := []string{"part_number", "diameter"}
	// the same code appears twice with different values, so a real run
	// creates once and updates once
	rows := []map[string]string{
		{"part_number": "D100", "diameter": "280"},
		{"part_number": "D100", "diameter": "300"},
		{"part_number": "D100", "diameter": "300"},
	}

	wet := newMemProductStore()
	wetSum, err := ImportProductRows(wet, pt, headers, rows, ProductOptions{})
	if err != nil {
		t.Fatalf("wet run failed: %v", err)
	}
	if wetSum.Created != 1 || wetSum.Updated != 1 || wetSum.Unchanged != 1 {
		t.Fatalf("wet summary: %+v", wetSum)
	}

	dry := newMemProductStore()
	drySum, err := ImportProductRows(dry, pt, headers, rows, ProductOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if drySum != wetSum {
		t.Errorf("dry counters %+v differ from wet counters %+v", drySum, wetSum)
	}
	if len(dry.records) != 0 {
		t.Errorf("dry run persisted %d records", len(dry.records))
	}
}

func TestEqualProductsDecimalScale(t *testing.T) {
	pt := discType(t)

	stored := pt.New().(*models.Disc)
	stored.Code = "D100"
	stored.Price = decimalPtr(t, "12.50") // numeric(10,2) scale from the store
	stored.DiameterMM = decimalPtr(t, "280.00")

	parsed := pt.New().(*models.Disc)
	parsed.Code = "D100"
	parsed.Price = decimalPtr(t, "12.5")
	parsed.DiameterMM = decimalPtr(t, "280")

	if !equalProducts(stored, parsed) {
		t.Error("same values at different decimal scale must compare equal")
	}

	parsed.Price = decimalPtr(t, "12.55")
	if equalProducts(stored, parsed) {
		t.Error("different prices must not compare equal")
	}
}

func decimalPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return &d
}
