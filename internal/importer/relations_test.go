package importer

import (
	"testing"

	"github.com/autoparts-eu/brakecat/internal/models"
)

// Fake resolvers keyed by plain maps; tag order mirrors the registries.

type memProductResolver struct {
	codes map[string]string // code -> product type tag
}

func (r *memProductResolver) ResolveCode(code string) (string, bool, error) {
	tag, ok := r.codes[code]
	return tag, ok, nil
}

type memVehicleResolver struct {
	ids map[int64][]string // external id -> vehicle tags in registry order
}

func (r *memVehicleResolver) ResolveID(id int64) ([]string, error) {
	return r.ids[id], nil
}

// memLinkSink records links with exact duplicate accounting.
type memLinkSink struct {
	links map[models.FitmentLink]struct{}
}

func newMemLinkSink() *memLinkSink {
	return &memLinkSink{links: make(map[models.FitmentLink]struct{})}
}

func (s *memLinkSink) Insert(l models.FitmentLink) (LinkOutcome, error) {
	if _, ok := s.links[l]; ok {
		return LinkDuplicate, nil
	}
	s.links[l] = struct{}{}
	return LinkCreated, nil
}

func (s *memLinkSink) Flush() (int, int, error) { return 0, 0, nil }

// memDeferredSink buffers every insert and accounts for all of them at
// Flush, like the batched store sink does.
type memDeferredSink struct {
	links     map[models.FitmentLink]struct{}
	attempted int
}

func newMemDeferredSink() *memDeferredSink {
	return &memDeferredSink{links: make(map[models.FitmentLink]struct{})}
}

func (s *memDeferredSink) Insert(l models.FitmentLink) (LinkOutcome, error) {
	s.attempted++
	s.links[l] = struct{}{}
	return LinkDeferred, nil
}

func (s *memDeferredSink) Flush() (int, int, error) {
	created := len(s.links)
	return created, s.attempted - created, nil
}

var relationHeaders = []string{"code", "type_id"}

func relationRow(code, typeID string) map[string]string {
	return map[string]string{"code": code, "type_id": typeID}
}

func TestImportRelationRowsPreferFirst(t *testing.T) {
	products := &memProductResolver{codes: map[string]string{"D100": "disc"}}
	// external id 42 exists as both a car and a commercial vehicle
	vehicles := &memVehicleResolver{ids: map[int64][]string{
		42: {models.VehicleTagCar, models.VehicleTagCV},
	}}
	sink := newMemLinkSink()

	sum, err := ImportRelationRows(products, vehicles, sink, relationHeaders,
		[]map[string]string{relationRow("D100", "42")},
		RelationOptions{Prefer: PreferFirst})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if sum.Created != 1 {
		t.Fatalf("summary: %+v", sum)
	}

	want := models.FitmentLink{ProductType: "disc", ProductCode: "D100", VehicleType: models.VehicleTagCar, VehicleID: 42}
	if _, ok := sink.links[want]; !ok {
		t.Errorf("expected a car link, got %v", sink.links)
	}
	if len(sink.links) != 1 {
		t.Errorf("prefer first created %d links, want 1", len(sink.links))
	}
}

func TestImportRelationRowsPreferLast(t *testing.T) {
	products := &memProductResolver{codes: map[string]string{"D100": "disc"}}
	vehicles := &memVehicleResolver{ids: map[int64][]string{
		42: {models.VehicleTagCar, models.VehicleTagCV},
	}}
	sink := newMemLinkSink()

	sum, err := ImportRelationRows(products, vehicles, sink, relationHeaders,
		[]map[string]string{relationRow("D100", "42")},
		RelationOptions{Prefer: PreferLast})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if sum.Created != 1 {
		t.Fatalf("summary: %+v", sum)
	}

	want := models.FitmentLink{ProductType: "disc", ProductCode: "D100", VehicleType: models.VehicleTagCV, VehicleID: 42}
	if _, ok := sink.links[want]; !ok {
		t.Errorf("expected a commercial vehicle link, got %v", sink.links)
	}
}

func TestImportRelationRowsPreferAll(t *testing.T) {
	products := &memProductResolver{codes: map[string]string{"D100": "disc"}}
	vehicles := &memVehicleResolver{ids: map[int64][]string{
		42: {models.VehicleTagCar, models.VehicleTagCV},
	}}
	sink := newMemLinkSink()

	sum, err := ImportRelationRows(products, vehicles, sink, relationHeaders,
		[]map[string]string{relationRow("D100", "42")},
		RelationOptions{Prefer: PreferAll})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if sum.Created != 2 || len(sink.links) != 2 {
		t.Fatalf("prefer all: summary %+v, links %d", sum, len(sink.links))
	}
}

func TestImportRelationRowsDuplicateSuppression(t *testing.T) {
	products := &memProductResolver{codes: map[string]string{"D100": "disc"}}
	vehicles := &memVehicleResolver{ids: map[int64][]string{42: {models.VehicleTagCar}}}
	sink := newMemLinkSink()

	rows := []map[string]string{
		relationRow("D100", "42"),
		relationRow("D100", "42"),
	}
	sum, err := ImportRelationRows(products, vehicles, sink, relationHeaders, rows, RelationOptions{})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if sum.Created != 1 || sum.Duplicates != 1 {
		t.Fatalf("summary: %+v", sum)
	}
}

func TestImportRelationRowsDeferredSinkCounters(t *testing.T) {
	products := &memProductResolver{codes: map[string]string{"D100": "disc", "D200": "disc"}}
	vehicles := &memVehicleResolver{ids: map[int64][]string{42: {models.VehicleTagCar}}}

	// two brand-new links must not show up as duplicates
	sink := newMemDeferredSink()
	sum, err := ImportRelationRows(products, vehicles, sink, relationHeaders,
		[]map[string]string{relationRow("D100", "42"), relationRow("D200", "42")},
		RelationOptions{UseBulk: true})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if sum.Created != 2 || sum.Duplicates != 0 {
		t.Fatalf("summary: %+v", sum)
	}

	// a repeated row is accounted for once, at flush
	sink = newMemDeferredSink()
	sum, err = ImportRelationRows(products, vehicles, sink, relationHeaders,
		[]map[string]string{relationRow("D100", "42"), relationRow("D100", "42")},
		RelationOptions{UseBulk: true})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if sum.Created != 1 || sum.Duplicates != 1 {
		t.Fatalf("summary: %+v", sum)
	}
}

func TestImportRelationRowsSkipCounters(t *testing.T) {
	products := &memProductResolver{codes: map[string]string{"D100": "disc"}}
	vehicles := &memVehicleResolver{ids: map[int64][]string{42: {models.VehicleTagCar}}}
	sink := newMemLinkSink()

	rows := []map[string]string{
		relationRow("", "42"),        // no code
		relationRow("UNKNOWN", "42"), // code in no product table
		relationRow("D100", "x"),     // unparseable id
		relationRow("D100", "99"),    // id in no vehicle table
		relationRow("D100", "42"),    // good
	}
	sum, err := ImportRelationRows(products, vehicles, sink, relationHeaders, rows, RelationOptions{})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if sum.Total != 5 || sum.Created != 1 || sum.SkippedProduct != 2 || sum.SkippedVehicle != 2 {
		t.Fatalf("summary: %+v", sum)
	}
}

func TestImportRelationRowsMissingColumnsFatal(t *testing.T) {
	sink := newMemLinkSink()
	_, err := ImportRelationRows(
		&memProductResolver{codes: map[string]string{}},
		&memVehicleResolver{ids: map[int64][]string{}},
		sink,
		[]string{"code", "vehicle"}, // no type_id column
		nil,
		RelationOptions{})
	if err == nil {
		t.Fatal("expected a batch-fatal error for the missing type_id column")
	}
}

func TestImportRelationRowsUnknownPreferenceFatal(t *testing.T) {
	sink := newMemLinkSink()
	_, err := ImportRelationRows(
		&memProductResolver{codes: map[string]string{}},
		&memVehicleResolver{ids: map[int64][]string{}},
		sink, relationHeaders, nil,
		RelationOptions{Prefer: "newest"})
	if err == nil {
		t.Fatal("expected an error for an unknown preference policy")
	}
}

func TestImportRelationRowsHeaderCaseInsensitive(t *testing.T) {
	products := &memProductResolver{codes: map[string]string{"D100": "disc"}}
	vehicles := &memVehicleResolver{ids: map[int64][]string{42: {models.VehicleTagCar}}}
	sink := newMemLinkSink()

	headers := []string{"Code", "TYPE_ID"}
	rows := []map[string]string{{"Code": "D100", "TYPE_ID": "42"}}

	sum, err := ImportRelationRows(products, vehicles, sink, headers, rows, RelationOptions{})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if sum.Created != 1 {
		t.Fatalf("summary: %+v", sum)
	}
}
