package importer

import (
	"strings"
	"testing"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"EAN-Code ", "ean code"},
		{"ean code", "ean code"},
		{"Diameter Ø", "diameter"},
		{"  Part_Number ", "part number"},
		{"number of holes (c)", "number of holes c"},
	}
	for _, tt := range tests {
		if got := NormalizeHeader(tt.raw); got != tt.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestBuildHeaderMapCanonicalWinsOverAlias(t *testing.T) {
	headers := []string{"code", "part_number", "EAN-Code"}
	aliases := map[string][]string{
		"code": {"part_number", "pn"},
		"ean":  {"ean code", "ean_code"},
	}

	m := BuildHeaderMap(headers, aliases)
	if m["code"] != "code" {
		t.Errorf("code mapped to %q, want the canonical header", m["code"])
	}
	if m["ean"] != "EAN-Code" {
		t.Errorf("ean mapped to %q, want EAN-Code", m["ean"])
	}
}

func TestBuildHeaderMapFirstAliasWins(t *testing.T) {
	headers := []string{"pn", "part_number"}
	aliases := map[string][]string{
		"code": {"part_number", "pn"},
	}
	m := BuildHeaderMap(headers, aliases)
	if m["code"] != "part_number" {
		t.Errorf("code mapped to %q, want part_number (earlier alias)", m["code"])
	}
}

func TestBuildHeaderMapDeterministic(t *testing.T) {
	headers := []string{"Part_Number", "Diameter Ø", "qty", "MPC"}
	aliases := map[string][]string{
		"code":        {"part_number", "pn"},
		"diameter_mm": {"diameter Ø", "diameter"},
		"quantity":    {"qty", "stock"},
		"price":       {"mpc", "final price"},
	}

	first := BuildHeaderMap(headers, aliases)
	for i := 0; i < 20; i++ {
		again := BuildHeaderMap(headers, aliases)
		if len(again) != len(first) {
			t.Fatalf("run %d: map size changed: %d vs %d", i, len(again), len(first))
		}
		for k, v := range first {
			if again[k] != v {
				t.Fatalf("run %d: %s mapped to %q, previously %q", i, k, again[k], v)
			}
		}
	}
}

func TestResolveRawPrefersNonEmptyCell(t *testing.T) {
	headers := []string{"part_number", "pn"}
	row := map[string]string{"part_number": "", "pn": "X200"}

	v, present := resolveRaw(row, normalizedHeaders(headers), "code", []string{"part_number", "pn"})
	if !present {
		t.Fatal("column set should be reported present")
	}
	if strings.TrimSpace(v) != "X200" {
		t.Errorf("resolveRaw = %q, want X200", v)
	}
}

func TestResolveRawAbsentColumn(t *testing.T) {
	headers := []string{"price"}
	row := map[string]string{"price": "10"}

	_, present := resolveRaw(row, normalizedHeaders(headers), "code", []string{"part_number"})
	if present {
		t.Error("code column should be reported absent")
	}
}
