package importer

import (
	"strings"
	"testing"
)

func TestReadCSVShortRowsPadded(t *testing.T) {
	in := "code,diameter,price\nD1,280\nD2,300,12.50\n"
	headers, rows, err := readCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readCSV failed: %v", err)
	}
	if len(headers) != 3 || len(rows) != 2 {
		t.Fatalf("got %d headers, %d rows", len(headers), len(rows))
	}
	if rows[0]["price"] != "" {
		t.Errorf("short row price = %q, want empty", rows[0]["price"])
	}
	if rows[1]["price"] != "12.50" {
		t.Errorf("price = %q", rows[1]["price"])
	}
}

func TestReadCSVRequiresHeader(t *testing.T) {
	if _, _, err := readCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected an error for a missing header row")
	}
}

func TestReadCSVTolerantOfLongRows(t *testing.T) {
	in := "code,diameter\nD1,280,extra,cells\n"
	_, rows, err := readCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readCSV failed: %v", err)
	}
	if rows[0]["code"] != "D1" || rows[0]["diameter"] != "280" {
		t.Errorf("row = %v", rows[0])
	}
}
