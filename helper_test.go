package ppr

import (
	"bytes"
	"testing"
	"time"

	"github.com/etnz/ppr/date"
	"github.com/xuri/excelize/v2"
)

// q is a helper for test to create a complete quote from constants.
func q(name, price, day string) Quote {
	return NewQuote(name, MustParsePrice(price), date.MustParse(day))
}

// day is a helper for test to build an excel cell date.
func day(s string) time.Time {
	d := date.MustParse(s)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// newWorkbook writes an in-memory xlsx file with one sheet per entry in
// sheets, each sheet starting with the standard header.
func newWorkbook(t *testing.T, sheets map[string][][]any, order ...string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				t.Fatalf("SetSheetName(%q): %v", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("NewSheet(%q): %v", name, err)
		}
		if err := f.SetSheetRow(name, "A1", &[]any{"PPR", "Valor", "Data"}); err != nil {
			t.Fatalf("SetSheetRow(header): %v", err)
		}
		for j, row := range sheets[name] {
			for k, v := range row {
				if v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(k+1, j+2)
				if err != nil {
					t.Fatalf("CoordinatesToCellName: %v", err)
				}
				if err := f.SetCellValue(name, cell, v); err != nil {
					t.Fatalf("SetCellValue(%s): %v", cell, err)
				}
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		t.Fatalf("cannot write workbook: %v", err)
	}
	return buf
}
