package ppr

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/ppr/date"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Workbook columns, every sheet follows the same layout.
const (
	colName = iota
	colPrice
	colDate
	nCols
)

// MalformedInputError reports a workbook that cannot be read as rows of quotes at all.
type MalformedInputError struct {
	Sheet string // empty when the whole file is unreadable
	Err   error
}

func (e *MalformedInputError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("malformed workbook: %v", e.Err)
	}
	return fmt.Sprintf("malformed workbook: sheet %q: %v", e.Sheet, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// DecodeWorkbook reads all quotes from an xlsx workbook.
//
// Every sheet is read, the first row of each sheet is a header. Rows are
// returned in sheet then row order, incomplete rows included: see Quote.Valid.
//
// It fails with a *MalformedInputError if r is not a workbook, or if a sheet
// header has less than three columns.
func DecodeWorkbook(r io.Reader) ([]Quote, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &MalformedInputError{Err: err}
	}
	defer f.Close()

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	var quotes []Quote
	for _, sheet := range f.GetSheetList() {
		// Raw values: numbers as stored, not as displayed.
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, &MalformedInputError{Sheet: sheet, Err: err}
		}
		if len(rows) == 0 {
			continue
		}
		if len(rows[0]) < nCols {
			return nil, &MalformedInputError{Sheet: sheet, Err: fmt.Errorf("header has %d columns, want %d", len(rows[0]), nCols)}
		}
		for _, row := range rows[1:] {
			quotes = append(quotes, decodeRow(row, date1904))
		}
		log.Debug().Str("sheet", sheet).Int("rows", len(rows)-1).Msg("sheet decoded")
	}
	return quotes, nil
}

// decodeRow decodes a single row, fields that cannot be read are left missing.
func decodeRow(row []string, date1904 bool) (q Quote) {
	q.Name = strings.TrimSpace(cell(row, colName))
	if p, err := ParsePrice(cell(row, colPrice)); err == nil {
		q.Price = decimal.NewNullDecimal(p.Decimal())
	}
	if d, err := parseDay(cell(row, colDate), date1904); err == nil {
		q.Day = d
	}
	return q
}

// cell returns the i-th cell of row, rows are trimmed of their trailing empty cells.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// parseDay reads a date cell: either an Excel serial number, or a text date.
func parseDay(s string, date1904 bool) (date.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return date.Date{}, errors.New("empty date")
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < 1 {
			return date.Date{}, fmt.Errorf("invalid date serial %v", serial)
		}
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return date.Date{}, err
		}
		return date.FromTime(t), nil
	}
	if d, err := date.Parse(s); err == nil {
		return d, nil
	}
	if len(s) > 10 { // ISO timestamp
		if d, err := date.Parse(s[:10]); err == nil {
			return d, nil
		}
	}
	// Day first, as published by the fund manager.
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid date %q", s)
	}
	return date.FromTime(t), nil
}
