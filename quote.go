package ppr

import (
	"github.com/etnz/ppr/date"
	"github.com/shopspring/decimal"
)

// Quote is a single row of the workbook: the price of a fund on a given day.
//
// Any field may be missing: an empty Name, an invalid Price or a zero Day.
type Quote struct {
	Name  string
	Price decimal.NullDecimal
	Day   date.Date
}

// NewQuote returns a complete Quote.
func NewQuote(name string, price Price, day date.Date) Quote {
	return Quote{Name: name, Price: decimal.NewNullDecimal(price.Decimal()), Day: day}
}

// Valid reports whether the quote has all its fields.
func (q Quote) Valid() bool {
	return q.Name != "" && q.Price.Valid && !q.Day.IsZero()
}
