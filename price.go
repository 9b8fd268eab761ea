package ppr

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is a fund unit price.
//
// It keeps the digits it was read with: no rounding ever happens between the
// workbook and the reports. Prices always render with at least one fractional
// digit, so 98 renders as "98.0".
type Price struct{ d decimal.Decimal }

// NewPrice returns the price for d.
func NewPrice(d decimal.Decimal) Price { return Price{d} }

// ParsePrice parses a price in decimal notation.
// A decimal comma is accepted when there is no decimal point.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}, fmt.Errorf("empty price")
	}
	d, err := decimal.NewFromString(s)
	if err != nil && !strings.Contains(s, ".") {
		d, err = decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	}
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return Price{d}, nil
}

// MustParsePrice is like ParsePrice but panics on error.
func MustParsePrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// Decimal returns the price as a decimal.
func (p Price) Decimal() decimal.Decimal { return p.d }

// Equal reports whether p and x are the same amount.
func (p Price) Equal(x Price) bool { return p.d.Equal(x.d) }

// String returns the price with its stored digits.
func (p Price) String() string {
	s := p.d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// MarshalJSON writes the price as a JSON number with its stored digits.
func (p Price) MarshalJSON() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalJSON reads a price from a JSON number or string.
func (p *Price) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	p.d = d
	return nil
}

var _ json.Marshaler = Price{}
var _ json.Unmarshaler = (*Price)(nil)
