package ppr

import (
	"iter"
	"slices"

	"github.com/etnz/ppr/date"
	"github.com/rs/zerolog/log"
)

// Point is a price on a given day.
type Point struct {
	Day   date.Date
	Value Price
}

// Instrument is the price history of a single fund.
type Instrument struct {
	Name   string
	Series date.History[Price] // in workbook order
	// Current is the point of Series with the most recent day.
	Current Point
}

// Histories maps fund names to their Instrument.
//
// Every Instrument in Histories has at least one point.
type Histories map[string]*Instrument

// Names returns the fund names in alphabetical order.
func (h Histories) Names() []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the Instrument called name, or nil.
func (h Histories) Get(name string) *Instrument { return h[name] }

// Builder folds quotes into Histories.
// Its zero value is ready to use.
type Builder struct {
	h Histories
}

// Add appends a quote to the series of its fund.
// Incomplete quotes are ignored and Add returns false.
func (b *Builder) Add(q Quote) bool {
	if !q.Valid() {
		log.Debug().Str("name", q.Name).Bool("price", q.Price.Valid).Stringer("day", q.Day).Msg("skipping incomplete quote")
		return false
	}
	if b.h == nil {
		b.h = make(Histories)
	}
	in, exists := b.h[q.Name]
	if !exists {
		in = &Instrument{Name: q.Name}
		b.h[q.Name] = in
	}
	in.Series.Append(q.Day, NewPrice(q.Price.Decimal))
	return true
}

// Histories computes the current price of every fund and returns the result.
//
// The Builder is reset: quotes added afterwards start a new Histories.
func (b *Builder) Histories() Histories {
	h := b.h
	b.h = nil
	if h == nil {
		return make(Histories)
	}
	for _, in := range h {
		day, value, _ := in.Series.Latest()
		in.Current = Point{Day: day, Value: value}
	}
	return h
}

// Build folds all quotes into Histories.
func Build(quotes iter.Seq[Quote]) Histories {
	var b Builder
	for q := range quotes {
		b.Add(q)
	}
	return b.Histories()
}
