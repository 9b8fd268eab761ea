package ppr

import (
	"fmt"
	"strings"
)

// Kind is a report format.
type Kind int

const (
	HTML Kind = iota
	JSON
	CSV
)

// Kinds returns every report format.
func Kinds() []Kind { return []Kind{HTML, JSON, CSV} }

func (k Kind) String() string {
	switch k {
	case HTML:
		return "html"
	case JSON:
		return "json"
	case CSV:
		return "csv"
	default:
		panic(fmt.Sprintf("unknown report kind %d", k))
	}
}

// Ext returns the file extension for k, including the dot.
func (k Kind) Ext() string { return "." + k.String() }

// ParseKind parses a single report format name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html":
		return HTML, nil
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	default:
		return HTML, fmt.Errorf("unknown report kind %q", s)
	}
}

// SelectKinds returns the formats selected by s: a single format name, or
// "all" (or empty) for every format.
//
// Unknown names select every format too, ok is then false.
func SelectKinds(s string) (kinds []Kind, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return Kinds(), true
	}
	k, err := ParseKind(s)
	if err != nil {
		return Kinds(), false
	}
	return []Kind{k}, true
}
