// Package publish renders instrument reports and writes them out.
package publish

import (
	"errors"
	"fmt"

	"github.com/etnz/ppr"
)

// ErrUnknownInstrument is returned by Plan when the requested name is not in the histories.
var ErrUnknownInstrument = errors.New("unknown instrument")

// Job is a single report to render: one instrument in one kind.
type Job struct {
	Instrument *ppr.Instrument
	Kind       ppr.Kind
}

// Filename returns the name of the artifact produced by j.
func (j Job) Filename() string { return ppr.Filename(j.Instrument.Name, j.Kind) }

// Plan lists the jobs for the instrument name in every kind.
//
// An empty name selects all instruments, in name order. Jobs of the same
// instrument are adjacent, kinds in the order given.
func Plan(h ppr.Histories, name string, kinds []ppr.Kind) ([]Job, error) {
	var names []string
	if name == "" {
		names = h.Names()
	} else {
		if h.Get(name) == nil {
			return nil, fmt.Errorf("%w %q", ErrUnknownInstrument, name)
		}
		names = []string{name}
	}

	jobs := make([]Job, 0, len(names)*len(kinds))
	for _, n := range names {
		for _, k := range kinds {
			jobs = append(jobs, Job{Instrument: h.Get(n), Kind: k})
		}
	}
	return jobs, nil
}
