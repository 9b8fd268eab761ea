package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/etnz/ppr/renderer"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Publish renders every job and puts the payload into sink.
//
// At most workers jobs run at once, values below 1 mean one. A failed job
// does not stop the others: all failures are joined in the returned error.
// Jobs not yet started when ctx is done fail with the context error.
func Publish(ctx context.Context, jobs []Job, sink Sink, workers int) error {
	if workers < 1 {
		workers = 1
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		errs = append(errs, err)
	}

	// Errors are collected, never returned to the group: it must not cancel.
	var g errgroup.Group
	g.SetLimit(workers)
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				fail(fmt.Errorf("%q: %w", job.Instrument.Name, err))
				return nil
			}
			if err := publish(job, sink); err != nil {
				fail(err)
			}
			return nil
		})
	}
	g.Wait()

	return errors.Join(errs...)
}

// publish renders a single job into the sink.
func publish(job Job, sink Sink) error {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, job.Instrument, job.Kind); err != nil {
		return fmt.Errorf("cannot render %q: %w", job.Instrument.Name, err)
	}
	name := job.Filename()
	if err := sink.Put(name, buf.Bytes()); err != nil {
		return fmt.Errorf("cannot write %s: %w", name, err)
	}
	log.Debug().Str("file", name).Int("size", buf.Len()).Msg("report written")
	return nil
}
