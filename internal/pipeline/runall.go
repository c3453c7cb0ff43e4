package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"turbo/internal/options"
)

// Job is one invocation of RunAll: a unit plus the overrides that turn the
// shared base bundle into this invocation's own bundle.
type Job struct {
	Unit      *Unit
	Overrides []options.Override
	// Values are textual overrides applied after Overrides.
	Values map[string]string
}

// RunAll compiles jobs concurrently, at most jobs-many at a time (GOMAXPROCS
// when jobs <= 0). Every job builds its own bundle from base; a job whose
// bundle cannot be built fails before any stage runs. The first failure
// cancels the remaining jobs and is returned; results of finished jobs are
// kept at their job's index.
func (p *Pipeline) RunAll(ctx context.Context, base options.Options, jobs []Job, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range jobs {
		g.Go(func() error {
			opts, err := jobOptions(base, job)
			if err != nil {
				if job.Unit != nil {
					return fmt.Errorf("%s: %w", job.Unit.Path, err)
				}
				return err
			}
			res, err := p.Run(gctx, job.Unit, opts)
			results[i] = res
			return err
		})
	}
	err := g.Wait()
	return results, err
}

func jobOptions(base options.Options, job Job) (options.Options, error) {
	opts, err := options.New(base, job.Overrides...)
	if err != nil {
		return options.Options{}, err
	}
	if len(job.Values) == 0 {
		return opts, nil
	}
	return options.FromStrings(opts, job.Values)
}
