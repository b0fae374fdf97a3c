package sim

import (
	"context"
	"math/rand"
	"sync"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/systems"
)

// Ensemble runs independent simulations of one scenario kind, one per
// seed, each in its own goroutine.
type Ensemble struct {
	kind      string
	params    systems.Params
	numRuns   int
	seedStart int64
	metrics   func() []dynamo.Metric
}

func NewEnsemble(kind string, params systems.Params, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{kind: kind, params: params, numRuns: numRuns, seedStart: seedStart}
}

// WithMetrics sets a factory for per-run metrics. Metrics carry state, so
// every run gets fresh instances.
func (e *Ensemble) WithMetrics(fn func() []dynamo.Metric) *Ensemble {
	e.metrics = fn
	return e
}

// Run returns results indexed by run; seed of run i is seedStart+i.
func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Result, error) {
	if e.numRuns <= 0 {
		return nil, nil
	}

	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(e.seedStart + int64(idx)))
			sc, err := systems.Build(e.kind, e.params, rng)
			if err != nil {
				errs[idx] = err
				return
			}

			s, err := New(sc)
			if err != nil {
				errs[idx] = err
				return
			}
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
