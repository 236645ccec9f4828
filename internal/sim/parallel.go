package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent simulators concurrently. Each simulator owns its
// scene, so runs share no state.
type Ensemble struct {
	sims  []*Simulator
	limit int
}

// NewEnsemble runs at most limit simulators at once. A limit below one means
// no limit.
func NewEnsemble(limit int, sims ...*Simulator) *Ensemble {
	return &Ensemble{sims: sims, limit: limit}
}

// Run returns one result per simulator in order. The first error cancels the
// remaining runs.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.sims))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for i, s := range e.sims {
		g.Go(func() error {
			res, err := s.Run(ctx, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
