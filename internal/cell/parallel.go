package cell

import (
	"context"
	"sync"
)

// Ensemble runs the same model under several stimulus protocols at
// once, one goroutine per protocol. Each run gets its own integrator
// from newIntegrator so stepper scratch space is never shared. The
// model is shared read-only; do not mutate its parameters while an
// ensemble is running.
type Ensemble struct {
	model         Model
	newIntegrator func() Integrator
	stims         []Stimulus
}

func NewEnsemble(model Model, newIntegrator func() Integrator, stims []Stimulus) *Ensemble {
	return &Ensemble{model: model, newIntegrator: newIntegrator, stims: stims}
}

// Run starts every protocol from the same x0 and returns trajectories
// in protocol order. The first run error wins.
func (e *Ensemble) Run(ctx context.Context, x0 State, cfg Config) ([]*Trajectory, error) {
	trajs := make([]*Trajectory, len(e.stims))
	errs := make([]error, len(e.stims))

	var wg sync.WaitGroup
	for i := range e.stims {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s := New(e.model, e.newIntegrator(), e.stims[idx])
			trajs[idx], errs[idx] = s.Run(ctx, x0, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return trajs, nil
}
