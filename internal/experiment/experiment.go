package experiment

import (
	"context"
	"fmt"

	"github.com/okrylov/cardiosim/internal/cell"
)

type Config struct {
	Model         string
	Integrator    string
	Protocol      string
	InitState     []float64
	Dt            float64
	Steps         int
	ValidateState bool
	Params        map[string]float64
}

type Experiment struct {
	cfg       Config
	simulator *cell.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(model cell.Model, integrator cell.Integrator, protocol cell.Stimulus, ms []cell.Metric) error {
	e.simulator = cell.New(model, integrator, protocol)
	for _, m := range ms {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*cell.Trajectory, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	x0 := make(cell.State, len(e.cfg.InitState))
	copy(x0, e.cfg.InitState)

	simCfg := cell.Config{
		Dt:            e.cfg.Dt,
		Steps:         e.cfg.Steps,
		ValidateState: e.cfg.ValidateState,
	}

	return e.simulator.Run(ctx, x0, simCfg)
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *cell.Simulator {
	return e.simulator
}
