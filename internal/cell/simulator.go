package cell

import (
	"context"
	"fmt"
)

type Simulator struct {
	model      Model
	integrator Integrator
	stim       Stimulus
	metrics    []Metric
	observers  []Observer
}

// New builds a simulator. A nil stim means an unstimulated run.
func New(model Model, integrator Integrator, stim Stimulus) *Simulator {
	return &Simulator{
		model:      model,
		integrator: integrator,
		stim:       stim,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates cfg.Steps fixed steps from x0 and returns the full
// trajectory: cfg.Steps+1 samples, the first being (0, x0). All
// validation happens before any stepping; an invalid dt or step count
// produces an error and no trajectory.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Trajectory, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	traj := &Trajectory{
		Times:   make([]float64, 0, cfg.Steps+1),
		States:  make([]State, 0, cfg.Steps+1),
		Stims:   make([]float64, 0, cfg.Steps),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0

	traj.Times = append(traj.Times, t)
	traj.States = append(traj.States, x.Clone())

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return traj, ctx.Err()
		default:
		}

		istim := 0.0
		if s.stim != nil {
			istim = s.stim.Current(t)
		}

		for _, m := range s.metrics {
			m.Observe(x, istim, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, istim, t)
		}

		next := s.integrator.Step(s.model, x, istim, t, cfg.Dt)

		if cfg.ValidateState && !next.IsValid() {
			traj.Errors = append(traj.Errors, SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}

		x = next
		t += cfg.Dt
		traj.StepsTaken++

		traj.Times = append(traj.Times, t)
		traj.States = append(traj.States, x.Clone())
		traj.Stims = append(traj.Stims, istim)
	}

	for _, m := range s.metrics {
		traj.Metrics[m.Name()] = m.Value()
	}

	return traj, nil
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidParameter, cfg.Dt)
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", ErrInvalidInput, cfg.Steps)
	}
	if len(x0) != s.model.StateDim() {
		return fmt.Errorf("%w: state has %d components, model wants %d", ErrDimensionMismatch, len(x0), s.model.StateDim())
	}
	return nil
}

// RunWithCallback steps the simulation without recording a trajectory,
// handing each pre-step state to the callback. Returning false stops
// the run. Used by live views that render as they go.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(x State, istim, t float64) bool) error {
	if err := s.validate(x0, cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		istim := 0.0
		if s.stim != nil {
			istim = s.stim.Current(t)
		}

		if !callback(x, istim, t) {
			return nil
		}

		x = s.integrator.Step(s.model, x, istim, t, cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			return fmt.Errorf("invalid state at t=%.4f", t)
		}
	}

	return nil
}
