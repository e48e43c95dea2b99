package cell

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Model is an ionic cell model. Derive returns dX/dt at state x given
// the external stimulus current istim; it must be pure (no retained
// references to x or to the returned slice).
type Model interface {
	Derive(x State, istim float64, t float64) State
	StateDim() int
	DefaultState() State
}

type Integrator interface {
	Step(m Model, x State, istim float64, t, dt float64) State
}

// Stimulus is an external pacing protocol: the injected current as a
// function of simulated time.
type Stimulus interface {
	Current(t float64) float64
}

type Metric interface {
	Name() string
	Observe(x State, istim float64, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, istim float64, t float64)
}

// Configurable models expose named parameters for runtime adjustment.
// SetParam rejects values that would leave the model invalid.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Config struct {
	Dt    float64
	Steps int

	// ValidateState stops a run early when a state goes NaN/Inf,
	// recording a SimError on the trajectory. Off by default:
	// divergence detection is the caller's concern.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:    0.01,
		Steps: 40000,
	}
}

// Trajectory is the recorded output of one run: Steps+1 (time, state)
// samples starting at (0, initial state), plus the stimulus current
// applied over each step.
type Trajectory struct {
	Times      []float64
	States     []State
	Stims      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

func (tr *Trajectory) Len() int {
	return len(tr.States)
}

func (tr *Trajectory) Final() State {
	if len(tr.States) == 0 {
		return nil
	}
	return tr.States[len(tr.States)-1]
}

// Component extracts one state variable as a flat series, index 0
// being the membrane potential by convention.
func (tr *Trajectory) Component(i int) []float64 {
	out := make([]float64, 0, len(tr.States))
	for _, s := range tr.States {
		if i < len(s) {
			out = append(out, s[i])
		}
	}
	return out
}

// IsFinite reports whether every recorded sample is free of NaN/Inf.
func (tr *Trajectory) IsFinite() bool {
	for _, s := range tr.States {
		if !s.IsValid() {
			return false
		}
	}
	return true
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
