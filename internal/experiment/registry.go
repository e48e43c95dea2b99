package experiment

import (
	"fmt"

	"github.com/okrylov/cardiosim/internal/cell"
	"github.com/okrylov/cardiosim/internal/integrators"
	"github.com/okrylov/cardiosim/internal/metrics"
	"github.com/okrylov/cardiosim/internal/models"
	"github.com/okrylov/cardiosim/internal/stim"
)

type Registry struct {
	models      map[string]func() cell.Model
	integrators map[string]func() cell.Integrator
	protocols   map[string]func(map[string]float64) cell.Stimulus
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func() cell.Model),
		integrators: make(map[string]func() cell.Integrator),
		protocols:   make(map[string]func(map[string]float64) cell.Stimulus),
	}

	r.models["fenton_karma"] = func() cell.Model { return models.NewFentonKarma() }
	r.models["aliev_panfilov"] = func() cell.Model { return models.NewAlievPanfilov() }

	r.integrators["euler"] = func() cell.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() cell.Integrator { return integrators.NewRK4() }

	r.protocols["none"] = func(params map[string]float64) cell.Stimulus {
		return stim.NewNone()
	}
	r.protocols["pulse"] = func(params map[string]float64) cell.Stimulus {
		return stim.NewPulse(params["amplitude"], params["start"], params["duration"])
	}
	r.protocols["train"] = func(params map[string]float64) cell.Stimulus {
		return stim.NewTrain(params["amplitude"], params["start"], params["duration"],
			params["period"], int(params["count"]))
	}
	r.protocols["s1s2"] = func(params map[string]float64) cell.Stimulus {
		s1 := stim.Train{
			Amplitude: params["amplitude"],
			Start:     params["start"],
			Duration:  params["duration"],
			Period:    params["period"],
			Count:     int(params["count"]),
		}
		return stim.NewS1S2(s1, params["interval"])
	}

	return r
}

func (r *Registry) GetModel(name string) (cell.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetIntegrator(name string) (cell.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetProtocol(name string, params map[string]float64) (cell.Stimulus, error) {
	fn, ok := r.protocols[name]
	if !ok {
		return nil, fmt.Errorf("unknown protocol: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	return names
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	return names
}

func (r *Registry) ListProtocols() []string {
	names := make([]string, 0, len(r.protocols))
	for name := range r.protocols {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics returns the standard observation set for a model. The
// Aliev-Panfilov cubic overshoots 1 under forced stimulation, so its
// bounds check is looser.
func (r *Registry) DefaultMetrics(model string) []cell.Metric {
	lo, hi := -0.1, 1.1
	if model == "aliev_panfilov" {
		hi = 1.5
	}
	return []cell.Metric{
		metrics.NewPeak(),
		metrics.NewUpstroke(),
		metrics.NewBounds(lo, hi),
		metrics.NewStimCount(),
	}
}
