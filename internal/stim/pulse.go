package stim

import (
	"fmt"

	"github.com/okrylov/cardiosim/internal/cell"
)

// Pulse is a single rectangular current pulse. The window is half-open:
// the current switches on at Start and back off exactly at
// Start+Duration.
type Pulse struct {
	Amplitude float64
	Start     float64
	Duration  float64
}

func NewPulse(amplitude, start, duration float64) *Pulse {
	return &Pulse{
		Amplitude: amplitude,
		Start:     start,
		Duration:  duration,
	}
}

func (p *Pulse) Current(t float64) float64 {
	if t >= p.Start && t < p.Start+p.Duration {
		return p.Amplitude
	}
	return 0
}

// GetParams returns tunable parameters for live adjustment.
func (p *Pulse) GetParams() map[string]float64 {
	return map[string]float64{
		"amplitude": p.Amplitude,
		"start":     p.Start,
		"duration":  p.Duration,
	}
}

func (p *Pulse) SetParam(name string, value float64) error {
	switch name {
	case "amplitude":
		p.Amplitude = value
	case "start":
		p.Start = value
	case "duration":
		p.Duration = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", cell.ErrInvalidParameter, name)
	}
	return nil
}
