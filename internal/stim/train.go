package stim

import (
	"fmt"
	"math"

	"github.com/okrylov/cardiosim/internal/cell"
)

// Train delivers a periodic sequence of identical rectangular pulses.
// Beat k switches on at Start+k*Period. A non-positive Period yields
// no current at all; Count <= 0 paces without limit.
type Train struct {
	Amplitude float64
	Start     float64
	Duration  float64
	Period    float64 // pacing cycle length
	Count     int     // number of beats
}

func NewTrain(amplitude, start, duration, period float64, count int) *Train {
	return &Train{
		Amplitude: amplitude,
		Start:     start,
		Duration:  duration,
		Period:    period,
		Count:     count,
	}
}

func (tr *Train) Current(t float64) float64 {
	if tr.Period <= 0 || t < tr.Start {
		return 0
	}
	elapsed := t - tr.Start
	beat := math.Floor(elapsed / tr.Period)
	if tr.Count > 0 && beat >= float64(tr.Count) {
		return 0
	}
	if elapsed-beat*tr.Period < tr.Duration {
		return tr.Amplitude
	}
	return 0
}

// GetParams returns tunable parameters for live adjustment. Count is
// exposed as a float and truncated on the way back in.
func (tr *Train) GetParams() map[string]float64 {
	return map[string]float64{
		"amplitude": tr.Amplitude,
		"start":     tr.Start,
		"duration":  tr.Duration,
		"period":    tr.Period,
		"count":     float64(tr.Count),
	}
}

func (tr *Train) SetParam(name string, value float64) error {
	switch name {
	case "amplitude":
		tr.Amplitude = value
	case "start":
		tr.Start = value
	case "duration":
		tr.Duration = value
	case "period":
		tr.Period = value
	case "count":
		tr.Count = int(value)
	default:
		return fmt.Errorf("%w: unknown parameter %q", cell.ErrInvalidParameter, name)
	}
	return nil
}
