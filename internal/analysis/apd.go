package analysis

import "github.com/okrylov/cardiosim/internal/cell"

// AP marks one action potential in a membrane trace: the time the
// potential crossed the detection threshold upward and the time it
// recrossed downward. Crossing times are refined by linear
// interpolation between the two bracketing samples.
type AP struct {
	Onset float64
	End   float64
}

// Duration returns the action potential duration at the detection
// threshold.
func (a AP) Duration() float64 { return a.End - a.Onset }

// DetectAPs finds completed action potentials in the membrane
// component of a trajectory. An excursion still above threshold when
// the trace ends is discarded.
func DetectAPs(traj *cell.Trajectory, threshold float64) []AP {
	if traj == nil || traj.Len() == 0 {
		return nil
	}
	u := traj.Component(0)
	ts := traj.Times

	var aps []AP
	var onset float64
	above := false
	for i := 1; i < len(u); i++ {
		if !above && u[i-1] < threshold && u[i] >= threshold {
			onset = crossTime(ts[i-1], ts[i], u[i-1], u[i], threshold)
			above = true
		} else if above && u[i-1] > threshold && u[i] <= threshold {
			aps = append(aps, AP{
				Onset: onset,
				End:   crossTime(ts[i-1], ts[i], u[i-1], u[i], threshold),
			})
			above = false
		}
	}
	return aps
}

// crossTime interpolates the instant the trace crossed the threshold
// between two samples.
func crossTime(t0, t1, u0, u1, threshold float64) float64 {
	if u1 == u0 {
		return t1
	}
	return t0 + (t1-t0)*(threshold-u0)/(u1-u0)
}

// APDs returns the durations of all completed action potentials in
// the trace.
func APDs(traj *cell.Trajectory, threshold float64) []float64 {
	aps := DetectAPs(traj, threshold)
	if len(aps) == 0 {
		return nil
	}
	durations := make([]float64, len(aps))
	for i, ap := range aps {
		durations[i] = ap.Duration()
	}
	return durations
}

// DiastolicIntervals returns the recovery gaps between consecutive
// action potentials: the time from one repolarization to the next
// onset.
func DiastolicIntervals(aps []AP) []float64 {
	if len(aps) < 2 {
		return nil
	}
	dis := make([]float64, 0, len(aps)-1)
	for i := 1; i < len(aps); i++ {
		dis = append(dis, aps[i].Onset-aps[i-1].End)
	}
	return dis
}
