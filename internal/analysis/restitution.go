package analysis

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"github.com/okrylov/cardiosim/internal/cell"
	"github.com/okrylov/cardiosim/internal/stim"
)

// RestitutionPoint pairs the diastolic interval preceding a premature
// beat with the action potential duration that beat produced.
type RestitutionPoint struct {
	DI  float64
	APD float64
}

// Restitution sweeps the S1S2 coupling interval and measures how the
// premature action potential's duration depends on the diastolic
// interval before it. One run executes per interval, in parallel.
// Intervals whose extrastimulus fails to capture are dropped from the
// result.
func Restitution(ctx context.Context, model cell.Model, newIntegrator func() cell.Integrator, s1 stim.Train, intervals []float64, cfg cell.Config, threshold float64) ([]RestitutionPoint, error) {
	stims := make([]cell.Stimulus, len(intervals))
	for i, interval := range intervals {
		stims[i] = stim.NewS1S2(s1, interval)
	}

	ens := cell.NewEnsemble(model, newIntegrator, stims)
	trajs, err := ens.Run(ctx, model.DefaultState(), cfg)
	if err != nil {
		return nil, err
	}

	points := make([]RestitutionPoint, 0, len(intervals))
	for _, traj := range trajs {
		aps := DetectAPs(traj, threshold)
		if len(aps) != s1.Count+1 {
			continue
		}
		s2 := aps[len(aps)-1]
		points = append(points, RestitutionPoint{
			DI:  s2.Onset - aps[len(aps)-2].End,
			APD: s2.Duration(),
		})
	}
	return points, nil
}

// Slope fits APD = a + b*DI to the restitution curve and returns b.
// A slope above 1 is the classical alternans criterion.
func Slope(points []RestitutionPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	dis := make([]float64, len(points))
	apds := make([]float64, len(points))
	for i, p := range points {
		dis[i] = p.DI
		apds[i] = p.APD
	}
	_, slope := stat.LinearRegression(dis, apds, nil, false)
	return slope
}
