// Package cell provides core simulation primitives for single-cell
// electrophysiology models.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of membrane kinetics expressed as ordinary differential
// equations (dX/dt = f(X, istim, t)):
//
//   - [State]: vector of membrane variables (potential plus gates)
//   - [Model]: interface for ionic models
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Stimulus]: external pacing current interface
//   - [Simulator]: orchestrates simulation runs
//
// # Example
//
//	m := models.NewFentonKarma()
//	integ := integrators.NewEuler()
//	sim := cell.New(m, integ, stim.NewPulse(1.0, 0.1, 0.2))
//	traj, _ := sim.Run(ctx, m.DefaultState(), cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Models are safe to share
// across concurrent runs as long as no goroutine mutates parameters
// mid-run; the [Ensemble] type manages parallel runs under that rule.
package cell
