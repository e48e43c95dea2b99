package integrators

import "github.com/okrylov/cardiosim/internal/cell"

// RK4 is the classical fourth-order Runge-Kutta method. The stimulus
// current is held fixed across the four substeps, matching a sampled
// pulse applied over one whole step. Scratch buffers are reused
// between calls, so an instance must not be shared across goroutines.
type RK4 struct {
	k1, k2, k3, k4 cell.State
	scratch        cell.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(cell.State, n)
		r.k2 = make(cell.State, n)
		r.k3 = make(cell.State, n)
		r.k4 = make(cell.State, n)
		r.scratch = make(cell.State, n)
	}
}

func (r *RK4) Step(m cell.Model, x cell.State, istim float64, t, dt float64) cell.State {
	n := len(x)
	r.ensureScratch(n)

	k1 := m.Derive(x, istim, t)
	copy(r.k1, k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	k2 := m.Derive(r.scratch, istim, t+dt*0.5)
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	k3 := m.Derive(r.scratch, istim, t+dt*0.5)
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	k4 := m.Derive(r.scratch, istim, t+dt)
	copy(r.k4, k4)

	result := make(cell.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
