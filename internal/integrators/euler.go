package integrators

import "github.com/okrylov/cardiosim/internal/cell"

// Euler is the explicit forward Euler method. Every component of the
// next state is computed from the same pre-step state, so the update
// of one variable can never see the updated value of another.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(m cell.Model, x cell.State, istim float64, t float64, dt float64) cell.State {
	dx := m.Derive(x, istim, t)
	result := make(cell.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
