package models

import (
	"fmt"

	"github.com/okrylov/cardiosim/internal/cell"
)

// AlievPanfilovParams holds the coefficients of the two-variable
// Aliev-Panfilov model. The model is dimensionless.
type AlievPanfilovParams struct {
	K    float64 // excitation nonlinearity strength
	A    float64 // excitation threshold
	Eps0 float64 // baseline recovery rate
	Mu1  float64 // recovery rate modulation numerator
	Mu2  float64 // recovery rate modulation offset
}

// DefaultAlievPanfilovParams returns the parameter set from Aliev and
// Panfilov (1996).
func DefaultAlievPanfilovParams() AlievPanfilovParams {
	return AlievPanfilovParams{
		K:    8.0,
		A:    0.15,
		Eps0: 0.002,
		Mu1:  0.2,
		Mu2:  0.3,
	}
}

// Validate reports the first parameter that would break the model
// equations. Mu2 appears in a denominator alongside u >= 0, so it must
// be strictly positive.
func (p AlievPanfilovParams) Validate() error {
	if p.K <= 0 {
		return fmt.Errorf("%w: k must be positive, got %g", cell.ErrInvalidParameter, p.K)
	}
	if p.A <= 0 || p.A >= 1 {
		return fmt.Errorf("%w: a must lie in (0, 1), got %g", cell.ErrInvalidParameter, p.A)
	}
	if p.Eps0 <= 0 {
		return fmt.Errorf("%w: eps0 must be positive, got %g", cell.ErrInvalidParameter, p.Eps0)
	}
	if p.Mu1 < 0 {
		return fmt.Errorf("%w: mu1 must be non-negative, got %g", cell.ErrInvalidParameter, p.Mu1)
	}
	if p.Mu2 <= 0 {
		return fmt.Errorf("%w: mu2 must be positive, got %g", cell.ErrInvalidParameter, p.Mu2)
	}
	return nil
}

// AlievPanfilov is the two-variable Aliev-Panfilov excitable cell
// model. State is (u, v): normalized membrane potential and a single
// recovery variable.
type AlievPanfilov struct {
	p AlievPanfilovParams
}

// NewAlievPanfilov returns a model with the default parameters.
func NewAlievPanfilov() *AlievPanfilov {
	return &AlievPanfilov{p: DefaultAlievPanfilovParams()}
}

// NewAlievPanfilovWith returns a model with the given parameters, or
// an error wrapping [cell.ErrInvalidParameter] if they fail validation.
func NewAlievPanfilovWith(p AlievPanfilovParams) (*AlievPanfilov, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &AlievPanfilov{p: p}, nil
}

func (m *AlievPanfilov) StateDim() int { return 2 }

// DefaultState is the resting state with the recovery variable fully
// relaxed.
func (m *AlievPanfilov) DefaultState() cell.State { return cell.State{0, 0} }

// Params returns a copy of the current parameter set.
func (m *AlievPanfilov) Params() AlievPanfilovParams { return m.p }

// Derive calculates the membrane and recovery derivatives.
func (m *AlievPanfilov) Derive(x cell.State, istim float64, t float64) cell.State {
	u, v := x[0], x[1]

	du := -m.p.K*u*(u-m.p.A)*(u-1) - u*v + istim

	eps := m.p.Eps0 + m.p.Mu1*v/(u+m.p.Mu2)
	dv := eps * (-v - m.p.K*u*(u-m.p.A-1))

	return cell.State{du, dv}
}

func (m *AlievPanfilov) GetParams() map[string]float64 {
	return map[string]float64{
		"k":    m.p.K,
		"a":    m.p.A,
		"eps0": m.p.Eps0,
		"mu1":  m.p.Mu1,
		"mu2":  m.p.Mu2,
	}
}

// SetParam updates a single parameter by name, revalidating the full
// set before committing the change.
func (m *AlievPanfilov) SetParam(name string, value float64) error {
	p := m.p
	switch name {
	case "k":
		p.K = value
	case "a":
		p.A = value
	case "eps0":
		p.Eps0 = value
	case "mu1":
		p.Mu1 = value
	case "mu2":
		p.Mu2 = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", cell.ErrInvalidParameter, name)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	m.p = p
	return nil
}
