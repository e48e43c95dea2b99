package models

import (
	"fmt"
	"math"

	"github.com/okrylov/cardiosim/internal/cell"
)

// FentonKarmaParams holds the time constants and thresholds of the
// three-current Fenton-Karma membrane model. All tau values are in
// milliseconds.
type FentonKarmaParams struct {
	TauR      float64 // slow outward repolarization time scale
	TauO      float64 // ungated outward time scale below threshold
	TauD      float64 // fast inward depolarization time scale
	TauSi     float64 // slow inward time scale
	TauVMinus float64 // fast gate recovery below threshold
	TauVPlus  float64 // fast gate inactivation above threshold
	TauWMinus float64 // slow gate recovery below threshold
	TauWPlus  float64 // slow gate inactivation above threshold
	K         float64 // slow inward activation steepness
	Uc        float64 // excitation threshold on u
	UcSi      float64 // slow inward activation threshold on u
}

// DefaultFentonKarmaParams returns the modified Luo-Rudy I parameter
// set from Fenton and Karma (1998), which produces an action potential
// duration of roughly 200-300 ms under a standard pulse.
func DefaultFentonKarmaParams() FentonKarmaParams {
	return FentonKarmaParams{
		TauR:      130.0,
		TauO:      12.5,
		TauD:      0.172,
		TauSi:     127.0,
		TauVMinus: 18.2,
		TauVPlus:  10.0,
		TauWMinus: 80.0,
		TauWPlus:  1020.0,
		K:         10.0,
		Uc:        0.13,
		UcSi:      0.85,
	}
}

// Validate reports the first parameter that would make the model
// equations meaningless. Time constants appear as divisors, so they
// must be strictly positive; thresholds must lie inside the normalized
// membrane range.
func (p FentonKarmaParams) Validate() error {
	taus := []struct {
		name  string
		value float64
	}{
		{"tau_r", p.TauR},
		{"tau_o", p.TauO},
		{"tau_d", p.TauD},
		{"tau_si", p.TauSi},
		{"tau_v_minus", p.TauVMinus},
		{"tau_v_plus", p.TauVPlus},
		{"tau_w_minus", p.TauWMinus},
		{"tau_w_plus", p.TauWPlus},
	}
	for _, tc := range taus {
		if tc.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", cell.ErrInvalidParameter, tc.name, tc.value)
		}
	}
	if p.K <= 0 {
		return fmt.Errorf("%w: k must be positive, got %g", cell.ErrInvalidParameter, p.K)
	}
	if p.Uc <= 0 || p.Uc >= 1 {
		return fmt.Errorf("%w: u_c must lie in (0, 1), got %g", cell.ErrInvalidParameter, p.Uc)
	}
	if p.UcSi <= 0 || p.UcSi >= 1 {
		return fmt.Errorf("%w: u_c_si must lie in (0, 1), got %g", cell.ErrInvalidParameter, p.UcSi)
	}
	return nil
}

// FentonKarma is the three-variable Fenton-Karma ventricular cell
// model. State is (u, v, w): normalized membrane potential, fast
// inactivation gate, slow inactivation gate.
type FentonKarma struct {
	p FentonKarmaParams
}

// NewFentonKarma returns a model with the default MLR-I parameters.
func NewFentonKarma() *FentonKarma {
	return &FentonKarma{p: DefaultFentonKarmaParams()}
}

// NewFentonKarmaWith returns a model with the given parameters, or an
// error wrapping [cell.ErrInvalidParameter] if they fail validation.
func NewFentonKarmaWith(p FentonKarmaParams) (*FentonKarma, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &FentonKarma{p: p}, nil
}

func (m *FentonKarma) StateDim() int { return 3 }

// DefaultState is the resting state: membrane at 0, both gates fully
// recovered.
func (m *FentonKarma) DefaultState() cell.State { return cell.State{0, 1, 1} }

// Params returns a copy of the current parameter set.
func (m *FentonKarma) Params() FentonKarmaParams { return m.p }

// Currents returns the three membrane currents at the given point. The
// excited branch applies exactly when u >= Uc and the resting branch
// otherwise, so the two are never active together.
func (m *FentonKarma) Currents(u, v, w float64) (jfi, jso, jsi float64) {
	if u >= m.p.Uc {
		jfi = -v * (u - m.p.Uc) * (1 - u) / m.p.TauD
		jso = 1 / m.p.TauR
	} else {
		jso = u / m.p.TauO
	}
	jsi = -w * (1 + math.Tanh(m.p.K*(u-m.p.UcSi))) / (2 * m.p.TauSi)
	return jfi, jso, jsi
}

// Derive calculates the membrane and gate derivatives. The stimulus
// current adds directly to du/dt.
func (m *FentonKarma) Derive(x cell.State, istim float64, t float64) cell.State {
	u, v, w := x[0], x[1], x[2]

	jfi, jso, jsi := m.Currents(u, v, w)
	du := -(jfi + jso + jsi) + istim

	var dv, dw float64
	if u >= m.p.Uc {
		dv = -v / m.p.TauVPlus
		dw = -w / m.p.TauWPlus
	} else {
		dv = (1 - v) / m.p.TauVMinus
		dw = (1 - w) / m.p.TauWMinus
	}

	return cell.State{du, dv, dw}
}

func (m *FentonKarma) GetParams() map[string]float64 {
	return map[string]float64{
		"tau_r":       m.p.TauR,
		"tau_o":       m.p.TauO,
		"tau_d":       m.p.TauD,
		"tau_si":      m.p.TauSi,
		"tau_v_minus": m.p.TauVMinus,
		"tau_v_plus":  m.p.TauVPlus,
		"tau_w_minus": m.p.TauWMinus,
		"tau_w_plus":  m.p.TauWPlus,
		"k":           m.p.K,
		"u_c":         m.p.Uc,
		"u_c_si":      m.p.UcSi,
	}
}

// SetParam updates a single parameter by name, revalidating the full
// set so the model can never be left in an unusable configuration.
func (m *FentonKarma) SetParam(name string, value float64) error {
	p := m.p
	switch name {
	case "tau_r":
		p.TauR = value
	case "tau_o":
		p.TauO = value
	case "tau_d":
		p.TauD = value
	case "tau_si":
		p.TauSi = value
	case "tau_v_minus":
		p.TauVMinus = value
	case "tau_v_plus":
		p.TauVPlus = value
	case "tau_w_minus":
		p.TauWMinus = value
	case "tau_w_plus":
		p.TauWPlus = value
	case "k":
		p.K = value
	case "u_c":
		p.Uc = value
	case "u_c_si":
		p.UcSi = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", cell.ErrInvalidParameter, name)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	m.p = p
	return nil
}
