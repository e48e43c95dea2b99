package models

import (
	"errors"
	"math"
	"testing"

	"github.com/okrylov/cardiosim/internal/cell"
)

func TestFentonKarmaRestingState(t *testing.T) {
	m := NewFentonKarma()

	dx := m.Derive(cell.State{0, 1, 1}, 0, 0)

	if math.Abs(dx[0]) > 1e-8 {
		t.Errorf("expected near-zero membrane derivative at rest, got %g", dx[0])
	}
	if dx[1] != 0 {
		t.Errorf("expected zero fast gate derivative at rest, got %g", dx[1])
	}
	if dx[2] != 0 {
		t.Errorf("expected zero slow gate derivative at rest, got %g", dx[2])
	}
}

func TestFentonKarmaDimensions(t *testing.T) {
	m := NewFentonKarma()

	if m.StateDim() != 3 {
		t.Errorf("expected state dim 3, got %d", m.StateDim())
	}

	x0 := m.DefaultState()
	if len(x0) != 3 || x0[0] != 0 || x0[1] != 1 || x0[2] != 1 {
		t.Errorf("expected default state (0, 1, 1), got %v", x0)
	}
}

func TestFentonKarmaExcitedDerivative(t *testing.T) {
	m := NewFentonKarma()

	// Above threshold with fully recovered gates the fast inward
	// current dominates and drives a rapid upstroke.
	dx := m.Derive(cell.State{0.2, 1, 1}, 0, 0)

	if math.Abs(dx[0]-0.31789) > 1e-4 {
		t.Errorf("expected membrane derivative ~0.31789, got %f", dx[0])
	}
	if dx[0] <= 0 {
		t.Errorf("expected upstroke above threshold, got %f", dx[0])
	}
}

func TestFentonKarmaThresholdBranches(t *testing.T) {
	m := NewFentonKarma()
	uc := m.Params().Uc

	below := m.Derive(cell.State{uc - 1e-9, 1, 1}, 0, 0)
	at := m.Derive(cell.State{uc, 1, 1}, 0, 0)

	// The ungated current switches from u/tau_o to 1/tau_r exactly at
	// the threshold; the fast inward current vanishes there, so the
	// whole jump in du/dt comes from the outward term.
	jump := at[0] - below[0]
	expected := uc/m.Params().TauO - 1.0/m.Params().TauR
	if math.Abs(jump-expected) > 1e-6 {
		t.Errorf("expected membrane derivative jump %g at threshold, got %g", expected, jump)
	}

	if below[1] != 0 {
		t.Errorf("expected zero fast gate derivative below threshold, got %g", below[1])
	}
	if at[1] != -1.0/10.0 {
		t.Errorf("expected fast gate derivative -0.1 at threshold, got %g", at[1])
	}

	if below[2] != 0 {
		t.Errorf("expected zero slow gate derivative below threshold, got %g", below[2])
	}
	if at[2] != -1.0/1020.0 {
		t.Errorf("expected slow gate derivative -1/1020 at threshold, got %g", at[2])
	}
}

func TestFentonKarmaCurrentSigns(t *testing.T) {
	m := NewFentonKarma()

	// Mid-plateau: fast and slow inward currents flow inward
	// (negative), the outward current flows outward (positive).
	jfi, jso, jsi := m.Currents(0.9, 0.5, 0.5)

	if jfi >= 0 {
		t.Errorf("expected negative fast inward current, got %g", jfi)
	}
	if jso <= 0 {
		t.Errorf("expected positive slow outward current, got %g", jso)
	}
	if jsi >= 0 {
		t.Errorf("expected negative slow inward current, got %g", jsi)
	}
}

func TestFentonKarmaStimulusAdds(t *testing.T) {
	m := NewFentonKarma()
	x := cell.State{0, 1, 1}

	base := m.Derive(x, 0, 0)
	driven := m.Derive(x, 1.0, 0)

	if math.Abs((driven[0]-base[0])-1.0) > 1e-12 {
		t.Errorf("expected stimulus to add 1.0 to membrane derivative, got %g", driven[0]-base[0])
	}
	if driven[1] != base[1] || driven[2] != base[2] {
		t.Error("expected stimulus to leave gate derivatives unchanged")
	}
}

func TestFentonKarmaParamsValidate(t *testing.T) {
	modify := func(f func(*FentonKarmaParams)) FentonKarmaParams {
		p := DefaultFentonKarmaParams()
		f(&p)
		return p
	}

	tests := []struct {
		name   string
		params FentonKarmaParams
	}{
		{"zero tau_r", modify(func(p *FentonKarmaParams) { p.TauR = 0 })},
		{"negative tau_d", modify(func(p *FentonKarmaParams) { p.TauD = -0.1 })},
		{"zero tau_si", modify(func(p *FentonKarmaParams) { p.TauSi = 0 })},
		{"negative tau_w_plus", modify(func(p *FentonKarmaParams) { p.TauWPlus = -1 })},
		{"zero k", modify(func(p *FentonKarmaParams) { p.K = 0 })},
		{"u_c at zero", modify(func(p *FentonKarmaParams) { p.Uc = 0 })},
		{"u_c at one", modify(func(p *FentonKarmaParams) { p.Uc = 1 })},
		{"u_c_si above one", modify(func(p *FentonKarmaParams) { p.UcSi = 1.5 })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, cell.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}

	if err := DefaultFentonKarmaParams().Validate(); err != nil {
		t.Errorf("expected default params to validate, got %v", err)
	}
}

func TestFentonKarmaSetParam(t *testing.T) {
	m := NewFentonKarma()

	if err := m.SetParam("tau_r", 200); err != nil {
		t.Fatalf("set param failed: %v", err)
	}
	if m.Params().TauR != 200 {
		t.Errorf("expected tau_r 200, got %g", m.Params().TauR)
	}

	if err := m.SetParam("tau_d", -1); err == nil {
		t.Error("expected error for negative tau_d")
	}
	if m.Params().TauD != 0.172 {
		t.Errorf("expected tau_d unchanged after rejected set, got %g", m.Params().TauD)
	}

	if err := m.SetParam("nonexistent", 1); !errors.Is(err, cell.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for unknown name, got %v", err)
	}
}
