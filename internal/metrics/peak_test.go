package metrics

import (
	"testing"

	"github.com/okrylov/cardiosim/internal/cell"
)

func TestPeak(t *testing.T) {
	m := NewPeak()

	for _, u := range []float64{0, 0.5, 0.97, 0.3} {
		m.Observe(cell.State{u, 1, 1}, 0, 0)
	}

	if m.Value() != 0.97 {
		t.Errorf("expected peak 0.97, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected zero peak after reset, got %f", m.Value())
	}
}

func TestPeakNegativeStates(t *testing.T) {
	m := NewPeak()

	m.Observe(cell.State{-0.2}, 0, 0)
	m.Observe(cell.State{-0.5}, 0, 1)

	if m.Value() != -0.2 {
		t.Errorf("expected peak -0.2, got %f", m.Value())
	}
}

func TestUpstroke(t *testing.T) {
	m := NewUpstroke()

	m.Observe(cell.State{0}, 0, 0)
	m.Observe(cell.State{0.5}, 0, 1)
	m.Observe(cell.State{0.6}, 0, 2)

	if m.Value() != 0.5 {
		t.Errorf("expected max rate 0.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected zero rate after reset, got %f", m.Value())
	}
}

func TestUpstrokeSingleObservation(t *testing.T) {
	m := NewUpstroke()

	m.Observe(cell.State{0.5}, 0, 0)

	if m.Value() != 0 {
		t.Errorf("expected zero rate with one observation, got %f", m.Value())
	}
}

func TestUpstrokeIgnoresFall(t *testing.T) {
	m := NewUpstroke()

	m.Observe(cell.State{1.0}, 0, 0)
	m.Observe(cell.State{0.2}, 0, 1)

	if m.Value() != 0 {
		t.Errorf("expected falling membrane to leave rate at zero, got %f", m.Value())
	}
}
