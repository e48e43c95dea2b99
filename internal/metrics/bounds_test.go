package metrics

import (
	"testing"

	"github.com/okrylov/cardiosim/internal/cell"
)

func TestBounds(t *testing.T) {
	m := NewBounds(-0.1, 1.1)

	m.Observe(cell.State{0, 1, 1}, 0, 0)
	m.Observe(cell.State{0.5, 0.5, 0.9}, 0, 1)
	m.Observe(cell.State{1.5, 0.5, 0.9}, 0, 2)
	m.Observe(cell.State{0.9, 0.2, 0.8}, 0, 3)

	if m.Value() != 0.75 {
		t.Errorf("expected in-bounds fraction 0.75, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 1.0 {
		t.Errorf("expected fraction 1.0 after reset, got %f", m.Value())
	}
}

func TestBoundsEmpty(t *testing.T) {
	m := NewBounds(0, 1)

	if m.Value() != 1.0 {
		t.Errorf("expected fraction 1.0 with no samples, got %f", m.Value())
	}
}

func TestStimCount(t *testing.T) {
	m := NewStimCount()

	x := cell.State{0}
	for i, istim := range []float64{0, 1, 1, 0, 2, 0} {
		m.Observe(x, istim, float64(i))
	}

	if m.Value() != 2 {
		t.Errorf("expected 2 stimuli, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected zero count after reset, got %f", m.Value())
	}
}
