package stim

import (
	"errors"
	"testing"

	"github.com/okrylov/cardiosim/internal/cell"
)

func TestPulseWindow(t *testing.T) {
	p := NewPulse(2.0, 1.0, 0.5)

	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"before onset", 0.5, 0},
		{"at onset", 1.0, 2.0},
		{"mid pulse", 1.25, 2.0},
		{"at offset", 1.5, 0},
		{"after offset", 2.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Current(tt.t); got != tt.want {
				t.Errorf("expected %g at t=%g, got %g", tt.want, tt.t, got)
			}
		})
	}
}

func TestPulseSetParam(t *testing.T) {
	p := NewPulse(1.0, 0.1, 0.2)

	if err := p.SetParam("amplitude", 2.5); err != nil {
		t.Fatalf("set param failed: %v", err)
	}
	if p.Amplitude != 2.5 {
		t.Errorf("expected amplitude 2.5, got %g", p.Amplitude)
	}

	if err := p.SetParam("bogus", 1); !errors.Is(err, cell.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for unknown name, got %v", err)
	}
}

func TestTrainBeats(t *testing.T) {
	tr := NewTrain(1.0, 0, 0.2, 1000, 4)

	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"first beat onset", 0, 1.0},
		{"first beat mid", 0.1, 1.0},
		{"first beat end", 0.2, 0},
		{"between beats", 500, 0},
		{"second beat onset", 1000, 1.0},
		{"fourth beat mid", 3000.1, 1.0},
		{"after last beat", 4000.1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Current(tt.t); got != tt.want {
				t.Errorf("expected %g at t=%g, got %g", tt.want, tt.t, got)
			}
		})
	}
}

func TestTrainUnlimited(t *testing.T) {
	tr := NewTrain(1.0, 0, 0.2, 100, 0)

	if got := tr.Current(99100.05); got != 1.0 {
		t.Errorf("expected unlimited train to keep firing, got %g", got)
	}
}

func TestTrainNonPositivePeriod(t *testing.T) {
	tr := NewTrain(1.0, 0, 0.2, 0, 4)

	if got := tr.Current(0.1); got != 0 {
		t.Errorf("expected no current for zero period, got %g", got)
	}
}

func TestTrainBeforeStart(t *testing.T) {
	tr := NewTrain(1.0, 100, 0.2, 1000, 4)

	if got := tr.Current(50); got != 0 {
		t.Errorf("expected no current before start, got %g", got)
	}
}

func TestS1S2(t *testing.T) {
	s := NewS1S2(Train{Amplitude: 1.0, Start: 0, Duration: 2, Period: 300, Count: 3}, 150)

	if onset := s.S2Onset(); onset != 750 {
		t.Fatalf("expected S2 onset at 750, got %g", onset)
	}

	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"first s1", 1, 1.0},
		{"second s1", 301, 1.0},
		{"third s1", 601, 1.0},
		{"diastole", 100, 0},
		{"s2 onset", 750, 1.0},
		{"s2 mid", 751, 1.0},
		{"s2 end", 752, 0},
		{"no fourth s1", 901, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Current(tt.t); got != tt.want {
				t.Errorf("expected %g at t=%g, got %g", tt.want, tt.t, got)
			}
		})
	}
}

func TestSum(t *testing.T) {
	s := NewSum(NewPulse(1.0, 0, 1.0), NewPulse(2.0, 0.5, 1.0))

	tests := []struct {
		t    float64
		want float64
	}{
		{0.25, 1.0},
		{0.75, 3.0},
		{1.25, 2.0},
		{2.0, 0},
	}

	for _, tt := range tests {
		if got := s.Current(tt.t); got != tt.want {
			t.Errorf("expected %g at t=%g, got %g", tt.want, tt.t, got)
		}
	}
}

func TestNone(t *testing.T) {
	n := NewNone()

	for _, tt := range []float64{0, 0.1, 100} {
		if got := n.Current(tt); got != 0 {
			t.Errorf("expected zero current at t=%g, got %g", tt, got)
		}
	}
}
