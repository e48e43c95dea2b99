package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrumSine(t *testing.T) {
	n := 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)
	if len(ps) != n/2 {
		t.Fatalf("expected %d bins, got %d", n/2, len(ps))
	}

	peak := 0
	for i, v := range ps {
		if v > ps[peak] {
			peak = i
		}
	}
	if peak != 8 {
		t.Errorf("expected spectral peak at bin 8, got %d", peak)
	}
}

func TestPowerSpectrumPadsToPowerOfTwo(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i % 7)
	}

	ps := PowerSpectrum(data)
	if len(ps) != 64 {
		t.Errorf("expected 100 samples padded to 128, giving 64 bins, got %d", len(ps))
	}
}

func TestPowerSpectrumEmpty(t *testing.T) {
	if ps := PowerSpectrum(nil); ps != nil {
		t.Errorf("expected nil spectrum for empty trace, got %v", ps)
	}
}

func TestDominantFrequency(t *testing.T) {
	n := 64
	dt := 1.0 / float64(n)
	data := make([]float64, n)
	for i := range data {
		data[i] = 0.5 + math.Sin(2*math.Pi*8*float64(i)*dt)
	}

	f := DominantFrequency(data, dt)
	if math.Abs(f-8.0) > 1e-9 {
		t.Errorf("expected dominant frequency 8, got %f", f)
	}
}

func TestDominantFrequencyFlat(t *testing.T) {
	data := []float64{0.3, 0.3, 0.3, 0.3}

	if f := DominantFrequency(data, 0.1); f != 0 {
		t.Errorf("expected zero frequency for flat trace, got %f", f)
	}
}
