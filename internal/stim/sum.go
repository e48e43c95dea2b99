package stim

import "github.com/okrylov/cardiosim/internal/cell"

// Sum superimposes several protocols, adding their currents.
type Sum struct {
	sources []cell.Stimulus
}

func NewSum(sources ...cell.Stimulus) *Sum {
	return &Sum{sources: sources}
}

func (s *Sum) Current(t float64) float64 {
	total := 0.0
	for _, src := range s.sources {
		total += src.Current(t)
	}
	return total
}
