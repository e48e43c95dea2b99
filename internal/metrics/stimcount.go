package metrics

import "github.com/okrylov/cardiosim/internal/cell"

// StimCount counts delivered stimuli as rising edges of the applied
// current.
type StimCount struct {
	name  string
	count int
	prev  float64
}

func NewStimCount() *StimCount {
	return &StimCount{name: "stim_count"}
}

func (s *StimCount) Name() string { return s.name }

func (s *StimCount) Observe(x cell.State, istim float64, t float64) {
	if istim != 0 && s.prev == 0 {
		s.count++
	}
	s.prev = istim
}

func (s *StimCount) Value() float64 {
	return float64(s.count)
}

func (s *StimCount) Reset() {
	s.count = 0
	s.prev = 0
}
