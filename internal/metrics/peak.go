package metrics

import (
	"math"

	"github.com/okrylov/cardiosim/internal/cell"
)

// Peak tracks the maximum membrane potential seen during a run.
type Peak struct {
	name    string
	max     float64
	samples int
}

func NewPeak() *Peak {
	return &Peak{
		name: "peak_u",
		max:  math.Inf(-1),
	}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x cell.State, istim float64, t float64) {
	if len(x) == 0 {
		return
	}
	if x[0] > p.max {
		p.max = x[0]
	}
	p.samples++
}

func (p *Peak) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.max
}

func (p *Peak) Reset() {
	p.max = math.Inf(-1)
	p.samples = 0
}
