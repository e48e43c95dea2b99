package metrics

import "github.com/okrylov/cardiosim/internal/cell"

// Bounds scores how well the state stayed inside the physiological
// range. The value is the fraction of observed samples with every
// component inside [lo, hi].
type Bounds struct {
	name       string
	lo, hi     float64
	violations int
	samples    int
}

func NewBounds(lo, hi float64) *Bounds {
	return &Bounds{
		name: "in_bounds",
		lo:   lo,
		hi:   hi,
	}
}

func (b *Bounds) Name() string { return b.name }

func (b *Bounds) Observe(x cell.State, istim float64, t float64) {
	b.samples++
	for _, val := range x {
		if val < b.lo || val > b.hi {
			b.violations++
			break
		}
	}
}

func (b *Bounds) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounds) Reset() {
	b.violations = 0
	b.samples = 0
}
