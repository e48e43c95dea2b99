package metrics

import "github.com/okrylov/cardiosim/internal/cell"

// Upstroke tracks the maximum rate of rise of the membrane potential,
// estimated by finite differences between consecutive observations.
type Upstroke struct {
	name    string
	maxRate float64
	prevU   float64
	prevT   float64
	first   bool
}

func NewUpstroke() *Upstroke {
	return &Upstroke{
		name:  "upstroke_rate",
		first: true,
	}
}

func (u *Upstroke) Name() string { return u.name }

func (u *Upstroke) Observe(x cell.State, istim float64, t float64) {
	if len(x) == 0 {
		return
	}
	if u.first {
		u.prevU = x[0]
		u.prevT = t
		u.first = false
		return
	}
	dt := t - u.prevT
	if dt > 0 {
		rate := (x[0] - u.prevU) / dt
		if rate > u.maxRate {
			u.maxRate = rate
		}
	}
	u.prevU = x[0]
	u.prevT = t
}

func (u *Upstroke) Value() float64 {
	return u.maxRate
}

func (u *Upstroke) Reset() {
	u.maxRate = 0
	u.prevU = 0
	u.prevT = 0
	u.first = true
}
