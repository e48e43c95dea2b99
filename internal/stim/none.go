package stim

// None delivers no current. A cell driven by it stays at rest.
type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Current(t float64) float64 { return 0 }
