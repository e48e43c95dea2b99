package stim

// S1S2 runs a premature stimulation protocol: a finite train of S1
// conditioning beats followed by a single S2 extrastimulus delivered
// Interval after the onset of the last S1 beat. The S2 pulse reuses
// the S1 amplitude and duration.
type S1S2 struct {
	S1       Train
	Interval float64
}

// NewS1S2 builds the protocol around a conditioning train. The train
// must have a positive Count for the S2 timing to be defined.
func NewS1S2(s1 Train, interval float64) *S1S2 {
	return &S1S2{S1: s1, Interval: interval}
}

// S2Onset returns the time the extrastimulus switches on.
func (s *S1S2) S2Onset() float64 {
	return s.S1.Start + float64(s.S1.Count-1)*s.S1.Period + s.Interval
}

func (s *S1S2) Current(t float64) float64 {
	if c := s.S1.Current(t); c != 0 {
		return c
	}
	onset := s.S2Onset()
	if t >= onset && t < onset+s.S1.Duration {
		return s.S1.Amplitude
	}
	return 0
}
