package dynamo

import "math/rand"

// Rand is the randomness source the simulation samples from.
// *rand.Rand satisfies it; tests substitute fixed sequences.
type Rand interface {
	Float64() float64
}

func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Sequence replays a fixed list of samples, wrapping around at the end.
type Sequence struct {
	Values []float64
	next   int
}

func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}
