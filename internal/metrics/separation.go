package metrics

import (
	"math"

	"github.com/san-kum/starfall/internal/sim"
)

// Separation is the closest the two stars came to each other.
type Separation struct {
	name    string
	min     float64
	samples int
}

func NewSeparation() *Separation {
	return &Separation{name: "min_separation", min: math.Inf(1)}
}

func (s *Separation) Name() string {
	return s.name
}

func (s *Separation) Observe(f sim.Frame) {
	s.samples++
	s.min = math.Min(s.min, f.Separation)
}

func (s *Separation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.min
}

func (s *Separation) Reset() {
	s.min = math.Inf(1)
	s.samples = 0
}
