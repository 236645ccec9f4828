package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/orbitbox/internal/sim"
)

// Separation records the distance between two store indices on every frame.
// Frames where either index is missing are skipped.
type Separation struct {
	name    string
	i, j    int
	min     float64
	max     float64
	samples []float64
}

func NewSeparation(i, j int) *Separation {
	s := &Separation{name: fmt.Sprintf("separation_%d_%d", i, j), i: i, j: j}
	s.Reset()
	return s
}

func (s *Separation) Name() string { return s.name }

func (s *Separation) Observe(f sim.Frame) {
	if s.i >= len(f.Bodies) || s.j >= len(f.Bodies) || s.i < 0 || s.j < 0 {
		return
	}
	d := f.Bodies[s.j].Position.Sub(f.Bodies[s.i].Position).Len()
	s.samples = append(s.samples, d)
	s.min = math.Min(s.min, d)
	s.max = math.Max(s.max, d)
}

// Value is the closest approach seen.
func (s *Separation) Value() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return s.min
}

func (s *Separation) Min() float64 { return s.Value() }

func (s *Separation) Max() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return s.max
}

func (s *Separation) Samples() []float64 { return s.samples }

func (s *Separation) Reset() {
	s.samples = s.samples[:0]
	s.min = math.Inf(1)
	s.max = math.Inf(-1)
}
