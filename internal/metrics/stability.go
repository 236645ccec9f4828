package metrics

import (
	"github.com/san-kum/orbitbox/internal/physics"
	"github.com/san-kum/orbitbox/internal/sim"
)

// Bounded is the fraction of frames in which every simulated body stays
// within radius of the centre of mass.
type Bounded struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewBounded(radius float64) *Bounded {
	return &Bounded{
		name:   "bounded",
		radius: radius,
	}
}

func (b *Bounded) Name() string {
	return b.name
}

func (b *Bounded) Observe(f sim.Frame) {
	b.samples++
	com := physics.CenterOfMass(f.Bodies, f.Start, f.End)
	for i := f.Start; i < f.End; i++ {
		if f.Bodies[i].Position.Sub(com).Len() > b.radius {
			b.violations++
			break
		}
	}
}

func (b *Bounded) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounded) Reset() {
	b.violations = 0
	b.samples = 0
}
