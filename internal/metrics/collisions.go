package metrics

import "github.com/san-kum/orbitbox/internal/sim"

// Collisions counts rising edges of InCollision. Both partners of an impact
// flip, so one impact between two bodies counts twice.
type Collisions struct {
	name  string
	prev  []bool
	count int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(f sim.Frame) {
	n := f.End - f.Start
	if len(c.prev) < n {
		c.prev = append(c.prev, make([]bool, n-len(c.prev))...)
	}
	for k := 0; k < n; k++ {
		hit := f.Bodies[f.Start+k].InCollision
		if hit && !c.prev[k] {
			c.count++
		}
		c.prev[k] = hit
	}
}

func (c *Collisions) Value() float64 { return float64(c.count) }

func (c *Collisions) Count() int { return c.count }

func (c *Collisions) Reset() {
	c.prev = c.prev[:0]
	c.count = 0
}
