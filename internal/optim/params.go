package optim

import (
	"fmt"

	"github.com/san-kum/orbitbox/internal/metrics"
	"github.com/san-kum/orbitbox/internal/scene"
	"github.com/san-kum/orbitbox/internal/sim"
)

// Params are the knobs a Builder understands: g replaces the gravitational
// constant, speed scales every initial velocity and radius scales every
// radius (mass follows).
var Params = []string{"g", "radius", "speed"}

// Builder returns a build function for Search that applies a point to a
// fresh copy of entries and attaches the standard metrics.
func Builder(entries []scene.Entry, g, dt float64) func(Point) (*sim.Simulator, error) {
	return func(p Point) (*sim.Simulator, error) {
		gp, speed, radius := g, 1.0, 1.0
		for k, v := range p {
			switch k {
			case "g":
				gp = v
			case "speed":
				speed = v
			case "radius":
				radius = v
			default:
				return nil, fmt.Errorf("%w: %s", ErrUnknownParam, k)
			}
		}
		if radius <= 0 {
			return nil, fmt.Errorf("%w: radius %g", scene.ErrInvalidFactor, radius)
		}

		sc := scene.New()
		for _, e := range entries {
			e.Body.SetVelocity(e.Body.Velocity(dt).Mul(speed), dt)
			e.Body.Radius *= radius
			e.Body.UpdateMass()
			sc.Add(e)
		}

		s := sim.New(sc, gp)
		s.AddMetric(metrics.NewEnergyDrift(gp, dt))
		s.AddMetric(metrics.NewMomentumDrift(dt))
		s.AddMetric(metrics.NewCollisions())
		return s, nil
	}
}
