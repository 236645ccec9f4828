package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// KineticEnergy sums ½mv² over bodies[start:end] using implicit velocities.
func KineticEnergy(bodies []Body, start, end int, dt float64) float64 {
	ke := 0.0
	for i := start; i < end; i++ {
		v := bodies[i].Velocity(dt)
		ke += 0.5 * bodies[i].Mass * v.Dot(v)
	}
	return ke
}

// PotentialEnergy sums the pairwise gravitational potential -g·mᵢmⱼ/r over
// bodies[start:end].
func PotentialEnergy(bodies []Body, start, end int, g float64) float64 {
	pe := 0.0
	for i := start; i < end; i++ {
		for j := i + 1; j < end; j++ {
			r := bodies[j].Position.Sub(bodies[i].Position).Len()
			pe -= g * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

// TotalEnergy is KineticEnergy plus PotentialEnergy.
func TotalEnergy(bodies []Body, start, end int, dt, g float64) float64 {
	return KineticEnergy(bodies, start, end, dt) + PotentialEnergy(bodies, start, end, g)
}

func Momentum(bodies []Body, start, end int, dt float64) mgl64.Vec3 {
	var p mgl64.Vec3
	for i := start; i < end; i++ {
		p = p.Add(bodies[i].Velocity(dt).Mul(bodies[i].Mass))
	}
	return p
}

func CenterOfMass(bodies []Body, start, end int) mgl64.Vec3 {
	var c mgl64.Vec3
	m := 0.0
	for i := start; i < end; i++ {
		c = c.Add(bodies[i].Position.Mul(bodies[i].Mass))
		m += bodies[i].Mass
	}
	if m == 0 {
		return mgl64.Vec3{}
	}
	return c.Mul(1 / m)
}

// CollidingCount returns how many bodies in range have InCollision set.
func CollidingCount(bodies []Body, start, end int) int {
	n := 0
	for i := start; i < end; i++ {
		if bodies[i].InCollision {
			n++
		}
	}
	return n
}

// IsFinite reports whether every position in range is free of NaN and Inf.
func IsFinite(bodies []Body, start, end int) bool {
	for i := start; i < end; i++ {
		for _, v := range bodies[i].Position {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
