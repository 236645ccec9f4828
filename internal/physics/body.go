package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is a simulated sphere. Mass is derived from Radius and Density and is
// only refreshed by UpdateMass.
type Body struct {
	Position     mgl64.Vec3
	PositionPrev mgl64.Vec3
	Radius       float64
	Density      float64
	Mass         float64
	InCollision  bool
}

// NewBody creates a body at pos moving with velocity vel, encoded as
// PositionPrev = pos - dt*vel. Mass is computed from radius and density.
func NewBody(pos, vel mgl64.Vec3, radius, density, dt float64) Body {
	b := Body{
		Position:     pos,
		PositionPrev: pos.Sub(vel.Mul(dt)),
		Radius:       radius,
		Density:      density,
	}
	b.UpdateMass()
	return b
}

// SphereMass returns the mass of a sphere of the given radius and density.
func SphereMass(radius, density float64) float64 {
	return 4.0 / 3.0 * math.Pi * radius * radius * radius * density
}

// UpdateMass recomputes Mass. Call it after changing Radius or Density.
func (b *Body) UpdateMass() {
	b.Mass = SphereMass(b.Radius, b.Density)
}

// Velocity returns the implicit velocity for step size dt.
func (b Body) Velocity(dt float64) mgl64.Vec3 {
	return b.Position.Sub(b.PositionPrev).Mul(1 / dt)
}

// SetVelocity rewrites PositionPrev so the body moves with v.
func (b *Body) SetVelocity(v mgl64.Vec3, dt float64) {
	b.PositionPrev = b.Position.Sub(v.Mul(dt))
}

// Displacement is the distance travelled during the last step.
func (b Body) Displacement() mgl64.Vec3 {
	return b.Position.Sub(b.PositionPrev)
}

// Overlaps reports whether the spheres of b and o intersect.
func (b Body) Overlaps(o Body) bool {
	return overlapping(b.Position, o.Position, b.Radius, o.Radius)
}

func overlapping(pi, pj mgl64.Vec3, ri, rj float64) bool {
	d := pj.Sub(pi)
	r := ri + rj
	return d.Dot(d) < r*r
}
