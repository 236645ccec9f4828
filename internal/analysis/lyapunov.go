package analysis

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitbox/internal/physics"
)

// renormAt is the separation at which the perturbed copy is pulled back.
const renormAt = 1.0

// LyapunovExponent estimates the largest Lyapunov exponent of the bodies in
// [start, end) by stepping a reference copy and a copy whose first body is
// shifted by perturbation along x. The shift moves Position and PositionPrev
// together, so both copies start with the same velocities. The input is not
// modified.
//
// Algorithm:
// 1. Step both copies
// 2. When they drift apart by renormAt, log the growth and rescale
// 3. λ ≈ Σ ln(d/d0) / t
func LyapunovExponent(bodies []physics.Body, start, end int, g, dt, duration, perturbation float64) float64 {
	if end-start <= 0 || dt <= 0 || duration <= 0 || perturbation <= 0 {
		return 0
	}

	ref := append([]physics.Body(nil), bodies...)
	pert := append([]physics.Body(nil), bodies...)
	shift := mgl64.Vec3{perturbation, 0, 0}
	pert[start].Position = pert[start].Position.Add(shift)
	pert[start].PositionPrev = pert[start].PositionPrev.Add(shift)

	d0 := perturbation
	sumLog := 0.0
	t := 0.0

	for t < duration {
		physics.Step(ref, start, end, dt, g)
		physics.Step(pert, start, end, dt, g)
		t += dt

		sep := separation(ref, pert, start, end)
		if math.IsNaN(sep) || math.IsInf(sep, 0) {
			return math.NaN()
		}

		if sep > renormAt {
			sumLog += math.Log(sep / d0)
			scale := d0 / sep
			for i := start; i < end; i++ {
				p, q := &pert[i], ref[i]
				p.Position = q.Position.Add(p.Position.Sub(q.Position).Mul(scale))
				p.PositionPrev = q.PositionPrev.Add(p.PositionPrev.Sub(q.PositionPrev).Mul(scale))
			}
		}
	}

	if sep := separation(ref, pert, start, end); sep > 0 {
		sumLog += math.Log(sep / d0)
	}

	return sumLog / t
}

func separation(a, b []physics.Body, start, end int) float64 {
	sum := 0.0
	for i := start; i < end; i++ {
		d := b[i].Position.Sub(a[i].Position)
		sum += d.Dot(d)
	}
	return math.Sqrt(sum)
}
