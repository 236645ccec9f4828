package physics

import "github.com/go-gl/mathgl/mgl64"

// Step advances bodies[start:end] by one time step dt under gravitational
// constant g.
//
// Only bodies inside the range attract or collide with each other. Step
// mutates Position, PositionPrev and InCollision and nothing else. A range
// with end <= start or a non-positive dt leaves every body untouched.
func Step(bodies []Body, start, end int, dt, g float64) {
	if end <= start || dt <= 0 {
		return
	}

	// Scratch buffers share the store's index space; entries below start
	// are never read.
	pos := make([]mgl64.Vec3, end)
	posPrev := make([]mgl64.Vec3, end)
	tentPos := make([]mgl64.Vec3, end)
	tentPosPrev := make([]mgl64.Vec3, end)
	acc := make([]mgl64.Vec3, end)

	for i := start; i < end; i++ {
		pos[i] = bodies[i].Position
		posPrev[i] = bodies[i].PositionPrev
		tentPos[i] = pos[i]
		tentPosPrev[i] = posPrev[i]
	}

	for i := start; i < end; i++ {
		resolveCollision(bodies, start, end, i, pos, posPrev, tentPos, tentPosPrev)
	}

	if end-start >= ParallelThreshold {
		parallelFor(start, end, func(lo, hi int) {
			accumulateGravity(bodies, start, end, lo, hi, g, pos, acc)
		})
	} else {
		accumulateGravity(bodies, start, end, start, end, g, pos, acc)
	}

	dt2 := dt * dt
	for i := start; i < end; i++ {
		p := tentPos[i]
		pp := tentPosPrev[i]
		next := p.Mul(2).Sub(pp).Add(acc[i].Mul(dt2))

		bodies[i].PositionPrev = p
		bodies[i].Position = next
	}
}

// resolveCollision updates the collision flag of body i and, on first
// contact, rewrites its tentative state so the Verlet update yields the
// post-collision normal velocity.
func resolveCollision(bodies []Body, start, end, i int, pos, posPrev, tentPos, tentPosPrev []mgl64.Vec3) {
	bi := &bodies[i]

	if bi.InCollision {
		bi.InCollision = false
		for j := start; j < end; j++ {
			if j == i {
				continue
			}
			if overlapping(pos[i], pos[j], bi.Radius, bodies[j].Radius) {
				bi.InCollision = true
				break
			}
		}
		return
	}

	for j := start; j < end; j++ {
		if j == i {
			continue
		}
		if !overlapping(pos[i], pos[j], bi.Radius, bodies[j].Radius) {
			continue
		}

		bi.InCollision = true

		d := pos[j].Sub(pos[i]).Normalize()
		vi := pos[i].Sub(posPrev[i]).Dot(d)
		vj := pos[j].Sub(posPrev[j]).Dot(d)
		mi, mj := bi.Mass, bodies[j].Mass
		viNew := (vi*(mi-mj) + vj*(2*mj)) / (mi + mj)

		// Roll back to the previous position so the overlap travelled this
		// step is not counted twice.
		tentPos[i] = posPrev[i]
		tentPosPrev[i] = posPrev[i].Add(d.Mul(vi - viNew)).Add(posPrev[i].Sub(pos[i]))
		return
	}
}

// accumulateGravity writes the acceleration of bodies lo..hi-1 caused by every
// other body in [start, end).
func accumulateGravity(bodies []Body, start, end, lo, hi int, g float64, pos, acc []mgl64.Vec3) {
	for i := lo; i < hi; i++ {
		var a mgl64.Vec3
		for j := start; j < end; j++ {
			if j == i {
				continue
			}
			d := pos[j].Sub(pos[i])
			a = a.Add(d.Normalize().Mul(g * bodies[j].Mass / d.Dot(d)))
		}
		acc[i] = a
	}
}
