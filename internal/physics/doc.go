// Package physics advances rigid spheres under mutual gravity and elastic
// collisions.
//
// Bodies carry no velocity field. Velocity is implied by two stored positions
// and the step size:
//
//	v = (Position - PositionPrev) / dt
//
// [Step] is a Störmer–Verlet integrator over a contiguous range of a body
// slice. Bodies outside the range are neither moved nor considered for
// gravity or collisions, so static entries can live in the same slice.
//
// # Collisions
//
// Each body resolves at most one collision partner per step: the first
// overlapping body by index. An impulse is applied only on first contact;
// while the pair keeps overlapping the InCollision flag suppresses further
// impulses. Simultaneous contact with several bodies is not modelled.
//
// # Singularities
//
// Coincident centres are not guarded. Gravity and the collision normal
// divide by the distance and the resulting NaN/Inf propagates into later
// positions.
//
// # Thread Safety
//
// Step assumes exclusive access to the bodies in range for its duration.
package physics
