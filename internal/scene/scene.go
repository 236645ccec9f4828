// Package scene owns the ordered body store that the integrator steps and the
// interaction layer edits between steps.
//
// The store is laid out as
//
//	[static prefix][simulated bodies][held body]
//
// Static bodies are drawn but never stepped. The held body waits in front of
// the camera until it is launched, at which point a copy joins the simulated
// bodies. A Scene is not safe for concurrent use.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitbox/internal/physics"
)

// NoSelection is returned by Selected when no body is selected.
const NoSelection = -1

// Look carries render-only attributes. Physics never reads it.
type Look struct {
	Color [3]uint8
	Light bool
}

// Entry is a body together with its appearance.
type Entry struct {
	Body physics.Body
	Look Look
}

// Tuning holds the launch speed controls.
type Tuning struct {
	LaunchSpeedStep      float64
	LaunchSpeedThreshold float64
	LaunchSpeedGrowth    float64
}

// DefaultTuning is the launch speed behaviour of the interactive views.
func DefaultTuning() Tuning {
	return Tuning{
		LaunchSpeedStep:      0.01,
		LaunchSpeedThreshold: 0.1,
		LaunchSpeedGrowth:    1.2,
	}
}

// Scene is the body store, laid out as [static][simulated][held].
type Scene struct {
	bodies      []physics.Body
	looks       []Look
	static      int
	held        bool
	selected    int
	launchSpeed float64
	tuning      Tuning
}

// New creates a scene whose static prefix is the given entries.
func New(static ...Entry) *Scene {
	s := &Scene{
		bodies:   make([]physics.Body, 0, len(static)+16),
		looks:    make([]Look, 0, len(static)+16),
		selected: NoSelection,
		tuning:   DefaultTuning(),
	}
	for _, e := range static {
		s.bodies = append(s.bodies, e.Body)
		s.looks = append(s.looks, e.Look)
	}
	s.static = len(static)
	return s
}

// SetTuning replaces the launch speed controls.
func (s *Scene) SetTuning(t Tuning) { s.tuning = t }

// Len is the number of bodies in the store, static and held included.
func (s *Scene) Len() int { return len(s.bodies) }

// Bodies exposes the store for rendering and diagnostics. Callers must not
// modify it.
func (s *Scene) Bodies() []physics.Body { return s.bodies }

// Look returns the display attributes of body i.
func (s *Scene) Look(i int) Look { return s.looks[i] }

// Entry returns body i with its look.
func (s *Scene) Entry(i int) Entry {
	return Entry{Body: s.bodies[i], Look: s.looks[i]}
}

// Entries returns a copy of the simulated bodies with their looks.
func (s *Scene) Entries() []Entry {
	start, end := s.SimRange()
	out := make([]Entry, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, s.Entry(i))
	}
	return out
}

// SimRange returns the [start, end) index range that Step advances.
func (s *Scene) SimRange() (int, int) {
	end := len(s.bodies)
	if s.held {
		end--
	}
	return s.static, end
}

// NumSimulated is the number of bodies in SimRange.
func (s *Scene) NumSimulated() int {
	start, end := s.SimRange()
	return end - start
}

// Step advances the simulated bodies by dt.
func (s *Scene) Step(dt, g float64) {
	start, end := s.SimRange()
	physics.Step(s.bodies, start, end, dt, g)
}

// Add appends a simulated body.
func (s *Scene) Add(e Entry) {
	_, end := s.SimRange()
	s.bodies = append(s.bodies, physics.Body{})
	s.looks = append(s.looks, Look{})
	copy(s.bodies[end+1:], s.bodies[end:])
	copy(s.looks[end+1:], s.looks[end:])
	s.bodies[end] = e.Body
	s.looks[end] = e.Look
	if s.selected >= end {
		s.selected++
	}
}

// Load appends every entry as a simulated body.
func (s *Scene) Load(entries []Entry) {
	for _, e := range entries {
		s.Add(e)
	}
}

// Clear removes every simulated body and drops the selection.
func (s *Scene) Clear() {
	start, end := s.SimRange()
	s.bodies = append(s.bodies[:start], s.bodies[end:]...)
	s.looks = append(s.looks[:start], s.looks[end:]...)
	s.selected = NoSelection
}

// Hold parks e as the held body, replacing any previous one. The held body is
// at rest.
func (s *Scene) Hold(e Entry) {
	e.Body.PositionPrev = e.Body.Position
	e.Body.InCollision = false
	if s.held {
		last := len(s.bodies) - 1
		s.bodies[last] = e.Body
		s.looks[last] = e.Look
		return
	}
	s.bodies = append(s.bodies, e.Body)
	s.looks = append(s.looks, e.Look)
	s.held = true
}

// Held returns the held body, if any.
func (s *Scene) Held() (Entry, bool) {
	if !s.held {
		return Entry{}, false
	}
	return s.Entry(len(s.bodies) - 1), true
}

// MoveHeld places the held body at p, at rest.
func (s *Scene) MoveHeld(p mgl64.Vec3) {
	if !s.held {
		return
	}
	b := &s.bodies[len(s.bodies)-1]
	b.Position = p
	b.PositionPrev = p
}

// Launch releases a copy of the held body along dir at the current launch
// speed. The speed is a displacement per step.
func (s *Scene) Launch(dir mgl64.Vec3) error {
	e, ok := s.Held()
	if !ok {
		return ErrNothingHeld
	}
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	e.Body.PositionPrev = e.Body.Position.Sub(dir.Mul(s.launchSpeed))
	s.Add(e)
	return nil
}

// LaunchSpeed is the displacement per step given to a launched body.
func (s *Scene) LaunchSpeed() float64 { return s.launchSpeed }

// AdjustLaunchSpeed changes the launch speed by ticks notches: linear steps
// below the threshold, geometric above it. The speed never goes negative.
func (s *Scene) AdjustLaunchSpeed(ticks float64) {
	t := s.tuning
	if s.launchSpeed < t.LaunchSpeedThreshold {
		s.launchSpeed += t.LaunchSpeedStep * ticks
	} else {
		s.launchSpeed *= math.Pow(t.LaunchSpeedGrowth, ticks)
	}
	if s.launchSpeed < 0 {
		s.launchSpeed = 0
	}
}

// ResetLaunchSpeed stops the held body from being thrown.
func (s *Scene) ResetLaunchSpeed() { s.launchSpeed = 0 }

// Selected is the selected index, or NoSelection.
func (s *Scene) Selected() int { return s.selected }

func (s *Scene) Select(i int) error {
	if i < 0 || i >= len(s.bodies) {
		return ErrIndexOutOfRange
	}
	s.selected = i
	return nil
}

// SelectNext moves the selection forward, wrapping over the whole store.
func (s *Scene) SelectNext() {
	if len(s.bodies) == 0 {
		return
	}
	s.selected++
	if s.selected >= len(s.bodies) {
		s.selected = 0
	}
}

// SelectPrev moves the selection backward, wrapping over the whole store.
func (s *Scene) SelectPrev() {
	if len(s.bodies) == 0 {
		return
	}
	s.selected--
	if s.selected < 0 {
		s.selected = len(s.bodies) - 1
	}
}

func (s *Scene) Deselect() { s.selected = NoSelection }

// target is the selected body, falling back to the held body.
func (s *Scene) target() (*physics.Body, error) {
	if s.selected != NoSelection {
		return &s.bodies[s.selected], nil
	}
	if s.held {
		return &s.bodies[len(s.bodies)-1], nil
	}
	return nil, ErrNoTarget
}

// ScaleRadius multiplies the target's radius by factor and refreshes its mass.
func (s *Scene) ScaleRadius(factor float64) error {
	if !(factor > 0) || math.IsInf(factor, 1) {
		return ErrInvalidFactor
	}
	b, err := s.target()
	if err != nil {
		return err
	}
	b.Radius *= factor
	b.UpdateMass()
	return nil
}

// ScaleDensity multiplies the target's density by factor and refreshes its
// mass.
func (s *Scene) ScaleDensity(factor float64) error {
	if !(factor > 0) || math.IsInf(factor, 1) {
		return ErrInvalidFactor
	}
	b, err := s.target()
	if err != nil {
		return err
	}
	b.Density *= factor
	b.UpdateMass()
	return nil
}

// Translate moves the selected body's current position only, so the move
// also shows up as velocity on the next step.
func (s *Scene) Translate(delta mgl64.Vec3) error {
	if s.selected == NoSelection {
		return ErrNoTarget
	}
	b := &s.bodies[s.selected]
	b.Position = b.Position.Add(delta)
	return nil
}

// Clone returns an independent copy of the scene.
func (s *Scene) Clone() *Scene {
	c := *s
	c.bodies = append([]physics.Body(nil), s.bodies...)
	c.looks = append([]Look(nil), s.looks...)
	return &c
}
