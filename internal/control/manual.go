package control

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitbox/internal/config"
	"github.com/san-kum/orbitbox/internal/physics"
	"github.com/san-kum/orbitbox/internal/scene"
)

type Action int

const (
	None Action = iota
	SelectNext
	SelectPrev
	Deselect
	GrowRadius
	ShrinkRadius
	Denser
	Lighter
	MoveLeft
	MoveRight
	MoveDown
	MoveUp
	MoveNear
	MoveFar
	ClearScene
	LaunchFaster
	LaunchSlower
	LaunchStop
)

var actionNames = map[Action]string{
	None:         "none",
	SelectNext:   "select next",
	SelectPrev:   "select previous",
	Deselect:     "deselect",
	GrowRadius:   "grow radius",
	ShrinkRadius: "shrink radius",
	Denser:       "increase density",
	Lighter:      "decrease density",
	MoveLeft:     "move -x",
	MoveRight:    "move +x",
	MoveDown:     "move -y",
	MoveUp:       "move +y",
	MoveNear:     "move -z",
	MoveFar:      "move +z",
	ClearScene:   "clear",
	LaunchFaster: "launch speed up",
	LaunchSlower: "launch speed down",
	LaunchStop:   "launch speed zero",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Manual applies user edits to a scene between steps. It is not safe for
// concurrent use.
type Manual struct {
	sc     *scene.Scene
	tuning config.InteractionConfig
	dt     float64
}

func NewManual(sc *scene.Scene, tuning config.InteractionConfig, dt float64) *Manual {
	m := &Manual{tuning: tuning, dt: dt}
	m.SetScene(sc)
	return m
}

func (m *Manual) Scene() *scene.Scene { return m.sc }

// SetScene points the manual at a replacement scene, keeping the tuning.
func (m *Manual) SetScene(sc *scene.Scene) {
	sc.SetTuning(scene.Tuning{
		LaunchSpeedStep:      m.tuning.LaunchSpeedStep,
		LaunchSpeedThreshold: m.tuning.LaunchSpeedThreshold,
		LaunchSpeedGrowth:    scene.DefaultTuning().LaunchSpeedGrowth,
	})
	m.sc = sc
}

func (m *Manual) Apply(a Action) error {
	sc := m.sc
	step := m.tuning.TranslateStep
	grow := 1 + m.tuning.ScaleStep

	switch a {
	case None:
	case SelectNext:
		sc.SelectNext()
	case SelectPrev:
		sc.SelectPrev()
	case Deselect:
		sc.Deselect()
	case GrowRadius:
		return sc.ScaleRadius(grow)
	case ShrinkRadius:
		return sc.ScaleRadius(1 / grow)
	case Denser:
		return sc.ScaleDensity(m.tuning.DensityStep)
	case Lighter:
		return sc.ScaleDensity(1 / m.tuning.DensityStep)
	case MoveLeft:
		return sc.Translate(mgl64.Vec3{-step, 0, 0})
	case MoveRight:
		return sc.Translate(mgl64.Vec3{step, 0, 0})
	case MoveDown:
		return sc.Translate(mgl64.Vec3{0, -step, 0})
	case MoveUp:
		return sc.Translate(mgl64.Vec3{0, step, 0})
	case MoveNear:
		return sc.Translate(mgl64.Vec3{0, 0, -step})
	case MoveFar:
		return sc.Translate(mgl64.Vec3{0, 0, step})
	case ClearScene:
		sc.Clear()
	case LaunchFaster:
		sc.AdjustLaunchSpeed(1)
	case LaunchSlower:
		sc.AdjustLaunchSpeed(-1)
	case LaunchStop:
		sc.ResetLaunchSpeed()
	default:
		return fmt.Errorf("control: unknown %v", a)
	}
	return nil
}

// LoadSlot appends the premade scene bound to number key slot (1-based, in
// PremadeNames order).
func (m *Manual) LoadSlot(slot int) (string, error) {
	names := scene.PremadeNames()
	if slot < 1 || slot > len(names) {
		return "", fmt.Errorf("%w: slot %d", scene.ErrUnknownScene, slot)
	}
	name := names[slot-1]
	entries, err := scene.Premade(name, m.dt)
	if err != nil {
		return "", err
	}
	m.sc.Load(entries)
	return name, nil
}

// DefaultHeld is the body parked in front of the camera when a renderer
// starts.
func DefaultHeld() scene.Entry {
	return scene.Entry{
		Body: physics.NewBody(mgl64.Vec3{}, mgl64.Vec3{}, 0.5, 1, 1),
		Look: scene.Look{Color: [3]uint8{240, 240, 240}},
	}
}

// HoldAt keeps the held body at p, creating the default one if needed.
func (m *Manual) HoldAt(p mgl64.Vec3) {
	if _, ok := m.sc.Held(); !ok {
		e := DefaultHeld()
		e.Body.Position = p
		m.sc.Hold(e)
		return
	}
	m.sc.MoveHeld(p)
}

// Launch throws a copy of the held body along dir.
func (m *Manual) Launch(dir mgl64.Vec3) error {
	return m.sc.Launch(dir)
}
