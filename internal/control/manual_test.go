package control

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitbox/internal/config"
	"github.com/san-kum/orbitbox/internal/physics"
	"github.com/san-kum/orbitbox/internal/scene"
)

const dt = 0.01

func newManual(t *testing.T) *Manual {
	t.Helper()
	sc := scene.New()
	sc.Add(scene.Entry{Body: physics.NewBody(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{}, 0.5, 1, dt)})
	sc.Add(scene.Entry{Body: physics.NewBody(mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{}, 0.5, 1, dt)})
	return NewManual(sc, config.DefaultInteraction(), dt)
}

func TestApplyTranslate(t *testing.T) {
	tests := []struct {
		action Action
		want   mgl64.Vec3
	}{
		{MoveLeft, mgl64.Vec3{1 - 0.005, 0, 0}},
		{MoveRight, mgl64.Vec3{1 + 0.005, 0, 0}},
		{MoveDown, mgl64.Vec3{1, -0.005, 0}},
		{MoveUp, mgl64.Vec3{1, 0.005, 0}},
		{MoveNear, mgl64.Vec3{1, 0, -0.005}},
		{MoveFar, mgl64.Vec3{1, 0, 0.005}},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			m := newManual(t)
			if err := m.Apply(tt.action); !errors.Is(err, scene.ErrNoTarget) {
				t.Fatalf("expected ErrNoTarget without selection, got %v", err)
			}
			if err := m.Scene().Select(0); err != nil {
				t.Fatal(err)
			}
			if err := m.Apply(tt.action); err != nil {
				t.Fatalf("apply failed: %v", err)
			}
			got := m.Scene().Bodies()[0].Position
			if got.Sub(tt.want).Len() > 1e-12 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyScaling(t *testing.T) {
	m := newManual(t)
	if err := m.Scene().Select(1); err != nil {
		t.Fatal(err)
	}

	if err := m.Apply(GrowRadius); err != nil {
		t.Fatal(err)
	}
	b := m.Scene().Bodies()[1]
	if math.Abs(b.Radius-0.5*1.02) > 1e-12 {
		t.Errorf("expected radius %f, got %f", 0.5*1.02, b.Radius)
	}
	if err := m.Apply(ShrinkRadius); err != nil {
		t.Fatal(err)
	}

	if err := m.Apply(Denser); err != nil {
		t.Fatal(err)
	}
	b = m.Scene().Bodies()[1]
	if math.Abs(b.Density-1.2) > 1e-12 {
		t.Errorf("expected density 1.2, got %f", b.Density)
	}
	if math.Abs(b.Mass-physics.SphereMass(0.5, 1.2)) > 1e-9 {
		t.Errorf("mass not refreshed: %f", b.Mass)
	}
	if err := m.Apply(Lighter); err != nil {
		t.Fatal(err)
	}
	if math.Abs(m.Scene().Bodies()[1].Density-1) > 1e-12 {
		t.Errorf("expected density back at 1, got %f", m.Scene().Bodies()[1].Density)
	}
}

func TestApplySelectionAndClear(t *testing.T) {
	m := newManual(t)
	m.HoldAt(mgl64.Vec3{0, 0, 5})

	for _, a := range []Action{SelectNext, SelectNext, SelectNext} {
		if err := m.Apply(a); err != nil {
			t.Fatal(err)
		}
	}
	if got := m.Scene().Selected(); got != 2 {
		t.Errorf("expected selection on the held body, got %d", got)
	}
	if err := m.Apply(SelectPrev); err != nil {
		t.Fatal(err)
	}
	if err := m.Apply(Deselect); err != nil {
		t.Fatal(err)
	}
	if got := m.Scene().Selected(); got != scene.NoSelection {
		t.Errorf("expected no selection, got %d", got)
	}

	if err := m.Apply(ClearScene); err != nil {
		t.Fatal(err)
	}
	if m.Scene().NumSimulated() != 0 {
		t.Errorf("expected empty simulated set, got %d", m.Scene().NumSimulated())
	}
	if _, ok := m.Scene().Held(); !ok {
		t.Error("clear must keep the held body")
	}
}

func TestLaunchFlow(t *testing.T) {
	m := newManual(t)
	if err := m.Launch(mgl64.Vec3{0, 0, -1}); !errors.Is(err, scene.ErrNothingHeld) {
		t.Fatalf("expected ErrNothingHeld, got %v", err)
	}

	m.HoldAt(mgl64.Vec3{0, 0, 5})
	m.HoldAt(mgl64.Vec3{0, 0, 6})
	if m.Scene().Len() != 3 {
		t.Fatalf("HoldAt should reuse the held body, len %d", m.Scene().Len())
	}

	for i := 0; i < 3; i++ {
		if err := m.Apply(LaunchFaster); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Apply(LaunchSlower); err != nil {
		t.Fatal(err)
	}
	if math.Abs(m.Scene().LaunchSpeed()-0.02) > 1e-12 {
		t.Errorf("expected launch speed 0.02, got %f", m.Scene().LaunchSpeed())
	}

	if err := m.Launch(mgl64.Vec3{0, 0, -1}); err != nil {
		t.Fatalf("launch failed: %v", err)
	}
	if m.Scene().NumSimulated() != 3 {
		t.Errorf("expected 3 simulated bodies, got %d", m.Scene().NumSimulated())
	}
	launched := m.Scene().Bodies()[2]
	if d := launched.Displacement(); math.Abs(d.Z()+0.02) > 1e-12 {
		t.Errorf("expected per-step displacement -0.02 along z, got %v", d)
	}

	if err := m.Apply(LaunchStop); err != nil {
		t.Fatal(err)
	}
	if m.Scene().LaunchSpeed() != 0 {
		t.Error("expected launch speed reset")
	}
}

func TestLoadSlot(t *testing.T) {
	m := newManual(t)
	names := scene.PremadeNames()

	name, err := m.LoadSlot(1)
	if err != nil {
		t.Fatalf("load slot failed: %v", err)
	}
	if name != names[0] {
		t.Errorf("expected %s, got %s", names[0], name)
	}
	if m.Scene().NumSimulated() <= 2 {
		t.Error("expected premade bodies appended")
	}

	if _, err := m.LoadSlot(len(names) + 1); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("expected ErrUnknownScene, got %v", err)
	}
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		key  string
		want Action
	}{
		{"e", SelectNext},
		{"q", SelectPrev},
		{"esc", Deselect},
		{"R", GrowRadius},
		{"F", ShrinkRadius},
		{"t", Denser},
		{"g", Lighter},
		{"h", MoveLeft},
		{"i", MoveFar},
		{"`", ClearScene},
		{"]", LaunchFaster},
	}
	for _, tt := range tests {
		got, ok := KeyAction(tt.key)
		if !ok || got != tt.want {
			t.Errorf("KeyAction(%q) = %v, %v; want %v", tt.key, got, ok, tt.want)
		}
	}
	if _, ok := KeyAction("x"); ok {
		t.Error("x is a camera key")
	}

	if slot, ok := PremadeSlot("3"); !ok || slot != 3 {
		t.Errorf("PremadeSlot(3) = %d, %v", slot, ok)
	}
	for _, k := range []string{"0", "a", "12"} {
		if _, ok := PremadeSlot(k); ok {
			t.Errorf("PremadeSlot(%q) should not match", k)
		}
	}
}
