package scene_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitbox/internal/physics"
	"github.com/san-kum/orbitbox/internal/scene"
)

const dt = 0.01

func entry(x, vx float64) scene.Entry {
	return scene.Entry{
		Body: physics.NewBody(mgl64.Vec3{x, 0, 0}, mgl64.Vec3{vx, 0, 0}, 0.5, 1, dt),
		Look: scene.Look{Color: [3]uint8{200, 200, 200}},
	}
}

var _ = Describe("Scene", func() {
	var sc *scene.Scene

	BeforeEach(func() {
		sc = scene.New(entry(-100, 0))
		sc.Load([]scene.Entry{entry(-2, 0.1), entry(2, -0.1)})
	})

	Describe("layout", func() {
		It("keeps the static prefix out of the simulated range", func() {
			start, end := sc.SimRange()
			Expect(start).To(Equal(1))
			Expect(end).To(Equal(3))
			Expect(sc.Len()).To(Equal(3))
		})

		It("keeps the held body after every simulated body", func() {
			sc.Hold(entry(10, 0))
			sc.Add(entry(5, 0))

			start, end := sc.SimRange()
			Expect(end - start).To(Equal(3))
			Expect(sc.Len()).To(Equal(5))
			Expect(sc.Bodies()[4].Position.X()).To(Equal(10.0))
			Expect(sc.Bodies()[3].Position.X()).To(Equal(5.0))
		})

		It("returns copies of the simulated entries", func() {
			es := sc.Entries()
			Expect(es).To(HaveLen(2))
			es[0].Body.Radius = 9
			Expect(sc.Bodies()[1].Radius).To(Equal(0.5))
		})
	})

	Describe("Step", func() {
		It("advances the simulated bodies only", func() {
			sc.Hold(entry(10, 0))
			sc.Step(dt, 0)

			b := sc.Bodies()
			Expect(b[0].Position.X()).To(Equal(-100.0))
			Expect(b[1].Position.X()).To(BeNumerically("~", -2+0.1*dt, 1e-12))
			Expect(b[2].Position.X()).To(BeNumerically("~", 2-0.1*dt, 1e-12))
			Expect(b[3].Position.X()).To(Equal(10.0))
		})
	})

	Describe("Clear", func() {
		It("keeps the static prefix and the held body", func() {
			sc.Hold(entry(10, 0))
			Expect(sc.Select(1)).To(Succeed())
			sc.Clear()

			Expect(sc.Len()).To(Equal(2))
			Expect(sc.NumSimulated()).To(Equal(0))
			Expect(sc.Selected()).To(Equal(scene.NoSelection))
			_, ok := sc.Held()
			Expect(ok).To(BeTrue())
		})
	})

	Describe("holding and launching", func() {
		It("parks the held body at rest", func() {
			sc.Hold(entry(10, 3))
			h, ok := sc.Held()
			Expect(ok).To(BeTrue())
			Expect(h.Body.PositionPrev).To(Equal(h.Body.Position))

			sc.MoveHeld(mgl64.Vec3{1, 2, 3})
			h, _ = sc.Held()
			Expect(h.Body.Position).To(Equal(mgl64.Vec3{1, 2, 3}))
			Expect(h.Body.PositionPrev).To(Equal(mgl64.Vec3{1, 2, 3}))
		})

		It("replaces the held body instead of stacking", func() {
			sc.Hold(entry(10, 0))
			sc.Hold(entry(20, 0))
			Expect(sc.Len()).To(Equal(4))
			h, _ := sc.Held()
			Expect(h.Body.Position.X()).To(Equal(20.0))
		})

		It("launches a copy with the launch speed as per-step displacement", func() {
			sc.Hold(entry(10, 0))
			sc.AdjustLaunchSpeed(3)
			Expect(sc.Launch(mgl64.Vec3{0, 2, 0})).To(Succeed())

			Expect(sc.NumSimulated()).To(Equal(3))
			_, end := sc.SimRange()
			b := sc.Bodies()[end-1]
			Expect(b.Position).To(Equal(mgl64.Vec3{10, 0, 0}))
			Expect(b.Displacement().Y()).To(BeNumerically("~", 0.03, 1e-12))

			_, ok := sc.Held()
			Expect(ok).To(BeTrue())
		})

		It("refuses to launch without a held body", func() {
			Expect(sc.Launch(mgl64.Vec3{1, 0, 0})).To(MatchError(scene.ErrNothingHeld))
		})
	})

	Describe("AdjustLaunchSpeed", func() {
		It("never goes negative", func() {
			sc.AdjustLaunchSpeed(-4)
			Expect(sc.LaunchSpeed()).To(Equal(0.0))
		})

		It("steps linearly below the threshold", func() {
			sc.AdjustLaunchSpeed(5)
			Expect(sc.LaunchSpeed()).To(BeNumerically("~", 0.05, 1e-12))
			sc.AdjustLaunchSpeed(-2)
			Expect(sc.LaunchSpeed()).To(BeNumerically("~", 0.03, 1e-12))
		})

		It("grows geometrically above the threshold", func() {
			sc.SetTuning(scene.Tuning{LaunchSpeedStep: 0.01, LaunchSpeedThreshold: 0.05, LaunchSpeedGrowth: 1.2})
			sc.AdjustLaunchSpeed(6)
			Expect(sc.LaunchSpeed()).To(BeNumerically("~", 0.06, 1e-12))
			sc.AdjustLaunchSpeed(1)
			Expect(sc.LaunchSpeed()).To(BeNumerically("~", 0.072, 1e-12))
			sc.AdjustLaunchSpeed(-1)
			Expect(sc.LaunchSpeed()).To(BeNumerically("~", 0.06, 1e-12))
		})
	})

	Describe("selection", func() {
		It("starts empty", func() {
			Expect(sc.Selected()).To(Equal(scene.NoSelection))
		})

		It("rejects out of range indices", func() {
			Expect(sc.Select(3)).To(MatchError(scene.ErrIndexOutOfRange))
			Expect(sc.Select(-1)).To(MatchError(scene.ErrIndexOutOfRange))
		})

		It("wraps over every body", func() {
			sc.SelectNext()
			Expect(sc.Selected()).To(Equal(0))
			sc.SelectPrev()
			Expect(sc.Selected()).To(Equal(2))
			sc.SelectNext()
			Expect(sc.Selected()).To(Equal(0))
			sc.Deselect()
			Expect(sc.Selected()).To(Equal(scene.NoSelection))
		})

		It("follows the selected body when one is added before it", func() {
			sc.Hold(entry(10, 0))
			Expect(sc.Select(3)).To(Succeed())
			sc.Add(entry(5, 0))
			Expect(sc.Selected()).To(Equal(4))
			Expect(sc.Bodies()[4].Position.X()).To(Equal(10.0))
		})
	})

	Describe("target edits", func() {
		It("fails without a selected or held body", func() {
			Expect(sc.ScaleRadius(2)).To(MatchError(scene.ErrNoTarget))
			Expect(sc.ScaleDensity(2)).To(MatchError(scene.ErrNoTarget))
		})

		It("rejects non-positive factors", func() {
			Expect(sc.Select(1)).To(Succeed())
			Expect(sc.ScaleRadius(0)).To(MatchError(scene.ErrInvalidFactor))
			Expect(sc.ScaleDensity(-1)).To(MatchError(scene.ErrInvalidFactor))
		})

		It("rejects NaN and infinite factors without touching the body", func() {
			Expect(sc.Select(1)).To(Succeed())
			before := sc.Bodies()[1]
			for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
				Expect(sc.ScaleRadius(f)).To(MatchError(scene.ErrInvalidFactor))
				Expect(sc.ScaleDensity(f)).To(MatchError(scene.ErrInvalidFactor))
			}
			Expect(sc.Bodies()[1]).To(Equal(before))
		})

		It("recomputes mass on the selected body", func() {
			Expect(sc.Select(1)).To(Succeed())
			Expect(sc.ScaleRadius(2)).To(Succeed())
			Expect(sc.ScaleDensity(3)).To(Succeed())

			b := sc.Bodies()[1]
			Expect(b.Radius).To(Equal(1.0))
			Expect(b.Density).To(Equal(3.0))
			Expect(b.Mass).To(BeNumerically("~", physics.SphereMass(1, 3), 1e-12))
		})

		It("falls back to the held body", func() {
			sc.Hold(entry(10, 0))
			Expect(sc.ScaleRadius(2)).To(Succeed())
			h, _ := sc.Held()
			Expect(h.Body.Radius).To(Equal(1.0))
			Expect(sc.Bodies()[1].Radius).To(Equal(0.5))
		})

		It("translates only the current position", func() {
			Expect(sc.Translate(mgl64.Vec3{1, 0, 0})).To(MatchError(scene.ErrNoTarget))

			Expect(sc.Select(1)).To(Succeed())
			prev := sc.Bodies()[1].PositionPrev
			Expect(sc.Translate(mgl64.Vec3{0, 0.5, 0})).To(Succeed())

			b := sc.Bodies()[1]
			Expect(b.Position).To(Equal(mgl64.Vec3{-2, 0.5, 0}))
			Expect(b.PositionPrev).To(Equal(prev))
		})
	})

	Describe("Clone", func() {
		It("is independent of the source scene", func() {
			c := sc.Clone()
			c.Step(dt, 0)
			c.Clear()
			Expect(sc.NumSimulated()).To(Equal(2))
			Expect(sc.Bodies()[1].Position.X()).To(Equal(-2.0))
		})
	})
})
