package sim

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitbox/internal/physics"
	"github.com/san-kum/orbitbox/internal/scene"
)

// Logger receives run diagnostics. It discards output until SetLogger is
// called.
var Logger = log.New(io.Discard, "orbitbox: ", 0)

func SetLogger(l *log.Logger) { Logger = l }

type Simulator struct {
	scene     *scene.Scene
	g         float64
	metrics   []Metric
	observers []Observer
}

func New(sc *scene.Scene, g float64) *Simulator {
	return &Simulator{
		scene:     sc,
		g:         g,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Scene() *scene.Scene { return s.scene }
func (s *Simulator) G() float64          { return s.g }

// Energy is the total energy of the simulated bodies.
func (s *Simulator) Energy(dt float64) float64 {
	start, end := s.scene.SimRange()
	return physics.TotalEnergy(s.scene.Bodies(), start, end, dt, s.g)
}

// Run steps the scene for cfg.Duration. On cancellation it returns the
// partial result together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/cfg.Dt + 0.5)
	result := &Result{
		Samples: make([]Sample, 0, steps/cfg.SampleEvery+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	dt := cfg.Dt
	t := 0.0
	initialEnergy := s.Energy(dt)
	s.sample(result, t, dt)

	var err error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		default:
		}
		if err != nil {
			break
		}

		s.scene.Step(dt, s.g)
		t += dt
		start, end := s.scene.SimRange()
		bodies := s.scene.Bodies()

		if cfg.ValidateState && !physics.IsFinite(bodies, start, end) {
			serr := SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, serr)
			Logger.Printf("halted: %v", serr)
			break
		}
		result.StepsTaken++

		frame := Frame{Bodies: bodies, Start: start, End: end, Index: i + 1, Time: t, Dt: dt}
		for _, m := range s.metrics {
			m.Observe(frame)
		}
		for _, obs := range s.observers {
			obs.OnFrame(bodies, start, end, i+1, t)
		}

		if (i+1)%cfg.SampleEvery == 0 {
			s.sample(result, t, dt)
		}
	}

	finalEnergy := s.Energy(dt)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, err
}

func (s *Simulator) sample(r *Result, t, dt float64) {
	start, end := s.scene.SimRange()
	bodies := s.scene.Bodies()
	pos := make([]mgl64.Vec3, 0, end-start)
	for i := start; i < end; i++ {
		pos = append(pos, bodies[i].Position)
	}
	r.Samples = append(r.Samples, Sample{Time: t, Energy: s.Energy(dt), Positions: pos})
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.SampleEvery < 1 {
		return fmt.Errorf("sample_every must be at least 1, got %d", cfg.SampleEvery)
	}
	return nil
}

// RunWithCallback steps the scene until fn returns false, ctx is done or the
// state turns invalid. A zero Duration runs without limit.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, fn func(sc *scene.Scene, t float64) bool) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}

	t := 0.0
	for cfg.Duration <= 0 || t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !fn(s.scene, t) {
			return nil
		}

		s.scene.Step(cfg.Dt, s.g)
		t += cfg.Dt

		start, end := s.scene.SimRange()
		if cfg.ValidateState && !physics.IsFinite(s.scene.Bodies(), start, end) {
			return SimError{Time: t, Message: "invalid state (NaN/Inf)"}
		}
	}

	return nil
}
