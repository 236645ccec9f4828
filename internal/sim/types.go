package sim

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitbox/internal/physics"
)

var ErrInvalidState = errors.New("sim: invalid state (NaN/Inf)")

// Frame is a read-only view of the store after a step.
type Frame struct {
	Bodies []physics.Body
	Start  int
	End    int
	Index  int
	Time   float64
	Dt     float64
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(bodies []physics.Body, start, end, frame int, t float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(bodies []physics.Body, start, end, frame int, t float64)

func (f ObserverFunc) OnFrame(bodies []physics.Body, start, end, frame int, t float64) {
	f(bodies, start, end, frame, t)
}

type Config struct {
	Dt            float64
	Duration      float64
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		SampleEvery:   1,
		ValidateState: true,
	}
}

// Sample holds the simulated body positions at one sampled frame.
type Sample struct {
	Time      float64
	Energy    float64
	Positions []mgl64.Vec3
}

type Result struct {
	Samples     []Sample
	Metrics     map[string]float64
	Errors      []error
	StepsTaken  int
	EnergyDrift float64
}

// Times returns the sample times.
func (r *Result) Times() []float64 {
	ts := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		ts[i] = s.Time
	}
	return ts
}

// Energies returns the total energy at each sample.
func (r *Result) Energies() []float64 {
	es := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		es[i] = s.Energy
	}
	return es
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e SimError) Unwrap() error { return ErrInvalidState }
