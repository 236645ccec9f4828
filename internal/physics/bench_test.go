package physics

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func benchBodies(n int) []Body {
	rng := rand.New(rand.NewSource(1))
	bodies := make([]Body, n)
	for i := range bodies {
		p := mgl64.Vec3{rng.Float64() * 50, rng.Float64() * 50, rng.Float64() * 50}
		bodies[i] = NewBody(p, mgl64.Vec3{}, 0.1, 1, 0.01)
	}
	return bodies
}

func BenchmarkStep16(b *testing.B) {
	bodies := benchBodies(16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Step(bodies, 0, len(bodies), 0.01, 5)
	}
}

func BenchmarkStep512(b *testing.B) {
	bodies := benchBodies(512)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Step(bodies, 0, len(bodies), 0.01, 5)
	}
}
