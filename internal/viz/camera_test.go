package viz

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// near compares by absolute distance. mgl64 squares its threshold when a component is zero.
func near(a, b mgl64.Vec3) bool { return a.Sub(b).Len() <= 1e-9 }

func TestCameraRoundTrip(t *testing.T) {
	c := NewCamera()
	c.RotateX(0.3)
	c.RotateY(-1.1)
	c.RotateZ(2.0)

	for _, p := range []mgl64.Vec3{{1, 0, 0}, {0, -2, 5}, {3.5, 1, -7}} {
		if got := c.UnrotatePoint(c.RotatePoint(p)); !near(got, p) {
			t.Errorf("round trip %v = %v", p, got)
		}
		if l := c.RotatePoint(p).Len(); math.Abs(l-p.Len()) > 1e-9 {
			t.Errorf("rotation changed length of %v to %v", p, l)
		}
	}
}

func TestCameraForward(t *testing.T) {
	c := NewCamera()
	if f := c.Forward(); !near(f, mgl64.Vec3{0, 0, -1}) {
		t.Errorf("Forward = %v", f)
	}

	c.RotateY(math.Pi / 2)
	f := c.Forward()
	if math.Abs(f.Len()-1) > 1e-9 || math.Abs(f.Z()) > 1e-9 {
		t.Errorf("rotated Forward = %v", f)
	}
}

func TestCameraProject(t *testing.T) {
	c := NewCamera()
	x, y, px, depth, ok := c.Project(mgl64.Vec3{}, 160, 96)
	if !ok || x != 80 || y != 48 {
		t.Errorf("origin at (%d, %d, %v)", x, y, ok)
	}
	if depth != 0 || math.Abs(px-96.0/30) > 1e-9 {
		t.Errorf("px = %v depth = %v", px, depth)
	}

	x, y, _, _, _ = c.Project(mgl64.Vec3{1, 1, 0}, 160, 96)
	if x <= 80 || y >= 48 {
		t.Errorf("+x+y projects to (%d, %d)", x, y)
	}

	if _, _, _, _, ok := c.Project(mgl64.Vec3{0, 0, c.Dist}, 160, 96); ok {
		t.Error("point at the camera should be hidden")
	}

	x, y, _, _, ok = c.Project(c.HoldPoint(), 160, 96)
	if !ok || x != 80 || y != 48 {
		t.Errorf("hold point at (%d, %d, %v)", x, y, ok)
	}
}

func TestCameraFitTo(t *testing.T) {
	tests := []struct {
		extent, zoom float64
	}{
		{0, 1},
		{3, 4},
		{0.5, 10},
		{1000, 0.05},
	}
	for _, tt := range tests {
		c := NewCamera()
		c.FitTo(tt.extent)
		if math.Abs(c.Zoom-tt.zoom) > 1e-12 {
			t.Errorf("FitTo(%v) zoom = %v, want %v", tt.extent, c.Zoom, tt.zoom)
		}
	}
}
