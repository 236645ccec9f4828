package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera orbits the origin at distance Dist and looks toward it along -Z in
// view space.
type Camera struct {
	Dist             float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
	// HoldDepth is how far in front of the camera the held body sits.
	HoldDepth float64
}

func NewCamera() *Camera {
	return &Camera{Dist: 50, Near: 0.1, Zoom: 1.0, HoldDepth: 20}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.05, c.Zoom/1.2) }

func (c *Camera) rotation() mgl64.Mat3 {
	return mgl64.Rotate3DZ(c.RotZ).Mul3(mgl64.Rotate3DY(c.RotY)).Mul3(mgl64.Rotate3DX(c.RotX))
}

// RotatePoint maps world space into view space.
func (c *Camera) RotatePoint(p mgl64.Vec3) mgl64.Vec3 {
	return c.rotation().Mul3x1(p)
}

// UnrotatePoint maps view space back into world space.
func (c *Camera) UnrotatePoint(p mgl64.Vec3) mgl64.Vec3 {
	return c.rotation().Transpose().Mul3x1(p)
}

// Forward is the world space direction the camera looks along.
func (c *Camera) Forward() mgl64.Vec3 {
	return c.UnrotatePoint(mgl64.Vec3{0, 0, -1})
}

// HoldPoint is the world position of the held body.
func (c *Camera) HoldPoint() mgl64.Vec3 {
	return c.UnrotatePoint(mgl64.Vec3{0, 0, (c.Dist - c.HoldDepth) / c.Zoom})
}

// Project converts world coordinates to screen coordinates on an sw x sh
// pixel surface. It returns x, y, the perspective scale in pixels per world
// unit, the view depth and visibility.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, float64, bool) {
	rot := c.RotatePoint(p).Mul(c.Zoom)
	dist := c.Dist
	if rot.Z() >= dist-c.Near {
		return 0, 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z())
	pScale := float64(min(sw, sh)) / 30.0
	sx := int(math.Round(rot.X()*scale*pScale)) + sw/2
	sy := int(math.Round(-rot.Y()*scale*pScale)) + sh/2
	visible := sx >= 0 && sx < sw && sy >= 0 && sy < sh
	return sx, sy, scale * pScale * c.Zoom, rot.Z(), visible
}

// FitTo zooms so a sphere of radius extent around the origin fills most of
// the view.
func (c *Camera) FitTo(extent float64) {
	if extent <= 0 {
		c.Zoom = 1
		return
	}
	c.Zoom = math.Max(0.05, math.Min(10, 12/extent))
}
