package analysis

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane selects the two coordinates a trace is projected onto.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
)

// Trace is the projected path of one body.
type Trace struct {
	Points []struct{ X, Y float64 }
}

// NewTrace projects a sequence of positions onto plane.
func NewTrace(path []mgl64.Vec3, plane Plane) *Trace {
	tr := &Trace{Points: make([]struct{ X, Y float64 }, 0, len(path))}
	for _, p := range path {
		var x, y float64
		switch plane {
		case PlaneXZ:
			x, y = p.X(), p.Z()
		case PlaneYZ:
			x, y = p.Y(), p.Z()
		default:
			x, y = p.X(), p.Y()
		}
		tr.Points = append(tr.Points, struct{ X, Y float64 }{x, y})
	}
	return tr
}

var traceGlyphs = []rune{'•', 'o', '+', 'x', '*', '#', '@', '%'}

// TraceToASCII draws every trace on one width×height grid sharing a common
// scale. Each body gets its own glyph.
func TraceToASCII(traces []*Trace, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	first := true
	var minX, maxX, minY, maxY float64
	for _, tr := range traces {
		if tr == nil {
			continue
		}
		for _, p := range tr.Points {
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			minX = min(minX, p.X)
			maxX = max(maxX, p.X)
			minY = min(minY, p.Y)
			maxY = max(maxY, p.Y)
		}
	}
	if first {
		return ""
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			canvas[row][col] = '─'
		}
	}

	for k, tr := range traces {
		if tr == nil {
			continue
		}
		glyph := traceGlyphs[k%len(traceGlyphs)]
		for _, p := range tr.Points {
			col := int((p.X - minX) / rangeX * float64(width-1))
			row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
			if row >= 0 && row < height && col >= 0 && col < width {
				canvas[row][col] = glyph
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
