package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/orbitbox/internal/analysis"
	"github.com/san-kum/orbitbox/internal/scene"
)

// Hex formats a body colour for SVG.
func Hex(l scene.Look) string {
	return fmt.Sprintf("#%02x%02x%02x", l.Color[0], l.Color[1], l.Color[2])
}

// TracesToSVG draws one polyline per trace on a shared scale. colors[i]
// strokes traces[i]; missing colours fall back to white. Traces with fewer
// than two points are skipped.
func TracesToSVG(w io.Writer, traces []*analysis.Trace, colors []string, width, height int) error {
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

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, tr := range traces {
		if tr == nil || len(tr.Points) < 2 {
			continue
		}
		stroke := "#ffffff"
		if i < len(colors) && colors[i] != "" {
			stroke = colors[i]
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
		for k, p := range tr.Points {
			x := (p.X - minX) / rangeX * float64(width)
			y := float64(height) - (p.Y-minY)/rangeY*float64(height)
			if k == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
