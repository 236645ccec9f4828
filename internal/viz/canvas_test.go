package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(1, 3)
	c.Set(-1, 0)
	c.Set(8, 0)
	c.Set(0, 8)

	if got := c.Grid[0][0]; got != blank|0x1|0x80 {
		t.Errorf("cell = %#x, want %#x", got, blank|0x1|0x80)
	}
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			want := (x == 0 && y == 0) || (x == 1 && y == 3)
			if c.IsSet(x, y) != want {
				t.Errorf("IsSet(%d, %d) = %v", x, y, !want)
			}
		}
	}

	c.Clear()
	if c.IsSet(0, 0) {
		t.Error("Clear left a dot set")
	}
}

func TestCanvasShapes(t *testing.T) {
	tests := []struct {
		name  string
		draw  func(c *Canvas)
		set   [][2]int
		unset [][2]int
	}{
		{
			name:  "line",
			draw:  func(c *Canvas) { c.DrawLine(0, 0, 5, 0) },
			set:   [][2]int{{0, 0}, {3, 0}, {5, 0}},
			unset: [][2]int{{6, 0}, {0, 1}},
		},
		{
			name:  "diagonal",
			draw:  func(c *Canvas) { c.DrawLine(0, 0, 4, 4) },
			set:   [][2]int{{0, 0}, {2, 2}, {4, 4}},
			unset: [][2]int{{4, 0}},
		},
		{
			name:  "disc",
			draw:  func(c *Canvas) { c.Disc(5, 5, 2) },
			set:   [][2]int{{5, 5}, {7, 5}, {5, 3}, {6, 6}},
			unset: [][2]int{{8, 5}, {7, 7}},
		},
		{
			name:  "circle",
			draw:  func(c *Canvas) { c.Circle(10, 10, 3) },
			set:   [][2]int{{13, 10}, {10, 13}, {7, 10}, {10, 7}},
			unset: [][2]int{{10, 10}, {11, 11}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 5)
			tt.draw(c)
			for _, p := range tt.set {
				if !c.IsSet(p[0], p[1]) {
					t.Errorf("(%d, %d) not set", p[0], p[1])
				}
			}
			for _, p := range tt.unset {
				if c.IsSet(p[0], p[1]) {
					t.Errorf("(%d, %d) set", p[0], p[1])
				}
			}
		})
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0] != strings.Repeat(string(rune(blank)), 3) {
		t.Errorf("blank row = %q", lines[0])
	}
}

func TestCanvasImage(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(1, 2)
	img := c.Image(3, 2)

	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
		t.Fatalf("bounds = %v", b)
	}
	if img.ColorIndexAt(3, 4) != 1 || img.ColorIndexAt(5, 5) != 1 {
		t.Error("set dot not filled")
	}
	if img.ColorIndexAt(0, 0) != 0 || img.ColorIndexAt(6, 4) != 0 {
		t.Error("unset dot filled")
	}
}
