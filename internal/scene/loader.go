package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitbox/internal/physics"
)

// maxPrealloc caps the capacity reserved from an untrusted header count.
const maxPrealloc = 1024

// Field order of one body record.
var fields = []string{
	"radius", "x", "y", "z", "vx", "vy", "vz",
	"colorR", "colorG", "colorB", "density", "lightFlag",
}

var (
	errMissing  = errors.New("unexpected end of input")
	errTrailing = errors.New("trailing data after last body")
	errPositive = errors.New("must be positive")
	errFinite   = errors.New("must be finite")
	errColor    = errors.New("must be within 0..255")
	errCount    = errors.New("must be a non-negative integer")
)

type tokenizer struct {
	sc *bufio.Scanner
}

func (t *tokenizer) next() (string, error) {
	if t.sc.Scan() {
		return t.sc.Text(), nil
	}
	if err := t.sc.Err(); err != nil {
		return "", err
	}
	return "", errMissing
}

// Parse reads a scene file. Velocities are folded into PositionPrev using dt.
// On any error it returns no entries at all.
func Parse(r io.Reader, dt float64) ([]Entry, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	tok := &tokenizer{sc: sc}

	s, err := tok.next()
	if err != nil {
		return nil, &ParseError{Body: -1, Field: "count", Err: err}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, &ParseError{Body: -1, Field: "count", Err: errCount}
	}

	entries := make([]Entry, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		e, err := parseEntry(tok, i, dt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if _, err := tok.next(); err == nil {
		return nil, &ParseError{Body: n, Field: "end", Err: errTrailing}
	} else if !errors.Is(err, errMissing) {
		return nil, &ParseError{Body: n, Field: "end", Err: err}
	}

	return entries, nil
}

func parseEntry(tok *tokenizer, idx int, dt float64) (Entry, error) {
	var vals [12]float64
	for k, name := range fields {
		s, err := tok.next()
		if err != nil {
			return Entry{}, &ParseError{Body: idx, Field: name, Err: err}
		}
		if name == "lightFlag" {
			flag, err := strconv.Atoi(s)
			if err != nil {
				return Entry{}, &ParseError{Body: idx, Field: name, Err: err}
			}
			vals[k] = float64(flag)
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Entry{}, &ParseError{Body: idx, Field: name, Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Entry{}, &ParseError{Body: idx, Field: name, Err: errFinite}
		}
		vals[k] = v
	}

	radius, density := vals[0], vals[10]
	if radius <= 0 {
		return Entry{}, &ParseError{Body: idx, Field: "radius", Err: errPositive}
	}
	if density <= 0 {
		return Entry{}, &ParseError{Body: idx, Field: "density", Err: errPositive}
	}

	var col [3]uint8
	for c := 0; c < 3; c++ {
		v := vals[7+c]
		if v < 0 || v > 255 {
			return Entry{}, &ParseError{Body: idx, Field: fields[7+c], Err: errColor}
		}
		col[c] = uint8(math.Round(v))
	}

	pos := mgl64.Vec3{vals[1], vals[2], vals[3]}
	vel := mgl64.Vec3{vals[4], vals[5], vals[6]}

	return Entry{
		Body: physics.NewBody(pos, vel, radius, density, dt),
		Look: Look{Color: col, Light: vals[11] != 0},
	}, nil
}

// LoadFile parses the scene file at path.
func LoadFile(path string, dt float64) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f, dt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Write emits entries in the scene file format, recovering velocities from
// the stored positions with dt.
func Write(w io.Writer, entries []Entry, dt float64) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(entries))

	for _, e := range entries {
		v := e.Body.Velocity(dt)
		light := 0
		if e.Look.Light {
			light = 1
		}
		cols := []string{
			ftoa(e.Body.Radius),
			ftoa(e.Body.Position.X()), ftoa(e.Body.Position.Y()), ftoa(e.Body.Position.Z()),
			ftoa(v.X()), ftoa(v.Y()), ftoa(v.Z()),
			strconv.Itoa(int(e.Look.Color[0])), strconv.Itoa(int(e.Look.Color[1])), strconv.Itoa(int(e.Look.Color[2])),
			ftoa(e.Body.Density),
			strconv.Itoa(light),
		}
		fmt.Fprintln(bw, strings.Join(cols, " "))
	}

	return bw.Flush()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
