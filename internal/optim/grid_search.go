package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/orbitbox/internal/sim"
)

var (
	ErrUnknownParam  = errors.New("optim: unknown parameter")
	ErrUnknownMetric = errors.New("optim: unknown metric")
)

// Point is one combination of parameter values.
type Point map[string]float64

func (p Point) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := ""
	for i, k := range keys {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%g", k, p[k])
	}
	return s
}

// Trial is the metric value measured at one point.
type Trial struct {
	Point Point
	Value float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Points enumerates the grid with the last parameter varying fastest.
func (g *GridSearch) Points() []Point {
	var points []Point
	g.pointsRecursive(0, Point{}, &points)
	return points
}

func (g *GridSearch) pointsRecursive(depth int, current Point, out *[]Point) {
	if depth == len(g.paramNames) {
		p := make(Point, len(current))
		for k, v := range current {
			p[k] = v
		}
		*out = append(*out, p)
		return
	}
	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		g.pointsRecursive(depth+1, current, out)
	}
	delete(current, name)
}

// Search builds one simulator per grid point, runs them concurrently with at
// most workers at a time and returns the point minimising metric along with
// every trial in grid order.
func (g *GridSearch) Search(
	ctx context.Context,
	build func(p Point) (*sim.Simulator, error),
	cfg sim.Config,
	metric string,
	workers int,
) (Point, float64, []Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, nil, fmt.Errorf("optim: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	points := g.Points()
	sims := make([]*sim.Simulator, len(points))
	for i, p := range points {
		s, err := build(p)
		if err != nil {
			return nil, 0, nil, fmt.Errorf("point %v: %w", p, err)
		}
		sims[i] = s
	}

	results, err := sim.NewEnsemble(workers, sims...).Run(ctx, cfg)
	if err != nil {
		return nil, 0, nil, err
	}

	best := math.Inf(1)
	var bestParams Point
	trials := make([]Trial, len(points))
	for i, r := range results {
		val, ok := r.Metrics[metric]
		if !ok {
			return nil, 0, nil, fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
		}
		trials[i] = Trial{Point: points[i], Value: val}
		if val < best {
			best = val
			bestParams = points[i]
		}
	}

	return bestParams, best, trials, nil
}
