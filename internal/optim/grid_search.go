// Package optim searches design space for the configuration maximizing an
// objective over the rotor model, exhaustively over a parameter grid. The
// model is cheap enough that brute force over a few axes is practical.
package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/rodwindswept/gyrokite/internal/rotor"
)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Objective scores a computed state; Search maximizes it.
type Objective func(rotor.State) float64

// GeneratedThrust is the default objective: the force the whole design
// exists to maximize.
func GeneratedThrust(s rotor.State) float64 { return s.GeneratedThrust }

// Search evaluates the objective at every grid point over the base design
// and returns the best design found with its score.
func (g *GridSearch) Search(ctx context.Context, base rotor.Design, objective Objective) (rotor.Design, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return base, 0, fmt.Errorf("got %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}
	known := base.Params()
	for _, name := range g.paramNames {
		if _, ok := known[name]; !ok {
			return base, 0, fmt.Errorf("unknown param: %s", name)
		}
	}

	best := math.Inf(-1)
	bestDesign := base

	err := g.searchRecursive(ctx, 0, base, objective, &best, &bestDesign)
	return bestDesign, best, err
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current rotor.Design, objective Objective, best *float64, bestDesign *rotor.Design) error {
	if depth == len(g.paramNames) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		val := objective(rotor.Compute(current))
		if val > *best {
			*best = val
			*bestDesign = current
		}
		return nil
	}

	for _, v := range g.ranges[depth] {
		next := current
		if err := next.SetParam(g.paramNames[depth], v); err != nil {
			return err
		}
		if err := g.searchRecursive(ctx, depth+1, next, objective, best, bestDesign); err != nil {
			return err
		}
	}
	return nil
}

// Span builds an inclusive linear range for one grid axis.
func Span(from, to float64, n int) []float64 {
	if n < 2 {
		return []float64{from}
	}
	vals := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range vals {
		vals[i] = from + float64(i)*step
	}
	return vals
}
