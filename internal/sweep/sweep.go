// Package sweep recomputes the rotor model across a parameter range to
// build response curves. Every model call is independent, so the sweep fans
// out across goroutines; results are always ordered by the input supplied,
// never by completion order.
package sweep

import (
	"context"
	"fmt"
	"sync"

	"github.com/rodwindswept/gyrokite/internal/rotor"
)

// Point pairs one swept input value with the state it produced.
type Point struct {
	Input float64
	State rotor.State
}

// Range describes a linear scan of one design parameter.
type Range struct {
	Param string
	From  float64
	To    float64
	Step  float64
}

func (r Range) Values() []float64 {
	if r.Step <= 0 || r.To < r.From {
		return nil
	}
	vals := make([]float64, 0, int((r.To-r.From)/r.Step)+1)
	for v := r.From; v <= r.To+1e-9; v += r.Step {
		vals = append(vals, v)
	}
	return vals
}

// Run evaluates the model at every value in the range, in parallel. The
// returned slice is indexed by input order.
func Run(ctx context.Context, base rotor.Design, r Range) ([]Point, error) {
	if _, ok := base.Params()[r.Param]; !ok {
		return nil, fmt.Errorf("unknown sweep param: %s", r.Param)
	}
	vals := r.Values()
	if len(vals) == 0 {
		return nil, fmt.Errorf("empty sweep range: from=%g to=%g step=%g", r.From, r.To, r.Step)
	}

	points := make([]Point, len(vals))

	var wg sync.WaitGroup
	for i, v := range vals {
		wg.Add(1)
		go func(idx int, val float64) {
			defer wg.Done()
			d := base
			// Params are validated before Run; SetParam cannot fail here.
			_ = d.SetParam(r.Param, val)
			points[idx] = Point{Input: val, State: rotor.Compute(d)}
		}(i, v)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

// Summary condenses a sweep into the scalar figures saved alongside it.
func Summary(points []Point) map[string]float64 {
	if len(points) == 0 {
		return map[string]float64{}
	}
	best := points[0]
	maxRPM, maxTension := 0.0, 0.0
	for _, p := range points {
		if p.State.GeneratedThrust > best.State.GeneratedThrust {
			best = p
		}
		if p.State.RPM > maxRPM {
			maxRPM = p.State.RPM
		}
		if p.State.Anchor.Tension > maxTension {
			maxTension = p.State.Anchor.Tension
		}
	}
	return map[string]float64{
		"max_generated_thrust": best.State.GeneratedThrust,
		"best_input":           best.Input,
		"max_rpm":              maxRPM,
		"max_anchor_tension":   maxTension,
	}
}

// Curve extracts one output series for plotting.
func Curve(points []Point, pick func(rotor.State) float64) []float64 {
	data := make([]float64, len(points))
	for i, p := range points {
		data[i] = pick(p.State)
	}
	return data
}
