package sweep

import (
	"context"
	"math"
	"testing"

	"github.com/rodwindswept/gyrokite/internal/rotor"
)

func TestRangeValues(t *testing.T) {
	r := Range{Param: "wind_speed", From: 2, To: 10, Step: 2}
	vals := r.Values()

	if len(vals) != 5 {
		t.Fatalf("expected 5 values, got %d", len(vals))
	}
	if vals[0] != 2 || vals[4] != 10 {
		t.Errorf("expected endpoints 2 and 10, got %f and %f", vals[0], vals[4])
	}
}

func TestRangeValues_Degenerate(t *testing.T) {
	if (Range{From: 0, To: 10, Step: 0}).Values() != nil {
		t.Error("expected nil for non-positive step")
	}
	if (Range{From: 10, To: 2, Step: 1}).Values() != nil {
		t.Error("expected nil for inverted range")
	}
}

func TestRunOrdering(t *testing.T) {
	base := rotor.DefaultDesign()
	r := Range{Param: "wind_speed", From: 2, To: 25, Step: 0.5}

	points, err := Run(context.Background(), base, r)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	vals := r.Values()
	if len(points) != len(vals) {
		t.Fatalf("expected %d points, got %d", len(vals), len(points))
	}
	for i, p := range points {
		if p.Input != vals[i] {
			t.Errorf("point %d out of order: input %f, want %f", i, p.Input, vals[i])
		}
	}
}

func TestRunMatchesDirectCompute(t *testing.T) {
	base := rotor.DefaultDesign()
	r := Range{Param: "line_angle", From: 40, To: 90, Step: 5}

	points, err := Run(context.Background(), base, r)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, p := range points {
		d := base
		d.LineAngle = p.Input
		want := rotor.Compute(d)
		if p.State != want {
			t.Errorf("sweep state at %f differs from direct compute", p.Input)
		}
	}
}

func TestRun_UnknownParam(t *testing.T) {
	_, err := Run(context.Background(), rotor.DefaultDesign(), Range{Param: "nope", From: 0, To: 1, Step: 1})
	if err == nil {
		t.Error("expected error for unknown param")
	}
}

func TestSummary(t *testing.T) {
	base := rotor.DefaultDesign()
	points, err := Run(context.Background(), base, Range{Param: "wind_speed", From: 2, To: 20, Step: 2})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	sum := Summary(points)

	// Generated thrust grows with wind for this rig, so the best input is
	// the top of the range.
	if sum["best_input"] != 20 {
		t.Errorf("expected best input 20, got %f", sum["best_input"])
	}
	if sum["max_generated_thrust"] <= 0 {
		t.Error("expected positive max thrust")
	}
	if sum["max_rpm"] <= 0 {
		t.Error("expected positive max rpm")
	}
}

func TestCurve(t *testing.T) {
	points := []Point{
		{Input: 1, State: rotor.State{RPM: 100}},
		{Input: 2, State: rotor.State{RPM: 200}},
	}
	data := Curve(points, func(s rotor.State) float64 { return s.RPM })
	if len(data) != 2 || math.Abs(data[1]-200) > 1e-12 {
		t.Errorf("unexpected curve: %v", data)
	}
}
