package optim

import (
	"context"
	"math"
	"testing"

	"github.com/rodwindswept/gyrokite/internal/rotor"
)

func TestSearchFindsGridArgmax(t *testing.T) {
	base := rotor.DefaultDesign()

	// The TSR curve peaks at an effective alpha of 15 degrees, so over
	// line angles the thrust argmax must sit at 75.
	g := NewGridSearch([]string{"line_angle"}, [][]float64{{60, 65, 70, 75, 80, 85, 90}})

	bestDesign, bestScore, err := g.Search(context.Background(), base, GeneratedThrust)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	var wantScore float64
	for _, angle := range []float64{60, 65, 70, 75, 80, 85, 90} {
		d := base
		d.LineAngle = angle
		if v := rotor.Compute(d).GeneratedThrust; v > wantScore {
			wantScore = v
		}
	}

	if math.Abs(bestScore-wantScore) > 1e-9 {
		t.Errorf("expected best score %f, got %f", wantScore, bestScore)
	}
	if bestDesign.BladeLength != base.BladeLength {
		t.Error("unswept params must not change")
	}
}

func TestSearchMultiAxis(t *testing.T) {
	base := rotor.DefaultDesign()
	g := NewGridSearch(
		[]string{"line_angle", "blade_pitch"},
		[][]float64{Span(50, 80, 4), Span(0, 8, 5)},
	)

	bestDesign, bestScore, err := g.Search(context.Background(), base, GeneratedThrust)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	got := rotor.Compute(bestDesign).GeneratedThrust
	if math.Abs(got-bestScore) > 1e-9 {
		t.Errorf("returned design does not reproduce score: %f vs %f", got, bestScore)
	}
}

func TestSearchUnknownParam(t *testing.T) {
	g := NewGridSearch([]string{"bogus"}, [][]float64{{1, 2}})
	if _, _, err := g.Search(context.Background(), rotor.DefaultDesign(), GeneratedThrust); err == nil {
		t.Error("expected error for unknown param")
	}
}

func TestSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch([]string{"wind_speed"}, [][]float64{Span(2, 25, 24)})
	if _, _, err := g.Search(ctx, rotor.DefaultDesign(), GeneratedThrust); err == nil {
		t.Error("expected context error")
	}
}

func TestSpan(t *testing.T) {
	vals := Span(0, 10, 5)
	if len(vals) != 5 {
		t.Fatalf("expected 5 values, got %d", len(vals))
	}
	if vals[0] != 0 || vals[4] != 10 {
		t.Errorf("bad endpoints: %v", vals)
	}
	if len(Span(3, 9, 1)) != 1 {
		t.Error("n<2 should collapse to the start value")
	}
}
