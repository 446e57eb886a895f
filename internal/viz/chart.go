// Package viz renders swept response curves for the terminal.
package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/rodwindswept/gyrokite/internal/rotor"
	"github.com/rodwindswept/gyrokite/internal/sweep"
)

// Series names an output of the model that can be charted.
type Series struct {
	Name string
	Pick func(rotor.State) float64
}

var DefaultSeries = []Series{
	{"generated thrust (N)", func(s rotor.State) float64 { return s.GeneratedThrust }},
	{"rpm", func(s rotor.State) float64 { return s.RPM }},
	{"lift (N)", func(s rotor.State) float64 { return s.Lift }},
	{"anchor tension (N)", func(s rotor.State) float64 { return s.Anchor.Tension }},
}

// Plot renders one output series of a sweep as an ASCII line chart.
func Plot(points []sweep.Point, series Series, width, height int) string {
	data := sweep.Curve(points, series.Pick)
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(series.Name),
	)
}

// Sparkline compresses a series into a single row of block characters, for
// the inline response curve in the interactive editor.
func Sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		v := data[i*step]
		idx := int((v - minVal) / rang * 7)
		if idx > 7 {
			idx = 7
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}
