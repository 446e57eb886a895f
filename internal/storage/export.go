package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rodwindswept/gyrokite/internal/rotor"
	"github.com/rodwindswept/gyrokite/internal/sweep"
)

type ExportData struct {
	ID      string             `json:"id"`
	Design  rotor.Design       `json:"design"`
	Param   string             `json:"param"`
	Inputs  []float64          `json:"inputs"`
	States  []rotor.State      `json:"states"`
	Summary map[string]float64 `json:"summary"`
}

// ExportJSON writes a full run, states included, to w.
func ExportJSON(w io.Writer, meta *RunMetadata, points []sweep.Point) error {
	data := ExportData{
		ID:      meta.ID,
		Design:  meta.Design,
		Param:   meta.Param,
		Inputs:  make([]float64, len(points)),
		States:  make([]rotor.State, len(points)),
		Summary: meta.Summary,
	}
	for i, p := range points {
		data.Inputs[i] = p.Input
		data.States[i] = p.State
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSONStdout(meta *RunMetadata, points []sweep.Point) error {
	return ExportJSON(os.Stdout, meta, points)
}
