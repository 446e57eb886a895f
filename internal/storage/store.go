package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rodwindswept/gyrokite/internal/rotor"
	"github.com/rodwindswept/gyrokite/internal/sweep"
)

// Store persists swept response curves under a data directory, one
// subdirectory per run: metadata.json plus points.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Design    rotor.Design       `json:"design"`
	Param     string             `json:"param"`
	From      float64            `json:"from"`
	To        float64            `json:"to"`
	Step      float64            `json:"step"`
	Summary   map[string]float64 `json:"summary"`
}

var csvHeader = []string{
	"input", "rpm", "generated_thrust", "total_thrust", "lift", "drag",
	"tip_speed_ratio", "stability", "power", "anchor_tension", "anchor_angle",
}

func (s *Store) Save(design rotor.Design, r sweep.Range, points []sweep.Point) (string, error) {
	runID := fmt.Sprintf("%s_%d", r.Param, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Design:    design,
		Param:     r.Param,
		From:      r.From,
		To:        r.To,
		Step:      r.Step,
		Summary:   sweep.Summary(points),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "points.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, p := range points {
		if err := w.Write(pointRow(p)); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func pointRow(p sweep.Point) []string {
	vals := []float64{
		p.Input, p.State.RPM, p.State.GeneratedThrust, p.State.TotalRotorThrust,
		p.State.Lift, p.State.Drag, p.State.TipSpeedRatio, p.State.StabilityScore,
		p.State.PowerOutput, p.State.Anchor.Tension, p.State.Anchor.Angle,
	}
	row := make([]string, len(vals))
	for i, v := range vals {
		row[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return row
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadPoints reads back a saved curve. Only the columns written by Save are
// recovered; blade diagnostics are recomputed on demand from the design.
func (s *Store) LoadPoints(runID string) ([]sweep.Point, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "points.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sweep.Point{}, nil
	}

	points := make([]sweep.Point, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(csvHeader) {
			continue
		}
		vals := make([]float64, len(record))
		ok := true
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		points = append(points, sweep.Point{
			Input: vals[0],
			State: rotor.State{
				RPM:              vals[1],
				GeneratedThrust:  vals[2],
				TotalRotorThrust: vals[3],
				Lift:             vals[4],
				Drag:             vals[5],
				TipSpeedRatio:    vals[6],
				StabilityScore:   vals[7],
				PowerOutput:      vals[8],
				Anchor:           rotor.AnchorAnalysis{Tension: vals[9], Angle: vals[10]},
			},
		})
	}

	return points, nil
}
