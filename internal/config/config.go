package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rodwindswept/gyrokite/internal/rotor"
)

// DesignFile is the on-disk YAML form of a rotor design plus the sweep
// settings a run should use.
type DesignFile struct {
	Design Design      `yaml:"design"`
	Sweep  SweepConfig `yaml:"sweep"`
}

type Design struct {
	BladeLength float64 `yaml:"blade_length"`
	BladeChord  float64 `yaml:"blade_chord"`
	BladePitch  float64 `yaml:"blade_pitch"`
	RotorMass   float64 `yaml:"rotor_mass"`
	LineTension float64 `yaml:"line_tension"`
	LineAngle   float64 `yaml:"line_angle"`
	WindSpeed   float64 `yaml:"wind_speed"`
	RotorTilt   float64 `yaml:"rotor_tilt"`
}

type SweepConfig struct {
	Param string  `yaml:"param"`
	From  float64 `yaml:"from"`
	To    float64 `yaml:"to"`
	Step  float64 `yaml:"step"`
}

func Default() *DesignFile {
	return &DesignFile{
		Design: FromRotor(rotor.DefaultDesign()),
		Sweep:  SweepConfig{Param: "wind_speed", From: 2, To: 25, Step: 1},
	}
}

func Load(path string) (*DesignFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *DesignFile) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToRotor converts the file form into the model's input value.
func (d Design) ToRotor() rotor.Design {
	return rotor.Design{
		BladeLength: d.BladeLength,
		BladeChord:  d.BladeChord,
		BladePitch:  d.BladePitch,
		RotorMass:   d.RotorMass,
		LineTension: d.LineTension,
		LineAngle:   d.LineAngle,
		WindSpeed:   d.WindSpeed,
		RotorTilt:   d.RotorTilt,
	}
}

func FromRotor(d rotor.Design) Design {
	return Design{
		BladeLength: d.BladeLength,
		BladeChord:  d.BladeChord,
		BladePitch:  d.BladePitch,
		RotorMass:   d.RotorMass,
		LineTension: d.LineTension,
		LineAngle:   d.LineAngle,
		WindSpeed:   d.WindSpeed,
		RotorTilt:   d.RotorTilt,
	}
}

// Validate applies the editor-boundary rules the model itself deliberately
// does not: the core is total over finite inputs, so non-physical dimensions
// have to be refused before they reach it.
func Validate(d rotor.Design) error {
	if d.BladeLength <= 0 {
		return fmt.Errorf("blade_length must be positive, got %g", d.BladeLength)
	}
	if d.BladeChord <= 0 {
		return fmt.Errorf("blade_chord must be positive, got %g", d.BladeChord)
	}
	if d.RotorMass <= 0 {
		return fmt.Errorf("rotor_mass must be positive, got %g", d.RotorMass)
	}
	if d.WindSpeed < 0 {
		return fmt.Errorf("wind_speed must be non-negative, got %g", d.WindSpeed)
	}
	if d.LineAngle < 0 || d.LineAngle > 90 {
		return fmt.Errorf("line_angle must be within [0,90], got %g", d.LineAngle)
	}
	if d.LineTension < 0 {
		return fmt.Errorf("line_tension must be non-negative, got %g", d.LineTension)
	}
	return nil
}
