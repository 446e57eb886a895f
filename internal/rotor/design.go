package rotor

import "fmt"

// Design describes one rotor rig configuration together with the wind
// condition it is evaluated against. A Design is a plain value: the model
// never mutates it and never keeps a reference past a Compute call.
type Design struct {
	BladeLength float64 // rotor radius, m
	BladeChord  float64 // m
	BladePitch  float64 // geometric blade pitch, deg, signed
	RotorMass   float64 // kg
	LineTension float64 // kite-side line tension before rotor effects, N
	LineAngle   float64 // line elevation above ground plane, deg, 0..90
	WindSpeed   float64 // horizontal free-stream wind, m/s
	RotorTilt   float64 // mechanical disc tilt off the line axis, deg, signed
}

// DefaultDesign is a mid-size trainer rig that spins readily in moderate wind.
func DefaultDesign() Design {
	return Design{
		BladeLength: 1.2,
		BladeChord:  0.15,
		BladePitch:  4.0,
		RotorMass:   1.5,
		LineTension: 200,
		LineAngle:   60,
		WindSpeed:   10,
		RotorTilt:   0,
	}
}

// Params exposes the design as a name/value map for generic consumers
// (the interactive editor and the grid optimizer).
func (d Design) Params() map[string]float64 {
	return map[string]float64{
		"blade_length": d.BladeLength,
		"blade_chord":  d.BladeChord,
		"blade_pitch":  d.BladePitch,
		"rotor_mass":   d.RotorMass,
		"line_tension": d.LineTension,
		"line_angle":   d.LineAngle,
		"wind_speed":   d.WindSpeed,
		"rotor_tilt":   d.RotorTilt,
	}
}

func (d *Design) SetParam(name string, value float64) error {
	switch name {
	case "blade_length":
		d.BladeLength = value
	case "blade_chord":
		d.BladeChord = value
	case "blade_pitch":
		d.BladePitch = value
	case "rotor_mass":
		d.RotorMass = value
	case "line_tension":
		d.LineTension = value
	case "line_angle":
		d.LineAngle = value
	case "wind_speed":
		d.WindSpeed = value
	case "rotor_tilt":
		d.RotorTilt = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
