package config

// Presets are representative rigs used as editor starting points.
var Presets = map[string]*DesignFile{
	"trainer": {
		Design: Design{
			BladeLength: 1.2, BladeChord: 0.15, BladePitch: 4.0, RotorMass: 1.5,
			LineTension: 200, LineAngle: 60, WindSpeed: 10,
		},
		Sweep: SweepConfig{Param: "wind_speed", From: 2, To: 25, Step: 1},
	},
	"heavy_lifter": {
		Design: Design{
			BladeLength: 2.4, BladeChord: 0.28, BladePitch: 5.5, RotorMass: 6.0,
			LineTension: 600, LineAngle: 55, WindSpeed: 12,
		},
		Sweep: SweepConfig{Param: "wind_speed", From: 4, To: 30, Step: 1},
	},
	"ultralight": {
		Design: Design{
			BladeLength: 0.8, BladeChord: 0.09, BladePitch: 3.0, RotorMass: 0.4,
			LineTension: 80, LineAngle: 65, WindSpeed: 6,
		},
		Sweep: SweepConfig{Param: "wind_speed", From: 1, To: 15, Step: 0.5},
	},
	"storm": {
		Design: Design{
			BladeLength: 1.0, BladeChord: 0.12, BladePitch: 2.0, RotorMass: 2.2,
			LineTension: 400, LineAngle: 50, WindSpeed: 22, RotorTilt: -5,
		},
		Sweep: SweepConfig{Param: "wind_speed", From: 10, To: 35, Step: 1},
	},
}

func GetPreset(name string) *DesignFile {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
