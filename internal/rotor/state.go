package rotor

// State is the instantaneous steady-state estimate for one design under one
// wind condition. It is rebuilt from scratch on every Compute call.
type State struct {
	RPM              float64
	GeneratedThrust  float64 // axial force delivered along the kite line, N
	TotalRotorThrust float64 // aerodynamic force along the rotor spin axis, N
	Lift             float64 // world-vertical, N
	Drag             float64 // world-horizontal, downwind positive, N
	Gravity          float64 // rotor weight, N
	TipSpeed         float64 // m/s
	TipSpeedRatio    float64
	StabilityScore   float64 // 0..100
	PowerOutput      float64 // W
	AngleOfAttack    float64 // effective disc angle versus wind, deg

	Anchor AnchorAnalysis
	Blades BladeAerodynamics
}

// AnchorAnalysis is the static force balance at the ground anchor, resolved
// in a fixed vertical plane (x downwind, y altitude).
type AnchorAnalysis struct {
	Tension float64 // resultant magnitude, N
	Angle   float64 // resultant elevation, deg
	ForceX  float64 // N
	ForceY  float64 // N
}

// BladeAerodynamics holds per-blade diagnostics at the 75% span station.
// All fields are zero in the stationary regime.
type BladeAerodynamics struct {
	AdvancingVelocity  float64 // tangential, m/s
	RetreatingVelocity float64 // tangential, m/s
	InflowVelocity     float64 // through-disc, m/s
	AdvancingAoA       float64 // deg
	RetreatingAoA      float64 // deg
	AdvanceRatio       float64
	ReynoldsNumber     float64
}

// Spinning reports whether the rotor is in the blade-element (autorotating)
// regime rather than the bluff-body one.
func (s State) Spinning() bool {
	return s.RPM > SpinThresholdRPM
}
