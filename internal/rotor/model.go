package rotor

import "math"

// Calibration constants. These are hand-tuned against published autogyro
// performance trends, not derived from first principles; changing any of
// them changes every downstream number, so treat them as frozen.
const (
	airDensity         = 1.225   // kg/m³, sea level
	kinematicViscosity = 1.48e-5 // m²/s, air at 15°C
	gravityAccel       = 9.81    // m/s²

	deadZoneAlphaDeg = 1.5  // no driving inflow below this disc angle
	peakAlphaDeg     = 15.0 // disc angle of maximum tip-speed ratio
	peakTSR          = 8.5
	windmillTSR      = 3.75 // ratio approached as the disc goes face-on

	spinUpConstant = 1.0 // m/s, mass-independent part of the spin-up threshold

	liftSlope     = 5.5  // per rad
	softStallRad  = 0.22 // Cl plateau beyond this local angle of attack
	deepStallRad  = 0.35 // Cl drop beyond this
	clPlateau     = 1.0
	clDeepStall   = 0.8
	profileDragCd = 0.012
	inducedDragK  = 0.05

	maxThrustCoeff = 1.3 // upper bound on disc-area thrust coefficient
	flatPlateCd    = 1.2 // stationary rotor as a porous flat plate

	powerEfficiency = 0.3

	// SpinThresholdRPM separates the blade-element regime from the
	// bluff-body one. It also keeps the blade-element equations away from
	// the near-zero tangential velocities where they blow up.
	SpinThresholdRPM = 10.0
)

// Compute maps a design and its wind condition to a steady-state force
// estimate. It is a pure function: total over all finite inputs, no state
// between calls, safe to call from any number of goroutines at once.
//
// Geometric angles are clamped rather than rejected; the editor boundary
// (internal/config.Validate) is responsible for refusing non-physical
// dimensions such as a zero blade length.
func Compute(d Design) State {
	var s State
	s.Gravity = d.RotorMass * gravityAccel

	// Stage 1: geometry. The rotor axis rides the line, so a vertical line
	// presents the disc edge-on to horizontal wind; mechanical tilt from
	// the spherical bearing shifts the angle directly.
	alpha := clamp((90-d.LineAngle)+d.RotorTilt, -90, 90)
	s.AngleOfAttack = alpha
	alphaRad := alpha * math.Pi / 180

	// Stage 2: tip-speed ratio and rotational speed.
	ratio := tipSpeedRatio(alpha)
	minWindToSpin := 0.5*d.RotorMass + spinUpConstant
	if d.WindSpeed < minWindToSpin {
		// Heavier rotors resist spin-up in light wind.
		ratio = math.Max(0, ratio*d.WindSpeed/minWindToSpin)
	}
	s.TipSpeedRatio = ratio
	s.TipSpeed = d.WindSpeed * ratio
	s.RPM = s.TipSpeed / d.BladeLength * 60 / (2 * math.Pi)

	bladeArea := 2 * d.BladeLength * d.BladeChord

	// Stage 3: regime-dependent forces.
	if s.RPM > SpinThresholdRPM {
		computeSpinning(d, &s, alphaRad, bladeArea)
	} else {
		// Bluff-body regime: the rotor is a flat porous plate. Lift and
		// the blade diagnostics stay zero.
		drag := 0.5 * airDensity * d.WindSpeed * d.WindSpeed * bladeArea * flatPlateCd * math.Sin(alphaRad)
		s.Drag = drag
		s.TotalRotorThrust = drag
	}

	// Stage 4: line-frame projection and scalar heuristics.
	tiltRad := d.RotorTilt * math.Pi / 180
	s.GeneratedThrust = s.TotalRotorThrust * math.Cos(tiltRad)
	s.StabilityScore = clamp(100-3*s.TipSpeedRatio-2*math.Abs(d.RotorTilt), 0, 100)
	s.PowerOutput = s.GeneratedThrust * d.WindSpeed * powerEfficiency

	// Stage 5: anchor balance.
	s.Anchor = resolveAnchor(d, s)

	return s
}

// tipSpeedRatio is the piecewise autorotation curve over the effective disc
// angle: dead zone, linear ramp to the peak at 15°, then linear decay toward
// the windmill state as the disc approaches face-on.
func tipSpeedRatio(alpha float64) float64 {
	switch {
	case alpha <= deadZoneAlphaDeg:
		return 0
	case alpha < peakAlphaDeg:
		return peakTSR * alpha / peakAlphaDeg
	default:
		t := (alpha - peakAlphaDeg) / (90 - peakAlphaDeg)
		return peakTSR + (windmillTSR-peakTSR)*t
	}
}

// computeSpinning fills in the blade-element force estimate and the
// advancing/retreating blade diagnostics at the 75% span station.
func computeSpinning(d Design, s *State, alphaRad, bladeArea float64) {
	// Mean-square tangential velocity over the span, assuming a linear
	// velocity distribution from hub to tip.
	meanSqTangential := s.TipSpeed * s.TipSpeed / 3
	inflow := d.WindSpeed * math.Sin(alphaRad)
	q := 0.5 * airDensity * (meanSqTangential + inflow*inflow)

	station := 0.75 * s.TipSpeed
	phi := math.Atan2(inflow, station)
	localAoA := phi + d.BladePitch*math.Pi/180

	cl := liftCoefficient(localAoA)
	cd := profileDragCd + inducedDragK*cl*cl

	liftForce := q * bladeArea * cl
	dragForce := q * bladeArea * cd

	thrust := liftForce*math.Cos(phi) + dragForce*math.Sin(phi)

	// Bound against a maximum thrust coefficient on the full disc so the
	// estimate cannot run away outside the calibrated regime.
	discArea := math.Pi * d.BladeLength * d.BladeLength
	maxThrust := maxThrustCoeff * 0.5 * airDensity * d.WindSpeed * d.WindSpeed * discArea
	thrust = math.Min(thrust, maxThrust)

	s.TotalRotorThrust = thrust
	s.Lift = thrust * math.Cos(alphaRad)
	// The trailing term is a parasitic-drag contribution the axial
	// projection does not capture.
	s.Drag = thrust*math.Sin(alphaRad) + 0.5*dragForce

	parallelWind := d.WindSpeed * math.Cos(alphaRad)
	advancing := station + parallelWind
	retreating := station - parallelWind
	s.Blades = BladeAerodynamics{
		AdvancingVelocity:  advancing,
		RetreatingVelocity: retreating,
		InflowVelocity:     inflow,
		AdvancingAoA:       (math.Atan2(inflow, advancing) + d.BladePitch*math.Pi/180) * 180 / math.Pi,
		RetreatingAoA:      (math.Atan2(inflow, retreating) + d.BladePitch*math.Pi/180) * 180 / math.Pi,
		AdvanceRatio:       parallelWind / s.TipSpeed,
		ReynoldsNumber:     station * d.BladeChord / kinematicViscosity,
	}
}

// liftCoefficient is a two-stage stall model: linear below stall, a plateau
// through soft stall, then a drop in deep stall. Symmetric in sign.
func liftCoefficient(aoa float64) float64 {
	mag := math.Abs(aoa)
	cl := liftSlope * mag
	switch {
	case mag > deepStallRad:
		cl = clDeepStall
	case cl > clPlateau:
		cl = clPlateau
	}
	return math.Copysign(cl, aoa)
}

// resolveAnchor sums the kite-side and rotor-side forces at the hub in the
// downwind/altitude plane. A static two-segment balance, not a catenary.
func resolveAnchor(d Design, s State) AnchorAnalysis {
	lineRad := d.LineAngle * math.Pi / 180
	kiteX := d.LineTension * math.Cos(lineRad)
	kiteY := d.LineTension * math.Sin(lineRad)
	rotorX := s.Drag
	rotorY := s.Lift - s.Gravity

	fx := kiteX + rotorX
	fy := kiteY + rotorY
	return AnchorAnalysis{
		Tension: math.Hypot(fx, fy),
		Angle:   math.Atan2(fy, fx) * 180 / math.Pi,
		ForceX:  fx,
		ForceY:  fy,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
