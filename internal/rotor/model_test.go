package rotor_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rodwindswept/gyrokite/internal/rotor"
)

var _ = Describe("Compute", func() {
	var base rotor.Design

	BeforeEach(func() {
		base = rotor.DefaultDesign()
	})

	It("is deterministic", func() {
		a := rotor.Compute(base)
		b := rotor.Compute(base)
		Expect(a).To(Equal(b))
	})

	Describe("output invariants", func() {
		designs := []rotor.Design{
			rotor.DefaultDesign(),
			{BladeLength: 0.5, BladeChord: 0.05, BladePitch: -6, RotorMass: 0.2, LineTension: 50, LineAngle: 5, WindSpeed: 3, RotorTilt: -30},
			{BladeLength: 3.0, BladeChord: 0.4, BladePitch: 12, RotorMass: 8, LineTension: 900, LineAngle: 89, WindSpeed: 28, RotorTilt: 45},
			{BladeLength: 1.0, BladeChord: 0.1, BladePitch: 0, RotorMass: 0, LineTension: 0, LineAngle: 45, WindSpeed: 0.2, RotorTilt: 0},
			{BladeLength: 1.0, BladeChord: 0.1, BladePitch: 2, RotorMass: 1, LineTension: 100, LineAngle: 0, WindSpeed: 15, RotorTilt: -90},
		}

		It("keeps rpm non-negative and stability within [0,100]", func() {
			for _, d := range designs {
				s := rotor.Compute(d)
				Expect(s.RPM).To(BeNumerically(">=", 0))
				Expect(s.StabilityScore).To(And(
					BeNumerically(">=", 0),
					BeNumerically("<=", 100)))
			}
		})

		It("clamps the effective angle of attack to [-90,90]", func() {
			for _, d := range designs {
				s := rotor.Compute(d)
				Expect(math.Abs(s.AngleOfAttack)).To(BeNumerically("<=", 90))
			}
		})

		It("never generates more line thrust than the rotor axis carries", func() {
			for _, d := range designs {
				if math.Abs(d.RotorTilt) > 90 {
					continue
				}
				s := rotor.Compute(d)
				Expect(math.Abs(s.GeneratedThrust)).To(
					BeNumerically("<=", math.Abs(s.TotalRotorThrust)+1e-9))
			}
		})
	})

	Describe("degenerate wind", func() {
		It("produces an all-zero force state at zero wind", func() {
			base.WindSpeed = 0
			s := rotor.Compute(base)
			Expect(s.RPM).To(BeZero())
			Expect(s.GeneratedThrust).To(BeZero())
			Expect(s.Lift).To(BeZero())
			Expect(s.Drag).To(BeZero())
			Expect(s.Spinning()).To(BeFalse())
		})
	})

	Describe("tip-speed-ratio curve", func() {
		It("has a dead zone when the disc is edge-on", func() {
			base.LineAngle = 90
			base.RotorTilt = 0
			for _, wind := range []float64{2, 10, 25} {
				base.WindSpeed = wind
				s := rotor.Compute(base)
				Expect(s.AngleOfAttack).To(BeZero())
				Expect(s.TipSpeedRatio).To(BeZero())
			}
		})

		It("peaks at a 15 degree disc angle", func() {
			base.RotorTilt = 0
			base.LineAngle = 75 // alpha = 15
			peak := rotor.Compute(base).TipSpeedRatio
			Expect(peak).To(BeNumerically("~", 8.5, 1e-9))

			for _, neighbor := range []float64{65, 70, 80, 85} {
				base.LineAngle = neighbor
				Expect(rotor.Compute(base).TipSpeedRatio).To(BeNumerically("<", peak))
			}
		})

		It("damps spin-up for heavy rotors in light wind", func() {
			base.RotorMass = 6 // threshold = 4 m/s
			base.WindSpeed = 2
			damped := rotor.Compute(base)

			base.WindSpeed = 8
			free := rotor.Compute(base)

			Expect(damped.TipSpeedRatio).To(BeNumerically("<", free.TipSpeedRatio))
			Expect(damped.TipSpeedRatio).To(BeNumerically("~", free.TipSpeedRatio*2/4, 1e-9))
		})
	})

	Describe("regimes", func() {
		It("treats a barely-moving rotor as a flat plate", func() {
			base.LineAngle = 89.2 // alpha 0.8, inside the dead zone
			s := rotor.Compute(base)
			Expect(s.Spinning()).To(BeFalse())
			Expect(s.Lift).To(BeZero())
			Expect(s.TotalRotorThrust).To(Equal(s.Drag))
			Expect(s.Blades).To(Equal(rotor.BladeAerodynamics{}))
		})

		It("fills blade diagnostics only when spinning", func() {
			s := rotor.Compute(base)
			Expect(s.Spinning()).To(BeTrue())
			Expect(s.Blades.ReynoldsNumber).To(BeNumerically(">", 0))
			Expect(s.Blades.AdvancingVelocity).To(
				BeNumerically(">", s.Blades.RetreatingVelocity))
			Expect(s.Blades.AdvanceRatio).To(BeNumerically(">", 0))
		})
	})

	Describe("anchor balance", func() {
		It("is invariant to summation order of the component vectors", func() {
			s := rotor.Compute(base)

			lineRad := base.LineAngle * math.Pi / 180
			kiteX := base.LineTension * math.Cos(lineRad)
			kiteY := base.LineTension * math.Sin(lineRad)
			rotorX := s.Drag
			rotorY := s.Lift - s.Gravity

			forward := math.Hypot(kiteX+rotorX, kiteY+rotorY)
			reversed := math.Hypot(rotorX+kiteX, rotorY+kiteY)

			Expect(s.Anchor.Tension).To(BeNumerically("~", forward, 1e-9))
			Expect(s.Anchor.Tension).To(BeNumerically("~", reversed, 1e-9))
			Expect(s.Anchor.ForceX).To(BeNumerically("~", kiteX+rotorX, 1e-9))
			Expect(s.Anchor.ForceY).To(BeNumerically("~", kiteY+rotorY, 1e-9))
		})
	})

	Describe("golden reference design", func() {
		// Frozen from a known-good run of the reference rig:
		// 1.2m blades, 0.15m chord, 4 deg pitch, 1.5kg, 200N line at 60
		// degrees, 10 m/s wind, no tilt.
		It("reproduces the frozen outputs", func() {
			s := rotor.Compute(rotor.DefaultDesign())

			Expect(s.TipSpeedRatio).To(BeNumerically("~", 7.55, 1e-9))
			Expect(s.TipSpeed).To(BeNumerically("~", 75.5, 1e-9))
			Expect(s.RPM).To(BeNumerically("~", 600.81, 0.05))
			Expect(s.TotalRotorThrust).To(BeNumerically("~", 360.22, 0.05))
			Expect(s.GeneratedThrust).To(BeNumerically("~", 360.22, 0.05))
			Expect(s.Lift).To(BeNumerically("~", 311.96, 0.05))
			Expect(s.Drag).To(BeNumerically("~", 190.66, 0.05))
			Expect(s.Gravity).To(BeNumerically("~", 14.715, 1e-9))
			Expect(s.StabilityScore).To(BeNumerically("~", 77.35, 1e-9))
			Expect(s.PowerOutput).To(BeNumerically("~", 1080.65, 0.2))
			Expect(s.Anchor.Tension).To(BeNumerically("~", 552.99, 0.1))
			Expect(s.Anchor.Angle).To(BeNumerically("~", 58.29, 0.05))
		})
	})

	Describe("wind sweep continuity", func() {
		It("has no jumps away from the regime boundary", func() {
			prev := math.NaN()
			for wind := 2.0; wind <= 25.0; wind += 0.25 {
				base.WindSpeed = wind
				thrust := rotor.Compute(base).GeneratedThrust
				if !math.IsNaN(prev) && prev > 0 {
					Expect(thrust/prev - 1).To(BeNumerically("<", 0.30))
				}
				prev = thrust
			}
		})
	})
})
