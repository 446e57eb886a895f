// Package rotor is the aerodynamic force model for a two-bladed, teetering,
// line-mounted autogyro rotor that converts wind energy into kite-line
// tension.
//
// The whole package is one pure function, [Compute], mapping a [Design] to a
// [State] through a fixed five-stage pipeline:
//
//  1. geometry resolution (effective disc angle of attack)
//  2. tip-speed-ratio estimation (piecewise autorotation curve)
//  3. regime-dependent forces (blade-element vs. bluff-body)
//  4. line-frame projection and scalar heuristics
//  5. anchor vector resolution and blade diagnostics
//
// # Purity
//
// Compute holds no state, performs no I/O and allocates nothing shared, so
// any number of calls may run concurrently on independent inputs. Callers
// sweeping a parameter must order results by the inputs they supplied, never
// by call completion order.
//
// # Calibration
//
// The tip-speed-ratio breakpoints and the two-stage stall model are tuned
// heuristics. This package uses the closed-form calibration; the empirical
// coefficient-table variant produces different numbers and is deliberately
// not merged in.
package rotor
