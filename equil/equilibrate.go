// Copyright 2026 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equil

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gochem/mixture"
)

// Options holds the knobs of the equilibrium controller. The zero value is
// not usable directly; call Equilibrate with nil to get the defaults.
type Options struct {
	Tol      float64 // relative error tolerance; default 1e-9
	MaxSteps int     // composition steps per single-point solve; default 1000
	MaxIter  int     // outer temperature/pressure iterations; default 200
	Estimate bool    // ignore the current composition and build a fresh initial estimate
	Verbose  bool    // print iteration progress
}

func (o *Options) withDefaults() Options {
	res := Options{Tol: 1e-9, MaxSteps: 1000, MaxIter: 200}
	if o != nil {
		res = *o
		if res.Tol <= 0 {
			res.Tol = 1e-9
		}
		if res.MaxSteps <= 0 {
			res.MaxSteps = 1000
		}
		if res.MaxIter <= 0 {
			res.MaxIter = 200
		}
	}
	return res
}

// Equilibrate brings mx to chemical equilibrium holding the property pair
// xy fixed at the mixture's current values. TP solves directly; HP and SP
// wrap the fixed-(T,P) solve in a bracketed temperature iteration, and TV
// in a pressure iteration. Other property pairs are rejected. The returned
// relerr is the final relative error of the solved problem, meaningful only
// when err is nil. On success the mixture holds the equilibrium state; on a
// NoConvergence failure it is left in its last-attempted state.
func Equilibrate(mx *mixture.Mixture, xy Prob, opts *Options) (relerr float64, err error) {
	if mx.Nspecies() == 0 {
		return 0, chk.Err("equil.Equilibrate: mixture contains no species")
	}
	op := opts.withDefaults()
	switch xy {
	case TP:
		return equilibrateTP(mx, op.Estimate, op)
	case HP:
		return equilibrateHP(mx, op)
	case SP:
		return equilibrateSP(mx, op)
	case TV:
		return equilibrateTV(mx, op)
	}
	return 0, chk.Err("equil.Equilibrate: unknown or unimplemented option %s", xy.String())
}

func equilibrateTP(mx *mixture.Mixture, estimate bool, op Options) (float64, error) {
	s, err := NewSolver(mx, estimate, op.Verbose)
	if err != nil {
		return 0, err
	}
	return s.Equilibrate(op.Tol, op.MaxSteps)
}

// equilibrateHP iterates on temperature until the mixture's equilibrium
// enthalpy matches the enthalpy it held on entry. The bracket [Tlow, Thigh]
// starts well outside the valid data range and tightens as single-point
// solves land above or below the target; the temperature update is a secant
// step on the bracket when both ends have been visited, and a
// geometric-mean probe of the bracket otherwise.
func equilibrateHP(mx *mixture.Mixture, op Options) (float64, error) {

	h0 := mx.Enthalpy()
	Tlow := 0.5 * mx.MinTemp()
	Thigh := 2.0 * mx.MaxTemp()
	Hlow, Hhigh := math.NaN(), math.NaN()
	T := mx.Temperature()
	estimate := op.Estimate
	herr := 1.0

	for n := 0; n < op.MaxIter; n++ {
		_, err := equilibrateTP(mx, estimate, op)
		if err != nil {
			// a failed single-point solve usually means a bad starting
			// composition; retry once from a fresh estimate, then back off
			// toward the upper bracket
			if _, ok := err.(*NoConvergence); !ok {
				return herr, err
			}
			if !estimate {
				estimate = true
				continue
			}
			tnew := 0.5 * (T + Thigh)
			if math.Abs(tnew-T) < 1.0 {
				tnew = T + 1.0
			}
			T = tnew
			mx.SetTemperature(T)
			continue
		}

		hnow := mx.Enthalpy()
		if hnow < h0 {
			Tlow = T
			Hlow = hnow
		} else {
			Thigh = T
			Hhigh = hnow
		}

		// secant step on the bracket when both ends have been measured;
		// geometric-mean probe while only one end is known
		var dt float64
		if !math.IsNaN(Hlow) && !math.IsNaN(Hhigh) {
			cpb := (Hhigh - Hlow) / (Thigh - Tlow)
			dt = (h0 - hnow) / cpb
			dtmax := 0.5 * (Thigh - Tlow)
			if math.Abs(dt) > dtmax {
				dt = math.Copysign(dtmax, dt)
			}
		} else {
			dt = math.Sqrt(Tlow*Thigh) - T
		}

		// the enthalpy scale |h0| can legitimately be near zero; cp*T is
		// always a sound scale for the mismatch
		herr = math.Abs(h0-hnow) / (math.Abs(h0) + mx.Cp()*T)
		if op.Verbose {
			io.Pf("equil: HP iter %3d: T = %g [K], herr = %g\n", n, T, herr)
		}
		if herr < op.Tol {
			return herr, nil
		}

		tnew := T + dt
		if tnew <= 0 {
			tnew = 0.5 * T
		}
		// big jumps invalidate the composition as a starting point
		estimate = math.Abs(dt) >= 100.0
		T = tnew
		mx.SetTemperature(T)
	}
	return herr, &NoConvergence{Var: "T", Iter: op.MaxIter, Err: herr}
}

// equilibrateSP iterates on temperature until the mixture's equilibrium
// entropy matches the entropy it held on entry. Same scheme as
// equilibrateHP with ds = cp/T dT steps; the temperature bracket is capped
// rather than derived from the data range because entropy varies slowly.
func equilibrateSP(mx *mixture.Mixture, op Options) (float64, error) {

	s0 := mx.Entropy()
	Tlow := 1.0
	Thigh := 1.0e6
	T := mx.Temperature()
	estimate := op.Estimate
	serr := 1.0

	for n := 0; n < op.MaxIter; n++ {
		_, err := equilibrateTP(mx, estimate, op)
		if err != nil {
			if _, ok := err.(*NoConvergence); !ok {
				return serr, err
			}
			if !estimate {
				estimate = true
				continue
			}
			tnew := 0.5 * (T + Thigh)
			if math.Abs(tnew-T) < 1.0 {
				tnew = T + 1.0
			}
			T = tnew
			mx.SetTemperature(T)
			continue
		}

		snow := mx.Entropy()
		if snow < s0 {
			Tlow = math.Max(Tlow, T)
		} else {
			Thigh = math.Min(Thigh, T)
		}

		cpb := mx.Cp()
		dt := (s0 - snow) * T / cpb
		dtmax := math.Min(0.5*(Thigh-Tlow), 500.0)
		if math.Abs(dt) > dtmax {
			dt = math.Copysign(dtmax, dt)
		}

		serr = math.Abs(s0-snow) / (math.Abs(s0) + math.Abs(cpb))
		if op.Verbose {
			io.Pf("equil: SP iter %3d: T = %g [K], serr = %g\n", n, T, serr)
		}
		if serr < op.Tol {
			return serr, nil
		}

		tnew := T + dt
		if tnew <= 0 {
			tnew = 0.5 * T
		}
		estimate = math.Abs(dt) >= 100.0
		T = tnew
		mx.SetTemperature(T)
	}
	return serr, &NoConvergence{Var: "T", Iter: op.MaxIter, Err: serr}
}

// equilibrateTV iterates on pressure until the mixture's equilibrium volume
// matches the volume it held on entry; temperature is never touched. Each
// iteration equilibrates at the trial pressure, measures dV/dP by a small
// pressure bump at fixed composition, and takes a damped Newton step.
// Exhausting the budget, or an inner solve failure, is a hard error.
func equilibrateTV(mx *mixture.Mixture, op Options) (float64, error) {

	v0 := mx.Volume()
	verr := 1.0

	for n := 0; n < op.MaxIter; n++ {
		if _, err := equilibrateTP(mx, op.Estimate && n == 0, op); err != nil {
			return verr, err
		}

		vnow := mx.Volume()
		verr = math.Abs(v0-vnow) / math.Abs(v0)
		if op.Verbose {
			io.Pf("equil: TV iter %3d: P = %g [Pa], verr = %g\n", n, mx.Pressure(), verr)
		}
		if verr < op.Tol {
			return verr, nil
		}

		pnow := mx.Pressure()
		mx.SetPressure(1.01 * pnow)
		dVdP := (mx.Volume() - vnow) / (0.01 * pnow)
		if dVdP == 0 {
			mx.SetPressure(pnow)
			return verr, chk.Err("equil.Equilibrate: volume does not respond to pressure; cannot iterate on P")
		}

		pnew := pnow + 0.5*(v0-vnow)/dVdP
		if pnew <= 0 {
			pnew = 0.5 * pnow
		}
		mx.SetPressure(pnew)
	}
	return verr, &NoConvergence{Var: "P", Iter: op.MaxIter, Err: verr}
}
