// Copyright 2026 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package equil implements multiphase chemical equilibrium: component-basis
// optimization over the element-species formula matrix, a single-point
// Gibbs minimizer at fixed (T, P), and the outer controller that wraps the
// single-point solve in a bisection loop over temperature or pressure to
// satisfy fixed-(H,P), fixed-(S,P) or fixed-(T,V) constraints.
package equil

import "github.com/cpmech/gosl/io"

// Prob selects the pair of properties held fixed by Equilibrate
type Prob int

// problem types. Only TP, HP, SP and TV are implemented by the controller;
// the remaining codes exist so callers can name any property pair, but
// requesting them is a hard "unknown option" failure.
const (
	TP Prob = iota // fixed temperature and pressure
	TV             // fixed temperature and volume
	HP             // fixed enthalpy and pressure
	SP             // fixed entropy and pressure
	PV             // fixed pressure and volume
	UV             // fixed internal energy and volume
	ST             // fixed entropy and temperature
	SV             // fixed entropy and volume
	UP             // fixed internal energy and pressure
	VH             // fixed volume and enthalpy
	TH             // fixed temperature and enthalpy
	SH             // fixed entropy and enthalpy
)

// reversed-pair aliases
const (
	PT = TP
	VT = TV
	PH = HP
	PS = SP
	VP = PV
	VU = UV
	TS = ST
	VS = SV
	PU = UP
	HV = VH
	HT = TH
	HS = SH
)

// String returns the name of the problem type
func (xy Prob) String() string {
	switch xy {
	case TP:
		return "TP"
	case TV:
		return "TV"
	case HP:
		return "HP"
	case SP:
		return "SP"
	case PV:
		return "PV"
	case UV:
		return "UV"
	case ST:
		return "ST"
	case SV:
		return "SV"
	case UP:
		return "UP"
	case VH:
		return "VH"
	case TH:
		return "TH"
	case SH:
		return "SH"
	}
	return io.Sf("Prob(%d)", int(xy))
}

// NoConvergence indicates that an iteration budget was exhausted before the
// target tolerance was met. The mixture is left in its last-attempted
// state so callers can inspect how far the solve progressed.
type NoConvergence struct {
	Var  string  // the control variable that failed to converge: "T", "P" or "composition"
	Iter int     // iterations consumed
	Err  float64 // last relative error
}

// Error returns the failure message
func (e *NoConvergence) Error() string {
	return io.Sf("equil: no convergence for %s after %d iterations (relative error = %g)", e.Var, e.Iter, e.Err)
}
