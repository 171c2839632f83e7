// Copyright 2026 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import "math"

// SpeciesThermo computes the standard-state thermodynamic functions of one
// species as nondimensional quantities: cp/R, h/(R·T) and s/R
type SpeciesThermo interface {
	MinTemp() float64  // lower bound of the fit [K]
	MaxTemp() float64  // upper bound of the fit [K]
	CpR(T float64) float64 // cp°/R
	HRT(T float64) float64 // h°/(R·T)
	SR(T float64) float64  // s°/R
}

// Nasa7 implements the NASA 7-coefficient polynomial parameterization over
// two temperature ranges joined at Tmid:
//   cp°/R    = a0 + a1·T + a2·T² + a3·T³ + a4·T⁴
//   h°/(R·T) = a0 + a1/2·T + a2/3·T² + a3/4·T³ + a4/5·T⁴ + a5/T
//   s°/R     = a0·ln(T) + a1·T + a2/2·T² + a3/3·T³ + a4/4·T⁴ + a6
type Nasa7 struct {
	Tlow  float64    // minimum temperature [K]
	Tmid  float64    // crossover temperature [K]
	Thigh float64    // maximum temperature [K]
	Low   [7]float64 // coefficients for T < Tmid
	High  [7]float64 // coefficients for T >= Tmid
}

// MinTemp returns the lower bound of the fit
func (o *Nasa7) MinTemp() float64 { return o.Tlow }

// MaxTemp returns the upper bound of the fit
func (o *Nasa7) MaxTemp() float64 { return o.Thigh }

func (o *Nasa7) coeffs(T float64) *[7]float64 {
	if T < o.Tmid {
		return &o.Low
	}
	return &o.High
}

// CpR returns cp°/R at temperature T
func (o *Nasa7) CpR(T float64) float64 {
	a := o.coeffs(T)
	return a[0] + T*(a[1]+T*(a[2]+T*(a[3]+T*a[4])))
}

// HRT returns h°/(R·T) at temperature T
func (o *Nasa7) HRT(T float64) float64 {
	a := o.coeffs(T)
	return a[0] + T*(a[1]/2.0+T*(a[2]/3.0+T*(a[3]/4.0+T*a[4]/5.0))) + a[5]/T
}

// SR returns s°/R at temperature T
func (o *Nasa7) SR(T float64) float64 {
	a := o.coeffs(T)
	return a[0]*math.Log(T) + T*(a[1]+T*(a[2]/2.0+T*(a[3]/3.0+T*a[4]/4.0))) + a[6]
}

// ConstCp implements a constant heat capacity parameterization anchored at a
// reference temperature T0:
//   cp°(T) = Cp0
//   h°(T)  = H0 + Cp0·(T - T0)
//   s°(T)  = S0 + Cp0·ln(T/T0)
// Useful for condensed species whose data are fit over a narrow window.
type ConstCp struct {
	Tlow  float64 // minimum temperature [K]
	Thigh float64 // maximum temperature [K]
	T0    float64 // reference temperature [K]
	H0    float64 // molar enthalpy at T0 [J/kmol]
	S0    float64 // molar entropy at T0 [J/(kmol·K)]
	Cp0   float64 // molar heat capacity [J/(kmol·K)]
}

// MinTemp returns the lower bound of the fit
func (o *ConstCp) MinTemp() float64 { return o.Tlow }

// MaxTemp returns the upper bound of the fit
func (o *ConstCp) MaxTemp() float64 { return o.Thigh }

// CpR returns cp°/R at temperature T
func (o *ConstCp) CpR(T float64) float64 { return o.Cp0 / Rgas }

// HRT returns h°/(R·T) at temperature T
func (o *ConstCp) HRT(T float64) float64 {
	return (o.H0 + o.Cp0*(T-o.T0)) / (Rgas * T)
}

// SR returns s°/R at temperature T
func (o *ConstCp) SR(T float64) float64 {
	return (o.S0 + o.Cp0*math.Log(T/o.T0)) / Rgas
}

// Species holds the data defining one chemical species: its name, elemental
// composition, electrical charge, and standard-state thermo parameterization
type Species struct {
	N      string             // species name; e.g. "H2O"
	Atoms  map[string]float64 // element symbol => number of atoms
	Ch     float64            // charge [elementary charges]
	Thermo SpeciesThermo      // standard-state parameterization
}
