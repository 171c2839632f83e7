// Copyright 2026 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import "github.com/cpmech/gosl/chk"

// builtin holds NASA-7 fits (GRI-Mech 3.0) for a handful of common H/O/C/N
// species, plus constant-cp fits for condensed water. Coefficients are
// embedded directly; reading mechanism files is out of scope.
var builtin = map[string]*Species{

	"H2": {N: "H2", Atoms: map[string]float64{"H": 2}, Thermo: &Nasa7{
		Tlow: 200, Tmid: 1000, Thigh: 3500,
		Low:  [7]float64{2.34433112e+00, 7.98052075e-03, -1.94781510e-05, 2.01572094e-08, -7.37611761e-12, -9.17935173e+02, 6.83010238e-01},
		High: [7]float64{3.33727920e+00, -4.94024731e-05, 4.99456778e-07, -1.79566394e-10, 2.00255376e-14, -9.50158922e+02, -3.20502331e+00},
	}},

	"H": {N: "H", Atoms: map[string]float64{"H": 1}, Thermo: &Nasa7{
		Tlow: 200, Tmid: 1000, Thigh: 3500,
		Low:  [7]float64{2.50000000e+00, 7.05332819e-13, -1.99591964e-15, 2.30081632e-18, -9.27732332e-22, 2.54736599e+04, -4.46682853e-01},
		High: [7]float64{2.50000001e+00, -2.30842973e-11, 1.61561948e-14, -4.73515235e-18, 4.98197357e-22, 2.54736599e+04, -4.46682914e-01},
	}},

	"O2": {N: "O2", Atoms: map[string]float64{"O": 2}, Thermo: &Nasa7{
		Tlow: 200, Tmid: 1000, Thigh: 3500,
		Low:  [7]float64{3.78245636e+00, -2.99673416e-03, 9.84730201e-06, -9.68129509e-09, 3.24372837e-12, -1.06394356e+03, 3.65767573e+00},
		High: [7]float64{3.28253784e+00, 1.48308754e-03, -7.57966669e-07, 2.09470555e-10, -2.16717794e-14, -1.08845772e+03, 5.45323129e+00},
	}},

	"O": {N: "O", Atoms: map[string]float64{"O": 1}, Thermo: &Nasa7{
		Tlow: 200, Tmid: 1000, Thigh: 3500,
		Low:  [7]float64{3.16826710e+00, -3.27931884e-03, 6.64306396e-06, -6.12806624e-09, 2.11265971e-12, 2.91222592e+04, 2.05193346e+00},
		High: [7]float64{2.56942078e+00, -8.59741137e-05, 4.19484589e-08, -1.00177799e-11, 1.22833691e-15, 2.92175791e+04, 4.78433864e+00},
	}},

	"OH": {N: "OH", Atoms: map[string]float64{"H": 1, "O": 1}, Thermo: &Nasa7{
		Tlow: 200, Tmid: 1000, Thigh: 3500,
		Low:  [7]float64{3.99201543e+00, -2.40131752e-03, 4.61793841e-06, -3.88113333e-09, 1.36411470e-12, 3.61508056e+03, -1.03925458e-01},
		High: [7]float64{3.09288767e+00, 5.48429716e-04, 1.26505228e-07, -8.79461556e-11, 1.17412376e-14, 3.85865700e+03, 4.47669610e+00},
	}},

	"H2O": {N: "H2O", Atoms: map[string]float64{"H": 2, "O": 1}, Thermo: &Nasa7{
		Tlow: 200, Tmid: 1000, Thigh: 3500,
		Low:  [7]float64{4.19864056e+00, -2.03643410e-03, 6.52040211e-06, -5.48797062e-09, 1.77197817e-12, -3.02937267e+04, -8.49032208e-01},
		High: [7]float64{3.03399249e+00, 2.17691804e-03, -1.64072518e-07, -9.70419870e-11, 1.68200992e-14, -3.00042971e+04, 4.96677010e+00},
	}},

	"N2": {N: "N2", Atoms: map[string]float64{"N": 2}, Thermo: &Nasa7{
		Tlow: 300, Tmid: 1000, Thigh: 5000,
		Low:  [7]float64{3.29867700e+00, 1.40824040e-03, -3.96322200e-06, 5.64151500e-09, -2.44485400e-12, -1.02089990e+03, 3.95037200e+00},
		High: [7]float64{2.92664000e+00, 1.48797680e-03, -5.68476000e-07, 1.00970380e-10, -6.75335100e-15, -9.22797700e+02, 5.98052800e+00},
	}},

	"AR": {N: "AR", Atoms: map[string]float64{"Ar": 1}, Thermo: &Nasa7{
		Tlow: 300, Tmid: 1000, Thigh: 5000,
		Low:  [7]float64{2.50000000e+00, 0, 0, 0, 0, -7.45375000e+02, 4.36600000e+00},
		High: [7]float64{2.50000000e+00, 0, 0, 0, 0, -7.45375000e+02, 4.36600000e+00},
	}},

	"CO": {N: "CO", Atoms: map[string]float64{"C": 1, "O": 1}, Thermo: &Nasa7{
		Tlow: 200, Tmid: 1000, Thigh: 3500,
		Low:  [7]float64{3.57953347e+00, -6.10353680e-04, 1.01681433e-06, 9.07005884e-10, -9.04424499e-13, -1.43440860e+04, 3.50840928e+00},
		High: [7]float64{2.71518561e+00, 2.06252743e-03, -9.98825771e-07, 2.30053008e-10, -2.03647716e-14, -1.41518724e+04, 7.81868772e+00},
	}},

	"CO2": {N: "CO2", Atoms: map[string]float64{"C": 1, "O": 2}, Thermo: &Nasa7{
		Tlow: 200, Tmid: 1000, Thigh: 3500,
		Low:  [7]float64{2.35677352e+00, 8.98459677e-03, -7.12356269e-06, 2.45919022e-09, -1.43699548e-13, -4.83719697e+04, 9.90105222e+00},
		High: [7]float64{3.85746029e+00, 4.41437026e-03, -2.21481404e-06, 5.23490188e-10, -4.72084164e-14, -4.87591660e+04, 2.27163806e+00},
	}},

	// condensed water: narrow validity windows on purpose; see the mixture
	// Tmin/Tmax rules for why stoichiometric phases keep their own ranges
	"H2O(L)": {N: "H2O(L)", Atoms: map[string]float64{"H": 2, "O": 1}, Thermo: &ConstCp{
		Tlow: 273.15, Thigh: 373.15, T0: 298.15,
		H0: -2.85830e+08, S0: 6.995e+04, Cp0: 7.539e+04,
	}},

	"H2O(S)": {N: "H2O(S)", Atoms: map[string]float64{"H": 2, "O": 1}, Thermo: &ConstCp{
		Tlow: 200.0, Thigh: 273.15, T0: 273.15,
		H0: -2.92615e+08, S0: 4.492e+04, Cp0: 3.811e+04,
	}},
}

// FindSpecies returns a copy of a built-in species definition
func FindSpecies(name string) (*Species, error) {
	s, ok := builtin[name]
	if !ok {
		return nil, chk.Err("species %q is not available in built-in database", name)
	}
	cp := *s
	return &cp, nil
}

// MustFindSpecies is like FindSpecies but panics on unknown names
func MustFindSpecies(name string) *Species {
	s, err := FindSpecies(name)
	if err != nil {
		chk.Panic("%v", err)
	}
	return s
}
