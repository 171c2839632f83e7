// Copyright 2026 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equil

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gochem/mixture"
	"github.com/cpmech/gochem/phase"
)

var h2o2species = []string{"H2", "O2", "H2O", "OH", "H", "O"}

func Test_equil01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("equil01. fixed (T, P): hydrogen combustion at 2000 K")

	mx := buildGasMix(tst, h2o2species, nil, []float64{2, 1, 0, 0, 0, 0})
	mx.SetStateTP(2000, phase.OneAtm)

	hMoles := mx.ElementMoles(mx.ElementIndex("H"))
	oMoles := mx.ElementMoles(mx.ElementIndex("O"))

	relerr, err := Equilibrate(mx, TP, &Options{Tol: 1e-8, MaxSteps: 5000})
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	if relerr >= 1e-8 {
		tst.Errorf("returned error estimate must beat the tolerance; got %g", relerr)
	}

	// elements are conserved by construction of the reaction steps
	chk.Float64(tst, "moles of H", 1e-8*hMoles, mx.ElementMoles(mx.ElementIndex("H")), hMoles)
	chk.Float64(tst, "moles of O", 1e-8*oMoles, mx.ElementMoles(mx.ElementIndex("O")), oMoles)

	// T and P are untouched
	chk.Float64(tst, "T", 1e-12, mx.Temperature(), 2000)
	chk.Float64(tst, "P", 1e-9, mx.Pressure(), phase.OneAtm)

	// stoichiometric H2/O2 at 2000 K burns almost completely
	kH2O, err := mx.SpeciesIndexByName("H2O", "gas")
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	if x := mx.MoleFraction(kH2O); x < 0.8 {
		tst.Errorf("H2O must dominate at equilibrium; got x = %g", x)
	}

	// converged state: all reaction affinities vanish, e.g. H2 + 1/2 O2 = H2O
	mu := make([]float64, mx.Nspecies())
	mx.ChemPotentials(mu)
	dgrt := (mu[2] - mu[0] - 0.5*mu[1]) / (phase.Rgas * 2000)
	chk.Float64(tst, "affinity of H2O formation", 1e-6, dgrt, 0)
}

func Test_equil02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("equil02. fixed (H, P): adiabatic flame temperature")

	// lean hydrogen/oxygen flame starting at room temperature
	mx := buildGasMix(tst, h2o2species, nil, []float64{1, 2, 0, 0, 0, 0})
	mx.SetStateTP(300, phase.OneAtm)
	h0 := mx.Enthalpy()

	herr, err := Equilibrate(mx, HP, &Options{Tol: 1e-4})
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	if herr >= 1e-4 {
		tst.Errorf("returned error estimate must beat the tolerance; got %g", herr)
	}

	T := mx.Temperature()
	if T < 1500 || T > 3200 {
		tst.Errorf("adiabatic flame temperature out of range: %g K", T)
	}
	hscale := math.Abs(h0) + mx.Cp()*T
	chk.Float64(tst, "enthalpy conservation", 1e-3*hscale, mx.Enthalpy(), h0)
	chk.Float64(tst, "pressure held", 1e-9, mx.Pressure(), phase.OneAtm)
}

func Test_equil03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("equil03. fixed (H, P): exhausted iteration budget")

	mx := buildGasMix(tst, h2o2species, nil, []float64{1, 2, 0, 0, 0, 0})
	mx.SetStateTP(300, phase.OneAtm)

	_, err := Equilibrate(mx, HP, &Options{Tol: 1e-4, MaxIter: 1})
	nc, ok := err.(*NoConvergence)
	if !ok {
		tst.Errorf("expected *NoConvergence; got %v", err)
		return
	}
	chk.String(tst, nc.Var, "T")
	chk.Int(tst, "iterations", nc.Iter, 1)
	if nc.Error() == "" {
		tst.Errorf("NoConvergence must carry a message")
	}
}

func Test_equil04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("equil04. fixed (S, P): isentropic combustion")

	mx := buildGasMix(tst, h2o2species, nil, []float64{1, 2, 0, 0, 0, 0})
	mx.SetStateTP(1000, phase.OneAtm)
	s0 := mx.Entropy()

	if _, err := Equilibrate(mx, SP, &Options{Tol: 1e-4}); err != nil {
		tst.Errorf("%v", err)
		return
	}

	T := mx.Temperature()
	if T < 1200 || T > 2500 {
		tst.Errorf("isentropic flame temperature out of range: %g K", T)
	}
	sscale := math.Abs(s0) + mx.Cp()
	chk.Float64(tst, "entropy conservation", 1e-3*sscale, mx.Entropy(), s0)
}

func Test_equil05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("equil05. fixed (T, V): pressure adjusts to the mole deficit")

	mx := buildGasMix(tst, h2o2species, nil, []float64{2, 1, 0, 0, 0, 0})
	mx.SetStateTP(1500, phase.OneAtm)
	v0 := mx.Volume()

	if _, err := Equilibrate(mx, TV, &Options{Tol: 1e-6}); err != nil {
		tst.Errorf("%v", err)
		return
	}

	chk.Float64(tst, "T held", 1e-12, mx.Temperature(), 1500)
	chk.Float64(tst, "volume recovered", 1e-4*v0, mx.Volume(), v0)

	// burning 2 H2 + O2 -> 2 H2O shrinks the mole count, so the pressure
	// must end up below the starting value
	if mx.Pressure() >= phase.OneAtm {
		tst.Errorf("pressure must drop; got %g Pa", mx.Pressure())
	}
}

func Test_equil06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("equil06. argument and option errors")

	// empty mixture
	mx := mixture.New()
	mx.Init()
	if _, err := Equilibrate(mx, TP, nil); err == nil {
		tst.Errorf("Equilibrate must fail for an empty mixture")
	}
	if _, err := NewSolver(mx, false, false); err == nil {
		tst.Errorf("NewSolver must fail for an empty mixture")
	}

	// unimplemented property pairs are rejected up front
	mx2 := buildGasMix(tst, []string{"H2", "O2", "H2O"}, nil, []float64{2, 1, 0})
	_, err := Equilibrate(mx2, UV, nil)
	if err == nil {
		tst.Errorf("UV must be rejected")
	}
	if _, ok := err.(*NoConvergence); ok {
		tst.Errorf("an unknown option is not a convergence failure")
	}

	// problem-type names and aliases
	chk.String(tst, TP.String(), "TP")
	chk.String(tst, UV.String(), "UV")
	if PT != TP || VT != TV || PH != HP {
		tst.Errorf("reversed-pair aliases must name the same problem")
	}
}

func Test_equil07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("equil07. condensed phase drops out above its range")

	// gas + ice at 400 K: the ice gets the sentinel potential and must be
	// consumed entirely
	gas, err := phase.NewIdealGas("gas", []*phase.Species{
		phase.MustFindSpecies("H2"),
		phase.MustFindSpecies("O2"),
		phase.MustFindSpecies("H2O"),
	}, nil)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	ice, err := phase.NewStoich("ice", phase.MustFindSpecies("H2O(S)"), 50.9)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	mx := mixture.New()
	if err := mx.AddPhases([]phase.Phase{gas, ice}, []float64{1.0, 0.5}); err != nil {
		tst.Fatalf("%v", err)
	}
	if err := mx.SetMoles([]float64{0.1, 1.0, 0.2, 0.5}); err != nil {
		tst.Fatalf("%v", err)
	}
	mx.SetStateTP(400, phase.OneAtm)

	oMoles := mx.ElementMoles(mx.ElementIndex("O"))
	if _, err := Equilibrate(mx, TP, &Options{Tol: 1e-6}); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if mx.PhaseMoles(1) > 1e-6 {
		tst.Errorf("ice must sublime away at 400 K; got %g kmol", mx.PhaseMoles(1))
	}
	chk.Float64(tst, "moles of O", 1e-6*oMoles, mx.ElementMoles(mx.ElementIndex("O")), oMoles)
}

func Test_equil08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("equil08. fixed (T, V) rejects incompressible mixtures")

	// two condensed phases with different molar densities: melting the ice
	// changes the volume, but no pressure change can bring it back
	liq, err := phase.NewStoich("water", phase.MustFindSpecies("H2O(L)"), 55.5)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	ice, err := phase.NewStoich("ice", phase.MustFindSpecies("H2O(S)"), 50.9)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	mx := mixture.New()
	if err := mx.AddPhases([]phase.Phase{liq, ice}, []float64{0.5, 0.5}); err != nil {
		tst.Fatalf("%v", err)
	}
	mx.SetStateTP(300, phase.OneAtm)

	_, err = Equilibrate(mx, TV, &Options{Tol: 1e-6})
	if err == nil {
		tst.Errorf("TV must fail when the volume does not respond to pressure")
		return
	}
	if _, ok := err.(*NoConvergence); ok {
		tst.Errorf("a zero dV/dP must be reported as a hard error, not exhaustion")
	}
}
