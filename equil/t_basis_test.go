// Copyright 2026 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equil

import (
	"sort"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gochem/mixture"
	"github.com/cpmech/gochem/phase"
)

func buildGasMix(tst *testing.T, names []string, elements []string, moles []float64) *mixture.Mixture {
	species := make([]*phase.Species, len(names))
	for i, name := range names {
		species[i] = phase.MustFindSpecies(name)
	}
	gas, err := phase.NewIdealGas("gas", species, elements)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	mx := mixture.New()
	if err := mx.AddPhases([]phase.Phase{gas}, []float64{1.0}); err != nil {
		tst.Fatalf("%v", err)
	}
	if err := mx.SetMoles(moles); err != nil {
		tst.Fatalf("%v", err)
	}
	return mx
}

func checkPermutation(tst *testing.T, msg string, order []int) {
	sorted := make([]int, len(order))
	copy(sorted, order)
	sort.Ints(sorted)
	chk.Ints(tst, msg, sorted, utl.IntRange(len(order)))
}

func Test_basis01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("basis01. component selection for H2/O2/H2O")

	mx := buildGasMix(tst, []string{"H2", "O2", "H2O"}, nil, []float64{2, 1, 0.5})
	ns, ne := mx.Nspecies(), mx.Nelements()
	orderSp := utl.IntRange(ns)
	orderEl := utl.IntRange(ne)
	formRxn := utl.Alloc(ns, ne)

	nc, usedZeroed, err := BasisOptimize(mx, true, orderSp, orderEl, formRxn)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Int(tst, "nc", nc, 2)
	if usedZeroed {
		tst.Errorf("no zeroed species should be needed")
	}
	checkPermutation(tst, "species permutation", orderSp)
	checkPermutation(tst, "element permutation", orderEl)

	// greedy by mole fraction: H2 first, then O2
	chk.Int(tst, "first component", orderSp[0], 0)
	chk.Int(tst, "second component", orderSp[1], 1)

	// formation reaction H2O = 1*H2 + 0.5*O2
	chk.Int(tst, "noncomponent", orderSp[2], 2)
	chk.Float64(tst, "nu(H2)", 1e-12, formRxn[0][0], 1.0)
	chk.Float64(tst, "nu(O2)", 1e-12, formRxn[0][1], 0.5)
}

func Test_basis02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("basis02. formation reactions reproduce elemental formulae")

	mx := buildGasMix(tst, []string{"H2", "O2", "H2O", "OH", "H", "O"}, nil,
		[]float64{2, 1, 0.5, 1e-4, 1e-5, 1e-5})
	ns, ne := mx.Nspecies(), mx.Nelements()
	orderSp := utl.IntRange(ns)
	orderEl := utl.IntRange(ne)
	formRxn := utl.Alloc(ns, ne)

	nc, _, err := BasisOptimize(mx, true, orderSp, orderEl, formRxn)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Int(tst, "nc", nc, 2)

	// every noncomponent formula must equal the stoichiometric combination
	// of the component formulae
	for j := 0; j < ns-nc; j++ {
		kj := orderSp[nc+j]
		for m := 0; m < ne; m++ {
			sum := 0.0
			for c := 0; c < nc; c++ {
				sum += formRxn[j][c] * mx.Natoms(orderSp[c], m)
			}
			chk.Float64(tst, "formula of "+mx.SpeciesName(kj), 1e-10, sum, mx.Natoms(kj, m))
		}
	}
}

func Test_basis03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("basis03. rank-deficient formula matrix (element with no species)")

	// Ar is tracked as an element but carried by no species
	mx := buildGasMix(tst, []string{"H2", "O2", "H2O"}, []string{"H", "O", "Ar"},
		[]float64{2, 1, 0.5})
	ns, ne := mx.Nspecies(), mx.Nelements()
	chk.Int(tst, "ne", ne, 3)
	orderSp := utl.IntRange(ns)
	orderEl := utl.IntRange(ne)

	nc, _, err := BasisOptimize(mx, false, orderSp, orderEl, nil)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Int(tst, "nc < ne", nc, 2)

	// rearrangement must push the empty Ar constraint to the back
	ab := make([]float64, ne)
	mx.ElemAbundances(ab)
	if err := ElemRearrange(mx, nc, ab, orderSp, orderEl); err != nil {
		tst.Errorf("%v", err)
		return
	}
	checkPermutation(tst, "element permutation", orderEl)
	chk.Int(tst, "Ar is last", orderEl[ne-1], mx.ElementIndex("Ar"))

	// the full solver must cope with the dangling constraint
	s, err := NewSolver(mx, false, false)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Int(tst, "solver nc", s.Ncomponents(), 2)
}

func Test_basis04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("basis04. argument checking")

	mx := buildGasMix(tst, []string{"H2", "O2", "H2O"}, nil, []float64{1, 1, 1})
	if _, _, err := BasisOptimize(mx, false, []int{0}, utl.IntRange(2), nil); err == nil {
		tst.Errorf("BasisOptimize must reject wrong-size order vectors")
	}
	if err := ElemRearrange(mx, 2, []float64{1}, utl.IntRange(3), utl.IntRange(2)); err == nil {
		tst.Errorf("ElemRearrange must reject wrong-size element vectors")
	}
}

func Test_basis05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("basis05. zero-concentration species drafted into the basis")

	// only H2 carries moles, yet two independent formulae are needed
	mx := buildGasMix(tst, []string{"H2", "O2", "H2O"}, nil, []float64{1, 0, 0})
	orderSp := utl.IntRange(3)
	orderEl := utl.IntRange(2)

	nc, usedZeroed, err := BasisOptimize(mx, false, orderSp, orderEl, nil)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Int(tst, "nc", nc, 2)
	if !usedZeroed {
		tst.Errorf("a zero-concentration species must have been drafted")
	}
	chk.Int(tst, "first component", orderSp[0], 0)
	chk.Int(tst, "second component", orderSp[1], 1)
}
