// Copyright 2026 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equil

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gochem/mixture"
)

// pivot threshold for the squared norm of an orthogonalized formula column;
// formula-matrix entries are O(1) atom counts
const basisPivotTol = 1e-6

// BasisOptimize chooses the optimum basis of component species for
// equilibrium calculations: for each component slot it greedily picks the
// species with the largest current mole number whose elemental formula is
// not a linear combination of the formulae already chosen (detected by
// modified Gram-Schmidt on the formula-matrix columns). Exact ties go to
// the lowest global species index, so runs are reproducible.
//
// orderSpecies (length Nspecies) and orderElems (length Nelements) are
// permutations, normally identities on entry; orderSpecies is reordered in
// place so the chosen components occupy the first nc positions, with
// element rows read in orderElems order. usedZeroedSpecies reports that a
// slot had to be filled by a species with zero concentration, in which case
// the downstream linear system may be ill-conditioned.
//
// If doFormRxn is true, formRxn receives, for each noncomponent species
// orderSpecies[nc+j], the stoichiometric coefficients formRxn[j][0:nc]
// expressing it as a formation reaction from the components.
//
// The returned nc never exceeds min(Nspecies, Nelements); it is smaller
// when the formula matrix is rank-deficient, and callers should then invoke
// ElemRearrange and re-run.
func BasisOptimize(mx *mixture.Mixture, doFormRxn bool, orderSpecies, orderElems []int, formRxn [][]float64) (nc int, usedZeroedSpecies bool, err error) {

	ns, ne := mx.Nspecies(), mx.Nelements()
	if len(orderSpecies) != ns || len(orderElems) != ne {
		err = chk.Err("equil.BasisOptimize: order vectors must have lengths %d and %d; got %d and %d", ns, ne, len(orderSpecies), len(orderElems))
		return
	}
	ncMax := ns
	if ne < ncMax {
		ncMax = ne
	}
	if ncMax == 0 {
		return
	}

	// aw holds candidate weights: current mole numbers, switched to -1
	// once a species is accepted or proven dependent
	aw := make([]float64, ns)
	mx.Moles(aw)

	// sm accumulates the orthogonalized formula columns of accepted
	// components; sa their squared norms
	sm := la.NewMatrix(ne, ncMax)
	sa := make([]float64, ncMax)
	ss := make([]float64, ncMax)

	jr := 0
	for jr < ncMax {
		accepted := false
		for {

			// candidate with the largest remaining mole number
			k, ki := -1, -1
			big := 0.0
			for i := jr; i < ns; i++ {
				kk := orderSpecies[i]
				if aw[kk] > big {
					big, k, ki = aw[kk], kk, i
				}
			}
			if k < 0 {
				// only zeroed species remain
				for i := jr; i < ns; i++ {
					kk := orderSpecies[i]
					if aw[kk] >= 0 {
						k, ki = kk, i
						usedZeroedSpecies = true
						break
					}
				}
			}
			if k < 0 {
				break // exhausted: formula matrix is rank-deficient
			}

			// trial column: formula of k with element rows in orderElems order
			for m := 0; m < ne; m++ {
				sm.Set(m, jr, mx.Natoms(k, orderElems[m]))
			}

			// project out the accepted columns
			for j := 0; j < jr; j++ {
				ss[j] = 0
				for m := 0; m < ne; m++ {
					ss[j] += sm.Get(m, jr) * sm.Get(m, j)
				}
				ss[j] /= sa[j]
			}
			for j := 0; j < jr; j++ {
				for m := 0; m < ne; m++ {
					sm.Set(m, jr, sm.Get(m, jr)-ss[j]*sm.Get(m, j))
				}
			}
			sa[jr] = 0
			for m := 0; m < ne; m++ {
				sa[jr] += sm.Get(m, jr) * sm.Get(m, jr)
			}

			aw[k] = -1
			if sa[jr] > basisPivotTol {
				orderSpecies[ki], orderSpecies[jr] = orderSpecies[jr], orderSpecies[ki]
				accepted = true
				break
			}
			// dependent on the components already chosen; never a component
		}
		if !accepted {
			break
		}
		jr++
	}
	nc = jr

	// formation reactions: solve the nc×nc component formula system once
	// per noncomponent species
	if doFormRxn && nc > 0 {
		if len(formRxn) < ns-nc {
			err = chk.Err("equil.BasisOptimize: formRxn must have at least %d rows; got %d", ns-nc, len(formRxn))
			return
		}
		A := la.NewMatrix(nc, nc)
		for i := 0; i < nc; i++ {
			for c := 0; c < nc; c++ {
				A.Set(i, c, mx.Natoms(orderSpecies[c], orderElems[i]))
			}
		}
		b := la.NewVector(nc)
		x := la.NewVector(nc)
		for j := 0; j < ns-nc; j++ {
			kj := orderSpecies[nc+j]
			for i := 0; i < nc; i++ {
				b[i] = mx.Natoms(kj, orderElems[i])
			}
			la.DenSolve(x, A, b, true)
			for c := 0; c < nc; c++ {
				formRxn[j][c] = x[c]
			}
		}
	}
	return
}

// ElemRearrange handles the rearrangement of the element constraints when
// the number of components found by BasisOptimize is less than the number
// of elements. It finds nc element rows spanning the range space of the
// component formula matrix and moves them to the front of orderElems;
// constraints outside that range space (the classic case: a tracked
// element contained by no species) migrate to the back, where they cannot
// produce a zero pivot in the subsequent solves. Elements with positive
// abundance are preferred for the front. Species ordering is not touched.
func ElemRearrange(mx *mixture.Mixture, nc int, elemAbundances []float64, orderSpecies, orderElems []int) error {

	ne := mx.Nelements()
	if len(elemAbundances) != ne || len(orderElems) != ne {
		return chk.Err("equil.ElemRearrange: element vectors must have length %d", ne)
	}
	if nc == 0 {
		return nil
	}

	sm := la.NewMatrix(nc, nc)
	sa := make([]float64, nc)
	ss := make([]float64, nc)
	dependent := make([]bool, ne)

	for jr := 0; jr < nc; jr++ {
		accepted := false
		for pass := 0; pass < 2 && !accepted; pass++ {
			for i := jr; i < ne; i++ {
				m := orderElems[i]
				if dependent[m] {
					continue
				}
				if pass == 0 && elemAbundances[m] <= 0 {
					continue
				}

				// trial column: row m of the formula matrix restricted to
				// the component species
				for c := 0; c < nc; c++ {
					sm.Set(c, jr, mx.Natoms(orderSpecies[c], m))
				}
				for j := 0; j < jr; j++ {
					ss[j] = 0
					for c := 0; c < nc; c++ {
						ss[j] += sm.Get(c, jr) * sm.Get(c, j)
					}
					ss[j] /= sa[j]
				}
				for j := 0; j < jr; j++ {
					for c := 0; c < nc; c++ {
						sm.Set(c, jr, sm.Get(c, jr)-ss[j]*sm.Get(c, j))
					}
				}
				sa[jr] = 0
				for c := 0; c < nc; c++ {
					sa[jr] += sm.Get(c, jr) * sm.Get(c, jr)
				}

				if sa[jr] > basisPivotTol {
					orderElems[i], orderElems[jr] = orderElems[jr], orderElems[i]
					accepted = true
					break
				}
				dependent[m] = true
			}
		}
		if !accepted {
			return chk.Err("equil.ElemRearrange: could not find %d independent element constraints among %d elements", nc, ne)
		}
	}
	return nil
}
