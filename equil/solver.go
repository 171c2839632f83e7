// Copyright 2026 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equil

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gochem/mixture"
	"github.com/cpmech/gochem/phase"
)

// notMu is the sentinel chemical potential [J/kmol] substituted for species
// whose phases have no valid thermo data at the current temperature; large
// and positive so Gibbs minimization drives those phases to zero extent
const notMu = 1e12

// Solver performs the single-point Gibbs minimization at fixed temperature
// and pressure, using the stoichiometric formulation: BasisOptimize selects
// component species, every noncomponent species defines a formation
// reaction from the components, and damped Newton steps on the reaction
// extents drive all |ΔG_rxn/RT| below tolerance. Because composition
// updates flow exclusively through reactions, element abundances are
// conserved by construction.
type Solver struct {

	// problem
	mx         *mixture.Mixture
	ns, ne     int   // number of global species and elements
	nc         int   // number of components
	orderSp    []int // species permutation; components first
	orderEl    []int // element permutation; independent constraints first
	usedZeroed bool  // a zero-concentration species had to serve as component

	// working set
	formRxn  [][]float64 // [ns-nc][nc] formation-reaction coefficients
	moles    []float64   // absolute species mole numbers [kmol]
	floor    float64     // smallest mole number kept in the working set
	mu       []float64   // chemical potentials [J/kmol]
	dgrt     []float64   // per reaction: ΔG/RT
	dxi      []float64   // per reaction: extent step [kmol]
	delta    []float64   // per species: mole change of one step [kmol]
	phaseTot []float64   // per phase: net stoichiometric sum workspace

	verbose bool
}

// NewSolver prepares a single-point solve on mx at its current (T, P). The
// mixture's mole numbers are floored at a tiny positive value (relative
// 1e-14) so reaction-extent curvatures stay finite; the floor is far below
// any meaningful tolerance. With estimate true, the current composition is
// discarded as a starting point: a crude redistribution driven by
// standard-state potentials runs first (still through reactions, so element
// totals are kept).
func NewSolver(mx *mixture.Mixture, estimate, verbose bool) (o *Solver, err error) {

	o = new(Solver)
	o.mx = mx
	o.ns = mx.Nspecies()
	o.ne = mx.Nelements()
	o.verbose = verbose
	if o.ns == 0 {
		return nil, chk.Err("equil.NewSolver: mixture has no species")
	}
	if o.ne == 0 {
		return nil, chk.Err("equil.NewSolver: mixture has no elements")
	}

	// floored working moles
	o.moles = make([]float64, o.ns)
	mx.Moles(o.moles)
	total := 0.0
	for _, n := range o.moles {
		total += n
	}
	o.floor = 1e-14 * (total + 1.0)
	for k := range o.moles {
		if o.moles[k] < o.floor {
			o.moles[k] = o.floor
		}
	}
	if err = mx.SetMoles(o.moles); err != nil {
		return nil, err
	}

	// workspaces
	o.mu = make([]float64, o.ns)
	o.dgrt = make([]float64, o.ns)
	o.dxi = make([]float64, o.ns)
	o.delta = make([]float64, o.ns)
	o.phaseTot = make([]float64, mx.Nphases())

	// component basis
	if err = o.rebasis(); err != nil {
		return nil, err
	}

	if estimate {
		o.estimate()
	}
	return
}

// Ncomponents returns the number of component species of the current basis
func (o *Solver) Ncomponents() int { return o.nc }

// UsedZeroedSpecies reports that the basis had to include a species with
// zero concentration
func (o *Solver) UsedZeroedSpecies() bool { return o.usedZeroed }

// rebasis (re)selects the component species from the current composition.
// When the formula matrix is rank-deficient, the unsatisfiable element
// constraints are first migrated to the back of the element ordering.
func (o *Solver) rebasis() (err error) {
	o.orderSp = utl.IntRange(o.ns)
	o.orderEl = utl.IntRange(o.ne)
	nc, _, err := BasisOptimize(o.mx, false, o.orderSp, o.orderEl, nil)
	if err != nil {
		return
	}
	if nc < o.ne {
		abund := make([]float64, o.ne)
		o.mx.ElemAbundances(abund)
		if err = ElemRearrange(o.mx, nc, abund, o.orderSp, o.orderEl); err != nil {
			return
		}
	}
	o.formRxn = utl.Alloc(o.ns, o.ne)
	o.nc, o.usedZeroed, err = BasisOptimize(o.mx, true, o.orderSp, o.orderEl, o.formRxn)
	if err != nil {
		return
	}
	if o.verbose {
		names := ""
		for c := 0; c < o.nc; c++ {
			names += " " + o.mx.SpeciesName(o.orderSp[c])
		}
		io.Pf("equil: basis:%s (nc=%d)\n", names, o.nc)
	}
	return
}

// Equilibrate drives all formation-reaction affinities |ΔG/RT| below tol
// at the mixture's current (T, P), within maxsteps composition steps. On
// success the mixture holds the equilibrated composition and the returned
// value is the final error; exhausting maxsteps is a NoConvergence failure
// with the mixture left in its last-attempted state.
func (o *Solver) Equilibrate(tol float64, maxsteps int) (relerr float64, err error) {

	if o.ns-o.nc == 0 {
		return 0, nil // no free reactions: composition is fully determined
	}
	for step := 0; step < maxsteps; step++ {
		relerr = o.computeSteps(false)
		if o.verbose {
			io.Pf("equil: step %4d: max|dG/RT| = %g\n", step, relerr)
		}
		if relerr < tol {
			return relerr, nil
		}
		progressed, e := o.step()
		if e != nil {
			return relerr, e
		}
		if !progressed {
			// the step collapsed against the positivity bound; a component
			// probably went extinct, so pick a fresh basis
			if err = o.rebasis(); err != nil {
				return
			}
		}
	}
	return relerr, &NoConvergence{Var: "composition", Iter: maxsteps, Err: relerr}
}

// computeSteps evaluates every formation reaction's affinity ΔG/RT and a
// damped Newton extent step, returning the largest affinity among active
// reactions. A reaction whose product species is at the floor AND whose
// affinity is positive is at a complementarity optimum (species absent,
// formation unfavorable) and counts as converged. With standard true,
// standard-state potentials are used instead (starting-estimate mode).
func (o *Solver) computeSteps(standard bool) (maxerr float64) {

	T := o.mx.Temperature()
	RT := phase.Rgas * T
	o.mx.ValidChemPotentials(notMu, o.mu, standard)

	nrxn := o.ns - o.nc
	for j := 0; j < nrxn; j++ {
		kj := o.orderSp[o.nc+j]

		// affinity
		dgrt := o.mu[kj] / RT
		for c := 0; c < o.nc; c++ {
			dgrt -= o.formRxn[j][c] * o.mu[o.orderSp[c]] / RT
		}
		o.dgrt[j] = dgrt

		// absent species with unfavorable formation: converged reaction
		if o.moles[kj] <= 2.0*o.floor && dgrt > 0 {
			o.dxi[j] = 0
			continue
		}
		if math.Abs(dgrt) > maxerr {
			maxerr = math.Abs(dgrt)
		}

		// a unit-activity species has no mole-fraction term to dilute it
		// away, so an unfavorable one is removed outright
		if dgrt > 0 && !o.mx.SolutionSpecies(kj) {
			o.dxi[j] = -o.moles[kj]
			continue
		}

		// curvature d(ΔG/RT)/dξ for ideal solutions:
		//   Σ_k s_k²/n_k - Σ_p (Σ_{k∈p} s_k)²/N_p
		// stoichiometric (unit-activity) phases contribute nothing
		fctr := 0.0
		add := func(k int, s float64) {
			if o.mx.SolutionSpecies(k) {
				fctr += s * s / math.Max(o.moles[k], o.floor)
				o.phaseTot[o.mx.SpeciesPhaseIndex(k)] += s
			}
		}
		add(kj, 1.0)
		for c := 0; c < o.nc; c++ {
			add(o.orderSp[c], -o.formRxn[j][c])
		}
		for ip := range o.phaseTot {
			if o.phaseTot[ip] != 0 {
				fctr -= o.phaseTot[ip] * o.phaseTot[ip] / math.Max(o.mx.PhaseMoles(ip), o.floor)
				o.phaseTot[ip] = 0
			}
		}
		if fctr <= 1e-30 {
			fctr = 1.0 // degenerate curvature; the positivity damping bounds the step
		}
		o.dxi[j] = -dgrt / fctr
	}
	return
}

// step applies the reaction-extent steps with a single damping factor
// chosen so no species loses more than 99.9% of its moles, keeping the
// composition strictly positive. It reports whether meaningful progress
// was possible.
func (o *Solver) step() (progressed bool, err error) {

	for k := range o.delta {
		o.delta[k] = 0
	}
	nrxn := o.ns - o.nc
	for j := 0; j < nrxn; j++ {
		kj := o.orderSp[o.nc+j]
		o.delta[kj] += o.dxi[j]
		for c := 0; c < o.nc; c++ {
			o.delta[o.orderSp[c]] -= o.formRxn[j][c] * o.dxi[j]
		}
	}

	omega := 1.0
	for k := range o.delta {
		if o.delta[k] < 0 {
			w := -0.999 * o.moles[k] / o.delta[k]
			if w < omega {
				omega = w
			}
		}
	}
	if omega <= 1e-12 {
		return false, nil
	}
	for k := range o.moles {
		o.moles[k] += omega * o.delta[k]
		if o.moles[k] < 0 {
			o.moles[k] = 0
		}
	}
	return true, o.mx.SetMoles(o.moles)
}

// estimate redistributes the composition using standard-state potentials:
// a handful of damped steps that push strongly favorable formation
// reactions forward, giving the main iteration a starting point away from
// pathological corners. Element totals are conserved throughout.
func (o *Solver) estimate() {
	for i := 0; i < 20; i++ {
		if o.computeSteps(true) < 1e-4 {
			return
		}
		if progressed, err := o.step(); err != nil || !progressed {
			return
		}
	}
}
