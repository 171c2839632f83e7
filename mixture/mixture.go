// Copyright 2026 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mixture implements the Mixture aggregate: an ordered collection of
// borrowed phase objects with per-phase mole counts, a unified global
// element/species numbering, and a single (T, P) shared by all phases.
// Mixture is "upstream" of the phase objects: setting temperature, pressure,
// or composition here drives the phases, never the other way around. The
// mixture borrows the phases and must not outlive them; it assumes exclusive
// access to them during any of its operations.
package mixture

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gochem/phase"
)

// Mixture aggregates phases for multiphase equilibrium calculations. Phases
// are appended with AddPhase and the list is frozen by Init, which builds
// the global element union (first-seen order), the concatenated global
// species list, and the element-species formula matrix.
//
// Global species are numbered contiguously by phase: the species of phase p
// occupy global indices spstart[p] .. spstart[p]+Nspecies(p)-1. Within each
// such sub-range the stored mole fractions sum to one.
type Mixture struct {

	// definition (frozen by Init)
	phases       []phase.Phase // borrowed phase objects
	moles        []float64     // kmol in each phase
	enames       []string      // global element names, first-seen order
	enamemap     map[string]int
	atomicNumber []int         // atomic number of each global element
	snames       []string      // global species names, concatenated by phase
	spphase      []int         // global species index => phase index
	spstart      []int         // phase index => first global species index
	atoms        *la.Matrix    // formula matrix: (global element, global species) => atom count
	nel          int           // number of global elements
	nsp          int           // number of global species
	eloc         int           // global index of the electron element "E"/"e"; -1 if absent
	tmin         float64       // tightest lower T bound over solution phases [K]
	tmax         float64       // tightest upper T bound over solution phases [K]
	frozen       bool          // Init has been called

	// state
	temp          float64   // temperature [K], shared by all phases
	press         float64   // pressure [Pa], shared by all phases
	moleFractions []float64 // cached global mole fractions

	// derived, recomputed explicitly
	elemAbundances []float64 // kmol of each global element
	tempOK         []bool    // per phase: temp within the phase's validity range
}

// New returns an empty mixture; use AddPhase then Init
func New() (o *Mixture) {
	o = new(Mixture)
	o.enamemap = make(map[string]int)
	o.eloc = -1
	o.tmin = 1.0
	o.tmax = 100000.0
	return
}

// AddPhase appends one phase with its total mole count [kmol]. It must be
// called before Init; afterwards the phase list is immutable.
//
// New elements introduced by the phase extend the global element list in
// first-seen order. The electron element ("E" or "e") is noted specially.
// If the mixture temperature is still unset, the phase's positive T and P
// are adopted as the initial mixture state. Solution phases (more than one
// species) tighten the mixture's Tmin/Tmax bracket; single-species
// stoichiometric phases are excluded, since their narrow fit windows would
// over-constrain the mixture.
func (o *Mixture) AddPhase(p phase.Phase, moles float64) error {
	if o.frozen {
		return chk.Err("mixture.AddPhase: phases cannot be added after Init() has been called")
	}
	o.phases = append(o.phases, p)
	o.moles = append(o.moles, moles)
	o.tempOK = append(o.tempOK, true)
	o.nsp += p.Nspecies()

	for m := 0; m < p.Nelements(); m++ {
		ename := p.ElementName(m)
		if _, ok := o.enamemap[ename]; !ok {
			o.enamemap[ename] = o.nel
			o.enames = append(o.enames, ename)
			o.atomicNumber = append(o.atomicNumber, p.AtomicNumber(m))
			if ename == "E" || ename == "e" {
				o.eloc = o.nel
			}
			o.nel++
		}
	}

	if o.temp == 0.0 && p.Temperature() > 0.0 {
		o.temp = p.Temperature()
		o.press = p.Pressure()
	}

	if p.Nspecies() > 1 {
		if t := p.MinTemp(); t > o.tmin {
			o.tmin = t
		}
		if t := p.MaxTemp(); t < o.tmax {
			o.tmax = t
		}
	}
	return nil
}

// AddPhases appends several phases then calls Init
func (o *Mixture) AddPhases(phases []phase.Phase, moles []float64) error {
	for i, p := range phases {
		if err := o.AddPhase(p, moles[i]); err != nil {
			return err
		}
	}
	o.Init()
	return nil
}

// Init freezes the phase list and builds the formula matrix, the global
// species-name list and the phase-offset table, then uploads the phases'
// current mole fractions into the mixture cache. Calling Init a second time
// is a no-op.
func (o *Mixture) Init() {
	if o.frozen {
		return
	}
	o.atoms = la.NewMatrix(o.nel, o.nsp)
	o.moleFractions = make([]float64, o.nsp)
	o.elemAbundances = make([]float64, o.nel)

	for m := 0; m < o.nel; m++ {
		sym := o.enames[m]
		k := 0
		for ip, p := range o.phases {
			mlocal := p.ElementIndex(sym)
			for kp := 0; kp < p.Nspecies(); kp++ {
				if mlocal >= 0 {
					o.atoms.Set(m, k, p.Natoms(kp, mlocal))
				}
				if m == 0 {
					o.snames = append(o.snames, p.SpeciesName(kp))
					if kp == 0 {
						o.spstart = append(o.spstart, len(o.spphase))
					}
					o.spphase = append(o.spphase, ip)
				}
				k++
			}
		}
	}
	if o.nel == 0 {
		// species tables are normally built on the first element pass
		for ip, p := range o.phases {
			for kp := 0; kp < p.Nspecies(); kp++ {
				o.snames = append(o.snames, p.SpeciesName(kp))
				if kp == 0 {
					o.spstart = append(o.spstart, len(o.spphase))
				}
				o.spphase = append(o.spphase, ip)
			}
		}
	}

	o.frozen = true
	o.UploadMoleFractions()
}

// Nphases returns the number of phases
func (o *Mixture) Nphases() int { return len(o.phases) }

// Nelements returns the number of global elements
func (o *Mixture) Nelements() int { return o.nel }

// Nspecies returns the number of global species, summed over all phases
func (o *Mixture) Nspecies() int { return o.nsp }

// ElementName returns the name of global element m
func (o *Mixture) ElementName(m int) string { return o.enames[m] }

// ElementIndex returns the global index of the named element; -1 if absent
func (o *Mixture) ElementIndex(name string) int {
	if m, ok := o.enamemap[name]; ok {
		return m
	}
	return -1
}

// AtomicNumber returns the atomic number of global element m
func (o *Mixture) AtomicNumber(m int) int { return o.atomicNumber[m] }

// Eloc returns the global index of the electron element; -1 if absent
func (o *Mixture) Eloc() int { return o.eloc }

// SpeciesName returns the name of global species k
func (o *Mixture) SpeciesName(k int) string { return o.snames[k] }

// SpeciesIndex returns the global index of species k (local) of phase p
func (o *Mixture) SpeciesIndex(k, p int) int { return o.spstart[p] + k }

// SpeciesIndexByName returns the global index of the named species within
// the named phase. Unknown phase or species names are hard errors.
func (o *Mixture) SpeciesIndexByName(speciesName, phaseName string) (int, error) {
	p := o.PhaseIndex(phaseName)
	if p < 0 {
		return -1, chk.Err("mixture.SpeciesIndexByName: phase not found: %q", phaseName)
	}
	k := o.phases[p].SpeciesIndex(speciesName)
	if k < 0 {
		return -1, chk.Err("mixture.SpeciesIndexByName: species not found: %q", speciesName)
	}
	return o.spstart[p] + k, nil
}

// SpeciesPhaseIndex returns the index of the phase owning global species k
func (o *Mixture) SpeciesPhaseIndex(k int) int { return o.spphase[k] }

// SolutionSpecies tells whether global species k belongs to a phase with
// more than one species
func (o *Mixture) SolutionSpecies(k int) bool {
	return o.phases[o.spphase[k]].Nspecies() > 1
}

// Natoms returns the number of atoms of global element m in global species k
func (o *Mixture) Natoms(k, m int) float64 { return o.atoms.Get(m, k) }

// PhaseName returns the name of phase p
func (o *Mixture) PhaseName(p int) string { return o.phases[p].Name() }

// PhaseIndex returns the index of the named phase; -1 if absent
func (o *Mixture) PhaseIndex(name string) int {
	for ip, p := range o.phases {
		if p.Name() == name {
			return ip
		}
	}
	return -1
}

// Phase returns phase n after synchronizing its T, P and mole-fraction
// sub-range from the mixture's canonical state, so the caller always
// observes the mixture state rather than stale phase-local state
func (o *Mixture) Phase(n int) phase.Phase {
	if !o.frozen {
		o.Init()
	}
	p := o.phases[n]
	p.SetTemperature(o.temp)
	p.SetMoleFractionsNoNorm(o.moleFractions[o.spstart[n] : o.spstart[n]+p.Nspecies()])
	p.SetPressure(o.press)
	return p
}

// PhaseMoles returns the total kmol in phase n
func (o *Mixture) PhaseMoles(n int) float64 { return o.moles[n] }

// SetPhaseMoles sets the total kmol in phase n
func (o *Mixture) SetPhaseMoles(n int, moles float64) { o.moles[n] = moles }

// SpeciesMoles returns the kmol of global species k
func (o *Mixture) SpeciesMoles(k int) float64 {
	return o.moles[o.spphase[k]] * o.moleFractions[k]
}

// MoleFraction returns the mole fraction of global species k
func (o *Mixture) MoleFraction(k int) float64 { return o.moleFractions[k] }

// MoleFractions writes the global mole-fraction vector into x
func (o *Mixture) MoleFractions(x []float64) { copy(x, o.moleFractions) }

// Moles writes the global species mole numbers [kmol] into n
func (o *Mixture) Moles(n []float64) {
	copy(n, o.moleFractions)
	k := 0
	for ip, p := range o.phases {
		for i := 0; i < p.Nspecies(); i++ {
			n[k] *= o.moles[ip]
			k++
		}
	}
}

// SetMoles sets absolute species mole numbers [kmol] for all global
// species. Each phase's total is the sum over its sub-range. Solution
// phases with a positive total receive the unnormalized values and the
// phase's own normalized mole fractions are pulled back, so any
// phase-internal renormalization stays visible in the cache; zero-total
// phases keep whatever composition the phase reports. Single-species
// phases trivially get mole fraction one.
func (o *Mixture) SetMoles(n []float64) error {
	if !o.frozen {
		o.Init()
	}
	if len(n) != o.nsp {
		return chk.Err("mixture.SetMoles: size of moles vector must be %d; got %d", o.nsp, len(n))
	}
	loc := 0
	k := 0
	for ip, p := range o.phases {
		nsp := p.Nspecies()
		phasemoles := 0.0
		for i := 0; i < nsp; i++ {
			phasemoles += n[k]
			k++
		}
		o.moles[ip] = phasemoles
		if nsp > 1 {
			if phasemoles > 0 {
				p.SetStateTPX(o.temp, o.press, n[loc:loc+nsp])
			}
			p.MoleFractions(o.moleFractions[loc : loc+nsp])
		} else {
			o.moleFractions[loc] = 1.0
		}
		loc += nsp
	}
	return nil
}

// AddSpeciesMoles adds delta kmol to global species k, clamping the result
// at zero, and reapplies the full mole vector
func (o *Mixture) AddSpeciesMoles(k int, delta float64) error {
	tmp := make([]float64, o.nsp)
	o.Moles(tmp)
	tmp[k] += delta
	if tmp[k] < 0 {
		tmp[k] = 0
	}
	return o.SetMoles(tmp)
}

// SetPhaseMoleFractions sets the mole fractions of phase n, keeping the
// phase's mole number constant. The input goes through the phase object and
// the phase's own (normalized) fractions are pulled back into the cache, so
// the per-phase sum-to-one invariant holds for any input.
func (o *Mixture) SetPhaseMoleFractions(n int, x []float64) {
	p := o.phases[n]
	p.SetStateTPX(o.temp, o.press, x)
	istart := o.spstart[n]
	p.MoleFractions(o.moleFractions[istart : istart+p.Nspecies()])
}

// Temperature returns the mixture temperature [K]
func (o *Mixture) Temperature() float64 { return o.temp }

// Pressure returns the mixture pressure [Pa]
func (o *Mixture) Pressure() float64 { return o.press }

// MinTemp returns the lowest temperature for which all solution phases
// have valid thermo data [K]
func (o *Mixture) MinTemp() float64 { return o.tmin }

// MaxTemp returns the highest temperature for which all solution phases
// have valid thermo data [K]
func (o *Mixture) MaxTemp() float64 { return o.tmax }

// SetTemperature sets the mixture temperature and pushes the full state
// down into every phase
func (o *Mixture) SetTemperature(T float64) {
	if !o.frozen {
		o.Init()
	}
	o.temp = T
	o.downloadToPhases()
}

// SetPressure sets the mixture pressure and pushes the full state down
// into every phase
func (o *Mixture) SetPressure(P float64) {
	if !o.frozen {
		o.Init()
	}
	o.press = P
	o.downloadToPhases()
}

// SetStateTP sets temperature and pressure in one download
func (o *Mixture) SetStateTP(T, P float64) {
	if !o.frozen {
		o.Init()
	}
	o.temp = T
	o.press = P
	o.downloadToPhases()
}

// SetStateTPMoles sets temperature, pressure and all species mole numbers
func (o *Mixture) SetStateTPMoles(T, P float64, n []float64) error {
	o.temp = T
	o.press = P
	return o.SetMoles(n)
}

// TempOK tells whether phase p has valid thermo data at the current
// mixture temperature. Recomputed on every download; going out of range
// flips the flag but is never an error.
func (o *Mixture) TempOK(p int) bool { return o.tempOK[p] }

// ChemPotentials writes the chemical potentials of all global species into
// mu [J/kmol]
func (o *Mixture) ChemPotentials(mu []float64) {
	o.downloadToPhases()
	loc := 0
	for _, p := range o.phases {
		p.ChemPotentials(mu[loc : loc+p.Nspecies()])
		loc += p.Nspecies()
	}
}

// ValidChemPotentials writes chemical potentials for species with valid
// thermo data into mu [J/kmol], substituting notMu elsewhere. Solution
// phases always report true potentials. A stoichiometric phase outside its
// validity window gets notMu instead: with notMu large and positive, Gibbs
// minimization naturally drives such a phase to zero extent rather than
// using extrapolated fits. With standard true, composition-independent
// standard-state potentials are reported.
func (o *Mixture) ValidChemPotentials(notMu float64, mu []float64, standard bool) {
	o.downloadToPhases()
	loc := 0
	for ip, p := range o.phases {
		nsp := p.Nspecies()
		if o.tempOK[ip] || nsp > 1 {
			if standard {
				p.StandardChemPotentials(mu[loc : loc+nsp])
			} else {
				p.ChemPotentials(mu[loc : loc+nsp])
			}
		} else {
			for k := loc; k < loc+nsp; k++ {
				mu[k] = notMu
			}
		}
		loc += nsp
	}
}

// Charge returns the total electrical charge [C], summed over all phases
func (o *Mixture) Charge() (sum float64) {
	for ip := range o.phases {
		sum += o.PhaseCharge(ip)
	}
	return
}

// PhaseCharge returns the net charge of phase p [C]:
//   Q_p = N_p · F · Σ_k z_k X_k
func (o *Mixture) PhaseCharge(ip int) float64 {
	p := o.phases[ip]
	phasesum := 0.0
	for k := 0; k < p.Nspecies(); k++ {
		phasesum += p.Charge(k) * o.moleFractions[o.spstart[ip]+k]
	}
	return phase.Faraday * phasesum * o.moles[ip]
}

// ElementMoles returns the total kmol of global element m over all phases
func (o *Mixture) ElementMoles(m int) (sum float64) {
	for ip, p := range o.phases {
		phasesum := 0.0
		for ik := 0; ik < p.Nspecies(); ik++ {
			k := o.spstart[ip] + ik
			phasesum += o.atoms.Get(m, k) * o.moleFractions[k]
		}
		sum += phasesum * o.moles[ip]
	}
	return
}

// ElemAbundances recomputes and writes the element-abundance vector [kmol]
// into out: for each global element, the sum of atoms·moleFraction·
// phaseMoles over all species. Equilibration must conserve this vector.
func (o *Mixture) ElemAbundances(out []float64) {
	o.calcElemAbundances()
	copy(out, o.elemAbundances)
}

// calcElemAbundances recomputes the cached element-abundance vector
func (o *Mixture) calcElemAbundances() {
	for m := 0; m < o.nel; m++ {
		o.elemAbundances[m] = 0
	}
	loc := 0
	for ip, p := range o.phases {
		phasemoles := o.moles[ip]
		for ik := 0; ik < p.Nspecies(); ik++ {
			k := loc + ik
			spmoles := o.moleFractions[k] * phasemoles
			for m := 0; m < o.nel; m++ {
				o.elemAbundances[m] += o.atoms.Get(m, k) * spmoles
			}
		}
		loc += p.Nspecies()
	}
}

// Enthalpy returns the extensive enthalpy of the mixture [J]
func (o *Mixture) Enthalpy() (sum float64) {
	o.downloadToPhases()
	for ip, p := range o.phases {
		sum += p.EnthalpyMole() * o.moles[ip]
	}
	return
}

// IntEnergy returns the extensive internal energy of the mixture [J]
func (o *Mixture) IntEnergy() (sum float64) {
	o.downloadToPhases()
	for ip, p := range o.phases {
		sum += p.IntEnergyMole() * o.moles[ip]
	}
	return
}

// Entropy returns the extensive entropy of the mixture [J/K]
func (o *Mixture) Entropy() (sum float64) {
	o.downloadToPhases()
	for ip, p := range o.phases {
		sum += p.EntropyMole() * o.moles[ip]
	}
	return
}

// Gibbs returns the extensive Gibbs free energy of the mixture [J]
func (o *Mixture) Gibbs() (sum float64) {
	o.downloadToPhases()
	for ip, p := range o.phases {
		sum += p.GibbsMole() * o.moles[ip]
	}
	return
}

// Cp returns the extensive constant-pressure heat capacity [J/K] at fixed
// composition; it does not account for composition changing with T
func (o *Mixture) Cp() (sum float64) {
	o.downloadToPhases()
	for ip, p := range o.phases {
		sum += p.CpMole() * o.moles[ip]
	}
	return
}

// Volume returns the total mixture volume [m³]
func (o *Mixture) Volume() (sum float64) {
	o.downloadToPhases()
	for ip, p := range o.phases {
		sum += o.moles[ip] / p.MolarDensity()
	}
	return
}

// UploadMoleFractions pulls each phase object's current mole fractions
// into the mixture cache and recomputes element abundances. Call after
// mutating a phase's composition directly; the opposite (download)
// direction runs automatically whenever T, P or composition is set here.
func (o *Mixture) UploadMoleFractions() {
	loc := 0
	for _, p := range o.phases {
		p.MoleFractions(o.moleFractions[loc : loc+p.Nspecies()])
		loc += p.Nspecies()
	}
	o.calcElemAbundances()
}

// downloadToPhases pushes the mixture's canonical T, P and per-phase
// mole-fraction sub-ranges into each phase object and refreshes tempOK
func (o *Mixture) downloadToPhases() {
	loc := 0
	for ip, p := range o.phases {
		nsp := p.Nspecies()
		p.SetStateTPX(o.temp, o.press, o.moleFractions[loc:loc+nsp])
		o.tempOK[ip] = o.temp >= p.MinTemp() && o.temp <= p.MaxTemp()
		loc += nsp
	}
}

// Frozen tells whether Init has been called
func (o *Mixture) Frozen() bool { return o.frozen }

// Report returns a short description of each phase's moles and state
func (o *Mixture) Report() (l string) {
	for ip := range o.phases {
		p := o.Phase(ip)
		l += io.Sf("%s: moles = %g, T = %g K, P = %g Pa\n", p.Name(), o.moles[ip], p.Temperature(), p.Pressure())
		for k := 0; k < p.Nspecies(); k++ {
			l += io.Sf("  %-12s X = %g\n", p.SpeciesName(k), o.moleFractions[o.spstart[ip]+k])
		}
	}
	return
}
