// Copyright 2026 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	fun "github.com/cpmech/gosl/fun/dbf"
)

// IdealGas implements an ideal-gas solution phase:
//   μ_k = μ°_k(T) + R·T·ln(X_k·P/Pref)
// The standard state is the pure ideal gas at one atmosphere.
type IdealGas struct {

	// definition
	name    string     // phase name
	species []*Species // species data
	enames  []string   // element names
	eidx    map[string]int
	atoms   [][]float64 // [species][element] composition
	tmin    float64     // tightest lower validity bound over species
	tmax    float64     // tightest upper validity bound over species
	pref    float64     // reference pressure of the standard state [Pa]

	// state
	T float64   // temperature [K]
	P float64   // pressure [Pa]
	x []float64 // mole fractions
}

func init() {
	allocators["idealgas"] = func() Phase { return new(IdealGas) }
}

// NewIdealGas allocates and initialises an ideal-gas phase. The element
// list may be nil, in which case it is derived from the species formulae
// (sorted symbols, first-seen species order). An explicit list may declare
// elements carried by no species; the corresponding formula-matrix rows are
// then identically zero.
func NewIdealGas(name string, species []*Species, elements []string) (*IdealGas, error) {
	o := new(IdealGas)
	if err := o.Init(name, species, elements); err != nil {
		return nil, err
	}
	return o, nil
}

// Init initialises the phase definition and sets a uniform composition at
// the reference temperature and one atmosphere
func (o *IdealGas) Init(name string, species []*Species, elements []string) error {
	if len(species) < 1 {
		return chk.Err("phase.IdealGas.Init: phase %q needs at least one species", name)
	}
	o.name = name
	o.species = species

	// element list
	o.eidx = make(map[string]int)
	if elements == nil {
		for _, s := range species {
			syms := make([]string, 0, len(s.Atoms))
			for sym := range s.Atoms {
				syms = append(syms, sym)
			}
			sort.Strings(syms)
			for _, sym := range syms {
				if _, ok := o.eidx[sym]; !ok {
					o.eidx[sym] = len(o.enames)
					o.enames = append(o.enames, sym)
				}
			}
		}
	} else {
		o.enames = elements
		for m, sym := range elements {
			o.eidx[sym] = m
		}
	}

	// composition matrix and validity range
	o.atoms = make([][]float64, len(species))
	o.tmin, o.tmax = 0.0, math.MaxFloat64
	for k, s := range species {
		o.atoms[k] = make([]float64, len(o.enames))
		for sym, n := range s.Atoms {
			m, ok := o.eidx[sym]
			if !ok {
				return chk.Err("phase.IdealGas.Init: species %q uses element %q not in phase %q element list", s.N, sym, name)
			}
			o.atoms[k][m] = n
		}
		if s.Thermo.MinTemp() > o.tmin {
			o.tmin = s.Thermo.MinTemp()
		}
		if s.Thermo.MaxTemp() < o.tmax {
			o.tmax = s.Thermo.MaxTemp()
		}
	}

	// default state: uniform composition
	o.pref = OneAtm
	o.T = Tref
	o.P = OneAtm
	o.x = make([]float64, len(species))
	for k := range o.x {
		o.x[k] = 1.0 / float64(len(species))
	}
	return nil
}

// SetParams sets model options:
//
//	"Pref" -- reference pressure of the standard state [Pa]
func (o *IdealGas) SetParams(prms fun.Params) {
	for _, p := range prms {
		switch p.N {
		case "Pref":
			o.pref = p.V
		}
	}
}

// GetPrms gets the current model options
func (o *IdealGas) GetPrms() fun.Params {
	return fun.Params{
		&fun.P{N: "Pref", V: o.pref}, // [Pa]
	}
}

// Name returns the phase name
func (o *IdealGas) Name() string { return o.name }

// Nspecies returns the number of species
func (o *IdealGas) Nspecies() int { return len(o.species) }

// Nelements returns the number of elements
func (o *IdealGas) Nelements() int { return len(o.enames) }

// ElementName returns the name of local element m
func (o *IdealGas) ElementName(m int) string { return o.enames[m] }

// ElementIndex returns the local index of the named element; -1 if absent
func (o *IdealGas) ElementIndex(name string) int {
	if m, ok := o.eidx[name]; ok {
		return m
	}
	return -1
}

// AtomicNumber returns the atomic number of local element m
func (o *IdealGas) AtomicNumber(m int) int { return AtomicNumberOf(o.enames[m]) }

// SpeciesName returns the name of local species k
func (o *IdealGas) SpeciesName(k int) string { return o.species[k].N }

// SpeciesIndex returns the local index of the named species; -1 if absent
func (o *IdealGas) SpeciesIndex(name string) int {
	for k, s := range o.species {
		if s.N == name {
			return k
		}
	}
	return -1
}

// Natoms returns the number of atoms of local element m in local species k
func (o *IdealGas) Natoms(k, m int) float64 { return o.atoms[k][m] }

// Charge returns the charge of species k in elementary-charge units
func (o *IdealGas) Charge(k int) float64 { return o.species[k].Ch }

// Temperature returns the current temperature [K]
func (o *IdealGas) Temperature() float64 { return o.T }

// Pressure returns the current pressure [Pa]
func (o *IdealGas) Pressure() float64 { return o.P }

// MinTemp returns the lower validity bound over all species fits [K]
func (o *IdealGas) MinTemp() float64 { return o.tmin }

// MaxTemp returns the upper validity bound over all species fits [K]
func (o *IdealGas) MaxTemp() float64 { return o.tmax }

// SetTemperature sets the temperature [K]
func (o *IdealGas) SetTemperature(T float64) { o.T = T }

// SetPressure sets the pressure [Pa]
func (o *IdealGas) SetPressure(P float64) { o.P = P }

// SetStateTPX sets temperature, pressure, and mole fractions. The input
// composition is normalized to sum to one; an all-zero input leaves the
// composition unchanged.
func (o *IdealGas) SetStateTPX(T, P float64, x []float64) {
	o.T = T
	o.P = P
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	if sum > 0 {
		for k := range o.x {
			o.x[k] = x[k] / sum
		}
	}
}

// MoleFractions writes the current mole fractions into x
func (o *IdealGas) MoleFractions(x []float64) { copy(x, o.x) }

// SetMoleFractionsNoNorm sets mole fractions without normalizing
func (o *IdealGas) SetMoleFractionsNoNorm(x []float64) { copy(o.x, x) }

// MolarDensity returns P/(R·T) [kmol/m³]
func (o *IdealGas) MolarDensity() float64 { return o.P / (Rgas * o.T) }

// StandardChemPotentials writes μ°_k(T) into mu [J/kmol]
func (o *IdealGas) StandardChemPotentials(mu []float64) {
	RT := Rgas * o.T
	for k, s := range o.species {
		mu[k] = RT * (s.Thermo.HRT(o.T) - s.Thermo.SR(o.T))
	}
}

// ChemPotentials writes μ_k = μ°_k + R·T·ln(X_k·P/Pref) into mu [J/kmol]
func (o *IdealGas) ChemPotentials(mu []float64) {
	o.StandardChemPotentials(mu)
	RT := Rgas * o.T
	logPratio := math.Log(o.P / o.pref)
	for k := range o.species {
		mu[k] += RT * (math.Log(math.Max(o.x[k], SmallX)) + logPratio)
	}
}

// EnthalpyMole returns the molar enthalpy of the mixture [J/kmol]
func (o *IdealGas) EnthalpyMole() (h float64) {
	RT := Rgas * o.T
	for k, s := range o.species {
		h += o.x[k] * RT * s.Thermo.HRT(o.T)
	}
	return
}

// EntropyMole returns the molar entropy, including the entropy of mixing
// and the pressure correction [J/(kmol·K)]
func (o *IdealGas) EntropyMole() (s float64) {
	logPratio := math.Log(o.P / o.pref)
	for k, sp := range o.species {
		if o.x[k] <= 0 {
			continue
		}
		s += o.x[k] * (Rgas*sp.Thermo.SR(o.T) - Rgas*(math.Log(o.x[k])+logPratio))
	}
	return
}

// GibbsMole returns the molar Gibbs free energy [J/kmol]
func (o *IdealGas) GibbsMole() float64 {
	return o.EnthalpyMole() - o.T*o.EntropyMole()
}

// IntEnergyMole returns the molar internal energy u = h - R·T [J/kmol]
func (o *IdealGas) IntEnergyMole() float64 {
	return o.EnthalpyMole() - Rgas*o.T
}

// CpMole returns the molar heat capacity at constant pressure [J/(kmol·K)]
func (o *IdealGas) CpMole() (cp float64) {
	for k, s := range o.species {
		cp += o.x[k] * Rgas * s.Thermo.CpR(o.T)
	}
	return
}
