// Copyright 2026 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	fun "github.com/cpmech/gosl/fun/dbf"
)

// Stoich implements a stoichiometric (single-species, fixed-composition)
// condensed phase. The single species has unit activity, so
//   μ = μ°(T)
// and all molar properties are those of the pure species. The phase keeps
// its own narrow thermo validity window; mixtures deliberately exclude it
// from their Tmin/Tmax bracket and use TempOK bookkeeping instead.
type Stoich struct {

	// definition
	name   string
	sp     *Species
	enames []string
	eidx   map[string]int
	rho    float64 // molar density [kmol/m³], assumed incompressible

	// state
	T float64
	P float64
}

func init() {
	allocators["stoich"] = func() Phase { return new(Stoich) }
}

// NewStoich allocates and initialises a stoichiometric phase with molar
// density rho [kmol/m³]
func NewStoich(name string, sp *Species, rho float64) (*Stoich, error) {
	o := new(Stoich)
	if err := o.Init(name, sp, rho); err != nil {
		return nil, err
	}
	return o, nil
}

// Init initialises the phase definition
func (o *Stoich) Init(name string, sp *Species, rho float64) error {
	if sp == nil {
		return chk.Err("phase.Stoich.Init: phase %q needs a species definition", name)
	}
	if rho <= 0 {
		return chk.Err("phase.Stoich.Init: phase %q needs a positive molar density; got %g", name, rho)
	}
	o.name = name
	o.sp = sp
	o.rho = rho
	o.eidx = make(map[string]int)
	syms := make([]string, 0, len(sp.Atoms))
	for sym := range sp.Atoms {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	for _, sym := range syms {
		o.eidx[sym] = len(o.enames)
		o.enames = append(o.enames, sym)
	}
	o.T = Tref
	o.P = OneAtm
	return nil
}

// SetParams sets model options:
//
//	"rho" -- molar density [kmol/m³]
func (o *Stoich) SetParams(prms fun.Params) {
	for _, p := range prms {
		switch p.N {
		case "rho":
			o.rho = p.V
		}
	}
}

// GetPrms gets the current model options
func (o *Stoich) GetPrms() fun.Params {
	return fun.Params{
		&fun.P{N: "rho", V: o.rho}, // [kmol/m³]
	}
}

// Name returns the phase name
func (o *Stoich) Name() string { return o.name }

// Nspecies returns 1
func (o *Stoich) Nspecies() int { return 1 }

// Nelements returns the number of elements
func (o *Stoich) Nelements() int { return len(o.enames) }

// ElementName returns the name of local element m
func (o *Stoich) ElementName(m int) string { return o.enames[m] }

// ElementIndex returns the local index of the named element; -1 if absent
func (o *Stoich) ElementIndex(name string) int {
	if m, ok := o.eidx[name]; ok {
		return m
	}
	return -1
}

// AtomicNumber returns the atomic number of local element m
func (o *Stoich) AtomicNumber(m int) int { return AtomicNumberOf(o.enames[m]) }

// SpeciesName returns the species name
func (o *Stoich) SpeciesName(k int) string { return o.sp.N }

// SpeciesIndex returns 0 for the single species; -1 otherwise
func (o *Stoich) SpeciesIndex(name string) int {
	if name == o.sp.N {
		return 0
	}
	return -1
}

// Natoms returns the number of atoms of local element m in the species
func (o *Stoich) Natoms(k, m int) float64 { return o.sp.Atoms[o.enames[m]] }

// Charge returns the species charge in elementary-charge units
func (o *Stoich) Charge(k int) float64 { return o.sp.Ch }

// Temperature returns the current temperature [K]
func (o *Stoich) Temperature() float64 { return o.T }

// Pressure returns the current pressure [Pa]
func (o *Stoich) Pressure() float64 { return o.P }

// MinTemp returns the lower validity bound of the species fit [K]
func (o *Stoich) MinTemp() float64 { return o.sp.Thermo.MinTemp() }

// MaxTemp returns the upper validity bound of the species fit [K]
func (o *Stoich) MaxTemp() float64 { return o.sp.Thermo.MaxTemp() }

// SetTemperature sets the temperature [K]
func (o *Stoich) SetTemperature(T float64) { o.T = T }

// SetPressure sets the pressure [Pa]
func (o *Stoich) SetPressure(P float64) { o.P = P }

// SetStateTPX sets temperature and pressure; the composition is fixed
func (o *Stoich) SetStateTPX(T, P float64, x []float64) {
	o.T = T
	o.P = P
}

// MoleFractions writes the trivial composition into x
func (o *Stoich) MoleFractions(x []float64) { x[0] = 1.0 }

// SetMoleFractionsNoNorm is a no-op; the composition is fixed
func (o *Stoich) SetMoleFractionsNoNorm(x []float64) {}

// MolarDensity returns the constant molar density [kmol/m³]
func (o *Stoich) MolarDensity() float64 { return o.rho }

// StandardChemPotentials writes μ°(T) into mu [J/kmol]
func (o *Stoich) StandardChemPotentials(mu []float64) {
	RT := Rgas * o.T
	mu[0] = RT * (o.sp.Thermo.HRT(o.T) - o.sp.Thermo.SR(o.T))
}

// ChemPotentials writes μ = μ°(T) into mu (unit activity) [J/kmol]
func (o *Stoich) ChemPotentials(mu []float64) { o.StandardChemPotentials(mu) }

// EnthalpyMole returns h°(T) [J/kmol]
func (o *Stoich) EnthalpyMole() float64 {
	return Rgas * o.T * o.sp.Thermo.HRT(o.T)
}

// EntropyMole returns s°(T) [J/(kmol·K)]
func (o *Stoich) EntropyMole() float64 {
	return Rgas * o.sp.Thermo.SR(o.T)
}

// GibbsMole returns g = h - T·s [J/kmol]
func (o *Stoich) GibbsMole() float64 {
	return o.EnthalpyMole() - o.T*o.EntropyMole()
}

// IntEnergyMole returns u = h - P/ρ̃ [J/kmol]
func (o *Stoich) IntEnergyMole() float64 {
	return o.EnthalpyMole() - o.P/o.rho
}

// CpMole returns cp°(T) [J/(kmol·K)]
func (o *Stoich) CpMole() float64 {
	return Rgas * o.sp.Thermo.CpR(o.T)
}
