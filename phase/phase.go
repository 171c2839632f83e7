// Copyright 2026 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package phase implements thermodynamic phase models and the capability
// contract consumed by the mixture and equil packages. A phase knows its
// species and elements, holds a (T, P, X) state, and reports molar
// thermodynamic properties in SI units (J/kmol, J/(kmol·K), kmol/m³).
package phase

import (
	"github.com/cpmech/gosl/chk"
)

// physical constants (SI, per kmol)
const (
	Rgas     = 8314.462618   // universal gas constant [J/(kmol·K)]
	OneAtm   = 101325.0      // one standard atmosphere [Pa]
	Avogadro = 6.02214076e26 // Avogadro's number [1/kmol]
	Faraday  = 9.64853321e7  // Faraday's constant [C/kmol]
	Tref     = 298.15        // reference temperature for standard states [K]

	// SmallX is the floor applied to mole fractions inside logarithms,
	// so that chemical potentials of vanishing species stay finite.
	SmallX = 1e-200
)

// Phase defines the capability set any phase model must expose to take part
// in a multiphase mixture. Implementations own their (T, P, X) state; the
// mixture object drives that state and assumes exclusive access for the
// duration of any operation.
type Phase interface {

	// identity and structure
	Name() string                 // phase name/id
	Nspecies() int                // number of species
	Nelements() int               // number of elements
	ElementName(m int) string     // name of local element m
	ElementIndex(name string) int // local index of element; -1 if absent
	AtomicNumber(m int) int       // atomic number of local element m
	SpeciesName(k int) string     // name of local species k
	SpeciesIndex(name string) int // local index of species; -1 if absent
	Natoms(k, m int) float64      // atoms of local element m in local species k
	Charge(k int) float64         // charge of species k [elementary charges]

	// state
	Temperature() float64                  // current temperature [K]
	Pressure() float64                     // current pressure [Pa]
	MinTemp() float64                      // lower bound of thermo validity [K]
	MaxTemp() float64                      // upper bound of thermo validity [K]
	SetTemperature(T float64)              // set temperature [K]
	SetPressure(P float64)                 // set pressure [Pa]
	SetStateTPX(T, P float64, x []float64) // set full state; x is normalized internally
	MoleFractions(x []float64)             // write current mole fractions into x
	SetMoleFractionsNoNorm(x []float64)    // set mole fractions without normalizing

	// molar properties
	MolarDensity() float64               // [kmol/m³]
	ChemPotentials(mu []float64)         // μ_k [J/kmol]
	StandardChemPotentials(mu []float64) // μ°_k(T) [J/kmol]
	GibbsMole() float64                  // [J/kmol]
	EnthalpyMole() float64               // [J/kmol]
	EntropyMole() float64                // [J/(kmol·K)]
	IntEnergyMole() float64              // [J/kmol]
	CpMole() float64                     // [J/(kmol·K)]
}

// New returns a new phase model from the database of allocators
func New(kind string) (Phase, error) {
	allocator, ok := allocators[kind]
	if !ok {
		return nil, chk.Err("phase model %q is not available in 'phase' database", kind)
	}
	return allocator(), nil
}

// allocators holds all available phase models
var allocators = map[string]func() Phase{}

// atomicNumbers maps element symbols to atomic numbers. The electron
// pseudo-element "E"/"e" maps to zero.
var atomicNumbers = map[string]int{
	"H": 1, "He": 2, "C": 6, "N": 7, "O": 8, "F": 9, "Ne": 10,
	"Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15, "S": 16, "Cl": 17,
	"Ar": 18, "K": 19, "Ca": 20, "Fe": 26, "Br": 35, "I": 53,
	"E": 0, "e": 0,
}

// AtomicNumberOf returns the atomic number of element named sym (0 if unknown)
func AtomicNumberOf(sym string) int {
	return atomicNumbers[sym]
}
