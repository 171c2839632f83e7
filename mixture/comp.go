// Copyright 2026 The Gochem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixture

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// ParseComp parses a composition string of the form
//   "H2:0.5, O2:0.5"
// into a name => value map. Pairs are comma-separated; whitespace around
// names and values is ignored. Malformed pairs and duplicated names are
// hard errors.
func ParseComp(s string) (map[string]float64, error) {
	res := make(map[string]float64)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.SplitN(item, ":", 2)
		if len(parts) != 2 {
			return nil, chk.Err("mixture.ParseComp: malformed pair %q in composition string %q", item, s)
		}
		name := strings.TrimSpace(parts[0])
		if name == "" {
			return nil, chk.Err("mixture.ParseComp: empty species name in composition string %q", s)
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, chk.Err("mixture.ParseComp: cannot parse value of %q in composition string %q", name, s)
		}
		if _, ok := res[name]; ok {
			return nil, chk.Err("mixture.ParseComp: species %q repeated in composition string %q", name, s)
		}
		res[name] = val
	}
	return res, nil
}

// SetMolesByName sets species mole numbers [kmol] from a name => kmol map.
// Only strictly positive values are honored; species absent from the map,
// or present with non-positive values, are set to zero.
//
// Names that match no species in the mixture contribute nothing and are NOT
// an error: callers routinely pass composition maps covering a superset of
// the species actually present. Matching is exact, never by substring.
func (o *Mixture) SetMolesByName(xmap map[string]float64) error {
	if !o.frozen {
		o.Init()
	}
	moles := make([]float64, o.nsp)
	for k := 0; k < o.nsp; k++ {
		if x, ok := xmap[o.snames[k]]; ok && x > 0 {
			moles[k] = x
		}
	}
	return o.SetMoles(moles)
}

// SetMolesByString sets species mole numbers [kmol] from a composition
// string; see ParseComp and SetMolesByName
func (o *Mixture) SetMolesByString(s string) error {
	xmap, err := ParseComp(s)
	if err != nil {
		return err
	}
	return o.SetMolesByName(xmap)
}
