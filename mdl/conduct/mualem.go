// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conduct

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Mualem implements the van Genuchten-Mualem conductivity model
//   klr = √Se [1 - (1 - Se^(1/m))ᵐ]²
//   kgr = √(1-Se) (1 - Se^(1/m))^(2m)
type Mualem struct {
	m            float64 // van Genuchten exponent
	slmin, slmax float64 // saturation limits
}

// add model to factory
func init() {
	allocators["mualem"] = func() Model { return new(Mualem) }
}

// Init initialises this structure
func (o *Mualem) Init(prms dbf.Params) (err error) {
	o.slmax = 1
	for _, p := range prms {
		switch p.N {
		case "m":
			o.m = p.V
		case "slmin":
			o.slmin = p.V
		case "slmax":
			o.slmax = p.V
		default:
			return chk.Err("mualem: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.m <= 0 || o.m >= 1 {
		return chk.Err("mualem: exponent m must be in ]0, 1[. m=%g is invalid\n", o.m)
	}
	if o.slmin >= o.slmax {
		return chk.Err("mualem: slmin=%g must be smaller than slmax=%g\n", o.slmin, o.slmax)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Mualem) GetPrms(example bool) dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "m", V: 0.5},
		&dbf.P{N: "slmin", V: 0},
		&dbf.P{N: "slmax", V: 1},
	}
}

// Klr returns klr
func (o Mualem) Klr(sl float64) float64 {
	se := effective(sl, o.slmin, o.slmax)
	a := 1.0 - math.Pow(1.0-math.Pow(se, 1.0/o.m), o.m)
	return math.Sqrt(se) * a * a
}

// Kgr returns kgr
func (o Mualem) Kgr(sg float64) float64 {
	se := effective(1.0-sg, o.slmin, o.slmax)
	return math.Sqrt(1.0-se) * math.Pow(1.0-math.Pow(se, 1.0/o.m), 2.0*o.m)
}

// DklrDsl returns ∂klr/∂sl (central differences)
func (o Mualem) DklrDsl(sl float64) float64 {
	h := 1e-7
	return (o.Klr(sl+h) - o.Klr(sl-h)) / (2.0 * h)
}

// DkgrDsg returns ∂kgr/∂sg (central differences)
func (o Mualem) DkgrDsg(sg float64) float64 {
	h := 1e-7
	return (o.Kgr(sg+h) - o.Kgr(sg-h)) / (2.0 * h)
}
