// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conduct

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Hillel implements power laws of the effective saturation:
//   klr = Seˡʳ  and  kgr = (1 - Se)ᵍʳ  with  Se = (sl - slmin) / (slmax - slmin)
type Hillel struct {
	rl, rg       float64 // exponents
	slmin, slmax float64 // saturation limits
}

// add model to factory
func init() {
	allocators["hillel"] = func() Model { return new(Hillel) }
}

// Init initialises this structure
func (o *Hillel) Init(prms dbf.Params) (err error) {
	o.rl, o.rg, o.slmax = 3, 3, 1
	for _, p := range prms {
		switch p.N {
		case "rl":
			o.rl = p.V
		case "rg":
			o.rg = p.V
		case "slmin":
			o.slmin = p.V
		case "slmax":
			o.slmax = p.V
		default:
			return chk.Err("hillel: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.slmin >= o.slmax {
		return chk.Err("hillel: slmin=%g must be smaller than slmax=%g\n", o.slmin, o.slmax)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Hillel) GetPrms(example bool) dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "rl", V: 3},
		&dbf.P{N: "rg", V: 3},
		&dbf.P{N: "slmin", V: 0},
		&dbf.P{N: "slmax", V: 1},
	}
}

// Klr returns klr
func (o Hillel) Klr(sl float64) float64 {
	return math.Pow(effective(sl, o.slmin, o.slmax), o.rl)
}

// Kgr returns kgr
func (o Hillel) Kgr(sg float64) float64 {
	return math.Pow(1.0-effective(1.0-sg, o.slmin, o.slmax), o.rg)
}

// DklrDsl returns ∂klr/∂sl
func (o Hillel) DklrDsl(sl float64) float64 {
	se := effective(sl, o.slmin, o.slmax)
	if se <= 0 || se >= 1 {
		return 0
	}
	return o.rl * math.Pow(se, o.rl-1) / (o.slmax - o.slmin)
}

// DkgrDsg returns ∂kgr/∂sg
func (o Hillel) DkgrDsg(sg float64) float64 {
	se := effective(1.0-sg, o.slmin, o.slmax)
	if se <= 0 || se >= 1 {
		return 0
	}
	return o.rg * math.Pow(1.0-se, o.rg-1) / (o.slmax - o.slmin)
}

// effective computes the effective saturation in [0, 1]
func effective(sl, slmin, slmax float64) float64 {
	se := (sl - slmin) / (slmax - slmin)
	return math.Min(math.Max(se, 0), 1)
}
