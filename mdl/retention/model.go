// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package retention implements models for liquid retention curves
//  The degree of liquid saturation sl is given as a function of the
//  capillary pressure (suction) pc = pg - pl, which is positive for
//  unsaturated states.
//  References:
//   [1] van Genuchten MTh (1980) A closed-form equation for predicting the hydraulic
//       conductivity of unsaturated soils, Soil Science Society of America Journal,
//       44(5), 892-898
package retention

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model implements a liquid retention model (LRM)
type Model interface {
	Init(prms dbf.Params) error      // initialises retention model
	GetPrms(example bool) dbf.Params // gets (an example) of parameters
	SlMin() float64                  // returns sl_min
	SlMax() float64                  // returns sl_max
	Sl(pc float64) float64           // computes sl directly from pc
	Cc(pc float64) float64           // computes Cc = ∂sl/∂pc
}

// Update computes the saturation for a change Δpc of capillary pressure.
// The result is bounded by [slmin, slmax]
func Update(mdl Model, pc0, Δpc float64) (slNew float64) {
	slNew = mdl.Sl(pc0 + Δpc)
	if slNew < mdl.SlMin() {
		slNew = mdl.SlMin()
	}
	if slNew > mdl.SlMax() {
		slNew = mdl.SlMax()
	}
	return
}

// New returns new liquid retention model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'retention' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}
