// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conduct

import "github.com/cpmech/gosl/fun/dbf"

// Cte implements constant relative conductivities: klr = kgr = 1
type Cte struct{}

// add model to factory
func init() {
	allocators["cte"] = func() Model { return new(Cte) }
}

// Init initialises this structure
func (o *Cte) Init(prms dbf.Params) (err error) { return }

// GetPrms gets (an example) of parameters
func (o Cte) GetPrms(example bool) dbf.Params { return nil }

// Klr returns klr
func (o Cte) Klr(sl float64) float64 { return 1 }

// Kgr returns kgr
func (o Cte) Kgr(sg float64) float64 { return 1 }

// DklrDsl returns ∂klr/∂sl
func (o Cte) DklrDsl(sl float64) float64 { return 0 }

// DkgrDsg returns ∂kgr/∂sg
func (o Cte) DkgrDsg(sg float64) float64 { return 0 }
