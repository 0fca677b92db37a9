// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fluid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func Test_fld01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("fld01")

	var water Model
	err := water.Init(water.GetPrms(true))
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	var dryair Model
	dryair.Gas = true
	err = dryair.Init(dryair.GetPrms(true))
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	// linear density law
	chk.Float64(tst, "R(0)", 1e-15, water.Density(0), 1)
	chk.Float64(tst, "R(100)", 1e-15, water.Density(100), 1+100/2.2e6)
	chk.Float64(tst, "R(-1e9)", 1e-15, water.Density(-1e9), 0)
	chk.Float64(tst, "K(air)", 1e-12, dryair.K, 0.0012/1.17e-5)
}

func Test_fld02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("fld02. cavitation")

	var water Model
	err := water.Init(water.GetPrms(true))
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	Rthr := water.ThresholdDensity()
	chk.Float64(tst, "Rthr", 1e-15, Rthr, 1.0-100.0/2.2e6)

	// integration
	chk.Float64(tst, "R", 1e-15, water.LiquidDensity(1, -1e-3, 10, false), 1/(1-1e-3))

	// clamp below cavitation pressure and on free surface
	chk.Float64(tst, "R(cav)", 1e-15, water.LiquidDensity(1, -1e-3, -200, false), Rthr)
	chk.Float64(tst, "R(free)", 1e-15, water.LiquidDensity(1, -1e-3, 10, true), Rthr)

	// idempotent clamp
	R := water.LiquidDensity(Rthr, 0, -200, false)
	chk.Float64(tst, "R(R(cav))", 1e-15, water.LiquidDensity(R, 0, -200, false), R)

	// invalid threshold
	var bad Model
	err = bad.Init([]*dbf.P{&dbf.P{N: "R0", V: 1}, &dbf.P{N: "K", V: 10}, &dbf.P{N: "Tcav", V: 10}})
	if err == nil {
		tst.Errorf("Tcav ≥ K should have caused an error\n")
	}
}
