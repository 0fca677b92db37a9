// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func Test_linelast01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linelast01")

	mdl, err := New("lin-elast")
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	E, ν := 1e6, 0.3
	err = mdl.Init(3, []*dbf.P{
		&dbf.P{N: "E", V: E},
		&dbf.P{N: "nu", V: ν},
	})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	s, err := mdl.InitIntVars(make([]float64, NSIG))
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	err = mdl.Update(s, []float64{0.001, 0, 0, 0, 0, 0}, 1e-3)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	c := E / ((1 + ν) * (1 - 2*ν))
	chk.Float64(tst, "σxx", 1e-9, s.Sig[0], c*(1-ν)*0.001)
	chk.Float64(tst, "σyy", 1e-9, s.Sig[1], c*ν*0.001)
	chk.Float64(tst, "σzz", 1e-9, s.Sig[2], c*ν*0.001)
	chk.Array(tst, "τ", 1e-15, s.Sig[3:], make([]float64, 3))
	chk.Float64(tst, "M", 1e-8, mdl.Modulus(s), c*(1-ν))

	// moduli
	K, G := mdl.(Elastic).Moduli()
	chk.Float64(tst, "K", 1e-9, K, E/(3*(1-2*ν)))
	chk.Float64(tst, "G", 1e-9, G, E/(2*(1+ν)))
}

func Test_linelast02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linelast02")

	var mdl LinElast
	err := mdl.Init(2, []*dbf.P{&dbf.P{N: "E", V: 1e4}})
	if err == nil {
		tst.Errorf("missing Poisson's coefficient should have caused an error\n")
		return
	}
	err = mdl.Init(2, []*dbf.P{&dbf.P{N: "K", V: 5}, &dbf.P{N: "G", V: 3}})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Float64(tst, "E", 1e-14, mdl.E, 9.0*5*3/(15+3))
	chk.Float64(tst, "ν", 1e-14, mdl.Nu, (15.0-6)/(30+6))

	_, err = New("nonexistent")
	if err == nil {
		tst.Errorf("unknown model name should have caused an error\n")
	}
}
