// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_mc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mc01. simple shear")

	mdl := new(MohrCoulomb)
	err := mdl.Init(3, mdl.GetPrms(true))
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	s, _ := mdl.InitIntVars(make([]float64, NSIG))

	// elastic
	err = mdl.Update(s, []float64{0, 0, 0, 1e-3, 0, 0}, 0)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if s.Loading {
		tst.Errorf("small increment should be elastic\n")
		return
	}
	chk.Float64(tst, "σxy", 1e-10, s.Sig[3], mdl.G*1e-3)

	// plastic
	err = mdl.Update(s, []float64{0, 0, 0, 0.02, 0, 0}, 0)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	io.Pforan("σ = %v\n", s.Sig)
	if !s.Loading {
		tst.Errorf("large increment should be plastic\n")
		return
	}
	c, φ, _ := mdl.Strength(s.Alp[0])
	chk.Float64(tst, "σxy", 1e-9, s.Sig[3], c*math.Cos(φ))

	// stress is on the yield surface
	p, _, err := PrincipalStresses(s.Sig)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Float64(tst, "f", 1e-9, mdl.yield(p, 0, 2, c, math.Sin(φ), math.Cos(φ)), 0)
	if s.Alp[0] <= 0 {
		tst.Errorf("plastic strain should have been accumulated\n")
	}
}

func Test_mc02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mc02. apex")

	mdl := new(MohrCoulomb)
	err := mdl.Init(3, mdl.GetPrms(true))
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	s, _ := mdl.InitIntVars(make([]float64, NSIG))
	err = mdl.Update(s, []float64{0.01, 0.01, 0.01, 0, 0, 0}, 0)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if !s.ApexReturn {
		tst.Errorf("isotropic extension should return to apex\n")
		return
	}
	c, φ, _ := mdl.Strength(0)
	papex := c / math.Tan(φ)
	chk.Array(tst, "σ", 1e-9, s.Sig, []float64{papex, papex, papex, 0, 0, 0})
}

func Test_mc03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mc03. softening and tension cut-off")

	mdl := &MohrCoulomb{Softening: true}
	prms := mdl.GetPrms(true)
	err := mdl.Init(3, prms)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	c0, φ0, _ := mdl.Strength(0)
	c1, φ1, _ := mdl.Strength(1e3)
	chk.Float64(tst, "c0", 1e-15, c0, prms.Find("c").V)
	chk.Float64(tst, "φ0", 1e-15, φ0, prms.Find("phi").V*math.Pi/180)
	chk.Float64(tst, "c1", 1e-15, c1, prms.Find("cr").V)
	chk.Float64(tst, "φ1", 1e-15, φ1, prms.Find("phir").V*math.Pi/180)

	// tension cut-off
	mdl.Sigt = 1.0
	s, _ := mdl.InitIntVars(make([]float64, NSIG))
	err = mdl.Update(s, []float64{1e-3, 0, 0, 0, 0, 0}, 0)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if !s.TensionCut {
		tst.Errorf("tension cut-off should have been activated\n")
		return
	}
	p, _, _ := PrincipalStresses(s.Sig)
	if p[0] > mdl.Sigt+1e-12 {
		tst.Errorf("principal stress %g exceeds tensile strength\n", p[0])
	}
}

func Test_mc04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mc04. edge returns")

	mdl := new(MohrCoulomb)
	err := mdl.Init(3, mdl.GetPrms(true))
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	c, φ, ψ := mdl.Strength(0)
	sφ, cφ, sψ := math.Sin(φ), math.Cos(φ), math.Sin(ψ)

	// trial stress near the σ2 = σ3 edge; the σ1 = σ2 edge gives a negative multiplier
	ptr := []float64{0, -90, -100}
	s, _ := mdl.InitIntVars(make([]float64, NSIG))
	p := []float64{ptr[0], ptr[1], ptr[2]}
	if !mdl.returnToEdges(p, ptr, s, [][2]int{{1, 2}, {0, 1}}, c, sφ, cφ, sψ) {
		tst.Errorf("second edge should have been accepted\n")
		return
	}
	io.Pforan("p = %v\n", p)
	chk.Float64(tst, "σ2-σ3", 1e-10, p[1]-p[2], 0)
	chk.Float64(tst, "f13", 1e-10, mdl.yield(p, 0, 2, c, sφ, cφ), 0)
	chk.Float64(tst, "f12", 1e-10, mdl.yield(p, 0, 1, c, sφ, cφ), 0)
	if s.NegativeDgam {
		tst.Errorf("negative multiplier flag should not be set\n")
	}

	// the same trial stress through the full return mapping
	q := []float64{ptr[0], ptr[1], ptr[2]}
	mdl.returnMap(q, s, c, sφ, cφ, sψ)
	if s.ApexReturn {
		tst.Errorf("trial stress should not return to the apex\n")
		return
	}
	chk.Array(tst, "p", 1e-10, q, p)
}
