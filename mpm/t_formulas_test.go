// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"math"
	"testing"

	"github.com/cpmech/gompm/mdl/fluid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func Test_press01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("press01. pressure increments")

	// saturated
	Kf, n := 2.2e6, 0.3
	Δp := SaturatedPressure(Kf, n, -5e-5, -1e-4)
	io.Pforan("Δp = %v\n", Δp)
	chk.Float64(tst, "Δp saturated", 1e-8, Δp, Kf*(-5e-5)+0.7/0.3*Kf*(-1e-4))
	chk.Float64(tst, "Δp saturated", 1e-8, Δp, -623.3333333333334)

	// undrained
	chk.Float64(tst, "Δp undrained", 1e-10, UndrainedPressure(Kf, n, -1e-4), -Kf/n*1e-4)

	// zero porosity
	chk.Float64(tst, "Δp n=0 (saturated)", 1e-17, SaturatedPressure(Kf, 0, -5e-5, -1e-4), 0)
	chk.Float64(tst, "Δp n=0 (undrained)", 1e-17, UndrainedPressure(Kf, 0, -1e-4), 0)
	chk.Float64(tst, "Δp n=0 (partsat)", 1e-17, PartSatPressure(Kf, 0, 0.5, 0, -5e-5, -1e-4), 0)

	// partially saturated with a constant saturation equals the saturated formula
	chk.Float64(tst, "Δp partsat Sr=1", 1e-8, PartSatPressure(Kf, n, 1, 0, -5e-5, -1e-4), Δp)

	// fluid bulk modulus
	chk.Float64(tst, "Kf Sl=1", 1e-10, FluidBulk(1, Kf, 100), Kf)
	chk.Float64(tst, "Kf Sl=0", 1e-10, FluidBulk(0, Kf, 100), 100)
	chk.Float64(tst, "Kf no gas", 1e-10, FluidBulk(0.5, Kf, 0), 2*Kf)
}

func Test_dens01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dens01. liquid density")

	var mdl fluid.Model
	err := mdl.Init(dbf.Params{&dbf.P{N: "R0", V: 1}, &dbf.P{N: "K", V: 2.2e6}, &dbf.P{N: "Tcav", V: 100}})
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	Rthr := mdl.ThresholdDensity()
	chk.Float64(tst, "Rthr", 1e-15, Rthr, 1-100/2.2e6)

	// compression: density increases monotonically
	ρ := 1.0
	for i := 0; i < 10; i++ {
		ρnew := LiquidDensity(&mdl, ρ, -1e-4, -1000, false, 1)
		if ρnew <= ρ {
			tst.Errorf("density must increase under compression. %g ≤ %g\n", ρnew, ρ)
			return
		}
		ρ = ρnew
	}
	chk.Float64(tst, "ρ after 10 increments", 1e-12, ρ, 1/math.Pow(1-1e-4, 10))

	// tension beyond cavitation: pinned to threshold
	for i := 0; i < 3; i++ {
		ρ = LiquidDensity(&mdl, ρ, 1e-4, 200, false, 1)
		chk.Float64(tst, "ρ cavitation", 1e-17, ρ, Rthr)
	}

	// free surface of partially filled element: pinned to threshold
	chk.Float64(tst, "ρ free surface", 1e-17, LiquidDensity(&mdl, 1.0, -1e-4, -1000, true, 0.5), Rthr)

	// free surface of filled element: integrated
	chk.Float64(tst, "ρ filled", 1e-15, LiquidDensity(&mdl, 1.0, -1e-4, -1000, true, 1), 1/(1-1e-4))
}

func Test_poros01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("poros01. porosity")

	chk.Float64(tst, "n(0)", 1e-15, Porosity(0.3, 0), 0.3)
	chk.Float64(tst, "n(+0.1)", 1e-15, Porosity(0.3, 0.1), 1-0.7/1.1)
	chk.Float64(tst, "n(-0.1)", 1e-15, Porosity(0.3, -0.1), 1-0.7/0.9)
	chk.Float64(tst, "n clamped", 1e-17, Porosity(0.3, -0.5), 0)
}

func Test_tstep01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tstep01. time step bounds")

	chk.Float64(tst, "within bounds", 1e-17, BoundTimeStep(1e-3, 1e-6, 1), 1e-3)
	chk.Float64(tst, "lower bound", 1e-17, BoundTimeStep(1e-9, 1e-6, 1), 1e-6)
	chk.Float64(tst, "remaining time", 1e-17, BoundTimeStep(1e-3, 1e-6, 4e-4), 4e-4)
	chk.Float64(tst, "remaining wins over dtmin", 1e-17, BoundTimeStep(1e-9, 1e-6, 1e-7), 1e-7)
	chk.Float64(tst, "no remaining time", 1e-17, BoundTimeStep(1e-3, 1e-6, 0), 1e-3)
}

func Test_bulkvisc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bulkvisc01. bulk viscosity")

	ρ, c, L, b1, b2 := 2.0, 100.0, 0.5, 0.06, 1.2

	// expansion: no damping
	chk.Float64(tst, "q expansion", 1e-17, BulkViscosity(ρ, c, L, 10, b1, b2), 0)
	chk.Float64(tst, "χ expansion", 1e-17, BulkViscosityFactor(c, L, 10, b1, b2), 1)

	// compression
	rate := -10.0
	q := BulkViscosity(ρ, c, L, rate, b1, b2)
	chk.Float64(tst, "q compression", 1e-12, q, ρ*L*(b1*c*10+b2*b2*L*100))
	Q := b1*c + b2*b2*L*10
	χ := BulkViscosityFactor(c, L, rate, b1, b2)
	chk.Float64(tst, "χ compression", 1e-15, χ, c/(Q+math.Sqrt(Q*Q+c*c)))
	if χ <= 0 || χ >= 1 {
		tst.Errorf("χ must be in ]0,1[. %g is invalid\n", χ)
	}
}

func Test_jaumann01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jaumann01. objective stress rate")

	// no spin: no change
	σ := []float64{-10, -20, -30, 1, 2, 3}
	Jaumann(σ, []float64{0, 0, 0})
	chk.Array(tst, "σ", 1e-17, σ, []float64{-10, -20, -30, 1, 2, 3})

	// isotropic stress is not affected by spin
	σ = []float64{-5, -5, -5, 0, 0, 0}
	Jaumann(σ, []float64{0.01, 0.02, 0.03})
	chk.Array(tst, "σ isotropic", 1e-15, σ, []float64{-5, -5, -5, 0, 0, 0})

	// uniaxial stress with in-plane spin
	ω := 1e-3
	σ = []float64{1, 0, 0, 0, 0, 0}
	Jaumann(σ, []float64{ω, 0, 0})
	chk.Array(tst, "σ uniaxial", 1e-15, σ, []float64{1, 0, 0, -ω, 0, 0})

	// trace is preserved
	σ = []float64{-10, -20, -30, 1, 2, 3}
	tr := σ[0] + σ[1] + σ[2]
	Jaumann(σ, []float64{0.01, -0.02, 0.03})
	chk.Float64(tst, "trace", 1e-12, σ[0]+σ[1]+σ[2], tr)
}

func Test_rot01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rot01. local systems")

	for _, ndim := range []int{2, 3} {
		R := RotationZ(ndim, math.Pi/6)

		// orthonormal
		for i := 0; i < ndim; i++ {
			for j := 0; j < ndim; j++ {
				var s float64
				for k := 0; k < ndim; k++ {
					s += R[i][k] * R[j][k]
				}
				var δ float64
				if i == j {
					δ = 1
				}
				chk.Float64(tst, io.Sf("R Rᵀ[%d][%d]", i, j), 1e-15, s, δ)
			}
		}

		// round trip
		v := []float64{1, 2, 3}[:ndim]
		w := append([]float64{}, v...)
		RotateIn(R, w)
		RotateOut(R, w)
		chk.Array(tst, "v", 1e-15, w, v)
	}

	// 90 degrees: local x is global y
	R := RotationZ(2, math.Pi/2)
	v := []float64{3, 7}
	RotateIn(R, v)
	chk.Array(tst, "local v", 1e-15, v, []float64{7, -3})

	// nil means global system
	RotateIn(nil, v)
	chk.Array(tst, "unchanged", 1e-17, v, []float64{7, -3})
}

func Test_diverge01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diverge01. energy checks")

	cfg := &Config{TolDiverge: 1e-3, Tf: 1, TolForce: 0.01, TolEnergy: 0.01}
	ctx := NewContext(cfg)

	// energy balance
	ctx.Diag.DWex[Mixture] = 10
	ctx.Diag.DWin[Mixture] = 4
	ctx.Diag.Ekin[Mixture] = 5
	err := CheckConvergence(ctx)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Float64(tst, "dissipation", 1e-15, ctx.Pers.Dissip[Mixture], 1)
	if ctx.Pers.Converged {
		tst.Errorf("dynamic run must not converge before tf\n")
		return
	}

	// energy created from nothing
	ctx.Diag.DWex[Mixture] = 0
	ctx.Diag.DWin[Mixture] = 0
	ctx.Diag.Ekin[Mixture] = 50
	err = CheckConvergence(ctx)
	if err == nil {
		tst.Errorf("negative dissipation should have failed\n")
		return
	}
	if _, ok := err.(*DivergenceError); !ok {
		tst.Errorf("error should be a DivergenceError\n")
		return
	}
	io.Pforan("%v\n", err)

	// quasi-static
	cfg.QuasiStatic = true
	ctx = NewContext(cfg)
	ctx.Diag.DWex[Mixture] = 10
	ctx.Diag.DWin[Mixture] = 10
	ctx.Diag.Ekin[Mixture] = 1e-3
	ctx.Diag.Fext[Mixture] = 1
	ctx.Diag.Fres[Mixture] = 1e-3
	err = CheckConvergence(ctx)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if !ctx.Pers.Converged {
		tst.Errorf("quasi-static run should have converged\n")
	}
}
