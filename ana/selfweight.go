// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions used to verify simulations
package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// ConfinedSelfWeight computes the solution to a laterally confined linear elastic column
// under gravity (plane strain in 2D)
//
//     ▷ o-----------o ◁
//     ▷ |           | ◁
//     ▷ |    E, ρ   | ◁       negative stress means compression
//  h  ▷ |    ν, g   | ◁
//     ▷ |           | ◁
//     ▷ o-----------o ◁
//       △  △  △  △  △
//
// The last coordinate is the elevation
type ConfinedSelfWeight struct {
	E   float64 // Young's modulus
	Nu  float64 // Poisson's coefficient
	Rho float64 // density
	G   float64 // gravity acceleration (positive value)
	H   float64 // height

	d float64 // ν/(1-ν)
	M float64 // constrained modulus
}

// Init initialises this structure
func (o *ConfinedSelfWeight) Init(prms dbf.Params) (err error) {
	o.E, o.Nu, o.Rho, o.G, o.H = 1000, 0.25, 2, 10, 1
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		case "rho":
			o.Rho = p.V
		case "g":
			o.G = p.V
		case "h":
			o.H = p.V
		default:
			return chk.Err("parameter %q is invalid for confined self-weight solution", p.N)
		}
	}
	if o.E <= 0 || o.Nu < 0 || o.Nu >= 0.5 || o.H <= 0 {
		return chk.Err("parameters are invalid: E=%g nu=%g h=%g", o.E, o.Nu, o.H)
	}
	o.d = o.Nu / (1.0 - o.Nu)
	o.M = o.E * (1.0 - o.Nu) / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
	return
}

// Stress computes the stress components {xx, yy, zz, xy, yz, zx} at x
func (o ConfinedSelfWeight) Stress(x []float64) (σ []float64) {
	ndim := len(x)
	σv := -o.Rho * o.G * (o.H - x[ndim-1])
	σh := o.d * σv
	σ = []float64{σh, σh, σh, 0, 0, 0}
	σ[ndim-1] = σv
	return
}

// Displ computes the displacement components at x
//   uv = -ρ g / M (h - z/2) z
func (o ConfinedSelfWeight) Displ(x []float64) (u []float64) {
	ndim := len(x)
	z := x[ndim-1]
	u = make([]float64, ndim)
	u[ndim-1] = -o.Rho * o.G / o.M * (o.H - z/2.0) * z
	return
}

// CheckStress checks stresses
func (o ConfinedSelfWeight) CheckStress(tst *testing.T, σ, x []float64, tol float64) {
	chk.Array(tst, "σ", tol, σ, o.Stress(x))
}
