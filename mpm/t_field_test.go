// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_field01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("field01. indices and velocity from momentum")

	f := NewField(2, 3, 2)
	chk.Int(tst, "len(Mass)", len(f.Mass), 6)
	chk.Int(tst, "len(Mom)", len(f.Mom), 12)
	chk.Int(tst, "S(1,2)", f.S(1, 2), 5)
	chk.Int(tst, "V(1,2,1)", f.V(1, 2, 1), 11)

	// node 0 of entity 0 has mass; node 1 has momentum but no mass
	f.Mass[f.S(0, 0)] = 2
	f.Mom[f.V(0, 0, 0)] = 4
	f.Mom[f.V(0, 0, 1)] = -6
	f.Mom[f.V(0, 1, 0)] = 123
	f.GetNodalVelocityFromMomentum()
	chk.Array(tst, "v(0,0)", 1e-17, nodeVec(f, f.Vel, 0, 0), []float64{2, -3})
	chk.Array(tst, "v(0,1)", 1e-17, nodeVec(f, f.Vel, 0, 1), []float64{0, 0})
	chk.Array(tst, "v(1,0)", 1e-17, nodeVec(f, f.Vel, 1, 0), []float64{0, 0})
}

func Test_field02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("field02. reductions")

	a := NewField(1, 2, 2)
	b := NewField(1, 2, 2)
	a.Mass[0], b.Mass[0] = 1, 2
	a.Fint[1], b.Fint[1] = 3, 4
	a.Mom[2], b.Mom[2] = 5, 6
	a.AddMapped(b)
	chk.Array(tst, "mass", 1e-17, a.Mass, []float64{3, 0})
	chk.Array(tst, "fint", 1e-17, a.Fint, []float64{0, 7, 0, 0})
	chk.Array(tst, "mom", 1e-17, a.Mom, []float64{0, 0, 11, 0})

	a.ResetMom()
	a.AddMom(b)
	chk.Array(tst, "mom after reset", 1e-17, a.Mom, []float64{0, 0, 6, 0})

	a.ResetMapped()
	chk.Array(tst, "mass after reset", 1e-17, a.Mass, []float64{0, 0})
	chk.Array(tst, "fint after reset", 1e-17, a.Fint, []float64{0, 0, 0, 0})
}
