// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_msh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh01")

	msh, err := ReadMsh("data", "column.msh", 0)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	io.Pfcyan("lims = [%g, %g, %g, %g]\n", msh.Xmin, msh.Xmax, msh.Ymin, msh.Ymax)
	chk.Int(tst, "ndim", msh.Ndim, 2)
	chk.Float64(tst, "xmin", 1e-17, msh.Xmin, 0)
	chk.Float64(tst, "xmax", 1e-17, msh.Xmax, 1)
	chk.Float64(tst, "ymin", 1e-17, msh.Ymin, 0)
	chk.Float64(tst, "ymax", 1e-17, msh.Ymax, 2)
	chk.Float64(tst, "maxelev", 1e-17, msh.MaxElev, 2)
	chk.Int(tst, "bottom verts", len(msh.VertTag2verts[-1]), 2)
	chk.Int(tst, "side verts", len(msh.VertTag2verts[-2]), 4)
	chk.Int(tst, "cells with tag -2", len(msh.CellTag2cells[-2]), 1)
	chk.Ints(tst, "neighbours of cell 0", msh.Cells[0].Neighs, []int{-1, -1, 1, -1})
	chk.Ints(tst, "neighbours of cell 1", msh.Cells[1].Neighs, []int{0, -1, -1, -1})

	x := msh.CellCoords(msh.Cells[1])
	chk.Array(tst, "x of cell 1", 1e-17, x[0], []float64{0, 1, 1, 0})
	chk.Array(tst, "y of cell 1", 1e-17, x[1], []float64{1, 1, 2, 2})
}

func Test_msh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh02. errors")

	_, err := LoadMsh([]byte(`{"verts":[{"id":0,"tag":0,"c":[0,0]},{"id":1,"tag":0,"c":[1,0]},{"id":2,"tag":0,"c":[0,1]}],
		"cells":[{"id":0,"tag":-1,"type":"qua4","verts":[0,1,2]}]}`), 0)
	if err == nil {
		tst.Errorf("wrong number of vertices should have failed\n")
		return
	}
	io.Pforan("%v\n", err)

	_, err = LoadMsh([]byte(`{"verts":[{"id":0,"tag":0,"c":[0,0]},{"id":1,"tag":0,"c":[1,0]},{"id":2,"tag":0,"c":[0,1]}],
		"cells":[{"id":0,"tag":1,"type":"tri3","verts":[0,1,2]}]}`), 0)
	if err == nil {
		tst.Errorf("positive cell tag should have failed\n")
		return
	}
	io.Pforan("%v\n", err)
}

func Test_mat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat01")

	mdb, err := ReadMat("data", "column.mat", 2, 10)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	if mdb.Get(0) != nil || mdb.Get(5) != nil {
		tst.Errorf("indices are 1-based and bounded\n")
		return
	}

	sand := mdb.Get(1)
	chk.String(tst, sand.Name, "sand")
	chk.Int(tst, "sand: index", sand.Index, 1)
	chk.Int(tst, "sand: phases", sand.Phases, 2)
	chk.Float64(tst, "sand: G", 1e-12, sand.G, 1000/2.6)
	chk.Float64(tst, "sand: M", 1e-10, sand.M, 700/(1.3*0.4))
	chk.Float64(tst, "sand: ρmix", 1e-15, sand.DensityMixture, 0.7*2.7+0.3)
	chk.Float64(tst, "sand: ρthr", 1e-15, sand.FluidThresholdDensity, 1-100/2.2e6)
	chk.Array(tst, "sand: klsat", 1e-17, sand.Klsat, []float64{1e-4, 1e-4, 1e-4})

	clay := mdb.GetByName("clay")
	chk.Int(tst, "clay: index", clay.Index, 2)
	chk.Int(tst, "clay: phases", clay.Phases, 3)
	chk.Float64(tst, "clay: pl0", 1e-15, clay.Pl0, 10)
	chk.Float64(tst, "clay: sl0", 1e-15, clay.Sl0, clay.Porous.Saturation(10))
	if clay.Sl0 >= 1 || clay.Sl0 <= 0.01 {
		tst.Errorf("initial saturation is incorrect: %g\n", clay.Sl0)
		return
	}
	n, sl := 0.4, clay.Sl0
	chk.Float64(tst, "clay: ρmix", 1e-15, clay.DensityMixture, (1-n)*2.7+n*sl*1.0+n*(1-sl)*0.0012)

	water := mdb.Get(3)
	chk.Int(tst, "water: phases", water.Phases, 1)
	chk.Float64(tst, "water: ρmix", 1e-15, water.DensityMixture, 1)
	if !water.Kind.IsLiquid() {
		tst.Errorf("water must have a liquid model\n")
		return
	}

	// heavy: density, porosity and Poisson's coefficient
	io.Pforan("warnings = %v\n", mdb.Warnings)
	chk.Int(tst, "number of warnings", len(mdb.Warnings), 3)
}

func Test_mat02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat02. errors")

	_, err := LoadMaterials([]byte(`{"materials":[{"name":"w","type":"liquid","model":"newtonian",
		"prms":[{"n":"Kl","v":100},{"n":"mu","v":1}],
		"liq":[{"n":"R0","v":1},{"n":"K","v":100},{"n":"Tcav","v":100}]}]}`), 2, 10)
	if err == nil {
		tst.Errorf("cavitation threshold equal to bulk modulus should have failed\n")
		return
	}
	io.Pforan("%v\n", err)

	_, err = LoadMaterials([]byte(`{"materials":[{"name":"u","type":"dry","model":"external","extra":"!fcn:nonexistent",
		"prms":[{"n":"M","v":100}],"por":[{"n":"nf0","v":0.3},{"n":"RhoS0","v":2.7}]}]}`), 2, 10)
	if err == nil {
		tst.Errorf("unbound external model should have failed\n")
		return
	}
	io.Pforan("%v\n", err)

	_, err = LoadMaterials([]byte(`{"materials":[{"name":"x","type":"dry","model":"unknown"}]}`), 2, 10)
	if err == nil {
		tst.Errorf("unknown model should have failed\n")
		return
	}
	io.Pforan("%v\n", err)
}

func Test_mat03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat03. partially saturated 2-phase material")

	silt := `{"name":"silt","type":"saturated","model":"lin-elast",
		"prms":[{"n":"E","v":1e4},{"n":"nu","v":0.3}],
		"por":[{"n":"nf0","v":0.4},{"n":"RhoS0","v":2.7},{"n":"kl","v":1e-2},{"n":"pl0","v":-10}],
		"lrm":{"model":"vg","prms":[{"n":"alp","v":0.08},{"n":"m","v":0.5},{"n":"n","v":2}]}`
	mdb, err := LoadMaterials([]byte(`{"materials":[`+silt+`,
		"cnd":{"model":"mualem","prms":[{"n":"m","v":0.5}]}}]}`), 2, 10)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	m := mdb.Get(1)
	if m.Reten == nil || m.Conduct == nil {
		tst.Errorf("retention and conductivity models must be allocated\n")
		return
	}
	if m.Porous != nil {
		tst.Errorf("2-phase material must not have the 3-phase balance equations\n")
		return
	}
	chk.Int(tst, "phases", m.Phases, 2)
	chk.Float64(tst, "pl0", 1e-15, m.Pl0, 10)
	chk.Float64(tst, "sl0", 1e-15, m.Sl0, 1)
	chk.Array(tst, "klsat", 1e-17, m.Klsat, []float64{1e-2, 1e-2, 1e-2})

	// conductivity model is missing
	_, err = LoadMaterials([]byte(`{"materials":[`+silt+`}]}`), 2, 10)
	if err == nil {
		tst.Errorf("retention model without conductivity model should have failed\n")
		return
	}
	io.Pforan("%v\n", err)
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01")

	sim, err := ReadSim("data/column.sim", false, false)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.String(tst, sim.Key, "column")
	chk.String(tst, sim.Calc.Formulation, SinglePoint)
	chk.Int(tst, "phases", sim.Calc.Phases, 2)
	chk.Int(tst, "ndim", sim.Ndim, 2)
	chk.Int(tst, "nent", sim.NumEntities(), 1)
	chk.Float64(tst, "courant", 1e-17, sim.Calc.Courant, 0.98)
	chk.Float64(tst, "damping", 1e-17, sim.Calc.Damping, 0.05)
	chk.Float64(tst, "dtout", 1e-17, sim.Control.DtOut, 0.01)
	chk.Float64(tst, "grav(0)", 1e-17, sim.Gravity.Func.F(0, nil), 0)
	chk.Float64(tst, "grav(1)", 1e-17, sim.Gravity.Func.F(1, nil), 1)
	chk.Int(tst, "nbcs", len(sim.VertBcs), 2)
	chk.Float64(tst, "ux at bottom", 1e-17, sim.VertBcs[0].Fcns[0].F(0.5, nil), 0)
	ed := sim.Etag2data(-2)
	chk.String(tst, ed.Mat, "sand")
	chk.Int(tst, "npart", ed.Npart, 4)
	if sim.MatModels.GetByName("sand") == nil {
		tst.Errorf("materials database is not set\n")
	}
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. options")

	var sim Simulation
	sim.SetDefault()
	sim.Calc.Formulation = DoublePoint
	sim.Calc.Phases = 3
	if sim.PostProcess() == nil {
		tst.Errorf("double point formulation with 3 phases should have failed\n")
		return
	}
	sim.Calc.Phases = 2
	sim.Calc.Workers = 0
	sim.Control.Dt = 0
	err := sim.PostProcess()
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Int(tst, "workers", sim.Calc.Workers, 1)
	chk.Float64(tst, "dt", 1e-17, sim.Control.Dt, 1e-10)
}
