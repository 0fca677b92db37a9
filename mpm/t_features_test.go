// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"math"
	"testing"

	"github.com/cpmech/gompm/mdl/retention"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// simCorner compresses one element by moving its top-right vertex downwards. All nodal
// velocities are prescribed, thus the energy check is relaxed because the work of the
// supports is not accounted for. calc holds extra options starting with a comma
func simCorner(calc string) string {
	return `{
  "data" : { "matfile":"mpm.mat", "mshfile":"box2.msh" },
  "calc" : { "toldiverge":1e9` + calc + ` },
  "control" : { "tf":0.1, "dtout":0.1 },
  "functions" : [
    { "name":"down", "type":"cte", "prms":[ {"n":"c","v":-0.1} ] }
  ],
  "vertbcs" : [
    { "tag":-1, "keys":["ux","uy"], "funcs":["zero","zero"] },
    { "tag":-2, "keys":["ux","uy"], "funcs":["zero","zero"] },
    { "tag":-3, "keys":["ux","uy"], "funcs":["zero","down"] }
  ],
  "elemsdata" : [ { "tag":-1, "mat":"elastic", "npart":4 } ]
}`
}

// simShear shears one element by moving its top vertices horizontally
func simShear(calc string) string {
	return `{
  "data" : { "matfile":"mpm.mat", "mshfile":"box.msh" },
  "calc" : { "toldiverge":1e9` + calc + ` },
  "control" : { "tf":0.1, "dtout":0.1 },
  "functions" : [
    { "name":"shear", "type":"cte", "prms":[ {"n":"c","v":0.1} ] }
  ],
  "vertbcs" : [
    { "tag":-1, "keys":["ux","uy"], "funcs":["zero","zero"] },
    { "tag":-2, "keys":["ux","uy"], "funcs":["shear","zero"] }
  ],
  "elemsdata" : [ { "tag":-1, "mat":"elastic", "npart":4 } ]
}`
}

// runSim allocates and runs a simulation
func runSim(tst *testing.T, simjson string) (d *Domain, ctx *Context) {
	d, ctx = newTestDomain(tst, simjson)
	if d == nil {
		return nil, nil
	}
	err := NewSolver(d, ctx, nil, false).Run()
	if err != nil {
		tst.Errorf("run failed:\n%v", err)
		return nil, nil
	}
	return
}

// averageStress returns the volume average of the effective stresses of material points in e
func averageStress(d *Domain, e *Element) (σ []float64) {
	σ = make([]float64, 6)
	var vol float64
	for _, pid := range e.Parts {
		p := &d.Parts[pid]
		for i, v := range p.State.Sig {
			σ[i] += v * p.Vol
		}
		vol += p.Vol
	}
	for i := range σ {
		σ[i] /= vol
	}
	return
}

func Test_mixed01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mixed01. representative point of filled element")

	d, _ := runSim(tst, simCorner(`, "mixed":true`))
	if d == nil {
		return
	}
	e := &d.Elems[0]
	if e.Rep < 0 {
		tst.Errorf("filled element must have a representative point. fill = %g\n", e.Fill)
		return
	}
	chk.Int(tst, "representative", e.Rep, e.Parts[0])
	rep := &d.Parts[e.Rep]
	for _, pid := range e.Parts {
		p := &d.Parts[pid]
		chk.Array(tst, io.Sf("σ%d", pid), 1e-17, p.State.Sig, rep.State.Sig)
		chk.Float64(tst, io.Sf("M%d", pid), 1e-17, p.Mod, rep.Mod)
		chk.Float64(tst, io.Sf("pw%d", pid), 1e-17, p.Pw, rep.Pw)
	}
	σmix := averageStress(d, e)

	// standard integration: points differ but the average is close
	d, _ = runSim(tst, simCorner(`, "mixed":false`))
	if d == nil {
		return
	}
	e = &d.Elems[0]
	chk.Int(tst, "representative", e.Rep, -1)
	σ0, σ3 := d.Parts[e.Parts[0]].State.Sig, d.Parts[e.Parts[3]].State.Sig
	if math.Abs(σ0[1]-σ3[1]) < 1e-6*math.Abs(σ0[1]) {
		tst.Errorf("points of non-uniform strain field must have different stresses: %v, %v\n", σ0, σ3)
		return
	}
	σstd := averageStress(d, e)
	io.Pforan("σ (mixed)    = %v\n", σmix)
	io.Pforan("σ (standard) = %v\n", σstd)
	σmax := 0.0
	for _, v := range σstd {
		σmax = math.Max(σmax, math.Abs(v))
	}
	chk.Array(tst, "average σ", 1e-2*σmax, σmix, σstd)
}

func Test_smooth01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("smooth01. volumetric strain smoothing")

	d, _ := runSim(tst, simCorner(`, "smoothing":true`))
	if d == nil {
		return
	}
	e := &d.Elems[0]
	εv0 := volStrain(d.Parts[e.Parts[0]].Eps)
	if εv0 >= 0 {
		tst.Errorf("element must be compressed. εv = %g\n", εv0)
		return
	}
	for _, pid := range e.Parts {
		chk.Float64(tst, io.Sf("εv%d", pid), 1e-14, volStrain(d.Parts[pid].Eps), εv0)
	}

	// without smoothing
	d, _ = runSim(tst, simCorner(``))
	if d == nil {
		return
	}
	e = &d.Elems[0]
	a, b := volStrain(d.Parts[e.Parts[0]].Eps), volStrain(d.Parts[e.Parts[3]].Eps)
	io.Pforan("εv = %v, %v\n", a, b)
	if math.Abs(a-b) < 1e-6 {
		tst.Errorf("volumetric strains of points must differ without smoothing: %g, %g\n", a, b)
	}
}

func Test_updmesh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("updmesh01. updated Lagrangian mesh")

	d, ctx := runSim(tst, simCorner(`, "updmesh":true`))
	if d == nil {
		return
	}
	t := ctx.Pers.Time
	δ := 0.1 * t
	io.Pforan("t = %v, X2 = %v\n", t, d.Nodes[2].X)
	chk.Array(tst, "X0", 1e-15, d.Nodes[0].X, []float64{0, 0})
	chk.Array(tst, "X1", 1e-15, d.Nodes[1].X, []float64{4, 0})
	chk.Array(tst, "X2", 1e-12, d.Nodes[2].X, []float64{4, 4 - δ})
	chk.Array(tst, "X3", 1e-15, d.Nodes[3].X, []float64{0, 4})
	e := &d.Elems[0]
	chk.Float64(tst, "element volume", 1e-11, e.Vol, 16-2*δ)
	chk.Float64(tst, "element y-coordinate of vertex 2", 1e-12, e.X[1][2], 4-δ)

	// material points stay inside the deformed element
	for _, pid := range e.Parts {
		p := &d.Parts[pid]
		for _, r := range p.R[:2] {
			if r < -1 || r > 1 {
				tst.Errorf("natural coordinates of point %d are out of range: %v\n", p.Id, p.R)
				return
			}
		}
	}

	// the fixed mesh keeps the initial coordinates
	d, _ = runSim(tst, simCorner(``))
	if d == nil {
		return
	}
	chk.Array(tst, "X2 (fixed mesh)", 1e-17, d.Nodes[2].X, []float64{4, 4})
	chk.Float64(tst, "element volume (fixed mesh)", 1e-14, d.Elems[0].Vol, 16)
}

func Test_bulkvisc02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bulkvisc02. damping pressure and time step")

	d, ctx := runSim(tst, simCorner(`, "bulkvisc":true`))
	if d == nil {
		return
	}
	e := &d.Elems[0]
	if e.RateV >= 0 {
		tst.Errorf("element must be compressed. rate = %g\n", e.RateV)
		return
	}
	cfg := ctx.Cfg
	for _, pid := range e.Parts {
		p := &d.Parts[pid]
		if p.Qbulk <= 0 {
			tst.Errorf("bulk viscosity pressure of point %d must be positive. %g is invalid\n", p.Id, p.Qbulk)
			return
		}
		ρ := p.Density() * (1 + volStrain(p.DEps)) // density before the volume update
		chk.Float64(tst, io.Sf("q%d", pid), 1e-10, p.Qbulk, BulkViscosity(ρ, math.Sqrt(p.Mod/ρ), e.Lmin, e.RateV, cfg.BulkL1, cfg.BulkL2))
	}

	// the damping pressure enters the internal forces
	err := d.MapMassAndForces(ctx.Pers.Time)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	f := d.F[Solid]
	fint := make([]float64, len(f.Fint))
	copy(fint, f.Fint)
	ΔF := make([]float64, len(f.Fint))
	for _, pid := range e.Parts {
		p := &d.Parts[pid]
		for m, n := range e.Verts {
			for i := 0; i < d.Ndim; i++ {
				ΔF[f.V(p.Ent, n, i)] += p.G[m][i] * p.Qbulk * p.Vol
			}
		}
		p.Qbulk = 0
	}
	err = d.MapMassAndForces(ctx.Pers.Time)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	for k := range fint {
		fint[k] -= f.Fint[k]
	}
	chk.Array(tst, "ΔFint", 1e-9, fint, ΔF)

	// critical time step is reduced
	pers := &Persistent{Dt: cfg.Dt0}
	dtvisc, err := d.CalculateCriticalTimeStep(pers)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	cfg.BulkVisc = false
	dt, err := d.CalculateCriticalTimeStep(pers)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	io.Pforan("Δt = %v, Δt (bulk viscosity) = %v\n", dt, dtvisc)
	if dtvisc >= dt {
		tst.Errorf("bulk viscosity must reduce the time step: %g ≥ %g\n", dtvisc, dt)
	}
}

func Test_largedef01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("largedef01. simple shear with Jaumann rate")

	// small deformations: pure shear stress
	d, _ := runSim(tst, simShear(``))
	if d == nil {
		return
	}
	for i := range d.Parts {
		σ := d.Parts[i].State.Sig
		chk.Float64(tst, "σxx", 1e-9, σ[0], 0)
		chk.Float64(tst, "σyy", 1e-9, σ[1], 0)
		if σ[3] <= 0 {
			tst.Errorf("shear stress must be positive. %g is invalid\n", σ[3])
			return
		}
	}

	// large deformations: the rotation of the stress gives normal components
	d, _ = runSim(tst, simShear(`, "largedef":true`))
	if d == nil {
		return
	}
	for i := range d.Parts {
		σ := d.Parts[i].State.Sig
		io.Pforan("σ = %v\n", σ)
		if σ[0] <= 0 {
			tst.Errorf("σxx must be positive. %g is invalid\n", σ[0])
			return
		}
		chk.Float64(tst, "σxx+σyy", 1e-9, σ[0]+σ[1], 0)
		chk.Float64(tst, "σzz", 1e-9, σ[2], 0)
	}
}

func Test_localsys01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("localsys01. rotated supports")

	sim := func(bcs string) string {
		return `{
  "data" : { "matfile":"mpm.mat", "mshfile":"box.msh" },
  "calc" : { "toldiverge":1e9 },
  "control" : { "tf":0.05, "dtout":0.05, "maxsteps":50 },
  "gravity" : { "g":10 },
  ` + bcs + `,
  "elemsdata" : [ { "tag":-1, "mat":"soil", "npart":4 } ]
}`
	}

	// rollers in the global system
	da, ca := runSim(tst, sim(`"vertbcs" : [ { "tag":-1, "keys":["uy"], "funcs":["zero"] } ]`))
	if da == nil {
		return
	}

	// the same rollers given as the x-component of a system rotated by 90°
	db, cb := runSim(tst, sim(`"vertbcs" : [ { "tag":-1, "keys":["ux"], "funcs":["zero"] } ],
  "localsys" : [ { "tag":-1, "angle":90 } ]`))
	if db == nil {
		return
	}
	if db.Nodes[0].Rot == nil || da.Nodes[0].Rot != nil {
		tst.Errorf("local system must be set at supports only\n")
		return
	}
	chk.Int(tst, "steps", cb.Pers.Step, ca.Pers.Step)
	for i := range da.Parts {
		pa, pb := &da.Parts[i], &db.Parts[i]
		chk.Array(tst, io.Sf("u%d", i), 1e-9, pb.U, pa.U)
		chk.Array(tst, io.Sf("σ%d", i), 1e-6, pb.State.Sig, pa.State.Sig)
	}
	if da.Parts[0].U[1] >= 0 {
		tst.Errorf("material must settle under gravity. uy = %g\n", da.Parts[0].U[1])
		return
	}

	// nodal forces at supports are measured in the local system
	chk.Float64(tst, "Fext", 1e-9, cb.Diag.Fext[Mixture], ca.Diag.Fext[Mixture])
	chk.Float64(tst, "Fres", 1e-9, cb.Diag.Fres[Mixture], ca.Diag.Fres[Mixture])
}

func Test_partsat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("partsat01. saturation follows the retention curve")

	d, ctx := runSim(tst, `{
  "data" : { "matfile":"mpm.mat", "mshfile":"column.msh" },
  "calc" : { "phases":2, "partsat":true, "toldiverge":1e9 },
  "control" : { "tf":1, "dtout":1, "maxsteps":100 },
  "gravity" : { "g":10 },
  "vertbcs" : [
    { "tag":-1, "keys":["ux","uy","wx","wy"], "funcs":["zero","zero","zero","zero"] },
    { "tag":-2, "keys":["ux","wx"], "funcs":["zero","zero"] }
  ],
  "elemsdata" : [
    { "tag":-1, "mat":"silt", "npart":4 },
    { "tag":-2, "mat":"silt", "npart":4 }
  ]
}`)
	if d == nil {
		return
	}
	chk.Int(tst, "steps", ctx.Pers.Step, 100)
	mat := d.Mats.GetByName("silt")
	if mat.Reten == nil || mat.Conduct == nil || mat.Porous != nil {
		tst.Errorf("silt must have retention and conductivity models only\n")
		return
	}
	sl0 := retention.Update(mat.Reten, 0, mat.Pl0)
	io.Pforan("Sl0 = %v\n", sl0)
	if sl0 >= 1 {
		tst.Errorf("initial suction must give a partially saturated state. Sl0 = %g\n", sl0)
		return
	}
	changed := false
	for i := range d.Parts {
		p := &d.Parts[i]
		io.Pforan("point %d: pw = %v, Sl = %v, kl = %v\n", p.Id, p.Pw, p.Sl, p.Kl[1])
		chk.Float64(tst, "Sl", 1e-12, p.Sl, retention.Update(mat.Reten, 0, math.Max(p.Pw, 0)))
		chk.Float64(tst, "kl", 1e-15, p.Kl[1], mat.Conduct.Klr(p.Sl)*mat.Klsat[1])
		chk.Float64(tst, "MassW", 1e-12, p.MassW, p.Nf*p.Sl*p.RhoL*p.Vol)
		chk.Float64(tst, "MassG", 1e-17, p.MassG, 0)
		if math.Abs(p.Sl-sl0) > 1e-8 {
			changed = true
		}
	}
	if !changed {
		tst.Errorf("saturation must change with suction\n")
	}
}
