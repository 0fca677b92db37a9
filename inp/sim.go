// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from (.sim), (.mat) and (.msh) JSON files
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// formulations
const (
	SinglePoint = "1pt" // solid and fluids share one set of material points
	DoublePoint = "2pt" // solid and liquid are discretised by independent sets (two layers)
)

// Data holds global data for simulations
type Data struct {
	Desc      string `json:"desc"`      // description of simulation
	Matfile   string `json:"matfile"`   // materials file path
	Mshfile   string `json:"mshfile"`   // mesh file path
	DirOut    string `json:"dirout"`    // directory for output; e.g. /tmp/gompm
	Encoder   string `json:"encoder"`   // encoder name; e.g. "gob" "json"
	ShowEvery int    `json:"showevery"` // print progress every ShowEvery steps; 0 means never
}

// CalcData holds the global calculation options. They are fixed for the whole run
type CalcData struct {

	// formulation
	Formulation string `json:"formulation"` // "1pt" or "2pt"
	Phases      int    `json:"phases"`      // number of phases: 1, 2 or 3
	PartSat     bool   `json:"partsat"`     // partially saturated 2-phase flow (retention curve in the pressure equation)
	QuasiStatic bool   `json:"quasistatic"` // quasi-static with damping; pressures come from the previous stored values
	UpdMesh     bool   `json:"updmesh"`     // updated Lagrangian mesh instead of fixed background mesh
	LargeDef    bool   `json:"largedef"`    // Jaumann objective stress rate

	// features
	Smoothing bool    `json:"smoothing"` // volumetric strain smoothing per element
	BulkVisc  bool    `json:"bulkvisc"`  // bulk viscosity damping
	BulkL1    float64 `json:"bulkl1"`    // linear bulk viscosity coefficient
	BulkL2    float64 `json:"bulkl2"`    // quadratic bulk viscosity coefficient
	Damping   float64 `json:"damping"`   // local (Cundall) damping factor
	Mixed     bool    `json:"mixed"`     // mixed integration: fully filled elements use one representative point
	FreeSurf  float64 `json:"freesurf"`  // filling ratio below which liquid points are on the free surface
	TgravZero float64 `json:"tgravzero"` // pressure increments are zero before this time (gravity phase)

	// time step
	Courant float64 `json:"courant"` // Courant factor
	DtMin   float64 `json:"dtmin"`   // minimum time step

	// convergence
	TolForce   float64 `json:"tolforce"`   // tolerance on out-of-balance force ratio (quasi-static)
	TolEnergy  float64 `json:"tolenergy"`  // tolerance on kinetic energy ratio (quasi-static)
	TolDiverge float64 `json:"toldiverge"` // tolerance on negative energy dissipation

	// parallelism
	Workers int `json:"workers"` // number of goroutines for element loops
}

// TimeControl holds data for defining the simulation time stepping
type TimeControl struct {
	Tf       float64 `json:"tf"`       // final time
	Dt       float64 `json:"dt"`       // initial time step size
	DtOut    float64 `json:"dtout"`    // time step size for output
	MaxSteps int     `json:"maxsteps"` // maximum number of steps; 0 means unlimited
}

// GravData holds gravity data
type GravData struct {
	G   float64 `json:"g"`   // gravity acceleration (positive constant)
	Fcn string  `json:"fcn"` // multiplier function of time; e.g. a ramp

	// derived
	Func dbf.T `json:"-"` // multiplier
}

// VertBc holds prescribed velocities at vertices
//  Keys: ux, uy, uz (solid); wx, wy, wz (water); gx, gy, gz (gas). The function gives
//  the prescribed velocity; "zero" means fixed
type VertBc struct {
	Tag   int      `json:"tag"`   // vertex tag
	Keys  []string `json:"keys"`  // prescribed components
	Funcs []string `json:"funcs"` // name of functions

	// derived
	Fcns []dbf.T `json:"-"` // functions
}

// LocalSys holds a local coordinate system at vertices
type LocalSys struct {
	Tag    int       `json:"tag"`    // vertex tag
	Angle  float64   `json:"angle"`  // rotation about z in degrees
	Cyl    bool      `json:"cyl"`    // cylindrical system; angle computed from position relative to centre
	Centre []float64 `json:"centre"` // centre of cylindrical system
}

// EntityData holds data of entities, i.e. groups of material points with their own kinematic field
type EntityData struct {
	Id    int      `json:"id"`    // entity id (0-based)
	Hard  bool     `json:"hard"`  // hard entity: velocities are prescribed on the material points
	Keys  []string `json:"keys"`  // prescribed velocity components ux, uy, uz
	Funcs []string `json:"funcs"` // name of functions

	// derived
	Fcns []dbf.T `json:"-"` // functions
}

// ElemData holds element data
type ElemData struct {
	Tag    int    `json:"tag"`    // cell tag
	Mat    string `json:"mat"`    // material name
	Npart  int    `json:"npart"`  // number of material points per cell; 0 means empty
	Entity int    `json:"entity"` // entity id
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data          `json:"data"`      // stores global simulation data
	Calc      CalcData      `json:"calc"`      // global calculation options
	Control   TimeControl   `json:"control"`   // time control
	Functions FuncsData     `json:"functions"` // stores all functions
	Gravity   GravData      `json:"gravity"`   // gravity
	VertBcs   []*VertBc     `json:"vertbcs"`   // prescribed velocities at vertices
	LocalSys  []*LocalSys   `json:"localsys"`  // local coordinate systems
	Entities  []*EntityData `json:"entities"`  // entities
	ElemsData []*ElemData   `json:"elemsdata"` // elements data

	// derived
	DirOut    string  `json:"-"` // directory to save results
	Key       string  `json:"-"` // simulation key; e.g. mysim01.sim => mysim01
	EncType   string  `json:"-"` // encoder type
	Ndim      int     `json:"-"` // space dimension
	GravRef   float64 `json:"-"` // reference gravity used to convert permeabilities into conductivities
	Msh       *Mesh   `json:"-"` // mesh
	MatModels *MatDb  `json:"-"` // materials and models
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath string, erasePrev, createDirOut bool) (o *Simulation, err error) {
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q", simfilepath)
	}
	dir := os.ExpandEnv(filepath.Dir(simfilepath))
	o, err = LoadSim(b, dir, io.FnKey(filepath.Base(simfilepath)))
	if err != nil {
		return nil, err
	}

	// create directory
	if createDirOut {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			return nil, chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
	}

	// erase previous simulation results
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, o.Key))
	}
	return
}

// LoadSim decodes simulation data. Mesh and materials files are read from dir
func LoadSim(b []byte, dir, key string) (o *Simulation, err error) {

	// decode
	o = new(Simulation)
	o.SetDefault()
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal simulation file:\n%v", err)
	}
	o.Key = key

	// output directory and encoder
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/gompm/" + key
	}
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// options
	err = o.PostProcess()
	if err != nil {
		return nil, err
	}

	// mesh
	o.Msh, err = ReadMsh(dir, o.Data.Mshfile, 0)
	if err != nil {
		return nil, err
	}
	o.Ndim = o.Msh.Ndim

	// materials
	o.GravRef = o.Gravity.G
	if o.GravRef <= 0 {
		o.GravRef = 10
	}
	o.MatModels, err = ReadMat(dir, o.Data.Matfile, o.Ndim, o.GravRef)
	if err != nil {
		return nil, err
	}
	nent := o.NumEntities()
	for _, ed := range o.ElemsData {
		m := o.MatModels.GetByName(ed.Mat)
		if m == nil {
			return nil, chk.Err("cannot find material %q of cells with tag %d", ed.Mat, ed.Tag)
		}
		if m.Phases > o.Calc.Phases {
			return nil, chk.Err("material %q needs %d phases but the calculation has %d", m.Name, m.Phases, o.Calc.Phases)
		}
		if ed.Entity < 0 || ed.Entity >= nent {
			return nil, chk.Err("entity %d of cells with tag %d is invalid", ed.Entity, ed.Tag)
		}
	}

	// functions
	o.Gravity.Func = Cte(1)
	if o.Gravity.Fcn != "" {
		o.Gravity.Func, err = o.Functions.Get(o.Gravity.Fcn)
		if err != nil {
			return nil, err
		}
	}
	for _, bc := range o.VertBcs {
		if len(bc.Keys) != len(bc.Funcs) {
			return nil, chk.Err("vertex boundary condition with tag %d must have the same number of keys and functions", bc.Tag)
		}
		bc.Fcns, err = o.getFuncs(bc.Funcs)
		if err != nil {
			return nil, err
		}
	}
	for _, ent := range o.Entities {
		if len(ent.Keys) != len(ent.Funcs) {
			return nil, chk.Err("entity %d must have the same number of keys and functions", ent.Id)
		}
		ent.Fcns, err = o.getFuncs(ent.Funcs)
		if err != nil {
			return nil, err
		}
	}
	return
}

// NumEntities returns the number of entities
func (o Simulation) NumEntities() (n int) {
	n = 1
	for _, ent := range o.Entities {
		if ent.Id+1 > n {
			n = ent.Id + 1
		}
	}
	return
}

// Etag2data returns the ElemData corresponding to element tag
//  Note: returns nil if not found
func (o Simulation) Etag2data(etag int) *ElemData {
	for _, edat := range o.ElemsData {
		if edat.Tag == etag {
			return edat
		}
	}
	return nil
}

// getFuncs returns functions by name
func (o Simulation) getFuncs(names []string) (fcns []dbf.T, err error) {
	fcns = make([]dbf.T, len(names))
	for i, name := range names {
		fcns[i], err = o.Functions.Get(name)
		if err != nil {
			return
		}
	}
	return
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets defaults values
func (o *Simulation) SetDefault() {
	o.Data.ShowEvery = 100
	o.Calc.Formulation = SinglePoint
	o.Calc.Phases = 1
	o.Calc.BulkL1 = 0.06
	o.Calc.BulkL2 = 1.2
	o.Calc.FreeSurf = 0.9
	o.Calc.Courant = 0.98
	o.Calc.DtMin = 1e-10
	o.Calc.TolForce = 0.01
	o.Calc.TolEnergy = 0.01
	o.Calc.TolDiverge = 1e-3
	o.Calc.Workers = 1
	o.Control.Tf = 1
	o.Control.Dt = 1e-4
}

// PostProcess checks and fixes values after decoding
func (o *Simulation) PostProcess() (err error) {
	c := &o.Calc
	if c.Formulation != SinglePoint && c.Formulation != DoublePoint {
		return chk.Err("formulation %q is invalid; options are %q and %q", c.Formulation, SinglePoint, DoublePoint)
	}
	if c.Phases < 1 || c.Phases > 3 {
		return chk.Err("number of phases must be 1, 2 or 3. %d is invalid", c.Phases)
	}
	if c.Formulation == DoublePoint && c.Phases != 2 {
		return chk.Err("the double point formulation requires 2 phases")
	}
	if c.Courant <= 0 || c.Courant > 1 {
		return chk.Err("Courant factor must be in ]0, 1]. %g is invalid", c.Courant)
	}
	if c.Damping < 0 || c.Damping >= 1 {
		return chk.Err("local damping factor must be in [0, 1[. %g is invalid", c.Damping)
	}
	if c.DtMin <= 0 {
		c.DtMin = 1e-10
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if o.Control.Tf <= 0 {
		o.Control.Tf = 1
	}
	o.Control.Dt = utl.Max(o.Control.Dt, c.DtMin)
	if o.Control.DtOut < o.Control.Dt {
		o.Control.DtOut = o.Control.Dt
	}
	return
}
