// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gompm/mdl/conduct"
	"github.com/cpmech/gompm/mdl/fluid"
	"github.com/cpmech/gompm/mdl/porous"
	"github.com/cpmech/gompm/mdl/retention"
	"github.com/cpmech/gompm/mdl/solid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// material types
const (
	MatDry         = "dry"         // 1-phase solid
	MatUndrained   = "undrained"   // 1-phase solid with undrained effective stress analysis
	MatSaturated   = "saturated"   // 2-phase solid + liquid
	MatUnsaturated = "unsaturated" // 3-phase solid + liquid + gas
	MatLiquid      = "liquid"      // liquid material point
)

// SubModel holds the name and parameters of an auxiliary model
type SubModel struct {
	Model string     `json:"model"` // name of model; e.g. "vg", "mualem"
	Prms  dbf.Params `json:"prms"`  // parameters
}

// Material holds material data
type Material struct {

	// input
	Name  string     `json:"name"`  // name of material
	Type  string     `json:"type"`  // type of material; e.g. "dry", "saturated", "liquid"
	Model string     `json:"model"` // name of constitutive model; e.g. "mc", "bingham"
	Extra string     `json:"extra"` // extra information; e.g. "!fcn:myumat"
	Prms  dbf.Params `json:"prms"`  // parameters of constitutive model
	Por   dbf.Params `json:"por"`   // porous media parameters: nf0, RhoS0, kl, kg, kappa, mul, mug, pl0, pg0
	Liq   dbf.Params `json:"liq"`   // liquid parameters: R0, K or C, Tcav
	Gas   dbf.Params `json:"gas"`   // gas parameters: R0, K or C
	Lrm   *SubModel  `json:"lrm"`   // liquid retention model
	Cnd   *SubModel  `json:"cnd"`   // conductivity model

	// derived
	Index   int             // 1-based index in database
	Kind    solid.Kind      // kind of constitutive model
	Phases  int             // number of phases carried by a material point of this material
	Solid   solid.Model     // constitutive model
	Liquid  *fluid.Model    // liquid model
	GasMdl  *fluid.Model    // gas model
	Reten   retention.Model // retention model
	Conduct conduct.Model   // conductivity model
	Porous  *porous.Model   // 3-phase balance equations

	// derived: physical constants
	RhoS                  float64   // intrinsic density of solids
	RhoL                  float64   // intrinsic density of liquid
	RhoG                  float64   // intrinsic density of gas
	Nf0                   float64   // initial porosity
	Sl0                   float64   // initial degree of saturation
	Pl0                   float64   // initial liquid pressure (tension positive)
	Pg0                   float64   // initial gas pressure (tension positive)
	K                     float64   // bulk modulus of skeleton
	G                     float64   // shear modulus of skeleton
	M                     float64   // constrained modulus K + 4/3 G
	Kl                    float64   // bulk modulus of liquid
	Kg                    float64   // bulk modulus of gas
	Klsat                 []float64 // saturated liquid conductivities [3]
	Kgsat                 []float64 // saturated gas conductivities [3]
	DensityMixture        float64   // (1-n)ρs + n Sl ρl + n (1-Sl) ρg
	FluidThresholdDensity float64   // ρl (1 - Tcav/Kl)
}

// MatsData holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {

	// input
	Functions FuncsData `json:"functions"` // all functions
	Materials MatsData  `json:"materials"` // all materials

	// derived
	Warnings []string // messages about unrealistic values
}

// ReadMat reads all materials data from a .mat JSON file
func ReadMat(dir, fn string, ndim int, grav float64) (mdb *MatDb, err error) {
	b, err := os.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("cannot read materials file %q:\n%v", fn, err)
	}
	return LoadMaterials(b, ndim, grav)
}

// LoadMaterials decodes and initialises all materials. grav is the reference gravity
// acceleration used to compute conductivities from intrinsic permeabilities
func LoadMaterials(b []byte, ndim int, grav float64) (mdb *MatDb, err error) {
	mdb = new(MatDb)
	err = json.Unmarshal(b, mdb)
	if err != nil {
		return nil, chk.Err("cannot unmarshal materials:\n%v", err)
	}
	if len(mdb.Materials) == 0 {
		return nil, chk.Err("materials database must have at least one material")
	}
	names := make(map[string]bool)
	for i, m := range mdb.Materials {
		if names[m.Name] {
			return nil, chk.Err("material name %q is repeated", m.Name)
		}
		names[m.Name] = true
		m.Index = i + 1
		err = m.init(ndim, grav)
		if err != nil {
			return nil, chk.Err("cannot initialise material %q:\n%v", m.Name, err)
		}
		mdb.check(m)
	}
	return
}

// Get returns the material with 1-based index
//  Note: returns nil if index is out of range
func (o MatDb) Get(index int) *Material {
	if index < 1 || index > len(o.Materials) {
		return nil
	}
	return o.Materials[index-1]
}

// GetByName returns a material by name
//  Note: returns nil if not found
func (o MatDb) GetByName(name string) *Material {
	for _, m := range o.Materials {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// init allocates models and computes derived quantities
func (o *Material) init(ndim int, grav float64) (err error) {

	// constitutive model
	o.Kind, err = solid.KindOf(o.Model)
	if err != nil {
		return
	}
	o.Solid, err = solid.New(o.Model)
	if err != nil {
		return
	}
	err = o.Solid.Init(ndim, o.Prms)
	if err != nil {
		return
	}
	if b, ok := o.Solid.(solid.Binder); ok {
		name, found := io.Keycode(o.Extra, "fcn")
		if !found {
			return chk.Err("external model requires '!fcn:name' in extra field")
		}
		err = b.Bind(name)
		if err != nil {
			return
		}
		if !b.Bound() {
			return chk.Err("external model of material %q is not bound to %q", o.Name, name)
		}
	}
	if e, ok := o.Solid.(solid.Elastic); ok {
		o.K, o.G = e.Moduli()
	}
	s0, err := o.Solid.InitIntVars(make([]float64, solid.NSIG))
	if err != nil {
		return
	}
	o.M = o.Solid.Modulus(s0)

	// phases
	switch o.Type {
	case MatDry:
		o.Phases = 1
	case MatUndrained, MatLiquid:
		o.Phases = 1
		if o.Type == MatLiquid && !o.Kind.IsLiquid() {
			return chk.Err("liquid materials need a liquid model. %q is invalid", o.Model)
		}
	case MatSaturated:
		o.Phases = 2
	case MatUnsaturated:
		o.Phases = 3
	default:
		return chk.Err("material type %q is incorrect; options are %q, %q, %q, %q and %q", o.Type, MatDry, MatUndrained, MatSaturated, MatUnsaturated, MatLiquid)
	}

	// fluids
	if o.Type != MatDry {
		if len(o.Liq) == 0 {
			o.Liq = new(fluid.Model).GetPrms(true)
		}
		o.Liquid = new(fluid.Model)
		err = o.Liquid.Init(o.Liq)
		if err != nil {
			return
		}
		o.RhoL, o.Kl = o.Liquid.R0, o.Liquid.K
		o.FluidThresholdDensity = o.Liquid.ThresholdDensity()
		if o.FluidThresholdDensity <= 0 {
			return chk.Err("threshold density of liquid must be positive. Rthr=%g is invalid", o.FluidThresholdDensity)
		}
	}
	if o.Type == MatUnsaturated {
		o.GasMdl = &fluid.Model{Gas: true}
		if len(o.Gas) == 0 {
			o.Gas = o.GasMdl.GetPrms(true)
		}
		err = o.GasMdl.Init(o.Gas)
		if err != nil {
			return
		}
		o.RhoG, o.Kg = o.GasMdl.R0, o.GasMdl.K
	}

	// liquid material points carry only the liquid
	if o.Type == MatLiquid {
		o.Nf0, o.Sl0 = 1, 1
		o.DensityMixture = o.RhoL
		return
	}

	// porous media
	vals, found := o.Por.GetValues([]string{"nf0", "RhoS0"})
	if !found[0] || !found[1] {
		return chk.Err("'nf0' and 'RhoS0' must be given in \"por\" parameters")
	}
	o.Nf0, o.RhoS = vals[0], vals[1]
	if o.Nf0 < 0 || o.Nf0 >= 1 {
		return chk.Err("porosity nf0 = %g is invalid", o.Nf0)
	}
	if o.RhoS <= 0 {
		return chk.Err("intrinsic density of solids RhoS0 = %g is invalid", o.RhoS)
	}
	if p := o.Por.Find("pl0"); p != nil {
		o.Pl0 = -p.V
	}
	if p := o.Por.Find("pg0"); p != nil {
		o.Pg0 = -p.V
	}
	switch o.Type {
	case MatDry:
		o.Sl0 = 0
	case MatUndrained:
		o.Sl0 = 1
	case MatSaturated:
		o.Sl0 = 1
		o.Klsat, err = porous.SatConductivity(o.Por, "kl", "mul", o.RhoL, grav)
		if err != nil {
			return
		}

		// retention and conductivity models of partially saturated 2-phase analyses. The
		// saturation of material points follows the retention curve only if "partsat" is on
		if o.Lrm != nil || o.Cnd != nil {
			err = o.initRetention()
			if err != nil {
				return
			}
		}
	case MatUnsaturated:
		err = o.initRetention()
		if err != nil {
			return
		}
		o.Porous = new(porous.Model)
		err = o.Porous.Init(o.Por, o.Conduct, o.Reten, o.Liquid, o.GasMdl, grav)
		if err != nil {
			return
		}
		o.Klsat, o.Kgsat = o.Porous.Klsat, o.Porous.Kgsat
		o.Sl0 = o.Porous.Saturation(o.Pl0 - o.Pg0)
	}
	n, sl := o.Nf0, o.Sl0
	o.DensityMixture = (1-n)*o.RhoS + n*sl*o.RhoL + n*(1-sl)*o.RhoG
	return
}

// initRetention allocates the liquid retention and the conductivity models
func (o *Material) initRetention() (err error) {
	if o.Lrm == nil || o.Cnd == nil {
		return chk.Err("material %q needs both \"lrm\" and \"cnd\" models", o.Name)
	}
	o.Reten, err = retention.New(o.Lrm.Model)
	if err != nil {
		return
	}
	err = o.Reten.Init(o.Lrm.Prms)
	if err != nil {
		return
	}
	o.Conduct, err = conduct.New(o.Cnd.Model)
	if err != nil {
		return
	}
	return o.Conduct.Init(o.Cnd.Prms)
}

// check collects warnings about unrealistic parameters
func (o *MatDb) check(m *Material) {
	warn := func(msg string, args ...interface{}) {
		s := io.Sf("material %q: ", m.Name) + io.Sf(msg, args...)
		io.Pfyel("warning: %s\n", s)
		o.Warnings = append(o.Warnings, s)
	}
	if m.Type != MatLiquid {
		if m.RhoS > 5 || m.RhoS < 0.5 {
			warn("intrinsic density of solids RhoS0 = %g [Mg/m³] is unrealistic", m.RhoS)
		}
		if m.Nf0 > 0.9 {
			warn("porosity nf0 = %g is unrealistic", m.Nf0)
		}
	}
	if m.K > 0 && m.G > 0 {
		ν := (3*m.K - 2*m.G) / (2 * (3*m.K + m.G))
		if ν >= 0.49 {
			warn("Poisson's coefficient ν = %g is nearly incompressible", ν)
		}
	}
}

// String prints one material
func (o *Material) String() string {
	return io.Sf("    {\n      \"name\"  : %q,\n      \"type\"  : %q,\n      \"model\" : %q,\n      \"extra\" : %q,\n      \"prms\"  : [\n%v\n      ]\n    }", o.Name, o.Type, o.Model, o.Extra, o.Prms)
}

// String prints materials
func (o MatsData) String() string {
	l := "  \"materials\" : [\n"
	for i, m := range o {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("%v", m)
	}
	l += "\n  ]"
	return l
}

// String outputs all materials
func (o MatDb) String() string {
	return io.Sf("{\n%v,\n%v\n}", o.Functions, o.Materials)
}
