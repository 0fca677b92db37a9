// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package porous implements models for porous media based on the Theory of Porous Media
//  Pressures are positive in compression; volumetric strains are positive in extension.
//  References:
//   [1] Pedroso DM (2015) A consistent u-p formulation for porous media with hysteresis.
//       Int Journal for Numerical Methods in Engineering, 101(8) 606-634
//       http://dx.doi.org/10.1002/nme.4808
//   [2] Yerro A, Alonso EE, Pinyol NM (2015) The material point method for unsaturated
//       soils. Géotechnique, 65(3), 201-217
package porous

import (
	"github.com/cpmech/gompm/mdl/conduct"
	"github.com/cpmech/gompm/mdl/fluid"
	"github.com/cpmech/gompm/mdl/retention"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// Model holds material parameters for porous media
type Model struct {

	// constants
	NmaxIt int     // max number iterations in SolveBalanceEquations
	Itol   float64 // iterations tolerance in SolveBalanceEquations
	SgMin  float64 // minimum gas saturation used in the storage term of gas
	ShowR  bool    // show residual values in SolveBalanceEquations

	// parameters
	Nf0   float64 // nf0: initial volume fraction of all fluids ~ porosity
	RhoS0 float64 // real (intrinsic) density of solids

	// derived
	Klsat []float64 // saturated liquid conductivities {klx, kly, klz}
	Kgsat []float64 // saturated gas conductivities {kgx, kgy, kgz}

	// auxiliary models
	Cnd conduct.Model   // liquid-gas conductivity models
	Lrm retention.Model // retention model
	Liq *fluid.Model    // liquid properties
	Gas *fluid.Model    // gas properties
}

// Init initialises this structure
//  Conductivities are given either directly {kl or klx,kly,klz; kg or kgx,kgy,kgz} or by
//  the intrinsic permeability kappa and the viscosities mul and mug:
//    kl = kappa ρl g / μl   and   kg = kappa ρg g / μg
func (o *Model) Init(prms dbf.Params, Cnd conduct.Model, Lrm retention.Model, Liq *fluid.Model, Gas *fluid.Model, grav float64) (err error) {

	// constants
	o.NmaxIt = 20
	o.Itol = 1e-10
	o.SgMin = 1e-6

	// read optional constants
	for _, p := range prms {
		switch p.N {
		case "NmaxIt":
			o.NmaxIt = int(p.V)
		case "Itol":
			o.Itol = p.V
		case "SgMin":
			o.SgMin = p.V
		case "ShowR":
			o.ShowR = p.V > 0
		}
	}

	// auxiliary models
	if Cnd == nil || Lrm == nil || Liq == nil || Gas == nil {
		return chk.Err("Cnd, Lrm, Liq and Gas models must be all non-nil\n")
	}
	o.Cnd = Cnd
	o.Lrm = Lrm
	o.Liq = Liq
	o.Gas = Gas

	// conductivities
	if grav < 1e-3 {
		return chk.Err("porous model: gravity constant of reference grav = %g is invalid", grav)
	}
	o.Klsat, err = SatConductivity(prms, "kl", "mul", Liq.R0, grav)
	if err != nil {
		return
	}
	o.Kgsat, err = SatConductivity(prms, "kg", "mug", Gas.R0, grav)
	if err != nil {
		return
	}

	// read other paramaters
	prms.Connect(&o.Nf0, "nf0", "porous model")
	prms.Connect(&o.RhoS0, "RhoS0", "porous model")

	// check
	if o.Nf0 < 0 || o.Nf0 >= 1 {
		return chk.Err("porous model: porosity nf0 = %g is invalid", o.Nf0)
	}
	if o.RhoS0 < 1e-3 {
		return chk.Err("porous model: intrinsic density of solids RhoS0 = %g is invalid", o.RhoS0)
	}
	return
}

// SatConductivity reads the saturated conductivity of a fluid. It is either computed from the
// intrinsic permeability kappa and the viscosity muKey as k = kappa ρ g / μ or given by
// the isotropic {key} or anisotropic {keyx, keyy, keyz} values
func SatConductivity(prms dbf.Params, key, muKey string, rho, grav float64) (k []float64, err error) {
	if κ := prms.Find("kappa"); κ != nil {
		μ := prms.Find(muKey)
		if μ == nil || μ.V <= 0 {
			return nil, chk.Err("porous model: positive viscosity '%s' must be given together with 'kappa'", muKey)
		}
		kk := κ.V * rho * grav / μ.V
		return []float64{kk, kk, kk}, nil
	}
	values, found := prms.GetValues([]string{key + "x", key + "y", key + "z"})
	if utl.AllTrue(found) {
		k = values
	} else {
		p := prms.Find(key)
		if p == nil {
			return nil, chk.Err("porous model: either '%s' (isotropic) or ['%sx', '%sy', '%sz'] must be given in database of material parameters", key, key, key, key)
		}
		k = []float64{p.V, p.V, p.V}
	}
	KMIN := 1e-14
	for i, v := range k {
		if v < KMIN {
			return nil, chk.Err("porous model: %s[%d] = %g must be greater than or equal to %g", key, i, v, KMIN)
		}
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Model) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{
			&dbf.P{N: "nf0", V: 0.3},   // [-]
			&dbf.P{N: "RhoS0", V: 2.7}, // [Mg/m³]
			&dbf.P{N: "kl", V: 1e-3},   // [m/s]
			&dbf.P{N: "kg", V: 1e-2},   // [m/s]
		}
	}
	return dbf.Params{
		&dbf.P{N: "nf0", V: o.Nf0},
		&dbf.P{N: "RhoS0", V: o.RhoS0},
	}
}

// NewState creates and initialises a new state structure
func (o Model) NewState(pl, pg float64) (s *State) {
	s = &State{
		Nf:   o.Nf0,
		Sl:   o.Saturation(pg - pl),
		RhoL: o.Liq.Density(pl),
		RhoG: o.Gas.Density(pg),
		Pl:   pl,
		Pg:   pg,
	}
	return
}

// Saturation returns the liquid saturation for capillary pressure pc
func (o Model) Saturation(pc float64) float64 {
	if pc <= 0 {
		return o.Lrm.SlMax()
	}
	return retention.Update(o.Lrm, 0, pc)
}

// Conductivities returns the liquid and gas conductivities for liquid saturation sl
func (o Model) Conductivities(kl, kg []float64, sl float64) {
	klr := o.Cnd.Klr(sl)
	kgr := o.Cnd.Kgr(1.0 - sl)
	for i := 0; i < 3; i++ {
		kl[i] = klr * o.Klsat[i]
		kg[i] = kgr * o.Kgsat[i]
	}
}
