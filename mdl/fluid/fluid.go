// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fluid implements models for fluid density
package fluid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model implements a model to compute pressure (p) and intrinsic density (R) of a fluid.
// Pressures are positive in compression. The model is:
//   R(p) = R0 + C・(p - p0)   thus   dR/dp = C
// Liquids may cavitate when the pressure drops below -Tcav
type Model struct {

	// material data
	R0   float64 // intrinsic density corresponding to p0
	P0   float64 // pressure corresponding to R0
	C    float64 // compressibility coefficient; e.g. R0/Kbulk or M/(R・θ)
	K    float64 // bulk modulus = R0/C
	Tcav float64 // cavitation threshold (magnitude of tensile pressure)
	Gas  bool    // is gas instead of liquid?
}

// Init initialises this structure
//  Note: the compressibility is given either by C or by the bulk modulus K
func (o *Model) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "R0":
			o.R0 = p.V
		case "P0":
			o.P0 = p.V
		case "C":
			o.C = p.V
		case "K":
			o.K = p.V
		case "Tcav":
			o.Tcav = p.V
		case "gas":
			o.Gas = p.V > 0
		}
	}
	if o.R0 <= 0 {
		return chk.Err("intrinsic density of fluid must be positive. R0=%g is invalid", o.R0)
	}
	switch {
	case o.K > 0:
		o.C = o.R0 / o.K
	case o.C > 0:
		o.K = o.R0 / o.C
	default:
		return chk.Err("fluid model needs a positive compressibility C or bulk modulus K")
	}
	if !o.Gas && o.Tcav >= o.K {
		return chk.Err("cavitation threshold must be smaller than bulk modulus. Tcav=%g ≥ K=%g", o.Tcav, o.K)
	}
	return
}

// GetPrms gets (an example of) parameters
//  Input:
//   example -- returns example of parameters; othewise returs current parameters
//  Note:
//   Gas variable is used to return dry air properties instead of water
func (o Model) GetPrms(example bool) dbf.Params {
	if example {
		if o.Gas {
			return dbf.Params{ // dry air
				&dbf.P{N: "R0", V: 0.0012}, // [Mg/m³]
				&dbf.P{N: "P0", V: 0.0},    // [kPa]
				&dbf.P{N: "C", V: 1.17e-5}, // [Mg/(m³・kPa)]
				&dbf.P{N: "gas", V: 1},     // [-]
			}
		}
		return dbf.Params{ // water
			&dbf.P{N: "R0", V: 1.0},    // [Mg/m³]
			&dbf.P{N: "P0", V: 0.0},    // [kPa]
			&dbf.P{N: "K", V: 2.2e6},   // [kPa]
			&dbf.P{N: "Tcav", V: 100},  // [kPa]
			&dbf.P{N: "gas", V: 0},     // [-]
		}
	}
	var gas float64
	if o.Gas {
		gas = 1
	}
	return dbf.Params{
		&dbf.P{N: "R0", V: o.R0},
		&dbf.P{N: "P0", V: o.P0},
		&dbf.P{N: "C", V: o.C},
		&dbf.P{N: "Tcav", V: o.Tcav},
		&dbf.P{N: "gas", V: gas},
	}
}

// Density computes the intrinsic density for pressure p; the result is never negative
func (o Model) Density(p float64) float64 {
	return math.Max(o.R0+o.C*(p-o.P0), 0)
}

// ThresholdDensity returns the density of a liquid at the cavitation threshold
//   Rthr = R0 (1 - Tcav/K)
func (o Model) ThresholdDensity() float64 {
	return o.R0 * (1.0 - o.Tcav/o.K)
}

// LiquidDensity updates the density R of a liquid for a volumetric strain increment Δεv.
// The density is integrated as R/(1+Δεv) if the pressure p is above the cavitation
// pressure and the point is not on a partially filled free surface. Otherwise it is
// set to the threshold density
func (o Model) LiquidDensity(R, Δεv, p float64, free bool) float64 {
	if p > -o.Tcav && !free && 1.0+Δεv > 0 {
		return R / (1.0 + Δεv)
	}
	return o.ThresholdDensity()
}
