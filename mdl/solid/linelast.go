// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// LinElast implements isotropic linear elasticity
type LinElast struct {
	E  float64 // Young's modulus
	Nu float64 // Poisson's coefficient
	K  float64 // bulk modulus
	G  float64 // shear modulus
	l  float64 // Lamé's coefficient λ
}

// add model to factory
func init() {
	allocators["lin-elast"] = func() Model { return new(LinElast) }
}

// Init initialises model
//  Note: either {E, nu} or {K, G} must be given
func (o *LinElast) Init(ndim int, prms dbf.Params) (err error) {
	var hasE, hasNu, hasK, hasG bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, hasE = p.V, true
		case "nu":
			o.Nu, hasNu = p.V, true
		case "K":
			o.K, hasK = p.V, true
		case "G":
			o.G, hasG = p.V, true
		}
	}
	return o.setModuli(hasE, hasNu, hasK, hasG)
}

// setModuli computes the missing moduli
func (o *LinElast) setModuli(hasE, hasNu, hasK, hasG bool) error {
	switch {
	case hasE && hasNu:
		if o.E <= 0 {
			return chk.Err("Young's modulus must be positive. E=%g is invalid", o.E)
		}
		if o.Nu <= -1 || o.Nu >= 0.5 {
			return chk.Err("Poisson's coefficient must be in ]-1, 0.5[. nu=%g is invalid", o.Nu)
		}
		o.K = o.E / (3.0 * (1.0 - 2.0*o.Nu))
		o.G = o.E / (2.0 * (1.0 + o.Nu))
	case hasK && hasG:
		if o.K <= 0 || o.G <= 0 {
			return chk.Err("bulk and shear moduli must be positive. K=%g and G=%g are invalid", o.K, o.G)
		}
		o.E = 9.0 * o.K * o.G / (3.0*o.K + o.G)
		o.Nu = (3.0*o.K - 2.0*o.G) / (6.0*o.K + 2.0*o.G)
	default:
		return chk.Err("either {E, nu} or {K, G} must be given to elastic model")
	}
	o.l = o.K - 2.0*o.G/3.0
	return nil
}

// GetPrms gets (an example) of parameters
func (o LinElast) GetPrms(example bool) dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 1e4},
		&dbf.P{N: "nu", V: 0.3},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o LinElast) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(0, 0)
	copy(s.Sig, σ)
	return
}

// Update updates stresses for given strain increment
func (o LinElast) Update(s *State, Δε []float64, dt float64) (err error) {
	s.ResetFlags()
	o.AddElastic(s.Sig, Δε)
	return
}

// Modulus returns the constrained modulus
func (o LinElast) Modulus(s *State) float64 {
	return o.K + 4.0*o.G/3.0
}

// Moduli returns the bulk and shear moduli
func (o LinElast) Moduli() (K, G float64) { return o.K, o.G }

// AddElastic adds the elastic stress increment D:Δε to σ
func (o LinElast) AddElastic(σ, Δε []float64) {
	Δεv := Δε[0] + Δε[1] + Δε[2]
	for i := 0; i < 3; i++ {
		σ[i] += o.l*Δεv + 2.0*o.G*Δε[i]
		σ[3+i] += o.G * Δε[3+i]
	}
}
