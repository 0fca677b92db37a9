// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Liquid implements rate-dependent liquid models:
//   newtonian:  μeff = μ
//   bingham:    μeff = μ + τy / γ̇
//   frictional: μeff = μ + max(0, p) tanφ / γ̇
// The volumetric response is given by the bulk modulus of the liquid.
// For γ̇ → 0, μeff is limited by μmax
type Liquid struct {
	Kind  Kind    // newtonian, bingham or frictional
	Kl    float64 // bulk modulus of liquid
	Mu    float64 // dynamic viscosity
	Tauy  float64 // Bingham yield stress
	Phi   float64 // friction angle [deg]
	Mumax float64 // maximum effective viscosity (regularisation)

	tanφ float64 // auxiliary
}

// add model to factory
func init() {
	allocators["newtonian"] = func() Model { return &Liquid{Kind: KindNewtonian} }
	allocators["bingham"] = func() Model { return &Liquid{Kind: KindBingham} }
	allocators["frictional"] = func() Model { return &Liquid{Kind: KindFrictional} }
}

// Init initialises model
func (o *Liquid) Init(ndim int, prms dbf.Params) (err error) {
	prms.Connect(&o.Kl, "Kl", "liquid model")
	prms.Connect(&o.Mu, "mu", "liquid model")
	for _, p := range prms {
		switch p.N {
		case "tauy":
			o.Tauy = p.V
		case "phi":
			o.Phi = p.V
		case "mumax":
			o.Mumax = p.V
		}
	}
	if o.Kl <= 0 {
		return chk.Err("bulk modulus of liquid must be positive. Kl=%g is invalid", o.Kl)
	}
	if o.Mu < 0 || o.Tauy < 0 {
		return chk.Err("viscosity and yield stress must be non-negative. mu=%g, tauy=%g are invalid", o.Mu, o.Tauy)
	}
	if o.Mumax <= 0 {
		o.Mumax = 1e3 * math.Max(o.Mu, 1e-3)
	}
	o.tanφ = math.Tan(o.Phi * math.Pi / 180.0)
	return
}

// GetPrms gets (an example) of parameters
func (o Liquid) GetPrms(example bool) dbf.Params {
	prms := []*dbf.P{
		&dbf.P{N: "Kl", V: 2.2e6},
		&dbf.P{N: "mu", V: 1e-6},
	}
	switch o.Kind {
	case KindBingham:
		prms = append(prms, &dbf.P{N: "tauy", V: 0.05})
	case KindFrictional:
		prms = append(prms, &dbf.P{N: "phi", V: 30})
	}
	return prms
}

// InitIntVars initialises internal (secondary) variables
func (o Liquid) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(0, 0)
	copy(s.Sig, σ)
	return
}

// Update updates stresses for given strain increment
//  The deviatoric stress is fully viscous: s = 2 μeff dev(ε̇)
func (o Liquid) Update(s *State, Δε []float64, dt float64) (err error) {
	s.ResetFlags()

	// pressure
	p, _ := Invariants(s.Sig)
	Δεv := Δε[0] + Δε[1] + Δε[2]
	σm := -p + o.Kl*Δεv

	// deviatoric strain rate
	for i := 0; i < NSIG; i++ {
		s.Sig[i] = 0
	}
	if dt > 0 {
		var edot [NSIG]float64
		for i := 0; i < 3; i++ {
			edot[i] = (Δε[i] - Δεv/3.0) / dt
			edot[3+i] = Δε[3+i] / (2.0 * dt)
		}
		γdot := 0.0
		for i := 0; i < 3; i++ {
			γdot += edot[i]*edot[i] + 2.0*edot[3+i]*edot[3+i]
		}
		γdot = math.Sqrt(2.0 * γdot)
		μeff := o.viscosity(σm, γdot)
		for i := 0; i < NSIG; i++ {
			s.Sig[i] = 2.0 * μeff * edot[i]
		}
	}
	for i := 0; i < 3; i++ {
		s.Sig[i] += σm
	}
	return
}

// Modulus returns the bulk modulus of the liquid
func (o Liquid) Modulus(s *State) float64 {
	return o.Kl
}

// Moduli returns the bulk modulus and a null shear modulus
func (o Liquid) Moduli() (K, G float64) { return o.Kl, 0 }

// viscosity computes the effective viscosity
func (o Liquid) viscosity(σm, γdot float64) (μeff float64) {
	var τy float64
	switch o.Kind {
	case KindBingham:
		τy = o.Tauy
	case KindFrictional:
		τy = math.Max(0, -σm) * o.tanφ
	}
	μeff = o.Mu
	if τy > 0 {
		if γdot*o.Mumax <= τy {
			return o.Mumax
		}
		μeff += τy / γdot
	}
	return math.Min(μeff, o.Mumax)
}

// Invariants returns the mean pressure p (compression positive) and the deviatoric stress q of σ
//  q = sqrt(3 J2) with J2 = ½ s:s and s = dev(σ); σ holds the shear components without the √2 factor
func Invariants(σ []float64) (p, q float64) {
	p = -(σ[0] + σ[1] + σ[2]) / 3.0
	s0, s1, s2 := σ[0]+p, σ[1]+p, σ[2]+p
	J2 := 0.5*(s0*s0+s1*s1+s2*s2) + σ[3]*σ[3] + σ[4]*σ[4] + σ[5]*σ[5]
	q = math.Sqrt(3.0 * J2)
	return
}
