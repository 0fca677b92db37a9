// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements constitutive models for material points
//  Stress and strain are stored as 6-component vectors:
//   σ = {σxx, σyy, σzz, σxy, σyz, σzx}
//   ε = {εxx, εyy, εzz, γxy, γyz, γzx}  (engineering shear strains)
//  Tension is positive.
package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// NSIG is the number of stress/strain components
const NSIG = 6

// Kind tags the constitutive model families
type Kind int

// constitutive model kinds
const (
	KindUnknown Kind = iota
	KindLinElast
	KindMohrCoulomb
	KindMohrCoulombSS
	KindBingham
	KindFrictional
	KindNewtonian
	KindRigid
	KindExternal
)

// kindNames maps model names to kinds
var kindNames = map[string]Kind{
	"lin-elast":  KindLinElast,
	"mc":         KindMohrCoulomb,
	"mc-ss":      KindMohrCoulombSS,
	"bingham":    KindBingham,
	"frictional": KindFrictional,
	"newtonian":  KindNewtonian,
	"rigid":      KindRigid,
	"external":   KindExternal,
}

// String returns the registry name of kind
func (k Kind) String() string {
	for name, kk := range kindNames {
		if kk == k {
			return name
		}
	}
	return "unknown"
}

// IsLiquid tells whether models of this kind describe a liquid
func (k Kind) IsLiquid() bool {
	return k == KindBingham || k == KindFrictional || k == KindNewtonian
}

// KindOf returns the kind corresponding to a model name
func KindOf(name string) (Kind, error) {
	if k, ok := kindNames[name]; ok {
		return k, nil
	}
	return KindUnknown, chk.Err("model %q is not available in 'solid' database", name)
}

// Model defines the interface for constitutive models of material points
type Model interface {
	Init(ndim int, prms dbf.Params) error               // initialises model
	GetPrms(example bool) dbf.Params                    // gets (an example) of parameters
	InitIntVars(σ []float64) (*State, error)            // initialises AND allocates internal (secondary) variables
	Update(s *State, Δε []float64, dt float64) error    // updates stresses for given strain increment
	Modulus(s *State) float64                           // unloading (constrained) modulus M = K + 4/3 G
}

// Elastic defines models with isotropic elastic moduli
type Elastic interface {
	Moduli() (K, G float64) // bulk and shear moduli
}

// Binder defines models that must be bound to an external routine before use
type Binder interface {
	Bind(name string) error // binds model to routine registered under name
	Bound() bool            // tells whether the model is bound
}

// New returns new solid model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'solid' database", name)
	}
	return allocator(), nil
}

// allocators holds all available solid models; modelname => allocator
var allocators = map[string]func() Model{}
