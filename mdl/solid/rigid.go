// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import "github.com/cpmech/gosl/fun/dbf"

// Rigid implements a rigid body: stresses never change
type Rigid struct{}

// add model to factory
func init() {
	allocators["rigid"] = func() Model { return new(Rigid) }
}

// Init initialises model
func (o *Rigid) Init(ndim int, prms dbf.Params) (err error) { return }

// GetPrms gets (an example) of parameters
func (o Rigid) GetPrms(example bool) dbf.Params { return nil }

// InitIntVars initialises internal (secondary) variables
func (o Rigid) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(0, 0)
	copy(s.Sig, σ)
	return
}

// Update does nothing
func (o Rigid) Update(s *State, Δε []float64, dt float64) (err error) {
	s.ResetFlags()
	return
}

// Modulus returns zero; rigid points do not limit the time step
func (o Rigid) Modulus(s *State) float64 { return 0 }
