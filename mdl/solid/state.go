// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

// State holds the constitutive state of one integration point
type State struct {

	// essential
	Sig []float64 // σ: current effective Cauchy stress [NSIG]

	// for plasticity (if len(α) > 0)
	Alp          []float64 // α: internal variables of rate type [nalp]
	EpsP         []float64 // plastic strains [NSIG]
	Dgam         float64   // Δγ: increment of Lagrange multiplier (for plasticity only)
	Loading      bool      // elastoplastic loading flag
	ApexReturn   bool      // return-to-apex
	TensionCut   bool      // tension cut-off was activated
	NegativeDgam bool      // a negative plastic multiplier was found and corrected

	// for external models
	Ext []float64 // state variables of external routines [NSTATEV]
}

// NewState allocates state structure
//  nalp -- number of internal variables
//  next -- number of state variables of external routines
func NewState(nalp, next int) *State {
	var state State
	state.Sig = make([]float64, NSIG)
	if nalp > 0 {
		state.Alp = make([]float64, nalp)
		state.EpsP = make([]float64, NSIG)
	}
	if next > 0 {
		state.Ext = make([]float64, next)
	}
	return &state
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *State) Set(other *State) {
	copy(o.Sig, other.Sig)
	if len(o.Alp) > 0 {
		copy(o.Alp, other.Alp)
		copy(o.EpsP, other.EpsP)
	}
	o.Dgam = other.Dgam
	o.Loading = other.Loading
	o.ApexReturn = other.ApexReturn
	o.TensionCut = other.TensionCut
	o.NegativeDgam = other.NegativeDgam
	if len(o.Ext) > 0 {
		copy(o.Ext, other.Ext)
	}
}

// ResetFlags clears the flags set by the last update
func (o *State) ResetFlags() {
	o.Dgam = 0
	o.Loading = false
	o.ApexReturn = false
	o.TensionCut = false
	o.NegativeDgam = false
}
