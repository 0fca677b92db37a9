// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package porous

// State holds state variables for porous media with liquid and gas
//  Pressures are positive in compression
type State struct {
	Nf   float64 // nf: volume fraction of fluids ~ porosity
	Sl   float64 // sl: liquid saturation
	RhoL float64 // ρL: real (intrinsic) density of liquid
	RhoG float64 // ρG: real (intrinsic) density of gas
	Pl   float64 // pl: liquid pressure
	Pg   float64 // pg: gas pressure
}

// Set sets this State with another State
func (o *State) Set(another *State) {
	*o = *another
}

// Pc returns the capillary pressure pc = pg - pl
func (o State) Pc() float64 {
	return o.Pg - o.Pl
}
