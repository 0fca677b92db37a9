// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// maximum sizes of arrays exchanged with external routines
const (
	NPROPS  = 50 // number of properties
	NSTATEV = 50 // number of state variables
)

// ExternalInput holds the data passed to external routines
type ExternalInput struct {
	Ndim      int       // space dimension
	Dt        float64   // time step
	Stress    []float64 // σ at the beginning of the step [NSIG]
	StrainInc []float64 // Δε [NSIG]
	State     []float64 // state variables [NSTATEV]
	Props     []float64 // properties [NPROPS]
}

// ExternalOutput holds the results of external routines
type ExternalOutput struct {
	Stress []float64 // updated σ [NSIG]
	State  []float64 // updated state variables [NSTATEV]; may be nil if unchanged
}

// ExternalFunc defines user-supplied stress-update routines
type ExternalFunc func(in ExternalInput) (ExternalOutput, error)

// externals holds the registered routines
var (
	externals   = map[string]ExternalFunc{}
	externalsMu sync.RWMutex
)

// RegisterExternal registers an external stress-update routine under name
func RegisterExternal(name string, fcn ExternalFunc) {
	externalsMu.Lock()
	defer externalsMu.Unlock()
	externals[name] = fcn
}

// External implements a model whose stress update is performed by an external routine.
// The parameter "M" gives the constrained modulus used for the time step; all other
// parameters are passed in order as properties
type External struct {
	Ndim  int          // space dimension
	M     float64      // constrained modulus
	Props []float64    // properties
	Name  string       // name of bound routine
	fcn   ExternalFunc // bound routine
}

// add model to factory
func init() {
	allocators["external"] = func() Model { return new(External) }
}

// Init initialises model
func (o *External) Init(ndim int, prms dbf.Params) (err error) {
	o.Ndim = ndim
	o.Props = make([]float64, NPROPS)
	var n int
	for _, p := range prms {
		if p.N == "M" {
			o.M = p.V
			continue
		}
		if n == NPROPS {
			return chk.Err("external model can have at most %d properties", NPROPS)
		}
		o.Props[n] = p.V
		n++
	}
	if o.M <= 0 {
		return chk.Err("external model needs a positive constrained modulus 'M'. M=%g is invalid", o.M)
	}
	return
}

// Bind binds model to the routine registered under name
func (o *External) Bind(name string) (err error) {
	externalsMu.RLock()
	defer externalsMu.RUnlock()
	fcn, ok := externals[name]
	if !ok {
		return chk.Err("external routine %q is not registered", name)
	}
	o.Name, o.fcn = name, fcn
	return
}

// Bound tells whether the model is bound
func (o External) Bound() bool { return o.fcn != nil }

// GetPrms gets (an example) of parameters
func (o External) GetPrms(example bool) dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "M", V: 1e4},
		&dbf.P{N: "E", V: 1e4},
		&dbf.P{N: "nu", V: 0.3},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o External) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(0, NSTATEV)
	copy(s.Sig, σ)
	return
}

// Update updates stresses by calling the external routine
func (o External) Update(s *State, Δε []float64, dt float64) (err error) {
	s.ResetFlags()
	if o.fcn == nil {
		return chk.Err("external model is not bound to any routine")
	}
	in := ExternalInput{
		Ndim:      o.Ndim,
		Dt:        dt,
		Stress:    append([]float64{}, s.Sig...),
		StrainInc: append([]float64{}, Δε...),
		State:     append([]float64{}, s.Ext...),
		Props:     o.Props,
	}
	out, err := o.fcn(in)
	if err != nil {
		return chk.Err("external routine %q failed:\n%v", o.Name, err)
	}
	if len(out.Stress) != NSIG {
		return chk.Err("external routine %q must return %d stress components. %d is invalid", o.Name, NSIG, len(out.Stress))
	}
	copy(s.Sig, out.Stress)
	if out.State != nil {
		copy(s.Ext, out.State)
	}
	return
}

// Modulus returns the constrained modulus
func (o External) Modulus(s *State) float64 {
	return o.M
}
