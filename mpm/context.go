// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mpm implements the explicit material point method solver
package mpm

import (
	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gosl/fun/dbf"
)

// phases
const (
	Solid = 0 // solid skeleton or single phase
	Water = 1 // liquid
	Gas   = 2 // gas
)

// energy groups
const (
	Mixture = 0 // all phases
	EnSolid = 1 // solid
	EnWater = 2 // water
	NENERGY = 3 // number of energy groups
)

// Config holds the run configuration. It is set once by NewConfig and never modified
type Config struct {
	Ndim        int     // space dimension
	Formulation string  // inp.SinglePoint or inp.DoublePoint
	Phases      int     // number of phases
	PartSat     bool    // partially saturated 2-phase pressure equation
	QuasiStatic bool    // quasi-static mode
	UpdMesh     bool    // updated Lagrangian mesh
	LargeDef    bool    // Jaumann stress rate
	Smoothing   bool    // volumetric strain smoothing
	BulkVisc    bool    // bulk viscosity damping
	BulkL1      float64 // linear bulk viscosity coefficient
	BulkL2      float64 // quadratic bulk viscosity coefficient
	Damping     float64 // local damping factor
	Mixed       bool    // mixed integration
	FreeSurf    float64 // filling ratio below which liquid points are on the free surface
	TgravZero   float64 // no pressure increments before this time
	Courant     float64 // Courant factor
	DtMin       float64 // minimum time step
	TolForce    float64 // tolerance on force ratio
	TolEnergy   float64 // tolerance on kinetic energy ratio
	TolDiverge  float64 // tolerance on negative energy dissipation
	Workers     int     // number of goroutines
	Grav        float64 // gravity acceleration
	GravFcn     dbf.T   // gravity multiplier
	GravRef     float64 // reference gravity of conductivities
	Tf          float64 // final time
	Dt0         float64 // initial time step
	DtOut       float64 // output interval
	MaxSteps    int     // maximum number of steps
	ShowEvery   int     // print progress every ShowEvery steps
}

// NewConfig returns the run configuration corresponding to simulation data
func NewConfig(sim *inp.Simulation) *Config {
	c := sim.Calc
	return &Config{
		Ndim:        sim.Ndim,
		Formulation: c.Formulation,
		Phases:      c.Phases,
		PartSat:     c.PartSat,
		QuasiStatic: c.QuasiStatic,
		UpdMesh:     c.UpdMesh,
		LargeDef:    c.LargeDef,
		Smoothing:   c.Smoothing,
		BulkVisc:    c.BulkVisc,
		BulkL1:      c.BulkL1,
		BulkL2:      c.BulkL2,
		Damping:     c.Damping,
		Mixed:       c.Mixed,
		FreeSurf:    c.FreeSurf,
		TgravZero:   c.TgravZero,
		Courant:     c.Courant,
		DtMin:       c.DtMin,
		TolForce:    c.TolForce,
		TolEnergy:   c.TolEnergy,
		TolDiverge:  c.TolDiverge,
		Workers:     c.Workers,
		Grav:        sim.Gravity.G,
		GravFcn:     sim.Gravity.Func,
		GravRef:     sim.GravRef,
		Tf:          sim.Control.Tf,
		Dt0:         sim.Control.Dt,
		DtOut:       sim.Control.DtOut,
		MaxSteps:    sim.Control.MaxSteps,
		ShowEvery:   sim.Data.ShowEvery,
	}
}

// Gravity returns the gravity acceleration at time t
func (o Config) Gravity(t float64) float64 {
	if o.GravFcn == nil {
		return o.Grav
	}
	return o.Grav * o.GravFcn.F(t, nil)
}

// Diagnostics holds counters and sums recomputed at every step
type Diagnostics struct {
	Plastic    int // number of plastic points
	NegPlastic int // number of points with negative plastic multiplier
	TensionCut int // number of points with tension cut-off
	Apex       int // number of points returned to the apex

	// energies and works of this step [NENERGY]
	Ekin [NENERGY]float64 // kinetic energy
	DWin [NENERGY]float64 // internal work increment
	DWex [NENERGY]float64 // external work increment

	// out-of-balance forces [NENERGY]
	Fres [NENERGY]float64 // norm of residual nodal force
	Fext [NENERGY]float64 // norm of external nodal force
}

// Reset zeroes all counters
func (o *Diagnostics) Reset() {
	*o = Diagnostics{}
}

// ResetCounters zeroes the counters of plastic points
func (o *Diagnostics) ResetCounters() {
	o.Plastic, o.NegPlastic, o.TensionCut, o.Apex = 0, 0, 0, 0
}

// AddCounters adds the counters of another structure
func (o *Diagnostics) AddCounters(other *Diagnostics) {
	o.Plastic += other.Plastic
	o.NegPlastic += other.NegPlastic
	o.TensionCut += other.TensionCut
	o.Apex += other.Apex
}

// Persistent holds data carried from one step to the next
type Persistent struct {
	Time      float64          // current time
	Dt        float64          // current time step
	Step      int              // step number
	Ekin0     [NENERGY]float64 // kinetic energy at the beginning of the run
	Win       [NENERGY]float64 // accumulated internal work
	Wex       [NENERGY]float64 // accumulated external work
	Dissip    [NENERGY]float64 // energy dissipation = Wex - Win - (Ekin - Ekin0)
	Converged bool             // convergence achieved
}

// Context holds all data shared by the components of the solver
type Context struct {
	Cfg  *Config     // run configuration
	Diag Diagnostics // per-step diagnostics
	Pers Persistent  // cross-step state
}

// NewContext returns a new context
func NewContext(cfg *Config) *Context {
	o := &Context{Cfg: cfg}
	o.Pers.Dt = cfg.Dt0
	return o
}
