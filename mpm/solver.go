// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// Solver runs the explicit time loop
type Solver struct {
	Dom     *Domain  // domain
	Ctx     *Context // context
	Emit    Emitter  // result sink; may be nil
	ShowMsg bool     // show messages
}

// NewSolver returns a new explicit solver
func NewSolver(dom *Domain, ctx *Context, emit Emitter, showMsg bool) *Solver {
	return &Solver{Dom: dom, Ctx: ctx, Emit: emit, ShowMsg: showMsg}
}

// Run runs the time loop until the final time, the maximum number of steps or (for
// quasi-static runs) convergence
func (o *Solver) Run() (err error) {
	cfg, pers := o.Ctx.Cfg, &o.Ctx.Pers

	// initial state
	pers.Ekin0 = o.Dom.InitialKineticEnergy()
	pers.Dt, err = o.Dom.CalculateCriticalTimeStep(pers)
	if err != nil {
		return
	}
	err = o.emit()
	if err != nil {
		return
	}
	if o.ShowMsg {
		io.Pf("%8s%14s%14s%10s%14s\n", "step", "t", "Δt", "plastic", "dissipation")
	}

	// time loop
	tout := pers.Time + cfg.DtOut
	for pers.Time < cfg.Tf {
		if cfg.MaxSteps > 0 && pers.Step >= cfg.MaxSteps {
			break
		}
		err = o.Step()
		if err != nil {
			return
		}
		if o.ShowMsg && cfg.ShowEvery > 0 && pers.Step%cfg.ShowEvery == 0 {
			io.Pf("%8d%14.6e%14.6e%10d%14.6e\n", pers.Step, pers.Time, pers.Dt, o.Ctx.Diag.Plastic, pers.Dissip[Mixture])
		}
		last := pers.Time >= cfg.Tf || pers.Converged && cfg.QuasiStatic
		if pers.Time >= tout-1e-14 || last {
			err = o.emit()
			if err != nil {
				return
			}
			for tout <= pers.Time {
				tout += cfg.DtOut
			}
		}
		if pers.Converged && cfg.QuasiStatic {
			if o.ShowMsg {
				io.PfGreen("> converged at step %d\n", pers.Step)
			}
			break
		}
	}
	return
}

// Step runs one explicit step:
//   map mass, momentum and forces → nodal accelerations → particle velocities and
//   nodal momentum → nodal velocities → prescribed velocities → Δu = v Δt →
//   convective update → energies → next Δt → convergence
func (o *Solver) Step() (err error) {
	d, ctx := o.Dom, o.Ctx
	pers := &ctx.Pers
	t, dt := pers.Time, pers.Dt
	ctx.Diag.Reset()

	// momentum balance
	err = d.MapMassAndForces(t)
	if err != nil {
		return
	}
	d.ComputeAcceleration(&ctx.Diag)
	err = d.UpdateParticleVelocityAndMapMomentum(t, dt)
	if err != nil {
		return
	}
	d.PrescribeVelocities(t + dt)
	d.ComputeIncrements(dt)

	// convective update
	err = d.ConvectiveUpdate(&ctx.Diag, t+dt, dt)
	if err != nil {
		return o.annotate(err)
	}
	d.Energies(&ctx.Diag)
	pers.Time += dt
	pers.Step++

	// next time step
	pers.Dt, err = d.CalculateCriticalTimeStep(pers)
	if err != nil {
		return
	}
	if math.IsNaN(pers.Dt) || pers.Dt <= 0 && pers.Time < ctx.Cfg.Tf {
		return &DivergenceError{Step: pers.Step, Time: pers.Time, Elem: -1, Particle: -1, Msg: io.Sf("invalid time step %g", pers.Dt)}
	}
	return CheckConvergence(ctx)
}

// emit sends results to the sink
func (o *Solver) emit() error {
	if o.Emit == nil {
		return nil
	}
	return o.Emit.EmitStepResult(o.Dom, o.Ctx.Pers.Step)
}

// annotate adds the step number to errors of the convective update
func (o *Solver) annotate(err error) error {
	if _, ok := err.(*DivergenceError); ok {
		return err
	}
	return &DivergenceError{Step: o.Ctx.Pers.Step, Time: o.Ctx.Pers.Time, Elem: -1, Particle: -1, Msg: err.Error()}
}
