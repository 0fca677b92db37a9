// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"time"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Main holds all data for a simulation using the material point method
type Main struct {
	Sim     *inp.Simulation // simulation data
	Cfg     *Config         // run configuration
	Ctx     *Context        // solver context
	Dom     *Domain         // domain
	Summary *SummaryEmitter // summary; nil if not saved
	Solver  *Solver         // explicit solver
	ShowMsg bool            // show messages
}

// NewMain returns a new Main structure
//  Input:
//   simfilepath -- simulation (.sim) filename including full path
//   erasePrev   -- erase previous results files
//   saveSummary -- save summary
//   verbose     -- show messages
//   workers     -- number of goroutines; 0 means use the value in the .sim file
func NewMain(simfilepath string, erasePrev, saveSummary, verbose bool, workers int) (o *Main, err error) {

	// new Main object
	o = new(Main)
	o.ShowMsg = verbose

	// read input data
	o.Sim, err = inp.ReadSim(simfilepath, erasePrev, saveSummary)
	if err != nil {
		return nil, chk.Err("cannot read simulation input data:\n%v", err)
	}
	if workers > 0 {
		o.Sim.Calc.Workers = workers
	}
	if o.ShowMsg {
		io.Pf("> Simulation (.sim) file read\n")
		for _, w := range o.Sim.MatModels.Warnings {
			io.Pfyel("> %s\n", w)
		}
	}

	// domain
	o.Cfg = NewConfig(o.Sim)
	o.Ctx = NewContext(o.Cfg)
	o.Dom, err = NewDomain(o.Sim, o.Cfg)
	if err != nil {
		return nil, chk.Err("cannot allocate domain:\n%v", err)
	}
	if o.ShowMsg {
		io.Pf("> Domain allocated: %d nodes, %d elements, %d material points, %d workers\n",
			len(o.Dom.Nodes), len(o.Dom.Elems), len(o.Dom.Parts), len(o.Dom.workers))
	}

	// solver
	var emit Emitter
	if saveSummary {
		o.Summary = NewSummaryEmitter(o.Ctx, o.Sim.DirOut, o.Sim.Key, o.Sim.EncType)
		emit = o.Summary
	}
	o.Solver = NewSolver(o.Dom, o.Ctx, emit, o.ShowMsg)
	return
}

// Run runs the simulation
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// message
	if o.ShowMsg {
		io.Pf("> Running explicit MPM solver (%s)\n", o.Dom.sch.name)
	}
	return o.Solver.Run()
}

// onexit prints final message with simulation and cpu times and saves summary
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {

	// show final message
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> t = %g, steps = %d\n", o.Ctx.Pers.Time, o.Ctx.Pers.Step)
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}

	// save summary even if the run failed
	if o.Summary != nil {
		err = o.Summary.Save()
	}

	// the error of the run has precedence
	if prevErr != nil {
		if err != nil {
			io.PfRed("> %v\n", err)
		}
		err = prevErr
	}
	return
}
