// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Emitter receives the results after the convective update. It never modifies the domain
type Emitter interface {
	EmitStepResult(d *Domain, step int) error
}

// Summary records the history of the run at output times
type Summary struct {
	Steps   []int              // step numbers
	Times   []float64          // times
	Dts     []float64          // time steps
	Ekin    [][NENERGY]float64 // kinetic energies
	Dissip  [][NENERGY]float64 // energy dissipations
	Plastic []int              // number of plastic points
	Disp    [][]float64        // displacements of material points at the last output [npart][ndim]
	Press   []float64          // liquid pressures of material points at the last output [npart]
}

// SummaryEmitter records a Summary and saves it at the end of the run
type SummaryEmitter struct {
	Sum     Summary  // summary
	ctx     *Context // context
	dirout  string   // directory of output
	key     string   // simulation key
	enctype string   // "gob" or "json"
}

// NewSummaryEmitter returns a new summary recorder
func NewSummaryEmitter(ctx *Context, dirout, key, enctype string) *SummaryEmitter {
	return &SummaryEmitter{ctx: ctx, dirout: dirout, key: key, enctype: enctype}
}

// EmitStepResult records the state of this step
func (o *SummaryEmitter) EmitStepResult(d *Domain, step int) error {
	pers, diag := &o.ctx.Pers, &o.ctx.Diag
	o.Sum.Steps = append(o.Sum.Steps, step)
	o.Sum.Times = append(o.Sum.Times, pers.Time)
	o.Sum.Dts = append(o.Sum.Dts, pers.Dt)
	o.Sum.Ekin = append(o.Sum.Ekin, diag.Ekin)
	o.Sum.Dissip = append(o.Sum.Dissip, pers.Dissip)
	o.Sum.Plastic = append(o.Sum.Plastic, diag.Plastic)
	if len(o.Sum.Disp) != len(d.Parts) {
		o.Sum.Disp = utl.Alloc(len(d.Parts), d.Ndim)
		o.Sum.Press = make([]float64, len(d.Parts))
	}
	for i := range d.Parts {
		copy(o.Sum.Disp[i], d.Parts[i].U)
		o.Sum.Press[i] = d.Parts[i].Pw
	}
	return nil
}

// Save saves the summary. Failures to write the file are returned as errors
func (o *SummaryEmitter) Save() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("cannot save summary:\n%v", r)
		}
	}()
	var buf bytes.Buffer
	enc := utl.NewEncoder(&buf, o.enctype)
	err = enc.Encode(o.Sum)
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}
	io.WriteFileD(o.dirout, summaryFn(o.key, o.enctype), &buf)
	return
}

// ReadSummary reads a summary saved by SummaryEmitter
func ReadSummary(dirout, key, enctype string) (sum *Summary, err error) {
	fil, err := os.Open(filepath.Join(dirout, summaryFn(key, enctype)))
	if err != nil {
		return nil, chk.Err("cannot open summary file:\n%v", err)
	}
	defer fil.Close()
	sum = new(Summary)
	err = utl.NewDecoder(fil, enctype).Decode(sum)
	if err != nil {
		return nil, chk.Err("cannot decode summary:\n%v", err)
	}
	return
}

// summaryFn returns the filename of summary
func summaryFn(key, enctype string) string {
	return io.Sf("%s_sum.%s", key, enctype)
}
