// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"github.com/cpmech/gompm/shp"
	"golang.org/x/sync/errgroup"
)

// worker processes a contiguous partition of elements with private nodal buffers
type worker struct {
	id     int                   // worker id
	start  int                   // first element
	end    int                   // one past last element
	shapes map[string]*shp.Shape // private shape structures
	buf    [3]*Field             // private nodal buffers
	diag   Diagnostics           // private counters
	views  []view                // scratch for views of material points
}

// newWorkers partitions the elements of domain among n workers
func newWorkers(dom *Domain, n, nphases int) (ws []*worker) {
	nel := len(dom.Elems)
	if n > nel {
		n = nel
	}
	if n < 1 {
		n = 1
	}
	ws = make([]*worker, n)
	size := nel / n
	extra := nel % n
	start := 0
	for w := 0; w < n; w++ {
		end := start + size
		if w < extra {
			end++
		}
		ws[w] = &worker{id: w, start: start, end: end, shapes: make(map[string]*shp.Shape)}
		for i := start; i < end; i++ {
			typ := dom.Elems[i].Cell.Type
			if _, ok := ws[w].shapes[typ]; !ok {
				ws[w].shapes[typ] = shp.Get(typ, w+1)
			}
		}
		for ph := 0; ph < nphases; ph++ {
			ws[w].buf[ph] = NewField(dom.Nent, len(dom.Nodes), dom.Ndim)
		}
		start = end
	}

	// any worker may relocate points into any element
	for _, w := range ws {
		for i := range dom.Elems {
			typ := dom.Elems[i].Cell.Type
			if _, ok := w.shapes[typ]; !ok {
				w.shapes[typ] = shp.Get(typ, w.id+1)
			}
		}
	}
	return
}

// parallel runs fcn for all workers. The first error is returned
func (o *Domain) parallel(fcn func(w *worker) error) error {
	if len(o.workers) == 1 {
		return fcn(o.workers[0])
	}
	var g errgroup.Group
	for _, w := range o.workers {
		w := w
		g.Go(func() error { return fcn(w) })
	}
	return g.Wait()
}

// eachParticle runs fcn for all material points in the elements of worker
func (o *Domain) eachParticle(w *worker, fcn func(p *Particle) error) (err error) {
	for i := w.start; i < w.end; i++ {
		for _, pid := range o.Elems[i].Parts {
			err = fcn(&o.Parts[pid])
			if err != nil {
				return
			}
		}
	}
	return
}

// reduceMapped sums the private buffers of workers into the nodal fields, in worker order
func (o *Domain) reduceMapped() {
	for ph, f := range o.F {
		if f == nil {
			continue
		}
		f.ResetMapped()
		for _, w := range o.workers {
			f.AddMapped(w.buf[ph])
		}
	}
}

// reduceMom sums the private momentum buffers of workers into the nodal fields, in worker order
func (o *Domain) reduceMom() {
	for ph, f := range o.F {
		if f == nil {
			continue
		}
		f.ResetMom()
		for _, w := range o.workers {
			f.AddMom(w.buf[ph])
		}
	}
}

// reduceCounters sums the private counters of workers
func (o *Domain) reduceCounters(diag *Diagnostics) {
	for _, w := range o.workers {
		diag.AddCounters(&w.diag)
	}
}
