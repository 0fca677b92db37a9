// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import "math"

// CalculateCriticalTimeStep computes the next time step from the wave speeds of material
// points. For each active element
//   Δte = χ L / cmax
// where χ is the bulk viscosity factor (1 without bulk viscosity). Then
//   Δt = Courant min(Δte)
// bounded by DtMin and by the remaining simulation time. Without any positive wave
// speed, the previous time step is kept
func (o *Domain) CalculateCriticalTimeStep(pers *Persistent) (dt float64, err error) {
	cfg := o.Cfg
	dtcrit := math.Inf(1)
	for i := range o.Elems {
		e := &o.Elems[i]
		if !e.Active {
			continue
		}
		cmax := 0.0
		for _, pid := range e.Parts {
			p := &o.Parts[pid]
			if p.Fixed {
				continue
			}
			c := o.sch.wave(o, p, o.MatOf(p), e.Lmin)
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return 0, &DivergenceError{Step: pers.Step, Elem: e.Id, Particle: p.Id, Msg: "wave speed is not finite"}
			}
			cmax = math.Max(cmax, c)
		}
		if cmax <= 0 {
			continue
		}
		dte := e.Lmin / cmax
		if cfg.BulkVisc {
			dte *= BulkViscosityFactor(cmax, e.Lmin, e.RateV, cfg.BulkL1, cfg.BulkL2)
		}
		dtcrit = math.Min(dtcrit, dte)
	}
	dt = pers.Dt
	if !math.IsInf(dtcrit, 1) {
		dt = cfg.Courant * dtcrit
	}
	return BoundTimeStep(dt, cfg.DtMin, cfg.Tf-pers.Time), nil
}

// BoundTimeStep applies the lower bound dtmin and then the upper bound given by the
// remaining time
func BoundTimeStep(dt, dtmin, remaining float64) float64 {
	dt = math.Max(dt, dtmin)
	if remaining > 0 {
		dt = math.Min(dt, remaining)
	}
	return dt
}
