// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// DivergenceError reports a numerical divergence. Elem and Particle are -1 when the
// divergence is not related to a specific element or material point
type DivergenceError struct {
	Step     int     // step number
	Time     float64 // time
	Elem     int     // element
	Particle int     // material point
	Msg      string  // message
}

// Error returns the message
func (o *DivergenceError) Error() string {
	return io.Sf("divergence at step %d (t=%g): element=%d material point=%d: %s", o.Step, o.Time, o.Elem, o.Particle, o.Msg)
}

// Energies computes the kinetic energies of the nodes and the increments of external and
// internal works of this step
//   ΔWext = Σ Fext ⋅ Δu    ΔWint = -Σ Fint ⋅ Δu    Ekin = ½ Σ m v²
func (o *Domain) Energies(diag *Diagnostics) {
	for ph, f := range o.F {
		if f == nil {
			continue
		}
		var wex, win, ekin float64
		for k, du := range f.Du {
			wex += f.Fext[k] * du
			win -= f.Fint[k] * du
		}
		for ent := 0; ent < f.Nent; ent++ {
			for n := range o.Nodes {
				m := f.Mass[f.S(ent, n)]
				if m <= 0 {
					continue
				}
				v := nodeVec(f, f.Vel, ent, n)
				var v2 float64
				for _, x := range v {
					v2 += x * x
				}
				ekin += 0.5 * m * v2
			}
		}
		grp := energyGroup(ph)
		if grp != Mixture {
			diag.DWex[grp], diag.DWin[grp], diag.Ekin[grp] = wex, win, ekin
		}
		diag.DWex[Mixture] += wex
		diag.DWin[Mixture] += win
		diag.Ekin[Mixture] += ekin
	}
}

// InitialKineticEnergy computes the kinetic energy of material points
func (o *Domain) InitialKineticEnergy() (ekin [NENERGY]float64) {
	var buf []view
	for i := range o.Parts {
		p := &o.Parts[i]
		buf = o.sch.views(o, p, o.MatOf(p), buf)
		for _, v := range buf {
			var v2 float64
			for _, x := range v.vel {
				v2 += x * x
			}
			e := 0.5 * v.mass * v2
			if g := energyGroup(v.ph); g != Mixture {
				ekin[g] += e
			}
			ekin[Mixture] += e
		}
	}
	return
}

// CheckConvergence accumulates works, computes the energy dissipation
//   D = Wext - Wint - (Ekin - Ekin0)
// and checks for divergence (D < -tol ⋅ scale) and convergence. Quasi-static runs converge
// when the out-of-balance forces and the kinetic energy are small; dynamic runs converge
// when the final time is reached
func CheckConvergence(ctx *Context) (err error) {
	cfg, diag, pers := ctx.Cfg, &ctx.Diag, &ctx.Pers
	for g := 0; g < NENERGY; g++ {
		pers.Wex[g] += diag.DWex[g]
		pers.Win[g] += diag.DWin[g]
		pers.Dissip[g] = pers.Wex[g] - pers.Win[g] - (diag.Ekin[g] - pers.Ekin0[g])
		scale := math.Max(math.Abs(pers.Wex[g]), math.Max(math.Abs(pers.Win[g]), diag.Ekin[g]))
		if scale > 0 && pers.Dissip[g] < -cfg.TolDiverge*scale {
			return &DivergenceError{Step: pers.Step, Time: pers.Time, Elem: -1, Particle: -1,
				Msg: io.Sf("negative energy dissipation D=%g in group %d", pers.Dissip[g], g)}
		}
	}
	if !cfg.QuasiStatic {
		pers.Converged = pers.Time >= cfg.Tf
		return
	}
	pers.Converged = true
	for g := 0; g < NENERGY; g++ {
		if diag.Fext[g] > 0 && diag.Fres[g]/diag.Fext[g] > cfg.TolForce {
			pers.Converged = false
		}
		if pers.Wex[g] > 0 && diag.Ekin[g]/pers.Wex[g] > cfg.TolEnergy {
			pers.Converged = false
		}
	}
	return
}
