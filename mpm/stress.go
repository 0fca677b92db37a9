// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// UpdateStresses updates effective stresses and pressures of all material points.
// The counters of plastic points are recomputed
func (o *Domain) UpdateStresses(diag *Diagnostics, t, dt float64) (err error) {
	diag.ResetCounters()
	err = o.parallel(func(w *worker) error {
		w.diag.Reset()
		for i := w.start; i < w.end; i++ {
			e := &o.Elems[i]
			if !e.Active {
				continue
			}
			if e.Rep >= 0 {
				if err := o.updateRepresentative(w, e, t, dt); err != nil {
					return err
				}
				continue
			}
			for _, pid := range e.Parts {
				if err := o.UpdateStress(&w.diag, &o.Parts[pid], t, dt); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return
	}
	o.reduceCounters(diag)
	return
}

// UpdateStress updates the effective stress and pressures of material point p with its
// strain increment. Points of hard entities are skipped
func (o *Domain) UpdateStress(diag *Diagnostics, p *Particle, t, dt float64) (err error) {
	if p.Fixed {
		return
	}
	mat := o.MatOf(p)
	copy(p.Sig0, p.State.Sig)
	p.Pw0, p.Pg0 = p.Pw, p.Pg

	// effective stress
	if o.Cfg.LargeDef {
		Jaumann(p.State.Sig, p.DSpin)
	}
	err = mat.Solid.Update(p.State, p.DEps, dt)
	if err != nil {
		return chk.Err("stress update failed at material point %d in element %d:\n%v", p.Id, p.Elem, err)
	}
	p.Mod = mat.Solid.Modulus(p.State)
	if p.State.Loading {
		diag.Plastic++
	}
	if p.State.NegativeDgam {
		diag.NegPlastic++
	}
	if p.State.TensionCut {
		diag.TensionCut++
	}
	if p.State.ApexReturn {
		diag.Apex++
	}

	// pressures; quasi-static runs keep the stored values
	if !o.Cfg.QuasiStatic {
		err = o.sch.pressure(o, p, mat, t)
		if err != nil {
			return
		}
	}

	// bulk viscosity
	p.Qbulk = 0
	if o.Cfg.BulkVisc {
		e := &o.Elems[p.Elem]
		ρ := p.Density()
		if ρ > 0 {
			c := math.Sqrt(p.Mod / ρ)
			p.Qbulk = BulkViscosity(ρ, c, e.Lmin, e.RateV, o.Cfg.BulkL1, o.Cfg.BulkL2)
		}
	}
	return
}

// updateRepresentative integrates the representative point of a fully filled element with
// the volume averaged strain increment and copies its state to all points of the element
func (o *Domain) updateRepresentative(w *worker, e *Element, t, dt float64) (err error) {
	rep := &o.Parts[e.Rep]
	var dε [6]float64
	var spin [3]float64
	var dεw, dεg, vol float64
	for _, pid := range e.Parts {
		q := &o.Parts[pid]
		for i := range dε {
			dε[i] += q.DEps[i] * q.Vol
		}
		for i := range spin {
			spin[i] += q.DSpin[i] * q.Vol
		}
		dεw += q.DEpsVW * q.Vol
		dεg += q.DEpsVG * q.Vol
		vol += q.Vol
	}
	if vol <= 0 {
		return
	}
	for i := range dε {
		rep.DEps[i] = dε[i] / vol
	}
	for i := range spin {
		rep.DSpin[i] = spin[i] / vol
	}
	rep.DEpsVW, rep.DEpsVG = dεw/vol, dεg/vol
	err = o.UpdateStress(&w.diag, rep, t, dt)
	if err != nil {
		return
	}
	for _, pid := range e.Parts {
		if pid == rep.Id {
			continue
		}
		q := &o.Parts[pid]
		copy(q.Sig0, q.State.Sig)
		q.State.Set(rep.State)
		q.Mod = rep.Mod
		q.Pw0, q.Pg0 = q.Pw, q.Pg
		q.Pw, q.Pg = rep.Pw, rep.Pg
		q.Qbulk = rep.Qbulk
		if q.Por != nil && rep.Por != nil {
			q.Por.Set(rep.Por)
			q.Sl, q.RhoL, q.RhoG = rep.Sl, rep.RhoL, rep.RhoG
		}
	}
	return
}

// Jaumann applies the objective (Jaumann) correction to the stress σ for the spin
// increment ω = {ωxy, ωyz, ωzx}
//   σ := σ + Ω σ - σ Ω
func Jaumann(σ, ω []float64) {
	S := [3][3]float64{
		{σ[0], σ[3], σ[5]},
		{σ[3], σ[1], σ[4]},
		{σ[5], σ[4], σ[2]},
	}
	W := [3][3]float64{
		{0, ω[0], -ω[2]},
		{-ω[0], 0, ω[1]},
		{ω[2], -ω[1], 0},
	}
	var D [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				D[i][j] += W[i][k]*S[k][j] - S[i][k]*W[k][j]
			}
		}
	}
	σ[0] += D[0][0]
	σ[1] += D[1][1]
	σ[2] += D[2][2]
	σ[3] += D[0][1]
	σ[4] += D[1][2]
	σ[5] += D[2][0]
}

// BulkViscosity returns the damping pressure (compression positive) for the volumetric
// strain rate rate. Expanding material gets no damping
//   q = ρ L (b1 c |ε̇v| + b2² L ε̇v²)
func BulkViscosity(ρ, c, L, rate, b1, b2 float64) float64 {
	if rate >= 0 {
		return 0
	}
	return ρ * L * (b1*c*math.Abs(rate) + b2*b2*L*rate*rate)
}

// BulkViscosityFactor returns the reduction factor χ of the critical time step due to
// bulk viscosity damping
//   χ = c / (Q + √(Q² + c²))   with   Q = b1 c + b2² L |ε̇v|
func BulkViscosityFactor(c, L, rate, b1, b2 float64) float64 {
	if rate >= 0 || c <= 0 {
		return 1
	}
	Q := b1*c + b2*b2*L*math.Abs(rate)
	return c / (Q + math.Sqrt(Q*Q+c*c))
}
