// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package porous

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

// SolveBalanceEquations solves the mass balance equations of liquid and gas for the
// pressure increments corresponding to the volumetric strain increments of solid (Δεs),
// liquid (Δεl) and gas (Δεg). The state s is not modified. The analysis is isothermal,
// thus ΔT = 0. The residuals are:
//   rl = n sl/Kl Δpl + n Δsl + (1-n) sl Δεs + n sl Δεl
//   rg = n sg/Kg Δpg - n Δsl + (1-n) sg Δεs + n sg Δεg
// with Δsl = sl(pc + Δpg - Δpl) - sl and sg = 1 - sl
func (o Model) SolveBalanceEquations(s *State, Δεs, Δεl, Δεg float64) (Δpl, Δpg, ΔT float64, err error) {

	// coefficients
	n, sl := s.Nf, s.Sl
	sg := math.Max(1.0-sl, o.SgMin)
	al := n * sl / o.Liq.K
	ag := n * sg / o.Gas.K
	bl := (1.0-n)*sl*Δεs + n*sl*Δεl
	bg := (1.0-n)*sg*Δεs + n*sg*Δεg
	pc0 := s.Pc()

	// fully dry points have no liquid to balance
	if al <= 0 {
		Δpg = -bg / ag
		return
	}

	// Newton-Raphson iterations
	J := mat.NewDense(2, 2, nil)
	r := mat.NewVecDense(2, nil)
	var δ mat.VecDense
	var it int
	if o.ShowR {
		io.PfYel("%6s%18s%18s%18s\n", "it", "Δpl", "Δpg", "|r|")
	}
	for it = 0; it < o.NmaxIt; it++ {
		pc := pc0 + Δpg - Δpl
		Δsl := o.Saturation(pc) - sl
		Cc := 0.0
		if pc > 0 {
			Cc = o.Lrm.Cc(pc)
		}
		r.SetVec(0, al*Δpl+n*Δsl+bl)
		r.SetVec(1, ag*Δpg-n*Δsl+bg)
		rnorm := math.Hypot(r.AtVec(0), r.AtVec(1))
		if o.ShowR {
			io.Pfyel("%6d%18.10e%18.10e%18.10e\n", it, Δpl, Δpg, rnorm)
		}
		if rnorm < o.Itol {
			break
		}
		J.Set(0, 0, al-n*Cc)
		J.Set(0, 1, n*Cc)
		J.Set(1, 0, n*Cc)
		J.Set(1, 1, ag-n*Cc)
		err = δ.SolveVec(J, r)
		if err != nil {
			return 0, 0, 0, chk.Err("balance equations: Jacobian is singular: %v", err)
		}
		Δpl -= δ.AtVec(0)
		Δpg -= δ.AtVec(1)
		if math.IsNaN(Δpl) || math.IsNaN(Δpg) {
			return 0, 0, 0, chk.Err("balance equations: NaN found: Δεs=%g Δεl=%g Δεg=%g", Δεs, Δεl, Δεg)
		}
	}
	if it == o.NmaxIt {
		return 0, 0, 0, chk.Err("balance equations did not converge after %d iterations", it)
	}
	return
}

// Update updates the state with the pressure increments
func (o Model) Update(s *State, Δpl, Δpg float64) {
	s.Pl += Δpl
	s.Pg += Δpg
	s.Sl = o.Saturation(s.Pc())
	s.RhoL = o.Liq.Density(s.Pl)
	s.RhoG = o.Gas.Density(s.Pg)
}
