// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"math"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gompm/mdl/solid"
	"github.com/cpmech/gosl/chk"
)

// view is the part of a material point carried by the field of one phase
type view struct {
	ph   int       // phase (field)
	mass float64   // mass assigned to field
	vel  []float64 // velocity of point in this phase
}

// scheme holds the kernels of one formulation. Schemes are selected once by
// (formulation, number of phases) and never re-tested inside the loops
type scheme struct {
	name     string                                                            // name; e.g. "1pt-2"
	coupled  bool                                                              // mixture equation with inertia of fluids (single point)
	views    func(d *Domain, p *Particle, mat *inp.Material, buf []view) []view // parts of p carried by each field
	forces   func(d *Domain, w *worker, p *Particle, mat *inp.Material, g float64)
	pressure func(d *Domain, p *Particle, mat *inp.Material, t float64) error // pressure increments
	wave     func(d *Domain, p *Particle, mat *inp.Material, L float64) float64
}

// schemeKey indexes the table of schemes
type schemeKey struct {
	formulation string
	phases      int
}

// schemes holds all formulations
var schemes = map[schemeKey]*scheme{
	{inp.SinglePoint, 1}: {name: "1pt-1", views: views1pt, forces: forces1pt, pressure: pressure1pt1, wave: wave1pt},
	{inp.SinglePoint, 2}: {name: "1pt-2", coupled: true, views: views1pt, forces: forces1pt, pressure: pressure1pt2, wave: wave1pt},
	{inp.SinglePoint, 3}: {name: "1pt-3", coupled: true, views: views1pt, forces: forces1pt, pressure: pressure1pt3, wave: wave1pt},
	{inp.DoublePoint, 2}: {name: "2pt-2", views: views2pt, forces: forces2pt, pressure: pressure2pt, wave: wave2pt},
}

// getScheme returns the scheme of a configuration
func getScheme(cfg *Config) (*scheme, error) {
	s, ok := schemes[schemeKey{cfg.Formulation, cfg.Phases}]
	if !ok {
		return nil, chk.Err("formulation %q with %d phases is not available", cfg.Formulation, cfg.Phases)
	}
	return s, nil
}

// strainPhase returns the field moving material point p
func (o *Domain) strainPhase(p *Particle) int {
	if p.Liquid && o.Cfg.Formulation == inp.DoublePoint {
		return Water
	}
	return Solid
}

// single point ////////////////////////////////////////////////////////////////////////////////////

func views1pt(d *Domain, p *Particle, mat *inp.Material, buf []view) []view {
	buf = append(buf[:0], view{Solid, p.Mass, p.Vs})
	if mat.Phases > 1 && d.F[Water] != nil {
		buf = append(buf, view{Water, p.RhoL * p.Vol, p.Vw})
	}
	if mat.Phases > 2 && d.F[Gas] != nil {
		buf = append(buf, view{Gas, p.RhoG * p.Vol, p.Vg})
	}
	return buf
}

// forces1pt maps forces of the mixture to the solid field and forces of fluids to
// their own fields. The mixture equation is
//   Ms as = Fext + Fint - Mw aw - Mg ag
// with Fint = -Σ Bᵀ (σ' + Sl pw m + (1-Sl) pg m - q m) V. The fluid equations are
//   Mw aw = Fext_w - Σ Bᵀ (pw m) V - Fd_w
func forces1pt(d *Domain, w *worker, p *Particle, mat *inp.Material, g float64) {
	ent, verts := p.Ent, d.Elems[p.Elem].Verts
	fs := w.buf[Solid]
	var σ [6]float64
	copy(σ[:], p.State.Sig)
	pm := -p.Qbulk
	switch mat.Type {
	case inp.MatUndrained:
		pm += p.Pw
	case inp.MatSaturated:
		pm += p.Sl * p.Pw
	case inp.MatUnsaturated:
		pm += p.Sl*p.Pw + (1-p.Sl)*p.Pg
	}
	for i := 0; i < 3; i++ {
		σ[i] += pm
	}
	addInternal(fs, ent, verts, p.G, σ[:], p.Vol)
	addBody(fs, ent, verts, p.S, (p.Mass+p.MassW+p.MassG)*g)

	// fluids
	if mat.Phases > 1 && d.F[Water] != nil {
		fw := w.buf[Water]
		mw := p.RhoL * p.Vol
		addFluid(fw, ent, verts, p, mw, p.MassW, p.Pw, g)
		addDrag(fw, ent, verts, p.S, p.Nf*p.RhoL*d.Cfg.GravRef*p.Vol, p.Kl, p.Vw, p.Vs, -1)
	}
	if mat.Phases > 2 && d.F[Gas] != nil {
		fg := w.buf[Gas]
		mg := p.RhoG * p.Vol
		addFluid(fg, ent, verts, p, mg, p.MassG, p.Pg, g)
		addDrag(fg, ent, verts, p.S, p.Nf*p.RhoG*d.Cfg.GravRef*p.Vol, p.Kg, p.Vg, p.Vs, -1)
	}
}

// pressure1pt1 computes the pressure of undrained analyses
//   Δpw = Kw / n Δεv
func pressure1pt1(d *Domain, p *Particle, mat *inp.Material, t float64) error {
	if mat.Type != inp.MatUndrained {
		return nil
	}
	p.Pw += UndrainedPressure(mat.Kl, p.Nf, volStrain(p.DEps))
	return nil
}

// pressure1pt2 computes the liquid pressure of saturated (or partially saturated) points
func pressure1pt2(d *Domain, p *Particle, mat *inp.Material, t float64) error {
	switch mat.Type {
	case inp.MatUndrained:
		return pressure1pt1(d, p, mat, t)
	case inp.MatSaturated, inp.MatUnsaturated:
	default:
		return nil
	}
	if t < d.Cfg.TgravZero {
		return nil
	}
	Δεs := volStrain(p.DEps)
	if d.Cfg.PartSat && mat.Reten != nil {
		pc := math.Max(p.Pw, 0)
		p.Pw += PartSatPressure(mat.Kl, p.Nf, p.Sl, mat.Reten.Cc(pc), p.DEpsVW, Δεs)
		return nil
	}
	p.Pw += SaturatedPressure(mat.Kl, p.Nf, p.DEpsVW, Δεs)
	return nil
}

// pressure1pt3 solves the balance equations of liquid and gas jointly
func pressure1pt3(d *Domain, p *Particle, mat *inp.Material, t float64) error {
	if p.Por == nil {
		return pressure1pt2(d, p, mat, t)
	}
	if t < d.Cfg.TgravZero {
		return nil
	}
	Δpl, Δpg, _, err := mat.Porous.SolveBalanceEquations(p.Por, volStrain(p.DEps), p.DEpsVW, p.DEpsVG)
	if err != nil {
		return chk.Err("material point %d: %v", p.Id, err)
	}
	mat.Porous.Update(p.Por, Δpl, Δpg)
	p.Pw, p.Pg = -p.Por.Pl, -p.Por.Pg
	p.Sl = p.Por.Sl
	p.RhoL, p.RhoG = p.Por.RhoL, p.Por.RhoG
	return nil
}

// wave1pt returns the maximum wave speed of a single point material point. For fluid
// filled pores, the three speeds of the coupled problem are
//   c1 = √((M + Kf/n) / ρ)    c2 = √(Kf / ρf)    c3 = L n g / (2 k)
func wave1pt(d *Domain, p *Particle, mat *inp.Material, L float64) float64 {
	ρ := p.Density()
	if mat.Phases == 1 || d.F[Water] == nil || p.Nf <= 0 {
		M := p.Mod
		if mat.Type == inp.MatUndrained && p.Nf > 0 {
			M += mat.Kl / p.Nf
		}
		return math.Sqrt(M / ρ)
	}
	Kf := mat.Kl
	if mat.Phases > 2 && d.F[Gas] != nil {
		Kf = FluidBulk(p.Sl, mat.Kl, mat.Kg)
	}
	c1 := math.Sqrt((p.Mod + Kf/p.Nf) / ρ)
	c2 := math.Sqrt(Kf / p.RhoL)
	c3 := L * p.Nf * d.Cfg.GravRef / (2.0 * minPositive(p.Kl))
	return math.Max(c1, math.Max(c2, c3))
}

// double point ////////////////////////////////////////////////////////////////////////////////////

func views2pt(d *Domain, p *Particle, mat *inp.Material, buf []view) []view {
	if p.Liquid {
		return append(buf[:0], view{Water, p.Mass, p.Vw})
	}
	return append(buf[:0], view{Solid, p.Mass, p.Vs})
}

// forces2pt maps forces of solid and liquid material points
//   solid:  Fint_s = -Σ Bᵀ (σ' + (1-n) pw m - q m) V    Fint_w = -Σ Bᵀ (n pw m) V
//   liquid: Fint_w = -Σ Bᵀ (σl - q m) V
// The drag force Fd = n² ρw g / k V (vw - vs) is computed at solid points in elements
// with liquid, where vw is interpolated from the liquid field
func forces2pt(d *Domain, w *worker, p *Particle, mat *inp.Material, g float64) {
	e := &d.Elems[p.Elem]
	ent, verts := p.Ent, e.Verts
	fs, fw := w.buf[Solid], w.buf[Water]
	var σ [6]float64
	copy(σ[:], p.State.Sig)

	// liquid point
	if p.Liquid {
		for i := 0; i < 3; i++ {
			σ[i] -= p.Qbulk
		}
		addInternal(fw, ent, verts, p.G, σ[:], p.Vol)
		addBody(fw, ent, verts, p.S, p.Mass*g)
		return
	}

	// solid point
	for i := 0; i < 3; i++ {
		σ[i] += (1-p.Nf)*p.Pw - p.Qbulk
	}
	addInternal(fs, ent, verts, p.G, σ[:], p.Vol)
	addBody(fs, ent, verts, p.S, p.Mass*g)
	if !e.Liquid || mat.Type != inp.MatSaturated {
		return
	}
	var pw [6]float64
	for i := 0; i < 3; i++ {
		pw[i] = p.Nf * p.Pw
	}
	addInternal(fw, ent, verts, p.G, pw[:], p.Vol)

	// drag
	var vw [3]float64
	d.interp(vw[:d.Ndim], d.F[Water], d.F[Water].Vel, ent, verts, p.S)
	coef := p.Nf * p.Nf * p.RhoL * d.Cfg.GravRef * p.Vol
	addDrag(fs, ent, verts, p.S, coef, p.Kl, vw[:d.Ndim], p.Vs, +1)
	addDrag(fw, ent, verts, p.S, coef, p.Kl, vw[:d.Ndim], p.Vs, -1)
}

// pressure2pt computes the liquid pressure at solid points in elements with liquid
func pressure2pt(d *Domain, p *Particle, mat *inp.Material, t float64) error {
	if p.Liquid {
		pm, _ := solid.Invariants(p.State.Sig)
		p.Pw = -pm
		return nil
	}
	if mat.Type != inp.MatSaturated || t < d.Cfg.TgravZero {
		return nil
	}
	if !d.Elems[p.Elem].Liquid {
		p.Pw = 0
		return nil
	}
	p.Pw += SaturatedPressure(mat.Kl, p.Nf, p.DEpsVW, volStrain(p.DEps))
	return nil
}

// wave2pt returns the wave speed of solid or liquid points of the double point formulation
//   solid: c = √(M / ((1-n) ρs))    liquid: c = √(Kl / ρl)
func wave2pt(d *Domain, p *Particle, mat *inp.Material, L float64) float64 {
	if p.Liquid {
		return math.Sqrt(mat.Kl / p.RhoL)
	}
	c := math.Sqrt(p.Mod / ((1 - p.Nf) * mat.RhoS))
	if mat.Type == inp.MatSaturated && d.Elems[p.Elem].Liquid {
		c = math.Max(c, L*p.Nf*d.Cfg.GravRef/(2.0*minPositive(p.Kl)))
	}
	return c
}

// pressure equations //////////////////////////////////////////////////////////////////////////////

// UndrainedPressure returns the pressure increment of undrained analyses (tension positive)
//   Δp = Kw / n Δεv
// Zero porosity gives a zero increment
func UndrainedPressure(Kw, n, Δεv float64) float64 {
	if n <= 0 {
		return 0
	}
	return Kw / n * Δεv
}

// SaturatedPressure returns the pressure increment of saturated points (tension positive)
//   Δp = Kf Δεw + (1-n)/n Kf Δεs
// Zero porosity gives a zero increment
func SaturatedPressure(Kf, n, Δεw, Δεs float64) float64 {
	if n <= 0 {
		return 0
	}
	return Kf*Δεw + (1-n)/n*Kf*Δεs
}

// PartSatPressure returns the pressure increment of partially saturated points
//   Δp = Sr (n Δεw + (1-n) Δεs) / (n Sr / Kw - n Cc)
// where Cc = ∂Sr/∂pc
func PartSatPressure(Kw, n, Sr, Cc, Δεw, Δεs float64) float64 {
	den := n*Sr/Kw - n*Cc
	if n <= 0 || den <= 0 {
		return 0
	}
	return Sr * (n*Δεw + (1-n)*Δεs) / den
}

// FluidBulk returns the bulk modulus of a mixture of liquid and gas
//   1/Kf = Sl/Kl + (1-Sl)/Kg
func FluidBulk(Sl, Kl, Kg float64) float64 {
	den := Sl / Kl
	if Kg > 0 {
		den += (1 - Sl) / Kg
	}
	if den <= 0 {
		return Kl
	}
	return 1.0 / den
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// volStrain returns the volumetric part of a strain vector
func volStrain(ε []float64) float64 {
	return ε[0] + ε[1] + ε[2]
}

// minPositive returns the smallest positive value in v or 1 if there are none
func minPositive(v []float64) (m float64) {
	m = math.Inf(1)
	for _, x := range v {
		if x > 0 && x < m {
			m = x
		}
	}
	if math.IsInf(m, 1) {
		return 1
	}
	return
}

// Density returns the density of a material point
func (o *Particle) Density() float64 {
	if o.Vol <= 0 {
		return 0
	}
	return (o.Mass + o.MassW + o.MassG) / o.Vol
}
