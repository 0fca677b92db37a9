// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"math"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gompm/mdl/fluid"
	"github.com/cpmech/gompm/mdl/retention"
	"github.com/cpmech/gompm/mdl/solid"
	"github.com/cpmech/gosl/chk"
)

// ConvectiveUpdate advances the material points with the nodal incremental displacements:
// mesh (updated Lagrangian) → strains → stresses and pressures → volumes, densities,
// porosities, saturations and conductivities → positions → relocation → elements
func (o *Domain) ConvectiveUpdate(diag *Diagnostics, t, dt float64) (err error) {

	// mesh
	if o.Cfg.UpdMesh {
		err = o.UpdateMesh()
		if err != nil {
			return
		}
	}

	// strains
	err = o.parallel(func(w *worker) error {
		for i := w.start; i < w.end; i++ {
			o.updateStrains(&o.Elems[i], dt)
		}
		return nil
	})
	if err != nil {
		return
	}

	// stresses and pressures
	err = o.UpdateStresses(diag, t, dt)
	if err != nil {
		return
	}

	// state of material points and relocation
	err = o.parallel(func(w *worker) error {
		return o.eachParticle(w, func(p *Particle) error {
			if err := o.updateVolume(p); err != nil {
				return err
			}
			return o.updatePosition(w, p)
		})
	})
	if err != nil {
		return
	}

	// elements
	o.UpdateElements(o.Cfg)
	return
}

// UpdateMesh moves the nodes with the mass weighted incremental displacements of the
// solid field and recomputes the geometry of elements
func (o *Domain) UpdateMesh() (err error) {
	f := o.F[Solid]
	for n := range o.Nodes {
		node := &o.Nodes[n]
		var mtot float64
		var du [3]float64
		for ent := 0; ent < f.Nent; ent++ {
			m := f.Mass[f.S(ent, n)]
			mtot += m
			for i := 0; i < o.Ndim; i++ {
				du[i] += m * f.Du[f.V(ent, n, i)]
			}
		}
		if mtot <= 0 {
			continue
		}
		for i := 0; i < o.Ndim; i++ {
			node.X[i] += du[i] / mtot
		}
	}
	for i := range o.Elems {
		e := &o.Elems[i]
		for m, v := range e.Verts {
			for j := 0; j < o.Ndim; j++ {
				e.X[j][m] = o.Nodes[v].X[j]
			}
		}
		err = e.calcGeometry(e.Cell.Shp)
		if err != nil {
			return
		}
	}
	o.Loc.Rebuild()
	return
}

// updateStrains computes the strain increments of material points in element e and the
// average volumetric strain increment and rate of element. With smoothing, the
// volumetric part of the increments is replaced by the element average
func (o *Domain) updateStrains(e *Element, dt float64) {
	e.DEpsV, e.RateV = 0, 0
	if !e.Active {
		return
	}
	var vol float64
	for _, pid := range e.Parts {
		p := &o.Parts[pid]
		f := o.F[o.strainPhase(p)]
		StrainIncrement(p.DEps, p.DSpin, f, p.Ent, e.Verts, p.G)
		p.DEpsVW, p.DEpsVG = 0, 0
		if !p.Liquid {
			if fw := o.F[Water]; fw != nil {
				p.DEpsVW = volIncrement(fw, p.Ent, e.Verts, p.G)
			}
			if fg := o.F[Gas]; fg != nil {
				p.DEpsVG = volIncrement(fg, p.Ent, e.Verts, p.G)
			}
		}
		e.DEpsV += volStrain(p.DEps) * p.Vol
		vol += p.Vol
	}
	if vol > 0 {
		e.DEpsV /= vol
	}
	if dt > 0 {
		e.RateV = e.DEpsV / dt
	}
	if !o.Cfg.Smoothing || e.Solid && e.Liquid {
		return
	}
	for _, pid := range e.Parts {
		p := &o.Parts[pid]
		δ := (e.DEpsV - volStrain(p.DEps)) / 3.0
		for i := 0; i < 3; i++ {
			p.DEps[i] += δ
		}
	}
}

// StrainIncrement computes the strain increment Δε and the spin increment ω of a material
// point from the nodal incremental displacements of field f
func StrainIncrement(Δε, ω []float64, f *Field, ent int, verts []int, G [][]float64) {
	for i := range Δε {
		Δε[i] = 0
	}
	for i := range ω {
		ω[i] = 0
	}
	for m, n := range verts {
		k := f.V(ent, n, 0)
		g := G[m]
		ux, uy := f.Du[k], f.Du[k+1]
		Δε[0] += g[0] * ux
		Δε[1] += g[1] * uy
		Δε[3] += g[1]*ux + g[0]*uy
		ω[0] += 0.5 * (g[1]*ux - g[0]*uy)
		if f.Ndim == 3 {
			uz := f.Du[k+2]
			Δε[2] += g[2] * uz
			Δε[4] += g[2]*uy + g[1]*uz
			Δε[5] += g[0]*uz + g[2]*ux
			ω[1] += 0.5 * (g[2]*uy - g[1]*uz)
			ω[2] += 0.5 * (g[0]*uz - g[2]*ux)
		}
	}
}

// volIncrement returns the volumetric strain increment of field f at a material point
func volIncrement(f *Field, ent int, verts []int, G [][]float64) (εv float64) {
	for m, n := range verts {
		k := f.V(ent, n, 0)
		for i := 0; i < f.Ndim; i++ {
			εv += G[m][i] * f.Du[k+i]
		}
	}
	return
}

// updateVolume updates volume, density, porosity, saturation, conductivities and masses of
// fluids in pores of material point p
func (o *Domain) updateVolume(p *Particle) (err error) {
	for i, v := range p.DEps {
		p.Eps[i] += v
	}
	mat := o.MatOf(p)
	Δεv := volStrain(p.DEps)

	// liquid material points conserve their mass
	if p.Liquid {
		e := &o.Elems[p.Elem]
		if mat.Liquid != nil {
			pm, _ := solid.Invariants(p.State.Sig)
			p.RhoL = LiquidDensity(mat.Liquid, p.RhoL, Δεv, -pm, p.Free, e.Fill)
		}
		if p.RhoL <= 0 {
			return chk.Err("density of liquid material point %d is not positive", p.Id)
		}
		p.Vol = p.Mass / p.RhoL
		return
	}

	// volume and porosity
	if 1+Δεv <= 0 {
		return chk.Err("volume of material point %d in element %d became negative", p.Id, p.Elem)
	}
	p.Vol *= 1 + Δεv
	if mat.Type == inp.MatDry || mat.Type == inp.MatUndrained {
		return
	}
	p.Nf = Porosity(p.Nf, Δεv)
	if p.Por != nil {
		p.Por.Nf = p.Nf
	}

	// saturation and conductivities. The balance equations of 3-phase points already
	// updated the porous state
	if o.Cfg.PartSat && mat.Reten != nil && mat.Porous == nil {
		updateSaturation(p, mat)
	} else if mat.Porous != nil {
		mat.Porous.Conductivities(p.Kl, p.Kg, p.Sl)
	}

	// fluids in pores
	if o.Cfg.Formulation == inp.SinglePoint {
		p.MassW = p.Nf * p.Sl * p.RhoL * p.Vol
		if mat.Type == inp.MatUnsaturated && o.Cfg.Phases > 2 {
			p.MassG = p.Nf * (1 - p.Sl) * p.RhoG * p.Vol
		}
	}
	return
}

// updateSaturation computes the degree of saturation of partially saturated 2-phase points
// from the retention curve with the suction pc = max(pw, 0) and then the liquid
// conductivities kl = klr(Sl) klsat
func updateSaturation(p *Particle, mat *inp.Material) {
	p.Sl = retention.Update(mat.Reten, 0, math.Max(p.Pw, 0))
	klr := mat.Conduct.Klr(p.Sl)
	for i := range p.Kl {
		p.Kl[i] = klr * mat.Klsat[i]
	}
}

// updatePosition moves material point p with the interpolated incremental displacements
// and finds its new element
func (o *Domain) updatePosition(w *worker, p *Particle) (err error) {
	var du [3]float64
	f := o.F[o.strainPhase(p)]
	o.interp(du[:o.Ndim], f, f.Du, p.Ent, o.Elems[p.Elem].Verts, p.S)
	for i := 0; i < o.Ndim; i++ {
		p.X[i] += du[i]
		p.U[i] += du[i]
	}
	eid, err := o.Loc.Locate(p.R, p.X, p.Elem, w.shapes)
	if err != nil {
		return chk.Err("material point %d left the mesh:\n%v", p.Id, err)
	}
	p.Elem = eid
	return o.CalcShape(p, w.shapes[o.Elems[eid].Cell.Type])
}

// UpdateElements rebuilds the lists of material points of elements and the element
// bookkeeping: activity, filling ratio, materials, entities, phases, representative
// points and free surface flags of liquid points
func (o *Domain) UpdateElements(cfg *Config) {
	for i := range o.Elems {
		e := &o.Elems[i]
		e.Parts = e.Parts[:0]
		e.Active, e.Solid, e.Liquid = false, false, false
		e.Fill, e.Rep = 0, -1
		e.Mats.Clear()
		e.Ents.Clear()
	}
	fixed := make(map[int]bool)
	for i := range o.Parts {
		p := &o.Parts[i]
		e := &o.Elems[p.Elem]
		e.Parts = append(e.Parts, p.Id)
		e.Fill += p.Vol
		e.Mats.Set(p.Mat)
		e.Ents.Set(p.Ent)
		if p.Liquid {
			e.Liquid = true
		} else {
			e.Solid = true
		}
		if p.Fixed {
			fixed[e.Id] = true
		}
	}
	for i := range o.Elems {
		e := &o.Elems[i]
		e.Active = len(e.Parts) > 0
		e.Fill /= e.Vol
		if cfg.Mixed && e.Active && e.Fill >= cfg.FreeSurf && !fixed[e.Id] &&
			e.Mats.Count() == 1 && e.Ents.Count() == 1 && !(e.Solid && e.Liquid) {
			e.Rep = e.Parts[0]
		}
	}
	for i := range o.Parts {
		p := &o.Parts[i]
		if !p.Liquid {
			continue
		}
		p.Free = o.OnFreeSurface(&o.Elems[p.Elem], cfg.FreeSurf)
	}
}

// OnFreeSurface tells whether liquid points in element e are on the free surface: the
// element is partially filled or it has an empty neighbour
func (o *Domain) OnFreeSurface(e *Element, factor float64) bool {
	if e.Fill < factor {
		return true
	}
	for _, nb := range e.Neighs {
		if nb >= 0 && !o.Elems[nb].Active {
			return true
		}
	}
	return false
}

// LiquidDensity returns the intrinsic density of a liquid material point for the
// volumetric strain increment Δεv. pw is the (tension positive) pressure. The density
// is integrated only above the cavitation pressure and away from a partially filled free
// surface; otherwise it is set to the threshold density
func LiquidDensity(mdl *fluid.Model, ρ, Δεv, pw float64, free bool, fill float64) float64 {
	return mdl.LiquidDensity(ρ, Δεv, -pw, free && fill < 1)
}

// Porosity returns the porosity after the volumetric strain increment Δεv. The volume of
// solids is conserved:
//   n = 1 - (1 - n0) / (1 + Δεv)
// Negative values are clamped to zero
func Porosity(n0, Δεv float64) float64 {
	n := 1 - (1-n0)/(1+Δεv)
	return math.Max(n, 0)
}
