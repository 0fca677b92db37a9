// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MapMassAndForces maps masses, momenta and forces of material points to the nodes and
// computes the nodal velocities. g is the gravity acceleration at time t
func (o *Domain) MapMassAndForces(t float64) (err error) {
	g := o.Cfg.Gravity(t)
	err = o.parallel(func(w *worker) error {
		for _, f := range w.buf {
			if f != nil {
				f.ResetMapped()
			}
		}
		return o.eachParticle(w, func(p *Particle) error {
			mat := o.MatOf(p)
			verts := o.Elems[p.Elem].Verts
			w.views = o.sch.views(o, p, mat, w.views)
			for _, v := range w.views {
				addMass(w.buf[v.ph], p.Ent, verts, p.S, v.mass, v.vel)
			}
			o.sch.forces(o, w, p, mat, g)
			return nil
		})
	})
	if err != nil {
		return
	}
	o.reduceMapped()
	for _, f := range o.F {
		if f != nil {
			f.GetNodalVelocityFromMomentum()
		}
	}
	return
}

// ComputeAcceleration computes the nodal accelerations of all fields. Fluids are solved
// first because the mixture equation of the single point formulation needs their
// accelerations. Prescribed components (in the local system of nodes) get zero
// acceleration. The local damping force opposes the nodal velocity:
//   F := F - α |F| sign(v)
func (o *Domain) ComputeAcceleration(diag *Diagnostics) {
	nd := o.Ndim
	α := o.Cfg.Damping
	for ph := len(o.F) - 1; ph >= 0; ph-- {
		f := o.F[ph]
		if f == nil {
			continue
		}
		res, ext := o.scratch(len(f.Fext))
		for ent := 0; ent < f.Nent; ent++ {
			for n := range o.Nodes {
				node := &o.Nodes[n]
				k0 := f.V(ent, n, 0)
				m := f.Mass[f.S(ent, n)]
				var F, Fe, v, a [3]float64
				for i := 0; i < nd; i++ {
					Fe[i] = f.Fext[k0+i]
					F[i] = f.Fext[k0+i] + f.Fint[k0+i] + f.Fdrag[k0+i]
					if ph == Solid && o.sch.coupled {
						for _, fl := range []int{Water, Gas} {
							if o.F[fl] != nil {
								F[i] -= o.F[fl].MassN[f.S(ent, n)] * o.F[fl].Acc[k0+i]
							}
						}
					}
					v[i] = f.Vel[k0+i]
				}
				RotateIn(node.Rot, F[:nd])
				RotateIn(node.Rot, Fe[:nd])
				RotateIn(node.Rot, v[:nd])
				for i := 0; i < nd; i++ {
					if node.Pres[ph] != nil && node.Pres[ph][i] != nil {
						continue
					}
					res[k0+i] = F[i]
					ext[k0+i] = Fe[i]
					if α > 0 && v[i] != 0 {
						F[i] -= α * math.Abs(F[i]) * math.Copysign(1, v[i])
					}
					if m > 0 {
						a[i] = F[i] / m
					}
				}
				RotateOut(node.Rot, a[:nd])
				copy(f.Acc[k0:k0+nd], a[:nd])
			}
		}
		grp := energyGroup(ph)
		r, e := floats.Norm(res, 2), floats.Norm(ext, 2)
		if grp != Mixture {
			diag.Fres[grp], diag.Fext[grp] = r, e
		}
		diag.Fres[Mixture] = math.Hypot(diag.Fres[Mixture], r)
		diag.Fext[Mixture] = math.Hypot(diag.Fext[Mixture], e)
	}
}

// UpdateParticleVelocityAndMapMomentum updates the velocities of material points with the
// interpolated nodal accelerations (forward Euler) and maps the new momenta back to the
// nodes; then computes the nodal velocities. Material points of hard entities get the
// prescribed velocities at t+dt
func (o *Domain) UpdateParticleVelocityAndMapMomentum(t, dt float64) (err error) {
	nd := o.Ndim
	err = o.parallel(func(w *worker) error {
		for _, f := range w.buf {
			if f != nil {
				f.ResetMom()
			}
		}
		return o.eachParticle(w, func(p *Particle) error {
			mat := o.MatOf(p)
			verts := o.Elems[p.Elem].Verts
			w.views = o.sch.views(o, p, mat, w.views)
			for _, v := range w.views {
				f := o.F[v.ph]
				var a [3]float64
				o.interp(a[:nd], f, f.Acc, p.Ent, verts, p.S)
				for i := 0; i < nd; i++ {
					v.vel[i] += dt * a[i]
				}
				if h := o.Hard[p.Ent]; h != nil && v.ph == o.strainPhase(p) {
					for i, fcn := range h {
						if fcn != nil {
							v.vel[i] = fcn.F(t+dt, nil)
						}
					}
				}
				addMom(w.buf[v.ph], p.Ent, verts, p.S, v.mass, v.vel)
			}
			return nil
		})
	})
	if err != nil {
		return
	}
	o.reduceMom()
	for _, f := range o.F {
		if f != nil {
			f.GetNodalVelocityFromMomentum()
		}
	}
	return
}

// PrescribeVelocities sets the prescribed components of nodal velocities at time t.
// The components are given in the local system of nodes
func (o *Domain) PrescribeVelocities(t float64) {
	for ph, f := range o.F {
		if f == nil {
			continue
		}
		for n := range o.Nodes {
			node := &o.Nodes[n]
			if !node.Prescribed(ph) {
				continue
			}
			for ent := 0; ent < f.Nent; ent++ {
				v := nodeVec(f, f.Vel, ent, n)
				RotateIn(node.Rot, v)
				for i, fcn := range node.Pres[ph] {
					if fcn != nil {
						v[i] = fcn.F(t, nil)
					}
				}
				RotateOut(node.Rot, v)
			}
		}
	}
}

// ComputeIncrements computes the nodal incremental displacements Δu = v Δt
func (o *Domain) ComputeIncrements(dt float64) {
	for _, f := range o.F {
		if f == nil {
			continue
		}
		for k, v := range f.Vel {
			f.Du[k] = v * dt
		}
	}
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// energyGroup returns the energy group of a field
func energyGroup(ph int) int {
	switch ph {
	case Solid:
		return EnSolid
	case Water:
		return EnWater
	}
	return Mixture
}

// scratch returns two zeroed vectors of size n
func (o *Domain) scratch(n int) (a, b []float64) {
	if len(o.res) != n {
		o.res, o.ext = make([]float64, n), make([]float64, n)
	}
	for i := 0; i < n; i++ {
		o.res[i], o.ext[i] = 0, 0
	}
	return o.res, o.ext
}

// interp interpolates the nodal vector vec of field f at a material point with shape functions S
func (o *Domain) interp(res []float64, f *Field, vec []float64, ent int, verts []int, S []float64) {
	for i := range res {
		res[i] = 0
	}
	for m, n := range verts {
		k := f.V(ent, n, 0)
		for i := range res {
			res[i] += S[m] * vec[k+i]
		}
	}
}

// addMass adds mass and momentum of a material point
func addMass(f *Field, ent int, verts []int, S []float64, mass float64, vel []float64) {
	for m, n := range verts {
		f.Mass[f.S(ent, n)] += S[m] * mass
		k := f.V(ent, n, 0)
		for i := 0; i < f.Ndim; i++ {
			f.Mom[k+i] += S[m] * mass * vel[i]
		}
	}
}

// addMom adds the momentum of a material point
func addMom(f *Field, ent int, verts []int, S []float64, mass float64, vel []float64) {
	for m, n := range verts {
		k := f.V(ent, n, 0)
		for i := 0; i < f.Ndim; i++ {
			f.Mom[k+i] += S[m] * mass * vel[i]
		}
	}
}

// addInternal adds the internal forces -Bᵀ σ V
func addInternal(f *Field, ent int, verts []int, G [][]float64, σ []float64, vol float64) {
	for m, n := range verts {
		k := f.V(ent, n, 0)
		g := G[m]
		if f.Ndim == 2 {
			f.Fint[k] -= (g[0]*σ[0] + g[1]*σ[3]) * vol
			f.Fint[k+1] -= (g[0]*σ[3] + g[1]*σ[1]) * vol
			continue
		}
		f.Fint[k] -= (g[0]*σ[0] + g[1]*σ[3] + g[2]*σ[5]) * vol
		f.Fint[k+1] -= (g[0]*σ[3] + g[1]*σ[1] + g[2]*σ[4]) * vol
		f.Fint[k+2] -= (g[0]*σ[5] + g[1]*σ[4] + g[2]*σ[2]) * vol
	}
}

// addBody adds the weight w of a material point. Gravity acts along -y (2D) or -z (3D)
func addBody(f *Field, ent int, verts []int, S []float64, w float64) {
	for m, n := range verts {
		f.Fext[f.V(ent, n, f.Ndim-1)] -= S[m] * w
	}
}

// addFluid adds the mass weighted by the volume fraction, the weight mf g and the internal
// force -Bᵀ (p m) V of a fluid in the pores of a material point
func addFluid(f *Field, ent int, verts []int, p *Particle, mf, mfn, pf, g float64) {
	for m, n := range verts {
		f.MassN[f.S(ent, n)] += p.S[m] * mfn
	}
	addBody(f, ent, verts, p.S, mf*g)
	var σ [6]float64
	σ[0], σ[1], σ[2] = pf, pf, pf
	addInternal(f, ent, verts, p.G, σ[:], p.Vol)
}

// addDrag adds the interaction force sign ⋅ c / k (va - vb)
func addDrag(f *Field, ent int, verts []int, S []float64, c float64, k, va, vb []float64, sign float64) {
	for m, n := range verts {
		kk := f.V(ent, n, 0)
		for i := 0; i < f.Ndim; i++ {
			if k[i] <= 0 {
				continue
			}
			f.Fdrag[kk+i] += sign * S[m] * c / k[i] * (va[i] - vb[i])
		}
	}
}
