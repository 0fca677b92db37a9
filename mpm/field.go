// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import "gonum.org/v1/gonum/floats"

// Field holds nodal quantities of one phase for all entities.
// Scalars are indexed by ent*Nnod+node and vectors by (ent*Nnod+node)*Ndim+i
type Field struct {
	Nent, Nnod, Ndim int

	// mapped from material points
	Mass  []float64 // lumped mass
	MassN []float64 // lumped mass weighted by the volume fraction; e.g. n Sl ρl V
	Mom   []float64 // momentum
	Fint  []float64 // internal forces
	Fext  []float64 // external forces
	Fdrag []float64 // drag (interaction) forces

	// computed at nodes
	Vel []float64 // velocity
	Acc []float64 // acceleration
	Du  []float64 // incremental displacement
}

// NewField allocates a new field
func NewField(nent, nnod, ndim int) *Field {
	ns, nv := nent*nnod, nent*nnod*ndim
	return &Field{
		Nent: nent, Nnod: nnod, Ndim: ndim,
		Mass: make([]float64, ns), MassN: make([]float64, ns),
		Mom: make([]float64, nv), Fint: make([]float64, nv), Fext: make([]float64, nv), Fdrag: make([]float64, nv),
		Vel: make([]float64, nv), Acc: make([]float64, nv), Du: make([]float64, nv),
	}
}

// S returns the index of a scalar
func (o *Field) S(ent, node int) int { return ent*o.Nnod + node }

// V returns the index of the i-th component of a vector
func (o *Field) V(ent, node, i int) int { return (ent*o.Nnod+node)*o.Ndim + i }

// ResetMapped zeroes the quantities mapped from material points
func (o *Field) ResetMapped() {
	for _, v := range [][]float64{o.Mass, o.MassN, o.Mom, o.Fint, o.Fext, o.Fdrag} {
		zero(v)
	}
}

// ResetMom zeroes the momentum
func (o *Field) ResetMom() {
	zero(o.Mom)
}

// AddMapped adds the mapped quantities of another field
func (o *Field) AddMapped(other *Field) {
	floats.Add(o.Mass, other.Mass)
	floats.Add(o.MassN, other.MassN)
	floats.Add(o.Mom, other.Mom)
	floats.Add(o.Fint, other.Fint)
	floats.Add(o.Fext, other.Fext)
	floats.Add(o.Fdrag, other.Fdrag)
}

// AddMom adds the momentum of another field
func (o *Field) AddMom(other *Field) {
	floats.Add(o.Mom, other.Mom)
}

// GetNodalVelocityFromMomentum computes v = p / m for all entities and nodes.
// Nodes without mass get zero velocity
func (o *Field) GetNodalVelocityFromMomentum() {
	for e := 0; e < o.Nent; e++ {
		for n := 0; n < o.Nnod; n++ {
			m := o.Mass[o.S(e, n)]
			for i := 0; i < o.Ndim; i++ {
				k := o.V(e, n, i)
				if m > 0 {
					o.Vel[k] = o.Mom[k] / m
				} else {
					o.Vel[k] = 0
				}
			}
		}
	}
}

// zero sets all values to zero
func zero(v []float64) {
	for i := range v {
		v[i] = 0
	}
}
