// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"math"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gompm/mdl/porous"
	"github.com/cpmech/gompm/mdl/solid"
	"github.com/cpmech/gompm/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// Node holds data of a mesh node
type Node struct {
	Id   int          // id == vertex id
	Tag  int          // vertex tag
	X0   []float64    // reference coordinates
	X    []float64    // current coordinates
	Pres [3][]dbf.T   // prescribed velocities in the local system [nphases][ndim]; nil means free
	Rot  [][]float64  // rotation to local system; local = Rot * global. nil means global system
}

// Prescribed tells whether any component of phase ph is prescribed
func (o *Node) Prescribed(ph int) bool {
	for _, f := range o.Pres[ph] {
		if f != nil {
			return true
		}
	}
	return false
}

// Element holds data of an element of the background mesh
type Element struct {
	Id     int         // id == cell id
	Cell   *inp.Cell   // cell
	Verts  []int       // vertices == nodes
	Neighs []int       // neighbours across faces; -1 means boundary
	X      [][]float64 // current coordinates of vertices [ndim][nverts]
	Lmin   float64     // characteristic length
	Vol    float64     // volume
	Active bool        // has material points
	Parts  []int       // material points inside element
	Fill   float64     // filling ratio: sum of volumes of material points / volume
	Mats   Bitset      // materials present in element (by index)
	Ents   Bitset      // entities present in element
	Solid  bool        // has solid (or single-phase) material points
	Liquid bool        // has liquid material points
	Rep    int         // representative material point for mixed integration; -1 means none
	DEpsV  float64     // average volumetric strain increment
	RateV  float64     // average volumetric strain rate
}

// Particle holds data of a material point
type Particle struct {

	// identity
	Id     int  // index in arena
	Elem   int  // element containing this point
	Mat    int  // 1-based material index
	Ent    int  // entity
	Liquid bool // phase status: liquid material point
	Fixed  bool // velocities fully prescribed (hard entity); stresses are not computed

	// geometry
	R  []float64   // natural coordinates [3]
	X  []float64   // current position
	X0 []float64   // initial position
	U  []float64   // displacement
	S  []float64   // shape functions [nverts]
	G  [][]float64 // shape functions gradients [nverts][ndim]

	// mass and volume
	Mass  float64 // mass of solid (or of the single phase)
	MassW float64 // mass of liquid in pores
	MassG float64 // mass of gas in pores
	Vol   float64 // current volume (integration weight)
	Vol0  float64 // initial volume

	// kinematics [ndim]
	Vs []float64 // solid velocity
	Vw []float64 // liquid velocity
	Vg []float64 // gas velocity

	// strains
	Eps    []float64 // total strain [6]
	DEps   []float64 // strain increment of the step [6]
	DSpin  []float64 // spin increment {xy, yz, zx} [3]
	DEpsVW float64   // volumetric strain increment of liquid
	DEpsVG float64   // volumetric strain increment of gas

	// stresses and pressures
	State *solid.State  // effective stress and internal variables
	Sig0  []float64     // effective stress at the start of the step [6]
	Pw    float64       // liquid pressure; tension positive
	Pw0   float64       // liquid pressure at the start of the step
	Pg    float64       // gas pressure; tension positive
	Pg0   float64       // gas pressure at the start of the step
	Qbulk float64       // bulk viscosity pressure; compression positive
	Por   *porous.State // 3-phase state
	Mod   float64       // unloading (constrained) modulus

	// porous media
	Nf   float64   // porosity
	Sl   float64   // degree of saturation
	RhoL float64   // intrinsic density of liquid
	RhoG float64   // intrinsic density of gas
	Kl   []float64 // liquid conductivities [3]
	Kg   []float64 // gas conductivities [3]
	Free bool      // liquid point on free surface
}

// Domain holds the arenas of nodes, elements and material points. Ids are indices
type Domain struct {
	Sim   *inp.Simulation // simulation data
	Cfg   *Config         // run configuration
	Mats  *inp.MatDb      // materials
	Ndim  int             // space dimension
	Nent  int             // number of entities
	Nodes []Node          // nodes
	Elems []Element       // elements
	Parts []Particle      // material points

	// nodal fields
	F [3]*Field // fields of solid, water and gas; nil if phase is inactive

	// entities
	Hard [][]dbf.T // prescribed velocities of material points of hard entities [nent][ndim]

	// auxiliary
	Loc      *Locator  // spatial index
	sch      *scheme   // kernels of formulation
	workers  []*worker // workers
	res, ext []float64 // scratch for residual norms
}

// NewDomain allocates nodes, elements and material points
func NewDomain(sim *inp.Simulation, cfg *Config) (o *Domain, err error) {

	// new domain
	o = new(Domain)
	o.Sim = sim
	o.Cfg = cfg
	o.sch, err = getScheme(cfg)
	if err != nil {
		return nil, err
	}
	o.Mats = sim.MatModels
	o.Ndim = sim.Ndim
	o.Nent = sim.NumEntities()
	msh := sim.Msh

	// nodes
	o.Nodes = make([]Node, len(msh.Verts))
	for i, v := range msh.Verts {
		n := &o.Nodes[i]
		n.Id, n.Tag = v.Id, v.Tag
		n.X0 = make([]float64, o.Ndim)
		n.X = make([]float64, o.Ndim)
		copy(n.X0, v.C)
		copy(n.X, v.C)
	}
	err = o.setVertBcs(sim, cfg.Phases)
	if err != nil {
		return
	}
	err = o.setLocalSys(sim)
	if err != nil {
		return
	}

	// elements
	o.Elems = make([]Element, len(msh.Cells))
	for i, c := range msh.Cells {
		e := &o.Elems[i]
		e.Id, e.Cell, e.Rep = c.Id, c, -1
		e.Verts = c.Verts
		e.Neighs = c.Neighs
		e.X = msh.CellCoords(c)
		err = e.calcGeometry(c.Shp)
		if err != nil {
			return
		}
	}

	// entities
	o.Hard = make([][]dbf.T, o.Nent)
	for _, ent := range sim.Entities {
		if !ent.Hard {
			continue
		}
		o.Hard[ent.Id] = make([]dbf.T, o.Ndim)
		for j, key := range ent.Keys {
			ph, i, e := parseKey(key, o.Ndim)
			if e != nil || ph != Solid {
				return nil, chk.Err("key %q of hard entity %d is invalid", key, ent.Id)
			}
			o.Hard[ent.Id][i] = ent.Fcns[j]
		}
	}

	// fields
	nn := len(o.Nodes)
	for ph := 0; ph < cfg.Phases; ph++ {
		o.F[ph] = NewField(o.Nent, nn, o.Ndim)
	}

	// workers and spatial index
	o.workers = newWorkers(o, cfg.Workers, cfg.Phases)
	o.Loc = NewLocator(o)

	// material points
	err = o.generateParticles(sim, cfg)
	if err != nil {
		return
	}
	for i := range o.Parts {
		p := &o.Parts[i]
		err = o.CalcShape(p, o.Elems[p.Elem].Cell.Shp)
		if err != nil {
			return
		}
	}
	o.UpdateElements(cfg)
	return
}

// MatOf returns the material of material point p
func (o *Domain) MatOf(p *Particle) *inp.Material {
	return o.Mats.Get(p.Mat)
}

// calcGeometry computes volume and characteristic length of element
func (o *Element) calcGeometry(sh *shp.Shape) (err error) {
	o.Vol, err = sh.Volume(o.X)
	if err != nil {
		return chk.Err("cannot compute volume of element %d:\n%v", o.Id, err)
	}
	if o.Vol <= 0 {
		return chk.Err("element %d has non-positive volume %g", o.Id, o.Vol)
	}
	o.Lmin, err = sh.CharLength(o.X)
	if err != nil {
		return chk.Err("cannot compute characteristic length of element %d:\n%v", o.Id, err)
	}
	return
}

// setVertBcs sets prescribed velocities at nodes
func (o *Domain) setVertBcs(sim *inp.Simulation, nphases int) (err error) {
	for _, bc := range sim.VertBcs {
		verts := sim.Msh.VertTag2verts[bc.Tag]
		if len(verts) == 0 {
			return chk.Err("cannot find vertices with tag %d for boundary conditions", bc.Tag)
		}
		for j, key := range bc.Keys {
			ph, i, e := parseKey(key, o.Ndim)
			if e != nil {
				return e
			}
			if ph >= nphases {
				continue
			}
			for _, v := range verts {
				n := &o.Nodes[v.Id]
				if n.Pres[ph] == nil {
					n.Pres[ph] = make([]dbf.T, o.Ndim)
				}
				n.Pres[ph][i] = bc.Fcns[j]
			}
		}
	}
	return
}

// setLocalSys sets rotation matrices at nodes
func (o *Domain) setLocalSys(sim *inp.Simulation) (err error) {
	for _, ls := range sim.LocalSys {
		verts := sim.Msh.VertTag2verts[ls.Tag]
		if len(verts) == 0 {
			return chk.Err("cannot find vertices with tag %d for local system", ls.Tag)
		}
		for _, v := range verts {
			n := &o.Nodes[v.Id]
			α := ls.Angle * math.Pi / 180.0
			if ls.Cyl {
				if len(ls.Centre) < 2 {
					return chk.Err("cylindrical local system with tag %d needs the centre", ls.Tag)
				}
				α = math.Atan2(n.X0[1]-ls.Centre[1], n.X0[0]-ls.Centre[0])
			}
			n.Rot = RotationZ(o.Ndim, α)
		}
	}
	return
}

// parseKey returns phase and component of keys such as "ux", "wy" or "gz"
func parseKey(key string, ndim int) (ph, i int, err error) {
	if len(key) != 2 {
		return 0, 0, chk.Err("key %q is invalid", key)
	}
	switch key[0] {
	case 'u':
		ph = Solid
	case 'w':
		ph = Water
	case 'g':
		ph = Gas
	default:
		return 0, 0, chk.Err("key %q is invalid; the first letter must be u, w or g", key)
	}
	i = int(key[1]) - int('x')
	if i < 0 || i >= ndim {
		return 0, 0, chk.Err("key %q is invalid in %dD", key, ndim)
	}
	return
}

// generateParticles creates material points at fixed natural coordinates of cells
func (o *Domain) generateParticles(sim *inp.Simulation, cfg *Config) (err error) {
	for i := range o.Elems {
		e := &o.Elems[i]
		ed := sim.Etag2data(e.Cell.Tag)
		if ed == nil || ed.Npart < 1 {
			continue
		}
		mat := o.Mats.GetByName(ed.Mat)
		Rs, err := e.Cell.Shp.ParticleNatCoords(ed.Npart)
		if err != nil {
			return chk.Err("cannot generate material points in element %d:\n%v", e.Id, err)
		}
		vol := e.Vol / float64(len(Rs))
		for _, R := range Rs {
			p, err := o.newParticle(len(o.Parts), e, R, vol, mat, ed.Entity, cfg)
			if err != nil {
				return err
			}
			o.Parts = append(o.Parts, p)
		}
	}
	if len(o.Parts) == 0 {
		return chk.Err("there are no material points")
	}
	return
}

// newParticle creates a material point in element e at natural coordinates R
func (o *Domain) newParticle(id int, e *Element, R []float64, vol float64, mat *inp.Material, ent int, cfg *Config) (p Particle, err error) {
	nd, nv := o.Ndim, len(e.Verts)
	p = Particle{
		Id: id, Elem: e.Id, Mat: mat.Index, Ent: ent, Liquid: mat.Type == inp.MatLiquid,
		R: make([]float64, 3), X: make([]float64, nd), X0: make([]float64, nd), U: make([]float64, nd),
		S: make([]float64, nv), G: utl.Alloc(nv, nd),
		Vol: vol, Vol0: vol,
		Vs: make([]float64, nd), Vw: make([]float64, nd), Vg: make([]float64, nd),
		Eps: make([]float64, solid.NSIG), DEps: make([]float64, solid.NSIG), DSpin: make([]float64, 3),
		Sig0: make([]float64, solid.NSIG),
		Kl:   make([]float64, 3), Kg: make([]float64, 3),
	}
	copy(p.R, R)
	sh := e.Cell.Shp
	sh.RealCoords(p.X, e.X, R)
	copy(p.X0, p.X)

	// hard entity
	if h := o.Hard[ent]; h != nil {
		p.Fixed = true
		for _, f := range h {
			if f == nil {
				p.Fixed = false
			}
		}
	}

	// state
	p.State, err = mat.Solid.InitIntVars(p.Sig0)
	if err != nil {
		return
	}
	p.Mod = mat.M

	// masses and porous media
	p.Nf, p.Sl = mat.Nf0, mat.Sl0
	p.RhoL, p.RhoG = mat.RhoL, mat.RhoG
	switch mat.Type {
	case inp.MatLiquid:
		p.Mass = mat.RhoL * vol
	case inp.MatDry:
		p.Mass = (1 - p.Nf) * mat.RhoS * vol
	case inp.MatUndrained:
		p.Mass = mat.DensityMixture * vol
		p.Pw = mat.Pl0
	default:
		p.Mass = (1 - p.Nf) * mat.RhoS * vol
		p.Pw = mat.Pl0
		copy(p.Kl, mat.Klsat)
		if cfg.PartSat && mat.Reten != nil && mat.Porous == nil {
			updateSaturation(&p, mat)
		}
		p.MassW = p.Nf * p.Sl * p.RhoL * vol
	}
	if mat.Porous != nil {
		p.Pg = mat.Pg0
		p.Por = mat.Porous.NewState(-p.Pw, -p.Pg)
		p.Sl = p.Por.Sl
		mat.Porous.Conductivities(p.Kl, p.Kg, p.Sl)
		p.MassW = p.Nf * p.Sl * p.RhoL * vol
		if cfg.Phases > 2 {
			p.MassG = p.Nf * (1 - p.Sl) * p.RhoG * vol
		}
	}
	if cfg.Formulation == inp.DoublePoint {
		p.MassW, p.MassG = 0, 0
	}
	p.Pw0, p.Pg0 = p.Pw, p.Pg
	return
}

// Bitset holds a set of small non-negative integers
type Bitset []uint64

// Clear removes all items
func (o *Bitset) Clear() {
	*o = (*o)[:0]
}

// Set adds i to set
func (o *Bitset) Set(i int) {
	w := i / 64
	for len(*o) <= w {
		*o = append(*o, 0)
	}
	(*o)[w] |= 1 << uint(i%64)
}

// Count returns the number of items in set
func (o Bitset) Count() (n int) {
	for _, w := range o {
		for ; w != 0; w &= w - 1 {
			n++
		}
	}
	return
}
