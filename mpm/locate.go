// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"github.com/cpmech/gompm/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// tolerance in natural coordinates to accept a point inside a cell
const LOCATE_TOL = 1e-10

// centroid is an element centroid stored in the kd-tree
type centroid struct {
	x  []float64
	id int
}

// Compare returns the signed distance of a from the plane passing through b and perpendicular to d
func (a centroid) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return a.x[d] - b.(centroid).x[d]
}

// Dims returns the number of dimensions
func (a centroid) Dims() int { return len(a.x) }

// Distance returns the squared Euclidean distance between a and b
func (a centroid) Distance(b kdtree.Comparable) (d float64) {
	c := b.(centroid)
	for i, v := range a.x {
		d += (v - c.x[i]) * (v - c.x[i])
	}
	return
}

// centroids is a collection of centroids satisfying kdtree.Interface
type centroids []centroid

func (p centroids) Index(i int) kdtree.Comparable { return p[i] }
func (p centroids) Len() int                      { return len(p) }
func (p centroids) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}
func (p centroids) Pivot(d kdtree.Dim) int {
	return plane{centroids: p, Dim: d}.Pivot()
}

// plane sorts centroids along one dimension
type plane struct {
	kdtree.Dim
	centroids
}

func (p plane) Less(i, j int) bool { return p.centroids[i].x[p.Dim] < p.centroids[j].x[p.Dim] }
func (p plane) Pivot() int         { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.centroids = p.centroids[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.centroids[i], p.centroids[j] = p.centroids[j], p.centroids[i]
}

// Locator finds the element containing a point. Candidates are the elements with nearest
// centroids; they are confirmed by the inverse mapping
type Locator struct {
	dom   *Domain      // domain
	tree  *kdtree.Tree // tree of element centroids
	ncand int          // number of candidates
}

// NewLocator returns a new spatial index of the elements of domain
func NewLocator(dom *Domain) (o *Locator) {
	o = &Locator{dom: dom, ncand: 8}
	if len(dom.Elems) < o.ncand {
		o.ncand = len(dom.Elems)
	}
	o.Rebuild()
	return
}

// Rebuild rebuilds the tree with current coordinates of elements
func (o *Locator) Rebuild() {
	pts := make(centroids, len(o.dom.Elems))
	for i := range o.dom.Elems {
		e := &o.dom.Elems[i]
		c := make([]float64, o.dom.Ndim)
		e.Cell.Shp.Centroid(c, e.X)
		pts[i] = centroid{c, e.Id}
	}
	o.tree = kdtree.New(pts, false)
}

// Locate finds the element containing point x and the natural coordinates R of x.
// The element hint and its neighbours are tried first
func (o *Locator) Locate(R, x []float64, hint int, shapes map[string]*shp.Shape) (eid int, err error) {

	// hint and neighbours
	if hint >= 0 {
		if o.inside(R, x, hint, shapes) {
			return hint, nil
		}
		for _, nb := range o.dom.Elems[hint].Neighs {
			if nb >= 0 && o.inside(R, x, nb, shapes) {
				return nb, nil
			}
		}
	}

	// nearest centroids
	keep := kdtree.NewNKeeper(o.ncand)
	o.tree.NearestSet(keep, centroid{x: x})
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		id := c.Comparable.(centroid).id
		if o.inside(R, x, id, shapes) {
			return id, nil
		}
	}

	// exhaustive search
	for i := range o.dom.Elems {
		if o.inside(R, x, i, shapes) {
			return i, nil
		}
	}
	return -1, chk.Err("point %v is outside the mesh", x)
}

// inside tells whether x is inside element eid and sets R
func (o *Locator) inside(R, x []float64, eid int, shapes map[string]*shp.Shape) bool {
	e := &o.dom.Elems[eid]
	sh := shapes[e.Cell.Type]
	if sh.InvMap(R, x, e.X) != nil {
		return false
	}
	return sh.IsInside(R, LOCATE_TOL)
}

// CalcShape computes shape functions and gradients of material point p in its element
func (o *Domain) CalcShape(p *Particle, sh *shp.Shape) (err error) {
	e := &o.Elems[p.Elem]
	err = sh.CalcAtR(e.X, p.R, true)
	if err != nil {
		return chk.Err("cannot compute shape functions of material point %d in element %d:\n%v", p.Id, e.Id, err)
	}
	if len(p.S) != sh.Nverts {
		p.S = make([]float64, sh.Nverts)
		p.G = utl.Alloc(sh.Nverts, o.Ndim)
	}
	copy(p.S, sh.S)
	for m := range p.G {
		copy(p.G[m], sh.G[m])
	}
	return
}
