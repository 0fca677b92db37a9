// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/cpmech/gompm/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Vert holds vertex data
type Vert struct {
	Id  int       `json:"id"`  // id
	Tag int       `json:"tag"` // tag
	C   []float64 `json:"c"`   // coordinates (size==2 or 3)
}

// Cell holds cell data
type Cell struct {

	// input
	Id    int    `json:"id"`    // cell id
	Tag   int    `json:"tag"`   // cell tag
	Type  string `json:"type"`  // geometry type; e.g. "qua4"
	Verts []int  `json:"verts"` // vertices

	// derived
	Neighs []int      // neighbour cells across each face; -1 means boundary [nfaces]
	Shp    *shp.Shape // shape structure
}

// Mesh holds a mesh for MPM analyses
type Mesh struct {

	// input
	Verts []*Vert `json:"verts"` // vertices
	Cells []*Cell `json:"cells"` // cells

	// derived
	Ndim    int     // space dimension
	Xmin    float64 // min x-coordinate
	Xmax    float64 // max x-coordinate
	Ymin    float64 // min y-coordinate
	Ymax    float64 // max y-coordinate
	Zmin    float64 // min z-coordinate
	Zmax    float64 // max z-coordinate
	MaxElev float64 // maximum elevation

	// derived: maps
	VertTag2verts map[int][]*Vert // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell // cell tag => set of cells
}

// ReadMsh reads a mesh for MPM analyses
//  Note: returns nil on errors
func ReadMsh(dir, fn string, goroutineId int) (o *Mesh, err error) {
	b, err := os.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q:\n%v", fn, err)
	}
	return LoadMsh(b, goroutineId)
}

// LoadMsh decodes and checks a mesh given as JSON
func LoadMsh(b []byte, goroutineId int) (o *Mesh, err error) {

	// decode
	o = new(Mesh)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal mesh:\n%v", err)
	}
	if len(o.Verts) < 2 || len(o.Cells) < 1 {
		return nil, chk.Err("mesh must have at least 2 vertices and 1 cell")
	}

	// vertex related derived data
	o.Ndim = 2
	o.Xmin, o.Ymin = o.Verts[0].C[0], o.Verts[0].C[1]
	o.Xmax, o.Ymax = o.Xmin, o.Ymin
	if len(o.Verts[0].C) > 2 {
		o.Zmin = o.Verts[0].C[2]
		o.Zmax = o.Zmin
	}
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {
		if v.Id != i {
			return nil, chk.Err("vertices ids must coincide with order in \"verts\" list. %d != %d", v.Id, i)
		}
		if i == 0 && len(v.C) == 3 {
			o.Ndim = 3
		}
		if len(v.C) != o.Ndim {
			return nil, chk.Err("all vertices must have the same number of coordinates. vertex %d has %d", i, len(v.C))
		}
		if v.Tag < 0 {
			o.VertTag2verts[v.Tag] = append(o.VertTag2verts[v.Tag], v)
		}
		o.Xmin = utl.Min(o.Xmin, v.C[0])
		o.Xmax = utl.Max(o.Xmax, v.C[0])
		o.Ymin = utl.Min(o.Ymin, v.C[1])
		o.Ymax = utl.Max(o.Ymax, v.C[1])
		if o.Ndim > 2 {
			o.Zmin = utl.Min(o.Zmin, v.C[2])
			o.Zmax = utl.Max(o.Zmax, v.C[2])
		}
	}
	o.MaxElev = o.Ymax
	if o.Ndim == 3 {
		o.MaxElev = o.Zmax
	}

	// cell related derived data
	o.CellTag2cells = make(map[int][]*Cell)
	for i, c := range o.Cells {
		if c.Id != i {
			return nil, chk.Err("cells ids must coincide with order in \"cells\" list. %d != %d", c.Id, i)
		}
		if c.Tag >= 0 {
			return nil, chk.Err("cells tags must be negative. %d is incorrect", c.Tag)
		}
		c.Shp = shp.Get(c.Type, goroutineId)
		if c.Shp == nil {
			return nil, chk.Err("cannot find shape type == %q", c.Type)
		}
		if c.Shp.Gndim != o.Ndim {
			return nil, chk.Err("cell %d of type %q cannot be used in a %dD mesh", c.Id, c.Type, o.Ndim)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return nil, chk.Err("cell %d of type %q must have %d vertices", c.Id, c.Type, c.Shp.Nverts)
		}
		for _, v := range c.Verts {
			if v < 0 || v >= len(o.Verts) {
				return nil, chk.Err("cell %d has invalid vertex %d", c.Id, v)
			}
		}
		o.CellTag2cells[c.Tag] = append(o.CellTag2cells[c.Tag], c)
	}
	o.findNeighbours()
	return
}

// CellCoords returns the coordinates matrix x[ndim][nverts] of cell c
func (o *Mesh) CellCoords(c *Cell) (x [][]float64) {
	x = utl.Alloc(o.Ndim, len(c.Verts))
	for m, v := range c.Verts {
		for i := 0; i < o.Ndim; i++ {
			x[i][m] = o.Verts[v].C[i]
		}
	}
	return
}

// findNeighbours sets Neighs of all cells by matching faces with the same set of vertices
func (o *Mesh) findNeighbours() {
	type owner struct{ cell, face int }
	faces := make(map[string]owner)
	for _, c := range o.Cells {
		c.Neighs = make([]int, len(c.Shp.FaceLocalVerts))
		for f, lverts := range c.Shp.FaceLocalVerts {
			c.Neighs[f] = -1
			key := faceKey(c, lverts)
			if other, ok := faces[key]; ok {
				c.Neighs[f] = other.cell
				o.Cells[other.cell].Neighs[other.face] = c.Id
				delete(faces, key)
				continue
			}
			faces[key] = owner{c.Id, f}
		}
	}
}

// faceKey returns a key identifying a face regardless of the order of its vertices
func faceKey(c *Cell, lverts []int) string {
	ids := make([]int, len(lverts))
	for i, l := range lverts {
		ids[i] = c.Verts[l]
	}
	sort.Ints(ids)
	return io.Sf("%v", ids)
}
