// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type           string      // name; e.g. "qua4"
	Func           ShpFunc     // shape/derivs function callback function
	Gndim          int         // geometry of shape; e.g. "tri3" => gnd == 2
	Nverts         int         // number of vertices in cell; e.g. "qua4" => 4
	VtkCode        int         // VTK code
	Simplex        bool        // triangle or tetrahedron
	FaceLocalVerts [][]int     // face local vertices [nfaces][...]
	NatCoords      [][]float64 // natural coordinates [gndim][nverts]
	Ips            [][]float64 // integration points {r, s, t, w} [nip][4]

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][gndim] dRdx == inverse(dxdR)
}

// GetCopy returns a new copy of this shape structure
func (o Shape) GetCopy() *Shape {
	p := o
	p.init_scratchpad()
	return &p
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure
//  Note: 1) returns nil on errors
//        2) use goroutineId > 0 to get a copy
func Get(geoType string, goroutineId int) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	if goroutineId > 0 {
		return s.GetCopy()
	}
	return s
}

// CalcAtR calculates volume data such as S and G at natural coordinate r
//  Input:
//   x[ndim][nverts] -- coordinates matrix of solid element
//   R[3]            -- local/natural coordinates
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtR(x [][]float64, R []float64, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, R, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	o.calcDxdR(x)

	// dRdx := inv(dxdR)
	o.J, err = o.invDxdR()
	if err != nil {
		return
	}

	// G == dSdx := dSdR * dRdx  =>  dS^m/dx_j := sum_i dS^m/dR_i * dR_i/dx_j
	for m := 0; m < o.Nverts; m++ {
		for j := 0; j < o.Gndim; j++ {
			o.G[m][j] = 0
			for i := 0; i < o.Gndim; i++ {
				o.G[m][j] += o.DSdR[m][i] * o.DRdx[i][j]
			}
		}
	}
	return
}

// RealCoords returns the real coordinates (y) of natural point R
func (o *Shape) RealCoords(y []float64, x [][]float64, R []float64) {
	o.Func(o.S, o.DSdR, R, false)
	for i := 0; i < len(x); i++ {
		y[i] = 0
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
}

// Volume computes the volume (area in 2D) of the cell
func (o *Shape) Volume(x [][]float64) (vol float64, err error) {
	for _, ip := range o.Ips {
		err = o.CalcAtR(x, ip, true)
		if err != nil {
			return
		}
		vol += o.J * ip[3]
	}
	return
}

// calcDxdR computes dxdR := x * dSdR
func (o *Shape) calcDxdR(x [][]float64) {
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}
}

// invDxdR computes dRdx := inv(dxdR) and returns det(dxdR)
func (o *Shape) invDxdR() (det float64, err error) {
	n := o.Gndim
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, o.DxdR[i][j])
		}
	}
	det = mat.Det(a)
	if det < MINDET {
		return det, chk.Err("%s: determinant of dxdR is too small or negative. det = %g", o.Type, det)
	}
	var ai mat.Dense
	err = ai.Inverse(a)
	if err != nil {
		return det, chk.Err("%s: cannot invert dxdR: %v", o.Type, err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			o.DRdx[i][j] = ai.At(i, j)
		}
	}
	return
}

// init_scratchpad initialise volume data (scratchpad)
func (o *Shape) init_scratchpad() {
	o.S = make([]float64, o.Nverts)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.DxdR = utl.Alloc(o.Gndim, o.Gndim)
	o.DRdx = utl.Alloc(o.Gndim, o.Gndim)
	o.G = utl.Alloc(o.Nverts, o.Gndim)
}
