// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// constants
const (
	INVMAP_TOL = 1.0e-10 // tolerance for inverse mapping function
	INVMAP_NIT = 25      // maximum number of iterations for inverse mapping
)

// InvMap computes the natural coordinates r, given the real coordinate y
//  Input:
//   y[ndim]         -- are the 2D/3D point coordinates
//   x[ndim][nverts] -- coordinates matrix of solid element
//  Output:
//   r[3] -- are the natural coordinates of given point
func (o *Shape) InvMap(r, y []float64, x [][]float64) (err error) {

	var δRnorm float64
	e := make([]float64, o.Gndim)  // residual
	δr := make([]float64, o.Gndim) // corrector
	r[0], r[1], r[2] = 0, 0, 0     // first trial
	it := 0
	for it = 0; it < INVMAP_NIT; it++ {

		// shape functions and derivatives
		o.Func(o.S, o.DSdR, r, true)

		// residual: e = y - x * S
		for i := 0; i < o.Gndim; i++ {
			e[i] = y[i]
			for j := 0; j < o.Nverts; j++ {
				e[i] -= x[i][j] * o.S[j]
			}
		}

		// Jimat == dRdx = inverse(dxdR)
		o.calcDxdR(x)
		o.J, err = o.invDxdR()
		if err != nil {
			return
		}

		// corrector: dR = Jimat * e
		δRnorm = 0.0
		for i := 0; i < o.Gndim; i++ {
			δr[i] = 0.0
			for j := 0; j < o.Gndim; j++ {
				δr[i] += o.DRdx[i][j] * e[j]
			}
		}
		for i := 0; i < o.Gndim; i++ {
			r[i] += δr[i]
			δRnorm += δr[i] * δr[i]
		}
		if math.Sqrt(δRnorm) < INVMAP_TOL {
			break
		}
	}

	// check
	if it == INVMAP_NIT {
		return chk.Err("%s: inverse mapping did not converge after %d iterations", o.Type, it)
	}
	return
}

// CellBryDist returns the shortest distance between R and the boundary of the cell in natural coordinates
//  Note: the distance is negative if R is outside the cell
func (o *Shape) CellBryDist(R []float64) float64 {
	r, s, t := R[0], R[1], 0.0
	if len(R) > 2 {
		t = R[2]
	}
	switch o.Type {
	case "tri3":
		return utl.Min(r, utl.Min(s, 1.0-r-s))
	case "qua4":
		return utl.Min(1.0-math.Abs(r), 1.0-math.Abs(s))
	case "hex8":
		return utl.Min(1.0-math.Abs(r), utl.Min(1.0-math.Abs(s), 1.0-math.Abs(t)))
	case "tet4":
		return utl.Min(r, utl.Min(s, utl.Min(t, 1.0-r-s-t)))
	}
	chk.Panic("cannot handle Type=%q yet", o.Type)
	return 0 // must not reach this point
}

// IsInside tells whether the natural coordinates R are inside the cell (within tolerance)
func (o *Shape) IsInside(R []float64, tol float64) bool {
	return o.CellBryDist(R) >= -tol
}

// Centroid computes the real coordinates of the centroid of the cell
func (o *Shape) Centroid(c []float64, x [][]float64) {
	for i := 0; i < len(x); i++ {
		c[i] = 0
		for m := 0; m < o.Nverts; m++ {
			c[i] += x[i][m]
		}
		c[i] /= float64(o.Nverts)
	}
}

// CharLength returns the characteristic length of the cell used in stability limits:
// the minimum altitude of simplices or the minimum edge length of other cells
func (o *Shape) CharLength(x [][]float64) (l float64, err error) {
	if o.Simplex {
		vol, e := o.Volume(x)
		if e != nil {
			return 0, e
		}
		maxface := 0.0
		for _, f := range o.FaceLocalVerts {
			maxface = math.Max(maxface, faceMeasure(x, f))
		}
		return float64(o.Gndim) * vol / maxface, nil
	}
	l = math.MaxFloat64
	for _, f := range o.FaceLocalVerts {
		for k := range f {
			a, b := f[k], f[(k+1)%len(f)]
			l = math.Min(l, dist(x, a, b))
		}
	}
	return
}

// faceMeasure returns the length (2D) or area (3D) of a face
func faceMeasure(x [][]float64, f []int) float64 {
	if len(x) == 2 {
		return dist(x, f[0], f[1])
	}
	var a [3]float64
	for k := 1; k < len(f)-1; k++ {
		u := []float64{x[0][f[k]] - x[0][f[0]], x[1][f[k]] - x[1][f[0]], x[2][f[k]] - x[2][f[0]]}
		v := []float64{x[0][f[k+1]] - x[0][f[0]], x[1][f[k+1]] - x[1][f[0]], x[2][f[k+1]] - x[2][f[0]]}
		a[0] += (u[1]*v[2] - u[2]*v[1]) / 2
		a[1] += (u[2]*v[0] - u[0]*v[2]) / 2
		a[2] += (u[0]*v[1] - u[1]*v[0]) / 2
	}
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}

// dist returns the distance between vertices a and b
func dist(x [][]float64, a, b int) float64 {
	d := 0.0
	for i := 0; i < len(x); i++ {
		d += (x[i][b] - x[i][a]) * (x[i][b] - x[i][a])
	}
	return math.Sqrt(d)
}

// ParticleNatCoords returns the natural coordinates {r, s, t} of n particles
// evenly distributed inside the cell
//  tri3: 1, 3 or 6;  qua4: 1, 4 or 9;  tet4: 1 or 4;  hex8: 1 or 8
func (o *Shape) ParticleNatCoords(n int) (R [][]float64, err error) {
	switch o.Type {
	case "tri3":
		switch n {
		case 1:
			return [][]float64{{1.0 / 3.0, 1.0 / 3.0, 0}}, nil
		case 3:
			return [][]float64{{1.0 / 6.0, 1.0 / 6.0, 0}, {2.0 / 3.0, 1.0 / 6.0, 0}, {1.0 / 6.0, 2.0 / 3.0, 0}}, nil
		case 6:
			a, b, c, d := 0.091576213509771, 0.816847572980459, 0.445948490915965, 0.108103018168070
			return [][]float64{{a, a, 0}, {b, a, 0}, {a, b, 0}, {c, d, 0}, {c, c, 0}, {d, c, 0}}, nil
		}
	case "tet4":
		switch n {
		case 1:
			return [][]float64{{0.25, 0.25, 0.25}}, nil
		case 4:
			a, b := 0.138196601125011, 0.585410196624969
			return [][]float64{{a, a, a}, {b, a, a}, {a, b, a}, {a, a, b}}, nil
		}
	case "qua4", "hex8":
		k := int(math.Round(math.Pow(float64(n), 1.0/float64(o.Gndim))))
		if int(math.Pow(float64(k), float64(o.Gndim))+0.5) == n {
			c := func(i int) float64 { return -1.0 + (2.0*float64(i)+1.0)/float64(k) }
			for i := 0; i < k; i++ {
				for j := 0; j < k; j++ {
					if o.Gndim == 2 {
						R = append(R, []float64{c(j), c(i), 0})
						continue
					}
					for l := 0; l < k; l++ {
						R = append(R, []float64{c(l), c(j), c(i)})
					}
				}
			}
			return
		}
	}
	return nil, chk.Err("%s: cannot generate %d particles per cell", o.Type, n)
}
