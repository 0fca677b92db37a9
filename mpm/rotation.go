// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import "math"

// RotationZ returns the matrix of a rotation by α about z. The local components of a
// vector are given by vloc = R ⋅ v
func RotationZ(ndim int, α float64) (R [][]float64) {
	c, s := math.Cos(α), math.Sin(α)
	R = make([][]float64, ndim)
	for i := range R {
		R[i] = make([]float64, ndim)
		R[i][i] = 1
	}
	R[0][0], R[0][1] = c, s
	R[1][0], R[1][1] = -s, c
	return
}

// RotateIn converts the global components of v into the local system (v := R ⋅ v)
func RotateIn(R [][]float64, v []float64) {
	if R == nil {
		return
	}
	rotate(R, v, false)
}

// RotateOut converts the local components of v into the global system (v := Rᵀ ⋅ v)
func RotateOut(R [][]float64, v []float64) {
	if R == nil {
		return
	}
	rotate(R, v, true)
}

// rotate computes v := R⋅v or v := Rᵀ⋅v
func rotate(R [][]float64, v []float64, transp bool) {
	var tmp [3]float64
	n := len(v)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if transp {
				tmp[i] += R[j][i] * v[j]
			} else {
				tmp[i] += R[i][j] * v[j]
			}
		}
	}
	copy(v, tmp[:n])
}

// nodeVec returns the slice with the vector of entity ent at node n of field f
func nodeVec(f *Field, vec []float64, ent, n int) []float64 {
	k := f.V(ent, n, 0)
	return vec[k : k+f.Ndim]
}
