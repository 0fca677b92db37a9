// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// voigt holds the tensor indices of each vector component
var voigt = [NSIG][2]int{{0, 0}, {1, 1}, {2, 2}, {0, 1}, {1, 2}, {2, 0}}

// PrincipalStresses computes the principal values of σ sorted as p[0] ≥ p[1] ≥ p[2].
// The columns of N hold the corresponding directions
func PrincipalStresses(σ []float64) (p []float64, N *mat.Dense, err error) {
	sym := mat.NewSymDense(3, []float64{
		σ[0], σ[3], σ[5],
		σ[3], σ[1], σ[4],
		σ[5], σ[4], σ[2],
	})
	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return nil, nil, chk.Err("eigen decomposition of stress tensor failed. σ=%v", σ)
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	p = []float64{vals[2], vals[1], vals[0]}
	N = mat.NewDense(3, 3, nil)
	for k := 0; k < 3; k++ {
		for i := 0; i < 3; i++ {
			N.Set(i, k, vecs.At(i, 2-k))
		}
	}
	return
}

// FromPrincipal assembles σ = Σ p_k n_k ⊗ n_k in vector form.
// Shear components are multiplied by shearFactor (1 for stresses, 2 for engineering strains)
func FromPrincipal(res, p []float64, N *mat.Dense, shearFactor float64) {
	for m, ij := range voigt {
		v := 0.0
		for k := 0; k < 3; k++ {
			v += p[k] * N.At(ij[0], k) * N.At(ij[1], k)
		}
		if m > 2 {
			v *= shearFactor
		}
		res[m] = v
	}
}
