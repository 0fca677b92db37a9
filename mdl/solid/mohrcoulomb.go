// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"gonum.org/v1/gonum/mat"
)

// MohrCoulomb implements an elastic perfectly-plastic Mohr-Coulomb model with tension
// cut-off and optional exponential strain softening:
//   x = xr + (xp - xr) exp(-η εq)
// for x = {c, φ, ψ}; εq is the accumulated deviatoric plastic strain.
// The return mapping is performed in principal stress space (plane, edge and apex returns)
type MohrCoulomb struct {
	LinElast

	// parameters
	C    float64 // peak cohesion
	Phi  float64 // peak friction angle [deg]
	Psi  float64 // peak dilatancy angle [deg]
	Cr   float64 // residual cohesion
	Phir float64 // residual friction angle [deg]
	Psir float64 // residual dilatancy angle [deg]
	Eta  float64 // shape factor of the softening law
	Sigt float64 // tensile strength; cut-off is disabled if ≤ 0

	// options
	Softening bool // strain softening is active

	// auxiliary
	dp [][]float64 // principal elastic stiffness
}

// add model to factory
func init() {
	allocators["mc"] = func() Model { return new(MohrCoulomb) }
	allocators["mc-ss"] = func() Model { return &MohrCoulomb{Softening: true} }
}

// Init initialises model
func (o *MohrCoulomb) Init(ndim int, prms dbf.Params) (err error) {
	var hasE, hasNu, hasK, hasG bool
	var hasCr, hasPhir, hasPsir bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, hasE = p.V, true
		case "nu":
			o.Nu, hasNu = p.V, true
		case "K":
			o.K, hasK = p.V, true
		case "G":
			o.G, hasG = p.V, true
		case "c":
			o.C = p.V
		case "phi":
			o.Phi = p.V
		case "psi":
			o.Psi = p.V
		case "cr":
			o.Cr, hasCr = p.V, true
		case "phir":
			o.Phir, hasPhir = p.V, true
		case "psir":
			o.Psir, hasPsir = p.V, true
		case "eta":
			o.Eta = p.V
		case "sigt":
			o.Sigt = p.V
		}
	}
	err = o.setModuli(hasE, hasNu, hasK, hasG)
	if err != nil {
		return
	}
	if o.C < 0 {
		return chk.Err("cohesion must be non-negative. c=%g is invalid", o.C)
	}
	if o.Phi < 0 || o.Phi >= 90 {
		return chk.Err("friction angle must be in [0, 90[. phi=%g is invalid", o.Phi)
	}
	if o.Psi < 0 || o.Psi > o.Phi {
		return chk.Err("dilatancy angle must be in [0, phi]. psi=%g is invalid", o.Psi)
	}
	if !hasCr {
		o.Cr = o.C
	}
	if !hasPhir {
		o.Phir = o.Phi
	}
	if !hasPsir {
		o.Psir = o.Psi
	}
	if o.Softening && o.Eta < 0 {
		return chk.Err("shape factor of softening law must be non-negative. eta=%g is invalid", o.Eta)
	}
	o.dp = [][]float64{
		{o.l + 2*o.G, o.l, o.l},
		{o.l, o.l + 2*o.G, o.l},
		{o.l, o.l, o.l + 2*o.G},
	}
	return
}

// GetPrms gets (an example) of parameters
func (o MohrCoulomb) GetPrms(example bool) dbf.Params {
	prms := []*dbf.P{
		&dbf.P{N: "E", V: 1e4},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "c", V: 10},
		&dbf.P{N: "phi", V: 30},
		&dbf.P{N: "psi", V: 0},
	}
	if o.Softening {
		prms = append(prms,
			&dbf.P{N: "cr", V: 2},
			&dbf.P{N: "phir", V: 20},
			&dbf.P{N: "psir", V: 0},
			&dbf.P{N: "eta", V: 50},
		)
	}
	return prms
}

// InitIntVars initialises internal (secondary) variables
//  α[0] -- accumulated deviatoric plastic strain εq
func (o MohrCoulomb) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(1, 0)
	copy(s.Sig, σ)
	return
}

// Strength returns the current strength parameters for given εq
//  φ and ψ are returned in radians
func (o MohrCoulomb) Strength(εq float64) (c, φ, ψ float64) {
	c, φ, ψ = o.C, o.Phi, o.Psi
	if o.Softening {
		f := math.Exp(-o.Eta * εq)
		c = o.Cr + (o.C-o.Cr)*f
		φ = o.Phir + (o.Phi-o.Phir)*f
		ψ = o.Psir + (o.Psi-o.Psir)*f
	}
	return c, φ * math.Pi / 180.0, ψ * math.Pi / 180.0
}

// Update updates stresses for given strain increment
func (o *MohrCoulomb) Update(s *State, Δε []float64, dt float64) (err error) {

	// strength and trial stress
	s.ResetFlags()
	c, φ, ψ := o.Strength(s.Alp[0])
	σtr := make([]float64, NSIG)
	copy(σtr, s.Sig)
	o.AddElastic(σtr, Δε)

	// principal values
	ptr, N, err := PrincipalStresses(σtr)
	if err != nil {
		return
	}
	sφ, cφ, sψ := math.Sin(φ), math.Cos(φ), math.Sin(ψ)
	f := o.yield(ptr, 0, 2, c, sφ, cφ)
	cut := o.Sigt > 0 && ptr[0] > o.Sigt

	// elastic update
	if f <= 0 && !cut {
		copy(s.Sig, σtr)
		return
	}

	// return mapping
	s.Loading = true
	p := make([]float64, 3)
	copy(p, ptr)
	if f > 0 {
		o.returnMap(p, s, c, sφ, cφ, sψ)
	}
	if o.Sigt > 0 {
		for i := 0; i < 3; i++ {
			if p[i] > o.Sigt {
				p[i] = o.Sigt
				s.TensionCut = true
			}
		}
	}
	FromPrincipal(s.Sig, p, N, 1)

	// plastic strains
	Δεp := make([]float64, 3)
	for i := 0; i < 3; i++ {
		j, k := (i+1)%3, (i+2)%3
		Δσi, Δσj, Δσk := ptr[i]-p[i], ptr[j]-p[j], ptr[k]-p[k]
		Δεp[i] = (Δσi - o.Nu*(Δσj+Δσk)) / o.E
	}
	εpv := (Δεp[0] + Δεp[1] + Δεp[2]) / 3.0
	e0, e1, e2 := Δεp[0]-εpv, Δεp[1]-εpv, Δεp[2]-εpv
	s.Alp[0] += math.Sqrt(2.0 * (e0*e0 + e1*e1 + e2*e2) / 3.0)
	tmp := make([]float64, NSIG)
	FromPrincipal(tmp, Δεp, N, 2)
	for i := 0; i < NSIG; i++ {
		s.EpsP[i] += tmp[i]
	}
	return
}

// Modulus returns the constrained modulus
func (o MohrCoulomb) Modulus(s *State) float64 {
	return o.K + 4.0*o.G/3.0
}

// yield evaluates the Mohr-Coulomb function of the (i,j) pair of principal stresses
func (o MohrCoulomb) yield(p []float64, i, j int, c, sφ, cφ float64) float64 {
	return (p[i]-p[j])/2.0 + (p[i]+p[j])*sφ/2.0 - c*cφ
}

// gradient returns the gradient of the (i,j) Mohr-Coulomb surface in principal space
func gradient(i, j int, s float64) []float64 {
	g := make([]float64, 3)
	g[i] = (1.0 + s) / 2.0
	g[j] = -(1.0 - s) / 2.0
	return g
}

// returnMap returns the principal stresses p to the yield surface
func (o *MohrCoulomb) returnMap(p []float64, s *State, c, sφ, cφ, sψ float64) {

	// main plane
	ptr := []float64{p[0], p[1], p[2]}
	a13, b13 := gradient(0, 2, sφ), gradient(0, 2, sψ)
	db13 := o.mulD(b13)
	Δγ := o.yield(ptr, 0, 2, c, sφ, cφ) / dot(a13, db13)
	for i := 0; i < 3; i++ {
		p[i] = ptr[i] - Δγ*db13[i]
	}
	s.Dgam = Δγ
	if p[0] >= p[1] && p[1] >= p[2] && !o.beyondApex(p, c, sφ, cφ) {
		return
	}

	// edges: σ1 = σ2 (surfaces 13 and 23) or σ2 = σ3 (surfaces 13 and 12). The edge
	// indicated by the plane return is tried first
	edges := [][2]int{{0, 1}, {1, 2}}
	if p[1] > p[0] {
		edges[0], edges[1] = edges[1], edges[0]
	}
	if o.returnToEdges(p, ptr, s, edges, c, sφ, cφ, sψ) {
		return
	}

	// apex
	s.ApexReturn = true
	papex := 0.0
	if sφ > 0 {
		papex = c * cφ / sφ
	} else {
		papex = (ptr[0] + ptr[1] + ptr[2]) / 3.0
	}
	p[0], p[1], p[2] = papex, papex, papex
}

// returnToEdges tries the edge returns in the given order. An edge is rejected if one of
// its plastic multipliers is negative or if the returned stress is beyond the apex
func (o *MohrCoulomb) returnToEdges(p, ptr []float64, s *State, edges [][2]int, c, sφ, cφ, sψ float64) bool {
	a13, db13 := gradient(0, 2, sφ), o.mulD(gradient(0, 2, sψ))
	f13 := o.yield(ptr, 0, 2, c, sφ, cφ)
	negative := false
	for _, e := range edges {
		a2, db2 := gradient(e[0], e[1], sφ), o.mulD(gradient(e[0], e[1], sψ))
		A := mat.NewDense(2, 2, []float64{
			dot(a13, db13), dot(a13, db2),
			dot(a2, db13), dot(a2, db2),
		})
		rhs := mat.NewVecDense(2, []float64{f13, o.yield(ptr, e[0], e[1], c, sφ, cφ)})
		var x mat.VecDense
		if err := x.SolveVec(A, rhs); err != nil {
			continue
		}
		Δγ1, Δγ2 := x.AtVec(0), x.AtVec(1)
		if Δγ1 < 0 || Δγ2 < 0 {
			negative = true
			continue
		}
		var q [3]float64
		for i := 0; i < 3; i++ {
			q[i] = ptr[i] - Δγ1*db13[i] - Δγ2*db2[i]
		}
		if o.beyondApex(q[:], c, sφ, cφ) {
			continue
		}
		copy(p, q[:])
		s.Dgam = Δγ1 + Δγ2
		return true
	}
	s.NegativeDgam = negative
	return false
}

// beyondApex tells whether p lies on the tensile side of the apex
func (o MohrCoulomb) beyondApex(p []float64, c, sφ, cφ float64) bool {
	if sφ <= 0 {
		return false
	}
	papex := c * cφ / sφ
	return (p[0]+p[1]+p[2])/3.0 > papex
}

// mulD computes Dp·b in principal space
func (o MohrCoulomb) mulD(b []float64) []float64 {
	r := make([]float64, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i] += o.dp[i][j] * b[j]
		}
	}
	return r
}

func dot(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
