// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "math"

// hex8nat holds the natural coordinates of hex8 vertices
var hex8nat = [][]float64{
	{-1, 1, 1, -1, -1, 1, 1, -1},
	{-1, -1, 1, 1, -1, -1, 1, 1},
	{-1, -1, -1, -1, 1, 1, 1, 1},
}

// register shapes
func init() {

	// tri3
	sq := 1.0 / 6.0
	factory["tri3"] = &Shape{
		Type:           "tri3",
		Func:           Tri3,
		Gndim:          2,
		Nverts:         3,
		VtkCode:        5,
		Simplex:        true,
		FaceLocalVerts: [][]int{{0, 1}, {1, 2}, {2, 0}},
		NatCoords: [][]float64{
			{0, 1, 0},
			{0, 0, 1},
		},
		Ips: [][]float64{{1.0 / 3.0, 1.0 / 3.0, 0, 0.5}},
	}

	// qua4
	g := 1.0 / math.Sqrt(3.0)
	factory["qua4"] = &Shape{
		Type:           "qua4",
		Func:           Qua4,
		Gndim:          2,
		Nverts:         4,
		VtkCode:        9,
		FaceLocalVerts: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
		NatCoords: [][]float64{
			{-1, 1, 1, -1},
			{-1, -1, 1, 1},
		},
		Ips: [][]float64{{-g, -g, 0, 1}, {g, -g, 0, 1}, {g, g, 0, 1}, {-g, g, 0, 1}},
	}

	// tet4
	factory["tet4"] = &Shape{
		Type:           "tet4",
		Func:           Tet4,
		Gndim:          3,
		Nverts:         4,
		VtkCode:        10,
		Simplex:        true,
		FaceLocalVerts: [][]int{{0, 3, 2}, {0, 1, 3}, {0, 2, 1}, {1, 2, 3}},
		NatCoords: [][]float64{
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 1},
		},
		Ips: [][]float64{{0.25, 0.25, 0.25, sq}},
	}

	// hex8
	factory["hex8"] = &Shape{
		Type:           "hex8",
		Func:           Hex8,
		Gndim:          3,
		Nverts:         8,
		VtkCode:        12,
		FaceLocalVerts: [][]int{{0, 4, 7, 3}, {1, 2, 6, 5}, {0, 1, 5, 4}, {2, 3, 7, 6}, {0, 3, 2, 1}, {4, 5, 6, 7}},
		NatCoords:      hex8nat,
		Ips: [][]float64{
			{-g, -g, -g, 1}, {g, -g, -g, 1}, {g, g, -g, 1}, {-g, g, -g, 1},
			{-g, -g, g, 1}, {g, -g, g, 1}, {g, g, g, 1}, {-g, g, g, 1},
		},
	}

	for _, s := range factory {
		s.init_scratchpad()
	}
}

// Tri3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri3
// elements at {r,s} natural coordinates
//
//    s
//    |
//    2, (0,1)
//    | ',
//    |   ',
//    |     ',
//    |       ',
//    |         ',
//    |           ',
//    |             ',
//    |               ',
//    | (0,0)           ', (1,0)
//    0-------------------1 ---- r
//
func Tri3(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	S[0] = 1.0 - r - s
	S[1] = r
	S[2] = s
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -1, -1
	dSdR[1][0], dSdR[1][1] = 1, 0
	dSdR[2][0], dSdR[2][1] = 0, 1
}

// Qua4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua4
// elements at {r,s} natural coordinates
//
//   3-----------2
//   |     s     |
//   |     |     |
//   |     +--r  |
//   |           |
//   |           |
//   0-----------1
//
func Qua4(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	S[0] = (1.0 - r - s + r*s) / 4.0
	S[1] = (1.0 + r - s - r*s) / 4.0
	S[2] = (1.0 + r + s + r*s) / 4.0
	S[3] = (1.0 - r + s - r*s) / 4.0
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = (-1.0+s)/4.0, (-1.0+r)/4.0
	dSdR[1][0], dSdR[1][1] = (+1.0-s)/4.0, (-1.0-r)/4.0
	dSdR[2][0], dSdR[2][1] = (+1.0+s)/4.0, (+1.0+r)/4.0
	dSdR[3][0], dSdR[3][1] = (-1.0-s)/4.0, (+1.0-r)/4.0
}

// Tet4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tet4
// elements at {r,s,t} natural coordinates
func Tet4(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s, t := R[0], R[1], R[2]
	S[0] = 1.0 - r - s - t
	S[1] = r
	S[2] = s
	S[3] = t
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1], dSdR[0][2] = -1, -1, -1
	dSdR[1][0], dSdR[1][1], dSdR[1][2] = 1, 0, 0
	dSdR[2][0], dSdR[2][1], dSdR[2][2] = 0, 1, 0
	dSdR[3][0], dSdR[3][1], dSdR[3][2] = 0, 0, 1
}

// Hex8 calculates the shape functions (S) and derivatives of shape functions (dSdR) of hex8
// elements at {r,s,t} natural coordinates
//
//             4________________7
//           ,'|              ,'|
//         ,'  |            ,'  |
//       ,'    |          ,'    |
//     ,'      |        ,'      |
//   5'===============6'        |
//   |         |      |         |
//   |         |      |         |
//   |         0_____ | ________3
//   |       ,'       |       ,'
//   |     ,'         |     ,'
//   |   ,'           |   ,'
//   | ,'             | ,'
//   1________________2'
//
func Hex8(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s, t := R[0], R[1], R[2]
	nc := hex8nat
	for m := 0; m < 8; m++ {
		rm, sm, tm := nc[0][m], nc[1][m], nc[2][m]
		S[m] = (1.0 + rm*r) * (1.0 + sm*s) * (1.0 + tm*t) / 8.0
		if derivs {
			dSdR[m][0] = rm * (1.0 + sm*s) * (1.0 + tm*t) / 8.0
			dSdR[m][1] = sm * (1.0 + rm*r) * (1.0 + tm*t) / 8.0
			dSdR[m][2] = tm * (1.0 + rm*r) * (1.0 + sm*s) / 8.0
		}
	}
}
