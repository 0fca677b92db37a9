// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"testing"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// newTestDomain allocates a domain from a simulation given as JSON. Mesh and materials
// files are read from the data directory
func newTestDomain(tst *testing.T, simjson string) (dom *Domain, ctx *Context) {
	sim, err := inp.LoadSim([]byte(simjson), "data", "test")
	if err != nil {
		tst.Errorf("LoadSim failed:\n%v", err)
		return
	}
	cfg := NewConfig(sim)
	ctx = NewContext(cfg)
	dom, err = NewDomain(sim, cfg)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return nil, nil
	}
	return
}
