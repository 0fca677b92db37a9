// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_main01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main01. errors on exit")

	d, ctx := newTestDomain(tst, simBoxElastic)
	if d == nil {
		return
	}

	// summary cannot be written into a file
	o := &Main{Ctx: ctx, Dom: d, Summary: NewSummaryEmitter(ctx, "/dev/null/gompm", "main01", "json")}
	err := o.Summary.Save()
	if err == nil {
		tst.Errorf("saving into /dev/null/gompm should have failed\n")
		return
	}
	io.Pforan("%v\n", err)

	// the error of the run is kept
	runErr := &DivergenceError{Step: 3, Time: 0.1, Elem: -1, Particle: -1, Msg: "broken"}
	err = o.onexit(time.Now(), runErr)
	if err != runErr {
		tst.Errorf("error of the run must be returned. %v is invalid\n", err)
		return
	}

	// the error of the summary is returned after a successful run
	err = o.onexit(time.Now(), nil)
	if err == nil {
		tst.Errorf("error of the summary must be returned\n")
		return
	}

	// without summary
	o.Summary = nil
	err = o.onexit(time.Now(), nil)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
	}
}
