// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package machine compiles command declarations into transition graphs over
// the match package's check/reducer instruction set and walks argument
// vectors against them.
//
// Commands are declared with a fluent registration API:
//
//	cp := machine.NewCommand("cp").
//	    Bool("-r", "--recursive").
//	    Rest("sources").
//	    Positional("destination")
//
//	m, err := machine.Compile(cp)
//	if err != nil {
//	    // a declaration mistake, e.g. duplicate option names
//	}
//
//	res, err := m.Run(os.Args[1:])
//
// Run explores every declared command as an independent candidate, forking
// freely because reducers never mutate their input state. A failed match is
// returned as a *ParseError carrying the terminal state, whose token record
// lets package caret point at the offending characters of the original
// input.
package machine
