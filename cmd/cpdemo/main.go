// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command cpdemo matches cp-style argument vectors and prints the resulting
// bindings. It exists to exercise the matcher end to end from a shell:
//
//	cpdemo -r src1 src2 dst
//	cpdemo --frce a b        (renders a caret diagnostic)
//
// Set CPDEMO_TRACE=1 to dump the token record of the winning state.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/clasp-dev/clasp/pkg/caret"
	"github.com/clasp-dev/clasp/pkg/machine"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("cpdemo: ")

	cp := machine.NewCommand().
		Bool("-r", "--recursive").
		Rest("sources").
		Positional("destination")

	m, err := machine.Compile(cp)
	if err != nil {
		log.Fatal(err)
	}

	args := os.Args[1:]
	res, err := m.Run(args)
	if err != nil {
		var perr *machine.ParseError
		if errors.As(err, &perr) {
			caret.Render(os.Stderr, perr.Args, perr.State)
			os.Exit(1)
		}
		log.Fatal(err)
	}

	if res.Help {
		fmt.Println("usage: cpdemo " + res.Command.Usage())
		return
	}

	for _, opt := range res.State.Options {
		fmt.Printf("option     %s = %v\n", opt.Name, opt.Value)
	}
	for _, pos := range res.State.Positionals {
		fmt.Printf("positional %-8s %s\n", pos.Kind, pos.Value)
	}

	if os.Getenv("CPDEMO_TRACE") != "" {
		for _, line := range caret.Trace(args, res.State.Tokens) {
			fmt.Fprintln(os.Stderr, line)
		}
	}
}
