// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package machine

import (
	"strings"

	"github.com/clasp-dev/clasp/pkg/match"
)

// A program is one command's compiled transition graph. Nodes hold ordered
// edges labeled with exactly one check and one reducer; the walker never
// inspects tokens itself. Edges are split by input class so that checks that
// read literal token text are never evaluated against a boundary sentinel.
type program struct {
	nodes []node
	start int
}

type node struct {
	user []edge // evaluated against literal tokens
	end  []edge // evaluated against the end-of-input sentinels
}

type edge struct {
	check  match.Check
	reduce match.Reducer
	target int
}

// Terminal pseudo-nodes. They carry no edges; reaching them ends a thread.
const (
	nodeSuccess = 0
	nodeFailure = 1
)

// compileCommand lowers one command declaration into a program. index is the
// command's position among the machine's declarations; it is what
// SetSelectedIndex records on success.
func compileCommand(c *Command, index int) *program {
	b := &programBuilder{
		program: &program{nodes: make([]node, 2)},
	}

	all := make(map[string]bool)
	batch := make(map[string]bool)
	bound := make(map[string]bool)
	for _, opt := range c.options {
		for _, name := range opt.names {
			all[name] = true
			if opt.arity == 0 && len(name) == 2 && !strings.HasPrefix(name, "--") {
				batch[name] = true
			}
			if opt.arity == 1 && strings.HasPrefix(name, "--") {
				bound[name] = true
			}
		}
	}

	help := -1
	if !c.noHelp {
		help = b.newNode()
		b.nodes[help].user = []edge{
			{check: match.Always{}, reduce: match.PushExtra{}, target: help},
		}
		b.nodes[help].end = []edge{
			{check: match.Always{}, reduce: match.SetSelectedIndex{Index: match.SelectedIndexHelp}, target: nodeSuccess},
		}
	}

	// One main node per positional slot boundary: main[j] means slots 0..j-1
	// are settled.
	main := make([]int, len(c.positionals)+1)
	for j := range main {
		main[j] = b.newNode()
	}

	// Path nodes form a prefix chain in front of main[0].
	b.start = main[0]
	for i := len(c.path) - 1; i >= 0; i-- {
		id := b.newNode()
		var user []edge
		if help >= 0 {
			user = append(user, edge{check: match.IsHelp{}, reduce: match.UseHelp{Index: index}, target: help})
		}
		user = append(user,
			edge{check: match.IsExactString{Needle: c.path[i]}, reduce: match.PushPath{}, target: b.start},
			edge{check: match.Always{}, reduce: match.SetError{Message: "Command not found"}, target: nodeFailure},
		)
		b.nodes[id].user = user
		b.nodes[id].end = []edge{
			{check: match.Always{}, reduce: match.SetError{Message: "Command not found"}, target: nodeFailure},
		}
		b.start = id
	}

	for j := range main {
		var user []edge

		if help >= 0 {
			user = append(user, edge{check: match.IsHelp{}, reduce: match.UseHelp{Index: index}, target: help})
		}
		user = append(user, edge{check: match.IsExact{Needle: "--"}, reduce: match.InhibitOptions{}, target: main[j]})

		for _, opt := range c.options {
			if opt.arity == 0 {
				for _, name := range opt.names {
					user = append(user, edge{
						check:  match.IsExactString{Needle: name},
						reduce: match.PushTrue{Name: name},
						target: main[j],
					})
				}
				continue
			}
			value := b.valueNode(opt.repeatable, main[j])
			for _, name := range opt.names {
				user = append(user, edge{
					check:  match.IsExactString{Needle: name},
					reduce: match.PushNone{Name: name},
					target: value,
				})
			}
		}

		if len(batch) > 0 {
			user = append(user, edge{check: match.IsBatchOption{Options: batch}, reduce: match.PushBatch{}, target: main[j]})
		}
		if len(bound) > 0 {
			user = append(user, edge{check: match.IsBoundOption{Options: bound}, reduce: match.PushBound{}, target: main[j]})
		}
		user = append(user,
			edge{check: match.IsUnsupportedOption{Options: all}, reduce: match.SetError{Message: "Unsupported option name"}, target: nodeFailure},
			edge{check: match.IsInvalidOption{}, reduce: match.SetError{Message: "Invalid option name"}, target: nodeFailure},
		)

		// Consuming edges for every slot reachable from j. Optional and rest
		// slots are skippable, so a token may also belong to a later slot;
		// the walker forks on every satisfiable edge and selection keeps the
		// lineage that completes.
		if j == len(c.positionals) {
			user = append(user, edge{
				check:  match.IsNotOptionLike{},
				reduce: match.SetError{Message: "Extraneous positional argument"},
				target: nodeFailure,
			})
		}
		for k := j; k < len(c.positionals); k++ {
			slot := c.positionals[k]
			switch slot.kind {
			case match.PositionalRequired:
				user = append(user, edge{check: match.IsNotOptionLike{}, reduce: match.PushPositional{}, target: main[k+1]})
			case match.PositionalOptional:
				user = append(user, edge{check: match.IsNotOptionLike{}, reduce: match.PushExtra{}, target: main[k+1]})
			case match.PositionalRest:
				user = append(user, edge{check: match.IsNotOptionLike{}, reduce: match.PushRest{}, target: main[k]})
			}
			if slot.kind == match.PositionalRequired {
				break
			}
		}
		b.nodes[main[j]].user = user

		missing := false
		for k := j; k < len(c.positionals); k++ {
			if c.positionals[k].kind == match.PositionalRequired {
				missing = true
				break
			}
		}
		if missing {
			b.nodes[main[j]].end = []edge{
				{check: match.Always{}, reduce: match.SetError{Message: "Not enough positional arguments"}, target: nodeFailure},
			}
		} else {
			b.nodes[main[j]].end = []edge{
				{check: match.Always{}, reduce: match.SetSelectedIndex{Index: index}, target: nodeSuccess},
			}
		}
	}

	return b.program
}

type programBuilder struct {
	*program
}

func (b *programBuilder) newNode() int {
	b.nodes = append(b.nodes, node{})
	return len(b.nodes) - 1
}

// valueNode builds the one-value continuation of an arity-1 option: the next
// non-option token becomes the value, anything else is an arity error.
func (b *programBuilder) valueNode(repeatable bool, back int) int {
	id := b.newNode()
	var attach match.Reducer = match.SetStringValue{}
	if repeatable {
		attach = match.PushStringValue{}
	}
	b.nodes[id].user = []edge{
		{check: match.IsNotOptionLike{}, reduce: attach, target: back},
		{check: match.Always{}, reduce: match.SetOptionArityError{}, target: nodeFailure},
	}
	b.nodes[id].end = []edge{
		{check: match.Always{}, reduce: match.SetOptionArityError{}, target: nodeFailure},
	}
	return id
}
