// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package machine

import (
	"errors"
	"strconv"

	"github.com/clasp-dev/clasp/pkg/match"
)

// Machine matches argument vectors against a set of compiled commands.
type Machine struct {
	commands []*Command
	programs []*program
}

// Compile validates the command declarations and lowers each into its
// transition graph. The returned machine is immutable and safe for
// concurrent use.
func Compile(commands ...*Command) (*Machine, error) {
	if len(commands) == 0 {
		return nil, errors.New("machine: no commands declared")
	}
	m := &Machine{commands: commands}
	for i, c := range commands {
		if err := c.validate(); err != nil {
			return nil, err
		}
		m.programs = append(m.programs, compileCommand(c, i))
	}
	return m, nil
}

// Result is a successful match: which declared command won and the final
// state carrying its bindings.
type Result struct {
	// Index is the declared-command index recorded by the winning state's
	// selection, or match.SelectedIndexHelp when Help is set.
	Index   int
	Command *Command

	// State holds the winner's bindings (Options, Positionals, Path) and its
	// diagnostic token record.
	State *match.RunState

	// Help reports that the input redirected to help rather than matching a
	// command; HelpIndex is the command whose help was requested.
	Help      bool
	HelpIndex int
}

// ParseError is a failed match. It satisfies error with the terminal state's
// message and keeps the state and original argv so a renderer can point at
// the offending characters.
type ParseError struct {
	Args  []string
	State *match.RunState
}

func (e *ParseError) Error() string {
	return e.State.ErrorMessage
}

// thread is one live exploration lineage: a command candidate, its position
// in that command's program, and its state.
type thread struct {
	cmd      int
	node     int
	state    *match.RunState
	segments int
}

// Run walks args once, breadth-first across every declared command. Each
// token is evaluated against the live threads' pending edges; every
// satisfiable non-failing edge fires and forks its own continuation, which
// the functional reducer contract makes safe. Failure edges are fallbacks:
// they fire only when no other edge accepted the token.
//
// After the last token the end-of-input sentinel is fed through each
// surviving thread. Among completed threads, help redirection wins outright;
// otherwise the command with the longest declared path wins and an exact tie
// is an ambiguity error. When nothing completes, the errored thread that got
// furthest through the input is reported.
func (m *Machine) Run(args []string) (*Result, error) {
	live := make([]thread, 0, len(m.programs))
	for i, p := range m.programs {
		live = append(live, thread{cmd: i, node: p.start, state: &match.RunState{}})
	}

	var failed []thread

	for i, raw := range args {
		arg := match.User(raw)
		var next []thread
		for _, th := range live {
			fired, failures := m.step(th, m.nodeAt(th).user, arg, i)
			if len(fired) == 0 {
				fired = failures
			}
			for _, ft := range fired {
				if ft.node == nodeFailure {
					failed = append(failed, ft)
					continue
				}
				next = append(next, ft)
			}
		}
		live = next
		if len(live) == 0 {
			break
		}
	}

	var done []thread
	endIndex := len(args)
	for _, th := range live {
		fired, failures := m.step(th, m.nodeAt(th).end, match.EndOfInput, endIndex)
		if len(fired) == 0 {
			fired = failures
		}
		for _, ft := range fired {
			if ft.node == nodeFailure {
				failed = append(failed, ft)
				continue
			}
			if ft.node == nodeSuccess {
				done = append(done, ft)
			}
		}
	}

	if th, ok := pickHelp(done); ok {
		return m.helpResult(th, args)
	}
	if len(done) > 0 {
		return m.selectWinner(done, args)
	}

	// Nothing completed; report the candidate that consumed the most input.
	best := failed[0]
	for _, th := range failed[1:] {
		if th.segments > best.segments {
			best = th
		}
	}
	return nil, &ParseError{Args: args, State: best.state}
}

func (m *Machine) nodeAt(th thread) *node {
	return &m.programs[th.cmd].nodes[th.node]
}

// step evaluates edges in order against (state, arg), returning the fired
// non-failure continuations and, separately, the failure continuations to
// fall back on.
func (m *Machine) step(th thread, edges []edge, arg match.Arg, segmentIndex int) (fired, failures []thread) {
	for _, e := range edges {
		if !match.ApplyCheck(e.check, th.state, arg, segmentIndex) {
			continue
		}
		nt := thread{
			cmd:      th.cmd,
			node:     e.target,
			state:    match.ApplyReducer(e.reduce, th.state, arg, segmentIndex),
			segments: segmentIndex + 1,
		}
		if e.target == nodeFailure {
			failures = append(failures, nt)
			continue
		}
		fired = append(fired, nt)
	}
	return fired, failures
}

func pickHelp(done []thread) (thread, bool) {
	for _, th := range done {
		if th.state.Selected.Valid && th.state.Selected.Index == match.SelectedIndexHelp {
			return th, true
		}
	}
	return thread{}, false
}

func (m *Machine) helpResult(th thread, args []string) (*Result, error) {
	// UseHelp leaves exactly one synthetic option: ("-c", String(index)).
	target, err := strconv.Atoi(string(th.state.Options[0].Value.(match.StringValue)))
	if err != nil {
		panic("machine: malformed help redirection: " + err.Error())
	}
	return &Result{
		Index:     match.SelectedIndexHelp,
		Command:   m.commands[target],
		State:     m.promote(th, args),
		Help:      true,
		HelpIndex: target,
	}, nil
}

func (m *Machine) selectWinner(done []thread, args []string) (*Result, error) {
	// One finalist per command; thread order is edge-declaration order, so
	// the first finalist is the leftmost-greedy positional assignment.
	firstByCmd := make(map[int]thread)
	order := make([]int, 0, len(done))
	for _, th := range done {
		if _, ok := firstByCmd[th.cmd]; !ok {
			firstByCmd[th.cmd] = th
			order = append(order, th.cmd)
		}
	}

	best := order[0]
	ambiguous := false
	for _, cmd := range order[1:] {
		bl, cl := len(m.commands[best].path), len(m.commands[cmd].path)
		switch {
		case cl > bl:
			best = cmd
			ambiguous = false
		case cl == bl:
			ambiguous = true
		}
	}
	if ambiguous {
		state := match.ApplyReducer(match.SetError{Message: "Ambiguous command"}, &match.RunState{}, match.EndOfInput, len(args))
		return nil, &ParseError{Args: args, State: state}
	}

	winner := firstByCmd[best]
	return &Result{
		Index:   best,
		Command: m.commands[best],
		State:   m.promote(winner, args),
	}, nil
}

// promote adopts the winning candidate's fields into a fresh state through
// the partial-state overlay, the same mechanism an incremental engine uses
// to commit a candidate.
func (m *Machine) promote(th thread, args []string) *match.RunState {
	return match.ApplyReducer(
		match.SetCandidateState{Partial: th.state.Partial()},
		&match.RunState{},
		match.EndOfInput,
		len(args),
	)
}
