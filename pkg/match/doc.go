// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package match implements the execution core of a transition-driven
// command-line argument matcher: a library of pure predicates (checks) and
// state-transforming operations (reducers) that an engine applies, one input
// token at a time, to recognize which declared command an argument sequence
// invokes and to populate that command's option and positional bindings.
//
// The package encodes the informal grammar of POSIX-ish CLI syntax as a small
// instruction set: short-flag bundling (-rf), =-bound long options
// (--name=value), option arity, "rest" positionals, ambiguous-option
// detection, help redirection, and per-character diagnostic slicing.
//
// # Model
//
// An engine holds a current RunState and walks a graph whose edges are
// labeled with one Check and one Reducer. For each pending edge it evaluates
// the Check against the current (state, arg); if true, the edge may fire and
// the Reducer produces the next state:
//
//	if match.ApplyCheck(edge.Check, state, arg, i) {
//	    state = match.ApplyReducer(edge.Reducer, state, arg, i)
//	}
//
// Checks are pure and safe to evaluate speculatively against any number of
// candidate edges. Reducers never mutate their input; every call returns a
// fresh RunState, so an engine may fork from a shared ancestor state and
// explore several candidate commands without one path corrupting another's
// view. Adopting a previously explored candidate happens only through an
// explicit overlay (SetCandidateState), never by aliasing.
//
// # Diagnostics
//
// Every consuming reducer appends Tokens recording which character ranges of
// which argv element were interpreted as an option name, an "=" separator, or
// a value. Downstream renderers use them to draw caret-style indicators
// against the original input; see package caret.
//
// # Errors
//
// User input errors (invalid or unsupported option syntax, insufficient
// arity) become a terminal ErrorMessage on the RunState and are recoverable
// at the engine level, which may abandon that candidate and keep exploring
// siblings. Internal contract violations - unwrapping a boundary sentinel,
// attaching a value when no option was pushed - mean the compiled grammar
// scheduled an edge in an invalid state; those panic.
package match
