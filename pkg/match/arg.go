// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package match

// Arg is the unit of input the engine consumes: a literal user-supplied
// token, or one of two boundary sentinels. The zero value is User("").
type Arg struct {
	kind argKind
	text string
}

type argKind int

const (
	argUser argKind = iota
	argEndOfInput
	argEndOfPartialInput
)

// User wraps a literal command-line token.
func User(text string) Arg { return Arg{kind: argUser, text: text} }

var (
	// EndOfInput marks the end of the full argument list.
	EndOfInput = Arg{kind: argEndOfInput}

	// EndOfPartialInput marks the end of a partial (incremental) argument
	// list, e.g. the cursor position during shell completion.
	EndOfPartialInput = Arg{kind: argEndOfPartialInput}
)

// IsUser reports whether a carries literal token text.
func (a Arg) IsUser() bool { return a.kind == argUser }

// UnwrapUser returns the literal text of a User arg.
//
// Calling it on a boundary sentinel panics: the compiled grammar must only
// schedule text-consuming edges behind checks that exclude the sentinels, so
// reaching one here is an internal contract violation, not a user error.
func (a Arg) UnwrapUser() string {
	if a.kind != argUser {
		panic("match: UnwrapUser called on " + a.String())
	}
	return a.text
}

func (a Arg) String() string {
	switch a.kind {
	case argEndOfInput:
		return "<end of input>"
	case argEndOfPartialInput:
		return "<end of partial input>"
	default:
		return a.text
	}
}
