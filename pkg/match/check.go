// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package match

import (
	"fmt"
	"strings"
	"unicode"
)

// Check is a pure predicate over (state, arg, segment index) that gates
// whether a transition may fire. Checks have no side effects and are safe to
// evaluate speculatively on multiple candidate edges without committing.
//
// The set of checks is closed: ApplyCheck dispatches exhaustively and panics
// on anything it does not know, so a new variant forces an update there.
//
// All checks except Always read the literal token text and must only be
// evaluated against User args; the engine routes the boundary sentinels to
// sentinel-safe edges.
type Check interface {
	isCheck()
}

// Always is true unconditionally.
type Always struct{}

// IsOptionLike is true iff options are not ignored, the token is not exactly
// "-", and it starts with "-".
type IsOptionLike struct{}

// IsNotOptionLike is the inverse of the option-like test: "-" itself and
// everything in ignored-options mode count as non-option-like.
type IsNotOptionLike struct{}

// IsExact matches exact text equality against a grammar literal (e.g. a path
// segment or the "--" terminator), only while options are not ignored.
type IsExact struct {
	Needle string
}

// IsExactString is IsExact for literals supplied at registration time, such
// as declared option names. The predicate is identical; the two variants keep
// compiled grammars readable about where the literal came from.
type IsExactString struct {
	Needle string
}

// IsHelp is true for "--help", "-h", and any token beginning "--help=".
type IsHelp struct{}

// IsBatchOption is true iff the token is a valid bundle of batchable short
// flags: it starts with "-", is longer than two characters, and every
// character after the leading dash independently forms a known single-dash
// option present in Options.
type IsBatchOption struct {
	Options map[string]bool
}

// IsBoundOption is true iff the token contains "=" and the substring before
// the first "=" is a member of Options.
type IsBoundOption struct {
	Options map[string]bool
}

// IsUnsupportedOption is true iff the token is a syntactically well-formed
// option that is absent from Options. It distinguishes "unknown but
// well-formed" from garbage, which IsInvalidOption catches.
type IsUnsupportedOption struct {
	Options map[string]bool
}

// IsInvalidOption is true iff the token starts with "-" but is not a
// syntactically valid option name.
type IsInvalidOption struct{}

func (Always) isCheck()              {}
func (IsOptionLike) isCheck()        {}
func (IsNotOptionLike) isCheck()     {}
func (IsExact) isCheck()             {}
func (IsExactString) isCheck()       {}
func (IsHelp) isCheck()              {}
func (IsBatchOption) isCheck()       {}
func (IsBoundOption) isCheck()       {}
func (IsUnsupportedOption) isCheck() {}
func (IsInvalidOption) isCheck()     {}

// ValidOptionName reports whether text is a syntactically valid option name:
// a long option ("--x") is valid iff every character after the two leading
// dashes is alphanumeric or "-"; a short option ("-x") is valid iff every
// character after the single leading dash is alphabetic. Anything not
// starting with "-" is not an option name at all.
func ValidOptionName(text string) bool {
	return isValidOptionName(text)
}

// isValidOptionName implements the option validity rule shared by
// IsUnsupportedOption and IsInvalidOption.
func isValidOptionName(text string) bool {
	switch {
	case strings.HasPrefix(text, "--"):
		for _, r := range text[2:] {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' {
				return false
			}
		}
		return true
	case strings.HasPrefix(text, "-"):
		for _, r := range text[1:] {
			if !unicode.IsLetter(r) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isASCIIAlphanumeric(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// ApplyCheck evaluates c against (state, arg). It may be called any number of
// times, in any order, with no observable effect. The segment index is part
// of the engine's call contract but no current check consults it.
func ApplyCheck(c Check, state *RunState, arg Arg, segmentIndex int) bool {
	switch c := c.(type) {
	case Always:
		return true

	case IsOptionLike:
		text := arg.UnwrapUser()
		return !state.IgnoreOptions && text != "-" && strings.HasPrefix(text, "-")

	case IsNotOptionLike:
		text := arg.UnwrapUser()
		return state.IgnoreOptions || text == "-" || !strings.HasPrefix(text, "-")

	case IsExact:
		return !state.IgnoreOptions && arg.UnwrapUser() == c.Needle

	case IsExactString:
		return !state.IgnoreOptions && arg.UnwrapUser() == c.Needle

	case IsHelp:
		text := arg.UnwrapUser()
		return !state.IgnoreOptions &&
			(text == "--help" || text == "-h" || strings.HasPrefix(text, "--help="))

	case IsBatchOption:
		text := arg.UnwrapUser()
		if state.IgnoreOptions || !strings.HasPrefix(text, "-") || len(text) <= 2 {
			return false
		}
		for _, r := range text[1:] {
			if !isASCIIAlphanumeric(r) || !c.Options["-"+string(r)] {
				return false
			}
		}
		return true

	case IsBoundOption:
		text := arg.UnwrapUser()
		if state.IgnoreOptions {
			return false
		}
		eq := strings.IndexByte(text, '=')
		return eq >= 0 && c.Options[text[:eq]]

	case IsUnsupportedOption:
		text := arg.UnwrapUser()
		return !state.IgnoreOptions && strings.HasPrefix(text, "-") &&
			isValidOptionName(text) && !c.Options[text]

	case IsInvalidOption:
		text := arg.UnwrapUser()
		return !state.IgnoreOptions && strings.HasPrefix(text, "-") &&
			!isValidOptionName(text)

	default:
		panic(fmt.Sprintf("match: unhandled check %T", c))
	}
}
