// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package match

// TokenKind says why a character range of the input was consumed.
type TokenKind int

const (
	// TokenOption covers the characters read as an option name.
	TokenOption TokenKind = iota
	// TokenAssign covers exactly the "=" separator of a bound option.
	TokenAssign
	// TokenValue covers the characters read as an option value.
	TokenValue
)

func (k TokenKind) String() string {
	switch k {
	case TokenOption:
		return "option"
	case TokenAssign:
		return "assign"
	case TokenValue:
		return "value"
	default:
		return "unknown"
	}
}

// Slice is a half-open [Start, End) character range within one argv element.
type Slice struct {
	Start int
	End   int
}

// Token is an append-only diagnostic record of which characters of which
// original argv element were consumed and why. Tokens carry no parsing state
// of their own; they exist so a renderer can reconstruct, for any argv
// element, which characters were interpreted as an option name, an "="
// separator, or a value, and draw precise error indicators.
type Token struct {
	Kind TokenKind

	// SegmentIndex identifies which original argv element produced the token.
	// Across one linear scan it is non-decreasing.
	SegmentIndex int

	// Slice is the character range within the element, or nil when the token
	// spans the whole element conceptually rather than a sub-range (e.g. a
	// value consumed from a following argument, or an implicit binding not
	// derived from scanned text).
	Slice *Slice

	// Option is the option name, set only for TokenOption tokens.
	Option string
}
