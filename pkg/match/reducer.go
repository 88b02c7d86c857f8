// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package match

import (
	"fmt"
	"strconv"
	"strings"
)

// Reducer is a state-transforming operation executed when a transition fires.
// Every application returns a new, independent RunState; no reducer mutates
// its input, which is what lets an engine fork exploration from a shared
// ancestor state.
//
// The set of reducers is closed: ApplyReducer dispatches exhaustively and
// panics on anything it does not know.
type Reducer interface {
	isReducer()
}

// None is the identity transform.
type None struct{}

// InhibitOptions sets IgnoreOptions; applied when an explicit option
// terminator ("--") is recognized.
type InhibitOptions struct{}

// PushBatch explodes a short-flag bundle like "-rf" into one Bool(true)
// option per character, with Option tokens slicing the bundle so that only
// the first synthesized option owns the leading dash visually.
type PushBatch struct{}

// PushBound splits an "=-bound" token like "--name=value" into one
// String-valued option plus three contiguous tokens covering the name, the
// "=", and the value.
type PushBound struct{}

// PushExtra appends the literal text as an Optional positional.
type PushExtra struct{}

// PushPositional appends the literal text as a Required positional.
type PushPositional struct{}

// PushRest appends the literal text as a Rest positional.
type PushRest struct{}

// PushPath appends the literal text to the subcommand path.
type PushPath struct{}

// PushFalse appends (Name, Bool(false)) with a sliceless Option token; the
// binding is implicit rather than derived from scanned text.
type PushFalse struct {
	Name string
}

// PushTrue appends (Name, Bool(true)) with a sliceless Option token.
type PushTrue struct {
	Name string
}

// PushNone appends (Name, NoValue) with a sliceless Option token; a
// value-attaching reducer refines it later.
type PushNone struct {
	Name string
}

// PushStringValue accumulates the literal text into the last pushed option:
// NoValue is promoted to a single-element array, an existing array is
// extended. Any other current value is a contract violation.
type PushStringValue struct{}

// SetStringValue unconditionally overwrites the last pushed option's value
// with String(text).
type SetStringValue struct{}

// SetOptionArityError reports that the last pushed option did not receive
// enough argument tokens. It does not consume the current argument.
type SetOptionArityError struct{}

// SetError sets the terminal error message. A concrete token is quoted in
// the message; the boundary sentinels have no literal text to quote, so the
// message stands alone.
type SetError struct {
	Message string
}

// SetSelectedIndex records which declared command this state is now a
// candidate for.
type SetSelectedIndex struct {
	Index int
}

// UseHelp discards all previously collected options and replaces them with a
// single synthetic pair redirecting to the help of command Index.
type UseHelp struct {
	Index int
}

// SetCandidateState overlays a previously explored candidate's fields onto
// the current state via PartialRunState.ApplySome.
type SetCandidateState struct {
	Partial PartialRunState
}

func (None) isReducer()                {}
func (InhibitOptions) isReducer()      {}
func (PushBatch) isReducer()           {}
func (PushBound) isReducer()           {}
func (PushExtra) isReducer()           {}
func (PushPositional) isReducer()      {}
func (PushRest) isReducer()            {}
func (PushPath) isReducer()            {}
func (PushFalse) isReducer()           {}
func (PushTrue) isReducer()            {}
func (PushNone) isReducer()            {}
func (PushStringValue) isReducer()     {}
func (SetStringValue) isReducer()      {}
func (SetOptionArityError) isReducer() {}
func (SetError) isReducer()            {}
func (SetSelectedIndex) isReducer()    {}
func (UseHelp) isReducer()             {}
func (SetCandidateState) isReducer()   {}

// ApplyReducer applies r to (state, arg) and returns the resulting state.
// The input state and every state returned earlier remain independently
// valid and inspectable.
func ApplyReducer(r Reducer, state *RunState, arg Arg, segmentIndex int) *RunState {
	switch r := r.(type) {
	case None:
		return state.clone()

	case InhibitOptions:
		next := state.clone()
		next.IgnoreOptions = true
		return next

	case PushBatch:
		text := arg.UnwrapUser()
		next := state.clone()
		for t := 1; t < len(text); t++ {
			name := "-" + text[t:t+1]
			// The first flag owns the leading dash; the rest cover only
			// their own character.
			slice := &Slice{Start: t, End: t + 1}
			if t == 1 {
				slice = &Slice{Start: 0, End: 2}
			}
			next.Options = append(next.Options, Option{Name: name, Value: BoolValue(true)})
			next.Tokens = append(next.Tokens, Token{
				Kind:         TokenOption,
				SegmentIndex: segmentIndex,
				Slice:        slice,
				Option:       name,
			})
		}
		return next

	case PushBound:
		text := arg.UnwrapUser()
		next := state.clone()
		eq := strings.IndexByte(text, '=')
		name, value := text[:eq], text[eq+1:]
		next.Options = append(next.Options, Option{Name: name, Value: StringValue(value)})
		next.Tokens = append(next.Tokens,
			Token{
				Kind:         TokenOption,
				SegmentIndex: segmentIndex,
				Slice:        &Slice{Start: 0, End: len(name)},
				Option:       name,
			},
			Token{
				Kind:         TokenAssign,
				SegmentIndex: segmentIndex,
				Slice:        &Slice{Start: len(name), End: len(name) + 1},
			},
			Token{
				Kind:         TokenValue,
				SegmentIndex: segmentIndex,
				Slice:        &Slice{Start: len(name) + 1, End: len(text)},
			},
		)
		return next

	case PushExtra:
		text := arg.UnwrapUser()
		next := state.clone()
		next.Positionals = append(next.Positionals, Positional{Kind: PositionalOptional, Value: text})
		return next

	case PushPositional:
		text := arg.UnwrapUser()
		next := state.clone()
		next.Positionals = append(next.Positionals, Positional{Kind: PositionalRequired, Value: text})
		return next

	case PushRest:
		text := arg.UnwrapUser()
		next := state.clone()
		next.Positionals = append(next.Positionals, Positional{Kind: PositionalRest, Value: text})
		return next

	case PushPath:
		text := arg.UnwrapUser()
		next := state.clone()
		next.Path = append(next.Path, text)
		return next

	case PushFalse:
		return pushImplicit(state, segmentIndex, r.Name, BoolValue(false))

	case PushTrue:
		return pushImplicit(state, segmentIndex, r.Name, BoolValue(true))

	case PushNone:
		return pushImplicit(state, segmentIndex, r.Name, NoValue{})

	case PushStringValue:
		text := arg.UnwrapUser()
		next := state.clone()
		last := next.lastOption()
		switch v := last.Value.(type) {
		case NoValue:
			last.Value = ArrayValue{text}
		case ArrayValue:
			// Fresh backing: earlier states holding v keep their view.
			merged := make(ArrayValue, 0, len(v)+1)
			merged = append(merged, v...)
			merged = append(merged, text)
			last.Value = merged
		default:
			panic(fmt.Sprintf("match: PushStringValue on option %s holding %T", last.Name, last.Value))
		}
		next.Tokens = append(next.Tokens, Token{Kind: TokenValue, SegmentIndex: segmentIndex})
		return next

	case SetStringValue:
		text := arg.UnwrapUser()
		next := state.clone()
		next.lastOption().Value = StringValue(text)
		next.Tokens = append(next.Tokens, Token{Kind: TokenValue, SegmentIndex: segmentIndex})
		return next

	case SetOptionArityError:
		name := state.lastOption().Name
		next := state.clone()
		next.ErrorMessage = fmt.Sprintf("Not enough arguments to option %s.", name)
		return next

	case SetError:
		next := state.clone()
		if arg.IsUser() {
			next.ErrorMessage = fmt.Sprintf("%s (%q).", r.Message, arg.UnwrapUser())
		} else {
			next.ErrorMessage = r.Message + "."
		}
		return next

	case SetSelectedIndex:
		next := state.clone()
		next.Selected = Selection{Valid: true, Index: r.Index}
		return next

	case UseHelp:
		next := state.clone()
		next.Options = []Option{{Name: "-c", Value: StringValue(strconv.Itoa(r.Index))}}
		return next

	case SetCandidateState:
		next := state.clone()
		next.ApplySome(r.Partial)
		return next

	default:
		panic(fmt.Sprintf("match: unhandled reducer %T", r))
	}
}

func pushImplicit(state *RunState, segmentIndex int, name string, value OptionValue) *RunState {
	next := state.clone()
	next.Options = append(next.Options, Option{Name: name, Value: value})
	next.Tokens = append(next.Tokens, Token{
		Kind:         TokenOption,
		SegmentIndex: segmentIndex,
		Option:       name,
	})
	return next
}
