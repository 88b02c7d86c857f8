// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package match

// OptionValue is the closed set of shapes an option binding can take.
// NoValue is a placeholder meaning "option recognized, value pending"; it is
// later refined to StringValue or promoted to ArrayValue by value-attaching
// reducers.
type OptionValue interface {
	isOptionValue()
}

// NoValue marks an option whose value has not been attached yet.
type NoValue struct{}

// BoolValue is a boolean option binding.
type BoolValue bool

// StringValue is a single-string option binding.
type StringValue string

// ArrayValue is an ordered accumulation of string values for a repeatable
// option. Reducers never mutate an ArrayValue in place; accumulation always
// builds a fresh slice so that earlier states keep their view.
type ArrayValue []string

func (NoValue) isOptionValue()     {}
func (BoolValue) isOptionValue()   {}
func (StringValue) isOptionValue() {}
func (ArrayValue) isOptionValue()  {}

// Option is one (name, value) pair collected during matching. The same name
// may appear multiple times; order is encounter order.
type Option struct {
	Name  string
	Value OptionValue
}

// PositionalKind tags how a bare argument was classified when consumed.
type PositionalKind int

const (
	PositionalRequired PositionalKind = iota
	PositionalOptional
	PositionalRest
)

func (k PositionalKind) String() string {
	switch k {
	case PositionalRequired:
		return "required"
	case PositionalOptional:
		return "optional"
	case PositionalRest:
		return "rest"
	default:
		return "unknown"
	}
}

// Positional is a bare argument consumed during matching.
type Positional struct {
	Kind  PositionalKind
	Value string
}

// SelectedIndexHelp is the Selection.Index sentinel meaning "help requested".
// The index of the command the help redirect names is carried by the
// synthetic "-c" option written by UseHelp, not by the selection itself.
const SelectedIndexHelp = -1

// Selection identifies which declared command a state is a candidate for.
// The zero value means no selection has been made; "no match" is always
// expressed as Valid == false, never as a negative index.
type Selection struct {
	Valid bool
	Index int
}

// RunState is the working parse state threaded through every step of a match.
// Reducers treat it as immutable: every ApplyReducer call returns a new,
// structurally independent RunState, so callers may hold earlier values and
// keep exploring alternative continuations from them without interference.
type RunState struct {
	// IgnoreOptions, once set, makes every option-sensitive check treat
	// subsequent arguments as non-option-like (the "--" convention).
	IgnoreOptions bool

	// Options holds collected (name, value) pairs in encounter order.
	Options []Option

	// Positionals holds consumed bare arguments in encounter order.
	Positionals []Positional

	// Tokens is the diagnostic record, strictly non-decreasing in
	// SegmentIndex.
	Tokens []Token

	// Path holds accumulated subcommand path segments.
	Path []string

	// ErrorMessage is set at most once along any single lineage; once set the
	// state is terminal-with-error. Produced messages always end with ".",
	// so the empty string unambiguously means "no error".
	ErrorMessage string

	// Selected identifies which declared command this state is currently a
	// candidate for.
	Selected Selection
}

// clone returns a deep enough copy of s: all sequence fields get fresh
// backing arrays, so appends on the copy can never bleed into s. Values
// reachable through the copy (tokens, option values) are themselves never
// mutated in place by any reducer.
func (s *RunState) clone() *RunState {
	return &RunState{
		IgnoreOptions: s.IgnoreOptions,
		Options:       append([]Option(nil), s.Options...),
		Positionals:   append([]Positional(nil), s.Positionals...),
		Tokens:        append([]Token(nil), s.Tokens...),
		Path:          append([]string(nil), s.Path...),
		ErrorMessage:  s.ErrorMessage,
		Selected:      s.Selected,
	}
}

// lastOption returns the most recently pushed option. Value-attaching
// reducers require one to exist; the engine's edge ordering enforces that,
// so an empty option list here is an internal contract violation.
func (s *RunState) lastOption() *Option {
	if len(s.Options) == 0 {
		panic("match: value-attaching reducer applied with no options pushed")
	}
	return &s.Options[len(s.Options)-1]
}

// PartialRunState is a sparse RunState: every field is optionally present.
// It is used to adopt a previously computed candidate's fields wholesale into
// the currently active state when a candidate is promoted.
type PartialRunState struct {
	IgnoreOptions *bool
	Options       *[]Option
	Positionals   *[]Positional
	Tokens        *[]Token
	Path          *[]string
	ErrorMessage  *string
	Selected      *Selection
}

// ApplySome overlays every present field of p onto s, leaving absent fields
// untouched. Present sequence fields replace s's wholesale, copied so that s
// shares no backing storage with the overlay's source.
func (s *RunState) ApplySome(p PartialRunState) {
	if p.IgnoreOptions != nil {
		s.IgnoreOptions = *p.IgnoreOptions
	}
	if p.Options != nil {
		s.Options = append([]Option(nil), *p.Options...)
	}
	if p.Positionals != nil {
		s.Positionals = append([]Positional(nil), *p.Positionals...)
	}
	if p.Tokens != nil {
		s.Tokens = append([]Token(nil), *p.Tokens...)
	}
	if p.Path != nil {
		s.Path = append([]string(nil), *p.Path...)
	}
	if p.ErrorMessage != nil {
		s.ErrorMessage = *p.ErrorMessage
	}
	if p.Selected != nil {
		s.Selected = *p.Selected
	}
}

// Partial returns a PartialRunState with every field of s present, suitable
// for promoting s wholesale via SetCandidateState.
func (s *RunState) Partial() PartialRunState {
	ignore := s.IgnoreOptions
	options := append([]Option(nil), s.Options...)
	positionals := append([]Positional(nil), s.Positionals...)
	tokens := append([]Token(nil), s.Tokens...)
	path := append([]string(nil), s.Path...)
	errMsg := s.ErrorMessage
	selected := s.Selected
	return PartialRunState{
		IgnoreOptions: &ignore,
		Options:       &options,
		Positionals:   &positionals,
		Tokens:        &tokens,
		Path:          &path,
		ErrorMessage:  &errMsg,
		Selected:      &selected,
	}
}
