// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package match

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleState() *RunState {
	return &RunState{
		IgnoreOptions: false,
		Options: []Option{
			{Name: "-r", Value: BoolValue(true)},
			{Name: "--tag", Value: ArrayValue{"a", "b"}},
		},
		Positionals: []Positional{{Kind: PositionalRequired, Value: "src"}},
		Tokens: []Token{
			{Kind: TokenOption, SegmentIndex: 1, Slice: &Slice{Start: 0, End: 2}, Option: "-r"},
		},
		Path:     []string{"cp"},
		Selected: Selection{Valid: true, Index: 0},
	}
}

func TestApplySomeEmptyOverlayIsNoop(t *testing.T) {
	state := sampleState()
	want := state.clone()
	state.ApplySome(PartialRunState{})
	if diff := cmp.Diff(want, state); diff != "" {
		t.Errorf("empty overlay changed state (-want +got):\n%s", diff)
	}
}

func TestApplySomeFieldByField(t *testing.T) {
	ignore := true
	options := []Option{{Name: "--force", Value: BoolValue(true)}}
	positionals := []Positional{{Kind: PositionalRest, Value: "x"}}
	tokens := []Token{{Kind: TokenValue, SegmentIndex: 7}}
	path := []string{"remote", "add"}
	errMsg := "No matching command."
	selected := Selection{Valid: true, Index: 3}

	tests := []struct {
		name    string
		partial PartialRunState
		verify  func(t *testing.T, s *RunState)
	}{
		{
			name:    "ignore options",
			partial: PartialRunState{IgnoreOptions: &ignore},
			verify: func(t *testing.T, s *RunState) {
				if !s.IgnoreOptions {
					t.Error("IgnoreOptions not overlaid")
				}
			},
		},
		{
			name:    "options",
			partial: PartialRunState{Options: &options},
			verify: func(t *testing.T, s *RunState) {
				if diff := cmp.Diff(options, s.Options); diff != "" {
					t.Errorf("Options (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:    "positionals",
			partial: PartialRunState{Positionals: &positionals},
			verify: func(t *testing.T, s *RunState) {
				if diff := cmp.Diff(positionals, s.Positionals); diff != "" {
					t.Errorf("Positionals (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:    "tokens",
			partial: PartialRunState{Tokens: &tokens},
			verify: func(t *testing.T, s *RunState) {
				if diff := cmp.Diff(tokens, s.Tokens); diff != "" {
					t.Errorf("Tokens (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:    "path",
			partial: PartialRunState{Path: &path},
			verify: func(t *testing.T, s *RunState) {
				if diff := cmp.Diff(path, s.Path); diff != "" {
					t.Errorf("Path (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:    "error message",
			partial: PartialRunState{ErrorMessage: &errMsg},
			verify: func(t *testing.T, s *RunState) {
				if s.ErrorMessage != errMsg {
					t.Errorf("ErrorMessage = %q, want %q", s.ErrorMessage, errMsg)
				}
			},
		},
		{
			name:    "selection",
			partial: PartialRunState{Selected: &selected},
			verify: func(t *testing.T, s *RunState) {
				if s.Selected != selected {
					t.Errorf("Selected = %+v, want %+v", s.Selected, selected)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := sampleState()
			state.ApplySome(tt.partial)
			tt.verify(t, state)
		})
	}
}

func TestApplySomeCopiesOverlaidSequences(t *testing.T) {
	options := []Option{{Name: "--force", Value: BoolValue(true)}}
	state := sampleState()
	state.ApplySome(PartialRunState{Options: &options})

	options[0].Name = "--mutated"
	if state.Options[0].Name != "--force" {
		t.Errorf("overlaid options alias the source slice: %q", state.Options[0].Name)
	}
}

func TestPartialRoundTrip(t *testing.T) {
	source := sampleState()
	source.ErrorMessage = "Invalid option name (\"-1\")."

	target := &RunState{Path: []string{"other"}}
	target.ApplySome(source.Partial())

	if diff := cmp.Diff(source, target); diff != "" {
		t.Errorf("full overlay did not reproduce source (-want +got):\n%s", diff)
	}
}

func TestCloneIndependence(t *testing.T) {
	state := sampleState()
	snapshot := state.clone()

	derived := state.clone()
	derived.Options = append(derived.Options, Option{Name: "-x", Value: BoolValue(true)})
	derived.Tokens = append(derived.Tokens, Token{Kind: TokenValue, SegmentIndex: 9})
	derived.Path = append(derived.Path, "sub")
	derived.Positionals = append(derived.Positionals, Positional{Kind: PositionalRest, Value: "y"})

	if diff := cmp.Diff(snapshot, state); diff != "" {
		t.Errorf("appending to a clone changed the original (-want +got):\n%s", diff)
	}
}
