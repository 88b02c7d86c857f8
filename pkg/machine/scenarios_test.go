// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package machine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"

	"github.com/clasp-dev/clasp/pkg/match"
)

type scenario struct {
	Name  string       `yaml:"name"`
	Args  []string     `yaml:"args"`
	Error string       `yaml:"error"`
	Help  *int         `yaml:"help"`
	Want  *expectation `yaml:"want"`
}

type expectation struct {
	Index       int                `yaml:"index"`
	Path        []string           `yaml:"path"`
	Options     []optionExpect     `yaml:"options"`
	Positionals []positionalExpect `yaml:"positionals"`
}

type optionExpect struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

type positionalExpect struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

func (o optionExpect) option(t *testing.T) match.Option {
	t.Helper()
	return match.Option{Name: o.Name, Value: toOptionValue(t, o.Value)}
}

func toOptionValue(t *testing.T, v any) match.OptionValue {
	t.Helper()
	switch v := v.(type) {
	case nil:
		return match.NoValue{}
	case bool:
		return match.BoolValue(v)
	case string:
		return match.StringValue(v)
	case []any:
		arr := make(match.ArrayValue, 0, len(v))
		for _, item := range v {
			arr = append(arr, fmt.Sprint(item))
		}
		return arr
	default:
		t.Fatalf("unsupported option value in fixture: %#v", v)
		return nil
	}
}

func (p positionalExpect) positional(t *testing.T) match.Positional {
	t.Helper()
	kinds := map[string]match.PositionalKind{
		"required": match.PositionalRequired,
		"optional": match.PositionalOptional,
		"rest":     match.PositionalRest,
	}
	kind, ok := kinds[p.Kind]
	if !ok {
		t.Fatalf("unknown positional kind in fixture: %q", p.Kind)
	}
	return match.Positional{Kind: kind, Value: p.Value}
}

func loadScenarios(t *testing.T) []scenario {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "scenarios.yaml"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var scenarios []scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return scenarios
}

func TestScenarios(t *testing.T) {
	m := mustCompile(t,
		cpCommand(),
		NewCommand("archive").String("-o", "--output").Array("--tag").Optional("input"),
		NewCommand("remote").Rest("args"),
		NewCommand("remote", "add").String("--url").Positional("name"),
	)

	for _, sc := range loadScenarios(t) {
		t.Run(sc.Name, func(t *testing.T) {
			res, err := m.Run(sc.Args)

			if sc.Error != "" {
				if err == nil {
					t.Fatalf("Run(%v) succeeded, want error %q", sc.Args, sc.Error)
				}
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("Run(%v) error = %v, want *ParseError", sc.Args, err)
				}
				if perr.Error() != sc.Error {
					t.Errorf("error = %q, want %q", perr.Error(), sc.Error)
				}
				return
			}
			if err != nil {
				t.Fatalf("Run(%v) error = %v", sc.Args, err)
			}

			if sc.Help != nil {
				if !res.Help || res.HelpIndex != *sc.Help {
					t.Errorf("Help = %v, HelpIndex = %d, want true, %d", res.Help, res.HelpIndex, *sc.Help)
				}
				return
			}

			want := sc.Want
			if want == nil {
				t.Fatal("fixture case has neither error, help, nor want")
			}
			if res.Index != want.Index {
				t.Errorf("Index = %d, want %d", res.Index, want.Index)
			}
			if len(want.Path) > 0 {
				if diff := cmp.Diff(want.Path, res.State.Path); diff != "" {
					t.Errorf("path mismatch (-want +got):\n%s", diff)
				}
			}

			wantOptions := make([]match.Option, 0, len(want.Options))
			for _, o := range want.Options {
				wantOptions = append(wantOptions, o.option(t))
			}
			if diff := cmp.Diff(wantOptions, res.State.Options, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("options mismatch (-want +got):\n%s", diff)
			}

			wantPositionals := make([]match.Positional, 0, len(want.Positionals))
			for _, p := range want.Positionals {
				wantPositionals = append(wantPositionals, p.positional(t))
			}
			if diff := cmp.Diff(wantPositionals, res.State.Positionals, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("positionals mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
