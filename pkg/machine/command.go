// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package machine

import (
	"fmt"
	"strings"

	"github.com/clasp-dev/clasp/pkg/match"
)

// Command declares one matchable command: its subcommand path, its options,
// and its positional schema. Commands are built with the fluent registration
// API and compiled into check/reducer edge graphs by Compile; the declaration
// carries no parsing logic of its own.
type Command struct {
	path        []string
	options     []optionSpec
	positionals []positionalSpec
	noHelp      bool
}

type optionSpec struct {
	names      []string
	arity      int // 0 = boolean, 1 = takes one value
	repeatable bool
}

type positionalSpec struct {
	name string
	kind match.PositionalKind
}

// NewCommand declares a command reachable through the given subcommand path
// segments. An empty path declares the default command.
func NewCommand(path ...string) *Command {
	return &Command{path: path}
}

// Bool declares a boolean option under the given names, e.g.
// Bool("-r", "--recursive"). Single-letter names participate in short-flag
// bundling.
func (c *Command) Bool(names ...string) *Command {
	c.options = append(c.options, optionSpec{names: names})
	return c
}

// String declares an option taking exactly one value, supplied either as the
// following argument or bound with "=" on a long name.
func (c *Command) String(names ...string) *Command {
	c.options = append(c.options, optionSpec{names: names, arity: 1})
	return c
}

// Array declares a repeatable option taking one value per occurrence; the
// values accumulate in encounter order.
func (c *Command) Array(names ...string) *Command {
	c.options = append(c.options, optionSpec{names: names, arity: 1, repeatable: true})
	return c
}

// Positional declares a required positional argument.
func (c *Command) Positional(name string) *Command {
	c.positionals = append(c.positionals, positionalSpec{name: name, kind: match.PositionalRequired})
	return c
}

// Optional declares an optional positional argument.
func (c *Command) Optional(name string) *Command {
	c.positionals = append(c.positionals, positionalSpec{name: name, kind: match.PositionalOptional})
	return c
}

// Rest declares a positional bucket accepting zero or more arguments.
// Positionals declared after it are still honored; the matcher forks to find
// an assignment that satisfies them.
func (c *Command) Rest(name string) *Command {
	c.positionals = append(c.positionals, positionalSpec{name: name, kind: match.PositionalRest})
	return c
}

// NoHelp removes the implicit --help / -h redirection from this command.
func (c *Command) NoHelp() *Command {
	c.noHelp = true
	return c
}

// Path returns the declared subcommand path segments.
func (c *Command) Path() []string {
	return append([]string(nil), c.path...)
}

// Usage renders a one-line usage summary for the command.
func (c *Command) Usage() string {
	parts := append([]string(nil), c.path...)
	for _, opt := range c.options {
		names := strings.Join(opt.names, ",")
		switch {
		case opt.arity == 0:
			parts = append(parts, fmt.Sprintf("[%s]", names))
		case opt.repeatable:
			parts = append(parts, fmt.Sprintf("[%s <value>]...", names))
		default:
			parts = append(parts, fmt.Sprintf("[%s <value>]", names))
		}
	}
	for _, pos := range c.positionals {
		switch pos.kind {
		case match.PositionalRequired:
			parts = append(parts, fmt.Sprintf("<%s>", pos.name))
		case match.PositionalOptional:
			parts = append(parts, fmt.Sprintf("[%s]", pos.name))
		case match.PositionalRest:
			parts = append(parts, fmt.Sprintf("[%s...]", pos.name))
		}
	}
	return strings.Join(parts, " ")
}

// validate checks the declaration for mistakes that would compile into a
// nonsensical grammar.
func (c *Command) validate() error {
	seen := make(map[string]bool)
	for _, opt := range c.options {
		if len(opt.names) == 0 {
			return fmt.Errorf("command %q: option with no names", strings.Join(c.path, " "))
		}
		for _, name := range opt.names {
			if !match.ValidOptionName(name) {
				return fmt.Errorf("command %q: invalid option name %q", strings.Join(c.path, " "), name)
			}
			if seen[name] {
				return fmt.Errorf("command %q: duplicate option name %q", strings.Join(c.path, " "), name)
			}
			seen[name] = true
		}
	}
	rest := 0
	for _, pos := range c.positionals {
		if pos.kind == match.PositionalRest {
			rest++
		}
	}
	if rest > 1 {
		return fmt.Errorf("command %q: multiple rest positionals", strings.Join(c.path, " "))
	}
	for _, seg := range c.path {
		if seg == "" || strings.HasPrefix(seg, "-") {
			return fmt.Errorf("command %q: invalid path segment %q", strings.Join(c.path, " "), seg)
		}
	}
	return nil
}
