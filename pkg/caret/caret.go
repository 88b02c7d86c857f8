// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package caret renders matcher failures as annotated argument lines, with a
// caret run pointing at the characters that produced the error.
package caret

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/clasp-dev/clasp/pkg/match"
)

const indent = "    "

var errLabel = color.New(color.FgRed, color.Bold)
var caretMark = color.New(color.FgRed)

// Render writes a human-oriented report of a failed match: the error message,
// the original argument vector, and a caret line underlining the offending
// segment. Errors that quote a literal point at that literal; boundary errors
// (missing arguments, truncated input) point just past the end of the line.
func Render(w io.Writer, args []string, state *match.RunState) {
	limit := lineLimit(w)

	fmt.Fprintf(w, "%s %s\n\n", errLabel.Sprint("Error:"), state.ErrorMessage)

	line := indent + strings.Join(args, " ")
	start, width := caretSpan(args, state.ErrorMessage)
	if len(line) > limit && start+width <= limit {
		line = line[:limit-3] + "..."
	}
	fmt.Fprintln(w, line)
	if start+width <= limit {
		fmt.Fprintln(w, strings.Repeat(" ", start)+caretMark.Sprint(strings.Repeat("^", width)))
	}
}

// caretSpan locates the segment an error message refers to within the
// rendered argument line. Messages produced from a concrete token carry the
// token's literal text in quotes; everything else points one column past the
// end of the input.
func caretSpan(args []string, msg string) (start, width int) {
	past := len(indent) + len(strings.Join(args, " "))
	if len(args) > 0 {
		past++
	}

	literal, ok := quotedLiteral(msg)
	if !ok {
		return past, 1
	}
	col := len(indent)
	for _, arg := range args {
		if arg == literal {
			return col, len(arg)
		}
		col += len(arg) + 1
	}
	return past, 1
}

// quotedLiteral extracts the token text from a message of the shape
// `<reason> ("<literal>").`.
func quotedLiteral(msg string) (string, bool) {
	if !strings.HasSuffix(msg, `").`) {
		return "", false
	}
	open := strings.LastIndex(msg, ` ("`)
	if open < 0 {
		return "", false
	}
	literal, err := strconv.Unquote(msg[open+2 : len(msg)-2])
	if err != nil {
		return "", false
	}
	return literal, true
}

// lineLimit returns how many columns a rendered line may occupy. Only real
// terminals constrain the width; everything else gets a conventional 80.
func lineLimit(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 80
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return 80
	}
	return cols
}

// Trace formats the token record of a state as one annotation per token,
// showing which characters of which segment each token covers. It is meant
// for debugging grammars, not for end users.
func Trace(args []string, tokens []match.Token) []string {
	lines := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		text := "<implicit>"
		if tok.SegmentIndex < len(args) {
			seg := args[tok.SegmentIndex]
			if tok.Slice != nil {
				text = fmt.Sprintf("%q [%d:%d]", seg[tok.Slice.Start:tok.Slice.End], tok.Slice.Start, tok.Slice.End)
			} else {
				text = fmt.Sprintf("%q", seg)
			}
		}
		label := tok.Kind.String()
		if tok.Option != "" {
			label += " " + tok.Option
		}
		lines = append(lines, fmt.Sprintf("argv[%d] %-18s %s", tok.SegmentIndex, label, text))
	}
	return lines
}
