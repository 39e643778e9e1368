// Copyright (c) 2026 The vivard Authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package sdftree

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vc2402/vivard/syntax"
)

// The text format writes one element per line, children indented by a tab:
//
//	TYPE_DECLARATION [0, 16)
//		KW_TYPE [0, 4) "type"
//		IDENT [5, 8) "Foo"
//
// Unsuccessful nodes end with "!! " and their problem.
type encoder struct {
	w      io.Writer
	opts   options
	indent int
	err    error
}

func (e *encoder) line(s string) {
	if e.err != nil {
		return
	}
	if indent := strings.Repeat("\t", e.indent); indent != "" {
		if _, err := io.WriteString(e.w, indent); err != nil {
			e.err = err
			return
		}
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = err
		return
	}
	if _, err := io.WriteString(e.w, "\n"); err != nil {
		e.err = err
		return
	}
}

func (e *encoder) linef(format string, a ...any) {
	e.line(fmt.Sprintf(format, a...))
}

func (e *encoder) visit(elem syntax.Element) {
	switch elem := elem.(type) {
	case syntax.Leaf:
		e.linef("%s %s %s", elem.Kind(), elem.Span(), strconv.Quote(elem.Text()))
	case syntax.Node:
		if problem := elem.Problem(); problem != nil {
			e.linef("%s %s !! %s", elem.Kind(), elem.Span(), problem)
		} else {
			e.linef("%s %s", elem.Kind(), elem.Span())
		}
		e.indent += 1
		for child := range elem.Children() {
			if !e.opts.whitespace && isWhitespace(child) {
				continue
			}
			e.visit(child)
		}
		e.indent -= 1
	}
}
