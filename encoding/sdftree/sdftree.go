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

// Package sdftree renders a parsed SDF syntax tree for humans and tools.
package sdftree

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vc2402/vivard/syntax"
)

type Format uint8

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("unknown tree format %q (want text, json or yaml)", name)
}

type Option interface {
	apply(*options)
}

type options struct {
	whitespace bool
}

type whitespaceOption bool

// Whitespace includes whitespace tokens in the output. They are omitted by
// default; comments are always kept.
func Whitespace(include bool) Option {
	return whitespaceOption(include)
}

func (o whitespaceOption) apply(opts *options) {
	opts.whitespace = bool(o)
}

func newOptions(opts []Option) options {
	var out options
	for _, opt := range opts {
		opt.apply(&out)
	}
	return out
}

// An Element is the serializable form of a node or token.
type Element struct {
	Kind     string     `json:"kind" yaml:"kind"`
	Start    uint32     `json:"start" yaml:"start"`
	End      uint32     `json:"end" yaml:"end"`
	Text     string     `json:"text,omitempty" yaml:"text,omitempty"`
	Problem  string     `json:"problem,omitempty" yaml:"problem,omitempty"`
	Children []*Element `json:"children,omitempty" yaml:"children,omitempty"`
}

// Convert copies elem and its descendants. Leaves carry their text; nodes
// carry the problem of an unsuccessful parse, if any.
func Convert(elem syntax.Element, opts ...Option) *Element {
	o := newOptions(opts)
	return convert(elem, o)
}

func convert(elem syntax.Element, opts options) *Element {
	span := elem.Span()
	out := &Element{
		Start: span.Start(),
		End:   span.End(),
	}
	switch elem := elem.(type) {
	case syntax.Leaf:
		out.Kind = elem.Kind().String()
		out.Text = elem.Text()
	case syntax.Node:
		out.Kind = elem.Kind().String()
		if problem := elem.Problem(); problem != nil {
			out.Problem = problem.Error()
		}
		for child := range elem.Children() {
			if !opts.whitespace && isWhitespace(child) {
				continue
			}
			out.Children = append(out.Children, convert(child, opts))
		}
	}
	return out
}

func isWhitespace(elem syntax.Element) bool {
	leaf, ok := elem.(syntax.Leaf)
	return ok && leaf.Kind() == syntax.T_WHITE_SPACE
}

func Encode(elem syntax.Element, format Format, opts ...Option) (string, error) {
	var buf strings.Builder
	if err := EncodeTo(&buf, elem, format, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func EncodeTo(w io.Writer, elem syntax.Element, format Format, opts ...Option) error {
	switch format {
	case FormatText:
		e := encoder{w: w, opts: newOptions(opts)}
		e.visit(elem)
		return e.err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "\t")
		return enc.Encode(Convert(elem, opts...))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Convert(elem, opts...)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown tree format %s", format)
}
