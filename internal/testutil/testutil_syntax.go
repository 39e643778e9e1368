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

package testutil

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vc2402/vivard/syntax"
)

// Sexpr renders elem compactly: nodes as "(KIND children...)", tokens by
// kind. Whitespace is skipped and unsuccessful nodes carry a trailing "!".
//
//	(FIELD IDENT SEPARATOR (TYPE (SIMPLE_TYPE (ST_INT INT))))
func Sexpr(elem syntax.Element) string {
	var buf strings.Builder
	sexpr(&buf, elem)
	return buf.String()
}

func sexpr(buf *strings.Builder, elem syntax.Element) {
	switch elem := elem.(type) {
	case syntax.Leaf:
		buf.WriteString(elem.Kind().String())
	case syntax.Node:
		buf.WriteString("(")
		buf.WriteString(elem.Kind().String())
		if !elem.OK() {
			buf.WriteString("!")
		}
		for child := range elem.Children() {
			if leaf, ok := child.(syntax.Leaf); ok && leaf.Kind() == syntax.T_WHITE_SPACE {
				continue
			}
			buf.WriteString(" ")
			sexpr(buf, child)
		}
		buf.WriteString(")")
	}
}

// CheckTree verifies the structural guarantees every tree must satisfy:
// leaves cover the source without gaps or overlaps, each token is attached
// exactly once, and every node spans exactly its children.
func CheckTree(t *testing.T, tree *syntax.Tree) {
	t.Helper()
	src := tree.Source()

	var offset uint32
	var leaves int
	syntax.Walk(tree.Root(), func(elem syntax.Element) bool {
		switch elem := elem.(type) {
		case syntax.Leaf:
			span := elem.Span()
			if span.Start() != offset {
				t.Errorf("leaf %v starts at %d, want %d", elem, span.Start(), offset)
			}
			offset = span.End()
			leaves += 1
		case syntax.Node:
			checkNodeSpan(t, elem)
		}
		return true
	})
	if offset != uint32(len(src)) {
		t.Errorf("leaves end at %d, want %d", offset, len(src))
	}
	if leaves != len(tree.Tokens()) {
		t.Errorf("tree has %d leaves, want %d tokens", leaves, len(tree.Tokens()))
	}
	if got := syntax.Unparse(tree.Root()); got != string(src) {
		t.Errorf("Unparse(root) = %q, want %q", got, src)
	}
}

func checkNodeSpan(t *testing.T, node syntax.Node) {
	t.Helper()
	if node.Len() == 0 {
		if _, hasParent := node.Parent(); hasParent {
			t.Errorf("node %v has no children", node)
		}
		return
	}
	first := node.Child(0).Span()
	last := node.Child(node.Len() - 1).Span()
	span := node.Span()
	if span.Start() != first.Start() || span.End() != last.End() {
		t.Errorf(
			"node %v spans %v, want [%d, %d)",
			node, span, first.Start(), last.End(),
		)
	}
	for child := range node.Children() {
		parent, ok := child.Parent()
		if !ok || parent != node {
			t.Errorf("child %v of %v reports parent %v", child, node, parent)
		}
	}
}

// TokenCase is one scanner expectation loaded from a YAML case file.
type TokenCase struct {
	Name   string   `yaml:"name"`
	Mode   string   `yaml:"mode"`
	Src    string   `yaml:"src"`
	Tokens []string `yaml:"tokens"`
}

// LoadTokenCases reads every *.yaml file under "tokens/" in testdata. Each
// file holds a list of cases; expected tokens are written KIND or
// KIND "text".
func LoadTokenCases(testdata fs.FS) ([]TokenCase, error) {
	paths, err := fs.Glob(testdata, "tokens/*.yaml")
	if err != nil {
		return nil, err
	}
	var out []TokenCase
	for _, path := range paths {
		data, err := fs.ReadFile(testdata, path)
		if err != nil {
			return nil, err
		}
		var cases []TokenCase
		if err := yaml.Unmarshal(data, &cases); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for ii := range cases {
			if cases[ii].Name == "" {
				return nil, fmt.Errorf("%s: case %d has no name", path, ii)
			}
		}
		out = append(out, cases...)
	}
	return out, nil
}

// FormatTokens renders tokens the way [TokenCase] expectations are written.
// Whitespace tokens are rendered by kind alone.
func FormatTokens(src []byte, tokens []syntax.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token.Kind == syntax.T_WHITE_SPACE {
			out = append(out, token.Kind.String())
			continue
		}
		out = append(out, fmt.Sprintf("%s %q", token.Kind, src[token.Start:token.End]))
	}
	return out
}

// TestdataFS opens the testdata directory of the package under test.
func TestdataFS() (fs.FS, error) {
	if _, err := os.Stat("testdata"); err != nil {
		return nil, err
	}
	return os.DirFS("testdata"), nil
}
