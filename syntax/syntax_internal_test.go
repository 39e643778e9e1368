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

package syntax

import (
	"testing"
)

func TestRuleReentryIsFatal(t *testing.T) {
	t.Parallel()
	tree, err := NewParseOptions().parse([]byte("x y"), ModeDefault, func(p *parser) {
		defer p.enter("entry")()
		p.enter("entry")
	})
	if tree != nil {
		t.Errorf("Expected nil tree, got: %v", tree.Root())
	}
	fatal, ok := err.(*Error)
	if !ok {
		t.Fatalf("Expected *Error, got: %T %v", err, err)
	}
	if fatal.Code() != 9001 || !fatal.Fatal() {
		t.Errorf("Expected fatal E9001, got: %v", fatal)
	}
	if fatal.Span() != (Span{0, 1}) {
		t.Errorf("Expected span [0, 1), got: %v", fatal.Span())
	}
}

func TestRuleReentryAfterProgress(t *testing.T) {
	t.Parallel()
	tree, err := NewParseOptions().parse([]byte("x y"), ModeDefault, func(p *parser) {
		defer p.enter("entry")()
		p.junk()
		defer p.enter("entry")()
		p.junk()
	})
	if err != nil {
		t.Fatalf("Expected (err == nil), got: %v", err)
	}
	if got := tree.Root().Len(); got != 3 {
		t.Errorf("Expected 3 root children, got: %d", got)
	}
}

func TestUnknownModePanics(t *testing.T) {
	t.Parallel()
	defer func() {
		r := recover()
		err, ok := r.(*Error)
		if !ok || err.Code() != 9000 {
			t.Errorf("Expected panic with E9000, got: %v", r)
		}
	}()
	tokens := &Tokens{
		lexer: &lexer{},
		src:   []byte("x"),
		end:   1,
		mode:  lexModeCount,
	}
	var token Token
	tokens.Next(&token)
}

func TestEmptyNodesAreDiscarded(t *testing.T) {
	t.Parallel()
	tree, err := NewParseOptions().parse([]byte("  x"), ModeDefault, func(p *parser) {
		p.open(N_ENTRIES)
		if p.close(N_ENTRIES) {
			t.Error("Expected empty node to be discarded")
		}
		p.junk()
	})
	if err != nil {
		t.Fatalf("Expected (err == nil), got: %v", err)
	}
	if got := len(tree.nodes); got != 2 {
		t.Errorf("Expected 2 nodes (FILE, ERROR), got: %d", got)
	}
	if got := tree.Root().Len(); got != 2 {
		t.Errorf("Expected whitespace and ERROR under root, got %d children", got)
	}
}
