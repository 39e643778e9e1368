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
	"slices"
)

// DefaultMaxDepth bounds how deeply array and map types may nest.
const DefaultMaxDepth = 256

type ParseOption interface {
	apply(*ParseOptions)
}

func Parse(src []byte, opts ...ParseOption) (*Tree, error) {
	return NewParseOptions(opts...).ParseFile(src)
}

type ParseOptions struct {
	placeholder string
	maxDepth    int
}

func NewParseOptions(opts ...ParseOption) *ParseOptions {
	parseOpts := &ParseOptions{
		placeholder: DefaultPlaceholder,
		maxDepth:    DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt.apply(parseOpts)
	}
	return parseOpts
}

type maxDepthOption int

// WithMaxDepth sets the deepest permitted type nesting. Values below one
// are treated as one.
func WithMaxDepth(depth int) ParseOption {
	return maxDepthOption(depth)
}

func (o maxDepthOption) apply(opts *ParseOptions) {
	opts.maxDepth = max(int(o), 1)
}

// ParseFile parses a complete source file. Malformed input never produces
// an error: problems are recorded on the nodes of the returned tree. The
// error is non-nil only for sources too large to index or for an internal
// parser defect.
func (opts *ParseOptions) ParseFile(src []byte) (*Tree, error) {
	return opts.parse(src, ModeDefault, parseFile)
}

// ParseType parses a lone type expression such as "map[int]string". The
// root is a [N_FILE] node whose first child is the [N_TYPE].
func (opts *ParseOptions) ParseType(src []byte) (*Tree, error) {
	return opts.parse(src, ModeWaitingType, parseLoneType)
}

func (opts *ParseOptions) parse(
	src []byte,
	mode LexMode,
	rule func(*parser),
) (tree *Tree, err error) {
	if len(src) > maxSrcLen {
		return nil, errSourceTooLong(len(src))
	}
	tokens, err := NewTokensRange(
		src, 0, uint32(len(src)), mode,
		WithPlaceholder(opts.placeholder),
	)
	if err != nil {
		return nil, err
	}

	p := newParser(opts, src, tokens)
	defer func() {
		if r := recover(); r != nil {
			fatal, ok := r.(*Error)
			if !ok || !fatal.Fatal() {
				panic(r)
			}
			tree = nil
			err = fatal
		}
	}()

	p.open(N_FILE)
	rule(p)
	return p.finish(), nil
}

type ruleKey struct {
	rule string
	pos  int
}

type parser struct {
	opts     *ParseOptions
	tree     *Tree
	eof      Token
	pos      int
	stack    []int32
	active   map[ruleKey]struct{}
	depth    int
	typeOnly bool
}

func newParser(opts *ParseOptions, src []byte, tokens *Tokens) *parser {
	var all []Token
	for token := range tokens.All() {
		all = append(all, token)
	}
	slots := make([]tokenData, len(all))
	for ii := range slots {
		slots[ii] = tokenData{parent: -1, index: -1}
	}
	return &parser{
		opts: opts,
		tree: &Tree{
			src:        src,
			tokens:     all,
			tokenSlots: slots,
			lines:      indexLines(src),
		},
		eof: Token{
			Kind:  T_EOF,
			Start: uint32(len(src)),
			End:   uint32(len(src)),
		},
		active: make(map[ruleKey]struct{}),
	}
}

func (p *parser) top() int32 {
	if len(p.stack) == 0 {
		return -1
	}
	return p.stack[len(p.stack)-1]
}

// Comments are declarations at file level and trivia everywhere else.
func (p *parser) isTrivia(kind TokenKind) bool {
	if !kind.IsTrivia() {
		return false
	}
	if kind == T_WHITE_SPACE || p.typeOnly {
		return true
	}
	switch p.tree.nodes[p.top()].kind {
	case N_FILE, N_COMMENTS, N_COMMENT, N_DECLARATION:
		return false
	}
	return true
}

func (p *parser) tokenAt(index int) Token {
	if index < len(p.tree.tokens) {
		return p.tree.tokens[index]
	}
	return p.eof
}

func (p *parser) significant(from int) int {
	for from < len(p.tree.tokens) && p.isTrivia(p.tree.tokens[from].Kind) {
		from += 1
	}
	return from
}

func (p *parser) peek() TokenKind {
	return p.tokenAt(p.significant(p.pos)).Kind
}

func (p *parser) peek2() TokenKind {
	first := p.significant(p.pos)
	if first >= len(p.tree.tokens) {
		return T_EOF
	}
	return p.tokenAt(p.significant(first + 1)).Kind
}

func (p *parser) at(kinds ...TokenKind) bool {
	return slices.Contains(kinds, p.peek())
}

func (p *parser) attach(index int) {
	parent := p.top()
	node := &p.tree.nodes[parent]
	p.tree.tokenSlots[index] = tokenData{
		parent: parent,
		index:  int32(len(node.children)),
	}
	node.children = append(node.children, tokenRef(int32(index)))
}

func (p *parser) flushTrivia() {
	for p.pos < len(p.tree.tokens) && p.isTrivia(p.tree.tokens[p.pos].Kind) {
		p.attach(p.pos)
		p.pos += 1
	}
}

// open starts a node. Trivia before its first token goes to the enclosing
// node, so a node never begins with whitespace.
func (p *parser) open(kind NodeKind) {
	if len(p.stack) > 0 {
		p.flushTrivia()
	}
	id := int32(len(p.tree.nodes))
	data := nodeData{
		kind:   kind,
		ok:     true,
		parent: p.top(),
		index:  -1,
	}
	if parent := p.top(); parent >= 0 {
		node := &p.tree.nodes[parent]
		data.index = int32(len(node.children))
		node.children = append(node.children, nodeRef(id))
	}
	p.tree.nodes = append(p.tree.nodes, data)
	p.stack = append(p.stack, id)
}

// close finishes the innermost node as kind. A node that gained no children
// is removed again; close then reports false.
func (p *parser) close(kind NodeKind) bool {
	id := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	node := &p.tree.nodes[id]
	node.kind = kind

	if len(node.children) == 0 {
		if node.parent < 0 {
			return true
		}
		parent := &p.tree.nodes[node.parent]
		parent.children = parent.children[:len(parent.children)-1]
		p.tree.nodes = p.tree.nodes[:id]
		return false
	}

	first := p.tree.element(node.children[0]).Span()
	last := p.tree.element(node.children[len(node.children)-1]).Span()
	node.span = Span{
		start: first.Start(),
		len:   last.End() - first.Start(),
	}
	return true
}

func (p *parser) finish() *Tree {
	for p.pos < len(p.tree.tokens) {
		p.attach(p.pos)
		p.pos += 1
	}
	p.close(N_FILE)
	return p.tree
}

func (p *parser) consume() {
	p.flushTrivia()
	if p.pos >= len(p.tree.tokens) {
		return
	}
	p.attach(p.pos)
	p.pos += 1
}

func (p *parser) try(kinds ...TokenKind) bool {
	if !p.at(kinds...) {
		return false
	}
	p.consume()
	return true
}

// fail marks the innermost node unsuccessful. Only the first problem of a
// node is kept.
func (p *parser) fail(problem *Error) {
	node := &p.tree.nodes[p.top()]
	node.ok = false
	if node.problem == nil {
		node.problem = problem
	}
}

func (p *parser) failExpected(want string) {
	token := p.tokenAt(p.significant(p.pos))
	text := string(p.tree.src[token.Start:token.End])
	p.fail(errExpected(want, token.Kind, text, token.Span()))
}

func (p *parser) expect(kinds ...TokenKind) bool {
	if p.try(kinds...) {
		return true
	}
	p.failExpected(describeKinds(kinds))
	return false
}

// loop repeats its body until an iteration consumes no tokens.
func (p *parser) loop(yield func(struct{}) bool) {
	for {
		pos := p.pos
		if !yield(struct{}{}) {
			return
		}
		if pos == p.pos {
			return
		}
	}
}

// first runs rules in order and stops at the first one that starts.
func (p *parser) first(rules ...func() bool) bool {
	for _, rule := range rules {
		if rule() {
			return true
		}
	}
	return false
}

// enter registers rule as active at the current token. Entering the same
// rule again before any token is consumed would never terminate, so it is
// treated as a parser defect.
func (p *parser) enter(rule string) func() {
	key := ruleKey{rule, p.significant(p.pos)}
	if _, ok := p.active[key]; ok {
		token := p.tokenAt(key.pos)
		panic(errRuleReentered(rule, token.Span()))
	}
	p.active[key] = struct{}{}
	return func() {
		delete(p.active, key)
	}
}

// junk wraps one unexpected token in an [N_ERROR] node.
func (p *parser) junk() {
	token := p.tokenAt(p.significant(p.pos))
	text := string(p.tree.src[token.Start:token.End])
	p.open(N_ERROR)
	p.fail(errUnexpectedToken(token.Kind, text, token.Span()))
	p.consume()
	p.close(N_ERROR)
}
