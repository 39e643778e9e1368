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
	"bytes"
	"cmp"
	"fmt"
	"iter"
	"slices"
	"sort"
	"unicode/utf8"
)

type Span struct {
	start, len uint32
}

func NewSpan(start, len uint32) Span {
	return Span{start, len}
}

func (s Span) Start() uint32 {
	return s.start
}

func (s Span) End() uint32 {
	return s.start + s.len
}

func (s Span) Len() uint32 {
	return s.len
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.start, s.start+s.len)
}

type NodeKind uint8

const (
	N_FILE NodeKind = iota
	N_COMMENTS
	N_COMMENT
	N_PACKAGE_DECLARATION
	N_DECLARATION
	N_TYPE_DECLARATION
	N_TYPE_MODIFIERS
	N_TYPE_MODIFIER
	N_EXTENDS
	N_ENTRIES
	N_ENTRY
	N_FIELD
	N_METHOD
	N_RETURN_TYPE
	N_PARAMS
	N_PARAM
	N_TYPE
	N_SIMPLE_TYPE
	N_ST_INT
	N_ST_FLOAT
	N_ST_STRING
	N_ST_BOOL
	N_ST_DATE
	N_ARRAY_TYPE
	N_MAP_TYPE
	N_MAP_INDEX_TYPE
	N_ATTR_MODIFIERS
	N_ATTR_MODIFIER
	N_HOOK_TAG
	N_ANNOTATION
	N_ANNOTATION_VALUES
	N_ANNOTATION_VALUE
	N_ANN_PARAM
	N_ANN_PARAM_NAME
	N_ANN_PARAM_VALUE
	N_META_DECLARATION
	N_ENUM_DECLARATION
	N_ENUM_ITEM
	N_ERROR

	nodeKindCount
)

var nodeKindNames = [nodeKindCount]string{
	N_FILE:                "FILE",
	N_COMMENTS:            "COMMENTS",
	N_COMMENT:             "COMMENT",
	N_PACKAGE_DECLARATION: "PACKAGE_DECLARATION",
	N_DECLARATION:         "DECLARATION",
	N_TYPE_DECLARATION:    "TYPE_DECLARATION",
	N_TYPE_MODIFIERS:      "TYPE_MODIFIERS",
	N_TYPE_MODIFIER:       "TYPE_MODIFIER",
	N_EXTENDS:             "EXTENDS",
	N_ENTRIES:             "ENTRIES",
	N_ENTRY:               "ENTRY",
	N_FIELD:               "FIELD",
	N_METHOD:              "METHOD",
	N_RETURN_TYPE:         "RETURN_TYPE",
	N_PARAMS:              "PARAMS",
	N_PARAM:               "PARAM",
	N_TYPE:                "TYPE",
	N_SIMPLE_TYPE:         "SIMPLE_TYPE",
	N_ST_INT:              "ST_INT",
	N_ST_FLOAT:            "ST_FLOAT",
	N_ST_STRING:           "ST_STRING",
	N_ST_BOOL:             "ST_BOOL",
	N_ST_DATE:             "ST_DATE",
	N_ARRAY_TYPE:          "ARRAY_TYPE",
	N_MAP_TYPE:            "MAP_TYPE",
	N_MAP_INDEX_TYPE:      "MAP_INDEX_TYPE",
	N_ATTR_MODIFIERS:      "ATTR_MODIFIERS",
	N_ATTR_MODIFIER:       "ATTR_MODIFIER",
	N_HOOK_TAG:            "HOOK_TAG",
	N_ANNOTATION:          "ANNOTATION",
	N_ANNOTATION_VALUES:   "ANNOTATION_VALUES",
	N_ANNOTATION_VALUE:    "ANNOTATION_VALUE",
	N_ANN_PARAM:           "ANN_PARAM",
	N_ANN_PARAM_NAME:      "ANN_PARAM_NAME",
	N_ANN_PARAM_VALUE:     "ANN_PARAM_VALUE",
	N_META_DECLARATION:    "META_DECLARATION",
	N_ENUM_DECLARATION:    "ENUM_DECLARATION",
	N_ENUM_ITEM:           "ENUM_ITEM",
	N_ERROR:               "ERROR",
}

func (k NodeKind) String() string {
	if k < nodeKindCount {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint8(k))
}

// An elemRef names a child: values >= 0 are node ids, negative values are
// token indexes encoded as -(index+1).
type elemRef int32

func nodeRef(id int32) elemRef {
	return elemRef(id)
}

func tokenRef(index int32) elemRef {
	return elemRef(-(index + 1))
}

func (r elemRef) isToken() bool {
	return r < 0
}

func (r elemRef) node() int32 {
	return int32(r)
}

func (r elemRef) token() int32 {
	return int32(-r) - 1
}

type nodeData struct {
	kind     NodeKind
	ok       bool
	span     Span
	parent   int32
	index    int32
	children []elemRef
	problem  *Error
}

type tokenData struct {
	parent int32
	index  int32
}

// A Tree owns the source text, every token scanned from it, and every node
// built over those tokens. Node and Leaf are cheap handles into a Tree.
type Tree struct {
	src        []byte
	tokens     []Token
	tokenSlots []tokenData
	nodes      []nodeData
	lines      []uint32
}

func (t *Tree) Root() Node {
	return Node{t, 0}
}

func (t *Tree) Source() []byte {
	return t.src
}

// Tokens returns every token of the source in order, trivia included.
func (t *Tree) Tokens() []Token {
	return t.tokens
}

// OK reports whether every node was parsed successfully.
func (t *Tree) OK() bool {
	for ii := range t.nodes {
		if !t.nodes[ii].ok {
			return false
		}
	}
	return true
}

// Problems returns the diagnostics of unsuccessful nodes ordered by
// position. Problems at the same offset keep their pre-order.
func (t *Tree) Problems() []*Error {
	var out []*Error
	Walk(t.Root(), func(elem Element) bool {
		node, isNode := elem.(Node)
		if !isNode {
			return true
		}
		if problem := node.Problem(); problem != nil {
			out = append(out, problem)
		}
		return true
	})
	slices.SortStableFunc(out, func(a, b *Error) int {
		return cmp.Compare(a.span.Start(), b.span.Start())
	})
	return out
}

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Position maps a byte offset to a 1-based line and column. Columns count
// runes, so a multi-byte character advances the column by one.
func (t *Tree) Position(offset uint32) Position {
	if offset > uint32(len(t.src)) {
		offset = uint32(len(t.src))
	}
	line := sort.Search(len(t.lines), func(ii int) bool {
		return t.lines[ii] > offset
	}) - 1
	lineStart := t.lines[line]
	column := utf8.RuneCount(t.src[lineStart:offset]) + 1
	return Position{Line: line + 1, Column: column}
}

func indexLines(src []byte) []uint32 {
	lines := []uint32{0}
	for ii, c := range src {
		if c == '\n' {
			lines = append(lines, uint32(ii+1))
		}
	}
	return lines
}

// An Element is a child of a [Node]: either a nested Node or a token Leaf.
type Element interface {
	Span() Span
	Parent() (Node, bool)
	isElement()
}

type Node struct {
	tree *Tree
	id   int32
}

var _ Element = Node{}

func (Node) isElement() {}

func (n Node) data() *nodeData {
	return &n.tree.nodes[n.id]
}

func (n Node) Tree() *Tree {
	return n.tree
}

func (n Node) Kind() NodeKind {
	return n.data().kind
}

func (n Node) Span() Span {
	return n.data().span
}

// OK reports whether every mandatory element of this node was present.
// Failures of nested nodes do not affect their parents.
func (n Node) OK() bool {
	return n.data().ok
}

// Problem returns the first structural error recorded for this node, or
// nil if the node is well-formed.
func (n Node) Problem() *Error {
	return n.data().problem
}

func (n Node) Parent() (Node, bool) {
	parent := n.data().parent
	if parent < 0 {
		return Node{}, false
	}
	return Node{n.tree, parent}, true
}

func (n Node) Len() int {
	return len(n.data().children)
}

func (n Node) Child(index int) Element {
	return n.tree.element(n.data().children[index])
}

func (n Node) Children() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for _, ref := range n.data().children {
			if !yield(n.tree.element(ref)) {
				return
			}
		}
	}
}

// ChildNodes yields the direct child nodes. With no kinds it yields all of
// them, otherwise only those of the listed kinds.
func (n Node) ChildNodes(kinds ...NodeKind) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, ref := range n.data().children {
			if ref.isToken() {
				continue
			}
			child := Node{n.tree, ref.node()}
			if len(kinds) > 0 && !slices.Contains(kinds, child.Kind()) {
				continue
			}
			if !yield(child) {
				return
			}
		}
	}
}

// Leaves yields the direct token children, trivia included.
func (n Node) Leaves() iter.Seq[Leaf] {
	return func(yield func(Leaf) bool) {
		for _, ref := range n.data().children {
			if !ref.isToken() {
				continue
			}
			if !yield(Leaf{n.tree, ref.token()}) {
				return
			}
		}
	}
}

func (n Node) FirstChild(kind NodeKind) (Node, bool) {
	for child := range n.ChildNodes(kind) {
		return child, true
	}
	return Node{}, false
}

// FirstToken returns the first direct token child of any of the given kinds.
func (n Node) FirstToken(kinds ...TokenKind) (Leaf, bool) {
	for leaf := range n.Leaves() {
		if slices.Contains(kinds, leaf.Kind()) {
			return leaf, true
		}
	}
	return Leaf{}, false
}

func (n Node) NextSibling() (Element, bool) {
	d := n.data()
	return n.tree.sibling(d.parent, d.index+1)
}

func (n Node) PrevSibling() (Element, bool) {
	d := n.data()
	return n.tree.sibling(d.parent, d.index-1)
}

// Text returns the source text covered by the node.
func (n Node) Text() string {
	span := n.Span()
	return string(n.tree.src[span.Start():span.End()])
}

func (n Node) String() string {
	return fmt.Sprintf("%s%s", n.Kind(), n.Span())
}

type Leaf struct {
	tree  *Tree
	index int32
}

var _ Element = Leaf{}

func (Leaf) isElement() {}

func (l Leaf) Token() Token {
	return l.tree.tokens[l.index]
}

func (l Leaf) Kind() TokenKind {
	return l.Token().Kind
}

func (l Leaf) Span() Span {
	return l.Token().Span()
}

func (l Leaf) Text() string {
	token := l.Token()
	return string(l.tree.src[token.Start:token.End])
}

func (l Leaf) Parent() (Node, bool) {
	slot := l.tree.tokenSlots[l.index]
	if slot.parent < 0 {
		return Node{}, false
	}
	return Node{l.tree, slot.parent}, true
}

func (l Leaf) NextSibling() (Element, bool) {
	slot := l.tree.tokenSlots[l.index]
	return l.tree.sibling(slot.parent, slot.index+1)
}

func (l Leaf) PrevSibling() (Element, bool) {
	slot := l.tree.tokenSlots[l.index]
	return l.tree.sibling(slot.parent, slot.index-1)
}

func (l Leaf) String() string {
	return fmt.Sprintf("%s%s", l.Kind(), l.Span())
}

func (t *Tree) element(ref elemRef) Element {
	if ref.isToken() {
		return Leaf{t, ref.token()}
	}
	return Node{t, ref.node()}
}

func (t *Tree) sibling(parent, index int32) (Element, bool) {
	if parent < 0 || index < 0 {
		return nil, false
	}
	children := t.nodes[parent].children
	if int(index) >= len(children) {
		return nil, false
	}
	return t.element(children[index]), true
}

// Walk visits elem and its descendants in document order. Returning false
// from walkFn skips the children of a node. After the children of a node
// have been visited, walkFn is called with nil.
func Walk(elem Element, walkFn func(Element) bool) {
	if elem == nil || !walkFn(elem) {
		return
	}
	node, isNode := elem.(Node)
	if !isNode {
		return
	}
	for child := range node.Children() {
		Walk(child, walkFn)
	}
	walkFn(nil)
}

// Unparse concatenates the text of every token under elem.
func Unparse(elem Element) string {
	var buf bytes.Buffer
	UnparseTo(elem, &buf)
	return buf.String()
}

func UnparseTo(elem Element, buf *bytes.Buffer) {
	switch elem := elem.(type) {
	case Leaf:
		buf.WriteString(elem.Text())
	case Node:
		for child := range elem.Children() {
			UnparseTo(child, buf)
		}
	}
}
