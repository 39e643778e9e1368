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
	"fmt"
	"iter"
)

const (
	maxSrcLen = 0x7FFFFFFF // (2**31)-1

	// DefaultPlaceholder is the word an editing host inserts at the caret
	// while computing completions.
	DefaultPlaceholder = "DuM_Id"
)

// A Token is a classified half-open byte range [Start, End) of the source.
// Offsets are absolute even when only a sub-range was tokenized.
type Token struct {
	Kind  TokenKind
	Start uint32
	End   uint32
}

func (t Token) Len() uint32 {
	return t.End - t.Start
}

func (t Token) Span() Span {
	return Span{start: t.Start, len: t.End - t.Start}
}

type TokenKind uint8

const (
	T_EOF TokenKind = iota

	T_WHITE_SPACE
	T_BAD_CHARACTER
	T_COMMENT_LINE
	T_META_LINE
	T_PLACEHOLDER

	T_IDENT
	T_TYPE_NAME
	T_QUALIFIED_NAME

	T_STRING_VALUE
	T_NUMBER_VALUE
	T_BOOL_VALUE

	T_ANNOTATION_TAG
	T_HOOK_TAG
	T_ATTR_MODIFIER
	T_TYPE_MODIFIER

	T_KW_PACKAGE
	T_KW_TYPE
	T_KW_ENUM
	T_KW_EXTENDS
	T_KW_META
	T_KW_MAP
	T_KW_AUTO

	T_INT
	T_FLOAT
	T_STRING
	T_BOOL
	T_DATE

	T_OPEN_CURL
	T_CLOSE_CURL
	T_OPEN_SQUARE
	T_CLOSE_SQUARE
	T_OPEN_PAREN
	T_CLOSE_PAREN

	T_COMMA
	T_SEPARATOR
	T_STATEMENT_END
	T_EQ
	T_NOT_NULL
	T_STAR
	T_MORE
	T_MODIFIER_OPEN
	T_MODIFIER_CLOSE

	tokenKindCount
)

var tokenKindNames = [tokenKindCount]string{
	T_EOF:             "EOF",
	T_WHITE_SPACE:     "WHITE_SPACE",
	T_BAD_CHARACTER:   "BAD_CHARACTER",
	T_COMMENT_LINE:    "COMMENT_LINE",
	T_META_LINE:       "META_LINE",
	T_PLACEHOLDER:     "PLACEHOLDER",
	T_IDENT:           "IDENT",
	T_TYPE_NAME:       "TYPE_NAME",
	T_QUALIFIED_NAME:  "QUALIFIED_NAME",
	T_STRING_VALUE:    "STRING_VALUE",
	T_NUMBER_VALUE:    "NUMBER_VALUE",
	T_BOOL_VALUE:      "BOOL_VALUE",
	T_ANNOTATION_TAG:  "ANNOTATION_TAG",
	T_HOOK_TAG:        "HOOK_TAG",
	T_ATTR_MODIFIER:   "ATTR_MODIFIER",
	T_TYPE_MODIFIER:   "TYPE_MODIFIER",
	T_KW_PACKAGE:      "KW_PACKAGE",
	T_KW_TYPE:         "KW_TYPE",
	T_KW_ENUM:         "KW_ENUM",
	T_KW_EXTENDS:      "KW_EXTENDS",
	T_KW_META:         "KW_META",
	T_KW_MAP:          "KW_MAP",
	T_KW_AUTO:         "KW_AUTO",
	T_INT:             "INT",
	T_FLOAT:           "FLOAT",
	T_STRING:          "STRING",
	T_BOOL:            "BOOL",
	T_DATE:            "DATE",
	T_OPEN_CURL:       "OPEN_CURL",
	T_CLOSE_CURL:      "CLOSE_CURL",
	T_OPEN_SQUARE:     "OPEN_SQUARE",
	T_CLOSE_SQUARE:    "CLOSE_SQUARE",
	T_OPEN_PAREN:      "OPEN_PAREN",
	T_CLOSE_PAREN:     "CLOSE_PAREN",
	T_COMMA:           "COMMA",
	T_SEPARATOR:       "SEPARATOR",
	T_STATEMENT_END:   "STATEMENT_END",
	T_EQ:              "EQ",
	T_NOT_NULL:        "NOT_NULL",
	T_STAR:            "STAR",
	T_MORE:            "MORE",
	T_MODIFIER_OPEN:   "MODIFIER_OPEN",
	T_MODIFIER_CLOSE:  "MODIFIER_CLOSE",
}

func (k TokenKind) String() string {
	if k < tokenKindCount {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(k))
}

// IsTrivia reports whether tokens of this kind carry no grammatical meaning
// outside of declaration-level comments.
func (k TokenKind) IsTrivia() bool {
	return k == T_WHITE_SPACE || k == T_COMMENT_LINE
}

// IsSimpleType reports whether k names one of the built-in scalar types.
func (k TokenKind) IsSimpleType() bool {
	return k >= T_INT && k <= T_DATE
}

// LexMode selects which token rules are active for the next token. Modes
// are exclusive: entering one discards the previous.
type LexMode uint8

const (
	ModeDefault LexMode = iota

	// A member name was just scanned; ';' acts as a field separator.
	ModeAfterName

	// A separator was just scanned; identifier text names a type.
	ModeWaitingType

	// Inside '<' ... '>'; modifier words are attribute modifiers.
	ModeWaitingAttrModifier

	lexModeCount
)

func (m LexMode) String() string {
	switch m {
	case ModeDefault:
		return "DEFAULT"
	case ModeAfterName:
		return "AFTER_NAME"
	case ModeWaitingType:
		return "WAITING_TYPE"
	case ModeWaitingAttrModifier:
		return "WAITING_ATTR_MODIFIER"
	default:
		return fmt.Sprintf("LexMode(%d)", uint8(m))
	}
}

// ParseLexMode accepts the names returned by [LexMode.String], ignoring case
// of the input.
func ParseLexMode(name string) (LexMode, bool) {
	for m := ModeDefault; m < lexModeCount; m++ {
		if equalFoldASCII(m.String(), name) {
			return m, true
		}
	}
	return 0, false
}

type TokensOption interface {
	applyTokens(*lexer)
}

type placeholderOption string

// WithPlaceholder replaces the word recognized as [T_PLACEHOLDER]. An empty
// word disables placeholder recognition.
func WithPlaceholder(word string) interface {
	TokensOption
	ParseOption
} {
	return placeholderOption(word)
}

func (o placeholderOption) applyTokens(l *lexer) {
	l.placeholder = string(o)
}

func (o placeholderOption) apply(opts *ParseOptions) {
	opts.placeholder = string(o)
}

// Tokens is a forward-only token stream over one source text. It is not
// restartable; construct a new one to scan again.
type Tokens struct {
	lexer  *lexer
	src    []byte
	offset uint32
	end    uint32
	mode   LexMode
}

func NewTokens(src []byte, opts ...TokensOption) (*Tokens, error) {
	if len(src) > maxSrcLen {
		return nil, errSourceTooLong(len(src))
	}
	return newTokens(src, 0, uint32(len(src)), ModeDefault, opts), nil
}

// NewTokensRange scans src[start:end] starting in mode. Scanning is a pure
// function of the sub-range and the initial mode, so hosts may re-tokenize
// only a changed region.
func NewTokensRange(
	src []byte,
	start, end uint32,
	mode LexMode,
	opts ...TokensOption,
) (*Tokens, error) {
	if len(src) > maxSrcLen {
		return nil, errSourceTooLong(len(src))
	}
	if start > end || uint64(end) > uint64(len(src)) {
		return nil, errInvalidRange(start, end, len(src))
	}
	if mode >= lexModeCount {
		return nil, errInvalidLexMode(mode)
	}
	return newTokens(src, start, end, mode, opts), nil
}

func newTokens(
	src []byte,
	start, end uint32,
	mode LexMode,
	opts []TokensOption,
) *Tokens {
	l := &lexer{placeholder: DefaultPlaceholder}
	for _, opt := range opts {
		opt.applyTokens(l)
	}
	l.build()
	return &Tokens{
		lexer:  l,
		src:    src,
		offset: start,
		end:    end,
		mode:   mode,
	}
}

// Tokenize scans all of src in the default mode.
func Tokenize(src []byte, opts ...TokensOption) ([]Token, error) {
	tokens, err := NewTokens(src, opts...)
	if err != nil {
		return nil, err
	}
	var out []Token
	for token := range tokens.All() {
		out = append(out, token)
	}
	return out, nil
}

// Mode returns the mode that will be used to scan the next token.
func (t *Tokens) Mode() LexMode {
	return t.mode
}

// Offset returns the start of the next token.
func (t *Tokens) Offset() uint32 {
	return t.offset
}

// Next stores the next token. At the end of the range it stores a
// zero-length [T_EOF] token; it never fails on malformed input.
func (t *Tokens) Next(token *Token) {
	if t.offset >= t.end {
		*token = Token{
			Kind:  T_EOF,
			Start: t.end,
			End:   t.end,
		}
		return
	}

	src := t.src[t.offset:t.end]
	kind, tokenLen := t.lexer.scan(t.mode, src)
	*token = Token{
		Kind:  kind,
		Start: t.offset,
		End:   t.offset + uint32(tokenLen),
	}
	t.offset += uint32(tokenLen)
	t.mode = nextMode(t.mode, kind)
}

// All yields the remaining tokens, excluding the final [T_EOF].
func (t *Tokens) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			var token Token
			t.Next(&token)
			if token.Kind == T_EOF {
				return
			}
			if !yield(token) {
				return
			}
		}
	}
}

func nextMode(mode LexMode, kind TokenKind) LexMode {
	switch kind {
	case T_WHITE_SPACE, T_COMMENT_LINE:
		return mode
	case T_MODIFIER_OPEN:
		return ModeWaitingAttrModifier
	}

	switch mode {
	case ModeDefault, ModeAfterName:
		switch kind {
		case T_IDENT:
			return ModeAfterName
		case T_SEPARATOR, T_CLOSE_SQUARE:
			return ModeWaitingType
		case T_PLACEHOLDER:
			// The placeholder may stand in for a member's separator.
			if mode == ModeAfterName {
				return ModeWaitingType
			}
		}
		return ModeDefault
	case ModeWaitingType:
		switch kind {
		case T_KW_MAP, T_OPEN_SQUARE, T_CLOSE_SQUARE, T_STAR, T_NOT_NULL, T_PLACEHOLDER, T_SEPARATOR:
			return ModeWaitingType
		}
		return ModeDefault
	case ModeWaitingAttrModifier:
		switch kind {
		case T_MODIFIER_CLOSE, T_STATEMENT_END, T_OPEN_CURL, T_CLOSE_CURL:
			return ModeDefault
		}
		return ModeWaitingAttrModifier
	}
	panic(errUnreachableLexMode(mode))
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for ii := 0; ii < len(a); ii++ {
		ca, cb := a[ii], b[ii]
		if ca >= 'a' && ca <= 'z' {
			ca -= 'a' - 'A'
		}
		if cb >= 'a' && cb <= 'z' {
			cb -= 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
