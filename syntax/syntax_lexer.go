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
	"unicode/utf8"
)

// A lexRule reports the length of the longest prefix of src it accepts, or
// zero. Rules are tried in declaration order; the longest match wins and an
// earlier rule keeps a tie.
type lexRule struct {
	kind  TokenKind
	match func(src []byte) int
}

type lexer struct {
	placeholder string
	rules       [lexModeCount][]lexRule
}

var (
	declKeywords = []lexRule{
		{T_KW_PACKAGE, matchWord("package")},
		{T_KW_TYPE, matchWord("type")},
		{T_KW_ENUM, matchWord("enum")},
		{T_KW_EXTENDS, matchWord("extends")},
		{T_KW_META, matchWord("meta")},
	}

	typeKeywords = []lexRule{
		{T_INT, matchWord("int")},
		{T_FLOAT, matchWord("float")},
		{T_STRING, matchWord("string")},
		{T_BOOL, matchWord("bool")},
		{T_DATE, matchWord("date")},
		{T_KW_MAP, matchWord("map")},
		{T_KW_AUTO, matchWord("auto")},
	}

	typeModifierWords = []string{
		"abstract",
		"config",
		"dictionary",
		"embeddable",
		"extendable",
		"extern",
		"foreign",
		"singleton",
		"transient",
	}

	attrModifierWords = []string{
		"id",
		"auto",
		"lookup",
		"one-to-many",
		"embedded",
		"ref-embedded",
		"calculated",
	}

	punctuation = []lexRule{
		{T_MORE, matchWord("...")},
		{T_OPEN_CURL, matchWord("{")},
		{T_CLOSE_CURL, matchWord("}")},
		{T_OPEN_SQUARE, matchWord("[")},
		{T_CLOSE_SQUARE, matchWord("]")},
		{T_OPEN_PAREN, matchWord("(")},
		{T_CLOSE_PAREN, matchWord(")")},
		{T_COMMA, matchWord(",")},
		{T_STATEMENT_END, matchWord(";")},
		{T_SEPARATOR, matchWord(":")},
		{T_EQ, matchWord("=")},
		{T_NOT_NULL, matchWord("!")},
		{T_STAR, matchWord("*")},
		{T_MODIFIER_OPEN, matchWord("<")},
		{T_MODIFIER_CLOSE, matchWord(">")},
	}
)

func (l *lexer) build() {
	placeholder := lexRule{T_PLACEHOLDER, matchWord(l.placeholder)}

	var base []lexRule
	base = append(base,
		lexRule{T_WHITE_SPACE, matchSpace},
		lexRule{T_COMMENT_LINE, matchLinePrefixed("//")},
		lexRule{T_META_LINE, matchLinePrefixed("#")},
		placeholder,
	)
	base = append(base, declKeywords...)
	base = append(base,
		lexRule{T_TYPE_MODIFIER, matchWord(typeModifierWords...)},
		lexRule{T_BOOL_VALUE, matchWord("true", "false")},
		lexRule{T_QUALIFIED_NAME, matchQualifiedName},
		lexRule{T_IDENT, matchIdent},
		lexRule{T_STRING_VALUE, matchString},
		lexRule{T_NUMBER_VALUE, matchNumber},
		lexRule{T_ANNOTATION_TAG, matchTag('$')},
		lexRule{T_HOOK_TAG, matchTag('@')},
	)
	base = append(base, punctuation...)

	l.rules[ModeDefault] = base

	l.rules[ModeAfterName] = append([]lexRule{
		{T_SEPARATOR, matchWord(";")},
	}, base...)

	var waitingType []lexRule
	waitingType = append(waitingType,
		lexRule{T_WHITE_SPACE, matchSpace},
		lexRule{T_COMMENT_LINE, matchLinePrefixed("//")},
		placeholder,
	)
	waitingType = append(waitingType, typeKeywords...)
	waitingType = append(waitingType, declKeywords...)
	waitingType = append(waitingType, lexRule{T_TYPE_NAME, matchIdent})
	l.rules[ModeWaitingType] = append(waitingType, base...)

	l.rules[ModeWaitingAttrModifier] = append([]lexRule{
		{T_WHITE_SPACE, matchSpace},
		placeholder,
		{T_ATTR_MODIFIER, matchWord(attrModifierWords...)},
	}, base...)
}

func (l *lexer) scan(mode LexMode, src []byte) (TokenKind, int) {
	if mode >= lexModeCount {
		panic(errUnreachableLexMode(mode))
	}
	bestKind := T_BAD_CHARACTER
	bestLen := 0
	for _, rule := range l.rules[mode] {
		if n := rule.match(src); n > bestLen {
			bestKind = rule.kind
			bestLen = n
		}
	}
	if bestLen == 0 {
		_, size := utf8.DecodeRune(src)
		return T_BAD_CHARACTER, size
	}
	return bestKind, bestLen
}

// matchWord accepts the longest of words found at the start of src. Words
// need no trailing boundary check: a longer identifier always outmunches them.
func matchWord(words ...string) func([]byte) int {
	return func(src []byte) int {
		best := 0
		for _, word := range words {
			if len(word) > best && bytes.HasPrefix(src, []byte(word)) {
				best = len(word)
			}
		}
		return best
	}
}

func matchSpace(src []byte) int {
	n := 0
	for n < len(src) {
		switch src[n] {
		case ' ', '\t', '\r', '\n', '\f':
			n += 1
		case 0xC2:
			// U+00A0 NO-BREAK SPACE
			if n+1 < len(src) && src[n+1] == 0xA0 {
				n += 2
				continue
			}
			return n
		default:
			return n
		}
	}
	return n
}

func matchLinePrefixed(prefix string) func([]byte) int {
	return func(src []byte) int {
		if !bytes.HasPrefix(src, []byte(prefix)) {
			return 0
		}
		if idx := bytes.IndexAny(src, "\r\n"); idx >= 0 {
			return idx
		}
		return len(src)
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentContinue(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func matchIdent(src []byte) int {
	if len(src) == 0 || !isIdentStart(src[0]) {
		return 0
	}
	n := 1
	for n < len(src) && isIdentContinue(src[n]) {
		n += 1
	}
	return n
}

func matchQualifiedName(src []byte) int {
	n := matchIdent(src)
	if n == 0 {
		return 0
	}
	parts := 1
	for n+1 < len(src) && src[n] == '.' {
		next := matchIdent(src[n+1:])
		if next == 0 {
			break
		}
		n += 1 + next
		parts += 1
	}
	if parts < 2 {
		return 0
	}
	return n
}

func matchString(src []byte) int {
	if len(src) == 0 || src[0] != '"' {
		return 0
	}
	for n := 1; n < len(src); n++ {
		switch src[n] {
		case '"':
			return n + 1
		case '\\':
			n += 1
			if n < len(src) && (src[n] == '\n' || src[n] == '\r') {
				return 0
			}
		case '\n', '\r':
			return 0
		}
	}
	return 0
}

func matchNumber(src []byte) int {
	n := 0
	if n < len(src) && (src[n] == '-' || src[n] == '+') {
		n += 1
	}
	digits := 0
	for n < len(src) && isDigit(src[n]) {
		n += 1
		digits += 1
	}
	if n < len(src) && src[n] == '.' {
		frac := 0
		for n+1+frac < len(src) && isDigit(src[n+1+frac]) {
			frac += 1
		}
		if digits > 0 || frac > 0 {
			n += 1 + frac
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	return n
}

func matchTagName(src []byte) int {
	if len(src) == 0 || !isIdentStart(src[0]) {
		return 0
	}
	n := 1
	for n < len(src) && (isIdentContinue(src[n]) || src[n] == '-') {
		n += 1
	}
	return n
}

func matchTag(sigil byte) func([]byte) int {
	return func(src []byte) int {
		if len(src) == 0 || src[0] != sigil {
			return 0
		}
		name := matchTagName(src[1:])
		if name == 0 {
			return 0
		}
		n := 1 + name
		if n < len(src) && src[n] == ':' {
			if qual := matchTagName(src[n+1:]); qual > 0 {
				n += 1 + qual
			}
		}
		return n
	}
}
