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
	"math"
	"strings"
)

type Error struct {
	code    uint32
	message string
	span    Span
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Span() Span {
	return err.span
}

// Fatal reports whether err signals a defect in the parser itself rather
// than malformed input.
func (err *Error) Fatal() bool {
	return err.code >= 9000
}

func errSourceTooLong(srcLen int) error {
	lenUint32 := uint32(math.MaxUint32)
	if uint64(srcLen) < math.MaxUint32 {
		lenUint32 = uint32(srcLen)
	}
	return &Error{
		code: 1000,
		message: fmt.Sprintf(
			"Source file size (%d bytes) exceeds maximum (%d bytes)",
			srcLen, maxSrcLen,
		),
		span: Span{0, lenUint32},
	}
}

func errInvalidRange(start, end uint32, srcLen int) error {
	return &Error{
		code: 1001,
		message: fmt.Sprintf(
			"Invalid token range [%d, %d) for source of %d bytes",
			start, end, srcLen,
		),
	}
}

func errInvalidLexMode(mode LexMode) error {
	return &Error{
		code:    1002,
		message: fmt.Sprintf("Invalid lexer mode %s", mode),
	}
}

func errExpected(want string, got TokenKind, gotText string, span Span) *Error {
	if got == T_EOF {
		return &Error{
			code:    2000,
			message: fmt.Sprintf("Expected %s, got end of input", want),
			span:    span,
		}
	}
	return &Error{
		code:    2001,
		message: fmt.Sprintf("Expected %s, got (%s %q)", want, got, gotText),
		span:    span,
	}
}

func errUnexpectedToken(got TokenKind, gotText string, span Span) *Error {
	return &Error{
		code:    2002,
		message: fmt.Sprintf("Unexpected token (%s %q)", got, gotText),
		span:    span,
	}
}

func errNestingTooDeep(maxDepth int, span Span) *Error {
	return &Error{
		code:    2003,
		message: fmt.Sprintf("Type nesting exceeds maximum depth (%d)", maxDepth),
		span:    span,
	}
}

func errUnreachableLexMode(mode LexMode) *Error {
	return &Error{
		code:    9000,
		message: fmt.Sprintf("Lexer reached unknown mode %s", mode),
	}
}

func errRuleReentered(rule string, span Span) *Error {
	return &Error{
		code:    9001,
		message: fmt.Sprintf("Rule %q re-entered without consuming input", rule),
		span:    span,
	}
}

// describeKinds renders the alternatives of an expectation, e.g.
// "IDENT or QUALIFIED_NAME".
func describeKinds(kinds []TokenKind) string {
	names := make([]string, len(kinds))
	for ii, kind := range kinds {
		names[ii] = kind.String()
	}
	switch len(names) {
	case 0:
		return "token"
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
