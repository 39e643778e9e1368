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

package syntax_test

import (
	"errors"
	"io/fs"
	"math/rand/v2"
	"testing"

	"github.com/vc2402/vivard/internal/testutil"
	"github.com/vc2402/vivard/syntax"
)

var testdata fs.FS

func init() {
	var err error
	testdata, err = testutil.TestdataFS()
	if err != nil {
		panic(err)
	}
}

func TestTokenCases(t *testing.T) {
	t.Parallel()
	cases, err := testutil.LoadTokenCases(testdata)
	testutil.AssertNoError(t, err)
	if len(cases) == 0 {
		t.Fatal("no token cases found under testdata/tokens")
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			t.Logf("source: %q", tc.Src)

			mode := syntax.ModeDefault
			if tc.Mode != "" {
				var ok bool
				mode, ok = syntax.ParseLexMode(tc.Mode)
				if !ok {
					t.Fatalf("unknown lexer mode %q", tc.Mode)
				}
			}

			src := []byte(tc.Src)
			tokens, err := syntax.NewTokensRange(src, 0, uint32(len(src)), mode)
			testutil.AssertNoError(t, err)

			var got []syntax.Token
			for token := range tokens.All() {
				got = append(got, token)
			}
			testutil.ExpectSliceEq(t, tc.Tokens, testutil.FormatTokens(src, got))
		})
	}
}

func TestTokenKindString(t *testing.T) {
	t.Parallel()
	testutil.ExpectEq(t, "EOF", syntax.T_EOF.String())
	testutil.ExpectEq(t, "SEPARATOR", syntax.T_SEPARATOR.String())
	testutil.ExpectEq(t, "MODIFIER_CLOSE", syntax.T_MODIFIER_CLOSE.String())
	testutil.ExpectEq(t, "TokenKind(250)", syntax.TokenKind(250).String())
}

func TestModeAfterSeparator(t *testing.T) {
	t.Parallel()
	tokens, err := syntax.NewTokens([]byte("name;Type"))
	testutil.AssertNoError(t, err)

	var token syntax.Token
	tokens.Next(&token)
	testutil.ExpectEq(t, syntax.T_IDENT, token.Kind)
	testutil.ExpectEq(t, syntax.ModeAfterName, tokens.Mode())

	tokens.Next(&token)
	testutil.ExpectEq(t, syntax.T_SEPARATOR, token.Kind)
	testutil.ExpectEq(t, syntax.ModeWaitingType, tokens.Mode())

	tokens.Next(&token)
	testutil.ExpectEq(t, syntax.T_TYPE_NAME, token.Kind)
	testutil.ExpectEq(t, syntax.ModeDefault, tokens.Mode())

	tokens.Next(&token)
	testutil.ExpectEq(t, syntax.Token{Kind: syntax.T_EOF, Start: 9, End: 9}, token)

	// EOF is sticky.
	tokens.Next(&token)
	testutil.ExpectEq(t, syntax.T_EOF, token.Kind)
}

func TestTokensRange(t *testing.T) {
	t.Parallel()
	src := []byte("xx name;Type yy")

	tokens, err := syntax.NewTokensRange(src, 3, 12, syntax.ModeDefault)
	testutil.AssertNoError(t, err)
	var got []syntax.Token
	for token := range tokens.All() {
		got = append(got, token)
	}
	testutil.ExpectSliceEq(t, []syntax.Token{
		{Kind: syntax.T_IDENT, Start: 3, End: 7},
		{Kind: syntax.T_SEPARATOR, Start: 7, End: 8},
		{Kind: syntax.T_TYPE_NAME, Start: 8, End: 12},
	}, got)

	// Re-scanning a sub-range depends only on the range and the mode.
	tokens, err = syntax.NewTokensRange(src, 8, 12, syntax.ModeWaitingType)
	testutil.AssertNoError(t, err)
	var token syntax.Token
	tokens.Next(&token)
	testutil.ExpectEq(t, syntax.Token{Kind: syntax.T_TYPE_NAME, Start: 8, End: 12}, token)

	tokens, err = syntax.NewTokensRange(src, 8, 12, syntax.ModeDefault)
	testutil.AssertNoError(t, err)
	tokens.Next(&token)
	testutil.ExpectEq(t, syntax.Token{Kind: syntax.T_IDENT, Start: 8, End: 12}, token)
}

func TestTokensRangeInvalid(t *testing.T) {
	t.Parallel()
	src := []byte("type")

	tests := []struct {
		name       string
		start, end uint32
		mode       syntax.LexMode
		code       uint32
	}{
		{"start after end", 3, 2, syntax.ModeDefault, 1001},
		{"end past source", 0, 5, syntax.ModeDefault, 1001},
		{"unknown mode", 0, 4, syntax.LexMode(99), 1002},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := syntax.NewTokensRange(src, test.start, test.end, test.mode)
			testutil.AssertError(t, err)
			var syntaxErr *syntax.Error
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("Expected *syntax.Error, got: %T", err)
			}
			testutil.ExpectEq(t, test.code, syntaxErr.Code())
		})
	}
}

func TestPlaceholderOption(t *testing.T) {
	t.Parallel()
	src := []byte("Rulezzz DuM_Id")

	tokens, err := syntax.Tokenize(src, syntax.WithPlaceholder("Rulezzz"))
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []string{
		`PLACEHOLDER "Rulezzz"`,
		`WHITE_SPACE`,
		`IDENT "DuM_Id"`,
	}, testutil.FormatTokens(src, tokens))

	tokens, err = syntax.Tokenize(src, syntax.WithPlaceholder(""))
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []string{
		`IDENT "Rulezzz"`,
		`WHITE_SPACE`,
		`IDENT "DuM_Id"`,
	}, testutil.FormatTokens(src, tokens))
}

func TestParseLexMode(t *testing.T) {
	t.Parallel()
	for _, mode := range []syntax.LexMode{
		syntax.ModeDefault,
		syntax.ModeAfterName,
		syntax.ModeWaitingType,
		syntax.ModeWaitingAttrModifier,
	} {
		got, ok := syntax.ParseLexMode(mode.String())
		testutil.ExpectTrue(t, ok)
		testutil.ExpectEq(t, mode, got)
	}
	got, ok := syntax.ParseLexMode("waiting_type")
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, syntax.ModeWaitingType, got)

	_, ok = syntax.ParseLexMode("nested")
	testutil.ExpectFalse(t, ok)
}

var resilienceInputs = []string{
	"",
	"{",
	"}",
	"type",
	"type X {",
	"type X { a: ",
	"type X { a: map[",
	"type X { a: map[int",
	"type X { m(a: int, ",
	"<<<>>>",
	";;;:::",
	`"unterminated`,
	"@hook = ",
	"$ann(a = ",
	"meta(",
	"enum E { A = ; }",
	"\x00\xff\xfe",
	"package",
	"DuM_Id DuM_Id DuM_Id",
	"[[[[[[[[",
	"]]]]",
	"x: *!",
	"…",
}

func randomSource(rng *rand.Rand) []byte {
	const alphabet = "abcXYZ019_ .:;,=!*<>[](){}\"$@#/\n\t-+DuM_Id"
	n := rng.IntN(64)
	src := make([]byte, n)
	for ii := range src {
		if rng.IntN(16) == 0 {
			src[ii] = byte(rng.IntN(256))
		} else {
			src[ii] = alphabet[rng.IntN(len(alphabet))]
		}
	}
	return src
}

func TestTokensCoverage(t *testing.T) {
	t.Parallel()
	check := func(t *testing.T, src []byte) {
		t.Helper()
		for mode := syntax.ModeDefault; mode <= syntax.ModeWaitingAttrModifier; mode++ {
			tokens, err := syntax.NewTokensRange(src, 0, uint32(len(src)), mode)
			testutil.AssertNoError(t, err)
			var offset uint32
			for token := range tokens.All() {
				if token.Start != offset || token.End <= token.Start {
					t.Fatalf("source %q mode %s: token %v at offset %d", src, mode, token, offset)
				}
				offset = token.End
			}
			if offset != uint32(len(src)) {
				t.Fatalf("source %q mode %s: tokens end at %d, want %d", src, mode, offset, len(src))
			}
		}
	}

	for _, src := range resilienceInputs {
		check(t, []byte(src))
	}
	rng := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		check(t, randomSource(rng))
	}
}
