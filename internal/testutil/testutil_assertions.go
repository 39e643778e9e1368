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
	"regexp"
	"slices"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected (err != nil), got: nil")
	}
}

func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Expected (err == nil), got: %v", err)
	}
}

func ExpectTrue(t *testing.T, cond bool) {
	t.Helper()
	if !cond {
		t.Errorf("Expected (true), got: %v", cond)
	}
}

func ExpectFalse(t *testing.T, cond bool) {
	t.Helper()
	if cond {
		t.Errorf("Expected (false), got: %v", cond)
	}
}

func ExpectEq[T comparable](t *testing.T, want, got T) {
	t.Helper()
	if want != got {
		t.Errorf("Expected %v, got: %v", want, got)
	}
}

func ExpectSliceEq[E comparable, S ~[]E](t *testing.T, want, got S) {
	t.Helper()
	if !slices.Equal(want, got) {
		t.Errorf("Expected %v, got: %v", want, got)
	}
}

func ExpectMatch(t *testing.T, pattern string, got string) {
	t.Helper()
	if !regexp.MustCompile(pattern).MatchString(got) {
		t.Errorf("Expected (match %q), got: %q", pattern, got)
	}
}

// ExpectNoDiff reports a unified diff between want and got.
func ExpectNoDiff(t *testing.T, want, got string) {
	t.Helper()
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  5,
	})
	if diff != "" {
		t.Error(diff)
	}
}
