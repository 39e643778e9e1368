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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/vc2402/vivard/internal/testutil"
	"github.com/vc2402/vivard/syntax"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sdf.toml")
	testutil.AssertNoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, strings.Join([]string{
		`placeholder = "Caret"`,
		`max_depth = 8`,
		`format = "yaml"`,
		`color = "never"`,
	}, "\n"))

	config, err := LoadConfig(path)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, config.Validate())
	testutil.ExpectEq(t, "Caret", config.Placeholder)
	testutil.ExpectEq(t, 8, config.MaxDepth)
	testutil.ExpectEq(t, "yaml", config.Format)
	testutil.ExpectEq(t, "never", config.Color)

	tree, err := syntax.Parse([]byte("type X { a Caret Caret; }"), config.ParseOptions()...)
	testutil.AssertNoError(t, err)
	testutil.ExpectTrue(t, tree.OK())
}

func TestLoadConfigPartial(t *testing.T) {
	t.Parallel()
	config, err := LoadConfig(writeConfig(t, `format = "json"`))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, syntax.DefaultPlaceholder, config.Placeholder)
	testutil.ExpectEq(t, syntax.DefaultMaxDepth, config.MaxDepth)
	testutil.ExpectEq(t, "json", config.Format)
	testutil.ExpectEq(t, "auto", config.Color)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(writeConfig(t, "bogus = 1\nformat = \"text\""))
	testutil.AssertError(t, err)
	testutil.ExpectMatch(t, `unknown keys: bogus$`, err.Error())

	_, err = LoadConfig(writeConfig(t, "max_depth = \"deep\""))
	testutil.AssertError(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	testutil.AssertError(t, err)

	config := DefaultConfig()
	config.MaxDepth = 0
	testutil.AssertError(t, config.Validate())

	config = DefaultConfig()
	config.Color = "rainbow"
	testutil.AssertError(t, config.Validate())

	config = DefaultConfig()
	config.Format = "xml"
	testutil.AssertError(t, config.Validate())
}

func TestWriteProblems(t *testing.T) {
	t.Parallel()
	tree, err := syntax.Parse([]byte("type Foo {\n  x: int\n}"))
	testutil.AssertNoError(t, err)

	var buf strings.Builder
	count := writeProblems(&buf, newStyles(&buf, "never"), "in.sdf", tree)
	testutil.ExpectEq(t, 1, count)
	testutil.ExpectNoDiff(t,
		"in.sdf:3:1: E2001: Expected STATEMENT_END, got (CLOSE_CURL \"}\")\n",
		buf.String())
}

func TestWriteTokens(t *testing.T) {
	t.Parallel()
	src := []byte("x: int")
	tokens, err := syntax.NewTokens(src)
	testutil.AssertNoError(t, err)

	var buf strings.Builder
	count := writeTokens(&buf, src, tokens)
	testutil.ExpectEq(t, 4, count)
	testutil.ExpectNoDiff(t, strings.Join([]string{
		`0 1 IDENT "x"`,
		`1 2 SEPARATOR ":"`,
		`2 3 WHITE_SPACE " "`,
		`3 6 INT "int"`,
		``,
	}, "\n"), buf.String())
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	fields := logrus.Fields{"path": "in.sdf", "problems": 2}

	var quiet bytes.Buffer
	newLogger(&quiet, false).WithFields(fields).Debug("checked")
	testutil.ExpectEq(t, "", quiet.String())

	var verbose bytes.Buffer
	newLogger(&verbose, true).WithFields(fields).Debug("checked")
	testutil.ExpectMatch(t, `level=debug msg=checked path=in.sdf problems=2\n$`, verbose.String())
}
