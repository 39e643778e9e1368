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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/vc2402/vivard/syntax"
)

type cmdCheck struct {
	*globals
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check FILE...",
		summary: "Report syntax problems in source files",
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {}

func (cmd *cmdCheck) run(ctx context.Context, argv []string) int {
	if len(argv) == 0 {
		fmt.Fprintln(os.Stderr, "usage: sdf check FILE...")
		return 1
	}
	styles := newStyles(os.Stderr, cmd.config.Color)
	opts := syntax.NewParseOptions(cmd.config.ParseOptions()...)

	status := 0
	for _, path := range argv {
		src, err := readSource(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = 1
			continue
		}
		tree, err := opts.ParseFile(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, styles.problem(path, syntax.Position{Line: 1, Column: 1}, err.Error()))
			status = 1
			continue
		}
		problems := writeProblems(os.Stderr, styles, path, tree)
		cmd.log.WithContext(ctx).WithFields(logrus.Fields{
			"path":     path,
			"problems": problems,
		}).Debug("checked")
		if problems > 0 {
			status = 1
		}
	}
	return status
}

// writeProblems prints "path:line:col: E<code>: message" for every problem
// of tree and returns how many there were.
func writeProblems(w io.Writer, styles *styles, path string, tree *syntax.Tree) int {
	problems := tree.Problems()
	for _, problem := range problems {
		pos := tree.Position(problem.Span().Start())
		fmt.Fprintln(w, styles.problem(path, pos, problem.Error()))
	}
	return len(problems)
}
