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
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/vc2402/vivard/encoding/sdftree"
	"github.com/vc2402/vivard/syntax"
)

type cmdParse struct {
	*globals
	format     string
	whitespace bool
	typeOnly   bool
}

func (*cmdParse) help() *commandHelp {
	return &commandHelp{
		usage:   "parse FILE",
		summary: "Print the syntax tree of a source file",
	}
}

func (cmd *cmdParse) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.format, "format", "f", "", "output format: text, json or yaml (default from config)")
	flags.BoolVar(&cmd.whitespace, "whitespace", false, "include whitespace tokens")
	flags.BoolVar(&cmd.typeOnly, "type", false, "parse the input as a lone type expression")
}

func (cmd *cmdParse) run(ctx context.Context, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintln(os.Stderr, "usage: sdf parse FILE")
		return 1
	}
	formatName := cmd.format
	if formatName == "" {
		formatName = cmd.config.Format
	}
	format, err := sdftree.ParseFormat(formatName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	src, err := readSource(argv[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	start := time.Now()
	opts := syntax.NewParseOptions(cmd.config.ParseOptions()...)
	var tree *syntax.Tree
	if cmd.typeOnly {
		tree, err = opts.ParseType(src)
	} else {
		tree, err = opts.ParseFile(src)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cmd.log.WithContext(ctx).WithFields(logrus.Fields{
		"path":    argv[0],
		"tokens":  len(tree.Tokens()),
		"ok":      tree.OK(),
		"elapsed": time.Since(start),
	}).Debug("parsed")

	out := bufio.NewWriter(os.Stdout)
	if err := sdftree.EncodeTo(out, tree.Root(), format, sdftree.Whitespace(cmd.whitespace)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
