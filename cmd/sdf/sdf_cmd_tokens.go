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
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/vc2402/vivard/syntax"
)

type cmdTokens struct {
	*globals
	start int64
	end   int64
	mode  string
}

func (*cmdTokens) help() *commandHelp {
	return &commandHelp{
		usage:   "tokens FILE",
		summary: "Print the tokens of a source file",
	}
}

func (cmd *cmdTokens) flags(flags *pflag.FlagSet) {
	flags.Int64Var(&cmd.start, "start", 0, "byte offset to start scanning at")
	flags.Int64Var(&cmd.end, "end", -1, "byte offset to stop scanning at (default: end of file)")
	flags.StringVar(&cmd.mode, "mode", syntax.ModeDefault.String(), "initial lexer mode")
}

func (cmd *cmdTokens) run(ctx context.Context, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintln(os.Stderr, "usage: sdf tokens FILE")
		return 1
	}
	src, err := readSource(argv[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	mode, ok := syntax.ParseLexMode(cmd.mode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown lexer mode %q\n", cmd.mode)
		return 1
	}
	end := cmd.end
	if end < 0 {
		end = int64(len(src))
	}
	if cmd.start < 0 || cmd.start > end || end > int64(len(src)) {
		fmt.Fprintf(os.Stderr, "Invalid range [%d, %d) for %d bytes\n", cmd.start, end, len(src))
		return 1
	}

	tokens, err := syntax.NewTokensRange(
		src, uint32(cmd.start), uint32(end), mode,
		cmd.config.TokensOptions()...,
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	out := bufio.NewWriter(os.Stdout)
	count := writeTokens(out, src, tokens)
	if err := out.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cmd.log.WithContext(ctx).WithFields(logrus.Fields{
		"path":       argv[0],
		"tokens":     count,
		"final_mode": tokens.Mode().String(),
	}).Debug("tokenized")
	return 0
}

// writeTokens prints one "start end KIND text" line per token.
func writeTokens(w io.Writer, src []byte, tokens *syntax.Tokens) int {
	var count int
	for token := range tokens.All() {
		text := strconv.Quote(string(src[token.Start:token.End]))
		fmt.Fprintf(w, "%d %d %s %s\n", token.Start, token.End, token.Kind, text)
		count += 1
	}
	return count
}
