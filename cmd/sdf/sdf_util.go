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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"

	"github.com/vc2402/vivard/syntax"
)

// newLogger returns the logger for debug details. Only warnings are shown
// unless verbose is set.
func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// readSource reads path, or standard input when path is "-".
func readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

var (
	colorLocation = lipgloss.Color("#9CA3AF")
	colorError    = lipgloss.Color("#EF4444")
)

type styles struct {
	plain    bool
	location lipgloss.Style
	code     lipgloss.Style
}

func newStyles(w io.Writer, mode string) *styles {
	renderer := lipgloss.NewRenderer(w)
	switch mode {
	case "always":
		renderer.SetColorProfile(termenv.ANSI256)
	case "never":
		renderer.SetColorProfile(termenv.Ascii)
	}
	return &styles{
		plain:    mode == "never",
		location: renderer.NewStyle().Foreground(colorLocation).Bold(true),
		code:     renderer.NewStyle().Foreground(colorError).Bold(true),
	}
}

// problem renders one diagnostic line. The message of a syntax error is
// split after its "E<code>:" prefix so the code can be styled apart.
func (s *styles) problem(path string, pos syntax.Position, message string) string {
	location := fmt.Sprintf("%s:%s:", path, pos)
	if s.plain {
		return location + " " + message
	}
	location = s.location.Render(location)
	if code, rest, ok := strings.Cut(message, ": "); ok && strings.HasPrefix(code, "E") {
		return fmt.Sprintf("%s %s %s", location, s.code.Render(code+":"), rest)
	}
	return fmt.Sprintf("%s %s", location, message)
}
