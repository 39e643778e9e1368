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
	stdflag "flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
}

// globals are the flags shared by every command, resolved against the
// config file before a command runs.
type globals struct {
	configPath string
	verbose    bool
	color      string

	config *Config
	log    *logrus.Logger
}

func main() {
	ctx := context.Background()
	g := &globals{}

	sdfCmd := &cobra.Command{
		Use:   "sdf [options] COMMAND",
		Short: "Inspect and check SDF schema sources",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	sdfCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(os.Stderr, sdfCmd.UsageString())
		os.Exit(1)
		return nil
	}
	sdfCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return g.load()
	}

	persistent := sdfCmd.PersistentFlags()
	persistent.StringVar(&g.configPath, "config", "", "config file (default: ./"+defaultConfigName+" if present)")
	persistent.BoolVarP(&g.verbose, "verbose", "v", false, "log debug details to stderr")
	persistent.StringVar(&g.color, "color", "", "colorize diagnostics: auto, always or never")

	commands := []command{
		&cmdTokens{globals: g},
		&cmdParse{globals: g},
		&cmdCheck{globals: g},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			RunE: func(_ *cobra.Command, args []string) error {
				os.Exit(cmd.run(ctx, args))
				return nil
			},
		}
		sdfCmd.AddCommand(cobraCmd)
		cmd.flags(cobraCmd.Flags())
	}

	sdfCmd.Flags().AddGoFlagSet(stdflag.CommandLine)
	sdfCmd.ParseFlags(nil)
	if _, err := sdfCmd.ExecuteC(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (g *globals) load() error {
	g.log = newLogger(os.Stderr, g.verbose)

	config, err := LoadConfig(g.configPath)
	if err != nil {
		return err
	}
	if g.color != "" {
		config.Color = g.color
	}
	if err := config.Validate(); err != nil {
		return err
	}
	g.config = config
	g.log.WithFields(logrus.Fields{
		"path":        config.path,
		"placeholder": config.Placeholder,
		"max_depth":   config.MaxDepth,
		"format":      config.Format,
		"color":       config.Color,
	}).Debug("configuration loaded")
	return nil
}
