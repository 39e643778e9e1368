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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vc2402/vivard/encoding/sdftree"
	"github.com/vc2402/vivard/syntax"
)

const defaultConfigName = ".sdf.toml"

// Config is the optional TOML configuration of the sdf command:
//
//	placeholder = "DuM_Id"
//	max_depth = 256
//	format = "text"
//	color = "auto"
type Config struct {
	Placeholder string `toml:"placeholder"`
	MaxDepth    int    `toml:"max_depth"`
	Format      string `toml:"format"`
	Color       string `toml:"color"`

	path string
}

func DefaultConfig() *Config {
	return &Config{
		Placeholder: syntax.DefaultPlaceholder,
		MaxDepth:    syntax.DefaultMaxDepth,
		Format:      sdftree.FormatText.String(),
		Color:       "auto",
	}
}

// LoadConfig reads the file at path over the defaults. An empty path reads
// ./.sdf.toml when it exists. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, err
	}

	meta, err := toml.Decode(string(data), config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for ii, key := range undecoded {
			keys[ii] = key.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	config.path = path
	return config, nil
}

func (c *Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if _, err := sdftree.ParseFormat(c.Format); err != nil {
		return err
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode %q (want auto, always or never)", c.Color)
	}
	return nil
}

func (c *Config) ParseOptions() []syntax.ParseOption {
	return []syntax.ParseOption{
		syntax.WithPlaceholder(c.Placeholder),
		syntax.WithMaxDepth(c.MaxDepth),
	}
}

func (c *Config) TokensOptions() []syntax.TokensOption {
	return []syntax.TokensOption{
		syntax.WithPlaceholder(c.Placeholder),
	}
}
