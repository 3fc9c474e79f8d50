// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"zombiezen.com/go/log"

	"github.com/yourbase/libini/envvar"
	"github.com/yourbase/libini/ini"
)

type MainConfig struct {
	Strict bool   `cli:"name=strict desc='stop at the first malformed line'"`
	Env    string `cli:"name=env desc='apply PREFIX_CATEGORY__KEY environment variables on read'"`

	ctx  context.Context
	Main *cli.Command
}

func newMainConfig(ctx context.Context) *MainConfig {
	return &MainConfig{
		Strict: envvar.Bool("INITOOL_STRICT"),
		Env:    envvar.Get("INITOOL_ENV_PREFIX", ""),
		ctx:    ctx,
	}
}

func (cfg *MainConfig) parseOpts() *ini.ParseOptions {
	return &ini.ParseOptions{Strict: cfg.Strict}
}

// load reads the file at path without applying environment overrides.
func (cfg *MainConfig) load(path string) (*ini.File, error) {
	return ini.Load(cfg.ctx, path, cfg.parseOpts())
}

// read is load followed by the environment overlay, for commands that do not
// write the file back.
func (cfg *MainConfig) read(path string) (*ini.File, error) {
	f, err := cfg.load(path)
	if err != nil {
		return nil, err
	}
	cfg.overlay(f)
	return f, nil
}

func (cfg *MainConfig) overlay(f *ini.File) {
	if cfg.Env == "" {
		return
	}
	n := envvar.Overlay(f, cfg.Env, os.Environ())
	log.Debugf(cfg.ctx, "Applied %d environment overrides with prefix %s", n, cfg.Env)
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	Set *cli.Command
}

type MergeConfig struct {
	*MainConfig
	Out string `cli:"name=o desc='output file (default stdout)'"`

	Merge *cli.Command
}

type CleanConfig struct {
	*MainConfig
	Out string `cli:"name=o desc='output file (default: rewrite the input)'"`

	Clean *cli.Command
}

type FmtConfig struct {
	*MainConfig

	Fmt *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Keys  bool `cli:"name=k desc='compare keys instead of lines'"`
	Color bool `cli:"name=color desc='color the diff even when not writing to a terminal'"`

	Diff *cli.Command
}

// color reports whether diff output to w should be colored.
func (cfg *DiffConfig) color(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type ExportConfig struct {
	*MainConfig

	Export *cli.Command
}

type ImportConfig struct {
	*MainConfig
	Out string `cli:"name=o desc='output file (default stdout)'"`

	Import *cli.Command
}
