// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/yourbase/libini/ini"
	"github.com/yourbase/libini/iniyaml"
)

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return runFmt(cfg.MainConfig, cc.Out, cc.In, args)
}

// runFmt writes the named file, or r if there is none, in canonical form.
func runFmt(cfg *MainConfig, w io.Writer, r io.Reader, args []string) error {
	var f *ini.File
	switch len(args) {
	case 0:
		parsed, err := ini.Parse(cfg.ctx, r, cfg.parseOpts())
		if err != nil {
			return err
		}
		cfg.overlay(parsed)
		f = parsed
	case 1:
		loaded, err := cfg.read(args[0])
		if err != nil {
			return err
		}
		f = loaded
	default:
		return fmt.Errorf("%w: fmt takes at most one file", cli.ErrUsage)
	}
	_, err := f.WriteTo(w)
	return err
}

func export(cfg *ExportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Export.Parse(cc, args)
	if err != nil {
		cfg.Export.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return runExport(cfg.MainConfig, cc.Out, args)
}

func runExport(cfg *MainConfig, w io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: export requires exactly one file", cli.ErrUsage)
	}
	f, err := cfg.read(args[0])
	if err != nil {
		return err
	}
	data, err := iniyaml.Marshal(f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func importYAML(cfg *ImportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Import.Parse(cc, args)
	if err != nil {
		cfg.Import.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return runImport(cfg, cc.Out, args)
}

func runImport(cfg *ImportConfig, w io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: import requires exactly one file", cli.ErrUsage)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	f, err := iniyaml.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return output(f, w, cfg.Out)
}
