// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/yourbase/libini/ini"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		cfg.Merge.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return runMerge(cfg, cc.Out, args)
}

func runMerge(cfg *MergeConfig, w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: merge requires at least one file", cli.ErrUsage)
	}
	f, err := ini.LoadFiles(cfg.ctx, cfg.parseOpts(), args...)
	if err != nil {
		return err
	}
	return output(f, w, cfg.Out)
}
