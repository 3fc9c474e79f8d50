// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/yourbase/libini/inidiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	differ, err := runDiff(cfg, cc.Out, args)
	if err != nil {
		return err
	}
	if differ {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// runDiff writes the differences between two files to w and reports whether
// there were any.
func runDiff(cfg *DiffConfig, w io.Writer, args []string) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("%w: diff requires 2 files, got %d", cli.ErrUsage, len(args))
	}
	a, err := cfg.load(args[0])
	if err != nil {
		return false, err
	}
	b, err := cfg.load(args[1])
	if err != nil {
		return false, err
	}

	if cfg.Keys {
		changes := inidiff.Compare(a, b)
		for _, c := range changes {
			if _, err := fmt.Fprintln(w, c); err != nil {
				return false, err
			}
		}
		return len(changes) > 0, nil
	}

	aText, err := a.MarshalText()
	if err != nil {
		return false, err
	}
	bText, err := b.MarshalText()
	if err != nil {
		return false, err
	}
	if bytes.Equal(aText, bText) {
		return false, nil
	}
	if err := inidiff.WriteText(w, a, b, &inidiff.Options{Color: cfg.color(w)}); err != nil {
		return false, err
	}
	return true, nil
}
