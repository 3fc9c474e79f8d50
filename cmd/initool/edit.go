// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/scott-cotton/cli"
	"zombiezen.com/go/log"

	"github.com/yourbase/libini/ini"
)

var errNotFound = errors.New("not found")

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return runGet(cfg.MainConfig, cc.Out, args)
}

func runGet(cfg *MainConfig, w io.Writer, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("%w: get requires a file, a category and optionally a key", cli.ErrUsage)
	}
	f, err := cfg.read(args[0])
	if err != nil {
		return err
	}
	c, ok := f.Lookup(args[1])
	if !ok {
		return fmt.Errorf("%s: category %q %w", args[0], args[1], errNotFound)
	}
	if len(args) == 2 {
		for _, k := range c.Keys() {
			if _, err := fmt.Fprintf(w, "%s=%s\n", k.Name(), k.Value()); err != nil {
				return err
			}
		}
		return nil
	}
	k, ok := c.Lookup(args[2])
	if !ok {
		return fmt.Errorf("%s: key %q in category %q %w", args[0], args[2], args[1], errNotFound)
	}
	_, err = fmt.Fprintln(w, k.Value())
	return err
}

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return runSet(cfg.MainConfig, args)
}

func runSet(cfg *MainConfig, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("%w: set requires a file, a category, a key and a value", cli.ErrUsage)
	}
	path, category, key, value := args[0], args[1], args[2], args[3]
	for _, s := range args[1:] {
		if err := ini.CheckLine(s); err != nil {
			return fmt.Errorf("set %s: %q: %w", path, s, err)
		}
	}
	f, err := cfg.load(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Infof(cfg.ctx, "Creating %s", path)
		f, err = new(ini.File), nil
	}
	if err != nil {
		return err
	}
	if strings.Contains(value, "=") {
		log.Warnf(cfg.ctx, "Value for %s contains '='; it will be truncated when %s is read back", key, path)
	}
	f.Set(category, key, value)
	return f.Save(path)
}

func clean(cfg *CleanConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Clean.Parse(cc, args)
	if err != nil {
		cfg.Clean.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return runClean(cfg, cc.Out, args)
}

func runClean(cfg *CleanConfig, w io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: clean requires exactly one file", cli.ErrUsage)
	}
	f, err := cfg.load(args[0])
	if err != nil {
		return err
	}
	before := f.Len()
	f.ClearEmptyItems()
	log.Debugf(cfg.ctx, "Removed %d empty categories from %s", before-f.Len(), args[0])
	if cfg.Out == "" {
		return f.Save("")
	}
	return output(f, w, cfg.Out)
}

// output writes f to the file named out, or to w if out is "-".
func output(f *ini.File, w io.Writer, out string) error {
	if out == "" || out == "-" {
		_, err := f.WriteTo(w)
		return err
	}
	return f.Save(out)
}
