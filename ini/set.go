// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"zombiezen.com/go/log"
)

// ErrNoPath is returned by Save when neither an explicit path nor a loaded
// path is available.
var ErrNoPath = errors.New("no file path")

// Load parses the file at the given path. If the file does not exist, the
// returned error wraps fs.ErrNotExist.
func Load(ctx context.Context, path string, opts *ParseOptions) (*File, error) {
	f := new(File)
	if err := f.Load(ctx, path, opts); err != nil {
		return nil, err
	}
	return f, nil
}

// Load parses the file at the given path and appends its categories to f.
// Keys that appear before the first category header in the file are added to
// the last category f already has. Once the file has parsed without error, f
// remembers path for Save.
//
// Load returns an error if the file is missing or cannot be read. The file is
// closed before Load returns.
func (f *File) Load(ctx context.Context, path string, opts *ParseOptions) error {
	r, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load ini file: %w", err)
	}
	defer r.Close() // Close errors irrelevant for reads.
	if err := f.parse(ctx, r, opts); err != nil {
		return fmt.Errorf("load ini file: %s: %w", path, err)
	}
	f.path = path
	log.Debugf(ctx, "Loaded %d categories from %s", len(f.categories), path)
	return nil
}

// Save writes f in INI format to the given path, replacing its contents. If
// path is empty, f is written to the path it was loaded from.
func (f *File) Save(path string) (err error) {
	if path == "" {
		path = f.Path()
	}
	if path == "" {
		return fmt.Errorf("save ini file: %w", ErrNoPath)
	}
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save ini file: %w", err)
	}
	defer func() {
		if closeErr := w.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("save ini file: %s: %w", path, closeErr)
		}
	}()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("save ini file: %s: %w", path, err)
	}
	return nil
}

// LoadFiles parses the files at the given paths, in descending order of
// precedence, and merges them into one file. A key set in an earlier file is
// never overridden by a later one. Missing files are skipped. LoadFiles stops
// on the first other error.
//
// The returned file does not remember any path.
func LoadFiles(ctx context.Context, opts *ParseOptions, paths ...string) (*File, error) {
	merged := new(File)
	for _, p := range paths {
		f, err := Load(ctx, p, opts)
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf(ctx, "Skipping missing ini file %s", p)
			continue
		}
		if err != nil {
			return merged, fmt.Errorf("load ini files: %w", err)
		}
		merged.Merge(f)
	}
	return merged, nil
}
