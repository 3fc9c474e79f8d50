// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package inidiff compares INI files.
package inidiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/yourbase/libini/ini"
)

// Op is the kind of a Change.
type Op int

// Change kinds.
const (
	Added Op = 1 + iota
	Removed
	Changed
)

func (op Op) String() string {
	switch op {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// A Change is a difference in a single key.
type Change struct {
	Op       Op
	Category string
	Key      string
	Old      string
	New      string
}

func (c Change) String() string {
	switch c.Op {
	case Added:
		return fmt.Sprintf("+ [%s] %s=%s", c.Category, c.Key, c.New)
	case Removed:
		return fmt.Sprintf("- [%s] %s=%s", c.Category, c.Key, c.Old)
	default:
		return fmt.Sprintf("~ [%s] %s=%s -> %s", c.Category, c.Key, c.Old, c.New)
	}
}

type name struct {
	category string
	key      string
}

// Compare returns the keys that differ between a and b. Keys are compared by
// the value a lookup would return, so repeated keys and repeated categories
// count once. Changes for keys in a come first in a's order, followed by keys
// only found in b in b's order.
func Compare(a, b *ini.File) []Change {
	names := keyNames(a)
	seen := make(map[name]struct{}, len(names))
	for _, n := range names {
		seen[n] = struct{}{}
	}
	for _, n := range keyNames(b) {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}

	var changes []Change
	for _, n := range names {
		av, inA := lookup(a, n)
		bv, inB := lookup(b, n)
		c := Change{Category: n.category, Key: n.key, Old: av, New: bv}
		switch {
		case inA && !inB:
			c.Op = Removed
		case !inA && inB:
			c.Op = Added
		case av != bv:
			c.Op = Changed
		default:
			continue
		}
		changes = append(changes, c)
	}
	return changes
}

// keyNames lists the distinct category/key pairs in f in order of appearance.
func keyNames(f *ini.File) []name {
	var names []name
	seen := make(map[name]struct{})
	for _, c := range f.Categories() {
		for _, k := range c.Keys() {
			n := name{category: c.Name(), key: k.Name()}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	return names
}

// lookup is like (*ini.File).Get, but reports whether the key exists.
func lookup(f *ini.File, n name) (string, bool) {
	cats := f.Categories()
	for i := len(cats) - 1; i >= 0; i-- {
		if cats[i].Name() != n.category {
			continue
		}
		if k, ok := cats[i].Lookup(n.key); ok {
			return k.Value(), true
		}
	}
	return "", false
}

// Options holds optional parameters for WriteText.
type Options struct {
	// Color wraps removed lines in red and added lines in green.
	Color bool
}

// WriteText writes a line diff between the serialized forms of a and b to w.
// Every line is prefixed by '-' if only a has it, '+' if only b has it, or a
// space if both do. Nil options are treated as the zero value.
func WriteText(w io.Writer, a, b *ini.File, opts *Options) error {
	aText, err := a.MarshalText()
	if err != nil {
		return fmt.Errorf("diff ini files: %w", err)
	}
	bText, err := b.MarshalText()
	if err != nil {
		return fmt.Errorf("diff ini files: %w", err)
	}

	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)
	if opts != nil && opts.Color {
		removed.EnableColor()
		added.EnableColor()
	} else {
		removed.DisableColor()
		added.DisableColor()
	}

	dmp := diffpatch.New()
	aChars, bChars, lines := dmp.DiffLinesToChars(string(aText), string(bText))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(aChars, bChars, false), lines)
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			var out string
			switch d.Type {
			case diffpatch.DiffDelete:
				out = removed.Sprint("-" + line)
			case diffpatch.DiffInsert:
				out = added.Sprint("+" + line)
			default:
				out = " " + line
			}
			if _, err := fmt.Fprintln(w, out); err != nil {
				return fmt.Errorf("diff ini files: %w", err)
			}
		}
	}
	return nil
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
