// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"zombiezen.com/go/log"
)

// Header is the comment line written at the top of every serialized file.
const Header = "# Created with libini"

// Errors reported for malformed lines. A *LineError wraps one of these.
var (
	ErrMissingDelimiter    = errors.New("could not find '='")
	ErrUnterminatedSection = errors.New("missing section closing bracket")
)

// ErrLineBreak is returned by CheckLine for text that would span more than one
// line when serialized.
var ErrLineBreak = errors.New("line break in name or value")

// errNoCategory marks a key line that appeared before any category.
var errNoCategory = errors.New("key outside of any category")

// A File is an ordered collection of categories. The zero value is an empty
// file. Files are not safe for concurrent mutation.
type File struct {
	categories []*Category
	path       string
}

// A Category is a named, ordered list of keys. Categories are obtained from a
// File and stay valid as the File grows.
type Category struct {
	name string
	keys []*Key
}

// A Key is a name/value pair inside a Category.
type Key struct {
	name  string
	value string
}

// Normalize returns the canonical form of a category or key name: the ASCII
// letters A through Z are lowered and every other byte is kept as is, so names
// in any encoding survive a round trip.
func Normalize(name string) string {
	i := strings.IndexFunc(name, func(r rune) bool { return 'A' <= r && r <= 'Z' })
	if i == -1 {
		return name
	}
	b := []byte(name)
	for ; i < len(b); i++ {
		if c := b[i]; 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// ParseOptions holds optional parameters for Parse.
type ParseOptions struct {
	// Strict makes the parser stop at the first malformed line and return a
	// *LineError for it. Otherwise malformed lines are logged and skipped.
	Strict bool
}

// A LineError describes a line the parser could not interpret.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Split slices s into the substrings separated by delim. A trailing empty
// substring is dropped, so s with n delimiters yields at most n+1 parts. The
// result always has at least one element.
func Split(s string, delim byte) []string {
	parts := strings.Split(s, string(delim))
	if n := len(parts); n > 1 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}

// CheckLine reports whether s can be written as part of a single line. Names
// and values are serialized verbatim, so one containing a line break would be
// read back as several lines.
func CheckLine(s string) error {
	if strings.ContainsAny(s, "\r\n") {
		return ErrLineBreak
	}
	return nil
}

// Parse parses an INI file. Nil options are treated identically as passing the
// zero value. Malformed lines are logged to the logger in ctx.
//
// See the Syntax section in the package documentation for the format recognized
// by Parse.
func Parse(ctx context.Context, r io.Reader, opts *ParseOptions) (*File, error) {
	f := new(File)
	if err := f.parse(ctx, r, opts); err != nil {
		return f, err
	}
	return f, nil
}

// parse appends the categories and keys read from r to f. Key lines go to the
// last category of f, which may predate r.
func (f *File) parse(ctx context.Context, r io.Reader, opts *ParseOptions) error {
	strict := opts != nil && opts.Strict
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), math.MaxInt)
	lineno := 1
	for ; s.Scan(); lineno++ {
		line := s.Text()
		err := f.parseLine(line)
		switch {
		case err == nil:
		case errors.Is(err, errNoCategory):
			log.Debugf(ctx, "Discarding ini line %d: %v", lineno, err)
		case strict:
			return fmt.Errorf("parse ini file: %w", &LineError{Line: lineno, Text: line, Err: err})
		default:
			log.Warnf(ctx, "Skipping malformed ini line %d %q: %v", lineno, line, err)
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("parse ini file: line %d: %w", lineno, err)
	}
	return nil
}

func (f *File) parseLine(line string) error {
	if line == "" {
		return nil
	}
	switch line[0] {
	case '#', ' ', '\t':
		return nil
	case '[':
		name, err := categoryName(line)
		if err != nil {
			return err
		}
		f.categories = append(f.categories, &Category{name: Normalize(name)})
		return nil
	}
	if len(f.categories) == 0 {
		return errNoCategory
	}
	if strings.IndexByte(line, '=') == -1 {
		return ErrMissingDelimiter
	}
	parts := Split(line, '=')
	k := &Key{name: Normalize(parts[0])}
	if len(parts) > 1 {
		k.value = parts[1]
	}
	last := f.categories[len(f.categories)-1]
	last.keys = append(last.keys, k)
	return nil
}

// categoryName returns the text between the first '[' and the next ']' or '['.
func categoryName(line string) (string, error) {
	if strings.IndexByte(line, ']') == -1 {
		return "", ErrUnterminatedSection
	}
	parts := Split(line, '[')
	if len(parts) < 2 {
		return "", ErrUnterminatedSection
	}
	return Split(parts[1], ']')[0], nil
}

// Path returns the path f was last loaded from, or the empty string.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Len returns the number of categories in f.
func (f *File) Len() int {
	if f == nil {
		return 0
	}
	return len(f.categories)
}

// Categories returns the categories of f in order. The slice is a copy, but the
// categories are not.
func (f *File) Categories() []*Category {
	if f == nil || len(f.categories) == 0 {
		return nil
	}
	return append([]*Category(nil), f.categories...)
}

// Category returns the category with the given name, appending an empty one
// to the end of f if there is none.
func (f *File) Category(name string) *Category {
	name = Normalize(name)
	if c := f.lookup(name); c != nil {
		return c
	}
	c := &Category{name: name}
	f.categories = append(f.categories, c)
	return c
}

// Lookup returns the category with the given name without creating it.
func (f *File) Lookup(name string) (*Category, bool) {
	if f == nil {
		return nil, false
	}
	c := f.lookup(Normalize(name))
	return c, c != nil
}

// lookup finds the last category named name. name must already be normalized.
func (f *File) lookup(name string) *Category {
	for i := len(f.categories) - 1; i >= 0; i-- {
		if f.categories[i].name == name {
			return f.categories[i]
		}
	}
	return nil
}

// Get returns the last value associated with the given key in the given
// category. If there is no such key, Get returns the empty string. Get never
// creates categories or keys.
func (f *File) Get(category, key string) string {
	if f == nil {
		return ""
	}
	category, key = Normalize(category), Normalize(key)
	for i := len(f.categories) - 1; i >= 0; i-- {
		c := f.categories[i]
		if c.name != category {
			continue
		}
		if k := c.lookup(key); k != nil {
			return k.value
		}
	}
	return ""
}

// Set sets the key in the given category to value, creating the category and
// the key if necessary.
func (f *File) Set(category, key, value string) {
	f.Category(category).Key(key).Set(value)
}

// Delete deletes any key with the given name in categories with the given
// name. Categories that become empty as a result are removed.
func (f *File) Delete(category, key string) {
	category, key = Normalize(category), Normalize(key)
	n := 0
	for _, c := range f.categories {
		if c.name != category {
			f.categories[n] = c
			n++
			continue
		}
		orig := len(c.keys)
		c.keys = filterKeys(c.keys, func(k *Key) bool { return k.name != key })
		// Keep the category if it still has keys, or we didn't modify it.
		if len(c.keys) > 0 || orig == 0 {
			f.categories[n] = c
			n++
		}
	}
	for i := n; i < len(f.categories); i++ {
		// Zero out for garbage collection.
		f.categories[i] = nil
	}
	f.categories = f.categories[:n]
}

// WriteTo writes f to w in INI format. See MarshalText.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	buf, err := f.MarshalText()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// MarshalText serializes the file in INI format. The output starts with Header
// and has a blank line after every category. Categories with an empty name and
// keys with an empty name are left out.
func (f *File) MarshalText() ([]byte, error) {
	buf := append([]byte(Header), '\n')
	for _, c := range f.Categories() {
		if c.name == "" {
			continue
		}
		buf = append(buf, '[')
		buf = append(buf, c.name...)
		buf = append(buf, "]\n"...)
		for _, k := range c.keys {
			if k.name == "" {
				continue
			}
			buf = append(buf, k.name...)
			buf = append(buf, '=')
			buf = append(buf, k.value...)
			buf = append(buf, '\n')
		}
		buf = append(buf, '\n')
	}
	return buf, nil
}

// UnmarshalText parses the INI data with default options, replacing any
// categories in f. The path f was loaded from is kept.
func (f *File) UnmarshalText(data []byte) error {
	parsed, err := Parse(context.Background(), bytes.NewReader(data), nil)
	if err != nil {
		return err
	}
	f.categories = parsed.categories
	return nil
}

// Name returns the normalized name of the category.
func (c *Category) Name() string {
	return c.name
}

// Len returns the number of keys in c.
func (c *Category) Len() int {
	return len(c.keys)
}

// Keys returns the keys of c in order. The slice is a copy, but the keys are
// not.
func (c *Category) Keys() []*Key {
	if len(c.keys) == 0 {
		return nil
	}
	return append([]*Key(nil), c.keys...)
}

// Key returns the key with the given name, appending one with an empty value
// if there is none.
func (c *Category) Key(name string) *Key {
	name = Normalize(name)
	if k := c.lookup(name); k != nil {
		return k
	}
	k := &Key{name: name}
	c.keys = append(c.keys, k)
	return k
}

// Lookup returns the key with the given name without creating it.
func (c *Category) Lookup(name string) (*Key, bool) {
	k := c.lookup(Normalize(name))
	return k, k != nil
}

func (c *Category) lookup(name string) *Key {
	for i := len(c.keys) - 1; i >= 0; i-- {
		if c.keys[i].name == name {
			return c.keys[i]
		}
	}
	return nil
}

// Name returns the normalized name of the key.
func (k *Key) Name() string {
	return k.name
}

// Value returns the value of the key.
func (k *Key) Value() string {
	return k.value
}

// Set replaces the value of the key. The value is stored verbatim; use
// CheckLine to reject values that would not survive serialization.
func (k *Key) Set(value string) {
	k.value = value
}

func filterKeys(keys []*Key, keep func(*Key) bool) []*Key {
	n := 0
	for _, k := range keys {
		if keep(k) {
			keys[n] = k
			n++
		}
	}
	for i := n; i < len(keys); i++ {
		// Zero out truncated element for garbage collection.
		keys[i] = nil
	}
	return keys[:n]
}
