// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package envvar provides functions to read environment variables for
// configuration and to apply them on top of an INI file.
package envvar

import (
	"os"
	"strconv"
	"strings"

	"github.com/yourbase/libini/ini"
)

// Separator splits the category from the key in an overlay variable name.
const Separator = "__"

// Get returns the value of the given environment variable. If it is empty or
// unset, it returns the default value.
func Get(key string, defaultValue string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	return v
}

// Bool returns the value of a boolean environment variable. If it is unset or
// not one of the strings 1, t, T, TRUE, true, or True, then it returns false.
func Bool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false
	}
	return b
}

// Overlay sets keys in f from environment entries of the form
// PREFIX_CATEGORY__KEY=value, where environ is in the format returned by
// os.Environ. Categories and keys are created as needed and names are
// normalized by f. Entries without the prefix, without a separator, or with an
// empty category or key are ignored. Overlay returns the number of keys set.
//
// An empty prefix matches every entry that has a separator.
func Overlay(f *ini.File, prefix string, environ []string) int {
	if prefix != "" {
		prefix += "_"
	}
	n := 0
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		category, key, ok := strings.Cut(name[len(prefix):], Separator)
		if !ok || category == "" || key == "" {
			continue
		}
		f.Category(category).Key(key).Set(value)
		n++
	}
	return n
}
