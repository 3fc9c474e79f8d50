// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package envvar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourbase/libini/ini"
)

func TestGet(t *testing.T) {
	t.Setenv("LIBINI_TEST_SET", "value")
	t.Setenv("LIBINI_TEST_EMPTY", "")

	assert.Equal(t, "value", Get("LIBINI_TEST_SET", "default"))
	assert.Equal(t, "default", Get("LIBINI_TEST_EMPTY", "default"))
	assert.Equal(t, "default", Get("LIBINI_TEST_UNSET_XYZZY", "default"))
}

func TestBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "", want: false},
		{value: "1", want: true},
		{value: "true", want: true},
		{value: "True", want: true},
		{value: "0", want: false},
		{value: "false", want: false},
		{value: "yes", want: false},
	}
	for _, test := range tests {
		t.Setenv("LIBINI_TEST_BOOL", test.value)
		assert.Equal(t, test.want, Bool("LIBINI_TEST_BOOL"), "value %q", test.value)
	}
}

func TestOverlay(t *testing.T) {
	f := new(ini.File)
	f.Set("network", "host", "localhost")
	f.Set("network", "port", "8080")

	n := Overlay(f, "APP", []string{
		"APP_NETWORK__PORT=9090",
		"APP_Paths__Data=/srv/Data",
		"APP_VALUE__WITH=a=b",
		"APP_NOSEPARATOR=x",
		"APP___KEY=x",
		"APP_CAT__=x",
		"OTHER_NETWORK__HOST=ignored",
		"PATH=/usr/bin",
		"malformed",
	})

	assert.Equal(t, 3, n)
	assert.Equal(t, "localhost", f.Get("network", "host"))
	assert.Equal(t, "9090", f.Get("network", "port"))
	assert.Equal(t, "/srv/Data", f.Get("paths", "data"))
	assert.Equal(t, "a=b", f.Get("value", "with"))

	network, ok := f.Lookup("network")
	require.True(t, ok)
	assert.Equal(t, 2, network.Len(), "overlay should update the existing key in place")
	assert.Equal(t, 3, f.Len())
}

func TestOverlayEmptyPrefix(t *testing.T) {
	f := new(ini.File)
	n := Overlay(f, "", []string{"A__B=c", "HOME=/root"})
	assert.Equal(t, 1, n)
	assert.Equal(t, "c", f.Get("a", "b"))
	assert.Equal(t, 1, f.Len())
}
