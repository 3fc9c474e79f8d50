// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package iniyaml

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"zombiezen.com/go/log/testlog"

	"github.com/yourbase/libini/ini"
)

func parse(ctx context.Context, tb testing.TB, source string) *ini.File {
	tb.Helper()
	f, err := ini.Parse(ctx, strings.NewReader(source), nil)
	if err != nil {
		tb.Fatal(err)
	}
	return f
}

func text(tb testing.TB, f *ini.File) string {
	tb.Helper()
	b, err := f.MarshalText()
	if err != nil {
		tb.Fatal(err)
	}
	return string(b)
}

func TestMarshal(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	f := parse(ctx, t, "[Network]\nHost=localhost\nPort=8080\n[paths]\nhome=/srv\n")
	got, err := Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	const want = "network:\n" +
		"  host: localhost\n" +
		"  port: \"8080\"\n" +
		"paths:\n" +
		"  home: /srv\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Marshal (-want +got):\n%s", diff)
	}
}

func TestMarshalFoldsDuplicates(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	f := parse(ctx, t, "[a]\nx=1\n[b]\ny=2\n[a]\nx=3\nz=4\n")
	data, err := Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	g, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	const want = ini.Header + "\n[a]\nx=3\nz=4\n\n[b]\ny=2\n\n"
	if diff := cmp.Diff(want, text(t, g)); diff != "" {
		t.Errorf("after folding (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	const source = "[network]\nhost=localhost\nport=8080\nenabled=true\nempty=\n" +
		"[paths]\nhome=/home/Alice\nglob=*.ini\n"
	f := parse(ctx, t, source)
	data, err := Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	g, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal(%q): %v", data, err)
	}
	if diff := cmp.Diff(text(t, f), text(t, g)); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    string
		wantErr bool
	}{
		{
			name: "Empty",
			want: ini.Header + "\n",
		},
		{
			name: "Scalars",
			yaml: "Server:\n  Port: 80\n  Debug: true\n  Name: ~\n  Ratio: 0.5\n",
			want: ini.Header + "\n[server]\nport=80\ndebug=true\nname=\nratio=0.5\n\n",
		},
		{
			name: "NullCategory",
			yaml: "a:\nb:\n  x: y\n",
			want: ini.Header + "\n[a]\n\n[b]\nx=y\n\n",
		},
		{
			name:    "Sequence",
			yaml:    "- a\n- b\n",
			wantErr: true,
		},
		{
			name:    "ScalarCategory",
			yaml:    "a: 1\n",
			wantErr: true,
		},
		{
			name:    "NestedValue",
			yaml:    "a:\n  x: [1, 2]\n",
			wantErr: true,
		},
		{
			name:    "MultilineValue",
			yaml:    "a:\n  x: \"1\\n[evil]\\ny=2\"\n",
			wantErr: true,
		},
		{
			name:    "LiteralBlockValue",
			yaml:    "a:\n  x: |\n    one\n    two\n",
			wantErr: true,
		},
		{
			name:    "MultilineKey",
			yaml:    "a:\n  \"x\\ny\": 1\n",
			wantErr: true,
		},
		{
			name:    "MultilineCategory",
			yaml:    "\"a\\r\": {x: 1}\n",
			wantErr: true,
		},
		{
			name:    "Invalid",
			yaml:    "a: [\n",
			wantErr: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := Unmarshal([]byte(test.yaml))
			if err != nil {
				if !test.wantErr {
					t.Fatal("Unmarshal:", err)
				}
				return
			}
			if test.wantErr {
				t.Fatalf("Unmarshal did not return an error; got %q", text(t, f))
			}
			if diff := cmp.Diff(test.want, text(t, f)); diff != "" {
				t.Errorf("Unmarshal (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalNotMapping(t *testing.T) {
	_, err := Unmarshal([]byte("just a string\n"))
	if !errors.Is(err, ErrNotMapping) {
		t.Errorf("Unmarshal(scalar) = %v; want %v", err, ErrNotMapping)
	}
}

func TestUnmarshalLineBreak(t *testing.T) {
	_, err := Unmarshal([]byte("a:\n  x: \"1\\n[evil]\\ny=2\"\n"))
	if !errors.Is(err, ini.ErrLineBreak) {
		t.Errorf("Unmarshal(multi-line value) = %v; want %v", err, ini.ErrLineBreak)
	}
}
