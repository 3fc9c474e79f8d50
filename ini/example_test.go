// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yourbase/libini/ini"
)

func ExampleParse() {
	const iniFile = `# Server settings
[Network]
Host=localhost
Port=8080

[Paths]
Data=/var/lib/App`
	cfg, err := ini.Parse(context.Background(), strings.NewReader(iniFile), nil)
	if err != nil {
		// handle error
	}

	for _, c := range cfg.Categories() {
		fmt.Printf("[%s] has %d keys\n", c.Name(), c.Len())
	}
	fmt.Println("Host:", cfg.Get("network", "host"))
	fmt.Println("Data:", cfg.Get("PATHS", "DATA"))

	// Output:
	// [network] has 2 keys
	// [paths] has 1 keys
	// Host: localhost
	// Data: /var/lib/App
}

func ExampleFile_Category() {
	cfg := new(ini.File)

	// Category and Key create missing entries, so values can be assigned
	// through the returned handles.
	network := cfg.Category("Network")
	network.Key("Host").Set("example.com")
	network.Key("Port").Set("443")

	cfg.WriteTo(os.Stdout)

	// Output:
	// # Created with libini
	// [network]
	// host=example.com
	// port=443
	//
}

func ExampleFile_Merge() {
	cfg, err := ini.Parse(context.Background(), strings.NewReader("[a]\nx=1\n"), nil)
	if err != nil {
		// handle error
	}
	defaults, err := ini.Parse(context.Background(), strings.NewReader("[a]\nx=0\ny=2\n[b]\nz=3\n"), nil)
	if err != nil {
		// handle error
	}

	// Keys already present in cfg keep their value.
	cfg.Merge(defaults)
	cfg.WriteTo(os.Stdout)

	// Output:
	// # Created with libini
	// [a]
	// x=1
	// y=2
	//
	// [b]
	// z=3
	//
}

func ExampleFile_ClearEmptyItems() {
	cfg := new(ini.File)
	cfg.Set("a", "x", "1")
	cfg.Set("a", "unset", "")
	cfg.Category("placeholder").Key("todo")

	cfg.ClearEmptyItems()
	cfg.WriteTo(os.Stdout)

	// Output:
	// # Created with libini
	// [a]
	// x=1
	//
}
