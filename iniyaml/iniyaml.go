// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package iniyaml converts INI files to and from YAML.
//
// A file is represented as a YAML mapping from category name to a mapping of
// key names to string values:
//
//	network:
//	  host: localhost
//	  port: "8080"
//
// Order is preserved in both directions.
package iniyaml

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yourbase/libini/ini"
)

// ErrNotMapping is wrapped by Unmarshal errors for documents that are not a
// mapping of mappings of scalars.
var ErrNotMapping = errors.New("not a mapping")

// Marshal encodes f as YAML. Repeated categories and repeated keys are folded
// into one entry, with the value a lookup in f would return.
func Marshal(f *ini.File) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	cats := make(map[string]*yaml.Node)
	for _, c := range f.Categories() {
		m := cats[c.Name()]
		if m == nil {
			m = &yaml.Node{Kind: yaml.MappingNode}
			cats[c.Name()] = m
			root.Content = append(root.Content, str(c.Name()), m)
		}
		for _, k := range c.Keys() {
			setScalar(m, k.Name(), k.Value())
		}
	}

	buf := new(bytes.Buffer)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("marshal ini as yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal ini as yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// setScalar sets key to value in mapping node m, replacing an existing entry.
func setScalar(m *yaml.Node, key, value string) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = str(value)
			return
		}
	}
	m.Content = append(m.Content, str(key), str(value))
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// Unmarshal decodes a YAML document produced by Marshal, or written by hand in
// the same shape, into a new file. Scalar values of any type are kept as
// their literal text. A null or empty category becomes a category without
// keys.
func Unmarshal(data []byte) (*ini.File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal ini from yaml: %w", err)
	}
	f := new(ini.File)
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return f, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("unmarshal ini from yaml: line %d: document: %w", root.Line, ErrNotMapping)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name, body := root.Content[i], root.Content[i+1]
		if err := ini.CheckLine(name.Value); err != nil {
			return nil, fmt.Errorf("unmarshal ini from yaml: line %d: category %q: %w", name.Line, name.Value, err)
		}
		c := f.Category(name.Value)
		if body.Kind == yaml.ScalarNode && body.Tag == "!!null" {
			continue
		}
		if body.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("unmarshal ini from yaml: line %d: category %q: %w", body.Line, name.Value, ErrNotMapping)
		}
		for j := 0; j+1 < len(body.Content); j += 2 {
			key, value := body.Content[j], body.Content[j+1]
			if value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("unmarshal ini from yaml: line %d: key %q in %q: value is not a scalar", value.Line, key.Value, name.Value)
			}
			v := value.Value
			if value.Tag == "!!null" {
				v = ""
			}
			if err := ini.CheckLine(key.Value); err != nil {
				return nil, fmt.Errorf("unmarshal ini from yaml: line %d: key %q in %q: %w", key.Line, key.Value, name.Value, err)
			}
			if err := ini.CheckLine(v); err != nil {
				return nil, fmt.Errorf("unmarshal ini from yaml: line %d: key %q in %q: %w", value.Line, key.Value, name.Value, err)
			}
			c.Key(key.Value).Set(v)
		}
	}
	return f, nil
}
