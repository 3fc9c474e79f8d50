// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

// Merge adds the categories and keys of other that f does not have yet.
//
// For each category in other, if f has a category of the same name, every key
// of it whose name is not present in f's category is appended there; values
// already in f are never replaced. Otherwise a copy of the whole category is
// appended to the end of f. Nothing in other is shared with f afterwards.
func (f *File) Merge(other *File) {
	if other == nil {
		return
	}
	if other == f {
		other = other.Clone()
	}
	for _, oc := range other.categories {
		c := f.lookup(oc.name)
		if c == nil {
			f.categories = append(f.categories, oc.clone())
			continue
		}
		for _, k := range oc.keys {
			if c.lookup(k.name) == nil {
				c.keys = append(c.keys, &Key{name: k.name, value: k.value})
			}
		}
	}
}

// Merge returns a new file holding the union of a and b as computed by
// (*File).Merge. Neither a nor b is modified.
func Merge(a, b *File) *File {
	m := a.Clone()
	m.Merge(b)
	return m
}

// Clone returns a deep copy of f. Clone of a nil file is an empty file.
func (f *File) Clone() *File {
	if f == nil {
		return new(File)
	}
	g := &File{path: f.path}
	if len(f.categories) > 0 {
		g.categories = make([]*Category, 0, len(f.categories))
		for _, c := range f.categories {
			g.categories = append(g.categories, c.clone())
		}
	}
	return g
}

func (c *Category) clone() *Category {
	d := &Category{name: c.name}
	if len(c.keys) > 0 {
		d.keys = make([]*Key, 0, len(c.keys))
		for _, k := range c.keys {
			d.keys = append(d.keys, &Key{name: k.name, value: k.value})
		}
	}
	return d
}

// ClearEmptyItems removes every key that has an empty name or an empty value,
// then every category that has an empty name or no keys left.
func (f *File) ClearEmptyItems() {
	n := 0
	for _, c := range f.categories {
		c.keys = filterKeys(c.keys, func(k *Key) bool {
			return k.name != "" && k.value != ""
		})
		if c.name == "" || len(c.keys) == 0 {
			continue
		}
		f.categories[n] = c
		n++
	}
	for i := n; i < len(f.categories); i++ {
		// Zero out for garbage collection.
		f.categories[i] = nil
	}
	f.categories = f.categories[:n]
}

// Clear removes all keys and categories from f.
func (f *File) Clear() {
	for _, c := range f.categories {
		c.keys = nil
	}
	f.categories = nil
}
