// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini provides an in-memory model, parser and serializer for the INI file
format. See https://en.wikipedia.org/wiki/INI_file.

A File holds an ordered list of categories (sections), each holding an ordered
list of keys. Categories and keys are created either by parsing text or lazily
by read-or-create access:

	f := new(ini.File)
	f.Category("network").Key("port").Set("8080")

Syntax

An INI file is text read one line at a time. A line is ignored if it is empty
or if its first character is a hash ('#'), a space or a tab. There is no
trimming: indented lines are treated as comments.

A category is started by writing its name in square brackets on its own line
and ends at the next category name or the end of file:

	[category]
	key1=value1
	key2=value2

A key line is a name and a value separated by an equals sign ('='). The value
ends at the next equals sign, so "a=b=c" sets a to "b". Values are never quoted
or unescaped. Key lines that come before the first category are discarded.

Names

Category and key names are case-insensitive. Normalize is applied to every name
when it is stored and when it is looked up, so "[Network]" and
f.Category("NETWORK") refer to the same category. Only ASCII letters are
folded; other bytes, including ones that are not valid UTF-8, are kept
unchanged. Values keep their case.

A file that repeats a category header produces two categories with the same
name. They are not combined while parsing; lookups and Merge resolve to the
last one.

Malformed lines

A key line without an equals sign or a category line without a closing bracket
is skipped and reported through the logger attached to the parse Context. Set
ParseOptions.Strict to stop at the first such line instead.
*/
package ini
