// Copyright 2024 The swaggergen Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package util implements utility functions for working with goyang
// schema entries that are not specific to any swaggergen package.
package util

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/openconfig/goyang/pkg/yang"
)

// Children returns all child elements of a directory element e that are not
// RPC entries.
func Children(e *yang.Entry) []*yang.Entry {
	var entries []*yang.Entry
	for _, c := range e.Dir {
		if c.RPC == nil {
			entries = append(entries, c)
		}
	}
	return entries
}

// RPCs returns the RPC children of the module entry e, sorted by name.
func RPCs(e *yang.Entry) []*yang.Entry {
	var entries []*yang.Entry
	for _, c := range e.Dir {
		if c.RPC != nil {
			entries = append(entries, c)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// SchemaTreeRoot returns the root of the schema tree, given any node in that
// tree. It returns nil if schema is nil.
func SchemaTreeRoot(schema *yang.Entry) *yang.Entry {
	if schema == nil {
		return nil
	}
	root := schema
	for root.Parent != nil {
		root = root.Parent
	}
	return root
}

// IsChoiceOrCase returns true if the entry is either a 'case' or a 'choice'
// node within the schema. These are schema nodes only; the generated paths
// and definitions operate on data tree nodes.
func IsChoiceOrCase(e *yang.Entry) bool {
	if e == nil {
		return false
	}
	return e.IsChoice() || e.IsCase()
}

// IsKeyedList returns true if the supplied yang.Entry represents a keyed list.
func IsKeyedList(e *yang.Entry) bool {
	if e == nil {
		return false
	}
	return e.IsList() && e.Key != ""
}

// ListKeyFields returns the names of the key leaves of the list described by
// the supplied entry, in their declaration order. An empty slice is returned
// when the entry is not a keyed list.
func ListKeyFields(e *yang.Entry) []string {
	var keys []string
	for _, k := range strings.Fields(e.Key) {
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// IsConfig takes a yang.Entry and traverses up the tree to find the config
// state of that element. In YANG, if the config parameter is unset, it is
// inherited from the parent of the element - hence we must walk up the tree
// to find the state. If the element at the top of the tree does not have
// config set, then config is true.
// See https://tools.ietf.org/html/rfc6020#section-7.19.1.
func IsConfig(e *yang.Entry) bool {
	for ; e.Parent != nil; e = e.Parent {
		switch e.Config {
		case yang.TSTrue:
			return true
		case yang.TSFalse:
			return false
		}
	}
	return e.Config != yang.TSFalse
}

// IsLeafRef reports whether schema is a leafref schema node type.
func IsLeafRef(schema *yang.Entry) bool {
	if schema == nil || schema.Type == nil {
		return false
	}
	return schema.Type.Kind == yang.Yleafref
}

// FindFirstNonChoiceOrCase recursively traverses the children of e and
// returns a map of the first nodes in every path that are neither case nor
// choice nodes. The keys in the map are the schema paths of the matching
// elements.
func FindFirstNonChoiceOrCase(e *yang.Entry) map[string]*yang.Entry {
	m := make(map[string]*yang.Entry)
	for _, ch := range e.Dir {
		addToEntryMap(m, findFirstNonChoiceOrCaseInternal(ch))
	}
	return m
}

// findFirstNonChoiceOrCaseInternal is an internal part of
// FindFirstNonChoiceOrCase.
func findFirstNonChoiceOrCaseInternal(e *yang.Entry) map[string]*yang.Entry {
	m := make(map[string]*yang.Entry)
	switch {
	case !IsChoiceOrCase(e):
		m[e.Path()] = e
	case e.IsDir():
		for _, ch := range e.Dir {
			addToEntryMap(m, findFirstNonChoiceOrCaseInternal(ch))
		}
	}
	return m
}

// addToEntryMap merges from into to, overwriting overlapping key-value pairs.
func addToEntryMap(to, from map[string]*yang.Entry) map[string]*yang.Entry {
	for k, v := range from {
		to[k] = v
	}
	return to
}

// StripModulePrefix removes the prefix from a YANG path element, or returns
// the argument unchanged if it does not carry one. For example, "foo:bar"
// becomes "bar". Such qualified elements are used in YANG modules when
// remote paths are referenced.
func StripModulePrefix(name string) string {
	ps := strings.Split(name, ":")
	switch len(ps) {
	case 1:
		return name
	case 2:
		return ps[1]
	default:
		return name
	}
}

// stripModulePrefixWithCheck removes the prefix from a YANG path element,
// returning an error when the element is not a valid (name or prefix:name)
// identifier.
func stripModulePrefixWithCheck(name string) (string, error) {
	ps := strings.Split(name, ":")
	switch len(ps) {
	case 1:
		return name, nil
	case 2:
		return ps[1], nil
	}
	return "", fmt.Errorf("path element did not form a valid name (name, prefix:name): %v", name)
}

// removeXPATHPredicates removes predicates from an XPath string. e.g.,
// removeXPATHPredicates(/foo/bar[name="foo"]/config/baz -> /foo/bar/config/baz.
func removeXPATHPredicates(s string) (string, error) {
	var b bytes.Buffer
	for i := 0; i < len(s); {
		ss := s[i:]
		si, ei := strings.Index(ss, "["), strings.Index(ss, "]")
		switch {
		case si == -1 && ei == -1:
			// This substring didn't contain a [] pair, therefore write it
			// to the buffer.
			b.WriteString(ss)
			i += len(ss)
		case si == -1 || ei == -1:
			// This substring contained a mismatched pair of []s.
			return "", fmt.Errorf("mismatched brackets within substring %s of %s, [ pos: %d, ] pos: %d", ss, s, si, ei)
		case si > ei:
			// This substring contained a ] before a [.
			return "", fmt.Errorf("incorrect ordering of [] within substring %s of %s, [ pos: %d, ] pos: %d", ss, s, si, ei)
		default:
			// This substring contained a matched set of []s.
			b.WriteString(ss[0:si])
			i += ei + 1
		}
	}
	return b.String(), nil
}

// FindLeafRefSchema returns a pointer to the schema pointed to by the
// supplied leafref path from the context of the supplied schema entry. An
// error is returned when the path does not resolve to an entry within the
// same entry tree.
func FindLeafRefSchema(schema *yang.Entry, pathStr string) (*yang.Entry, error) {
	if pathStr == "" {
		return nil, fmt.Errorf("leafref schema %s has empty path", schema.Name)
	}

	refSchema := schema
	pathStr, err := removeXPATHPredicates(pathStr)
	if err != nil {
		return nil, err
	}
	path := strings.Split(pathStr, "/")

	// For absolute path, reset to root of the schema tree.
	if pathStr[0] == '/' {
		refSchema = SchemaTreeRoot(schema)
		path = path[1:]
	}

	for i := 0; i < len(path); i++ {
		pe, err := stripModulePrefixWithCheck(path[i])
		if err != nil {
			return nil, fmt.Errorf("leafref schema %s path %s: %v", schema.Name, pathStr, err)
		}

		if pe == ".." {
			if refSchema.Parent == nil {
				return nil, fmt.Errorf("parent of %s is nil for leafref schema %s with path %s", refSchema.Name, schema.Name, pathStr)
			}
			refSchema = refSchema.Parent
			continue
		}
		if refSchema.Dir[pe] == nil {
			return nil, fmt.Errorf("schema node %s is nil for leafref schema %s with path %s", pe, schema.Name, pathStr)
		}
		refSchema = refSchema.Dir[pe]
	}

	return refSchema, nil
}
