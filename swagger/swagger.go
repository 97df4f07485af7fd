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

// Package swagger defines an in-memory model of a Swagger 2.0 document as
// produced by the swgen generator. The model covers the subset of the
// specification that a YANG-derived API uses - paths with the four CRUD
// operations, and named definitions with reference-style reuse. The Paths
// and Definitions collections preserve their entry order through both JSON
// and YAML serialization so that post-processing transforms can control the
// order in which entries are emitted.
package swagger

import (
	"bytes"
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// Version is the value of the swagger field of every generated document.
const Version = "2.0"

// Swagger is the root of a Swagger 2.0 document.
type Swagger struct {
	Swagger     string       `json:"swagger" yaml:"swagger"`
	Info        *Info        `json:"info,omitempty" yaml:"info,omitempty"`
	Host        string       `json:"host,omitempty" yaml:"host,omitempty"`
	BasePath    string       `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	Consumes    []string     `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Produces    []string     `json:"produces,omitempty" yaml:"produces,omitempty"`
	Paths       *Paths       `json:"paths" yaml:"paths"`
	Definitions *Definitions `json:"definitions" yaml:"definitions"`
}

// New returns an empty Swagger 2.0 document.
func New() *Swagger {
	return &Swagger{
		Swagger:     Version,
		Info:        &Info{},
		Paths:       &Paths{},
		Definitions: &Definitions{},
	}
}

// Info describes the generated API.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Path holds the operations that are available on a single path. Fields that
// are nil are omitted from the serialized document.
type Path struct {
	Get    *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Post   *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Put    *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Delete *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
}

// Operations returns the operations of the path keyed by their HTTP method.
// Methods without an operation are not present in the returned map.
func (p *Path) Operations() map[string]*Operation {
	ops := map[string]*Operation{}
	for m, o := range map[string]*Operation{"get": p.Get, "post": p.Post, "put": p.Put, "delete": p.Delete} {
		if o != nil {
			ops[m] = o
		}
	}
	return ops
}

// Operation describes a single HTTP operation on a path.
type Operation struct {
	Summary     string               `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string             `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []*Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   map[string]*Response `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// Parameter describes a single operation parameter. Path parameters carry an
// inline Type, body parameters carry a Schema.
type Parameter struct {
	Name        string  `json:"name" yaml:"name"`
	In          string  `json:"in" yaml:"in"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Type        string  `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string  `json:"format,omitempty" yaml:"format,omitempty"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Response describes a single response of an operation.
type Response struct {
	Description string  `json:"description" yaml:"description"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// orderedMap is a string-keyed map that remembers the order in which its
// keys were first set, and serializes its entries in that order.
type orderedMap[T any] struct {
	keys   []string
	values map[string]T
}

// Set stores value under key, appending key to the order if it is new.
func (m *orderedMap[T]) Set(key string, value T) {
	if m.values == nil {
		m.values = map[string]T{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *orderedMap[T]) Get(key string) (T, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key and its value, preserving the order of remaining keys.
func (m *orderedMap[T]) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries in the map.
func (m *orderedMap[T]) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in serialization order.
func (m *orderedMap[T]) Keys() []string {
	return append([]string{}, m.keys...)
}

// Reorder replaces the serialization order with keys, which must be a
// permutation of the current key set.
func (m *orderedMap[T]) Reorder(keys []string) error {
	if len(keys) != len(m.keys) {
		return fmt.Errorf("reorder: got %d keys, want %d", len(keys), len(m.keys))
	}
	seen := map[string]bool{}
	for _, k := range keys {
		if _, ok := m.values[k]; !ok {
			return fmt.Errorf("reorder: unknown key %q", k)
		}
		if seen[k] {
			return fmt.Errorf("reorder: duplicate key %q", k)
		}
		seen[k] = true
	}
	m.keys = append([]string{}, keys...)
	return nil
}

// MarshalJSON implements json.Marshaler, emitting entries in key order.
func (m *orderedMap[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler, emitting entries in key order.
func (m *orderedMap[T]) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range m.keys {
		var kn, vn yaml.Node
		kn.SetString(k)
		if err := vn.Encode(m.values[k]); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &kn, &vn)
	}
	return n, nil
}

// Paths maps a path string to the operations available on it.
type Paths struct {
	orderedMap[*Path]
}

// Definitions maps a definition name to its schema.
type Definitions struct {
	orderedMap[*Schema]
}
