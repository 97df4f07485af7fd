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

package swagger

import "strings"

// DefinitionPrefix is the JSON reference prefix under which named
// definitions are addressed within a document.
const DefinitionPrefix = "#/definitions/"

// Schema is a named or inline structural type. A schema is either a
// reference (Ref set, everything else empty), an object with properties,
// an allOf composition, or a scalar/array type description.
type Schema struct {
	Ref         string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string             `json:"format,omitempty" yaml:"format,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	ReadOnly    bool               `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Enum        []string           `json:"enum,omitempty" yaml:"enum,omitempty"`
	Items       *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required    []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AllOf       []*Schema          `json:"allOf,omitempty" yaml:"allOf,omitempty"`

	// XPath carries the original leafref path of a field whose type was
	// resolved through a cross-reference chain. It is serialized as a
	// vendor extension so consumers retain the semantic link even though
	// the emitted type is concrete.
	XPath string `json:"x-path,omitempty" yaml:"x-path,omitempty"`
}

// NewRef returns a schema that is a reference to the named definition.
func NewRef(name string) *Schema {
	return &Schema{Ref: DefinitionPrefix + name}
}

// NewObject returns an empty object schema.
func NewObject() *Schema {
	return &Schema{Type: "object", Properties: map[string]*Schema{}}
}

// NewArray returns an array schema with the supplied item schema.
func NewArray(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}

// IsRef reports whether the schema is a pure reference to a definition.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}

// RefName returns the definition name a reference schema points at, or the
// empty string when the schema is not a reference.
func (s *Schema) RefName() string {
	if !s.IsRef() {
		return ""
	}
	return strings.TrimPrefix(s.Ref, DefinitionPrefix)
}

// References returns the names of all definitions the schema refers to,
// directly or through items, properties and allOf members.
func (s *Schema) References() []string {
	if s == nil {
		return nil
	}
	var refs []string
	if s.IsRef() {
		refs = append(refs, s.RefName())
	}
	refs = append(refs, s.Items.References()...)
	for _, p := range s.Properties {
		refs = append(refs, p.References()...)
	}
	for _, m := range s.AllOf {
		refs = append(refs, m.References()...)
	}
	return refs
}

// RewriteRefs replaces every reference to the definition named from with a
// reference to the definition named to, recursively.
func (s *Schema) RewriteRefs(from, to string) {
	if s == nil {
		return
	}
	if s.RefName() == from {
		s.Ref = DefinitionPrefix + to
	}
	s.Items.RewriteRefs(from, to)
	for _, p := range s.Properties {
		p.RewriteRefs(from, to)
	}
	for _, m := range s.AllOf {
		m.RewriteRefs(from, to)
	}
}

// IsEmptyObject reports whether the schema describes an object with no
// properties, no composition and no reference - i.e., one that carries no
// structural information.
func (s *Schema) IsEmptyObject() bool {
	return s != nil && !s.IsRef() && len(s.Properties) == 0 && len(s.AllOf) == 0 &&
		s.Items == nil && (s.Type == "" || s.Type == "object")
}
