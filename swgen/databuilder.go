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

package swgen

import (
	"sort"
	"strings"

	"github.com/openconfig/goyang/pkg/yang"

	"github.com/openyang/swaggergen/genutil"
	"github.com/openyang/swaggergen/swagger"
	"github.com/openyang/swaggergen/util"
)

// DataObjectBuilder turns data nodes of the schema into named definitions
// within the output document. The walker drives it in post-order: AddModel
// for a node is called only after AddModel has been called for all of its
// in-depth children, so a builder can assume that any child it wants to
// reference has already been registered - a child without a registered
// definition was truncated by the depth bound.
type DataObjectBuilder interface {
	// ProcessModule gives the builder a whole-module view before any
	// node is visited, e.g. to count reuse.
	ProcessModule(module *yang.Entry)
	// AddModel builds and registers the definition for the supplied
	// container or list node.
	AddModel(e *yang.Entry)
	// Name returns the definition name of the supplied node. The name is
	// stable across calls.
	Name(e *yang.Entry) string
	// ObjectSchema returns the schema to embed where the node's content
	// is needed: a reference to its definition when one was registered,
	// or an anonymous object placeholder when the node was truncated.
	ObjectSchema(e *yang.Entry) *swagger.Schema
	// Errors returns the errors accumulated while building definitions.
	Errors() util.Errors
}

// objectBuilder carries the state shared by both builder strategies.
type objectBuilder struct {
	doc     *swagger.Swagger
	types   *typeResolver
	names   map[*yang.Entry]string
	defined map[string]bool
	added   map[*yang.Entry]bool
	errs    util.Errors
}

func newObjectBuilder(doc *swagger.Swagger, types *typeResolver) objectBuilder {
	return objectBuilder{
		doc:     doc,
		types:   types,
		names:   map[*yang.Entry]string{},
		defined: map[string]bool{},
		added:   map[*yang.Entry]bool{},
	}
}

// Name returns the memoized definition name of e, deriving it on first use
// from the node's data tree path and making it unique within the document.
func (b *objectBuilder) Name(e *yang.Entry) string {
	if n, ok := b.names[e]; ok {
		return n
	}
	n := genutil.MakeNameUnique(dottedName(e), b.defined)
	b.names[e] = n
	return n
}

// ObjectSchema returns a reference to e's registered definition, or an
// anonymous object schema when no definition was registered for e. The
// latter happens for children cut off by the depth bound, and keeps the
// document free of references to definitions that do not exist.
func (b *objectBuilder) ObjectSchema(e *yang.Entry) *swagger.Schema {
	if b.added[e] {
		return swagger.NewRef(b.Name(e))
	}
	return &swagger.Schema{Type: "object"}
}

// Errors returns the errors accumulated so far.
func (b *objectBuilder) Errors() util.Errors {
	return b.errs
}

// register adds the schema under e's definition name and records that e has
// a definition.
func (b *objectBuilder) register(e *yang.Entry, s *swagger.Schema) {
	b.doc.Definitions.Set(b.Name(e), s)
	b.added[e] = true
}

// dataChildren returns the data tree children of e - choice and case nodes
// are transparent, their members surface as direct children - sorted by name.
func dataChildren(e *yang.Entry) []*yang.Entry {
	m := util.FindFirstNonChoiceOrCase(e)
	var children []*yang.Entry
	for _, ch := range m {
		if ch.RPC != nil {
			continue
		}
		children = append(children, ch)
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	return children
}

// buildProperties populates obj with one property per data child of e.
// Children named in skip are left out. Directory children (containers and
// lists) are mapped through dirSchema, which lets the caller choose between
// referencing a registered definition and inlining; leaves are mapped
// through the type resolver. A leaf whose type cannot be resolved is
// recorded as an error and dropped from the object.
func (b *objectBuilder) buildProperties(e *yang.Entry, skip map[string]bool, obj *swagger.Schema, dirSchema func(*yang.Entry) *swagger.Schema) {
	for _, ch := range dataChildren(e) {
		if skip[ch.Name] {
			continue
		}

		var prop *swagger.Schema
		switch {
		case ch.IsLeafList():
			item, err := b.types.resolveType(ch)
			if err != nil {
				b.errs = util.AppendErr(b.errs, err)
				continue
			}
			prop = swagger.NewArray(item)
		case ch.IsList():
			prop = swagger.NewArray(dirSchema(ch))
		case ch.IsDir():
			prop = dirSchema(ch)
		default:
			if ch.Type == nil {
				// anyxml and other unclassified kinds are not materialized.
				continue
			}
			var err error
			prop, err = b.types.resolveType(ch)
			if err != nil {
				b.errs = util.AppendErr(b.errs, err)
				continue
			}
		}

		if prop.Description == "" && ch.Description != "" && !prop.IsRef() {
			prop.Description = ch.Description
		}
		if !util.IsConfig(ch) && !prop.IsRef() {
			prop.ReadOnly = true
		}
		obj.Properties[ch.Name] = prop

		if ch.Mandatory == yang.TSTrue {
			obj.Required = append(obj.Required, ch.Name)
		}
	}
	sort.Strings(obj.Required)
}

// dottedName derives the base definition name of a data node: the names on
// its data tree path from the module root, joined with dots. Choice and case
// levels do not appear in the data tree and are skipped.
func dottedName(e *yang.Entry) string {
	var parts []string
	for cur := e; cur != nil; cur = cur.Parent {
		if !util.IsChoiceOrCase(cur) {
			parts = append(parts, cur.Name)
		}
	}
	for i := len(parts)/2 - 1; i >= 0; i-- {
		o := len(parts) - 1 - i
		parts[i], parts[o] = parts[o], parts[i]
	}
	return strings.Join(parts, ".")
}
