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
	"github.com/openconfig/goyang/pkg/yang"

	"github.com/openyang/swaggergen/genutil"
	"github.com/openyang/swaggergen/swagger"
)

// optimizingBuilder is the strategy that shares grouping content: a grouping
// that is used from at least two places in the processed schema becomes a
// definition of its own, and every node that uses it composes it by
// reference through allOf. A grouping used only once carries no sharing
// value and is inlined, which keeps the two strategies field-equivalent on
// schemas without reuse.
type optimizingBuilder struct {
	objectBuilder

	groupings *groupingIndex
	// usage counts the uses sites of each grouping across the processed
	// modules, keyed by grouping id.
	usage map[string]int
	// groupingDefs maps a grouping id to its registered definition name.
	groupingDefs map[string]string
}

func newOptimizingBuilder(doc *swagger.Swagger, types *typeResolver, groupings *groupingIndex) *optimizingBuilder {
	return &optimizingBuilder{
		objectBuilder: newObjectBuilder(doc, types),
		groupings:     groupings,
		usage:         map[string]int{},
		groupingDefs:  map[string]string{},
	}
}

// ProcessModule counts grouping usage sites throughout the module's expanded
// tree. Each expansion of a grouping is one site, including expansions that
// came in through the body of another grouping.
func (b *optimizingBuilder) ProcessModule(module *yang.Entry) {
	var walk func(e *yang.Entry)
	walk = func(e *yang.Entry) {
		for _, us := range e.Uses {
			if us == nil || us.Grouping == nil {
				continue
			}
			b.usage[groupingID(us.Grouping)]++
		}
		for _, ch := range e.Dir {
			walk(ch)
		}
	}
	walk(module)
}

// shared reports whether the supplied grouping is emitted as a definition of
// its own: it must be used from more than one site and be present in the
// grouping hierarchy.
func (b *optimizingBuilder) shared(g *yang.Entry) bool {
	id := groupingID(g)
	return b.usage[id] > 1 && b.groupings.Known(id)
}

// AddModel registers the definition of the supplied node. Content received
// from shared groupings is referenced, remaining content is emitted as local
// properties.
func (b *optimizingBuilder) AddModel(e *yang.Entry) {
	if b.added[e] {
		return
	}
	refs, skip := b.groupingRefs(e, "")
	obj := swagger.NewObject()
	obj.Description = e.Description
	b.buildProperties(e, skip, obj, b.ObjectSchema)
	b.register(e, composeSchema(refs, obj))
}

// groupingRefs returns one reference per shared grouping used directly by e,
// along with the set of child names those groupings supply, registering the
// grouping definitions on first use. ownerID names the grouping whose body
// is being built, or is empty for an instance node; a used grouping that the
// owner is itself part of is not referenced, since doing so would make the
// definitions circular, and its content stays inline instead.
func (b *optimizingBuilder) groupingRefs(e *yang.Entry, ownerID string) ([]*swagger.Schema, map[string]bool) {
	var refs []*swagger.Schema
	skip := map[string]bool{}
	for _, us := range e.Uses {
		if us == nil || us.Grouping == nil || !b.shared(us.Grouping) {
			continue
		}
		gid := groupingID(us.Grouping)
		if ownerID != "" && (gid == ownerID || b.groupings.IsAncestorOf(ownerID, gid)) {
			continue
		}
		refs = append(refs, swagger.NewRef(b.ensureGroupingDef(us.Grouping)))
		for _, ch := range dataChildren(us.Grouping) {
			skip[ch.Name] = true
		}
	}
	return refs, skip
}

// ensureGroupingDef registers the definition of the supplied grouping if it
// has not been registered yet, and returns its definition name. The name is
// recorded before the body is built, so a grouping reachable from its own
// body resolves to the name already being defined.
func (b *optimizingBuilder) ensureGroupingDef(g *yang.Entry) string {
	id := groupingID(g)
	if n, ok := b.groupingDefs[id]; ok {
		return n
	}
	name := genutil.MakeNameUnique(b.groupings.Name(g), b.defined)
	b.groupingDefs[id] = name
	b.doc.Definitions.Set(name, b.groupingBody(g, id))
	return name
}

// groupingBody builds the self-contained definition body of a grouping.
// Directory children are inlined rather than referenced, since their
// instance definitions are named per use site; nested shared groupings are
// the exception and compose by reference.
func (b *optimizingBuilder) groupingBody(e *yang.Entry, ownerID string) *swagger.Schema {
	refs, skip := b.groupingRefs(e, ownerID)
	obj := swagger.NewObject()
	obj.Description = e.Description
	b.buildProperties(e, skip, obj, func(ch *yang.Entry) *swagger.Schema {
		return b.groupingBody(ch, ownerID)
	})
	return composeSchema(refs, obj)
}

// composeSchema combines grouping references with the local property object.
// A node wholly supplied by a single grouping collapses onto the plain
// reference, multiple suppliers compose through allOf, and local properties
// join the composition as its final member.
func composeSchema(refs []*swagger.Schema, obj *swagger.Schema) *swagger.Schema {
	hasLocal := len(obj.Properties) > 0 || len(obj.Required) > 0
	switch {
	case len(refs) == 0:
		return obj
	case !hasLocal && len(refs) == 1:
		return refs[0]
	case !hasLocal:
		return &swagger.Schema{AllOf: refs, Description: obj.Description}
	default:
		return &swagger.Schema{AllOf: append(refs, obj)}
	}
}
