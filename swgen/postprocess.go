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

	log "github.com/golang/glog"

	"github.com/openyang/swaggergen/swagger"
)

// Transform rewrites a generated document in place. Transforms run after
// generation, in the order they are configured.
type Transform func(*swagger.Swagger) error

// DefaultTransforms returns the transforms applied when none are configured.
func DefaultTransforms() []Transform {
	return []Transform{ReplaceEmptyWithParent, SortComplexModels, SortPaths}
}

// forEachSchema calls fn on every schema attached to the document: the
// definitions and the schemas of operation parameters and responses. fn is
// responsible for its own recursion into nested schemas.
func forEachSchema(doc *swagger.Swagger, fn func(*swagger.Schema)) {
	for _, name := range doc.Definitions.Keys() {
		if s, ok := doc.Definitions.Get(name); ok {
			fn(s)
		}
	}
	for _, path := range doc.Paths.Keys() {
		p, ok := doc.Paths.Get(path)
		if !ok {
			continue
		}
		for _, op := range p.Operations() {
			for _, param := range op.Parameters {
				if param.Schema != nil {
					fn(param.Schema)
				}
			}
			for _, resp := range op.Responses {
				if resp.Schema != nil {
					fn(resp.Schema)
				}
			}
		}
	}
}

// ReplaceEmptyWithParent removes definitions that carry no structure of
// their own. A definition that is nothing but a reference is folded: its
// users are rewired to the referenced definition and the shell is deleted.
// A definition that is an empty object is deleted, and its users degrade to
// an anonymous object.
func ReplaceEmptyWithParent(doc *swagger.Swagger) error {
	// Shells can chain, so fold until a pass finds nothing.
	for folded := true; folded; {
		folded = false
		for _, name := range doc.Definitions.Keys() {
			s, ok := doc.Definitions.Get(name)
			if !ok {
				continue
			}
			switch {
			case s.IsRef():
				target := s.RefName()
				log.V(1).Infof("folding definition %s into %s", name, target)
				doc.Definitions.Delete(name)
				forEachSchema(doc, func(u *swagger.Schema) {
					u.RewriteRefs(name, target)
				})
				folded = true
			case s.IsEmptyObject():
				log.V(1).Infof("dropping empty definition %s", name)
				doc.Definitions.Delete(name)
				forEachSchema(doc, func(u *swagger.Schema) {
					degradeRefs(u, name)
				})
				folded = true
			}
		}
	}
	return nil
}

// degradeRefs replaces every reference to the named definition within s with
// an anonymous object schema, recursively.
func degradeRefs(s *swagger.Schema, name string) {
	if s == nil {
		return
	}
	if s.RefName() == name {
		s.Ref = ""
		s.Type = "object"
	}
	degradeRefs(s.Items, name)
	for _, p := range s.Properties {
		degradeRefs(p, name)
	}
	for _, m := range s.AllOf {
		degradeRefs(m, name)
	}
}

// SortComplexModels normalizes composed definitions: within every allOf the
// referenced parents come before inline members, and the definitions
// themselves are reordered so that every definition appears after the ones
// it references. Ties are broken alphabetically, so the order is stable
// across runs; a reference cycle is logged and the remaining definitions
// are appended alphabetically.
func SortComplexModels(doc *swagger.Swagger) error {
	names := doc.Definitions.Keys()

	for _, name := range names {
		s, ok := doc.Definitions.Get(name)
		if !ok || len(s.AllOf) < 2 {
			continue
		}
		var refs, inline []*swagger.Schema
		for _, m := range s.AllOf {
			if m.IsRef() {
				refs = append(refs, m)
			} else {
				inline = append(inline, m)
			}
		}
		s.AllOf = append(refs, inline...)
	}

	// Dependency-first topological order over the reference graph.
	known := map[string]bool{}
	for _, n := range names {
		known[n] = true
	}
	deps := map[string][]string{}
	indegree := map[string]int{}
	for _, n := range names {
		indegree[n] += 0
	}
	for _, n := range names {
		s, _ := doc.Definitions.Get(n)
		seen := map[string]bool{}
		for _, ref := range s.References() {
			if !known[ref] || ref == n || seen[ref] {
				continue
			}
			seen[ref] = true
			deps[ref] = append(deps[ref], n)
			indegree[n]++
		}
	}

	var ready []string
	for n, d := range indegree {
		if d == 0 {
			ready = append(ready, n)
		}
	}
	sort.Strings(ready)

	var order []string
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)
		var unlocked []string
		for _, dep := range deps[n] {
			indegree[dep]--
			if indegree[dep] == 0 {
				unlocked = append(unlocked, dep)
			}
		}
		sort.Strings(unlocked)
		ready = mergeSorted(ready, unlocked)
	}

	if len(order) < len(names) {
		var rest []string
		placed := map[string]bool{}
		for _, n := range order {
			placed[n] = true
		}
		for _, n := range names {
			if !placed[n] {
				rest = append(rest, n)
			}
		}
		sort.Strings(rest)
		log.Warningf("definition references form a cycle involving %v, appending alphabetically", rest)
		order = append(order, rest...)
	}

	return doc.Definitions.Reorder(order)
}

// SortPaths orders the path entries alphabetically, so the serialized
// document lists resources independently of the traversal order that
// produced them.
func SortPaths(doc *swagger.Swagger) error {
	keys := doc.Paths.Keys()
	sort.Strings(keys)
	return doc.Paths.Reorder(keys)
}

// mergeSorted merges two sorted string slices into one sorted slice.
func mergeSorted(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
