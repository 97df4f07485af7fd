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
	"github.com/openconfig/goyang/pkg/yang"
	"golang.org/x/exp/maps"

	"github.com/openyang/swaggergen/genutil"
	"github.com/openyang/swaggergen/util"
)

// groupingID returns the stable identifier of a grouping entry, in the form
// "module:name".
func groupingID(g *yang.Entry) string {
	return genutil.OwningModule(g) + ":" + g.Name
}

// hierarchyNode is one grouping within the used-by hierarchy. Its parents
// are the groupings that it incorporates through uses statements.
type hierarchyNode struct {
	id      string
	parents map[string]*hierarchyNode
}

// groupingIndex disambiguates grouping names across the whole schema and
// answers ancestor queries over the grouping usage hierarchy. The index is
// built once, before any name is handed out: whether a grouping's display
// name needs module qualification is a whole-schema property, so a local
// per-grouping decision would be wrong.
type groupingIndex struct {
	// entries maps a grouping id to its schema entry, where one was
	// discovered through a uses statement.
	entries map[string]*yang.Entry
	// names maps a grouping id to its collision-free display name.
	names map[string]string
	// hierarchy maps a grouping id to its node in the used-by graph.
	hierarchy map[string]*hierarchyNode
}

// newGroupingIndex enumerates every grouping reachable from the supplied
// module entries, computes their display names and builds the usage
// hierarchy.
func newGroupingIndex(modules []*yang.Entry) *groupingIndex {
	idx := &groupingIndex{
		entries:   map[string]*yang.Entry{},
		names:     map[string]string{},
		hierarchy: map[string]*hierarchyNode{},
	}
	idx.collect(modules)
	idx.computeNames()
	idx.buildHierarchy()
	return idx
}

// collect walks the entry trees of all modules and records every grouping
// referenced by a uses statement, including groupings used inside other
// groupings. Module-level grouping declarations are recorded from the AST as
// well, so that an unused grouping still participates in collision counting.
func (idx *groupingIndex) collect(modules []*yang.Entry) {
	var walk func(e *yang.Entry)
	walk = func(e *yang.Entry) {
		for _, us := range e.Uses {
			if us == nil || us.Grouping == nil {
				continue
			}
			id := groupingID(us.Grouping)
			if _, ok := idx.entries[id]; !ok {
				idx.entries[id] = us.Grouping
				walk(us.Grouping)
			}
		}
		for _, ch := range e.Dir {
			walk(ch)
		}
	}

	for _, m := range modules {
		walk(m)
		mod, ok := m.Node.(*yang.Module)
		if !ok {
			continue
		}
		for _, g := range mod.Grouping {
			id := genutil.ParentModuleName(g) + ":" + g.Name
			if _, ok := idx.entries[id]; !ok {
				idx.entries[id] = nil
			}
		}
	}
}

// computeNames assigns each grouping its display name: the local name when
// it is unique across the schema, otherwise the module-qualified id.
func (idx *groupingIndex) computeNames() {
	count := map[string]int{}
	for id := range idx.entries {
		count[util.StripModulePrefix(id)]++
	}
	for id := range idx.entries {
		local := util.StripModulePrefix(id)
		if count[local] > 1 {
			idx.names[id] = id
		} else {
			idx.names[id] = local
		}
	}
}

// buildHierarchy creates one hierarchy node per grouping and one edge per
// uses relation found inside a grouping's body. A relation whose target is
// unknown is logged and skipped; the hierarchy stays partially connected
// rather than failing the build.
func (idx *groupingIndex) buildHierarchy() {
	for id := range idx.entries {
		idx.hierarchy[id] = &hierarchyNode{id: id, parents: map[string]*hierarchyNode{}}
	}
	for id, g := range idx.entries {
		if g == nil {
			continue
		}
		node := idx.hierarchy[id]
		for _, us := range g.Uses {
			if us == nil || us.Grouping == nil {
				log.Warningf("hierarchy creation problem: uses statement in %s has no resolved grouping, ignoring relation", id)
				continue
			}
			parentID := groupingID(us.Grouping)
			parent, ok := idx.hierarchy[parentID]
			if !ok {
				log.Warningf("hierarchy creation problem: no grouping with name %s found, ignoring hierarchy relation", parentID)
				continue
			}
			node.parents[parentID] = parent
		}
	}
}

// Name returns the display name of the supplied grouping entry.
func (idx *groupingIndex) Name(g *yang.Entry) string {
	if n, ok := idx.names[groupingID(g)]; ok {
		return n
	}
	return g.Name
}

// Known reports whether the grouping id is present in the hierarchy.
func (idx *groupingIndex) Known(id string) bool {
	_, ok := idx.hierarchy[id]
	return ok
}

// IsAncestorOf reports whether the grouping identified by candidateID is
// transitively used by the grouping identified by nodeID. The traversal is
// iterative with an explicit visited set, so it terminates even if the
// usage declarations form an (illegal) cycle. An unknown nodeID is logged
// and reported as not an ancestor.
func (idx *groupingIndex) IsAncestorOf(candidateID, nodeID string) bool {
	node, ok := idx.hierarchy[nodeID]
	if !ok {
		log.Warningf("grouping hierarchy node not found for %s", nodeID)
		return false
	}

	visited := map[string]bool{nodeID: true}
	stack := []*hierarchyNode{node}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for id, parent := range cur.parents {
			if id == candidateID {
				return true
			}
			if !visited[id] {
				visited[id] = true
				stack = append(stack, parent)
			}
		}
	}
	return false
}

// IDs returns the known grouping ids in sorted order.
func (idx *groupingIndex) IDs() []string {
	ids := maps.Keys(idx.entries)
	sort.Strings(ids)
	return ids
}
