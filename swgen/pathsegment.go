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
	"fmt"
	"strings"

	"github.com/openconfig/goyang/pkg/yang"

	"github.com/openyang/swaggergen/util"
)

// PathSegment is one level of the generated path hierarchy. Segments form an
// immutable persistent chain: creating a child never mutates its parent, and
// discarding a child is simply resuming the parent reference that was
// captured before the child was created. The walker relies on this to keep
// sibling subtrees from ever observing each other's traversal state.
type PathSegment struct {
	parent   *PathSegment
	name     string
	module   string
	readOnly bool
	list     *yang.Entry
	params   []*PathParam
}

// PathParam is a path parameter contributed by a keyed-list segment. Entry
// is the key leaf the parameter is derived from.
type PathParam struct {
	Name  string
	Entry *yang.Entry
}

// NewRootSegment returns the root of a new path segment chain. The root
// itself does not contribute a path element.
func NewRootSegment() *PathSegment {
	return &PathSegment{}
}

// Child returns a new segment below p for a container-style node.
func (p *PathSegment) Child(name, module string, readOnly bool) *PathSegment {
	return &PathSegment{parent: p, name: name, module: module, readOnly: readOnly}
}

// ListChild returns a new segment below p for the supplied keyed list node.
// The segment carries one path parameter per list key; parameter names are
// made unique within the chain so that nested lists sharing a key leaf name
// do not collide.
func (p *PathSegment) ListChild(name, module string, readOnly bool, list *yang.Entry) *PathSegment {
	s := &PathSegment{parent: p, name: name, module: module, readOnly: readOnly, list: list}

	used := map[string]bool{}
	for _, param := range p.Params() {
		used[param.Name] = true
	}
	for _, key := range util.ListKeyFields(list) {
		pn := key
		if used[pn] {
			pn = fmt.Sprintf("%s-%s", name, key)
		}
		for used[pn] {
			pn += "_"
		}
		used[pn] = true
		s.params = append(s.params, &PathParam{Name: pn, Entry: list.Dir[key]})
	}
	return s
}

// Parent returns the segment that p was created from, or nil for the root.
func (p *PathSegment) Parent() *PathSegment {
	return p.parent
}

// Name returns the local name of the segment.
func (p *PathSegment) Name() string {
	return p.name
}

// Module returns the name of the module that owns the segment.
func (p *PathSegment) Module() string {
	return p.module
}

// IsRoot reports whether p is the root of its chain.
func (p *PathSegment) IsRoot() bool {
	return p.parent == nil
}

// Depth returns the number of non-root segments in the chain.
func (p *PathSegment) Depth() int {
	d := 0
	for s := p; s != nil && !s.IsRoot(); s = s.parent {
		d++
	}
	return d
}

// ReadOnly returns the effective read-only flag of the segment: a segment is
// read-only when it or any of its ancestors is read-only. Operational state
// in the schema propagates down the tree, so a writeable node below a
// read-only one is still unreachable for writes.
func (p *PathSegment) ReadOnly() bool {
	for s := p; s != nil; s = s.parent {
		if s.readOnly {
			return true
		}
	}
	return false
}

// Params returns the path parameters of the chain from the root to p, in
// root-first order.
func (p *PathSegment) Params() []*PathParam {
	if p == nil || p.IsRoot() {
		return nil
	}
	return append(p.parent.Params(), p.params...)
}

// Path renders the chain from the root to p as a path string. Elements are
// qualified with their module name when it differs from the parent
// segment's, following RESTCONF data resource naming; keyed-list segments
// render their parameters in template form, e.g. "/mod:interfaces/interface={name}".
func (p *PathSegment) Path() string {
	if p == nil || p.IsRoot() {
		return ""
	}
	elem := p.name
	if p.module != "" && p.module != p.parent.module {
		elem = p.module + ":" + p.name
	}
	if len(p.params) > 0 {
		var keys []string
		for _, param := range p.params {
			keys = append(keys, "{"+param.Name+"}")
		}
		elem += "=" + strings.Join(keys, ",")
	}
	return p.parent.Path() + "/" + elem
}
