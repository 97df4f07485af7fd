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
	"bytes"
	"fmt"
	"strings"

	"github.com/openconfig/gnmi/ctree"
	"github.com/openconfig/goyang/pkg/yang"

	"github.com/openyang/swaggergen/util"
)

// schemaTree stores the leaves of all modules participating in a generation
// run, so that leafref paths can be resolved to their target entries even
// when the target lives in a module that is not being generated.
type schemaTree struct {
	tree *ctree.Tree
}

// buildSchemaTree maps a set of module entries into a schemaTree. Only leaf
// and leaf-list values are added, since these are the only entities that can
// be referenced by XPATH expressions within a YANG schema. It returns an
// error if there is duplication within the set of entries.
func buildSchemaTree(modules []*yang.Entry) (*schemaTree, error) {
	t := &ctree.Tree{}
	for _, m := range modules {
		for _, e := range util.Children(m) {
			if !e.IsDir() {
				if err := t.Add([]string{e.Name}, e); err != nil {
					return nil, err
				}
				continue
			}
			if err := schemaTreeChildrenAdd(t, e); err != nil {
				return nil, err
			}
		}
	}
	return &schemaTree{tree: t}, nil
}

// schemaTreeChildrenAdd adds the children of the supplied yang.Entry to the
// supplied ctree.Tree recursively. Entries are registered under their
// module-relative path.
func schemaTreeChildrenAdd(t *ctree.Tree, e *yang.Entry) error {
	for _, ch := range util.Children(e) {
		chPath := strings.Split(ch.Path(), "/")
		// chPath is of the form []string{"", "module", "entity", "child"}.
		if !ch.IsDir() {
			if err := t.Add(chPath[2:], ch); err != nil {
				return err
			}
			continue
		}
		if err := schemaTreeChildrenAdd(t, ch); err != nil {
			return err
		}
	}
	return nil
}

// resolveLeafrefTarget takes an input leafref path and the entry that
// declared it, and returns the entry that the path refers to. An error is
// returned when the path does not name a leaf known to the tree.
func (st *schemaTree) resolveLeafrefTarget(path string, contextEntry *yang.Entry) (*yang.Entry, error) {
	if st == nil || st.tree == nil {
		return nil, fmt.Errorf("could not map leafref path %v, from node %s: no schema tree available", path, contextEntry.Name)
	}

	fixedPath, err := fixSchemaTreePath(path, contextEntry)
	if err != nil {
		return nil, err
	}

	e := st.tree.GetLeafValue(fixedPath)
	if e == nil {
		return nil, fmt.Errorf("could not resolve leafref path %v from %v, tree: %v", fixedPath, contextEntry.Path(), st.tree)
	}

	target, ok := e.(*yang.Entry)
	if !ok {
		return nil, fmt.Errorf("invalid element returned from schema tree, must be a yang.Entry for path %v from %v", path, contextEntry.Path())
	}
	return target, nil
}

// splitXPATHParts splits a YANG XPATH into a slice of strings, where each
// element in the slice is a part of the path as would be divided by a /
// within the XPATH. If attributes of a path element are specified, these are
// removed from the path (e.g., /interfaces/interface[name="eth0"] becomes
// []string{"interfaces", "interface"}).
func splitXPATHParts(path string) []string {
	// We cannot simply split on "/" since the path that we are supplied
	// with may be an XPATH that includes a / within a predicate.
	var parts []string
	var buf bytes.Buffer
	var inKey bool
	for _, c := range path {
		switch c {
		case '/':
			if !inKey {
				parts = append(parts, buf.String())
				buf.Reset()
				continue
			}
		case '[':
			inKey = true
			continue
		case ']':
			inKey = false
			continue
		}
		// Make sure we don't append parts of the key to the path.
		if !inKey {
			buf.WriteRune(c)
		}
	}

	if buf.Len() != 0 {
		parts = append(parts, buf.String())
	}
	return parts
}

// removeXPATHNamespaces removes namespaces from a slice of strings that
// represents a split XPATH, i.e., []string{"oc-if:interfaces",
// "oc-if:interface"} becomes []string{"interfaces", "interface"}. It returns
// an error if an invalid path element is encountered.
func removeXPATHNamespaces(path []string) ([]string, error) {
	var fixedParts []string
	for _, p := range path {
		if strings.ContainsRune(p, ':') {
			sp := strings.Split(p, ":")
			if len(sp) != 2 {
				return nil, fmt.Errorf("invalid path element that contains multiple namespace specfiers: %v", p)
			}
			p = sp[1]
		}
		fixedParts = append(fixedParts, p)
	}
	return fixedParts, nil
}

// fixSchemaTreePath takes an input path represented as a YANG schema path -
// i.e., /a/b/c/d - and sanitises it for use in lookups within the schema
// tree. This includes removing namespace prefixes from nodes and fully
// resolving relative paths.
func fixSchemaTreePath(path string, caller *yang.Entry) ([]string, error) {
	parts := splitXPATHParts(path)

	parts, err := removeXPATHNamespaces(parts)
	if err != nil {
		return nil, err
	}

	if parts[0] != ".." {
		if parts[0] == "" {
			return parts[1:], nil
		}
		return parts, nil
	}

	if caller == nil {
		return nil, fmt.Errorf("calling node must be specified when mapping relative path: %v", parts)
	}

	cpathparts := strings.Split(schemaTreePath(caller), "/")
	if len(cpathparts) < 2 {
		// This caller was a module, which is not a valid context for an XPATH.
		return nil, fmt.Errorf("invalid calling node with path %v, was a module: %v", caller.Path(), path)
	}
	callerPath := cpathparts[2:]
	var remainingPath []string
	for _, p := range parts {
		// If the element is ".." then we need to remove an element from
		// the end of the callerPath.
		if p == ".." {
			if len(callerPath) == 0 {
				// We are at the stage where we are being asked to recurse above
				// the level of the caller, which is an error.
				return nil, fmt.Errorf("invalid path specified %v, for caller %v, tries to recurse above the root", path, caller.Path())
			}
			callerPath = callerPath[:len(callerPath)-1]
			continue
		}
		remainingPath = append(remainingPath, p)
	}
	parts = append(callerPath, remainingPath...)

	return parts, nil
}

// schemaTreePath returns the schema tree path of the supplied yang.Entry
// skipping any nodes that are themselves not in the data tree (choice and
// case). The path is returned as a string prefixed with the module name,
// similarly to the behaviour of (*yang.Entry).Path().
func schemaTreePath(e *yang.Entry) string {
	var pp []string
	cur := e
	for ; cur.Parent != nil; cur = cur.Parent {
		if !util.IsChoiceOrCase(cur) {
			pp = append(pp, cur.Name)
		}
	}
	pp = append(pp, cur.Name)

	// Reverse, since the path was appended leaf-first.
	for i := len(pp)/2 - 1; i >= 0; i-- {
		o := len(pp) - 1 - i
		pp[i], pp[o] = pp[o], pp[i]
	}
	return "/" + strings.Join(pp, "/")
}
