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

// Package genutil implements helpers used by the generator that are not
// tied to the content of the output document.
package genutil

import (
	"fmt"

	"github.com/openconfig/goyang/pkg/yang"
)

// definingModule returns the name of the module that defined the yang.Node
// supplied. If node is within a submodule, the parent module is returned.
func definingModule(node yang.Node) yang.Node {
	var definingMod yang.Node
	definingMod = yang.RootNode(node)
	if definingMod.Kind() == "submodule" {
		// A submodule must always be a *yang.Module.
		mod := definingMod.(*yang.Module)
		definingMod = mod.BelongsTo
	}
	return definingMod
}

// ParentModuleName returns the name of the module or submodule that defined
// the supplied node.
func ParentModuleName(node yang.Node) string {
	return definingModule(node).NName()
}

// OwningModule returns the name of the module that defines the supplied
// entry. It prefers the AST node recorded on the entry, since entries that
// were spliced into a module by augmentation retain their defining module
// there; entries without an AST node fall back to the name of the root of
// their entry tree.
func OwningModule(e *yang.Entry) string {
	if e == nil {
		return ""
	}
	if e.Node != nil {
		return ParentModuleName(e.Node)
	}
	root := e
	for root.Parent != nil {
		root = root.Parent
	}
	return root.Name
}

// MakeNameUnique makes the name specified as an argument unique based on the
// names already defined within a particular context which are specified
// within the definedNames map. If the name has already been defined, an
// underscore is appended to the name until it is unique.
func MakeNameUnique(name string, definedNames map[string]bool) string {
	for {
		if _, nameUsed := definedNames[name]; !nameUsed {
			definedNames[name] = true
			return name
		}
		name = fmt.Sprintf("%s_", name)
	}
}
