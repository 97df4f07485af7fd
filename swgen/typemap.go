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
	"sort"

	"github.com/openconfig/goyang/pkg/yang"

	"github.com/openyang/swaggergen/swagger"
	"github.com/openyang/swaggergen/util"
)

// typeResolver maps YANG leaf types onto Swagger scalar schemas. Leafref
// types are chased through the schema tree until a concrete type is found.
type typeResolver struct {
	schematree *schemaTree
}

// resolveType returns the scalar schema for the type of the supplied leaf or
// leaf-list entry. When the leaf is a leafref, the schema of the referred
// leaf is returned and the original path is recorded on the schema as a
// vendor extension. An error is returned for a leafref whose target cannot
// be found, or a chain of leafrefs that never reaches a concrete type.
func (r *typeResolver) resolveType(e *yang.Entry) (*swagger.Schema, error) {
	if e.Type == nil {
		return nil, fmt.Errorf("entry %s was a leaf with a nil type", e.Path())
	}

	target := e
	var refPath string
	seen := map[string]bool{}
	for util.IsLeafRef(target) {
		if seen[target.Path()] {
			return nil, fmt.Errorf("leafref %s forms a circular reference via %s", e.Path(), target.Path())
		}
		seen[target.Path()] = true

		if refPath == "" {
			refPath = target.Type.Path
		}
		resolved, err := r.schematree.resolveLeafrefTarget(target.Type.Path, target)
		if err != nil {
			return nil, err
		}
		if resolved.Type == nil {
			return nil, fmt.Errorf("leafref %s resolved to non-leaf entry %s", e.Path(), resolved.Path())
		}
		target = resolved
	}

	s, err := scalarSchema(target)
	if err != nil {
		return nil, err
	}
	s.XPath = refPath
	return s, nil
}

// scalarSchema maps the concrete type of the supplied entry onto a Swagger
// scalar schema.
func scalarSchema(e *yang.Entry) (*swagger.Schema, error) {
	t := e.Type
	switch t.Kind {
	case yang.Yint8, yang.Yint16, yang.Yint32, yang.Yuint8, yang.Yuint16, yang.Yuint32:
		return &swagger.Schema{Type: "integer", Format: "int32"}, nil
	case yang.Yint64, yang.Yuint64:
		return &swagger.Schema{Type: "integer", Format: "int64"}, nil
	case yang.Ydecimal64:
		return &swagger.Schema{Type: "number", Format: "double"}, nil
	case yang.Ystring:
		return &swagger.Schema{Type: "string"}, nil
	case yang.Ybool:
		return &swagger.Schema{Type: "boolean"}, nil
	case yang.Yempty:
		// Per RFC 6020, empty types are represented as a boolean in
		// generated interfaces.
		return &swagger.Schema{Type: "boolean"}, nil
	case yang.Yenum:
		s := &swagger.Schema{Type: "string"}
		if t.Enum != nil {
			s.Enum = enumNames(t.Enum)
		}
		return s, nil
	case yang.Yidentityref:
		return &swagger.Schema{Type: "string"}, nil
	case yang.Ybinary:
		return &swagger.Schema{Type: "string", Format: "binary"}, nil
	case yang.Ybits:
		return &swagger.Schema{Type: "string"}, nil
	case yang.Yunion:
		// Unions collapse onto a string, which every member type has a
		// canonical representation in.
		return &swagger.Schema{Type: "string"}, nil
	case yang.YinstanceIdentifier:
		return &swagger.Schema{Type: "string"}, nil
	default:
		return nil, fmt.Errorf("unimplemented type %s for entry %s", t.Kind, e.Path())
	}
}

// enumNames returns the names of the enumeration ordered by value, which is
// the order they were declared in.
func enumNames(e *yang.EnumType) []string {
	valueMap := e.ValueMap()
	var values []int
	for v := range valueMap {
		values = append(values, int(v))
	}
	sort.Ints(values)
	var names []string
	for _, v := range values {
		names = append(names, valueMap[int64(v)])
	}
	return names
}

// paramType returns the inline parameter type and format for the supplied
// key leaf, used for path parameters, which cannot carry a schema. Leafrefs
// degrade to a string rather than failing, since a key that is a leafref is
// resolvable only with the full document context.
func paramType(e *yang.Entry) (string, string) {
	if e == nil || e.Type == nil {
		return "string", ""
	}
	s, err := scalarSchema(e)
	if err != nil {
		return "string", ""
	}
	return s.Type, s.Format
}
