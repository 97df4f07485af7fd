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

	"github.com/openyang/swaggergen/swagger"
)

// unpackingBuilder is the strategy that ignores grouping reuse: content that
// a node received through a uses statement is emitted inline as if it had
// been declared directly on the node. The schema compiler has already
// expanded every uses into the node's children, so the builder reads the
// expanded tree as-is.
type unpackingBuilder struct {
	objectBuilder
}

func newUnpackingBuilder(doc *swagger.Swagger, types *typeResolver) *unpackingBuilder {
	return &unpackingBuilder{objectBuilder: newObjectBuilder(doc, types)}
}

// ProcessModule is a no-op: the strategy needs no whole-module view.
func (b *unpackingBuilder) ProcessModule(module *yang.Entry) {}

// AddModel registers the definition of the supplied node, with one property
// per expanded data child.
func (b *unpackingBuilder) AddModel(e *yang.Entry) {
	if b.added[e] {
		return
	}
	obj := swagger.NewObject()
	obj.Description = e.Description
	b.buildProperties(e, nil, obj, b.ObjectSchema)
	b.register(e, obj)
}
