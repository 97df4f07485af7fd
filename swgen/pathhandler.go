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

// PathHandler receives one call per generated path: Path for every data node
// that has a path of its own, RPC for every operation. Implementations write
// the corresponding entries into the output document.
type PathHandler interface {
	// Path registers the operations available on the data node e, whose
	// position is described by seg.
	Path(e *yang.Entry, seg *PathSegment)
	// RPC registers the invocation of the supplied RPC node.
	RPC(rpc *yang.Entry, seg *PathSegment)
}

// PathHandlerBuilder creates a PathHandler bound to the document being
// generated. Configure is called once per generation run, after the
// data-object builder has been chosen.
type PathHandlerBuilder interface {
	Configure(doc *swagger.Swagger, objects DataObjectBuilder) PathHandler
}

// TagGenerator contributes tags to the operations generated for a node. The
// returned tags are appended to the handler's own.
type TagGenerator func(e *yang.Entry, seg *PathSegment) []string
