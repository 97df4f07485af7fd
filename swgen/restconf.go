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

	"github.com/openconfig/goyang/pkg/yang"

	"github.com/openyang/swaggergen/swagger"
)

// RESTCONFPathHandlerBuilder builds the default path handler, which lays
// paths out following the RESTCONF resource model: data resources under
// /data, operation resources under /operations.
type RESTCONFPathHandlerBuilder struct {
	fullCRUD      bool
	tagGenerators []TagGenerator
}

// NewRESTCONFPathHandlerBuilder returns a builder for the RESTCONF path
// handler with full CRUD generation enabled.
func NewRESTCONFPathHandlerBuilder() *RESTCONFPathHandlerBuilder {
	return &RESTCONFPathHandlerBuilder{fullCRUD: true}
}

// WithoutFullCRUD restricts generation to read operations: writeable nodes
// get a GET like everything else, but no POST, PUT or DELETE.
func (b *RESTCONFPathHandlerBuilder) WithoutFullCRUD() *RESTCONFPathHandlerBuilder {
	b.fullCRUD = false
	return b
}

// WithTagGenerators adds tag generators whose output is appended to the tags
// of every generated operation.
func (b *RESTCONFPathHandlerBuilder) WithTagGenerators(gens ...TagGenerator) *RESTCONFPathHandlerBuilder {
	b.tagGenerators = append(b.tagGenerators, gens...)
	return b
}

// Configure implements PathHandlerBuilder.
func (b *RESTCONFPathHandlerBuilder) Configure(doc *swagger.Swagger, objects DataObjectBuilder) PathHandler {
	return &restconfPathHandler{
		doc:           doc,
		objects:       objects,
		fullCRUD:      b.fullCRUD,
		tagGenerators: b.tagGenerators,
	}
}

type restconfPathHandler struct {
	doc           *swagger.Swagger
	objects       DataObjectBuilder
	fullCRUD      bool
	tagGenerators []TagGenerator
}

// Path implements PathHandler. Every node gets a GET; nodes whose segment
// chain is writeable also get POST, PUT and DELETE unless CRUD generation
// was switched off.
func (h *restconfPathHandler) Path(e *yang.Entry, seg *PathSegment) {
	params := h.pathParams(seg)
	tags := h.tags(e, seg)
	schema := h.objects.ObjectSchema(e)

	p := &swagger.Path{
		Get: &swagger.Operation{
			Summary:     fmt.Sprintf("returns %s", e.Name),
			Description: e.Description,
			Tags:        tags,
			Parameters:  params,
			Responses: map[string]*swagger.Response{
				"200": {Description: fmt.Sprintf("%s object", e.Name), Schema: schema},
			},
		},
	}

	if h.fullCRUD && !seg.ReadOnly() {
		body := &swagger.Parameter{
			Name:     fmt.Sprintf("%s.body-param", e.Name),
			In:       "body",
			Required: true,
			Schema:   schema,
		}
		p.Post = &swagger.Operation{
			Summary:    fmt.Sprintf("creates %s", e.Name),
			Tags:       tags,
			Parameters: append(append([]*swagger.Parameter{}, params...), body),
			Responses: map[string]*swagger.Response{
				"201": {Description: "Object created"},
				"409": {Description: "Object already exists"},
			},
		}
		p.Put = &swagger.Operation{
			Summary:    fmt.Sprintf("creates or updates %s", e.Name),
			Tags:       tags,
			Parameters: append(append([]*swagger.Parameter{}, params...), body),
			Responses: map[string]*swagger.Response{
				"201": {Description: "Object created"},
				"204": {Description: "Object modified"},
			},
		}
		p.Delete = &swagger.Operation{
			Summary:    fmt.Sprintf("removes %s", e.Name),
			Tags:       tags,
			Parameters: params,
			Responses: map[string]*swagger.Response{
				"204": {Description: "Object deleted"},
			},
		}
	}

	h.doc.Paths.Set("/data"+seg.Path(), p)
}

// RPC implements PathHandler. Operations are invoked with POST; the input
// tree, when present, travels as the request body, and the output tree, when
// present, is the 200 response schema.
func (h *restconfPathHandler) RPC(rpc *yang.Entry, seg *PathSegment) {
	op := &swagger.Operation{
		Summary:     fmt.Sprintf("invokes %s", rpc.Name),
		Description: rpc.Description,
		Tags:        h.tags(rpc, seg),
	}

	if in := rpc.RPC.Input; in != nil && len(in.Dir) > 0 {
		op.Parameters = []*swagger.Parameter{{
			Name:     "input",
			In:       "body",
			Required: true,
			Schema:   h.objects.ObjectSchema(in),
		}}
	}

	if out := rpc.RPC.Output; out != nil && len(out.Dir) > 0 {
		op.Responses = map[string]*swagger.Response{
			"200": {Description: "Correct response", Schema: h.objects.ObjectSchema(out)},
		}
	} else {
		op.Responses = map[string]*swagger.Response{
			"204": {Description: "No content"},
		}
	}

	h.doc.Paths.Set("/operations"+seg.Path(), &swagger.Path{Post: op})
}

// pathParams maps the key parameters of the segment chain onto path
// parameters.
func (h *restconfPathHandler) pathParams(seg *PathSegment) []*swagger.Parameter {
	var params []*swagger.Parameter
	for _, p := range seg.Params() {
		typ, format := paramType(p.Entry)
		param := &swagger.Parameter{
			Name:     p.Name,
			In:       "path",
			Required: true,
			Type:     typ,
			Format:   format,
		}
		if p.Entry != nil {
			param.Description = p.Entry.Description
		}
		params = append(params, param)
	}
	return params
}

// tags returns the operation tags for the supplied node: the name of the
// module the path enters through, plus any generator contributions.
func (h *restconfPathHandler) tags(e *yang.Entry, seg *PathSegment) []string {
	top := seg
	for !top.IsRoot() && !top.Parent().IsRoot() {
		top = top.Parent()
	}
	tags := []string{top.Module()}
	for _, gen := range h.tagGenerators {
		tags = append(tags, gen(e, seg)...)
	}
	return tags
}
