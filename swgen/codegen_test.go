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
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kr/pretty"
	"github.com/openconfig/goyang/pkg/yang"

	"github.com/openyang/swaggergen/swagger"
)

// deviceModule builds the canonical test schema: a device module with an
// interface list, a read-only state subtree and a reset RPC.
func deviceModule() *yang.Entry {
	mod := &yang.Entry{
		Name:        "device",
		Kind:        yang.DirectoryEntry,
		Description: "Device management",
		Dir: map[string]*yang.Entry{
			"interfaces": {
				Name: "interfaces",
				Kind: yang.DirectoryEntry,
				Dir: map[string]*yang.Entry{
					"interface": {
						Name:     "interface",
						Kind:     yang.DirectoryEntry,
						ListAttr: &yang.ListAttr{},
						Key:      "name",
						Dir: map[string]*yang.Entry{
							"name": leaf("name", yang.Ystring),
							"mtu":  leaf("mtu", yang.Yuint16),
							"state": {
								Name:   "state",
								Kind:   yang.DirectoryEntry,
								Config: yang.TSFalse,
								Dir: map[string]*yang.Entry{
									"oper-status": leaf("oper-status", yang.Ystring),
								},
							},
						},
					},
				},
			},
			"reset": {
				Name: "reset",
				Kind: yang.DirectoryEntry,
				RPC: &yang.RPCEntry{
					Input: &yang.Entry{
						Name: "input",
						Kind: yang.DirectoryEntry,
						Dir:  map[string]*yang.Entry{"delay": leaf("delay", yang.Yuint32)},
					},
					Output: &yang.Entry{
						Name: "output",
						Kind: yang.DirectoryEntry,
						Dir:  map[string]*yang.Entry{"result": leaf("result", yang.Ystring)},
					},
				},
			},
		},
	}
	return wireParents(mod)
}

func TestGenerateEndToEnd(t *testing.T) {
	g, err := NewGenerator([]*yang.Entry{deviceModule()}, []string{"device"}, nil)
	if err != nil {
		t.Fatalf("NewGenerator: unexpected error: %v", err)
	}
	doc, errs := g.Generate()
	if len(errs) > 0 {
		t.Fatalf("Generate: unexpected errors: %v", errs)
	}

	if doc.Swagger != "2.0" {
		t.Errorf("swagger version: got %q, want %q", doc.Swagger, "2.0")
	}
	if got, want := doc.Host, "localhost:8080"; got != want {
		t.Errorf("host: got %q, want %q", got, want)
	}
	if got, want := doc.BasePath, "/restconf"; got != want {
		t.Errorf("basePath: got %q, want %q", got, want)
	}
	if got, want := doc.Info.Title, "device API"; got != want {
		t.Errorf("info title: got %q, want %q", got, want)
	}
	if got, want := doc.Info.Description, "Device management"; got != want {
		t.Errorf("info description: got %q, want %q", got, want)
	}

	wantPaths := []string{
		"/data/device:interfaces",
		"/data/device:interfaces/interface={name}",
		"/data/device:interfaces/interface={name}/state",
		"/operations/device:reset",
	}
	have := map[string]bool{}
	for _, k := range doc.Paths.Keys() {
		have[k] = true
	}
	for _, want := range wantPaths {
		if !have[want] {
			t.Errorf("missing path %q, have %v", want, doc.Paths.Keys())
		}
	}

	for _, want := range []string{
		"device.interfaces",
		"device.interfaces.interface",
		"device.interfaces.interface.state",
		"device.reset.input",
		"device.reset.output",
	} {
		if _, ok := doc.Definitions.Get(want); !ok {
			t.Errorf("missing definition %q, have %v", want, doc.Definitions.Keys())
		}
	}

	// The keyed list path carries its key as a path parameter on every
	// operation and supports full CRUD.
	ifPath, _ := doc.Paths.Get("/data/device:interfaces/interface={name}")
	if ifPath.Get == nil || ifPath.Post == nil || ifPath.Put == nil || ifPath.Delete == nil {
		t.Fatalf("interface path: expected full CRUD, got %s", pretty.Sprint(ifPath))
	}
	var param *swagger.Parameter
	for _, p := range ifPath.Get.Parameters {
		if p.In == "path" {
			param = p
		}
	}
	if param == nil || param.Name != "name" || !param.Required || param.Type != "string" {
		t.Errorf("interface path parameter: got %s", pretty.Sprint(ifPath.Get.Parameters))
	}

	// The read-only subtree gets no write operations.
	statePath, _ := doc.Paths.Get("/data/device:interfaces/interface={name}/state")
	if statePath.Get == nil {
		t.Errorf("state path: missing GET")
	}
	if statePath.Post != nil || statePath.Put != nil || statePath.Delete != nil {
		t.Errorf("state path: unexpected write operations: %s", pretty.Sprint(statePath))
	}

	// The RPC is a POST carrying input as body and output as response.
	rpcPath, _ := doc.Paths.Get("/operations/device:reset")
	if rpcPath.Post == nil {
		t.Fatalf("rpc path: missing POST")
	}
	if len(rpcPath.Post.Parameters) != 1 || rpcPath.Post.Parameters[0].In != "body" ||
		rpcPath.Post.Parameters[0].Schema.RefName() != "device.reset.input" {
		t.Errorf("rpc input: got %s", pretty.Sprint(rpcPath.Post.Parameters))
	}
	if resp := rpcPath.Post.Responses["200"]; resp == nil || resp.Schema.RefName() != "device.reset.output" {
		t.Errorf("rpc output: got %s", pretty.Sprint(rpcPath.Post.Responses))
	}
}

func TestGenerateDepthBound(t *testing.T) {
	tests := []struct {
		name        string
		inDepth     int
		wantPaths   []string
		rejectPaths []string
	}{{
		name:    "depth one",
		inDepth: 1,
		wantPaths: []string{
			"/data/device:interfaces",
			"/operations/device:reset",
		},
		rejectPaths: []string{
			"/data/device:interfaces/interface={name}",
			"/data/device:interfaces/interface={name}/state",
		},
	}, {
		name:    "depth two",
		inDepth: 2,
		wantPaths: []string{
			"/data/device:interfaces",
			"/data/device:interfaces/interface={name}",
		},
		rejectPaths: []string{
			"/data/device:interfaces/interface={name}/state",
		},
	}, {
		name:    "zero means unbounded",
		inDepth: 0,
		wantPaths: []string{
			"/data/device:interfaces/interface={name}/state",
		},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator([]*yang.Entry{deviceModule()}, []string{"device"}, &Config{MaxDepth: tt.inDepth})
			if err != nil {
				t.Fatalf("NewGenerator: unexpected error: %v", err)
			}
			doc, errs := g.Generate()
			if len(errs) > 0 {
				t.Fatalf("Generate: unexpected errors: %v", errs)
			}

			have := map[string]bool{}
			for _, k := range doc.Paths.Keys() {
				have[k] = true
			}
			for _, want := range tt.wantPaths {
				if !have[want] {
					t.Errorf("missing path %q, have %v", want, doc.Paths.Keys())
				}
			}
			for _, reject := range tt.rejectPaths {
				if have[reject] {
					t.Errorf("unexpected path %q beyond the depth bound", reject)
				}
			}
		})
	}
}

// TestGenerateTruncationClosure checks that a document produced under a
// depth bound has no references to definitions that were cut off.
func TestGenerateTruncationClosure(t *testing.T) {
	g, err := NewGenerator([]*yang.Entry{deviceModule()}, []string{"device"}, &Config{MaxDepth: 2})
	if err != nil {
		t.Fatalf("NewGenerator: unexpected error: %v", err)
	}
	doc, errs := g.Generate()
	if len(errs) > 0 {
		t.Fatalf("Generate: unexpected errors: %v", errs)
	}

	known := map[string]bool{}
	for _, n := range doc.Definitions.Keys() {
		known[n] = true
	}
	check := func(s *swagger.Schema) {
		for _, ref := range s.References() {
			if !known[ref] {
				t.Errorf("dangling reference to %q", ref)
			}
		}
	}
	forEachSchema(doc, check)

	// The truncated state subtree degrades to an anonymous object, which
	// keeps the read-only marker of the node it stands in for.
	iface, _ := doc.Definitions.Get("device.interfaces.interface")
	want := &swagger.Schema{Type: "object", ReadOnly: true}
	if diff := cmp.Diff(want, iface.Properties["state"]); diff != "" {
		t.Errorf("state property: diff(-want,+got):\n%s", diff)
	}
}

func TestGenerateIdempotence(t *testing.T) {
	g, err := NewGenerator([]*yang.Entry{deviceModule()}, []string{"device"}, nil)
	if err != nil {
		t.Fatalf("NewGenerator: unexpected error: %v", err)
	}

	marshal := func() string {
		doc, errs := g.Generate()
		if len(errs) > 0 {
			t.Fatalf("Generate: unexpected errors: %v", errs)
		}
		bs, err := json.Marshal(doc)
		if err != nil {
			t.Fatalf("json.Marshal: unexpected error: %v", err)
		}
		return string(bs)
	}

	first := marshal()
	second := marshal()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated generation differs, diff(-first,+second):\n%s", diff)
	}
}

func TestNewGeneratorErrors(t *testing.T) {
	mod := deviceModule()
	tests := []struct {
		name          string
		inModules     []*yang.Entry
		inGenerate    []string
		inConfig      *Config
		wantErrSubstr string
	}{{
		name:          "no modules",
		inModules:     nil,
		inGenerate:    []string{"device"},
		wantErrSubstr: "no YANG modules",
	}, {
		name:          "no generated modules",
		inModules:     []*yang.Entry{mod},
		inGenerate:    nil,
		wantErrSubstr: "no modules selected",
	}, {
		name:          "unknown module",
		inModules:     []*yang.Entry{mod},
		inGenerate:    []string{"nonexistent"},
		wantErrSubstr: "not found",
	}, {
		name:          "unknown strategy",
		inModules:     []*yang.Entry{mod},
		inGenerate:    []string{"device"},
		inConfig:      &Config{Strategy: "magic"},
		wantErrSubstr: "unknown strategy",
	}, {
		name:          "unknown format",
		inModules:     []*yang.Entry{mod},
		inGenerate:    []string{"device"},
		inConfig:      &Config{Format: "xml"},
		wantErrSubstr: "unknown output format",
	}, {
		name:          "unknown element class",
		inModules:     []*yang.Entry{mod},
		inGenerate:    []string{"device"},
		inConfig:      &Config{Elements: []Element{"notifications"}},
		wantErrSubstr: "unknown element class",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(tt.inModules, tt.inGenerate, tt.inConfig)
			if err == nil || !strings.Contains(err.Error(), tt.wantErrSubstr) {
				t.Errorf("NewGenerator: got error %v, want substring %q", err, tt.wantErrSubstr)
			}
		})
	}
}

func TestGenerateElementSelection(t *testing.T) {
	tests := []struct {
		name       string
		inElements []Element
		wantData   bool
		wantRPC    bool
	}{{
		name:       "data only",
		inElements: []Element{ElementData},
		wantData:   true,
	}, {
		name:       "rpc only",
		inElements: []Element{ElementRPC},
		wantRPC:    true,
	}, {
		name:       "both by default",
		inElements: nil,
		wantData:   true,
		wantRPC:    true,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator([]*yang.Entry{deviceModule()}, []string{"device"}, &Config{Elements: tt.inElements})
			if err != nil {
				t.Fatalf("NewGenerator: unexpected error: %v", err)
			}
			doc, errs := g.Generate()
			if len(errs) > 0 {
				t.Fatalf("Generate: unexpected errors: %v", errs)
			}

			_, gotData := doc.Paths.Get("/data/device:interfaces")
			_, gotRPC := doc.Paths.Get("/operations/device:reset")
			if gotData != tt.wantData {
				t.Errorf("data path present: got %v, want %v", gotData, tt.wantData)
			}
			if gotRPC != tt.wantRPC {
				t.Errorf("rpc path present: got %v, want %v", gotRPC, tt.wantRPC)
			}
		})
	}
}

// TestGenerateForeignModuleSkip checks that nodes augmented in from a module
// outside the generated set produce no paths or definitions, whether they sit
// at the top level of the tree or nested below a generated container.
func TestGenerateForeignModuleSkip(t *testing.T) {
	mod := deviceModule()
	foreign := &yang.Entry{Name: "other-mod", Kind: yang.DirectoryEntry, Dir: map[string]*yang.Entry{}}
	augmented := &yang.Entry{
		Name:   "augmented",
		Kind:   yang.DirectoryEntry,
		Dir:    map[string]*yang.Entry{"x": leaf("x", yang.Ystring)},
		Parent: foreign,
	}
	for _, ch := range augmented.Dir {
		ch.Parent = augmented
	}
	mod.Dir["augmented"] = augmented

	// An augmentation deeper in the tree keeps its defining module on the
	// AST node while its Parent points into the tree it was spliced into.
	interfaces := mod.Dir["interfaces"]
	nested := &yang.Entry{
		Name:   "extra",
		Kind:   yang.DirectoryEntry,
		Node:   &yang.Module{Name: "other-mod"},
		Dir:    map[string]*yang.Entry{"y": leaf("y", yang.Ystring)},
		Parent: interfaces,
	}
	for _, ch := range nested.Dir {
		ch.Parent = nested
	}
	interfaces.Dir["extra"] = nested

	g, err := NewGenerator([]*yang.Entry{mod, foreign}, []string{"device"}, nil)
	if err != nil {
		t.Fatalf("NewGenerator: unexpected error: %v", err)
	}
	doc, errs := g.Generate()
	if len(errs) > 0 {
		t.Fatalf("Generate: unexpected errors: %v", errs)
	}
	for _, k := range doc.Paths.Keys() {
		if strings.Contains(k, "augmented") || strings.Contains(k, "extra") {
			t.Errorf("unexpected path %q for foreign-module node", k)
		}
	}
	for _, n := range doc.Definitions.Keys() {
		if strings.Contains(n, "augmented") || strings.Contains(n, "extra") {
			t.Errorf("unexpected definition %q for foreign-module node", n)
		}
	}
}

// choiceModule builds a module whose top container holds a choice with a
// single case wrapping an inner container.
func choiceModule() *yang.Entry {
	mod := &yang.Entry{
		Name: "net",
		Kind: yang.DirectoryEntry,
		Dir: map[string]*yang.Entry{
			"top": {
				Name: "top",
				Kind: yang.DirectoryEntry,
				Dir: map[string]*yang.Entry{
					"transport": {
						Name: "transport",
						Kind: yang.ChoiceEntry,
						Dir: map[string]*yang.Entry{
							"tcp": {
								Name: "tcp",
								Kind: yang.CaseEntry,
								Dir: map[string]*yang.Entry{
									"inner": {
										Name: "inner",
										Kind: yang.DirectoryEntry,
										Dir:  map[string]*yang.Entry{"port": leaf("port", yang.Yuint16)},
									},
								},
							},
						},
					},
				},
			},
		},
	}
	return wireParents(mod)
}

// TestGenerateChoiceDepth checks that crossing a choice level spends one unit
// of the depth budget even though choices are transparent in generated paths.
func TestGenerateChoiceDepth(t *testing.T) {
	tests := []struct {
		name      string
		inDepth   int
		wantInner bool
	}{{
		name:    "inner beyond budget",
		inDepth: 2,
	}, {
		name:      "inner within budget",
		inDepth:   3,
		wantInner: true,
	}, {
		name:      "unbounded",
		inDepth:   0,
		wantInner: true,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator([]*yang.Entry{choiceModule()}, []string{"net"}, &Config{MaxDepth: tt.inDepth})
			if err != nil {
				t.Fatalf("NewGenerator: unexpected error: %v", err)
			}
			doc, errs := g.Generate()
			if len(errs) > 0 {
				t.Fatalf("Generate: unexpected errors: %v", errs)
			}

			have := map[string]bool{}
			for _, k := range doc.Paths.Keys() {
				have[k] = true
			}
			if !have["/data/net:top"] {
				t.Errorf("missing path %q, have %v", "/data/net:top", doc.Paths.Keys())
			}
			if got := have["/data/net:top/inner"]; got != tt.wantInner {
				t.Errorf("path %q present: got %v, want %v", "/data/net:top/inner", got, tt.wantInner)
			}
		})
	}
}

func TestGenerateEmptyModule(t *testing.T) {
	mod := &yang.Entry{Name: "hollow", Kind: yang.DirectoryEntry, Dir: map[string]*yang.Entry{}}
	g, err := NewGenerator([]*yang.Entry{mod}, []string{"hollow"}, nil)
	if err != nil {
		t.Fatalf("NewGenerator: unexpected error: %v", err)
	}
	doc, errs := g.Generate()
	if len(errs) > 0 {
		t.Fatalf("Generate: unexpected errors: %v", errs)
	}
	if doc.Definitions.Len() != 0 || doc.Paths.Len() != 0 {
		t.Errorf("empty module produced content: paths %v, definitions %v", doc.Paths.Keys(), doc.Definitions.Keys())
	}
	if got, want := doc.Info.Description, "hollow API generated from yang definitions"; got != want {
		t.Errorf("info description fallback: got %q, want %q", got, want)
	}
}

func TestGenerateTo(t *testing.T) {
	tests := []struct {
		name     string
		inFormat Format
		check    func(t *testing.T, out []byte)
	}{{
		name:     "json",
		inFormat: FormatJSON,
		check: func(t *testing.T, out []byte) {
			var decoded map[string]interface{}
			if err := json.Unmarshal(out, &decoded); err != nil {
				t.Fatalf("output is not valid JSON: %v", err)
			}
			if decoded["swagger"] != "2.0" {
				t.Errorf("swagger field: got %v, want 2.0", decoded["swagger"])
			}
		},
	}, {
		name:     "yaml",
		inFormat: FormatYAML,
		check: func(t *testing.T, out []byte) {
			if !strings.Contains(string(out), "swagger: \"2.0\"") {
				t.Errorf("yaml output missing version header:\n%s", out)
			}
		},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator([]*yang.Entry{deviceModule()}, []string{"device"}, &Config{Format: tt.inFormat})
			if err != nil {
				t.Fatalf("NewGenerator: unexpected error: %v", err)
			}
			var buf bytes.Buffer
			if errs := g.GenerateTo(&buf); len(errs) > 0 {
				t.Fatalf("GenerateTo: unexpected errors: %v", errs)
			}
			tt.check(t, buf.Bytes())
		})
	}
}
