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

package swagger

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	yaml "gopkg.in/yaml.v3"
)

func TestOrderedMapJSON(t *testing.T) {
	tests := []struct {
		name    string
		inKeys  []string
		reorder []string
		want    string
	}{{
		name:   "insertion order preserved",
		inKeys: []string{"zebra", "alpha", "mike"},
		want:   `{"zebra":{"type":"string"},"alpha":{"type":"string"},"mike":{"type":"string"}}`,
	}, {
		name:    "reordered",
		inKeys:  []string{"b", "a"},
		reorder: []string{"a", "b"},
		want:    `{"a":{"type":"string"},"b":{"type":"string"}}`,
	}, {
		name:   "empty",
		inKeys: nil,
		want:   `{}`,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Definitions{}
			for _, k := range tt.inKeys {
				d.Set(k, &Schema{Type: "string"})
			}
			if tt.reorder != nil {
				if err := d.Reorder(tt.reorder); err != nil {
					t.Fatalf("Reorder(%v): unexpected error: %v", tt.reorder, err)
				}
			}
			got, err := json.Marshal(d)
			if err != nil {
				t.Fatalf("json.Marshal: unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("json.Marshal: did not get expected output, diff(-want,+got):\n%s", diff)
			}
		})
	}
}

func TestOrderedMapYAML(t *testing.T) {
	d := &Definitions{}
	d.Set("second", &Schema{Type: "string"})
	d.Set("first", &Schema{Type: "boolean"})
	if err := d.Reorder([]string{"first", "second"}); err != nil {
		t.Fatalf("Reorder: unexpected error: %v", err)
	}

	got, err := yaml.Marshal(d)
	if err != nil {
		t.Fatalf("yaml.Marshal: unexpected error: %v", err)
	}
	want := "first:\n    type: boolean\nsecond:\n    type: string\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("yaml.Marshal: did not get expected output, diff(-want,+got):\n%s", diff)
	}
}

func TestOrderedMapReorderErrors(t *testing.T) {
	tests := []struct {
		name    string
		reorder []string
	}{{
		name:    "wrong length",
		reorder: []string{"a"},
	}, {
		name:    "unknown key",
		reorder: []string{"a", "c"},
	}, {
		name:    "duplicate key",
		reorder: []string{"a", "a"},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Definitions{}
			d.Set("a", &Schema{})
			d.Set("b", &Schema{})
			if err := d.Reorder(tt.reorder); err == nil {
				t.Errorf("Reorder(%v): expected error, got nil", tt.reorder)
			}
		})
	}
}

func TestOrderedMapDelete(t *testing.T) {
	p := &Paths{}
	p.Set("/data/a", &Path{})
	p.Set("/data/b", &Path{})
	p.Set("/data/c", &Path{})
	p.Delete("/data/b")

	if diff := cmp.Diff([]string{"/data/a", "/data/c"}, p.Keys()); diff != "" {
		t.Errorf("Delete: did not get expected keys, diff(-want,+got):\n%s", diff)
	}
	if _, ok := p.Get("/data/b"); ok {
		t.Errorf("Get(/data/b): entry still present after Delete")
	}
}

func TestSchemaReferences(t *testing.T) {
	tests := []struct {
		name     string
		inSchema *Schema
		want     []string
	}{{
		name:     "plain ref",
		inSchema: NewRef("target"),
		want:     []string{"target"},
	}, {
		name: "nested in properties items and allOf",
		inSchema: &Schema{
			AllOf: []*Schema{
				NewRef("base"),
				{
					Type: "object",
					Properties: map[string]*Schema{
						"child": NewArray(NewRef("item")),
					},
				},
			},
		},
		want: []string{"base", "item"},
	}, {
		name:     "no refs",
		inSchema: &Schema{Type: "string"},
		want:     nil,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.inSchema.References()); diff != "" {
				t.Errorf("References: did not get expected refs, diff(-want,+got):\n%s", diff)
			}
		})
	}
}

func TestSchemaRewriteRefs(t *testing.T) {
	s := &Schema{
		AllOf: []*Schema{
			NewRef("old"),
			{Type: "object", Properties: map[string]*Schema{"f": NewRef("old")}},
		},
	}
	s.RewriteRefs("old", "new")
	for _, ref := range s.References() {
		if ref != "new" {
			t.Errorf("RewriteRefs: reference %q was not rewritten", ref)
		}
	}
}

func TestSchemaIsEmptyObject(t *testing.T) {
	tests := []struct {
		name     string
		inSchema *Schema
		want     bool
	}{{
		name:     "empty object",
		inSchema: NewObject(),
		want:     true,
	}, {
		name:     "bare schema",
		inSchema: &Schema{},
		want:     true,
	}, {
		name:     "object with property",
		inSchema: &Schema{Type: "object", Properties: map[string]*Schema{"a": {Type: "string"}}},
		want:     false,
	}, {
		name:     "reference",
		inSchema: NewRef("x"),
		want:     false,
	}, {
		name:     "scalar",
		inSchema: &Schema{Type: "string"},
		want:     false,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.inSchema.IsEmptyObject(); got != tt.want {
				t.Errorf("IsEmptyObject: got %v, want %v", got, tt.want)
			}
		})
	}
}
