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

// Package swgen compiles YANG schemas into Swagger 2.0 API documents. The
// generated API follows the RESTCONF resource layout: every container and
// list within the configured depth becomes a data resource with CRUD
// operations, every RPC becomes an operation resource, and the structure of
// the data travels as named definitions.
package swgen

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	log "github.com/golang/glog"
	"github.com/openconfig/goyang/pkg/yang"
	yamlenc "gopkg.in/yaml.v3"

	"github.com/openyang/swaggergen/swagger"
	"github.com/openyang/swaggergen/util"
)

// Format selects the output document encoding.
type Format string

const (
	// FormatJSON emits the document as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML emits the document as YAML.
	FormatYAML Format = "yaml"
)

// Strategy selects how grouping reuse is rendered in the definitions.
type Strategy string

const (
	// StrategyOptimizing emits shared groupings as definitions of their
	// own, composed by reference from their users.
	StrategyOptimizing Strategy = "optimizing"
	// StrategyUnpacking inlines grouping content into every user.
	StrategyUnpacking Strategy = "unpacking"
)

// Element selects a class of schema nodes to generate resources for.
type Element string

const (
	// ElementData generates data resources for containers and lists.
	ElementData Element = "data"
	// ElementRPC generates operation resources for RPCs.
	ElementRPC Element = "rpc"
)

// Config carries the knobs of a generation run. The zero value of any field
// falls back to its DefaultConfig value.
type Config struct {
	// Host and BasePath are copied into the document verbatim.
	Host     string
	BasePath string
	// Consumes and Produces list the supported content types.
	Consumes []string
	Produces []string
	// Version is the API version advertised in the document info.
	Version string
	// Format selects the GenerateTo encoding.
	Format Format
	// Elements selects the node classes to generate; both data and RPC
	// resources are generated when empty.
	Elements []Element
	// MaxDepth bounds the number of materialized path levels. Zero means
	// unbounded.
	MaxDepth int
	// Strategy selects the data-object builder.
	Strategy Strategy
	// PathHandler builds the handler that writes path entries. The
	// RESTCONF handler is used when nil.
	PathHandler PathHandlerBuilder
	// Transforms are applied to the document after generation, in order.
	// DefaultTransforms() is used when nil.
	Transforms []Transform
}

// DefaultConfig returns the configuration used when no overrides are given.
func DefaultConfig() *Config {
	return &Config{
		Host:        "localhost:8080",
		BasePath:    "/restconf",
		Consumes:    []string{"application/json"},
		Produces:    []string{"application/json"},
		Version:     "1.0.0-SNAPSHOT",
		Format:      FormatYAML,
		Elements:    []Element{ElementData, ElementRPC},
		Strategy:    StrategyOptimizing,
		PathHandler: NewRESTCONFPathHandlerBuilder(),
		Transforms:  DefaultTransforms(),
	}
}

// Generator compiles a set of YANG modules into one Swagger document.
type Generator struct {
	cfg      *Config
	all      []*yang.Entry
	generate []*yang.Entry
}

// NewGenerator returns a generator over the supplied schema. allModules is
// the full set of compiled module entries, used for cross-module reference
// resolution; generate names the subset to emit resources for. An error is
// returned when either set is empty, when a name in generate does not match
// any module, or when the configuration selects an unknown strategy, format
// or element class.
func NewGenerator(allModules []*yang.Entry, generate []string, cfg *Config) (*Generator, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	applyDefaults(cfg)

	if len(allModules) == 0 {
		return nil, fmt.Errorf("no YANG modules supplied")
	}
	if len(generate) == 0 {
		return nil, fmt.Errorf("no modules selected for generation")
	}

	switch cfg.Strategy {
	case StrategyOptimizing, StrategyUnpacking:
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
	switch cfg.Format {
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Format)
	}
	for _, el := range cfg.Elements {
		switch el {
		case ElementData, ElementRPC:
		default:
			return nil, fmt.Errorf("unknown element class %q", el)
		}
	}

	byName := map[string]*yang.Entry{}
	for _, m := range allModules {
		byName[m.Name] = m
	}
	var gen []*yang.Entry
	for _, name := range generate {
		m, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("module %s not found in the supplied schema", name)
		}
		gen = append(gen, m)
	}
	sort.Slice(gen, func(i, j int) bool { return gen[i].Name < gen[j].Name })

	return &Generator{cfg: cfg, all: allModules, generate: gen}, nil
}

// applyDefaults fills zero-valued configuration fields from DefaultConfig.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Host == "" {
		cfg.Host = def.Host
	}
	if cfg.BasePath == "" {
		cfg.BasePath = def.BasePath
	}
	if len(cfg.Consumes) == 0 {
		cfg.Consumes = def.Consumes
	}
	if len(cfg.Produces) == 0 {
		cfg.Produces = def.Produces
	}
	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if cfg.Format == "" {
		cfg.Format = def.Format
	}
	if len(cfg.Elements) == 0 {
		cfg.Elements = def.Elements
	}
	if cfg.Strategy == "" {
		cfg.Strategy = def.Strategy
	}
	if cfg.PathHandler == nil {
		cfg.PathHandler = def.PathHandler
	}
	if cfg.Transforms == nil {
		cfg.Transforms = def.Transforms
	}
}

// Generate compiles the selected modules into a Swagger document. The
// returned error list carries the per-leaf resolution failures accumulated
// during the run; the document reflects everything that could be generated.
// Generate builds all of its state per call, so repeated calls on the same
// generator produce identical documents.
func (g *Generator) Generate() (*swagger.Swagger, util.Errors) {
	doc := swagger.New()
	doc.Host = g.cfg.Host
	doc.BasePath = g.cfg.BasePath
	doc.Consumes = append([]string{}, g.cfg.Consumes...)
	doc.Produces = append([]string{}, g.cfg.Produces...)

	st, err := buildSchemaTree(g.all)
	if err != nil {
		return nil, util.NewErrs(err)
	}
	types := &typeResolver{schematree: st}

	var objects DataObjectBuilder
	switch g.cfg.Strategy {
	case StrategyUnpacking:
		objects = newUnpackingBuilder(doc, types)
	default:
		objects = newOptimizingBuilder(doc, types, newGroupingIndex(g.all))
	}
	for _, m := range g.generate {
		objects.ProcessModule(m)
	}

	paths := g.cfg.PathHandler.Configure(doc, objects)

	maxDepth := g.cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = -1
	}
	generated := map[string]bool{}
	for _, m := range g.generate {
		generated[m.Name] = true
	}
	walker := &moduleWalker{objects: objects, paths: paths, maxDepth: maxDepth, generated: generated}

	elements := map[Element]bool{}
	for _, el := range g.cfg.Elements {
		elements[el] = true
	}
	for _, m := range g.generate {
		log.Infof("processing module %s", m.Name)
		if elements[ElementData] {
			walker.walkData(m)
		}
		if elements[ElementRPC] {
			walker.walkRPCs(m)
		}
	}

	g.synthesizeInfo(doc)

	errs := objects.Errors()

	if doc.Definitions.Len() == 0 {
		log.Warningf("generated document has no definitions, skipping post-processing")
		return doc, errs
	}
	for _, t := range g.cfg.Transforms {
		if err := t(doc); err != nil {
			errs = util.AppendErr(errs, err)
		}
	}
	return doc, errs
}

// GenerateTo runs Generate and encodes the document onto w in the configured
// format.
func (g *Generator) GenerateTo(w io.Writer) util.Errors {
	doc, errs := g.Generate()
	if doc == nil {
		return errs
	}

	switch g.cfg.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			errs = util.AppendErr(errs, err)
		}
	default:
		enc := yamlenc.NewEncoder(w)
		if err := enc.Encode(doc); err != nil {
			errs = util.AppendErr(errs, err)
		}
		if err := enc.Close(); err != nil {
			errs = util.AppendErr(errs, err)
		}
	}
	return errs
}

// synthesizeInfo fills the document info from the generated modules: the
// title names the modules, the description joins their own descriptions when
// they have any.
func (g *Generator) synthesizeInfo(doc *swagger.Swagger) {
	var names, descriptions []string
	for _, m := range g.generate {
		names = append(names, m.Name)
		if m.Description != "" {
			descriptions = append(descriptions, m.Description)
		}
	}
	joined := strings.Join(names, ",")

	doc.Info.Title = joined + " API"
	doc.Info.Version = g.cfg.Version
	if len(descriptions) > 0 {
		doc.Info.Description = strings.Join(descriptions, "\n")
	} else {
		doc.Info.Description = joined + " API generated from yang definitions"
	}
}

// LoadModules compiles the named YANG module files, searching dirs for
// imports and includes, and returns one entry per module. Uses statements
// are retained on the compiled entries, which the optimizing builder and the
// grouping index depend on.
func LoadModules(files, dirs []string) ([]*yang.Entry, error) {
	ms := yang.NewModules()
	ms.ParseOptions = yang.Options{StoreUses: true}
	for _, d := range dirs {
		ms.AddPath(d)
	}

	for _, f := range files {
		if err := ms.Read(f); err != nil {
			return nil, err
		}
	}
	if errs := ms.Process(); len(errs) > 0 {
		return nil, util.Errors(errs)
	}

	// Deduplicate modules and submodules sharing an entry.
	seen := map[*yang.Module]bool{}
	var entries []*yang.Entry
	for _, m := range ms.Modules {
		if seen[m] {
			continue
		}
		seen[m] = true
		entries = append(entries, yang.ToEntry(m))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
