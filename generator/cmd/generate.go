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

package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openyang/swaggergen/genutil"
	"github.com/openyang/swaggergen/swgen"
)

func newGenerateCmd() *cobra.Command {
	gen := &cobra.Command{
		Use:   "generator [flags] module.yang...",
		RunE:  generate,
		Short: "generator compiles YANG modules into a Swagger 2.0 API document.",
		Args:  cobra.MinimumNArgs(1),
	}

	gen.Flags().StringSlice("path", nil, "Directories searched for imported and included modules.")
	gen.Flags().String("output", "", "File to write the document to; stdout when empty.")
	gen.Flags().String("format", string(swgen.FormatYAML), "Output encoding, yaml or json.")
	gen.Flags().String("strategy", string(swgen.StrategyOptimizing), "Grouping rendering strategy, optimizing or unpacking.")
	gen.Flags().StringSlice("elements", []string{string(swgen.ElementData), string(swgen.ElementRPC)}, "Schema element classes to generate, data and/or rpc.")
	gen.Flags().Int("max_depth", 0, "Maximum number of path levels to generate; 0 means unbounded.")
	gen.Flags().String("host", "", "Host advertised in the document.")
	gen.Flags().String("base_path", "", "Base path advertised in the document.")
	gen.Flags().String("content_type", "", "Content type advertised as consumed and produced.")
	gen.Flags().String("api_version", "", "Version advertised in the document info.")
	gen.Flags().Bool("read_only", false, "Generate only read operations.")

	return gen
}

func generate(cmd *cobra.Command, args []string) error {
	cfg := &swgen.Config{
		Host:     viper.GetString("host"),
		BasePath: viper.GetString("base_path"),
		Version:  viper.GetString("api_version"),
		Format:   swgen.Format(viper.GetString("format")),
		Strategy: swgen.Strategy(viper.GetString("strategy")),
		MaxDepth: viper.GetInt("max_depth"),
	}
	if ct := viper.GetString("content_type"); ct != "" {
		cfg.Consumes = []string{ct}
		cfg.Produces = []string{ct}
	}
	for _, el := range viper.GetStringSlice("elements") {
		cfg.Elements = append(cfg.Elements, swgen.Element(el))
	}
	handler := swgen.NewRESTCONFPathHandlerBuilder()
	if viper.GetBool("read_only") {
		handler = handler.WithoutFullCRUD()
	}
	cfg.PathHandler = handler

	modules, err := swgen.LoadModules(args, viper.GetStringSlice("path"))
	if err != nil {
		return err
	}

	// The modules named on the command line are the ones generated;
	// everything pulled in through the search path only resolves
	// references.
	var names []string
	for _, arg := range args {
		names = append(names, strings.TrimSuffix(filepath.Base(arg), ".yang"))
	}

	g, err := swgen.NewGenerator(modules, names, cfg)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if fn := viper.GetString("output"); fn != "" {
		fh := genutil.OpenFile(fn)
		defer genutil.SyncFile(fh)
		out = fh
	}

	if errs := g.GenerateTo(out); len(errs) > 0 {
		log.Exitf("Error generating document: %v", errs)
	}
	return nil
}
