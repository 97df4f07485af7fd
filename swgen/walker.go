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
	"sort"

	log "github.com/golang/glog"
	"github.com/openconfig/goyang/pkg/yang"

	"github.com/openyang/swaggergen/genutil"
	"github.com/openyang/swaggergen/util"
)

// moduleWalker performs the depth-first traversal of a module's expanded
// tree, driving the data-object builder in post-order and the path handler
// at every node that owns a path. maxDepth counts materialized path levels;
// a value of -1 means unbounded.
type moduleWalker struct {
	objects  DataObjectBuilder
	paths    PathHandler
	maxDepth int
	// generated names the modules selected for generation. Nodes augmented
	// into the tree from outside this set are skipped wherever they occur;
	// they belong to the run that generates their defining module.
	generated map[string]bool
}

// walkData traverses the data subtrees of the supplied module.
func (w *moduleWalker) walkData(mod *yang.Entry) {
	root := NewRootSegment()
	eachInDepthChild(mod, w.maxDepth, func(ch *yang.Entry, depth int) {
		w.visit(ch, root, depth)
	})
}

// walkRPCs traverses the RPC nodes of the supplied module.
func (w *moduleWalker) walkRPCs(mod *yang.Entry) {
	root := NewRootSegment()
	for _, rpc := range util.RPCs(mod) {
		if owner := genutil.OwningModule(rpc); !w.generated[owner] {
			continue
		}
		w.visitRPC(rpc, root)
	}
}

// eachInDepthChild calls fn with every directory child of e that is within
// the remaining depth budget, in name order. Choice and case levels are
// flattened, their members surfacing as direct children; a choice level
// crossed consumes one unit of budget, a case none. fn receives the budget
// the child itself runs under.
func eachInDepthChild(e *yang.Entry, depth int, fn func(ch *yang.Entry, depth int)) {
	if depth == 0 {
		return
	}
	names := make([]string, 0, len(e.Dir))
	for n := range e.Dir {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		ch := e.Dir[n]
		switch {
		case ch.RPC != nil:
		case ch.IsChoice():
			eachInDepthChild(ch, depth-1, fn)
		case ch.IsCase():
			eachInDepthChild(ch, depth, fn)
		case ch.IsDir():
			fn(ch, depth)
		}
	}
}

// visit materializes the container or list node e one level below parent.
// The node consumes one level of depth; at zero remaining depth the subtree
// is truncated without comment, leaving no trace in the document. A node
// owned by a module outside the generated set is skipped wherever it
// appears, so cross-module augmentations do not generate twice. Children
// are visited before the node's own definition is built, so that the
// definition can reference theirs.
func (w *moduleWalker) visit(e *yang.Entry, parent *PathSegment, depth int) {
	if depth == 0 {
		return
	}
	module := genutil.OwningModule(e)
	if !w.generated[module] {
		log.V(1).Infof("skipping %s, owned by module %s which is not being generated", e.Path(), module)
		return
	}

	readOnly := !util.IsConfig(e)
	var seg *PathSegment
	if util.IsKeyedList(e) {
		seg = parent.ListChild(e.Name, module, readOnly, e)
	} else {
		seg = parent.Child(e.Name, module, readOnly)
	}

	eachInDepthChild(e, depth-1, func(ch *yang.Entry, d int) {
		w.visit(ch, seg, d)
	})

	w.objects.AddModel(e)
	w.paths.Path(e, seg)
}

// visitRPC materializes the RPC node one level below the module root. The
// input and output trees get definitions but no paths of their own.
func (w *moduleWalker) visitRPC(rpc *yang.Entry, root *PathSegment) {
	if w.maxDepth == 0 {
		return
	}
	seg := root.Child(rpc.Name, genutil.OwningModule(rpc), false)

	if in := rpc.RPC.Input; in != nil && len(in.Dir) > 0 {
		w.buildModel(in, w.maxDepth-1)
	}
	if out := rpc.RPC.Output; out != nil && len(out.Dir) > 0 {
		w.buildModel(out, w.maxDepth-1)
	}
	w.paths.RPC(rpc, seg)
}

// buildModel builds definitions for a subtree that has no path of its own,
// in the same post-order and with the same depth accounting as visit.
func (w *moduleWalker) buildModel(e *yang.Entry, depth int) {
	if depth == 0 {
		return
	}
	eachInDepthChild(e, depth-1, func(ch *yang.Entry, d int) {
		w.buildModel(ch, d)
	})
	w.objects.AddModel(e)
}
