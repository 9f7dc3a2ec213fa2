// Package pkg provides the core libraries for exprflow data-flow diagrams.
//
// # Overview
//
// exprflow reads a short program of assignments, finds every distinct
// subexpression, and draws which computation reads which: one box per
// computation, stacked in the order it first appears, with arcs from each
// dependency to the computations that read it.
//
// # Architecture
//
// The data flow through exprflow:
//
//	Source text (Go-style or HCL)
//	         ↓
//	    [syntax] package (front-end → [expr] tree)
//	         ↓
//	    [depgraph] package (symbol table + final results)
//	         ↓
//	    [layout] package (box geometry, arc order, roles)
//	         ↓
//	    [render] packages (SVG, DOT, PNG, PDF)
//
// [pipeline] runs these stages with caching through [cache] and timing
// hooks from [observability]. [graph] is the JSON form of a graph and its
// layout, so a computed document can be stored and rendered again without
// parsing.
//
// # Quick Start
//
//	prog, _ := syntax.Parse("go", "flow.go", []byte("a = 1\nb = a + 2\n"))
//	g, _ := depgraph.Build(prog)
//	l := layout.Compute(g, layout.DefaultOptions())
//	svg := diagram.RenderSVG(l, diagram.WithStyle(diagram.DefaultStyle()))
//
// Or through the pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Execute(ctx, pipeline.Options{Source: src, Formats: []string{"svg"}})
//	svg := res.Artifacts["svg"]
//
// # Main Packages
//
// [expr] - Language-neutral expression tree and canonical text.
//
// [syntax] - Front-end registry. Go-style statements are parsed with
// go/parser ([syntax/gosrc]); HCL attribute files with hcl/v2
// ([syntax/hclsrc]).
//
// [depgraph] - Single-pass graph builder with deduplication of repeated
// subexpressions and tracking of final results.
//
// [layout] - Geometry of the vertical box diagram and node roles.
//
// [render/diagram] - SVG output of a layout. [render/nodelink] - Graphviz
// DOT and node-link SVG. [render/grid] - Standalone grid world drawing.
// [render] - SVG to PNG and PDF conversion.
//
// [config] - TOML configuration for layout, style and output defaults.
//
// [errors] - Error codes shared by every package.
//
// [buildinfo] - Version information set at link time.
//
// # Testing
//
//	go test ./...             # All tests
//	go test ./pkg/depgraph/   # Specific package
//	go test -run Example ./...
//
// [expr]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/expr
// [syntax]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/syntax
// [syntax/gosrc]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/syntax/gosrc
// [syntax/hclsrc]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/syntax/hclsrc
// [depgraph]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/depgraph
// [layout]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/render
// [render/diagram]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/render/diagram
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/render/nodelink
// [render/grid]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/render/grid
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/observability
// [graph]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/graph
// [config]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/exprflow/pkg/buildinfo
package pkg
