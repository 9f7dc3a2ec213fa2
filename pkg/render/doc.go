// Package render holds the output side of exprflow.
//
// # Overview
//
// Rendering is split by what gets drawn:
//
//   - [scene]: SVG element trees, markers and serialization
//   - [diagram]: data-flow diagrams from a computed layout
//   - [grid]: cellular worlds with labeled axes and arrows
//   - [nodelink]: Graphviz node-link diagrams of the same layout
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := diagram.RenderSVG(l)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [scene]: github.com/matzehuels/exprflow/pkg/render/scene
// [diagram]: github.com/matzehuels/exprflow/pkg/render/diagram
// [grid]: github.com/matzehuels/exprflow/pkg/render/grid
// [nodelink]: github.com/matzehuels/exprflow/pkg/render/nodelink
package render
