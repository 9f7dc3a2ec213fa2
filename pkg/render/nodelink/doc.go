// Package nodelink renders a computed layout as a Graphviz node-link diagram.
//
// # Overview
//
// The data-flow diagram keeps one fixed column; this package hands the same
// nodes and deduplicated edges to Graphviz instead, which ranks them top to
// bottom and routes edges itself. Boxes keep their role colors.
//
// # Usage
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Style: diagram.DefaultStyle()})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
