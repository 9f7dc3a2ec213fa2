package pipeline

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/graph"
	"github.com/matzehuels/exprflow/pkg/observability"
	"github.com/matzehuels/exprflow/pkg/render"
	"github.com/matzehuels/exprflow/pkg/render/diagram"
	"github.com/matzehuels/exprflow/pkg/render/nodelink"
)

// Render generates output artifacts for doc in each of opts.Formats.
// opts.Style and opts.Detailed apply to the formats that use them.
func Render(ctx context.Context, doc graph.Document, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)

	start := time.Now()
	artifacts, err := renderFormats(ctx, doc, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, doc graph.Document, opts Options) (map[string][]byte, error) {
	style := opts.Style
	if style == (diagram.Style{}) {
		style = diagram.DefaultStyle()
	}

	// svg and dot feed the raster and Graphviz formats; render each once.
	var svg []byte
	diagramSVG := func() []byte {
		if svg == nil {
			svg = diagram.RenderSVG(doc.Layout, diagram.WithStyle(style))
		}
		return svg
	}
	dot := ""
	dotSource := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(doc.Layout, nodelink.Options{Detailed: opts.Detailed, Style: style})
		}
		return dot
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = diagramSVG()
		case FormatJSON:
			data, err = graph.MarshalDocument(doc)
		case FormatDOT:
			data = []byte(dotSource())
		case FormatNodelink:
			data, err = nodelink.RenderSVG(ctx, dotSource())
		case FormatPNG:
			data, err = render.ToPNG(ctx, diagramSVG(), DefaultPNGScale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, diagramSVG())
		default:
			return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
