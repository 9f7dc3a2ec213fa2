// Package pipeline provides the parse → build → layout → render pipeline
// behind the exprflow CLI.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: convert source text into an [expr.Program] with the front-end
//     for the selected language
//  2. Build: walk the program into a deduplicated dependency graph
//  3. Layout: place one box per graph node and one arc per edge
//  4. Render: generate output in the requested formats (SVG, JSON, DOT,
//     Graphviz node-link SVG, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "a = 1\nb = a + 2\n",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	prog, err := pipeline.Parse(ctx, opts)
//	g, err := pipeline.Build(ctx, prog)
//	l, err := pipeline.ComputeLayout(ctx, g, opts.Layout)
//	artifacts, err := pipeline.Render(ctx, graph.NewDocument(opts.Language, g, l), opts)
//
// [expr.Program]: github.com/matzehuels/exprflow/pkg/expr.Program
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/exprflow/pkg/cache"
	"github.com/matzehuels/exprflow/pkg/depgraph"
	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/expr"
	"github.com/matzehuels/exprflow/pkg/layout"
	"github.com/matzehuels/exprflow/pkg/render/diagram"
	"github.com/matzehuels/exprflow/pkg/syntax"
)

// DefaultFilename names inline source in error messages.
const DefaultFilename = "<expr>"

// DefaultPNGScale is the rasterization scale for PNG output.
const DefaultPNGScale = 2.0

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatNodelink: true,
	FormatPNG:      true,
	FormatPDF:      true,
}

// FormatNames lists the supported formats in help-text order.
var FormatNames = []string{FormatSVG, FormatJSON, FormatDOT, FormatNodelink, FormatPNG, FormatPDF}

// Extension returns the file extension written for format.
func Extension(format string) string {
	if format == FormatNodelink {
		return "nodelink.svg"
	}
	return format
}

// Options contains all configuration for the pipeline.
type Options struct {
	// Parse options
	Language string `json:"language,omitempty"`
	Source   string `json:"source"`
	Filename string `json:"filename,omitempty"`

	// Layout options
	Layout layout.Options `json:"layout"`

	// Render options
	Formats  []string      `json:"formats,omitempty"`
	Style    diagram.Style `json:"style"`
	Detailed bool          `json:"detailed,omitempty"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Program is the parsed source. It is nil when the layout came from
	// the cache, since parsing was skipped.
	Program *expr.Program

	// Graph is the dependency graph.
	Graph *depgraph.Graph

	// Layout is the computed placement of Graph.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	StmtCount  int
	NodeCount  int
	EdgeCount  int
	FinalCount int
	ParseTime  time.Duration
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Parse, build and layout were skipped
	RenderHit bool // Every artifact came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLanguage checks that a syntax front-end is registered for lang.
func ValidateLanguage(lang string) error {
	if !syntax.Supported(lang) {
		return apperrors.New(apperrors.ErrCodeInvalidLanguage,
			"invalid language: %q (must be one of: %s)", lang, strings.Join(syntax.Languages(), ", "))
	}
	return nil
}

// DetectLanguage picks a language from a filename's extension.
func DetectLanguage(filename string) string {
	return syntax.Detect(filename)
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := apperrors.ValidateSource(o.Source); err != nil {
		return err
	}
	if o.Filename == "" {
		o.Filename = DefaultFilename
	}
	if o.Language == "" {
		o.Language = DetectLanguage(o.Filename)
	}
	if err := ValidateLanguage(o.Language); err != nil {
		return err
	}

	if o.Layout == (layout.Options{}) {
		o.Layout = layout.DefaultOptions()
	}
	if err := o.Layout.Validate(); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Style == (diagram.Style{}) {
		o.Style = diagram.DefaultStyle()
	}
	if err := o.Style.Validate(); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Language: o.Language,
		Geometry: o.Layout,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Style:    o.Style,
		Detailed: o.Detailed,
	}
}
