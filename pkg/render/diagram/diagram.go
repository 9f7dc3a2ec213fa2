// Package diagram draws a computed layout as a data-flow diagram.
//
// Every node becomes a box filled by role and a centered label; every edge
// becomes a curved connector ending in the shared arrow marker:
//
//	l := layout.Compute(g, layout.DefaultOptions())
//	svg := diagram.RenderSVG(l)
//
// [Render] draws into a caller-owned [scene.Scene] instead, so a diagram can
// share a document with other drawings.
package diagram

import (
	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/layout"
	"github.com/matzehuels/exprflow/pkg/render/scene"
)

// Style holds the presentation attributes of a diagram.
type Style struct {
	FinalFill        string `json:"final_fill" toml:"final_fill"`
	TerminalFill     string `json:"terminal_fill" toml:"terminal_fill"`
	IntermediateFill string `json:"intermediate_fill" toml:"intermediate_fill"`
	Stroke           string `json:"stroke" toml:"stroke"`
	EdgeStroke       string `json:"edge_stroke" toml:"edge_stroke"`
	FontFamily       string `json:"font_family,omitempty" toml:"font_family"`
	FontSize         string `json:"font_size,omitempty" toml:"font_size"`
}

// DefaultStyle returns the standard palette: gold results, ghostwhite inputs,
// lightyellow intermediates, black outlines.
func DefaultStyle() Style {
	return Style{
		FinalFill:        "gold",
		TerminalFill:     "ghostwhite",
		IntermediateFill: "lightyellow",
		Stroke:           "black",
		EdgeStroke:       "black",
	}
}

// Fill returns the box color for role r.
func (s Style) Fill(r layout.Role) string {
	switch r {
	case layout.Final:
		return s.FinalFill
	case layout.Terminal:
		return s.TerminalFill
	default:
		return s.IntermediateFill
	}
}

// Validate checks every color of the style.
func (s Style) Validate() error {
	for _, c := range []string{s.FinalFill, s.TerminalFill, s.IntermediateFill, s.Stroke, s.EdgeStroke} {
		if err := apperrors.ValidateColor(c); err != nil {
			return err
		}
	}
	return nil
}

// Render draws l into sc and returns the group holding the diagram.
func Render(sc *scene.Scene, l layout.Layout, style Style) *scene.Element {
	end := sc.UseMarker(scene.ArrowMarker())
	g := scene.Group(nil)

	textAttrs := scene.Attrs{
		"text_anchor":       "middle",
		"dominant_baseline": "central",
	}
	if style.FontFamily != "" {
		textAttrs["font_family"] = style.FontFamily
	}
	if style.FontSize != "" {
		textAttrs["font_size"] = style.FontSize
	}

	for _, n := range l.Nodes {
		g.Append(
			scene.Rect(n.Box.X, n.Box.Y, n.Box.Width, n.Box.Height, scene.Attrs{
				"stroke": style.Stroke,
				"fill":   style.Fill(n.Role),
			}),
			scene.TextAt(n.LabelX, n.LabelY, n.Label, textAttrs),
		)
	}
	for _, e := range l.Edges {
		g.Append(scene.Arc(e.X1, e.Y1, e.X2, e.Y2, e.Radius, scene.Attrs{
			"stroke":     style.EdgeStroke,
			"fill":       "none",
			"marker_end": end,
		}))
	}

	sc.Add(g)
	return g
}

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style Style
	attrs scene.Attrs
}

// WithStyle replaces the default style.
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithAttrs sets extra root attributes such as viewBox.
func WithAttrs(a scene.Attrs) SVGOption {
	return func(r *svgRenderer) {
		for k, v := range a {
			r.attrs[k] = v
		}
	}
}

// RenderSVG draws l into a fresh scene sized to the layout and serializes it.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{
		style: DefaultStyle(),
		attrs: scene.Attrs{
			"width":  scene.Num(l.Width),
			"height": scene.Num(l.Height),
		},
	}
	for _, opt := range opts {
		opt(&r)
	}
	sc := scene.New(r.attrs)
	Render(sc, l, r.style)
	return sc.Bytes()
}
