package scene

import (
	"strconv"
	"strings"
)

// Attrs maps attribute names to values.
type Attrs map[string]string

// NormalizeName converts a keyword-style attribute name to its SVG form:
// trailing underscores are dropped and the remaining underscores become
// hyphens, so "text_anchor" is "text-anchor" and "class_" is "class".
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.TrimRight(name, "_"), "_", "-")
}

func (a Attrs) normalized() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[NormalizeName(k)] = v
	}
	return out
}

// Num formats a coordinate without trailing zeros.
func Num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Element is an SVG element with attributes, optional text content and
// child elements.
type Element struct {
	Tag      string
	Attrs    Attrs
	Text     string
	Children []*Element
}

// NewElement creates an element with normalized attribute names.
func NewElement(tag string, attrs Attrs, children ...*Element) *Element {
	return &Element{Tag: tag, Attrs: attrs.normalized(), Children: children}
}

// Append adds children and returns e.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Set assigns one attribute and returns e.
func (e *Element) Set(name, value string) *Element {
	if e.Attrs == nil {
		e.Attrs = Attrs{}
	}
	e.Attrs[NormalizeName(name)] = value
	return e
}

// Get returns the value of an attribute.
func (e *Element) Get(name string) (string, bool) {
	v, ok := e.Attrs[NormalizeName(name)]
	return v, ok
}

// Group creates a <g> element.
func Group(attrs Attrs, children ...*Element) *Element {
	return NewElement("g", attrs, children...)
}

// Rect creates a box with its top-left corner at (x, y).
func Rect(x, y, width, height float64, attrs Attrs) *Element {
	e := NewElement("rect", attrs)
	e.Attrs["x"] = Num(x)
	e.Attrs["y"] = Num(y)
	e.Attrs["width"] = Num(width)
	e.Attrs["height"] = Num(height)
	return e
}

// Text creates a label. Position it with x/y or transform attributes.
func Text(content string, attrs Attrs) *Element {
	e := NewElement("text", attrs)
	e.Text = content
	return e
}

// TextAt creates a label anchored at (x, y).
func TextAt(x, y float64, content string, attrs Attrs) *Element {
	e := Text(content, attrs)
	e.Attrs["x"] = Num(x)
	e.Attrs["y"] = Num(y)
	return e
}

// Path creates a <path> with path data d.
func Path(d string, attrs Attrs) *Element {
	e := NewElement("path", attrs)
	e.Attrs["d"] = d
	return e
}

// Line creates a straight connector from (x1, y1) to (x2, y2) as a path, so
// it can carry markers the same way arcs do.
func Line(x1, y1, x2, y2 float64, attrs Attrs) *Element {
	return Path(PathData(M(x1, y1), L(x2, y2)), attrs)
}

// Arc creates a curved connector: a circular arc of radius r from (x1, y1)
// to (x2, y2), small-arc, clockwise sweep. The fill defaults to none.
func Arc(x1, y1, x2, y2, r float64, attrs Attrs) *Element {
	e := Path(PathData(M(x1, y1), A(r, r, 0, 0, 1, x2, y2)), attrs)
	if _, ok := e.Attrs["fill"]; !ok {
		e.Attrs["fill"] = "none"
	}
	return e
}
