package scene

import (
	"bytes"
	"encoding/xml"
	"io"
	"slices"
)

const (
	// MediaType is the media type of serialized scenes.
	MediaType = "image/svg+xml"

	svgNamespace = "http://www.w3.org/2000/svg"
)

// Scene is an SVG document under construction. It is not safe for
// concurrent use; give each renderer its own scene.
type Scene struct {
	attrs    Attrs
	markers  []Marker
	elements []*Element
}

// New creates an empty scene. attrs become attributes of the root <svg>
// element; version and xmlns are filled in unless given.
func New(attrs Attrs) *Scene {
	root := Attrs{"version": "1.1", "xmlns": svgNamespace}
	for k, v := range attrs.normalized() {
		root[k] = v
	}
	return &Scene{attrs: root}
}

// Attr returns a root attribute.
func (s *Scene) Attr(name string) string { return s.attrs[NormalizeName(name)] }

// Add appends top-level elements.
func (s *Scene) Add(elems ...*Element) {
	s.elements = append(s.elements, elems...)
}

// Len returns the number of top-level elements.
func (s *Scene) Len() int { return len(s.elements) }

// Elements returns the top-level elements in insertion order.
func (s *Scene) Elements() []*Element { return slices.Clone(s.elements) }

// UseMarker registers m in the document's definitions, once per marker ID,
// and returns its url(#id) reference.
func (s *Scene) UseMarker(m Marker) string {
	if !slices.ContainsFunc(s.markers, func(x Marker) bool { return x.ID == m.ID }) {
		s.markers = append(s.markers, m)
	}
	return m.Ref()
}

// Markers returns the registered marker definitions.
func (s *Scene) Markers() []Marker { return slices.Clone(s.markers) }

// WriteTo serializes the scene as an SVG document.
func (s *Scene) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("<svg")
	writeAttrs(&buf, s.attrs)
	buf.WriteString(">\n")

	if len(s.markers) > 0 {
		buf.WriteString("  <defs>\n")
		for _, m := range s.markers {
			writeElement(&buf, m.Element(), 2)
		}
		buf.WriteString("  </defs>\n")
	}
	for _, e := range s.elements {
		writeElement(&buf, e, 1)
	}
	buf.WriteString("</svg>\n")
	return buf.WriteTo(w)
}

// Bytes returns the serialized document.
func (s *Scene) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = s.WriteTo(&buf)
	return buf.Bytes()
}

func (s *Scene) String() string { return string(s.Bytes()) }

// Preview returns the media type and payload for interactive display.
func (s *Scene) Preview() (string, []byte) { return MediaType, s.Bytes() }

func writeElement(buf *bytes.Buffer, e *Element, depth int) {
	for range depth {
		buf.WriteString("  ")
	}
	buf.WriteByte('<')
	buf.WriteString(e.Tag)
	writeAttrs(buf, e.Attrs)

	switch {
	case len(e.Children) == 0 && e.Text == "":
		buf.WriteString("/>\n")
	case len(e.Children) == 0:
		buf.WriteByte('>')
		escape(buf, e.Text)
		buf.WriteString("</" + e.Tag + ">\n")
	default:
		buf.WriteByte('>')
		escape(buf, e.Text)
		buf.WriteByte('\n')
		for _, c := range e.Children {
			writeElement(buf, c, depth+1)
		}
		for range depth {
			buf.WriteString("  ")
		}
		buf.WriteString("</" + e.Tag + ">\n")
	}
}

func writeAttrs(buf *bytes.Buffer, attrs Attrs) {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		buf.WriteByte(' ')
		buf.WriteString(name)
		buf.WriteString(`="`)
		escape(buf, attrs[name])
		buf.WriteByte('"')
	}
}

func escape(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}
