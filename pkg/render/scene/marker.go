package scene

// Marker is a reusable arrowhead definition.
type Marker struct {
	ID      string
	ViewBox string
	RefX    float64
	RefY    float64
	Width   float64
	Height  float64
	Orient  string
	Path    string
}

// Ref returns the url(#id) reference used in marker attributes.
func (m Marker) Ref() string { return "url(#" + m.ID + ")" }

// Element returns the <marker> definition.
func (m Marker) Element() *Element {
	return NewElement("marker", Attrs{
		"id":           m.ID,
		"viewBox":      m.ViewBox,
		"refX":         Num(m.RefX),
		"refY":         Num(m.RefY),
		"markerWidth":  Num(m.Width),
		"markerHeight": Num(m.Height),
		"orient":       m.Orient,
	}, Path(m.Path, nil))
}

// ArrowMarker returns the arrowhead shared by every connector.
func ArrowMarker() Marker {
	return Marker{
		ID:      "arrow",
		ViewBox: "0 0 30 30",
		RefX:    15,
		RefY:    15,
		Width:   10,
		Height:  10,
		Orient:  "auto-start-reverse",
		Path:    PathData(M(0, 0), L(30, 15), L(0, 30), L(5, 15), Z()),
	}
}
