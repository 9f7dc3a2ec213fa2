package scene

import (
	"bytes"
	"strings"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"fill", "fill"},
		{"marker_end", "marker-end"},
		{"text_anchor", "text-anchor"},
		{"dominant_baseline", "dominant-baseline"},
		{"class_", "class"},
		{"id_", "id"},
		{"viewBox", "viewBox"},
		{"font__size_", "font--size"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPathData(t *testing.T) {
	tests := []struct {
		name string
		cmds []Cmd
		want string
	}{
		{"empty", nil, ""},
		{"line", []Cmd{M(415, 10), L(415, 385)}, "M 415 10 L 415 385"},
		{"arrow", []Cmd{M(0, 0), L(30, 15), L(0, 30), L(5, 15), Z()}, "M 0 0 L 30 15 L 0 30 L 5 15 z"},
		{"arc", []Cmd{M(175, 30), A(20, 20, 0, 0, 1, 175, 120)}, "M 175 30 A 20 20 0 0 1 175 120"},
		{"fraction", []Cmd{M(0.5, 1.25)}, "M 0.5 1.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathData(tt.cmds...); got != tt.want {
				t.Errorf("PathData() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrimitives(t *testing.T) {
	r := Rect(5, 12, 170, 25, Attrs{"stroke": "black"})
	if r.Tag != "rect" || r.Attrs["x"] != "5" || r.Attrs["y"] != "12" || r.Attrs["width"] != "170" || r.Attrs["height"] != "25" {
		t.Errorf("Rect attrs = %v", r.Attrs)
	}

	txt := TextAt(90, 24, "a + 2", Attrs{"text_anchor": "middle"})
	if txt.Text != "a + 2" || txt.Attrs["text-anchor"] != "middle" {
		t.Errorf("TextAt = %+v", txt)
	}

	arc := Arc(175, 30, 175, 70, 10, nil)
	if arc.Attrs["d"] != "M 175 30 A 10 10 0 0 1 175 70" {
		t.Errorf("Arc d = %q", arc.Attrs["d"])
	}
	if arc.Attrs["fill"] != "none" {
		t.Errorf("Arc fill = %q, want none", arc.Attrs["fill"])
	}
	if filled := Arc(0, 0, 0, 10, 5, Attrs{"fill": "red"}); filled.Attrs["fill"] != "red" {
		t.Errorf("Arc overrode fill: %q", filled.Attrs["fill"])
	}

	line := Line(25, 25, 25, 55, nil)
	if line.Tag != "path" || line.Attrs["d"] != "M 25 25 L 25 55" {
		t.Errorf("Line = %+v", line)
	}

	g := Group(nil, r, txt)
	if len(g.Children) != 2 {
		t.Errorf("Group children = %d", len(g.Children))
	}
	if v, ok := g.Append(arc).Set("class_", "diagram").Get("class"); !ok || v != "diagram" {
		t.Errorf("Get(class) = %q, %v", v, ok)
	}
}

func TestSceneRootAttributes(t *testing.T) {
	sc := New(Attrs{"width": "400px", "viewBox": "0 0 450 450"})
	if sc.Attr("version") != "1.1" || sc.Attr("xmlns") != "http://www.w3.org/2000/svg" {
		t.Errorf("defaults missing: %q %q", sc.Attr("version"), sc.Attr("xmlns"))
	}
	if sc.Attr("width") != "400px" {
		t.Errorf("width = %q", sc.Attr("width"))
	}

	custom := New(Attrs{"version": "2"})
	if custom.Attr("version") != "2" {
		t.Errorf("version override lost: %q", custom.Attr("version"))
	}
}

func TestUseMarkerOnce(t *testing.T) {
	sc := New(nil)
	ref1 := sc.UseMarker(ArrowMarker())
	ref2 := sc.UseMarker(ArrowMarker())
	if ref1 != "url(#arrow)" || ref2 != ref1 {
		t.Errorf("refs = %q, %q", ref1, ref2)
	}
	if n := len(sc.Markers()); n != 1 {
		t.Errorf("registered %d markers, want 1", n)
	}
	if n := strings.Count(sc.String(), "<marker"); n != 1 {
		t.Errorf("serialized %d markers, want 1", n)
	}
}

func TestArrowMarker(t *testing.T) {
	m := ArrowMarker()
	e := m.Element()
	want := map[string]string{
		"id":           "arrow",
		"viewBox":      "0 0 30 30",
		"refX":         "15",
		"refY":         "15",
		"markerWidth":  "10",
		"markerHeight": "10",
		"orient":       "auto-start-reverse",
	}
	for k, v := range want {
		if e.Attrs[k] != v {
			t.Errorf("marker %s = %q, want %q", k, e.Attrs[k], v)
		}
	}
	if len(e.Children) != 1 || e.Children[0].Attrs["d"] != "M 0 0 L 30 15 L 0 30 L 5 15 z" {
		t.Errorf("marker path = %+v", e.Children)
	}

	// Mutating a copy leaves the shared definition intact.
	m.ID = "changed"
	if ArrowMarker().ID != "arrow" {
		t.Error("ArrowMarker() is not immutable")
	}
}

func TestSerialize(t *testing.T) {
	sc := New(Attrs{"width": "10", "height": "20"})
	end := sc.UseMarker(ArrowMarker())
	sc.Add(Group(nil,
		Rect(1, 2, 3, 4, Attrs{"fill": "gold"}),
		TextAt(5, 6, "a < b & c", nil),
		Line(0, 0, 0, 10, Attrs{"marker_end": end}),
	))

	want := `<svg height="20" version="1.1" width="10" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <marker id="arrow" markerHeight="10" markerWidth="10" orient="auto-start-reverse" refX="15" refY="15" viewBox="0 0 30 30">
      <path d="M 0 0 L 30 15 L 0 30 L 5 15 z"/>
    </marker>
  </defs>
  <g>
    <rect fill="gold" height="4" width="3" x="1" y="2"/>
    <text x="5" y="6">a &lt; b &amp; c</text>
    <path d="M 0 0 L 0 10" marker-end="url(#arrow)"/>
  </g>
</svg>
`
	if got := sc.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	var buf bytes.Buffer
	n, err := sc.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(len(want)) || buf.String() != want {
		t.Errorf("WriteTo wrote %d bytes, differs from String()", n)
	}
}

func TestSerializeWithoutMarkers(t *testing.T) {
	sc := New(nil)
	sc.Add(Rect(0, 0, 1, 1, nil))
	if strings.Contains(sc.String(), "<defs>") {
		t.Error("empty defs emitted")
	}
	if sc.Len() != 1 || len(sc.Elements()) != 1 {
		t.Errorf("Len() = %d", sc.Len())
	}
}

func TestEscapesAttributeValues(t *testing.T) {
	sc := New(nil)
	sc.Add(Text(`say "hi"`, Attrs{"data-key": `x < "y"`}))
	out := sc.String()
	if strings.Contains(out, `"y"`) {
		t.Errorf("unescaped quote in %s", out)
	}
	if !strings.Contains(out, "x &lt; &#34;y&#34;") {
		t.Errorf("attribute not escaped: %s", out)
	}
}

func TestPreview(t *testing.T) {
	sc := New(nil)
	mime, data := sc.Preview()
	if mime != "image/svg+xml" {
		t.Errorf("mime = %q", mime)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("payload = %q", data)
	}
}
