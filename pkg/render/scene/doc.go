// Package scene builds SVG documents from explicit element trees.
//
// A [Scene] is created with [New], owned by the caller, and passed to
// whatever draws into it; there is no package-level document. Elements are
// plain values built by [Rect], [Text], [Arc], [Line], [Path] and [Group],
// each taking an [Attrs] map for presentation attributes:
//
//	sc := scene.New(scene.Attrs{"width": "600", "height": "350"})
//	end := sc.UseMarker(scene.ArrowMarker())
//	sc.Add(scene.Rect(5, 12, 170, 25, scene.Attrs{"fill": "gold"}))
//	sc.Add(scene.Arc(175, 30, 175, 70, 10, scene.Attrs{"marker_end": end}))
//	svg := sc.Bytes()
//
// Attribute names pass through [NormalizeName], so "marker_end" and
// "marker-end" are the same attribute and "class_" becomes "class".
//
// # Markers
//
// [Scene.UseMarker] registers a marker definition in the document's <defs>
// once, no matter how many elements reference it, and returns the
// url(#id) reference to put in marker-start or marker-end.
//
// # Output
//
// Serialization is deterministic: attributes are written sorted by name,
// children in insertion order, text and attribute values XML-escaped.
package scene
