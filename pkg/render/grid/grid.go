// Package grid draws cellular worlds: a square grid of on/off cells with
// labeled axes and cell-to-cell arrows, on the same scene primitives as the
// data-flow diagrams.
//
//	sc := grid.NewScene()
//	g := grid.Show(world)
//	grid.LabelAxis(g)
//	grid.ArrowDown(g, 0, 0)
//	sc.Add(g)
//
// Cells sit on a 40px pitch; cell (i, j) is row i, column j.
package grid

import (
	"github.com/matzehuels/exprflow/pkg/render/scene"
)

const (
	pitch    = 40
	inset    = 5
	cellSize = 35
	center   = 25
	step     = 30
)

// Default axis labels: rows advance in time, columns span space.
const (
	DefaultRowLabel    = "time"
	DefaultColumnLabel = "space"
)

// NewScene creates the 400×400 canvas used for grids, with the arrow marker
// already registered.
func NewScene() *scene.Scene {
	sc := scene.New(scene.Attrs{
		"width":   "400px",
		"height":  "400px",
		"viewBox": "0 0 450 450",
	})
	sc.UseMarker(scene.ArrowMarker())
	return sc
}

// Show returns a group with one box per cell: orange when set, lightblue
// otherwise.
func Show(world [][]bool) *scene.Element {
	g := scene.Group(nil)
	for i, row := range world {
		for j, cell := range row {
			fill := "lightblue"
			if cell {
				fill = "orange"
			}
			g.Append(scene.Rect(pitch*float64(j)+inset, pitch*float64(i)+inset, cellSize, cellSize, scene.Attrs{
				"stroke": "black",
				"fill":   fill,
			}))
		}
	}
	return g
}

// LabelAxis adds the vertical and horizontal axis arrows to g with their
// labels. Missing labels default to [DefaultRowLabel] and
// [DefaultColumnLabel].
func LabelAxis(g *scene.Element, labels ...string) *scene.Element {
	row, col := DefaultRowLabel, DefaultColumnLabel
	if len(labels) > 0 {
		row = labels[0]
	}
	if len(labels) > 1 {
		col = labels[1]
	}

	end := scene.ArrowMarker().Ref()
	text := func(label, transform string) *scene.Element {
		return scene.Text(label, scene.Attrs{
			"font_size":         "20",
			"text_anchor":       "middle",
			"dominant_baseline": "hanging",
			"transform":         transform,
		})
	}
	return g.Append(
		scene.Line(415, 10, 415, 385, scene.Attrs{"stroke": "black", "marker_end": end}),
		text(row, "translate(425, 200) rotate(-90)"),
		scene.Line(10, 415, 385, 415, scene.Attrs{"stroke": "black", "marker_end": end}),
		text(col, "translate(200, 425)"),
	)
}

// ArrowDown draws an arrow from cell (i, j) towards cell (i+1, j).
func ArrowDown(g *scene.Element, i, j int) { arrow(g, i, j, 0, 1) }

// ArrowRight draws an arrow from cell (i, j) towards cell (i, j+1).
func ArrowRight(g *scene.Element, i, j int) { arrow(g, i, j, 1, 0) }

// ArrowDownRight draws an arrow from cell (i, j) towards cell (i+1, j+1).
func ArrowDownRight(g *scene.Element, i, j int) { arrow(g, i, j, 1, 1) }

func arrow(g *scene.Element, i, j int, dx, dy float64) {
	x := pitch*float64(j) + center
	y := pitch*float64(i) + center
	g.Append(scene.Line(x, y, x+step*dx, y+step*dy, scene.Attrs{
		"stroke":     "black",
		"marker_end": scene.ArrowMarker().Ref(),
	}))
}
