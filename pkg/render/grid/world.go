package grid

import (
	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/render/scene"
)

// Direction names an arrow direction in a world description.
type Direction string

const (
	Down      Direction = "down"
	Right     Direction = "right"
	DownRight Direction = "down-right"
)

// Arrow is one cell-to-cell arrow.
type Arrow struct {
	Row       int       `toml:"row"`
	Col       int       `toml:"col"`
	Direction Direction `toml:"direction"`
}

// World describes a grid drawing:
//
//	cells = [
//	  [0, 1, 0],
//	  [1, 1, 0],
//	]
//	labels = ["time", "space"]
//
//	[[arrows]]
//	row = 0
//	col = 1
//	direction = "down"
type World struct {
	Cells  [][]int  `toml:"cells"`
	Labels []string `toml:"labels"`
	Axes   *bool    `toml:"axes"`
	Arrows []Arrow  `toml:"arrows"`
}

// DecodeWorld parses a TOML world description.
func DecodeWorld(data []byte) (*World, error) {
	var w World
	md, err := toml.Decode(string(data), &w)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "decode world")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown world key %q", undecoded[0].String())
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// Validate checks cell values and arrow directions.
func (w *World) Validate() error {
	for i, row := range w.Cells {
		for j, v := range row {
			if v != 0 && v != 1 {
				return apperrors.New(apperrors.ErrCodeInvalidConfig, "cell (%d, %d) must be 0 or 1, got %d", i, j, v)
			}
		}
	}
	for _, a := range w.Arrows {
		switch a.Direction {
		case Down, Right, DownRight:
		default:
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "arrow at (%d, %d): unknown direction %q", a.Row, a.Col, a.Direction)
		}
		if a.Row < 0 || a.Col < 0 {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "arrow at (%d, %d): negative cell", a.Row, a.Col)
		}
	}
	return nil
}

// Bools returns the cells as on/off values.
func (w *World) Bools() [][]bool {
	out := make([][]bool, len(w.Cells))
	for i, row := range w.Cells {
		out[i] = make([]bool, len(row))
		for j, v := range row {
			out[i][j] = v != 0
		}
	}
	return out
}

// Draw renders the world into a new grid scene. Axes are drawn unless
// the description turns them off.
func (w *World) Draw() *scene.Scene {
	sc := NewScene()
	g := Show(w.Bools())
	if w.Axes == nil || *w.Axes {
		LabelAxis(g, w.Labels...)
	}
	for _, a := range w.Arrows {
		switch a.Direction {
		case Down:
			ArrowDown(g, a.Row, a.Col)
		case Right:
			ArrowRight(g, a.Row, a.Col)
		case DownRight:
			ArrowDownRight(g, a.Row, a.Col)
		}
	}
	sc.Add(g)
	return sc
}
