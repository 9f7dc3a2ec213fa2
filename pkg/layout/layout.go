package layout

import (
	"github.com/matzehuels/exprflow/pkg/depgraph"
)

// Rect is an axis-aligned box with its top-left corner at (X, Y).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Node is a placed table entry.
type Node struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Role   Role    `json:"role"`
	Index  int     `json:"index"`
	Box    Rect    `json:"box"`
	LabelX float64 `json:"label_x"`
	LabelY float64 `json:"label_y"`
}

// Edge is a connector from a dependency (row From) to the computation that
// reads it (row To).
type Edge struct {
	From    int     `json:"from"`
	To      int     `json:"to"`
	FromKey string  `json:"from_key"`
	ToKey   string  `json:"to_key"`
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
	Radius  float64 `json:"radius"`
}

// Span returns the number of rows the edge crosses.
func (e Edge) Span() int { return e.To - e.From }

// Layout is the computed placement of a graph.
type Layout struct {
	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Node returns the node placed for key.
func (l Layout) Node(key string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.Key == key {
			return n, true
		}
	}
	return Node{}, false
}

// CountRole returns how many nodes have role r.
func (l Layout) CountRole(r Role) int {
	n := 0
	for _, node := range l.Nodes {
		if node.Role == r {
			n++
		}
	}
	return n
}

type edgeKey struct{ from, to int }

// Compute places every key of g in discovery order and connects each
// dependency to its dependent. A dependency read more than once by the same
// computation, as in "x + x", yields a single edge.
func Compute(g *depgraph.Graph, opts Options) Layout {
	if g == nil || g.Table == nil {
		return Layout{Width: opts.Width, Height: opts.Margin}
	}

	n := g.Table.Len()
	l := Layout{
		Nodes:  make([]Node, 0, n),
		Width:  opts.Width,
		Height: float64(n)*opts.RowHeight + opts.Margin,
	}

	for i, c := range g.Table.All() {
		row := float64(i) * opts.RowHeight
		l.Nodes = append(l.Nodes, Node{
			Key:   c.Key,
			Label: c.Key,
			Role:  Classify(g, c.Key),
			Index: i,
			Box: Rect{
				X:      opts.BoxX,
				Y:      row + opts.BoxOffset,
				Width:  opts.BoxWidth,
				Height: opts.BoxHeight,
			},
			LabelX: opts.LabelX,
			LabelY: row + opts.LabelOffset,
		})
	}

	seen := make(map[edgeKey]struct{})
	for to, c := range g.Table.All() {
		for _, dep := range c.Deps {
			from, ok := g.Table.Index(dep)
			if !ok {
				continue
			}
			k := edgeKey{from, to}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			l.Edges = append(l.Edges, Edge{
				From:    from,
				To:      to,
				FromKey: dep,
				ToKey:   c.Key,
				X1:      opts.ConnectorX,
				Y1:      float64(from)*opts.RowHeight + opts.EdgeStartOffset,
				X2:      opts.ConnectorX,
				Y2:      float64(to)*opts.RowHeight + opts.EdgeEndOffset,
				Radius:  opts.Curvature * float64(to-from),
			})
		}
	}
	return l
}
