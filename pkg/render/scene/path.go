package scene

import "strings"

// Cmd is one path-data command with its numeric arguments.
type Cmd struct {
	Op   string
	Args []float64
}

func M(x, y float64) Cmd { return Cmd{Op: "M", Args: []float64{x, y}} }
func L(x, y float64) Cmd { return Cmd{Op: "L", Args: []float64{x, y}} }
func Z() Cmd             { return Cmd{Op: "z"} }

// A is an elliptical arc to (x, y).
func A(rx, ry, rotation, largeArc, sweep, x, y float64) Cmd {
	return Cmd{Op: "A", Args: []float64{rx, ry, rotation, largeArc, sweep, x, y}}
}

// PathData joins commands and their arguments with single spaces:
// PathData(M(0, 0), L(30, 15), Z()) is "M 0 0 L 30 15 z".
func PathData(cmds ...Cmd) string {
	var b strings.Builder
	for i, c := range cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.Op)
		for _, a := range c.Args {
			b.WriteByte(' ')
			b.WriteString(Num(a))
		}
	}
	return b.String()
}
