package expr

import "strings"

// precedence ranks binary operators, higher binds tighter. Operators not in
// the table rank 0; the rendering stays injective because the same table is
// used for every node.
var precedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3, "<": 3, "<=": 3, ">": 3, ">=": 3,
	"+": 4, "-": 4, "|": 4, "^": 4,
	"*": 5, "/": 5, "%": 5, "<<": 5, ">>": 5, "&": 5, "&^": 5,
}

// atomic is the rank of every operand that never needs parentheses.
const atomic = 10

// Canonical renders n to its canonical key. Two syntactically identical
// subexpressions render identically and different ones render differently;
// no algebraic simplification is applied, so "x + x" and "2 * x" differ.
//
// Binary operands get parentheses only where the tree shape requires them:
// "(a + b) * c" but "a + b * c", and "a - (b - c)" since operators group
// to the left.
func Canonical(n Node) string {
	var b strings.Builder
	write(&b, n)
	return b.String()
}

func rank(n Node) int {
	if bin, ok := n.(*BinOp); ok {
		return precedence[bin.Op]
	}
	return atomic
}

func write(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Name:
		b.WriteString(n.ID)
	case *Constant:
		b.WriteString(n.Text)
	case *UnaryOp:
		b.WriteString(n.Op)
		writeOperand(b, n.Operand, isOperator(n.Operand))
	case *BinOp:
		p := precedence[n.Op]
		writeOperand(b, n.Left, rank(n.Left) < p)
		b.WriteString(" ")
		b.WriteString(n.Op)
		b.WriteString(" ")
		writeOperand(b, n.Right, rank(n.Right) <= p)
	case *Call:
		if _, ok := n.Callee.(*Name); ok {
			write(b, n.Callee)
		} else {
			writeOperand(b, n.Callee, isOperator(n.Callee))
		}
		b.WriteString("(")
		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			write(b, arg)
		}
		b.WriteString(")")
	case *Assign:
		for _, t := range n.Targets {
			write(b, t)
			b.WriteString(" = ")
		}
		write(b, n.Value)
	case *Unsupported:
		b.WriteString(n.Text)
	}
}

func writeOperand(b *strings.Builder, n Node, paren bool) {
	if paren {
		b.WriteString("(")
	}
	write(b, n)
	if paren {
		b.WriteString(")")
	}
}

func isOperator(n Node) bool {
	switch n.(type) {
	case *UnaryOp, *BinOp:
		return true
	}
	return false
}
