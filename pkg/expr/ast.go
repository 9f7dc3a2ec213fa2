package expr

import "fmt"

// Kind identifies the variant of a [Node].
type Kind int

const (
	KindName Kind = iota
	KindConstant
	KindUnaryOp
	KindBinOp
	KindCall
	KindAssign
	// KindUnsupported marks syntax outside the supported subset. Front-ends
	// emit it instead of failing so that rejection happens in one place.
	KindUnsupported
)

var kindNames = [...]string{
	KindName:        "name",
	KindConstant:    "constant",
	KindUnaryOp:     "unary",
	KindBinOp:       "binary",
	KindCall:        "call",
	KindAssign:      "assign",
	KindUnsupported: "unsupported",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Pos is a 1-based source position. The zero value means "unknown".
type Pos struct {
	Line   int
	Column int
}

// IsValid reports whether the position carries a line number.
func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is a parse-tree node. The set of implementations is closed: callers
// dispatch with a type switch over the pointer types declared in this file.
type Node interface {
	Kind() Kind
	Pos() Pos
	node()
}

// Name is a read of a bare identifier.
type Name struct {
	At Pos
	ID string
}

// Constant is a literal. Text is the literal as the front-end spells it and
// doubles as its canonical key.
type Constant struct {
	At   Pos
	Text string
}

// UnaryOp applies a prefix operator such as "-" or "!".
type UnaryOp struct {
	At      Pos
	Op      string
	Operand Node
}

// BinOp applies an infix operator.
type BinOp struct {
	At    Pos
	Op    string
	Left  Node
	Right Node
}

// Call invokes Callee with positional Args. Only a *Name callee is accepted
// by the graph builder; other callees are kept so they can be reported.
type Call struct {
	At     Pos
	Callee Node
	Args   []Node
}

// Assign binds Value to Targets. Only a single *Name target is accepted by
// the graph builder.
type Assign struct {
	At      Pos
	Targets []Node
	Value   Node
}

// Unsupported stands in for syntax outside the subset. Construct names the
// construct for diagnostics; Text is its source spelling.
type Unsupported struct {
	At        Pos
	Construct string
	Text      string
}

func (*Name) Kind() Kind        { return KindName }
func (*Constant) Kind() Kind    { return KindConstant }
func (*UnaryOp) Kind() Kind     { return KindUnaryOp }
func (*BinOp) Kind() Kind       { return KindBinOp }
func (*Call) Kind() Kind        { return KindCall }
func (*Assign) Kind() Kind      { return KindAssign }
func (*Unsupported) Kind() Kind { return KindUnsupported }

func (n *Name) Pos() Pos        { return n.At }
func (n *Constant) Pos() Pos    { return n.At }
func (n *UnaryOp) Pos() Pos     { return n.At }
func (n *BinOp) Pos() Pos       { return n.At }
func (n *Call) Pos() Pos        { return n.At }
func (n *Assign) Pos() Pos      { return n.At }
func (n *Unsupported) Pos() Pos { return n.At }

func (*Name) node()        {}
func (*Constant) node()    {}
func (*UnaryOp) node()     {}
func (*BinOp) node()       {}
func (*Call) node()        {}
func (*Assign) node()      {}
func (*Unsupported) node() {}

// Program is an ordered statement sequence. Each statement is either an
// *Assign or a bare expression evaluated for its reads.
type Program struct {
	Stmts []Node
}

// Len returns the number of statements.
func (p *Program) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Stmts)
}
