// Package gosrc parses Go-style statement lists into an [expr.Program].
//
// Input is a sequence of assignments and expression statements using Go's
// expression grammar:
//
//	a = 1
//	b := a + 2
//	c = max(b, a) * -a
//
// The source is parsed with the standard go/parser as the body of a
// function, then converted node by node. Syntax outside the subset (field
// selectors, index expressions, control flow, compound assignment, ...) is
// kept as [expr.Unsupported] so the graph builder can report it.
//
// [expr.Program]: github.com/matzehuels/exprflow/pkg/expr.Program
// [expr.Unsupported]: github.com/matzehuels/exprflow/pkg/expr.Unsupported
package gosrc

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"

	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/expr"
)

// Language is the language name under which this front-end is registered.
const Language = "go"

const (
	header      = "package exprflow\nfunc _() {\n"
	headerLines = 2
	footer      = "\n}\n"
)

// Parse converts src into a program. filename is used in error messages only.
func Parse(filename string, src []byte) (*expr.Program, error) {
	wrapped := make([]byte, 0, len(header)+len(src)+len(footer))
	wrapped = append(wrapped, header...)
	wrapped = append(wrapped, src...)
	wrapped = append(wrapped, footer...)

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, wrapped, parser.SkipObjectResolution)
	if err != nil {
		return nil, syntaxError(filename, err)
	}
	if len(f.Decls) != 1 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidSyntax, "%s: unbalanced braces", filename)
	}
	fn, ok := f.Decls[0].(*ast.FuncDecl)
	if !ok || fn.Body == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidSyntax, "%s: expected statements", filename)
	}

	c := &converter{fset: fset, src: wrapped, lineOffset: headerLines}
	prog := &expr.Program{}
	for _, stmt := range fn.Body.List {
		if n := c.stmt(stmt); n != nil {
			prog.Stmts = append(prog.Stmts, n)
		}
	}
	return prog, nil
}

// ParseExpr converts a single expression.
func ParseExpr(src string) (expr.Node, error) {
	fset := token.NewFileSet()
	e, err := parser.ParseExprFrom(fset, "", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSyntax, err, "parse expression %q", src)
	}
	c := &converter{fset: fset, src: []byte(src)}
	return c.expr(e), nil
}

func syntaxError(filename string, err error) error {
	var list scanner.ErrorList
	if !errors.As(err, &list) || len(list) == 0 {
		return apperrors.Wrap(apperrors.ErrCodeInvalidSyntax, err, "parse %s", filename)
	}
	first := list[0]
	line := max(first.Pos.Line-headerLines, 1)
	return apperrors.New(apperrors.ErrCodeInvalidSyntax, "%s:%d:%d: %s", filename, line, first.Pos.Column, first.Msg)
}

type converter struct {
	fset       *token.FileSet
	src        []byte
	lineOffset int
}

func (c *converter) pos(p token.Pos) expr.Pos {
	if !p.IsValid() {
		return expr.Pos{}
	}
	position := c.fset.Position(p)
	return expr.Pos{Line: position.Line - c.lineOffset, Column: position.Column}
}

func (c *converter) text(n ast.Node) string {
	start, end := c.fset.Position(n.Pos()).Offset, c.fset.Position(n.End()).Offset
	if start < 0 || end > len(c.src) || start > end {
		return ""
	}
	return string(c.src[start:end])
}

func (c *converter) unsupported(n ast.Node, construct string) *expr.Unsupported {
	return &expr.Unsupported{At: c.pos(n.Pos()), Construct: construct, Text: c.text(n)}
}

func (c *converter) stmt(s ast.Stmt) expr.Node {
	switch s := s.(type) {
	case *ast.EmptyStmt:
		return nil
	case *ast.ExprStmt:
		return c.expr(s.X)
	case *ast.AssignStmt:
		if s.Tok != token.ASSIGN && s.Tok != token.DEFINE {
			return c.unsupported(s, "compound assignment")
		}
		a := &expr.Assign{At: c.pos(s.Pos())}
		for _, lhs := range s.Lhs {
			a.Targets = append(a.Targets, c.expr(lhs))
		}
		if len(s.Rhs) == 1 {
			a.Value = c.expr(s.Rhs[0])
		} else {
			a.Value = &expr.Unsupported{At: c.pos(s.Rhs[0].Pos()), Construct: "multiple values", Text: c.text(s)}
		}
		return a
	default:
		return c.unsupported(s, stmtConstruct(s))
	}
}

func (c *converter) expr(e ast.Expr) expr.Node {
	switch e := e.(type) {
	case *ast.Ident:
		return &expr.Name{At: c.pos(e.Pos()), ID: e.Name}
	case *ast.BasicLit:
		return &expr.Constant{At: c.pos(e.Pos()), Text: e.Value}
	case *ast.ParenExpr:
		return c.expr(e.X)
	case *ast.UnaryExpr:
		switch e.Op {
		case token.SUB, token.ADD, token.NOT, token.XOR:
			return &expr.UnaryOp{At: c.pos(e.Pos()), Op: e.Op.String(), Operand: c.expr(e.X)}
		}
		return c.unsupported(e, "unary "+e.Op.String())
	case *ast.BinaryExpr:
		return &expr.BinOp{At: c.pos(e.Pos()), Op: e.Op.String(), Left: c.expr(e.X), Right: c.expr(e.Y)}
	case *ast.CallExpr:
		if e.Ellipsis.IsValid() {
			return c.unsupported(e, "variadic call")
		}
		call := &expr.Call{At: c.pos(e.Pos()), Callee: c.expr(e.Fun)}
		for _, arg := range e.Args {
			call.Args = append(call.Args, c.expr(arg))
		}
		return call
	default:
		return c.unsupported(e, exprConstruct(e))
	}
}

func exprConstruct(e ast.Expr) string {
	switch e.(type) {
	case *ast.SelectorExpr:
		return "selector"
	case *ast.IndexExpr, *ast.IndexListExpr:
		return "index expression"
	case *ast.SliceExpr:
		return "slice expression"
	case *ast.StarExpr:
		return "dereference"
	case *ast.CompositeLit:
		return "composite literal"
	case *ast.FuncLit:
		return "function literal"
	case *ast.TypeAssertExpr:
		return "type assertion"
	case *ast.KeyValueExpr:
		return "key-value pair"
	default:
		return "expression"
	}
}

func stmtConstruct(s ast.Stmt) string {
	switch s.(type) {
	case *ast.IfStmt:
		return "if statement"
	case *ast.ForStmt, *ast.RangeStmt:
		return "for loop"
	case *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
		return "switch statement"
	case *ast.ReturnStmt:
		return "return statement"
	case *ast.DeclStmt:
		return "declaration"
	case *ast.IncDecStmt:
		return "increment"
	case *ast.BlockStmt:
		return "block"
	default:
		return "statement"
	}
}
