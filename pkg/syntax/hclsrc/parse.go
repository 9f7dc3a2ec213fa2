// Package hclsrc parses HCL attribute bodies into an [expr.Program].
//
// Each top-level attribute is one assignment, taken in source order:
//
//	a = 1
//	b = a + 2
//	c = max(b, a) * -a
//
// HCL forbids setting an attribute twice, so a redefinition is reported
// here as a duplicate definition rather than by the graph builder. Blocks,
// templates, traversals and collection expressions are kept as
// [expr.Unsupported].
//
// [expr.Program]: github.com/matzehuels/exprflow/pkg/expr.Program
// [expr.Unsupported]: github.com/matzehuels/exprflow/pkg/expr.Unsupported
package hclsrc

import (
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/matzehuels/exprflow/pkg/depgraph"
	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/expr"
)

// Language is the language name under which this front-end is registered.
const Language = "hcl"

const redefinedSummary = "Attribute redefined"

var binaryOps = map[*hclsyntax.Operation]string{
	hclsyntax.OpLogicalOr:          "||",
	hclsyntax.OpLogicalAnd:         "&&",
	hclsyntax.OpEqual:              "==",
	hclsyntax.OpNotEqual:           "!=",
	hclsyntax.OpGreaterThan:        ">",
	hclsyntax.OpGreaterThanOrEqual: ">=",
	hclsyntax.OpLessThan:           "<",
	hclsyntax.OpLessThanOrEqual:    "<=",
	hclsyntax.OpAdd:                "+",
	hclsyntax.OpSubtract:           "-",
	hclsyntax.OpMultiply:           "*",
	hclsyntax.OpDivide:             "/",
	hclsyntax.OpModulo:             "%",
}

// Parse converts the attributes of src into assignments. filename is used
// in diagnostics only.
func Parse(filename string, src []byte) (*expr.Program, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		for _, d := range diags {
			if d.Severity == hcl.DiagError && d.Summary == redefinedSummary {
				return nil, apperrors.Wrap(apperrors.ErrCodeDuplicateDefinition, depgraph.ErrDuplicateDefinition,
					"%s: %s", rangeString(d.Subject), d.Detail)
			}
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSyntax, diags, "parse %s", filename)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "%s: unexpected body type %T", filename, file.Body)
	}

	c := &converter{src: src}
	var stmts []expr.Node

	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	slices.SortFunc(attrs, func(a, b *hclsyntax.Attribute) int {
		return a.SrcRange.Start.Byte - b.SrcRange.Start.Byte
	})
	for _, attr := range attrs {
		stmts = append(stmts, &expr.Assign{
			At:      pos(attr.SrcRange.Start),
			Targets: []expr.Node{&expr.Name{At: pos(attr.NameRange.Start), ID: attr.Name}},
			Value:   c.expr(attr.Expr),
		})
	}
	for _, block := range body.Blocks {
		stmts = append(stmts, c.unsupported(block.Range(), "block"))
	}
	slices.SortStableFunc(stmts, func(a, b expr.Node) int {
		if a.Pos().Line != b.Pos().Line {
			return a.Pos().Line - b.Pos().Line
		}
		return a.Pos().Column - b.Pos().Column
	})

	return &expr.Program{Stmts: stmts}, nil
}

// ParseExpr converts a single HCL expression.
func ParseExpr(src string) (expr.Node, error) {
	e, diags := hclsyntax.ParseExpression([]byte(src), "", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSyntax, diags, "parse expression %q", src)
	}
	c := &converter{src: []byte(src)}
	return c.expr(e), nil
}

func pos(p hcl.Pos) expr.Pos {
	return expr.Pos{Line: p.Line, Column: p.Column}
}

func rangeString(r *hcl.Range) string {
	if r == nil {
		return "-"
	}
	return r.String()
}

type converter struct {
	src []byte
}

func (c *converter) text(r hcl.Range) string {
	if r.Start.Byte < 0 || r.End.Byte > len(c.src) || r.Start.Byte > r.End.Byte {
		return ""
	}
	return string(r.SliceBytes(c.src))
}

func (c *converter) unsupported(r hcl.Range, construct string) *expr.Unsupported {
	return &expr.Unsupported{At: pos(r.Start), Construct: construct, Text: c.text(r)}
}

func (c *converter) expr(e hclsyntax.Expression) expr.Node {
	switch e := e.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) == 1 {
			return &expr.Name{At: pos(e.SrcRange.Start), ID: e.Traversal.RootName()}
		}
		return &expr.Unsupported{
			At:        pos(e.SrcRange.Start),
			Construct: "attribute access",
			Text:      string(hclwrite.TokensForTraversal(e.Traversal).Bytes()),
		}
	case *hclsyntax.LiteralValueExpr:
		return c.literal(e.Val, e.SrcRange)
	case *hclsyntax.TemplateExpr:
		if !e.IsStringLiteral() {
			return c.unsupported(e.SrcRange, "template")
		}
		v, diags := e.Value(nil)
		if diags.HasErrors() {
			return c.unsupported(e.SrcRange, "template")
		}
		return c.literal(v, e.SrcRange)
	case *hclsyntax.ParenthesesExpr:
		return c.expr(e.Expression)
	case *hclsyntax.UnaryOpExpr:
		switch e.Op {
		case hclsyntax.OpNegate:
			return &expr.UnaryOp{At: pos(e.SrcRange.Start), Op: "-", Operand: c.expr(e.Val)}
		case hclsyntax.OpLogicalNot:
			return &expr.UnaryOp{At: pos(e.SrcRange.Start), Op: "!", Operand: c.expr(e.Val)}
		}
		return c.unsupported(e.SrcRange, "unary operator")
	case *hclsyntax.BinaryOpExpr:
		op, ok := binaryOps[e.Op]
		if !ok {
			return c.unsupported(e.SrcRange, "binary operator")
		}
		return &expr.BinOp{At: pos(e.SrcRange.Start), Op: op, Left: c.expr(e.LHS), Right: c.expr(e.RHS)}
	case *hclsyntax.FunctionCallExpr:
		if e.ExpandFinal {
			return c.unsupported(e.Range(), "variadic call")
		}
		call := &expr.Call{
			At:     pos(e.NameRange.Start),
			Callee: &expr.Name{At: pos(e.NameRange.Start), ID: e.Name},
		}
		for _, arg := range e.Args {
			call.Args = append(call.Args, c.expr(arg))
		}
		return call
	default:
		return c.unsupported(e.Range(), exprConstruct(e))
	}
}

// literal keeps the source text of a constant so that "1.0" and "1" stay
// distinct keys. HCL folds a leading minus into number literals; those
// become a negation of the written magnitude so "-5" has the same shape in
// every front-end.
func (c *converter) literal(v cty.Value, r hcl.Range) expr.Node {
	text := strings.TrimSpace(c.text(r))
	if text == "" {
		text = string(hclwrite.TokensForValue(v).Bytes())
	}
	if v.IsKnown() && !v.IsNull() && v.Type() == cty.Number && v.LessThan(cty.Zero).True() {
		magnitude, ok := strings.CutPrefix(text, "-")
		if !ok {
			magnitude = string(hclwrite.TokensForValue(v.Negate()).Bytes())
		}
		return &expr.UnaryOp{
			At:      pos(r.Start),
			Op:      "-",
			Operand: &expr.Constant{At: pos(r.Start), Text: strings.TrimSpace(magnitude)},
		}
	}
	return &expr.Constant{At: pos(r.Start), Text: text}
}

func exprConstruct(e hclsyntax.Expression) string {
	switch e.(type) {
	case *hclsyntax.ConditionalExpr:
		return "conditional"
	case *hclsyntax.TupleConsExpr:
		return "tuple"
	case *hclsyntax.ObjectConsExpr:
		return "object"
	case *hclsyntax.ForExpr:
		return "for expression"
	case *hclsyntax.IndexExpr:
		return "index expression"
	case *hclsyntax.SplatExpr:
		return "splat"
	case *hclsyntax.RelativeTraversalExpr:
		return "attribute access"
	case *hclsyntax.TemplateWrapExpr:
		return "template"
	default:
		return "expression"
	}
}
