package depgraph

import (
	"errors"
	"fmt"

	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/expr"
)

var (
	// ErrUnsupportedConstruct is returned by [Build] for a call whose callee
	// is not a bare name, an assignment that does not bind exactly one bare
	// name, or any syntax outside the supported subset.
	ErrUnsupportedConstruct = errors.New("unsupported construct")

	// ErrDuplicateDefinition is returned by [Build] when an assignment target
	// is already present in the symbol table, either from an earlier
	// assignment, an earlier read, or a read inside its own value.
	ErrDuplicateDefinition = errors.New("duplicate definition")
)

// Build walks the program once, statement by statement, and returns the
// symbol table and final results.
//
// The walk is post-order and left-to-right: operands are registered before
// the expression that reads them. Liveness depends on this order, a read of
// an assigned name demotes it from final to intermediate the moment the read
// is visited.
//
// Errors abort the walk; no partial graph is returned. Errors carry a
// [apperrors.Code] and wrap one of the sentinels above, so both
// errors.Is(err, ErrDuplicateDefinition) and
// apperrors.Is(err, apperrors.ErrCodeDuplicateDefinition) work.
func Build(p *expr.Program) (*Graph, error) {
	b := &builder{table: newTable(), finals: &Finals{}}
	if p != nil {
		for _, stmt := range p.Stmts {
			if _, err := b.visit(stmt); err != nil {
				return nil, err
			}
		}
	}
	return &Graph{Table: b.table, Finals: b.finals}, nil
}

type builder struct {
	table  *Table
	finals *Finals
}

// visit registers n and everything below it, returning n's key.
func (b *builder) visit(n expr.Node) (string, error) {
	switch n := n.(type) {
	case *expr.Name:
		return b.visitName(n), nil
	case *expr.Constant:
		if !b.table.Has(n.Text) {
			b.table.put(Computation{Key: n.Text})
		}
		return n.Text, nil
	case *expr.UnaryOp:
		operand, err := b.visit(n.Operand)
		if err != nil {
			return "", err
		}
		key := expr.Canonical(n)
		b.table.put(Computation{Key: key, Deps: []string{operand}})
		return key, nil
	case *expr.BinOp:
		left, err := b.visit(n.Left)
		if err != nil {
			return "", err
		}
		right, err := b.visit(n.Right)
		if err != nil {
			return "", err
		}
		key := expr.Canonical(n)
		b.table.put(Computation{Key: key, Deps: []string{left, right}})
		return key, nil
	case *expr.Call:
		return b.visitCall(n)
	case *expr.Assign:
		return b.visitAssign(n)
	case *expr.Unsupported:
		return "", unsupported(n, "%s %q is not supported", n.Construct, n.Text)
	case nil:
		return "", apperrors.New(apperrors.ErrCodeInternal, "nil node in program")
	default:
		return "", unsupported(n, "node kind %s is not supported", n.Kind())
	}
}

func (b *builder) visitName(n *expr.Name) string {
	if !b.table.Has(n.ID) {
		b.table.put(Computation{Key: n.ID})
	}
	b.finals.remove(n.ID)
	return n.ID
}

func (b *builder) visitCall(n *expr.Call) (string, error) {
	if _, ok := n.Callee.(*expr.Name); !ok {
		return "", unsupported(n, "callee of %q must be a bare name", expr.Canonical(n))
	}
	args := make([]string, 0, len(n.Args))
	for _, arg := range n.Args {
		key, err := b.visit(arg)
		if err != nil {
			return "", err
		}
		args = append(args, key)
	}
	key := expr.Canonical(n)
	b.table.put(Computation{Key: key, Deps: args})
	return key, nil
}

func (b *builder) visitAssign(n *expr.Assign) (string, error) {
	if len(n.Targets) != 1 {
		return "", unsupported(n, "assignment must have exactly one target, got %d", len(n.Targets))
	}
	target, ok := n.Targets[0].(*expr.Name)
	if !ok {
		return "", unsupported(n, "assignment target %q must be a bare name", expr.Canonical(n.Targets[0]))
	}
	if b.table.Has(target.ID) {
		return "", duplicate(n, "%q is already defined", target.ID)
	}
	value, err := b.visit(n.Value)
	if err != nil {
		return "", err
	}
	// The value may have read the target, which would make it depend on itself.
	if b.table.Has(target.ID) {
		return "", duplicate(n, "%q is read by its own definition", target.ID)
	}
	b.table.put(Computation{Key: target.ID, Deps: []string{value}})
	b.finals.add(target.ID)
	return target.ID, nil
}

func unsupported(n expr.Node, format string, args ...any) error {
	return apperrors.Wrap(apperrors.ErrCodeUnsupportedConstruct, ErrUnsupportedConstruct,
		"%s", located(n, format, args...))
}

func duplicate(n expr.Node, format string, args ...any) error {
	return apperrors.Wrap(apperrors.ErrCodeDuplicateDefinition, ErrDuplicateDefinition,
		"%s", located(n, format, args...))
}

func located(n expr.Node, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if p := n.Pos(); p.IsValid() {
		return fmt.Sprintf("line %s: %s", p, msg)
	}
	return msg
}
