// Package expr defines the parse tree consumed by the dependency-graph
// builder and the canonical rendering used as node identity.
//
// # Node Kinds
//
// The tree is a closed tagged variant. Every node is one of
//
//   - [Name]: read of a bare identifier
//   - [Constant]: literal
//   - [UnaryOp], [BinOp]: operator applications
//   - [Call]: function call
//   - [Assign]: assignment statement
//   - [Unsupported]: placeholder for syntax outside the subset
//
// and consumers dispatch with a type switch:
//
//	switch n := node.(type) {
//	case *expr.Name:
//	    ...
//	case *expr.BinOp:
//	    ...
//	}
//
// The tree is produced by a syntax front-end (see pkg/syntax) and is not
// tied to a concrete grammar.
//
// # Canonical Keys
//
// [Canonical] renders any node to a normalized string. Identical
// subexpressions share a key, so "x + x" contributes a single "x" node to the
// dependency graph no matter how often it is written.
package expr
