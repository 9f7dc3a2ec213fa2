// Package depgraph turns a statement sequence into a deduplicated
// dependency graph.
//
// # Overview
//
// [Build] walks an [expr.Program] once and produces a [Graph]:
//
//   - [Table]: every syntactically distinct subexpression, keyed by its
//     canonical text, in the order it was first seen
//   - [Finals]: assignment targets that no later statement reads
//
// Each entry is a [Computation] listing the keys it reads. Names and
// literals have no dependencies (terminals); operators, calls and
// assignments depend on their operands.
//
// # Example
//
// For
//
//	a = 1
//	b = a + 2
//	c = b * a
//
// the table holds, in order, 1, a, 2, a + 2, b, b * a, c, and the final
// results are [c]: a and b stopped being final once b and c read them.
//
// # Errors
//
// [ErrUnsupportedConstruct] and [ErrDuplicateDefinition] are the only build
// failures. Both are deterministic properties of the input and abort the
// build; there is nothing to retry.
//
// The target of an assignment is checked both before and after its value
// is visited. "a = a + 1" with a unseen is therefore a duplicate definition:
// accepting it would overwrite the terminal a with a computation that reads
// itself, leaving an edge that points backwards in discovery order.
//
// # Concurrency
//
// Build allocates a fresh table per call and touches no shared state, so
// concurrent builds need no coordination. A returned Graph must not be
// modified; it is safe for concurrent reads.
//
// [expr.Program]: github.com/matzehuels/exprflow/pkg/expr.Program
package depgraph
