// Package layout places the nodes and connectors of a dependency graph.
//
// The layout is a single column: every table key gets one row, in discovery
// order, so a dependency always sits above the computations that read it.
// Connectors leave the right edge of the dependency's box and curve back
// into the dependent's box; the curve radius grows with the number of rows
// spanned, which keeps long connectors outside short ones.
//
// # Roles
//
// Each node is classified by [Classify]:
//
//   - [Final]: an assignment target nothing reads (highest priority)
//   - [Terminal]: no dependencies (names, literals, zero-argument calls)
//   - [Intermediate]: everything else
//
// # Geometry
//
// All coordinates derive from [Options]; [DefaultOptions] gives 50px rows
// with 170×25 boxes on a 600px canvas:
//
//	box     x = BoxX            y = i·RowHeight + BoxOffset
//	label   x = LabelX          y = i·RowHeight + LabelOffset
//	edge    (ConnectorX, from·RowHeight + EdgeStartOffset) →
//	        (ConnectorX, to·RowHeight + EdgeEndOffset), r = Curvature·(to−from)
//	canvas  Width × (n·RowHeight + Margin)
//
// [Compute] is pure and deterministic: the same graph and options always
// produce the same layout.
package layout
