package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/exprflow/pkg/depgraph"
	"github.com/matzehuels/exprflow/pkg/layout"
	"github.com/matzehuels/exprflow/pkg/observability"
)

// ComputeLayout places the nodes and edges of g.
func ComputeLayout(ctx context.Context, g *depgraph.Graph, opts layout.Options) (layout.Layout, error) {
	if err := ctx.Err(); err != nil {
		return layout.Layout{}, err
	}
	if err := opts.Validate(); err != nil {
		return layout.Layout{}, err
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.Table.Len())

	start := time.Now()
	l := layout.Compute(g, opts)
	hooks.OnLayoutComplete(ctx, time.Since(start), nil)
	return l, nil
}
