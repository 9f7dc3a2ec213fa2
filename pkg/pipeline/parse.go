package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/exprflow/pkg/depgraph"
	"github.com/matzehuels/exprflow/pkg/expr"
	"github.com/matzehuels/exprflow/pkg/observability"
	"github.com/matzehuels/exprflow/pkg/syntax"
)

// Parse converts opts.Source into a program using the front-end for
// opts.Language.
func Parse(ctx context.Context, opts Options) (*expr.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.Language, opts.Filename)

	start := time.Now()
	prog, err := syntax.Parse(opts.Language, opts.Filename, []byte(opts.Source))
	hooks.OnParseComplete(ctx, opts.Language, opts.Filename, prog.Len(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// Build walks a program into its dependency graph.
func Build(ctx context.Context, prog *expr.Program) (*depgraph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	g, err := depgraph.Build(prog)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	observability.Pipeline().OnBuildComplete(ctx, g.Table.Len(), g.EdgeCount(), time.Since(start), nil)
	return g, nil
}
