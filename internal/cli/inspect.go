package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/exprflow/pkg/depgraph"
	"github.com/matzehuels/exprflow/pkg/graph"
	"github.com/matzehuels/exprflow/pkg/layout"
	"github.com/matzehuels/exprflow/pkg/pipeline"
)

// inspectCommand creates the inspect command, which prints the symbol table.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		expr     string
		language string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the dependency graph of a statement file",
		Long: `Print the dependency graph of a statement file as a table: one row per
distinct computation in discovery order, with its role, the keys it reads
and the keys that read it. --json writes the graph document instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if expr == "" && len(args) == 0 {
				return fmt.Errorf("requires a file or --expr")
			}
			sources, err := readSources(args, expr)
			if err != nil {
				return err
			}
			g, err := c.buildGraph(cmd.Context(), sources[0], language)
			if err != nil {
				return err
			}
			if asJSON {
				return graph.WriteGraph(g, c.Out)
			}
			printInfo(c.Out, "%s", sources[0].name)
			fmt.Fprintln(c.Out, inspectTable(g))
			printStats(c.Out, g.Table.Len(), g.EdgeCount(), g.Finals.Len(), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&expr, "expr", "e", "", "inline source to inspect")
	cmd.Flags().StringVarP(&language, "lang", "l", "", "source language: go, hcl (default: from file extension)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the graph as JSON")

	return cmd
}

// buildGraph runs the parse and build stages for one source.
func (c *CLI) buildGraph(ctx context.Context, src source, language string) (*depgraph.Graph, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	opts := pipeline.Options{
		Language: language,
		Source:   src.text,
		Filename: src.name,
		Logger:   c.Logger,
	}
	cfg.Apply(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("%s: %w", src.name, err)
	}

	prog, err := pipeline.Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.name, err)
	}
	g, err := pipeline.Build(ctx, prog)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.name, err)
	}
	return g, nil
}

// inspectTable renders the symbol table of g.
func inspectTable(g *depgraph.Graph) string {
	var rows [][]string
	var roles []layout.Role
	for i, comp := range g.Table.All() {
		role := layout.Classify(g, comp.Key)
		roles = append(roles, role)
		rows = append(rows, []string{
			strconv.Itoa(i),
			comp.Key,
			role.String(),
			joinKeys(comp.Deps),
			joinKeys(g.Dependents(comp.Key)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Key", "Role", "Reads", "Read by").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			switch col {
			case 0:
				return base.Foreground(colorDim)
			case 1:
				return roleStyle(roles[row]).Padding(0, 1)
			default:
				return base.Foreground(colorGray)
			}
		})

	return t.Render()
}

func joinKeys(keys []string) string {
	if len(keys) == 0 {
		return "—"
	}
	return strings.Join(keys, ", ")
}
