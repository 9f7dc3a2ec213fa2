package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/exprflow/pkg/pipeline"
	"github.com/matzehuels/exprflow/pkg/render"
	"github.com/matzehuels/exprflow/pkg/render/grid"
)

// gridCommand creates the grid command, which draws a cellular world.
func (c *CLI) gridCommand() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "grid [world.toml]",
		Short: "Draw a grid world described in TOML",
		Long: `Draw a grid world: a matrix of on/off cells with labeled time and space
axes and optional arrows between cells. The world is read from TOML:

  cells = [
    [0, 1, 0],
    [1, 1, 0],
  ]
  labels = ["time", "space"]

  [[arrows]]
  row = 0
  col = 1
  direction = "down"   # down, right or down-right`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF:
			default:
				return fmt.Errorf("invalid grid format %q (must be one of: svg, png, pdf)", format)
			}
			return c.runGrid(cmd.Context(), args[0], output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or - for stdout (default: input with the format's extension)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatSVG, "output format: svg, png, pdf")

	return cmd
}

func (c *CLI) runGrid(ctx context.Context, input, output, format string) error {
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	world, err := grid.DecodeWorld(data)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	logger.Debug("decoded world", "rows", len(world.Cells), "arrows", len(world.Arrows))

	svg := world.Draw().Bytes()
	out := svg
	switch format {
	case pipeline.FormatPNG:
		out, err = render.ToPNG(ctx, svg, pipeline.DefaultPNGScale)
	case pipeline.FormatPDF:
		out, err = render.ToPDF(ctx, svg)
	}
	if err != nil {
		return err
	}

	if output == stdoutPath {
		_, err := c.Out.Write(out)
		return err
	}
	path := outputPaths(input, output, []string{format})[format]
	if err := writeFile(path, out); err != nil {
		return err
	}
	printSuccess(c.Out, "%s", input)
	printFile(c.Out, path)
	return nil
}
