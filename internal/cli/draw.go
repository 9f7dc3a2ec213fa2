package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/pipeline"
)

// stdoutPath selects standard output for -o.
const stdoutPath = "-"

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	expr     string // inline source instead of files
	output   string // output file (single input/format), base path, or "-"
	formats  string // comma-separated output formats
	language string // front-end; detected from the file extension when empty
	detailed bool   // role and row in node-link labels
	noCache  bool   // disable the in-memory cache
}

// source is one input of a command.
type source struct {
	name string
	text string
}

// drawCommand creates the draw command.
func (c *CLI) drawCommand() *cobra.Command {
	var opts drawOpts

	cmd := &cobra.Command{
		Use:   "draw [file...]",
		Short: "Draw the data-flow diagram of statement files",
		Long: `Draw the data-flow diagram of one or more statement files.

Each file is parsed, its dependency graph built and laid out, and the
diagram written next to the input (flow.go -> flow.svg) unless -o is given.
Use -e to draw inline source and -o - to write to stdout.

Formats: svg (default), json, dot, nodelink, png, pdf. png and pdf need
rsvg-convert on PATH.`,
		Example: `  exprflow draw flow.go
  exprflow draw -e 'a = 1; b = a + 2' -o -
  exprflow draw flow.hcl -f svg,json,dot -o out/flow`,
		Args: func(cmd *cobra.Command, args []string) error {
			switch {
			case opts.expr != "" && len(args) > 0:
				return fmt.Errorf("use either --expr or files, not both")
			case opts.expr == "" && len(args) == 0:
				return fmt.Errorf("requires at least one file or --expr")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			if opts.language != "" {
				if err := pipeline.ValidateLanguage(opts.language); err != nil {
					return err
				}
			}
			return c.runDraw(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.expr, "expr", "e", "", "inline source to draw")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames, ", ")+" (comma-separated)")
	cmd.Flags().StringVarP(&opts.language, "lang", "l", "", "source language: go, hcl (default: from file extension)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add role and row to node-link labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runDraw executes the pipeline for every input and writes the artifacts.
func (c *CLI) runDraw(ctx context.Context, inputs []string, opts drawOpts) error {
	if opts.output != "" && len(inputs) > 1 {
		return fmt.Errorf("-o cannot be used with more than one input")
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	sources, err := readSources(inputs, opts.expr)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	status := c.Out
	if opts.output == stdoutPath {
		status = os.Stderr
	}

	for _, src := range sources {
		pipeOpts := pipeline.Options{
			Language: opts.language,
			Source:   src.text,
			Filename: src.name,
			Formats:  parseFormats(opts.formats),
			Detailed: opts.detailed,
			Logger:   c.Logger,
		}
		cfg.Apply(&pipeOpts)
		if err := pipeOpts.ValidateAndSetDefaults(); err != nil {
			return fmt.Errorf("%s: %w", src.name, err)
		}
		if opts.output == stdoutPath && len(pipeOpts.Formats) != 1 {
			return fmt.Errorf("-o - needs exactly one format, got %d", len(pipeOpts.Formats))
		}

		prog := newProgress(c.Logger)
		spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Drawing %s...", src.name))
		spinner.Start()

		result, err := runner.Execute(ctx, pipeOpts)
		if err != nil {
			spinner.StopWithError(fmt.Sprintf("%s: %s", src.name, apperrors.UserMessage(err)))
			return fmt.Errorf("%s: %w", src.name, err)
		}
		spinner.Stop()
		prog.done("Drew " + src.name)

		if opts.output == stdoutPath {
			if _, err := c.Out.Write(result.Artifacts[pipeOpts.Formats[0]]); err != nil {
				return err
			}
			continue
		}

		paths := outputPaths(src.name, opts.output, pipeOpts.Formats)
		printSuccess(status, "%s", src.name)
		printStats(status, result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.FinalCount, result.CacheInfo.RenderHit)
		for _, format := range pipeOpts.Formats {
			if err := writeFile(paths[format], result.Artifacts[format]); err != nil {
				return err
			}
			printFile(status, paths[format])
		}
	}
	return nil
}

// readSources loads the inputs, or wraps the inline expression. Inline
// source may separate statements with ";".
func readSources(inputs []string, expr string) ([]source, error) {
	if expr != "" {
		return []source{{name: pipeline.DefaultFilename, text: splitStatements(expr)}}, nil
	}
	sources := make([]source, 0, len(inputs))
	for _, path := range inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read %s", path)
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		sources = append(sources, source{name: path, text: string(data)})
	}
	return sources, nil
}

// splitStatements turns each ";" outside a quoted literal into a newline,
// which both front-ends accept as a statement separator.
func splitStatements(s string) string {
	var (
		b     strings.Builder
		quote rune
		esc   bool
	)
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case esc:
			esc = false
		case quote != 0 && r == '\\' && quote != '`':
			esc = true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '"' || r == '\'' || r == '`'):
			quote = r
		case quote == 0 && r == ';':
			r = '\n'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// outputPaths maps each format to the file it is written to.
//
//   - no -o: the input path with its extension replaced (appName for inline source)
//   - -o with one format: exactly that path
//   - -o with several formats: -o without extension, plus one per format
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if base == "" {
		base = input
		if base == pipeline.DefaultFilename {
			base = appName
		}
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, f := range formats {
		paths[f] = base + "." + pipeline.Extension(f)
	}
	return paths
}

// writeFile writes data, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
