// Package cli implements the exprflow command-line interface.
//
// This package provides commands for drawing the data flow of statement
// files, inspecting their dependency graphs, and browsing them
// interactively. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - draw: Generate SVG, JSON, DOT, node-link, PNG or PDF output
//   - inspect: Print the symbol table with roles and dependencies
//   - explore: Browse the graph in an interactive terminal view
//   - grid: Draw a cellular grid world described in TOML
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Configuration
//
// --config names a TOML file; without it ./exprflow.toml is used when
// present. Flags override the file.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/exprflow/pkg/buildinfo"
	"github.com/matzehuels/exprflow/pkg/cache"
	"github.com/matzehuels/exprflow/pkg/config"
	"github.com/matzehuels/exprflow/pkg/observability"
	"github.com/matzehuels/exprflow/pkg/pipeline"
)

// appName is the application name used for display and default file names.
const appName = "exprflow"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output such as tables and stdout artifacts.
	Out io.Writer

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "exprflow draws the data flow of expression programs",
		Long: `exprflow reads a sequence of assignments, builds the graph of which
computation reads which, and draws it as a column of boxes joined by arcs.
Identical subexpressions are drawn once.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				c.Logger.Debug("starting", "version", buildinfo.Short())
			}
			observability.SetPipelineHooks(newLogHooks(c.Logger))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+config.DefaultFilename+" if present)")

	root.AddCommand(c.drawCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.gridCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. The cache lives for one
// invocation, so repeated inputs of a single draw are computed once.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}
	mc, err := cache.NewMemoryCache(cache.DefaultMemoryEntries)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(mc, nil, c.Logger), nil
}

// loadConfig reads --config, or ./exprflow.toml when present.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if c.configPath != "" {
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	return cfg, nil
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so the config file or pipeline default applies.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
