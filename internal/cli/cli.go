// Package cli implements the suitree command-line interface.
//
// This package provides commands for turning surrogate decision trees from
// habitat suitability models into visualizations: interactive SVG documents,
// Graphviz diagrams, terminal outlines, and JSON exports. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PNG, PDF, DOT, or JSON output from a tree file
//   - layout: Print the computed node positions as a table
//   - explain: Print the decision path leading to a node
//   - view: Explore a tree interactively in the terminal
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Core packages
// report recoverable oddities through the observability hooks; the CLI
// bridges them onto the logger as warnings.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lbrandt/suitree/pkg/buildinfo"
	"github.com/lbrandt/suitree/pkg/config"
	"github.com/lbrandt/suitree/pkg/edgegraph"
	"github.com/lbrandt/suitree/pkg/layout"
	"github.com/lbrandt/suitree/pkg/pipeline"
	"github.com/lbrandt/suitree/pkg/scene"
	"github.com/lbrandt/suitree/pkg/tree"
)

// appName is the application name used for display and suggested commands.
const appName = "suitree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the --config persistent flag value. Empty means probe
	// suitree.toml in the working directory.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Suitree visualizes habitat suitability decision trees",
		Long:         `Suitree renders surrogate decision trees distilled from habitat suitability models. Splits read as plain-language threshold decisions, leaves rank onto a shared suitability scale, and the SVG output highlights each decision path on hover.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: ./suitree.toml if present)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.explainCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// loadParams reads the TOML config, registers its label and palette
// overrides, and returns the layout and geometry parameters.
func (c *CLI) loadParams() (layout.Params, edgegraph.Params, error) {
	var (
		cfg config.Config
		err error
	)
	if c.ConfigPath == "" {
		cfg, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(c.ConfigPath)
	}
	if err != nil {
		return layout.Params{}, edgegraph.Params{}, err
	}
	lp, gp := cfg.Apply()
	return lp, gp, nil
}

// applyParams merges config parameters under any values already set by
// flags, then stamps the input path and logger onto the options.
func (c *CLI) applyParams(opts *pipeline.Options, input string) error {
	lp, gp, err := c.loadParams()
	if err != nil {
		return err
	}
	if opts.Layout.HorizontalSpacing <= 0 {
		opts.Layout.HorizontalSpacing = lp.HorizontalSpacing
	}
	if opts.Layout.VerticalSpacing <= 0 {
		opts.Layout.VerticalSpacing = lp.VerticalSpacing
	}
	opts.Geometry = gp
	opts.Input = input
	opts.Logger = c.Logger
	return nil
}

// buildScene runs the decode and layout stages for commands that consume
// the scene directly instead of rendered artifacts.
func (c *CLI) buildScene(ctx context.Context, input string, opts pipeline.Options) (*scene.RenderContext, *tree.Tree, error) {
	if err := c.applyParams(&opts, input); err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	runner := c.newRunner()
	t, err := runner.Decode(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	sc, err := runner.Layout(ctx, t, opts)
	if err != nil {
		return nil, nil, err
	}
	return sc, t, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
