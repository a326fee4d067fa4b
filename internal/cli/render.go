package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lbrandt/suitree/pkg/errors"
	"github.com/lbrandt/suitree/pkg/pipeline"
)

// renderCommand creates the render command for producing output documents.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsCSV string
	)
	opts := pipeline.Options{}
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [tree.json|tree.yaml]",
		Short: "Render a surrogate tree to SVG, PNG, PDF, DOT, or JSON",
		Long: `Render a surrogate tree to one or more output documents.

The input is a decision tree in the surrogate JSON or YAML schema. The
default output is an interactive SVG (hovering a node or edge lights its
decision path and shows the threshold decision in plain language), written
next to the input file. -f selects other formats and -o overrides the
destination; with multiple formats -o acts as a base name.

PNG and PDF conversion shells out to rsvg-convert (librsvg). The graphviz
engine (--engine graphviz) lays the tree out left-to-right with dot instead
of the native suitability-ranked layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsCSV)
			return c.runRender(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&formatsCSV, "format", "f", pipeline.FormatSVG, "comma-separated formats: svg, png, pdf, dot, json")
	cmd.Flags().StringVar(&opts.Engine, "engine", opts.Engine, "render engine: native (default), graphviz")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "raster scale factor for png output")
	cmd.Flags().StringVar(&opts.Highlight, "highlight", "", "node id whose decision path starts highlighted")
	cmd.Flags().BoolVar(&opts.Static, "static", false, "omit the hover script from svg output")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include node ids and feature codes in graphviz labels")

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string) error {
	// The highlight id ends up inside SVG id attributes; reject anything
	// that is not a layout-scheme id before it reaches a document.
	if opts.Highlight != "" {
		if err := errors.ValidateNodeID(opts.Highlight); err != nil {
			return err
		}
	}
	if output != "" {
		if err := errors.ValidateOutputPath(output); err != nil {
			return err
		}
	}

	if err := c.applyParams(&opts, input); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	spinner := startSpinner(ctx, "Rendering tree...")
	result, err := c.newRunner().Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		printError("Render failed")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(withLogger(ctx, c.Logger), input, output, opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Nodes, result.Stats.Leaves, result.Stats.MaxDepth)

	return nil
}

// writeArtifacts writes each rendered format to disk and returns the paths
// in format order. With a single format an explicit output path is used
// verbatim; otherwise the base name gains one extension per format.
func writeArtifacts(ctx context.Context, input, output string, formats []string, artifacts map[string][]byte) ([]string, error) {
	logger := loggerFromContext(ctx)
	base := basePath(input, output)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}
		// A json artifact next to a .json input would land on the input
		// file itself; shift it aside instead of overwriting the tree.
		if path == input {
			path = base + ".out." + format
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("wrote artifact", "path", path, "bytes", len(data))
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath returns the output stem: the explicit output with its extension
// stripped, or the input path so artifacts land next to the source file.
func basePath(input, output string) string {
	p := output
	if p == "" {
		p = input
	}
	return strings.TrimSuffix(p, filepath.Ext(p))
}
