package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lbrandt/suitree/pkg/pipeline"
	"github.com/lbrandt/suitree/pkg/render/tui"
)

// viewCommand creates the view command for the interactive terminal UI.
func (c *CLI) viewCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "view [tree.json|tree.yaml]",
		Short: "Explore a surrogate tree interactively in the terminal",
		Long: `Open an interactive outline of the surrogate tree. Moving the cursor
lights the decision path of the selected node and shows its explanation
overlay, mirroring the hover behavior of the rendered SVG. Quit with q.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], opts)
		},
	}

	return cmd
}

// runView decodes and lays out the tree, then hands the scene to the
// terminal UI until the user quits.
func (c *CLI) runView(ctx context.Context, input string, opts pipeline.Options) error {
	sc, _, err := c.buildScene(ctx, input, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(sc), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
