package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lbrandt/suitree/pkg/pipeline"
	"github.com/lbrandt/suitree/pkg/scene"
)

// layoutCommand creates the layout command for inspecting node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [tree.json|tree.yaml]",
		Short: "Print the computed layout as a table",
		Long: `Compute the layout for a surrogate tree and print one row per node:
position, depth, branch, and display text. Leaves are ranked by suitability,
best at the top; internal nodes center on their children. Useful for
inspecting the geometry before rendering.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.Layout.HorizontalSpacing, "hspacing", 0, "horizontal distance per depth level")
	cmd.Flags().Float64Var(&opts.Layout.VerticalSpacing, "vspacing", 0, "vertical distance per suitability rank")

	return cmd
}

// runLayout decodes the tree, computes the layout, and prints the table.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options) error {
	sc, t, err := c.buildScene(ctx, input, opts)
	if err != nil {
		return err
	}

	fmt.Println(layoutTable(sc))
	printStats(t.CountNodes(), t.CountLeaves(), t.MaxDepth())
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}

// layoutTable formats one row per positioned node, in traversal order.
func layoutTable(sc *scene.RenderContext) string {
	lay := sc.Layout()

	rows := make([][]string, 0, lay.Len())
	for _, n := range lay.Nodes() {
		v := sc.NodeVisual(n)

		kind := "split"
		score := ""
		if v.Leaf {
			kind = "leaf"
			score = fmt.Sprintf("%.2f", n.Suitability)
		}

		rows = append(rows, []string{
			n.ID,
			kind,
			strconv.Itoa(n.Depth),
			n.Branch.String(),
			fmt.Sprintf("%.0f", n.X),
			fmt.Sprintf("%.0f", n.Y),
			v.Title,
			score,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("ID", "Kind", "Depth", "Branch", "X", "Y", "Title", "Suit").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if col >= 2 && col <= 5 {
				return StyleNumber
			}
			if col == 7 {
				return StyleSuccess
			}
			return lipgloss.NewStyle()
		})

	return t.Render()
}
