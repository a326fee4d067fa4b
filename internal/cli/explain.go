package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lbrandt/suitree/pkg/errors"
	"github.com/lbrandt/suitree/pkg/layout"
	"github.com/lbrandt/suitree/pkg/pipeline"
	"github.com/lbrandt/suitree/pkg/semantics"
	"github.com/lbrandt/suitree/pkg/tree"
)

// explainCommand creates the explain command for printing decision paths.
func (c *CLI) explainCommand() *cobra.Command {
	var nodeID string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "explain [tree.json|tree.yaml]",
		Short: "Print the decision path leading to a node",
		Long: `Print the threshold decisions along the path from the root to a node,
in the same plain-language wording the interactive overlays use. Without
--node, the paths of all leaves are printed, best suitability first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplain(cmd.Context(), args[0], nodeID, opts)
		},
	}

	cmd.Flags().StringVarP(&nodeID, "node", "n", "", "node id to explain (default: every leaf)")

	return cmd
}

// runExplain decodes and lays out the tree, then prints decision paths.
func (c *CLI) runExplain(ctx context.Context, input string, nodeID string, opts pipeline.Options) error {
	sc, _, err := c.buildScene(ctx, input, opts)
	if err != nil {
		return err
	}
	lay := sc.Layout()

	if nodeID != "" {
		return printPath(lay, nodeID)
	}

	leaves := lay.Leaves()
	if len(leaves) == 0 {
		printWarning("tree has no leaves")
		return nil
	}
	for i, n := range leaves {
		if i > 0 {
			printNewline()
		}
		if err := printPath(lay, n.ID); err != nil {
			return err
		}
	}
	return nil
}

// printPath prints one node's decision path, root first.
func printPath(lay *layout.Result, id string) error {
	n, ok := lay.Node(id)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id)
	}

	printInfo("%s", id)
	steps := decisionPath(lay, id)
	if len(steps) == 0 {
		printDetail("no decisions above this node")
	}
	for _, step := range steps {
		fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleHighlight.Render(step))
	}
	if n.Kind == tree.KindLeaf {
		printKeyValue("suitability", fmt.Sprintf("%.2f", n.Suitability))
	}
	return nil
}

// decisionPath returns the decision texts along the root-to-node path, one
// entry per split ancestor, ordered from the root down. Splits whose text
// formats empty (a non-finite threshold) are skipped.
func decisionPath(lay *layout.Result, id string) []string {
	var steps []string
	child := id
	for {
		parentID, ok := lay.Parent(child)
		if !ok {
			break
		}
		parent, _ := lay.Node(parentID)
		node, _ := lay.Node(child)

		if text := semantics.DecisionText(parent.Feature, parent.Threshold, parent.HasThreshold, node.Branch == layout.BranchYes); text != "" {
			steps = append(steps, text)
		}
		child = parentID
	}

	// Collected leaf-up; the path reads root-down.
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
