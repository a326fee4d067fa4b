// Package tree models the binary surrogate decision tree consumed by the
// layout and rendering pipeline.
//
// A surrogate tree is a plain nested structure: internal nodes split on a
// coded feature at a threshold, with a "yes" branch taken when the feature
// value is greater or equal and a "no" branch otherwise. Leaves carry a
// continuous habitat-suitability score in [0,1].
//
// The package accepts trees from JSON or YAML documents (see Decode) and
// repairs malformed shapes instead of rejecting them: an interactive
// visualization should render the recoverable part of a tree and report the
// rest through diagnostics, not refuse the whole document.
package tree

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/lbrandt/suitree/pkg/observability"
)

var (
	// ErrLeafWithChildren is returned by [Tree.Validate] when a leaf node
	// still references children. The decoder repairs this shape; seeing it
	// indicates a programmatically constructed tree violated the node kinds.
	ErrLeafWithChildren = errors.New("leaf node has children")

	// ErrInternalWithoutChildren is returned by [Tree.Validate] when an
	// internal node has neither branch set. Internal nodes must have at
	// least one child.
	ErrInternalWithoutChildren = errors.New("internal node has no children")

	// ErrSharedNode is returned by [Tree.Validate] when a node is reachable
	// through more than one path. Nodes are owned exclusively by their
	// parent; sharing (or a cycle) breaks layout and traversal.
	ErrSharedNode = errors.New("node is reachable through more than one path")
)

// NodeKind distinguishes split nodes from terminal predictions.
type NodeKind int

const (
	// KindInternal is a thresholded split on a coded feature.
	KindInternal NodeKind = iota
	// KindLeaf is a terminal prediction carrying a suitability score.
	KindLeaf
)

// Node is one node of a surrogate tree.
//
// The Kind tag determines which fields are meaningful: internal nodes use
// Feature, Threshold, Yes and No; leaves use Suit and Margin. Absent values
// decode to NaN (for numbers) or the empty string so downstream stages can
// apply their documented defaults. HasThreshold keeps an absent threshold
// apart from one that was present but not finite, since both read as NaN.
type Node struct {
	Kind NodeKind

	// Split fields (KindInternal).
	Feature      string  // coded feature name, "" when absent in the input
	Threshold    float64 // split threshold, NaN when absent in the input
	HasThreshold bool    // false when the input carried no threshold at all
	Yes          *Node   // branch taken when feature >= threshold
	No           *Node   // branch taken otherwise

	// Leaf fields (KindLeaf).
	Suit   float64 // suitability in [0,1], NaN when the input carried none
	Margin float64 // raw decision-function margin, NaN unless the input was numeric

	// Label optionally overrides the display title of the node.
	Label string
}

// IsLeaf reports whether the node is a terminal prediction.
func (n *Node) IsLeaf() bool { return n.Kind == KindLeaf }

// Children returns the node's children in canonical traversal order:
// the no-branch first, then the yes-branch. Nil branches are skipped.
func (n *Node) Children() []*Node {
	if n == nil || n.Kind == KindLeaf {
		return nil
	}
	c := make([]*Node, 0, 2)
	if n.No != nil {
		c = append(c, n.No)
	}
	if n.Yes != nil {
		c = append(c, n.Yes)
	}
	return c
}

// Tree wraps the root of a surrogate tree.
//
// A nil or empty tree is valid input everywhere in the pipeline; it lays out
// to an empty result rather than failing.
type Tree struct {
	Root *Node
}

// MaxDepth returns the depth of the deepest node, with the root at depth 0.
// An empty tree has depth -1.
func (t *Tree) MaxDepth() int {
	if t == nil || t.Root == nil {
		return -1
	}
	return maxDepth(t.Root, 0)
}

func maxDepth(n *Node, depth int) int {
	deepest := depth
	for _, c := range n.Children() {
		if d := maxDepth(c, depth+1); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// CountNodes returns the total number of nodes in the tree.
func (t *Tree) CountNodes() int {
	if t == nil || t.Root == nil {
		return 0
	}
	return countNodes(t.Root)
}

func countNodes(n *Node) int {
	total := 1
	for _, c := range n.Children() {
		total += countNodes(c)
	}
	return total
}

// CountLeaves returns the number of terminal predictions in the tree.
func (t *Tree) CountLeaves() int {
	if t == nil || t.Root == nil {
		return 0
	}
	return countLeaves(t.Root)
}

func countLeaves(n *Node) int {
	if n.IsLeaf() {
		return 1
	}
	total := 0
	for _, c := range n.Children() {
		total += countLeaves(c)
	}
	return total
}

// Features returns the sorted set of distinct feature codes used by splits.
func (t *Tree) Features() []string {
	if t == nil || t.Root == nil {
		return nil
	}
	seen := map[string]bool{}
	collectFeatures(t.Root, seen)
	features := make([]string, 0, len(seen))
	for f := range seen {
		features = append(features, f)
	}
	sort.Strings(features)
	return features
}

func collectFeatures(n *Node, seen map[string]bool) {
	if n.Kind == KindInternal && n.Feature != "" {
		seen[n.Feature] = true
	}
	for _, c := range n.Children() {
		collectFeatures(c, seen)
	}
}

// Validate checks the structural invariants of the tree: node kinds match
// their shape and every node is owned by exactly one parent. Trees produced
// by Decode always validate; this guards programmatic construction.
// An empty tree is valid.
func (t *Tree) Validate() error {
	if t == nil || t.Root == nil {
		return nil
	}
	return validate(t.Root, map[*Node]bool{})
}

func validate(n *Node, visited map[*Node]bool) error {
	if visited[n] {
		return ErrSharedNode
	}
	visited[n] = true

	switch n.Kind {
	case KindLeaf:
		if n.Yes != nil || n.No != nil {
			return ErrLeafWithChildren
		}
	case KindInternal:
		if n.Yes == nil && n.No == nil {
			return ErrInternalWithoutChildren
		}
	}

	for _, c := range n.Children() {
		if err := validate(c, visited); err != nil {
			return err
		}
	}
	return nil
}

// sigmoid maps a raw decision-function margin to a probability-like score.
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// nan is the marker for numeric values absent from the input document.
func nan() float64 { return math.NaN() }

func diag(code, msg string, kv ...any) {
	observability.Diagnostics().OnDiagnostic(context.Background(), "tree", code, msg, kv...)
}
