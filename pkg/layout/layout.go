// Package layout converts a surrogate tree into a positioned hierarchy.
//
// The layout is deterministic and derives entirely from leaf ordering:
// leaves are ranked by suitability descending (stable, so equal scores keep
// their discovery order) and that rank becomes the leaf's ordinal index.
// Internal nodes take the mean of their children's ordinals, so the whole
// coordinate assignment is fixed by the leaf ranking. Depth maps to x,
// ordinal index maps to y, which lays the tree out left to right with the
// best predictions at the top.
//
// Layout never fails: an empty tree produces an empty result, and leaves
// without a usable suitability score are ranked mid-scale at 0.5 with a
// diagnostic.
package layout

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/lbrandt/suitree/pkg/observability"
	"github.com/lbrandt/suitree/pkg/tree"
)

// Default spacing between depth columns and ordinal rows, sized for the
// standard 240x70 node boxes.
const (
	DefaultHorizontalSpacing = 260
	DefaultVerticalSpacing   = 120
)

// Params controls the coordinate scaling of the layout.
type Params struct {
	HorizontalSpacing float64 `json:"horizontal_spacing" toml:"horizontal_spacing"` // x distance per depth level
	VerticalSpacing   float64 `json:"vertical_spacing" toml:"vertical_spacing"`     // y distance per ordinal rank
}

// withDefaults fills unset (non-positive) spacings with the package defaults.
func (p Params) withDefaults() Params {
	if p.HorizontalSpacing <= 0 {
		p.HorizontalSpacing = DefaultHorizontalSpacing
	}
	if p.VerticalSpacing <= 0 {
		p.VerticalSpacing = DefaultVerticalSpacing
	}
	return p
}

// Branch names which side of its parent a node hangs on.
type Branch int

const (
	// BranchRoot marks the root node, which has no parent.
	BranchRoot Branch = iota
	// BranchYes marks a node on its parent's affirmative side.
	BranchYes
	// BranchNo marks a node on its parent's negative side.
	BranchNo
)

// String returns the lower-case branch name.
func (b Branch) String() string {
	switch b {
	case BranchYes:
		return "yes"
	case BranchNo:
		return "no"
	default:
		return "root"
	}
}

// PositionedNode is one node of the laid-out hierarchy. X and Y address the
// node's center point.
type PositionedNode struct {
	ID           string
	Depth        int     // root = 0
	OrdinalIndex float64 // leaves: suitability rank; internal: mean of children
	X, Y         float64
	Branch       Branch
	Kind         tree.NodeKind

	// Display payload carried over from the tree so consumers never need
	// the raw nodes again.
	Feature      string
	Threshold    float64
	HasThreshold bool    // false when the source split carried no threshold
	Suitability  float64 // leaves only; defaulted to 0.5 when missing, NaN on internal nodes
	Margin       float64
	Label        string
}

// IsLeaf reports whether the positioned node is a terminal prediction.
func (n PositionedNode) IsLeaf() bool { return n.Kind == tree.KindLeaf }

// Result is an immutable laid-out hierarchy. Accessors return copies;
// a zero Result behaves like the layout of an empty tree.
type Result struct {
	nodes  []PositionedNode // traversal order (preorder, no-branch first)
	byID   map[string]int
	leaves []string          // leaf ids in ordinal order (suitability descending)
	parent map[string]string // child id -> parent id
	params Params
}

// Compute lays out a surrogate tree. The input tree is not modified, and
// the returned result is independent of it.
func Compute(t *tree.Tree, p Params) *Result {
	p = p.withDefaults()
	res := &Result{
		byID:   map[string]int{},
		parent: map[string]string{},
		params: p,
	}
	if t == nil || t.Root == nil {
		return res
	}

	// Pass 1: recursive descent. Assign ids in traversal order, record
	// depth, branch direction and parentage, and collect leaves in
	// discovery order.
	res.walk(t.Root, 0, BranchRoot, "")

	// Pass 2: rank leaves by suitability descending. The sort must be
	// stable so equal scores keep their discovery order between runs.
	leafIdx := make([]int, 0, len(res.leaves))
	for _, id := range res.leaves {
		leafIdx = append(leafIdx, res.byID[id])
	}
	sort.SliceStable(leafIdx, func(a, b int) bool {
		return res.nodes[leafIdx[a]].Suitability > res.nodes[leafIdx[b]].Suitability
	})
	for rank, idx := range leafIdx {
		res.nodes[idx].OrdinalIndex = float64(rank)
		res.leaves[rank] = res.nodes[idx].ID
	}

	// Pass 3: propagate ordinals to internal nodes bottom-up and scale
	// coordinates.
	res.propagate(t.Root, 0)
	for i := range res.nodes {
		n := &res.nodes[i]
		n.X = float64(n.Depth) * p.HorizontalSpacing
		n.Y = n.OrdinalIndex * p.VerticalSpacing
	}

	return res
}

// walk assigns ids preorder (node, no-branch, yes-branch) and fills
// everything that does not depend on leaf ranking.
func (r *Result) walk(n *tree.Node, depth int, branch Branch, parentID string) {
	id := fmt.Sprintf("n%d", len(r.nodes))
	pn := PositionedNode{
		ID:           id,
		Depth:        depth,
		Branch:       branch,
		Kind:         n.Kind,
		Feature:      n.Feature,
		Threshold:    n.Threshold,
		HasThreshold: n.HasThreshold,
		Suitability:  math.NaN(),
		Margin:       n.Margin,
		Label:        n.Label,
	}

	if n.IsLeaf() {
		pn.Suitability = n.Suit
		if math.IsNaN(pn.Suitability) || math.IsInf(pn.Suitability, 0) {
			diag("MISSING_SUITABILITY", "leaf has no usable suitability, ranking at 0.5", "id", id)
			pn.Suitability = 0.5
		}
	}

	r.byID[id] = len(r.nodes)
	r.nodes = append(r.nodes, pn)
	if parentID != "" {
		r.parent[id] = parentID
	}
	if n.IsLeaf() {
		r.leaves = append(r.leaves, id)
		return
	}

	if n.No != nil {
		r.walk(n.No, depth+1, BranchNo, id)
	}
	if n.Yes != nil {
		r.walk(n.Yes, depth+1, BranchYes, id)
	}
}

// propagate computes internal ordinals post-order as the mean of the
// children's ordinals. A single-child node inherits its child's ordinal.
// The idx parameter tracks the preorder position, mirroring walk.
func (r *Result) propagate(n *tree.Node, idx int) (ordinal float64, next int) {
	self := idx
	next = idx + 1

	if n.IsLeaf() {
		return r.nodes[self].OrdinalIndex, next
	}

	var sum float64
	var count int
	for _, c := range n.Children() {
		var o float64
		o, next = r.propagate(c, next)
		sum += o
		count++
	}

	if count == 0 {
		// Only reachable through programmatic construction; Decode repairs
		// childless splits into leaves.
		diag("CHILDLESS_SPLIT", "internal node has no children, ranking at 0", "id", r.nodes[self].ID)
		r.nodes[self].OrdinalIndex = 0
		return 0, next
	}

	ordinal = sum / float64(count)
	r.nodes[self].OrdinalIndex = ordinal
	return ordinal, next
}

// Nodes returns all positioned nodes in traversal order.
func (r *Result) Nodes() []PositionedNode {
	out := make([]PositionedNode, len(r.nodes))
	copy(out, r.nodes)
	return out
}

// Node looks up a positioned node by id.
func (r *Result) Node(id string) (PositionedNode, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return PositionedNode{}, false
	}
	return r.nodes[idx], true
}

// Leaves returns the leaves in ordinal order, best suitability first.
func (r *Result) Leaves() []PositionedNode {
	out := make([]PositionedNode, 0, len(r.leaves))
	for _, id := range r.leaves {
		out = append(out, r.nodes[r.byID[id]])
	}
	return out
}

// Parent returns the id of a node's parent. The root has none.
func (r *Result) Parent(id string) (string, bool) {
	p, ok := r.parent[id]
	return p, ok
}

// Len returns the number of positioned nodes.
func (r *Result) Len() int { return len(r.nodes) }

// MaxDepth returns the deepest level in the layout, or -1 when empty.
func (r *Result) MaxDepth() int {
	deepest := -1
	for i := range r.nodes {
		if r.nodes[i].Depth > deepest {
			deepest = r.nodes[i].Depth
		}
	}
	return deepest
}

// Extent returns the maximum x and y of any node center. Empty layouts
// report (0, 0).
func (r *Result) Extent() (maxX, maxY float64) {
	for i := range r.nodes {
		if r.nodes[i].X > maxX {
			maxX = r.nodes[i].X
		}
		if r.nodes[i].Y > maxY {
			maxY = r.nodes[i].Y
		}
	}
	return maxX, maxY
}

// Params returns the spacing the layout was computed with, defaults applied.
func (r *Result) Params() Params { return r.params }

func diag(code, msg string, kv ...any) {
	observability.Diagnostics().OnDiagnostic(context.Background(), "layout", code, msg, kv...)
}
