package edgegraph

// Highlights resolves which edges light up when the pointer rests on an
// element, identified by node id, axis pseudo-node id, or edge id.
//
// For a node the result is the union of an upward walk (every edge arriving
// at the node, then recursively at its sources) and a downward walk (every
// edge departing the node, then recursively its targets). Leaves have no
// arriving edges, so hovering a leaf lights exactly its scale edge; a split
// whose children are all leaves lights nothing below itself. For an edge
// the result is the edge itself plus both walks from its endpoints. Unknown
// ids resolve to nothing and emit a diagnostic.
//
// The returned ids are in discovery order and contain no duplicates.
func (g *Graph) Highlights(id string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(e Edge) {
		if !seen[e.ID] {
			seen[e.ID] = true
			out = append(out, e.ID)
		}
	}

	if e, ok := g.Edge(id); ok {
		add(e)
		g.walkUp(e.From, map[string]bool{}, add)
		g.walkDown(e.To, map[string]bool{}, add)
		return out
	}

	if !g.HasNode(id) {
		diag("UNKNOWN_FRONTIER", "highlight target is neither a node nor an edge", "id", id)
		return nil
	}
	g.walkUp(id, map[string]bool{}, add)
	g.walkDown(id, map[string]bool{}, add)
	return out
}

// walkUp collects the edges on the paths from an element back to the root.
// The visited set guards against cycles in hand-built graphs.
func (g *Graph) walkUp(id string, visited map[string]bool, add func(Edge)) {
	if visited[id] {
		return
	}
	visited[id] = true
	for _, i := range g.to[id] {
		e := g.edges[i]
		add(e)
		g.walkUp(e.From, visited, add)
	}
}

// walkDown collects the edges reachable below an element.
func (g *Graph) walkDown(id string, visited map[string]bool, add func(Edge)) {
	if visited[id] {
		return
	}
	visited[id] = true
	for _, i := range g.from[id] {
		e := g.edges[i]
		add(e)
		g.walkDown(e.To, visited, add)
	}
}
