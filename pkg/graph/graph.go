// Package graph implements the per-case investigation knowledge graph:
// an undirected graph of named entities with mutable attribute maps,
// deduplicated by fuzzy label matching rather than surrogate IDs.
package graph

// Attributes holds the metadata attached to a node or an edge. Values are
// scalars or []any lists; lists arise when repeated extractions disagree
// about an attribute and the conflicting values are accumulated.
type Attributes map[string]any

// edgeKey identifies an undirected edge by its two endpoint labels in
// lexical order, so (a,b) and (b,a) address the same edge.
type edgeKey struct {
	a string
	b string
}

func newEdgeKey(x, y string) edgeKey {
	if y < x {
		x, y = y, x
	}
	return edgeKey{a: x, b: y}
}

// CaseGraph is the node/edge set for a single investigation case. Nodes are
// keyed by their display label; there is at most one edge per unordered
// label pair. Insertion order of nodes and edges is tracked so that label
// resolution ties and serialization output are deterministic.
//
// A CaseGraph is not safe for concurrent mutation. The surrounding system
// serializes access per case: one incoming message is one
// load-mutate-save cycle against a freshly deserialized graph.
type CaseGraph struct {
	nodes     map[string]Attributes
	nodeOrder []string
	edges     map[edgeKey]Attributes
	edgeOrder []edgeKey
}

// New returns an empty case graph.
func New() *CaseGraph {
	g := &CaseGraph{}
	g.Clear()
	return g
}

// Clear resets the graph to empty. This is the only way nodes are ever
// removed.
func (g *CaseGraph) Clear() {
	g.nodes = make(map[string]Attributes)
	g.nodeOrder = nil
	g.edges = make(map[edgeKey]Attributes)
	g.edgeOrder = nil
}

// Entities returns the labels of all current nodes in insertion order. The
// result feeds back into the extraction prompt so the model reuses
// canonical names.
func (g *CaseGraph) Entities() []string {
	labels := make([]string, len(g.nodeOrder))
	copy(labels, g.nodeOrder)
	return labels
}

// NodeCount returns the number of nodes.
func (g *CaseGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *CaseGraph) EdgeCount() int {
	return len(g.edges)
}

// Node returns the attribute map of the node with the given exact label.
func (g *CaseGraph) Node(label string) (Attributes, bool) {
	attrs, ok := g.nodes[label]
	return attrs, ok
}

// Edge returns the attribute map of the edge between the two exact labels,
// in either order.
func (g *CaseGraph) Edge(a, b string) (Attributes, bool) {
	attrs, ok := g.edges[newEdgeKey(a, b)]
	return attrs, ok
}

func (g *CaseGraph) addNode(label string, attrs Attributes) {
	g.nodes[label] = attrs
	g.nodeOrder = append(g.nodeOrder, label)
}

// setEdge stores or updates the edge between a and b. An existing edge
// keeps its attribute map and has the new attributes merged over it,
// so a repeated relation with a different type overwrites the old label
// while unrelated metadata survives.
func (g *CaseGraph) setEdge(a, b string, attrs Attributes) {
	key := newEdgeKey(a, b)
	if cur, ok := g.edges[key]; ok {
		for k, v := range attrs {
			cur[k] = v
		}
		return
	}
	g.edges[key] = attrs
	g.edgeOrder = append(g.edgeOrder, key)
}

func (g *CaseGraph) neighbors(label string) []string {
	var out []string
	for _, key := range g.edgeOrder {
		switch label {
		case key.a:
			out = append(out, key.b)
		case key.b:
			out = append(out, key.a)
		}
	}
	return out
}

// Neighborhood returns the node-induced subgraph covering the given labels
// plus their direct neighbors. With no labels it covers the whole graph.
// Only depth 1 is implemented; larger depths behave like 1.
//
// The subgraph shares attribute maps with the parent and is intended for
// read-only use.
func (g *CaseGraph) Neighborhood(labels []string, depth int) *CaseGraph {
	sub := New()

	keep := make(map[string]bool)
	if len(labels) == 0 {
		for _, label := range g.nodeOrder {
			keep[label] = true
		}
	} else {
		for _, label := range labels {
			if _, ok := g.nodes[label]; !ok {
				continue
			}
			keep[label] = true
			for _, n := range g.neighbors(label) {
				keep[n] = true
			}
		}
	}

	for _, label := range g.nodeOrder {
		if keep[label] {
			sub.addNode(label, g.nodes[label])
		}
	}
	for _, key := range g.edgeOrder {
		if keep[key.a] && keep[key.b] {
			sub.edges[key] = g.edges[key]
			sub.edgeOrder = append(sub.edgeOrder, key)
		}
	}
	return sub
}
