package graph

import (
	"reflect"
	"testing"
)

func TestEntitiesInsertionOrder(t *testing.T) {
	g := New()
	g.UpsertEntity("Charlie", "Person", nil)
	g.UpsertEntity("Alice", "Person", nil)
	g.UpsertEntity("Bob", "Person", nil)

	want := []string{"Charlie", "Alice", "Bob"}
	if got := g.Entities(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestClear(t *testing.T) {
	g := New()
	g.UpsertEntity("Alice", "Person", nil)
	g.UpsertRelation("Alice", "Bob", "knows", nil)

	g.Clear()
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Fatalf("expected empty graph after reset, got %d nodes / %d edges", g.NodeCount(), g.EdgeCount())
	}
	if len(g.Entities()) != 0 {
		t.Fatalf("expected no entities after reset, got %v", g.Entities())
	}
}

func newInvestigationGraph() *CaseGraph {
	g := New()
	g.UpsertEntity("Michael Chen", "Person", nil)
	g.UpsertEntity("Riverside Warehouse", "Location", nil)
	g.UpsertEntity("Sarah Lopez", "Person", nil)
	g.UpsertEntity("Black Sedan", "Object", nil)
	g.UpsertRelation("Michael Chen", "Riverside Warehouse", "seen_at", nil)
	g.UpsertRelation("Sarah Lopez", "Black Sedan", "owns", nil)
	return g
}

func TestNeighborhood(t *testing.T) {
	g := newInvestigationGraph()

	sub := g.Neighborhood([]string{"Michael Chen"}, 1)
	if sub.NodeCount() != 2 {
		t.Fatalf("expected node and its neighbor, got %d nodes", sub.NodeCount())
	}
	if _, ok := sub.Node("Riverside Warehouse"); !ok {
		t.Fatal("expected direct neighbor in subgraph")
	}
	if _, ok := sub.Node("Sarah Lopez"); ok {
		t.Fatal("unrelated node leaked into subgraph")
	}
	if sub.EdgeCount() != 1 {
		t.Fatalf("expected 1 induced edge, got %d", sub.EdgeCount())
	}
}

func TestNeighborhoodNoLabelsReturnsFullGraph(t *testing.T) {
	g := newInvestigationGraph()
	sub := g.Neighborhood(nil, 1)
	if sub.NodeCount() != g.NodeCount() || sub.EdgeCount() != g.EdgeCount() {
		t.Fatalf("expected full graph, got %d nodes / %d edges", sub.NodeCount(), sub.EdgeCount())
	}
}

func TestNeighborhoodIgnoresUnknownLabels(t *testing.T) {
	g := newInvestigationGraph()
	sub := g.Neighborhood([]string{"Nobody"}, 1)
	if sub.NodeCount() != 0 || sub.EdgeCount() != 0 {
		t.Fatalf("expected empty subgraph, got %d nodes / %d edges", sub.NodeCount(), sub.EdgeCount())
	}
}

func TestVisualizationData(t *testing.T) {
	g := New()
	g.UpsertEntity("Michael Chen", "Person", nil)
	g.UpsertRelation("Michael Chen", "Riverside Warehouse", "seen_at", nil)
	g.UpsertRelation("Michael Chen", "Black Sedan", "", nil)

	nodes, edges := g.VisualizationData()
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(edges))
	}

	byID := make(map[string]VizNode)
	for _, n := range nodes {
		byID[n.ID] = n
	}

	person := byID["Michael Chen"]
	if person.Color != "#ff4b4b" {
		t.Fatalf("expected person color, got %q", person.Color)
	}
	if person.Label != "Michael Chen" || person.Type != "Person" {
		t.Fatalf("unexpected person node: %+v", person)
	}

	unknown := byID["Riverside Warehouse"]
	if unknown.Type != TypeUnknown || unknown.Color != "#808080" {
		t.Fatalf("expected neutral fallback for auto-created node, got %+v", unknown)
	}

	byLabel := make(map[string]VizEdge)
	for _, e := range edges {
		byLabel[e.Label] = e
	}
	if _, ok := byLabel["seen_at"]; !ok {
		t.Fatal("expected seen_at edge label")
	}
	if _, ok := byLabel["related_to"]; !ok {
		t.Fatal("expected unset relation to fall back to generic label")
	}
}
