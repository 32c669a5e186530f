package graph

import (
	"reflect"
	"testing"
)

func TestUpsertEntityCreatesNode(t *testing.T) {
	g := New()
	g.UpsertEntity("Michael Chen", "Person", Attributes{"role": "witness"})

	if g.NodeCount() != 1 {
		t.Fatalf("expected 1 node, got %d", g.NodeCount())
	}
	attrs, ok := g.Node("Michael Chen")
	if !ok {
		t.Fatal("node not found")
	}
	if attrs["type"] != "Person" {
		t.Fatalf("expected type Person, got %v", attrs["type"])
	}
	if attrs["label"] != "Michael Chen" {
		t.Fatalf("expected label to equal the first-seen name, got %v", attrs["label"])
	}
	if attrs["role"] != "witness" {
		t.Fatalf("expected role witness, got %v", attrs["role"])
	}
}

func TestUpsertEntityEmptyNameIsNoop(t *testing.T) {
	g := New()
	g.UpsertEntity("", "Person", nil)
	g.UpsertEntity("   ", "Person", nil)
	if g.NodeCount() != 0 {
		t.Fatalf("expected empty graph, got %d nodes", g.NodeCount())
	}
}

func TestUpsertEntityIdempotent(t *testing.T) {
	g := New()
	for i := 0; i < 2; i++ {
		g.UpsertEntity("Michael Chen", "Person", Attributes{"role": "witness"})
	}

	if g.NodeCount() != 1 {
		t.Fatalf("expected 1 node, got %d", g.NodeCount())
	}
	attrs, _ := g.Node("Michael Chen")
	if attrs["role"] != "witness" {
		t.Fatalf("expected role to stay a scalar, got %#v", attrs["role"])
	}
}

func TestUpsertEntityCaseInsensitiveMerge(t *testing.T) {
	g := New()
	g.UpsertEntity("Michael Chen", "Person", Attributes{"role": "witness"})
	g.UpsertEntity("MICHAEL CHEN", "", Attributes{"age": "42"})

	if g.NodeCount() != 1 {
		t.Fatalf("expected 1 node, got %d", g.NodeCount())
	}
	attrs, _ := g.Node("Michael Chen")
	if attrs["age"] != "42" {
		t.Fatalf("expected merged age, got %v", attrs["age"])
	}
}

func TestUpsertEntityPartialNameMerge(t *testing.T) {
	g := New()
	g.UpsertEntity("Michael Chen", "Person", nil)
	g.UpsertEntity("Michael", "Person", Attributes{"alibi": "none"})

	if g.NodeCount() != 1 {
		t.Fatalf("expected partial name to merge, got %d nodes", g.NodeCount())
	}
	attrs, _ := g.Node("Michael Chen")
	if attrs["alibi"] != "none" {
		t.Fatalf("expected merged attribute on full-name node, got %v", attrs["alibi"])
	}
}

func TestUpsertEntityTypeNeverDowngrades(t *testing.T) {
	g := New()
	g.UpsertRelation("Alice", "Bob", "knows", nil)

	attrs, _ := g.Node("Alice")
	if attrs["type"] != TypeUnknown {
		t.Fatalf("expected auto-created node to be Unknown, got %v", attrs["type"])
	}

	g.UpsertEntity("Alice", "Person", nil)
	attrs, _ = g.Node("Alice")
	if attrs["type"] != "Person" {
		t.Fatalf("expected Unknown to upgrade to Person, got %v", attrs["type"])
	}

	g.UpsertEntity("Alice", TypeUnknown, nil)
	attrs, _ = g.Node("Alice")
	if attrs["type"] != "Person" {
		t.Fatalf("expected Person to survive an Unknown upsert, got %v", attrs["type"])
	}
}

func TestUpsertEntityScalarConflictPromotesToList(t *testing.T) {
	g := New()
	g.UpsertEntity("Sarah Lopez", "Person", Attributes{"location": "warehouse"})
	g.UpsertEntity("Sarah Lopez", "Person", Attributes{"location": "docks"})

	attrs, _ := g.Node("Sarah Lopez")
	want := []any{"warehouse", "docks"}
	if !reflect.DeepEqual(attrs["location"], want) {
		t.Fatalf("expected %v, got %#v", want, attrs["location"])
	}

	// A repeat of an already-listed value must not duplicate it.
	g.UpsertEntity("Sarah Lopez", "Person", Attributes{"location": "docks"})
	attrs, _ = g.Node("Sarah Lopez")
	if !reflect.DeepEqual(attrs["location"], want) {
		t.Fatalf("expected no duplicates, got %#v", attrs["location"])
	}
}

func TestUpsertEntityListMergesIntoList(t *testing.T) {
	g := New()
	g.UpsertEntity("Sarah Lopez", "Person", Attributes{"seen_at": "warehouse"})
	g.UpsertEntity("Sarah Lopez", "Person", Attributes{"seen_at": []any{"docks", "harbor"}})

	attrs, _ := g.Node("Sarah Lopez")
	want := []any{"warehouse", "docks", "harbor"}
	if !reflect.DeepEqual(attrs["seen_at"], want) {
		t.Fatalf("expected %v, got %#v", want, attrs["seen_at"])
	}
}

func TestUpsertEntityBareListBecomesTraits(t *testing.T) {
	g := New()
	g.UpsertEntity("Sarah Lopez", "Person", []string{"nervous", "tall"})

	attrs, _ := g.Node("Sarah Lopez")
	want := []any{"nervous", "tall"}
	if !reflect.DeepEqual(attrs["traits"], want) {
		t.Fatalf("expected traits %v, got %#v", want, attrs["traits"])
	}
}

func TestUpsertEntityScalarAttributeBecomesInfo(t *testing.T) {
	g := New()
	g.UpsertEntity("Evidence Bag 7", "Object", "found at the scene")

	attrs, _ := g.Node("Evidence Bag 7")
	if attrs["info"] != "found at the scene" {
		t.Fatalf("expected info attribute, got %#v", attrs["info"])
	}
}

func TestUpsertEntityFalsyStoredValueIsReplaced(t *testing.T) {
	g := New()
	g.UpsertEntity("Sarah Lopez", "Person", Attributes{"role": ""})
	g.UpsertEntity("Sarah Lopez", "Person", Attributes{"role": "suspect"})

	attrs, _ := g.Node("Sarah Lopez")
	if attrs["role"] != "suspect" {
		t.Fatalf("expected empty stored value to be replaced, got %#v", attrs["role"])
	}
}

func TestUpsertRelationAutoCreatesEndpoints(t *testing.T) {
	g := New()
	g.UpsertRelation("Alice", "Bob", "knows", nil)

	if g.NodeCount() != 2 {
		t.Fatalf("expected 2 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Fatalf("expected 1 edge, got %d", g.EdgeCount())
	}
	attrs, ok := g.Edge("Alice", "Bob")
	if !ok {
		t.Fatal("edge not found")
	}
	if attrs["relation"] != "knows" {
		t.Fatalf("expected relation knows, got %v", attrs["relation"])
	}
}

func TestUpsertRelationLastWriteWins(t *testing.T) {
	g := New()
	g.UpsertRelation("Alice", "Bob", "knows", nil)
	g.UpsertRelation("Bob", "Alice", "works_with", nil)

	if g.EdgeCount() != 1 {
		t.Fatalf("expected a single edge per node pair, got %d", g.EdgeCount())
	}
	attrs, _ := g.Edge("Alice", "Bob")
	if attrs["relation"] != "works_with" {
		t.Fatalf("expected relation to be superseded, got %v", attrs["relation"])
	}
}

func TestUpsertRelationResolvesEndpoints(t *testing.T) {
	g := New()
	g.UpsertEntity("Michael Chen", "Person", nil)
	g.UpsertRelation("Michael", "Riverside Warehouse", "seen_at", nil)

	if g.NodeCount() != 2 {
		t.Fatalf("expected 2 nodes, got %d", g.NodeCount())
	}
	if _, ok := g.Edge("Michael Chen", "Riverside Warehouse"); !ok {
		t.Fatal("expected edge to attach to the resolved full-name node")
	}
}

func TestUpsertRelationOverlappingNewEndpoints(t *testing.T) {
	g := New()
	g.UpsertRelation("Bob Smith", "Bob", "alias_of", nil)

	if g.NodeCount() != 2 {
		t.Fatalf("expected 2 nodes, got %d", g.NodeCount())
	}
	if _, ok := g.Node("Bob Smith"); !ok {
		t.Fatal("expected node Bob Smith")
	}
	if _, ok := g.Node("Bob"); !ok {
		t.Fatal("expected node Bob")
	}
	attrs, ok := g.Edge("Bob Smith", "Bob")
	if !ok {
		t.Fatal("expected edge between the two endpoints, not a self-loop")
	}
	if attrs["relation"] != "alias_of" {
		t.Fatalf("expected relation alias_of, got %v", attrs["relation"])
	}
}

func TestUpsertRelationEmptyEndpointIsNoop(t *testing.T) {
	g := New()
	g.UpsertRelation("", "Bob", "knows", nil)
	g.UpsertRelation("Alice", "", "knows", nil)

	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Fatalf("expected empty graph, got %d nodes / %d edges", g.NodeCount(), g.EdgeCount())
	}
}
