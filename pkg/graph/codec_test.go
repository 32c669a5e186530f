package graph

import (
	"reflect"
	"testing"
)

func TestSerializeEmptyGraph(t *testing.T) {
	data, err := New().Serialize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"directed":false,"multigraph":false,"graph":{},"nodes":[],"links":[]}`
	if string(data) != want {
		t.Fatalf("unexpected document:\n got %s\nwant %s", data, want)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	g := New()
	g.UpsertEntity("Michael Chen", "Person", Attributes{"role": "witness"})
	g.UpsertEntity("Michael Chen", "Person", Attributes{"role": "suspect"})
	g.UpsertEntity("Riverside Warehouse", "Location", nil)
	g.UpsertRelation("Michael Chen", "Riverside Warehouse", "seen_at", nil)
	g.UpsertRelation("Alice", "Michael", "knows", nil)

	data, err := g.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	if got.NodeCount() != g.NodeCount() {
		t.Fatalf("node count mismatch: got %d, want %d", got.NodeCount(), g.NodeCount())
	}
	if got.EdgeCount() != g.EdgeCount() {
		t.Fatalf("edge count mismatch: got %d, want %d", got.EdgeCount(), g.EdgeCount())
	}
	for _, label := range g.Entities() {
		wantAttrs, _ := g.Node(label)
		gotAttrs, ok := got.Node(label)
		if !ok {
			t.Fatalf("node %q missing after round trip", label)
		}
		if !reflect.DeepEqual(gotAttrs, wantAttrs) {
			t.Fatalf("node %q attrs mismatch:\n got %#v\nwant %#v", label, gotAttrs, wantAttrs)
		}
	}
	for _, key := range g.edgeOrder {
		wantAttrs := g.edges[key]
		gotAttrs, ok := got.Edge(key.a, key.b)
		if !ok {
			t.Fatalf("edge %q-%q missing after round trip", key.a, key.b)
		}
		if !reflect.DeepEqual(gotAttrs, wantAttrs) {
			t.Fatalf("edge %q-%q attrs mismatch:\n got %#v\nwant %#v", key.a, key.b, gotAttrs, wantAttrs)
		}
	}
}

func TestSerializeDeterministic(t *testing.T) {
	g := New()
	g.UpsertEntity("Alice", "Person", Attributes{"role": "officer"})
	g.UpsertEntity("Bob", "Person", nil)
	g.UpsertRelation("Alice", "Bob", "knows", nil)

	first, err := g.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	second, err := g.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("serialization not deterministic:\n%s\n%s", first, second)
	}
}

func TestDeserializeRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "not json",
			data: `{{{`,
		},
		{
			name: "node without id",
			data: `{"directed":false,"multigraph":false,"graph":{},"nodes":[{"type":"Person"}],"links":[]}`,
		},
		{
			name: "node with non-string id",
			data: `{"directed":false,"multigraph":false,"graph":{},"nodes":[{"id":7}],"links":[]}`,
		},
		{
			name: "duplicate node id",
			data: `{"directed":false,"multigraph":false,"graph":{},"nodes":[{"id":"A"},{"id":"A"}],"links":[]}`,
		},
		{
			name: "link without target",
			data: `{"directed":false,"multigraph":false,"graph":{},"nodes":[{"id":"A"}],"links":[{"source":"A"}]}`,
		},
		{
			name: "link to unknown node",
			data: `{"directed":false,"multigraph":false,"graph":{},"nodes":[{"id":"A"}],"links":[{"source":"A","target":"B"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Deserialize([]byte(tt.data)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestDeserializeEmptyDocument(t *testing.T) {
	g, err := Deserialize([]byte(`{"directed":false,"multigraph":false,"graph":{},"nodes":[],"links":[]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Fatalf("expected empty graph, got %d nodes / %d edges", g.NodeCount(), g.EdgeCount())
	}
}
