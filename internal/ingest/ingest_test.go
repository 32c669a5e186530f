package ingest

import (
	"encoding/json"
	"testing"

	"github.com/inquesta/casefile/internal/db"
	"github.com/inquesta/casefile/pkg/ai"
	"github.com/inquesta/casefile/pkg/graph"
)

func TestApplyExtraction(t *testing.T) {
	g := graph.New()
	result := &ai.ExtractionResult{
		Entities: []ai.ExtractedEntity{
			{Name: "Marcus Webb", Type: "Person", Attributes: map[string]any{"role": "suspect"}},
			{Name: "", Type: "Person"},
			{Name: "Riverside Warehouse", Type: "Location"},
		},
		Relations: []ai.ExtractedRelation{
			{Source: "Marcus Webb", Target: "Riverside Warehouse", RelationType: "seen_near"},
			{Source: "Marcus Webb", Target: "", RelationType: "knows"},
		},
	}

	updated := ApplyExtraction(g, result)
	if !updated {
		t.Fatal("expected graph to be updated")
	}
	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount = %d, want 2 (nameless entity skipped)", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount = %d, want 1 (incomplete relation skipped)", g.EdgeCount())
	}

	attrs, ok := g.Edge("Marcus Webb", "Riverside Warehouse")
	if !ok {
		t.Fatal("expected edge between Marcus Webb and Riverside Warehouse")
	}
	if attrs["relation"] != "seen_near" {
		t.Fatalf("relation = %v, want seen_near", attrs["relation"])
	}
}

func TestApplyExtractionWhitespaceOnlyNames(t *testing.T) {
	g := graph.New()
	result := &ai.ExtractionResult{
		Entities: []ai.ExtractedEntity{
			{Name: "   ", Type: "Person"},
			{Name: "\t\n", Type: "Location"},
		},
		Relations: []ai.ExtractedRelation{
			{Source: "  ", Target: "Marcus Webb", RelationType: "knows"},
		},
	}

	if ApplyExtraction(g, result) {
		t.Fatal("whitespace-only names should not report an update")
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Fatalf("expected untouched graph, got %d nodes / %d edges",
			g.NodeCount(), g.EdgeCount())
	}
}

func TestApplyExtractionEmpty(t *testing.T) {
	g := graph.New()
	if ApplyExtraction(g, &ai.ExtractionResult{}) {
		t.Fatal("empty result should not report an update")
	}
	if ApplyExtraction(g, nil) {
		t.Fatal("nil result should not report an update")
	}
}

func TestLoadCaseGraphRoundTrip(t *testing.T) {
	g := graph.New()
	g.UpsertEntity("Marcus Webb", "Person", nil)
	g.UpsertEntity("Delta Logistics", "Organization", nil)
	g.UpsertRelation("Marcus Webb", "Delta Logistics", "works_for", nil)

	c := &db.Case{ID: 1}
	if err := SaveCaseGraph(c, g); err != nil {
		t.Fatalf("SaveCaseGraph: %v", err)
	}

	loaded := LoadCaseGraph(c)
	if loaded.NodeCount() != 2 || loaded.EdgeCount() != 1 {
		t.Fatalf("loaded graph has %d nodes, %d edges; want 2, 1",
			loaded.NodeCount(), loaded.EdgeCount())
	}
}

func TestLoadCaseGraphEmptyBlob(t *testing.T) {
	c := &db.Case{ID: 2}
	g := LoadCaseGraph(c)
	if g.NodeCount() != 0 {
		t.Fatalf("expected empty graph, got %d nodes", g.NodeCount())
	}
}

func TestLoadCaseGraphCorruptBlob(t *testing.T) {
	c := &db.Case{ID: 3, GraphJSON: json.RawMessage(`{"nodes": "broken"`)}
	g := LoadCaseGraph(c)
	if g == nil || g.NodeCount() != 0 {
		t.Fatal("corrupt blob should yield a fresh empty graph")
	}
}
