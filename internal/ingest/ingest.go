// Package ingest folds AI extraction results into per-case knowledge graphs
// and moves graphs between their persisted JSON form and memory.
package ingest

import (
	"encoding/json"
	"strings"

	"github.com/inquesta/casefile/internal/db"
	"github.com/inquesta/casefile/pkg/ai"
	"github.com/inquesta/casefile/pkg/graph"
	"github.com/inquesta/casefile/pkg/logger"
)

// ApplyExtraction merges an extraction result into the case graph. Entities
// without a name and relations missing either endpoint are skipped. It
// reports whether anything was applied.
func ApplyExtraction(g *graph.CaseGraph, result *ai.ExtractionResult) bool {
	if result == nil {
		return false
	}

	// Blank names are filtered with the same rule the graph applies, so a
	// batch of whitespace-only entries never reports an update.
	updated := false
	for _, entity := range result.Entities {
		if strings.TrimSpace(entity.Name) == "" {
			continue
		}
		g.UpsertEntity(entity.Name, entity.Type, entity.Attributes)
		updated = true
	}
	for _, relation := range result.Relations {
		if strings.TrimSpace(relation.Source) == "" || strings.TrimSpace(relation.Target) == "" {
			continue
		}
		g.UpsertRelation(relation.Source, relation.Target, relation.RelationType, nil)
		updated = true
	}
	return updated
}

// LoadCaseGraph rebuilds a case's graph from its stored JSON. A missing or
// corrupt blob yields a fresh empty graph so that one bad row never takes a
// case offline; corruption is logged for diagnosis.
func LoadCaseGraph(c *db.Case) *graph.CaseGraph {
	if len(c.GraphJSON) == 0 {
		return graph.New()
	}
	g, err := graph.Deserialize(c.GraphJSON)
	if err != nil {
		logger.Error("Failed to load case graph, starting empty", "case_id", c.ID, "err", err)
		return graph.New()
	}
	return g
}

// SaveCaseGraph serializes the graph into the case's JSON field.
func SaveCaseGraph(c *db.Case, g *graph.CaseGraph) error {
	data, err := g.Serialize()
	if err != nil {
		return err
	}
	c.GraphJSON = json.RawMessage(data)
	return nil
}
