package graph

import (
	"encoding/json"
	"fmt"
)

// nodeLinkDocument is the persisted wire format: a node-link JSON object
// with one entry per node carrying its attributes plus an "id", and one
// entry per edge carrying its attributes plus "source"/"target". The
// directed/multigraph flags are always false; they are kept in the document
// for compatibility with existing stored graphs.
type nodeLinkDocument struct {
	Directed   bool             `json:"directed"`
	Multigraph bool             `json:"multigraph"`
	Graph      map[string]any   `json:"graph"`
	Nodes      []map[string]any `json:"nodes"`
	Links      []map[string]any `json:"links"`
}

// Serialize renders the graph as a node-link JSON document. Nodes and links
// appear in insertion order, so serializing the same graph twice yields the
// same bytes.
func (g *CaseGraph) Serialize() ([]byte, error) {
	doc := nodeLinkDocument{
		Graph: map[string]any{},
		Nodes: make([]map[string]any, 0, len(g.nodeOrder)),
		Links: make([]map[string]any, 0, len(g.edgeOrder)),
	}

	for _, label := range g.nodeOrder {
		attrs := g.nodes[label]
		entry := make(map[string]any, len(attrs)+1)
		for k, v := range attrs {
			entry[k] = v
		}
		entry["id"] = label
		doc.Nodes = append(doc.Nodes, entry)
	}

	for _, key := range g.edgeOrder {
		attrs := g.edges[key]
		entry := make(map[string]any, len(attrs)+2)
		for k, v := range attrs {
			entry[k] = v
		}
		entry["source"] = key.a
		entry["target"] = key.b
		doc.Links = append(doc.Links, entry)
	}

	return json.Marshal(doc)
}

// Deserialize parses a node-link document into a new graph. It either fully
// succeeds or returns an error without producing partial state; callers are
// expected to fall back to an empty graph when a stored document turns out
// to be corrupt.
func Deserialize(data []byte) (*CaseGraph, error) {
	var doc nodeLinkDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse node-link document: %w", err)
	}

	g := New()

	for i, entry := range doc.Nodes {
		id, ok := entry["id"].(string)
		if !ok {
			return nil, fmt.Errorf("node %d: missing or non-string id", i)
		}
		attrs := make(Attributes, len(entry))
		for k, v := range entry {
			if k == "id" {
				continue
			}
			attrs[k] = v
		}
		if _, exists := g.nodes[id]; exists {
			return nil, fmt.Errorf("node %d: duplicate id %q", i, id)
		}
		g.addNode(id, attrs)
	}

	for i, entry := range doc.Links {
		source, ok := entry["source"].(string)
		if !ok {
			return nil, fmt.Errorf("link %d: missing or non-string source", i)
		}
		target, ok := entry["target"].(string)
		if !ok {
			return nil, fmt.Errorf("link %d: missing or non-string target", i)
		}
		if _, exists := g.nodes[source]; !exists {
			return nil, fmt.Errorf("link %d: unknown source %q", i, source)
		}
		if _, exists := g.nodes[target]; !exists {
			return nil, fmt.Errorf("link %d: unknown target %q", i, target)
		}
		attrs := make(Attributes, len(entry))
		for k, v := range entry {
			if k == "source" || k == "target" {
				continue
			}
			attrs[k] = v
		}
		g.setEdge(source, target, attrs)
	}

	return g, nil
}
