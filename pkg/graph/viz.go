package graph

// VizNode is a node rendered for the visualization layer.
type VizNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Color string `json:"color"`
}

// VizEdge is an edge rendered for the visualization layer.
type VizEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

const (
	defaultNodeColor     = "#808080"
	defaultRelationLabel = "related_to"
)

var typeColors = map[string]string{
	"Person":       "#ff4b4b",
	"Location":     "#4b4bff",
	"Object":       "#4bff4b",
	"Event":        "#ffff4b",
	"Organization": "#ff4bff",
}

func colorForType(entityType string) string {
	if color, ok := typeColors[entityType]; ok {
		return color
	}
	return defaultNodeColor
}

// VisualizationData renders the graph into the node/edge shape consumed by
// the frontend renderer. Unknown or unset types fall back to a neutral
// color, and edges without a relation label get a generic one.
func (g *CaseGraph) VisualizationData() ([]VizNode, []VizEdge) {
	nodes := make([]VizNode, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		attrs := g.nodes[id]

		label := id
		if l, ok := attrs["label"].(string); ok && l != "" {
			label = l
		}
		entityType := TypeUnknown
		rawType, _ := attrs["type"].(string)
		if rawType != "" {
			entityType = rawType
		}

		nodes = append(nodes, VizNode{
			ID:    id,
			Label: label,
			Type:  entityType,
			Color: colorForType(rawType),
		})
	}

	edges := make([]VizEdge, 0, len(g.edgeOrder))
	for _, key := range g.edgeOrder {
		attrs := g.edges[key]

		label := defaultRelationLabel
		if r, ok := attrs["relation"].(string); ok && r != "" {
			label = r
		}

		edges = append(edges, VizEdge{
			Source: key.a,
			Target: key.b,
			Label:  label,
		})
	}

	return nodes, edges
}
