package graph

import (
	"fmt"
	"reflect"
	"strings"
)

// TypeUnknown is the sentinel entity type given to nodes whose category has
// not been established yet, e.g. endpoints auto-created by a relation.
// It is the only type that a later upsert may overwrite.
const TypeUnknown = "Unknown"

// normalizeAttributes coerces arbitrary extraction output into an attribute
// map: lists become {traits: list}, other non-map values become
// {info: string}, nil becomes an empty map. The input is copied so callers
// keep ownership of what they passed in.
func normalizeAttributes(attrs any) Attributes {
	switch v := attrs.(type) {
	case nil:
		return Attributes{}
	case Attributes:
		out := make(Attributes, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out
	case map[string]any:
		out := make(Attributes, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out
	case []any:
		return Attributes{"traits": v}
	case []string:
		list := make([]any, len(v))
		for i, s := range v {
			list[i] = s
		}
		return Attributes{"traits": list}
	default:
		return Attributes{"info": fmt.Sprint(v)}
	}
}

// isFalsy mirrors the truthiness rules the merge policy is defined
// against: nil, empty strings, zero numbers, false, and empty
// lists/maps all count as absent values that a new value may replace.
func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case int:
		return val == 0
	case int64:
		return val == 0
	case float64:
		return val == 0
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case Attributes:
		return len(val) == 0
	default:
		return false
	}
}

func valueEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

func containsValue(list []any, v any) bool {
	for _, item := range list {
		if valueEqual(item, v) {
			return true
		}
	}
	return false
}

// appendUnique merges value into list, flattening an incoming list and
// skipping anything already present.
func appendUnique(list []any, value any) []any {
	if incoming, ok := value.([]any); ok {
		for _, v := range incoming {
			if !containsValue(list, v) {
				list = append(list, v)
			}
		}
		return list
	}
	if !containsValue(list, value) {
		list = append(list, value)
	}
	return list
}

// UpsertEntity records a mention of an entity, creating a node on first
// sight or merging into the node the name resolves to. The merge only
// accumulates or refines: a specific type is never downgraded back to
// Unknown, and conflicting attribute values are promoted to a list instead
// of overwritten. Applying the same mention twice leaves the node exactly
// as after the first application.
//
// attrs may be a map, a bare list (stored under "traits"), any other value
// (stringified under "info"), or nil. Empty names are ignored.
func (g *CaseGraph) UpsertEntity(name, entityType string, attrs any) {
	if strings.TrimSpace(name) == "" {
		return
	}

	attributes := normalizeAttributes(attrs)

	existing, ok := g.Resolve(name)
	if !ok {
		attributes["type"] = entityType
		attributes["label"] = name
		g.addNode(name, attributes)
		return
	}

	current := g.nodes[existing]

	if entityType != "" && (isFalsy(current["type"]) || current["type"] == TypeUnknown) {
		current["type"] = entityType
	}

	for key, value := range attributes {
		stored, present := current[key]
		if !present || isFalsy(stored) {
			current[key] = value
			continue
		}
		if list, isList := stored.([]any); isList {
			current[key] = appendUnique(list, value)
			continue
		}
		if valueEqual(stored, value) {
			continue
		}
		if incoming, isList := value.([]any); isList {
			current[key] = append([]any{stored}, incoming...)
		} else {
			current[key] = []any{stored, value}
		}
	}
}

// UpsertRelation records an undirected relation between two entities,
// resolving both endpoint names and auto-creating missing endpoints as
// Unknown-typed nodes keyed by the raw input name. The relation type is
// stored in the edge's "relation" attribute; a later call on the same node
// pair with a different type silently supersedes it, since each pair
// carries at most one edge.
func (g *CaseGraph) UpsertRelation(source, target, relationType string, attrs Attributes) {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(target) == "" {
		return
	}

	edgeAttrs := make(Attributes, len(attrs)+1)
	for k, v := range attrs {
		edgeAttrs[k] = v
	}
	edgeAttrs["relation"] = relationType

	// Both endpoints resolve against the graph as it was before this call,
	// so a source like "Bob Smith" cannot capture a target like "Bob" that
	// merely matches the node just created for it.
	actualSource, sourceOK := g.Resolve(source)
	actualTarget, targetOK := g.Resolve(target)

	if !sourceOK {
		g.UpsertEntity(source, TypeUnknown, nil)
		actualSource = source
	}
	if !targetOK {
		g.UpsertEntity(target, TypeUnknown, nil)
		actualTarget = target
	}
	if _, ok := g.nodes[actualSource]; !ok {
		g.addNode(actualSource, Attributes{"type": TypeUnknown, "label": actualSource})
	}
	if _, ok := g.nodes[actualTarget]; !ok {
		g.addNode(actualTarget, Attributes{"type": TypeUnknown, "label": actualTarget})
	}

	g.setEdge(actualSource, actualTarget, edgeAttrs)
}
