package graph

import "strings"

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// containsAll reports whether every token of want appears somewhere in have.
// Token containment is unordered set membership, not substring matching.
func containsAll(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Resolve maps a candidate entity name to the label of an existing node, or
// reports that no node matches and a new one should be created.
//
// Matching runs in order, first hit wins:
//
//  1. empty or whitespace-only candidates never match
//  2. exact match after trimming and lower-casing
//  3. the candidate's tokens are a subset of an existing label's tokens and
//     that label is at least as long ("Michael" resolves to "Michael Chen")
//  4. an existing label's tokens are a subset of the candidate's and the
//     candidate is strictly longer, but only when the candidate is a single
//     token or the existing label is multi-token
//
// Rule 4's tie-break is asymmetric on purpose: it keeps the established
// label instead of churning node identity whenever a longer alias shows up.
// The price is that resolution is not monotonic in call order — inserting
// names in a different sequence can yield a different canonical label.
// Ties between several matching nodes go to the earliest-inserted node.
func (g *CaseGraph) Resolve(name string) (string, bool) {
	normalized := normalizeName(name)
	if normalized == "" {
		return "", false
	}

	for _, label := range g.nodeOrder {
		if normalizeName(label) == normalized {
			return label, true
		}
	}

	nameParts := strings.Fields(normalized)
	for _, label := range g.nodeOrder {
		labelParts := strings.Fields(normalizeName(label))

		if containsAll(labelParts, nameParts) && len(labelParts) >= len(nameParts) {
			return label, true
		}

		if containsAll(nameParts, labelParts) && len(nameParts) > len(labelParts) {
			if len(nameParts) == 1 || len(labelParts) > 1 {
				return label, true
			}
		}
	}

	return "", false
}
