package graph

import "testing"

func seedGraph(labels ...string) *CaseGraph {
	g := New()
	for _, label := range labels {
		g.UpsertEntity(label, "Person", nil)
	}
	return g
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		existing  []string
		candidate string
		want      string
		wantOK    bool
	}{
		{
			name:      "empty graph",
			existing:  nil,
			candidate: "Michael Chen",
			wantOK:    false,
		},
		{
			name:      "empty candidate",
			existing:  []string{"Michael Chen"},
			candidate: "",
			wantOK:    false,
		},
		{
			name:      "whitespace only candidate",
			existing:  []string{"Michael Chen"},
			candidate: "   ",
			wantOK:    false,
		},
		{
			name:      "exact match",
			existing:  []string{"Michael Chen"},
			candidate: "Michael Chen",
			want:      "Michael Chen",
			wantOK:    true,
		},
		{
			name:      "case insensitive",
			existing:  []string{"Michael Chen"},
			candidate: "MICHAEL CHEN",
			want:      "Michael Chen",
			wantOK:    true,
		},
		{
			name:      "surrounding whitespace",
			existing:  []string{"Michael Chen"},
			candidate: "  michael chen  ",
			want:      "Michael Chen",
			wantOK:    true,
		},
		{
			name:      "first name resolves to full name",
			existing:  []string{"Michael Chen"},
			candidate: "Michael",
			want:      "Michael Chen",
			wantOK:    true,
		},
		{
			name:      "last name resolves to full name",
			existing:  []string{"Michael Chen"},
			candidate: "Chen",
			want:      "Michael Chen",
			wantOK:    true,
		},
		{
			name:      "token order does not matter",
			existing:  []string{"Michael Chen"},
			candidate: "Chen Michael",
			want:      "Michael Chen",
			wantOK:    true,
		},
		{
			name:      "longer alias resolves to multi-token label",
			existing:  []string{"Michael Chen"},
			candidate: "Detective Michael Chen",
			want:      "Michael Chen",
			wantOK:    true,
		},
		{
			name:      "longer alias does not resolve to single-token label",
			existing:  []string{"Chen"},
			candidate: "Michael Chen",
			wantOK:    false,
		},
		{
			name:      "no substring matching inside tokens",
			existing:  []string{"Michael Chen"},
			candidate: "Mich",
			wantOK:    false,
		},
		{
			name:      "unrelated name",
			existing:  []string{"Michael Chen"},
			candidate: "Sarah Lopez",
			wantOK:    false,
		},
		{
			name:      "tie goes to earliest node",
			existing:  []string{"Michael Chen", "Michael Park"},
			candidate: "Michael",
			want:      "Michael Chen",
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := seedGraph(tt.existing...)
			got, ok := g.Resolve(tt.candidate)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.candidate, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestResolveOrderDependence(t *testing.T) {
	// Rule 4's tie-break is intentionally asymmetric: a single-token node
	// absorbs later single-token aliases but not later multi-token ones, so
	// insertion order decides which label becomes canonical.
	g := seedGraph("Michael Chen")
	if got, ok := g.Resolve("Michael Chen Jr"); !ok || got != "Michael Chen" {
		t.Fatalf("expected multi-token label to absorb longer alias, got %q ok=%v", got, ok)
	}

	g = seedGraph("Chen")
	if _, ok := g.Resolve("Michael Chen"); ok {
		t.Fatal("expected single-token label to reject longer alias")
	}
}
