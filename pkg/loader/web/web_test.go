package web

import (
	"strings"
	"testing"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
		skip []string
	}{
		{
			name: "plain paragraphs",
			in:   "<html><body><p>First sighting.</p><p>Second sighting.</p></body></html>",
			want: []string{"First sighting.", "Second sighting."},
		},
		{
			name: "script and style skipped",
			in:   "<html><head><style>p{color:red}</style></head><body><script>var x=1;</script><p>Visible text</p></body></html>",
			want: []string{"Visible text"},
			skip: []string{"color:red", "var x=1"},
		},
		{
			name: "nested markup",
			in:   "<div>Seen <b>near</b> the warehouse</div>",
			want: []string{"Seen", "near", "the warehouse"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(stripTags([]byte(tt.in)))
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q, got:\n%s", want, got)
				}
			}
			for _, skip := range tt.skip {
				if strings.Contains(got, skip) {
					t.Errorf("output should not contain %q, got:\n%s", skip, got)
				}
			}
		})
	}
}

func TestStripTagsEmpty(t *testing.T) {
	if got := stripTags(nil); len(got) != 0 {
		t.Errorf("stripTags(nil) = %q, want empty", got)
	}
}
