package util

import (
	"reflect"
	"strings"
	"testing"
)

func TestSanitizePostgresText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"clean", "witness statement", "witness statement"},
		{"null byte", "state\x00ment", "statement"},
		{"invalid utf8", "state\xffment", "statement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizePostgresText(tt.input)
			if got != tt.want {
				t.Fatalf("SanitizePostgresText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitIntoSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   \n\t ", nil},
		{
			"single sentence",
			"Marcus was seen at the docks.",
			[]string{"Marcus was seen at the docks."},
		},
		{
			"multiple sentences",
			"Marcus was seen at the docks. He carried a briefcase! Who was with him?",
			[]string{"Marcus was seen at the docks.", "He carried a briefcase!", "Who was with him?"},
		},
		{
			"no terminal punctuation",
			"an unfinished note",
			[]string{"an unfinished note"},
		},
		{
			"decimal point not a boundary",
			"The van weighed 2.5 tons. It was blue.",
			[]string{"The van weighed 2.5 tons.", "It was blue."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitIntoSentences(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SplitIntoSentences(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestChunkText(t *testing.T) {
	text := strings.Repeat("The suspect crossed the bridge at midnight. ", 40)

	chunks, err := ChunkText(text, "o200k_base", 64)
	if err != nil {
		t.Fatalf("ChunkText: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		n, err := CountTokens(chunk, "o200k_base")
		if err != nil {
			t.Fatalf("CountTokens: %v", err)
		}
		if n > 64 {
			t.Fatalf("chunk %d has %d tokens, want <= 64", i, n)
		}
	}

	joined := strings.Join(chunks, " ")
	if !strings.Contains(joined, "The suspect crossed the bridge at midnight.") {
		t.Fatal("chunks lost sentence content")
	}
}

func TestChunkTextEmpty(t *testing.T) {
	chunks, err := ChunkText("", "o200k_base", 64)
	if err != nil {
		t.Fatalf("ChunkText: %v", err)
	}
	if chunks != nil {
		t.Fatalf("expected nil chunks, got %v", chunks)
	}
}
