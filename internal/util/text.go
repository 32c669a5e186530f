package util

import (
	"strings"
	"unicode"

	"github.com/pkoukk/tiktoken-go"
)

func SanitizePostgresText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.ReplaceAll(sanitized, "\x00", "")
}

// SplitIntoSentences breaks text at sentence-ending punctuation followed by
// whitespace. Trailing fragments without terminal punctuation are kept.
func SplitIntoSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	var current strings.Builder
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				sentence := strings.TrimSpace(current.String())
				if sentence != "" {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}

	if tail := strings.TrimSpace(current.String()); tail != "" {
		sentences = append(sentences, tail)
	}

	return sentences
}

// ChunkText splits text into chunks of at most maxTokens tokens each,
// measured with the given tiktoken encoding. Chunks break on sentence
// boundaries; a single sentence longer than maxTokens becomes its own chunk.
func ChunkText(text string, encoder string, maxTokens int) ([]string, error) {
	enc, err := tiktoken.GetEncoding(encoder)
	if err != nil {
		return nil, err
	}

	sentences := SplitIntoSentences(text)
	if len(sentences) == 0 {
		return nil, nil
	}

	var chunks []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, strings.Join(current, " "))
		current = nil
	}

	for _, sentence := range sentences {
		candidate := strings.Join(append(append([]string{}, current...), sentence), " ")
		if len(current) > 0 && len(enc.Encode(candidate, nil, nil)) > maxTokens {
			flush()
		}
		current = append(current, sentence)
	}
	flush()

	return chunks, nil
}

// CountTokens returns the token count of text under the given encoding.
func CountTokens(text string, encoder string) (int, error) {
	enc, err := tiktoken.GetEncoding(encoder)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}
