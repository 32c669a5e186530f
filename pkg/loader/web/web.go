package web

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"codeberg.org/readeck/go-readability/v2"
	"golang.org/x/net/html"
	"golang.org/x/sync/singleflight"

	"github.com/inquesta/casefile/pkg/loader"
)

// stripTags extracts the text content of an HTML document, skipping script
// and style bodies.
func stripTags(doc []byte) []byte {
	tokenizer := html.NewTokenizer(bytes.NewReader(doc))
	var builder strings.Builder
	skip := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return []byte(strings.TrimSpace(builder.String()))
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "script" || string(name) == "style" {
				skip++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if (string(name) == "script" || string(name) == "style") && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			text := strings.TrimSpace(string(tokenizer.Text()))
			if text != "" {
				builder.WriteString(text)
				builder.WriteString("\n")
			}
		}
	}
}

// WebEvidenceLoader loads content from web URLs and extracts readable text.
// For HTML pages, it uses readability to extract the main content.
type WebEvidenceLoader struct {
	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewWebEvidenceLoader creates a new web loader.
func NewWebEvidenceLoader() *WebEvidenceLoader {
	return &WebEvidenceLoader{
		cache: make(map[string][]byte),
	}
}

// GetFileText fetches a URL and extracts readable text content.
// For HTML pages, it uses readability to extract the main article content.
func (l *WebEvidenceLoader) GetFileText(ctx context.Context, file loader.EvidenceFile) ([]byte, error) {
	key := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.FilePath, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch url: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		content := body
		contentType := resp.Header.Get("Content-Type")
		if strings.Contains(contentType, "text/html") {
			u, err := url.Parse(file.FilePath)
			if err != nil {
				return nil, fmt.Errorf("failed to parse url: %w", err)
			}
			article, err := readability.FromReader(bytes.NewReader(body), u)
			if err == nil {
				var builder strings.Builder
				if err := article.RenderText(&builder); err == nil {
					content = []byte(builder.String())
				} else {
					content = stripTags(body)
				}
			} else {
				// Pages without article structure fall back to plain tag
				// stripping.
				content = stripTags(body)
			}
		}

		l.cacheMu.Lock()
		l.cache[key] = content
		l.cacheMu.Unlock()

		return content, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
