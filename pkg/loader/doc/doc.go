package doc

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/inquesta/casefile/pkg/loader"
)

// DocEvidenceLoader loads Word documents (.docx) and extracts their text
// content from the embedded document XML.
type DocEvidenceLoader struct {
	loader loader.EvidenceFileLoader

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewDocEvidenceLoader creates a document loader that extracts text directly
// from docx XML.
func NewDocEvidenceLoader(loader loader.EvidenceFileLoader) *DocEvidenceLoader {
	return &DocEvidenceLoader{
		loader: loader,
		cache:  make(map[string][]byte),
	}
}

// GetFileText extracts text content from a Word document. Results are cached
// per file.
func (l *DocEvidenceLoader) GetFileText(ctx context.Context, file loader.EvidenceFile) ([]byte, error) {
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

		content, err := l.loader.GetFileText(ctx, file)
		if err != nil {
			return nil, err
		}

		text, err := parseDocx(content)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = text
		l.cacheMu.Unlock()

		return text, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
