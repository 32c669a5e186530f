package pdf

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/inquesta/casefile/pkg/loader"
)

// PDFEvidenceLoader loads PDF files and extracts their text content via
// pdftotext. The raw bytes come from the wrapped loader.
type PDFEvidenceLoader struct {
	loader loader.EvidenceFileLoader

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewPDFEvidenceLoader creates a PDF loader that extracts text from PDF content.
func NewPDFEvidenceLoader(loader loader.EvidenceFileLoader) *PDFEvidenceLoader {
	return &PDFEvidenceLoader{
		loader: loader,
		cache:  make(map[string][]byte),
	}
}

// GetFileText extracts text from a PDF file. Results are cached per file.
func (l *PDFEvidenceLoader) GetFileText(ctx context.Context, file loader.EvidenceFile) ([]byte, error) {
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

		text, err := parsePDF(content)
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
