package service

import (
	"sync"

	"go-doc-inspector/pkg/models"
)

// serialTextExtractor funnels all extraction calls through one mutex. The
// Tesseract client is a single cgo handle, so every consumer of a shared
// extractor must go through the same lock.
type serialTextExtractor struct {
	mu    sync.Mutex
	inner TextExtractor
}

// NewSerialTextExtractor wraps an extractor that is not safe for concurrent
// use. Both analysis services may share the returned extractor. A nil inner
// extractor yields nil, preserving "OCR disabled" wiring.
func NewSerialTextExtractor(inner TextExtractor) TextExtractor {
	if inner == nil {
		return nil
	}
	return &serialTextExtractor{inner: inner}
}

func (s *serialTextExtractor) ExtractTextItems(imageData []byte) ([]models.TextItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.ExtractTextItems(imageData)
}
