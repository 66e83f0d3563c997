// Package ocr extracts per-page text items from raster pages via the
// Tesseract engine. It exists for documents that carry no embedded text of
// their own; text-based documents supply their items directly.
//
// Tesseract must be installed on the system (apt-get install tesseract-ocr
// or brew install tesseract).
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"go-doc-inspector/pkg/models"
)

// Extractor wraps a Tesseract client. Not safe for concurrent use; each
// worker needs its own extractor.
type Extractor struct {
	client *gosseract.Client
}

// NewExtractor creates an extractor for the given language ("eng" by default)
func NewExtractor(language string) (*Extractor, error) {
	client := gosseract.NewClient()
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			client.Close()
			return nil, fmt.Errorf("set OCR language %q: %w", language, err)
		}
	}
	return &Extractor{client: client}, nil
}

// Close releases the Tesseract resources
func (e *Extractor) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// ExtractTextItems recognizes text in encoded image bytes and returns one
// item per non-empty line, in reading order.
func (e *Extractor) ExtractTextItems(imageData []byte) ([]models.TextItem, error) {
	if err := e.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("set OCR image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR recognition: %w", err)
	}

	var items []models.TextItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, models.TextItem{Text: line})
		}
	}
	return items, nil
}
