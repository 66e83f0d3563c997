package factory

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	apperrors "go-doc-inspector/internal/errors"
	"go-doc-inspector/internal/render"
	"go-doc-inspector/internal/storage"
)

// FetcherType represents different content fetching backends
type FetcherType string

const (
	// HTTPFetcher for HTTP-based content fetching
	HTTPFetcher FetcherType = "http"
	// AzureFetcher for Azure blob storage
	AzureFetcher FetcherType = "azure"
)

// FetcherFactory creates content fetchers
type FetcherFactory interface {
	CreateFetcher(fetcherType FetcherType) (storage.ContentFetcher, error)
}

type fetcherFactory struct {
	maxSize          int64
	azureAccountName string
	azureAccountKey  string
}

// NewFetcherFactory creates a fetcher factory. Azure credentials may be
// empty when the azure backend is not configured.
func NewFetcherFactory(maxSize int64, azureAccountName, azureAccountKey string) FetcherFactory {
	return &fetcherFactory{
		maxSize:          maxSize,
		azureAccountName: azureAccountName,
		azureAccountKey:  azureAccountKey,
	}
}

func (f *fetcherFactory) CreateFetcher(fetcherType FetcherType) (storage.ContentFetcher, error) {
	switch fetcherType {
	case HTTPFetcher:
		return storage.NewHTTPContentFetcher(f.maxSize), nil
	case AzureFetcher:
		if f.azureAccountName == "" || f.azureAccountKey == "" {
			return nil, fmt.Errorf("azure storage requires account name and key")
		}
		return storage.NewAzureStorage(f.azureAccountName, f.azureAccountKey)
	default:
		return nil, fmt.Errorf("unsupported fetcher type: %s", fetcherType)
	}
}

var pdfMagic = []byte("%PDF-")

// OpenDocument builds a page-oriented document from fetched bytes, sniffing
// the payload format. PDF payloads keep their embedded text layer; raster
// payloads become single-page image documents.
func OpenDocument(data []byte) (render.Document, error) {
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("empty document payload", nil)
	}

	if bytes.HasPrefix(data, pdfMagic) {
		return render.NewPDFDocument(bytes.NewReader(data))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewDecodeError("payload is neither a PDF nor a decodable image", err)
	}
	return render.NewImageDocument([]image.Image{img}), nil
}
