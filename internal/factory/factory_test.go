package factory

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	apperrors "go-doc-inspector/internal/errors"
)

func TestCreateFetcher_HTTP(t *testing.T) {
	factory := NewFetcherFactory(0, "", "")

	fetcher, err := factory.CreateFetcher(HTTPFetcher)
	if err != nil {
		t.Fatalf("CreateFetcher: %v", err)
	}
	if fetcher == nil {
		t.Fatal("Expected a fetcher")
	}
}

func TestCreateFetcher_AzureRequiresCredentials(t *testing.T) {
	factory := NewFetcherFactory(0, "", "")

	if _, err := factory.CreateFetcher(AzureFetcher); err == nil {
		t.Error("Expected an error without azure credentials")
	}
}

func TestCreateFetcher_UnknownType(t *testing.T) {
	factory := NewFetcherFactory(0, "", "")

	if _, err := factory.CreateFetcher(FetcherType("ftp")); err == nil {
		t.Error("Expected an error for an unknown fetcher type")
	}
}

func TestOpenDocument_Image(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	doc, err := OpenDocument(encoded.Bytes())
	if err != nil {
		t.Fatalf("OpenDocument: %v", err)
	}
	if doc.PageCount() != 1 {
		t.Errorf("Expected a single-page document, got %d pages", doc.PageCount())
	}
}

func TestOpenDocument_Empty(t *testing.T) {
	_, err := OpenDocument(nil)
	if err == nil {
		t.Fatal("Expected an error for an empty payload")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("Expected a validation error, got %v", err)
	}
}

func TestOpenDocument_Garbage(t *testing.T) {
	_, err := OpenDocument([]byte("neither pdf nor image"))
	if err == nil {
		t.Fatal("Expected an error for an undecodable payload")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeDecode) {
		t.Errorf("Expected a decode error, got %v", err)
	}
}

func TestOpenDocument_BrokenPDF(t *testing.T) {
	_, err := OpenDocument([]byte("%PDF-1.7 truncated garbage"))
	if err == nil {
		t.Fatal("Expected an error for a broken PDF")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeDecode) {
		t.Errorf("Expected a decode error, got %v", err)
	}
}
