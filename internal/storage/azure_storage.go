package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	apperrors "go-doc-inspector/internal/errors"
)

type azureStorage struct {
	client *azblob.Client
}

// NewAzureStorage creates a ContentFetcher backed by Azure blob storage.
// Blob URLs carry the container in the path and the blob name in the
// ?blob= query parameter.
func NewAzureStorage(accountName string, accountKey string) (ContentFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &azureStorage{client: client}, nil
}

func (s *azureStorage) FetchContent(ctx context.Context, blobURL string) ([]byte, error) {
	parsedURL, err := url.Parse(blobURL)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid blob URL", err)
	}

	if len(parsedURL.Path) < 2 {
		return nil, apperrors.NewValidationError("blob URL missing container path", nil)
	}
	containerName := parsedURL.Path[1:]
	blobName := parsedURL.Query().Get("blob")
	if blobName == "" {
		return nil, apperrors.NewValidationError("blob URL missing blob parameter", nil)
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, apperrors.NewNetworkError("blob download failed", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	data, err := io.ReadAll(retryReader)
	if err != nil {
		return nil, apperrors.NewNetworkError("blob read failed", err)
	}
	return data, nil
}
