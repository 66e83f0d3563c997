package storage

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "go-doc-inspector/internal/errors"
)

// ContentFetcher retrieves encoded document or image bytes from a URL.
// Fetchers return raw bytes rather than decoded images so the same payload
// can feed the pixel adapter, the PDF reader, or the OCR engine.
type ContentFetcher interface {
	FetchContent(ctx context.Context, contentURL string) ([]byte, error)
}

// HTTPContentFetcher implements ContentFetcher over plain HTTP(S)
type HTTPContentFetcher struct {
	client  *http.Client
	maxSize int64
}

// NewHTTPContentFetcher creates an HTTP fetcher. maxSize caps the downloaded
// payload in bytes; <= 0 means no cap.
func NewHTTPContentFetcher(maxSize int64) ContentFetcher {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,

		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
	}

	return &HTTPContentFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		maxSize: maxSize,
	}
}

func (h *HTTPContentFetcher) FetchContent(ctx context.Context, contentURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, contentURL, nil)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid URL", err)
	}

	req.Header.Set("Accept", "image/jpeg, image/png, image/gif, application/pdf, */*")
	req.Header.Set("User-Agent", "Go-Doc-Inspector/1.0")

	// Retry transient failures; 4xx responses fail fast
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, apperrors.NewTimeoutError("fetch content", ctx.Err())
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		resp, err := h.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		data, status, readErr := readBody(resp, h.maxSize)
		switch {
		case status == http.StatusOK && readErr == nil:
			return data, nil
		case readErr != nil:
			lastErr = readErr
		case status >= 400 && status < 500:
			return nil, apperrors.NewNetworkError(fmt.Sprintf("fetch failed: status code %d", status), nil)
		default:
			lastErr = fmt.Errorf("server error: status code %d", status)
		}
	}

	return nil, apperrors.NewNetworkError("failed to fetch content after 3 attempts", lastErr)
}

func readBody(resp *http.Response, maxSize int64) ([]byte, int, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	var reader io.Reader = resp.Body
	if maxSize > 0 {
		reader = io.LimitReader(resp.Body, maxSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, resp.StatusCode, fmt.Errorf("payload exceeds %d bytes", maxSize)
	}
	return data, resp.StatusCode, nil
}
