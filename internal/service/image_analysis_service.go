package service

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"go-doc-inspector/internal/analyzer"
	apperrors "go-doc-inspector/internal/errors"
	"go-doc-inspector/internal/ocr"
	"go-doc-inspector/internal/pixel"
	"go-doc-inspector/internal/storage"
	"go-doc-inspector/pkg/models"
	"go-doc-inspector/pkg/validation"
)

// TextExtractor recognizes text in encoded image bytes. Implementations
// handed to the services must be safe for concurrent use; wrap a
// single-threaded engine with NewSerialTextExtractor.
type TextExtractor interface {
	ExtractTextItems(imageData []byte) ([]models.TextItem, error)
}

// ImageAnalysisService analyzes single images for blur
type ImageAnalysisService interface {
	AnalyzeImage(ctx context.Context, request models.AnalyzeImageRequest) (*models.AnalyzeImageResponse, error)
	AnalyzeBatch(ctx context.Context, requests []models.AnalyzeImageRequest) []ImageBatchResult
}

// ImageBatchResult pairs one batch entry with its outcome
type ImageBatchResult struct {
	Index    int                          `json:"index"`
	Response *models.AnalyzeImageResponse `json:"response,omitempty"`
	Err      error                        `json:"-"`
}

type imageAnalysisService struct {
	fetcher      storage.ContentFetcher
	combinator   *analyzer.MethodCombinator
	extractor    TextExtractor
	baseCfg      analyzer.Config
	pool         *analyzer.WorkerPool
	urlValidator *validation.URLValidator
	validator    *validation.QualityValidator
}

// NewImageAnalysisService creates the single-image service. extractor may be
// nil when OCR is disabled; requests with expected text then skip accuracy
// scoring.
func NewImageAnalysisService(
	fetcher storage.ContentFetcher,
	combinator *analyzer.MethodCombinator,
	extractor TextExtractor,
	baseCfg analyzer.Config,
	pool *analyzer.WorkerPool,
) ImageAnalysisService {
	return &imageAnalysisService{
		fetcher:      fetcher,
		combinator:   combinator,
		extractor:    extractor,
		baseCfg:      baseCfg,
		pool:         pool,
		urlValidator: validation.NewURLValidator(),
		validator:    validation.NewQualityValidator(),
	}
}

func (s *imageAnalysisService) AnalyzeImage(ctx context.Context, request models.AnalyzeImageRequest) (*models.AnalyzeImageResponse, error) {
	start := time.Now()

	data, err := s.resolvePayload(ctx, request)
	if err != nil {
		return nil, err
	}

	buf, err := pixel.Adapt(pixel.EncodedInput(data))
	if err != nil {
		return nil, err
	}

	cfg, err := s.resolveConfig(request)
	if err != nil {
		return nil, err
	}

	response := &models.AnalyzeImageResponse{
		Result: s.combinator.Combine(ctx, buf, cfg),
	}

	issues := s.validator.ValidateBlurResult(response.Result)
	response.Errors = append(response.Errors, validation.ConvertIssuesToMessages(issues)...)

	if request.ExpectedText != "" && s.extractor != nil {
		accuracy, ocrErr := s.scoreOCRAccuracy(data, request.ExpectedText)
		if ocrErr != nil {
			response.Errors = append(response.Errors, "ocr accuracy: "+ocrErr.Error())
		} else {
			response.OCRAccuracy = accuracy
		}
	}

	response.ProcessingTimeSec = time.Since(start).Seconds()
	return response, nil
}

// AnalyzeBatch runs independent requests concurrently on the worker pool.
// Results come back in request order.
func (s *imageAnalysisService) AnalyzeBatch(ctx context.Context, requests []models.AnalyzeImageRequest) []ImageBatchResult {
	results := make([]ImageBatchResult, len(requests))

	s.pool.Start()
	for i, request := range requests {
		i, request := i, request
		s.pool.Submit(func() {
			response, err := s.AnalyzeImage(ctx, request)
			results[i] = ImageBatchResult{Index: i, Response: response, Err: err}
		})
	}
	s.pool.Wait()

	return results
}

func (s *imageAnalysisService) resolvePayload(ctx context.Context, request models.AnalyzeImageRequest) ([]byte, error) {
	switch {
	case request.URL != "" && request.ImageBase64 != "":
		return nil, apperrors.NewValidationError("provide either url or image_base64, not both", nil)

	case request.URL != "":
		if err := s.urlValidator.ValidateContentURL(request.URL); err != nil {
			return nil, err
		}
		return s.fetcher.FetchContent(ctx, request.URL)

	case request.ImageBase64 != "":
		data, err := base64.StdEncoding.DecodeString(request.ImageBase64)
		if err != nil {
			return nil, apperrors.NewValidationError("image_base64 is not valid base64", err)
		}
		return data, nil

	default:
		return nil, apperrors.NewValidationError("either url or image_base64 is required", nil)
	}
}

func (s *imageAnalysisService) resolveConfig(request models.AnalyzeImageRequest) (analyzer.Config, error) {
	cfg := s.baseCfg

	if request.Method != "" {
		method := models.Method(request.Method)
		if !method.Valid() {
			return cfg, apperrors.NewValidationError("unknown analysis method: "+request.Method, nil)
		}
		cfg = cfg.WithMethod(method)
	}
	if request.EdgeWidthThreshold != nil {
		if *request.EdgeWidthThreshold <= 0 {
			return cfg, apperrors.NewValidationError("edge_width_threshold must be > 0", nil)
		}
		cfg = cfg.WithEdgeWidthThreshold(*request.EdgeWidthThreshold)
	}
	if request.VarianceThreshold != nil {
		if *request.VarianceThreshold <= 0 {
			return cfg, apperrors.NewValidationError("variance_threshold must be > 0", nil)
		}
		cfg = cfg.WithVarianceThreshold(*request.VarianceThreshold)
	}

	return cfg, nil
}

func (s *imageAnalysisService) scoreOCRAccuracy(data []byte, expectedText string) (*models.OCRAccuracy, error) {
	items, err := s.extractor.ExtractTextItems(data)
	if err != nil {
		return nil, err
	}

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = item.Text
	}

	accuracy := ocr.Compare(expectedText, strings.Join(lines, "\n"))
	return &accuracy, nil
}
