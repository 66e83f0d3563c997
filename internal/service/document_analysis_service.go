package service

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"go-doc-inspector/internal/analyzer"
	apperrors "go-doc-inspector/internal/errors"
	"go-doc-inspector/internal/factory"
	"go-doc-inspector/internal/logger"
	"go-doc-inspector/internal/observer"
	"go-doc-inspector/internal/render"
	"go-doc-inspector/internal/repository"
	"go-doc-inspector/internal/storage"
	"go-doc-inspector/pkg/models"
	"go-doc-inspector/pkg/validation"

	"github.com/sirupsen/logrus"
)

// DocumentAnalysisService produces a document-level quality verdict
type DocumentAnalysisService interface {
	AnalyzeDocument(ctx context.Context, request models.AnalyzeDocumentRequest) (*models.AnalyzeDocumentResponse, error)
}

type documentAnalysisService struct {
	httpFetcher  storage.ContentFetcher
	azureFetcher storage.ContentFetcher
	pageAnalyzer analyzer.PageAnalyzer
	aggregator   analyzer.DocumentAggregator
	extractor    TextExtractor
	publisher    observer.Subject
	repo         repository.AnalysisRepository
	baseCfg      analyzer.Config
	validator    *validation.QualityValidator
}

// NewDocumentAnalysisService wires the document pipeline. azureFetcher,
// extractor, and repo are optional; nil disables blob URLs, OCR, and history
// persistence respectively.
func NewDocumentAnalysisService(
	httpFetcher storage.ContentFetcher,
	azureFetcher storage.ContentFetcher,
	pageAnalyzer analyzer.PageAnalyzer,
	aggregator analyzer.DocumentAggregator,
	extractor TextExtractor,
	publisher observer.Subject,
	repo repository.AnalysisRepository,
	baseCfg analyzer.Config,
) DocumentAnalysisService {
	return &documentAnalysisService{
		httpFetcher:  httpFetcher,
		azureFetcher: azureFetcher,
		pageAnalyzer: pageAnalyzer,
		aggregator:   aggregator,
		extractor:    extractor,
		publisher:    publisher,
		repo:         repo,
		baseCfg:      baseCfg,
		validator:    validation.NewQualityValidator(),
	}
}

func (s *documentAnalysisService) AnalyzeDocument(ctx context.Context, request models.AnalyzeDocumentRequest) (*models.AnalyzeDocumentResponse, error) {
	start := time.Now()
	source := documentSource(request)

	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.DocumentAnalysisStarted,
		Timestamp: start,
		Source:    source,
	})

	doc, err := s.openDocument(ctx, request)
	if err != nil {
		s.publish(ctx, observer.AnalysisEvent{
			EventType:    observer.DocumentAnalysisFailed,
			Timestamp:    time.Now(),
			Source:       source,
			ErrorMessage: err.Error(),
		})
		return nil, err
	}

	cfg, err := s.resolveConfig(request)
	if err != nil {
		return nil, err
	}

	var (
		pages              []models.PageAnalysis
		pageErrors         []string
		totalTextLength    int
		anyPageWithoutText bool
	)
	hasImageStreams := hasEmbeddedImageStreams(doc)

	for pageIndex := 1; pageIndex <= doc.PageCount(); pageIndex++ {
		items, textErr := doc.PageText(pageIndex)
		if textErr != nil {
			pageErrors = append(pageErrors, textErr.Error())
			anyPageWithoutText = true
		} else {
			totalTextLength += analyzer.TrimmedTextLength(items)
			if len(items) == 0 {
				anyPageWithoutText = true
			}
		}

		page, pageErr := s.pageAnalyzer.AnalyzePage(ctx, doc, pageIndex, cfg)
		if pageErr != nil {
			logger.WithFields(logrus.Fields{
				"source": source,
				"page":   pageIndex,
				"error":  pageErr.Error(),
			}).Warn("Skipping page after analysis failure")

			pageErrors = append(pageErrors, pageErr.Error())
			s.publish(ctx, observer.AnalysisEvent{
				EventType:    observer.PageAnalysisSkipped,
				Timestamp:    time.Now(),
				Source:       source,
				PageIndex:    pageIndex,
				ErrorMessage: pageErr.Error(),
			})
			continue
		}

		pages = append(pages, page)
		s.publish(ctx, observer.AnalysisEvent{
			EventType: observer.PageAnalysisCompleted,
			Timestamp: time.Now(),
			Source:    source,
			PageIndex: pageIndex,
			Success:   true,
		})
	}

	analysis := s.aggregator.Aggregate(pages, totalTextLength, anyPageWithoutText || hasImageStreams)

	issues := s.validator.ValidateDocumentResult(analysis, doc.PageCount())
	pageErrors = append(pageErrors, validation.ConvertIssuesToMessages(issues)...)

	if s.repo != nil {
		if _, saveErr := s.repo.SaveDocumentAnalysis(ctx, source, analysis); saveErr != nil {
			logger.WithError(saveErr).Warn("Could not persist analysis history")
			pageErrors = append(pageErrors, "history: "+saveErr.Error())
		}
	}

	elapsed := time.Since(start)
	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.DocumentAnalysisCompleted,
		Timestamp:      time.Now(),
		Source:         source,
		ProcessingTime: elapsed,
		Success:        true,
		Metadata: map[string]interface{}{
			"quality_good":   analysis.IsQualityGood,
			"is_scanned":     analysis.IsScanned,
			"pages_analyzed": analysis.PagesAnalyzed,
		},
	})

	return &models.AnalyzeDocumentResponse{
		Result:            analysis,
		Errors:            pageErrors,
		ProcessingTimeSec: elapsed.Seconds(),
	}, nil
}

// pageTextSetter is implemented by documents that accept externally
// extracted text, such as OCR output over raster pages.
type pageTextSetter interface {
	SetPageText(pageIndex int, items []models.TextItem) error
}

// imageStreamer is implemented by documents that can report embedded raster
// streams, the telltale of a scanned original.
type imageStreamer interface {
	HasImageStreams() bool
}

func hasEmbeddedImageStreams(doc render.Document) bool {
	streamer, ok := doc.(imageStreamer)
	return ok && streamer.HasImageStreams()
}

// openDocument resolves the request into a page-oriented document. A single
// URL may be a PDF or an image; page URLs must each be raster images.
func (s *documentAnalysisService) openDocument(ctx context.Context, request models.AnalyzeDocumentRequest) (render.Document, error) {
	switch {
	case request.URL != "" && len(request.PageURLs) > 0:
		return nil, apperrors.NewValidationError("provide either url or page_urls, not both", nil)

	case request.URL != "":
		data, err := s.fetch(ctx, request.URL)
		if err != nil {
			return nil, err
		}
		doc, err := factory.OpenDocument(data)
		if err != nil {
			return nil, err
		}
		s.attachOCRText(doc, [][]byte{data})
		return doc, nil

	case len(request.PageURLs) > 0:
		images := make([]image.Image, 0, len(request.PageURLs))
		payloads := make([][]byte, 0, len(request.PageURLs))
		for _, pageURL := range request.PageURLs {
			data, err := s.fetch(ctx, pageURL)
			if err != nil {
				return nil, err
			}
			img, _, decErr := image.Decode(bytes.NewReader(data))
			if decErr != nil {
				return nil, apperrors.NewDecodeError("page payload is not a decodable image", decErr)
			}
			images = append(images, img)
			payloads = append(payloads, data)
		}
		doc := render.NewImageDocument(images)
		s.attachOCRText(doc, payloads)
		return doc, nil

	default:
		return nil, apperrors.NewValidationError("either url or page_urls is required", nil)
	}
}

func (s *documentAnalysisService) fetch(ctx context.Context, contentURL string) ([]byte, error) {
	fetcher := s.httpFetcher
	if strings.Contains(contentURL, ".blob.core.windows.net") {
		if s.azureFetcher == nil {
			return nil, apperrors.NewValidationError("azure blob URLs require configured azure credentials", nil)
		}
		fetcher = s.azureFetcher
	}

	data, err := fetcher.FetchContent(ctx, contentURL)
	if err != nil {
		s.publish(ctx, observer.AnalysisEvent{
			EventType:    observer.ContentFetchFailed,
			Timestamp:    time.Now(),
			Source:       contentURL,
			ErrorMessage: err.Error(),
		})
		return nil, err
	}

	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.ContentFetched,
		Timestamp: time.Now(),
		Source:    contentURL,
		Success:   true,
		Metadata:  map[string]interface{}{"bytes": len(data)},
	})
	return data, nil
}

// attachOCRText runs OCR over image-backed pages that have no text yet.
// PDF documents keep their embedded text layer and are left alone.
func (s *documentAnalysisService) attachOCRText(doc render.Document, payloads [][]byte) {
	if s.extractor == nil {
		return
	}
	setter, ok := doc.(pageTextSetter)
	if !ok {
		return
	}

	for pageIndex := 1; pageIndex <= doc.PageCount() && pageIndex <= len(payloads); pageIndex++ {
		items, err := s.extractor.ExtractTextItems(payloads[pageIndex-1])
		if err != nil {
			logger.WithFields(logrus.Fields{
				"page":  pageIndex,
				"error": err.Error(),
			}).Warn("OCR extraction failed; page treated as textless")
			continue
		}
		if err := setter.SetPageText(pageIndex, items); err != nil {
			logger.WithError(err).Warn("Could not attach OCR text")
		}
	}
}

func (s *documentAnalysisService) resolveConfig(request models.AnalyzeDocumentRequest) (analyzer.Config, error) {
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

func (s *documentAnalysisService) publish(ctx context.Context, event observer.AnalysisEvent) {
	if s.publisher != nil {
		s.publisher.NotifyObservers(ctx, event)
	}
}

func documentSource(request models.AnalyzeDocumentRequest) string {
	if request.URL != "" {
		return request.URL
	}
	if len(request.PageURLs) > 0 {
		return request.PageURLs[0]
	}
	return "inline"
}
