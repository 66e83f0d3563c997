package container

import (
	"fmt"
	"net/http"

	"go-doc-inspector/internal/analyzer"
	"go-doc-inspector/internal/capability"
	"go-doc-inspector/internal/config"
	"go-doc-inspector/internal/factory"
	"go-doc-inspector/internal/logger"
	"go-doc-inspector/internal/observer"
	"go-doc-inspector/internal/ocr"
	"go-doc-inspector/internal/render"
	"go-doc-inspector/internal/repository"
	"go-doc-inspector/internal/service"
	"go-doc-inspector/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	repo            repository.AnalysisRepository
	extractor       *ocr.Extractor
	metrics         *observer.MetricsObserver
	imageService    service.ImageAnalysisService
	documentService service.DocumentAnalysisService
	pool            *analyzer.WorkerPool
	handler         http.Handler
}

// NewContainer builds the dependency graph from the given configuration
func NewContainer(cfg *config.Config) (*Container, error) {
	fetchers := factory.NewFetcherFactory(cfg.MaxRequestBodySize, cfg.Azure.AccountName, cfg.Azure.AccountKey)

	httpFetcher, err := fetchers.CreateFetcher(factory.HTTPFetcher)
	if err != nil {
		return nil, fmt.Errorf("create http fetcher: %w", err)
	}

	azureFetcher, err := fetchers.CreateFetcher(factory.AzureFetcher)
	if err != nil {
		// Blob support is optional; requests with blob URLs are rejected.
		logger.WithError(err).Warn("Azure fetcher disabled")
		azureFetcher = nil
	}

	loader := capability.NewVisionLoader(
		capability.NewLaplacianVision,
		cfg.Capability.LoadTimeout,
		cfg.Capability.PollInterval,
	)

	edge := analyzer.NewEdgeWidthEstimator()
	variance := analyzer.NewVarianceEstimator(loader, edge)
	combinator := analyzer.NewMethodCombinator(edge, variance)
	sharpness := analyzer.NewTextSharpnessEstimator()
	classifier := analyzer.NewPageContentClassifier()
	surface := render.NewSurface()
	pageAnalyzer := analyzer.NewMultiScalePageAnalyzer(
		combinator, sharpness, classifier, render.NewImageRenderer(), surface)
	aggregator := analyzer.NewDocumentQualityAggregator()

	baseCfg := analyzer.FromAnalysisConfig(cfg.Analysis)
	pool := analyzer.NewWorkerPool(0)

	var extractor *ocr.Extractor
	if cfg.OCR.Enabled {
		extractor, err = ocr.NewExtractor(cfg.OCR.Language)
		if err != nil {
			return nil, fmt.Errorf("create OCR extractor: %w", err)
		}
	}

	var repo repository.AnalysisRepository
	if cfg.HistoryDBPath != "" {
		sqliteRepo, err := repository.NewSQLiteRepository(cfg.HistoryDBPath)
		if err != nil {
			return nil, fmt.Errorf("open history repository: %w", err)
		}
		repo = sqliteRepo
	}

	metrics := observer.NewMetricsObserver()
	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	// The gosseract client is a single cgo handle; both services share one
	// serialized view of it.
	var textExtractor service.TextExtractor
	if extractor != nil {
		textExtractor = service.NewSerialTextExtractor(extractor)
	}

	imageService := service.NewImageAnalysisService(httpFetcher, combinator, textExtractor, baseCfg, pool)
	documentService := service.NewDocumentAnalysisService(
		httpFetcher, azureFetcher, pageAnalyzer, aggregator, textExtractor, publisher, repo, baseCfg)

	handler := transport.NewHandler(imageService, documentService, repo, metrics, cfg)

	return &Container{
		config:          cfg,
		repo:            repo,
		extractor:       extractor,
		metrics:         metrics,
		imageService:    imageService,
		documentService: documentService,
		pool:            pool,
		handler:         handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// ImageService returns the single-image analysis service
func (c *Container) ImageService() service.ImageAnalysisService {
	return c.imageService
}

// DocumentService returns the document analysis service
func (c *Container) DocumentService() service.DocumentAnalysisService {
	return c.documentService
}

// Close releases held resources
func (c *Container) Close() error {
	var firstErr error
	if c.pool != nil {
		c.pool.Close()
	}
	if c.extractor != nil {
		if err := c.extractor.Close(); err != nil {
			firstErr = err
		}
	}
	if c.repo != nil {
		if err := c.repo.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
