package analyzer

import (
	"context"

	"go-doc-inspector/internal/pixel"
	"go-doc-inspector/internal/render"
	"go-doc-inspector/pkg/models"
)

// BlurEstimator computes a blur verdict for one normalized pixel buffer
type BlurEstimator interface {
	Estimate(ctx context.Context, buf *pixel.Buffer, cfg Config) models.BlurMetricSet
}

// PageAnalyzer produces a per-page verdict for one page of a document
type PageAnalyzer interface {
	AnalyzePage(ctx context.Context, doc render.Document, pageIndex int, cfg Config) (models.PageAnalysis, error)
}

// DocumentAggregator merges ordered page results into a document verdict
type DocumentAggregator interface {
	Aggregate(pages []models.PageAnalysis, totalTextLength int, anyPageWithoutText bool) models.DocumentAnalysis
}
