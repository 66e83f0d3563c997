// Package repository persists analysis history so past verdicts can be
// inspected without re-running the estimators.
package repository

import (
	"context"
	"time"

	"go-doc-inspector/pkg/models"
)

// AnalysisRecord is one persisted document verdict
type AnalysisRecord struct {
	ID            int64                   `json:"id"`
	Source        string                  `json:"source"`
	IsQualityGood bool                    `json:"is_quality_good"`
	IsScanned     bool                    `json:"is_scanned"`
	PagesAnalyzed int                     `json:"pages_analyzed"`
	CreatedAt     time.Time               `json:"created_at"`
	Analysis      models.DocumentAnalysis `json:"analysis"`
}

// AnalysisRepository stores and retrieves document analysis results
type AnalysisRepository interface {
	SaveDocumentAnalysis(ctx context.Context, source string, analysis models.DocumentAnalysis) (int64, error)
	GetDocumentAnalysis(ctx context.Context, id int64) (*AnalysisRecord, error)
	ListRecent(ctx context.Context, limit int) ([]AnalysisRecord, error)
	Close() error
}
