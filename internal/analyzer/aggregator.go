package analyzer

import (
	"go-doc-inspector/internal/logger"
	"go-doc-inspector/pkg/models"

	"github.com/sirupsen/logrus"
)

// minTextBasedChars: a document with less total extracted text than this is
// not text-based and counts as scanned
const minTextBasedChars = 10

// DocumentQualityAggregator applies the cross-page decision policy. Body-page
// consensus outweighs a single flagged first page: cover art routinely trips
// the blur estimators without the document being bad.
type DocumentQualityAggregator struct{}

// NewDocumentQualityAggregator creates an aggregator
func NewDocumentQualityAggregator() *DocumentQualityAggregator {
	return &DocumentQualityAggregator{}
}

// Aggregate merges ordered page results into the document verdict.
// anyPageWithoutText is true when at least one page yielded zero extracted
// text items; totalTextLength is the trimmed length across all pages.
func (g *DocumentQualityAggregator) Aggregate(pages []models.PageAnalysis, totalTextLength int, anyPageWithoutText bool) models.DocumentAnalysis {
	isTextBased := totalTextLength >= minTextBasedChars
	isScanned := anyPageWithoutText || !isTextBased

	analysis := models.DocumentAnalysis{
		IsQualityGood: true,
		IsScanned:     isScanned,
		PagesAnalyzed: len(pages),
		TextLength:    totalTextLength,
		PageResults:   pages,
	}

	switch {
	case len(pages) == 0:
		// Nothing analyzable survived; nothing to hold against the document.

	case len(pages) == 1:
		analysis.IsQualityGood = !pages[0].Blur.IsBlurry

	default:
		nonFirst := pages[1:]
		blurryNonFirst := 0
		for _, p := range nonFirst {
			if p.Blur.IsBlurry {
				blurryNonFirst++
			}
		}

		switch {
		case pages[0].Blur.IsBlurry && blurryNonFirst == 0:
			// Decorative first page false positive: the body is clean.
			analysis.IsQualityGood = true
		case blurryNonFirst >= (len(nonFirst)+1)/2:
			analysis.IsQualityGood = false
		default:
			analysis.IsQualityGood = true
		}

		logger.WithFields(logrus.Fields{
			"pages":            len(pages),
			"blurry_non_first": blurryNonFirst,
			"first_blurry":     pages[0].Blur.IsBlurry,
			"quality_good":     analysis.IsQualityGood,
		}).Debug("Document aggregation")
	}

	return analysis
}
