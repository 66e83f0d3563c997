package validation

import (
	"fmt"

	"go-doc-inspector/pkg/models"
)

// QualityThresholds defines configurable thresholds for result validation
type QualityThresholds struct {
	// Confidence below this is reported as low-signal
	MinConfidence float64
	// Edge counts below width*height/denominator indicate thin evidence
	LowEdgeDenominator int
	// Text sharpness scores below this are flagged even on non-blurry pages
	MinTextSharpnessScore float64
	// Documents with fewer analyzed pages than requested are flagged
	MinAnalyzedFraction float64
}

// DefaultQualityThresholds returns the default validation thresholds
func DefaultQualityThresholds() QualityThresholds {
	return QualityThresholds{
		MinConfidence:         0.3,
		LowEdgeDenominator:    10000,
		MinTextSharpnessScore: 0.8,
		MinAnalyzedFraction:   0.5,
	}
}

// QualityIssue represents a quality validation issue
type QualityIssue struct {
	Type        string  `json:"type"`
	Message     string  `json:"message"`
	Severity    string  `json:"severity"` // "error", "warning", "info"
	PageIndex   int     `json:"page_index,omitempty"`
	ActualValue float64 `json:"actual_value,omitempty"`
	Threshold   float64 `json:"threshold,omitempty"`
}

// QualityValidator inspects analysis results and reports human-readable
// issues. It never changes a verdict; it annotates it.
type QualityValidator struct {
	thresholds QualityThresholds
}

// NewQualityValidator creates a validator with default thresholds
func NewQualityValidator() *QualityValidator {
	return &QualityValidator{
		thresholds: DefaultQualityThresholds(),
	}
}

// NewQualityValidatorWithThresholds creates a validator with custom thresholds
func NewQualityValidatorWithThresholds(thresholds QualityThresholds) *QualityValidator {
	return &QualityValidator{
		thresholds: thresholds,
	}
}

// ValidateBlurResult reports issues with a single-image verdict
func (qv *QualityValidator) ValidateBlurResult(result models.BlurMetricSet) []QualityIssue {
	var issues []QualityIssue

	if result.IsBlurry {
		issues = append(issues, QualityIssue{
			Type:        "blurry",
			Message:     fmt.Sprintf("image flagged as blurry by the %s method", result.Method),
			Severity:    "error",
			ActualValue: result.Confidence,
		})
	}

	if result.Confidence < qv.thresholds.MinConfidence {
		issues = append(issues, QualityIssue{
			Type:        "low_confidence",
			Message:     "verdict confidence is low; consider re-running with method=both",
			Severity:    "warning",
			ActualValue: result.Confidence,
			Threshold:   qv.thresholds.MinConfidence,
		})
	}

	if result.Method == models.MethodEdgeFallback {
		issues = append(issues, QualityIssue{
			Type:     "variance_fallback",
			Message:  "variance capability was unavailable; edge method used instead",
			Severity: "info",
		})
	}

	if m := result.EdgeMetrics; m != nil && m.Width > 0 && m.Height > 0 {
		minEdges := m.Width * m.Height / qv.thresholds.LowEdgeDenominator
		if m.NumEdges < minEdges {
			issues = append(issues, QualityIssue{
				Type:        "few_edges",
				Message:     "too few edges detected for a reliable width estimate",
				Severity:    "warning",
				ActualValue: float64(m.NumEdges),
				Threshold:   float64(minEdges),
			})
		}
	}

	return issues
}

// ValidateDocumentResult reports issues with a document verdict. pagesRequested
// is the page count of the source document, which may exceed PagesAnalyzed
// when pages were skipped after per-page failures.
func (qv *QualityValidator) ValidateDocumentResult(result models.DocumentAnalysis, pagesRequested int) []QualityIssue {
	var issues []QualityIssue

	if !result.IsQualityGood {
		issues = append(issues, QualityIssue{
			Type:     "poor_quality",
			Message:  "document failed the cross-page quality policy",
			Severity: "error",
		})
	}

	if pagesRequested > 0 {
		analyzedFraction := float64(result.PagesAnalyzed) / float64(pagesRequested)
		if analyzedFraction < qv.thresholds.MinAnalyzedFraction {
			issues = append(issues, QualityIssue{
				Type:        "partial_analysis",
				Message:     fmt.Sprintf("only %d of %d pages produced a verdict", result.PagesAnalyzed, pagesRequested),
				Severity:    "warning",
				ActualValue: analyzedFraction,
				Threshold:   qv.thresholds.MinAnalyzedFraction,
			})
		}
	}

	for _, page := range result.PageResults {
		if ts := page.TextSharpness; ts != nil && !page.Blur.IsBlurry && ts.Score < qv.thresholds.MinTextSharpnessScore {
			issues = append(issues, QualityIssue{
				Type:        "soft_text",
				Message:     "page passed the blur check but its text is borderline soft",
				Severity:    "info",
				PageIndex:   page.PageIndex,
				ActualValue: ts.Score,
				Threshold:   qv.thresholds.MinTextSharpnessScore,
			})
		}
	}

	return issues
}

// ConvertIssuesToMessages flattens issues into printable strings
func ConvertIssuesToMessages(issues []QualityIssue) []string {
	messages := make([]string, len(issues))
	for i, issue := range issues {
		messages[i] = fmt.Sprintf("[%s] %s: %s", issue.Severity, issue.Type, issue.Message)
	}
	return messages
}

// HasCriticalIssues reports whether any issue has error severity
func HasCriticalIssues(issues []QualityIssue) bool {
	for _, issue := range issues {
		if issue.Severity == "error" {
			return true
		}
	}
	return false
}
