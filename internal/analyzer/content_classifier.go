package analyzer

import (
	"regexp"
	"strings"

	"go-doc-inspector/pkg/models"
)

const (
	// lowTextContentChars is the trimmed length under which a page counts
	// as having low text content
	lowTextContentChars = 200
	// headerMaxTextChars bounds the keyword-based header classification
	headerMaxTextChars = 500
)

var (
	billingKeywordRe = regexp.MustCompile(`(?i)\b(invoice|statement|bill(?:ing)?|account\s*(?:number|no\.?)|amount\s*due|balance|payment)\b`)
	dateLikeRe       = regexp.MustCompile(`(?i)\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}|\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2},?\s+\d{2,4}`)
	currencyAmountRe = regexp.MustCompile(`[$€£]\s?\d[\d,]*(?:\.\d{2})?|(?i)\b\d[\d,]*\.\d{2}\s?(?:usd|eur|gbp)\b`)
)

// PageContentClassifier flags decorative header/logo pages from their
// extracted text: short cover pages, and keyword-dense billing headers.
type PageContentClassifier struct{}

// NewPageContentClassifier creates a classifier
func NewPageContentClassifier() *PageContentClassifier {
	return &PageContentClassifier{}
}

// Classify inspects the extracted text of a page given its 1-based index.
// Only a first page can be a header page: a later page with little text is
// body content, not decoration.
func (c *PageContentClassifier) Classify(items []models.TextItem, pageIndex int) models.ContentClass {
	full := concatText(items)
	textLength := len(strings.TrimSpace(full))

	hasLowTextContent := textLength < lowTextContentChars

	itemCount := len(items)
	if itemCount < 1 {
		itemCount = 1
	}
	textDensity := float64(textLength) / float64(itemCount)

	hasBillingPatterns := billingKeywordRe.MatchString(full) &&
		dateLikeRe.MatchString(full) &&
		currencyAmountRe.MatchString(full)

	isHeader := pageIndex == 1 &&
		(hasLowTextContent || (hasBillingPatterns && textLength < headerMaxTextChars))

	return models.ContentClass{
		IsLikelyHeaderPage: isHeader,
		TextDensity:        textDensity,
		HasLowTextContent:  hasLowTextContent,
	}
}

// TrimmedTextLength returns the trimmed length of the concatenated items
func TrimmedTextLength(items []models.TextItem) int {
	return len(strings.TrimSpace(concatText(items)))
}

func concatText(items []models.TextItem) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(item.Text)
	}
	return sb.String()
}
