package analyzer

import (
	"strings"
	"testing"

	"go-doc-inspector/pkg/models"
)

func itemsFrom(texts ...string) []models.TextItem {
	items := make([]models.TextItem, len(texts))
	for i, s := range texts {
		items[i] = models.TextItem{Text: s}
	}
	return items
}

func TestPageContentClassifier_ShortFirstPageIsHeader(t *testing.T) {
	c := NewPageContentClassifier()

	class := c.Classify(itemsFrom("ACME Corp", "Monthly Statement"), 1)

	if !class.IsLikelyHeaderPage {
		t.Error("Expected a short first page to be classified as header")
	}
	if !class.HasLowTextContent {
		t.Error("Expected low text content flag")
	}
}

func TestPageContentClassifier_ShortLaterPageIsNotHeader(t *testing.T) {
	c := NewPageContentClassifier()

	class := c.Classify(itemsFrom("ACME Corp", "Monthly Statement"), 3)

	if class.IsLikelyHeaderPage {
		t.Error("Only a first page can be a header page")
	}
	if !class.HasLowTextContent {
		t.Error("Low text content is independent of the page index")
	}
}

func TestPageContentClassifier_LongPlainFirstPageIsNotHeader(t *testing.T) {
	c := NewPageContentClassifier()
	long := strings.Repeat("lorem ipsum dolor sit amet ", 12) // ~324 chars

	class := c.Classify(itemsFrom(long), 1)

	if class.IsLikelyHeaderPage {
		t.Error("A long page without billing patterns is body content")
	}
	if class.HasLowTextContent {
		t.Error("Expected the page to exceed the low-text cutoff")
	}
}

func TestPageContentClassifier_BillingKeywordsMakeFirstPageHeader(t *testing.T) {
	c := NewPageContentClassifier()
	// Over the low-text cutoff but under the header keyword cap, with a
	// billing keyword, a date, and a currency amount.
	filler := strings.Repeat("customer service information line ", 6) // ~204 chars
	items := itemsFrom(
		"Invoice for account number 4417",
		"Due 01/31/2025",
		"Amount due: $1,204.50",
		filler,
	)

	class := c.Classify(items, 1)

	if class.HasLowTextContent {
		t.Fatal("Test text must exceed the low-text cutoff to exercise the keyword path")
	}
	if !class.IsLikelyHeaderPage {
		t.Error("Expected billing keyword page to be classified as header")
	}
}

func TestPageContentClassifier_BillingKeywordsIgnoredOnLaterPages(t *testing.T) {
	c := NewPageContentClassifier()
	items := itemsFrom("Invoice dated 01/31/2025, amount due $42.00")

	class := c.Classify(items, 2)

	if class.IsLikelyHeaderPage {
		t.Error("Billing keywords must not mark later pages as headers")
	}
}

func TestPageContentClassifier_TextDensity(t *testing.T) {
	c := NewPageContentClassifier()

	class := c.Classify(itemsFrom("abcde", "fghij"), 2)

	// Two items joined by one space: 11 trimmed chars over 2 items.
	if class.TextDensity != 5.5 {
		t.Errorf("Expected density 5.5, got %f", class.TextDensity)
	}
}

func TestPageContentClassifier_NoItems(t *testing.T) {
	c := NewPageContentClassifier()

	class := c.Classify(nil, 1)

	if !class.IsLikelyHeaderPage {
		t.Error("An empty first page counts as a header page")
	}
	if class.TextDensity != 0 {
		t.Errorf("Expected zero density, got %f", class.TextDensity)
	}
}

func TestTrimmedTextLength(t *testing.T) {
	if got := TrimmedTextLength(nil); got != 0 {
		t.Errorf("Expected 0 for no items, got %d", got)
	}
	if got := TrimmedTextLength(itemsFrom("  abc  ")); got != 3 {
		t.Errorf("Expected 3 after trimming, got %d", got)
	}
	if got := TrimmedTextLength(itemsFrom("ab", "cd")); got != 5 {
		t.Errorf("Expected 5 including the joining space, got %d", got)
	}
}
