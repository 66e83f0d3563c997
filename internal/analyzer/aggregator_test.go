package analyzer

import (
	"testing"

	"go-doc-inspector/pkg/models"
)

func pageVerdicts(blurry ...bool) []models.PageAnalysis {
	pages := make([]models.PageAnalysis, len(blurry))
	for i, b := range blurry {
		pages[i] = models.PageAnalysis{
			PageIndex: i + 1,
			Blur:      models.BlurMetricSet{IsBlurry: b, Method: models.MethodEdge},
		}
	}
	return pages
}

func TestAggregate_NoPagesIsGood(t *testing.T) {
	g := NewDocumentQualityAggregator()

	analysis := g.Aggregate(nil, 500, false)

	if !analysis.IsQualityGood {
		t.Error("A document with no analyzable pages has nothing held against it")
	}
	if analysis.PagesAnalyzed != 0 {
		t.Errorf("Expected 0 pages analyzed, got %d", analysis.PagesAnalyzed)
	}
}

func TestAggregate_SinglePage(t *testing.T) {
	g := NewDocumentQualityAggregator()

	if got := g.Aggregate(pageVerdicts(false), 500, false); !got.IsQualityGood {
		t.Error("A single sharp page is a good document")
	}
	if got := g.Aggregate(pageVerdicts(true), 500, false); got.IsQualityGood {
		t.Error("A single blurry page is a bad document")
	}
}

func TestAggregate_FirstPageLeniency(t *testing.T) {
	g := NewDocumentQualityAggregator()

	// Only the first page is blurry; the body is clean.
	analysis := g.Aggregate(pageVerdicts(true, false, false), 500, false)

	if !analysis.IsQualityGood {
		t.Error("A blurry first page alone must not fail the document")
	}
}

func TestAggregate_BodyMajorityFails(t *testing.T) {
	g := NewDocumentQualityAggregator()

	cases := []struct {
		name   string
		blurry []bool
		good   bool
	}{
		{"3 of 4 body pages blurry", []bool{false, true, true, true, false}, false},
		{"exactly half rounded up", []bool{false, true, true, false}, false}, // 2 of 3, ceil(3/2)=2
		{"1 of 3 body pages blurry", []bool{false, true, false, false}, true},
		{"first and one body page", []bool{true, true, false, false}, true}, // 1 of 3 < 2
		{"all blurry", []bool{true, true, true}, false},
	}

	for _, tc := range cases {
		analysis := g.Aggregate(pageVerdicts(tc.blurry...), 500, false)
		if analysis.IsQualityGood != tc.good {
			t.Errorf("%s: expected good=%v, got %v", tc.name, tc.good, analysis.IsQualityGood)
		}
	}
}

func TestAggregate_ScannedDetection(t *testing.T) {
	g := NewDocumentQualityAggregator()

	if got := g.Aggregate(pageVerdicts(false), 500, false); got.IsScanned {
		t.Error("A text-based document with text on every page is not scanned")
	}
	if got := g.Aggregate(pageVerdicts(false), 500, true); !got.IsScanned {
		t.Error("Any page without text marks the document scanned")
	}
	if got := g.Aggregate(pageVerdicts(false), 9, false); !got.IsScanned {
		t.Error("Less than 10 chars of total text marks the document scanned")
	}
	if got := g.Aggregate(pageVerdicts(false), 10, false); got.IsScanned {
		t.Error("10 chars of total text is text-based")
	}
}

func TestAggregate_CarriesInputsThrough(t *testing.T) {
	g := NewDocumentQualityAggregator()
	pages := pageVerdicts(false, true)

	analysis := g.Aggregate(pages, 123, false)

	if analysis.PagesAnalyzed != 2 {
		t.Errorf("Expected 2 pages analyzed, got %d", analysis.PagesAnalyzed)
	}
	if analysis.TextLength != 123 {
		t.Errorf("Expected text length 123, got %d", analysis.TextLength)
	}
	if len(analysis.PageResults) != 2 {
		t.Errorf("Expected page results to be retained, got %d", len(analysis.PageResults))
	}
}
