package models

// TextItem is one extracted text fragment of a page, in reading order
type TextItem struct {
	Text string `json:"text"`
}

// PageAnalysis is the per-page verdict produced by multi-scale analysis
type PageAnalysis struct {
	PageIndex     int            `json:"page_index"` // 1-based
	Blur          BlurMetricSet  `json:"blur"`
	TextSharpness *TextSharpness `json:"text_sharpness,omitempty"`
	Content       *ContentClass  `json:"content,omitempty"`
}

// DocumentAnalysis is the document-level verdict over all analyzed pages.
// Pages that failed analysis are absent from PageResults.
type DocumentAnalysis struct {
	IsQualityGood bool           `json:"is_quality_good"`
	IsScanned     bool           `json:"is_scanned"`
	PagesAnalyzed int            `json:"pages_analyzed"`
	TextLength    int            `json:"text_length"`
	PageResults   []PageAnalysis `json:"page_results"`
}
