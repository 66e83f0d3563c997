package models

// AnalyzeImageRequest asks for a single-image blur analysis.
// Exactly one of URL or ImageBase64 must be set.
type AnalyzeImageRequest struct {
	URL          string `json:"url,omitempty"`
	ImageBase64  string `json:"image_base64,omitempty"`
	Method       string `json:"method,omitempty"`
	ExpectedText string `json:"expected_text,omitempty"`

	EdgeWidthThreshold *float64 `json:"edge_width_threshold,omitempty"`
	VarianceThreshold  *float64 `json:"variance_threshold,omitempty"`
}

// AnalyzeImageResponse carries the merged blur verdict for one image
type AnalyzeImageResponse struct {
	Result      BlurMetricSet `json:"result"`
	OCRAccuracy *OCRAccuracy  `json:"ocr_accuracy,omitempty"`
	Errors      []string      `json:"errors,omitempty"`

	ProcessingTimeSec float64 `json:"processing_time_sec"`
}

// AnalyzeDocumentRequest asks for a multi-page document quality analysis.
// PageURLs lists one raster image per page; alternatively URL may point at
// a PDF whose text is extracted page by page.
type AnalyzeDocumentRequest struct {
	URL      string   `json:"url,omitempty"`
	PageURLs []string `json:"page_urls,omitempty"`
	Method   string   `json:"method,omitempty"`

	EdgeWidthThreshold *float64 `json:"edge_width_threshold,omitempty"`
	VarianceThreshold  *float64 `json:"variance_threshold,omitempty"`
}

// AnalyzeDocumentResponse carries the document-level verdict
type AnalyzeDocumentResponse struct {
	Result DocumentAnalysis `json:"result"`
	Errors []string         `json:"errors,omitempty"`

	ProcessingTimeSec float64 `json:"processing_time_sec"`
}

// ErrorResponse is the uniform error body of the HTTP API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
