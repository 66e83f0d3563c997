package models

// Method identifies which blur estimator produced a result.
type Method string

const (
	// MethodEdge uses gradient-filtered edge-width analysis
	MethodEdge Method = "edge"
	// MethodVariance uses variance of a Laplacian-filtered buffer
	MethodVariance Method = "variance"
	// MethodBoth merges edge and variance results
	MethodBoth Method = "both"
	// MethodEdgeFallback tags an edge result produced because the
	// variance capability was unavailable
	MethodEdgeFallback Method = "edge_fallback"
)

// Valid reports whether m names a configurable analysis method.
// The fallback tag is result-only and is not accepted in configuration.
func (m Method) Valid() bool {
	switch m {
	case MethodEdge, MethodVariance, MethodBoth:
		return true
	}
	return false
}

// EdgeMetrics holds the raw measurements of the edge-width estimator
type EdgeMetrics struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	NumEdges         int     `json:"num_edges"`
	AvgEdgeWidth     float64 `json:"avg_edge_width"`
	AvgEdgeWidthPerc float64 `json:"avg_edge_width_perc"`
}

// BlurMetricSet is the merged verdict of one or both single-image estimators
type BlurMetricSet struct {
	IsBlurry      bool         `json:"is_blurry"`
	Confidence    float64      `json:"confidence"`
	Method        Method       `json:"method"`
	EdgeMetrics   *EdgeMetrics `json:"edge_metrics,omitempty"`
	VarianceValue *float64     `json:"variance_value,omitempty"`
}

// TextSharpness scores rendered glyph regions of a page
type TextSharpness struct {
	Score            float64 `json:"score"`
	IsTextBlurry     bool    `json:"is_text_blurry"`
	SampleCount      int     `json:"sample_count"`
	AvgVariance      float64 `json:"avg_variance"`
	AvgEdgeIntensity float64 `json:"avg_edge_intensity"`
}

// ContentClass flags decorative/header pages based on extracted text
type ContentClass struct {
	IsLikelyHeaderPage bool    `json:"is_likely_header_page"`
	TextDensity        float64 `json:"text_density"`
	HasLowTextContent  bool    `json:"has_low_text_content"`
}

// OCRAccuracy compares OCR output against caller-supplied expected text
type OCRAccuracy struct {
	CER        float64 `json:"character_error_rate"`
	WER        float64 `json:"word_error_rate"`
	MatchScore float64 `json:"match_score"`
}
