package analyzer

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"

	apperrors "go-doc-inspector/internal/errors"
	"go-doc-inspector/internal/logger"
	"go-doc-inspector/internal/render"
	"go-doc-inspector/pkg/models"

	"github.com/sirupsen/logrus"
)

var defaultScales = []float64{1.0, 1.5, 2.0}

// textRenderScale is the high fixed scale for text-sharpness renders
const textRenderScale = 3.0

// MultiScalePageAnalyzer renders a page at several scales, runs the edge
// method at each with a tightened threshold, and merges the scale verdicts
// into one page verdict adjusted by text sharpness and content class.
type MultiScalePageAnalyzer struct {
	combinator *MethodCombinator
	sharpness  *TextSharpnessEstimator
	classifier *PageContentClassifier
	renderer   render.PageRenderer
	surface    *render.Surface
	scales     []float64
}

// NewMultiScalePageAnalyzer wires the page-level pipeline. The surface is
// shared across scales, so scales are rendered strictly one at a time.
func NewMultiScalePageAnalyzer(
	combinator *MethodCombinator,
	sharpness *TextSharpnessEstimator,
	classifier *PageContentClassifier,
	renderer render.PageRenderer,
	surface *render.Surface,
) *MultiScalePageAnalyzer {
	return &MultiScalePageAnalyzer{
		combinator: combinator,
		sharpness:  sharpness,
		classifier: classifier,
		renderer:   renderer,
		surface:    surface,
		scales:     defaultScales,
	}
}

type scaleVerdict struct {
	scale  float64
	result models.BlurMetricSet
}

// AnalyzePage produces the page verdict. Any render or text-extraction
// failure is returned as a recoverable page-analysis error; the caller logs
// it and continues with the remaining pages.
func (a *MultiScalePageAnalyzer) AnalyzePage(ctx context.Context, doc render.Document, pageIndex int, cfg Config) (models.PageAnalysis, error) {
	tight := cfg.tightened()

	verdicts := make([]scaleVerdict, 0, len(a.scales))
	for _, scale := range a.scales {
		buf, err := a.renderer.RenderPage(ctx, doc, pageIndex, scale, render.IntentGraphics, a.surface)
		if err != nil {
			return models.PageAnalysis{}, apperrors.NewPageAnalysisError(pageIndex, err)
		}
		result := a.combinator.Combine(ctx, buf, tight)
		verdicts = append(verdicts, scaleVerdict{scale: scale, result: result})

		if cfg.Debug {
			logger.WithFields(logrus.Fields{
				"page":       pageIndex,
				"scale":      scale,
				"is_blurry":  result.IsBlurry,
				"confidence": result.Confidence,
			}).Debug("Scale-level blur verdict")
		}
	}

	edgeVerdict := mergeScaleVerdicts(verdicts)

	items, err := doc.PageText(pageIndex)
	if err != nil {
		return models.PageAnalysis{}, apperrors.NewPageAnalysisError(pageIndex, err)
	}
	content := a.classifier.Classify(items, pageIndex)

	final := edgeVerdict
	var textSharpness *models.TextSharpness

	if len(items) > 0 {
		buf, err := a.renderer.RenderPage(ctx, doc, pageIndex, textRenderScale, render.IntentText, a.surface)
		if err != nil {
			return models.PageAnalysis{}, apperrors.NewPageAnalysisError(pageIndex, err)
		}
		ts := a.sharpness.Estimate(buf, len(items), cfg.Tunables)
		textSharpness = &ts

		final.IsBlurry = edgeVerdict.IsBlurry || ts.IsTextBlurry
		final.Confidence = clamp01(math.Max(edgeVerdict.Confidence, ts.Score))
	}

	if content.IsLikelyHeaderPage {
		// Decorative pages are judged almost solely on text sharpness;
		// graphics-heavy covers trip the edge method too easily.
		if textSharpness == nil {
			ts := a.sharpness.Estimate(nil, 0, cfg.Tunables)
			textSharpness = &ts
		}
		final.IsBlurry = textSharpness.Score < cfg.Tunables.HeaderOverrideScore
	}

	return models.PageAnalysis{
		PageIndex:     pageIndex,
		Blur:          final,
		TextSharpness: textSharpness,
		Content:       &content,
	}, nil
}

// mergeScaleVerdicts applies the any-scale-flags-blur rule: a single blurry
// scale marks the page, and the confidence is the larger of the mean scale
// confidence and the blurry-scale fraction.
func mergeScaleVerdicts(verdicts []scaleVerdict) models.BlurMetricSet {
	if len(verdicts) == 0 {
		return models.BlurMetricSet{Method: models.MethodEdge}
	}

	blurryCount := 0
	confidences := make([]float64, len(verdicts))
	for i, v := range verdicts {
		confidences[i] = v.result.Confidence
		if v.result.IsBlurry {
			blurryCount++
		}
	}

	confidence := math.Max(
		stat.Mean(confidences, nil),
		float64(blurryCount)/float64(len(verdicts)),
	)

	// Keep the native-scale measurements as the representative metrics.
	native := verdicts[0].result

	return models.BlurMetricSet{
		IsBlurry:      blurryCount > 0,
		Confidence:    clamp01(confidence),
		Method:        native.Method,
		EdgeMetrics:   native.EdgeMetrics,
		VarianceValue: native.VarianceValue,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
