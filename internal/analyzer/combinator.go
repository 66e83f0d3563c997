package analyzer

import (
	"context"
	"math"

	"go-doc-inspector/internal/pixel"
	"go-doc-inspector/pkg/models"
)

// MethodCombinator merges the single-image estimators into one metric set
// according to the configured method.
type MethodCombinator struct {
	edge     *EdgeWidthEstimator
	variance *VarianceEstimator
}

// NewMethodCombinator wires both estimators
func NewMethodCombinator(edge *EdgeWidthEstimator, variance *VarianceEstimator) *MethodCombinator {
	return &MethodCombinator{edge: edge, variance: variance}
}

// Combine runs the configured estimator(s). For MethodBoth the verdicts are
// OR-ed, the confidence is the maximum of the two, and both estimators'
// metrics are retained in the merged set.
func (c *MethodCombinator) Combine(ctx context.Context, buf *pixel.Buffer, cfg Config) models.BlurMetricSet {
	switch cfg.Method {
	case models.MethodVariance:
		return c.variance.Estimate(ctx, buf, cfg)

	case models.MethodBoth:
		edgeResult := c.edge.Estimate(ctx, buf, cfg)
		varianceResult := c.variance.Estimate(ctx, buf, cfg)

		return models.BlurMetricSet{
			IsBlurry:      edgeResult.IsBlurry || varianceResult.IsBlurry,
			Confidence:    math.Max(edgeResult.Confidence, varianceResult.Confidence),
			Method:        models.MethodBoth,
			EdgeMetrics:   edgeResult.EdgeMetrics,
			VarianceValue: varianceResult.VarianceValue,
		}

	default:
		return c.edge.Estimate(ctx, buf, cfg)
	}
}
