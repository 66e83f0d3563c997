package analyzer

import (
	"context"
	"math"

	"go-doc-inspector/internal/capability"
	"go-doc-inspector/internal/logger"
	"go-doc-inspector/internal/pixel"
	"go-doc-inspector/pkg/models"

	"github.com/sirupsen/logrus"
)

// VarianceEstimator measures blur by the variance of a Laplacian-filtered
// buffer. The filter itself is computed by the external vision capability;
// any capability failure falls back to the edge-width estimator, tagged as
// a fallback result. A capability failure is never fatal to the caller.
type VarianceEstimator struct {
	loader *capability.VisionLoader
	edge   *EdgeWidthEstimator
}

// NewVarianceEstimator creates a variance estimator backed by the given
// capability loader, with the edge estimator as its fallback.
func NewVarianceEstimator(loader *capability.VisionLoader, edge *EdgeWidthEstimator) *VarianceEstimator {
	return &VarianceEstimator{loader: loader, edge: edge}
}

// Estimate computes the Laplacian-variance verdict, or the edge fallback if
// the capability is unavailable, still loading past the bounded wait, or
// errors internally.
func (v *VarianceEstimator) Estimate(ctx context.Context, buf *pixel.Buffer, cfg Config) models.BlurMetricSet {
	vision, err := v.loader.Get(ctx)
	if err != nil {
		return v.fallback(ctx, buf, cfg, err)
	}

	variance, err := vision.ComputeLaplacianVariance(buf)
	if err != nil {
		return v.fallback(ctx, buf, cfg, err)
	}

	confidence := 1.0
	if variance > 0 {
		confidence = math.Min(cfg.VarianceThreshold/variance, 1.0)
	}

	if cfg.Debug {
		logger.WithFields(logrus.Fields{
			"variance":  variance,
			"threshold": cfg.VarianceThreshold,
		}).Debug("Laplacian variance estimation")
	}

	return models.BlurMetricSet{
		IsBlurry:      variance < cfg.VarianceThreshold,
		Confidence:    confidence,
		Method:        models.MethodVariance,
		VarianceValue: &variance,
	}
}

func (v *VarianceEstimator) fallback(ctx context.Context, buf *pixel.Buffer, cfg Config, cause error) models.BlurMetricSet {
	logger.WithError(cause).Warn("Vision capability unavailable, falling back to edge method")

	result := v.edge.Estimate(ctx, buf, cfg)
	result.Method = models.MethodEdgeFallback
	return result
}
