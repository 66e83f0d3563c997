package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-doc-inspector/internal/capability"
	"go-doc-inspector/pkg/models"
)

func workingLoader() *capability.VisionLoader {
	return capability.NewVisionLoader(capability.NewLaplacianVision, time.Second, 5*time.Millisecond)
}

func failingLoader() *capability.VisionLoader {
	factory := func(ctx context.Context) (capability.Vision, error) {
		return nil, errors.New("capability exploded")
	}
	return capability.NewVisionLoader(factory, time.Second, 5*time.Millisecond)
}

func TestVarianceEstimator_FlatImageIsBlurry(t *testing.T) {
	edge := NewEdgeWidthEstimator()
	v := NewVarianceEstimator(workingLoader(), edge)
	buf := newFlatBuffer(t, 100, 100, 128)

	cfg := DefaultConfig().WithMethod(models.MethodVariance)
	result := v.Estimate(context.Background(), buf, cfg)

	if !result.IsBlurry {
		t.Error("Expected flat image to be blurry by variance")
	}
	if result.Method != models.MethodVariance {
		t.Errorf("Expected method variance, got %s", result.Method)
	}
	if result.VarianceValue == nil {
		t.Fatal("Expected variance value to be present")
	}
	if *result.VarianceValue > 1.0 {
		t.Errorf("Expected near-zero variance for a flat image, got %f", *result.VarianceValue)
	}
	if result.Confidence != 1.0 {
		t.Errorf("Expected confidence 1 when variance is far below threshold, got %f", result.Confidence)
	}
}

func TestVarianceEstimator_CheckerboardIsSharp(t *testing.T) {
	edge := NewEdgeWidthEstimator()
	v := NewVarianceEstimator(workingLoader(), edge)
	buf := newColumnBuffer(t, 100, 100, func(x int) byte {
		if x%2 == 0 {
			return 255
		}
		return 0
	})

	cfg := DefaultConfig().WithMethod(models.MethodVariance)
	result := v.Estimate(context.Background(), buf, cfg)

	if result.IsBlurry {
		t.Errorf("Expected high-frequency stripes to pass, variance %v", result.VarianceValue)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		t.Errorf("Confidence out of range: %f", result.Confidence)
	}
}

func TestVarianceEstimator_FallsBackToEdgeOnCapabilityFailure(t *testing.T) {
	edge := NewEdgeWidthEstimator()
	v := NewVarianceEstimator(failingLoader(), edge)
	buf := sharpBarBuffer(t, 1000, 200)

	cfg := DefaultConfig().WithMethod(models.MethodVariance)
	result := v.Estimate(context.Background(), buf, cfg)

	if result.Method != models.MethodEdgeFallback {
		t.Errorf("Expected edge_fallback method tag, got %s", result.Method)
	}
	if result.EdgeMetrics == nil {
		t.Error("Expected edge metrics in the fallback result")
	}
	if result.IsBlurry {
		t.Error("Expected the sharp image to pass via the edge fallback")
	}
}

func TestVarianceEstimator_FallsBackOnComputeError(t *testing.T) {
	edge := NewEdgeWidthEstimator()
	v := NewVarianceEstimator(workingLoader(), edge)
	// Too small for the Laplacian filter
	buf := newFlatBuffer(t, 2, 2, 128)

	cfg := DefaultConfig().WithMethod(models.MethodVariance)
	result := v.Estimate(context.Background(), buf, cfg)

	if result.Method != models.MethodEdgeFallback {
		t.Errorf("Expected edge_fallback for an undersized buffer, got %s", result.Method)
	}
}
