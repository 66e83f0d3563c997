package analyzer

import (
	"testing"

	"go-doc-inspector/internal/config"
	"go-doc-inspector/pkg/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Method != models.MethodEdge {
		t.Errorf("Expected default method edge, got %s", cfg.Method)
	}
	if cfg.EdgeWidthThreshold != 0.5 {
		t.Errorf("Expected default edge threshold 0.5, got %f", cfg.EdgeWidthThreshold)
	}
	if cfg.VarianceThreshold != 120.0 {
		t.Errorf("Expected default variance threshold 120, got %f", cfg.VarianceThreshold)
	}
	if cfg.Debug {
		t.Error("Debug must default to off")
	}
}

func TestConfigChaining(t *testing.T) {
	cfg := DefaultConfig().
		WithMethod(models.MethodBoth).
		WithEdgeWidthThreshold(0.8).
		WithVarianceThreshold(200).
		WithDebug()

	if cfg.Method != models.MethodBoth {
		t.Errorf("Expected method both, got %s", cfg.Method)
	}
	if cfg.EdgeWidthThreshold != 0.8 {
		t.Errorf("Expected edge threshold 0.8, got %f", cfg.EdgeWidthThreshold)
	}
	if cfg.VarianceThreshold != 200 {
		t.Errorf("Expected variance threshold 200, got %f", cfg.VarianceThreshold)
	}
	if !cfg.Debug {
		t.Error("Expected debug enabled")
	}

	// Chaining is by value; the defaults stay untouched.
	if DefaultConfig().Method != models.MethodEdge {
		t.Error("Chaining must not mutate the defaults")
	}
}

func TestFromAnalysisConfig(t *testing.T) {
	ac := config.AnalysisConfig{
		Method:             models.MethodVariance,
		EdgeWidthThreshold: 1.5,
		VarianceThreshold:  90,
		Debug:              true,
	}

	cfg := FromAnalysisConfig(ac)

	if cfg.Method != models.MethodVariance {
		t.Errorf("Expected variance method, got %s", cfg.Method)
	}
	if cfg.EdgeWidthThreshold != 1.5 || cfg.VarianceThreshold != 90 {
		t.Errorf("Thresholds not applied: %f / %f", cfg.EdgeWidthThreshold, cfg.VarianceThreshold)
	}
	if !cfg.Debug {
		t.Error("Expected debug carried over")
	}
}

func TestFromAnalysisConfig_InvalidValuesKeepDefaults(t *testing.T) {
	ac := config.AnalysisConfig{
		Method:             models.Method("bogus"),
		EdgeWidthThreshold: -1,
		VarianceThreshold:  0,
	}

	cfg := FromAnalysisConfig(ac)

	if cfg.Method != models.MethodEdge {
		t.Errorf("Invalid method must keep the default, got %s", cfg.Method)
	}
	if cfg.EdgeWidthThreshold != 0.5 || cfg.VarianceThreshold != 120.0 {
		t.Errorf("Invalid thresholds must keep the defaults: %f / %f", cfg.EdgeWidthThreshold, cfg.VarianceThreshold)
	}
}

func TestTightenedCapsEdgeThreshold(t *testing.T) {
	cfg := DefaultConfig().WithMethod(models.MethodVariance).WithEdgeWidthThreshold(0.9)

	tight := cfg.tightened()

	if tight.EdgeWidthThreshold != cfg.Tunables.TightenedEdgeThreshold {
		t.Errorf("Expected threshold capped at %f, got %f",
			cfg.Tunables.TightenedEdgeThreshold, tight.EdgeWidthThreshold)
	}
	if tight.Method != models.MethodEdge {
		t.Errorf("Tightened passes always use the edge method, got %s", tight.Method)
	}

	low := DefaultConfig().WithEdgeWidthThreshold(0.1).tightened()
	if low.EdgeWidthThreshold != 0.1 {
		t.Errorf("A threshold below the cap must be kept, got %f", low.EdgeWidthThreshold)
	}
}
