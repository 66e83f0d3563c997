package analyzer

import (
	"go-doc-inspector/internal/config"
	"go-doc-inspector/pkg/models"
)

// Config holds the per-run analysis settings. A Config is immutable for the
// duration of one analysis call.
type Config struct {
	Method             models.Method
	EdgeWidthThreshold float64
	VarianceThreshold  float64
	Debug              bool

	Tunables Tunables
}

// Tunables are the empirically chosen policy constants of the estimators.
// The edge-start value and the close-minimum are inherited from the original
// edge-run heuristic without a documented derivation; they are kept
// configurable rather than hard-coded.
type Tunables struct {
	// EdgeStartValue opens an edge run in the gradient plane
	EdgeStartValue byte
	// EdgeCloseMinPrev is the minimum previous sample required to close a
	// run. A drop from below this value discards the open run entirely
	// rather than leaving it open for a later, stronger drop.
	EdgeCloseMinPrev byte
	// LowEdgeDenominator: fewer than width*height/denominator edges signals blur
	LowEdgeDenominator int
	// TightenedEdgeThreshold caps the edge threshold during multi-scale passes
	TightenedEdgeThreshold float64
	// TextWindowVariance is the minimum local variance of a text-bearing window
	TextWindowVariance float64
	// VarianceDivisor and GradientDivisor normalize the sharpness score terms
	VarianceDivisor  float64
	GradientDivisor  float64
	// SharpnessBlurryBelow marks text blurry under this sharpness score
	SharpnessBlurryBelow float64
	// HeaderOverrideScore is the lenient sharpness cutoff for header pages
	HeaderOverrideScore float64
}

// DefaultTunables returns the policy constants in production use
func DefaultTunables() Tunables {
	return Tunables{
		EdgeStartValue:         0,
		EdgeCloseMinPrev:       20,
		LowEdgeDenominator:     10000,
		TightenedEdgeThreshold: 0.25,
		TextWindowVariance:     100.0,
		VarianceDivisor:        1000.0,
		GradientDivisor:        50.0,
		SharpnessBlurryBelow:   0.8,
		HeaderOverrideScore:    0.5,
	}
}

// DefaultConfig returns the documented defaults: edge method, edge width
// threshold 0.5, variance threshold 120
func DefaultConfig() Config {
	return Config{
		Method:             models.MethodEdge,
		EdgeWidthThreshold: 0.5,
		VarianceThreshold:  120.0,
		Debug:              false,
		Tunables:           DefaultTunables(),
	}
}

// FromAnalysisConfig maps the application configuration onto a run Config
func FromAnalysisConfig(ac config.AnalysisConfig) Config {
	cfg := DefaultConfig()
	if ac.Method.Valid() {
		cfg.Method = ac.Method
	}
	if ac.EdgeWidthThreshold > 0 {
		cfg.EdgeWidthThreshold = ac.EdgeWidthThreshold
	}
	if ac.VarianceThreshold > 0 {
		cfg.VarianceThreshold = ac.VarianceThreshold
	}
	cfg.Debug = ac.Debug
	return cfg
}

// WithMethod selects the estimator method
func (c Config) WithMethod(method models.Method) Config {
	c.Method = method
	return c
}

// WithEdgeWidthThreshold sets the edge-width blur threshold (percent of width)
func (c Config) WithEdgeWidthThreshold(threshold float64) Config {
	c.EdgeWidthThreshold = threshold
	return c
}

// WithVarianceThreshold sets the Laplacian variance blur threshold
func (c Config) WithVarianceThreshold(threshold float64) Config {
	c.VarianceThreshold = threshold
	return c
}

// WithDebug enables verbose per-step logging
func (c Config) WithDebug() Config {
	c.Debug = true
	return c
}

// tightened returns a copy configured for the sensitive multi-scale edge
// passes: edge method with the threshold capped at TightenedEdgeThreshold.
func (c Config) tightened() Config {
	if c.EdgeWidthThreshold > c.Tunables.TightenedEdgeThreshold {
		c.EdgeWidthThreshold = c.Tunables.TightenedEdgeThreshold
	}
	c.Method = models.MethodEdge
	return c
}
