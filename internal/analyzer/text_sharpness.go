package analyzer

import (
	"math"

	"go-doc-inspector/internal/pixel"
	"go-doc-inspector/pkg/models"
)

// textWindowSize is the side of the sliding window over the luminance plane
const textWindowSize = 5

// TextSharpnessEstimator scores the sharpness of rendered glyph regions.
// High-variance windows are assumed to contain text; their local variance
// and maximum adjacent-pixel gradient feed the sharpness score.
type TextSharpnessEstimator struct{}

// NewTextSharpnessEstimator creates a text sharpness estimator
func NewTextSharpnessEstimator() *TextSharpnessEstimator {
	return &TextSharpnessEstimator{}
}

// Estimate slides a 5x5 window across the buffer rendered at high scale.
// A page without any extracted text items is judged conservatively:
// score 0, blurry.
func (t *TextSharpnessEstimator) Estimate(buf *pixel.Buffer, textItemCount int, tun Tunables) models.TextSharpness {
	if textItemCount == 0 {
		return models.TextSharpness{Score: 0, IsTextBlurry: true}
	}

	width, height := buf.Width, buf.Height
	lum := textLuminancePlane(buf)

	stride := min(width, height) / 100
	if stride < 1 {
		stride = 1
	}

	sampleCount := 0
	var totalVariance, totalMaxGradient float64

	for y := 0; y+textWindowSize <= height; y += stride {
		for x := 0; x+textWindowSize <= width; x += stride {
			variance, maxGradient := windowStats(lum, width, x, y)
			if variance > tun.TextWindowVariance {
				sampleCount++
				totalVariance += variance
				totalMaxGradient += maxGradient
			}
		}
	}

	var avgVariance, avgGradient float64
	if sampleCount > 0 {
		avgVariance = totalVariance / float64(sampleCount)
		avgGradient = totalMaxGradient / float64(sampleCount)
	}

	score := avgVariance/tun.VarianceDivisor + avgGradient/tun.GradientDivisor

	return models.TextSharpness{
		Score:            score,
		IsTextBlurry:     score < tun.SharpnessBlurryBelow,
		SampleCount:      sampleCount,
		AvgVariance:      avgVariance,
		AvgEdgeIntensity: avgGradient,
	}
}

// windowStats computes the luminance variance of a 5x5 window and the
// largest right/down adjacent-pixel gradient magnitude inside it
func windowStats(lum []float64, width, x0, y0 int) (variance, maxGradient float64) {
	var sum, sumSq float64
	for dy := 0; dy < textWindowSize; dy++ {
		for dx := 0; dx < textWindowSize; dx++ {
			v := lum[(y0+dy)*width+x0+dx]
			sum += v
			sumSq += v * v
		}
	}
	n := float64(textWindowSize * textWindowSize)
	mean := sum / n
	variance = sumSq/n - mean*mean

	for dy := 0; dy < textWindowSize-1; dy++ {
		for dx := 0; dx < textWindowSize-1; dx++ {
			v := lum[(y0+dy)*width+x0+dx]
			gx := lum[(y0+dy)*width+x0+dx+1] - v
			gy := lum[(y0+dy+1)*width+x0+dx] - v
			magnitude := math.Sqrt(gx*gx + gy*gy)
			if magnitude > maxGradient {
				maxGradient = magnitude
			}
		}
	}
	return variance, maxGradient
}

// textLuminancePlane uses the 0.299/0.587/0.114 grayscale convention; the
// edge estimator uses the CIE weights instead, and the two must not be mixed.
func textLuminancePlane(buf *pixel.Buffer) []float64 {
	lum := make([]float64, buf.Width*buf.Height)
	for i := range lum {
		r := float64(buf.Pix[i*4])
		g := float64(buf.Pix[i*4+1])
		b := float64(buf.Pix[i*4+2])
		lum[i] = 0.299*r + 0.587*g + 0.114*b
	}
	return lum
}
