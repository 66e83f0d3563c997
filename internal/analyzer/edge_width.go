package analyzer

import (
	"context"
	"math"

	"go-doc-inspector/internal/logger"
	"go-doc-inspector/internal/pixel"
	"go-doc-inspector/pkg/models"

	"github.com/sirupsen/logrus"
)

// sobelKernel is the 3x3 horizontal gradient kernel, row-major
var sobelKernel = [9]int{1, 0, -1, 2, 0, -2, 1, 0, -1}

// EdgeWidthEstimator measures blur by the width of horizontal edge runs in
// a gradient-filtered luminance plane: the wider the average run, the
// blurrier the image.
type EdgeWidthEstimator struct{}

// NewEdgeWidthEstimator creates an edge-width estimator
func NewEdgeWidthEstimator() *EdgeWidthEstimator {
	return &EdgeWidthEstimator{}
}

// Estimate computes the edge metrics and the blur verdict for one buffer.
// The context is accepted for interface uniformity; the computation is not
// cancelable.
func (e *EdgeWidthEstimator) Estimate(_ context.Context, buf *pixel.Buffer, cfg Config) models.BlurMetricSet {
	metrics := e.Metrics(buf, cfg.Tunables)

	blurryByWidth := metrics.AvgEdgeWidthPerc > cfg.EdgeWidthThreshold

	// Too few edges found at all, typical of heavily blurred or blank regions
	denom := cfg.Tunables.LowEdgeDenominator
	if denom <= 0 {
		denom = DefaultTunables().LowEdgeDenominator
	}
	lowEdgeCount := metrics.NumEdges < (metrics.Width*metrics.Height)/denom

	confidence := math.Min(metrics.AvgEdgeWidthPerc/cfg.EdgeWidthThreshold, 1.0)

	if cfg.Debug {
		logger.WithFields(logrus.Fields{
			"num_edges":           metrics.NumEdges,
			"avg_edge_width":      metrics.AvgEdgeWidth,
			"avg_edge_width_perc": metrics.AvgEdgeWidthPerc,
			"low_edge_count":      lowEdgeCount,
		}).Debug("Edge width estimation")
	}

	m := metrics
	return models.BlurMetricSet{
		IsBlurry:    blurryByWidth || lowEdgeCount,
		Confidence:  confidence,
		Method:      models.MethodEdge,
		EdgeMetrics: &m,
	}
}

// Metrics runs the gradient filter and the edge-run scan. It is a pure
// function of the buffer: running it twice yields identical results.
func (e *EdgeWidthEstimator) Metrics(buf *pixel.Buffer, tun Tunables) models.EdgeMetrics {
	width, height := buf.Width, buf.Height
	grad := gradientPlane(buf)

	numEdges := 0
	totalWidth := 0

	for y := 0; y < height; y++ {
		row := grad[y*width : (y+1)*width]
		edgeStart := -1
		for x := 0; x < width; x++ {
			value := row[x]
			if edgeStart >= 0 && x > edgeStart {
				prev := row[x-1]
				if value < prev {
					// A run only counts when the ramp reached the close
					// minimum; weaker drops discard the run.
					if prev >= tun.EdgeCloseMinPrev {
						totalWidth += x - edgeStart - 1
						numEdges++
					}
					edgeStart = -1
				}
			}
			if value == tun.EdgeStartValue {
				edgeStart = x
			}
		}
	}

	avgEdgeWidth := 0.0
	avgEdgeWidthPerc := 0.0
	if numEdges > 0 {
		avgEdgeWidth = float64(totalWidth) / float64(numEdges)
		avgEdgeWidthPerc = avgEdgeWidth / float64(width) * 100.0
	}

	return models.EdgeMetrics{
		Width:            width,
		Height:           height,
		NumEdges:         numEdges,
		AvgEdgeWidth:     avgEdgeWidth,
		AvgEdgeWidthPerc: avgEdgeWidthPerc,
	}
}

// luminancePlane converts the buffer to one CIE-weighted luminance byte per
// pixel. These weights (0.2126/0.7152/0.0722) are deliberately distinct from
// the 0.299/0.587/0.114 set used for text sharpness.
func luminancePlane(buf *pixel.Buffer) []byte {
	lum := make([]byte, buf.Width*buf.Height)
	for i := 0; i < len(lum); i++ {
		r := float64(buf.Pix[i*4])
		g := float64(buf.Pix[i*4+1])
		b := float64(buf.Pix[i*4+2])
		lum[i] = byte(0.2126*r + 0.7152*g + 0.0722*b)
	}
	return lum
}

// gradientPlane convolves the luminance plane with the 3x3 gradient kernel
// in opaque mode, clamping border samples to the buffer edge and responses
// to [0,255]. One byte per pixel; the post-convolution grayscale is the same
// in every channel so a single plane suffices.
func gradientPlane(buf *pixel.Buffer) []byte {
	width, height := buf.Width, buf.Height
	lum := luminancePlane(buf)
	out := make([]byte, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sum := 0
			k := 0
			for ky := -1; ky <= 1; ky++ {
				sy := clampIndex(y+ky, height)
				for kx := -1; kx <= 1; kx++ {
					sx := clampIndex(x+kx, width)
					sum += int(lum[sy*width+sx]) * sobelKernel[k]
					k++
				}
			}
			out[y*width+x] = clampByte(sum)
		}
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
