package capability

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"go-doc-inspector/internal/pixel"
)

// Vision is the external computer-vision capability boundary. Implementations
// must be safe for concurrent use.
type Vision interface {
	ComputeLaplacianVariance(buf *pixel.Buffer) (float64, error)
}

// LaplacianVision is the built-in vision capability. It filters the
// grayscale buffer with a 3x3 Laplacian kernel and returns the variance of
// the interior responses.
type LaplacianVision struct{}

// NewLaplacianVision constructs the built-in capability; the returned value
// is stateless and reusable
func NewLaplacianVision(_ context.Context) (Vision, error) {
	return &LaplacianVision{}, nil
}

// ComputeLaplacianVariance applies the [0,1,0; 1,-4,1; 0,1,0] kernel to the
// luminance plane and computes the variance of the responses
func (v *LaplacianVision) ComputeLaplacianVariance(buf *pixel.Buffer) (float64, error) {
	if err := buf.Validate(); err != nil {
		return 0, fmt.Errorf("laplacian variance: %w", err)
	}
	if buf.Width < 3 || buf.Height < 3 {
		return 0, fmt.Errorf("laplacian variance: buffer %dx%d too small", buf.Width, buf.Height)
	}

	gray := buf.ToGray()
	width, height := buf.Width, buf.Height

	data := make([]float64, 0, (width-2)*(height-2))
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			center := float64(gray.GrayAt(x, y).Y)
			top := float64(gray.GrayAt(x, y-1).Y)
			bottom := float64(gray.GrayAt(x, y+1).Y)
			left := float64(gray.GrayAt(x-1, y).Y)
			right := float64(gray.GrayAt(x+1, y).Y)

			data = append(data, -4*center+top+bottom+left+right)
		}
	}

	if len(data) == 0 {
		return 0, nil
	}
	return stat.Variance(data, nil), nil
}
