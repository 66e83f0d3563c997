package capability

import (
	"context"
	"testing"

	"go-doc-inspector/internal/pixel"
)

func grayBuffer(t *testing.T, width, height int, valueAt func(x, y int) byte) *pixel.Buffer {
	t.Helper()
	buf, err := pixel.NewBuffer(width, height)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := valueAt(x, y)
			i := (y*width + x) * 4
			buf.Pix[i] = v
			buf.Pix[i+1] = v
			buf.Pix[i+2] = v
			buf.Pix[i+3] = 255
		}
	}
	return buf
}

func TestNewLaplacianVision(t *testing.T) {
	vision, err := NewLaplacianVision(context.Background())
	if err != nil {
		t.Fatalf("NewLaplacianVision: %v", err)
	}
	if vision == nil {
		t.Fatal("Expected a capability instance")
	}
}

func TestComputeLaplacianVariance_FlatIsZero(t *testing.T) {
	vision := &LaplacianVision{}
	buf := grayBuffer(t, 64, 64, func(_, _ int) byte { return 150 })

	variance, err := vision.ComputeLaplacianVariance(buf)
	if err != nil {
		t.Fatalf("ComputeLaplacianVariance: %v", err)
	}
	if variance != 0 {
		t.Errorf("Expected zero variance on a flat buffer, got %f", variance)
	}
}

func TestComputeLaplacianVariance_CheckerboardIsHigh(t *testing.T) {
	vision := &LaplacianVision{}
	buf := grayBuffer(t, 64, 64, func(x, y int) byte {
		if (x+y)%2 == 0 {
			return 255
		}
		return 0
	})

	variance, err := vision.ComputeLaplacianVariance(buf)
	if err != nil {
		t.Fatalf("ComputeLaplacianVariance: %v", err)
	}
	if variance < 1000 {
		t.Errorf("Expected a high variance on a checkerboard, got %f", variance)
	}
}

func TestComputeLaplacianVariance_TooSmall(t *testing.T) {
	vision := &LaplacianVision{}
	buf := grayBuffer(t, 2, 2, func(_, _ int) byte { return 0 })

	if _, err := vision.ComputeLaplacianVariance(buf); err == nil {
		t.Error("Expected an error for a buffer smaller than the kernel")
	}
}

func TestComputeLaplacianVariance_MalformedBuffer(t *testing.T) {
	vision := &LaplacianVision{}
	buf := &pixel.Buffer{Width: 10, Height: 10, Pix: make([]byte, 7)}

	if _, err := vision.ComputeLaplacianVariance(buf); err == nil {
		t.Error("Expected a validation error for a malformed buffer")
	}
}
