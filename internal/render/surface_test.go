package render

import (
	"testing"

	apperrors "go-doc-inspector/internal/errors"
)

func TestSurface_AcquireDimensions(t *testing.T) {
	s := NewSurface()

	img, err := s.Acquire(640, 480)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer s.Release()

	bounds := img.Bounds()
	if bounds.Dx() != 640 || bounds.Dy() != 480 {
		t.Errorf("Expected 640x480, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	if img.Stride != 640*4 {
		t.Errorf("Expected stride %d, got %d", 640*4, img.Stride)
	}
}

func TestSurface_ReusesBackingArray(t *testing.T) {
	s := NewSurface()

	big, err := s.Acquire(100, 100)
	if err != nil {
		t.Fatalf("Acquire big: %v", err)
	}
	big.Pix[0] = 255
	s.Release()

	small, err := s.Acquire(10, 10)
	if err != nil {
		t.Fatalf("Acquire small: %v", err)
	}
	defer s.Release()

	if &small.Pix[0] != &big.Pix[0] {
		t.Error("Expected the smaller acquire to reuse the backing array")
	}
	if small.Pix[0] != 0 {
		t.Error("Reused surface memory must be zeroed")
	}
	if small.Bounds().Dx() != 10 || small.Bounds().Dy() != 10 {
		t.Errorf("Expected 10x10, got %v", small.Bounds())
	}
}

func TestSurface_GrowsWhenNeeded(t *testing.T) {
	s := NewSurface()

	if _, err := s.Acquire(10, 10); err != nil {
		t.Fatalf("Acquire small: %v", err)
	}
	s.Release()

	big, err := s.Acquire(200, 200)
	if err != nil {
		t.Fatalf("Acquire big: %v", err)
	}
	defer s.Release()

	if len(big.Pix) != 200*200*4 {
		t.Errorf("Expected %d bytes, got %d", 200*200*4, len(big.Pix))
	}
}

func TestSurface_InvalidDimensions(t *testing.T) {
	s := NewSurface()

	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-5, 10}} {
		_, err := s.Acquire(dims[0], dims[1])
		if err == nil {
			s.Release()
			t.Fatalf("Expected an error for %dx%d", dims[0], dims[1])
		}
		if !apperrors.IsType(err, apperrors.ErrorTypeSurface) {
			t.Errorf("%dx%d: expected a surface error, got %v", dims[0], dims[1], err)
		}
	}
}

func TestSurface_AllocationCap(t *testing.T) {
	s := NewSurface()

	_, err := s.Acquire(1<<16, 1<<16)
	if err == nil {
		s.Release()
		t.Fatal("Expected the allocation cap to reject a giant surface")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeSurface) {
		t.Errorf("Expected a surface error, got %v", err)
	}
}
