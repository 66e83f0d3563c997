// Package pixel normalizes heterogeneous image inputs into a single
// row-major RGBA8 buffer that all estimators operate on.
package pixel

import (
	"fmt"
	"image"
	"image/draw"
)

// Buffer is a row-major RGBA8 pixel buffer.
// Invariant: len(Pix) == Width*Height*4.
type Buffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewBuffer allocates a zeroed buffer of the given dimensions
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid buffer dimensions %dx%d", width, height)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}, nil
}

// Validate checks the length invariant
func (b *Buffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("invalid buffer dimensions %dx%d", b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*4 {
		return fmt.Errorf("pixel data length %d does not match %dx%d RGBA", len(b.Pix), b.Width, b.Height)
	}
	return nil
}

// At returns the RGBA components of the pixel at (x, y). No bounds checks;
// callers iterate within Width/Height.
func (b *Buffer) At(x, y int) (r, g, bl, a byte) {
	i := (y*b.Width + x) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Clone returns an independent copy of the buffer
func (b *Buffer) Clone() *Buffer {
	pix := make([]byte, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// FromImage draws any image.Image into a fresh buffer
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("empty image %dx%d", width, height)
	}

	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == width*4 && bounds.Min == (image.Point{}) {
		pix := make([]byte, width*height*4)
		copy(pix, rgba.Pix[:width*height*4])
		return &Buffer{Width: width, Height: height, Pix: pix}, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return &Buffer{Width: width, Height: height, Pix: dst.Pix}, nil
}

// ToImage wraps the buffer as an *image.RGBA sharing the same pixel data
func (b *Buffer) ToImage() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// ToGray converts the buffer to a grayscale image using the standard
// library's color conversion
func (b *Buffer) ToGray() *image.Gray {
	gray := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	draw.Draw(gray, gray.Bounds(), b.ToImage(), image.Point{}, draw.Src)
	return gray
}
