// Package render defines the document-rendering collaborator boundary: a
// paginated Document, a PageRenderer that rasterizes pages at a requested
// scale, and the single shared drawing Surface renders are drawn into.
package render

import (
	"image"
	"sync"

	apperrors "go-doc-inspector/internal/errors"
)

// maxSurfacePixels caps surface allocations; a page rendered at 3x that
// exceeds this is a configuration mistake, not a real document.
const maxSurfacePixels = 64 << 20

// Surface is the shared drawing surface. It must be resized between renders,
// so exactly one render may be in flight against it at a time; Acquire locks
// the surface and Release unlocks it.
type Surface struct {
	mu  sync.Mutex
	img *image.RGBA
}

// NewSurface returns an empty surface
func NewSurface() *Surface {
	return &Surface{}
}

// Acquire locks the surface and resizes it to the requested dimensions,
// reusing the backing array when it is large enough. The caller must call
// Release when its render is complete.
func (s *Surface) Acquire(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, apperrors.NewSurfaceError("surface dimensions must be positive", nil)
	}
	if width*height > maxSurfacePixels {
		return nil, apperrors.NewSurfaceError("requested surface exceeds the allocation cap", nil)
	}

	s.mu.Lock()

	need := width * height * 4
	rect := image.Rect(0, 0, width, height)
	if s.img == nil || cap(s.img.Pix) < need {
		s.img = image.NewRGBA(rect)
	} else {
		s.img.Pix = s.img.Pix[:need]
		s.img.Stride = width * 4
		s.img.Rect = rect
		for i := range s.img.Pix {
			s.img.Pix[i] = 0
		}
	}
	return s.img, nil
}

// Release unlocks the surface for the next render
func (s *Surface) Release() {
	s.mu.Unlock()
}
