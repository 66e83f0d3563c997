package render

import (
	"context"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	apperrors "go-doc-inspector/internal/errors"
	"go-doc-inspector/internal/pixel"
	"go-doc-inspector/pkg/models"
)

// Intent selects the rendering quality trade-off
type Intent int

const (
	// IntentGraphics favors speed; used for the multi-scale edge passes
	IntentGraphics Intent = iota
	// IntentText favors glyph fidelity; used for text-sharpness renders
	IntentText
)

// Document is a paginated input. Page indices are 1-based everywhere.
type Document interface {
	PageCount() int
	PageText(pageIndex int) ([]models.TextItem, error)
}

// PageRenderer rasterizes one page of a document at the given scale into
// the shared surface and returns an independent copy of the pixels.
type PageRenderer interface {
	RenderPage(ctx context.Context, doc Document, pageIndex int, scale float64, intent Intent, surface *Surface) (*pixel.Buffer, error)
}

// PageImager is implemented by documents whose pages are backed by raster
// images; ImageRenderer can only render those.
type PageImager interface {
	PageImage(pageIndex int) (image.Image, error)
}

// ImageDocument is a document whose pages are raster images, each with an
// optional list of extracted text items.
type ImageDocument struct {
	pages []image.Image
	text  [][]models.TextItem
}

// NewImageDocument builds a document from one image per page
func NewImageDocument(pages []image.Image) *ImageDocument {
	return &ImageDocument{
		pages: pages,
		text:  make([][]models.TextItem, len(pages)),
	}
}

// PageCount returns the number of pages
func (d *ImageDocument) PageCount() int {
	return len(d.pages)
}

// SetPageText attaches extracted text items to a page
func (d *ImageDocument) SetPageText(pageIndex int, items []models.TextItem) error {
	if pageIndex < 1 || pageIndex > len(d.pages) {
		return fmt.Errorf("page index %d out of range [1,%d]", pageIndex, len(d.pages))
	}
	d.text[pageIndex-1] = items
	return nil
}

// PageText returns the extracted text items of a page in reading order
func (d *ImageDocument) PageText(pageIndex int) ([]models.TextItem, error) {
	if pageIndex < 1 || pageIndex > len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [1,%d]", pageIndex, len(d.pages))
	}
	return d.text[pageIndex-1], nil
}

// PageImage returns the raster backing a page
func (d *ImageDocument) PageImage(pageIndex int) (image.Image, error) {
	if pageIndex < 1 || pageIndex > len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [1,%d]", pageIndex, len(d.pages))
	}
	if d.pages[pageIndex-1] == nil {
		return nil, fmt.Errorf("page %d has no raster", pageIndex)
	}
	return d.pages[pageIndex-1], nil
}

// ImageRenderer renders image-backed documents by scaling the page raster
// into the shared surface.
type ImageRenderer struct{}

// NewImageRenderer returns a renderer for image-backed documents
func NewImageRenderer() *ImageRenderer {
	return &ImageRenderer{}
}

// RenderPage scales the page raster by scale and copies the result out of
// the surface. Text intent uses a higher-quality resampling kernel.
func (r *ImageRenderer) RenderPage(ctx context.Context, doc Document, pageIndex int, scale float64, intent Intent, surface *Surface) (*pixel.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("render scale must be positive, got %f", scale), nil)
	}

	imager, ok := doc.(PageImager)
	if !ok {
		return nil, apperrors.NewUnsupportedInputError("document pages are not image-backed", nil)
	}
	src, err := imager.PageImage(pageIndex)
	if err != nil {
		return nil, apperrors.NewUnsupportedInputError("page raster unavailable", err)
	}

	bounds := src.Bounds()
	width := int(float64(bounds.Dx()) * scale)
	height := int(float64(bounds.Dy()) * scale)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst, err := surface.Acquire(width, height)
	if err != nil {
		return nil, err
	}
	defer surface.Release()

	kernel := xdraw.Interpolator(xdraw.ApproxBiLinear)
	if intent == IntentText {
		kernel = xdraw.CatmullRom
	}
	kernel.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)

	// Copy out before releasing: the surface is reused by the next render.
	return pixel.FromImage(dst)
}
