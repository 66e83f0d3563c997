package pixel

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	apperrors "go-doc-inspector/internal/errors"
)

// InputKind tags the supported input handle variants
type InputKind int

const (
	// InputRaw is an already-normalized RGBA8 buffer
	InputRaw InputKind = iota
	// InputSurface is a rendered drawing surface handle
	InputSurface
	// InputEncoded is encoded image bytes (PNG, JPEG, GIF)
	InputEncoded
)

func (k InputKind) String() string {
	switch k {
	case InputRaw:
		return "raw"
	case InputSurface:
		return "surface"
	case InputEncoded:
		return "encoded"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// Input is a tagged variant over the accepted input handles. Exactly one
// payload field is set, matching Kind.
type Input struct {
	Kind    InputKind
	Raw     *Buffer
	Surface image.Image
	Encoded []byte
}

// RawInput wraps an existing pixel buffer
func RawInput(b *Buffer) Input {
	return Input{Kind: InputRaw, Raw: b}
}

// SurfaceInput wraps a rendered surface handle
func SurfaceInput(img image.Image) Input {
	return Input{Kind: InputSurface, Surface: img}
}

// EncodedInput wraps encoded image bytes
func EncodedInput(data []byte) Input {
	return Input{Kind: InputEncoded, Encoded: data}
}

// Adapt resolves the variant once and normalizes it into a Buffer.
// Raw buffers are validated, surfaces are drawn into a fresh buffer, and
// encoded bytes are decoded and drawn.
func Adapt(in Input) (*Buffer, error) {
	switch in.Kind {
	case InputRaw:
		if in.Raw == nil {
			return nil, apperrors.NewUnsupportedInputError("raw input has no buffer", nil)
		}
		if err := in.Raw.Validate(); err != nil {
			return nil, apperrors.NewUnsupportedInputError("raw input buffer is malformed", err)
		}
		return in.Raw, nil

	case InputSurface:
		if in.Surface == nil {
			return nil, apperrors.NewSurfaceError("surface input has no drawing context", nil)
		}
		buf, err := FromImage(in.Surface)
		if err != nil {
			return nil, apperrors.NewSurfaceError("could not draw surface into buffer", err)
		}
		return buf, nil

	case InputEncoded:
		if len(in.Encoded) == 0 {
			return nil, apperrors.NewUnsupportedInputError("encoded input is empty", nil)
		}
		img, format, err := image.Decode(bytes.NewReader(in.Encoded))
		if err != nil {
			return nil, apperrors.NewDecodeError("could not decode image bytes", err)
		}
		buf, err := FromImage(img)
		if err != nil {
			return nil, apperrors.NewSurfaceError(
				fmt.Sprintf("could not draw decoded %s image", format), err)
		}
		return buf, nil
	}

	return nil, apperrors.NewUnsupportedInputError(
		fmt.Sprintf("input kind %s is not supported", in.Kind), nil)
}
