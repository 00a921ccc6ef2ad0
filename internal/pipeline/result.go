package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"filmfx/internal/raster"

	"github.com/HugoSmits86/nativewebp"
)

// Result wraps the finished surface. It holds no pixel logic: every export
// is a view of, or an encoding of, the surface as the pipeline left it.
type Result struct {
	surface *raster.Surface
}

// Surface returns the raw drawable surface.
func (r *Result) Surface() *raster.Surface { return r.surface }

// Image returns the backing NRGBA image.
func (r *Result) Image() *image.NRGBA { return r.surface.Image() }

// Encode writes the surface in the given format: "jpeg" (the default when
// empty), "png" or "webp". quality applies to jpeg only; zero or negative
// means maximum (100).
func (r *Result) Encode(w io.Writer, format string, quality int) error {
	switch format {
	case "", "jpeg", "jpg":
		if quality <= 0 {
			quality = 100
		}
		if err := jpeg.Encode(w, r.surface.Image(), &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("result: jpeg encode: %w", err)
		}
	case "png":
		if err := png.Encode(w, r.surface.Image()); err != nil {
			return fmt.Errorf("result: png encode: %w", err)
		}
	case "webp":
		if err := nativewebp.Encode(w, r.surface.Image(), nil); err != nil {
			return fmt.Errorf("result: webp encode: %w", err)
		}
	default:
		return fmt.Errorf("result: unknown format %q", format)
	}
	return nil
}

// EncodedBytes returns the encoded representation as a byte slice.
func (r *Result) EncodedBytes(format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Encode(&buf, format, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode re-decodes the encoded representation back into an image, the way
// a consumer of the export would see it.
func (r *Result) Decode(format string, quality int) (image.Image, error) {
	data, err := r.EncodedBytes(format, quality)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("result: decode: %w", err)
	}
	return img, nil
}
