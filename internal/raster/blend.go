package raster

import "image"

// BlendMode selects how new drawing combines with existing surface content.
type BlendMode int

const (
	// SourceOver is plain alpha-weighted painting.
	SourceOver BlendMode = iota
	// Multiply darkens: source times destination.
	Multiply
	// Screen lightens: complement of the multiplied complements.
	Screen
	// Lighter is additive compositing.
	Lighter
)

// DrawImage composites src over the whole surface using the given mode.
// src must match the surface dimensions; rows beyond either bound are
// ignored.
func (s *Surface) DrawImage(src *image.NRGBA, mode BlendMode) {
	dst := s.img
	w, h := s.Width(), s.Height()
	if b := src.Bounds(); b.Dx() < w {
		w = b.Dx()
	}
	if b := src.Bounds(); b.Dy() < h {
		h = b.Dy()
	}

	for y := 0; y < h; y++ {
		si := src.PixOffset(src.Bounds().Min.X, src.Bounds().Min.Y+y)
		di := dst.PixOffset(0, y)
		for x := 0; x < w; x++ {
			blendPixel(dst.Pix[di:di+4], src.Pix[si:si+4], mode)
			si += 4
			di += 4
		}
	}
}

// blendPixel composites one non-premultiplied source pixel onto dst in
// place. Color channels use the mode's mix weighted by source alpha; the
// destination alpha grows source-over style.
func blendPixel(dst, src []uint8, mode BlendMode) {
	sa := float64(src[3]) / 255
	if sa == 0 && mode != Lighter {
		return
	}
	da := float64(dst[3])

	for c := 0; c < 3; c++ {
		d := float64(dst[c])
		sv := float64(src[c])
		var out float64
		switch mode {
		case Multiply:
			out = d*(1-sa) + (sv*d/255)*sa
		case Screen:
			out = d*(1-sa) + (255-(255-sv)*(255-d)/255)*sa
		case Lighter:
			out = d + sv*sa
		default: // SourceOver
			out = d + (sv-d)*sa
		}
		dst[c] = clamp8(out)
	}
	dst[3] = clamp8(da + float64(src[3])*(255-da)/255)
}
