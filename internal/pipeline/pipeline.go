// Package pipeline applies a photographic color effect to a raster surface:
// LUT transform, sepia, saturation, vignette/lighten overlays and viewfinder
// blending, in that fixed order.
package pipeline

import (
	"image"
	"image/color"

	"filmfx/internal/effect"
	"filmfx/internal/lut"
	"filmfx/internal/raster"
	"filmfx/internal/texture"

	xdraw "golang.org/x/image/draw"
)

// Pipeline applies effects. The texture cache is shared across invocations;
// everything else is per-call state.
type Pipeline struct {
	textures *texture.Cache
}

// New creates a pipeline using the given texture cache for viewfinder
// overlays.
func New(textures *texture.Cache) *Pipeline {
	return &Pipeline{textures: textures}
}

// Apply runs the full effect over the source, which is either a decoded
// image.Image or an existing *raster.Surface. The surface is mutated in
// stage order; on error it may be left partially transformed and must be
// discarded by the caller.
func (p *Pipeline) Apply(src any, o effect.Overrides) (*Result, error) {
	surf, err := raster.Acquire(src)
	if err != nil {
		return nil, err
	}

	e := o.Resolve()
	transformPixels(surf, lut.Build(e), e)
	applyOverlays(surf, e)

	if e.Viewfinder != "" {
		if err := p.blendViewfinder(surf, e.Viewfinder); err != nil {
			return nil, err
		}
	}

	return &Result{surface: surf}, nil
}

// transformPixels runs the per-pixel pass: LUT lookup, optional sepia
// matrix, optional desaturation. It reads a frozen snapshot and commits the
// whole buffer once, so later stages never see partial writes. Values are
// left unclamped; the commit's byte conversion is the only truncation.
func transformPixels(surf *raster.Surface, tab *lut.Table, e effect.Effect) {
	samples := surf.Snapshot()
	desat := 1 - e.Saturation

	for i := 0; i+3 < len(samples); i += 4 {
		r := tab[0][int(samples[i])]
		g := tab[1][int(samples[i+1])]
		b := tab[2][int(samples[i+2])]

		if e.Sepia {
			r, g, b = sepia(r, g, b)
		}

		// Desaturation only: saturation >= 1 is a no-op, there is no
		// amplification path.
		if e.Saturation < 1 {
			avg := (r + g + b) / 3
			r += (avg - r) * desat
			g += (avg - g) * desat
			b += (avg - b) * desat
		}

		samples[i] = r
		samples[i+1] = g
		samples[i+2] = b
		// alpha untouched
	}

	surf.Commit(samples)
}

// sepia applies the fixed sepia color matrix to a LUT-output pixel.
func sepia(r, g, b float64) (float64, float64, float64) {
	return 0.393*r + 0.769*g + 0.189*b,
		0.349*r + 0.686*g + 0.168*b,
		0.272*r + 0.534*g + 0.131*b
}

// applyOverlays draws the vignette and lighten radial gradients, vignette
// first. The blend capability is probed once and steers both fills.
func applyOverlays(surf *raster.Surface, e effect.Effect) {
	blend := surf.SupportsBlend()

	if e.Vignette > 0 {
		mode := raster.SourceOver
		if blend {
			mode = raster.Multiply
		}
		surf.FillRadial([]raster.ColorStop{
			{Offset: 0, Color: color.NRGBA{}},
			{Offset: 0.5, Color: color.NRGBA{}},
			{Offset: 1, Color: color.NRGBA{A: alpha8(e.Vignette)}},
		}, mode)
	}

	if e.Lighten > 0 {
		mode := raster.Lighter
		if blend {
			mode = raster.Screen
		}
		surf.FillRadial([]raster.ColorStop{
			{Offset: 0, Color: color.NRGBA{R: 255, G: 255, B: 255, A: alpha8(e.Lighten)}},
			{Offset: 0.5, Color: color.NRGBA{R: 255, G: 255, B: 255}},
			{Offset: 1, Color: color.NRGBA{}},
		}, mode)
	}
}

// blendViewfinder multiplies the viewfinder texture over the surface,
// scaled to its exact dimensions. Without blend support it falls back to a
// manual per-sample multiply across all four interleaved channels — alpha
// included, matching the legacy fallback exactly.
func (p *Pipeline) blendViewfinder(surf *raster.Surface, name string) error {
	tex, err := p.textures.Resolve(name)
	if err != nil {
		return err
	}

	scaled := scaleTo(tex, surf.Width(), surf.Height())
	if surf.SupportsBlend() {
		surf.DrawImage(scaled, raster.Multiply)
		return nil
	}

	pix := surf.Pix()
	for i := range pix {
		pix[i] = uint8(uint32(pix[i]) * uint32(scaled.Pix[i]) / 255)
	}
	return nil
}

func scaleTo(img *image.NRGBA, w, h int) *image.NRGBA {
	if b := img.Bounds(); b.Dx() == w && b.Dy() == h && b.Min == image.Pt(0, 0) {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

func alpha8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
