// Package raster provides the drawable surface the effect pipeline mutates:
// a flat interleaved RGBA buffer plus blend-mode-aware compositing and
// radial gradient fills.
package raster

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

var (
	// ErrUnsupportedSource means the source is neither a decoded image nor
	// an existing surface.
	ErrUnsupportedSource = errors.New("raster: unsupported source kind")
	// ErrNoContext means a drawing surface could not be obtained.
	ErrNoContext = errors.New("raster: surface context unavailable")
)

// Surface is an NRGBA-backed drawable owned exclusively by one pipeline
// invocation. Pixel samples are interleaved R,G,B,A, width*height*4 long.
type Surface struct {
	img   *image.NRGBA
	blend bool
}

// New allocates a transparent surface of the given size.
func New(w, h int) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrNoContext, w, h)
	}
	return &Surface{img: image.NewNRGBA(image.Rect(0, 0, w, h)), blend: true}, nil
}

// Acquire returns a surface for the given source: a decoded image.Image is
// copied onto a fresh surface of matching dimensions; an existing *Surface
// is returned as-is. Anything else fails with ErrUnsupportedSource.
func Acquire(src any) (*Surface, error) {
	switch v := src.(type) {
	case *Surface:
		if v == nil || v.img == nil {
			return nil, ErrNoContext
		}
		return v, nil
	case image.Image:
		b := v.Bounds()
		if b.Dx() <= 0 || b.Dy() <= 0 {
			return nil, fmt.Errorf("%w: empty image", ErrNoContext)
		}
		return &Surface{img: imaging.Clone(v), blend: true}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
	}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Bounds().Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// Image exposes the backing NRGBA image.
func (s *Surface) Image() *image.NRGBA { return s.img }

// Pix exposes the raw interleaved sample buffer.
func (s *Surface) Pix() []uint8 { return s.img.Pix }

// SupportsBlend reports whether multiply/screen compositing is available.
// Consulted once per invocation to pick the blend-mode or fallback path.
func (s *Surface) SupportsBlend() bool { return s.blend }

// SetBlendSupport forces the capability probe; used to exercise the
// fallback compositing paths.
func (s *Surface) SetBlendSupport(v bool) { s.blend = v }

// Snapshot returns a frozen copy of every sample as float64. The transform
// pass reads the snapshot while computing so later pixels never observe
// earlier pixels' already-transformed values.
func (s *Surface) Snapshot() []float64 {
	pix := s.img.Pix
	out := make([]float64, len(pix))
	for i, v := range pix {
		out[i] = float64(v)
	}
	return out
}

// Commit writes a full sample buffer back in one pass. This is the only
// place float samples meet the byte storage format: conversion clamps and
// rounds here, the transform math never does.
func (s *Surface) Commit(samples []float64) {
	pix := s.img.Pix
	for i := range pix {
		pix[i] = clamp8(samples[i])
	}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
