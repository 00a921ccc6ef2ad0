package raster

import (
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// ColorStop is one stop of a radial gradient, offset in 0..1.
type ColorStop struct {
	Offset float64
	Color  color.NRGBA
}

// FillRadial fills the whole surface with a radial gradient centered at
// (w/2, h/2) whose radius is the distance from center to corner, composited
// with the given blend mode. The gradient itself is rasterized offscreen;
// only the composite touches the surface.
func (s *Surface) FillRadial(stops []ColorStop, mode BlendMode) {
	w, h := s.Width(), s.Height()
	cx, cy := float64(w)/2, float64(h)/2
	radius := math.Hypot(cx, cy)

	grad := gg.NewRadialGradient(cx, cy, 0, cx, cy, radius)
	for _, st := range stops {
		grad.AddColorStop(st.Offset, st.Color)
	}

	dc := gg.NewContext(w, h)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	s.DrawImage(imaging.Clone(dc.Image()), mode)
}
