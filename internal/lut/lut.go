// Package lut materializes an effect's per-channel transfer chain into
// three 256-entry lookup tables, so the per-pixel cost of the transform
// pass stays O(1) regardless of how many stages are enabled.
package lut

import "filmfx/internal/effect"

// Table holds one transfer table per channel (R, G, B). Entries are floats:
// out-of-range and fractional values are kept as-is until the surface commit
// converts samples to bytes.
type Table [3][256]float64

// stage is a unary transfer function on a single channel value.
type stage func(c float64) float64

// Build composes the enabled stages in fixed order — curves, contrast,
// brightness, screen — and evaluates the chain once per input value 0..255
// for each channel. Each stage's output feeds the next.
func Build(e effect.Effect) *Table {
	var t Table
	for ch := 0; ch < 3; ch++ {
		chain := channelChain(e, ch)
		for i := 0; i < 256; i++ {
			c := float64(i)
			for _, fn := range chain {
				c = fn(c)
			}
			t[ch][i] = c
		}
	}
	return &t
}

func channelChain(e effect.Effect, ch int) []stage {
	var chain []stage

	if e.Curves != nil {
		curve := e.Curves[ch]
		chain = append(chain, func(c float64) float64 {
			// Direct table lookup on the integer input index; curves run
			// first, so c is still an exact 0..255 integer here.
			return curve[int(c)]
		})
	}

	if e.Contrast != 0 {
		f := e.Contrast
		gain := 259 * (f*256 + 255) / (255 * (259 - f*256))
		chain = append(chain, func(c float64) float64 {
			return gain*(c-128) + 128
		})
	}

	if e.Brightness != 0 {
		shift := e.Brightness * 256
		chain = append(chain, func(c float64) float64 {
			return c + shift
		})
	}

	if e.Screen != nil {
		s := screenChannel(*e.Screen, ch) * e.Screen.A
		chain = append(chain, func(c float64) float64 {
			return 255 - (255-c)*(255-s)/255
		})
	}

	return chain
}

func screenChannel(s effect.RGBAColor, ch int) float64 {
	switch ch {
	case 0:
		return s.R
	case 1:
		return s.G
	default:
		return s.B
	}
}
