// Package effect describes a requested photographic color effect.
//
// Callers supply a partial Overrides; Resolve overlays it onto the fixed
// defaults to produce the total Effect the pipeline consumes. Numeric ranges
// are the caller's responsibility: out-of-contract values (negative
// saturation, curve entries outside 0..255) flow straight into the math.
package effect

// Curve holds three direct lookup remaps, one per channel (R, G, B).
// Index = input channel value, value = output channel value. Values are
// unconstrained; no monotonicity is required.
type Curve [3][256]float64

// RGBAColor is a "screen" blend tint: R, G, B in 0..255, A in 0..1.
type RGBAColor struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Effect is a total configuration. The pipeline never sees a partial one.
type Effect struct {
	Curves     *Curve
	Screen     *RGBAColor
	Saturation float64
	Vignette   float64
	Lighten    float64
	Viewfinder string
	Sepia      bool
	Brightness float64
	Contrast   float64
}

// Overrides is the partial shape callers and preset files supply.
// Saturation is a pointer because its default (1) is nonzero; for every
// other field the zero value means "use the default".
type Overrides struct {
	Curves     *Curve     `json:"curves,omitempty"`
	Screen     *RGBAColor `json:"screen,omitempty"`
	Saturation *float64   `json:"saturation,omitempty"`
	Vignette   float64    `json:"vignette,omitempty"`
	Lighten    float64    `json:"lighten,omitempty"`
	Viewfinder string     `json:"viewfinder,omitempty"`
	Sepia      bool       `json:"sepia,omitempty"`
	Brightness float64    `json:"brightness,omitempty"`
	Contrast   float64    `json:"contrast,omitempty"`
}

// Resolve overlays the overrides onto the defaults and returns the total
// Effect: curves/screen disabled, saturation 1, vignette 0, lighten 0,
// no viewfinder, sepia off, brightness 0, contrast 0.
func (o Overrides) Resolve() Effect {
	e := Effect{Saturation: 1}
	e.Curves = o.Curves
	e.Screen = o.Screen
	if o.Saturation != nil {
		e.Saturation = *o.Saturation
	}
	e.Vignette = o.Vignette
	e.Lighten = o.Lighten
	e.Viewfinder = o.Viewfinder
	e.Sepia = o.Sepia
	e.Brightness = o.Brightness
	e.Contrast = o.Contrast
	return e
}

// IdentityCurve returns curve tables that map every value to itself.
func IdentityCurve() *Curve {
	var c Curve
	for ch := 0; ch < 3; ch++ {
		for i := 0; i < 256; i++ {
			c[ch][i] = float64(i)
		}
	}
	return &c
}
