package effect

import (
	"encoding/json"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	e := Overrides{}.Resolve()

	if e.Curves != nil {
		t.Error("default Curves should be disabled")
	}
	if e.Screen != nil {
		t.Error("default Screen should be disabled")
	}
	if e.Saturation != 1 {
		t.Errorf("default Saturation = %v, want 1", e.Saturation)
	}
	if e.Vignette != 0 || e.Lighten != 0 || e.Brightness != 0 || e.Contrast != 0 {
		t.Errorf("numeric defaults = %v/%v/%v/%v, want all 0",
			e.Vignette, e.Lighten, e.Brightness, e.Contrast)
	}
	if e.Viewfinder != "" {
		t.Errorf("default Viewfinder = %q, want empty", e.Viewfinder)
	}
	if e.Sepia {
		t.Error("default Sepia should be false")
	}
}

func TestResolveOverrides(t *testing.T) {
	sat := 0.25
	o := Overrides{
		Curves:     IdentityCurve(),
		Screen:     &RGBAColor{R: 255, G: 128, B: 0, A: 0.5},
		Saturation: &sat,
		Vignette:   0.4,
		Lighten:    0.2,
		Viewfinder: "viewfinder.png",
		Sepia:      true,
		Brightness: 0.1,
		Contrast:   -0.3,
	}
	e := o.Resolve()

	if e.Curves == nil || e.Curves[1][200] != 200 {
		t.Error("Curves override not carried through")
	}
	if e.Screen == nil || e.Screen.A != 0.5 {
		t.Error("Screen override not carried through")
	}
	if e.Saturation != 0.25 {
		t.Errorf("Saturation = %v, want 0.25", e.Saturation)
	}
	if e.Vignette != 0.4 || e.Lighten != 0.2 || e.Brightness != 0.1 || e.Contrast != -0.3 {
		t.Error("numeric overrides not carried through")
	}
	if e.Viewfinder != "viewfinder.png" || !e.Sepia {
		t.Error("viewfinder/sepia overrides not carried through")
	}
}

// Saturation 0 is a legitimate override (full desaturation) and must not be
// confused with "unset".
func TestResolveZeroSaturation(t *testing.T) {
	sat := 0.0
	e := Overrides{Saturation: &sat}.Resolve()
	if e.Saturation != 0 {
		t.Errorf("Saturation = %v, want 0", e.Saturation)
	}
}

func TestOverridesJSONRoundTrip(t *testing.T) {
	raw := `{"saturation":0.5,"vignette":0.3,"sepia":true,"screen":{"r":255,"g":240,"b":181,"a":0.3}}`
	var o Overrides
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	e := o.Resolve()
	if e.Saturation != 0.5 || e.Vignette != 0.3 || !e.Sepia {
		t.Errorf("resolved = %+v", e)
	}
	if e.Screen == nil || e.Screen.B != 181 {
		t.Errorf("screen = %+v", e.Screen)
	}
}
