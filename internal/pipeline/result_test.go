package pipeline

import (
	"bytes"
	"image"
	"testing"

	"filmfx/internal/effect"
)

func applied(t *testing.T) *Result {
	t.Helper()
	res, err := newPipeline(&stubLoader{}).Apply(solidImage(8, 6, 40, 90, 160, 255), effect.Overrides{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	return res
}

func TestEncodeFormats(t *testing.T) {
	res := applied(t)
	for _, format := range []string{"", "jpeg", "jpg", "png", "webp"} {
		var buf bytes.Buffer
		if err := res.Encode(&buf, format, 0); err != nil {
			t.Errorf("Encode(%q): %v", format, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Encode(%q) produced no bytes", format)
		}
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	res := applied(t)
	var buf bytes.Buffer
	if err := res.Encode(&buf, "gif", 0); err == nil {
		t.Error("Encode(gif) should fail")
	}
}

func TestDecodeRoundTripPNG(t *testing.T) {
	res := applied(t)
	img, err := res.Decode("png", 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 8, 6) {
		t.Errorf("bounds = %v, want 8x6", img.Bounds())
	}
	// PNG is lossless: re-decoded pixels match the surface.
	r, g, b, a := img.At(3, 3).RGBA()
	if r>>8 != 40 || g>>8 != 90 || b>>8 != 160 || a>>8 != 255 {
		t.Errorf("pixel = %d/%d/%d/%d, want 40/90/160/255", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestDecodeDefaultIsLossyMaxQuality(t *testing.T) {
	res := applied(t)
	img, err := res.Decode("", 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	r, _, _, _ := img.At(3, 3).RGBA()
	if d := int(r>>8) - 40; d < -4 || d > 4 {
		t.Errorf("red = %d, want ~40 after jpeg round trip", r>>8)
	}
}
