package batch

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"filmfx/internal/effect"
	"filmfx/internal/pipeline"
	"filmfx/internal/texture"
)

func writePNG(t *testing.T, path string, v uint8) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 255
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestListImagesFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 100)
	writePNG(t, filepath.Join(dir, "b.PNG"), 100)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("found %d files, want 2: %v", len(files), files)
	}
}

func TestRunProcessesAllFiles(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 100)
	writePNG(t, filepath.Join(dir, "b.png"), 200)

	files, err := ListImages(dir)
	if err != nil {
		t.Fatal(err)
	}

	outDir := t.TempDir()
	cfg := Config{
		Pipeline:  pipeline.New(texture.NewCache(texture.FileLoader{Dir: dir})),
		Effect:    effect.Overrides{Sepia: true},
		OutputDir: outDir,
		Format:    "png",
		Workers:   2,
	}

	results := Run(cfg, files)
	for _, r := range results {
		if !r.Success {
			t.Errorf("%s failed: %s", r.Name, r.Error)
		}
	}
	for _, stem := range []string{"a", "b"} {
		if _, err := os.Stat(filepath.Join(outDir, stem+".png")); err != nil {
			t.Errorf("missing output %s.png: %v", stem, err)
		}
	}
}

func TestRunRecordsPerFileErrors(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "good.png"), 100)
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ListImages(dir)
	if err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		Pipeline:  pipeline.New(texture.NewCache(texture.FileLoader{Dir: dir})),
		OutputDir: t.TempDir(),
		Format:    "png",
		Workers:   1,
	}

	results := Run(cfg, files)
	var ok, failed int
	for _, r := range results {
		if r.Success {
			ok++
		} else {
			failed++
		}
	}
	if ok != 1 || failed != 1 {
		t.Errorf("ok=%d failed=%d, want 1/1", ok, failed)
	}
}
