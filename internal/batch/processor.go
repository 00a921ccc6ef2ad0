// Package batch applies one effect to every image in a directory using a
// worker pool. One bad input never aborts the run.
package batch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"filmfx/internal/effect"
	"filmfx/internal/pipeline"

	"github.com/disintegration/imaging"
)

// Config holds the shared resources for a batch run.
type Config struct {
	Pipeline  *pipeline.Pipeline
	Effect    effect.Overrides
	OutputDir string
	Format    string
	Quality   int
	Workers   int
}

// Result holds the outcome of processing one file.
type Result struct {
	Name    string
	Success bool
	Error   string
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".webp": true, ".bmp": true, ".tga": true, ".tif": true, ".tiff": true,
}

// ListImages returns the image files directly under dir.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// Run processes all files using cfg.Workers goroutines, logging progress
// every two seconds.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					slog.Info("batch progress",
						"done", p, "total", total,
						"rate", fmt.Sprintf("%.1f/sec", float64(p)/elapsed))
				}
			}
		}
	}()

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	fileChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, path string) Result {
	name := filepath.Base(path)

	src, err := imaging.Open(path)
	if err != nil {
		return Result{Name: name, Error: fmt.Sprintf("open: %v", err)}
	}

	res, err := cfg.Pipeline.Apply(src, cfg.Effect)
	if err != nil {
		return Result{Name: name, Error: err.Error()}
	}

	format := cfg.Format
	if format == "" {
		format = "webp"
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	outPath := filepath.Join(cfg.OutputDir, stem+"."+outputExt(format))

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return Result{Name: name, Error: err.Error()}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return Result{Name: name, Error: err.Error()}
	}
	defer f.Close()

	if err := res.Encode(f, format, cfg.Quality); err != nil {
		return Result{Name: name, Error: err.Error()}
	}

	return Result{Name: name, Success: true}
}

func outputExt(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}
