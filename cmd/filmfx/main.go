// Command filmfx applies photographic color effects to still images.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"filmfx/internal/batch"
	"filmfx/internal/config"
	"filmfx/internal/effect"
	"filmfx/internal/lut"
	"filmfx/internal/pipeline"
	"filmfx/internal/texture"

	"github.com/alecthomas/kong"
	"github.com/disintegration/imaging"
)

type cli struct {
	Config     string `help:"Path to config.json." type:"path"`
	TextureDir string `help:"Directory holding viewfinder textures."`
	Format     string `help:"Output format: jpeg, png or webp."`
	Quality    int    `help:"JPEG quality 1-100."`

	Apply applyCmd `cmd:"" help:"Apply an effect to one image."`
	Batch batchCmd `cmd:"" help:"Apply an effect to every image in a directory."`
	Lut   lutCmd   `cmd:"" help:"Dump an effect's lookup tables as CSV."`
}

// effectFlags are the inline effect controls shared by the subcommands.
// They override the chosen preset field by field.
type effectFlags struct {
	Preset     string   `help:"Named preset from the config file."`
	Saturation *float64 `help:"Saturation multiplier (1 = unchanged, <1 desaturates)."`
	Vignette   float64  `help:"Corner darkening strength 0-1."`
	Lighten    float64  `help:"Center glow strength 0-1."`
	Viewfinder string   `help:"Viewfinder texture identifier."`
	Sepia      bool     `help:"Apply the sepia color matrix."`
	Brightness float64  `help:"Additive brightness factor."`
	Contrast   float64  `help:"Contrast strength factor."`
}

type appContext struct {
	cfg  config.Config
	pipe *pipeline.Pipeline
}

func (f effectFlags) overrides(cfg *config.Config) (effect.Overrides, error) {
	o, err := cfg.Preset(f.Preset)
	if err != nil {
		return effect.Overrides{}, err
	}
	if f.Saturation != nil {
		o.Saturation = f.Saturation
	}
	if f.Vignette != 0 {
		o.Vignette = f.Vignette
	}
	if f.Lighten != 0 {
		o.Lighten = f.Lighten
	}
	if f.Viewfinder != "" {
		o.Viewfinder = f.Viewfinder
	}
	if f.Sepia {
		o.Sepia = true
	}
	if f.Brightness != 0 {
		o.Brightness = f.Brightness
	}
	if f.Contrast != 0 {
		o.Contrast = f.Contrast
	}
	return o, nil
}

type applyCmd struct {
	effectFlags
	Input string `arg:"" type:"existingfile" help:"Input image."`
	Out   string `short:"o" help:"Output path (default: <input>-fx.<format>)."`
}

func (c *applyCmd) Run(app *appContext) error {
	o, err := c.overrides(&app.cfg)
	if err != nil {
		return err
	}

	src, err := imaging.Open(c.Input)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.Input, err)
	}

	res, err := app.pipe.Apply(src, o)
	if err != nil {
		return err
	}

	out := c.Out
	if out == "" {
		stem := strings.TrimSuffix(c.Input, filepath.Ext(c.Input))
		out = stem + "-fx." + outputExt(app.cfg.Format)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	if err := res.Encode(f, app.cfg.Format, app.cfg.Quality); err != nil {
		return err
	}
	slog.Info("wrote", "file", out)
	return nil
}

type batchCmd struct {
	effectFlags
	Dir     string `arg:"" type:"existingdir" help:"Directory of input images."`
	Workers int    `help:"Worker goroutines (default: NumCPU)."`
}

func (c *batchCmd) Run(app *appContext) error {
	o, err := c.overrides(&app.cfg)
	if err != nil {
		return err
	}

	files, err := batch.ListImages(c.Dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no images in %s", c.Dir)
	}

	workers := c.Workers
	if workers <= 0 {
		workers = app.cfg.Workers
	}
	results := batch.Run(batch.Config{
		Pipeline:  app.pipe,
		Effect:    o,
		OutputDir: app.cfg.OutputDir,
		Format:    app.cfg.Format,
		Quality:   app.cfg.Quality,
		Workers:   workers,
	}, files)

	var failed int
	for _, r := range results {
		if !r.Success {
			failed++
			slog.Error("failed", "file", r.Name, "error", r.Error)
		}
	}
	slog.Info("batch done", "ok", len(results)-failed, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

type lutCmd struct {
	effectFlags
}

func (c *lutCmd) Run(app *appContext) error {
	o, err := c.overrides(&app.cfg)
	if err != nil {
		return err
	}
	tab := lut.Build(o.Resolve())

	fmt.Println("index,r,g,b")
	for i := 0; i < 256; i++ {
		fmt.Printf("%d,%g,%g,%g\n", i, tab[0][i], tab[1][i], tab[2][i])
	}
	return nil
}

func outputExt(format string) string {
	switch format {
	case "", "jpeg":
		return "jpg"
	default:
		return format
	}
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("filmfx"),
		kong.Description("Apply photographic color effects to still images."),
		kong.UsageOnError(),
	)

	var cfg config.Config
	if c.Config != "" {
		var err error
		cfg, err = config.Load(c.Config)
		if err != nil {
			slog.Error("invalid configuration", "err", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		TextureDir: c.TextureDir,
		Format:     c.Format,
		Quality:    c.Quality,
	})

	app := &appContext{
		cfg:  cfg,
		pipe: pipeline.New(texture.NewCache(texture.FileLoader{Dir: cfg.TextureDir})),
	}
	if err := ctx.Run(app); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}
