// Lentigif renders a lenticular billboard sweep to an animated GIF
// without opening a visible window.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"go.uber.org/zap"

	"github.com/rlester7/lenticular-viewer/internal/billboard"
	"github.com/rlester7/lenticular-viewer/internal/camera"
	"github.com/rlester7/lenticular-viewer/internal/config"
	"github.com/rlester7/lenticular-viewer/internal/export"
	"github.com/rlester7/lenticular-viewer/internal/logger"
	"github.com/rlester7/lenticular-viewer/internal/render"
	"github.com/rlester7/lenticular-viewer/internal/texture"
)

// The offscreen surface the sweep is rendered into. The GIF is cropped
// and scaled from this.
const (
	surfaceWidth  = 1280
	surfaceHeight = 720
)

var (
	flagImageA   = flag.String("image-a", "", "Image shown on the left-facing slats")
	flagImageB   = flag.String("image-b", "", "Image shown on the right-facing slats")
	flagOut      = flag.String("out", "", "Output GIF path (default from config)")
	flagFrames   = flag.Int("frames", 0, "Frame count (default from config)")
	flagMaxWidth = flag.Int("max-width", -1, "Maximum output width, 0 for no limit")
)

func main() {
	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *flagOut != "" {
		cfg.Export.OutputPath = *flagOut
	}
	if *flagFrames > 0 {
		cfg.Export.FrameCount = *flagFrames
	}
	if *flagMaxWidth >= 0 {
		cfg.Export.MaxWidth = *flagMaxWidth
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("export failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	imgA, err := loadImage(*flagImageA)
	if err != nil {
		return fmt.Errorf("image A: %w", err)
	}
	imgB, err := loadImage(*flagImageB)
	if err != nil {
		return fmt.Errorf("image B: %w", err)
	}

	win, err := render.NewWindow(render.WindowConfig{
		Title:  "lentigif",
		Width:  surfaceWidth,
		Height: surfaceHeight,
		Hidden: true,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	renderer, err := render.NewRenderer()
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	target, err := render.NewTarget(surfaceWidth, surfaceHeight)
	if err != nil {
		return err
	}
	defer target.Destroy()

	boardCfg := billboard.Config{
		Width:     cfg.Board.Width,
		Height:    cfg.Board.Height,
		SlatCount: cfg.Board.SlatCount,
		AngleDeg:  cfg.Board.AngleDeg,
	}
	board, err := billboard.Build(boardCfg, imgA, imgB)
	if err != nil {
		return err
	}
	defer board.Dispose()

	rig := camera.NewRig()
	rig.FitToBoard(cfg.Board.Width, cfg.Board.Height)

	exporter := export.NewExporter(rig, func() (*image.RGBA, error) {
		renderer.Draw(target, board, rig)
		return target.ReadRGBA(), nil
	})

	logger.Info("rendering sweep",
		zap.Int("frames", cfg.Export.FrameCount),
		zap.Float64("sweep", cfg.Sweep.AngleDeg),
		zap.Int("slats", cfg.Board.SlatCount),
	)

	res := <-exporter.Export(export.Options{
		SweepDeg:       cfg.Sweep.AngleDeg,
		Speed:          cfg.Sweep.Speed,
		BoardAspect:    boardCfg.Aspect(),
		MaxOutputWidth: cfg.Export.MaxWidth,
		FrameCount:     cfg.Export.FrameCount,
	})
	if res.Err != nil {
		return res.Err
	}

	if err := os.WriteFile(cfg.Export.OutputPath, res.Data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Export.OutputPath, err)
	}
	logger.Info("gif written",
		zap.String("path", cfg.Export.OutputPath),
		zap.Int("bytes", len(res.Data)),
	)
	return nil
}

// loadImage reads one side's artwork, or returns nil to use the
// built-in placeholder.
func loadImage(path string) (*image.RGBA, error) {
	if path == "" {
		return nil, nil
	}
	img, err := texture.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return img.RGBA, nil
}
