package main

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/rlester7/lenticular-viewer/internal/billboard"
	"github.com/rlester7/lenticular-viewer/internal/camera"
	"github.com/rlester7/lenticular-viewer/internal/config"
	"github.com/rlester7/lenticular-viewer/internal/export"
	"github.com/rlester7/lenticular-viewer/internal/logger"
	"github.com/rlester7/lenticular-viewer/internal/render"
	"github.com/rlester7/lenticular-viewer/internal/sweep"
	"github.com/rlester7/lenticular-viewer/internal/texture"
)

// Preview framebuffer size. Export output is cropped and scaled from
// this surface, so it also bounds the GIF resolution.
const (
	previewWidth  = 1280
	previewHeight = 720
)

const (
	sideA = iota
	sideB
)

// App holds all viewer state.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	cfg     *config.Config

	// Scene (created on first frame, after GL init)
	rig      *camera.Rig
	board    *billboard.Board
	renderer *render.Renderer
	target   *render.Target
	exporter *export.Exporter

	// Loaded images
	imgA, imgB   *texture.Image
	pathA, pathB string

	// File dialog result, set from a goroutine and consumed on the
	// main thread (SDL/Cocoa requirement)
	pendingImagePath string
	pendingImageSide int

	// Sweep playback
	playing   bool
	elapsed   time.Duration
	lastFrame time.Time

	// Geometry rebuild flag
	dirty bool

	// Export state
	exportDone     <-chan export.Result
	exportProgress atomic.Uint64 // math.Float64bits
	exportMsg      string
	exportMsgTime  time.Time

	sceneErr error
}

// NewApp creates the application and its window.
func NewApp(cfg *config.Config) *App {
	app := &App{
		cfg:   cfg,
		rig:   camera.NewRig(),
		dirty: true,
	}

	var err error
	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		panic(fmt.Sprintf("failed to create backend: %v", err))
	}

	app.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	app.backend.CreateWindow("Lenticular Viewer", cfg.Window.Width, cfg.Window.Height)

	if err := gl.Init(); err != nil {
		panic(fmt.Sprintf("OpenGL init failed: %v", err))
	}

	app.rig.FitToBoard(cfg.Board.Width, cfg.Board.Height)
	return app
}

// Run starts the main application loop.
func (app *App) Run() {
	app.lastFrame = time.Now()
	app.backend.Run(app.render)
}

// Close releases GL resources.
func (app *App) Close() {
	if app.board != nil {
		app.board.Dispose()
		app.board = nil
	}
	if app.renderer != nil {
		app.renderer.Destroy()
		app.renderer = nil
	}
	if app.target != nil {
		app.target.Destroy()
		app.target = nil
	}
}

// ensureScene lazily creates the GL-dependent pieces. Must run on the
// main thread with the context current.
func (app *App) ensureScene() {
	if app.renderer != nil || app.sceneErr != nil {
		return
	}
	r, err := render.NewRenderer()
	if err != nil {
		app.sceneErr = err
		logger.Error("renderer init failed", zap.Error(err))
		return
	}
	t, err := render.NewTarget(previewWidth, previewHeight)
	if err != nil {
		r.Destroy()
		app.sceneErr = err
		logger.Error("framebuffer init failed", zap.Error(err))
		return
	}
	app.renderer = r
	app.target = t
	app.exporter = export.NewExporter(app.rig, func() (*image.RGBA, error) {
		app.renderer.Draw(app.target, app.board, app.rig)
		return app.target.ReadRGBA(), nil
	})
}

func (app *App) boardConfig() billboard.Config {
	return billboard.Config{
		Width:     app.cfg.Board.Width,
		Height:    app.cfg.Board.Height,
		SlatCount: app.cfg.Board.SlatCount,
		AngleDeg:  app.cfg.Board.AngleDeg,
	}
}

// rebuildBoard regenerates the mesh from the current settings.
func (app *App) rebuildBoard() {
	cfg := app.boardConfig()
	var rgbaA, rgbaB *image.RGBA
	if app.imgA != nil {
		rgbaA = app.imgA.RGBA
	}
	if app.imgB != nil {
		rgbaB = app.imgB.RGBA
	}

	if app.board == nil {
		b, err := billboard.Build(cfg, rgbaA, rgbaB)
		if err != nil {
			logger.Error("board build failed", zap.Error(err))
			return
		}
		app.board = b
	} else if err := app.board.Rebuild(cfg, rgbaA, rgbaB); err != nil {
		logger.Error("board rebuild failed", zap.Error(err))
		return
	}
	logger.Debug("board rebuilt",
		zap.Int("slats", cfg.SlatCount),
		zap.Float64("angle", cfg.AngleDeg),
	)
}

// openImageDialog shows a native file dialog for one side's image.
func (app *App) openImageDialog(side int) {
	// Runs in a goroutine so the UI keeps drawing; the result is
	// handed back to the main thread via pendingImagePath.
	go func() {
		filename, err := dialog.File().
			Filter("Images", "png", "jpg", "jpeg", "bmp", "webp").
			Filter("All Files", "*").
			Title("Open Image").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		app.pendingImageSide = side
		app.pendingImagePath = filename
	}()
}

func (app *App) loadImage(side int, path string) {
	img, err := texture.LoadFile(path)
	if err != nil {
		logger.Error("image load failed", zap.String("path", path), zap.Error(err))
		app.notify(fmt.Sprintf("Failed to load %s", path))
		return
	}
	if side == sideA {
		app.imgA, app.pathA = img, path
	} else {
		app.imgB, app.pathB = img, path
	}
	app.dirty = true
	logger.Info("image loaded",
		zap.String("path", path),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
	)
}

func (app *App) notify(msg string) {
	app.exportMsg = msg
	app.exportMsgTime = time.Now()
}

// startExport captures the sweep and writes the GIF asynchronously.
// A second request while one is in flight is ignored: overwriting
// exportDone would orphan the running export's result channel and its
// finished GIF with it.
func (app *App) startExport() {
	if app.exporter == nil || app.board == nil {
		return
	}
	if app.exportDone != nil {
		app.notify("Export already in progress")
		return
	}
	app.exportProgress.Store(0)
	app.exportDone = app.exporter.Export(export.Options{
		SweepDeg:       app.cfg.Sweep.AngleDeg,
		Speed:          app.cfg.Sweep.Speed,
		BoardAspect:    app.boardConfig().Aspect(),
		MaxOutputWidth: app.cfg.Export.MaxWidth,
		FrameCount:     app.cfg.Export.FrameCount,
		Progress: func(p float64) {
			app.exportProgress.Store(math.Float64bits(p))
		},
	})
}

// pollExport consumes a finished export without blocking the frame.
func (app *App) pollExport() {
	if app.exportDone == nil {
		return
	}
	select {
	case res := <-app.exportDone:
		app.exportDone = nil
		if res.Err != nil {
			logger.Error("export failed", zap.Error(res.Err))
			app.notify("Export failed: " + res.Err.Error())
			return
		}
		path := app.cfg.Export.OutputPath
		if err := os.WriteFile(path, res.Data, 0644); err != nil {
			logger.Error("gif write failed", zap.String("path", path), zap.Error(err))
			app.notify("Write failed: " + err.Error())
			return
		}
		logger.Info("gif exported",
			zap.String("path", path),
			zap.Int("bytes", len(res.Data)),
		)
		app.notify("Saved " + path)
	default:
	}
}

// advanceSweep moves the camera along the cosine sweep while playing.
func (app *App) advanceSweep() {
	now := time.Now()
	dt := now.Sub(app.lastFrame)
	app.lastFrame = now

	if !app.playing {
		return
	}
	app.elapsed += dt
	period := sweep.CycleDuration(app.cfg.Sweep.Speed)
	progress := sweep.Progress(app.elapsed, period)
	app.rig.Azimuth = sweep.Angle(progress, app.cfg.Sweep.AngleDeg)
}

var lastMousePos imgui.Vec2

// render is called each frame to draw the UI.
func (app *App) render() {
	app.ensureScene()

	// Process pending file dialog result (must be on main thread)
	if app.pendingImagePath != "" {
		path := app.pendingImagePath
		app.pendingImagePath = ""
		app.loadImage(app.pendingImageSide, path)
	}

	if app.dirty && app.renderer != nil {
		app.dirty = false
		app.rebuildBoard()
	}

	app.pollExport()
	app.advanceSweep()

	// Space toggles sweep playback (when not typing)
	if !imgui.IsAnyItemActive() && imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeySpace)) {
		app.playing = !app.playing
	}

	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Open Image A...") {
				app.openImageDialog(sideA)
			}
			if imgui.MenuItemBool("Open Image B...") {
				app.openImageDialog(sideB)
			}
			imgui.Separator()
			if imgui.MenuItemBool("Export GIF") {
				app.startExport()
			}
			imgui.Separator()
			if imgui.MenuItemBool("Exit") {
				os.Exit(0)
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	controlsWidth := float32(320)
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	// Left panel - preview
	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-controlsWidth, workSize.Y))
	if imgui.BeginV("Preview", nil, flags) {
		app.renderPreview()
	}
	imgui.End()

	// Right panel - controls
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+workSize.X-controlsWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(controlsWidth, workSize.Y))
	if imgui.BeginV("Controls", nil, flags) {
		app.renderControls()
	}
	imgui.End()

	// Transient notification overlay
	if app.exportMsg != "" && time.Since(app.exportMsgTime) < 3*time.Second {
		notifyFlags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
			imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
			imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
		imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+10, workPos.Y+10))
		imgui.SetNextWindowBgAlpha(0.85)
		if imgui.BeginV("##Notify", nil, notifyFlags) {
			imgui.Text(app.exportMsg)
		}
		imgui.End()
	} else if app.exportMsg != "" {
		app.exportMsg = ""
	}
}

// renderPreview draws the 3D view and handles mouse orbit input.
func (app *App) renderPreview() {
	if app.sceneErr != nil {
		imgui.TextWrapped("Renderer unavailable: " + app.sceneErr.Error())
		return
	}
	if app.renderer == nil || app.board == nil {
		imgui.TextDisabled("Initializing...")
		return
	}

	app.renderer.Draw(app.target, app.board, app.rig)

	viewerW := float32(previewWidth)
	viewerH := float32(previewHeight)

	avail := imgui.ContentRegionAvail()
	aspectRatio := viewerW / viewerH
	displayW := avail.X
	displayH := displayW / aspectRatio
	if displayH > avail.Y {
		displayH = avail.Y
		displayW = displayH * aspectRatio
	}

	startX := imgui.CursorPosX()
	if displayW < avail.X {
		imgui.SetCursorPosX(startX + (avail.X-displayW)/2)
	}

	// Display rendered texture (flip V for OpenGL)
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(app.target.Texture()))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(displayW, displayH),
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			// Manual orbit takes over from the sweep
			app.playing = false
			app.rig.HandleDrag(mousePos.X - lastMousePos.X)
		}
		lastMousePos = mousePos

		wheel := imgui.CurrentIO().MouseWheel()
		if wheel != 0 {
			app.rig.HandleZoom(wheel)
		}
	}

	imgui.TextDisabled("(Drag to orbit, scroll to zoom, space to play/pause)")
}

// renderControls draws the settings panel.
func (app *App) renderControls() {
	changed := false

	imgui.Text("Billboard")
	imgui.Separator()

	slats := int32(app.cfg.Board.SlatCount)
	if imgui.SliderIntV("Slats", &slats, 1, 200, "%d", imgui.SliderFlagsNone) {
		app.cfg.Board.SlatCount = int(slats)
		changed = true
	}

	angle := float32(app.cfg.Board.AngleDeg)
	if imgui.SliderFloatV("Slat angle", &angle, 0, 89, "%.1f deg", imgui.SliderFlagsNone) {
		app.cfg.Board.AngleDeg = float64(angle)
		changed = true
	}

	imgui.Spacing()
	imgui.Text("Sweep")
	imgui.Separator()

	sweepDeg := float32(app.cfg.Sweep.AngleDeg)
	if imgui.SliderFloatV("Arc", &sweepDeg, 0, 180, "%.0f deg", imgui.SliderFlagsNone) {
		app.cfg.Sweep.AngleDeg = float64(sweepDeg)
	}

	speed := float32(app.cfg.Sweep.Speed)
	if imgui.SliderFloatV("Speed", &speed, 0.5, 30, "%.1f", imgui.SliderFlagsNone) {
		app.cfg.Sweep.Speed = float64(speed)
	}

	if app.playing {
		if imgui.Button("Pause") {
			app.playing = false
		}
	} else {
		if imgui.Button("Play") {
			app.playing = true
		}
	}
	imgui.SameLine()
	if imgui.Button("Reset View") {
		app.rig.FitToBoard(app.cfg.Board.Width, app.cfg.Board.Height)
		app.elapsed = 0
	}

	imgui.Spacing()
	imgui.Text("Images")
	imgui.Separator()

	if imgui.Button("Load A...") {
		app.openImageDialog(sideA)
	}
	imgui.SameLine()
	if app.pathA != "" {
		imgui.Text(filepath.Base(app.pathA))
	} else {
		imgui.TextDisabled("placeholder")
	}

	if imgui.Button("Load B...") {
		app.openImageDialog(sideB)
	}
	imgui.SameLine()
	if app.pathB != "" {
		imgui.Text(filepath.Base(app.pathB))
	} else {
		imgui.TextDisabled("placeholder")
	}

	app.renderAspectAdvisory()

	imgui.Spacing()
	imgui.Text("Export")
	imgui.Separator()

	frames := int32(app.cfg.Export.FrameCount)
	if imgui.SliderIntV("Frames", &frames, 4, 120, "%d", imgui.SliderFlagsNone) {
		app.cfg.Export.FrameCount = int(frames)
	}

	maxW := int32(app.cfg.Export.MaxWidth)
	if imgui.SliderIntV("Max width", &maxW, 0, previewWidth, "%d px", imgui.SliderFlagsNone) {
		app.cfg.Export.MaxWidth = int(maxW)
	}

	exporting := app.exportDone != nil
	if exporting {
		p := math.Float64frombits(app.exportProgress.Load())
		imgui.ProgressBarV(float32(p), imgui.NewVec2(-1, 0), fmt.Sprintf("%.0f%%", p*100))
	} else if imgui.ButtonV("Export GIF", imgui.NewVec2(-1, 0)) {
		app.startExport()
	}

	if changed {
		app.dirty = true
	}
}

// renderAspectAdvisory warns when a loaded image's aspect ratio does
// not match the board, which stretches the artwork.
func (app *App) renderAspectAdvisory() {
	boardAspect := app.boardConfig().Aspect()
	warn := func(name string, img *texture.Image) {
		if img == nil {
			return
		}
		if math.Abs(img.Aspect()-boardAspect) > 0.01 {
			imgui.TextColored(imgui.NewVec4(1, 0.8, 0, 1),
				fmt.Sprintf("%s aspect %.2f != board %.2f", name, img.Aspect(), boardAspect))
		}
	}
	warn("Image A", app.imgA)
	warn("Image B", app.imgB)
}
