package export

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	xdraw "golang.org/x/image/draw"

	"github.com/rlester7/lenticular-viewer/internal/camera"
	"github.com/rlester7/lenticular-viewer/internal/sweep"
)

// ErrExportBusy is returned when an export is requested while a previous
// one is still encoding.
var ErrExportBusy = errors.New("export already in progress")

// RenderFunc renders the scene with the exporter's current camera state
// and returns the framebuffer contents. It is called from the goroutine
// that invokes Export, which must own the GL context.
type RenderFunc func() (*image.RGBA, error)

// Options describe a single export run.
type Options struct {
	SweepDeg       float64
	Speed          float64
	BoardAspect    float64
	MaxOutputWidth int
	FrameCount     int

	// Progress receives values in [0, 1]. Frame capture covers the first
	// half, encoding the second. May be called from multiple goroutines.
	Progress func(float64)
}

func (o Options) validate() error {
	if o.FrameCount < 1 {
		return fmt.Errorf("frame count %d: need at least one frame", o.FrameCount)
	}
	if o.SweepDeg < 0 {
		return fmt.Errorf("sweep angle %v: must not be negative", o.SweepDeg)
	}
	if o.BoardAspect <= 0 {
		return fmt.Errorf("board aspect %v: must be positive", o.BoardAspect)
	}
	return nil
}

// Result carries the finished animation or the error that stopped it.
type Result struct {
	Data []byte
	Err  error
}

// Exporter captures one full camera sweep into an animated GIF. Frame
// capture runs synchronously on the caller's thread so it can share the
// GL context with the preview; quantization and encoding run in the
// background.
type Exporter struct {
	rig    *camera.Rig
	render RenderFunc
	busy   atomic.Bool
}

func NewExporter(rig *camera.Rig, render RenderFunc) *Exporter {
	return &Exporter{rig: rig, render: render}
}

// Busy reports whether an export is still running.
func (e *Exporter) Busy() bool {
	return e.busy.Load()
}

// Export captures opts.FrameCount frames evenly spaced over one sweep
// cycle and encodes them. The returned channel delivers exactly one
// Result. The camera is restored to its pre-export state before Export
// returns, whether or not the capture succeeded.
func (e *Exporter) Export(opts Options) <-chan Result {
	done := make(chan Result, 1)
	if err := opts.validate(); err != nil {
		done <- Result{Err: err}
		return done
	}
	if !e.busy.CompareAndSwap(false, true) {
		done <- Result{Err: ErrExportBusy}
		return done
	}

	frames, err := e.captureFrames(opts)
	if err != nil {
		e.busy.Store(false)
		done <- Result{Err: err}
		return done
	}

	delayCS := frameDelayCS(opts.Speed, opts.FrameCount)
	go func() {
		defer e.busy.Store(false)
		var encoded int64
		data, err := encodeGIF(frames, delayCS, func() {
			if opts.Progress != nil {
				n := atomic.AddInt64(&encoded, 1)
				opts.Progress(0.5 + 0.5*float64(n)/float64(len(frames)))
			}
		})
		done <- Result{Data: data, Err: err}
	}()
	return done
}

func (e *Exporter) captureFrames(opts Options) ([]*image.RGBA, error) {
	saved := e.rig.Save()
	defer e.rig.Restore(saved)

	frames := make([]*image.RGBA, 0, opts.FrameCount)
	for i := 0; i < opts.FrameCount; i++ {
		progress := float64(i) / float64(opts.FrameCount)
		e.rig.Azimuth = sweep.Angle(progress, opts.SweepDeg)

		surface, err := e.render()
		if err != nil {
			return nil, fmt.Errorf("capture frame %d: %w", i, err)
		}
		frames = append(frames, frameFromSurface(surface, opts.BoardAspect, opts.MaxOutputWidth))

		if opts.Progress != nil {
			opts.Progress(0.5 * float64(i+1) / float64(opts.FrameCount))
		}
	}
	return frames, nil
}

// frameFromSurface crops the capture to the board's aspect ratio and
// scales it down to the output size. The result always has its origin
// at (0, 0).
func frameFromSurface(surface *image.RGBA, aspect float64, maxWidth int) *image.RGBA {
	b := surface.Bounds()
	crop := CropRect(b.Dx(), b.Dy(), aspect)
	outW, outH := OutputSize(crop.Dx(), crop.Dy(), maxWidth)

	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
	if outW == crop.Dx() && outH == crop.Dy() {
		xdraw.Copy(dst, image.Point{}, surface, crop.Add(b.Min), xdraw.Src, nil)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), surface, crop.Add(b.Min), xdraw.Src, nil)
	}
	return dst
}

// frameDelayCS converts the preview's cycle duration into a per-frame
// GIF delay in hundredths of a second, never below the 1cs minimum most
// decoders honor.
func frameDelayCS(speed float64, frameCount int) int {
	period := sweep.CycleDuration(speed)
	cs := int(period.Milliseconds() / int64(frameCount) / 10)
	if cs < 1 {
		cs = 1
	}
	return cs
}
