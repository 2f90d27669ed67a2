package export

import (
	"bytes"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"runtime"
	"sync"
)

// encodeGIF quantizes frames to the Plan9 palette and assembles a looping
// animation. Quantization is the expensive part and each frame is
// independent, so it runs across a small worker pool. onFrame is invoked
// once per quantized frame from the workers.
func encodeGIF(frames []*image.RGBA, delayCS int, onFrame func()) ([]byte, error) {
	anim := &gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		LoopCount: 0,
	}

	workers := runtime.NumCPU()
	if workers > len(frames) {
		workers = len(frames)
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				src := frames[i]
				pal := image.NewPaletted(src.Bounds(), palette.Plan9)
				draw.FloydSteinberg.Draw(pal, src.Bounds(), src, src.Bounds().Min)
				anim.Image[i] = pal
				anim.Delay[i] = delayCS
				if onFrame != nil {
					onFrame()
				}
			}
		}()
	}
	for i := range frames {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
