package export

import (
	"image"
	"testing"
)

func TestCropRectScenarios(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		aspect float64
		want   image.Rectangle
	}{
		// Surface 800x600 (1.33) narrower than board 2.0: crop top/bottom.
		{"wider board", 800, 600, 2.0, image.Rect(0, 100, 800, 500)},
		// Surface wider than board: crop sides.
		{"taller board", 1000, 500, 1.0, image.Rect(250, 0, 750, 500)},
		// Matching aspect: whole surface.
		{"exact match", 640, 320, 2.0, image.Rect(0, 0, 640, 320)},
		{"square both", 512, 512, 1.0, image.Rect(0, 0, 512, 512)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CropRect(tt.w, tt.h, tt.aspect)
			if got != tt.want {
				t.Errorf("CropRect(%d, %d, %v) = %v, want %v", tt.w, tt.h, tt.aspect, got, tt.want)
			}
		})
	}
}

func TestCropRectNeverExceedsSurface(t *testing.T) {
	surface := image.Rect(0, 0, 733, 451)
	for _, aspect := range []float64{0.1, 0.5, 1.0, 1.62, 2.0, 10.0} {
		r := CropRect(surface.Dx(), surface.Dy(), aspect)
		if !r.In(surface) {
			t.Errorf("aspect %v: crop %v escapes surface %v", aspect, r, surface)
		}
		if r.Empty() {
			t.Errorf("aspect %v: empty crop", aspect)
		}
	}
}

func TestCropRectIsCentered(t *testing.T) {
	r := CropRect(800, 600, 2.0)
	if top, bottom := r.Min.Y, 600-r.Max.Y; top != bottom {
		t.Errorf("vertical margins %d and %d differ", top, bottom)
	}
	r = CropRect(1000, 500, 1.0)
	if left, right := r.Min.X, 1000-r.Max.X; left != right {
		t.Errorf("horizontal margins %d and %d differ", left, right)
	}
}

func TestOutputSizeNeverUpscales(t *testing.T) {
	if w, h := OutputSize(320, 240, 800); w != 320 || h != 240 {
		t.Errorf("OutputSize(320, 240, 800) = %dx%d, want unchanged", w, h)
	}
	if w, h := OutputSize(800, 400, 400); w != 400 || h != 200 {
		t.Errorf("OutputSize(800, 400, 400) = %dx%d, want 400x200", w, h)
	}
	if w, h := OutputSize(800, 400, 0); w != 800 || h != 400 {
		t.Errorf("OutputSize with maxWidth 0 = %dx%d, want unchanged", w, h)
	}
}

func TestOutputSizeRespectsMax(t *testing.T) {
	for _, maxW := range []int{1, 100, 799, 800, 801} {
		w, _ := OutputSize(800, 600, maxW)
		if maxW > 0 && w > maxW && maxW < 800 {
			t.Errorf("maxWidth %d: output width %d exceeds limit", maxW, w)
		}
	}
}
