// Package export captures the camera sweep into an animated GIF.
package export

import "image"

// CropRect returns the largest centered rectangle of the given aspect
// ratio (width/height) that fits a surface of surfaceW x surfaceH device
// pixels. A relatively wider surface is cropped left/right, a relatively
// taller one top/bottom. The result never exceeds the surface.
func CropRect(surfaceW, surfaceH int, aspect float64) image.Rectangle {
	if surfaceW <= 0 || surfaceH <= 0 || aspect <= 0 {
		return image.Rect(0, 0, max(surfaceW, 0), max(surfaceH, 0))
	}

	surfaceAspect := float64(surfaceW) / float64(surfaceH)
	var w, h int
	if surfaceAspect > aspect {
		// Surface is wider than the board: full height, trim the sides.
		h = surfaceH
		w = int(float64(surfaceH)*aspect + 0.5)
		if w > surfaceW {
			w = surfaceW
		}
	} else {
		// Surface is taller: full width, trim top and bottom.
		w = surfaceW
		h = int(float64(surfaceW)/aspect + 0.5)
		if h > surfaceH {
			h = surfaceH
		}
	}

	x := (surfaceW - w) / 2
	y := (surfaceH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// OutputSize scales crop dimensions down so width does not exceed
// maxWidth, preserving aspect ratio. Frames are never scaled up.
func OutputSize(cropW, cropH, maxWidth int) (int, int) {
	if maxWidth <= 0 || cropW <= maxWidth {
		return cropW, cropH
	}
	w := maxWidth
	h := int(float64(cropH)*float64(maxWidth)/float64(cropW) + 0.5)
	if h < 1 {
		h = 1
	}
	return w, h
}
