// Package texture decodes user-supplied images and generates the
// placeholder patterns used when a billboard side has no image yet.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// Image is a decoded bitmap plus the intrinsic size the aspect advisory
// compares against the other side.
type Image struct {
	RGBA   *image.RGBA
	Width  int
	Height int
}

// Aspect returns the intrinsic width/height ratio.
func (i *Image) Aspect() float64 {
	if i == nil || i.Height == 0 {
		return 0
	}
	return float64(i.Width) / float64(i.Height)
}

// Decode decodes a JPEG, PNG, WebP or BMP byte buffer into RGBA.
func Decode(data []byte) (*Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	rgba := ToRGBA(img)
	b := rgba.Bounds()
	return &Image{RGBA: rgba, Width: b.Dx(), Height: b.Dy()}, nil
}

// LoadFile reads and decodes an image file.
func LoadFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// ToRGBA converts any image to RGBA, reusing it when already RGBA.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Placeholder checker colors. The two sides use different palettes so an
// empty slot is immediately distinguishable from a loaded image, and the
// sides from each other.
var (
	leftDark   = color.RGBA{R: 0x2e, G: 0x5c, B: 0x9e, A: 0xff} // blue
	leftLight  = color.RGBA{R: 0x9d, G: 0xc3, B: 0xe6, A: 0xff}
	rightDark  = color.RGBA{R: 0xb5, G: 0x4a, B: 0x32, A: 0xff} // rust
	rightLight = color.RGBA{R: 0xf0, G: 0xc4, B: 0x9a, A: 0xff}
)

const placeholderSize = 256
const checkerCell = 32

// PlaceholderLeft generates the checker pattern for an empty left side.
func PlaceholderLeft() *Image {
	return checker(leftDark, leftLight)
}

// PlaceholderRight generates the checker pattern for an empty right side.
func PlaceholderRight() *Image {
	return checker(rightDark, rightLight)
}

func checker(a, b color.RGBA) *Image {
	rgba := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	for y := 0; y < placeholderSize; y++ {
		for x := 0; x < placeholderSize; x++ {
			c := a
			if (x/checkerCell+y/checkerCell)%2 == 1 {
				c = b
			}
			rgba.SetRGBA(x, y, c)
		}
	}
	return &Image{RGBA: rgba, Width: placeholderSize, Height: placeholderSize}
}
