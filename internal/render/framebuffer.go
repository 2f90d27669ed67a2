// Package render draws the billboard scene into an offscreen framebuffer.
package render

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Target is an offscreen render target with a color texture and depth
// buffer. The color texture can be shown in the UI or read back for
// export.
type Target struct {
	fbo          uint32
	colorTexture uint32
	depthRBO     uint32
	width        int32
	height       int32
}

// NewTarget allocates a framebuffer of the given size.
func NewTarget(width, height int) (*Target, error) {
	t := &Target{width: int32(width), height: int32(height)}

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)

	gl.GenTextures(1, &t.colorTexture)
	gl.BindTexture(gl.TEXTURE_2D, t.colorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, t.width, t.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.colorTexture, 0)

	gl.GenRenderbuffers(1, &t.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, t.width, t.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depthRBO)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		t.Destroy()
		return nil, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return t, nil
}

// Size returns the target dimensions in pixels.
func (t *Target) Size() (int, int) {
	return int(t.width), int(t.height)
}

// Texture returns the color attachment's GL texture ID.
func (t *Target) Texture() uint32 {
	return t.colorTexture
}

// Resize reallocates the target at a new size. No-op if unchanged.
func (t *Target) Resize(width, height int) error {
	if int32(width) == t.width && int32(height) == t.height {
		return nil
	}
	nt, err := NewTarget(width, height)
	if err != nil {
		return err
	}
	t.Destroy()
	*t = *nt
	return nil
}

// ReadRGBA copies the color attachment into an image. GL rows start at
// the bottom, so the rows are flipped on the way out.
func (t *Target) ReadRGBA() *image.RGBA {
	w, h := int(t.width), int(t.height)
	raw := make([]uint8, w*h*4)

	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.ReadPixels(0, 0, t.width, t.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(raw))
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rowLen := w * 4
	for y := 0; y < h; y++ {
		src := raw[(h-1-y)*rowLen : (h-y)*rowLen]
		copy(img.Pix[y*img.Stride:y*img.Stride+rowLen], src)
	}
	return img
}

// Destroy releases the GL resources. Safe to call more than once.
func (t *Target) Destroy() {
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		t.fbo = 0
	}
	if t.colorTexture != 0 {
		gl.DeleteTextures(1, &t.colorTexture)
		t.colorTexture = 0
	}
	if t.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &t.depthRBO)
		t.depthRBO = 0
	}
}
