package billboard

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/rlester7/lenticular-viewer/internal/texture"
)

// FaceSet is one half of the zigzag geometry on the GPU, paired with the
// image visible from that side.
type FaceSet struct {
	vao         uint32
	vbo         uint32
	tex         uint32
	vertexCount int32
}

// Board owns the GPU resources for a built billboard. All methods must
// run on the thread holding the GL context.
type Board struct {
	Config Config
	Left   FaceSet
	Right  FaceSet
}

// Build generates the zigzag mesh for cfg and uploads both face sets.
// Nil images fall back to the built-in checker placeholders.
func Build(cfg Config, imgA, imgB *image.RGBA) (*Board, error) {
	left, right, err := GenerateZigzag(cfg)
	if err != nil {
		return nil, err
	}

	if imgA == nil {
		imgA = texture.PlaceholderLeft().RGBA
	}
	if imgB == nil {
		imgB = texture.PlaceholderRight().RGBA
	}

	b := &Board{Config: cfg}
	b.Left = uploadFaceSet(left, imgA)
	b.Right = uploadFaceSet(right, imgB)
	return b, nil
}

// Rebuild replaces the board's geometry and textures in place. The old
// GPU resources are released first.
func (b *Board) Rebuild(cfg Config, imgA, imgB *image.RGBA) error {
	nb, err := Build(cfg, imgA, imgB)
	if err != nil {
		return err
	}
	b.Dispose()
	*b = *nb
	return nil
}

func uploadFaceSet(mesh *SlatMesh, img *image.RGBA) FaceSet {
	var fs FaceSet
	fs.vertexCount = int32(len(mesh.Vertices))

	gl.GenVertexArrays(1, &fs.vao)
	gl.BindVertexArray(fs.vao)

	gl.GenBuffers(1, &fs.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, fs.vbo)
	stride := int32(unsafe.Sizeof(Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)

	// TexCoord attribute (location = 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 24)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	fs.tex = uploadTexture(img)
	return fs
}

func uploadTexture(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	return texID
}

// Bind prepares the face set for drawing and returns its vertex count.
func (fs *FaceSet) Bind() int32 {
	gl.BindTexture(gl.TEXTURE_2D, fs.tex)
	gl.BindVertexArray(fs.vao)
	return fs.vertexCount
}

func (fs *FaceSet) dispose() {
	if fs.vao != 0 {
		gl.DeleteVertexArrays(1, &fs.vao)
		fs.vao = 0
	}
	if fs.vbo != 0 {
		gl.DeleteBuffers(1, &fs.vbo)
		fs.vbo = 0
	}
	if fs.tex != 0 {
		gl.DeleteTextures(1, &fs.tex)
		fs.tex = 0
	}
	fs.vertexCount = 0
}

// Dispose releases all GPU resources. Safe to call more than once.
func (b *Board) Dispose() {
	b.Left.dispose()
	b.Right.dispose()
}
