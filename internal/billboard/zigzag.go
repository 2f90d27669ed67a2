package billboard

import gomath "math"

// Vertex is the mesh vertex format (matches the GL attribute layout).
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// SlatMesh is an ordered sequence of triangles, three vertices each.
// Vertices are generated once per configuration and never mutated.
type SlatMesh struct {
	Vertices []Vertex
}

// TriangleCount returns the number of triangles in the mesh.
func (m *SlatMesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// PeakDepth returns the forward (Z) displacement of a slat midpoint:
// half the segment width times tan(angle). This single quantity encodes
// how sharply the two images separate by viewing angle.
func PeakDepth(cfg Config) float64 {
	segment := cfg.Width / float64(cfg.SlatCount)
	return segment / 2 * gomath.Tan(cfg.AngleDeg*gomath.Pi/180)
}

// GenerateZigzag builds the left-face and right-face triangle meshes for
// the given configuration. Board-local X is centered at 0, Y spans
// [-Height/2, +Height/2], valleys sit at Z=0 and peaks at Z=peakDepth.
//
// Each face set independently tiles u over [0,1] across the full board
// width, so every slat shows one vertical slice of its side's image and
// the slices reconstruct the whole image from the matching viewing side.
func GenerateZigzag(cfg Config) (left, right *SlatMesh, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	segment := cfg.Width / float64(cfg.SlatCount)
	peak := float32(PeakDepth(cfg))
	halfH := float32(cfg.Height / 2)
	width := cfg.Width

	left = &SlatMesh{Vertices: make([]Vertex, 0, cfg.SlatCount*6)}
	right = &SlatMesh{Vertices: make([]Vertex, 0, cfg.SlatCount*6)}

	for i := 0; i < cfg.SlatCount; i++ {
		xLeft := float32(-width/2 + float64(i)*segment)
		xMid := float32(-width/2 + (float64(i)+0.5)*segment)
		xRight := float32(-width/2 + float64(i+1)*segment)

		uLeft := u(xLeft, width)
		uMid := u(xMid, width)
		uRight := u(xRight, width)

		// Left face: valley edge to peak, two triangles, CCW from the
		// left viewing side.
		appendQuad(left,
			Vertex{Position: [3]float32{xLeft, -halfH, 0}, TexCoord: [2]float32{uLeft, 1}},
			Vertex{Position: [3]float32{xMid, -halfH, peak}, TexCoord: [2]float32{uMid, 1}},
			Vertex{Position: [3]float32{xLeft, halfH, 0}, TexCoord: [2]float32{uLeft, 0}},
			Vertex{Position: [3]float32{xMid, halfH, peak}, TexCoord: [2]float32{uMid, 0}},
		)

		// Right face: peak back down to the valley, mirrored winding.
		appendQuad(right,
			Vertex{Position: [3]float32{xMid, -halfH, peak}, TexCoord: [2]float32{uMid, 1}},
			Vertex{Position: [3]float32{xRight, -halfH, 0}, TexCoord: [2]float32{uRight, 1}},
			Vertex{Position: [3]float32{xMid, halfH, peak}, TexCoord: [2]float32{uMid, 0}},
			Vertex{Position: [3]float32{xRight, halfH, 0}, TexCoord: [2]float32{uRight, 0}},
		)
	}

	return left, right, nil
}

// u maps a board-local X coordinate to [0,1] across the full width.
func u(x float32, width float64) float32 {
	return float32((float64(x) + width/2) / width)
}

// appendQuad emits the two triangles of one slat face (bl, br, tl, tr
// corners) with a shared per-face normal.
func appendQuad(m *SlatMesh, bl, br, tl, tr Vertex) {
	n := faceNormal(bl.Position, br.Position, tl.Position)
	bl.Normal, br.Normal, tl.Normal, tr.Normal = n, n, n, n
	m.Vertices = append(m.Vertices, bl, br, tl, tl, br, tr)
}

// faceNormal computes the outward unit normal of a CCW triangle.
// A flat (angle 0) board yields a valid +Z normal; a fully degenerate
// triangle falls back to +Z rather than dividing by zero.
func faceNormal(p0, p1, p2 [3]float32) [3]float32 {
	e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
	e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
	n := [3]float32{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
	mag := float32(gomath.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
	if mag < 1e-12 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{n[0] / mag, n[1] / mag, n[2] / mag}
}
