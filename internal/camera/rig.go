// Package camera provides the orbit rig shared by the live preview loop
// and the export pipeline. There is exactly one Rig per viewer; both
// consumers hold the same pointer so that export can snapshot and restore
// the state the user was looking at.
package camera

import (
	gomath "math"

	"github.com/rlester7/lenticular-viewer/pkg/geom"
)

// State is a restorable snapshot of the rig.
type State struct {
	Azimuth  float64 // horizontal orbit angle in radians
	Distance float64
	Height   float64
}

// Rig orbits the billboard center on a constant-radius horizontal circle.
// The polar angle is pinned: only azimuth and distance ever change.
type Rig struct {
	Azimuth  float64 // radians, 0 faces the board head-on
	Distance float64
	Height   float64 // fixed eye height, not part of the sweep

	MinDistance float64
	MaxDistance float64

	DragSensitivity float64
	ZoomSensitivity float64
}

// NewRig creates a rig with defaults sized for a unit-scale billboard.
func NewRig() *Rig {
	return &Rig{
		Distance:        3.0,
		MinDistance:     0.5,
		MaxDistance:     50.0,
		DragSensitivity: 0.008,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the eye position in world space: a point on the
// horizontal orbit circle, always at the rig's fixed height.
func (r *Rig) Position() geom.Vec3 {
	return geom.Vec3{
		X: float32(gomath.Sin(r.Azimuth) * r.Distance),
		Y: float32(r.Height),
		Z: float32(gomath.Cos(r.Azimuth) * r.Distance),
	}
}

// ViewMatrix returns the view matrix looking at the board origin.
func (r *Rig) ViewMatrix() geom.Mat4 {
	return geom.LookAt(r.Position(), geom.Vec3{}, geom.Vec3{Y: 1})
}

// HandleDrag adjusts the azimuth from a horizontal mouse delta.
// Vertical movement is ignored: the orbit never leaves the horizontal plane.
func (r *Rig) HandleDrag(deltaX float32) {
	r.Azimuth -= float64(deltaX) * r.DragSensitivity
}

// HandleZoom adjusts the orbit distance from a scroll delta.
func (r *Rig) HandleZoom(delta float32) {
	r.Distance -= float64(delta) * r.Distance * r.ZoomSensitivity
	if r.Distance < r.MinDistance {
		r.Distance = r.MinDistance
	}
	if r.Distance > r.MaxDistance {
		r.Distance = r.MaxDistance
	}
}

// FitToBoard sets the distance so a board of the given size fills the view.
func (r *Rig) FitToBoard(width, height float64) {
	size := gomath.Max(width, height)
	r.Distance = size * 1.5
	if r.Distance < r.MinDistance {
		r.Distance = r.MinDistance
	}
	r.Azimuth = 0
}

// Save returns a snapshot of the rig state.
func (r *Rig) Save() State {
	return State{Azimuth: r.Azimuth, Distance: r.Distance, Height: r.Height}
}

// Restore applies a snapshot taken with Save.
func (r *Rig) Restore(s State) {
	r.Azimuth = s.Azimuth
	r.Distance = s.Distance
	r.Height = s.Height
}
