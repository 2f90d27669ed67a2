package geom

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("zero vector normalized to %v, want zero", zero)
	}
}

func TestMat4IdentityMul(t *testing.T) {
	m := Perspective(0.785398, 16.0/9.0, 0.1, 100)
	got := Identity().Mul(m)
	if got != m {
		t.Errorf("Identity().Mul(m) = %v, want %v", got, m)
	}
}

func TestLookAtTransformsEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 0, 5}
	view := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	// The eye maps to the view-space origin.
	p := view.TransformPoint(eye)
	if math.Abs(float64(p.X)) > 1e-5 || math.Abs(float64(p.Y)) > 1e-5 || math.Abs(float64(p.Z)) > 1e-5 {
		t.Errorf("view * eye = %v, want origin", p)
	}

	// The look-at target ends up on the negative Z axis in view space.
	c := view.TransformPoint(Vec3{})
	if c.Z >= 0 {
		t.Errorf("view * center = %v, want negative Z", c)
	}
}

func TestTransformPointTranslationColumn(t *testing.T) {
	m := Identity()
	m[12], m[13], m[14] = 1, 2, 3
	got := m.TransformPoint(Vec3{0, 0, 0})
	want := Vec3{1, 2, 3}
	if got != want {
		t.Errorf("TransformPoint() = %v, want %v", got, want)
	}
}
