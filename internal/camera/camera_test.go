package camera

import (
	"math"
	"testing"

	"robot3d/internal/mathutil"
)

func TestViewMapsEyeToOrigin(t *testing.T) {
	c := Default()
	got := c.View().MulPoint(c.Eye)
	if got.Len() > 1e-9 {
		t.Errorf("eye maps to %v, want origin", got)
	}
}

func TestViewLooksDownNegativeZ(t *testing.T) {
	c := Default()
	got := c.View().MulPoint(c.Center)
	want := c.Center.Sub(c.Eye).Len()
	if math.Abs(got[0]) > 1e-9 || math.Abs(got[1]) > 1e-9 || math.Abs(got[2]+want) > 1e-9 {
		t.Errorf("centre maps to %v, want (0, 0, %v)", got, -want)
	}
}

func TestCenterProjectsToViewportMiddle(t *testing.T) {
	c := Default()
	p := ProjectVertices([]mathutil.Vec3{c.Center}, c.View(), c.Projection(650.0/500.0), 650, 500)
	if p.Behind[0] {
		t.Fatal("centre reported behind the camera")
	}
	if math.Abs(p.PX[0]-325) > 1e-6 || math.Abs(p.PY[0]-250) > 1e-6 {
		t.Errorf("centre at (%v, %v), want (325, 250)", p.PX[0], p.PY[0])
	}
}

func TestDepthOrdering(t *testing.T) {
	c := Default()
	near := mathutil.Vec3{0, 0, 10}
	far := mathutil.Vec3{0, 0, -10}
	p := ProjectVertices([]mathutil.Vec3{near, far}, c.View(), c.Projection(1), 100, 100)
	if !(p.PZ[0] > p.PZ[1]) {
		t.Errorf("near depth %v should exceed far depth %v", p.PZ[0], p.PZ[1])
	}
}

func TestUpIsScreenUp(t *testing.T) {
	c := Default()
	p := ProjectVertices([]mathutil.Vec3{{0, 0, 0}, {0, 5, 0}}, c.View(), c.Projection(1), 100, 100)
	if !(p.PY[1] < p.PY[0]) {
		t.Errorf("higher point projects lower on screen: %v vs %v", p.PY[1], p.PY[0])
	}
}

func TestBehindCamera(t *testing.T) {
	c := Default()
	p := ProjectVertices([]mathutil.Vec3{{0, 6, 40}}, c.View(), c.Projection(1), 100, 100)
	if !p.Behind[0] {
		t.Error("point behind the eye not flagged")
	}
}
