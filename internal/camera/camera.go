// Package camera builds the fixed viewing and projection transforms and maps
// model-space vertices to screen space.
package camera

import (
	"math"

	"robot3d/internal/mathutil"
)

// Camera is a look-at camera with a symmetric perspective frustum.
type Camera struct {
	Eye    mathutil.Vec3
	Center mathutil.Vec3
	Up     mathutil.Vec3
	FovY   float64 // degrees
	Near   float64
	Far    float64
}

// Default returns the fixed camera the robot is viewed from.
func Default() Camera {
	return Camera{
		Eye:    mathutil.Vec3{0, 6, 26},
		Center: mathutil.Vec3{0, -3, 0},
		Up:     mathutil.Vec3{0, 1, 0},
		FovY:   60,
		Near:   0.2,
		Far:    40,
	}
}

// View returns the world-to-eye transform (gluLookAt).
func (c Camera) View() mathutil.Mat4 {
	f := c.Center.Sub(c.Eye).Normalize()
	s := f.Cross(c.Up).Normalize()
	u := s.Cross(f)
	r := mathutil.Mat3Rows(s, u, f.Neg())
	return mathutil.FromMat3Translation(r, r.MulVec3(c.Eye).Neg())
}

// Projection returns the eye-to-clip transform (gluPerspective).
func (c Camera) Projection(aspect float64) mathutil.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	f := 1 / math.Tan(mathutil.Deg2Rad(c.FovY)/2)
	n, fr := c.Near, c.Far
	return mathutil.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (fr + n) / (n - fr), 2 * fr * n / (n - fr),
		0, 0, -1, 0,
	}
}

// Projected holds per-vertex results of ProjectVertices.
type Projected struct {
	// Eye-space positions, used for lighting.
	Eye []mathutil.Vec3
	// Screen X, screen Y (down) and depth (larger is nearer, [-1, 1] inside
	// the frustum).
	PX, PY, PZ []float64
	// Behind marks vertices at or behind the near plane.
	Behind []bool
}

// ProjectVertices transforms model-space vertices to screen coordinates for a
// width×height viewport. modelView maps model space to eye space.
func ProjectVertices(verts []mathutil.Vec3, modelView, proj mathutil.Mat4, width, height int) Projected {
	n := len(verts)
	out := Projected{
		Eye:    make([]mathutil.Vec3, n),
		PX:     make([]float64, n),
		PY:     make([]float64, n),
		PZ:     make([]float64, n),
		Behind: make([]bool, n),
	}

	w, h := float64(width), float64(height)
	for i, v := range verts {
		e := modelView.MulPoint(v)
		out.Eye[i] = e

		clip := proj.MulHomogeneous(e)
		if clip[3] <= 1e-9 {
			out.Behind[i] = true
			continue
		}
		inv := 1 / clip[3]
		x, y, z := clip[0]*inv, clip[1]*inv, clip[2]*inv

		out.PX[i] = (x + 1) * 0.5 * w
		out.PY[i] = (1 - y) * 0.5 * h
		out.PZ[i] = -z
	}
	return out
}
