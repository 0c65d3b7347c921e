package mathutil

import "math"

// Principal axes used by the rig and the transform stack.
var (
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)

// WrapDegrees maps an angle to [0, 360).
func WrapDegrees(a float64) float64 {
	d := math.Mod(a, 360)
	if d < 0 {
		d += 360
	}
	return d
}
