package skeleton

import (
	"robot3d/internal/mathutil"
	"robot3d/internal/pose"
)

// Body dimensions. Limb offsets below are derived from these.
const (
	BodyWidth      = 8.0
	BodyLength     = 9.0
	BodyDepth      = 6.0
	UpperArmLength = BodyLength
	UpperArmWidth  = 0.125 * BodyWidth
	GunLength      = UpperArmLength / 4.0
)

// Tessellation of the round parts.
const (
	RoundSlices = 20
	RoundStacks = 20
)

// Side is the mirroring sign of a limb: -1 on the figure's left, +1 on its right.
type Side float64

const (
	Left  Side = -1
	Right Side = 1
)

// CannonSpec places one shoulder cannon on the torso.
type CannonSpec struct {
	Name string
	Side Side
	// Spin is applied about the cannon's Z axis through this point.
	Pivot mathutil.Vec3
	// Mount positions the barrel ring relative to the torso.
	Mount mathutil.Vec3
}

// LegSpec places one leg. The two legs are not mirror images: only the left
// leg follows the hip angle, and each knee has its own pivot and offset.
type LegSpec struct {
	Name string
	Side Side

	// HipDriven legs are wrapped in the hip sandwich.
	HipDriven bool
	HipPre    mathutil.Vec3
	HipPost   mathutil.Vec3

	// Mount is the hip joint block position relative to the root.
	Mount mathutil.Vec3
	// ThighTilt rotates the thigh about Z at the hip joint.
	ThighTilt float64

	KneePre  mathutil.Vec3
	KneePost mathutil.Vec3
	// KneeAngle selects which pose angle bends this knee.
	KneeAngle func(*pose.State) float64
	// ShinOffset positions the shin after the knee rotation.
	ShinOffset mathutil.Vec3
}

var (
	hipX      = 0.5*BodyWidth + 0.5*UpperArmWidth
	hipY      = -0.3 * BodyLength
	hipZ      = -0.7 * BodyDepth
	footDrop  = -(0.5*UpperArmLength + 0.5*GunLength)
	cannonX   = 5.0
	cannonY   = 5.0
	cannonZ   = -1.0
	thighTilt = 30.0
)

// Cannons lists the shoulder cannons in draw order.
var Cannons = []CannonSpec{
	cannon("left-cannon", Left),
	cannon("right-cannon", Right),
}

func cannon(name string, s Side) CannonSpec {
	x := float64(s) * cannonX
	return CannonSpec{
		Name:  name,
		Side:  s,
		Pivot: mathutil.Vec3{x, cannonY, 0},
		Mount: mathutil.Vec3{x, cannonY, cannonZ},
	}
}

// Legs lists the legs in draw order.
var Legs = []LegSpec{
	{
		Name:      "left-leg",
		Side:      Left,
		HipDriven: true,
		// The hip pivot sits on the mirrored mount. Both share y and z, so
		// the rotation axis still runs through the left hip block.
		HipPre:     mathutil.Vec3{hipX, hipY, hipZ},
		HipPost:    mathutil.Vec3{-hipX, -hipY, -hipZ},
		Mount:      mathutil.Vec3{-hipX, hipY, hipZ},
		ThighTilt:  -thighTilt,
		KneePre:    mathutil.Vec3{-7, -5, -7},
		KneePost:   mathutil.Vec3{7, 5, 7},
		KneeAngle:  func(p *pose.State) float64 { return p.KneeAngle },
		ShinOffset: mathutil.Vec3{-7, -11, -5},
	},
	{
		Name:      "right-leg",
		Side:      Right,
		Mount:     mathutil.Vec3{hipX, hipY, hipZ},
		ThighTilt: thighTilt,
		// Halves do not cancel: the shin is carried 9 units along X.
		KneePre:    mathutil.Vec3{hipX, 0.5 * UpperArmLength, 0},
		KneePost:   mathutil.Vec3{hipX, -0.5 * UpperArmLength, 0},
		KneeAngle:  func(p *pose.State) float64 { return p.ShoulderAngle },
		ShinOffset: mathutil.Vec3{-2, -5, -11},
	},
}
