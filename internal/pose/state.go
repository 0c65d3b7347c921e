// Package pose holds the joint angles and mode flags that fully determine the
// robot's posture for one frame.
package pose

// Joint bounds in degrees. Hip, knee and torso are clamped on every update.
const (
	HipMin   = -40.0
	HipMax   = 40.0
	KneeMin  = -90.0
	KneeMax  = 0.0
	TorsoMin = -90.0
	TorsoMax = 90.0
)

// Rest pose, restored by Reset.
const (
	RestHip   = 0.0
	RestKnee  = -40.0
	RestTorso = 0.0
)

// Startup values for the angles Reset does not touch.
const (
	DefaultHeading  = 30.0
	DefaultShoulder = -40.0
)

// Joint selects which angle receives nudges.
type Joint uint8

const (
	JointNone Joint = iota
	JointKnee
	JointHip
	JointBody
)

func (j Joint) String() string {
	switch j {
	case JointKnee:
		return "knee"
	case JointHip:
		return "hip"
	case JointBody:
		return "body"
	}
	return "none"
}

// WalkMode is the leg animation state.
type WalkMode uint8

const (
	Idle WalkMode = iota
	Walking
	UndoingWalk
)

func (m WalkMode) String() string {
	switch m {
	case Walking:
		return "walking"
	case UndoingWalk:
		return "undoing-walk"
	}
	return "idle"
}

// State is the robot's complete posture plus its animation flags.
// It is owned by a single host loop and is not safe for concurrent use.
type State struct {
	RootHeading    float64  `json:"root_heading"`
	TorsoTilt      float64  `json:"torso_tilt"`
	ShoulderAngle  float64  `json:"shoulder_angle"`
	HipAngle       float64  `json:"hip_angle"`
	KneeAngle      float64  `json:"knee_angle"`
	CannonSpin     float64  `json:"cannon_spin"`
	Selected       Joint    `json:"selected"`
	Walk           WalkMode `json:"walk"`
	CannonSpinning bool     `json:"cannon_spinning"`
}

// New returns the startup pose.
func New() *State {
	return &State{
		RootHeading:   DefaultHeading,
		TorsoTilt:     RestTorso,
		ShoulderAngle: DefaultShoulder,
		HipAngle:      RestHip,
		KneeAngle:     RestKnee,
	}
}

// Select makes j the only joint that receives nudges.
func (s *State) Select(j Joint) {
	s.Selected = j
}

// Nudge adds delta to the selected joint's angle, clamped to its bounds.
// It reports whether any angle was edited.
func (s *State) Nudge(delta float64) bool {
	switch s.Selected {
	case JointKnee:
		s.SetKnee(s.KneeAngle + delta)
	case JointHip:
		s.SetHip(s.HipAngle + delta)
	case JointBody:
		s.SetTorso(s.TorsoTilt + delta)
	default:
		return false
	}
	return true
}

func (s *State) SetHip(deg float64) {
	s.HipAngle = clamp(deg, HipMin, HipMax)
}

func (s *State) SetKnee(deg float64) {
	s.KneeAngle = clamp(deg, KneeMin, KneeMax)
}

func (s *State) SetTorso(deg float64) {
	s.TorsoTilt = clamp(deg, TorsoMin, TorsoMax)
}

// TurnHeading rotates the whole figure. Heading is unbounded.
func (s *State) TurnHeading(delta float64) {
	s.RootHeading += delta
}

// Reset snaps hip, knee and torso back to the rest pose in one step.
func (s *State) Reset() {
	s.HipAngle = RestHip
	s.KneeAngle = RestKnee
	s.TorsoTilt = RestTorso
}

// Snapshot returns a copy safe to hand to other goroutines.
func (s *State) Snapshot() State {
	return *s
}

// Modes lists the active animation modes, "idle" when none is.
func (s *State) Modes() []string {
	var modes []string
	if s.Walk != Idle {
		modes = append(modes, s.Walk.String())
	}
	if s.CannonSpinning {
		modes = append(modes, "cannon-spinning")
	}
	if len(modes) == 0 {
		modes = append(modes, Idle.String())
	}
	return modes
}

// StepToward moves cur toward target by at most step without overshooting.
func StepToward(cur, target, step float64) float64 {
	switch {
	case cur < target:
		if cur+step > target {
			return target
		}
		return cur + step
	case cur > target:
		if cur-step < target {
			return target
		}
		return cur - step
	}
	return cur
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
