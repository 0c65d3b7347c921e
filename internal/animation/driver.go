// Package animation advances a pose on a fixed timer cadence.
//
// The driver is a state machine: hosts call Tick once per interval and keep
// calling while the returned Step asks to be rescheduled. Stop commands only
// flip a flag, so they take effect on the next tick.
package animation

import (
	"time"

	"robot3d/internal/pose"
)

// DefaultInterval is the timer period between ticks.
const DefaultInterval = 10 * time.Millisecond

// Per-tick increments in degrees.
const (
	WalkStep   = 1.0
	CannonStep = 1.0
)

// Walk targets: each tick moves the hip and knee one step closer.
const (
	HipWalkTarget  = pose.HipMax
	KneeWalkTarget = -30.0
)

// Step reports what a tick did.
type Step struct {
	// Redraw is set when the pose changed.
	Redraw bool
	// Reschedule is set while some mode still wants another tick.
	Reschedule bool
}

// Driver mutates a pose in response to start/stop commands and ticks.
type Driver struct {
	Interval time.Duration

	pose  *pose.State
	ticks uint64
}

// New returns a driver for p using DefaultInterval.
func New(p *pose.State) *Driver {
	return &Driver{Interval: DefaultInterval, pose: p}
}

// Pose returns the driven pose.
func (d *Driver) Pose() *pose.State { return d.pose }

// Ticks returns how many ticks have been processed.
func (d *Driver) Ticks() uint64 { return d.ticks }

// StartWalk enters Walking, cancelling a pending undo.
func (d *Driver) StartWalk() {
	d.pose.Walk = pose.Walking
}

// StopWalk enters UndoingWalk. The next tick snaps the legs back to rest.
func (d *Driver) StopWalk() {
	d.pose.Walk = pose.UndoingWalk
}

func (d *Driver) StartCannon() {
	d.pose.CannonSpinning = true
}

// StopCannon stops the spin without resetting the barrel angle.
func (d *Driver) StopCannon() {
	d.pose.CannonSpinning = false
}

// Active reports whether the host should keep ticking.
func (d *Driver) Active() bool {
	return d.pose.Walk != pose.Idle || d.pose.CannonSpinning
}

// Tick advances every active mode by one step.
func (d *Driver) Tick() Step {
	d.ticks++
	p := d.pose
	var st Step

	switch p.Walk {
	case pose.Walking:
		p.SetHip(pose.StepToward(p.HipAngle, HipWalkTarget, WalkStep))
		p.SetKnee(pose.StepToward(p.KneeAngle, KneeWalkTarget, WalkStep))
		st.Redraw = true
	case pose.UndoingWalk:
		p.Reset()
		p.Walk = pose.Idle
		st.Redraw = true
	}

	if p.CannonSpinning {
		p.CannonSpin += CannonStep
		st.Redraw = true
	}

	st.Reschedule = d.Active()
	return st
}

// Run ticks n times or until no mode is active, whichever comes first.
// It returns the number of ticks that asked for a redraw.
func (d *Driver) Run(n int) int {
	redraws := 0
	for i := 0; i < n && d.Active(); i++ {
		if d.Tick().Redraw {
			redraws++
		}
	}
	return redraws
}
