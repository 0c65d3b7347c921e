package animation

import (
	"math"
	"math/rand"
	"testing"

	"robot3d/internal/pose"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestWalkReachesTargets(t *testing.T) {
	p := pose.New()
	d := New(p)
	d.StartWalk()
	for i := 0; i < 45; i++ {
		st := d.Tick()
		if !st.Reschedule {
			t.Fatalf("tick %d: walking should reschedule", i)
		}
	}
	if !floatEquals(p.HipAngle, 40) {
		t.Errorf("hip = %v, want 40", p.HipAngle)
	}
	if !floatEquals(p.KneeAngle, -30) {
		t.Errorf("knee = %v, want -30", p.KneeAngle)
	}
}

func TestWalkClampsBeforeTickCountExhausts(t *testing.T) {
	p := pose.New()
	d := New(p)
	d.StartWalk()
	for i := 1; i <= 45; i++ {
		d.Tick()
		if i == 40 && !floatEquals(p.HipAngle, 40) {
			t.Fatalf("hip after 40 ticks = %v, want 40", p.HipAngle)
		}
		if p.HipAngle > pose.HipMax {
			t.Fatalf("hip exceeded max at tick %d: %v", i, p.HipAngle)
		}
	}
}

func TestStopWalkSnapsToRest(t *testing.T) {
	p := pose.New()
	d := New(p)
	p.SetTorso(14)
	d.StartWalk()
	d.Run(25)

	d.StopWalk()
	if p.Walk != pose.UndoingWalk {
		t.Fatalf("walk = %v, want undoing-walk", p.Walk)
	}
	st := d.Tick()
	if !st.Redraw {
		t.Error("undo tick should redraw")
	}
	if st.Reschedule {
		t.Error("undo tick should not reschedule")
	}
	if p.HipAngle != 0 || p.KneeAngle != -40 || p.TorsoTilt != 0 {
		t.Errorf("pose after undo = (%v, %v, %v), want (0, -40, 0)", p.HipAngle, p.KneeAngle, p.TorsoTilt)
	}
	if p.Walk != pose.Idle {
		t.Errorf("walk = %v, want idle", p.Walk)
	}
}

func TestStartWalkCancelsUndo(t *testing.T) {
	p := pose.New()
	d := New(p)
	d.StartWalk()
	d.Run(5)
	d.StopWalk()
	d.StartWalk()
	d.Tick()
	if p.Walk != pose.Walking {
		t.Fatalf("walk = %v, want walking", p.Walk)
	}
	if !floatEquals(p.HipAngle, 6) {
		t.Errorf("hip = %v, want 6 (undo must not have run)", p.HipAngle)
	}
}

func TestCannonSpin(t *testing.T) {
	p := pose.New()
	d := New(p)
	d.StartCannon()
	for i := 0; i < 100; i++ {
		d.Tick()
	}
	if !floatEquals(p.CannonSpin, 100) {
		t.Errorf("spin = %v, want 100", p.CannonSpin)
	}
}

func TestCannonSpinUnbounded(t *testing.T) {
	p := pose.New()
	d := New(p)
	d.StartCannon()
	d.Run(1000)
	if !floatEquals(p.CannonSpin, 1000) {
		t.Errorf("spin = %v, want 1000", p.CannonSpin)
	}
}

func TestStopCannonKeepsAngle(t *testing.T) {
	p := pose.New()
	d := New(p)
	d.StartCannon()
	d.Run(30)
	d.StopCannon()

	st := d.Tick()
	if st.Redraw || st.Reschedule {
		t.Errorf("stopped cannon tick = %+v, want no redraw and no reschedule", st)
	}
	if !floatEquals(p.CannonSpin, 30) {
		t.Errorf("spin = %v, want 30", p.CannonSpin)
	}
}

func TestWalkAndCannonConcurrent(t *testing.T) {
	p := pose.New()
	d := New(p)
	d.StartWalk()
	d.StartCannon()
	d.Run(10)
	if !floatEquals(p.HipAngle, 10) || !floatEquals(p.CannonSpin, 10) {
		t.Errorf("hip=%v spin=%v, want 10 and 10", p.HipAngle, p.CannonSpin)
	}

	d.StopCannon()
	st := d.Tick()
	if !st.Reschedule {
		t.Error("walking alone should still reschedule")
	}
	if !floatEquals(p.CannonSpin, 10) {
		t.Errorf("spin moved after stop: %v", p.CannonSpin)
	}
}

func TestIdleTick(t *testing.T) {
	p := pose.New()
	before := p.Snapshot()
	st := New(p).Tick()
	if st.Redraw || st.Reschedule {
		t.Errorf("idle tick = %+v", st)
	}
	if p.Snapshot() != before {
		t.Error("idle tick mutated pose")
	}
}

func TestRunStopsWhenIdle(t *testing.T) {
	p := pose.New()
	d := New(p)
	d.StartWalk()
	d.Run(3)
	d.StopWalk()
	if n := d.Run(100); n != 1 {
		t.Errorf("redraws = %d, want 1", n)
	}
	if d.Ticks() != 4 {
		t.Errorf("ticks = %d, want 4", d.Ticks())
	}
}

func TestMixedSequencesStayInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := pose.New()
	d := New(p)
	for i := 0; i < 3000; i++ {
		switch rng.Intn(6) {
		case 0:
			d.StartWalk()
		case 1:
			d.StopWalk()
		case 2:
			p.Select(pose.JointHip)
			p.Nudge(2)
		case 3:
			p.Select(pose.JointKnee)
			p.Nudge(-2)
		default:
			d.Tick()
		}
		if p.HipAngle < pose.HipMin || p.HipAngle > pose.HipMax {
			t.Fatalf("hip %v out of bounds at %d", p.HipAngle, i)
		}
		if p.KneeAngle < pose.KneeMin || p.KneeAngle > pose.KneeMax {
			t.Fatalf("knee %v out of bounds at %d", p.KneeAngle, i)
		}
	}
}
