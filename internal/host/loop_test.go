package host

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"robot3d/internal/input"
	"robot3d/internal/pose"
	"robot3d/internal/remote"
)

type queue []remote.KeyEvent

func (q *queue) Drain(fn func(remote.KeyEvent)) int {
	n := len(*q)
	for _, ev := range *q {
		fn(ev)
	}
	*q = nil
	return n
}

type recorder struct {
	snaps []pose.State
	err   error
}

func (r *recorder) Publish(p pose.State) error {
	r.snaps = append(r.snaps, p)
	return r.err
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestFirstStepIsDirty(t *testing.T) {
	l := New(Options{Logger: quiet()})
	if !l.Step(nil) {
		t.Error("first step should request a frame")
	}
	l.MarkDrawn()
	if l.Step(nil) {
		t.Error("idle step requested a frame")
	}
}

func TestLocalKeys(t *testing.T) {
	l := New(Options{Logger: quiet()})
	l.MarkDrawn()

	if !l.Step([]input.Key{input.Char('h'), input.Arrow(input.ArrowUp)}) {
		t.Error("nudge did not dirty the frame")
	}
	if l.Pose().HipAngle != 2 {
		t.Errorf("hip = %v", l.Pose().HipAngle)
	}

	l.MarkDrawn()
	if l.Step([]input.Key{input.Char('x')}) {
		t.Error("unbound key dirtied the frame")
	}
}

func TestRemoteKeysAfterLocal(t *testing.T) {
	q := &queue{{ClientID: "a", Key: input.Char('b')}, {ClientID: "a", Key: input.Arrow(input.ArrowDown)}}
	l := New(Options{Remote: q, Logger: quiet()})

	l.Step([]input.Key{input.Char('k')})
	if l.Pose().TorsoTilt != -2 || l.Pose().KneeAngle != pose.RestKnee {
		t.Errorf("torso %v knee %v", l.Pose().TorsoTilt, l.Pose().KneeAngle)
	}
	if len(*q) != 0 {
		t.Error("remote queue not drained")
	}
}

func TestAnimationTicksOncePerStep(t *testing.T) {
	l := New(Options{Logger: quiet()})
	l.Step([]input.Key{input.Char('w')})
	for i := 0; i < 44; i++ {
		l.Step(nil)
	}
	p := l.Pose()
	if p.HipAngle != 40 || p.KneeAngle != -30 {
		t.Errorf("hip %v knee %v", p.HipAngle, p.KneeAngle)
	}
	if l.Driver().Ticks() != 45 {
		t.Errorf("ticks = %d", l.Driver().Ticks())
	}

	l.Step([]input.Key{input.Char('W')})
	if p.HipAngle != 0 || p.KneeAngle != -40 || p.Walk != pose.Idle {
		t.Errorf("after stop %+v", *p)
	}
	before := l.Driver().Ticks()
	l.Step(nil)
	if l.Driver().Ticks() != before {
		t.Error("driver ticked while idle")
	}
}

func TestTelemetryCadence(t *testing.T) {
	rec := &recorder{err: errors.New("offline")}
	l := New(Options{Telemetry: []remote.Telemetry{rec}, PublishEvery: 3, Logger: quiet()})
	l.Step([]input.Key{input.Char('c')})
	for i := 0; i < 8; i++ {
		l.Step(nil)
	}
	l.Close()
	if len(rec.snaps) != 3 {
		t.Fatalf("published %d snapshots, want 3", len(rec.snaps))
	}
	if rec.snaps[0].CannonSpin != 3 || rec.snaps[2].CannonSpin != 9 {
		t.Errorf("spins %v %v", rec.snaps[0].CannonSpin, rec.snaps[2].CannonSpin)
	}
}

type slowSink struct {
	delay time.Duration
	got   chan pose.State
}

func (s *slowSink) Publish(p pose.State) error {
	time.Sleep(s.delay)
	s.got <- p
	return nil
}

func TestSlowTelemetryDoesNotBlockStep(t *testing.T) {
	slow := &slowSink{delay: 200 * time.Millisecond, got: make(chan pose.State, telemetryBuffer)}
	rec := &recorder{}
	l := New(Options{Telemetry: []remote.Telemetry{slow, rec}, PublishEvery: 1, Logger: quiet()})

	for i := 0; i < 3; i++ {
		start := time.Now()
		l.Step(nil)
		if d := time.Since(start); d > 50*time.Millisecond {
			t.Fatalf("step %d took %v", i, d)
		}
	}

	select {
	case <-slow.got:
	case <-time.After(2 * time.Second):
		t.Fatal("slow sink never received a snapshot")
	}
	l.Close()
	if len(slow.got) != 2 || len(rec.snaps) != 3 {
		t.Errorf("slow sink got %d more, recorder got %d", len(slow.got), len(rec.snaps))
	}
}

func TestBusySinkDropsSnapshots(t *testing.T) {
	release := make(chan struct{})
	blocked := &blockingSink{release: release}
	l := New(Options{Telemetry: []remote.Telemetry{blocked}, PublishEvery: 1, Logger: quiet()})

	for i := 0; i < telemetryBuffer+5; i++ {
		l.Step(nil)
	}
	close(release)
	l.Close()
	if blocked.n > telemetryBuffer+1 {
		t.Errorf("delivered %d snapshots, want at most %d", blocked.n, telemetryBuffer+1)
	}
	if blocked.n == 0 {
		t.Error("no snapshots delivered")
	}
}

type blockingSink struct {
	release chan struct{}
	n       int
}

func (b *blockingSink) Publish(pose.State) error {
	<-b.release
	b.n++
	return nil
}
