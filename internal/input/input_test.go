package input

import (
	"testing"

	"robot3d/internal/animation"
	"robot3d/internal/pose"
)

func setup() (*Mapper, *pose.State, *animation.Driver) {
	p := pose.New()
	return NewMapper(), p, animation.New(p)
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"up", Arrow(ArrowUp)},
		{"LEFT", Arrow(ArrowLeft)},
		{"w", Char('w')},
		{"W", Char('W')},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.in)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseKey(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if back, _ := ParseKey(got.String()); back != got {
			t.Errorf("%v does not round-trip through String", got)
		}
	}
	if _, err := ParseKey("space"); err == nil {
		t.Error("expected an error for an unknown key name")
	}
}

func TestSelectThenNudge(t *testing.T) {
	m, p, d := setup()
	m.Handle(Char('k'), p, d)
	for i := 0; i < 5; i++ {
		if !m.Handle(Arrow(ArrowUp), p, d) {
			t.Fatal("nudge did not request a redraw")
		}
	}
	if p.KneeAngle != pose.RestKnee+10 {
		t.Errorf("knee = %v, want %v", p.KneeAngle, pose.RestKnee+10)
	}

	m.Handle(Char('h'), p, d)
	m.Handle(Arrow(ArrowLeft), p, d)
	if p.HipAngle != -2 {
		t.Errorf("hip = %v, want -2", p.HipAngle)
	}

	m.Handle(Char('b'), p, d)
	m.Handle(Arrow(ArrowRight), p, d)
	if p.TorsoTilt != 2 {
		t.Errorf("torso = %v, want 2", p.TorsoTilt)
	}
	if p.KneeAngle != pose.RestKnee+10 || p.HipAngle != -2 {
		t.Error("body nudge touched other joints")
	}
}

func TestNudgeWithoutSelection(t *testing.T) {
	m, p, d := setup()
	before := p.Snapshot()
	if m.Handle(Arrow(ArrowDown), p, d) {
		t.Error("nudge with no joint selected requested a redraw")
	}
	if p.Snapshot() != before {
		t.Error("nudge with no joint selected changed the pose")
	}
}

func TestNudgeClamped(t *testing.T) {
	m, p, d := setup()
	m.Handle(Char('h'), p, d)
	for i := 0; i < 100; i++ {
		m.Handle(Arrow(ArrowUp), p, d)
	}
	if p.HipAngle != pose.HipMax {
		t.Errorf("hip = %v, want %v", p.HipAngle, pose.HipMax)
	}
}

func TestHeading(t *testing.T) {
	m, p, d := setup()
	m.Handle(Char('r'), p, d)
	m.Handle(Char('r'), p, d)
	m.Handle(Char('R'), p, d)
	if p.RootHeading != pose.DefaultHeading+2 {
		t.Errorf("heading = %v", p.RootHeading)
	}
}

func TestAnimationCommands(t *testing.T) {
	m, p, d := setup()
	m.Handle(Char('w'), p, d)
	m.Handle(Char('c'), p, d)
	if p.Walk != pose.Walking || !p.CannonSpinning {
		t.Fatalf("modes = %v", p.Modes())
	}
	m.Handle(Char('C'), p, d)
	m.Handle(Char('W'), p, d)
	if p.Walk != pose.UndoingWalk || p.CannonSpinning {
		t.Errorf("modes = %v", p.Modes())
	}
}

func TestUnboundKey(t *testing.T) {
	m, p, d := setup()
	if m.Lookup(Char('t')) != None {
		t.Error("t should be unbound")
	}
	if m.Handle(Char('t'), p, d) {
		t.Error("unbound key requested a redraw")
	}
}

func TestRebindIsPerMapper(t *testing.T) {
	a, b := NewMapper(), NewMapper()
	want := DefaultBindings[Char('w')]

	a.Bindings[Char('w')] = StopWalk
	delete(a.Bindings, Char('c'))

	if DefaultBindings[Char('w')] != want || b.Lookup(Char('w')) != want {
		t.Errorf("rebinding leaked: default %v other %v", DefaultBindings[Char('w')], b.Lookup(Char('w')))
	}
	if b.Lookup(Char('c')) == None {
		t.Error("delete leaked into another mapper")
	}
}

func TestCommandString(t *testing.T) {
	if StopWalk.String() != "stop-walk" || Command(200).String() != "unknown" {
		t.Error("unexpected command names")
	}
}
