package scenario

import (
	"fmt"

	"robot3d/internal/animation"
	"robot3d/internal/input"
	"robot3d/internal/pose"
)

// Frame is a captured pose.
type Frame struct {
	Index int        `json:"index"`
	Tick  uint64     `json:"tick"`
	Label string     `json:"label,omitempty"`
	Pose  pose.State `json:"pose"`
}

// Options tune a run.
type Options struct {
	// CaptureEvery records every Nth redrawn tick while recording is on.
	CaptureEvery int
	// Mapper defaults to input.NewMapper().
	Mapper *input.Mapper
	// Pose defaults to pose.New().
	Pose *pose.State
}

// Result is the outcome of a run.
type Result struct {
	Frames []Frame
	// Elapsed counts timer intervals, Ticks counts intervals where the
	// driver was scheduled.
	Elapsed int
	Ticks   uint64
	Final   pose.State
}

// Run plays s against a fresh driver. The timer only fires while some
// animation mode is active, matching an interactive host.
func Run(s *Script, opts Options) Result {
	p := opts.Pose
	if p == nil {
		p = pose.New()
	}
	m := opts.Mapper
	if m == nil {
		m = input.NewMapper()
	}
	every := opts.CaptureEvery
	if every < 1 {
		every = 1
	}

	d := animation.New(p)
	var res Result
	recording := false
	redraws := 0

	capture := func(label string) {
		res.Frames = append(res.Frames, Frame{
			Index: len(res.Frames),
			Tick:  d.Ticks(),
			Label: label,
			Pose:  p.Snapshot(),
		})
	}

	for _, st := range s.Steps {
		switch st.Op {
		case OpKey:
			m.Handle(st.Key, p, d)
		case OpTick:
			for i := 0; i < st.Ticks; i++ {
				res.Elapsed++
				if !d.Active() {
					continue
				}
				if d.Tick().Redraw && recording {
					redraws++
					if redraws%every == 0 {
						capture(fmt.Sprintf("tick-%d", d.Ticks()))
					}
				}
			}
		case OpCapture:
			capture(st.Label)
		case OpRecord:
			recording = st.On
		}
	}

	res.Ticks = d.Ticks()
	res.Final = p.Snapshot()
	return res
}
