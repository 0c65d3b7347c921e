// Package scenario drives the robot headlessly from a script of key presses,
// timer ticks and frame captures.
//
// Script syntax, one command per line, '#' starts a comment:
//
//	key w              press a key (see input.ParseKey)
//	tick 45            let 45 timer intervals elapse
//	wait 450ms         same, expressed as a duration
//	capture "label"    capture the current pose
//	record on|off      capture after every redrawn tick
package scenario

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"robot3d/internal/input"
)

// Op is a script command.
type Op uint8

const (
	OpKey Op = iota + 1
	OpTick
	OpCapture
	OpRecord
)

func (o Op) String() string {
	switch o {
	case OpKey:
		return "key"
	case OpTick:
		return "tick"
	case OpCapture:
		return "capture"
	case OpRecord:
		return "record"
	}
	return "unknown"
}

// Step is one parsed script line.
type Step struct {
	Line  int
	Op    Op
	Key   input.Key
	Ticks int
	Label string
	On    bool
}

// Script is a parsed scenario.
type Script struct {
	Steps []Step
}

// Parse reads a script. interval converts wait durations into ticks.
func Parse(r io.Reader, interval time.Duration) (*Script, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("scenario: invalid tick interval %v", interval)
	}

	var s Script
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields, err := shlex.Split(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("scenario: line %d: %w", line, err)
		}
		if len(fields) == 0 {
			continue
		}
		st, err := parseStep(fields, interval)
		if err != nil {
			return nil, fmt.Errorf("scenario: line %d: %w", line, err)
		}
		st.Line = line
		s.Steps = append(s.Steps, st)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scenario: read: %w", err)
	}
	return &s, nil
}

// ParseString is Parse over an in-memory script.
func ParseString(src string, interval time.Duration) (*Script, error) {
	return Parse(strings.NewReader(src), interval)
}

func parseStep(f []string, interval time.Duration) (Step, error) {
	args := f[1:]
	switch strings.ToLower(f[0]) {
	case "key", "press":
		if len(args) != 1 {
			return Step{}, fmt.Errorf("key takes one argument")
		}
		k, err := input.ParseKey(args[0])
		if err != nil {
			return Step{}, err
		}
		return Step{Op: OpKey, Key: k}, nil

	case "tick":
		n := 1
		if len(args) > 1 {
			return Step{}, fmt.Errorf("tick takes at most one argument")
		}
		if len(args) == 1 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 0 {
				return Step{}, fmt.Errorf("bad tick count %q", args[0])
			}
			n = v
		}
		return Step{Op: OpTick, Ticks: n}, nil

	case "wait":
		if len(args) != 1 {
			return Step{}, fmt.Errorf("wait takes one duration")
		}
		d, err := time.ParseDuration(args[0])
		if err != nil || d < 0 {
			return Step{}, fmt.Errorf("bad duration %q", args[0])
		}
		return Step{Op: OpTick, Ticks: int(d / interval)}, nil

	case "capture", "frame":
		if len(args) > 1 {
			return Step{}, fmt.Errorf("capture takes at most one label")
		}
		st := Step{Op: OpCapture}
		if len(args) == 1 {
			st.Label = args[0]
		}
		return st, nil

	case "record":
		if len(args) != 1 {
			return Step{}, fmt.Errorf("record takes on or off")
		}
		switch strings.ToLower(args[0]) {
		case "on":
			return Step{Op: OpRecord, On: true}, nil
		case "off":
			return Step{Op: OpRecord}, nil
		}
		return Step{}, fmt.Errorf("record takes on or off, got %q", args[0])
	}
	return Step{}, fmt.Errorf("unknown command %q", f[0])
}
