// Package input maps key events to pose edits and animation commands.
package input

import (
	"fmt"
	"maps"
	"strings"

	"robot3d/internal/animation"
	"robot3d/internal/pose"
)

// NudgeStep is the angle change per key press, in degrees.
const NudgeStep = 2.0

// Special identifies a non-character key.
type Special uint8

const (
	NoSpecial Special = iota
	ArrowUp
	ArrowDown
	ArrowLeft
	ArrowRight
)

// Key is a character key (Rune) or a special key.
type Key struct {
	Rune    rune
	Special Special
}

// Char returns the key for character r.
func Char(r rune) Key { return Key{Rune: r} }

// Arrow returns the key for a special key.
func Arrow(s Special) Key { return Key{Special: s} }

var specialNames = map[Special]string{
	ArrowUp:    "up",
	ArrowDown:  "down",
	ArrowLeft:  "left",
	ArrowRight: "right",
}

func (k Key) String() string {
	if name, ok := specialNames[k.Special]; ok {
		return name
	}
	return string(k.Rune)
}

// ParseKey parses "up", "down", "left", "right" or a single character.
func ParseKey(s string) (Key, error) {
	for sp, name := range specialNames {
		if strings.EqualFold(s, name) {
			return Arrow(sp), nil
		}
	}
	r := []rune(s)
	if len(r) != 1 {
		return Key{}, fmt.Errorf("input: unknown key %q", s)
	}
	return Char(r[0]), nil
}

// Command is an action a key triggers.
type Command uint8

const (
	None Command = iota
	SelectKnee
	SelectHip
	SelectBody
	NudgeUp
	NudgeDown
	HeadingUp
	HeadingDown
	StartCannon
	StopCannon
	StartWalk
	StopWalk
)

var commandNames = [...]string{
	None:        "none",
	SelectKnee:  "select-knee",
	SelectHip:   "select-hip",
	SelectBody:  "select-body",
	NudgeUp:     "nudge-up",
	NudgeDown:   "nudge-down",
	HeadingUp:   "heading-up",
	HeadingDown: "heading-down",
	StartCannon: "start-cannon",
	StopCannon:  "stop-cannon",
	StartWalk:   "start-walk",
	StopWalk:    "stop-walk",
}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return "unknown"
}

// DefaultBindings is the standard keyboard layout.
var DefaultBindings = map[Key]Command{
	Char('k'):         SelectKnee,
	Char('h'):         SelectHip,
	Char('b'):         SelectBody,
	Arrow(ArrowUp):    NudgeUp,
	Arrow(ArrowRight): NudgeUp,
	Arrow(ArrowDown):  NudgeDown,
	Arrow(ArrowLeft):  NudgeDown,
	Char('r'):         HeadingUp,
	Char('R'):         HeadingDown,
	Char('c'):         StartCannon,
	Char('C'):         StopCannon,
	Char('w'):         StartWalk,
	Char('W'):         StopWalk,
}

// Mapper routes keys to commands through a binding table.
type Mapper struct {
	Bindings map[Key]Command
}

// NewMapper returns a mapper with its own copy of DefaultBindings.
func NewMapper() *Mapper {
	return &Mapper{Bindings: maps.Clone(DefaultBindings)}
}

// Lookup returns the command bound to k, or None.
func (m *Mapper) Lookup(k Key) Command {
	return m.Bindings[k]
}

// Handle looks up k and applies its command. It reports whether a redraw is
// needed.
func (m *Mapper) Handle(k Key, p *pose.State, d *animation.Driver) bool {
	return Apply(m.Lookup(k), p, d)
}

// Apply executes cmd against the pose and driver and reports whether a
// redraw is needed.
func Apply(cmd Command, p *pose.State, d *animation.Driver) bool {
	switch cmd {
	case SelectKnee:
		p.Select(pose.JointKnee)
	case SelectHip:
		p.Select(pose.JointHip)
	case SelectBody:
		p.Select(pose.JointBody)
	case NudgeUp:
		return p.Nudge(NudgeStep)
	case NudgeDown:
		return p.Nudge(-NudgeStep)
	case HeadingUp:
		p.TurnHeading(NudgeStep)
	case HeadingDown:
		p.TurnHeading(-NudgeStep)
	case StartCannon:
		d.StartCannon()
	case StopCannon:
		d.StopCannon()
	case StartWalk:
		d.StartWalk()
	case StopWalk:
		d.StopWalk()
	default:
		return false
	}
	return true
}
