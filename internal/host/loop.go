// Package host runs the interactive loop shared by the window and headless
// hosts: key presses and remote commands are applied, the animation driver is
// ticked, and pose telemetry is published.
package host

import (
	"log/slog"
	"sync"

	"robot3d/internal/animation"
	"robot3d/internal/input"
	"robot3d/internal/pose"
	"robot3d/internal/remote"
)

// KeySource supplies queued key presses from outside the loop goroutine.
type KeySource interface {
	Drain(fn func(remote.KeyEvent)) int
}

// Options configures a Loop.
type Options struct {
	Pose   *pose.State
	Mapper *input.Mapper
	Remote KeySource
	// Telemetry sinks receive a snapshot every PublishEvery steps. Each
	// sink is fed from its own goroutine so a slow sink never stalls Step.
	Telemetry    []remote.Telemetry
	PublishEvery int
	Logger       *slog.Logger
}

// telemetryBuffer is how many snapshots may wait for a busy sink before
// newer ones are dropped.
const telemetryBuffer = 8

type sink struct {
	out   remote.Telemetry
	snaps chan pose.State
}

// Loop owns the pose. All mutation happens inside Step, on one goroutine.
type Loop struct {
	pose      *pose.State
	driver    *animation.Driver
	mapper    *input.Mapper
	remote    KeySource
	sinks     []sink
	every     int
	logger    *slog.Logger
	wg        sync.WaitGroup
	closed    bool

	steps uint64
	dirty bool
}

// New returns a loop whose first Step reports a redraw.
func New(opts Options) *Loop {
	p := opts.Pose
	if p == nil {
		p = pose.New()
	}
	m := opts.Mapper
	if m == nil {
		m = input.NewMapper()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	every := opts.PublishEvery
	if every < 1 {
		every = 1
	}
	l := &Loop{
		pose:   p,
		driver: animation.New(p),
		mapper: m,
		remote: opts.Remote,
		every:  every,
		logger: logger,
		dirty:  true,
	}
	for _, t := range opts.Telemetry {
		s := sink{out: t, snaps: make(chan pose.State, telemetryBuffer)}
		l.sinks = append(l.sinks, s)
		l.wg.Add(1)
		go l.deliver(s)
	}
	return l
}

// Close stops telemetry delivery after the queued snapshots are handed to
// their sinks. Steps after Close publish nothing.
func (l *Loop) Close() {
	if l.closed {
		return
	}
	l.closed = true
	for _, s := range l.sinks {
		close(s.snaps)
	}
	l.wg.Wait()
}

// Pose returns the live pose. Callers must not use it concurrently with Step.
func (l *Loop) Pose() *pose.State { return l.pose }

// Driver returns the animation driver.
func (l *Loop) Driver() *animation.Driver { return l.driver }

// Steps returns how many times Step has run.
func (l *Loop) Steps() uint64 { return l.steps }

// Step runs one timer interval: local keys, then remote keys, then one
// animation tick if any mode is active. It reports whether the frame is
// stale.
func (l *Loop) Step(keys []input.Key) bool {
	l.steps++

	for _, k := range keys {
		l.press(k, "local")
	}
	if l.remote != nil {
		l.remote.Drain(func(ev remote.KeyEvent) {
			l.press(ev.Key, ev.ClientID)
		})
	}

	if l.driver.Active() && l.driver.Tick().Redraw {
		l.dirty = true
	}

	if len(l.sinks) > 0 && !l.closed && l.steps%uint64(l.every) == 0 {
		l.publish()
	}
	return l.dirty
}

// Dirty reports whether the pose changed since the last MarkDrawn.
func (l *Loop) Dirty() bool { return l.dirty }

// MarkDrawn records that the current pose has been rendered.
func (l *Loop) MarkDrawn() { l.dirty = false }

func (l *Loop) press(k input.Key, source string) {
	cmd := l.mapper.Lookup(k)
	if cmd == input.None {
		return
	}
	if input.Apply(cmd, l.pose, l.driver) {
		l.dirty = true
	}
	l.logger.Debug("key", "key", k.String(), "command", cmd.String(), "source", source)
}

// publish queues a snapshot for every sink without blocking.
func (l *Loop) publish() {
	snap := l.pose.Snapshot()
	for _, s := range l.sinks {
		select {
		case s.snaps <- snap:
		default:
			l.logger.Debug("telemetry sink busy, dropping snapshot", "step", l.steps)
		}
	}
}

func (l *Loop) deliver(s sink) {
	defer l.wg.Done()
	for snap := range s.snaps {
		if err := s.out.Publish(snap); err != nil {
			l.logger.Warn("telemetry publish failed", "error", err)
		}
	}
}
