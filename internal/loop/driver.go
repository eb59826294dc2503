// Package loop implements the frame loop driver: it advances a simulation at
// a fixed tick rate, calling update and then render once per tick until it is
// stopped, cancelled or a callback fails.
package loop

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

var (
	// ErrRunning is returned by Run when the driver is already running.
	ErrRunning = errors.New("loop: already running")
	// ErrPanic wraps a panic recovered from update or render.
	ErrPanic = errors.New("loop: callback panicked")
)

// DefaultMaxDelta caps the delta of a single frame after a stall.
const DefaultMaxDelta = 250 * time.Millisecond

// UpdateFunc advances the simulation by one frame.
type UpdateFunc func(core.Frame) error

// RenderFunc draws the state produced by the last update.
type RenderFunc func(core.Frame) error

// InputSource supplies the input snapshot taken at the start of each tick.
type InputSource interface {
	Snapshot() core.InputFrame
}

// Ticker delivers tick timestamps.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a ticker firing every interval.
type TickerFunc func(interval time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(interval time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(interval)}
}

// Option configures a Driver.
type Option func(*Driver)

// WithTicker replaces the wall-clock ticker.
func WithTicker(fn TickerFunc) Option {
	return func(d *Driver) { d.newTicker = fn }
}

// WithMaxDelta sets the largest delta a frame may report.
func WithMaxDelta(limit time.Duration) Option {
	return func(d *Driver) { d.maxDelta = limit }
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// Driver runs the frame loop.
//
// Stop is cooperative: the flag is checked at the top of every tick, so a
// frame that is already executing completes its update and render, and no
// later update runs.
type Driver struct {
	interval  time.Duration
	input     InputSource
	newTicker TickerFunc
	maxDelta  time.Duration
	logger    *log.Logger

	running atomic.Bool
	stopped atomic.Bool
	wake    chan struct{}
	frames  atomic.Uint64
}

// New creates a driver ticking tickRate times per second.
// A nil input source yields empty input frames.
func New(tickRate int, input InputSource, opts ...Option) *Driver {
	if tickRate <= 0 {
		tickRate = core.ReferenceFPS
	}
	d := &Driver{
		interval:  time.Second / time.Duration(tickRate),
		input:     input,
		newTicker: newTimeTicker,
		maxDelta:  DefaultMaxDelta,
		logger:    log.Default(),
		wake:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Interval returns the nominal time between ticks.
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Running reports whether Run is executing.
func (d *Driver) Running() bool {
	return d.running.Load()
}

// Frames returns the number of frames started by the current or last run.
func (d *Driver) Frames() uint64 {
	return d.frames.Load()
}

// Stop asks the loop to end before the next frame. It is safe to call from
// any goroutine, including from inside update or render.
func (d *Driver) Stop() {
	d.stopped.Store(true)
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Run drives update and render until Stop, context cancellation or a
// callback error. It returns nil on a requested stop. Render is never called
// before the first update or for a frame whose update failed.
func (d *Driver) Run(ctx context.Context, update UpdateFunc, render RenderFunc) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer func() {
		d.stopped.Store(false)
		d.running.Store(false)
	}()

	d.frames.Store(0)
	ticker := d.newTicker(d.interval)
	defer ticker.Stop()

	d.logger.Debug("frame loop started", "interval", d.interval)

	var (
		last    time.Time
		elapsed float64
	)
	for {
		if d.stopped.Load() || ctx.Err() != nil {
			d.logger.Debug("frame loop stopped", "frames", d.frames.Load())
			return nil
		}

		var now time.Time
		select {
		case <-ctx.Done():
			continue
		case <-d.wake:
			continue
		case now = <-ticker.C():
		}
		if d.stopped.Load() {
			continue
		}

		delta := d.interval
		if !last.IsZero() {
			delta = now.Sub(last)
			if delta < 0 {
				delta = 0
			}
			if d.maxDelta > 0 && delta > d.maxDelta {
				delta = d.maxDelta
			}
		}
		last = now
		elapsed += delta.Seconds()

		frame := core.Frame{
			Index:   d.frames.Add(1),
			Time:    now,
			Delta:   delta.Seconds(),
			Elapsed: elapsed,
			Input:   d.snapshot(),
		}

		if err := guard(update, frame); err != nil {
			return fmt.Errorf("loop: update frame %d: %w", frame.Index, err)
		}
		if render != nil {
			if err := guard(render, frame); err != nil {
				return fmt.Errorf("loop: render frame %d: %w", frame.Index, err)
			}
		}
	}
}

func (d *Driver) snapshot() core.InputFrame {
	if d.input == nil {
		return core.NewInputFrame()
	}
	return d.input.Snapshot()
}

// guard calls fn and turns a panic into an error.
func guard(fn func(core.Frame) error, f core.Frame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn(f)
}
