// Package engine runs the road clock: a background loop that advances the
// junction once per tick for the lifetime of the session.
package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/anggasct/roadlight/pkg/logging"
	"github.com/anggasct/roadlight/pkg/session"
	"github.com/anggasct/roadlight/pkg/traffic"
)

// DefaultPeriod is the length of one tick
const DefaultPeriod = time.Second

// ErrAlreadyRunning is returned when Run is called a second time
var ErrAlreadyRunning = errors.New("timer engine is already running")

// SessionReader exposes the session state the engine reacts to. IfInState
// runs fn only while the session stays in state.
type SessionReader interface {
	CurrentState() session.State
	IfInState(state session.State, fn func()) bool
}

// Renderer is the display the engine draws the junction status on. Each
// render replaces the previous one.
type Renderer interface {
	ShowSystem(snapshot traffic.Snapshot)
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces the real clock, mainly for tests
func WithClock(c clock.WithTicker) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithPeriod changes the tick length
func WithPeriod(period time.Duration) Option {
	return func(e *Engine) {
		e.period = period
	}
}

// WithLogger sets the logger
func WithLogger(logger logr.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine ticks the junction. Rotation and elapsed time continue in every
// session state; the status is rendered only while the system view is open.
type Engine struct {
	junction *traffic.Junction
	session  SessionReader
	display  Renderer
	clock    clock.WithTicker
	period   time.Duration
	logger   logr.Logger
	running  atomic.Bool
}

// New creates an engine for the junction
func New(junction *traffic.Junction, sessionReader SessionReader, display Renderer, opts ...Option) *Engine {
	e := &Engine{
		junction: junction,
		session:  sessionReader,
		display:  display,
		clock:    clock.RealClock{},
		period:   DefaultPeriod,
		logger:   logr.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run ticks until the session reaches Quit or ctx is done. The quit check
// happens at the top of every tick, so Run returns within one period of the
// quit transition.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	ticker := e.clock.NewTicker(e.period)
	defer ticker.Stop()

	e.logger.V(logging.VERBOSE).Info("Timer engine started", "period", e.period)
	defer e.logger.V(logging.VERBOSE).Info("Timer engine stopped")

	for {
		if e.session.CurrentState() == session.Quit {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		snapshot := e.junction.Tick()
		e.session.IfInState(session.SystemView, func() {
			e.display.ShowSystem(snapshot)
		})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
		}
	}
}
