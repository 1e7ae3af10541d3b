// Package controller drives the operator session: the startup prompts, the
// menu loop and the system view, with the timer engine running alongside.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"

	"github.com/anggasct/roadlight/pkg/engine"
	"github.com/anggasct/roadlight/pkg/logging"
	"github.com/anggasct/roadlight/pkg/menu"
	"github.com/anggasct/roadlight/pkg/session"
	"github.com/anggasct/roadlight/pkg/traffic"
)

const (
	roadsPrompt    = "Input the number of roads: "
	intervalPrompt = "Input the interval: "
)

// ErrAlreadyRunning is returned when Run is called a second time
var ErrAlreadyRunning = errors.New("controller is already running")

// InputProvider reads operator input
type InputProvider interface {
	PositiveInt(prompt string) (int, error)
	RoadName() (string, error)
	MenuOption() (menu.Option, error)
	WaitContinue() error
	Acknowledge() error
}

// DisplaySink is the screen the controller and the engine write to
type DisplaySink interface {
	Clear()
	Welcome()
	Menu()
	Message(format string, args ...any)
	ShowSystem(snapshot traffic.Snapshot)
}

// Option configures a Controller
type Option func(*Controller)

// WithRoads presets the queue capacity; zero prompts the operator
func WithRoads(roads int) Option {
	return func(c *Controller) {
		c.roads = roads
	}
}

// WithInterval presets the interval; zero prompts the operator
func WithInterval(interval int) Option {
	return func(c *Controller) {
		c.interval = interval
	}
}

// WithClock sets the clock of the timer engine
func WithClock(clk clock.WithTicker) Option {
	return func(c *Controller) {
		c.clock = clk
	}
}

// WithPeriod sets the tick length of the timer engine
func WithPeriod(period time.Duration) Option {
	return func(c *Controller) {
		c.period = period
	}
}

// WithLogger sets the logger
func WithLogger(logger logr.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithJunctionObserver attaches an observer to the junction once it is built
func WithJunctionObserver(observer traffic.Observer) Option {
	return func(c *Controller) {
		c.junctionObservers = append(c.junctionObservers, observer)
	}
}

// WithSessionObserver attaches an observer to the session machine
func WithSessionObserver(observer session.Observer) Option {
	return func(c *Controller) {
		c.sessionObservers = append(c.sessionObservers, observer)
	}
}

// Controller runs one operator session
type Controller struct {
	input   InputProvider
	display DisplaySink

	roads             int
	interval          int
	clock             clock.WithTicker
	period            time.Duration
	logger            logr.Logger
	junctionObservers []traffic.Observer
	sessionObservers  []session.Observer

	junction *traffic.Junction
	session  *session.Machine
	running  atomic.Bool
}

// New creates a controller reading from input and drawing on display
func New(input InputProvider, display DisplaySink, opts ...Option) *Controller {
	c := &Controller{
		input:   input,
		display: display,
		clock:   clock.RealClock{},
		period:  engine.DefaultPeriod,
		logger:  logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddSessionObserver attaches an observer to the session machine created by
// Run. It has no effect once Run has started.
func (c *Controller) AddSessionObserver(observer session.Observer) {
	c.sessionObservers = append(c.sessionObservers, observer)
}

// Junction returns the junction, nil before startup completed
func (c *Controller) Junction() *traffic.Junction {
	return c.junction
}

// Session returns the session machine, nil before startup completed
func (c *Controller) Session() *session.Machine {
	return c.session
}

// Run asks for the junction configuration, starts the timer engine and
// serves the menu until the operator quits. End of input counts as quitting
// once the junction is configured. Run returns after the engine stopped.
func (c *Controller) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	c.display.Welcome()
	capacity, err := c.number(c.roads, roadsPrompt)
	if err != nil {
		return fmt.Errorf("reading number of roads: %w", err)
	}
	interval, err := c.number(c.interval, intervalPrompt)
	if err != nil {
		return fmt.Errorf("reading interval: %w", err)
	}

	junctionOpts := make([]traffic.Option, 0, len(c.junctionObservers))
	for _, observer := range c.junctionObservers {
		junctionOpts = append(junctionOpts, traffic.WithObserver(observer))
	}
	c.junction, err = traffic.NewJunction(capacity, interval, junctionOpts...)
	if err != nil {
		return err
	}

	definition, err := c.Definition()
	if err != nil {
		return err
	}
	c.session = definition.CreateInstance()
	for _, observer := range c.sessionObservers {
		c.session.AddObserver(observer)
	}
	if err := c.session.Start(); err != nil {
		return err
	}
	c.logger.Info("Junction configured", "roads", capacity, "interval", interval)
	c.display.Clear()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timer := engine.New(c.junction, c.session, c.display,
		engine.WithClock(c.clock),
		engine.WithPeriod(c.period),
		engine.WithLogger(c.logger.WithName("engine")),
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return timer.Run(gctx)
	})

	opErr := c.fire(session.EventInitialize, nil)
	if opErr == nil {
		opErr = c.operate(gctx)
	}
	if opErr != nil {
		cancel()
	}
	waitErr := g.Wait()
	if opErr != nil {
		return opErr
	}
	return waitErr
}

func (c *Controller) number(preset int, prompt string) (int, error) {
	if preset > 0 {
		return preset, nil
	}
	return c.input.PositiveInt(prompt)
}

// operate is the operator loop. It blocks on input and cannot be interrupted
// while a read is pending.
func (c *Controller) operate(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch state := c.session.CurrentState(); state {
		case session.Menu:
			if err := c.serveMenu(); err != nil {
				return c.endOfInput(err)
			}
		case session.SystemView:
			if err := c.input.WaitContinue(); err != nil {
				return c.endOfInput(err)
			}
			if err := c.fire(session.EventContinue, nil); err != nil {
				return err
			}
		case session.Quit:
			return nil
		default:
			return session.NewMachineError(session.ErrCodeInvalidState, "operate",
				fmt.Sprintf("unexpected session state '%s'", state))
		}
	}
}

func (c *Controller) serveMenu() error {
	option, err := c.input.MenuOption()
	if err != nil {
		return err
	}
	c.logger.V(logging.DEBUG).Info("Menu option selected", "option", option.Label())

	switch option {
	case menu.Add:
		name, err := c.input.RoadName()
		if err != nil {
			return err
		}
		if err := c.fire(session.EventAddRoad, name); err != nil {
			return err
		}
		return c.acknowledge()
	case menu.Delete:
		if err := c.fire(session.EventDeleteRoad, nil); err != nil {
			return err
		}
		return c.acknowledge()
	case menu.OpenSystem:
		return c.fire(session.EventOpenSystem, nil)
	case menu.Quit:
		return c.fire(session.EventQuit, nil)
	}
	return nil
}

func (c *Controller) acknowledge() error {
	if err := c.input.Acknowledge(); err != nil {
		return err
	}
	c.display.Clear()
	return nil
}

// endOfInput turns io.EOF into an orderly quit from wherever the session is
func (c *Controller) endOfInput(err error) error {
	if !errors.Is(err, io.EOF) {
		return err
	}
	c.logger.V(logging.VERBOSE).Info("End of input, quitting", "state", c.session.CurrentState())

	if c.session.IsInState(session.SystemView) {
		if err := c.fire(session.EventContinue, nil); err != nil {
			return err
		}
	}
	if c.session.IsInState(session.Menu) {
		return c.fire(session.EventQuit, nil)
	}
	return nil
}

func (c *Controller) fire(event string, data any) error {
	result := c.session.HandleEvent(event, data)
	if result.Error != nil {
		c.logger.Error(result.Error, "Session event failed", "event", event, "state", result.CurrentState)
		return result.Error
	}
	return nil
}
