// Package timer tracks user idleness and subprocess watchdogs.
//
// The timer turns the passage of time into events for the supervisor: when
// the session has been idle long enough to start the screensaver, when a
// started screensaver should require a password, when screens should be
// powered down, and when a watchdog scheduled by the locker has elapsed.
package timer

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/lockward/lockward/internal/queue"
)

// Config holds the idle thresholds. A zero Timeout or Blank disables that
// transition; a zero Lock locks as soon as the screensaver starts.
type Config struct {
	Timeout time.Duration
	Lock    time.Duration
	Blank   time.Duration
}

// Timeout is a watchdog request emitted by the locker.
type Timeout interface {
	TimeoutID() uint64
}

// Set schedules a watchdog for ID to fire After from now, replacing any
// previous schedule for the same ID.
type Set struct {
	ID    uint64
	After time.Duration
}

// Cancel removes the watchdog for ID. Cancelling an unknown ID is a no-op.
type Cancel struct {
	ID uint64
}

func (s Set) TimeoutID() uint64    { return s.ID }
func (c Cancel) TimeoutID() uint64 { return c.ID }

// Event is emitted on the Events channel.
type Event interface {
	isEvent()
}

type (
	// Start means the session has been idle for Config.Timeout.
	Start struct{}
	// Lock means the screensaver has been running for Config.Lock.
	Lock struct{}
	// Blank means the session has been idle for Config.Blank.
	Blank struct{}
	// Unblank means activity happened after Blank.
	Unblank struct{}
	// Report means the watchdog for ID elapsed.
	Report struct{ ID uint64 }
)

func (Start) isEvent()   {}
func (Lock) isEvent()    {}
func (Blank) isEvent()   {}
func (Unblank) isEvent() {}
func (Report) isEvent()  {}

type request interface{}

type (
	activityRequest  struct{}
	startedRequest   struct{}
	lockedRequest    struct{}
	stoppedRequest   struct{}
	configureRequest struct{ cfg Config }
	timeoutRequest   struct{ timeout Timeout }
)

// Timer runs the idle and watchdog clock on its own goroutine.
type Timer struct {
	requests *queue.Queue[request]
	events   chan Event
	done     chan struct{}
	tick     time.Duration
	now      func() time.Time
	log      *slog.Logger
}

// Option customizes a Timer.
type Option func(*Timer)

// WithTick overrides the evaluation interval.
func WithTick(d time.Duration) Option {
	return func(t *Timer) { t.tick = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Timer) { t.log = l }
}

// Spawn starts a timer that runs until ctx is cancelled.
func Spawn(ctx context.Context, cfg Config, opts ...Option) *Timer {
	t := &Timer{
		requests: queue.New[request](),
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
		tick:     time.Second,
		now:      time.Now,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With("component", "timer")

	go t.run(ctx, newState(cfg, t.now()))
	return t
}

// Events returns the channel timer events are delivered on.
func (t *Timer) Events() <-chan Event { return t.events }

// Done is closed when the timer goroutine has exited.
func (t *Timer) Done() <-chan struct{} { return t.done }

// Activity resets the idle clock.
func (t *Timer) Activity() { t.requests.Push(activityRequest{}) }

// Started tells the timer the screensaver was started by something other
// than the idle timeout.
func (t *Timer) Started() { t.requests.Push(startedRequest{}) }

// Locked tells the timer the session was locked explicitly.
func (t *Timer) Locked() { t.requests.Push(lockedRequest{}) }

// Stopped tells the timer the session is unlocked again.
func (t *Timer) Stopped() { t.requests.Push(stoppedRequest{}) }

// Configure replaces the idle thresholds.
func (t *Timer) Configure(cfg Config) { t.requests.Push(configureRequest{cfg: cfg}) }

// Schedule applies a watchdog Set or Cancel.
func (t *Timer) Schedule(timeout Timeout) { t.requests.Push(timeoutRequest{timeout: timeout}) }

func (t *Timer) run(ctx context.Context, s *state) {
	defer close(t.done)
	defer t.requests.Close()

	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		var events []Event

		select {
		case <-ctx.Done():
			return

		case req := <-t.requests.Out():
			events = s.apply(req, t.now())

		case <-ticker.C:
			events = s.check(t.now())
		}

		for _, ev := range events {
			t.log.Debug("timer event", "event", ev)
			select {
			case t.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

// state is the timer's clock-driven state. All methods take the current time
// so the transitions can be evaluated deterministically.
type state struct {
	cfg          Config
	lastActivity time.Time
	startedAt    time.Time
	started      bool
	locked       bool
	blanked      bool
	watchdogs    map[uint64]time.Time
}

func newState(cfg Config, now time.Time) *state {
	return &state{
		cfg:          cfg,
		lastActivity: now,
		watchdogs:    make(map[uint64]time.Time),
	}
}

func (s *state) apply(req request, now time.Time) []Event {
	switch r := req.(type) {
	case activityRequest:
		s.lastActivity = now
		if s.blanked {
			s.blanked = false
			return []Event{Unblank{}}
		}

	case startedRequest:
		if !s.started {
			s.started = true
			s.startedAt = now
		}

	case lockedRequest:
		if !s.started {
			s.started = true
			s.startedAt = now
		}
		s.locked = true

	case stoppedRequest:
		s.started = false
		s.locked = false
		s.lastActivity = now

	case configureRequest:
		s.cfg = r.cfg

	case timeoutRequest:
		switch t := r.timeout.(type) {
		case Set:
			s.watchdogs[t.ID] = now.Add(t.After)
		case Cancel:
			delete(s.watchdogs, t.ID)
		}
	}

	return nil
}

func (s *state) check(now time.Time) []Event {
	var events []Event

	idle := now.Sub(s.lastActivity)

	if !s.started && s.cfg.Timeout > 0 && idle >= s.cfg.Timeout {
		s.started = true
		s.startedAt = now
		events = append(events, Start{})
	}

	if s.started && !s.locked && now.Sub(s.startedAt) >= s.cfg.Lock {
		s.locked = true
		events = append(events, Lock{})
	}

	if !s.blanked && s.cfg.Blank > 0 && idle >= s.cfg.Blank {
		s.blanked = true
		events = append(events, Blank{})
	}

	var elapsed []uint64
	for id, deadline := range s.watchdogs {
		if !now.Before(deadline) {
			elapsed = append(elapsed, id)
		}
	}
	slices.Sort(elapsed)
	for _, id := range elapsed {
		delete(s.watchdogs, id)
		events = append(events, Report{ID: id})
	}

	return events
}
