// Package locker owns the lock windows and screensaver processes.
//
// A single goroutine merges three sources into one per-screen state
// machine: control requests from the supervisor, lifecycle events from the
// screensaver processes and raw display events. Nothing outside that
// goroutine touches window or screensaver state; callers talk to it through
// the request methods on Locker and read results from Responses.
package locker

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"

	"github.com/lockward/lockward/internal/display"
	"github.com/lockward/lockward/internal/queue"
	"github.com/lockward/lockward/internal/saver"
	"github.com/lockward/lockward/internal/timer"
)

var (
	// ErrClosed is returned by request methods once the worker has exited.
	ErrClosed = errors.New("locker is closed")

	// ErrDisplayClosed is reported by Err when the display event stream ends.
	ErrDisplayClosed = errors.New("display connection closed")
)

// Display is the display server connection the locker runs on.
type Display interface {
	Name() string
	Screens() int
	CreateWindow(screen int) (Window, error)
	Observe(window uint32) error
	Sanitize()
	Power(on bool)
	Events() <-chan display.Event
}

// Window is the full-screen lock window of one screen.
type Window interface {
	ID() uint32
	Root() uint32
	Screen() int
	Lock() error
	Unlock() error
	Blank()
	Power(on bool)
	HasKeyboard() bool
	HasPointer() bool
	Resize(width, height uint32)
	Sanitize()
}

// Keyboard resolves key events to symbols and text.
type Keyboard interface {
	OwnsEvent(ev display.Event) bool
	Handle(ev display.Event)
	Symbol(code display.Keycode, state uint16) (display.Keysym, bool)
	String(code display.Keycode, state uint16) (string, bool)
}

// Saver is a running screensaver process.
type Saver interface {
	Take() (<-chan saver.Event, error)
	Config(options map[string]any) error
	Target(display string, screen int, window uint64) error
	Throttle(value bool) error
	Blank(value bool) error
	Resize(width, height uint32) error
	Safety(level saver.Safety) error
	Password(p saver.Password) error
	Pointer(p saver.Pointer) error
	Start() error
	Lock() error
	Stop() error
	Kill()
	WasStarted() bool
	WasStopped() bool
}

// SpawnFunc starts the screensaver called name.
type SpawnFunc func(name string) (Saver, error)

// Config controls which screensavers run and how long they get to answer.
type Config struct {
	// Savers are the screensaver names to pick from. Empty means every screen
	// is blanked without a screensaver.
	Savers []string
	// Options holds the configuration table sent to each screensaver by name.
	Options map[string]map[string]any
	// Timeout is how long a screensaver gets to start or stop before it is
	// killed.
	Timeout time.Duration
	// Throttle starts every screensaver throttled.
	Throttle bool
	// SearchPath lists directories searched for screensaver executables
	// before $PATH.
	SearchPath []string
}

// Response is emitted on the Responses channel.
type Response interface {
	isResponse()
}

// TimeoutResponse asks the caller to schedule or cancel a watchdog. An
// elapsed watchdog must be passed back through Locker.Timeout.
type TimeoutResponse struct {
	Timeout timer.Timeout
}

// ActivityResponse reports user input.
type ActivityResponse struct{}

// PasswordResponse carries a submitted password to be verified.
type PasswordResponse struct {
	Password string
}

// StoppedResponse means every screen has been unlocked.
type StoppedResponse struct{}

// SecuredResponse means every screen is grabbed, either behind a running
// screensaver or blanked.
type SecuredResponse struct{}

func (TimeoutResponse) isResponse()  {}
func (ActivityResponse) isResponse() {}
func (PasswordResponse) isResponse() {}
func (StoppedResponse) isResponse()  {}
func (SecuredResponse) isResponse()  {}

func (PasswordResponse) String() string { return "Password(<redacted>)" }

// LogValue keeps the password out of structured logs.
func (PasswordResponse) LogValue() slog.Value { return slog.StringValue("<redacted>") }

type request interface{}

type (
	sanitizeRequest struct{}
	timeoutRequest  struct{ id uint64 }
	activityRequest struct{}
	powerRequest    struct{ on bool }
	throttleRequest struct{ value bool }
	startRequest    struct{}
	lockRequest     struct{}
	authRequest     struct{ ok bool }
	stopRequest     struct{}
)

// Locker is the handle to the locker goroutine.
type Locker struct {
	requests  *queue.Queue[request]
	responses chan Response
	done      chan struct{}
	w         *worker
}

// Option customizes Spawn.
type Option func(*options)

type options struct {
	spawn  SpawnFunc
	choose func(n int) int
	logger *slog.Logger
}

// WithSpawner replaces the screensaver launcher.
func WithSpawner(fn SpawnFunc) Option {
	return func(o *options) { o.spawn = fn }
}

// WithChooser replaces the random screensaver choice. fn returns an index in
// [0, n).
func WithChooser(fn func(n int) int) Option {
	return func(o *options) { o.choose = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Spawn creates a lock window on every screen and starts the locker
// goroutine. It fails if any window cannot be created. The goroutine runs
// until ctx is cancelled or the display event stream ends.
func Spawn(ctx context.Context, cfg Config, disp Display, kb Keyboard, opts ...Option) (*Locker, error) {
	o := options{
		choose: rand.IntN,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.With("component", "locker")

	if o.spawn == nil {
		o.spawn = defaultSpawner(cfg.SearchPath, log)
	}

	l := &Locker{
		requests:  queue.New[request](),
		responses: make(chan Response, 64),
		done:      make(chan struct{}),
	}

	w, err := newWorker(ctx, cfg, disp, kb, o, l.responses, l.done, log)
	if err != nil {
		l.requests.Close()
		return nil, err
	}
	l.w = w

	go l.run(ctx)

	return l, nil
}

func defaultSpawner(dirs []string, log *slog.Logger) SpawnFunc {
	return func(name string) (Saver, error) {
		s, err := saver.Spawn(name, saver.WithSearchPath(dirs...), saver.WithLogger(log))
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func (l *Locker) run(ctx context.Context) {
	defer close(l.done)
	defer l.requests.Close()
	defer l.w.shutdown()

	events := l.w.disp.Events()

	for {
		select {
		case <-ctx.Done():
			return

		case req, ok := <-l.requests.Out():
			if !ok {
				return
			}
			l.w.handleRequest(req)

		case ev := <-l.w.saverEvents:
			l.w.handleSaver(ev)

		case ev, ok := <-events:
			if !ok {
				l.w.err = ErrDisplayClosed
				return
			}
			l.w.handleDisplay(ev)
		}

		if l.w.err != nil {
			return
		}
	}
}

// Responses returns the channel responses are delivered on.
func (l *Locker) Responses() <-chan Response { return l.responses }

// Done is closed once the locker goroutine has exited.
func (l *Locker) Done() <-chan struct{} { return l.done }

// Err returns why the locker goroutine exited. It is only meaningful after
// Done is closed.
func (l *Locker) Err() error {
	select {
	case <-l.done:
		return l.w.err
	default:
		return nil
	}
}

func (l *Locker) send(req request) error {
	if !l.requests.Push(req) {
		return errors.Wrapf(ErrClosed, "failed to send %s", requestName(req))
	}
	return nil
}

// Sanitize re-checks input ownership on every screen.
func (l *Locker) Sanitize() error { return l.send(sanitizeRequest{}) }

// Timeout reports that the watchdog for a screen elapsed.
func (l *Locker) Timeout(id uint64) error { return l.send(timeoutRequest{id: id}) }

// Activity asks the locker to echo an ActivityResponse.
func (l *Locker) Activity() error { return l.send(activityRequest{}) }

// Power turns the screens on or off.
func (l *Locker) Power(on bool) error { return l.send(powerRequest{on: on}) }

// Throttle throttles or unthrottles every running screensaver.
func (l *Locker) Throttle(value bool) error { return l.send(throttleRequest{value: value}) }

// Start brings up the screensaver on every idle screen.
func (l *Locker) Start() error { return l.send(startRequest{}) }

// Lock tells running screensavers that a password is now required.
func (l *Locker) Lock() error { return l.send(lockRequest{}) }

// Auth delivers the result of the last submitted password.
func (l *Locker) Auth(ok bool) error { return l.send(authRequest{ok: ok}) }

// Stop stops every screensaver and unlocks the screens.
func (l *Locker) Stop() error { return l.send(stopRequest{}) }

func requestName(req request) string {
	switch r := req.(type) {
	case sanitizeRequest:
		return "sanitize"
	case timeoutRequest:
		return fmt.Sprintf("timeout(%d)", r.id)
	case activityRequest:
		return "activity"
	case powerRequest:
		return fmt.Sprintf("power(%t)", r.on)
	case throttleRequest:
		return fmt.Sprintf("throttle(%t)", r.value)
	case startRequest:
		return "start"
	case lockRequest:
		return "lock"
	case authRequest:
		return fmt.Sprintf("auth(%t)", r.ok)
	case stopRequest:
		return "stop"
	default:
		return fmt.Sprintf("%T", req)
	}
}
