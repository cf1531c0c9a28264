// Package auth verifies submitted passwords against the configured methods.
//
// Requests are served one at a time, in order, by a dedicated goroutine.
// The methods are tried in order and the first one that accepts the
// password wins. With no methods configured every password is accepted;
// this is deliberate and is logged on every attempt.
package auth

import (
	"context"
	"log/slog"
	"os/user"

	"github.com/pkg/errors"

	"github.com/lockward/lockward/internal/queue"
)

var (
	// ErrClosed is returned by Authenticate once the worker has exited.
	ErrClosed = errors.New("auth is closed")

	// ErrUnknownUser is returned by Spawn when the session user cannot be
	// resolved.
	ErrUnknownUser = errors.New("unknown session user")
)

// Method is one way of verifying a password. Authenticate reports whether
// password is valid for user; an error means the method could not decide.
type Method interface {
	Name() string
	Authenticate(user, password string) (bool, error)
}

// Response is the outcome of one Authenticate request.
type Response struct {
	Success bool
	// Method names the method that accepted the password. It is empty on
	// failure and when no methods are configured.
	Method string
}

// Auth is the handle to the authentication goroutine.
type Auth struct {
	user      string
	methods   []Method
	requests  *queue.Queue[string]
	responses chan Response
	done      chan struct{}
	log       *slog.Logger
}

// Option customizes Spawn.
type Option func(*Auth)

// WithUser overrides the session user.
func WithUser(name string) Option {
	return func(a *Auth) { a.user = name }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Auth) { a.log = l }
}

// Spawn starts the authentication goroutine. The session user is resolved
// once, here.
func Spawn(ctx context.Context, methods []Method, opts ...Option) (*Auth, error) {
	a := &Auth{
		methods:   methods,
		responses: make(chan Response, 8),
		done:      make(chan struct{}),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With("component", "auth")

	if a.user == "" {
		u, err := user.Current()
		if err != nil {
			return nil, errors.Wrap(ErrUnknownUser, err.Error())
		}
		a.user = u.Username
	}
	if a.user == "" {
		return nil, ErrUnknownUser
	}

	if len(methods) == 0 {
		a.log.Warn("no authentication methods configured, every password will be accepted")
	}

	a.requests = queue.New[string]()
	go a.run(ctx)

	return a, nil
}

// User returns the session user passwords are checked for.
func (a *Auth) User() string { return a.user }

// Responses returns the channel results are delivered on, one per request
// and in request order.
func (a *Auth) Responses() <-chan Response { return a.responses }

// Done is closed once the goroutine has exited.
func (a *Auth) Done() <-chan struct{} { return a.done }

// Authenticate queues password for verification.
func (a *Auth) Authenticate(password string) error {
	if !a.requests.Push(password) {
		return ErrClosed
	}
	return nil
}

func (a *Auth) run(ctx context.Context) {
	defer close(a.done)
	defer a.requests.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case password, ok := <-a.requests.Out():
			if !ok {
				return
			}

			resp := a.check(password)

			select {
			case a.responses <- resp:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (a *Auth) check(password string) Response {
	if len(a.methods) == 0 {
		a.log.Warn("no authentication method, accepting password")
		return Response{Success: true}
	}

	for _, m := range a.methods {
		ok, err := a.try(m, password)
		if err != nil {
			a.log.Error("authentication method failed", "method", m.Name(), "error", err)
			continue
		}
		if ok {
			a.log.Info("authenticated", "method", m.Name())
			return Response{Success: true, Method: m.Name()}
		}
		a.log.Debug("password rejected", "method", m.Name())
	}

	a.log.Info("authentication failed", "methods", len(a.methods))
	return Response{}
}

// try runs one method, turning a panicking backend into an error.
func (a *Auth) try(m Method, password string) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, errors.Errorf("panic: %v", r)
		}
	}()
	return m.Authenticate(a.user, password)
}
