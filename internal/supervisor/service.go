// Package supervisor drives the locker from the idle timer, the desktop
// session and explicit lock requests, and records lock history.
package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/lockward/lockward/internal/auth"
	"github.com/lockward/lockward/internal/config"
	"github.com/lockward/lockward/internal/locker"
	"github.com/lockward/lockward/internal/models"
	"github.com/lockward/lockward/internal/session"
	"github.com/lockward/lockward/internal/timer"
)

// SanitizeInterval is how often the lock windows are re-asserted while the
// screensaver runs.
const SanitizeInterval = 5 * time.Second

// SleepLockTimeout bounds how long a suspend is delayed waiting for the
// screens to be secured. logind stops waiting after InhibitDelayMaxSec,
// five seconds by default.
const SleepLockTimeout = 4 * time.Second

// Locker is the request side of *locker.Locker.
type Locker interface {
	Responses() <-chan locker.Response
	Done() <-chan struct{}
	Err() error
	Sanitize() error
	Timeout(id uint64) error
	Power(on bool) error
	Throttle(value bool) error
	Start() error
	Lock() error
	Auth(ok bool) error
	Stop() error
}

// Authenticator is *auth.Auth.
type Authenticator interface {
	Responses() <-chan auth.Response
	Authenticate(password string) error
}

// Timer is *timer.Timer.
type Timer interface {
	Events() <-chan timer.Event
	Activity()
	Started()
	Locked()
	Stopped()
	Configure(cfg timer.Config)
	Schedule(timeout timer.Timeout)
}

// History is the part of the repository the supervisor writes.
type History interface {
	StartSession(session *models.LockSession) error
	MarkLocked(id uint, at time.Time) error
	EndSession(id uint, at time.Time) error
	RecordAttempt(attempt *models.AuthAttempt) error
	CreateErrorLog(errorLog *models.ErrorLog) error
}

// Logind is *session.Logind.
type Logind interface {
	Events() <-chan session.Event
	SetLockedHint(locked bool) error
	InhibitSleep() error
	ReleaseSleep()
}

// ScreenSaver is *session.ScreenSaver.
type ScreenSaver interface {
	Events() <-chan session.Event
	Inhibited() bool
	SetActive(active bool)
}

// State is the supervisor's view of the lock.
type State int

const (
	Idle State = iota
	Started
	Locked
	Stopping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Started:
		return "started"
	case Locked:
		return "locked"
	case Stopping:
		return "stopping"
	}
	return "unknown"
}

// Deps are the components the supervisor coordinates. Logind, ScreenSaver
// and History may be nil.
type Deps struct {
	Locker      Locker
	Auth        Authenticator
	Timer       Timer
	History     History
	Logind      Logind
	ScreenSaver ScreenSaver
	Screens     int
}

// Service is the supervisor loop.
type Service struct {
	config *config.Config
	deps   Deps
	log    *slog.Logger
	now    func() time.Time

	state   State
	current *models.LockSession

	// secured is set once the locker reports every screen grabbed.
	secured bool
	// relock is a lock trigger queued while a stop is in progress.
	relock string
	// suspending holds the sleep inhibitor until the screens are secured
	// or sleepWait elapses.
	suspending    bool
	sleepDeadline <-chan time.Time
	sleepWait     time.Duration

	lockChan     chan string
	reconfigure  chan *config.Config
	stopChan     chan struct{}
	sanitizeTick time.Duration
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock overrides the time source used for history.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(cfg *config.Config, deps Deps, opts ...Option) *Service {
	s := &Service{
		config:       cfg,
		deps:         deps,
		log:          slog.Default(),
		now:          time.Now,
		lockChan:     make(chan string, 4),
		reconfigure:  make(chan *config.Config, 1),
		stopChan:     make(chan struct{}),
		sanitizeTick: SanitizeInterval,
		sleepWait:    SleepLockTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "supervisor")
	return s
}

// TimerConfig extracts the idle thresholds from cfg.
func TimerConfig(cfg *config.Config) timer.Config {
	return timer.Config{
		Timeout: cfg.TimeoutDuration(),
		Lock:    cfg.LockDuration(),
		Blank:   cfg.BlankDuration(),
	}
}

// RequestLock asks for an immediate lock. It never blocks.
func (s *Service) RequestLock(trigger string) {
	select {
	case s.lockChan <- trigger:
	default:
		s.log.Debug("lock request already pending", "trigger", trigger)
	}
}

// Reconfigure applies cfg from the next loop iteration. Savers and auth
// backends are fixed at startup.
func (s *Service) Reconfigure(cfg *config.Config) {
	select {
	case <-s.reconfigure:
	default:
	}
	s.reconfigure <- cfg
}

// Stop ends Start. It must be called at most once.
func (s *Service) Stop() {
	close(s.stopChan)
}

// Start runs the loop until ctx is cancelled, Stop is called or the locker
// exits.
func (s *Service) Start(ctx context.Context) error {
	s.log.Info("supervisor started",
		"timeout", s.config.TimeoutDuration(),
		"lock", s.config.LockDuration(),
		"blank", s.config.BlankDuration())

	if s.deps.Logind != nil && s.config.Session.LockOnSuspend {
		if err := s.deps.Logind.InhibitSleep(); err != nil {
			s.storeError("logind", err)
		}
	}

	sanitize := time.NewTicker(s.sanitizeTick)
	defer sanitize.Stop()

	var logindEvents, saverEvents <-chan session.Event
	if s.deps.Logind != nil {
		logindEvents = s.deps.Logind.Events()
	}
	if s.deps.ScreenSaver != nil {
		saverEvents = s.deps.ScreenSaver.Events()
	}

	for {
		select {
		case <-ctx.Done():
			s.log.Info("supervisor stopped by context")
			return ctx.Err()

		case <-s.stopChan:
			s.log.Info("supervisor stopped")
			return nil

		case <-s.deps.Locker.Done():
			return errors.Wrap(s.deps.Locker.Err(), "locker exited")

		case resp := <-s.deps.Locker.Responses():
			s.handleLocker(resp)

		case resp := <-s.deps.Auth.Responses():
			s.handleAuth(resp)

		case ev := <-s.deps.Timer.Events():
			s.handleTimer(ev)

		case ev, ok := <-logindEvents:
			if !ok {
				logindEvents = nil
				continue
			}
			s.handleSession(ev)

		case ev, ok := <-saverEvents:
			if !ok {
				saverEvents = nil
				continue
			}
			s.handleSession(ev)

		case trigger := <-s.lockChan:
			s.lockNow(trigger)

		case cfg := <-s.reconfigure:
			s.applyConfig(cfg)

		case <-s.sleepDeadline:
			s.log.Warn("screens not secured before suspend, releasing sleep inhibitor", "waited", s.sleepWait)
			s.releaseSleep()

		case <-sanitize.C:
			if s.state != Idle {
				s.call("sanitize", s.deps.Locker.Sanitize())
			}
		}
	}
}

// State returns the current lock state. It is only meaningful from the
// loop's goroutine or after Start returned.
func (s *Service) State() State { return s.state }

func (s *Service) handleLocker(resp locker.Response) {
	switch r := resp.(type) {
	case locker.TimeoutResponse:
		s.deps.Timer.Schedule(r.Timeout)

	case locker.ActivityResponse:
		s.deps.Timer.Activity()
		if s.state == Started {
			s.stop()
		}

	case locker.PasswordResponse:
		if s.state != Locked {
			// Nothing to unlock; release the locker from checking.
			s.call("auth", s.deps.Locker.Auth(false))
			return
		}
		if err := s.deps.Auth.Authenticate(r.Password); err != nil {
			s.storeError("auth", err)
			s.call("auth", s.deps.Locker.Auth(false))
		}

	case locker.SecuredResponse:
		s.secured = true
		if s.suspending {
			s.releaseSleep()
		}

	case locker.StoppedResponse:
		s.stopped()
	}
}

func (s *Service) handleAuth(resp auth.Response) {
	s.record(resp)

	if s.state != Locked {
		s.log.Debug("ignoring late authentication result", "state", s.state)
		return
	}

	if !resp.Success {
		s.log.Info("authentication failed")
		s.call("auth", s.deps.Locker.Auth(false))
		return
	}

	s.log.Info("authentication succeeded", "method", resp.Method)
	s.call("auth", s.deps.Locker.Auth(true))
	s.stop()
}

func (s *Service) handleTimer(ev timer.Event) {
	switch e := ev.(type) {
	case timer.Start:
		if s.state != Idle {
			return
		}
		if s.deps.ScreenSaver != nil && s.deps.ScreenSaver.Inhibited() {
			s.log.Info("screensaver inhibited, not starting")
			// Restart the idle countdown.
			s.deps.Timer.Stopped()
			return
		}
		s.start(models.TriggerIdle)

	case timer.Lock:
		if s.state == Started {
			s.lock()
		}

	case timer.Blank:
		s.call("power", s.deps.Locker.Power(false))

	case timer.Unblank:
		s.call("power", s.deps.Locker.Power(true))

	case timer.Report:
		s.call("timeout", s.deps.Locker.Timeout(e.ID))
	}
}

func (s *Service) handleSession(ev session.Event) {
	switch e := ev.(type) {
	case session.Lock:
		trigger := models.TriggerDBus
		if e.Source == session.SourceLogind {
			trigger = models.TriggerLogind
		}
		s.lockNow(trigger)

	case session.Unlock:
		if s.state == Started || s.state == Locked {
			s.log.Info("unlock requested by logind")
			s.stop()
		}

	case session.Sleep:
		if !s.config.Session.LockOnSuspend || s.deps.Logind == nil {
			return
		}
		if e.Sleeping {
			s.lockNow(models.TriggerSuspend)
			s.awaitSecured()
			return
		}
		s.suspending, s.sleepDeadline = false, nil
		if err := s.deps.Logind.InhibitSleep(); err != nil {
			s.storeError("logind", err)
		}

	case session.Activity:
		s.deps.Timer.Activity()
		if s.state == Started {
			s.stop()
		}

	case session.SetActive:
		switch {
		case e.Active && s.state == Idle:
			s.start(models.TriggerDBus)
			s.deps.Timer.Started()
		case !e.Active && s.state == Started:
			s.stop()
		}
	}
}

func (s *Service) start(trigger string) {
	if err := s.deps.Locker.Start(); err != nil {
		s.storeError("locker", err)
		return
	}
	s.state = Started
	s.secured = false
	s.log.Info("screensaver started", "trigger", trigger)

	if s.deps.ScreenSaver != nil {
		s.deps.ScreenSaver.SetActive(true)
	}

	s.current = &models.LockSession{
		StartedAt: s.now(),
		Screens:   s.deps.Screens,
		Trigger:   trigger,
	}
	if s.deps.History != nil {
		if err := s.deps.History.StartSession(s.current); err != nil {
			s.storeError("history", err)
		}
	}
}

func (s *Service) lock() {
	if err := s.deps.Locker.Lock(); err != nil {
		s.storeError("locker", err)
		return
	}
	s.state = Locked
	s.log.Info("session locked")

	if s.deps.Logind != nil {
		if err := s.deps.Logind.SetLockedHint(true); err != nil {
			s.storeError("logind", err)
		}
	}
	if s.deps.History != nil && s.current != nil && s.current.ID != 0 {
		if err := s.deps.History.MarkLocked(s.current.ID, s.now()); err != nil {
			s.storeError("history", err)
		}
	}
}

// lockNow starts the screensaver if needed and locks immediately. A
// request arriving while a stop is in progress runs once it completes.
func (s *Service) lockNow(trigger string) {
	switch s.state {
	case Idle:
		s.start(trigger)
		if s.state != Started {
			return
		}
	case Started:
	case Stopping:
		s.log.Info("lock requested while stopping, locking again once stopped", "trigger", trigger)
		s.relock = trigger
		return
	default:
		return
	}
	s.deps.Timer.Locked()
	s.lock()
}

// awaitSecured keeps the sleep inhibitor until the locker reports every
// screen grabbed, bounded by sleepWait.
func (s *Service) awaitSecured() {
	if s.secured && s.state == Locked {
		s.releaseSleep()
		return
	}
	s.suspending = true
	s.sleepDeadline = time.After(s.sleepWait)
}

func (s *Service) releaseSleep() {
	s.suspending, s.sleepDeadline = false, nil
	s.deps.Logind.ReleaseSleep()
}

func (s *Service) stop() {
	if err := s.deps.Locker.Stop(); err != nil {
		s.storeError("locker", err)
		return
	}
	s.state = Stopping
}

func (s *Service) stopped() {
	if s.state == Idle {
		return
	}
	s.state = Idle
	s.secured = false
	s.log.Info("screensaver stopped")
	s.deps.Timer.Stopped()

	if s.deps.ScreenSaver != nil {
		s.deps.ScreenSaver.SetActive(false)
	}
	if s.deps.Logind != nil {
		if err := s.deps.Logind.SetLockedHint(false); err != nil {
			s.storeError("logind", err)
		}
		if s.config.Session.LockOnSuspend {
			if err := s.deps.Logind.InhibitSleep(); err != nil {
				s.storeError("logind", err)
			}
		}
	}
	if s.deps.History != nil && s.current != nil && s.current.ID != 0 {
		if err := s.deps.History.EndSession(s.current.ID, s.now()); err != nil {
			s.storeError("history", err)
		}
	}
	s.current = nil

	if trigger := s.relock; trigger != "" {
		s.relock = ""
		s.lockNow(trigger)
	}
}

func (s *Service) record(resp auth.Response) {
	if s.deps.History == nil {
		return
	}
	attempt := &models.AuthAttempt{
		Timestamp: s.now(),
		Success:   resp.Success,
		Method:    resp.Method,
	}
	if s.current != nil {
		attempt.SessionID = s.current.ID
	}
	if err := s.deps.History.RecordAttempt(attempt); err != nil {
		s.storeError("history", err)
	}
}

func (s *Service) applyConfig(cfg *config.Config) {
	if cfg.Saver.Throttle != s.config.Saver.Throttle {
		s.call("throttle", s.deps.Locker.Throttle(cfg.Saver.Throttle))
	}
	s.config = cfg
	s.deps.Timer.Configure(TimerConfig(cfg))
	s.log.Info("configuration reloaded",
		"timeout", cfg.TimeoutDuration(),
		"lock", cfg.LockDuration(),
		"blank", cfg.BlankDuration())
}

func (s *Service) call(op string, err error) {
	if err != nil {
		s.storeError("locker", errors.Wrap(err, op))
	}
}

func (s *Service) storeError(component string, err error) {
	s.log.Error("supervisor error", "source", component, "error", err)

	if s.deps.History == nil {
		return
	}
	errorLog := &models.ErrorLog{
		Timestamp: s.now(),
		Component: component,
		ErrorMsg:  err.Error(),
	}
	if dbErr := s.deps.History.CreateErrorLog(errorLog); dbErr != nil {
		s.log.Warn("failed to store error in database", "error", dbErr)
	}
}
