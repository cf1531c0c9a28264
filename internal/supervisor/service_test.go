package supervisor

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockward/lockward/internal/auth"
	"github.com/lockward/lockward/internal/config"
	"github.com/lockward/lockward/internal/locker"
	"github.com/lockward/lockward/internal/models"
	"github.com/lockward/lockward/internal/session"
	"github.com/lockward/lockward/internal/timer"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := r.calls
	r.calls = nil
	return calls
}

type fakeLocker struct {
	recorder
	responses chan locker.Response
	done      chan struct{}
	err       error
	failStart bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{responses: make(chan locker.Response, 8), done: make(chan struct{})}
}

func (f *fakeLocker) Responses() <-chan locker.Response { return f.responses }
func (f *fakeLocker) Done() <-chan struct{}             { return f.done }
func (f *fakeLocker) Err() error                        { return f.err }
func (f *fakeLocker) Sanitize() error                   { f.add("sanitize"); return nil }
func (f *fakeLocker) Timeout(id uint64) error           { f.add("timeout"); return nil }
func (f *fakeLocker) Throttle(v bool) error             { f.add("throttle"); return nil }
func (f *fakeLocker) Lock() error                       { f.add("lock"); return nil }
func (f *fakeLocker) Stop() error                       { f.add("stop"); return nil }

func (f *fakeLocker) Power(on bool) error {
	if on {
		f.add("power:on")
	} else {
		f.add("power:off")
	}
	return nil
}

func (f *fakeLocker) Start() error {
	f.add("start")
	if f.failStart {
		return locker.ErrClosed
	}
	return nil
}

func (f *fakeLocker) Auth(ok bool) error {
	if ok {
		f.add("auth:ok")
	} else {
		f.add("auth:fail")
	}
	return nil
}

type fakeAuth struct {
	responses chan auth.Response
	passwords []string
}

func (f *fakeAuth) Responses() <-chan auth.Response { return f.responses }

func (f *fakeAuth) Authenticate(password string) error {
	f.passwords = append(f.passwords, password)
	return nil
}

type fakeTimer struct {
	recorder
	events chan timer.Event
	cfg    timer.Config
}

func (f *fakeTimer) Events() <-chan timer.Event { return f.events }
func (f *fakeTimer) Activity()                  { f.add("activity") }
func (f *fakeTimer) Started()                   { f.add("started") }
func (f *fakeTimer) Locked()                    { f.add("locked") }
func (f *fakeTimer) Stopped()                   { f.add("stopped") }
func (f *fakeTimer) Configure(cfg timer.Config) { f.cfg = cfg; f.add("configure") }
func (f *fakeTimer) Schedule(to timer.Timeout)  { f.add("schedule") }

type fakeHistory struct {
	sessions []*models.LockSession
	locked   map[uint]time.Time
	ended    map[uint]time.Time
	attempts []*models.AuthAttempt
	errors   []*models.ErrorLog
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{locked: map[uint]time.Time{}, ended: map[uint]time.Time{}}
}

func (f *fakeHistory) StartSession(s *models.LockSession) error {
	s.ID = uint(len(f.sessions) + 1)
	f.sessions = append(f.sessions, s)
	return nil
}

func (f *fakeHistory) MarkLocked(id uint, at time.Time) error { f.locked[id] = at; return nil }
func (f *fakeHistory) EndSession(id uint, at time.Time) error { f.ended[id] = at; return nil }

func (f *fakeHistory) RecordAttempt(a *models.AuthAttempt) error {
	f.attempts = append(f.attempts, a)
	return nil
}

func (f *fakeHistory) CreateErrorLog(e *models.ErrorLog) error {
	f.errors = append(f.errors, e)
	return nil
}

type fakeLogind struct {
	recorder
	events chan session.Event
}

func (f *fakeLogind) Events() <-chan session.Event { return f.events }
func (f *fakeLogind) ReleaseSleep()                { f.add("release") }
func (f *fakeLogind) InhibitSleep() error          { f.add("inhibit"); return nil }

func (f *fakeLogind) SetLockedHint(locked bool) error {
	if locked {
		f.add("hint:locked")
	} else {
		f.add("hint:unlocked")
	}
	return nil
}

type fakeScreenSaver struct {
	events    chan session.Event
	inhibited bool
	active    []bool
}

func (f *fakeScreenSaver) Events() <-chan session.Event { return f.events }
func (f *fakeScreenSaver) Inhibited() bool              { return f.inhibited }
func (f *fakeScreenSaver) SetActive(active bool)        { f.active = append(f.active, active) }

type harness struct {
	svc     *Service
	locker  *fakeLocker
	auth    *fakeAuth
	timer   *fakeTimer
	history *fakeHistory
	logind  *fakeLogind
	saver   *fakeScreenSaver
	now     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		locker:  newFakeLocker(),
		auth:    &fakeAuth{responses: make(chan auth.Response, 4)},
		timer:   &fakeTimer{events: make(chan timer.Event, 4)},
		history: newFakeHistory(),
		logind:  &fakeLogind{events: make(chan session.Event, 4)},
		saver:   &fakeScreenSaver{events: make(chan session.Event, 4)},
		now:     time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}

	h.svc = NewService(config.Default(), Deps{
		Locker:      h.locker,
		Auth:        h.auth,
		Timer:       h.timer,
		History:     h.history,
		Logind:      h.logind,
		ScreenSaver: h.saver,
		Screens:     2,
	},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return h.now }),
	)
	return h
}

func (h *harness) idleLock(t *testing.T) {
	t.Helper()
	h.svc.handleTimer(timer.Start{})
	h.svc.handleTimer(timer.Lock{})
	require.Equal(t, Locked, h.svc.State())
	h.locker.take()
	h.timer.take()
	h.logind.take()
}

func TestIdleStartThenLock(t *testing.T) {
	h := newHarness(t)

	h.svc.handleTimer(timer.Start{})
	assert.Equal(t, Started, h.svc.State())
	assert.Equal(t, []string{"start"}, h.locker.take())
	require.Len(t, h.history.sessions, 1)
	assert.Equal(t, models.TriggerIdle, h.history.sessions[0].Trigger)
	assert.Equal(t, 2, h.history.sessions[0].Screens)
	assert.Equal(t, []bool{true}, h.saver.active)

	h.now = h.now.Add(time.Minute)
	h.svc.handleTimer(timer.Lock{})
	assert.Equal(t, Locked, h.svc.State())
	assert.Equal(t, []string{"lock"}, h.locker.take())
	assert.Equal(t, []string{"hint:locked"}, h.logind.take())
	assert.Equal(t, h.now, h.history.locked[1])

	// A second start while running is ignored.
	h.svc.handleTimer(timer.Start{})
	assert.Empty(t, h.locker.take())
}

func TestActivityBeforeLockStops(t *testing.T) {
	h := newHarness(t)
	h.svc.handleTimer(timer.Start{})
	h.locker.take()

	h.svc.handleLocker(locker.ActivityResponse{})
	assert.Equal(t, []string{"activity"}, h.timer.take())
	assert.Equal(t, []string{"stop"}, h.locker.take())
	assert.Equal(t, Stopping, h.svc.State())

	h.svc.handleLocker(locker.StoppedResponse{})
	assert.Equal(t, Idle, h.svc.State())
	assert.Equal(t, []string{"stopped"}, h.timer.take())
	assert.Equal(t, []string{"hint:unlocked", "inhibit"}, h.logind.take())
	assert.Equal(t, []bool{true, false}, h.saver.active)
	assert.Contains(t, h.history.ended, uint(1))
}

func TestActivityWhileLockedDoesNotStop(t *testing.T) {
	h := newHarness(t)
	h.idleLock(t)

	h.svc.handleLocker(locker.ActivityResponse{})
	assert.Equal(t, []string{"activity"}, h.timer.take())
	assert.Empty(t, h.locker.take())
	assert.Equal(t, Locked, h.svc.State())
}

func TestPasswordFlow(t *testing.T) {
	h := newHarness(t)
	h.idleLock(t)

	h.svc.handleLocker(locker.PasswordResponse{Password: "wrong"})
	assert.Equal(t, []string{"wrong"}, h.auth.passwords)

	h.svc.handleAuth(auth.Response{Success: false, Method: ""})
	assert.Equal(t, []string{"auth:fail"}, h.locker.take())
	assert.Equal(t, Locked, h.svc.State())

	h.svc.handleLocker(locker.PasswordResponse{Password: "right"})
	h.svc.handleAuth(auth.Response{Success: true, Method: "internal"})
	assert.Equal(t, []string{"auth:ok", "stop"}, h.locker.take())
	assert.Equal(t, Stopping, h.svc.State())

	require.Len(t, h.history.attempts, 2)
	assert.False(t, h.history.attempts[0].Success)
	assert.True(t, h.history.attempts[1].Success)
	assert.Equal(t, "internal", h.history.attempts[1].Method)
	assert.Equal(t, uint(1), h.history.attempts[1].SessionID)

	// A late result after stopping changes nothing.
	h.svc.handleAuth(auth.Response{Success: true})
	assert.Empty(t, h.locker.take())

	h.svc.handleLocker(locker.StoppedResponse{})
	assert.Equal(t, Idle, h.svc.State())
}

func TestPasswordWhenNotLocked(t *testing.T) {
	h := newHarness(t)
	h.svc.handleLocker(locker.PasswordResponse{Password: "x"})
	assert.Empty(t, h.auth.passwords)
	assert.Equal(t, []string{"auth:fail"}, h.locker.take())
}

func TestTimerPassThrough(t *testing.T) {
	h := newHarness(t)

	h.svc.handleTimer(timer.Blank{})
	h.svc.handleTimer(timer.Unblank{})
	h.svc.handleTimer(timer.Report{ID: 7})
	assert.Equal(t, []string{"power:off", "power:on", "timeout"}, h.locker.take())

	h.svc.handleLocker(locker.TimeoutResponse{Timeout: timer.Set{ID: 7, After: time.Second}})
	assert.Equal(t, []string{"schedule"}, h.timer.take())

	// Lock without a running screensaver is ignored.
	h.svc.handleTimer(timer.Lock{})
	assert.Empty(t, h.locker.take())
}

func TestInhibitedIdleStart(t *testing.T) {
	h := newHarness(t)
	h.saver.inhibited = true

	h.svc.handleTimer(timer.Start{})
	assert.Equal(t, Idle, h.svc.State())
	assert.Empty(t, h.locker.take())
	assert.Equal(t, []string{"stopped"}, h.timer.take())

	// Explicit locks ignore inhibitors.
	h.svc.handleSession(session.Lock{Source: session.SourceDBus})
	assert.Equal(t, Locked, h.svc.State())
	assert.Equal(t, []string{"start", "lock"}, h.locker.take())
	assert.Equal(t, models.TriggerDBus, h.history.sessions[0].Trigger)
}

func TestLockNowFromIdle(t *testing.T) {
	h := newHarness(t)

	h.svc.handleSession(session.Lock{Source: session.SourceLogind})
	assert.Equal(t, Locked, h.svc.State())
	assert.Equal(t, []string{"start", "lock"}, h.locker.take())
	assert.Equal(t, []string{"locked"}, h.timer.take())
	assert.Equal(t, models.TriggerLogind, h.history.sessions[0].Trigger)

	// Already locked.
	h.svc.handleSession(session.Lock{Source: session.SourceLogind})
	assert.Empty(t, h.locker.take())
}

func TestLockNowWhileStarted(t *testing.T) {
	h := newHarness(t)
	h.svc.handleTimer(timer.Start{})
	h.locker.take()

	h.svc.RequestLock(models.TriggerSignal)
	h.svc.lockNow(<-h.svc.lockChan)
	assert.Equal(t, []string{"lock"}, h.locker.take())
	assert.Len(t, h.history.sessions, 1, "no new session for an upgrade to locked")
}

func TestStartFailureStaysIdle(t *testing.T) {
	h := newHarness(t)
	h.locker.failStart = true

	h.svc.handleSession(session.Lock{Source: session.SourceDBus})
	assert.Equal(t, Idle, h.svc.State())
	assert.Equal(t, []string{"start"}, h.locker.take())
	assert.Empty(t, h.history.sessions)
	require.Len(t, h.history.errors, 1)
	assert.Equal(t, "locker", h.history.errors[0].Component)
}

func TestLogindUnlock(t *testing.T) {
	h := newHarness(t)
	h.idleLock(t)

	h.svc.handleSession(session.Unlock{})
	assert.Equal(t, []string{"stop"}, h.locker.take())
	assert.Equal(t, Stopping, h.svc.State())

	h.svc.handleSession(session.Unlock{})
	assert.Empty(t, h.locker.take())
}

func TestSuspendLocks(t *testing.T) {
	h := newHarness(t)

	h.svc.handleSession(session.Sleep{Sleeping: true})
	assert.Equal(t, Locked, h.svc.State())
	assert.Equal(t, []string{"hint:locked"}, h.logind.take(), "inhibitor held until the screens are secured")
	assert.Equal(t, models.TriggerSuspend, h.history.sessions[0].Trigger)

	h.svc.handleLocker(locker.SecuredResponse{})
	assert.Equal(t, []string{"release"}, h.logind.take())
	assert.False(t, h.svc.suspending)

	h.svc.handleSession(session.Sleep{Sleeping: false})
	assert.Equal(t, []string{"inhibit"}, h.logind.take())
}

func TestSuspendWhileSecuredReleasesAtOnce(t *testing.T) {
	h := newHarness(t)
	h.idleLock(t)
	h.svc.handleLocker(locker.SecuredResponse{})
	assert.Empty(t, h.logind.take())

	h.svc.handleSession(session.Sleep{Sleeping: true})
	assert.Empty(t, h.locker.take())
	assert.Equal(t, []string{"release"}, h.logind.take())
}

func TestSuspendWhileStoppingRelocks(t *testing.T) {
	h := newHarness(t)
	h.idleLock(t)
	h.svc.handleLocker(locker.SecuredResponse{})

	h.svc.handleAuth(auth.Response{Success: true, Method: "internal"})
	require.Equal(t, Stopping, h.svc.State())
	h.locker.take()

	h.svc.handleSession(session.Sleep{Sleeping: true})
	assert.Empty(t, h.locker.take(), "nothing to do until the stop completes")
	assert.Empty(t, h.logind.take())

	h.svc.handleLocker(locker.StoppedResponse{})
	assert.Equal(t, Locked, h.svc.State())
	assert.Equal(t, []string{"start", "lock"}, h.locker.take())
	assert.Equal(t, []string{"hint:unlocked", "inhibit", "hint:locked"}, h.logind.take())
	require.Len(t, h.history.sessions, 2)
	assert.Equal(t, models.TriggerSuspend, h.history.sessions[1].Trigger)

	h.svc.handleLocker(locker.SecuredResponse{})
	assert.Equal(t, []string{"release"}, h.logind.take())
}

func TestLockWhileStoppingRelocks(t *testing.T) {
	h := newHarness(t)
	h.idleLock(t)
	h.svc.handleAuth(auth.Response{Success: true, Method: "internal"})
	require.Equal(t, Stopping, h.svc.State())
	h.locker.take()

	h.svc.RequestLock(models.TriggerSignal)
	h.svc.lockNow(<-h.svc.lockChan)
	assert.Empty(t, h.locker.take())

	h.svc.handleLocker(locker.StoppedResponse{})
	assert.Equal(t, Locked, h.svc.State())
	assert.Equal(t, []string{"start", "lock"}, h.locker.take())
	assert.Empty(t, h.svc.relock)
}

func TestSuspendReleasesAfterTimeout(t *testing.T) {
	h := newHarness(t)
	h.svc.sleepWait = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- h.svc.Start(ctx) }()

	h.logind.events <- session.Sleep{Sleeping: true}

	var calls []string
	require.Eventually(t, func() bool {
		calls = append(calls, h.logind.take()...)
		return len(calls) > 0 && calls[len(calls)-1] == "release"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"inhibit", "hint:locked", "release"}, calls)

	cancel()
	<-done
}

func TestSuspendWithoutLockOnSuspend(t *testing.T) {
	h := newHarness(t)
	h.svc.config.Session.LockOnSuspend = false

	h.svc.handleSession(session.Sleep{Sleeping: true})
	assert.Equal(t, Idle, h.svc.State())
	assert.Empty(t, h.logind.take())
}

func TestScreenSaverRequests(t *testing.T) {
	h := newHarness(t)

	h.svc.handleSession(session.SetActive{Active: true})
	assert.Equal(t, Started, h.svc.State())
	assert.Equal(t, []string{"started"}, h.timer.take())

	h.svc.handleSession(session.Activity{})
	assert.Equal(t, []string{"activity"}, h.timer.take())
	assert.Equal(t, Stopping, h.svc.State())
	h.svc.handleLocker(locker.StoppedResponse{})

	h.svc.handleSession(session.SetActive{Active: true})
	h.locker.take()
	h.svc.handleSession(session.SetActive{Active: false})
	assert.Equal(t, []string{"stop"}, h.locker.take())

	// SetActive(false) cannot unlock a locked session.
	h.svc.handleLocker(locker.StoppedResponse{})
	h.idleLock(t)
	h.svc.handleSession(session.SetActive{Active: false})
	assert.Empty(t, h.locker.take())
	assert.Equal(t, Locked, h.svc.State())
}

func TestApplyConfig(t *testing.T) {
	h := newHarness(t)

	cfg := config.Default()
	cfg.Timer.Timeout = 60
	cfg.Timer.Blank = 120
	cfg.Saver.Throttle = true
	h.svc.applyConfig(cfg)

	assert.Equal(t, []string{"throttle"}, h.locker.take())
	assert.Equal(t, []string{"configure"}, h.timer.take())
	assert.Equal(t, timer.Config{Timeout: time.Minute, Blank: 2 * time.Minute}, h.timer.cfg)
}

func TestStartLoop(t *testing.T) {
	h := newHarness(t)
	h.svc.sanitizeTick = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- h.svc.Start(ctx) }()

	h.timer.events <- timer.Start{}
	h.logind.events <- session.Lock{Source: session.SourceLogind}

	require.Eventually(t, func() bool {
		for _, c := range h.locker.take() {
			if c == "sanitize" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	h.svc.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop")
	}
	assert.Equal(t, Locked, h.svc.State())
}

func TestStartLoopLockerExit(t *testing.T) {
	h := newHarness(t)
	h.locker.err = locker.ErrDisplayClosed
	close(h.locker.done)

	err := h.svc.Start(context.Background())
	assert.True(t, errors.Is(err, locker.ErrDisplayClosed))
}

func TestStartLoopContext(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.svc.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"inhibit"}, h.logind.take())
}

func TestReconfigureKeepsLatest(t *testing.T) {
	h := newHarness(t)

	first := config.Default()
	second := config.Default()
	second.Timer.Timeout = 5
	h.svc.Reconfigure(first)
	h.svc.Reconfigure(second)

	assert.Same(t, second, <-h.svc.reconfigure)
}
