package locker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/lockward/lockward/internal/display"
	"github.com/lockward/lockward/internal/saver"
	"github.com/lockward/lockward/internal/timer"
)

// State is the lifecycle state of one screen.
type State int

const (
	// Idle screens are unlocked and have no screensaver.
	Idle State = iota
	// Launching screens wait for their screensaver to initialize.
	Launching
	// Starting screens wait for their screensaver to confirm it started.
	Starting
	// Locked screens are grabbed with a running screensaver.
	Locked
	// Stopping screens wait for their screensaver to confirm it stopped.
	Stopping
	// Blanked screens are grabbed and blank with no screensaver.
	Blanked
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Launching:
		return "launching"
	case Starting:
		return "starting"
	case Locked:
		return "locked"
	case Stopping:
		return "stopping"
	case Blanked:
		return "blanked"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Safety derives the safety level from input ownership.
func Safety(keyboard, pointer bool) saver.Safety {
	switch {
	case keyboard && pointer:
		return saver.High
	case keyboard:
		return saver.Medium
	default:
		return saver.Low
	}
}

type screen struct {
	window Window
	state  State

	saver Saver
	name  string
	gen   uint64

	keyboard bool
	pointer  bool
}

type saverEvent struct {
	id    uint32
	gen   uint64
	event saver.Event
}

type worker struct {
	ctx  context.Context
	cfg  Config
	disp Display
	kb   Keyboard
	opts options
	log  *slog.Logger

	screens map[uint32]*screen
	order   []uint32
	gen     uint64

	password *passwordBuffer
	checking bool

	responses   chan<- Response
	saverEvents chan saverEvent
	quit        <-chan struct{}

	err error
}

func newWorker(ctx context.Context, cfg Config, disp Display, kb Keyboard, o options, responses chan<- Response, quit <-chan struct{}, log *slog.Logger) (*worker, error) {
	w := &worker{
		ctx:         ctx,
		cfg:         cfg,
		disp:        disp,
		kb:          kb,
		opts:        o,
		log:         log,
		screens:     make(map[uint32]*screen),
		password:    newPasswordBuffer(),
		responses:   responses,
		saverEvents: make(chan saverEvent, 16),
		quit:        quit,
	}

	for i := 0; i < disp.Screens(); i++ {
		win, err := disp.CreateWindow(i)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create window on screen %d", i)
		}

		if err := disp.Observe(win.Root()); err != nil {
			log.Warn("failed to observe root window", "screen", i, "error", err)
		}

		w.screens[win.ID()] = &screen{
			window:   win,
			keyboard: win.HasKeyboard(),
			pointer:  win.HasPointer(),
		}
		w.order = append(w.order, win.ID())
	}

	return w, nil
}

// screen returns the screen whose window has id, if any.
func (w *worker) screen(id uint32) (*screen, bool) {
	s, ok := w.screens[id]
	return s, ok
}

// active returns the screens with a bound screensaver in creation order.
func (w *worker) active() []*screen {
	var list []*screen
	for _, id := range w.order {
		if s := w.screens[id]; s.saver != nil {
			list = append(list, s)
		}
	}
	return list
}

func (w *worker) emit(resp Response) bool {
	select {
	case w.responses <- resp:
		return true
	case <-w.ctx.Done():
		if w.err == nil {
			w.err = errors.Wrap(w.ctx.Err(), "response receiver gone")
		}
		return false
	}
}

func (w *worker) schedule(id uint32) {
	w.emit(TimeoutResponse{Timeout: timer.Set{ID: uint64(id), After: w.cfg.Timeout}})
}

func (w *worker) cancel(id uint32) {
	w.emit(TimeoutResponse{Timeout: timer.Cancel{ID: uint64(id)}})
}

func (w *worker) warn(err error, msg string, args ...any) {
	if err != nil {
		w.log.Warn(msg, append(args, "error", err)...)
	}
}

func (w *worker) handleRequest(req request) {
	w.log.Debug("request", "request", requestName(req))

	switch r := req.(type) {
	case timeoutRequest:
		if s, ok := w.screen(uint32(r.id)); ok && s.saver != nil {
			w.log.Warn("screensaver timed out", "window", r.id, "state", s.state)
			s.saver.Kill()
		}

	case sanitizeRequest:
		w.disp.Sanitize()
		for _, id := range w.order {
			w.sanitize(w.screens[id])
		}

	case activityRequest:
		w.emit(ActivityResponse{})

	case throttleRequest:
		for _, s := range w.active() {
			w.warn(s.saver.Throttle(r.value), "failed to throttle screensaver", "window", s.window.ID())
		}

	case powerRequest:
		for _, id := range w.order {
			w.screens[id].window.Power(r.on)
		}
		for _, s := range w.active() {
			w.warn(s.saver.Blank(!r.on), "failed to blank screensaver", "window", s.window.ID())
		}
		w.disp.Power(r.on)

	case startRequest:
		blanked := false
		for _, id := range w.order {
			if s := w.screens[id]; s.state == Idle {
				w.start(s)
				blanked = blanked || s.state == Blanked
			}
		}
		if blanked {
			w.secured()
		}

	case lockRequest:
		for _, s := range w.active() {
			w.warn(s.saver.Lock(), "failed to lock screensaver", "window", s.window.ID())
		}

	case authRequest:
		w.checking = false
		feedback := saver.Failure
		if r.ok {
			feedback = saver.Success
		}
		w.feedback(feedback)

	case stopRequest:
		w.stop()
	}
}

func (w *worker) sanitize(s *screen) {
	s.window.Sanitize()

	keyboard, pointer := s.window.HasKeyboard(), s.window.HasPointer()
	if keyboard == s.keyboard && pointer == s.pointer {
		return
	}
	s.keyboard, s.pointer = keyboard, pointer

	w.log.Info("input ownership changed", "window", s.window.ID(), "keyboard", keyboard, "pointer", pointer)
	w.pushSafety(s)
}

func (w *worker) pushSafety(s *screen) {
	if s.saver == nil {
		return
	}
	w.warn(s.saver.Safety(Safety(s.keyboard, s.pointer)), "failed to send safety", "window", s.window.ID())
}

func (w *worker) start(s *screen) {
	id := s.window.ID()

	if len(w.cfg.Savers) > 0 {
		name := w.cfg.Savers[w.opts.choose(len(w.cfg.Savers))]

		if sv, err := w.opts.spawn(name); err != nil {
			w.log.Warn("failed to spawn screensaver", "saver", name, "window", id, "error", err)
		} else if events, err := sv.Take(); err != nil {
			w.log.Warn("failed to take screensaver events", "saver", name, "window", id, "error", err)
			sv.Kill()
		} else {
			w.gen++
			s.saver, s.name, s.gen = sv, name, w.gen
			s.state = Launching

			w.schedule(id)
			go w.forward(id, s.gen, events)

			w.warn(sv.Target(w.disp.Name(), s.window.Screen(), uint64(id)), "failed to target screensaver", "window", id)
			if w.cfg.Throttle {
				w.warn(sv.Throttle(true), "failed to throttle screensaver", "window", id)
			}

			w.log.Info("screensaver launched", "saver", name, "window", id)
			return
		}
	}

	w.blank(s)
}

// forward relays one screensaver's events until its stream ends.
func (w *worker) forward(id uint32, gen uint64, events <-chan saver.Event) {
	for ev := range events {
		select {
		case w.saverEvents <- saverEvent{id: id, gen: gen, event: ev}:
		case <-w.quit:
			return
		}
	}
}

// blank locks the window of s and blanks it without a screensaver.
func (w *worker) blank(s *screen) {
	w.warn(s.window.Lock(), "failed to lock window", "window", s.window.ID())
	s.window.Blank()
	s.state = Blanked
	w.log.Info("screen blanked", "window", s.window.ID())
}

// release unlocks the window of s and retires its screensaver.
func (w *worker) release(s *screen) {
	w.warn(s.window.Unlock(), "failed to unlock window", "window", s.window.ID())

	if s.saver != nil {
		s.saver.Kill()
	}
	s.saver, s.name = nil, ""
	s.state = Idle

	w.log.Info("screen unlocked", "window", s.window.ID())
}

func (w *worker) stop() {
	w.password.Clear()

	unlocked := false
	for _, id := range w.order {
		s := w.screens[id]

		switch s.state {
		case Launching, Starting, Locked:
			w.schedule(id)
			w.warn(s.saver.Stop(), "failed to stop screensaver", "window", id)
			s.state = Stopping

		case Blanked:
			w.release(s)
			unlocked = true
		}
	}

	if unlocked {
		w.stopped()
	}
}

// secured emits SecuredResponse once every screen is grabbed.
func (w *worker) secured() {
	for _, id := range w.order {
		if st := w.screens[id].state; st != Locked && st != Blanked {
			return
		}
	}
	w.emit(SecuredResponse{})
}

// stopped emits StoppedResponse once no screensaver is left.
func (w *worker) stopped() {
	if len(w.active()) > 0 {
		return
	}
	w.checking = false
	w.password.Clear()
	w.emit(StoppedResponse{})
}

func (w *worker) handleSaver(ev saverEvent) {
	s, ok := w.screen(ev.id)
	if !ok || s.saver == nil || s.gen != ev.gen {
		w.log.Debug("ignoring stale screensaver event", "window", ev.id, "event", fmt.Sprintf("%T", ev.event))
		return
	}
	sv := s.saver

	switch e := ev.event.(type) {
	case saver.Forward:
		w.log.Debug("screensaver response", "window", ev.id, "response", e.Response, "state", s.state)

		switch e.Response {
		case saver.Initialized:
			if s.state != Launching {
				return
			}
			w.warn(sv.Config(w.cfg.Options[s.name]), "failed to configure screensaver", "window", ev.id)
			w.warn(sv.Start(), "failed to start screensaver", "window", ev.id)
			s.state = Starting

		case saver.Started:
			switch {
			case !sv.WasStarted():
				w.log.Warn("screensaver started without being asked", "window", ev.id)
				sv.Kill()

			case s.state == Starting:
				w.cancel(ev.id)
				w.warn(s.window.Lock(), "failed to lock window", "window", ev.id)
				s.keyboard, s.pointer = s.window.HasKeyboard(), s.window.HasPointer()
				s.state = Locked
				w.pushSafety(s)
				w.secured()
			}

		case saver.Stopped:
			if !sv.WasStopped() {
				w.log.Warn("screensaver stopped without being asked", "window", ev.id)
				sv.Kill()
				return
			}
			w.cancel(ev.id)
			w.release(s)
			w.stopped()
		}

	case saver.Exit:
		w.cancel(ev.id)

		if sv.WasStopped() {
			w.release(s)
			w.stopped()
			return
		}

		w.log.Warn("screensaver exited unexpectedly", "window", ev.id, "error", e.Err)
		s.saver, s.name = nil, ""
		w.blank(s)
		w.secured()
	}
}

func (w *worker) handleDisplay(ev display.Event) {
	if w.kb.OwnsEvent(ev) {
		w.kb.Handle(ev)
		return
	}

	switch e := ev.(type) {
	case display.ScreenChange:
		for _, id := range w.order {
			s := w.screens[id]
			if s.window.Root() != e.Root {
				continue
			}
			s.window.Resize(uint32(e.Width), uint32(e.Height))
			if s.saver != nil {
				w.warn(s.saver.Resize(uint32(e.Width), uint32(e.Height)), "failed to resize screensaver", "window", id)
			}
		}

	case display.Key:
		w.emit(ActivityResponse{})

		if !e.Press || w.checking {
			return
		}
		if _, ok := w.screen(e.Window); ok {
			w.key(e.Code, e.State)
		}

	case display.Button:
		w.emit(ActivityResponse{})

		if s, ok := w.screen(e.Window); ok && s.saver != nil {
			w.warn(s.saver.Pointer(saver.Button{
				X:      int32(e.X),
				Y:      int32(e.Y),
				Button: e.Button,
				Press:  e.Press,
			}), "failed to forward pointer", "window", e.Window)
		}

	case display.Motion:
		w.emit(ActivityResponse{})

		if s, ok := w.screen(e.Window); ok && s.saver != nil {
			w.warn(s.saver.Pointer(saver.Move{X: int32(e.X), Y: int32(e.Y)}), "failed to forward pointer", "window", e.Window)
		}

	case display.Map:
		w.observe(e.Window)

	case display.Configure:
		w.observe(e.Window)
	}
}

func (w *worker) observe(window uint32) {
	if err := w.disp.Observe(window); err != nil {
		w.log.Debug("failed to observe window", "window", window, "error", err)
	}
}

func (w *worker) key(code display.Keycode, state uint16) {
	sym, _ := w.kb.Symbol(code, state)

	switch sym {
	case display.KeyBackSpace:
		if w.password.Pop() {
			w.feedback(saver.Delete)
		}

	case display.KeyEscape:
		if w.password.Clear() {
			w.feedback(saver.Reset)
		}

	case display.KeyReturn, display.KeyKPEnter:
		w.feedback(saver.Check)
		w.checking = true
		w.emit(PasswordResponse{Password: w.password.Take()})

	default:
		text, ok := w.kb.String(code, state)
		if !ok {
			return
		}
		for _, r := range text {
			if !w.password.Push(r) {
				break
			}
			w.feedback(saver.Insert)
		}
	}
}

func (w *worker) feedback(p saver.Password) {
	for _, s := range w.active() {
		w.warn(s.saver.Password(p), "failed to send password feedback", "window", s.window.ID())
	}
}

// shutdown kills every screensaver still running.
func (w *worker) shutdown() {
	for _, s := range w.active() {
		s.saver.Kill()
	}
	w.password.Clear()

	if w.err != nil {
		w.log.Error("locker stopped", "error", w.err)
	}
}
