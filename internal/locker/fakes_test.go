package locker

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	"github.com/lockward/lockward/internal/display"
	"github.com/lockward/lockward/internal/saver"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeDisplay struct {
	mu        sync.Mutex
	windows   []*fakeWindow
	events    chan display.Event
	observed  []uint32
	sanitized int
	power     []bool
	failOn    int
}

func newFakeDisplay(screens int) *fakeDisplay {
	d := &fakeDisplay{events: make(chan display.Event, 16), failOn: -1}
	for i := 0; i < screens; i++ {
		d.windows = append(d.windows, &fakeWindow{
			id:       0x100 + uint32(i),
			root:     0x10 + uint32(i),
			screen:   i,
			keyboard: true,
			pointer:  true,
			powered:  true,
		})
	}
	return d
}

func (d *fakeDisplay) Name() string { return ":0" }
func (d *fakeDisplay) Screens() int { return len(d.windows) }

func (d *fakeDisplay) CreateWindow(screen int) (Window, error) {
	if screen == d.failOn {
		return nil, errors.New("no visual")
	}
	return d.windows[screen], nil
}

func (d *fakeDisplay) Observe(window uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observed = append(d.observed, window)
	return nil
}

func (d *fakeDisplay) Sanitize() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sanitized++
}

func (d *fakeDisplay) Power(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.power = append(d.power, on)
}

func (d *fakeDisplay) Events() <-chan display.Event { return d.events }

type fakeWindow struct {
	mu       sync.Mutex
	id       uint32
	root     uint32
	screen   int
	locked   bool
	blanked  bool
	powered  bool
	keyboard bool
	pointer  bool
	width    uint32
	height   uint32
}

func (w *fakeWindow) ID() uint32   { return w.id }
func (w *fakeWindow) Root() uint32 { return w.root }
func (w *fakeWindow) Screen() int  { return w.screen }

func (w *fakeWindow) Lock() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.locked = true
	return nil
}

func (w *fakeWindow) Unlock() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.locked = false
	w.blanked = false
	return nil
}

func (w *fakeWindow) Blank() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blanked = true
}

func (w *fakeWindow) Power(on bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.powered = on
}

func (w *fakeWindow) HasKeyboard() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.keyboard
}

func (w *fakeWindow) HasPointer() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pointer
}

func (w *fakeWindow) Resize(width, height uint32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width, w.height = width, height
}

func (w *fakeWindow) Sanitize() {}

func (w *fakeWindow) setInput(keyboard, pointer bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.keyboard, w.pointer = keyboard, pointer
}

func (w *fakeWindow) isLocked() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.locked
}

func (w *fakeWindow) isBlanked() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.blanked
}

type fakeSaver struct {
	mu      sync.Mutex
	name    string
	events  chan saver.Event
	cmds    []string
	started bool
	stopped bool
	killed  bool
	taken   bool
}

func newFakeSaver(name string) *fakeSaver {
	return &fakeSaver{name: name, events: make(chan saver.Event, 16)}
}

func (s *fakeSaver) record(cmd string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmds = append(s.cmds, cmd)
	return nil
}

func (s *fakeSaver) Take() (<-chan saver.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taken {
		return nil, saver.ErrTaken
	}
	s.taken = true
	return s.events, nil
}

func (s *fakeSaver) Config(options map[string]any) error {
	return s.record(fmt.Sprintf("config:%v", options))
}

func (s *fakeSaver) Target(display string, screen int, window uint64) error {
	return s.record(fmt.Sprintf("target:%s:%d:%#x", display, screen, window))
}

func (s *fakeSaver) Throttle(value bool) error       { return s.record(fmt.Sprintf("throttle:%t", value)) }
func (s *fakeSaver) Blank(value bool) error          { return s.record(fmt.Sprintf("blank:%t", value)) }
func (s *fakeSaver) Resize(w, h uint32) error        { return s.record(fmt.Sprintf("resize:%dx%d", w, h)) }
func (s *fakeSaver) Safety(l saver.Safety) error     { return s.record("safety:" + l.String()) }
func (s *fakeSaver) Password(p saver.Password) error { return s.record("password:" + p.String()) }
func (s *fakeSaver) Lock() error                     { return s.record("lock") }

func (s *fakeSaver) Pointer(p saver.Pointer) error {
	switch v := p.(type) {
	case saver.Move:
		return s.record(fmt.Sprintf("move:%d,%d", v.X, v.Y))
	case saver.Button:
		return s.record(fmt.Sprintf("button:%d,%d:%d:%t", v.X, v.Y, v.Button, v.Press))
	}
	return nil
}

func (s *fakeSaver) Start() error {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	return s.record("start")
}

func (s *fakeSaver) Stop() error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	return s.record("stop")
}

func (s *fakeSaver) Kill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.killed = true
}

func (s *fakeSaver) WasStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *fakeSaver) WasStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func (s *fakeSaver) commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.cmds...)
}

func (s *fakeSaver) isKilled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.killed
}

type key struct {
	sym  display.Keysym
	text string
}

type fakeKeyboard struct {
	keys    map[display.Keycode]key
	handled int
}

const (
	codeA         display.Keycode = 38
	codeB         display.Keycode = 56
	codeC         display.Keycode = 54
	codeReturn    display.Keycode = 36
	codeBackSpace display.Keycode = 22
	codeEscape    display.Keycode = 9
	codeShift     display.Keycode = 50
)

func newFakeKeyboard() *fakeKeyboard {
	return &fakeKeyboard{keys: map[display.Keycode]key{
		codeA:         {sym: 'a', text: "a"},
		codeB:         {sym: 'b', text: "b"},
		codeC:         {sym: 'c', text: "c"},
		codeReturn:    {sym: display.KeyReturn},
		codeBackSpace: {sym: display.KeyBackSpace},
		codeEscape:    {sym: display.KeyEscape},
		codeShift:     {sym: 0xffe1},
	}}
}

func (k *fakeKeyboard) OwnsEvent(ev display.Event) bool {
	_, ok := ev.(display.KeyboardMapping)
	return ok
}

func (k *fakeKeyboard) Handle(display.Event) { k.handled++ }

func (k *fakeKeyboard) Symbol(code display.Keycode, _ uint16) (display.Keysym, bool) {
	v, ok := k.keys[code]
	return v.sym, ok
}

func (k *fakeKeyboard) String(code display.Keycode, _ uint16) (string, bool) {
	v, ok := k.keys[code]
	if !ok || v.text == "" {
		return "", false
	}
	return v.text, true
}
