package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
)

const (
	screenSaverName      = "org.freedesktop.ScreenSaver"
	screenSaverInterface = "org.freedesktop.ScreenSaver"
)

// Clients use either path.
var screenSaverPaths = []dbus.ObjectPath{"/org/freedesktop/ScreenSaver", "/ScreenSaver"}

// ErrNameTaken is returned when another screensaver owns the bus name.
var ErrNameTaken = errors.New("screensaver name already owned")

type inhibitor struct {
	sender dbus.Sender
	app    string
	reason string
}

// state is the bus-independent part of the ScreenSaver service.
type state struct {
	mu         sync.Mutex
	active     bool
	since      time.Time
	cookie     uint32
	inhibitors map[uint32]inhibitor

	now    func() time.Time
	idle   func() (time.Duration, error)
	events chan Event
	log    *slog.Logger
}

func newState(idle func() (time.Duration, error), log *slog.Logger) *state {
	return &state{
		inhibitors: make(map[uint32]inhibitor),
		now:        time.Now,
		idle:       idle,
		events:     make(chan Event, 16),
		log:        log,
	}
}

func (s *state) send(ev Event) {
	if !deliver(s.events, ev) {
		s.log.Warn("dropping screensaver event, receiver is not keeping up", "event", ev)
	}
}

// setActive returns whether the value changed.
func (s *state) setActive(active bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == active {
		return false
	}
	s.active = active
	if active {
		s.since = s.now()
	} else {
		s.since = time.Time{}
	}
	return true
}

func (s *state) getActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *state) activeTime() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return 0
	}
	return uint32(s.now().Sub(s.since) / time.Second)
}

func (s *state) inhibit(sender dbus.Sender, app, reason string) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		s.cookie++
		if _, taken := s.inhibitors[s.cookie]; s.cookie != 0 && !taken {
			break
		}
	}
	s.inhibitors[s.cookie] = inhibitor{sender: sender, app: app, reason: reason}
	s.log.Info("screensaver inhibited", "cookie", s.cookie, "app", app, "reason", reason, "sender", sender)
	return s.cookie
}

func (s *state) uninhibit(sender dbus.Sender, cookie uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	inh, ok := s.inhibitors[cookie]
	if !ok || inh.sender != sender {
		return false
	}
	delete(s.inhibitors, cookie)
	s.log.Info("screensaver uninhibited", "cookie", cookie, "app", inh.app)
	return true
}

// drop forgets every inhibitor held by sender and returns how many there were.
func (s *state) drop(sender dbus.Sender) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for cookie, inh := range s.inhibitors {
		if inh.sender == sender {
			delete(s.inhibitors, cookie)
			n++
		}
	}
	if n > 0 {
		s.log.Info("dropped inhibitors of vanished client", "sender", sender, "count", n)
	}
	return n
}

func (s *state) inhibited() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inhibitors) > 0
}

// methods is the exported method table. Every method has *dbus.Error last.
type methods struct {
	s *state
}

func (m methods) Lock() *dbus.Error {
	m.s.send(Lock{Source: SourceDBus})
	return nil
}

func (m methods) SimulateUserActivity() *dbus.Error {
	m.s.send(Activity{})
	return nil
}

func (m methods) GetActive() (bool, *dbus.Error) {
	return m.s.getActive(), nil
}

func (m methods) GetActiveTime() (uint32, *dbus.Error) {
	return m.s.activeTime(), nil
}

func (m methods) GetSessionIdleTime() (uint32, *dbus.Error) {
	if m.s.idle == nil {
		return 0, nil
	}
	idle, err := m.s.idle()
	if err != nil {
		return 0, dbus.MakeFailedError(err)
	}
	return uint32(idle / time.Second), nil
}

func (m methods) SetActive(active bool) (bool, *dbus.Error) {
	m.s.send(SetActive{Active: active})
	return true, nil
}

func (m methods) Inhibit(sender dbus.Sender, app, reason string) (uint32, *dbus.Error) {
	return m.s.inhibit(sender, app, reason), nil
}

func (m methods) UnInhibit(sender dbus.Sender, cookie uint32) *dbus.Error {
	if !m.s.uninhibit(sender, cookie) {
		return dbus.MakeFailedError(errors.Errorf("unknown cookie %d", cookie))
	}
	return nil
}

func (m methods) table() map[string]interface{} {
	return map[string]interface{}{
		"Lock":                 m.Lock,
		"SimulateUserActivity": m.SimulateUserActivity,
		"GetActive":            m.GetActive,
		"GetActiveTime":        m.GetActiveTime,
		"GetSessionIdleTime":   m.GetSessionIdleTime,
		"SetActive":            m.SetActive,
		"Inhibit":              m.Inhibit,
		"UnInhibit":            m.UnInhibit,
	}
}

// ScreenSaver serves org.freedesktop.ScreenSaver on the session bus.
type ScreenSaver struct {
	conn    *dbus.Conn
	state   *state
	signals chan *dbus.Signal
	done    chan struct{}
	once    sync.Once
	log     *slog.Logger
}

// ServeScreenSaver claims the ScreenSaver name on the session bus. idle
// reports how long the user has been idle and may be nil.
func ServeScreenSaver(idle func() (time.Duration, error), log *slog.Logger) (*ScreenSaver, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "screensaver")

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to session bus")
	}

	s := &ScreenSaver{
		conn:    conn,
		state:   newState(idle, log),
		signals: make(chan *dbus.Signal, 16),
		done:    make(chan struct{}),
		log:     log,
	}

	table := methods{s.state}.table()
	for _, path := range screenSaverPaths {
		if err := conn.ExportMethodTable(table, path, screenSaverInterface); err != nil {
			conn.Close()
			return nil, errors.Wrapf(err, "failed to export %s", path)
		}
	}

	reply, err := conn.RequestName(screenSaverName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to request screensaver name")
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return nil, ErrNameTaken
	}

	err = conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
	)
	if err != nil {
		log.Warn("inhibitors will outlive their clients", "error", err)
	} else {
		conn.Signal(s.signals)
		go s.watch()
	}

	return s, nil
}

func (s *ScreenSaver) watch() {
	for {
		select {
		case <-s.done:
			return
		case sig, ok := <-s.signals:
			if !ok {
				return
			}
			if name, gone := vanished(sig); gone {
				s.state.drop(dbus.Sender(name))
			}
		}
	}
}

// vanished reports the unique name that a NameOwnerChanged signal says has
// left the bus.
func vanished(sig *dbus.Signal) (string, bool) {
	if sig == nil || sig.Name != "org.freedesktop.DBus.NameOwnerChanged" || len(sig.Body) != 3 {
		return "", false
	}
	name, ok1 := sig.Body[0].(string)
	newOwner, ok2 := sig.Body[2].(string)
	if !ok1 || !ok2 || newOwner != "" {
		return "", false
	}
	return name, true
}

// Events returns requests made by bus clients.
func (s *ScreenSaver) Events() <-chan Event { return s.state.events }

// Inhibited reports whether any client currently inhibits the screensaver.
func (s *ScreenSaver) Inhibited() bool { return s.state.inhibited() }

// SetActive records whether the screensaver is running and announces changes.
func (s *ScreenSaver) SetActive(active bool) {
	if !s.state.setActive(active) {
		return
	}
	for _, path := range screenSaverPaths {
		if err := s.conn.Emit(path, screenSaverInterface+".ActiveChanged", active); err != nil {
			s.log.Warn("failed to emit ActiveChanged", "path", path, "error", err)
		}
	}
}

// Close releases the bus name and closes the connection.
func (s *ScreenSaver) Close() error {
	s.once.Do(func() { close(s.done) })
	s.conn.RemoveSignal(s.signals)
	if _, err := s.conn.ReleaseName(screenSaverName); err != nil {
		s.log.Debug("failed to release name", "error", err)
	}
	return s.conn.Close()
}
