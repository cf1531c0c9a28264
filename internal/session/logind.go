package session

import (
	"log/slog"
	"os"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
)

const (
	logindDest             = "org.freedesktop.login1"
	logindPath             = "/org/freedesktop/login1"
	logindManagerInterface = "org.freedesktop.login1.Manager"
	logindSessionInterface = "org.freedesktop.login1.Session"
)

// Logind follows the current logind session and the system's sleep cycle.
type Logind struct {
	conn    *dbus.Conn
	manager dbus.BusObject
	session dbus.BusObject

	signals chan *dbus.Signal
	events  chan Event
	done    chan struct{}
	once    sync.Once

	mu        sync.Mutex
	inhibitor *os.File

	log *slog.Logger
}

// ConnectLogind attaches to the session with the given id, usually
// $XDG_SESSION_ID. An empty id looks the session up by process.
func ConnectLogind(sessionID string, log *slog.Logger) (*Logind, error) {
	if log == nil {
		log = slog.Default()
	}

	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to system bus")
	}

	l := &Logind{
		conn:    conn,
		manager: conn.Object(logindDest, logindPath),
		signals: make(chan *dbus.Signal, 16),
		events:  make(chan Event, 16),
		done:    make(chan struct{}),
		log:     log.With("component", "logind"),
	}

	path, err := l.findSession(sessionID)
	if err != nil {
		conn.Close()
		return nil, err
	}
	l.session = conn.Object(logindDest, path)
	l.log = l.log.With("session", path)

	for _, match := range [][]dbus.MatchOption{
		{
			dbus.WithMatchObjectPath(path),
			dbus.WithMatchInterface(logindSessionInterface),
			dbus.WithMatchSender(logindDest),
			dbus.WithMatchMember("Lock"),
		},
		{
			dbus.WithMatchObjectPath(path),
			dbus.WithMatchInterface(logindSessionInterface),
			dbus.WithMatchSender(logindDest),
			dbus.WithMatchMember("Unlock"),
		},
		{
			dbus.WithMatchObjectPath(logindPath),
			dbus.WithMatchInterface(logindManagerInterface),
			dbus.WithMatchSender(logindDest),
			dbus.WithMatchMember("PrepareForSleep"),
		},
	} {
		if err := conn.AddMatchSignal(match...); err != nil {
			conn.Close()
			return nil, errors.Wrap(err, "failed to register logind signal")
		}
	}

	conn.Signal(l.signals)
	go l.run()

	return l, nil
}

func (l *Logind) findSession(id string) (dbus.ObjectPath, error) {
	if id == "" {
		var path dbus.ObjectPath
		err := l.manager.Call(logindManagerInterface+".GetSessionByPID", 0, uint32(os.Getpid())).Store(&path)
		if err != nil {
			return "", errors.Wrap(err, "failed to find session by pid")
		}
		return path, nil
	}

	var sessions []interface{}
	if err := l.manager.Call(logindManagerInterface+".ListSessions", 0).Store(&sessions); err != nil {
		return "", errors.Wrap(err, "failed to list sessions")
	}
	return sessionPath(sessions, id)
}

// sessionPath picks the object path of session id out of a ListSessions
// reply.
func sessionPath(sessions []interface{}, id string) (dbus.ObjectPath, error) {
	for i, entry := range sessions {
		fields, ok := entry.([]interface{})
		if !ok || len(fields) < 5 {
			return "", errors.Errorf("session %d is malformed: %+v", i, entry)
		}

		sid, ok := fields[0].(string)
		if !ok {
			return "", errors.Errorf("session %d id is not a string: %+v", i, fields[0])
		}
		if sid != id {
			continue
		}

		path, ok := fields[4].(dbus.ObjectPath)
		if !ok {
			return "", errors.Errorf("session %d path is not an object path: %+v", i, fields[4])
		}
		return path, nil
	}

	return "", errors.Errorf("session %q not found", id)
}

// Events returns the translated logind signals.
func (l *Logind) Events() <-chan Event { return l.events }

func (l *Logind) run() {
	for {
		select {
		case <-l.done:
			return
		case sig, ok := <-l.signals:
			if !ok {
				return
			}
			ev, ok := translateLogind(sig, l.session.Path())
			if !ok {
				continue
			}
			l.log.Debug("logind signal", "event", ev)
			if !deliver(l.events, ev) {
				l.log.Warn("dropping logind event, receiver is not keeping up", "event", ev)
			}
		}
	}
}

func translateLogind(sig *dbus.Signal, session dbus.ObjectPath) (Event, bool) {
	if sig == nil {
		return nil, false
	}

	switch sig.Name {
	case logindSessionInterface + ".Lock":
		if sig.Path == session {
			return Lock{Source: SourceLogind}, true
		}

	case logindSessionInterface + ".Unlock":
		if sig.Path == session {
			return Unlock{}, true
		}

	case logindManagerInterface + ".PrepareForSleep":
		if len(sig.Body) == 0 {
			return nil, false
		}
		sleeping, ok := sig.Body[0].(bool)
		if !ok {
			return nil, false
		}
		return Sleep{Sleeping: sleeping}, true
	}

	return nil, false
}

// SetLockedHint publishes whether the session is locked.
func (l *Logind) SetLockedHint(locked bool) error {
	err := l.session.Call(logindSessionInterface+".SetLockedHint", 0, locked).Err
	return errors.Wrap(err, "could not set locked hint")
}

// InhibitSleep takes a delay inhibitor so suspend waits for the screen to be
// locked. It is a no-op while an inhibitor is held.
func (l *Logind) InhibitSleep() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.inhibitor != nil {
		return nil
	}

	var fd dbus.UnixFD
	err := l.manager.Call(logindManagerInterface+".Inhibit", 0,
		"sleep", "lockward", "Lock the screen before sleeping", "delay").Store(&fd)
	if err != nil {
		return errors.Wrap(err, "failed to take sleep inhibitor")
	}

	l.inhibitor = os.NewFile(uintptr(fd), "inhibit")
	return nil
}

// ReleaseSleep drops the sleep inhibitor, letting a pending suspend go on.
func (l *Logind) ReleaseSleep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.inhibitor == nil {
		return
	}
	if err := l.inhibitor.Close(); err != nil {
		l.log.Warn("failed to release sleep inhibitor", "error", err)
	}
	l.inhibitor = nil
}

// Close stops processing signals and closes the bus connection.
func (l *Logind) Close() error {
	l.once.Do(func() { close(l.done) })
	l.ReleaseSleep()
	l.conn.RemoveSignal(l.signals)
	return l.conn.Close()
}
