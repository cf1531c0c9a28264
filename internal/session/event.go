// Package session connects the locker to the desktop session: logind on the
// system bus and the org.freedesktop.ScreenSaver service on the session bus.
package session

// Event is delivered by Logind and ScreenSaver.
type Event interface {
	isEvent()
}

// Lock asks for the session to be locked now.
type Lock struct {
	Source string
}

// Unlock asks for the session to be unlocked without a password. Only
// logind sends it, on behalf of a privileged caller.
type Unlock struct{}

// Sleep reports that the system is about to suspend (true) or has resumed
// (false).
type Sleep struct {
	Sleeping bool
}

// Activity is synthetic user activity from a client.
type Activity struct{}

// SetActive asks for the screensaver to be started or stopped.
type SetActive struct {
	Active bool
}

func (Lock) isEvent()      {}
func (Unlock) isEvent()    {}
func (Sleep) isEvent()     {}
func (Activity) isEvent()  {}
func (SetActive) isEvent() {}

// Event sources.
const (
	SourceLogind = "logind"
	SourceDBus   = "dbus"
)

func deliver(ch chan<- Event, ev Event) bool {
	select {
	case ch <- ev:
		return true
	default:
		return false
	}
}
