// Package display defines the protocol-neutral input and window events the
// locker consumes. The X11 binding in internal/x11 translates raw protocol
// events into these types.
package display

// Keycode is a hardware key code as reported by the display server.
type Keycode uint8

// Keysym is a keyboard symbol resolved from a keycode and modifier state.
type Keysym uint32

// Keysyms the locker interprets itself. Everything else is resolved to text.
const (
	KeyBackSpace Keysym = 0xff08
	KeyReturn    Keysym = 0xff0d
	KeyEscape    Keysym = 0xff1b
	KeyKPEnter   Keysym = 0xff8d
)

// Event is any raw event delivered by the display event source.
type Event interface {
	isEvent()
}

// Key is a key press or release on Window.
type Key struct {
	Window uint32
	Code   Keycode
	State  uint16
	Press  bool
}

// Button is a pointer button press or release on Window.
type Button struct {
	Window uint32
	X, Y   int16
	Button uint8
	Press  bool
}

// Motion is pointer movement on Window.
type Motion struct {
	Window uint32
	X, Y   int16
}

// ScreenChange reports a new geometry for the screen owning Root.
type ScreenChange struct {
	Root          uint32
	Width, Height uint16
}

// Map is sent when a client window is mapped.
type Map struct {
	Window uint32
}

// Configure is sent when a client window changes size, position or stacking.
type Configure struct {
	Window uint32
}

// KeyboardMapping is sent when the keyboard or modifier mapping changes.
type KeyboardMapping struct {
	First Keycode
	Count uint8
}

func (Key) isEvent()             {}
func (Button) isEvent()          {}
func (Motion) isEvent()          {}
func (ScreenChange) isEvent()    {}
func (Map) isEvent()             {}
func (Configure) isEvent()       {}
func (KeyboardMapping) isEvent() {}
