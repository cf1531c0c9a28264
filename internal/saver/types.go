package saver

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Safety tells a screensaver how much of the input path the locker controls,
// so it can decide what is safe to show.
type Safety int

const (
	Low Safety = iota
	Medium
	High
)

func (s Safety) String() string {
	switch s {
	case High:
		return "high"
	case Medium:
		return "medium"
	default:
		return "low"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Safety) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Password is aggregate password-entry feedback. It never carries the typed
// characters.
type Password int

const (
	Insert Password = iota
	Delete
	Reset
	Check
	Success
	Failure
)

var passwordNames = [...]string{
	Insert:  "insert",
	Delete:  "delete",
	Reset:   "reset",
	Check:   "check",
	Success: "success",
	Failure: "failure",
}

func (p Password) String() string {
	if p < 0 || int(p) >= len(passwordNames) {
		return fmt.Sprintf("password(%d)", int(p))
	}
	return passwordNames[p]
}

// MarshalText implements encoding.TextMarshaler.
func (p Password) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(passwordNames) {
		return nil, errors.Errorf("unknown password feedback %d", int(p))
	}
	return []byte(passwordNames[p]), nil
}

// Pointer is a pointer event forwarded to a screensaver.
type Pointer interface {
	isPointer()
}

// Move is pointer motion in window coordinates.
type Move struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Button is a pointer button press or release in window coordinates.
type Button struct {
	X      int32 `json:"x"`
	Y      int32 `json:"y"`
	Button uint8 `json:"button"`
	Press  bool  `json:"press"`
}

func (Move) isPointer()   {}
func (Button) isPointer() {}

// Response is a lifecycle acknowledgement sent by the screensaver.
type Response int

const (
	Initialized Response = iota
	Started
	Stopped
)

func (r Response) String() string {
	switch r {
	case Initialized:
		return "initialized"
	case Started:
		return "started"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("response(%d)", int(r))
	}
}

func parseResponse(name string) (Response, error) {
	switch strings.ToLower(name) {
	case "initialized":
		return Initialized, nil
	case "started":
		return Started, nil
	case "stopped":
		return Stopped, nil
	default:
		return 0, errors.Errorf("unknown response %q", name)
	}
}

// Event is delivered on the channel returned by Take.
type Event interface {
	isEvent()
}

// Forward carries a protocol response from the screensaver.
type Forward struct {
	Response Response
}

// Exit is the last event of every screensaver. Err is the wait error, nil on
// a clean exit.
type Exit struct {
	Err error
}

func (Forward) isEvent() {}
func (Exit) isEvent()    {}
