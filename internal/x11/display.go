// Package x11 binds the locker to an X server through xgb.
package x11

import (
	"log/slog"
	"os"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/dpms"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/screensaver"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"github.com/lockward/lockward/internal/display"
)

// ErrNoScreens is returned by Open when the server reports no screens.
var ErrNoScreens = errors.New("x server has no screens")

// Display is a connection to the X server.
type Display struct {
	conn  *xgb.Conn
	name  string
	setup *xproto.SetupInfo

	randr       bool
	dpms        bool
	screensaver bool

	events chan display.Event
	log    *slog.Logger
}

// Open connects to the named display, or $DISPLAY when name is empty.
func Open(name string, log *slog.Logger) (*Display, error) {
	if log == nil {
		log = slog.Default()
	}

	conn, err := xgb.NewConnDisplay(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to X display %q", name)
	}

	setup := xproto.Setup(conn)
	if len(setup.Roots) == 0 {
		conn.Close()
		return nil, ErrNoScreens
	}

	if name == "" {
		name = os.Getenv("DISPLAY")
	}

	d := &Display{
		conn:   conn,
		name:   name,
		setup:  setup,
		events: make(chan display.Event, 64),
		log:    log.With("component", "x11", "display", name),
	}

	if err := randr.Init(conn); err != nil {
		d.log.Warn("randr unavailable, screen changes will not be tracked", "error", err)
	} else {
		d.randr = true
		for _, root := range setup.Roots {
			randr.SelectInput(conn, root.Root, randr.NotifyMaskScreenChange)
		}
	}

	if err := dpms.Init(conn); err != nil {
		d.log.Warn("dpms unavailable, screens will not be powered off", "error", err)
	} else {
		d.dpms = true
	}

	if err := screensaver.Init(conn); err != nil {
		d.log.Warn("screensaver extension unavailable", "error", err)
	} else {
		d.screensaver = true
	}

	go d.pump()

	return d, nil
}

// Close drops the connection, which also releases every grab.
func (d *Display) Close() {
	d.conn.Close()
}

// Name returns the display name.
func (d *Display) Name() string { return d.name }

// Screens returns the number of screens.
func (d *Display) Screens() int { return len(d.setup.Roots) }

// Events returns the translated event stream. It is closed when the
// connection drops.
func (d *Display) Events() <-chan display.Event { return d.events }

// Observe selects the structure events of window so newly mapped or
// reconfigured clients are noticed.
func (d *Display) Observe(window uint32) error {
	err := xproto.ChangeWindowAttributesChecked(d.conn, xproto.Window(window), xproto.CwEventMask,
		[]uint32{xproto.EventMaskStructureNotify | xproto.EventMaskSubstructureNotify}).Check()
	return errors.Wrapf(err, "failed to observe window %#x", window)
}

// Sanitize turns off the server's own screensaver and power timeouts so
// they do not fight the locker.
func (d *Display) Sanitize() {
	xproto.SetScreenSaver(d.conn, 0, 0, xproto.BlankingNotPreferred, xproto.ExposuresAllowed)

	if d.dpms {
		dpms.Enable(d.conn)
		dpms.SetTimeouts(d.conn, 0, 0, 0)
	}
}

// Power forces the monitors on or off.
func (d *Display) Power(on bool) {
	if !d.dpms {
		return
	}

	level := uint16(dpms.DPMSModeOff)
	if on {
		level = dpms.DPMSModeOn
	}

	dpms.Enable(d.conn)
	if err := dpms.ForceLevelChecked(d.conn, level).Check(); err != nil {
		d.log.Warn("failed to change monitor power", "on", on, "error", err)
	}
}

// IdleTime returns how long the server has seen no input.
func (d *Display) IdleTime() (time.Duration, error) {
	if !d.screensaver {
		return 0, errors.New("screensaver extension unavailable")
	}

	root := d.setup.DefaultScreen(d.conn).Root
	info, err := screensaver.QueryInfo(d.conn, xproto.Drawable(root)).Reply()
	if err != nil {
		return 0, errors.Wrap(err, "failed to query idle time")
	}
	return time.Duration(info.MsSinceUserInput) * time.Millisecond, nil
}

func (d *Display) screen(i int) *xproto.ScreenInfo {
	return &d.setup.Roots[i]
}

func (d *Display) pump() {
	defer close(d.events)

	for {
		ev, err := d.conn.WaitForEvent()
		if ev == nil && err == nil {
			d.log.Info("X connection closed")
			return
		}
		if err != nil {
			d.log.Debug("X error", "error", err)
			continue
		}

		if out := translate(ev); out != nil {
			d.events <- out
		}
	}
}

// translate converts the X events the locker cares about.
func translate(ev xgb.Event) display.Event {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		return display.Key{Window: uint32(e.Event), Code: display.Keycode(e.Detail), State: e.State, Press: true}
	case xproto.KeyReleaseEvent:
		return display.Key{Window: uint32(e.Event), Code: display.Keycode(e.Detail), State: e.State}

	case xproto.ButtonPressEvent:
		return display.Button{Window: uint32(e.Event), X: e.EventX, Y: e.EventY, Button: uint8(e.Detail), Press: true}
	case xproto.ButtonReleaseEvent:
		return display.Button{Window: uint32(e.Event), X: e.EventX, Y: e.EventY, Button: uint8(e.Detail)}

	case xproto.MotionNotifyEvent:
		return display.Motion{Window: uint32(e.Event), X: e.EventX, Y: e.EventY}

	case xproto.MapNotifyEvent:
		return display.Map{Window: uint32(e.Window)}
	case xproto.ConfigureNotifyEvent:
		return display.Configure{Window: uint32(e.Window)}

	case xproto.MappingNotifyEvent:
		if e.Request == xproto.MappingPointer {
			return nil
		}
		return display.KeyboardMapping{First: display.Keycode(e.FirstKeycode), Count: e.Count}

	case randr.ScreenChangeNotifyEvent:
		return display.ScreenChange{Root: uint32(e.Root), Width: e.Width, Height: e.Height}
	}

	return nil
}
