package x11

import (
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
)

const inputMask = xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion | xproto.EventMaskStructureNotify

// Window is the override-redirect lock window covering one screen.
type Window struct {
	d      *Display
	id     xproto.Window
	root   xproto.Window
	screen int
	black  uint32
	cursor xproto.Cursor

	locked   bool
	keyboard bool
	pointer  bool
}

// CreateWindow creates the unmapped lock window for screen.
func (d *Display) CreateWindow(screen int) (*Window, error) {
	if screen < 0 || screen >= d.Screens() {
		return nil, errors.Errorf("screen %d out of range", screen)
	}
	info := d.screen(screen)

	wid, err := xproto.NewWindowId(d.conn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate window id")
	}

	err = xproto.CreateWindowChecked(
		d.conn,
		info.RootDepth,
		wid,
		info.Root,
		0, 0,
		info.WidthInPixels, info.HeightInPixels,
		0,
		xproto.WindowClassInputOutput,
		info.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{info.BlackPixel, 1, inputMask},
	).Check()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create lock window on screen %d", screen)
	}

	w := &Window{
		d:      d,
		id:     wid,
		root:   info.Root,
		screen: screen,
		black:  info.BlackPixel,
	}

	if cursor, err := w.invisibleCursor(); err != nil {
		d.log.Warn("failed to create invisible cursor", "screen", screen, "error", err)
	} else {
		w.cursor = cursor
		xproto.ChangeWindowAttributes(d.conn, wid, xproto.CwCursor, []uint32{uint32(cursor)})
	}

	return w, nil
}

func (w *Window) invisibleCursor() (xproto.Cursor, error) {
	conn := w.d.conn

	pixmap, err := xproto.NewPixmapId(conn)
	if err != nil {
		return 0, err
	}
	if err := xproto.CreatePixmapChecked(conn, 1, pixmap, xproto.Drawable(w.root), 1, 1).Check(); err != nil {
		return 0, err
	}
	defer xproto.FreePixmap(conn, pixmap)

	cursor, err := xproto.NewCursorId(conn)
	if err != nil {
		return 0, err
	}
	err = xproto.CreateCursorChecked(conn, cursor, pixmap, pixmap, 0, 0, 0, 0, 0, 0, 0, 0).Check()
	return cursor, err
}

func (w *Window) ID() uint32   { return uint32(w.id) }
func (w *Window) Root() uint32 { return uint32(w.root) }
func (w *Window) Screen() int  { return w.screen }

// HasKeyboard reports whether the window holds the keyboard grab.
func (w *Window) HasKeyboard() bool { return w.keyboard }

// HasPointer reports whether the window holds the pointer grab.
func (w *Window) HasPointer() bool { return w.pointer }

// Lock maps and raises the window and grabs input. Failing to grab is not
// an error: another client may hold the grab, which is what HasKeyboard and
// HasPointer report.
func (w *Window) Lock() error {
	conn := w.d.conn

	if err := xproto.MapWindowChecked(conn, w.id).Check(); err != nil {
		return errors.Wrap(err, "failed to map lock window")
	}
	w.raise()
	w.locked = true
	w.grab()

	return nil
}

// Unlock releases input and unmaps the window.
func (w *Window) Unlock() error {
	conn := w.d.conn

	if w.keyboard {
		xproto.UngrabKeyboard(conn, xproto.TimeCurrentTime)
	}
	if w.pointer {
		xproto.UngrabPointer(conn, xproto.TimeCurrentTime)
	}
	w.keyboard, w.pointer = false, false
	w.locked = false

	if err := xproto.UnmapWindowChecked(conn, w.id).Check(); err != nil {
		return errors.Wrap(err, "failed to unmap lock window")
	}
	return nil
}

// Blank paints the window black.
func (w *Window) Blank() {
	xproto.ChangeWindowAttributes(w.d.conn, w.id, xproto.CwBackPixel, []uint32{w.black})
	xproto.ClearArea(w.d.conn, false, w.id, 0, 0, 0, 0)
}

// Power blanks the window when the monitors go off.
func (w *Window) Power(on bool) {
	if !on {
		w.Blank()
	}
}

// Resize follows a screen geometry change.
func (w *Window) Resize(width, height uint32) {
	xproto.ConfigureWindow(w.d.conn, w.id, xproto.ConfigWindowWidth|xproto.ConfigWindowHeight, []uint32{width, height})
}

// Sanitize keeps a locked window on top and retries any lost grab.
func (w *Window) Sanitize() {
	if !w.locked {
		return
	}
	w.raise()
	w.grab()
}

func (w *Window) raise() {
	xproto.ConfigureWindow(w.d.conn, w.id, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
}

func (w *Window) grab() {
	conn := w.d.conn

	if !w.keyboard {
		reply, err := xproto.GrabKeyboard(conn, false, w.id, xproto.TimeCurrentTime,
			xproto.GrabModeAsync, xproto.GrabModeAsync).Reply()
		w.keyboard = err == nil && reply.Status == xproto.GrabStatusSuccess
		if w.keyboard {
			xproto.SetInputFocus(conn, xproto.InputFocusPointerRoot, w.id, xproto.TimeCurrentTime)
		}
	}

	if !w.pointer {
		reply, err := xproto.GrabPointer(conn, false, w.id,
			xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
			xproto.GrabModeAsync, xproto.GrabModeAsync, xproto.WindowNone, w.cursor, xproto.TimeCurrentTime).Reply()
		w.pointer = err == nil && reply.Status == xproto.GrabStatusSuccess
	}
}
