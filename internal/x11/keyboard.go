package x11

import (
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"github.com/lockward/lockward/internal/display"
)

// Keyboard resolves keycodes with the server's core keyboard mapping.
type Keyboard struct {
	d       *Display
	min     display.Keycode
	perCode int
	syms    []display.Keysym
	mods    modifiers
}

// NewKeyboard loads the current keyboard mapping.
func NewKeyboard(d *Display) (*Keyboard, error) {
	k := &Keyboard{d: d}
	if err := k.load(); err != nil {
		return nil, err
	}
	return k, nil
}

func (k *Keyboard) load() error {
	setup := k.d.setup
	lo, hi := setup.MinKeycode, setup.MaxKeycode

	reply, err := xproto.GetKeyboardMapping(k.d.conn, lo, byte(hi-lo+1)).Reply()
	if err != nil {
		return errors.Wrap(err, "failed to get keyboard mapping")
	}

	syms := make([]display.Keysym, len(reply.Keysyms))
	for i, s := range reply.Keysyms {
		syms[i] = display.Keysym(s)
	}

	k.min = display.Keycode(lo)
	k.perCode = int(reply.KeysymsPerKeycode)
	k.syms = syms

	mm, err := xproto.GetModifierMapping(k.d.conn).Reply()
	if err != nil {
		return errors.Wrap(err, "failed to get modifier mapping")
	}
	codes := make([]display.Keycode, len(mm.Keycodes))
	for i, c := range mm.Keycodes {
		codes[i] = display.Keycode(c)
	}
	k.mods = modifierMasks(codes, int(mm.KeycodesPerModifier), k.keysyms)
	return nil
}

// OwnsEvent reports whether ev is a keyboard or modifier mapping change.
func (k *Keyboard) OwnsEvent(ev display.Event) bool {
	_, ok := ev.(display.KeyboardMapping)
	return ok
}

// Handle reloads the mapping after a change.
func (k *Keyboard) Handle(ev display.Event) {
	if err := k.load(); err != nil {
		k.d.log.Warn("keeping stale keyboard mapping", "error", err)
	}
}

func (k *Keyboard) keysyms(code display.Keycode) []display.Keysym {
	if code < k.min || k.perCode == 0 {
		return nil
	}
	start := int(code-k.min) * k.perCode
	if start+k.perCode > len(k.syms) {
		return nil
	}
	return k.syms[start : start+k.perCode]
}

// Symbol returns the keysym for code under the modifier state.
func (k *Keyboard) Symbol(code display.Keycode, state uint16) (display.Keysym, bool) {
	sym := lookup(k.keysyms(code), state, k.mods)
	return sym, sym != noSymbol
}

// String returns the text code types under the modifier state.
func (k *Keyboard) String(code display.Keycode, state uint16) (string, bool) {
	sym, ok := k.Symbol(code, state)
	if !ok {
		return "", false
	}
	r, ok := keysymRune(sym)
	if !ok {
		return "", false
	}
	return string(r), true
}
