package x11

import (
	"unicode"

	"github.com/jezek/xgb/xproto"

	"github.com/lockward/lockward/internal/display"
)

// noSymbol is the X11 NoSymbol keysym.
const noSymbol display.Keysym = 0

// unicodeOffset marks keysyms that encode a Unicode code point directly.
const unicodeOffset = 0x01000000

// Keysyms that act as modifiers in the core keyboard model.
const (
	keyModeSwitch  display.Keysym = 0xff7e
	keyNumLock     display.Keysym = 0xff7f
	keyLevel3Shift display.Keysym = 0xfe03
)

// keysymRune maps a keysym to the character it types: Latin-1, the legacy
// character sets, directly encoded Unicode and the keypad digits and
// operators. Everything else is not text.
func keysymRune(sym display.Keysym) (rune, bool) {
	switch {
	case sym >= 0x20 && sym <= 0x7e, sym >= 0xa0 && sym <= 0xff:
		return rune(sym), true

	case sym >= unicodeOffset+0x20 && sym <= unicodeOffset+0x10ffff:
		r := rune(sym - unicodeOffset)
		return r, unicode.IsPrint(r)

	case sym >= 0xffb0 && sym <= 0xffb9:
		return rune('0' + sym - 0xffb0), true
	}

	if r, ok := legacyKeysyms[sym]; ok {
		return r, unicode.IsPrint(r)
	}

	switch sym {
	case 0xff80:
		return ' ', true
	case 0xffaa:
		return '*', true
	case 0xffab:
		return '+', true
	case 0xffac:
		return ',', true
	case 0xffad:
		return '-', true
	case 0xffae:
		return '.', true
	case 0xffaf:
		return '/', true
	case 0xffbd:
		return '=', true
	}

	return 0, false
}

func isKeypad(sym display.Keysym) bool {
	return sym >= 0xff80 && sym <= 0xffbd
}

func upper(sym display.Keysym) display.Keysym {
	r, ok := keysymRune(sym)
	if !ok || !unicode.IsLower(r) {
		return sym
	}
	u := unicode.ToUpper(r)
	if u <= 0xff {
		return display.Keysym(u)
	}
	return display.Keysym(u) + unicodeOffset
}

// modifiers holds the state bits bound to Num_Lock, Mode_switch and
// ISO_Level3_Shift. A zero mask means no modifier carries that keysym.
type modifiers struct {
	numLock    uint16
	modeSwitch uint16
	level3     uint16
}

// modifierMasks finds the modifier bits whose keycodes produce the special
// keysyms. keycodes is the modifier map: perModifier keycodes for each of
// the eight modifiers, zero for unused slots.
func modifierMasks(keycodes []display.Keycode, perModifier int, keysyms func(display.Keycode) []display.Keysym) modifiers {
	var m modifiers
	for i, code := range keycodes {
		if code == 0 || perModifier == 0 {
			continue
		}
		bit := uint16(1) << (i / perModifier)
		for _, sym := range keysyms(code) {
			switch sym {
			case keyNumLock:
				m.numLock |= bit
			case keyModeSwitch:
				m.modeSwitch |= bit
			case keyLevel3Shift:
				m.level3 |= bit
			}
		}
	}
	return m
}

func pair(syms []display.Keysym, at int) (display.Keysym, display.Keysym) {
	first, second := noSymbol, noSymbol
	if at < len(syms) {
		first = syms[at]
	}
	if at+1 < len(syms) {
		second = syms[at+1]
	}
	return first, second
}

// lookup picks the keysym from a key's core protocol mapping given the
// modifier state. Mode_switch selects the second group; ISO_Level3_Shift
// selects the pair the server lists after both groups. An empty group
// falls back to the first.
func lookup(syms []display.Keysym, state uint16, mods modifiers) display.Keysym {
	first, second := pair(syms, 0)

	switch {
	case mods.level3 != 0 && state&mods.level3 != 0:
		if k1, k2 := pair(syms, 4); k1 != noSymbol {
			first, second = k1, k2
		}
	case mods.modeSwitch != 0 && state&mods.modeSwitch != 0:
		if k1, k2 := pair(syms, 2); k1 != noSymbol {
			first, second = k1, k2
		}
	}

	if first == noSymbol {
		return second
	}
	if second == noSymbol {
		second = upper(first)
	}

	shift := state&xproto.ModMaskShift != 0
	caps := state&xproto.ModMaskLock != 0

	switch {
	case mods.numLock != 0 && state&mods.numLock != 0 && isKeypad(second):
		if shift {
			return first
		}
		return second
	case !shift && !caps:
		return first
	case !shift:
		return upper(first)
	case caps:
		return upper(second)
	default:
		return second
	}
}
