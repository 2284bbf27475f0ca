// Package keycode defines the 16-bit action codes stored in the keymap.
//
// The encoding follows the ranges used by QMK so that tables read the same
// as the firmware sources they describe:
//
//	0x0000-0x00FF  basic HID keyboard usages, mouse buttons, modifiers
//	0x0100-0x1FFF  basic key sent with modifiers (LSFT(KC_1) == KC_EXLM)
//	0x2000-0x3FFF  mod-tap
//	0x4000-0x4FFF  layer-tap
//	0x5200-0x52BF  layer actions (TO, MO, TG, OSL) and one-shot mods
//	0x7C00-0x7DFF  quantum keys (boot, caps word, repeat)
//	0x7E00-0x7E3F  keyboard-level keys (pointing device controls)
package keycode

import (
	"errors"

	"github.com/grovetools/dilemma/pkg/layer"
)

// Keycode is a single keymap action.
type Keycode uint16

// ErrUnknownKeycode is returned by Parse when a name cannot be resolved.
var ErrUnknownKeycode = errors.New("unknown keycode")

const (
	No          Keycode = 0x0000
	Transparent Keycode = 0x0001
)

// Basic HID keyboard usages.
const (
	A Keycode = 0x0004 + iota
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
	N1
	N2
	N3
	N4
	N5
	N6
	N7
	N8
	N9
	N0
	Enter
	Escape
	Backspace
	Tab
	Space
	Minus
	Equal
	LeftBracket
	RightBracket
	Backslash
	NonUSHash
	Semicolon
	Quote
	Grave
	Comma
	Dot
	Slash
	CapsLock
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	PrintScreen
	ScrollLock
	Pause
	Insert
	Home
	PageUp
	Delete
	End
	PageDown
	Right
	Left
	Down
	Up
)

// Mouse buttons.
const (
	MouseBtn1 Keycode = 0x00D1 + iota
	MouseBtn2
	MouseBtn3
)

// Modifier keys, in HID report bit order.
const (
	LCtrl Keycode = 0x00E0 + iota
	LShift
	LAlt
	LGUI
	RCtrl
	RShift
	RAlt
	RGUI
)

// Quantum keys.
const (
	Boot           Keycode = 0x7C00
	CapsWordToggle Keycode = 0x7C73
	Repeat         Keycode = 0x7C79
	AltRepeat      Keycode = 0x7C7A
)

// Pointing device keys of the Dilemma keyboard-level keymap.
const (
	DPIForward Keycode = 0x7E00 + iota
	DPIReverse
	SnipingDPIForward
	SnipingDPIReverse
	SnipingMode
	SnipingToggle
	DragScrollMode
	DragScrollToggle
)

// Shifted symbols.
var (
	Exclaim     = Modded(ModLShift, N1)
	At          = Modded(ModLShift, N2)
	Hash        = Modded(ModLShift, N3)
	Dollar      = Modded(ModLShift, N4)
	Percent     = Modded(ModLShift, N5)
	Circumflex  = Modded(ModLShift, N6)
	Ampersand   = Modded(ModLShift, N7)
	Asterisk    = Modded(ModLShift, N8)
	LeftParen   = Modded(ModLShift, N9)
	RightParen  = Modded(ModLShift, N0)
	Underscore  = Modded(ModLShift, Minus)
	Plus        = Modded(ModLShift, Equal)
	LeftCurly   = Modded(ModLShift, LeftBracket)
	RightCurly  = Modded(ModLShift, RightBracket)
	Pipe        = Modded(ModLShift, Backslash)
	Colon       = Modded(ModLShift, Semicolon)
	DoubleQuote = Modded(ModLShift, Quote)
	Tilde       = Modded(ModLShift, Grave)
	LessThan    = Modded(ModLShift, Comma)
	GreaterThan = Modded(ModLShift, Dot)
	Question    = Modded(ModLShift, Slash)
)

const (
	rangeModsStart       Keycode = 0x0100
	rangeModsEnd         Keycode = 0x1FFF
	rangeModTapStart     Keycode = 0x2000
	rangeModTapEnd       Keycode = 0x3FFF
	rangeLayerTapStart   Keycode = 0x4000
	rangeLayerTapEnd     Keycode = 0x4FFF
	rangeToStart         Keycode = 0x5200
	rangeMomentaryStart  Keycode = 0x5220
	rangeToggleStart     Keycode = 0x5260
	rangeOneShotLayer    Keycode = 0x5280
	rangeOneShotModStart Keycode = 0x52A0
	rangeOneShotModEnd   Keycode = 0x52BF
	rangePointingEnd     Keycode = 0x7E3F
)

// Kind classifies a keycode by how the host processes it.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindNone
	KindTransparent
	KindBasic
	KindModifier
	KindMouseButton
	KindModded
	KindModTap
	KindLayerTap
	KindLayerTo
	KindLayerMomentary
	KindLayerToggle
	KindOneShotLayer
	KindOneShotMod
	KindBoot
	KindCapsWordToggle
	KindRepeat
	KindAltRepeat
	KindPointing
)

var kindNames = map[Kind]string{
	KindUnknown:        "unknown",
	KindNone:           "none",
	KindTransparent:    "transparent",
	KindBasic:          "basic",
	KindModifier:       "modifier",
	KindMouseButton:    "mouse_button",
	KindModded:         "modded",
	KindModTap:         "mod_tap",
	KindLayerTap:       "layer_tap",
	KindLayerTo:        "layer_to",
	KindLayerMomentary: "layer_momentary",
	KindLayerToggle:    "layer_toggle",
	KindOneShotLayer:   "one_shot_layer",
	KindOneShotMod:     "one_shot_mod",
	KindBoot:           "boot",
	KindCapsWordToggle: "caps_word_toggle",
	KindRepeat:         "repeat",
	KindAltRepeat:      "alt_repeat",
	KindPointing:       "pointing",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Kind returns the class of kc.
func (kc Keycode) Kind() Kind {
	switch {
	case kc == No:
		return KindNone
	case kc == Transparent:
		return KindTransparent
	case kc >= MouseBtn1 && kc <= MouseBtn3:
		return KindMouseButton
	case kc >= LCtrl && kc <= RGUI:
		return KindModifier
	case kc >= A && kc <= 0x00FF:
		return KindBasic
	case kc >= rangeModsStart && kc <= rangeModsEnd:
		return KindModded
	case kc >= rangeModTapStart && kc <= rangeModTapEnd:
		return KindModTap
	case kc >= rangeLayerTapStart && kc <= rangeLayerTapEnd:
		return KindLayerTap
	case kc >= rangeToStart && kc < rangeToStart+0x20:
		return KindLayerTo
	case kc >= rangeMomentaryStart && kc < rangeMomentaryStart+0x20:
		return KindLayerMomentary
	case kc >= rangeToggleStart && kc < rangeToggleStart+0x20:
		return KindLayerToggle
	case kc >= rangeOneShotLayer && kc < rangeOneShotLayer+0x20:
		return KindOneShotLayer
	case kc >= rangeOneShotModStart && kc <= rangeOneShotModEnd:
		return KindOneShotMod
	case kc == Boot:
		return KindBoot
	case kc == CapsWordToggle:
		return KindCapsWordToggle
	case kc == Repeat:
		return KindRepeat
	case kc == AltRepeat:
		return KindAltRepeat
	case kc >= DPIForward && kc <= rangePointingEnd:
		return KindPointing
	}
	return KindUnknown
}

// Modded returns kc sent together with mods, e.g. Modded(ModLShift, N1) is "!".
func Modded(m Mods, kc Keycode) Keycode {
	return Keycode(m&0x1F)<<8 | kc&0xFF
}

// ModTap returns a key that sends kc on tap and holds mods.
func ModTap(m Mods, kc Keycode) Keycode {
	return rangeModTapStart | Keycode(m&0x1F)<<8 | kc&0xFF
}

// LayerTap returns a key that sends kc on tap and activates l while held.
func LayerTap(l layer.Layer, kc Keycode) Keycode {
	return rangeLayerTapStart | Keycode(l&0x0F)<<8 | kc&0xFF
}

// To returns a key that activates l and deactivates every other layer.
func To(l layer.Layer) Keycode {
	return rangeToStart | Keycode(l&0x1F)
}

// Momentary returns a key that activates l while held.
func Momentary(l layer.Layer) Keycode {
	return rangeMomentaryStart | Keycode(l&0x1F)
}

// Toggle returns a key that toggles l.
func Toggle(l layer.Layer) Keycode {
	return rangeToggleStart | Keycode(l&0x1F)
}

// OneShotLayer returns a key that activates l for the next key press.
func OneShotLayer(l layer.Layer) Keycode {
	return rangeOneShotLayer | Keycode(l&0x1F)
}

// OneShotMod returns a key that applies mods to the next key press.
func OneShotMod(m Mods) Keycode {
	return rangeOneShotModStart | Keycode(m&0x1F)
}

// Basic returns the HID usage carried by modded, mod-tap and layer-tap keys,
// and kc itself for basic keys and modifiers.
func (kc Keycode) Basic() Keycode {
	switch kc.Kind() {
	case KindBasic, KindModifier, KindMouseButton:
		return kc
	case KindModded, KindModTap, KindLayerTap:
		return kc & 0xFF
	}
	return No
}

// Mods returns the modifiers carried by kc. A modifier key carries its own
// modifier.
func (kc Keycode) Mods() Mods {
	switch kc.Kind() {
	case KindModded, KindModTap:
		return Mods(kc>>8) & 0x1F
	case KindOneShotMod:
		return Mods(kc) & 0x1F
	case KindModifier:
		return modForKey(kc)
	}
	return 0
}

// Layer returns the layer targeted by layer actions.
func (kc Keycode) Layer() (layer.Layer, bool) {
	switch kc.Kind() {
	case KindLayerTap:
		return layer.Layer(kc>>8) & 0x0F, true
	case KindLayerTo, KindLayerMomentary, KindLayerToggle, KindOneShotLayer:
		return layer.Layer(kc & 0x1F), true
	}
	return 0, false
}

// IsAlpha reports whether kc is one of the letter keys A-Z.
func (kc Keycode) IsAlpha() bool {
	return kc >= A && kc <= Z
}

// IsDigit reports whether kc is one of the number row keys.
func (kc Keycode) IsDigit() bool {
	return kc >= N1 && kc <= N0
}

// IsOneShotShift reports whether kc is a one-shot shift on either hand.
func (kc Keycode) IsOneShotShift() bool {
	return kc == OneShotMod(ModLShift) || kc == OneShotMod(ModRShift)
}
