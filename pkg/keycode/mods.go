package keycode

import "strings"

// Mods is a 5-bit modifier set: four modifier bits plus a right-hand flag
// that applies to all of them.
type Mods uint8

const (
	ModCtrl  Mods = 0x01
	ModShift Mods = 0x02
	ModAlt   Mods = 0x04
	ModGUI   Mods = 0x08
	ModRight Mods = 0x10

	ModLCtrl  = ModCtrl
	ModLShift = ModShift
	ModLAlt   = ModAlt
	ModLGUI   = ModGUI
	ModRCtrl  = ModRight | ModCtrl
	ModRShift = ModRight | ModShift
	ModRAlt   = ModRight | ModAlt
	ModRGUI   = ModRight | ModGUI

	// ModMeh is Ctrl+Shift+Alt.
	ModMeh = ModCtrl | ModShift | ModAlt
	// ModHyper is Ctrl+Shift+Alt+GUI.
	ModHyper = ModMeh | ModGUI
)

// HID returns the 8-bit modifier byte of a boot keyboard report.
func (m Mods) HID() uint8 {
	bits := uint8(m & 0x0F)
	if m&ModRight != 0 {
		return bits << 4
	}
	return bits
}

// Has reports whether every modifier bit of o is set in m, on either hand.
func (m Mods) Has(o Mods) bool {
	return m&o&0x0F == o&0x0F
}

// IsRight reports whether the set is right-handed.
func (m Mods) IsRight() bool {
	return m&ModRight != 0
}

// Keys returns the modifier keys for m, left-hand keys first.
func (m Mods) Keys() []Keycode {
	base := LCtrl
	if m.IsRight() {
		base = RCtrl
	}
	var out []Keycode
	for i := 0; i < 4; i++ {
		if m&(1<<i) != 0 {
			out = append(out, base+Keycode(i))
		}
	}
	return out
}

// HIDMask converts a modifier key to its report bit.
func HIDMask(kc Keycode) uint8 {
	if kc < LCtrl || kc > RGUI {
		return 0
	}
	return 1 << (kc - LCtrl)
}

func modForKey(kc Keycode) Mods {
	i := kc - LCtrl
	if i >= 4 {
		return ModRight | Mods(1)<<(i-4)
	}
	return Mods(1) << i
}

var modNames = []struct {
	bit  Mods
	name string
}{
	{ModCtrl, "CTL"},
	{ModShift, "SFT"},
	{ModAlt, "ALT"},
	{ModGUI, "GUI"},
}

// String renders m in MOD_ notation, e.g. "MOD_LSFT" or "MOD_MEH".
func (m Mods) String() string {
	switch m {
	case 0:
		return "0"
	case ModMeh:
		return "MOD_MEH"
	case ModHyper:
		return "MOD_HYPR"
	}
	side := "L"
	if m.IsRight() {
		side = "R"
	}
	var parts []string
	for _, mn := range modNames {
		if m&mn.bit != 0 {
			parts = append(parts, "MOD_"+side+mn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Label is the compact form used in rendered keymaps, e.g. "SFT" or "MEH".
func (m Mods) Label() string {
	switch m {
	case ModMeh:
		return "MEH"
	case ModHyper:
		return "HYPR"
	}
	var parts []string
	for _, mn := range modNames {
		if m&mn.bit != 0 {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "+")
}

// ParseMods parses MOD_ notation joined with "|".
func ParseMods(s string) (Mods, bool) {
	var out Mods
	for _, part := range strings.Split(s, "|") {
		p := strings.ToUpper(strings.TrimSpace(part))
		p = strings.TrimPrefix(p, "MOD_")
		switch p {
		case "MEH":
			out |= ModMeh
			continue
		case "HYPR", "HYPER":
			out |= ModHyper
			continue
		}
		if len(p) != 4 || (p[0] != 'L' && p[0] != 'R') {
			return 0, false
		}
		found := false
		for _, mn := range modNames {
			if p[1:] == mn.name {
				out |= mn.bit
				found = true
			}
		}
		if !found {
			return 0, false
		}
		if p[0] == 'R' {
			out |= ModRight
		}
	}
	return out, true
}
