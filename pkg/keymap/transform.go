package keymap

import (
	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/layer"
)

var homeRowGACS = map[int]keycode.Mods{
	10: keycode.ModLGUI,
	11: keycode.ModLAlt,
	12: keycode.ModLCtrl,
	13: keycode.ModLShift,
	16: keycode.ModRShift,
	17: keycode.ModRCtrl,
	18: keycode.ModRAlt,
	19: keycode.ModRGUI,
}

// HomeRowModGACS turns the home row into GUI/Alt/Ctrl/Shift mod-taps,
// mirrored on the right hand. The inner index columns are left alone. Keys
// that are not basic keycodes cannot carry a mod-tap and are kept as is.
func HomeRowModGACS(l Layout) Layout {
	for i, m := range homeRowGACS {
		if l[i].Kind() == keycode.KindBasic {
			l[i] = keycode.ModTap(m, l[i])
		}
	}
	return l
}

// PointerMod makes the outer bottom-row keys hold the pointer layer.
func PointerMod(l Layout) Layout {
	for _, i := range []int{20, 29} {
		if l[i].Kind() == keycode.KindBasic {
			l[i] = keycode.LayerTap(layer.Pointer, l[i])
		}
	}
	return l
}

// WithoutPointing replaces the pointing device keys by KC_NO, for builds
// without a pointing device.
func WithoutPointing(l Layout) Layout {
	for i, k := range l {
		if k.Kind() == keycode.KindPointing {
			l[i] = keycode.No
		}
	}
	return l
}
