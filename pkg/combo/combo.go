// Package combo declares the chorded key combinations of the Dilemma keymap
// and the matching rules the host combo engine applies to them.
package combo

import (
	"strings"

	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/layer"
)

// Kind classifies what a combo does when it fires.
type Kind int

const (
	// KindEmit sends a substitute keycode.
	KindEmit Kind = iota
	// KindLayerReset activates one layer and deactivates all others.
	KindLayerReset
	// KindOneShotMod arms a single-use modifier for the next key.
	KindOneShotMod
)

func (k Kind) String() string {
	switch k {
	case KindLayerReset:
		return "layer_reset"
	case KindOneShotMod:
		return "one_shot_mod"
	}
	return "emit"
}

// Combo maps a set of simultaneously held keycodes to one action.
type Combo struct {
	Name   string
	Keys   []keycode.Keycode
	Result keycode.Keycode
}

// Kind returns the class of the combo's result.
func (c Combo) Kind() Kind {
	switch c.Result.Kind() {
	case keycode.KindLayerTo:
		return KindLayerReset
	case keycode.KindOneShotMod:
		return KindOneShotMod
	}
	return KindEmit
}

// Has reports whether k is one of the trigger keys.
func (c Combo) Has(k keycode.Keycode) bool {
	for _, t := range c.Keys {
		if t == k {
			return true
		}
	}
	return false
}

// Trigger renders the trigger keys as "KC_Q+KC_W".
func (c Combo) Trigger() string {
	parts := make([]string, len(c.Keys))
	for i, k := range c.Keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, "+")
}

func def(name string, result keycode.Keycode, keys ...keycode.Keycode) Combo {
	return Combo{Name: name, Keys: keys, Result: result}
}

// Defaults returns the stock combo table. Each call returns a fresh slice.
func Defaults() []Combo {
	toBase := keycode.To(layer.Base)
	return []Combo{
		def("QW_ESC", keycode.Escape, keycode.Q, keycode.W),
		def("ER_TAB", keycode.Tab, keycode.E, keycode.R),
		def("UI_DEL", keycode.Delete, keycode.U, keycode.I),
		def("OP_BKSPC", keycode.Backspace, keycode.O, keycode.P),

		// Q+P positions on each layer return to base.
		def("QP_BASE", toBase, keycode.Q, keycode.P),
		def("QP_BASE_NUM", toBase, keycode.F1, keycode.Minus),
		def("QP_BASE_SYM", toBase, keycode.Exclaim, keycode.Grave),

		def("AS_SHFT", keycode.OneShotMod(keycode.ModLShift), keycode.A, keycode.S),
		def("SD_CTRL", keycode.OneShotMod(keycode.ModLCtrl), keycode.S, keycode.D),
		def("DF_ALT", keycode.OneShotMod(keycode.ModLAlt), keycode.D, keycode.F),
		def("ASD_GUI", keycode.OneShotMod(keycode.ModLGUI), keycode.A, keycode.S, keycode.D),
		def("ZC_MEH", keycode.OneShotMod(keycode.ModMeh), keycode.Z, keycode.C),

		def("LQUOT_SHFT", keycode.OneShotMod(keycode.ModRShift), keycode.L, keycode.Quote),
		def("KL_CTRL", keycode.OneShotMod(keycode.ModRCtrl), keycode.K, keycode.L),
		def("JK_ALT", keycode.OneShotMod(keycode.ModRAlt), keycode.J, keycode.K),
		def("KLQ_GUI", keycode.OneShotMod(keycode.ModRGUI), keycode.K, keycode.L, keycode.Quote),
		def("COMSLSH_MEH", keycode.OneShotMod(keycode.ModMeh), keycode.Comma, keycode.Slash),
	}
}

// Find returns the combo with the given name.
func Find(combos []Combo, name string) (Combo, bool) {
	for _, c := range combos {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Combo{}, false
}
