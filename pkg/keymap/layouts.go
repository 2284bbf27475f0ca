package keymap

import (
	kc "github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/layer"
)

const (
	___ = kc.Transparent
	xxx = kc.No
)

var (
	oslNum = kc.OneShotLayer(layer.Numeral)
	oslSym = kc.OneShotLayer(layer.Symbols)
)

// BaseLayout is plain QWERTY without mod-taps. Modifiers come from combos.
var BaseLayout = Layout{
	kc.Q, kc.W, kc.E, kc.R, kc.T,
	kc.Y, kc.U, kc.I, kc.O, kc.P,
	kc.A, kc.S, kc.D, kc.F, kc.G,
	kc.H, kc.J, kc.K, kc.L, kc.Quote,
	kc.Z, kc.X, kc.C, kc.V, kc.B,
	kc.N, kc.M, kc.Comma, kc.Dot, kc.Slash,
	oslNum, kc.Space,
	kc.Enter, oslSym,
}

// NumeralLayout has function keys on the left and a numpad on the right,
// with repeat keys and the caps word toggle on the bottom left.
var NumeralLayout = Layout{
	kc.F1, kc.F2, kc.F3, kc.F4, kc.F5,
	kc.Slash, kc.N7, kc.N8, kc.N9, kc.Minus,
	kc.F6, kc.F7, kc.F8, kc.F9, kc.F10,
	kc.Asterisk, kc.N4, kc.N5, kc.N6, kc.Plus,
	kc.F11, kc.F12, kc.Repeat, kc.AltRepeat, kc.CapsWordToggle,
	kc.Equal, kc.N1, kc.N2, kc.N3, kc.Dot,
	xxx, ___,
	___, kc.N0,
}

// SymbolsLayout pairs brackets symmetrically around the home row.
var SymbolsLayout = Layout{
	kc.Exclaim, kc.At, kc.Hash, kc.Dollar, kc.Percent,
	kc.Circumflex, kc.Ampersand, kc.Asterisk, kc.Tilde, kc.Grave,
	kc.LessThan, kc.LeftCurly, kc.LeftBracket, kc.LeftParen, kc.Minus,
	kc.Equal, kc.RightParen, kc.RightBracket, kc.RightCurly, kc.GreaterThan,
	kc.Backslash, kc.Pipe, kc.Underscore, kc.Plus, kc.Grave,
	kc.Tilde, kc.Slash, kc.Colon, kc.Semicolon, kc.Question,
	___, ___,
	___, xxx,
}

// NavigationLayout puts vim-style arrows on the right home row. It is only
// reachable through the Numeral+Symbols tri-layer.
var NavigationLayout = Layout{
	xxx, xxx, xxx, xxx, xxx,
	xxx, xxx, xxx, xxx, xxx,
	xxx, xxx, xxx, xxx, xxx,
	kc.Left, kc.Down, kc.Up, kc.Right, kc.CapsLock,
	xxx, xxx, xxx, xxx, xxx,
	kc.Home, kc.PageDown, kc.PageUp, kc.End, kc.Insert,
	___, ___,
	kc.Enter, kc.Backspace,
}

// PointerLayout holds mouse buttons, pointer controls and plain home row
// modifiers.
var PointerLayout = Layout{
	kc.Boot, xxx, xxx, kc.DPIForward, kc.SnipingDPIForward,
	kc.SnipingDPIForward, kc.DPIForward, xxx, xxx, kc.Boot,
	kc.LGUI, kc.LAlt, kc.LCtrl, kc.LShift, xxx,
	xxx, kc.RShift, kc.RCtrl, kc.RAlt, kc.RGUI,
	___, kc.DragScrollMode, kc.SnipingMode, kc.MouseBtn3, xxx,
	xxx, kc.MouseBtn3, kc.SnipingMode, kc.DragScrollMode, ___,
	kc.MouseBtn2, kc.MouseBtn1,
	kc.MouseBtn1, kc.MouseBtn2,
}
