package keycode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grovetools/dilemma/pkg/layer"
)

type nameEntry struct {
	code    Keycode
	name    string
	label   string
	aliases []string
}

var table = []nameEntry{
	{No, "KC_NO", "", []string{"XXXXXXX"}},
	{Transparent, "KC_TRNS", "▽", []string{"KC_TRANSPARENT", "_______"}},
	{Enter, "KC_ENT", "ENT", []string{"KC_ENTER"}},
	{Escape, "KC_ESC", "ESC", []string{"KC_ESCAPE"}},
	{Backspace, "KC_BSPC", "BSPC", []string{"KC_BACKSPACE"}},
	{Tab, "KC_TAB", "TAB", nil},
	{Space, "KC_SPC", "SPC", []string{"KC_SPACE"}},
	{Minus, "KC_MINS", "-", []string{"KC_MINUS"}},
	{Equal, "KC_EQL", "=", []string{"KC_EQUAL"}},
	{LeftBracket, "KC_LBRC", "[", []string{"KC_LEFT_BRACKET"}},
	{RightBracket, "KC_RBRC", "]", []string{"KC_RIGHT_BRACKET"}},
	{Backslash, "KC_BSLS", "\\", []string{"KC_BACKSLASH"}},
	{NonUSHash, "KC_NUHS", "#~", nil},
	{Semicolon, "KC_SCLN", ";", []string{"KC_SEMICOLON"}},
	{Quote, "KC_QUOT", "'", []string{"KC_QUOTE"}},
	{Grave, "KC_GRV", "`", []string{"KC_GRAVE"}},
	{Comma, "KC_COMM", ",", []string{"KC_COMMA"}},
	{Dot, "KC_DOT", ".", nil},
	{Slash, "KC_SLSH", "/", []string{"KC_SLASH"}},
	{CapsLock, "KC_CAPS", "CAPS", []string{"KC_CAPS_LOCK"}},
	{PrintScreen, "KC_PSCR", "PSCR", nil},
	{ScrollLock, "KC_SCRL", "SCRL", nil},
	{Pause, "KC_PAUS", "PAUS", nil},
	{Insert, "KC_INS", "INS", []string{"KC_INSERT"}},
	{Home, "KC_HOME", "HOME", nil},
	{PageUp, "KC_PGUP", "PGUP", []string{"KC_PAGE_UP"}},
	{Delete, "KC_DEL", "DEL", []string{"KC_DELETE"}},
	{End, "KC_END", "END", nil},
	{PageDown, "KC_PGDN", "PGDN", []string{"KC_PAGE_DOWN"}},
	{Right, "KC_RGHT", "→", []string{"KC_RIGHT"}},
	{Left, "KC_LEFT", "←", nil},
	{Down, "KC_DOWN", "↓", nil},
	{Up, "KC_UP", "↑", nil},
	{MouseBtn1, "KC_BTN1", "BTN1", []string{"MS_BTN1", "KC_MS_BTN1"}},
	{MouseBtn2, "KC_BTN2", "BTN2", []string{"MS_BTN2", "KC_MS_BTN2"}},
	{MouseBtn3, "KC_BTN3", "BTN3", []string{"MS_BTN3", "KC_MS_BTN3"}},
	{LCtrl, "KC_LCTL", "LCTL", []string{"KC_LEFT_CTRL"}},
	{LShift, "KC_LSFT", "LSFT", []string{"KC_LEFT_SHIFT"}},
	{LAlt, "KC_LALT", "LALT", []string{"KC_LEFT_ALT"}},
	{LGUI, "KC_LGUI", "LGUI", []string{"KC_LEFT_GUI"}},
	{RCtrl, "KC_RCTL", "RCTL", []string{"KC_RIGHT_CTRL"}},
	{RShift, "KC_RSFT", "RSFT", []string{"KC_RIGHT_SHIFT"}},
	{RAlt, "KC_RALT", "RALT", []string{"KC_RIGHT_ALT"}},
	{RGUI, "KC_RGUI", "RGUI", []string{"KC_RIGHT_GUI"}},
	{Boot, "QK_BOOT", "BOOT", []string{"QK_BOOTLOADER", "RESET"}},
	{CapsWordToggle, "CW_TOGG", "CAPSW", []string{"QK_CAPS_WORD_TOGGLE"}},
	{Repeat, "QK_REP", "REP", []string{"QK_REPEAT_KEY"}},
	{AltRepeat, "QK_AREP", "AREP", []string{"QK_ALT_REPEAT_KEY"}},
	{DPIForward, "DPI_MOD", "DPI+", []string{"POINTER_DEFAULT_DPI_FORWARD"}},
	{DPIReverse, "DPI_RMOD", "DPI-", []string{"POINTER_DEFAULT_DPI_REVERSE"}},
	{SnipingDPIForward, "S_D_MOD", "SDPI+", []string{"POINTER_SNIPING_DPI_FORWARD"}},
	{SnipingDPIReverse, "S_D_RMOD", "SDPI-", []string{"POINTER_SNIPING_DPI_REVERSE"}},
	{SnipingMode, "SNIPING", "SNIPE", []string{"SNIPING_MODE"}},
	{SnipingToggle, "SNP_TOG", "SNIPE⇄", []string{"SNIPING_MODE_TOGGLE"}},
	{DragScrollMode, "DRGSCRL", "DRAG", []string{"DRAGSCROLL_MODE"}},
	{DragScrollToggle, "DRG_TOG", "DRAG⇄", []string{"DRAGSCROLL_MODE_TOGGLE"}},
	{Exclaim, "KC_EXLM", "!", []string{"KC_EXCLAIM"}},
	{At, "KC_AT", "@", nil},
	{Hash, "KC_HASH", "#", nil},
	{Dollar, "KC_DLR", "$", []string{"KC_DOLLAR"}},
	{Percent, "KC_PERC", "%", []string{"KC_PERCENT"}},
	{Circumflex, "KC_CIRC", "^", []string{"KC_CIRCUMFLEX"}},
	{Ampersand, "KC_AMPR", "&", []string{"KC_AMPERSAND"}},
	{Asterisk, "KC_ASTR", "*", []string{"KC_ASTERISK"}},
	{LeftParen, "KC_LPRN", "(", []string{"KC_LEFT_PAREN"}},
	{RightParen, "KC_RPRN", ")", []string{"KC_RIGHT_PAREN"}},
	{Underscore, "KC_UNDS", "_", []string{"KC_UNDERSCORE"}},
	{Plus, "KC_PLUS", "+", nil},
	{LeftCurly, "KC_LCBR", "{", []string{"KC_LEFT_CURLY_BRACE"}},
	{RightCurly, "KC_RCBR", "}", []string{"KC_RIGHT_CURLY_BRACE"}},
	{Pipe, "KC_PIPE", "|", nil},
	{Colon, "KC_COLN", ":", []string{"KC_COLON"}},
	{DoubleQuote, "KC_DQUO", "\"", []string{"KC_DOUBLE_QUOTE"}},
	{Tilde, "KC_TILD", "~", []string{"KC_TILDE"}},
	{LessThan, "KC_LABK", "<", []string{"KC_LT", "KC_LEFT_ANGLE_BRACKET"}},
	{GreaterThan, "KC_RABK", ">", []string{"KC_GT", "KC_RIGHT_ANGLE_BRACKET"}},
	{Question, "KC_QUES", "?", []string{"KC_QUESTION"}},
}

var (
	byCode = map[Keycode]*nameEntry{}
	byName = map[string]Keycode{}
)

func init() {
	for c := A; c <= Z; c++ {
		l := string(rune('A' + c - A))
		table = append(table, nameEntry{code: c, name: "KC_" + l, label: l})
	}
	digits := "1234567890"
	for i, c := 0, N1; c <= N0; i, c = i+1, c+1 {
		d := string(digits[i])
		table = append(table, nameEntry{code: c, name: "KC_" + d, label: d})
	}
	for i, c := 1, F1; c <= F12; i, c = i+1, c+1 {
		n := "F" + strconv.Itoa(i)
		table = append(table, nameEntry{code: c, name: "KC_" + n, label: n})
	}
	for i := range table {
		e := &table[i]
		byCode[e.code] = e
		byName[e.name] = e.code
		for _, a := range e.aliases {
			byName[a] = e.code
		}
	}
}

// String returns the canonical name of kc, e.g. "KC_A", "OSM(MOD_LSFT)",
// "TO(base)" or "LT(pointer,KC_Z)".
func (kc Keycode) String() string {
	if e, ok := byCode[kc]; ok {
		return e.name
	}
	switch kc.Kind() {
	case KindModded:
		return fmt.Sprintf("%s(%s)", modWrapper(kc.Mods()), kc.Basic())
	case KindModTap:
		return fmt.Sprintf("MT(%s,%s)", kc.Mods(), kc.Basic())
	case KindLayerTap:
		l, _ := kc.Layer()
		return fmt.Sprintf("LT(%s,%s)", l, kc.Basic())
	case KindLayerTo, KindLayerMomentary, KindLayerToggle, KindOneShotLayer:
		l, _ := kc.Layer()
		return fmt.Sprintf("%s(%s)", layerFuncs[kc.Kind()], l)
	case KindOneShotMod:
		return fmt.Sprintf("OSM(%s)", kc.Mods())
	}
	return fmt.Sprintf("0x%04X", uint16(kc))
}

// Label returns a short human label for grid rendering.
func (kc Keycode) Label() string {
	if e, ok := byCode[kc]; ok {
		return e.label
	}
	switch kc.Kind() {
	case KindModded:
		return kc.Mods().Label() + "+" + kc.Basic().Label()
	case KindModTap:
		return kc.Basic().Label() + "/" + kc.Mods().Label()
	case KindLayerTap:
		l, _ := kc.Layer()
		return kc.Basic().Label() + "/" + l.Short()
	case KindLayerTo, KindLayerMomentary, KindLayerToggle, KindOneShotLayer:
		l, _ := kc.Layer()
		return layerFuncs[kc.Kind()] + ":" + l.Short()
	case KindOneShotMod:
		return "OS:" + kc.Mods().Label()
	}
	return fmt.Sprintf("%04X", uint16(kc))
}

var layerFuncs = map[Kind]string{
	KindLayerTo:        "TO",
	KindLayerMomentary: "MO",
	KindLayerToggle:    "TG",
	KindOneShotLayer:   "OSL",
}

var modWrappers = map[Mods]string{
	ModLCtrl:  "LCTL",
	ModLShift: "LSFT",
	ModLAlt:   "LALT",
	ModLGUI:   "LGUI",
	ModRCtrl:  "RCTL",
	ModRShift: "RSFT",
	ModRAlt:   "RALT",
	ModRGUI:   "RGUI",
	ModMeh:    "MEH",
}

func modWrapper(m Mods) string {
	if w, ok := modWrappers[m]; ok {
		return w
	}
	return "MODS_" + strconv.Itoa(int(m))
}

// Parse resolves a keycode name. It accepts canonical and alias names
// ("KC_A", "A", "XXXXXXX"), function forms ("OSM(MOD_LSFT)", "OSL(numeral)",
// "TO(0)", "LT(pointer,KC_Z)", "MT(MOD_LGUI,KC_A)", "LSFT(KC_1)") and
// hexadecimal codes ("0x0004").
func Parse(s string) (Keycode, error) {
	v := strings.TrimSpace(s)
	if kc, ok := byName[strings.ToUpper(v)]; ok {
		return kc, nil
	}
	if kc, ok := byName["KC_"+strings.ToUpper(v)]; ok {
		return kc, nil
	}
	if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
		n, err := strconv.ParseUint(v[2:], 16, 16)
		if err == nil {
			return Keycode(n), nil
		}
	}
	open := strings.IndexByte(v, '(')
	if open > 0 && strings.HasSuffix(v, ")") {
		fn := strings.ToUpper(v[:open])
		args := strings.Split(v[open+1:len(v)-1], ",")
		if kc, ok := parseFunc(fn, args); ok {
			return kc, nil
		}
	}
	return No, fmt.Errorf("%w: %q", ErrUnknownKeycode, s)
}

// MustParse is Parse for tables known to be valid.
func MustParse(s string) Keycode {
	kc, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return kc
}

func parseFunc(fn string, args []string) (Keycode, bool) {
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	switch fn {
	case "OSM":
		if len(args) != 1 {
			return No, false
		}
		m, ok := ParseMods(args[0])
		return OneShotMod(m), ok
	case "TO", "MO", "TG", "OSL":
		if len(args) != 1 {
			return No, false
		}
		l, err := layer.Parse(args[0])
		if err != nil {
			return No, false
		}
		switch fn {
		case "TO":
			return To(l), true
		case "MO":
			return Momentary(l), true
		case "TG":
			return Toggle(l), true
		}
		return OneShotLayer(l), true
	case "LT":
		if len(args) != 2 {
			return No, false
		}
		l, err := layer.Parse(args[0])
		if err != nil {
			return No, false
		}
		kc, err := Parse(args[1])
		if err != nil || kc.Kind() != KindBasic {
			return No, false
		}
		return LayerTap(l, kc), true
	case "MT":
		if len(args) != 2 {
			return No, false
		}
		m, ok := ParseMods(args[0])
		if !ok {
			return No, false
		}
		kc, err := Parse(args[1])
		if err != nil || kc.Kind() != KindBasic {
			return No, false
		}
		return ModTap(m, kc), true
	}
	if len(args) != 1 {
		return No, false
	}
	kc, err := Parse(args[0])
	if err != nil || kc.Kind() != KindBasic {
		return No, false
	}
	if strings.HasSuffix(fn, "_T") {
		m, ok := wrapperMods(strings.TrimSuffix(fn, "_T"))
		return ModTap(m, kc), ok
	}
	m, ok := wrapperMods(fn)
	return Modded(m, kc), ok
}

func wrapperMods(name string) (Mods, bool) {
	for m, w := range modWrappers {
		if w == name {
			return m, true
		}
	}
	return 0, false
}
