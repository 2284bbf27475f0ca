package host

import (
	"fmt"

	"github.com/grovetools/dilemma/pkg/keyboard"
	"github.com/grovetools/dilemma/pkg/keycode"
)

// KeyboardReport is a HID boot protocol keyboard report.
type KeyboardReport struct {
	Modifiers uint8    `json:"modifiers"`
	Keys      [6]uint8 `json:"keys"`
}

// Bytes returns the 8-byte wire form: modifiers, reserved, six usages.
func (r KeyboardReport) Bytes() [8]byte {
	var b [8]byte
	b[0] = r.Modifiers
	copy(b[2:], r.Keys[:])
	return b
}

func (r KeyboardReport) String() string {
	return fmt.Sprintf("% x", r.Bytes())
}

// Reports returns every keyboard report sent so far.
func (k *Keyboard) Reports() []KeyboardReport {
	return append([]KeyboardReport(nil), k.reports...)
}

// MouseReports returns every mouse report sent so far.
func (k *Keyboard) MouseReports() []keyboard.MouseReport {
	return append([]keyboard.MouseReport(nil), k.mouse...)
}

// Report returns the keyboard report describing the current state.
func (k *Keyboard) Report() KeyboardReport {
	var r KeyboardReport
	n := 0
	for _, h := range k.active {
		r.Modifiers |= h.mods.HID()
		if h.key != keycode.No && n < len(r.Keys) {
			r.Keys[n] = uint8(h.key)
			n++
		}
	}
	return r
}

// heldMods returns the modifiers currently held down.
func (k *Keyboard) heldMods() keycode.Mods {
	var m keycode.Mods
	for _, h := range k.active {
		if h.key == keycode.No {
			m |= h.mods
		}
	}
	return m
}

func (k *Keyboard) sendReport() {
	r := k.Report()
	if n := len(k.reports); n > 0 && k.reports[n-1] == r {
		return
	}
	k.reports = append(k.reports, r)
}

func (k *Keyboard) sendMouse(r keyboard.MouseReport) {
	k.mouse = append(k.mouse, r)
}
