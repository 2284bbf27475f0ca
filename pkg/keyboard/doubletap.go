package keyboard

import (
	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/timer"
	"github.com/sirupsen/logrus"
)

// DoubleTap toggles caps word when a one-shot shift is pressed twice within
// Term.
type DoubleTap struct {
	Term timer.Millis
	Host Host
	Log  *logrus.Entry

	last timer.Stamp
}

// Observe handles one key event and reports whether it was consumed. The
// second tap of a double tap is consumed and resets the detector, so a third
// tap starts over.
func (d *DoubleTap) Observe(kc keycode.Keycode, pressed bool, now timer.Millis) bool {
	if !pressed || !kc.IsOneShotShift() {
		return false
	}
	if d.last.Within(now, d.Term) {
		at, _ := d.last.At()
		d.Log.WithField("elapsed_ms", timer.Elapsed(now, at)).Debug("shift double tap, toggling caps word")
		d.Host.CapsWordToggle()
		d.last.Clear()
		return true
	}
	d.last.Set(now)
	return false
}
