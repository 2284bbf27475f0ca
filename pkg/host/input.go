package host

import (
	"fmt"

	"github.com/grovetools/dilemma/pkg/keyboard"
	"github.com/grovetools/dilemma/pkg/keymap"
	"github.com/grovetools/dilemma/pkg/timer"
)

// keyEvent is a key transition after the combo engine: either a physical
// key or a fired combo.
type keyEvent struct {
	pos     keymap.Position
	pressed bool
	combo   *activeCombo
}

// Press presses the key at p at the current time.
func (k *Keyboard) Press(p keymap.Position) {
	if k.halted {
		return
	}
	k.record(EventPress, positionName(p))
	k.comboPress(p)
}

// Release releases the key at p at the current time.
func (k *Keyboard) Release(p keymap.Position) {
	if k.halted {
		return
	}
	k.record(EventRelease, positionName(p))
	k.comboRelease(p)
}

// Tap presses and releases p, holding it for hold milliseconds.
func (k *Keyboard) Tap(p keymap.Position, hold timer.Millis) {
	k.Press(p)
	k.Advance(hold)
	k.Release(p)
}

// Motion delivers a pointing device sample at the current time. It is
// ignored without a pointing device.
func (k *Keyboard) Motion(x, y int8) {
	if k.halted || !k.opts.Controller.PointingDevice {
		return
	}
	r := keyboard.MouseReport{Buttons: k.buttons, X: x, Y: y}
	if k.DragScroll() {
		r.H, r.V = r.X, -r.Y
		r.X, r.Y = 0, 0
	}
	r = k.ctrl.PointingDeviceTask(r, k.now)
	k.record(EventMotion, fmt.Sprintf("x=%d y=%d h=%d v=%d dpi=%d", r.X, r.Y, r.H, r.V, k.DPI()))
	k.sendMouse(r)
}

// Advance moves time forward one millisecond at a time, running the
// framework's per-scan work at each step.
func (k *Keyboard) Advance(d timer.Millis) {
	for i := timer.Millis(0); i < d; i++ {
		k.now++
		if !k.halted {
			k.scan()
		}
	}
}

// AdvanceTo moves time forward to t. Times in the past are ignored.
func (k *Keyboard) AdvanceTo(t timer.Millis) {
	if t > k.now {
		k.Advance(t - k.now)
	}
}

func (k *Keyboard) scan() {
	if len(k.comboBuf) > 0 && k.now >= k.comboDeadline {
		k.flushCombo()
	}
	if th := k.tapHold; th != nil && timer.Elapsed(k.now, th.at) >= k.opts.TappingTerm {
		k.resolveTapHold(true)
		k.replay()
	}
	if idle := k.opts.CapsWordIdleTimeout; k.capsWord && idle > 0 && timer.Elapsed(k.now, k.capsWordAt) >= idle {
		k.setCapsWord(false)
	}
	k.ctrl.MatrixScan(k.now)
}

// dispatch runs an event through the tap-hold stage. While a tap-hold key
// is undecided every other event waits behind it.
func (k *Keyboard) dispatch(ev keyEvent) {
	if k.halted {
		return
	}
	if th := k.tapHold; th != nil {
		if ev.combo == nil && !ev.pressed && ev.pos == th.pos {
			k.resolveTapHold(false)
			k.releasePosition(ev.pos)
			k.replay()
			return
		}
		k.queue = append(k.queue, ev)
		return
	}
	switch {
	case ev.combo != nil && ev.pressed:
		k.pressCombo(ev.combo)
	case ev.combo != nil:
		k.releaseCombo(ev.combo)
	case ev.pressed:
		k.pressPosition(ev.pos)
	default:
		k.releasePosition(ev.pos)
	}
}

func (k *Keyboard) replay() {
	q := k.queue
	k.queue = nil
	for _, ev := range q {
		k.dispatch(ev)
	}
}

func positionName(p keymap.Position) string {
	if i, ok := keymap.IndexOf(p); ok {
		return keymap.Name(i)
	}
	return fmt.Sprintf("r%dc%d", p.Row, p.Col)
}
