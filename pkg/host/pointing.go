package host

import (
	"strconv"

	"github.com/grovetools/dilemma/pkg/keycode"
)

// Pointer DPI settings of the Dilemma's trackpad driver.
const (
	DefaultDPIBase  = 400
	DefaultDPIStep  = 200
	DefaultDPISteps = 16
	SnipingDPIBase  = 200
	SnipingDPIStep  = 100
	SnipingDPISteps = 4
)

// DPI returns the pointer resolution currently in effect.
func (k *Keyboard) DPI() int {
	if k.Sniping() {
		return SnipingDPIBase + SnipingDPIStep*k.snipingStep
	}
	return DefaultDPIBase + DefaultDPIStep*k.dpiStep
}

// Sniping reports whether sniping mode is on, from the layer, the momentary
// key or the toggle.
func (k *Keyboard) Sniping() bool {
	return k.layerSniping || k.snipingKey || k.snipingToggle
}

// DragScroll reports whether motion is turned into scrolling.
func (k *Keyboard) DragScroll() bool {
	return k.dragKey || k.dragToggle
}

func (k *Keyboard) snipingChanged(before bool) {
	if now := k.Sniping(); now != before {
		k.record(EventSniping, onOff(now))
	}
}

func (k *Keyboard) dragChanged(before bool) {
	if now := k.DragScroll(); now != before {
		k.record(EventDragScroll, onOff(now))
	}
}

// pressPointing handles the trackpad control keys. DPI keys step backwards
// while shift is held.
func (k *Keyboard) pressPointing(kc keycode.Keycode) {
	reverse := k.heldMods()&keycode.ModShift != 0
	sniping, drag := k.Sniping(), k.DragScroll()
	switch kc {
	case keycode.DPIForward, keycode.DPIReverse:
		k.dpiStep = cycle(k.dpiStep, DefaultDPISteps, (kc == keycode.DPIReverse) != reverse)
		k.record(EventDPI, "default "+strconv.Itoa(DefaultDPIBase+DefaultDPIStep*k.dpiStep))
	case keycode.SnipingDPIForward, keycode.SnipingDPIReverse:
		k.snipingStep = cycle(k.snipingStep, SnipingDPISteps, (kc == keycode.SnipingDPIReverse) != reverse)
		k.record(EventDPI, "sniping "+strconv.Itoa(SnipingDPIBase+SnipingDPIStep*k.snipingStep))
	case keycode.SnipingMode:
		k.snipingKey = true
	case keycode.SnipingToggle:
		k.snipingToggle = !k.snipingToggle
	case keycode.DragScrollMode:
		k.dragKey = true
	case keycode.DragScrollToggle:
		k.dragToggle = !k.dragToggle
	}
	k.snipingChanged(sniping)
	k.dragChanged(drag)
}

func (k *Keyboard) releasePointing(kc keycode.Keycode) {
	sniping, drag := k.Sniping(), k.DragScroll()
	switch kc {
	case keycode.SnipingMode:
		k.snipingKey = false
	case keycode.DragScrollMode:
		k.dragKey = false
	}
	k.snipingChanged(sniping)
	k.dragChanged(drag)
}

func cycle(step, steps int, reverse bool) int {
	if reverse {
		return (step + steps - 1) % steps
	}
	return (step + 1) % steps
}
