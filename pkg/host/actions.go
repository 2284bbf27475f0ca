package host

import (
	"github.com/grovetools/dilemma/pkg/keyboard"
	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/keymap"
	"github.com/grovetools/dilemma/pkg/layer"
	"github.com/grovetools/dilemma/pkg/timer"
)

// heldAction is what a pressed key (or fired combo) did, kept until its
// release.
type heldAction struct {
	kc  keycode.Keycode
	src layer.Layer
	// key and mods are what the action contributes to the keyboard report.
	key  keycode.Keycode
	mods keycode.Mods
	// hold is set for tap-hold keys decided as a hold.
	hold     bool
	consumed bool
}

type pendingTapHold struct {
	pos keymap.Position
	kc  keycode.Keycode
	src layer.Layer
	at  timer.Millis
}

func (k *Keyboard) pressPosition(p keymap.Position) {
	kc, src := k.table.Resolve(k.state, p)
	rec := keyboard.Record{Pressed: true, Time: k.now, Position: p}
	if !k.ctrl.ProcessRecord(kc, rec) {
		k.held[p] = &heldAction{kc: kc, src: src, consumed: true}
		k.record(EventSuppressed, kc.String())
		return
	}
	switch kc.Kind() {
	case keycode.KindModTap, keycode.KindLayerTap:
		k.tapHold = &pendingTapHold{pos: p, kc: kc, src: src, at: k.now}
		return
	}
	k.held[p] = k.pressAction(kc, src)
}

func (k *Keyboard) releasePosition(p keymap.Position) {
	h, ok := k.held[p]
	if !ok {
		return
	}
	delete(k.held, p)
	k.ctrl.ProcessRecord(h.kc, keyboard.Record{Pressed: false, Time: k.now, Position: p})
	if !h.consumed {
		k.releaseAction(h)
	}
}

func (k *Keyboard) pressCombo(c *activeCombo) {
	kc := c.combo.Result
	rec := keyboard.Record{Pressed: true, Time: k.now, Position: c.positions[0]}
	if !k.ctrl.ProcessRecord(kc, rec) {
		c.held = &heldAction{kc: kc, consumed: true}
		k.record(EventSuppressed, kc.String())
		return
	}
	c.held = k.pressAction(kc, layer.Base)
}

func (k *Keyboard) releaseCombo(c *activeCombo) {
	h := c.held
	if h == nil {
		return
	}
	c.held = nil
	k.ctrl.ProcessRecord(h.kc, keyboard.Record{Pressed: false, Time: k.now, Position: c.positions[0]})
	if !h.consumed {
		k.releaseAction(h)
	}
}

// resolveTapHold decides the pending tap-hold key.
func (k *Keyboard) resolveTapHold(hold bool) {
	th := k.tapHold
	k.tapHold = nil
	if !hold {
		k.record(EventTapHold, th.kc.String()+" tap")
		h := &heldAction{kc: th.kc, src: th.src}
		k.registerKey(h, th.kc.Basic(), 0)
		k.held[th.pos] = h
		return
	}

	k.record(EventTapHold, th.kc.String()+" hold")
	h := &heldAction{kc: th.kc, src: th.src, hold: true}
	k.held[th.pos] = h
	if l, ok := th.kc.Layer(); ok {
		k.LayerOn(l)
		return
	}
	h.mods = th.kc.Mods()
	k.active = append(k.active, h)
	k.sendReport()
}

// pressAction performs kc. Tap-hold keys reaching here (from combos) act as
// their tap key.
func (k *Keyboard) pressAction(kc keycode.Keycode, src layer.Layer) *heldAction {
	h := &heldAction{kc: kc, src: src}
	switch kc.Kind() {
	case keycode.KindBasic, keycode.KindModTap, keycode.KindLayerTap:
		k.registerKey(h, kc.Basic(), 0)
	case keycode.KindModded:
		k.registerKey(h, kc.Basic(), kc.Mods())
	case keycode.KindModifier:
		h.mods = kc.Mods()
		k.active = append(k.active, h)
		k.sendReport()
	case keycode.KindMouseButton:
		k.buttons |= buttonBit(kc)
		k.record(EventButton, kc.String()+" down")
		k.sendMouse(keyboard.MouseReport{Buttons: k.buttons})
		k.consumeOneShotLayers()
	case keycode.KindOneShotMod:
		k.oneShotMods |= kc.Mods()
		k.record(EventOneShot, kc.String())
	case keycode.KindOneShotLayer:
		l, _ := kc.Layer()
		k.oneShotLayers = k.oneShotLayers.With(l)
		k.record(EventOneShot, kc.String())
		k.LayerOn(l)
	case keycode.KindLayerTo:
		l, _ := kc.Layer()
		k.oneShotLayers = 0
		if l == layer.Base {
			k.commit(0)
		} else {
			k.commit(layer.StateOf(l))
		}
	case keycode.KindLayerMomentary:
		l, _ := kc.Layer()
		k.LayerOn(l)
	case keycode.KindLayerToggle:
		l, _ := kc.Layer()
		if k.state.Has(l) && l != layer.Base {
			k.LayerOff(l)
		} else {
			k.LayerOn(l)
		}
	case keycode.KindBoot:
		k.record(EventBoot, "jumping to bootloader")
		k.halted = true
	case keycode.KindCapsWordToggle:
		k.CapsWordToggle()
		k.consumeOneShotLayers()
	case keycode.KindRepeat:
		if k.lastKey != keycode.No {
			k.sendKey(h, k.lastKey, k.lastMods)
		}
		k.consumeOneShotLayers()
	case keycode.KindAltRepeat:
		if alt, ok := alternateKey(k.lastKey); ok {
			k.sendKey(h, alt, k.lastMods)
		}
		k.consumeOneShotLayers()
	case keycode.KindPointing:
		k.pressPointing(kc)
		k.consumeOneShotLayers()
	}
	return h
}

func (k *Keyboard) releaseAction(h *heldAction) {
	switch h.kc.Kind() {
	case keycode.KindMouseButton:
		k.buttons &^= buttonBit(h.kc)
		k.record(EventButton, h.kc.String()+" up")
		k.sendMouse(keyboard.MouseReport{Buttons: k.buttons})
		return
	case keycode.KindLayerMomentary:
		l, _ := h.kc.Layer()
		k.LayerOff(l)
		return
	case keycode.KindLayerTap:
		if h.hold {
			l, _ := h.kc.Layer()
			k.LayerOff(l)
			return
		}
	case keycode.KindPointing:
		k.releasePointing(h.kc)
		return
	}
	k.unregister(h)
}

// registerKey sends a key with the modifiers of the key itself, the armed
// one-shot mods and caps word applied, then consumes one-shot state.
func (k *Keyboard) registerKey(h *heldAction, key keycode.Keycode, mods keycode.Mods) {
	if key == keycode.No {
		k.consumeOneShotLayers()
		return
	}
	mods |= k.oneShotMods
	k.oneShotMods = 0
	mods = k.capsWordMods(key, mods)

	k.lastKey = key
	k.lastMods = mods
	k.sendKey(h, key, mods)
	k.consumeOneShotLayers()
}

// sendKey puts key in the report. Repeat keys use it directly so they do not
// overwrite the remembered key.
func (k *Keyboard) sendKey(h *heldAction, key keycode.Keycode, mods keycode.Mods) {
	h.key = key
	h.mods = mods
	k.active = append(k.active, h)
	e := Emission{Key: key, Mods: mods | k.heldMods()}
	k.emitted = append(k.emitted, e)
	k.record(EventKeyDown, e.String())
	k.sendReport()
}

func (k *Keyboard) unregister(h *heldAction) {
	for i, a := range k.active {
		if a == h {
			k.active = append(k.active[:i], k.active[i+1:]...)
			if h.key != keycode.No {
				k.record(EventKeyUp, h.key.String())
			}
			k.sendReport()
			return
		}
	}
}

func (k *Keyboard) consumeOneShotLayers() {
	if k.oneShotLayers == 0 {
		return
	}
	s := k.oneShotLayers
	k.oneShotLayers = 0
	k.commit(k.state &^ s)
}

// capsWordMods applies caps word to a key about to be sent. Letters are
// shifted and minus becomes underscore; digits, backspace, delete and
// underscore keep caps word on; anything else turns it off.
func (k *Keyboard) capsWordMods(key keycode.Keycode, mods keycode.Mods) keycode.Mods {
	if !k.capsWord {
		return mods
	}
	k.capsWordAt = k.now
	if mods&^(keycode.ModShift|keycode.ModRight) != 0 {
		k.setCapsWord(false)
		return mods
	}
	shifted := mods&keycode.ModShift != 0
	switch {
	case key.IsAlpha():
		return mods | keycode.ModLShift
	case key == keycode.Minus && !shifted:
		return mods | keycode.ModLShift
	case key == keycode.Minus, key.IsDigit() && !shifted, key == keycode.Backspace, key == keycode.Delete:
		return mods
	}
	k.setCapsWord(false)
	return mods
}

var alternates = map[keycode.Keycode]keycode.Keycode{
	keycode.Left:      keycode.Right,
	keycode.Right:     keycode.Left,
	keycode.Up:        keycode.Down,
	keycode.Down:      keycode.Up,
	keycode.Home:      keycode.End,
	keycode.End:       keycode.Home,
	keycode.PageUp:    keycode.PageDown,
	keycode.PageDown:  keycode.PageUp,
	keycode.Backspace: keycode.Delete,
	keycode.Delete:    keycode.Backspace,
}

func alternateKey(kc keycode.Keycode) (keycode.Keycode, bool) {
	alt, ok := alternates[kc]
	return alt, ok
}

func buttonBit(kc keycode.Keycode) uint8 {
	return 1 << (kc - keycode.MouseBtn1)
}
