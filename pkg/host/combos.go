package host

import (
	"github.com/grovetools/dilemma/pkg/combo"
	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/keymap"
)

type bufferedPress struct {
	pos keymap.Position
	kc  keycode.Keycode
}

// activeCombo is a fired combo whose trigger keys are not all released yet.
type activeCombo struct {
	combo     combo.Combo
	positions []keymap.Position
	released  map[keymap.Position]bool
	held      *heldAction
	ended     bool
}

func (c *activeCombo) holds(p keymap.Position) bool {
	for _, q := range c.positions {
		if q == p {
			return !c.released[p]
		}
	}
	return false
}

func (c *activeCombo) done() bool {
	return len(c.released) == len(c.positions)
}

func (k *Keyboard) bufferedKeys() []keycode.Keycode {
	return keysOf(k.comboBuf)
}

// comboPress buffers presses of trigger keys until they either complete a
// combo or can no longer be part of one.
func (k *Keyboard) comboPress(p keymap.Position) {
	kc := k.Resolve(p)
	if !combo.Contains(k.opts.Combos, kc) {
		k.flushCombo()
		k.dispatch(keyEvent{pos: p, pressed: true})
		return
	}

	m := combo.Match(k.opts.Combos, append(k.bufferedKeys(), kc))
	if m.Exact == nil && !m.Pending {
		k.flushCombo()
		k.comboPress(p)
		return
	}

	if len(k.comboBuf) == 0 {
		k.comboDeadline = k.now + k.opts.ComboTerm
	}
	k.comboBuf = append(k.comboBuf, bufferedPress{pos: p, kc: kc})
	if m.Exact != nil && !m.Pending {
		k.flushCombo()
	}
}

func (k *Keyboard) comboRelease(p keymap.Position) {
	for _, b := range k.comboBuf {
		if b.pos == p {
			k.flushCombo()
			break
		}
	}

	for i, c := range k.combos {
		if !c.holds(p) {
			continue
		}
		c.released[p] = true
		if !c.ended {
			c.ended = true
			k.dispatch(keyEvent{combo: c})
		}
		if c.done() {
			k.combos = append(k.combos[:i], k.combos[i+1:]...)
		}
		return
	}

	k.dispatch(keyEvent{pos: p})
}

// flushCombo fires the combo matching the whole buffer, or replays the
// buffered presses as ordinary keys.
func (k *Keyboard) flushCombo() {
	if len(k.comboBuf) == 0 {
		return
	}
	buf := k.comboBuf
	k.comboBuf = nil

	m := combo.Match(k.opts.Combos, keysOf(buf))
	if m.Exact == nil {
		for _, b := range buf {
			k.dispatch(keyEvent{pos: b.pos, pressed: true})
		}
		return
	}

	ac := &activeCombo{
		combo:    *m.Exact,
		released: make(map[keymap.Position]bool),
	}
	for _, b := range buf {
		ac.positions = append(ac.positions, b.pos)
	}
	k.combos = append(k.combos, ac)
	k.record(EventCombo, ac.combo.Name+" -> "+ac.combo.Result.String())
	k.dispatch(keyEvent{combo: ac, pressed: true})
}

func keysOf(buf []bufferedPress) []keycode.Keycode {
	keys := make([]keycode.Keycode, len(buf))
	for i, b := range buf {
		keys[i] = b.kc
	}
	return keys
}
