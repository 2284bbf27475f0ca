// Package host simulates the firmware framework the Dilemma keymap runs on.
//
// Keyboard scans nothing and speaks no USB. It takes key presses, releases,
// motion samples and the passage of time as input, runs them through the
// same stages the firmware does (combo engine, tap-hold, layer resolution,
// one-shot handling, caps word) and the keymap's keyboard.Controller, and
// records the resulting HID reports and events. Everything is deterministic:
// time only moves through Advance.
package host

import (
	"github.com/grovetools/dilemma/pkg/combo"
	"github.com/grovetools/dilemma/pkg/keyboard"
	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/keymap"
	"github.com/grovetools/dilemma/pkg/layer"
	"github.com/grovetools/dilemma/pkg/logger"
	"github.com/grovetools/dilemma/pkg/timer"
	"github.com/sirupsen/logrus"
)

// Framework defaults.
const (
	DefaultComboTerm   timer.Millis = 50
	DefaultTappingTerm timer.Millis = 200

	// DefaultCapsWordIdleTimeout turns caps word off after this long
	// without a key press.
	DefaultCapsWordIdleTimeout timer.Millis = 5000
)

// Options configures a simulated keyboard.
type Options struct {
	Keymap      keymap.Options
	Controller  keyboard.Config
	Combos      []combo.Combo
	ComboTerm   timer.Millis
	TappingTerm timer.Millis
	// CapsWordIdleTimeout of zero keeps caps word on until a word breaking
	// key.
	CapsWordIdleTimeout timer.Millis
	Log                 *logrus.Entry
}

// DefaultOptions returns the stock keymap, combos and timings.
func DefaultOptions() Options {
	return Options{
		Keymap:              keymap.DefaultOptions(),
		Controller:          keyboard.DefaultConfig(),
		Combos:              combo.Defaults(),
		ComboTerm:           DefaultComboTerm,
		TappingTerm:         DefaultTappingTerm,
		CapsWordIdleTimeout: DefaultCapsWordIdleTimeout,
	}
}

// Keyboard is a simulated Dilemma. It is not safe for concurrent use.
type Keyboard struct {
	opts  Options
	table keymap.Table
	ctrl  *keyboard.Controller
	log   *logrus.Entry

	now    timer.Millis
	state  layer.State
	halted bool

	held   map[keymap.Position]*heldAction
	active []*heldAction

	oneShotMods   keycode.Mods
	oneShotLayers layer.State
	capsWord      bool
	capsWordAt    timer.Millis
	lastKey       keycode.Keycode
	lastMods      keycode.Mods

	tapHold *pendingTapHold
	queue   []keyEvent

	comboBuf      []bufferedPress
	comboDeadline timer.Millis
	combos        []*activeCombo

	buttons       uint8
	layerSniping  bool
	snipingKey    bool
	snipingToggle bool
	dragKey       bool
	dragToggle    bool
	dpiStep       int
	snipingStep   int

	events  []Event
	reports []KeyboardReport
	mouse   []keyboard.MouseReport
	emitted []Emission
	onEvent func(Event)
}

var _ keyboard.Host = (*Keyboard)(nil)

// New returns a keyboard at time zero with only the base layer active.
func New(opts Options) *Keyboard {
	k := &Keyboard{}
	k.init(opts)
	return k
}

func (k *Keyboard) init(opts Options) {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	onEvent := k.onEvent
	*k = Keyboard{
		opts:    opts,
		table:   keymap.Build(opts.Keymap),
		log:     log,
		held:    make(map[keymap.Position]*heldAction),
		onEvent: onEvent,
	}
	k.ctrl = keyboard.New(k, opts.Controller, log.WithField("component", "keymap"))
}

// Reset reboots the keyboard, clearing all state and logs. It is the only
// way out of the bootloader.
func (k *Keyboard) Reset() {
	k.init(k.opts)
}

// OnEvent registers a function called for every recorded event.
func (k *Keyboard) OnEvent(fn func(Event)) {
	k.onEvent = fn
}

// LayerOn implements keyboard.Host.
func (k *Keyboard) LayerOn(l layer.Layer) {
	k.commit(k.state.With(l))
}

// LayerOff implements keyboard.Host.
func (k *Keyboard) LayerOff(l layer.Layer) {
	k.commit(k.state.Without(l))
}

// CapsWordToggle implements keyboard.Host.
func (k *Keyboard) CapsWordToggle() {
	k.setCapsWord(!k.capsWord)
}

// SetPointerSniping implements keyboard.Host.
func (k *Keyboard) SetPointerSniping(enabled bool) {
	before := k.Sniping()
	k.layerSniping = enabled
	k.snipingChanged(before)
}

func (k *Keyboard) commit(candidate layer.State) {
	state := k.ctrl.LayerStateSet(candidate)
	if state == k.state {
		return
	}
	k.state = state
	k.record(EventLayer, state.String())
}

// setCapsWord switches caps word. Turning it on drops the armed one-shot
// mods, so the shift that triggered it is not applied twice.
func (k *Keyboard) setCapsWord(on bool) {
	if k.capsWord == on {
		return
	}
	if on {
		k.oneShotMods = 0
		k.capsWordAt = k.now
	}
	k.capsWord = on
	k.record(EventCapsWord, onOff(on))
}

// Now returns the simulated time.
func (k *Keyboard) Now() timer.Millis { return k.now }

// State returns the committed layer state.
func (k *Keyboard) State() layer.State { return k.state }

// CapsWord reports whether caps word is on.
func (k *Keyboard) CapsWord() bool { return k.capsWord }

// OneShotMods returns the armed one-shot modifiers.
func (k *Keyboard) OneShotMods() keycode.Mods { return k.oneShotMods }

// Halted reports whether the bootloader was entered.
func (k *Keyboard) Halted() bool { return k.halted }

// Table returns the keymap in use.
func (k *Keyboard) Table() *keymap.Table { return &k.table }

// Controller returns the keymap controller driven by the simulator.
func (k *Keyboard) Controller() *keyboard.Controller { return k.ctrl }

// Options returns the options the keyboard was built with.
func (k *Keyboard) Options() Options { return k.opts }

// Resolve returns the action currently under p.
func (k *Keyboard) Resolve(p keymap.Position) keycode.Keycode {
	kc, _ := k.table.Resolve(k.state, p)
	return kc
}

// Pressed reports whether the key at p is physically held down, including
// presses still buffered by the combo engine or behind a tap-hold decision.
func (k *Keyboard) Pressed(p keymap.Position) bool {
	queued, down := false, false
	for _, ev := range k.queue {
		if ev.combo == nil && ev.pos == p {
			queued, down = true, ev.pressed
		}
	}
	if queued {
		return down
	}
	if _, ok := k.held[p]; ok {
		return true
	}
	if k.tapHold != nil && k.tapHold.pos == p {
		return true
	}
	for _, b := range k.comboBuf {
		if b.pos == p {
			return true
		}
	}
	for _, c := range k.combos {
		if c.holds(p) {
			return true
		}
	}
	return false
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
