package host

import (
	"fmt"

	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/timer"
	"github.com/sirupsen/logrus"
)

// EventKind names what happened in an Event.
type EventKind string

const (
	EventPress      EventKind = "press"
	EventRelease    EventKind = "release"
	EventKeyDown    EventKind = "key_down"
	EventKeyUp      EventKind = "key_up"
	EventSuppressed EventKind = "suppressed"
	EventLayer      EventKind = "layer"
	EventCombo      EventKind = "combo"
	EventTapHold    EventKind = "tap_hold"
	EventOneShot    EventKind = "one_shot"
	EventCapsWord   EventKind = "caps_word"
	EventButton     EventKind = "button"
	EventMotion     EventKind = "motion"
	EventSniping    EventKind = "sniping"
	EventDragScroll EventKind = "drag_scroll"
	EventDPI        EventKind = "dpi"
	EventBoot       EventKind = "boot"
)

// Event is one entry of the simulator log.
type Event struct {
	Time   timer.Millis `json:"time" yaml:"time"`
	Kind   EventKind    `json:"kind" yaml:"kind"`
	Detail string       `json:"detail" yaml:"detail"`
}

func (e Event) String() string {
	return fmt.Sprintf("%6dms %-11s %s", e.Time, e.Kind, e.Detail)
}

// Emission is a key sent to the computer, with the modifiers active when it
// went down.
type Emission struct {
	Key  keycode.Keycode `json:"key" yaml:"key"`
	Mods keycode.Mods    `json:"mods" yaml:"mods"`
}

// Keycode folds the modifiers into a modded keycode, e.g. LSFT(KC_A).
func (e Emission) Keycode() keycode.Keycode {
	if e.Mods == 0 {
		return e.Key
	}
	return keycode.Modded(e.Mods, e.Key)
}

func (e Emission) String() string {
	return e.Keycode().String()
}

func (k *Keyboard) record(kind EventKind, detail string) {
	ev := Event{Time: k.now, Kind: kind, Detail: detail}
	k.events = append(k.events, ev)
	k.log.WithFields(logrus.Fields{"time_ms": k.now, "event": kind}).Debug(detail)
	if k.onEvent != nil {
		k.onEvent(ev)
	}
}

// Events returns the event log.
func (k *Keyboard) Events() []Event {
	return append([]Event(nil), k.events...)
}

// EventsOf returns the logged events of one kind.
func (k *Keyboard) EventsOf(kind EventKind) []Event {
	var out []Event
	for _, ev := range k.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// Emitted returns every key sent so far, in order.
func (k *Keyboard) Emitted() []Emission {
	return append([]Emission(nil), k.emitted...)
}

// ClearLogs drops recorded events, reports and emissions, keeping state.
func (k *Keyboard) ClearLogs() {
	k.events = nil
	k.reports = nil
	k.mouse = nil
	k.emitted = nil
}
