// Package timer provides the millisecond clock values passed to the keymap
// callbacks.
package timer

// Millis is a millisecond timestamp measured from boot. Arithmetic on it is
// modular, so elapsed times stay correct across counter wrap.
type Millis uint32

// Elapsed returns the time from since to now.
func Elapsed(now, since Millis) Millis {
	return now - since
}

// Stamp is an optional timestamp. The zero Stamp is unset, which is distinct
// from a Stamp set at time zero.
type Stamp struct {
	at  Millis
	set bool
}

// Set records now.
func (s *Stamp) Set(now Millis) {
	s.at = now
	s.set = true
}

// Clear returns the stamp to the unset state.
func (s *Stamp) Clear() {
	*s = Stamp{}
}

// IsSet reports whether a time has been recorded.
func (s Stamp) IsSet() bool {
	return s.set
}

// At returns the recorded time and whether one was recorded.
func (s Stamp) At() (Millis, bool) {
	return s.at, s.set
}

// Within reports whether the stamp is set and less than window has passed
// since it was recorded.
func (s Stamp) Within(now, window Millis) bool {
	return s.set && Elapsed(now, s.at) < window
}

// Expired reports whether the stamp is set and at least timeout has passed
// since it was recorded.
func (s Stamp) Expired(now, timeout Millis) bool {
	return s.set && Elapsed(now, s.at) >= timeout
}
