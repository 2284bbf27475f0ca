package combo

import "github.com/grovetools/dilemma/pkg/keycode"

// MatchResult is the result of comparing a held key set against the combo
// table.
type MatchResult struct {
	// Exact is the combo whose trigger set equals the held set, if any.
	Exact *Combo
	// Pending is true when a strictly larger combo still contains the held
	// set, so more keys may arrive.
	Pending bool
}

// Match compares held against combos. Held keys are treated as a set;
// duplicates are ignored.
func Match(combos []Combo, held []keycode.Keycode) MatchResult {
	set := toSet(held)
	var m MatchResult
	if len(set) == 0 {
		return m
	}
	for i := range combos {
		c := &combos[i]
		if !containsAll(c, set) {
			continue
		}
		switch n := len(toSet(c.Keys)); {
		case n == len(set):
			if m.Exact == nil {
				m.Exact = c
			}
		case n > len(set):
			m.Pending = true
		}
	}
	return m
}

// Contains reports whether k is a trigger key of any combo.
func Contains(combos []Combo, k keycode.Keycode) bool {
	for _, c := range combos {
		if c.Has(k) {
			return true
		}
	}
	return false
}

func toSet(keys []keycode.Keycode) map[keycode.Keycode]struct{} {
	set := make(map[keycode.Keycode]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func containsAll(c *Combo, set map[keycode.Keycode]struct{}) bool {
	for k := range set {
		if !c.Has(k) {
			return false
		}
	}
	return true
}
