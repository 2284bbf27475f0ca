package layer

import "strings"

// State is the bitset of active layers. The empty state means that only the
// base layer is active.
type State uint32

// StateOf builds a state with the given layers active.
func StateOf(layers ...Layer) State {
	var s State
	for _, l := range layers {
		s = s.With(l)
	}
	return s
}

// Has reports whether l is active. Base is active in the empty state.
func (s State) Has(l Layer) bool {
	if s == 0 {
		return l == Base
	}
	return s&(1<<l) != 0
}

// With returns s with l active.
func (s State) With(l Layer) State {
	return s | 1<<l
}

// Without returns s with l inactive.
func (s State) Without(l Layer) State {
	return s &^ (1 << l)
}

// Highest returns the highest active layer.
func (s State) Highest() Layer {
	for l := Layer(31); l > 0; l-- {
		if s&(1<<l) != 0 {
			return l
		}
	}
	return Base
}

// Layers returns the active layers from highest to lowest priority. Base is
// always last.
func (s State) Layers() []Layer {
	var out []Layer
	for l := Layer(31); l > 0; l-- {
		if s&(1<<l) != 0 {
			out = append(out, l)
		}
	}
	return append(out, Base)
}

// String renders the active layers as "NAV|SYM|NUM|BASE".
func (s State) String() string {
	ls := s.Layers()
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = l.Short()
	}
	return strings.Join(parts, "|")
}
