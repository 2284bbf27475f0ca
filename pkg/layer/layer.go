// Package layer names the keymap layers and models the set of active layers.
package layer

import (
	"errors"
	"fmt"
	"strings"
)

// Layer is an index into the keymap table.
type Layer uint8

const (
	Base Layer = iota
	Numeral
	Symbols
	Navigation
	Pointer
)

// Count is the number of layers in the keymap.
const Count = 5

// ErrUnknownLayer is returned by Parse for names that match no layer.
var ErrUnknownLayer = errors.New("unknown layer")

var names = [Count]string{"base", "numeral", "symbols", "navigation", "pointer"}

var short = [Count]string{"BASE", "NUM", "SYM", "NAV", "PTR"}

// String returns the lower-case layer name.
func (l Layer) String() string {
	if int(l) < Count {
		return names[l]
	}
	return fmt.Sprintf("layer%d", uint8(l))
}

// Short returns the abbreviated upper-case label used in tables.
func (l Layer) Short() string {
	if int(l) < Count {
		return short[l]
	}
	return fmt.Sprintf("L%d", uint8(l))
}

// Valid reports whether l names a layer of this keymap.
func (l Layer) Valid() bool {
	return int(l) < Count
}

// All returns every layer in index order.
func All() []Layer {
	return []Layer{Base, Numeral, Symbols, Navigation, Pointer}
}

// Parse accepts a layer name, its short label or its index.
func Parse(s string) (Layer, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "layer_")
	for i := 0; i < Count; i++ {
		if v == names[i] || v == strings.ToLower(short[i]) || v == fmt.Sprint(i) {
			return Layer(i), nil
		}
	}
	switch v {
	case "numbers", "number":
		return Numeral, nil
	case "symbol":
		return Symbols, nil
	case "mouse":
		return Pointer, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, s)
}
