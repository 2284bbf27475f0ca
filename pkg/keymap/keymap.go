// Package keymap holds the Dilemma layer tables and resolves a matrix
// position to an action for a given set of active layers.
package keymap

import (
	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/layer"
)

// Options selects the optional row transformers and device features applied
// when building the table.
type Options struct {
	// PointingDevice keeps the pointer control keys. Without it they become
	// KC_NO.
	PointingDevice bool
	// HomeRowMods applies HomeRowModGACS to the base layer.
	HomeRowMods bool
	// PointerMod applies PointerMod to the base layer.
	PointerMod bool
}

// DefaultOptions matches the stock keymap: pointing device present, no
// home row mods and no pointer layer-taps.
func DefaultOptions() Options {
	return Options{PointingDevice: true}
}

// Table is the full keymap, indexed by layer.
type Table [layer.Count]Matrix

// Layouts returns the layer layouts after applying opts.
func Layouts(opts Options) [layer.Count]Layout {
	ls := [layer.Count]Layout{
		layer.Base:       BaseLayout,
		layer.Numeral:    NumeralLayout,
		layer.Symbols:    SymbolsLayout,
		layer.Navigation: NavigationLayout,
		layer.Pointer:    PointerLayout,
	}
	if opts.HomeRowMods {
		ls[layer.Base] = HomeRowModGACS(ls[layer.Base])
	}
	if opts.PointerMod {
		ls[layer.Base] = PointerMod(ls[layer.Base])
	}
	if !opts.PointingDevice {
		for i := range ls {
			ls[i] = WithoutPointing(ls[i])
		}
	}
	return ls
}

// Build returns the keymap table for opts.
func Build(opts Options) Table {
	var t Table
	for i, l := range Layouts(opts) {
		t[i] = l.Matrix()
	}
	return t
}

// Layout returns layer l in reading order.
func (t *Table) Layout(l layer.Layer) Layout {
	return t[l].Layout()
}

// Resolve returns the action at p for the active layers in s, and the layer
// it came from. Higher layers win; transparent keys fall through to the next
// active layer below.
func (t *Table) Resolve(s layer.State, p Position) (keycode.Keycode, layer.Layer) {
	for _, l := range s.Layers() {
		if !l.Valid() {
			continue
		}
		k := t[l].At(p)
		if k != keycode.Transparent {
			return k, l
		}
	}
	return keycode.No, layer.Base
}
