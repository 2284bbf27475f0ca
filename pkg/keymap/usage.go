package keymap

import (
	"sort"

	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/layer"
)

// Location is where a keycode is bound.
type Location struct {
	Layer layer.Layer `json:"layer"`
	Index int         `json:"index"`
}

// Locate returns every binding of k, lowest layer first.
func (t *Table) Locate(k keycode.Keycode) []Location {
	var out []Location
	for _, l := range layer.All() {
		lay := t.Layout(l)
		for i, c := range lay {
			if c == k {
				out = append(out, Location{Layer: l, Index: i})
			}
		}
	}
	return out
}

// MatrixRow is one keycode and the positions binding it on each layer.
type MatrixRow struct {
	Keycode   string              `json:"keycode"`
	Layers    map[string][]string `json:"layers"`
	Duplicate bool                `json:"duplicate"`
}

// MatrixReport shows where each keycode lives across the layers.
type MatrixReport struct {
	Rows       []MatrixRow `json:"rows"`
	LayerNames []string    `json:"layer_names"`
}

// BuildMatrix creates the usage matrix for every bound keycode. Transparent
// and KC_NO slots are skipped. A row is marked Duplicate when the keycode is
// bound more than once on the same layer.
func BuildMatrix(t *Table) MatrixReport {
	rowMap := make(map[keycode.Keycode]*MatrixRow)

	report := MatrixReport{}
	for _, l := range layer.All() {
		report.LayerNames = append(report.LayerNames, l.String())
		for i, k := range t.Layout(l) {
			if k == keycode.No || k == keycode.Transparent {
				continue
			}
			row := rowMap[k]
			if row == nil {
				row = &MatrixRow{
					Keycode: k.String(),
					Layers:  make(map[string][]string),
				}
				rowMap[k] = row
			}
			row.Layers[l.String()] = append(row.Layers[l.String()], Name(i))
			if len(row.Layers[l.String()]) > 1 {
				row.Duplicate = true
			}
		}
	}

	for _, row := range rowMap {
		report.Rows = append(report.Rows, *row)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].Keycode < report.Rows[j].Keycode
	})

	return report
}
