package combo

import (
	"sort"

	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/keymap"
	"github.com/grovetools/dilemma/pkg/layer"
)

// Conflict is a trigger set shared by more than one combo. Only the first
// one listed can ever fire.
type Conflict struct {
	Trigger string   `json:"trigger"`
	Combos  []string `json:"combos"`
}

// Overlap is a combo whose trigger set is a strict subset of a longer one.
// The engine resolves it by waiting for the longer match.
type Overlap struct {
	Short string `json:"short"`
	Long  string `json:"long"`
}

// DetectConflicts finds combos with identical trigger sets.
func DetectConflicts(combos []Combo) []Conflict {
	byTrigger := make(map[string][]string)
	var order []string
	for _, c := range combos {
		key := canonicalTrigger(c)
		if _, ok := byTrigger[key]; !ok {
			order = append(order, key)
		}
		byTrigger[key] = append(byTrigger[key], c.Name)
	}

	var conflicts []Conflict
	for _, key := range order {
		if names := byTrigger[key]; len(names) > 1 {
			conflicts = append(conflicts, Conflict{Trigger: key, Combos: names})
		}
	}
	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].Trigger < conflicts[j].Trigger
	})
	return conflicts
}

// Overlaps lists every pair where one trigger set is contained in another.
func Overlaps(combos []Combo) []Overlap {
	var out []Overlap
	for i := range combos {
		short := toSet(combos[i].Keys)
		for j := range combos {
			if i == j || len(toSet(combos[j].Keys)) <= len(short) {
				continue
			}
			if containsAll(&combos[j], short) {
				out = append(out, Overlap{Short: combos[i].Name, Long: combos[j].Name})
			}
		}
	}
	return out
}

// Reachable returns the layers on which every trigger key of c can be held
// at the same time, with transparent keys falling through to base.
func Reachable(t *keymap.Table, c Combo) []layer.Layer {
	var out []layer.Layer
	for _, l := range layer.All() {
		state := layer.StateOf(l)
		bound := make(map[keycode.Keycode]bool)
		for i := 0; i < keymap.KeyCount; i++ {
			k, _ := t.Resolve(state, keymap.PositionOf(i))
			bound[k] = true
		}
		ok := true
		for _, k := range c.Keys {
			if !bound[k] {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, l)
		}
	}
	return out
}

func canonicalTrigger(c Combo) string {
	keys := make([]keycode.Keycode, 0, len(c.Keys))
	for k := range toSet(c.Keys) {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return Combo{Keys: keys}.Trigger()
}
