package combo

import (
	"testing"

	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/keymap"
	"github.com/grovetools/dilemma/pkg/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	combos := Defaults()
	require.Len(t, combos, 17)

	kinds := map[Kind]int{}
	for _, c := range combos {
		kinds[c.Kind()]++
		assert.GreaterOrEqual(t, len(c.Keys), 2, c.Name)
		assert.LessOrEqual(t, len(c.Keys), 3, c.Name)
	}
	assert.Equal(t, 4, kinds[KindEmit])
	assert.Equal(t, 3, kinds[KindLayerReset])
	assert.Equal(t, 10, kinds[KindOneShotMod])

	meh, ok := Find(combos, "zc_meh")
	require.True(t, ok)
	assert.Equal(t, keycode.OneShotMod(keycode.ModMeh), meh.Result)
	assert.Equal(t, "KC_Z+KC_C", meh.Trigger())

	combos[0].Name = "changed"
	assert.Equal(t, "QW_ESC", Defaults()[0].Name)
}

func TestMatch(t *testing.T) {
	combos := Defaults()

	tests := []struct {
		name    string
		held    []keycode.Keycode
		exact   string
		pending bool
	}{
		{name: "empty", held: nil},
		{name: "single key of a pair", held: []keycode.Keycode{keycode.Q}, pending: true},
		{name: "non-combo key", held: []keycode.Keycode{keycode.T}},
		{name: "pair", held: []keycode.Keycode{keycode.W, keycode.Q}, exact: "QW_ESC"},
		{name: "pair with longer candidate", held: []keycode.Keycode{keycode.A, keycode.S}, exact: "AS_SHFT", pending: true},
		{name: "triple", held: []keycode.Keycode{keycode.S, keycode.D, keycode.A}, exact: "ASD_GUI"},
		{name: "right triple", held: []keycode.Keycode{keycode.K, keycode.L, keycode.Quote}, exact: "KLQ_GUI"},
		{name: "unrelated pair", held: []keycode.Keycode{keycode.Q, keycode.A}},
		{name: "duplicates are a set", held: []keycode.Keycode{keycode.E, keycode.E, keycode.R}, exact: "ER_TAB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Match(combos, tt.held)
			if tt.exact == "" {
				assert.Nil(t, m.Exact)
			} else {
				require.NotNil(t, m.Exact)
				assert.Equal(t, tt.exact, m.Exact.Name)
			}
			assert.Equal(t, tt.pending, m.Pending)
		})
	}
}

func TestContains(t *testing.T) {
	combos := Defaults()
	assert.True(t, Contains(combos, keycode.Q))
	assert.True(t, Contains(combos, keycode.Exclaim))
	assert.False(t, Contains(combos, keycode.T))
	assert.False(t, Contains(combos, keycode.Space))
}

func TestDetectConflicts(t *testing.T) {
	assert.Empty(t, DetectConflicts(Defaults()))

	combos := append(Defaults(), Combo{Name: "WQ_DUP", Keys: []keycode.Keycode{keycode.W, keycode.Q}, Result: keycode.Enter})
	conflicts := DetectConflicts(combos)
	require.Len(t, conflicts, 1)
	assert.Equal(t, []string{"QW_ESC", "WQ_DUP"}, conflicts[0].Combos)
	assert.Equal(t, "KC_Q+KC_W", conflicts[0].Trigger)
}

func TestOverlaps(t *testing.T) {
	overlaps := Overlaps(Defaults())
	assert.ElementsMatch(t, []Overlap{
		{Short: "AS_SHFT", Long: "ASD_GUI"},
		{Short: "SD_CTRL", Long: "ASD_GUI"},
		{Short: "LQUOT_SHFT", Long: "KLQ_GUI"},
		{Short: "KL_CTRL", Long: "KLQ_GUI"},
	}, overlaps)
}

func TestReachable(t *testing.T) {
	tbl := keymap.Build(keymap.DefaultOptions())

	tests := []struct {
		combo string
		want  []layer.Layer
	}{
		{"QW_ESC", []layer.Layer{layer.Base}},
		{"QP_BASE_NUM", []layer.Layer{layer.Numeral}},
		{"QP_BASE_SYM", []layer.Layer{layer.Symbols}},
		{"COMSLSH_MEH", []layer.Layer{layer.Base}},
	}
	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			c, ok := Find(Defaults(), tt.combo)
			require.True(t, ok)
			assert.Equal(t, tt.want, Reachable(&tbl, c))
		})
	}

	hrm := keymap.Build(keymap.Options{PointingDevice: true, HomeRowMods: true})
	as, _ := Find(Defaults(), "AS_SHFT")
	assert.Empty(t, Reachable(&hrm, as), "mod-taps replace the plain trigger keys")
}
