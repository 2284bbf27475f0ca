package keymap

import (
	"testing"

	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryRoundTrip(t *testing.T) {
	seen := map[Position]bool{}
	for i := 0; i < KeyCount; i++ {
		p := PositionOf(i)
		require.False(t, seen[p], "position %v used twice", p)
		seen[p] = true

		j, ok := IndexOf(p)
		require.True(t, ok)
		assert.Equal(t, i, j)
	}

	tbl := Build(DefaultOptions())
	for _, l := range layer.All() {
		assert.Equal(t, tbl[l].Layout(), tbl.Layout(l))
	}
}

func TestRightHalfIsMirrored(t *testing.T) {
	assert.Equal(t, Position{Row: 4, Col: 0}, PositionOf(9), "outer right key is column 0 of the right half")
	assert.Equal(t, Position{Row: 4, Col: 4}, PositionOf(5))
	assert.Equal(t, keycode.P, BaseLayout.Matrix()[4][0])
}

func TestNames(t *testing.T) {
	assert.Equal(t, "L00", Name(0))
	assert.Equal(t, "R09", Name(9))
	assert.Equal(t, "L13", Name(13))
	assert.Equal(t, "L31", Name(31))
	assert.Equal(t, "R32", Name(32))

	for i := 0; i < KeyCount; i++ {
		j, err := ParseName(Name(i))
		require.NoError(t, err)
		assert.Equal(t, i, j)
	}

	i, err := ParseName("33")
	require.NoError(t, err)
	assert.Equal(t, 33, i)

	_, err = ParseName("L09")
	assert.Error(t, err)
	_, err = ParseName("R34")
	assert.Error(t, err)
}

func TestResolveFallsThroughTransparent(t *testing.T) {
	tbl := Build(DefaultOptions())
	leftThumb := PositionOf(30)

	k, l := tbl.Resolve(layer.StateOf(layer.Symbols), leftThumb)
	assert.Equal(t, keycode.OneShotLayer(layer.Numeral), k)
	assert.Equal(t, layer.Base, l)

	k, l = tbl.Resolve(layer.StateOf(layer.Numeral), PositionOf(0))
	assert.Equal(t, keycode.F1, k)
	assert.Equal(t, layer.Numeral, l)

	k, l = tbl.Resolve(layer.StateOf(layer.Numeral, layer.Symbols, layer.Navigation), PositionOf(16))
	assert.Equal(t, keycode.Down, k)
	assert.Equal(t, layer.Navigation, l)

	k, _ = tbl.Resolve(0, PositionOf(19))
	assert.Equal(t, keycode.Quote, k)
}

func TestHomeRowModGACS(t *testing.T) {
	l := HomeRowModGACS(BaseLayout)
	assert.Equal(t, keycode.ModTap(keycode.ModLGUI, keycode.A), l[10])
	assert.Equal(t, keycode.ModTap(keycode.ModLShift, keycode.F), l[13])
	assert.Equal(t, keycode.G, l[14])
	assert.Equal(t, keycode.H, l[15])
	assert.Equal(t, keycode.ModTap(keycode.ModRShift, keycode.J), l[16])
	assert.Equal(t, keycode.ModTap(keycode.ModRGUI, keycode.Quote), l[19])
	assert.Equal(t, keycode.A, BaseLayout[10], "transformer must not modify its input")

	sym := HomeRowModGACS(SymbolsLayout)
	assert.Equal(t, keycode.LessThan, sym[10], "shifted symbols cannot carry a mod-tap")
}

func TestPointerMod(t *testing.T) {
	l := PointerMod(BaseLayout)
	assert.Equal(t, keycode.LayerTap(layer.Pointer, keycode.Z), l[20])
	assert.Equal(t, keycode.LayerTap(layer.Pointer, keycode.Slash), l[29])
	assert.Equal(t, keycode.X, l[21])
}

func TestBuildWithoutPointing(t *testing.T) {
	tbl := Build(Options{})
	assert.Empty(t, tbl.Locate(keycode.SnipingMode))
	assert.Empty(t, tbl.Locate(keycode.DPIForward))
	assert.Len(t, tbl.Locate(keycode.Boot), 2, "boot is not a pointing key")

	full := Build(DefaultOptions())
	assert.Len(t, full.Locate(keycode.SnipingMode), 2)
}

func TestBuildOptionsOnlyTouchBase(t *testing.T) {
	tbl := Build(Options{PointingDevice: true, HomeRowMods: true, PointerMod: true})
	base := tbl.Layout(layer.Base)
	assert.Equal(t, keycode.LayerTap(layer.Pointer, keycode.Z), base[20])
	assert.Equal(t, keycode.ModTap(keycode.ModLAlt, keycode.S), base[11])
	assert.Equal(t, NumeralLayout, tbl.Layout(layer.Numeral))
}

func TestBuildMatrix(t *testing.T) {
	tbl := Build(DefaultOptions())
	report := BuildMatrix(&tbl)

	assert.Equal(t, []string{"base", "numeral", "symbols", "navigation", "pointer"}, report.LayerNames)

	rows := map[string]MatrixRow{}
	for _, r := range report.Rows {
		rows[r.Keycode] = r
	}

	grv := rows["KC_GRV"]
	assert.Equal(t, []string{"R09", "L24"}, grv.Layers["symbols"])
	assert.True(t, grv.Duplicate)

	minus := rows["KC_MINS"]
	assert.Equal(t, []string{"R09"}, minus.Layers["numeral"])
	assert.Equal(t, []string{"L14"}, minus.Layers["symbols"])
	assert.False(t, minus.Duplicate)

	_, hasNo := rows["KC_NO"]
	assert.False(t, hasNo)
}
