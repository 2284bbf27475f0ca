package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/core/tui/components/help"
	"github.com/grovetools/dilemma/pkg/combo"
	"github.com/grovetools/dilemma/pkg/config"
	"github.com/grovetools/dilemma/pkg/host"
	"github.com/grovetools/dilemma/pkg/keymap"
	"github.com/grovetools/dilemma/pkg/layer"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayerFlag(t *testing.T) {
	var f layerFlag
	assert.Equal(t, layer.All(), f.Selected())

	require.NoError(t, f.Set("sym"))
	require.NoError(t, f.Set("navigation,0"))
	assert.Equal(t, []layer.Layer{layer.Symbols, layer.Navigation, layer.Base}, f.Selected())
	assert.Equal(t, "symbols,navigation,base", f.String())
	assert.Equal(t, "layer", f.Type())

	assert.Error(t, f.Set("gaming"))
}

func TestKeymapFlagsOnlyOverrideChangedFlags(t *testing.T) {
	var f keymapFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{"--pointer-mod", "--no-pointing"}))

	cfg := config.Default()
	cfg.Keyboard.HomeRowMods = true
	f.apply(cmd, cfg)

	assert.True(t, cfg.Keyboard.HomeRowMods, "unset flag keeps the config value")
	assert.True(t, cfg.Keyboard.PointerMod)
	assert.False(t, cfg.Pointing.Enabled)
}

func TestCheckCombos(t *testing.T) {
	table := keymap.Build(keymap.DefaultOptions())
	report := checkCombos(&table, combo.Defaults())
	assert.Empty(t, report.Conflicts)
	assert.Empty(t, report.Unreachable)
	assert.NotEmpty(t, report.Overlaps)

	hrm := keymap.Build(keymap.Options{PointingDevice: true, HomeRowMods: true})
	report = checkCombos(&hrm, combo.Defaults())
	assert.Contains(t, report.Unreachable, "AS_SHFT")
	assert.Contains(t, report.Unreachable, "ASD_GUI")
	assert.NotContains(t, report.Unreachable, "QW_ESC")
}

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		name   string
		from   int
		dr, dc int
		want   int
	}{
		{name: "right", from: 0, dc: 1, want: 1},
		{name: "right wraps within row", from: 9, dc: 1, want: 0},
		{name: "left wraps", from: 10, dc: -1, want: 19},
		{name: "down", from: 4, dr: 1, want: 14},
		{name: "down to thumbs clamps left", from: 20, dr: 1, want: 30},
		{name: "down to thumbs", from: 24, dr: 1, want: 31},
		{name: "down to right thumb", from: 25, dr: 1, want: 32},
		{name: "down to thumbs clamps right", from: 29, dr: 1, want: 33},
		{name: "thumb up", from: 33, dr: -1, want: 26},
		{name: "thumb wraps to top", from: 31, dr: 1, want: 4},
		{name: "thumb right", from: 31, dc: 1, want: 32},
		{name: "top wraps to thumbs", from: 5, dr: -1, want: 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, moveCursor(tt.from, tt.dr, tt.dc))
		})
	}
}

func TestRenderLayout(t *testing.T) {
	table := keymap.Build(keymap.DefaultOptions())
	out := renderLayout(table.Layout(layer.Base), nil)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Q")
	assert.Contains(t, lines[0], "P")
	assert.Contains(t, lines[3], "SPC")

	sym := renderLayout(table.Layout(layer.Symbols), nil)
	assert.Contains(t, sym, "▽")
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := executeRoot(t, "--help")
	require.NoError(t, err)

	for _, sub := range []string{"keymap", "combos", "sim", "config"} {
		assert.Contains(t, out, sub)
	}
	assert.Contains(t, out, "--config")
}

func TestConfigInitUsesConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dilemma.yaml")

	_, err := executeRoot(t, "config", "init", "--config", path)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = executeRoot(t, "config", "init", "--config", path)
	assert.Error(t, err, "an existing file is not overwritten without --force")
}

func TestSimKeys(t *testing.T) {
	km := newSimKeyMap()
	m := simModel{kb: host.New(host.DefaultOptions()), keys: km, help: help.New(km)}
	press := func(msg tea.KeyMsg) {
		t.Helper()
		next, _ := m.Update(msg)
		m = next.(simModel)
	}
	runes := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

	press(runes("l"))
	assert.Equal(t, 1, m.cursor)

	press(runes("?"))
	require.True(t, m.help.ShowAll)
	assert.Equal(t, m.help.View(), m.View())
	press(runes("l"))
	assert.Equal(t, 1, m.cursor, "keys go to the help view while it is open")
	press(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.help.ShowAll)

	press(tea.KeyMsg{Type: tea.KeySpace})
	assert.Len(t, m.kb.Emitted(), 1)
}
