package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grovetools/dilemma/pkg/keyboard"
	"github.com/grovetools/dilemma/pkg/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultMatchesKeymapDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, keyboard.DefaultConfig(), cfg.Controller())

	opts := cfg.Keymap()
	assert.True(t, opts.PointingDevice)
	assert.False(t, opts.HomeRowMods)
	assert.False(t, opts.PointerMod)
}

func TestLoadTOMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dilemma.toml", `
version = "1.2.0"

[keyboard]
double_tap_term_ms = 300
home_row_mods = true

[pointing.auto_pointer_layer]
threshold = 12
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.Keyboard.DoubleTapTermMS)
	assert.Equal(t, 50, cfg.Keyboard.ComboTermMS, "missing keys keep their defaults")
	assert.True(t, cfg.Keymap().HomeRowMods)

	ctrl := cfg.Controller()
	assert.Equal(t, 12, ctrl.AutoPointer.Threshold)
	assert.True(t, ctrl.AutoPointer.Enabled)
	assert.True(t, ctrl.AutoSniping)
	assert.Equal(t, layer.Pointer, ctrl.SnipingLayer)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dilemma.yml", `
version: "1.0.0"
pointing:
  enabled: false
  auto_sniping_layer: ""
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Keymap().PointingDevice)
	assert.False(t, cfg.Controller().PointingDevice)
	assert.False(t, cfg.Controller().AutoSniping)
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dilemma.yaml", "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		target  error
		msg     string
	}{
		{name: "unknown toml key", file: "a.toml", content: "[keyboard]\ncombo_term = 40\n", msg: "keyboard.combo_term"},
		{name: "unknown yaml key", file: "a.yml", content: "keyboard:\n  combo_term: 40\n", msg: "combo_term"},
		{name: "incompatible version", file: "b.toml", content: `version = "2.0.0"`, target: ErrIncompatibleVersion},
		{name: "bad version", file: "c.toml", content: `version = "one"`, msg: "version"},
		{name: "unknown format", file: "d.json", content: "{}", target: ErrUnknownFormat},
		{name: "missing file", file: "missing.toml", target: os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if tt.content != "" {
				path = writeFile(t, dir, tt.file, tt.content)
			}
			_, err := Load(path)
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"
	cfg.Keyboard.ComboTermMS = 0
	cfg.Pointing.AutoPointerLayer.Threshold = 200
	cfg.Pointing.AutoSnipingLayer = "gaming"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"log_level", "combo_term_ms", "threshold", "auto_sniping_layer"} {
		assert.Contains(t, err.Error(), want)
	}
	assert.True(t, errors.Is(err, layer.ErrUnknownLayer))
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Keyboard.PointerMod = true
	cfg.Pointing.AutoPointerLayer.TimeoutMS = 1500

	for _, name := range []string{"nested/dilemma.toml", "dilemma.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, cfg))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, got)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)

	_, _, err = LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err, "an explicit path must exist")
}

func TestSchema(t *testing.T) {
	s := Schema()
	assert.Equal(t, "Dilemma Configuration", s.Title)
	require.NotNil(t, s.Properties)
	for _, key := range []string{"version", "log_level", "keyboard", "pointing"} {
		_, ok := s.Properties.Get(key)
		assert.True(t, ok, key)
	}
	assert.Empty(t, s.Required)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dilemma.toml", `version = "1.0.0"`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configs, errs, err := Watch(ctx, path)
	require.NoError(t, err)

	writeFile(t, dir, "dilemma.toml", "version = \"1.0.0\"\n[keyboard]\ncombo_term_ms = 80\n")
	select {
	case cfg := <-configs:
		assert.Equal(t, 80, cfg.Keyboard.ComboTermMS)
	case err := <-errs:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}

	writeFile(t, dir, "dilemma.toml", "version = \"3.0.0\"\n")
	deadline := time.After(5 * time.Second)
wait:
	for {
		select {
		case err := <-errs:
			assert.True(t, errors.Is(err, ErrIncompatibleVersion))
			break wait
		case cfg := <-configs:
			// A late event from the first write may still reload it.
			require.Equal(t, 80, cfg.Keyboard.ComboTermMS, "invalid config delivered")
		case <-deadline:
			t.Fatal("no error")
		}
	}

	writeFile(t, dir, "other.toml", "garbage")
	cancel()
	for range configs {
	}
}

func TestWatchCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dilemma")
	path := filepath.Join(dir, "dilemma.toml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configs, errs, err := Watch(ctx, path)
	require.NoError(t, err)
	assert.DirExists(t, dir)

	require.NoError(t, Save(path, Default()))
	select {
	case cfg := <-configs:
		assert.Equal(t, Default().Keyboard, cfg.Keyboard)
	case err := <-errs:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}
}
