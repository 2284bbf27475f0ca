// Package config loads and validates the dilemma configuration file, which
// overrides the keymap's compile-time style constants.
package config

//go:generate sh -c "cd ../.. && go run ./tools/schema-generator/"

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/grovetools/dilemma/pkg/host"
	"github.com/grovetools/dilemma/pkg/keyboard"
	"github.com/grovetools/dilemma/pkg/keymap"
	"github.com/grovetools/dilemma/pkg/layer"
	"github.com/grovetools/dilemma/pkg/timer"
	"github.com/sirupsen/logrus"
)

// CurrentVersion is written by Default and config init.
const CurrentVersion = "1.0.0"

// compatible is the range of config versions this build reads.
const compatible = "^1"

var (
	// ErrUnknownFormat is returned for files that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown config format")
	// ErrIncompatibleVersion is returned for config versions outside ^1.
	ErrIncompatibleVersion = errors.New("incompatible config version")
)

// Config is the root of dilemma.toml / dilemma.yml.
type Config struct {
	Version  string         `yaml:"version" toml:"version" json:"version" jsonschema:"description=Config format version (semver; must satisfy ^1),default=1.0.0"`
	LogLevel string         `yaml:"log_level" toml:"log_level" json:"log_level" jsonschema:"description=Log level,enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Keyboard KeyboardConfig `yaml:"keyboard" toml:"keyboard" json:"keyboard"`
	Pointing PointingConfig `yaml:"pointing" toml:"pointing" json:"pointing"`
}

// KeyboardConfig holds key timing and layout options.
type KeyboardConfig struct {
	DoubleTapTermMS int  `yaml:"double_tap_term_ms" toml:"double_tap_term_ms" json:"double_tap_term_ms" jsonschema:"description=Window for the one-shot shift double tap that toggles caps word,minimum=1,default=250"`
	ComboTermMS     int  `yaml:"combo_term_ms" toml:"combo_term_ms" json:"combo_term_ms" jsonschema:"description=How long the combo engine waits for the remaining trigger keys,minimum=1,default=50"`
	TappingTermMS   int  `yaml:"tapping_term_ms" toml:"tapping_term_ms" json:"tapping_term_ms" jsonschema:"description=Hold time after which a tap-hold key acts as its hold action,minimum=1,default=200"`
	HomeRowMods     bool `yaml:"home_row_mods" toml:"home_row_mods" json:"home_row_mods" jsonschema:"description=Turn the base layer home row into GUI/Alt/Ctrl/Shift mod-taps"`
	PointerMod      bool `yaml:"pointer_mod" toml:"pointer_mod" json:"pointer_mod" jsonschema:"description=Make the outer bottom keys of the base layer hold the pointer layer"`
}

// PointingConfig holds the trackpad options.
type PointingConfig struct {
	Enabled          bool                   `yaml:"enabled" toml:"enabled" json:"enabled" jsonschema:"description=A pointing device is fitted,default=true"`
	AutoSnipingLayer string                 `yaml:"auto_sniping_layer" toml:"auto_sniping_layer" json:"auto_sniping_layer" jsonschema:"description=Layer that turns sniping mode on while active; empty disables,default=pointer"`
	AutoPointerLayer AutoPointerLayerConfig `yaml:"auto_pointer_layer" toml:"auto_pointer_layer" json:"auto_pointer_layer"`
}

// AutoPointerLayerConfig controls the motion-triggered pointer layer.
type AutoPointerLayerConfig struct {
	Enabled   bool `yaml:"enabled" toml:"enabled" json:"enabled" jsonschema:"description=Activate the pointer layer on motion,default=true"`
	Threshold int  `yaml:"threshold" toml:"threshold" json:"threshold" jsonschema:"description=Motion counts per report above which the layer activates,minimum=0,maximum=127,default=8"`
	TimeoutMS int  `yaml:"timeout_ms" toml:"timeout_ms" json:"timeout_ms" jsonschema:"description=Idle time after which the layer is released,minimum=1,default=1000"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Version:  CurrentVersion,
		LogLevel: "info",
		Keyboard: KeyboardConfig{
			DoubleTapTermMS: int(keyboard.DefaultDoubleTapTerm),
			ComboTermMS:     int(host.DefaultComboTerm),
			TappingTermMS:   int(host.DefaultTappingTerm),
		},
		Pointing: PointingConfig{
			Enabled:          true,
			AutoSnipingLayer: layer.Pointer.String(),
			AutoPointerLayer: AutoPointerLayerConfig{
				Enabled:   true,
				Threshold: keyboard.DefaultAutoPointerThreshold,
				TimeoutMS: int(keyboard.DefaultAutoPointerTimeout),
			},
		},
	}
}

// Validate checks every field and returns all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Version == "" {
		errs = append(errs, fmt.Errorf("version: missing"))
	} else if v, err := semver.NewVersion(c.Version); err != nil {
		errs = append(errs, fmt.Errorf("version %q: %w", c.Version, err))
	} else {
		constraint, _ := semver.NewConstraint(compatible)
		if !constraint.Check(v) {
			errs = append(errs, fmt.Errorf("version %s: %w (want %s)", c.Version, ErrIncompatibleVersion, compatible))
		}
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s: must be positive, got %d", name, v))
		}
	}
	positive("keyboard.double_tap_term_ms", c.Keyboard.DoubleTapTermMS)
	positive("keyboard.combo_term_ms", c.Keyboard.ComboTermMS)
	positive("keyboard.tapping_term_ms", c.Keyboard.TappingTermMS)
	positive("pointing.auto_pointer_layer.timeout_ms", c.Pointing.AutoPointerLayer.TimeoutMS)

	if t := c.Pointing.AutoPointerLayer.Threshold; t < 0 || t > 127 {
		errs = append(errs, fmt.Errorf("pointing.auto_pointer_layer.threshold: must be within 0-127, got %d", t))
	}
	if name := strings.TrimSpace(c.Pointing.AutoSnipingLayer); name != "" {
		if _, err := layer.Parse(name); err != nil {
			errs = append(errs, fmt.Errorf("pointing.auto_sniping_layer: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Controller returns the keymap controller configuration. It assumes the
// config is valid.
func (c *Config) Controller() keyboard.Config {
	cfg := keyboard.Config{
		DoubleTapTerm:  timer.Millis(c.Keyboard.DoubleTapTermMS),
		PointingDevice: c.Pointing.Enabled,
		AutoPointer: keyboard.AutoPointerConfig{
			Enabled:   c.Pointing.AutoPointerLayer.Enabled,
			Threshold: c.Pointing.AutoPointerLayer.Threshold,
			Timeout:   timer.Millis(c.Pointing.AutoPointerLayer.TimeoutMS),
		},
	}
	if name := strings.TrimSpace(c.Pointing.AutoSnipingLayer); name != "" {
		if l, err := layer.Parse(name); err == nil {
			cfg.AutoSniping = true
			cfg.SnipingLayer = l
		}
	}
	return cfg
}

// Keymap returns the keymap build options.
func (c *Config) Keymap() keymap.Options {
	return keymap.Options{
		PointingDevice: c.Pointing.Enabled,
		HomeRowMods:    c.Keyboard.HomeRowMods,
		PointerMod:     c.Keyboard.PointerMod,
	}
}

// Host returns simulator options for this config with the stock combos.
func (c *Config) Host(log *logrus.Entry) host.Options {
	opts := host.DefaultOptions()
	opts.Keymap = c.Keymap()
	opts.Controller = c.Controller()
	opts.ComboTerm = timer.Millis(c.Keyboard.ComboTermMS)
	opts.TappingTerm = timer.Millis(c.Keyboard.TappingTermMS)
	opts.Log = log
	return opts
}
