// Package script replays YAML key event scripts against the host simulator
// and checks expectations along the way.
//
// A script is a list of steps, each doing exactly one thing:
//
//	name: double tap shift
//	steps:
//	  - press: A          # keycode on the base layer, or a position like L10
//	  - press: S
//	  - wait: 60
//	  - release: A
//	  - release: S
//	  - at: 100           # absolute time in ms
//	  - tap: R33
//	  - motion: {x: 10, y: 0}
//	  - expect:
//	      emitted: [KC_ESC]
//	      active: [symbols]
//
// emitted lists the keys sent since the previous expect step.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownKey is returned when a step names no key of the keyboard.
	ErrUnknownKey = errors.New("unknown key")
	// ErrBadStep is returned for malformed steps.
	ErrBadStep = errors.New("bad step")
)

// Script is a named sequence of steps.
type Script struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Options     Options `yaml:"options,omitempty"`
	Steps       []Step  `yaml:"steps"`
}

// Options adjusts the keyboard the script runs on.
type Options struct {
	HomeRowMods bool `yaml:"home_row_mods,omitempty"`
	PointerMod  bool `yaml:"pointer_mod,omitempty"`
	NoPointing  bool `yaml:"no_pointing,omitempty"`
}

// Step is one script action.
type Step struct {
	At      *uint32 `yaml:"at,omitempty"`
	Wait    uint32  `yaml:"wait,omitempty"`
	Press   string  `yaml:"press,omitempty"`
	Release string  `yaml:"release,omitempty"`
	Tap     string  `yaml:"tap,omitempty"`

	// Hold is how long a tap keeps the key down, 10ms when unset.
	Hold   uint32  `yaml:"hold,omitempty"`
	Motion *Motion `yaml:"motion,omitempty"`
	Expect *Expect `yaml:"expect,omitempty"`
}

// Motion is a pointing device sample.
type Motion struct {
	X int8 `yaml:"x"`
	Y int8 `yaml:"y"`
}

// Expect checks simulator state. Unset fields are not checked.
type Expect struct {
	Emitted     []string `yaml:"emitted,omitempty"`
	Nothing     bool     `yaml:"nothing,omitempty"`
	Active      []string `yaml:"active,omitempty"`
	Inactive    []string `yaml:"inactive,omitempty"`
	CapsWord    *bool    `yaml:"caps_word,omitempty"`
	Sniping     *bool    `yaml:"sniping,omitempty"`
	DragScroll  *bool    `yaml:"drag_scroll,omitempty"`
	Halted      *bool    `yaml:"halted,omitempty"`
	DPI         int      `yaml:"dpi,omitempty"`
	OneShotMods string   `yaml:"one_shot_mods,omitempty"`
}

func (s Step) validate() error {
	n := 0
	for _, set := range []bool{
		s.At != nil, s.Wait > 0, s.Press != "", s.Release != "", s.Tap != "", s.Motion != nil, s.Expect != nil,
	} {
		if set {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("%w: a step needs exactly one of at, wait, press, release, tap, motion, expect (found %d)", ErrBadStep, n)
	}
	if s.Hold > 0 && s.Tap == "" {
		return fmt.Errorf("%w: hold only applies to tap", ErrBadStep)
	}
	return nil
}

// Parse decodes a script. Unknown fields are errors.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// LoadFile reads and parses a script file. Scripts without a name are named
// after the file.
func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}
