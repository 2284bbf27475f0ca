package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/dilemma/pkg/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestdataScripts(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadFile(path)
			require.NoError(t, err)

			res, err := Run(s, host.DefaultOptions())
			require.NoError(t, err)
			for _, f := range res.Failures {
				t.Error(f)
			}
		})
	}
}

func TestFailuresAreCollected(t *testing.T) {
	s, err := Parse([]byte(`
name: wrong expectations
steps:
  - tap: T
  - expect:
      emitted: [KC_Y]
      active: [pointer]
      caps_word: true
  - tap: Y
  - expect:
      emitted: [KC_Y]
`))
	require.NoError(t, err)

	res, err := Run(s, host.DefaultOptions())
	require.NoError(t, err)
	assert.False(t, res.Passed())
	require.Len(t, res.Failures, 3)
	assert.Equal(t, 2, res.Failures[0].Step)
	assert.Contains(t, res.Failures[0].Message, "KC_T")
	assert.Equal(t, []string{"KC_T", "KC_Y"}, res.Emitted)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{name: "two actions", input: "steps:\n  - tap: T\n    wait: 5\n", target: ErrBadStep},
		{name: "empty step", input: "steps:\n  - {}\n", target: ErrBadStep},
		{name: "hold without tap", input: "steps:\n  - press: T\n    hold: 5\n", target: ErrBadStep},
		{name: "unknown field", input: "steps:\n  - smash: T\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{name: "unknown key", input: "steps:\n  - tap: NOPE\n", target: ErrUnknownKey},
		{name: "key not on base", input: "steps:\n  - tap: KC_F1\n", target: ErrUnknownKey},
		{name: "time goes backwards", input: "steps:\n  - wait: 20\n  - at: 10\n", target: ErrBadStep},
		{name: "bad layer", input: "steps:\n  - expect:\n      active: [gaming]\n", target: ErrBadStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			_, err = Run(s, host.DefaultOptions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestPositionNames(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - tap: L04
  - tap: "4"
  - tap: KC_T
  - expect:
      emitted: [KC_T, KC_T, KC_T]
`))
	require.NoError(t, err)
	res, err := Run(s, host.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Passed(), "%v", res.Failures)
}

func TestNoPointingOption(t *testing.T) {
	s, err := Parse([]byte(`
options:
  no_pointing: true
steps:
  - motion: {x: 50, y: 50}
  - expect:
      inactive: [pointer]
      sniping: false
`))
	require.NoError(t, err)
	res, err := Run(s, host.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Passed(), "%v", res.Failures)
}

func TestLoadFileNamesUnnamedScripts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unnamed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - wait: 5\n"), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
