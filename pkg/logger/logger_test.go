package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	t.Setenv("DILEMMA_DEBUG", "")
	t.Setenv("DEBUG", "")
	require.NoError(t, SetLevel("info"))

	For("sim").WithField("layer", "nav").Info("layer on")
	assert.Contains(t, buf.String(), "sim")
	assert.Contains(t, buf.String(), "layer on")
	assert.Contains(t, buf.String(), "layer=nav")

	buf.Reset()
	For("sim").Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestForReturnsSameLogger(t *testing.T) {
	assert.Same(t, For("host"), For("host"))
	assert.Equal(t, "controller", For("controller").Data["component"])
}

func TestSetLevel(t *testing.T) {
	t.Setenv("DILEMMA_DEBUG", "")
	t.Setenv("DEBUG", "")
	e := For("levels")

	require.NoError(t, SetLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, e.Logger.GetLevel())
	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, logrus.WarnLevel, e.Logger.GetLevel())
	assert.Equal(t, logrus.WarnLevel, For("later").Logger.GetLevel(), "new loggers pick up the level")
	assert.Error(t, SetLevel("loud"))
}

func TestDebugEnvironmentWins(t *testing.T) {
	t.Setenv("DILEMMA_DEBUG", "true")
	require.NoError(t, SetLevel("error"))
	assert.Equal(t, logrus.DebugLevel, For("debugged").Logger.GetLevel())
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("dropped") })
}
