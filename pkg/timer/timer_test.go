package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElapsedWraps(t *testing.T) {
	assert.Equal(t, Millis(10), Elapsed(5, ^Millis(0)-4))
	assert.Equal(t, Millis(250), Elapsed(1250, 1000))
}

func TestStamp(t *testing.T) {
	var s Stamp
	assert.False(t, s.IsSet())
	assert.False(t, s.Within(0, 250), "unset stamp at time zero must not be inside the window")
	assert.False(t, s.Expired(5000, 1000))

	s.Set(0)
	assert.True(t, s.IsSet())
	assert.True(t, s.Within(249, 250))
	assert.False(t, s.Within(250, 250))
	assert.False(t, s.Expired(999, 1000))
	assert.True(t, s.Expired(1000, 1000))

	at, ok := s.At()
	assert.True(t, ok)
	assert.Equal(t, Millis(0), at)

	s.Clear()
	_, ok = s.At()
	assert.False(t, ok)
}
