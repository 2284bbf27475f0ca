package keyboard

import (
	"testing"

	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/layer"
	"github.com/grovetools/dilemma/pkg/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost commits layer changes through the controller like the firmware
// does and records every side effect.
type fakeHost struct {
	ctrl     *Controller
	state    layer.State
	capsWord int
	sniping  bool
	snipeLog []bool
}

func (h *fakeHost) LayerOn(l layer.Layer)  { h.set(h.state.With(l)) }
func (h *fakeHost) LayerOff(l layer.Layer) { h.set(h.state.Without(l)) }
func (h *fakeHost) CapsWordToggle()        { h.capsWord++ }
func (h *fakeHost) SetPointerSniping(on bool) {
	h.sniping = on
	h.snipeLog = append(h.snipeLog, on)
}

func (h *fakeHost) set(s layer.State) {
	h.state = h.ctrl.LayerStateSet(s)
}

func newController(t *testing.T, cfg Config) (*Controller, *fakeHost) {
	t.Helper()
	h := &fakeHost{}
	h.ctrl = New(h, cfg, nil)
	return h.ctrl, h
}

var (
	osmLShift = keycode.OneShotMod(keycode.ModLShift)
	osmRShift = keycode.OneShotMod(keycode.ModRShift)
)

func press(c *Controller, kc keycode.Keycode, at timer.Millis) bool {
	return c.ProcessRecord(kc, Record{Pressed: true, Time: at})
}

func TestDoubleTap(t *testing.T) {
	tests := []struct {
		name     string
		taps     []timer.Millis
		keys     []keycode.Keycode
		want     []bool
		capsWord int
	}{
		{
			name:     "double tap toggles once and consumes the second",
			taps:     []timer.Millis{0, 100},
			want:     []bool{true, false},
			capsWord: 1,
		},
		{
			name: "window expired",
			taps: []timer.Millis{0, 300},
			want: []bool{true, true},
		},
		{
			name:     "exactly at the window is a single tap",
			taps:     []timer.Millis{1000, 1250},
			want:     []bool{true, true},
			capsWord: 0,
		},
		{
			name:     "triple tap toggles once",
			taps:     []timer.Millis{0, 100, 200},
			want:     []bool{true, false, true},
			capsWord: 1,
		},
		{
			name:     "quadruple tap toggles twice",
			taps:     []timer.Millis{0, 100, 200, 300},
			want:     []bool{true, false, true, false},
			capsWord: 2,
		},
		{
			name:     "either hand",
			taps:     []timer.Millis{500, 600},
			keys:     []keycode.Keycode{osmLShift, osmRShift},
			want:     []bool{true, false},
			capsWord: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, h := newController(t, DefaultConfig())
			for i, at := range tt.taps {
				kc := osmLShift
				if tt.keys != nil {
					kc = tt.keys[i]
				}
				assert.Equal(t, tt.want[i], press(c, kc, at), "tap %d at %dms", i, at)
			}
			assert.Equal(t, tt.capsWord, h.capsWord)
		})
	}
}

func TestDoubleTapIgnoresOtherEvents(t *testing.T) {
	c, h := newController(t, DefaultConfig())

	assert.True(t, press(c, osmLShift, 0))
	assert.True(t, c.ProcessRecord(osmLShift, Record{Pressed: false, Time: 50}))
	assert.True(t, press(c, keycode.A, 60))
	assert.True(t, press(c, keycode.OneShotMod(keycode.ModLCtrl), 70))
	assert.True(t, press(c, keycode.LShift, 80))
	assert.Equal(t, 0, h.capsWord)

	assert.False(t, press(c, osmLShift, 90), "intervening keys do not reset the window")
	assert.Equal(t, 1, h.capsWord)
}

func TestDoubleTapFirstTapAtBoot(t *testing.T) {
	c, h := newController(t, DefaultConfig())
	assert.True(t, press(c, osmLShift, 0), "the first tap is never a double tap")
	assert.Equal(t, 0, h.capsWord)
}

func TestDoubleTapAcrossTimerWrap(t *testing.T) {
	c, h := newController(t, DefaultConfig())
	assert.True(t, press(c, osmLShift, ^timer.Millis(0)-49))
	assert.False(t, press(c, osmLShift, 50))
	assert.Equal(t, 1, h.capsWord)
}

func TestTriLayer(t *testing.T) {
	c, h := newController(t, DefaultConfig())

	h.LayerOn(layer.Numeral)
	assert.False(t, h.state.Has(layer.Navigation))

	h.LayerOn(layer.Symbols)
	assert.True(t, h.state.Has(layer.Navigation))
	assert.Equal(t, layer.Navigation, h.state.Highest())

	h.LayerOff(layer.Numeral)
	assert.False(t, h.state.Has(layer.Navigation))
	assert.True(t, h.state.Has(layer.Symbols))

	h.LayerOn(layer.Numeral)
	h.LayerOff(layer.Symbols)
	assert.False(t, h.state.Has(layer.Navigation))

	assert.Equal(t, layer.StateOf(layer.Numeral), c.LayerStateSet(layer.StateOf(layer.Numeral, layer.Navigation)),
		"navigation is never active on its own")
}

func TestAutoPointer(t *testing.T) {
	c, h := newController(t, DefaultConfig())

	out := c.PointingDeviceTask(MouseReport{X: 10, Y: -2, Buttons: 1}, 5000)
	assert.Equal(t, MouseReport{X: 10, Y: -2, Buttons: 1}, out, "reports pass through")
	assert.True(t, h.state.Has(layer.Pointer))
	assert.True(t, c.AutoPointerActive())

	c.MatrixScan(5999)
	assert.True(t, h.state.Has(layer.Pointer))

	c.MatrixScan(6000)
	assert.False(t, h.state.Has(layer.Pointer))
	assert.False(t, c.AutoPointerActive())
}

func TestAutoPointerThreshold(t *testing.T) {
	c, h := newController(t, DefaultConfig())

	c.PointingDeviceTask(MouseReport{X: 8, Y: -8}, 0)
	assert.False(t, h.state.Has(layer.Pointer), "threshold is exclusive")

	c.PointingDeviceTask(MouseReport{Y: -9}, 0)
	assert.True(t, h.state.Has(layer.Pointer), "negative motion counts")

	c.PointingDeviceTask(MouseReport{X: -128}, 0)
	assert.True(t, h.state.Has(layer.Pointer))
}

func TestAutoPointerRefresh(t *testing.T) {
	c, h := newController(t, DefaultConfig())
	on := 0
	h2 := &countingHost{fakeHost: h, on: &on}
	c.autoPointer.Host = h2

	c.PointingDeviceTask(MouseReport{X: 20}, 0)
	c.PointingDeviceTask(MouseReport{X: 20}, 800)
	c.PointingDeviceTask(MouseReport{X: 1}, 1500)
	assert.Equal(t, 1, on, "refresh does not re-trigger activation")

	c.MatrixScan(1799)
	assert.True(t, h.state.Has(layer.Pointer), "small motion does not refresh")
	c.MatrixScan(1800)
	assert.False(t, h.state.Has(layer.Pointer))
}

func TestAutoPointerAtTimeZero(t *testing.T) {
	c, h := newController(t, DefaultConfig())
	c.PointingDeviceTask(MouseReport{X: 9}, 0)
	c.PointingDeviceTask(MouseReport{X: 9}, 10)
	c.MatrixScan(500)
	assert.True(t, h.state.Has(layer.Pointer))
	c.MatrixScan(1010)
	assert.False(t, h.state.Has(layer.Pointer))
}

type countingHost struct {
	*fakeHost
	on *int
}

func (h *countingHost) LayerOn(l layer.Layer) {
	*h.on++
	h.fakeHost.LayerOn(l)
}

func TestAutoPointerDisabled(t *testing.T) {
	for name, cfg := range map[string]Config{
		"auto pointer off": func() Config { c := DefaultConfig(); c.AutoPointer.Enabled = false; return c }(),
		"no device":        func() Config { c := DefaultConfig(); c.PointingDevice = false; return c }(),
	} {
		t.Run(name, func(t *testing.T) {
			c, h := newController(t, cfg)
			c.PointingDeviceTask(MouseReport{X: 100}, 0)
			c.MatrixScan(5000)
			assert.False(t, h.state.Has(layer.Pointer))
			assert.False(t, c.AutoPointerActive())
		})
	}
}

func TestSnipingMirrorsPointerLayer(t *testing.T) {
	c, h := newController(t, DefaultConfig())

	steps := []func(){
		func() { h.LayerOn(layer.Numeral) },
		func() { c.PointingDeviceTask(MouseReport{X: 30}, 0) },
		func() { h.LayerOn(layer.Symbols) },
		func() { h.LayerOff(layer.Numeral) },
		func() { c.MatrixScan(1000) },
		func() { h.LayerOn(layer.Pointer) },
		func() { h.LayerOff(layer.Symbols) },
		func() { h.LayerOff(layer.Pointer) },
	}
	for i, step := range steps {
		step()
		assert.Equal(t, h.state.Has(layer.Pointer), h.sniping, "after step %d (%s)", i, h.state)
	}
	require.Len(t, h.snipeLog, len(steps), "every layer change reports sniping")
}

func TestSnipingDisabledWithoutDevice(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PointingDevice = false
	_, h := newController(t, cfg)
	h.LayerOn(layer.Pointer)
	assert.Empty(t, h.snipeLog)

	cfg = DefaultConfig()
	cfg.AutoSniping = false
	_, h = newController(t, cfg)
	h.LayerOn(layer.Pointer)
	assert.Empty(t, h.snipeLog)
}
