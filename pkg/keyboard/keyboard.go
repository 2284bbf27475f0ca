// Package keyboard implements the Dilemma keymap's callbacks: the one-shot
// shift double tap, the auto pointer layer and the tri-layer compositor.
//
// A Controller holds all of the keymap's mutable state. The host framework
// calls it synchronously from a single goroutine and receives side effects
// through the Host interface.
package keyboard

import (
	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/keymap"
	"github.com/grovetools/dilemma/pkg/layer"
	"github.com/grovetools/dilemma/pkg/logger"
	"github.com/grovetools/dilemma/pkg/timer"
	"github.com/sirupsen/logrus"
)

// Host is what the keymap calls back into.
type Host interface {
	// LayerOn activates l. The host runs the new state through
	// Controller.LayerStateSet before committing it.
	LayerOn(l layer.Layer)
	// LayerOff deactivates l, with the same compositor pass.
	LayerOff(l layer.Layer)
	// CapsWordToggle flips caps word.
	CapsWordToggle()
	// SetPointerSniping enables or disables sniping mode.
	SetPointerSniping(enabled bool)
}

// Record is a key event as delivered by the host.
type Record struct {
	Pressed  bool
	Time     timer.Millis
	Position keymap.Position
}

// MouseReport is one pointing device sample.
type MouseReport struct {
	Buttons uint8
	X, Y    int8
	H, V    int8
}

// AutoPointerConfig controls the motion-triggered pointer layer.
type AutoPointerConfig struct {
	Enabled   bool
	Threshold int
	Timeout   timer.Millis
}

// Config holds the keymap's tunables. Zero values are not defaults; start
// from DefaultConfig.
type Config struct {
	DoubleTapTerm  timer.Millis
	PointingDevice bool
	AutoPointer    AutoPointerConfig
	// AutoSniping mirrors SnipingLayer activation into sniping mode.
	AutoSniping  bool
	SnipingLayer layer.Layer
}

// Defaults of the stock keymap.
const (
	DefaultDoubleTapTerm        timer.Millis = 250
	DefaultAutoPointerThreshold              = 8
	DefaultAutoPointerTimeout   timer.Millis = 1000
)

// DefaultConfig returns the stock configuration with the pointing device,
// auto pointer layer and auto sniping enabled.
func DefaultConfig() Config {
	return Config{
		DoubleTapTerm:  DefaultDoubleTapTerm,
		PointingDevice: true,
		AutoPointer: AutoPointerConfig{
			Enabled:   true,
			Threshold: DefaultAutoPointerThreshold,
			Timeout:   DefaultAutoPointerTimeout,
		},
		AutoSniping:  true,
		SnipingLayer: layer.Pointer,
	}
}

// Controller is the keymap context object. It is not safe for concurrent
// use.
type Controller struct {
	cfg         Config
	log         *logrus.Entry
	doubleTap   *DoubleTap
	autoPointer *AutoPointer
	compositor  *Compositor
}

// New builds a controller for host. The auto pointer controller is omitted
// unless both the pointing device and the auto pointer layer are enabled,
// and the sniping side effect is omitted without a pointing device. A nil
// log discards output.
func New(host Host, cfg Config, log *logrus.Entry) *Controller {
	if log == nil {
		log = logger.Discard()
	}
	c := &Controller{
		cfg:       cfg,
		log:       log,
		doubleTap: &DoubleTap{Term: cfg.DoubleTapTerm, Host: host, Log: log},
		compositor: &Compositor{
			Host:         host,
			Sniping:      cfg.PointingDevice && cfg.AutoSniping,
			SnipingLayer: cfg.SnipingLayer,
			Log:          log,
		},
	}
	if cfg.PointingDevice && cfg.AutoPointer.Enabled {
		c.autoPointer = &AutoPointer{
			Threshold: cfg.AutoPointer.Threshold,
			Timeout:   cfg.AutoPointer.Timeout,
			Host:      host,
			Log:       log,
		}
	}
	return c
}

// Config returns the configuration the controller was built with.
func (c *Controller) Config() Config {
	return c.cfg
}

// ProcessRecord is called for every key event. It returns false when the
// host must not process the event any further.
func (c *Controller) ProcessRecord(kc keycode.Keycode, rec Record) bool {
	return !c.doubleTap.Observe(kc, rec.Pressed, rec.Time)
}

// PointingDeviceTask observes a motion report and returns it unchanged.
func (c *Controller) PointingDeviceTask(report MouseReport, now timer.Millis) MouseReport {
	if c.autoPointer == nil {
		return report
	}
	return c.autoPointer.Observe(report, now)
}

// MatrixScan is called once per host loop iteration.
func (c *Controller) MatrixScan(now timer.Millis) {
	if c.autoPointer != nil {
		c.autoPointer.Poll(now)
	}
}

// LayerStateSet is called whenever the active layer set is about to change
// and returns the state the host must commit.
func (c *Controller) LayerStateSet(candidate layer.State) layer.State {
	return c.compositor.Compose(candidate)
}

// AutoPointerActive reports whether the pointer layer is currently held on
// by motion.
func (c *Controller) AutoPointerActive() bool {
	return c.autoPointer != nil && c.autoPointer.Active()
}
