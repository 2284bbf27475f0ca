package keyboard

import (
	"github.com/grovetools/dilemma/pkg/layer"
	"github.com/grovetools/dilemma/pkg/timer"
	"github.com/sirupsen/logrus"
)

// AutoPointer turns the pointer layer on when the pointing device moves
// faster than Threshold counts per report, and off again after Timeout
// without such motion.
type AutoPointer struct {
	Threshold int
	Timeout   timer.Millis
	Host      Host
	Log       *logrus.Entry

	since timer.Stamp
}

// Observe inspects a motion report. Motion above the threshold activates the
// layer if it is not already held and refreshes the idle timer.
func (a *AutoPointer) Observe(report MouseReport, now timer.Millis) MouseReport {
	if abs(int(report.X)) > a.Threshold || abs(int(report.Y)) > a.Threshold {
		if !a.since.IsSet() {
			a.Log.WithFields(logrus.Fields{"x": report.X, "y": report.Y}).Debug("motion, pointer layer on")
			a.Host.LayerOn(layer.Pointer)
		}
		a.since.Set(now)
	}
	return report
}

// Poll releases the layer once the idle timeout has passed.
func (a *AutoPointer) Poll(now timer.Millis) {
	if a.since.Expired(now, a.Timeout) {
		a.since.Clear()
		a.Log.Debug("pointer idle, pointer layer off")
		a.Host.LayerOff(layer.Pointer)
	}
}

// Active reports whether the controller currently holds the layer.
func (a *AutoPointer) Active() bool {
	return a.since.IsSet()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
