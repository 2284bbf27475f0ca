package keyboard

import (
	"github.com/grovetools/dilemma/pkg/layer"
	"github.com/sirupsen/logrus"
)

// Compositor derives Navigation from Numeral+Symbols and keeps sniping mode
// in step with SnipingLayer.
type Compositor struct {
	Host         Host
	Sniping      bool
	SnipingLayer layer.Layer
	Log          *logrus.Entry
}

// Compose returns the state to commit for candidate.
func (c *Compositor) Compose(candidate layer.State) layer.State {
	state := candidate
	if state.Has(layer.Numeral) && state.Has(layer.Symbols) {
		state = state.With(layer.Navigation)
	} else {
		state = state.Without(layer.Navigation)
	}
	if state != candidate {
		c.Log.WithFields(logrus.Fields{"candidate": candidate, "state": state}).Debug("tri-layer")
	}
	if c.Sniping {
		c.Host.SetPointerSniping(state.Has(c.SnipingLayer))
	}
	return state
}
