// Package logger provides the component loggers used by the controller and
// the simulator. Loggers come from the core logging package, so grove.yml
// logging settings and GROVE_LOG_LEVEL apply; the dilemma config and the
// debug environment variables adjust them on top.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/grovetools/core/logging"
	"github.com/sirupsen/logrus"
)

var (
	mu     sync.Mutex
	level  *logrus.Level
	output io.Writer
)

var entries = map[string]*logrus.Entry{}

func debugEnabled() bool {
	return os.Getenv("DILEMMA_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

// For returns the logger of the given component.
func For(component string) *logrus.Entry {
	mu.Lock()
	defer mu.Unlock()

	if e, ok := entries[component]; ok {
		return e
	}
	e := logging.NewLogger(component)
	configure(e.Logger)
	entries[component] = e
	return e
}

func configure(l *logrus.Logger) {
	switch {
	case debugEnabled():
		l.SetLevel(logrus.DebugLevel)
		if output == nil {
			l.SetOutput(logging.GetGlobalOutput())
		}
	case level != nil:
		l.SetLevel(*level)
	}
	if output != nil {
		l.SetOutput(output)
	}
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// SetLevel changes the level of every component logger. The debug
// environment variables take precedence.
func SetLevel(lvl string) error {
	if debugEnabled() {
		return nil
	}
	parsed, err := logrus.ParseLevel(strings.TrimSpace(lvl))
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	level = &parsed
	for _, e := range entries {
		e.Logger.SetLevel(parsed)
	}
	return nil
}

// SetOutput redirects every component logger.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	for _, e := range entries {
		e.Logger.SetOutput(w)
	}
}
