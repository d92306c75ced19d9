// Package capslog wires up a process-wide zerolog logger: Get returns it,
// SetGlobal replaces it (e.g. with a silent or buffered sink in tests), and
// Component derives a child logger tagged with a component name. A
// replacement made with SetGlobal reaches only code that logs through this
// package.
package capslog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	current = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// Get returns the current process-wide logger.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetGlobal replaces the process-wide logger, e.g. to switch to JSON output
// in production or a discard sink in tests.
func SetGlobal(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

// Discard returns a logger that drops every event, for use in tests that
// want to exercise warn-only code paths without console noise.
func Discard() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

// Component returns a child logger tagged with the owning component name,
// matching the "component" field convention used throughout capcore.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}
