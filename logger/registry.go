package logger

import "sync"

var (
	namedMu sync.RWMutex
	named   = map[string]*Logger{}
)

// Register makes l the logger returned by Get(name). Tests use it to
// capture a package's output.
func Register(name string, l *Logger) {
	namedMu.Lock()
	named[name] = l
	namedMu.Unlock()
}

// Get returns the logger registered under name. Unregistered names get the
// global logger with a component field set to name.
func Get(name string) *Logger {
	namedMu.RLock()
	l, ok := named[name]
	namedMu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// Reset forgets every registered logger.
func Reset() {
	namedMu.Lock()
	clear(named)
	namedMu.Unlock()
}
