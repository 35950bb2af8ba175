package binding

import (
	"log/slog"
	"sync"
)

var (
	logger   *slog.Logger
	loggerMu sync.RWMutex
)

// SetLogger replaces the logger bindings report swallowed failures to.
// Pass nil to restore slog.Default().
func SetLogger(l *slog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	logger = l
}

// getLogger returns the configured logger.
func getLogger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()

	if logger == nil {
		return slog.Default()
	}

	return logger
}
