package img2skel

import (
	"io"
	"log/slog"
	"sync"
)

var (
	logMu  sync.RWMutex
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// SetLogger routes the package's diagnostic output (stage timings,
// thinning progress) to l. Passing nil silences it again.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

// Logger returns the logger installed with SetLogger.
func Logger() *slog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}
