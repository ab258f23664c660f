package common

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr stores the active logger. Accessed atomically so SetLogger can be
// called while formats are being compiled on other goroutines.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// Logger returns the logger shared by the layout packages.
// It is a no-op logger until SetLogger is called.
//
// Returns:
//   - *zap.Logger: the active logger, never nil
func Logger() *zap.Logger {
	return loggerPtr.Load()
}

// SetLogger replaces the logger shared by the layout packages.
// Passing nil restores the silent default.
//
// Parameters:
//   - l: the logger to install, or nil to disable logging
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}
