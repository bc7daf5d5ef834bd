package compiler

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the package logger, a no-op logger until SetLogger is
// called. Safe for concurrent use.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger replaces the package logger. Existing compilations keep
// the logger they were created with. A nil l restores the no-op logger.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
