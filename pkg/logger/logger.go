/* pkg/logger/logger.go */

package logger

import (
	"go.uber.org/zap"
)

var log *zap.Logger

// L returns the global logger, initializing a console fallback if needed.
func L() *zap.Logger {
	if log == nil {
		log = NewFallbackLogger()
		zap.ReplaceGlobals(log)
	}
	return log
}

// Sync flushes any buffered log entries. Should be called before the application exits.
func Sync() error {
	if log != nil {
		return log.Sync()
	}
	return nil
}
