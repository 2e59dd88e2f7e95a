// Package logx defines the minimal leveled logging contract used across the
// engine. Components accept a [Logger] so callers can plug in their own
// sink; the default writes to the standard library logger.
package logx

import "log"

// Logger is the logging contract consumed by the engine's components.
// Cache corruption is reported at debug level, best-effort write failures
// at warning level.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Std returns a Logger backed by the standard library's default logger.
func Std() Logger { return stdLogger{} }

type stdLogger struct{}

func (stdLogger) Debugf(format string, args ...any) { log.Printf("[DEBUG] "+format, args...) }
func (stdLogger) Warnf(format string, args ...any)  { log.Printf("[WARN] "+format, args...) }
func (stdLogger) Errorf(format string, args ...any) { log.Printf("[ERROR] "+format, args...) }

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
