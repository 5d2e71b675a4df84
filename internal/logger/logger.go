package logger

// Logger is the logging surface shared by commands, the analyzer and the server.
type Logger interface {
	Logf(format string, args ...interface{})
	Log(msg string)
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// nopLogger discards everything. Used when callers pass no logger.
type nopLogger struct{}

func (nopLogger) Logf(format string, args ...interface{})   {}
func (nopLogger) Log(msg string)                            {}
func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Warnf(format string, args ...interface{})  {}

// Nop returns a Logger that writes nothing.
func Nop() Logger { return nopLogger{} }

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l
}
