package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusLogger adapts a logrus entry to Logger. Messages keep any fields
// attached with WithField.
type LogrusLogger struct {
	entry *logrus.Entry
}

// Options configures NewLogrusLogger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	Output io.Writer
}

// NewLogrusLogger builds a dedicated logrus logger. An unparsable level falls
// back to info and is reported once at warn level.
func NewLogrusLogger(opts Options) *LogrusLogger {
	l := logrus.New()
	if opts.Output != nil {
		l.SetOutput(opts.Output)
	} else {
		l.SetOutput(os.Stderr)
	}

	switch strings.ToLower(opts.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			l.Warnf("invalid log level %q, using info: %v", opts.Level, err)
		} else {
			level = parsed
		}
	}
	l.SetLevel(level)

	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

// WithField returns a logger that adds key=value to every message.
func (l *LogrusLogger) WithField(key string, value interface{}) *LogrusLogger {
	return &LogrusLogger{entry: l.entry.WithField(key, value)}
}

func (l *LogrusLogger) Logf(format string, args ...interface{}) {
	l.entry.Infof(strings.TrimSuffix(format, "\n"), args...)
}

func (l *LogrusLogger) Log(msg string) { l.entry.Info(msg) }

func (l *LogrusLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(strings.TrimSuffix(format, "\n"), args...)
}

func (l *LogrusLogger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(strings.TrimSuffix(format, "\n"), args...)
}
