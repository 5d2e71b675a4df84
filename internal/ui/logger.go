package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

type logEntry struct {
	level   string
	message string
}

var (
	activeLogMu sync.RWMutex
	activeLogCh chan logEntry
)

// setActiveLogChannel sets the channel used by the spinner to receive log updates.
// It is intended for internal use by the spinner only.
func setActiveLogChannel(ch chan logEntry) {
	activeLogMu.Lock()
	activeLogCh = ch
	activeLogMu.Unlock()
}

// clearActiveLogChannel clears the active spinner log channel.
func clearActiveLogChannel() {
	setActiveLogChannel(nil)
}

func publish(level, msg string) {
	activeLogMu.RLock()
	ch := activeLogCh
	activeLogMu.RUnlock()
	if ch == nil {
		return
	}
	select {
	case ch <- logEntry{level: level, message: strings.TrimSpace(msg)}:
	default:
		// drop if channel is full to avoid blocking
	}
}

// Logf logs a formatted message. If a spinner is active, it also updates its text.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	publish("info", msg)
	fmt.Fprint(os.Stdout, msg)
}

// Log writes a plain message with newline semantics.
func Log(msg string) {
	Logf("%s\n", msg)
}

// UILogger is the logger.Logger used by interactive commands. Output goes to
// Out (stderr when nil) and the latest line is mirrored into a running spinner.
type UILogger struct {
	Out     io.Writer
	Verbose bool
}

func (l *UILogger) out() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stderr
}

func (l *UILogger) Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	publish("info", msg)
	fmt.Fprint(l.out(), msg)
}

func (l *UILogger) Log(msg string) { l.Logf("%s\n", msg) }

func (l *UILogger) Debugf(format string, args ...interface{}) {
	if !l.Verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	publish("debug", msg)
	fmt.Fprint(l.out(), msg)
}

func (l *UILogger) Warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	publish("warn", msg)
	fmt.Fprint(l.out(), "warning: "+msg)
}
