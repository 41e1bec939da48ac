package logging

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ComponentLogger provides scoped logging for a specific component.
// It writes to both a local ErrorLogger (file) and a Dispatcher
// (console, syslog, OTLP) when configured. Nil-safe: if both are nil,
// calls are no-ops.
type ComponentLogger struct {
	component   string
	errorLogger *ErrorLogger
	dispatcher  *Dispatcher
}

// NewComponentLogger creates a logger for the given component.
// Either errorLogger or dispatcher (or both) may be nil.
func NewComponentLogger(component string, errorLogger *ErrorLogger, dispatcher *Dispatcher) *ComponentLogger {
	return &ComponentLogger{
		component:   component,
		errorLogger: errorLogger,
		dispatcher:  dispatcher,
	}
}

// ComponentLogger creates a scoped logger for the given component.
// The receiver may be nil, in which case only the errorLogger is used.
func (d *Dispatcher) ComponentLogger(component string, errorLogger *ErrorLogger) *ComponentLogger {
	return &ComponentLogger{
		component:   component,
		errorLogger: errorLogger,
		dispatcher:  d,
	}
}

// Debugf logs a debug message.
func (l *ComponentLogger) Debugf(format string, args ...any) {
	if l == nil {
		return
	}
	l.dispatch(LevelDebug, fmt.Sprintf(format, args...), nil)
}

// Infof logs an informational message.
func (l *ComponentLogger) Infof(format string, args ...any) {
	if l == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.writeLocal(LevelInfo, msg)
	l.dispatch(LevelInfo, msg, nil)
}

// Warnf logs a warning message.
func (l *ComponentLogger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.writeLocal(LevelWarn, msg)
	l.dispatch(LevelWarn, msg, nil)
}

// Errorf logs an error message.
func (l *ComponentLogger) Errorf(format string, args ...any) {
	if l == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.writeLocal(LevelError, msg)
	l.dispatch(LevelError, msg, nil)
}

// Event logs a state-changing action together with its details, for
// audit trails on the remote receivers.
func (l *ComponentLogger) Event(action string, details map[string]any) {
	if l == nil {
		return
	}
	fields := map[string]any{"action": action}
	for k, v := range details {
		fields[k] = v
	}
	l.writeLocal(LevelInfo, action)
	l.dispatch(LevelInfo, action, fields)
}

// writeLocal writes to the local ErrorLogger file.
func (l *ComponentLogger) writeLocal(level Level, msg string) {
	if l.errorLogger == nil {
		return
	}
	switch level {
	case LevelError:
		l.errorLogger.LogErrorf(l.component, "%s", msg)
	case LevelWarn:
		l.errorLogger.LogErrorf(l.component, "WARN %s", msg)
	default:
		l.errorLogger.LogInfof(l.component, "%s", msg)
	}
}

// dispatch sends the entry to the backends via the Dispatcher. Every
// entry carries a unique id so receivers can deduplicate replays.
func (l *ComponentLogger) dispatch(level Level, msg string, extra map[string]any) {
	if l.dispatcher == nil {
		return
	}
	fields := map[string]any{
		"component": l.component,
		"event_id":  uuid.NewString(),
	}
	for k, v := range extra {
		fields[k] = v
	}
	_ = l.dispatcher.Write(&Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Fields:    fields,
	})
}
