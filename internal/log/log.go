// Package log provides the small structured-logging interface the rest of
// scryptenc depends on, backed by logrus. Callers depend on Logger, not on
// logrus directly, so the backend can be swapped without touching call
// sites.
//
// The default logger is silent except for warnings and errors; "-v" on
// enc/dec raises the level to Info so the chosen (or validated) N/r/p
// parameters are printed as they're produced.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Field is a key-value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field { return Field{Key: key, Value: value} }
func Int(key string, value int) Field { return Field{Key: key, Value: value} }
func Uint32(key string, value uint32) Field { return Field{Key: key, Value: value} }
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Logger is the structured logging surface used throughout scryptenc.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
}

type logrusLogger struct {
	entry *logrus.Entry
}

// New creates a Logger writing to stderr with logrus's text formatter,
// without timestamps: scryptenc is a short-lived CLI invocation, not a
// daemon, so a timestamp column adds noise rather than value.
func New() Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetLevel(logrus.WarnLevel)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return &logrusLogger{entry: logrus.NewEntry(base)}
}

// SetVerbose raises l's level to Info when v is true (the "-v" flag),
// restoring the default Warn level otherwise.
func SetVerbose(l Logger, v bool) {
	ll, ok := l.(*logrusLogger)
	if !ok {
		return
	}
	if v {
		ll.entry.Logger.SetLevel(logrus.InfoLevel)
	} else {
		ll.entry.Logger.SetLevel(logrus.WarnLevel)
	}
}

func withFields(e *logrus.Entry, fields []Field) *logrus.Entry {
	if len(fields) == 0 {
		return e
	}
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return e.WithFields(data)
}

func (l *logrusLogger) Debug(msg string, fields ...Field) { withFields(l.entry, fields).Debug(msg) }
func (l *logrusLogger) Info(msg string, fields ...Field)  { withFields(l.entry, fields).Info(msg) }
func (l *logrusLogger) Warn(msg string, fields ...Field)  { withFields(l.entry, fields).Warn(msg) }
func (l *logrusLogger) Error(msg string, fields ...Field) { withFields(l.entry, fields).Error(msg) }

func (l *logrusLogger) WithFields(fields ...Field) Logger {
	return &logrusLogger{entry: withFields(l.entry, fields)}
}

// Nop returns a Logger that discards everything, for tests that don't care
// about log output.
func Nop() Logger {
	base := logrus.New()
	base.SetOutput(nopWriter{})
	return &logrusLogger{entry: logrus.NewEntry(base)}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
