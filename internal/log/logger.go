package log

import (
	"context"
	"io"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"wiper/internal/errors"
)

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus entry so fields can be chained.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

type options struct {
	out  io.Writer
	json bool
	file string
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends log lines to w.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to JSON formatted lines.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile appends log lines to the file at path. The terminal belongs to
// the UI while it runs, so this is the normal sink for the interactive mode.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// NewLogger creates a logger; output defaults to stderr.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)

	var file *os.File
	out := o.out
	if o.file != "" {
		f, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			file = f
			out = f
		}
	}
	base.SetOutput(out)

	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{logrus.FieldKeyMsg: "message"},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:    true,
			FullTimestamp:    true,
			QuoteEmptyFields: true,
		})
	}

	return &Logger{entry: logrus.NewEntry(base), file: file}
}

// Configure replaces the package logger.
func Configure(opts ...Option) {
	Close()
	logger = NewLogger(opts...)
}

// Close releases the log file of the package logger, if any.
func Close() {
	if logger != nil && logger.file != nil {
		_ = logger.file.Close()
		logger.file = nil
	}
}

// SetDebug toggles debug output for every logger.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithContext is kept for call sites that carry a context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{entry: l.entry.WithContext(ctx), file: l.file}
}

// Info logs at info level.
func (l *Logger) Info(args ...interface{}) {
	l.entry.Info(args...)
}

// Infof logs a formatted message at info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *Logger) Warn(args ...interface{}) {
	l.entry.Warn(args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *Logger) Error(args ...interface{}) {
	l.entry.Error(args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// Debug logs only when debug output is enabled.
func (l *Logger) Debug(args ...interface{}) {
	if isDebug.Load() {
		l.entry.Debug(args...)
	}
}

// Debugf logs a formatted message only when debug output is enabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		l.entry.Debugf(format, args...)
	}
}

// Info logs a formatted message
func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debug logs a message when debug output is enabled
func Debug(args ...interface{}) {
	logger.Debug(args...)
}

// Warn logs a warning
func Warn(args ...interface{}) {
	logger.Warn(args...)
}

// Error logs an error message
func Error(args ...interface{}) {
	logger.Error(args...)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError attaches the error and whatever typed details it carries.
func LogWithError(err error) *Logger {
	if err == nil {
		return logger.With(F("error", "<nil>"))
	}

	fields := []Field{F("error", err.Error()), F("error_kind", int(errors.KindOf(err)))}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	return logger.With(fields...)
}

// LogError logs err at error level with a message.
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}
