// Package logger wraps logrus behind the small severity surface the rest of
// the repo logs through.
package logger

import (
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	base  *logrus.Logger
	entry *logrus.Entry
}

type Option func(*Logger)

func WithDebug(debug bool) Option {
	return func(l *Logger) {
		if debug {
			l.base.SetLevel(logrus.DebugLevel)
		}
	}
}

func WithLogName(name string) Option {
	return func(l *Logger) {
		l.entry = l.entry.WithField("log_name", name)
	}
}

func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.base.SetOutput(w)
	}
}

func New(opts ...Option) *Logger {
	base := logrus.New()
	base.SetFormatter(&logrus.JSONFormatter{})
	l := &Logger{base: base, entry: logrus.NewEntry(base)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithRequest returns a shallow copy of logger with request fields present
func (l *Logger) WithRequest(r *http.Request) *Logger {
	if r == nil || l == nil {
		panic("nil request")
	}
	l2 := new(Logger)
	*l2 = *l
	l2.entry = l.entry.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"remote": r.RemoteAddr,
	})
	return l2
}

func (l *Logger) Info(message interface{})  { l.entry.Info(message) }
func (l *Logger) Debug(message interface{}) { l.entry.Debug(message) }
func (l *Logger) Error(message interface{}) { l.entry.Error(message) }
func (l *Logger) Critical(message interface{}) {
	l.entry.WithField("severity", "critical").Error(message)
}

func (l *Logger) Infof(format string, a ...interface{})  { l.entry.Infof(format, a...) }
func (l *Logger) Debugf(format string, a ...interface{}) { l.entry.Debugf(format, a...) }
func (l *Logger) Errorf(format string, a ...interface{}) { l.entry.Errorf(format, a...) }
func (l *Logger) Criticalf(format string, a ...interface{}) {
	l.entry.WithField("severity", "critical").Errorf(format, a...)
}

// Close exists for symmetry with server shutdown; logrus buffers nothing.
func (l *Logger) Close() {}

func Printf(format string, a ...interface{}) { logrus.Infof(format, a...) }
func Println(a ...interface{})               { logrus.Infoln(a...) }
func Fatalf(format string, a ...interface{}) { logrus.Fatalf(format, a...) }
