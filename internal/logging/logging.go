// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/apex/log"
	"github.com/apex/log/handlers/multi"
	"github.com/natefinch/lumberjack"
)

// options holds optional overrides for Build.
type options struct {
	stream io.Writer
}

// Option customizes how the logger tree is materialized.
type Option func(*options)

// WithStream redirects every stream-kind handler to w instead of the
// configured process stream. Used by hosts that capture console output
// and by tests.
func WithStream(w io.Writer) Option {
	return func(o *options) { o.stream = w }
}

// Logger is an owned handle on a materialized logger tree. The zero
// value is not usable; construct one with Open or Build.
type Logger struct {
	root    *log.Logger
	name    string
	closers []io.Closer
}

// Nop returns a logger with no sinks attached. Useful as a default
// when a caller does not care about diagnostics.
func Nop() *Logger {
	return &Logger{
		root: &log.Logger{Handler: multi.New(), Level: log.FatalLevel},
		name: RootLogger,
	}
}

// Open parses the configuration file at path and builds the tree. An
// empty path builds the Default configuration rooted at dir "logger".
func Open(path string, opts ...Option) (*Logger, error) {
	if path == "" {
		return Build(Default("logger"), opts...)
	}
	cfg, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return Build(cfg, opts...)
}

// Build materializes cfg: one named root logger at its configured
// level, with every attached handler filtering independently by its
// own level. Rotating file targets are probed for writability up
// front; an unwritable target fails the whole build.
func Build(cfg Config, opts ...Option) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	spec := cfg.Loggers[RootLogger]
	rootLevel, _ := ParseLevel(spec.Level)

	l := &Logger{name: RootLogger}
	var handlers []log.Handler
	for _, href := range spec.Handlers {
		h := cfg.Handlers[href]
		f, err := compileFormatter(cfg.Formatters[h.Formatter])
		if err != nil {
			l.Close()
			return nil, err
		}
		level, _ := ParseLevel(h.Level)

		var w io.Writer
		switch h.Kind {
		case KindRotatingFile:
			w, err = l.openRotating(h)
			if err != nil {
				l.Close()
				return nil, err
			}
		case KindStream:
			w = o.stream
			if w == nil {
				if h.Target == "stderr" {
					w = os.Stderr
				} else {
					w = os.Stdout
				}
			}
		}
		handlers = append(handlers, &sink{level: level, formatter: f, w: w})
	}

	l.root = &log.Logger{
		Handler: multi.New(handlers...),
		Level:   rootLevel,
	}
	return l, nil
}

// openRotating prepares a size-capped rotating file writer. The parent
// directory is created and the target is probe-opened in append mode so
// a permission problem fails the build instead of the first emit.
func (l *Logger) openRotating(h HandlerSpec) (io.Writer, error) {
	if dir := filepath.Dir(h.Filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("logging: create log directory: %w", err)
		}
	}
	probe, err := os.OpenFile(h.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	if err := probe.Close(); err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}

	// lumberjack counts megabytes; round the byte limit up so a
	// configured cap is never exceeded by more than the remainder.
	maxMB := int(h.MaxBytes / (1024 * 1024))
	if h.MaxBytes%(1024*1024) != 0 {
		maxMB++
	}
	if maxMB < 1 {
		maxMB = 1
	}
	w := &lumberjack.Logger{
		Filename:   h.Filename,
		MaxSize:    maxMB,
		MaxBackups: h.BackupCount,
		LocalTime:  true,
	}
	l.closers = append(l.closers, w)
	return w, nil
}

// Close releases every file handle owned by the tree. The handle must
// not be used afterwards.
func (l *Logger) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.closers = nil
	return first
}

// Named returns a child logger that stamps records with name. The
// child shares the root's handlers, level, and file handles.
func (l *Logger) Named(name string) *Logger {
	return &Logger{root: l.root, name: name}
}

// Name returns the logger's name.
func (l *Logger) Name() string { return l.name }

// Debug logs a message at DEBUG.
func (l *Logger) Debug(msg string) { l.emit(log.DebugLevel, msg) }

// Debugf logs a formatted message at DEBUG.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.emit(log.DebugLevel, fmt.Sprintf(format, args...))
}

// Info logs a message at INFO.
func (l *Logger) Info(msg string) { l.emit(log.InfoLevel, msg) }

// Infof logs a formatted message at INFO.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.emit(log.InfoLevel, fmt.Sprintf(format, args...))
}

// Warn logs a message at WARNING.
func (l *Logger) Warn(msg string) { l.emit(log.WarnLevel, msg) }

// Warnf logs a formatted message at WARNING.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.emit(log.WarnLevel, fmt.Sprintf(format, args...))
}

// Error logs a message at ERROR.
func (l *Logger) Error(msg string) { l.emit(log.ErrorLevel, msg) }

// Errorf logs a formatted message at ERROR.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.emit(log.ErrorLevel, fmt.Sprintf(format, args...))
}

// emit enriches the record with the caller's function name and
// goroutine id, then hands it to apex. Apex applies the logger-level
// gate; each sink applies its own.
func (l *Logger) emit(lv log.Level, msg string) {
	e := l.root.WithFields(log.Fields{
		"logger": l.name,
		"func":   callerFunc(),
		"thread": goroutineID(),
	})
	switch lv {
	case log.DebugLevel:
		e.Debug(msg)
	case log.InfoLevel:
		e.Info(msg)
	case log.WarnLevel:
		e.Warn(msg)
	case log.ErrorLevel:
		e.Error(msg)
	}
}

// callerFunc resolves the bare function name of the frame that called
// into the Logger API (skipping callerFunc, emit, and the level
// method).
func callerFunc() string {
	pc, _, _, ok := runtime.Caller(3)
	if !ok {
		return "?"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "?"
	}
	name := fn.Name()
	if i := lastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := lastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func lastIndexByte(s string, b byte) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// goroutineID recovers the current goroutine's id from the stack
// header. There is no runtime API for this; the header format
// ("goroutine N [...") has been stable since Go 1.
func goroutineID() int64 {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseInt(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
