// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"strings"

	"github.com/apex/log"
)

// Handler kinds understood by Build.
const (
	KindRotatingFile = "rotating-file"
	KindStream       = "stream"
)

// RootLogger is the one logger name every configuration must declare.
const RootLogger = "root"

// FormatterSpec declares how a record is rendered to text. Format is a
// template with named substitution fields (asctime, thread, levelname,
// name, funcName, message); DateFormat is a strftime-style layout for
// the asctime field.
type FormatterSpec struct {
	Format     string
	DateFormat string
}

// HandlerSpec declares a single sink.
//
// Kind-specific parameters: rotating-file uses Filename, Mode, MaxBytes
// and BackupCount; stream uses Target ("stdout" or "stderr").
type HandlerSpec struct {
	Kind        string
	Level       string
	Formatter   string
	Filename    string
	Mode        string
	MaxBytes    int64
	BackupCount int
	Target      string
}

// LoggerSpec declares a logger threshold and its attached handlers, in
// order.
type LoggerSpec struct {
	Level    string
	Handlers []string
}

// Config is the parsed configuration document.
type Config struct {
	Formatters map[string]FormatterSpec
	Handlers   map[string]HandlerSpec
	Loggers    map[string]LoggerSpec
}

// Default returns the stock configuration: a root logger at DEBUG
// fanning out to three rotating files under dir (debug.log at DEBUG,
// console.log at INFO, error.log at ERROR; 10 MiB per file, 5 backups)
// plus an INFO stream on stdout. Files use the verbose formatter with
// thread id and function name; the stream uses the terse one.
func Default(dir string) Config {
	file := func(name, level string) HandlerSpec {
		return HandlerSpec{
			Kind:        KindRotatingFile,
			Level:       level,
			Formatter:   "fileFormatter",
			Filename:    dir + "/" + name,
			Mode:        "a",
			MaxBytes:    10 * 1024 * 1024,
			BackupCount: 5,
		}
	}
	return Config{
		Formatters: map[string]FormatterSpec{
			"fileFormatter": {
				Format:     "%(asctime)s | %(thread)6d | %(levelname)8s | %(name)s.%(funcName)s: %(message)s",
				DateFormat: "%Y-%m-%d %H:%M:%S",
			},
			"streamFormatter": {
				Format:     "%(asctime)s | %(levelname)7s: %(message)s",
				DateFormat: "%Y-%m-%d %H:%M:%S",
			},
		},
		Handlers: map[string]HandlerSpec{
			"debugFileHandler":   file("debug.log", "DEBUG"),
			"consoleFileHandler": file("console.log", "INFO"),
			"errorFileHandler":   file("error.log", "ERROR"),
			"streamHandler": {
				Kind:      KindStream,
				Level:     "INFO",
				Formatter: "streamFormatter",
				Target:    "stdout",
			},
		},
		Loggers: map[string]LoggerSpec{
			RootLogger: {
				Level: "DEBUG",
				Handlers: []string{
					"debugFileHandler",
					"consoleFileHandler",
					"errorFileHandler",
					"streamHandler",
				},
			},
		},
	}
}

// Validate checks referential integrity: the root logger exists, every
// attached handler is declared, every handler references a declared
// formatter, levels parse, and kind-specific parameters are present.
func (c Config) Validate() error {
	root, ok := c.Loggers[RootLogger]
	if !ok {
		return fmt.Errorf("logging: no %q logger declared", RootLogger)
	}
	if _, err := ParseLevel(root.Level); err != nil {
		return err
	}
	if len(root.Handlers) == 0 {
		return fmt.Errorf("logging: logger %q has no handlers", RootLogger)
	}
	for _, lg := range c.Loggers {
		for _, href := range lg.Handlers {
			h, ok := c.Handlers[href]
			if !ok {
				return fmt.Errorf("logging: handler %q is not declared", href)
			}
			if _, ok := c.Formatters[h.Formatter]; !ok {
				return fmt.Errorf("logging: handler %q references unknown formatter %q", href, h.Formatter)
			}
			if _, err := ParseLevel(h.Level); err != nil {
				return err
			}
			switch h.Kind {
			case KindRotatingFile:
				if h.Filename == "" {
					return fmt.Errorf("logging: handler %q has no filename", href)
				}
				if h.MaxBytes < 0 || h.BackupCount < 0 {
					return fmt.Errorf("logging: handler %q has negative rotation limits", href)
				}
			case KindStream:
				switch h.Target {
				case "", "stdout", "stderr":
				default:
					return fmt.Errorf("logging: handler %q has unknown stream target %q", href, h.Target)
				}
			default:
				return fmt.Errorf("logging: handler %q has unknown kind %q", href, h.Kind)
			}
		}
	}
	return nil
}

// ParseLevel maps a configured level name onto an apex level. The
// WARNING/CRITICAL aliases are accepted for compatibility with
// configurations written against other logging stacks.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return log.DebugLevel, nil
	case "INFO":
		return log.InfoLevel, nil
	case "WARN", "WARNING":
		return log.WarnLevel, nil
	case "ERROR":
		return log.ErrorLevel, nil
	case "CRITICAL", "FATAL":
		return log.FatalLevel, nil
	}
	return log.InvalidLevel, fmt.Errorf("logging: unknown level %q", s)
}

// levelName renders an apex level with the conventional upper-case
// names used in the log files.
func levelName(lv log.Level) string {
	switch lv {
	case log.DebugLevel:
		return "DEBUG"
	case log.InfoLevel:
		return "INFO"
	case log.WarnLevel:
		return "WARNING"
	case log.ErrorLevel:
		return "ERROR"
	case log.FatalLevel:
		return "CRITICAL"
	}
	return strings.ToUpper(lv.String())
}
