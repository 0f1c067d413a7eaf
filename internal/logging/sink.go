// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/apex/log"
)

// sink is one configured handler: a level gate, a formatter, and an
// exclusively owned writer. It implements log.Handler.
//
// The mutex serializes the format-then-write sequence so concurrent
// emitters cannot interleave lines or trigger a double rotation in the
// underlying rotating writer.
type sink struct {
	mu        sync.Mutex
	level     log.Level
	formatter *formatter
	w         io.Writer

	reportOnce sync.Once
}

// HandleLog writes the entry if it clears the sink's threshold. Write
// failures are reported to stderr once and otherwise swallowed; they
// must never surface into application control flow.
func (s *sink) HandleLog(e *log.Entry) error {
	if e.Level < s.level {
		return nil
	}
	line := s.formatter.render(record{
		Time:    e.Timestamp,
		Level:   e.Level,
		Name:    fieldString(e, "logger"),
		Func:    fieldString(e, "func"),
		Thread:  fieldInt(e, "thread"),
		Message: e.Message,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, line+"\n"); err != nil {
		s.reportOnce.Do(func() {
			fmt.Fprintf(os.Stderr, "logging: write failed: %v\n", err)
		})
	}
	return nil
}

func fieldString(e *log.Entry, name string) string {
	if v, ok := e.Fields.Get(name).(string); ok {
		return v
	}
	return ""
}

func fieldInt(e *log.Entry, name string) int64 {
	if v, ok := e.Fields.Get(name).(int64); ok {
		return v
	}
	return 0
}
