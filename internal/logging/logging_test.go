// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig returns the default configuration rooted in a temp dir,
// with the rotation limits shrunk so tests stay cheap.
func testConfig(t *testing.T) (Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := Default(dir)
	for name, h := range cfg.Handlers {
		if h.Kind == KindRotatingFile {
			h.MaxBytes = 1024 * 1024
			h.BackupCount = 2
			cfg.Handlers[name] = h
		}
	}
	return cfg, dir
}

// parseFileLine splits a file-formatted line back into its parts.
func parseFileLine(t *testing.T, line string) (ts time.Time, level, name, msg string) {
	t.Helper()
	parts := strings.SplitN(line, " | ", 4)
	require.Len(t, parts, 4, "line %q", line)

	ts, err := time.ParseInLocation("2006-01-02 15:04:05", parts[0], time.UTC)
	require.NoError(t, err)

	_, err = strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	require.NoError(t, err, "thread field %q", parts[1])

	level = strings.TrimSpace(parts[2])

	rest := strings.SplitN(parts[3], ": ", 2)
	require.Len(t, rest, 2)
	return ts, level, rest[0], rest[1]
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestDebugRecordReachesDebugFileOnly(t *testing.T) {
	cfg, dir := testConfig(t)
	var stream bytes.Buffer

	l, err := Build(cfg, WithStream(&stream))
	require.NoError(t, err)
	defer l.Close()

	l.Debug("only for the debug file")

	lines := readLines(t, filepath.Join(dir, "debug.log"))
	require.Len(t, lines, 1)
	_, level, name, msg := parseFileLine(t, lines[0])
	assert.Equal(t, "DEBUG", level)
	assert.True(t, strings.HasPrefix(name, "root."), "name %q", name)
	assert.Equal(t, "only for the debug file", msg)

	assert.Empty(t, readLines(t, filepath.Join(dir, "console.log")))
	assert.Empty(t, readLines(t, filepath.Join(dir, "error.log")))
	assert.Zero(t, stream.Len())
}

func TestErrorRecordReachesAllHandlers(t *testing.T) {
	cfg, dir := testConfig(t)
	var stream bytes.Buffer

	l, err := Build(cfg, WithStream(&stream))
	require.NoError(t, err)
	defer l.Close()

	l.Error("it broke")

	for _, file := range []string{"debug.log", "console.log", "error.log"} {
		lines := readLines(t, filepath.Join(dir, file))
		require.Len(t, lines, 1, file)
		_, level, _, msg := parseFileLine(t, lines[0])
		assert.Equal(t, "ERROR", level)
		assert.Equal(t, "it broke", msg)
	}

	// The stream uses the terse formatter.
	out := strings.TrimRight(stream.String(), "\n")
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} \|   ERROR: it broke$`, out)
}

func TestInfoRecordSkipsErrorFile(t *testing.T) {
	cfg, dir := testConfig(t)
	var stream bytes.Buffer

	l, err := Build(cfg, WithStream(&stream))
	require.NoError(t, err)
	defer l.Close()

	l.Info("routine")

	assert.Len(t, readLines(t, filepath.Join(dir, "debug.log")), 1)
	assert.Len(t, readLines(t, filepath.Join(dir, "console.log")), 1)
	assert.Empty(t, readLines(t, filepath.Join(dir, "error.log")))
	assert.NotZero(t, stream.Len())
}

func TestNamedLoggerStampsRecords(t *testing.T) {
	cfg, dir := testConfig(t)

	l, err := Build(cfg, WithStream(&bytes.Buffer{}))
	require.NoError(t, err)
	defer l.Close()

	l.Named("store.s3").Debugf("object %s", "a/b.txt")

	lines := readLines(t, filepath.Join(dir, "debug.log"))
	require.Len(t, lines, 1)
	_, _, name, msg := parseFileLine(t, lines[0])
	assert.True(t, strings.HasPrefix(name, "store.s3."), "name %q", name)
	assert.Equal(t, "object a/b.txt", msg)
}

func TestBuildFailsOnUnwritableTarget(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks are moot")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	defer os.Chmod(dir, 0o755) //nolint:errcheck

	cfg := Default(filepath.Join(dir, "logs"))
	_, err := Build(cfg, WithStream(&bytes.Buffer{}))
	assert.Error(t, err)
}

func TestOpenDefaultWhenPathEmpty(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd) //nolint:errcheck

	l, err := Open("", WithStream(&bytes.Buffer{}))
	require.NoError(t, err)
	defer l.Close()

	l.Debug("hi")
	assert.FileExists(t, filepath.Join("logger", "debug.log"))
}

// TestRotationKeepsBoundedBackups drives enough bytes through the
// debug handler to force several rotations and verifies the backup
// count stays within the configured bound. Backup pruning runs in the
// background, hence the Eventually.
func TestRotationKeepsBoundedBackups(t *testing.T) {
	cfg, dir := testConfig(t)

	l, err := Build(cfg, WithStream(&bytes.Buffer{}))
	require.NoError(t, err)
	defer l.Close()

	chunk := strings.Repeat("x", 512*1024)
	for i := 0; i < 10; i++ {
		l.Debug(chunk)
	}

	backups := func() int {
		matches, globErr := filepath.Glob(filepath.Join(dir, "debug-*.log"))
		require.NoError(t, globErr)
		return len(matches)
	}
	require.Eventually(t, func() bool {
		n := backups()
		return n >= 1 && n <= 2
	}, 5*time.Second, 50*time.Millisecond, "backups=%d", backups())

	// The live file was rotated, so it must be under the byte cap
	// plus one record.
	info, err := os.Stat(filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(1024*1024+len(chunk)+1024))
}

// TestConcurrentEmitsDoNotInterleave hammers one logger from many
// goroutines and checks every line in the debug file is intact.
func TestConcurrentEmitsDoNotInterleave(t *testing.T) {
	cfg, dir := testConfig(t)

	l, err := Build(cfg, WithStream(&bytes.Buffer{}))
	require.NoError(t, err)
	defer l.Close()

	const workers, perWorker = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				l.Debugf("worker=%d msg=%d", w, i)
			}
		}(w)
	}
	wg.Wait()

	lines := readLines(t, filepath.Join(dir, "debug.log"))
	require.Len(t, lines, workers*perWorker)
	for _, line := range lines {
		_, level, _, msg := parseFileLine(t, line)
		assert.Equal(t, "DEBUG", level)
		assert.Regexp(t, `^worker=\d+ msg=\d+$`, msg)
	}
}

func TestLevelOrdering(t *testing.T) {
	tests := []struct {
		lower, higher string
	}{
		{"DEBUG", "INFO"},
		{"INFO", "WARNING"},
		{"WARN", "ERROR"},
		{"ERROR", "CRITICAL"},
	}
	for _, tt := range tests {
		lo, err := ParseLevel(tt.lower)
		require.NoError(t, err)
		hi, err := ParseLevel(tt.higher)
		require.NoError(t, err)
		assert.Less(t, int(lo), int(hi), "%s < %s", tt.lower, tt.higher)
	}
	_, err := ParseLevel("NOISY")
	assert.Error(t, err)
}

func TestGoroutineID(t *testing.T) {
	assert.Positive(t, goroutineID())

	done := make(chan int64, 1)
	go func() { done <- goroutineID() }()
	other := <-done
	assert.Positive(t, other)
	assert.NotEqual(t, goroutineID(), other)
}

func TestCallerFuncNameInLine(t *testing.T) {
	cfg, dir := testConfig(t)

	l, err := Build(cfg, WithStream(&bytes.Buffer{}))
	require.NoError(t, err)
	defer l.Close()

	emitFromHere(l)

	lines := readLines(t, filepath.Join(dir, "debug.log"))
	require.Len(t, lines, 1)
	_, _, name, _ := parseFileLine(t, lines[0])
	assert.Equal(t, "root.emitFromHere", name)
}

func emitFromHere(l *Logger) {
	l.Debug(fmt.Sprintf("from %s", "here"))
}
