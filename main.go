// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/s3ctl/s3ctl/internal/command"
	"github.com/s3ctl/s3ctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// deduplicateFlags collapses repeated flags so the last occurrence wins.
// Both --flag value and --flag=value spellings are recognized; positional
// arguments are preserved in place.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type occurrence struct {
		name  string
		parts []string
	}

	head := args[:2]
	var ordered []occurrence
	last := map[string]int{}

	for i := 2; i < len(args); i++ {
		a := args[i]

		var occ occurrence
		switch {
		case strings.HasPrefix(a, "-") && strings.Contains(a, "="):
			occ = occurrence{name: canonicalFlagName(a[:strings.Index(a, "=")]), parts: []string{a}}
		case strings.HasPrefix(a, "-"):
			occ = occurrence{name: canonicalFlagName(a), parts: []string{a}}
			// Consume a following value token, but never for boolean
			// flags: the token after --encrypt is a positional, not a
			// value.
			if !isBooleanFlag(occ.name) && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				occ.parts = append(occ.parts, args[i+1])
				i++
			}
		default:
			// Positional. Never deduplicated.
			ordered = append(ordered, occurrence{parts: []string{a}})
			continue
		}

		if prev, ok := last[occ.name]; ok {
			ordered[prev].parts = nil
		}
		last[occ.name] = len(ordered)
		ordered = append(ordered, occ)
	}

	result := append([]string{}, head...)
	for _, occ := range ordered {
		result = append(result, occ.parts...)
	}
	return result
}

// canonicalFlagName maps the short spellings of the built-in flags onto
// their long names so -o and --output deduplicate together.
func canonicalFlagName(flag string) string {
	short := map[string]string{
		"-o": "--output",
		"-q": "--query",
		"-b": "--bucket",
		"-d": "--dir",
		"-e": "--encrypt",
		"-p": "--passphrase",
		"-s": "--stats",
		"-v": "--version",
		"-h": "--help",
	}
	if long, ok := short[flag]; ok {
		return long
	}
	return flag
}

// isBooleanFlag reports whether the (canonical) flag takes no value.
func isBooleanFlag(name string) bool {
	switch name {
	case "--encrypt", "--decrypt", "--stats", "--tldr", "--version", "--help":
		return true
	}
	return false
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, lg, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() {
		_ = lg.Close()
	}()

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		lg.Errorf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	args := os.Args

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip argument processing and let the CLI
	// handle it.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return initAndRunApp(args)
		}
	}

	args = deduplicateFlags(args)

	return initAndRunApp(args)
}
