// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package logging loads a declarative logger/handler/formatter
// configuration and materializes a logger tree on top of apex/log.
//
// The configuration document is the classic three-section INI layout:
//
//	[loggers]            keys=root
//	[handlers]           keys=debugFileHandler,...
//	[formatters]         keys=fileFormatter,...
//	[logger_root]        level=DEBUG, handlers=...
//	[handler_X]          class=..., level=..., formatter=..., args=(...)
//	[formatter_Y]        format=..., datefmt=...
//
// Two handler kinds exist: rotating files (size-capped, bounded backup
// count, rotation provided by lumberjack) and a plain stream on stdout.
// A record is written by a handler only when it passes both the logger
// threshold and the handler's own threshold.
//
// Construction is explicit: Open (or Build) returns an owned *Logger
// handle; nothing is installed globally.
package logging
