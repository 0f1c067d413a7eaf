// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/apex/log"
)

// record carries the substitution fields a formatter can render.
type record struct {
	Time    time.Time
	Level   log.Level
	Name    string
	Func    string
	Thread  int64
	Message string
}

// fieldRe matches one named substitution field, e.g. %(thread)6d.
var fieldRe = regexp.MustCompile(`%\((\w+)\)(-?\d*)([sd])`)

// formatter is a compiled FormatterSpec. The template is reduced to a
// fmt format string plus the ordered list of field names to pull from
// each record.
type formatter struct {
	layout string
	fields []string
	date   string
}

// compileFormatter translates spec into a formatter. Unknown field
// names are a configuration error.
func compileFormatter(spec FormatterSpec) (*formatter, error) {
	f := &formatter{date: strftimeToGo(spec.DateFormat)}

	var badField string
	layout := fieldRe.ReplaceAllStringFunc(escapePercents(spec.Format), func(m string) string {
		sub := fieldRe.FindStringSubmatch(m)
		name, width, verb := sub[1], sub[2], sub[3]
		switch name {
		case "asctime", "levelname", "name", "funcName", "message", "thread":
		default:
			badField = name
		}
		f.fields = append(f.fields, name)
		return "%" + width + verb
	})
	if badField != "" {
		return nil, fmt.Errorf("logging: unknown format field %q", badField)
	}
	if len(f.fields) == 0 {
		return nil, fmt.Errorf("logging: format %q has no substitution fields", spec.Format)
	}
	f.layout = layout
	return f, nil
}

// escapePercents doubles every % that does not start a named field so
// the remainder survives fmt verbatim.
func escapePercents(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' {
			if loc := fieldRe.FindStringIndex(s[i:]); loc != nil && loc[0] == 0 {
				end := i + loc[1]
				b.WriteString(s[i:end])
				i = end - 1
				continue
			}
			b.WriteString("%%")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// render produces the final log line, without a trailing newline.
func (f *formatter) render(r record) string {
	args := make([]interface{}, len(f.fields))
	for i, name := range f.fields {
		switch name {
		case "asctime":
			args[i] = r.Time.Format(f.date)
		case "levelname":
			args[i] = levelName(r.Level)
		case "name":
			args[i] = r.Name
		case "funcName":
			args[i] = r.Func
		case "message":
			args[i] = r.Message
		case "thread":
			args[i] = r.Thread
		}
	}
	return fmt.Sprintf(f.layout, args...)
}

// strftime directives that have a Go reference-time equivalent.
var strftimeMap = []struct{ from, to string }{
	{"%Y", "2006"},
	{"%y", "06"},
	{"%m", "01"},
	{"%d", "02"},
	{"%H", "15"},
	{"%I", "03"},
	{"%M", "04"},
	{"%S", "05"},
	{"%f", "000000"},
	{"%b", "Jan"},
	{"%B", "January"},
	{"%a", "Mon"},
	{"%A", "Monday"},
	{"%p", "PM"},
	{"%z", "-0700"},
	{"%Z", "MST"},
	{"%%", "%"},
}

// strftimeToGo converts a strftime layout to a Go time layout. An
// empty layout falls back to the conventional timestamp form.
func strftimeToGo(layout string) string {
	if layout == "" {
		return "2006-01-02 15:04:05"
	}
	for _, m := range strftimeMap {
		layout = strings.ReplaceAll(layout, m.from, m.to)
	}
	return layout
}
