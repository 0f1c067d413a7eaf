// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// Parse reads a logging configuration document from path. The source
// may be a file path or raw []byte content, as supported by the ini
// loader.
func Parse(source interface{}) (Config, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		SpaceBeforeInlineComment: true,
	}, source)
	if err != nil {
		return Config{}, fmt.Errorf("logging: parse config: %w", err)
	}

	cfg := Config{
		Formatters: map[string]FormatterSpec{},
		Handlers:   map[string]HandlerSpec{},
		Loggers:    map[string]LoggerSpec{},
	}

	names, err := sectionKeys(f, "formatters")
	if err != nil {
		return Config{}, err
	}
	for _, name := range names {
		sec, err := f.GetSection("formatter_" + name)
		if err != nil {
			return Config{}, fmt.Errorf("logging: formatter %q declared but has no section", name)
		}
		// Value() is used rather than String() so the %(field)s
		// substitution markers are not expanded by the ini reader.
		cfg.Formatters[name] = FormatterSpec{
			Format:     rawValue(sec, "format"),
			DateFormat: rawValue(sec, "datefmt"),
		}
	}

	names, err = sectionKeys(f, "handlers")
	if err != nil {
		return Config{}, err
	}
	for _, name := range names {
		sec, err := f.GetSection("handler_" + name)
		if err != nil {
			return Config{}, fmt.Errorf("logging: handler %q declared but has no section", name)
		}
		spec, err := parseHandler(sec)
		if err != nil {
			return Config{}, fmt.Errorf("logging: handler %q: %w", name, err)
		}
		cfg.Handlers[name] = spec
	}

	names, err = sectionKeys(f, "loggers")
	if err != nil {
		return Config{}, err
	}
	for _, name := range names {
		sec, err := f.GetSection("logger_" + name)
		if err != nil {
			return Config{}, fmt.Errorf("logging: logger %q declared but has no section", name)
		}
		var refs []string
		for _, h := range strings.Split(sec.Key("handlers").String(), ",") {
			if h = strings.TrimSpace(h); h != "" {
				refs = append(refs, h)
			}
		}
		cfg.Loggers[name] = LoggerSpec{
			Level:    sec.Key("level").String(),
			Handlers: refs,
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// sectionKeys returns the comma-separated keys= list of a top-level
// index section ([loggers], [handlers], [formatters]).
func sectionKeys(f *ini.File, section string) ([]string, error) {
	sec, err := f.GetSection(section)
	if err != nil {
		return nil, fmt.Errorf("logging: missing [%s] section", section)
	}
	var keys []string
	for _, k := range strings.Split(sec.Key("keys").String(), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("logging: [%s] declares no keys", section)
	}
	return keys, nil
}

// rawValue returns the unexpanded value of a key, or "" if absent.
func rawValue(sec *ini.Section, key string) string {
	if !sec.HasKey(key) {
		return ""
	}
	return sec.Key(key).Value()
}

// parseHandler decodes a [handler_X] section. The class key selects
// the kind; the args tuple carries the kind-specific parameters in
// positional form.
func parseHandler(sec *ini.Section) (HandlerSpec, error) {
	spec := HandlerSpec{
		Level:     sec.Key("level").String(),
		Formatter: sec.Key("formatter").String(),
	}

	class := sec.Key("class").String()
	args, err := splitArgs(rawValue(sec, "args"))
	if err != nil {
		return HandlerSpec{}, err
	}

	switch {
	case strings.Contains(class, "RotatingFileHandler"), class == KindRotatingFile:
		spec.Kind = KindRotatingFile
		if len(args) > 0 {
			spec.Filename = args[0]
		}
		if len(args) > 1 {
			spec.Mode = args[1]
		}
		if len(args) > 2 {
			if spec.MaxBytes, err = evalInt(args[2]); err != nil {
				return HandlerSpec{}, fmt.Errorf("bad maxBytes %q: %w", args[2], err)
			}
		}
		if len(args) > 3 {
			n, err := evalInt(args[3])
			if err != nil {
				return HandlerSpec{}, fmt.Errorf("bad backupCount %q: %w", args[3], err)
			}
			spec.BackupCount = int(n)
		}
	case strings.Contains(class, "StreamHandler"), class == KindStream:
		spec.Kind = KindStream
		spec.Target = "stdout"
		if len(args) > 0 {
			switch args[0] {
			case "sys.stdout", "stdout":
				spec.Target = "stdout"
			case "sys.stderr", "stderr":
				spec.Target = "stderr"
			default:
				return HandlerSpec{}, fmt.Errorf("unknown stream target %q", args[0])
			}
		}
	default:
		return HandlerSpec{}, fmt.Errorf("unknown handler class %q", class)
	}

	return spec, nil
}

// splitArgs breaks an args=('path', 'a', 10*1024*1024, 5) tuple into
// its elements, honoring single and double quotes.
func splitArgs(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !strings.HasPrefix(raw, "(") || !strings.HasSuffix(raw, ")") {
		return nil, fmt.Errorf("args %q is not a tuple", raw)
	}
	raw = raw[1 : len(raw)-1]

	var (
		args    []string
		current strings.Builder
		quote   byte
	)
	flush := func() {
		s := strings.TrimSpace(current.String())
		current.Reset()
		if s == "" {
			return
		}
		if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
			s = s[1 : len(s)-1]
		}
		args = append(args, s)
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case quote != 0:
			current.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			current.WriteByte(c)
			quote = c
		case c == ',':
			flush()
		default:
			current.WriteByte(c)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote in args %q", raw)
	}
	flush()
	return args, nil
}

// evalInt evaluates a literal integer or a product of literals, e.g.
// "10*1024*1024".
func evalInt(s string) (int64, error) {
	product := int64(1)
	for _, part := range strings.Split(s, "*") {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return 0, err
		}
		product *= n
	}
	return product, nil
}
