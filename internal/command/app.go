// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/s3ctl/s3ctl/internal/config"
	"github.com/s3ctl/s3ctl/internal/logging"
	"github.com/s3ctl/s3ctl/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, *logging.Logger, error) {

	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the s3ctl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// allow short if-style local cfg; no actual outer cfg
	cfg2, _ := config.Load() //nolint
	cfg2.Namespace = ns

	lg, err := logging.Open(resolveLogConf(args))
	if err != nil {
		return nil, nil, err
	}

	meta := meta.Meta{
		Args:        args,
		Config:      cfg2,
		Context:     ctx,
		Logger:      lg,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "s3ctl",
		Usage: "S3 object control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "s3ctl version info",
				HideDefault: true,
			},
			&cli.StringFlag{
				Name:  "log-conf",
				Usage: "logging configuration file",
			},
		},
	}

	app.Commands = append(app.Commands,
		upCommandBuilder(meta),
		downCommandBuilder(meta),
		rmCommandBuilder(meta),
		statCommandBuilder(meta),
		lsCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, lg, nil
}

// resolveLogConf picks the logging configuration file before flag
// parsing happens, so the logger exists for the whole run. Precedence
// is --log-conf, then S3CTL_LOG_CONF, then the config file. An empty
// result selects the built-in default tree under ./logger.
func resolveLogConf(args []string) string {
	for i, a := range args {
		if a == "--log-conf" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(a, "--log-conf=") {
			return strings.TrimPrefix(a, "--log-conf=")
		}
	}
	if path := os.Getenv("S3CTL_LOG_CONF"); path != "" {
		return path
	}
	return config.LogConf()
}
