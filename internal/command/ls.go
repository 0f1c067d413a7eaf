// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/s3ctl/s3ctl/internal/meta"
	"github.com/s3ctl/s3ctl/internal/output"
	"github.com/s3ctl/s3ctl/internal/store"
)

// lsCommandAction is the action handler for the "ls" subcommand. It
// lists objects under the optional prefix argument.
func lsCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "ls") {
		return nil
	}

	var prefix string
	if args := cmd.Args().Slice(); len(args) > 0 {
		prefix = store.Key(args[0])
	}

	st, err := NewStore(ctx, cmd)
	if err != nil {
		return err
	}

	lg := CommandLogger(cmd)

	objects, err := st.List(ctx, prefix)
	if err != nil {
		lg.Errorf("list failed: prefix=%s err=%v", prefix, err)
		return fmt.Errorf("failed to list %s: %w", prefix, err)
	}
	lg.Debugf("rendering %d objects from %s", len(objects), st.Bucket())

	listing := output.Listing{
		Bucket:  st.Bucket(),
		Objects: objects,
	}
	if cmd.Bool("stats") {
		listing.Stats = output.Summarize(objects)
	}

	return output.Spit(os.Stdout, listing, cmd.String("output"), cmd.String("query"))
}

// lsCommandBuilder constructs the cli.Command for "ls", wiring
// metadata, flags, and action handlers.
func lsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&TransferCommandBuilder{
		Name:      "ls",
		Usage:     "list objects in the bucket",
		UsageText: "s3ctl ls [PREFIX] [options]",
		ArgsUsage: "[PREFIX]",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "stats",
				Aliases:     []string{"s"},
				Usage:       "include size statistics",
				HideDefault: true,
			},
		}, NewOutputFlags()...),
		Action: lsCommandAction,
		Meta:   meta,
	}).Build()
}
