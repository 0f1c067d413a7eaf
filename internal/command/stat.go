// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/urfave/cli/v3"

	"github.com/s3ctl/s3ctl/internal/meta"
	"github.com/s3ctl/s3ctl/internal/output"
	"github.com/s3ctl/s3ctl/internal/store"
)

// statCommandAction is the action handler for the "stat" subcommand. It
// reports size, etag, and modification time for each named object.
func statCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "stat") {
		return nil
	}

	keys, err := FileArgs(cmd)
	if err != nil {
		return err
	}

	st, err := NewStore(ctx, cmd)
	if err != nil {
		return err
	}

	lg := CommandLogger(cmd)

	objects := make([]store.Object, 0, len(keys))
	for _, key := range keys {
		remoteDir, name := path.Split(store.Key(key))

		o, err := st.Stat(ctx, remoteDir, name)
		if err != nil {
			lg.Errorf("stat failed: key=%s err=%v", key, err)
			return fmt.Errorf("failed to stat %s: %w", key, err)
		}
		objects = append(objects, o)
	}

	listing := output.Listing{
		Bucket:  st.Bucket(),
		Objects: objects,
	}

	return output.Spit(os.Stdout, listing, cmd.String("output"), cmd.String("query"))
}

// statCommandBuilder constructs the cli.Command for "stat", wiring
// metadata, flags, and action handlers.
func statCommandBuilder(meta meta.Meta) *cli.Command {
	return (&TransferCommandBuilder{
		Name:      "stat",
		Usage:     "report object metadata",
		UsageText: "s3ctl stat KEY... [options]",
		ArgsUsage: "KEY...",
		Flags:     NewOutputFlags(),
		Action:    statCommandAction,
		Meta:      meta,
	}).Build()
}
