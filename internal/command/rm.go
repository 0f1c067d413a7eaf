// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"path"

	"github.com/urfave/cli/v3"

	"github.com/s3ctl/s3ctl/internal/meta"
	"github.com/s3ctl/s3ctl/internal/store"
)

// rmCommandAction is the action handler for the "rm" subcommand. It
// deletes each named object from the store.
func rmCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "rm") {
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

	for _, key := range keys {
		remoteDir, name := path.Split(store.Key(key))

		if err := st.Delete(ctx, remoteDir, name); err != nil {
			lg.Errorf("delete failed: key=%s err=%v", key, err)
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}

		lg.Infof("deleted s3://%s/%s", st.Bucket(), store.Key(remoteDir, name))
		fmt.Printf("deleted s3://%s/%s\n", st.Bucket(), store.Key(remoteDir, name))
	}

	return nil
}

// rmCommandBuilder constructs the cli.Command for "rm", wiring
// metadata, flags, and action handlers.
func rmCommandBuilder(meta meta.Meta) *cli.Command {
	return (&TransferCommandBuilder{
		Name:      "rm",
		Usage:     "delete objects from the bucket",
		UsageText: "s3ctl rm KEY... [options]",
		ArgsUsage: "KEY...",
		Action:    rmCommandAction,
		Meta:      meta,
	}).Build()
}
