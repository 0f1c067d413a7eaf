// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/s3ctl/s3ctl/internal/crypt"
	"github.com/s3ctl/s3ctl/internal/meta"
	"github.com/s3ctl/s3ctl/internal/progress"
	"github.com/s3ctl/s3ctl/internal/store"
)

// downCommandAction is the action handler for the "down" subcommand. It
// downloads each named object into the destination directory,
// optionally opening sealed payloads.
func downCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "down") {
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
	localDir := cmd.String("dir")
	if localDir == "" {
		localDir = "."
	}

	// Sealed payloads land in a scratch directory first so a bad
	// passphrase never clobbers the destination file.
	var passphrase, stage string
	if cmd.Bool("decrypt") {
		if passphrase, err = ResolvePassphrase(cmd); err != nil {
			return err
		}
		if stage, err = os.MkdirTemp("", "s3ctl-open-"); err != nil {
			return err
		}
		defer os.RemoveAll(stage)
	}

	tracker := progress.New(os.Stdout, "downloaded", len(keys))
	defer tracker.Finish()

	for _, key := range keys {
		remoteDir, name := path.Split(store.Key(key))

		dst := localDir
		if cmd.Bool("decrypt") {
			dst = stage
		}

		if err := st.Download(ctx, remoteDir, dst, name); err != nil {
			lg.Errorf("download failed: key=%s err=%v", key, err)
			return fmt.Errorf("failed to download %s: %w", key, err)
		}

		if cmd.Bool("decrypt") {
			if err := openFromStage(stage, localDir, name, passphrase); err != nil {
				return err
			}
		}

		lg.Infof("downloaded s3://%s/%s to %s", st.Bucket(), store.Key(remoteDir, name), filepath.Join(localDir, name))
		tracker.Step(name)
	}

	return nil
}

// openFromStage opens the sealed staged file and writes the plaintext
// into the destination directory under the same base name.
func openFromStage(stage, localDir, name, passphrase string) error {
	sealed, err := os.ReadFile(filepath.Join(stage, name))
	if err != nil {
		return err
	}

	plaintext, err := crypt.Open(sealed, passphrase)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}

	return os.WriteFile(filepath.Join(localDir, name), plaintext, 0600)
}

// downCommandBuilder constructs the cli.Command for "down", wiring
// metadata, flags, and action handlers.
func downCommandBuilder(meta meta.Meta) *cli.Command {
	return (&TransferCommandBuilder{
		Name:      "down",
		Usage:     "download objects from the bucket",
		UsageText: "s3ctl down KEY... [options]",
		ArgsUsage: "KEY...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "local directory to download into",
			},
			&cli.BoolFlag{
				Name:        "decrypt",
				Usage:       "open sealed payloads after downloading",
				HideDefault: true,
			},
			NewPassphraseFlag(),
		},
		Action: downCommandAction,
		Meta:   meta,
	}).Build()
}
