// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/s3ctl/s3ctl/internal/crypt"
	"github.com/s3ctl/s3ctl/internal/meta"
	"github.com/s3ctl/s3ctl/internal/progress"
	"github.com/s3ctl/s3ctl/internal/store"
)

// upCommandAction is the action handler for the "up" subcommand. It
// uploads each named local file to the store, optionally sealing the
// payload first.
func upCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "up") {
		return nil
	}

	files, err := FileArgs(cmd)
	if err != nil {
		return err
	}

	st, err := NewStore(ctx, cmd)
	if err != nil {
		return err
	}

	lg := CommandLogger(cmd)
	remoteDir := cmd.String("dir")

	// Sealed payloads are staged in a scratch directory so the
	// original file is never touched.
	var passphrase, stage string
	if cmd.Bool("encrypt") {
		if passphrase, err = ResolvePassphrase(cmd); err != nil {
			return err
		}
		if stage, err = os.MkdirTemp("", "s3ctl-seal-"); err != nil {
			return err
		}
		defer os.RemoveAll(stage)
	}

	tracker := progress.New(os.Stdout, "uploaded", len(files))
	defer tracker.Finish()

	for _, file := range files {
		localDir, name := filepath.Split(file)
		if localDir == "" {
			localDir = "."
		}

		src := localDir
		if cmd.Bool("encrypt") {
			if src, err = sealToStage(file, stage, passphrase); err != nil {
				return err
			}
		}

		if err := st.Upload(ctx, src, remoteDir, name); err != nil {
			lg.Errorf("upload failed: file=%s err=%v", file, err)
			return fmt.Errorf("failed to upload %s: %w", file, err)
		}

		lg.Infof("uploaded %s to s3://%s/%s", file, st.Bucket(), store.Key(remoteDir, name))
		tracker.Step(name)
	}

	return nil
}

// sealToStage seals file into the stage directory under the same base
// name and returns the staged directory to upload from.
func sealToStage(file, stage, passphrase string) (string, error) {
	plaintext, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}

	sealed, err := crypt.Seal(plaintext, passphrase)
	if err != nil {
		return "", fmt.Errorf("failed to seal %s: %w", file, err)
	}

	staged := filepath.Join(stage, filepath.Base(file))
	if err := os.WriteFile(staged, sealed, 0600); err != nil {
		return "", err
	}

	return stage, nil
}

// upCommandBuilder constructs the cli.Command for "up", wiring metadata,
// flags, and action handlers.
func upCommandBuilder(meta meta.Meta) *cli.Command {
	return (&TransferCommandBuilder{
		Name:      "up",
		Usage:     "upload files to the bucket",
		UsageText: "s3ctl up FILE... [options]",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "remote directory to upload into",
			},
			&cli.BoolFlag{
				Name:        "encrypt",
				Aliases:     []string{"e"},
				Usage:       "seal payloads before uploading",
				HideDefault: true,
			},
			NewPassphraseFlag(),
		},
		Action: upCommandAction,
		Meta:   meta,
	}).Build()
}
