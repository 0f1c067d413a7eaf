// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v3"

	"github.com/s3ctl/s3ctl/internal/aws"
	"github.com/s3ctl/s3ctl/internal/crypt"
	"github.com/s3ctl/s3ctl/internal/logging"
	"github.com/s3ctl/s3ctl/internal/meta"
	"github.com/s3ctl/s3ctl/internal/store"
	"github.com/s3ctl/s3ctl/internal/store/local"
	"github.com/s3ctl/s3ctl/internal/store/s3"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// CommandLogger returns the process logger scoped to the command name,
// or a no-op logger when none was initialized.
func CommandLogger(cmd *cli.Command) *logging.Logger {
	m := GetMeta(cmd)
	if m.Logger == nil {
		return logging.Nop()
	}
	return m.Logger.Named(cmd.Name)
}

// NewStore builds the store selected by the --store flag. The s3 kind
// assembles an AWS config from the profile/region/endpoint flags with
// the standard shared-config credential chain behind them; the local
// kind needs --basedir.
func NewStore(ctx context.Context, cmd *cli.Command) (store.Store, error) {
	lg := CommandLogger(cmd)

	bucket := cmd.String("bucket")
	if bucket == "" {
		return nil, fmt.Errorf("no bucket configured: set --bucket, S3CTL_BUCKET, or store.%s.bucket in the config file", cmd.String("store"))
	}

	switch kind := cmd.String("store"); kind {
	case "local":
		basedir := cmd.String("basedir")
		if basedir == "" {
			return nil, fmt.Errorf("local store requires --basedir or S3CTL_BASEDIR")
		}
		return local.NewStore(basedir, bucket, lg)

	case "s3":
		opts := []aws.Option{aws.WithLogger(lg)}
		if profile := cmd.String("profile"); profile != "" {
			opts = append(opts, aws.WithProfile(profile))
		}
		if region := cmd.String("region"); region != "" {
			opts = append(opts, aws.WithRegion(region))
		}
		if accessKey := cmd.String("access-key"); accessKey != "" {
			opts = append(opts, aws.WithStaticCredentials(accessKey, cmd.String("secret-key")))
		}
		cfg, err := aws.LoadAWSConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		var s3opts []func(*s3v2.Options)
		if endpoint := cmd.String("endpoint"); endpoint != "" {
			s3opts = append(s3opts, aws.WithS3Endpoint(endpoint))
		}
		return s3.NewStore(aws.NewS3(cfg, s3opts...), bucket, lg), nil

	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}

// ResolvePassphrase returns the passphrase for seal/open operations.
// The --passphrase flag (and its S3CTL_PASSPHRASE source) wins; with
// neither set the user is prompted.
func ResolvePassphrase(cmd *cli.Command) (string, error) {
	if p := cmd.String("passphrase"); p != "" {
		return p, nil
	}
	return crypt.GetPassphrase()
}

// FileArgs returns the positional arguments of the command, erroring
// when none were given.
func FileArgs(cmd *cli.Command) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return nil, fmt.Errorf("%s requires at least one file argument", cmd.Name)
	}
	return args, nil
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr s3ctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "s3ctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}
