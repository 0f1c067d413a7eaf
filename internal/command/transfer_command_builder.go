// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/s3ctl/s3ctl/internal/meta"
)

// TransferCommandBuilder constructs a cli.Command for the transfer
// subcommands (up, down, rm, stat, ls) using a consistent pattern. It
// accepts the command name, usage text, optional UsageText, custom
// flags, the action handler, and meta. The builder automatically wires
// metadata, adds the tldr flag, applies the store flags, and sets up
// validators.
type TransferCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	ArgsUsage string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (tcb *TransferCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      tcb.Name,
		Usage:     tcb.Usage,
		UsageText: tcb.UsageText,
		ArgsUsage: tcb.ArgsUsage,
		Metadata: map[string]any{
			"meta": tcb.Meta,
		},
		Flags: append(tcb.Flags, append([]cli.Flag{
			tldrFlag,
		}, NewStoreFlags(tcb.Meta.Config.Source)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: tcb.Action,
	}
}
