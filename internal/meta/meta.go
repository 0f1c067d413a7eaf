// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/s3ctl/s3ctl/internal/config"
	"github.com/s3ctl/s3ctl/internal/logging"
)

// Meta contains runtime metadata shared by commands. It carries CLI
// arguments, loaded configuration, context, the process logger, and
// the starting working directory.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	Logger      *logging.Logger
	StartingDir string
}
