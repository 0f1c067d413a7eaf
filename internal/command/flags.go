// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/s3ctl/s3ctl/internal/config"
)

var tldrFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:        "tldr",
	Usage:       "show tldr page",
	Hidden:      !pathHas("tldr"),
	HideDefault: true,
}

// NewOutputFlags returns the flags shared by the commands that render
// results (ls, stat).
func NewOutputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "query",
			Aliases: []string{"q"},
			Usage:   "gjson path applied to the JSON result",
		},
	}
}

// NewStoreFlags returns the flags every transfer command needs to reach
// a store. Values resolve flag, then S3CTL_* environment, then the
// store.<kind> namespace of the config file, then the bare key.
func NewStoreFlags(cfgFile string) []cli.Flag {
	ns := "store." + config.StoreKind()

	bucket := &cli.StringFlag{
		Name:    "bucket",
		Aliases: []string{"b"},
		Usage:   "bucket holding the objects",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("S3CTL_BUCKET"),
		),
	}

	// An empty region defers to the AWS shared config chain.
	region := &cli.StringFlag{
		Name:  "region",
		Usage: "AWS region for the bucket",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("S3CTL_REGION"),
			cli.EnvVar("AWS_REGION"),
		),
	}

	profile := &cli.StringFlag{
		Name:  "profile",
		Usage: "AWS shared config profile",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("S3CTL_PROFILE"),
			cli.EnvVar("AWS_PROFILE"),
		),
	}

	endpoint := &cli.StringFlag{
		Name:  "endpoint",
		Usage: "custom S3 endpoint URL (minio, localstack)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("S3CTL_ENDPOINT"),
		),
	}

	accessKey := &cli.StringFlag{
		Name:  "access-key",
		Usage: "static AWS access key id (pairs with --secret-key)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("S3CTL_ACCESS_KEY"),
		),
	}

	secretKey := &cli.StringFlag{
		Name:  "secret-key",
		Usage: "static AWS secret access key",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("S3CTL_SECRET_KEY"),
		),
	}

	basedir := &cli.StringFlag{
		Name:  "basedir",
		Usage: "base directory for the local store",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("S3CTL_BASEDIR"),
		),
	}

	if cfgFile != "" {
		bucket = NameSpacedValueChainFlagFromConfigFile(ns, cfgFile, bucket)
		region = NameSpacedValueChainFlagFromConfigFile(ns, cfgFile, region)
		profile = NameSpacedValueChainFlagFromConfigFile(ns, cfgFile, profile)
		endpoint = NameSpacedValueChainFlagFromConfigFile(ns, cfgFile, endpoint)
		basedir = NameSpacedValueChainFlagFromConfigFile(ns, cfgFile, basedir)
	}

	return []cli.Flag{
		&cli.StringFlag{
			Name:  "store",
			Usage: "store implementation (s3 or local)",
			Value: config.StoreKind(),
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("S3CTL_STORE"),
			),
			Validator: func(value string) error {
				return FlagValidators(value, StoreValidator)
			},
		},
		bucket,
		region,
		profile,
		endpoint,
		accessKey,
		secretKey,
		basedir,
	}
}

// NewPassphraseFlag constructs the flag for commands that seal or open
// object payloads. An empty value falls back to S3CTL_PASSPHRASE and
// finally an interactive prompt.
func NewPassphraseFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "passphrase",
		Aliases: []string{"p"},
		Usage:   "passphrase for sealed payloads",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("S3CTL_PASSPHRASE"),
		),
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas checks if the given executable exists on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
