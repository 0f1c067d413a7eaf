// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/s3ctl/s3ctl/internal/meta"
)

const bashCompletionScript = `# bash completion for s3ctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_s3ctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "up down rm stat ls completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--basedir --bucket -b --endpoint --profile --region --store --tldr"

    case "$cmd" in
    up)
      local opts="$common --dir -d --encrypt -e --passphrase -p"
            ;;
        down)
      local opts="$common --dir -d --decrypt --passphrase -p"
            ;;
        rm)
      local opts="$common"
            ;;
        stat)
      local opts="$common --output -o --query -q"
            ;;
        ls)
      local opts="$common --output -o --query -q --stats -s"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
        return 0
    fi

  # If current token starts with '-', offer flags
  if [[ "$cur" == -* ]]; then
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
  fi

  # Otherwise, we're on a FILE/KEY positional - complete filenames
  COMPREPLY=( $(compgen -o default -- "$cur") )
  return 0
}

complete -F _s3ctl s3ctl
`

const zshCompletionScript = `#compdef s3ctl

_s3ctl() {
  local -a cmds
  cmds=(
    'up:upload files to the bucket'
    'down:download objects from the bucket'
    'rm:delete objects from the bucket'
    'stat:report object metadata'
    'ls:list objects in the bucket'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '--basedir[base directory for the local store]:dir:_directories'
  '(-b --bucket)'{-b,--bucket}'[bucket holding the objects]:bucket'
  '--endpoint[custom S3 endpoint URL]:url'
  '--profile[AWS shared config profile]:profile'
  '--region[AWS region for the bucket]:region'
  '--store[store implementation]:kind:(s3 local)'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 's3ctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    up)
      _arguments -C \
        $common \
        '(-d --dir)'{-d,--dir}'[remote directory to upload into]:dir' \
        '(-e --encrypt)'{-e,--encrypt}'[seal payloads before uploading]' \
        '(-p --passphrase)'{-p,--passphrase}'[passphrase for sealed payloads]' \
        '*:file:_files'
      ;;
    down)
      _arguments -C \
        $common \
        '(-d --dir)'{-d,--dir}'[local directory to download into]:dir:_directories' \
        '--decrypt[open sealed payloads after downloading]' \
        '(-p --passphrase)'{-p,--passphrase}'[passphrase for sealed payloads]' \
        '*:key'
      ;;
    rm)
      _arguments -C \
        $common \
        '*:key'
      ;;
    stat)
      _arguments -C \
        $common \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)' \
        '(-q --query)'{-q,--query}'[gjson path applied to the JSON result]:path' \
        '*:key'
      ;;
    ls)
      _arguments -C \
        $common \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)' \
        '(-q --query)'{-q,--query}'[gjson path applied to the JSON result]:path' \
        '(-s --stats)'{-s,--stats}'[include size statistics]' \
        '::prefix'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _s3ctl s3ctl s3ctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: s3ctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "s3ctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
