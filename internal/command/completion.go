// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/dsctl/internal/meta"
)

const bashCompletionScript = `# bash completion for dsctl
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_dsctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "start tasks executions objects completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --filter -f --output -o --sort -s --titles -t --profile --region -r --endpoint"
    local source="--outputs --stack"

    case "$cmd" in
        start)
            local opts="$common $source --tasks --dry-run"
            ;;
        tasks)
            local opts="$common"
            ;;
        executions)
            local opts="$common $source --tasks --limit -l"
            ;;
        objects)
            local opts="$common $source --bucket -b --prefix -p"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --outputs)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _dsctl dsctl
`

const zshCompletionScript = `#compdef dsctl

_dsctl() {
  local -a cmds
  cmds=(
    'start:start an execution of every configured task'
    'tasks:list DataSync tasks'
    'executions:list recent task executions'
    'objects:list objects in the source bucket'
    'completion:generate shell completion script'
  )

  local -a common source
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--profile[AWS profile]:profile'
  '(-r --region)'{-r,--region}'[AWS region]:region'
  '--endpoint[AWS endpoint]:url'
  )
  source=(
  '--outputs[cdk outputs file]:file:_files'
  '--stack[stack in outputs file]:stack'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'dsctl commands' cmds
    return
  fi

  case $words[2] in
    start)
      _arguments -C $common $source '--tasks[task list document]:json' '--dry-run[list tasks only]'
      ;;
    tasks)
      _arguments -C $common
      ;;
    executions)
      _arguments -C $common $source '--tasks[task list document]:json' \
        '(-l --limit)'{-l,--limit}'[executions per task]:limit' '*:task arn'
      ;;
    objects)
      _arguments -C $common $source '(-b --bucket)'{-b,--bucket}'[bucket]:bucket' \
        '(-p --prefix)'{-p,--prefix}'[key prefix]:prefix'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _dsctl dsctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	w := cmd.Root().Writer
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		return fmt.Errorf("usage: dsctl completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "dsctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
