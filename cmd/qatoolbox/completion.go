// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	qaerrors "github.com/kraklabs/qatoolbox/pkg/errors"
)

const bashCompletionTemplate = `#!/bin/bash

# Bash completion script for qatoolbox
# Installation:
#   source <(qatoolbox completion bash)

_qatoolbox_completion() {
    local cur prev commands
    commands="ci banner validate completion"

    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    if [[ ${cur} == -* ]] ; then
        case "${COMP_WORDS[1]}" in
            ci)
                COMPREPLY=( $(compgen -W "--require --help" -- ${cur}) )
                ;;
            banner)
                COMPREPLY=( $(compgen -W "--description --priority --component --function --module --format --help" -- ${cur}) )
                ;;
            *)
                COMPREPLY=( $(compgen -W "--version --json --no-color --verbose" -- ${cur}) )
                ;;
        esac
        return 0
    fi

    if [ $COMP_CWORD -eq 1 ]; then
        COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
        return 0
    fi

    case "${prev}" in
        --format)
            COMPREPLY=( $(compgen -W "text json yaml" -- ${cur}) )
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh fish" -- ${cur}) )
            ;;
    esac
}

complete -F _qatoolbox_completion qatoolbox
`

const zshCompletionTemplate = `#compdef qatoolbox
# Zsh completion script for qatoolbox
# Installation:
#   qatoolbox completion zsh > "${fpath[1]}/_qatoolbox"

_qatoolbox() {
    local -a commands
    commands=(
        'ci:Report whether this process runs in CI'
        'banner:Render the metadata block of a test case'
        'validate:Validate metadata records read from stdin'
        'completion:Generate shell completion script'
    )

    _arguments -C \
        '--version[Show version and exit]' \
        '--json[Write machine-readable JSON]' \
        '--no-color[Disable coloured output]' \
        '(-v --verbose)'{-v,--verbose}'[Log debug events to stderr]' \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                ci)
                    _arguments '--require[Exit non-zero when not running in CI]'
                    ;;
                banner)
                    _arguments \
                        '--description[Human-readable description]:description:' \
                        '--priority[Priority level]:priority:' \
                        '--component[Component under test]:component:' \
                        '--function[Test function name]:function:' \
                        '--module[Package import path]:module:' \
                        '--format[Output format]:format:(text json yaml)' \
                        '1:testcase-id:'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_qatoolbox "$@"
`

const fishCompletionTemplate = `# Fish completion script for qatoolbox
# Installation:
#   qatoolbox completion fish > ~/.config/fish/completions/qatoolbox.fish

complete -c qatoolbox -f
complete -c qatoolbox -n __fish_use_subcommand -a ci -d 'Report whether this process runs in CI'
complete -c qatoolbox -n __fish_use_subcommand -a banner -d 'Render the metadata block of a test case'
complete -c qatoolbox -n __fish_use_subcommand -a validate -d 'Validate metadata records read from stdin'
complete -c qatoolbox -n __fish_use_subcommand -a completion -d 'Generate shell completion script'
complete -c qatoolbox -n __fish_use_subcommand -l version -d 'Show version and exit'
complete -c qatoolbox -n __fish_use_subcommand -l json -d 'Write machine-readable JSON'
complete -c qatoolbox -n __fish_use_subcommand -l no-color -d 'Disable coloured output'
complete -c qatoolbox -n __fish_use_subcommand -s v -l verbose -d 'Log debug events to stderr'
complete -c qatoolbox -n '__fish_seen_subcommand_from ci' -l require -d 'Exit non-zero when not running in CI'
complete -c qatoolbox -n '__fish_seen_subcommand_from banner' -l description -r -d 'Human-readable description'
complete -c qatoolbox -n '__fish_seen_subcommand_from banner' -l priority -r -d 'Priority level'
complete -c qatoolbox -n '__fish_seen_subcommand_from banner' -l component -r -d 'Component under test'
complete -c qatoolbox -n '__fish_seen_subcommand_from banner' -l function -r -d 'Test function name'
complete -c qatoolbox -n '__fish_seen_subcommand_from banner' -l module -r -d 'Package import path'
complete -c qatoolbox -n '__fish_seen_subcommand_from banner' -l format -r -a 'text json yaml' -d 'Output format'
complete -c qatoolbox -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'
`

// completionScript returns the completion script for shell.
func completionScript(shell string) (string, bool) {
	switch shell {
	case "bash":
		return bashCompletionTemplate, true
	case "zsh":
		return zshCompletionTemplate, true
	case "fish":
		return fishCompletionTemplate, true
	}
	return "", false
}

// runCompletion executes the 'completion' command.
func runCompletion(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("completion", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: qatoolbox completion <shell>

Description:
  Generate shell completion scripts for bash, zsh, or fish.

Examples:
  source <(qatoolbox completion bash)
  qatoolbox completion zsh > "${fpath[1]}/_qatoolbox"
  qatoolbox completion fish > ~/.config/fish/completions/qatoolbox.fish
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(qaerrors.ExitUsage)
	}

	if fs.NArg() != 1 {
		qaerrors.FatalError(usageError(
			"Invalid arguments",
			"The completion command requires exactly one argument: the shell name",
			"Run 'qatoolbox completion bash', 'qatoolbox completion zsh', or 'qatoolbox completion fish'",
		), globals.JSON)
	}

	script, ok := completionScript(fs.Arg(0))
	if !ok {
		qaerrors.FatalError(usageError(
			"Unsupported shell",
			fmt.Sprintf("Shell '%s' is not supported. Valid options: bash, zsh, fish", fs.Arg(0)),
			"Run 'qatoolbox completion bash', 'qatoolbox completion zsh', or 'qatoolbox completion fish'",
		), globals.JSON)
	}
	fmt.Print(script)
}
