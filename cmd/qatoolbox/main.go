// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package main implements the qatoolbox CLI.
//
// Usage:
//
//	qatoolbox ci [--require]                Report whether this process runs in CI
//	qatoolbox banner <testcase-id> [flags]  Render the metadata block of a test case
//	qatoolbox validate < records.yaml       Validate metadata records read from stdin
//	qatoolbox completion <shell>            Generate shell completion script
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kraklabs/qatoolbox/internal/ui"
	qaerrors "github.com/kraklabs/qatoolbox/pkg/errors"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags holds flags shared by every command.
type GlobalFlags struct {
	JSON    bool
	NoColor bool
	Verbose bool
}

// Logger builds the logger handed to the markers package.
func (g GlobalFlags) Logger() *zap.Logger {
	if !g.Verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	fs := flag.NewFlagSet("qatoolbox", flag.ExitOnError)
	fs.SetInterspersed(false)

	var globals GlobalFlags
	showVersion := fs.Bool("version", false, "Show version and exit")
	fs.BoolVar(&globals.JSON, "json", false, "Write machine-readable JSON")
	fs.BoolVar(&globals.NoColor, "no-color", false, "Disable coloured output")
	fs.BoolVarP(&globals.Verbose, "verbose", "v", false, "Log debug events to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `qatoolbox - test case traceability helpers

qatoolbox links automated tests to the test case IDs of a test-management
system. Test code declares IDs with the markers package; this CLI previews
the metadata block a decorated test prints, validates metadata records and
reports whether the current process runs in CI.

Usage:
  qatoolbox [global options] <command> [options]

Commands:
  ci          Report whether this process runs in CI
  banner      Render the metadata block of a test case
  validate    Validate metadata records read from stdin (YAML)
  completion  Generate shell completion script (bash|zsh|fish)

Global Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  qatoolbox ci --require
  qatoolbox banner AUTH-001 --priority critical --component authentication
  qatoolbox banner TC001 --format yaml
  qatoolbox validate < testcases.yaml

Environment Variables:
  CI, GITHUB_ACTIONS, GITLAB_CI   Any non-empty value marks a CI runner
  NO_COLOR                        Disable coloured output

For detailed command help: qatoolbox <command> --help
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(qaerrors.ExitUsage)
	}

	if *showVersion {
		fmt.Printf("qatoolbox version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(qaerrors.ExitSuccess)
	}

	ui.InitColors(globals.NoColor)

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		os.Exit(qaerrors.ExitUsage)
	}

	command, cmdArgs := args[0], args[1:]
	switch command {
	case "ci":
		runCI(cmdArgs, globals)
	case "banner":
		runBanner(cmdArgs, globals)
	case "validate":
		runValidate(cmdArgs, globals)
	case "completion":
		runCompletion(cmdArgs, globals)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		fs.Usage()
		os.Exit(qaerrors.ExitUsage)
	}
}

// usageError reports bad command-line usage.
func usageError(msg, cause, fix string) *qaerrors.ToolboxError {
	return &qaerrors.ToolboxError{
		Kind:     qaerrors.KindToolbox,
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: qaerrors.ExitUsage,
	}
}
