// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kraklabs/qatoolbox/internal/output"
	qaerrors "github.com/kraklabs/qatoolbox/pkg/errors"
	"github.com/kraklabs/qatoolbox/pkg/markers"
)

// BannerRecord is the structured output of 'qatoolbox banner'.
type BannerRecord struct {
	// Tag keys must equal markers.MetadataKey.
	Metadata markers.Metadata `json:"_qatoolbox_metadata" yaml:"_qatoolbox_metadata"`
	Function string           `json:"function" yaml:"function"`
	Module   string           `json:"module" yaml:"module"`
}

// bannerOptions are the parsed flags of the banner command.
type bannerOptions struct {
	description, priority, component *string
	function, module                 string
	format                           output.Format
}

// runBanner executes the 'banner' command, rendering the block a test
// decorated with the given metadata prints before it runs.
//
// An optional flag that is not given is absent from the record; a flag
// given with an empty value is present and empty.
func runBanner(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("banner", flag.ExitOnError)
	fs.String("description", "", "Human-readable description of the test case")
	fs.String("priority", "", "Priority level, e.g. critical, high, P0")
	fs.String("component", "", "Component under test")
	fs.String("function", "", "Test function name shown in the block")
	fs.String("module", "", "Package import path shown in the block")
	fs.String("format", "text", "Output format: text, json or yaml")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: qatoolbox banner <testcase-id> [options]

Description:
  Validate a test case ID exactly as markers.Requirement does and print
  the metadata block a decorated test prints before each run. With
  --format json or yaml the metadata record is printed instead.

Arguments:
  testcase-id   Test case identifier (must be non-empty after trimming)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  qatoolbox banner TC001
  qatoolbox banner AUTH-001 --priority critical --component authentication
  qatoolbox banner TC210 --priority "" --format json
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(qaerrors.ExitUsage)
	}
	if fs.NArg() != 1 {
		qaerrors.FatalError(usageError(
			"Invalid arguments",
			"The banner command requires exactly one argument: the test case ID",
			"Run 'qatoolbox banner TC001'",
		), globals.JSON)
	}

	opts, err := parseBannerFlags(fs)
	if err != nil {
		qaerrors.FatalError(usageError("Invalid option", err.Error(), "Run 'qatoolbox banner --help'"), globals.JSON)
	}
	if globals.JSON && !fs.Changed("format") {
		opts.format = output.FormatJSON
	}

	if err := renderBanner(os.Stdout, fs.Arg(0), opts, globals.Logger()); err != nil {
		qaerrors.FatalError(err, globals.JSON)
	}
}

func parseBannerFlags(fs *flag.FlagSet) (bannerOptions, error) {
	var opts bannerOptions
	optional := func(name string) *string {
		if !fs.Changed(name) {
			return nil
		}
		v, _ := fs.GetString(name)
		return &v
	}
	opts.description = optional("description")
	opts.priority = optional("priority")
	opts.component = optional("component")
	opts.function, _ = fs.GetString("function")
	opts.module, _ = fs.GetString("module")

	format, _ := fs.GetString("format")
	f, err := output.ParseFormat(format)
	if err != nil {
		return opts, err
	}
	opts.format = f
	return opts, nil
}

// renderBanner declares the test case through markers.Requirement and
// writes its block or record to w.
func renderBanner(w io.Writer, testcaseID string, opts bannerOptions, logger *zap.Logger) error {
	markerOpts := []markers.Option{markers.WithLogger(logger)}
	if opts.description != nil {
		markerOpts = append(markerOpts, markers.WithDescription(*opts.description))
	}
	if opts.priority != nil {
		markerOpts = append(markerOpts, markers.WithPriority(*opts.priority))
	}
	if opts.component != nil {
		markerOpts = append(markerOpts, markers.WithComponent(*opts.component))
	}

	d, err := markers.Requirement(testcaseID, markerOpts...)
	if err != nil {
		return err
	}

	record := BannerRecord{Metadata: d.Metadata(), Function: opts.function, Module: opts.module}
	switch opts.format {
	case output.FormatJSON:
		return output.JSONTo(w, record)
	case output.FormatYAML:
		return output.YAMLTo(w, record)
	default:
		_, err := io.WriteString(w, record.Metadata.Banner(record.Function, record.Module))
		return err
	}
}
