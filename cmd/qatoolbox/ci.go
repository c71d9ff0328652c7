// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/qatoolbox/internal/output"
	"github.com/kraklabs/qatoolbox/internal/ui"
	"github.com/kraklabs/qatoolbox/pkg/env"
	qaerrors "github.com/kraklabs/qatoolbox/pkg/errors"
)

// CIVariable is the state of one CI marker variable.
type CIVariable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Set   bool   `json:"set"`
}

// CIResult is the output of 'qatoolbox ci'.
type CIResult struct {
	RunningInCI bool         `json:"running_in_ci"`
	DetectedBy  string       `json:"detected_by,omitempty"`
	Variables   []CIVariable `json:"variables"`
}

// runCI executes the 'ci' command.
//
// Flags:
//   - --require: exit with ExitFailedTest when not running in CI
func runCI(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("ci", flag.ExitOnError)
	require := fs.Bool("require", false, "Exit non-zero when not running in CI")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: qatoolbox ci [options]

Description:
  Report whether this process runs inside a CI runner. A runner is
  detected when any of CI, GITHUB_ACTIONS or GITLAB_CI holds a non-empty
  value.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  qatoolbox ci
  qatoolbox --json ci
  qatoolbox ci --require && make integration
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(qaerrors.ExitUsage)
	}

	result := ciReport()
	if globals.JSON {
		if err := output.JSON(result); err != nil {
			qaerrors.FatalError(err, true)
		}
	} else {
		printCIReport(os.Stdout, result)
	}

	if *require && !result.RunningInCI {
		os.Exit(qaerrors.ExitFailedTest)
	}
}

func ciReport() CIResult {
	result := CIResult{}
	result.DetectedBy, result.RunningInCI = env.DetectCI()
	for _, name := range env.CIVariables() {
		value := os.Getenv(name)
		result.Variables = append(result.Variables, CIVariable{Name: name, Value: value, Set: value != ""})
	}
	return result
}

func printCIReport(w io.Writer, r CIResult) {
	if r.RunningInCI {
		ui.Pass(w, "Running in CI")
		ui.Field(w, "Detected by:", r.DetectedBy)
	} else {
		ui.Warn(w, "Not running in CI")
	}
	for _, v := range r.Variables {
		value := "(unset)"
		if v.Set {
			value = v.Value
		}
		ui.Field(w, fmt.Sprintf("  %s:", v.Name), ui.DimText(value))
	}
}
