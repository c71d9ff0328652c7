// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/kraklabs/qatoolbox/internal/output"
	"github.com/kraklabs/qatoolbox/internal/ui"
	qaerrors "github.com/kraklabs/qatoolbox/pkg/errors"
	"github.com/kraklabs/qatoolbox/pkg/markers"
)

// ValidationResult is the outcome for one metadata record.
type ValidationResult struct {
	Index      int    `json:"index"`
	Line       int    `json:"line"`
	TestcaseID string `json:"testcase_id,omitempty"`
	Valid      bool   `json:"valid"`
	Error      string `json:"error,omitempty"`
}

// ValidationReport is the output of 'qatoolbox validate'.
type ValidationReport struct {
	Records []ValidationResult `json:"records"`
	Invalid int                `json:"invalid"`
}

// runValidate executes the 'validate' command.
//
// Records are read from stdin as a YAML stream. Each document holds one
// record (a mapping) or a list of records.
func runValidate(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: qatoolbox validate < records.yaml

Description:
  Validate metadata records read from stdin. A record is valid when its
  testcase_id is a string that is non-empty after trimming whitespace.
  description, priority and component are optional.

Input:
  ---
  testcase_id: AUTH-001
  priority: critical
  component: authentication
  ---
  - testcase_id: PAY-001
  - testcase_id: PAY-002
    priority: high

Exit codes:
  0  all records are valid
  4  at least one record is invalid
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(qaerrors.ExitUsage)
	}

	report, err := validateRecords(os.Stdin)
	if err != nil {
		qaerrors.FatalError(usageError("Cannot read records", err.Error(), "Check that stdin holds well-formed YAML"), globals.JSON)
	}

	if globals.JSON {
		if err := output.JSON(report); err != nil {
			qaerrors.FatalError(err, true)
		}
	} else {
		printValidationReport(os.Stdout, report)
	}

	if report.Invalid > 0 {
		os.Exit(qaerrors.ExitInvalidTest)
	}
}

// validateRecords decodes every record in r. A malformed record is
// reported in the result; only a YAML syntax error aborts the stream.
func validateRecords(r io.Reader) (ValidationReport, error) {
	var report ValidationReport
	dec := yaml.NewDecoder(r)
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, err
		}
		if len(doc.Content) == 0 {
			continue
		}

		root := doc.Content[0]
		if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
			continue
		}
		records := []*yaml.Node{root}
		if root.Kind == yaml.SequenceNode {
			records = root.Content
		}
		for _, n := range records {
			report.Records = append(report.Records, validateRecord(len(report.Records), n))
		}
	}

	for _, res := range report.Records {
		if !res.Valid {
			report.Invalid++
		}
	}
	return report, nil
}

func validateRecord(index int, n *yaml.Node) ValidationResult {
	res := ValidationResult{Index: index, Line: n.Line}
	if n.Kind != yaml.MappingNode {
		res.Error = "record must be a mapping with a testcase_id"
		return res
	}

	var meta markers.Metadata
	if err := n.Decode(&meta); err != nil {
		res.Error = err.Error()
		return res
	}
	res.TestcaseID = meta.TestcaseID
	res.Valid = true
	return res
}

func printValidationReport(w io.Writer, report ValidationReport) {
	for _, res := range report.Records {
		if res.Valid {
			ui.Pass(w, "%s", res.TestcaseID)
			continue
		}
		ui.Fail(w, "record %d (line %d): %s", res.Index+1, res.Line, res.Error)
	}
	fmt.Fprintf(w, "%d records, %d invalid\n", len(report.Records), report.Invalid)
}
