// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package ui provides human-readable output helpers for the qatoolbox CLI.
//
// Colours respect the --no-color flag and the NO_COLOR environment
// variable, and are disabled when stdout is not a terminal.
//
// Colour usage:
//   - Green: checks that passed (valid record, CI detected)
//   - Yellow: warnings (not running in CI)
//   - Red: invalid records
//   - Bold: labels
//   - Dim: secondary details such as variable values
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	bold   = color.New(color.Bold)
	dim    = color.New(color.Faint)
)

// InitColors configures global colour output. Call it once in main after
// flags are parsed.
func InitColors(noColor bool) {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	color.NoColor = noColor || os.Getenv("NO_COLOR") != "" || !tty
}

// Pass writes a green check line to w.
//
// Example output: "✓ AUTH-001"
func Pass(w io.Writer, format string, args ...any) {
	_, _ = green.Fprintf(w, "✓ "+format+"\n", args...)
}

// Warn writes a yellow warning line to w.
func Warn(w io.Writer, format string, args ...any) {
	_, _ = yellow.Fprintf(w, "⚠ "+format+"\n", args...)
}

// Fail writes a red failure line to w.
func Fail(w io.Writer, format string, args ...any) {
	_, _ = red.Fprintf(w, "✗ "+format+"\n", args...)
}

// Field writes "label value" with a bold label.
//
// Example: ui.Field(os.Stdout, "Detected by:", "GITHUB_ACTIONS")
func Field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", bold.Sprint(label), value)
}

// DimText returns a dim-formatted string for less important text.
func DimText(text string) string {
	return dim.Sprint(text)
}
