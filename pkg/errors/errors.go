// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors defines the qatoolbox error taxonomy.
//
// Every error raised by the toolbox is a *ToolboxError. Its Kind places it
// under one of two concrete kinds:
//
//   - KindInvalidTest: the test was improperly configured (for example an
//     empty test case ID passed to markers.Requirement).
//   - KindFailedTest: the test failed due to an unexpected error. Nothing in
//     the toolbox raises it today; composing frameworks may use it to
//     classify a target function's own failure.
//
// Callers match kinds with the standard library:
//
//	d, err := markers.Requirement(id)
//	if errors.Is(err, qaerrors.ErrInvalidTest) {
//	    // misconfigured metadata, caught at declaration time
//	}
//
// Any toolbox error also matches ErrToolbox, and errors.As can extract the
// *ToolboxError for its Message, Cause and Fix.
//
// # Formatted Output
//
// Format renders the error for a terminal:
//
//	Error: Test case ID must be a non-empty string
//	Cause: got "   " (empty after trimming whitespace)
//	Fix:   Pass an identifier such as "TC001"
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/kraklabs/qatoolbox/internal/output"
)

// Exit codes used by the qatoolbox CLI.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailedTest indicates a test failed with an unexpected error.
	ExitFailedTest = 1

	// ExitUsage indicates bad command-line usage.
	ExitUsage = 2

	// ExitInvalidTest indicates invalid test configuration or input.
	ExitInvalidTest = 4

	// ExitInternal indicates internal errors (bugs, unexpected panics).
	ExitInternal = 10
)

// Kind identifies the concrete error kind beneath ToolboxError.
type Kind int

const (
	// KindToolbox is the base kind. It is only used by the ErrToolbox sentinel.
	KindToolbox Kind = iota
	// KindInvalidTest marks a test that was improperly configured.
	KindInvalidTest
	// KindFailedTest marks a test that failed due to an unexpected error.
	KindFailedTest
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidTest:
		return "InvalidTestError"
	case KindFailedTest:
		return "FailedTestError"
	default:
		return "ToolboxError"
	}
}

// Sentinels for errors.Is. ErrToolbox matches every toolbox error.
var (
	ErrToolbox     = &ToolboxError{Kind: KindToolbox, Message: "toolbox error"}
	ErrInvalidTest = &ToolboxError{Kind: KindInvalidTest, Message: "invalid test"}
	ErrFailedTest  = &ToolboxError{Kind: KindFailedTest, Message: "failed test"}
)

// ToolboxError is the base error type of the toolbox.
//
// It provides three levels of information:
//   - Message: what went wrong
//   - Cause: why it happened (optional)
//   - Fix: how to fix it (optional)
type ToolboxError struct {
	Kind Kind

	// Message describes what went wrong. Error returns it verbatim when no
	// underlying error is wrapped.
	Message string

	// Cause explains why the error occurred.
	Cause string

	// Fix provides an actionable suggestion.
	Fix string

	// ExitCode is the exit code the CLI uses when exiting due to this error.
	ExitCode int

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ToolboxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ToolboxError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind or the base
// sentinel ErrToolbox.
func (e *ToolboxError) Is(target error) bool {
	t, ok := target.(*ToolboxError)
	if !ok {
		return false
	}
	switch t {
	case ErrToolbox:
		return true
	case ErrInvalidTest, ErrFailedTest:
		return e.Kind == t.Kind
	}
	return false
}

// IsInvalidTest reports whether err is, or wraps, an InvalidTestError.
func IsInvalidTest(err error) bool {
	var te *ToolboxError
	return stderrors.As(err, &te) && te.Kind == KindInvalidTest
}

// IsFailedTest reports whether err is, or wraps, a FailedTestError.
func IsFailedTest(err error) bool {
	var te *ToolboxError
	return stderrors.As(err, &te) && te.Kind == KindFailedTest
}

// NewInvalidTestError creates an InvalidTestError with exit code ExitInvalidTest.
//
// Invalid test errors are raised synchronously at declaration time and do
// not wrap an underlying error.
//
// Example:
//
//	return NewInvalidTestError(
//	    "Test case ID must be a non-empty string",
//	    `got ""`,
//	    `Pass an identifier such as "TC001"`,
//	)
func NewInvalidTestError(msg, cause, fix string) *ToolboxError {
	return &ToolboxError{
		Kind:     KindInvalidTest,
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: ExitInvalidTest,
	}
}

// NewFailedTestError creates a FailedTestError with exit code ExitFailedTest.
//
// Use this to classify an unexpected failure of a test function. err is
// kept so errors.Is and errors.As still reach the original failure.
func NewFailedTestError(msg string, err error) *ToolboxError {
	return &ToolboxError{
		Kind:     KindFailedTest,
		Message:  msg,
		ExitCode: ExitFailedTest,
		Err:      err,
	}
}

// Color definitions for error formatting.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns a formatted error message for terminal display.
//
// Colour output respects the NO_COLOR environment variable and can be
// disabled with noColor. Empty Cause or Fix fields are omitted.
func (e *ToolboxError) Format(noColor bool) string {
	// Save and restore global color state to avoid side effects
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}

	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}

	return out.String()
}

// ErrorJSON represents error information in JSON format.
type ErrorJSON struct {
	Error    string `json:"error"`
	Kind     string `json:"kind"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the error to a JSON-serializable structure.
func (e *ToolboxError) ToJSON() ErrorJSON {
	return ErrorJSON{
		Error:    e.Message,
		Kind:     e.Kind.String(),
		Cause:    e.Cause,
		Fix:      e.Fix,
		ExitCode: e.ExitCode,
	}
}

// FatalError prints the error to stderr and exits with the matching code.
//
// Toolbox errors use Format, or ToJSON when jsonOutput is set. Any other
// error is printed plainly and exits with ExitInternal.
// This function never returns for a non-nil err.
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}
	os.Exit(WriteError(os.Stderr, err, jsonOutput))
}

// WriteError writes err to w the way FatalError does and returns the exit
// code the process should end with.
func WriteError(w io.Writer, err error, jsonOutput bool) int {
	var te *ToolboxError
	if !stderrors.As(err, &te) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return ExitInternal
	}

	if jsonOutput {
		// Ignored: the caller exits with the right code either way.
		_ = output.JSONTo(w, te.ToJSON())
	} else {
		fmt.Fprint(w, te.Format(false))
	}
	return te.ExitCode
}
