// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestToolboxError_Error verifies the Error() method implementation.
func TestToolboxError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ToolboxError
		want string
	}{
		{
			name: "invalid test error carries message verbatim",
			err:  NewInvalidTestError("Test case ID must be a non-empty string", "", ""),
			want: "Test case ID must be a non-empty string",
		},
		{
			name: "failed test error with underlying error",
			err:  NewFailedTestError("test crashed", fmt.Errorf("nil map write")),
			want: "test crashed: nil map write",
		},
		{
			name: "empty message without underlying error",
			err:  &ToolboxError{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ToolboxError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestKinds verifies that the two concrete kinds sit under the base kind.
func TestKinds(t *testing.T) {
	invalid := NewInvalidTestError("bad id", "", "")
	failed := NewFailedTestError("boom", nil)

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"invalid is toolbox", invalid, ErrToolbox, true},
		{"invalid is invalid", invalid, ErrInvalidTest, true},
		{"invalid is not failed", invalid, ErrFailedTest, false},
		{"failed is toolbox", failed, ErrToolbox, true},
		{"failed is failed", failed, ErrFailedTest, true},
		{"failed is not invalid", failed, ErrInvalidTest, false},
		{"plain error is not toolbox", fmt.Errorf("plain"), ErrToolbox, false},
		{"wrapped invalid is invalid", fmt.Errorf("collect: %w", invalid), ErrInvalidTest, true},
		{"distinct values of one kind do not match each other", invalid, NewInvalidTestError("bad id", "", ""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.want)
			}
		})
	}
}

func TestIsHelpers(t *testing.T) {
	invalid := fmt.Errorf("wrapped: %w", NewInvalidTestError("bad id", "", ""))
	failed := NewFailedTestError("boom", nil)

	if !IsInvalidTest(invalid) {
		t.Error("IsInvalidTest should see through wrapping")
	}
	if IsInvalidTest(failed) {
		t.Error("IsInvalidTest(failed) = true, want false")
	}
	if !IsFailedTest(failed) {
		t.Error("IsFailedTest(failed) = false, want true")
	}
	if IsFailedTest(nil) {
		t.Error("IsFailedTest(nil) = true, want false")
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindToolbox, "ToolboxError"},
		{KindInvalidTest, "InvalidTestError"},
		{KindFailedTest, "FailedTestError"},
		{Kind(99), "ToolboxError"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

// TestConstructors verifies exit codes and wrapping set by each constructor.
func TestConstructors(t *testing.T) {
	underlying := fmt.Errorf("index out of range")

	invalid := NewInvalidTestError("msg", "cause", "fix")
	if invalid.ExitCode != ExitInvalidTest {
		t.Errorf("invalid ExitCode = %d, want %d", invalid.ExitCode, ExitInvalidTest)
	}
	if invalid.Err != nil {
		t.Errorf("invalid Err = %v, want nil", invalid.Err)
	}
	if invalid.Cause != "cause" || invalid.Fix != "fix" {
		t.Errorf("invalid Cause/Fix = %q/%q", invalid.Cause, invalid.Fix)
	}

	failed := NewFailedTestError("msg", underlying)
	if failed.ExitCode != ExitFailedTest {
		t.Errorf("failed ExitCode = %d, want %d", failed.ExitCode, ExitFailedTest)
	}
	if !errors.Is(failed, underlying) {
		t.Error("errors.Is should find the underlying failure")
	}
	if failed.Unwrap() != underlying {
		t.Errorf("Unwrap() = %v, want %v", failed.Unwrap(), underlying)
	}
}

// TestExitCodes_Uniqueness ensures no two categories share an exit code.
func TestExitCodes_Uniqueness(t *testing.T) {
	codes := map[int]string{}
	for name, code := range map[string]int{
		"ExitSuccess":     ExitSuccess,
		"ExitFailedTest":  ExitFailedTest,
		"ExitUsage":       ExitUsage,
		"ExitInvalidTest": ExitInvalidTest,
		"ExitInternal":    ExitInternal,
	} {
		if other, dup := codes[code]; dup {
			t.Errorf("%s and %s share exit code %d", name, other, code)
		}
		codes[code] = name
	}
}

// TestToolboxError_Format verifies the Format() method implementation.
func TestToolboxError_Format(t *testing.T) {
	tests := []struct {
		name    string
		err     *ToolboxError
		want    []string
		wantNot []string
	}{
		{
			name: "full error",
			err:  NewInvalidTestError("Test case ID must be a non-empty string", `got ""`, `Pass an identifier such as "TC001"`),
			want: []string{
				"Error: Test case ID must be a non-empty string\n",
				"Cause: got \"\"\n",
				"Fix:   Pass an identifier such as \"TC001\"\n",
			},
		},
		{
			name:    "error without cause or fix",
			err:     NewFailedTestError("test crashed", nil),
			want:    []string{"Error: test crashed\n"},
			wantNot: []string{"Cause:", "Fix:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(true)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Format() missing %q in:\n%s", w, got)
				}
			}
			for _, w := range tt.wantNot {
				if strings.Contains(got, w) {
					t.Errorf("Format() should not contain %q in:\n%s", w, got)
				}
			}
		})
	}
}

func TestToolboxError_FormatRespectsNoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := NewInvalidTestError("bad id", "", "").Format(false)
	if strings.Contains(got, "\x1b[") {
		t.Errorf("Format() emitted ANSI escapes with NO_COLOR set: %q", got)
	}
}

func TestToolboxError_ToJSON(t *testing.T) {
	data, err := json.Marshal(NewInvalidTestError("bad id", "", "use TC001").ToJSON())
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}

	want := `{"error":"bad id","kind":"InvalidTestError","fix":"use TC001","exit_code":4}`
	if string(data) != want {
		t.Errorf("ToJSON() = %s, want %s", data, want)
	}
}

func TestFatalError_NilIsNoop(t *testing.T) {
	// Must return without exiting.
	FatalError(nil, false)
}

func TestWriteError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	invalid := NewInvalidTestError("Test case ID must be a non-empty string", "got no value", `Pass an identifier such as "TC001"`)

	tests := []struct {
		name     string
		err      error
		json     bool
		want     string
		wantCode int
	}{
		{
			name:     "toolbox error as JSON",
			err:      invalid,
			json:     true,
			want:     "{\n  \"error\": \"Test case ID must be a non-empty string\",\n  \"kind\": \"InvalidTestError\",\n  \"cause\": \"got no value\",\n  \"fix\": \"Pass an identifier such as \\\"TC001\\\"\",\n  \"exit_code\": 4\n}\n",
			wantCode: ExitInvalidTest,
		},
		{
			name:     "wrapped toolbox error as text",
			err:      fmt.Errorf("banner: %w", invalid),
			want:     "Error: Test case ID must be a non-empty string\nCause: got no value\nFix:   Pass an identifier such as \"TC001\"\n",
			wantCode: ExitInvalidTest,
		},
		{
			name:     "plain error",
			err:      errors.New("disk full"),
			json:     true,
			want:     "Error: disk full\n",
			wantCode: ExitInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			code := WriteError(&buf, tt.err, tt.json)
			if code != tt.wantCode {
				t.Errorf("WriteError() code = %d, want %d", code, tt.wantCode)
			}
			if buf.String() != tt.want {
				t.Errorf("WriteError() wrote %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
