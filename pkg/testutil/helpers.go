// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/kraklabs/qatoolbox/pkg/env"
)

// ClearCIEnv unsets every CI marker variable for the duration of the test.
// Previous values are restored by t.Setenv's cleanup.
func ClearCIEnv(t testing.TB) {
	t.Helper()

	for _, name := range env.CIVariables() {
		// t.Setenv registers the restore; the variable is then removed.
		t.Setenv(name, "")
		if err := os.Unsetenv(name); err != nil {
			t.Fatalf("failed to unset %s: %v", name, err)
		}
	}
}

// SkipUnlessSet skips the test unless the environment variable name holds
// a non-empty value.
//
// Example:
//
//	func TestLoginAgainstStaging(t *testing.T) {
//	    testutil.SkipUnlessSet(t, "RUN_INTEGRATION")
//	    ...
//	}
func SkipUnlessSet(t testing.TB, name string) {
	t.Helper()

	if os.Getenv(name) != "" {
		return
	}
	t.Skipf("Skipping test because '%s' is not set", name)
}

// LocalOnly skips the test when running inside a CI runner. Use it for
// tests that are only meant for manual runs on a workstation.
func LocalOnly(t testing.TB) {
	t.Helper()

	if name, ok := env.DetectCI(); ok {
		t.Skipf("test %s skipped when %s is set", t.Name(), name)
	}
}

// CaptureStdout runs fn with os.Stdout redirected and returns everything
// fn wrote to it. os.Stdout is restored before CaptureStdout returns, even
// if fn panics.
//
// Tests using CaptureStdout must not run in parallel with other tests that
// write to os.Stdout.
func CaptureStdout(t testing.TB, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create stdout pipe: %v", err)
	}

	done := make(chan []byte, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		_ = r.Close()
		done <- buf.Bytes()
	}()

	original := os.Stdout
	os.Stdout = w
	func() {
		defer func() {
			os.Stdout = original
			_ = w.Close()
		}()
		fn()
	}()

	return string(<-done)
}
