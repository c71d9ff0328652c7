// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package testutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClearCIEnv verifies every CI marker is removed from the environment.
func TestClearCIEnv(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("GITHUB_ACTIONS", "true")
	t.Setenv("GITLAB_CI", "true")

	ClearCIEnv(t)

	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI"} {
		value, ok := os.LookupEnv(name)
		assert.False(t, ok, "%s still present (value %q)", name, value)
	}
}

// TestClearCIEnv_Restores verifies the previous values come back once the
// subtest that cleared them finishes.
func TestClearCIEnv_Restores(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("GITLAB_CI", "")

	t.Run("cleared", func(t *testing.T) {
		ClearCIEnv(t)
		_, ok := os.LookupEnv("CI")
		assert.False(t, ok)
	})

	value, ok := os.LookupEnv("CI")
	assert.True(t, ok)
	assert.Equal(t, "true", value)

	value, ok = os.LookupEnv("GITLAB_CI")
	assert.True(t, ok, "an empty variable is restored as present")
	assert.Empty(t, value)
}

func TestSkipUnlessSet(t *testing.T) {
	t.Run("skips when unset", func(t *testing.T) {
		t.Setenv("QATOOLBOX_TEST_GATE", "")

		ran := false
		ok := t.Run("gated", func(t *testing.T) {
			SkipUnlessSet(t, "QATOOLBOX_TEST_GATE")
			ran = true
		})

		assert.True(t, ok, "a skipped test does not fail")
		assert.False(t, ran)
	})

	t.Run("runs when set", func(t *testing.T) {
		t.Setenv("QATOOLBOX_TEST_GATE", "1")

		ran := false
		t.Run("gated", func(t *testing.T) {
			SkipUnlessSet(t, "QATOOLBOX_TEST_GATE")
			ran = true
		})

		assert.True(t, ran)
	})
}

func TestLocalOnly(t *testing.T) {
	t.Run("skips in CI", func(t *testing.T) {
		ClearCIEnv(t)
		t.Setenv("GITLAB_CI", "true")

		ran := false
		t.Run("local", func(t *testing.T) {
			LocalOnly(t)
			ran = true
		})

		assert.False(t, ran)
	})

	t.Run("runs outside CI", func(t *testing.T) {
		ClearCIEnv(t)

		ran := false
		t.Run("local", func(t *testing.T) {
			LocalOnly(t)
			ran = true
		})

		assert.True(t, ran)
	})
}

func TestCaptureStdout(t *testing.T) {
	original := os.Stdout

	out := CaptureStdout(t, func() {
		fmt.Println("TEST CASE: TC001")
		fmt.Print("no newline")
	})

	assert.Equal(t, "TEST CASE: TC001\nno newline", out)
	assert.Same(t, original, os.Stdout, "os.Stdout must be restored")
}

func TestCaptureStdout_RestoresOnPanic(t *testing.T) {
	original := os.Stdout

	require.Panics(t, func() {
		CaptureStdout(t, func() {
			fmt.Print("partial")
			panic("boom")
		})
	})

	assert.Same(t, original, os.Stdout)
}
