// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package testutil provides helpers for tests that use qatoolbox.
//
// The CI classifier reads the live environment, and test suites often run
// inside CI themselves. Tests that need a known starting point call
// ClearCIEnv first and then set the variables they care about:
//
//	func TestOnlyOnGitHub(t *testing.T) {
//	    testutil.ClearCIEnv(t)
//	    t.Setenv("GITHUB_ACTIONS", "true")
//
//	    if !env.IsRunningInCI() {
//	        t.Fatal("expected CI")
//	    }
//	}
//
// Gate tests on the environment with SkipUnlessSet and LocalOnly, and use
// CaptureStdout to assert on the banner a decorated test function prints.
package testutil
