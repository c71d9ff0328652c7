// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package env classifies the execution environment of a test process.
//
// A process is considered to run under continuous integration when any of
// the variables CI, GITHUB_ACTIONS or GITLAB_CI holds a non-empty value.
// The environment is read live on every call; nothing is cached.
package env

import "os"

// ciVariables is checked in order. Values are otherwise ignored.
var ciVariables = [...]string{"CI", "GITHUB_ACTIONS", "GITLAB_CI"}

// CIVariables returns the names of the environment variables that mark a
// CI runner, in the order they are checked.
func CIVariables() []string {
	out := make([]string, len(ciVariables))
	copy(out, ciVariables[:])
	return out
}

// IsRunningInCI reports whether the current process runs inside a CI
// runner.
func IsRunningInCI() bool {
	_, ok := DetectCI()
	return ok
}

// DetectCI returns the first CI variable set to a non-empty value.
// ok is false when none is set or all are empty.
func DetectCI() (name string, ok bool) {
	for _, v := range ciVariables {
		if os.Getenv(v) != "" {
			return v, true
		}
	}
	return "", false
}
