// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package markers attaches test-case identifiers and descriptive metadata
// to test functions.
//
// A Decorator is declared once per test case with Requirement. The ID is
// validated eagerly, so a misconfigured ID fails at declaration time
// rather than when the test runs:
//
//	var tcLogin = markers.MustRequirement("AUTH-001",
//	    markers.WithPriority("critical"),
//	    markers.WithComponent("authentication"),
//	)
//
//	func TestUserLogin(t *testing.T) {
//	    tcLogin.Run(t, func(t *testing.T) {
//	        ...
//	    })
//	}
//
// Apply wraps any function value. The wrapper has exactly the target's
// type, forwards its arguments and results unchanged, and prints the
// metadata block to standard output before each call:
//
//	============================================================
//	TEST CASE: AUTH-001
//	============================================================
//	Priority: critical
//	Component: authentication
//	Function: TestUserLogin.func1
//	Module: github.com/acme/shop/auth_test
//	============================================================
//
// Optional fields that were never set are omitted. A field set to the
// empty string is printed with an empty value.
//
// The record stays available on the wrapper through Func.Metadata, before
// and after any call. Reporting tools that only hold an interface value can
// use Lookup.
package markers
