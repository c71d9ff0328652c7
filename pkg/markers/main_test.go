// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package markers_test

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
