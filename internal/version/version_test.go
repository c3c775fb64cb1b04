// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "v1.0.0",
		GitCommit: "abc1234",
		BuildTime: "2025-01-30T12:00:00Z",
	}

	want := "studio v1.0.0 (commit abc1234, built 2025-01-30T12:00:00Z)"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if info.Short() != "v1.0.0" {
		t.Errorf("Short() = %q", info.Short())
	}
}

func TestInfoZeroValue(t *testing.T) {
	// Zero value before ldflags injection.
	var info Info

	if info.Short() != "dev" {
		t.Errorf("Short() = %q, want dev", info.Short())
	}
	if got := info.String(); got != "studio dev (commit unknown, built unknown)" {
		t.Errorf("String() = %q", got)
	}
}
