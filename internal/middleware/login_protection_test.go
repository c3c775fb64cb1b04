// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLoginProtection(t *testing.T, cfg LoginProtectionConfig) *LoginProtection {
	t.Helper()
	lp := NewLoginProtection(cfg)
	t.Cleanup(lp.Stop)
	return lp
}

func TestLoginProtection_AccountLockout(t *testing.T) {
	lp := newTestLoginProtection(t, LoginProtectionConfig{
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Hour,
	})

	for i := 0; i < 2; i++ {
		if locked, _ := lp.RecordFailedAttempt("admin"); locked {
			t.Fatalf("locked after %d attempts", i+1)
		}
	}
	if got := lp.GetRemainingAttempts("admin"); got != 1 {
		t.Errorf("GetRemainingAttempts = %d, want 1", got)
	}

	locked, d := lp.RecordFailedAttempt("admin")
	if !locked || d != time.Minute {
		t.Fatalf("RecordFailedAttempt = %v, %v; want true, 1m", locked, d)
	}
	if locked, _ := lp.IsAccountLocked("admin"); !locked {
		t.Error("account should be locked")
	}
	if locked, _ := lp.IsAccountLocked("other"); locked {
		t.Error("other account should not be locked")
	}
}

func TestLoginProtection_ExponentialBackoff(t *testing.T) {
	lp := newTestLoginProtection(t, LoginProtectionConfig{
		MaxFailedAttempts: 1,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Hour,
	})

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	lp.now = func() time.Time { return now }

	_, _ = lp.RecordFailedAttempt("admin") // first attempt creates the entry
	_, d1 := lp.RecordFailedAttempt("admin")
	_, d2 := lp.RecordFailedAttempt("admin")

	if d1 != time.Minute || d2 != 2*time.Minute {
		t.Errorf("lock durations = %v, %v; want 1m, 2m", d1, d2)
	}
}

func TestLoginProtection_SuccessClears(t *testing.T) {
	lp := newTestLoginProtection(t, LoginProtectionConfig{MaxFailedAttempts: 5})

	lp.RecordFailedAttempt("admin")
	lp.RecordFailedAttempt("admin")
	lp.RecordSuccessfulLogin("admin")

	if got := lp.GetRemainingAttempts("admin"); got != 5 {
		t.Errorf("GetRemainingAttempts = %d, want 5", got)
	}
}

func TestLoginProtection_WindowReset(t *testing.T) {
	lp := newTestLoginProtection(t, LoginProtectionConfig{
		MaxFailedAttempts: 2,
		AttemptWindow:     time.Minute,
	})

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	lp.now = func() time.Time { return now }
	lp.RecordFailedAttempt("admin")

	now = now.Add(2 * time.Minute)
	if locked, _ := lp.RecordFailedAttempt("admin"); locked {
		t.Error("attempt outside the window should not lock")
	}
}

func TestLoginProtection_Middleware(t *testing.T) {
	lp := newTestLoginProtection(t, LoginProtectionConfig{IPRateLimit: 0.001, IPBurst: 2})
	h := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.9:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}

	// Another client is unaffected.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "198.51.100.1:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other IP status = %d, want 200", rec.Code)
	}
}

func TestLimiterCache_ClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	lc.get("a")
	lc.get("b")

	if lc.clearIfExceeds(5) {
		t.Error("should not clear below the limit")
	}
	if !lc.clearIfExceeds(1) {
		t.Error("should clear above the limit")
	}
	if len(lc.limiters) != 0 {
		t.Errorf("len = %d after clear", len(lc.limiters))
	}
}
