// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	logger := slog.Default()

	s := New(logger)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}
	if s.logger != logger {
		t.Error("New() scheduler has wrong logger")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(slog.Default())
	if err := s.AddJob("noop", "@hourly", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("AddJob() error = %v", err)
	}

	s.Start()
	jobs := s.Jobs()
	s.Stop()

	if len(jobs) != 1 || jobs[0].Name != "noop" {
		t.Fatalf("Jobs() = %+v", jobs)
	}
	if jobs[0].NextRun.IsZero() {
		t.Error("NextRun should be set once the scheduler runs")
	}
}

func TestValidateSchedule(t *testing.T) {
	valid := []string{"@hourly", "*/15 * * * *", "0 3 * * 1"}
	for _, s := range valid {
		if err := ValidateSchedule(s); err != nil {
			t.Errorf("ValidateSchedule(%q) = %v", s, err)
		}
	}

	invalid := []string{"", "every hour", "61 * * * *", "* * * *"}
	for _, s := range invalid {
		if err := ValidateSchedule(s); err == nil {
			t.Errorf("ValidateSchedule(%q) should fail", s)
		}
	}
}

func TestAddJob_InvalidSchedule(t *testing.T) {
	s := New(slog.Default())
	if err := s.AddJob("bad", "nope", func(context.Context) error { return nil }); err == nil {
		t.Error("AddJob() should reject an invalid schedule")
	}
	if len(s.Jobs()) != 0 {
		t.Error("invalid job must not be registered")
	}
}

func TestRunNow(t *testing.T) {
	s := New(slog.Default())
	calls := 0
	boom := errors.New("boom")

	_ = s.AddJob("count", "@daily", func(context.Context) error {
		calls++
		return nil
	})
	_ = s.AddJob("fail", "@daily", func(context.Context) error { return boom })

	if err := s.RunNow("count"); err != nil {
		t.Fatalf("RunNow() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if err := s.RunNow("fail"); !errors.Is(err, boom) {
		t.Errorf("RunNow(fail) = %v, want boom", err)
	}
	if err := s.RunNow("missing"); err == nil {
		t.Error("RunNow(missing) should fail")
	}
}

func TestSweepStaging(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	write := func(name string, age time.Duration) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		mod := now.Add(-age)
		if err := os.Chtimes(p, mod, mod); err != nil {
			t.Fatal(err)
		}
		return p
	}

	stale := write("replace-old.jpg", 2*time.Hour)
	fresh := write("replace-new.jpg", 5*time.Minute)
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	n, err := SweepStaging(dir, time.Hour, now)
	if err != nil {
		t.Fatalf("SweepStaging() error = %v", err)
	}
	if n != 1 {
		t.Errorf("removed = %d, want 1", n)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file should be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh file should be kept")
	}
	if _, err := os.Stat(filepath.Join(dir, "sub")); err != nil {
		t.Error("directories should be kept")
	}
}

func TestSweepStaging_MissingDir(t *testing.T) {
	n, err := SweepStaging(filepath.Join(t.TempDir(), "absent"), time.Hour, time.Now())
	if err != nil || n != 0 {
		t.Errorf("SweepStaging() = %d, %v; want 0, nil", n, err)
	}
}

func TestStagingSweepJob(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "replace-1.png")
	if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-3 * time.Hour)
	if err := os.Chtimes(p, old, old); err != nil {
		t.Fatal(err)
	}

	s := New(slog.Default())
	if err := s.AddJob(StagingSweepJob, "@hourly", StagingSweep(dir, time.Hour, slog.Default())); err != nil {
		t.Fatal(err)
	}
	if err := s.RunNow(StagingSweepJob); err != nil {
		t.Fatalf("RunNow() error = %v", err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Error("stale file should be removed by the job")
	}
}
