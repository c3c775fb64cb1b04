// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/shootingzone/studio-cms/internal/util"
)

// StagingSweepJob is the name of the staging cleanup job.
const StagingSweepJob = "staging-sweep"

// SweepStaging removes regular files in dir last modified before
// now-maxAge. Replacement uploads stage their file there and remove it when
// done; the sweep only catches files left behind by a crash.
func SweepStaging(dir string, maxAge time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := now.Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path, err := util.SafeJoinPath(dir, e.Name())
		if err != nil {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to remove stale staging file", "file", e.Name(), "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

// StagingSweep returns a job that runs SweepStaging against the wall clock.
func StagingSweep(dir string, maxAge time.Duration, logger *slog.Logger) JobFunc {
	return func(context.Context) error {
		n, err := SweepStaging(dir, maxAge, time.Now())
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Info("removed stale staging files", "count", n, "dir", dir)
		}
		return nil
	}
}
