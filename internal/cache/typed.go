// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// GetOrLoad returns the JSON-decoded value under key, or calls load and
// stores its result. Cache errors never fail the call; load errors do and
// are not cached.
func GetOrLoad[T any](ctx context.Context, c Cacher, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if c != nil {
		if data, err := c.Get(ctx, key); err == nil {
			var value T
			if err := json.Unmarshal(data, &value); err == nil {
				return value, nil
			}
			slog.Warn("discarding undecodable cache entry", "key", key)
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if c != nil {
		if data, err := json.Marshal(value); err == nil {
			if err := c.Set(ctx, key, data, ttl); err != nil {
				slog.Debug("cache set failed", "key", key, "error", err)
			}
		}
	}

	return value, nil
}
