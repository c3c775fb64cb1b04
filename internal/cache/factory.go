// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"

	"github.com/shootingzone/studio-cms/internal/config"
)

// New returns a Redis cache when REDIS_URL is set and reachable, otherwise
// an in-memory cache. A Redis failure at startup is logged, not fatal.
func New(cfg *config.Config) Cacher {
	if cfg.UseRedisCache() {
		opts := DefaultRedisCacheOptions()
		opts.URL = cfg.RedisURL
		if cfg.CachePrefix != "" {
			opts.Prefix = cfg.CachePrefix
		}
		opts.DefaultTTL = cfg.CacheTTL

		rc, err := NewRedisCache(opts)
		if err == nil {
			slog.Info("list cache: redis", "prefix", opts.Prefix)
			return rc
		}
		slog.Warn("redis unavailable, using in-memory list cache", "error", err)
	}

	slog.Info("list cache: memory", "ttl", cfg.CacheTTL)
	return NewMemoryCache(cfg.CacheTTL, time.Minute)
}
