// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestGetOrLoad(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	calls := 0
	load := func() ([]item, error) {
		calls++
		return []item{{ID: 1, Title: "hero"}}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := GetOrLoad(ctx, c, "items", 0, load)
		if err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		if len(got) != 1 || got[0].Title != "hero" {
			t.Fatalf("got %+v", got)
		}
	}
	if calls != 1 {
		t.Errorf("load called %d times, want 1", calls)
	}

	_ = c.Clear(ctx)
	_, _ = GetOrLoad(ctx, c, "items", 0, load)
	if calls != 2 {
		t.Errorf("load called %d times after Clear, want 2", calls)
	}
}

func TestGetOrLoad_ErrorNotCached(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	boom := errors.New("boom")
	_, err := GetOrLoad(ctx, c, "k", 0, func() ([]item, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
	if c.Len() != 0 {
		t.Error("failed load must not be cached")
	}
}

func TestGetOrLoad_NilCache(t *testing.T) {
	got, err := GetOrLoad(context.Background(), nil, "k", 0, func() (int, error) { return 42, nil })
	if err != nil || got != 42 {
		t.Errorf("GetOrLoad(nil cache) = %d, %v", got, err)
	}
}

func TestGetOrLoad_CorruptEntry(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("{not json"), 0)
	got, err := GetOrLoad(ctx, c, "k", 0, func() (item, error) { return item{ID: 9}, nil })
	if err != nil || got.ID != 9 {
		t.Errorf("GetOrLoad = %+v, %v", got, err)
	}
}
