// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mirror copies replaced images to the public web host.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/shootingzone/studio-cms/internal/config"
)

// Mirror uploads a local file to a path below the mirror root, overwriting
// whatever is there. Implementations make a single attempt.
type Mirror interface {
	Replicate(ctx context.Context, localPath, remotePath string) error
	Name() string
}

// ErrInvalidRemotePath is returned for remote paths that are empty, name a
// directory or climb out of the mirror root.
var ErrInvalidRemotePath = errors.New("invalid remote path")

// RemotePath extracts the mirror-relative path from an image URL or an
// absolute or relative path: "https://host/public/a/b.jpg" and
// "/public/a/b.jpg" both give "public/a/b.jpg".
func RemotePath(imagePath string) (string, error) {
	raw := strings.TrimSpace(imagePath)
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		raw = u.Path
	} else if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}

	if raw == "" || strings.HasSuffix(raw, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidRemotePath, imagePath)
	}
	for _, part := range strings.Split(raw, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidRemotePath, imagePath)
		}
	}

	cleaned := strings.TrimPrefix(path.Clean("/"+raw), "/")
	if cleaned == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidRemotePath, imagePath)
	}
	return cleaned, nil
}

// New returns the mirror selected by MIRROR_DRIVER, or nil when the selected
// driver has no target configured.
func New(ctx context.Context, cfg *config.Config) (Mirror, error) {
	switch cfg.MirrorDriver {
	case config.MirrorDriverS3:
		if cfg.S3.Bucket == "" {
			return nil, nil
		}
		m, err := NewS3(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		if cfg.FTP.Host == "" {
			return nil, nil
		}
		return NewFTP(cfg.FTP), nil
	}
}
