// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mirror

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/jlaffaye/ftp"

	"github.com/shootingzone/studio-cms/internal/config"
)

// ftpConn is the subset of *ftp.ServerConn the mirror uses.
type ftpConn interface {
	Login(user, password string) error
	ChangeDir(path string) error
	MakeDir(path string) error
	Stor(path string, r io.Reader) error
	Quit() error
}

// FTP mirrors files to an FTP server.
type FTP struct {
	cfg  config.FTPConfig
	dial func(ctx context.Context) (ftpConn, error)
}

// NewFTP creates an FTP mirror.
func NewFTP(cfg config.FTPConfig) *FTP {
	m := &FTP{cfg: cfg}
	m.dial = m.dialServer
	return m
}

// Name returns the driver name.
func (m *FTP) Name() string { return config.MirrorDriverFTP }

func (m *FTP) dialServer(ctx context.Context) (ftpConn, error) {
	opts := []ftp.DialOption{
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(m.cfg.DialTimeout),
	}
	if m.cfg.Secure {
		opts = append(opts, ftp.DialWithExplicitTLS(&tls.Config{
			ServerName: m.cfg.Host,
			MinVersion: tls.VersionTLS12,
		}))
	}
	return ftp.Dial(net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port)), opts...)
}

// Replicate uploads localPath to remotePath below the configured root
// directory, creating missing directories on the way.
func (m *FTP) Replicate(ctx context.Context, localPath, remotePath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening local file: %w", err)
	}
	defer func() { _ = f.Close() }()

	conn, err := m.dial(ctx)
	if err != nil {
		return fmt.Errorf("connecting to ftp server: %w", err)
	}
	defer func() {
		if err := conn.Quit(); err != nil {
			slog.Debug("ftp quit failed", "error", err)
		}
	}()

	if err := conn.Login(m.cfg.User, m.cfg.Password); err != nil {
		return fmt.Errorf("ftp login: %w", err)
	}

	for _, dir := range splitPath(m.cfg.RootDir) {
		if err := conn.ChangeDir(dir); err != nil {
			return fmt.Errorf("changing into root directory %q: %w", dir, err)
		}
	}

	dir, name := path.Split(remotePath)
	for _, part := range splitPath(dir) {
		if err := enterDir(conn, part); err != nil {
			return err
		}
	}

	if err := conn.Stor(name, f); err != nil {
		return fmt.Errorf("uploading %s: %w", remotePath, err)
	}

	slog.Info("image mirrored", "driver", m.Name(), "remote_path", remotePath)
	return nil
}

// enterDir changes into dir, creating it first when it does not exist.
func enterDir(conn ftpConn, dir string) error {
	if err := conn.ChangeDir(dir); err == nil {
		return nil
	}
	if err := conn.MakeDir(dir); err != nil && !isAlreadyExists(err) {
		return fmt.Errorf("creating directory %q: %w", dir, err)
	}
	if err := conn.ChangeDir(dir); err != nil {
		return fmt.Errorf("changing into directory %q: %w", dir, err)
	}
	return nil
}

func isAlreadyExists(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "exists")
}

func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}
