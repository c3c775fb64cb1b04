// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-Secret-key-32-bytes-long!!!"

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.AuthMode != AuthModeToken {
		t.Errorf("AuthMode = %q, want %q", cfg.AuthMode, AuthModeToken)
	}
	if cfg.MaxUploadSize != 10*1024*1024 {
		t.Errorf("MaxUploadSize = %d, want 10MB", cfg.MaxUploadSize)
	}
	if cfg.FTP.Port != 21 {
		t.Errorf("FTP.Port = %d, want 21", cfg.FTP.Port)
	}
	if cfg.FTP.RootDir != "domains/shootingzonehyderabad.com/public_html" {
		t.Errorf("FTP.RootDir = %q", cfg.FTP.RootDir)
	}
	if cfg.FTP.DialTimeout != 30*time.Second {
		t.Errorf("FTP.DialTimeout = %v, want 30s", cfg.FTP.DialTimeout)
	}
	if cfg.SMTP.Port != 465 || !cfg.SMTP.Secure {
		t.Errorf("SMTP = %+v, want port 465 with implicit TLS", cfg.SMTP)
	}
	if len(cfg.CORSOrigins) != 10 {
		t.Errorf("CORSOrigins has %d entries, want 10", len(cfg.CORSOrigins))
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true without REDIS_URL")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PORT", "8081")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("AUTH_MODE", "session")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("FTP_HOST", "ftp.example.com")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("MIRROR_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "studio")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerAddr() != "127.0.0.1:8081" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if !cfg.SessionAuth() {
		t.Error("SessionAuth() = false, want true")
	}
	if cfg.SMTP.Host != "smtp.example.com" || cfg.SMTP.Port != 587 {
		t.Errorf("SMTP = %+v", cfg.SMTP)
	}
	if cfg.FTP.Host != "ftp.example.com" {
		t.Errorf("FTP.Host = %q", cfg.FTP.Host)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.S3.Bucket != "studio" {
		t.Errorf("S3.Bucket = %q", cfg.S3.Bucket)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without JWT_SECRET")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	os.Clearenv()
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail with a short secret")
	}
	if !strings.Contains(err.Error(), "at least 32 bytes") {
		t.Errorf("error = %v", err)
	}
}

func TestLoad_WeakSecret(t *testing.T) {
	os.Clearenv()
	t.Setenv("JWT_SECRET", "REPLACE_WITH_YOUR_OWN_SECRET_KEY!")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a known default secret")
	}
}

func TestLoad_InvalidEnums(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"AUTH_MODE", "oauth"},
		{"MAIL_TRANSPORT", "pigeon"},
		{"MIRROR_DRIVER", "webdav"},
		{"MAX_UPLOAD_SIZE", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			os.Clearenv()
			t.Setenv("JWT_SECRET", testSecret)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() should fail for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	if hasMinimumEntropy("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa") {
		t.Error("single class should fail")
	}
	if !hasMinimumEntropy(testSecret) {
		t.Error("mixed secret should pass")
	}
}
