// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"your-super-secret-jwt-key-change-this",
}

// Authentication modes. Exactly one is active per deployment.
const (
	AuthModeToken   = "token"
	AuthModeSession = "session"
)

// Mail transports.
const (
	MailTransportSMTP = "smtp"
	MailTransportSES  = "ses"
)

// Mirror drivers.
const (
	MirrorDriverFTP = "ftp"
	MirrorDriverS3  = "s3"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env        string `env:"ENV" envDefault:"development"`
	Host       string `env:"HOST" envDefault:"0.0.0.0"`
	Port       int    `env:"PORT" envDefault:"3000"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	DBPath     string `env:"DB_PATH" envDefault:"./data/studio.db"`
	UploadsDir string `env:"UPLOADS_DIR" envDefault:"./public/uploads"`
	StagingDir string `env:"STAGING_DIR" envDefault:"./data/staging"`

	// MaxUploadSize is the largest accepted image in bytes.
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`

	// Authentication
	AuthMode  string `env:"AUTH_MODE" envDefault:"token"`
	JWTSecret string `env:"JWT_SECRET,required"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"https://shootingzonehyderabad.com,https://www.shootingzonehyderabad.com,https://photoshoot-backend-n9au.onrender.com,https://app.powerfolio.in,http://localhost:5000,http://127.0.0.1:5000,http://localhost:5001,http://127.0.0.1:5001,http://localhost:5173,http://127.0.0.1:5173"`

	// Seeding configuration
	DoSeed        bool   `env:"SEED" envDefault:"false"`
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`

	// List cache configuration
	RedisURL    string        `env:"REDIS_URL"` // Optional; in-memory cache when empty
	CachePrefix string        `env:"CACHE_PREFIX" envDefault:"studio:"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Outbound mail
	MailTransport string     `env:"MAIL_TRANSPORT" envDefault:"smtp"`
	AdminEmail    string     `env:"ADMIN_EMAIL"`
	SMTP          SMTPConfig `envPrefix:"SMTP_"`
	SES           SESConfig  `envPrefix:"SES_"`

	// Remote mirror for replaced images
	MirrorDriver string    `env:"MIRROR_DRIVER" envDefault:"ftp"`
	FTP          FTPConfig `envPrefix:"FTP_"`
	S3           S3Config  `envPrefix:"S3_"`

	// Housekeeping
	StagingSweepSchedule string        `env:"STAGING_SWEEP_SCHEDULE" envDefault:"@hourly"`
	StagingMaxAge        time.Duration `env:"STAGING_MAX_AGE" envDefault:"1h"`
}

// SMTPConfig configures the SMTP mail transport.
type SMTPConfig struct {
	Host   string `env:"HOST"`
	Port   int    `env:"PORT" envDefault:"465"`
	User   string `env:"USER"`
	Pass   string `env:"PASS"`
	Secure bool   `env:"SECURE" envDefault:"true"` // implicit TLS
}

// SESConfig configures the Amazon SES mail transport.
type SESConfig struct {
	Region string `env:"REGION"`
	From   string `env:"FROM"` // verified sender; falls back to SMTP_USER
}

// FTPConfig configures the FTP mirror.
type FTPConfig struct {
	Host        string        `env:"HOST"`
	Port        int           `env:"PORT" envDefault:"21"`
	User        string        `env:"USER"`
	Password    string        `env:"PASSWORD"`
	Secure      bool          `env:"SECURE" envDefault:"false"` // explicit TLS
	RootDir     string        `env:"ROOT_DIR" envDefault:"domains/shootingzonehyderabad.com/public_html"`
	DialTimeout time.Duration `env:"DIAL_TIMEOUT" envDefault:"30s"`
}

// S3Config configures the S3 mirror.
type S3Config struct {
	Bucket   string `env:"BUCKET"`
	Region   string `env:"REGION"`
	Endpoint string `env:"ENDPOINT"` // custom endpoint for S3-compatible stores
	Prefix   string `env:"PREFIX"`

	// Static keys for S3-compatible stores; the default AWS chain is used when empty.
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// SessionAuth returns true when the server-side session variant is active.
func (c Config) SessionAuth() bool {
	return c.AuthMode == AuthModeSession
}

// MinJWTSecretLength is the minimum required length for the credential secret.
const MinJWTSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.JWTSecret) {
		slog.Warn("JWT_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(c.JWTSecret))
	}

	for _, weak := range knownWeakSecrets {
		if c.JWTSecret == weak {
			return fmt.Errorf("JWT_SECRET is a known default value and must not be used")
		}
	}

	switch c.AuthMode {
	case AuthModeToken, AuthModeSession:
	default:
		return fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeToken, AuthModeSession, c.AuthMode)
	}

	switch c.MailTransport {
	case MailTransportSMTP, MailTransportSES:
	default:
		return fmt.Errorf("MAIL_TRANSPORT must be %q or %q, got %q", MailTransportSMTP, MailTransportSES, c.MailTransport)
	}

	switch c.MirrorDriver {
	case MirrorDriverFTP, MirrorDriverS3:
	default:
		return fmt.Errorf("MIRROR_DRIVER must be %q or %q, got %q", MirrorDriverFTP, MirrorDriverS3, c.MirrorDriver)
	}

	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}

	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
