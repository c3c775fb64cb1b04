// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/shootingzone/studio-cms/internal/auth"
	"github.com/shootingzone/studio-cms/internal/cache"
	"github.com/shootingzone/studio-cms/internal/config"
	"github.com/shootingzone/studio-cms/internal/handler"
	"github.com/shootingzone/studio-cms/internal/handler/api"
	"github.com/shootingzone/studio-cms/internal/imaging"
	"github.com/shootingzone/studio-cms/internal/logging"
	"github.com/shootingzone/studio-cms/internal/mailer"
	"github.com/shootingzone/studio-cms/internal/middleware"
	"github.com/shootingzone/studio-cms/internal/mirror"
	"github.com/shootingzone/studio-cms/internal/scheduler"
	"github.com/shootingzone/studio-cms/internal/service"
	"github.com/shootingzone/studio-cms/internal/session"
	"github.com/shootingzone/studio-cms/internal/store"
	"github.com/shootingzone/studio-cms/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = ""
	appGitCommit = ""
	appBuildTime = ""
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "studio - Shooting Zone site backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JWT_SECRET        Credential signing secret (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUTH_MODE         token|session (default: token)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DB_PATH           SQLite database path (default: ./data/studio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORT              Server port (default: 3000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ENV               development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SEED              Seed the admin account and initial content (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  REDIS_URL         Redis URL for the list cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAIL_TRANSPORT    smtp|ses (default: smtp)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MIRROR_DRIVER     ftp|s3 (default: ftp)\n")
	}

	flag.Parse()

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(logging.NewRedactHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.SetDefault(logger)

	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.UploadsDir, cfg.StagingDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	st := store.New(db)

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, st, store.SeedOptions{
			AdminUsername: cfg.AdminUsername,
			AdminPassword: cfg.AdminPassword,
		}); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		slog.Info("database seeded", "admin", cfg.AdminUsername)
	}

	var sessionManager *scs.SessionManager
	if cfg.SessionAuth() {
		sessionManager = session.New(db, cfg.IsDevelopment())
	}
	issuer, err := auth.NewIssuer(cfg, st, sessionManager)
	if err != nil {
		return fmt.Errorf("initializing auth: %w", err)
	}
	slog.Info("admin authentication ready", "mode", cfg.AuthMode)

	listCache := cache.New(cfg)
	defer func() { _ = listCache.Close() }()

	files := imaging.NewProcessor(cfg.UploadsDir)

	remote, err := mirror.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing image mirror: %w", err)
	}
	if remote == nil {
		slog.Warn("image mirror not configured; replace-ftp is disabled", "driver", cfg.MirrorDriver)
	} else {
		slog.Info("image mirror ready", "driver", remote.Name())
	}

	mail, err := mailer.NewFromConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing mailer: %w", err)
	}

	content := service.NewContentService(st, files, listCache, cfg.CacheTTL)
	uploads := service.NewUploadService(content, service.UploadConfig{
		Files:      files,
		Mirror:     remote,
		StagingDir: cfg.StagingDir,
		MaxSize:    cfg.MaxUploadSize,
	})

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()

	sched := scheduler.New(logger)
	if err := sched.AddJob(scheduler.StagingSweepJob, cfg.StagingSweepSchedule,
		scheduler.StagingSweep(cfg.StagingDir, cfg.StagingMaxAge, logger)); err != nil {
		return fmt.Errorf("scheduling staging sweep: %w", err)
	}
	if err := sched.RunNow(scheduler.StagingSweepJob); err != nil {
		logger.Warn("initial staging sweep failed", "error", err)
	}
	sched.Start()
	defer sched.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if !cfg.IsDevelopment() {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(issuer.Middleware)
	if cfg.SessionAuth() {
		key := []byte(cfg.JWTSecret)[:config.MinJWTSecretLength]
		r.Use(middleware.CSRF(middleware.NewCSRFConfig(key, cfg.CORSOrigins)))
	}

	health := handler.NewHealthHandler(st, issuer, cfg.UploadsDir, versionInfo.Short()).
		WithMirror(uploads).
		WithJobs(sched)
	r.Get("/health", health.Health)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	apiHandler := api.NewHandler(api.Deps{
		Content:   content,
		Uploads:   uploads,
		Mailer:    mail,
		Issuer:    issuer,
		Login:     loginProtection,
		MaxUpload: cfg.MaxUploadSize,
	})
	apiHandler.Routes(r, api.DefaultRouteOptions())

	// Uploads: cache for 1 week (604800 seconds)
	uploadsHandler := middleware.StaticCache(604800)(http.StripPrefix("/uploads/", middleware.FileServer(cfg.UploadsDir)))
	r.Handle("/uploads/*", uploadsHandler)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteAPIError(w, http.StatusNotFound, "Not found", nil)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       2 * time.Minute,
		// Mirror transfers run inside the request.
		WriteTimeout:   10 * time.Minute,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Short())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
