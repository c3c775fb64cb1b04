// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/shootingzone/studio-cms/internal/auth"
	"github.com/shootingzone/studio-cms/internal/scheduler"
)

// minDiskSpace is the free space below which the uploads volume is degraded.
const minDiskSpace = 100 * 1024 * 1024

// Pinger checks database connectivity. *store.Store satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MirrorStatus reports whether image replacements can reach the remote
// mirror. *service.UploadService satisfies it.
type MirrorStatus interface {
	MirrorEnabled() bool
}

// JobLister lists housekeeping jobs. *scheduler.Scheduler satisfies it.
type JobLister interface {
	Jobs() []scheduler.JobInfo
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db         Pinger
	issuer     auth.SessionIssuer
	mirror     MirrorStatus
	jobs       JobLister
	uploadsDir string
	version    string
	startTime  time.Time
}

// NewHealthHandler creates a new health handler. issuer may be nil, in which
// case every caller gets the public response.
func NewHealthHandler(db Pinger, issuer auth.SessionIssuer, uploadsDir, version string) *HealthHandler {
	return &HealthHandler{
		db:         db,
		issuer:     issuer,
		uploadsDir: uploadsDir,
		version:    version,
		startTime:  time.Now(),
	}
}

// WithMirror adds the mirror check to the admin view.
func (h *HealthHandler) WithMirror(m MirrorStatus) *HealthHandler {
	h.mirror = m
	return h
}

// WithJobs adds the scheduled jobs to the admin view.
func (h *HealthHandler) WithJobs(j JobLister) *HealthHandler {
	h.jobs = j
	return h
}

// HealthStatusPublic is the response for unauthenticated callers.
type HealthStatusPublic struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// HealthStatus is the detailed response for the authenticated admin.
type HealthStatus struct {
	Status    string              `json:"status"`
	Version   string              `json:"version"`
	Timestamp time.Time           `json:"timestamp"`
	Uptime    string              `json:"uptime"`
	Checks    map[string]Check    `json:"checks"`
	Jobs      []scheduler.JobInfo `json:"jobs,omitempty"`
	System    *SystemInfo         `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains runtime information.
type SystemInfo struct {
	GoVersion    string `json:"goVersion"`
	NumGoroutine int    `json:"numGoroutines"`
	NumCPU       int    `json:"numCpus"`
	MemAlloc     string `json:"memAlloc"`
	MemSys       string `json:"memSys"`
}

// Health handles GET /health. The status is 503 when the database is
// unreachable or the uploads volume is low on space.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())
	diskCheck := h.checkDiskSpace()

	overallStatus := "healthy"
	if dbCheck.Status != "healthy" || diskCheck.Status != "healthy" {
		overallStatus = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	if overallStatus != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if !h.isAdmin(r) {
		_ = json.NewEncoder(w).Encode(HealthStatusPublic{
			Status:  overallStatus,
			Version: h.version,
		})
		return
	}

	status := HealthStatus{
		Status:    overallStatus,
		Version:   h.version,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks: map[string]Check{
			"database": dbCheck,
			"disk":     diskCheck,
		},
	}
	if h.mirror != nil {
		status.Checks["mirror"] = mirrorCheck(h.mirror.MirrorEnabled())
	}
	if h.jobs != nil {
		status.Jobs = h.jobs.Jobs()
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = systemInfo()
	}

	_ = json.NewEncoder(w).Encode(status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready. Only the database gates readiness.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if dbCheck.Status == "healthy" {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
		return
	}

	w.WriteHeader(http.StatusServiceUnavailable)
	resp := map[string]string{"status": "not_ready"}
	if h.isAdmin(r) {
		resp["message"] = dbCheck.Message
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *HealthHandler) isAdmin(r *http.Request) bool {
	if h.issuer == nil {
		return false
	}
	return auth.Check(h.issuer, r).Authenticated
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  "unhealthy",
			Message: err.Error(),
			Latency: latency.String(),
		}
	}
	return Check{
		Status:  "healthy",
		Message: "Connected",
		Latency: latency.String(),
	}
}

// mirrorCheck is informational: an unconfigured mirror only disables
// replace-ftp and never degrades the overall status.
func mirrorCheck(enabled bool) Check {
	if enabled {
		return Check{Status: "healthy", Message: "Configured"}
	}
	return Check{Status: "disabled", Message: "Remote mirror not configured"}
}

// checkDiskSpace reports free space on the uploads volume.
func (h *HealthHandler) checkDiskSpace() Check {
	if _, err := os.Stat(h.uploadsDir); os.IsNotExist(err) {
		return Check{
			Status:  "healthy",
			Message: "Uploads directory does not exist yet",
		}
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(h.uploadsDir, &stat); err != nil {
		return Check{
			Status:  "unhealthy",
			Message: "Failed to check disk space: " + err.Error(),
		}
	}

	availableBytes := stat.Bavail * uint64(stat.Bsize)
	available := formatBytes(availableBytes)

	if availableBytes < minDiskSpace {
		return Check{
			Status:  "degraded",
			Message: "Low disk space: " + available + " available",
		}
	}
	return Check{
		Status:  "healthy",
		Message: available + " available",
	}
}

func systemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
