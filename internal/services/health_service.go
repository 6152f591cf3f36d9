package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/kSibalic/nba/internal/source"
	"github.com/kSibalic/nba/pkg/contracts"
	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	snapshot  *source.Snapshot
	startTime time.Time
	now       func() time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// DatasetHealth describes one loaded dataset.
type DatasetHealth struct {
	Status     string    `json:"status"`
	Records    int       `json:"records"`
	Mismatches int       `json:"mismatches"`
	Location   string    `json:"location"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// NewHealthService creates a health service reporting on snapshot.
func NewHealthService(version string, snapshot *source.Snapshot, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.Bool("season_loaded", snapshot != nil))

	return &HealthService{
		version:   version,
		snapshot:  snapshot,
		startTime: time.Now(),
		now:       time.Now,
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: hs.now(),
		Version:   hs.version,
	}

	hs.logger.DebugContext(ctx, "HealthCheck: completed",
		slog.String("status", status.Status),
		slog.String("uptime", time.Since(hs.startTime).String()))

	return status
}

// ReadinessCheck reports ready once both datasets are loaded.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: hs.now(),
		Version:   hs.version,
		Services:  make(map[string]interface{}),
	}

	for _, kind := range domain.Kinds {
		dh := hs.checkDataset(kind)
		status.Services[string(kind)] = dh
		if dh.Status != "ready" {
			status.Status = "not_ready"
		}
	}

	if status.Status != "ready" {
		hs.logger.WarnContext(ctx, "ReadinessCheck: season not loaded")
	}
	return status
}

func (hs *HealthService) checkDataset(kind domain.Kind) DatasetHealth {
	if hs.snapshot == nil {
		return DatasetHealth{Status: "not_loaded"}
	}
	report, ok := hs.snapshot.Report(kind)
	if !ok {
		return DatasetHealth{Status: "not_loaded"}
	}
	return DatasetHealth{
		Status:     "ready",
		Records:    report.Rows,
		Mismatches: report.Mismatches,
		Location:   report.Location,
		LoadedAt:   hs.snapshot.LoadedAt(),
	}
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: hs.now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	build := contracts.GetVersionInfo()
	return map[string]interface{}{
		"version":     hs.version,
		"build_time":  build.BuildTime,
		"git_commit":  build.GitCommit,
		"data_format": build.DataFormat,
		"api_version": build.APIVersion,
		"go_version":  runtime.Version(),
		"os":          runtime.GOOS,
		"arch":        runtime.GOARCH,
		"uptime":      time.Since(hs.startTime).Seconds(),
		"start_time":  hs.startTime.Format(time.RFC3339),
	}
}
