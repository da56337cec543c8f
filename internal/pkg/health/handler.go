package health

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/gpstracker/internal/pkg/logger"
)

const readinessTimeout = 2 * time.Second

// BuildInfo contains information about the build
type BuildInfo struct {
	Version     string    `json:"version"`
	GitCommit   string    `json:"git_commit"`
	BuildTime   string    `json:"build_time"`
	ServiceName string    `json:"service_name"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// DefaultBuildInfo contains default build information
var DefaultBuildInfo = BuildInfo{
	Version:   "development",
	GitCommit: "unknown",
	BuildTime: "unknown",
	GoVersion: runtime.Version(),
}

// HealthChecker checks a single dependency
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a function to HealthChecker
type CheckerFunc func(ctx context.Context) error

// CheckHealth calls f(ctx)
func (f CheckerFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

// DependencyInfo is the readiness result of one dependency.
// Failure details are logged, never returned.
type DependencyInfo struct {
	Status string `json:"status"`
}

// ReadinessResponse represents the readiness check response
type ReadinessResponse struct {
	Status       string                    `json:"status"`
	Service      string                    `json:"service"`
	Timestamp    time.Time                 `json:"timestamp"`
	Dependencies map[string]DependencyInfo `json:"dependencies"`
}

// NewPingHandler creates a handler for the ping endpoint
func NewPingHandler(serviceName string) echo.HandlerFunc {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	buildInfo := DefaultBuildInfo
	buildInfo.ServiceName = serviceName
	buildInfo.Hostname = hostname

	if version := os.Getenv("VERSION"); version != "" {
		buildInfo.Version = version
	}
	if gitCommit := os.Getenv("GIT_COMMIT"); gitCommit != "" {
		buildInfo.GitCommit = gitCommit
	}
	if buildTime := os.Getenv("BUILD_TIME"); buildTime != "" {
		buildInfo.BuildTime = buildTime
	}

	return func(c echo.Context) error {
		info := buildInfo
		info.ServerTime = time.Now()
		return c.JSON(http.StatusOK, info)
	}
}

// NewReadyHandler reports 200 when every checker passes and 503 otherwise
func NewReadyHandler(serviceName string, checkers map[string]HealthChecker) echo.HandlerFunc {
	names := make([]string, 0, len(checkers))
	for name := range checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
		defer cancel()

		resp := ReadinessResponse{
			Status:       "ready",
			Service:      serviceName,
			Timestamp:    time.Now(),
			Dependencies: make(map[string]DependencyInfo, len(names)),
		}

		status := http.StatusOK
		for _, name := range names {
			if err := checkers[name].CheckHealth(ctx); err != nil {
				logger.Error("Readiness check failed",
					logger.String("dependency", name),
					logger.Err(err))
				resp.Dependencies[name] = DependencyInfo{Status: "unhealthy"}
				resp.Status = "not_ready"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Dependencies[name] = DependencyInfo{Status: "healthy"}
		}

		return c.JSON(status, resp)
	}
}

// RegisterHealthEndpoints registers the health check endpoints
func RegisterHealthEndpoints(e *echo.Echo, serviceName string, checkers map[string]HealthChecker) {
	e.GET("/ping", NewPingHandler(serviceName))

	// liveness
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/ready", NewReadyHandler(serviceName, checkers))
}
