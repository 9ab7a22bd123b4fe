package health

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/payrecon/internal/pkg/logger"
)

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

// Checker reports the health of one dependency
type Checker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) CheckHealth(ctx context.Context) error { return f(ctx) }

// Pinger adapts a dependency with a context-free Ping, such as NATS or NSQ
func Pinger(ping func() error) Checker {
	return CheckerFunc(func(context.Context) error { return ping() })
}

// Response is the body of the detailed health endpoints
type Response struct {
	Status       string                    `json:"status"`
	Timestamp    time.Time                 `json:"timestamp"`
	Service      string                    `json:"service"`
	Version      string                    `json:"version,omitempty"`
	Dependencies map[string]DependencyInfo `json:"dependencies"`
}

// DependencyInfo represents health info for a dependency
type DependencyInfo struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Service runs the registered dependency checks
type Service struct {
	serviceName string
	checkers    map[string]Checker
	logger      *logger.ZapLogger
}

// NewService creates a health service for serviceName
func NewService(serviceName string, l *logger.ZapLogger) *Service {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &Service{
		serviceName: serviceName,
		checkers:    make(map[string]Checker),
		logger:      l,
	}
}

// AddChecker registers a checker under name. A nil checker is ignored.
func (s *Service) AddChecker(name string, checker Checker) {
	if checker == nil {
		return
	}
	s.checkers[name] = checker
}

// CheckAll runs every registered checker
func (s *Service) CheckAll(ctx context.Context) Response {
	response := Response{
		Status:       StatusHealthy,
		Timestamp:    time.Now(),
		Service:      s.serviceName,
		Version:      DefaultBuildInfo.Version,
		Dependencies: make(map[string]DependencyInfo, len(s.checkers)),
	}

	names := make([]string, 0, len(s.checkers))
	for name := range s.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.checkers[name].CheckHealth(ctx); err != nil {
			s.logger.Error("Health check failed",
				logger.String("dependency", name),
				logger.Err(err))
			response.Dependencies[name] = DependencyInfo{Status: StatusUnhealthy, Error: err.Error()}
			response.Status = StatusUnhealthy
			continue
		}
		response.Dependencies[name] = DependencyInfo{Status: StatusHealthy}
	}

	return response
}

// RegisterHealthEndpoints registers /ping, /health and the dependency checks
func RegisterHealthEndpoints(e *echo.Echo, svc *Service) {
	e.GET("/ping", NewPingHandler(svc.serviceName))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/health/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "alive", "service": svc.serviceName})
	})
	e.GET("/health/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		response := svc.CheckAll(ctx)
		if response.Status != StatusHealthy {
			return c.JSON(http.StatusServiceUnavailable, response)
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready", "service": svc.serviceName})
	})
	e.GET("/health/detailed", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		response := svc.CheckAll(ctx)
		status := http.StatusOK
		if response.Status != StatusHealthy {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, response)
	})
}
