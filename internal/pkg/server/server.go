package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/payrecon/internal/pkg/logger"
)

const DefaultShutdownTimeout = 30 * time.Second

// GracefulServer wraps an Echo server with graceful shutdown
type GracefulServer struct {
	echo            *echo.Echo
	logger          *logger.ZapLogger
	port            int
	shutdownTimeout time.Duration
	components      *ShutdownManager
}

// NewGracefulServer creates a new server with graceful shutdown
func NewGracefulServer(e *echo.Echo, zapLogger *logger.ZapLogger, port int) *GracefulServer {
	return &GracefulServer{
		echo:            e,
		logger:          zapLogger,
		port:            port,
		shutdownTimeout: DefaultShutdownTimeout,
		components:      NewShutdownManager(zapLogger),
	}
}

// SetShutdownTimeout overrides the shutdown deadline, zero keeps the default
func (s *GracefulServer) SetShutdownTimeout(d time.Duration) {
	if d > 0 {
		s.shutdownTimeout = d
	}
}

// OnShutdown registers a component cleanup run after the HTTP server stops
func (s *GracefulServer) OnShutdown(fn func(context.Context) error) {
	s.components.Register(fn)
}

// Start serves until SIGINT or SIGTERM, then shuts down
func (s *GracefulServer) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done or the listener fails, then shuts down
func (s *GracefulServer) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server", logger.String("address", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.logger.Error("HTTP server failed", logger.Err(err))
			s.shutdownComponents()
			return err
		}
	case <-ctx.Done():
		s.logger.Info("Received shutdown signal")
	}

	return s.Shutdown()
}

// Shutdown stops the HTTP server, then the registered components
func (s *GracefulServer) Shutdown() error {
	s.logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.echo.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Server forced to shutdown", logger.Err(err))
	}
	_ = s.components.Shutdown(ctx)

	s.logger.Info("Server shutdown completed")
	return err
}

func (s *GracefulServer) shutdownComponents() {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	_ = s.components.Shutdown(ctx)
}

// ShutdownManager runs registered cleanup functions in registration order
type ShutdownManager struct {
	logger    *logger.ZapLogger
	mu        sync.Mutex
	functions []func(context.Context) error
}

// NewShutdownManager creates a new shutdown manager
func NewShutdownManager(zapLogger *logger.ZapLogger) *ShutdownManager {
	return &ShutdownManager{logger: zapLogger}
}

// Register adds a cleanup function. Nil functions are ignored.
func (sm *ShutdownManager) Register(fn func(context.Context) error) {
	if fn == nil {
		return
	}
	sm.mu.Lock()
	sm.functions = append(sm.functions, fn)
	sm.mu.Unlock()
}

// Shutdown executes all registered cleanup functions. Errors are logged and
// the remaining components still run; the first error is returned.
func (sm *ShutdownManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	functions := append([]func(context.Context) error(nil), sm.functions...)
	sm.mu.Unlock()

	sm.logger.Info("Starting graceful shutdown of components", logger.Int("components", len(functions)))

	var first error
	for i, fn := range functions {
		if err := fn(ctx); err != nil {
			sm.logger.Error("Error during component shutdown",
				logger.Int("component", i),
				logger.Err(err))
			if first == nil {
				first = err
			}
		}
	}

	sm.logger.Info("All components shutdown completed")
	return first
}
