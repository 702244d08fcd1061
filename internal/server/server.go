package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server runs the HTTP listener and releases resources on shutdown.
type Server struct {
	http    *http.Server
	logger  *zap.Logger
	closers []func() error
}

// New wraps router in an HTTP server on port. closers run after the listener
// stops, in order.
func New(port int, router *gin.Engine, logger *zap.Logger, closers ...func() error) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger:  logger,
		closers: closers,
	}
}

// Run serves until SIGINT/SIGTERM or a listener failure, then shuts down.
func (s *Server) Run() error {
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
		serverErrors <- s.http.ListenAndServe()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = s.closeResources()
			return fmt.Errorf("start http server: %w", err)
		}
	case sig := <-signals:
		s.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	return s.Shutdown(context.Background())
}

// Shutdown drains in-flight requests and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("http server shutdown failed", zap.Error(err))
		errs = append(errs, err)
	}
	if err := s.closeResources(); err != nil {
		errs = append(errs, err)
	}
	s.logger.Info("server stopped")
	return errors.Join(errs...)
}

func (s *Server) closeResources() error {
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			s.logger.Error("resource close failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
