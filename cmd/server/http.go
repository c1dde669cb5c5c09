package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/aica/internal/config"
	"github.com/JaimeStill/aica/pkg/lifecycle"
)

// httpServer owns the listener. Its write timeout is validated against the
// generation timeout at config load.
type httpServer struct {
	srv     *http.Server
	logger  *slog.Logger
	drainBy time.Duration
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) *httpServer {
	return &httpServer{
		srv: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeoutDuration(),
			WriteTimeout: cfg.WriteTimeoutDuration(),
		},
		logger:  logger.With("system", "http"),
		drainBy: cfg.ShutdownTimeoutDuration(),
	}
}

// Start begins serving in the background and registers a drain on shutdown.
func (s *httpServer) Start(lc *lifecycle.Coordinator) error {
	go s.serve()
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.drain()
	})
	return nil
}

func (s *httpServer) serve() {
	s.logger.Info("listening",
		"addr", s.srv.Addr,
		"read_timeout", s.srv.ReadTimeout,
		"write_timeout", s.srv.WriteTimeout,
	)
	err := s.srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("listener stopped", "error", err)
	}
}

func (s *httpServer) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), s.drainBy)
	defer cancel()

	start := time.Now()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("drain incomplete", "error", err, "after", time.Since(start))
		return
	}
	s.logger.Info("drained", "after", time.Since(start))
}
