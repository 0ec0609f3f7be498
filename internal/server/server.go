// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

// Package server serves the admissions dashboard and its JSON API over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/admisi-dashboard/admisi/internal/dataset"
)

// Options tunes the server.
type Options struct {
	// TopN is the default n for ranked sections and /api/top.
	TopN int

	// SplitTrend draws the trend per education level by default.
	SplitTrend bool

	// Columns names the header row of /api/rows?format=xlsx downloads.
	Columns dataset.Columns

	// Logger receives request logs. Nil uses slog.Default().
	Logger *slog.Logger
}

// Server answers dashboard and API requests from one shared dataset cache.
// Handlers only read the cached dataset.
type Server struct {
	cache  *dataset.Cache
	opts   Options
	logger *slog.Logger
	router *chi.Mux
}

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// New builds a Server over cache.
func New(cache *dataset.Cache, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cache:  cache,
		opts:   opts,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(requestID)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleDashboard)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/report", s.handleReport)
		r.Get("/kpis", s.handleKPIs)
		r.Get("/top", s.handleTop)
		r.Get("/options", s.handleOptions)
		r.Get("/rows", s.handleRows)
		r.Get("/charts/{file}", s.handleChart)
		r.Post("/reload", s.handleReload)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. The dataset is loaded before the listener opens so a bad
// workbook fails fast.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ds, err := s.cache.Get(ctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", "addr", addr, "data", ds.Path, "rows", ds.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down", "addr", addr)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
