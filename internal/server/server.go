// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the explorer over a JSON HTTP API for a browser
// front end.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/landscape/internal/author"
	"github.com/pdiddy/landscape/internal/explore"
	"github.com/pdiddy/landscape/internal/keyword"
	"github.com/pdiddy/landscape/pkg/types"
)

const maxBodyBytes = 1 << 20

// Server serves explorer queries.
type Server struct {
	explorer *explore.Explorer
	cfg      types.ServerConfig
	logger   *slog.Logger
	router   chi.Router
}

// New builds the router. A nil logger uses slog.Default().
func New(explorer *explore.Explorer, cfg types.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{explorer: explorer, cfg: cfg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleCategories)
		r.Post("/cluster", s.handleCluster)
		r.Post("/trends", s.handleTrends)
		r.Post("/author", s.handleAuthor)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.cfg.Addr, "records", s.explorer.Dataset().Len())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": s.explorer.Dataset().Len(),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.explorer.Categories()})
}

func (s *Server) handleCluster(w http.ResponseWriter, r *http.Request) {
	var q explore.ClusterQuery
	if !s.decode(w, r, &q) {
		return
	}
	view, err := s.explorer.ClusterByKeywords(q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	var q explore.TrendQuery
	if !s.decode(w, r, &q) {
		return
	}
	view, err := s.explorer.Trends(q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAuthor(w http.ResponseWriter, r *http.Request) {
	var q explore.AuthorQuery
	if !s.decode(w, r, &q) {
		return
	}
	view, err := s.explorer.HighlightAuthor(q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	return true
}

type errorBody struct {
	Error    string         `json:"error"`
	Patterns []patternIssue `json:"patterns,omitempty"`
}

type patternIssue struct {
	Keyword string `json:"keyword"`
	Pattern string `json:"pattern"`
	Reason  string `json:"reason"`
}

// writeError maps query errors to status codes: bad input is 400, invalid
// patterns are 422 with every offending keyword listed.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		empty *keyword.EmptyInputError
		field *types.FieldError
	)
	switch {
	case len(keyword.PatternErrors(err)) > 0:
		body := errorBody{Error: "invalid keyword pattern"}
		for _, pe := range keyword.PatternErrors(err) {
			body.Patterns = append(body.Patterns, patternIssue{
				Keyword: pe.Expression,
				Pattern: pe.Pattern,
				Reason:  pe.Err.Error(),
			})
		}
		writeJSON(w, http.StatusUnprocessableEntity, body)
	case errors.As(err, &empty), errors.As(err, &field),
		errors.Is(err, author.ErrEmptyName), errors.Is(err, explore.ErrUnknownCategory):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	default:
		s.logger.Error("query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
