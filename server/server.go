// Package server exposes a catalog over an HTTP JSON API. It owns the
// process's long-lived catalog reference; the catalog itself serializes all
// structural access, so handlers stay free of locking concerns.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/filecab/filecab/catalog"
	"github.com/filecab/filecab/config"
	"github.com/filecab/filecab/internal/util"
)

type Server struct {
	cfg    *config.Config
	cat    *catalog.Catalog
	stats  *opStats
	logger zerolog.Logger
	srv    *http.Server
}

// New creates a server around an existing catalog.
func New(cfg *config.Config, cat *catalog.Catalog) *Server {
	return &Server{
		cfg:    cfg,
		cat:    cat,
		stats:  newOpStats(),
		logger: util.GetLogger("server"),
	}
}

// Handler builds the full middleware-wrapped API handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/tree", s.handleTree)
	mux.HandleFunc("POST /api/folders", s.handleCreateFolder)
	mux.HandleFunc("POST /api/folders/delete", s.handleDeleteFolder)
	mux.HandleFunc("POST /api/files", s.handleAddFile)
	mux.HandleFunc("POST /api/files/delete", s.handleDeleteFile)
	mux.HandleFunc("GET /api/files/lookup", s.handleLookupFile)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/recycle-bin", s.handleListBin)
	mux.HandleFunc("POST /api/recycle-bin/{id}/restore", s.handleRestore)
	mux.HandleFunc("DELETE /api/recycle-bin/{id}", s.handlePurge)
	mux.HandleFunc("DELETE /api/recycle-bin", s.handleEmptyBin)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})

	return s.logRequests(c.Handler(mux))
}

// ListenAndServe blocks serving the API until Shutdown is called or the
// listener fails.
func (s *Server) ListenAndServe() error {
	s.srv = &http.Server{Addr: s.cfg.Addr, Handler: s.Handler()}
	s.logger.Info().Str("addr", s.cfg.Addr).Msg("HTTP API listening")
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// logRequests emits one structured line per request with method, path,
// status, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
