// internal/api/server.go
// Package api exposes the import pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"candidate-intake/internal/common/config"
	stderrors "candidate-intake/internal/common/errors"
	"candidate-intake/internal/common/logger"
	"candidate-intake/internal/importer"
	"candidate-intake/internal/models"
	"candidate-intake/internal/store"
)

// ImportRunner drives one batch end to end.
type ImportRunner interface {
	Run(ctx context.Context, rows [][]string, opts importer.Options, sink importer.Sink) (*importer.Result, error)
}

// PendingRepo is the pending-review area the API mutates.
type PendingRepo interface {
	Get(ctx context.Context, id, owner string) (*models.PendingRecord, error)
	List(ctx context.Context, owner string, category models.PendingCategory) ([]*models.PendingRecord, error)
	Update(ctx context.Context, rec *models.PendingRecord) error
	Delete(ctx context.Context, id, owner string) error
}

// BatchRepo lists past imports.
type BatchRepo interface {
	List(ctx context.Context, createdBy string) ([]*models.ImportBatch, error)
}

// CandidateRepo persists and reads main-store candidates.
type CandidateRepo interface {
	UpsertByEmail(ctx context.Context, cand *models.AcceptedCandidate) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.AcceptedCandidate, error)
}

// EmailCacheRepo is notified of candidate writes so cached existence
// lookups stay fresh. May be nil.
type EmailCacheRepo interface {
	MarkExists(ctx context.Context, email string)
}

// SearchRepo mirrors promoted candidates into search and serves recruiter
// queries. May be nil.
type SearchRepo interface {
	Index(ctx context.Context, cand *models.AcceptedCandidate) error
	Search(ctx context.Context, query string, size int) ([]models.AcceptedCandidate, error)
}

// ProgressRepo reads live batch progress. May be nil.
type ProgressRepo interface {
	Get(ctx context.Context, batchID string) (*store.BatchProgress, error)
}

// Pinger is a backend the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP server for the candidate intake service.
type Server struct {
	cfg        *config.Config
	runner     ImportRunner
	pending    PendingRepo
	batches    BatchRepo
	candidates CandidateRepo
	emails     EmailCacheRepo
	search     SearchRepo
	progress   ProgressRepo
	backends   map[string]Pinger
	logger     logger.Logger
	router     *chi.Mux
	server     *http.Server
}

// NewServer wires the router. emails, search, progress and backends may be
// nil.
func NewServer(cfg *config.Config, runner ImportRunner, pending PendingRepo, batches BatchRepo, candidates CandidateRepo, emails EmailCacheRepo, search SearchRepo, progress ProgressRepo, backends map[string]Pinger, log logger.Logger) *Server {
	s := &Server{
		cfg:        cfg,
		runner:     runner,
		pending:    pending,
		batches:    batches,
		candidates: candidates,
		emails:     emails,
		search:     search,
		progress:   progress,
		backends:   backends,
		logger:     log,
		router:     chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/imports/headers", s.handleHeaders)
		r.Post("/imports", s.handleImport)
		r.Post("/imports/auto", s.handleImportAuto)
		r.Get("/imports/{batchID}/progress", s.handleProgress)

		r.Post("/candidates/revalidate", s.handleRevalidate)
		r.Post("/candidates/promote", s.handlePromote)
		r.Get("/candidates/search", s.handleSearchCandidates)
		r.Get("/candidates/{email}", s.handleGetCandidate)

		r.Get("/pending", s.handleListPending)
		r.Get("/pending/{id}", s.handleGetPending)
		r.Put("/pending/{id}", s.handleUpdatePending)
		r.Delete("/pending/{id}", s.handleDeletePending)

		r.Get("/batches", s.handleListBatches)
	})

	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Get("/healthz", s.handleHealth)
}

// Start begins listening. WriteTimeout stays zero so long NDJSON streams
// are not cut off mid-batch.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:        s.cfg.Server.Addr(),
		Handler:     s.router,
		ReadTimeout: time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		IdleTimeout: 60 * time.Second,
	}
	s.logger.Info("http server listening", map[string]interface{}{"addr": s.cfg.Server.Addr()})
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the chi router, for tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) writeError(w http.ResponseWriter, stdErr *stderrors.StandardError) {
	s.writeJSON(w, stderrors.HTTPStatus(stdErr.Code), map[string]interface{}{"error": stdErr})
}

// owner identifies the importing user for pending-record scoping. Auth is
// out of scope; the caller asserts identity via header.
func owner(r *http.Request) string {
	if v := r.Header.Get("X-Owner"); v != "" {
		return v
	}
	return "system"
}
