// Package api exposes the wirecut pipeline over HTTP.
//
// Endpoints:
//
//	GET    /healthz               liveness probe
//	POST   /v1/graphs             build a graph from a TOML manifest body
//	GET    /v1/graphs             list stored graph names
//	GET    /v1/graphs/{name}      fetch a stored graph
//	DELETE /v1/graphs/{name}      delete a stored graph
//	POST   /v1/render             render a manifest to SVG or DOT
//
// POST /v1/graphs accepts query parameters: cut=true to replace wire-cut
// markers, validate=true to check graph invariants, and name=<id> to
// persist the result in the configured store.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/mlindgren/wirecut/pkg/errors"
	"github.com/mlindgren/wirecut/pkg/graphio"
	"github.com/mlindgren/wirecut/pkg/pipeline"
	"github.com/mlindgren/wirecut/pkg/store"
)

// maxManifestBytes caps request bodies; circuit manifests are small.
const maxManifestBytes = 1 << 20

// Server handles HTTP requests for the wirecut API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates a server backed by the given store.
// If logger is nil, log.Default() is used. The store may be nil, in which
// case persistence endpoints return 503.
func NewServer(st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: pipeline.NewRunner(logger),
		store:  st,
		logger: logger,
	}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/graphs", s.handleBuild)
		r.Get("/graphs", s.handleList)
		r.Get("/graphs/{name}", s.handleGet)
		r.Delete("/graphs/{name}", s.handleDelete)
		r.Post("/render", s.handleRender)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	manifest, err := io.ReadAll(io.LimitReader(r.Body, maxManifestBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	opts := pipeline.Options{
		Manifest: manifest,
		Cut:      r.URL.Query().Get("cut") == "true",
		Validate: r.URL.Query().Get("validate") == "true",
		Formats:  []string{pipeline.FormatJSON},
		Logger:   s.logger,
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	gj := graphio.FromGraph(result.Graph)
	gj.Name = result.Circuit.Name

	if name := r.URL.Query().Get("name"); name != "" {
		if err := errors.ValidateGraphName(name); err != nil {
			s.writeError(w, err)
			return
		}
		if s.store == nil {
			s.writeError(w, errors.New(errors.ErrCodeUnsupported, "no store configured"))
			return
		}
		gj.Name = name
		if err := s.store.Save(r.Context(), name, gj); err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "save graph %s", name))
			return
		}
	}

	writeJSON(w, http.StatusOK, gj)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "no store configured"))
		return
	}
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "list graphs"))
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"graphs": names})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "no store configured"))
		return
	}
	name := chi.URLParam(r, "name")
	g, err := s.store.Load(r.Context(), name)
	if err == store.ErrNotFound {
		s.writeError(w, errors.New(errors.ErrCodeGraphNotFound, "graph %q not found", name))
		return
	}
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "load graph %s", name))
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "no store configured"))
		return
	}
	name := chi.URLParam(r, "name")
	err := s.store.Delete(r.Context(), name)
	if err == store.ErrNotFound {
		s.writeError(w, errors.New(errors.ErrCodeGraphNotFound, "graph %q not found", name))
		return
	}
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "delete graph %s", name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	manifest, err := io.ReadAll(io.LimitReader(r.Body, maxManifestBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if format != pipeline.FormatSVG && format != pipeline.FormatDOT {
		s.writeError(w, errors.New(errors.ErrCodeInvalidFormat,
			"invalid render format %q (must be svg or dot)", format))
		return
	}

	opts := pipeline.Options{
		Manifest: manifest,
		Cut:      r.URL.Query().Get("cut") == "true",
		Formats:  []string{format},
		Detailed: r.URL.Query().Get("detailed") == "true",
		Logger:   s.logger,
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	contentType := "image/svg+xml"
	if format == pipeline.FormatDOT {
		contentType = "text/vnd.graphviz"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// =============================================================================
// Helpers
// =============================================================================

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps structured error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidManifest,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidGraph,
		errors.ErrCodeInvalidName:
		status = http.StatusBadRequest
	case errors.ErrCodeGraphNotFound, errors.ErrCodeNodeNotFound,
		errors.ErrCodeFileNotFound, errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnsupported:
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests logs method, path, status, and duration for every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond))
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
