// Package http exposes a running Tendril engine over HTTP: graph inspection,
// script replacement, the last build error and a server-sent event stream.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/tendril"
	"github.com/aretw0/tendril/internal/compiler"
	"github.com/aretw0/tendril/internal/presentation/graph"
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// MaxScriptSize bounds POST /script bodies.
const MaxScriptSize = 1 << 20

// Engine defines what the HTTP server needs from the engine host.
type Engine interface {
	Inspect(ctx context.Context) (domain.Snapshot, error)
	Statements(ctx context.Context) ([]domain.Statement, error)
	RebuildScript(ctx context.Context, data []byte) error
	LastError() error
}

// Server serves the control API.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	logger  *slog.Logger
}

// Option configures the handler.
type Option func(*options)

type options struct {
	streams *StreamManager
	metrics http.Handler
	logger  *slog.Logger
}

// WithStreams publishes the events of sm on GET /events.
func WithStreams(sm *StreamManager) Option {
	return func(o *options) {
		o.streams = sm
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(o *options) {
		o.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.streams == nil {
		o.streams = NewStreamManager()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	s := &Server{Engine: engine, Streams: o.streams, logger: o.logger}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/graph", s.GetGraph)
	r.Get("/graph.mmd", s.GetGraphMermaid)
	r.Get("/script", s.GetScript)
	r.Post("/script", s.PostScript)
	r.Get("/error", s.GetError)
	r.Get("/events", s.SubscribeEvents)
	if o.metrics != nil {
		r.Method(http.MethodGet, "/metrics", o.metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ErrorResponse is the JSON body of failed requests and of GET /error.
type ErrorResponse struct {
	Error     *string `json:"error"`
	Statement *int    `json:"statement,omitempty"`
	Source    string  `json:"source,omitempty"`
}

func errorResponse(err error) ErrorResponse {
	if err == nil {
		return ErrorResponse{}
	}
	msg := err.Error()
	resp := ErrorResponse{Error: &msg}
	var be *domain.BuildError
	if errors.As(err, &be) && be.Index >= 0 {
		n := be.Index + 1
		resp.Statement = &n
		if be.Statement != nil {
			resp.Source = be.Statement.String()
		}
	}
	return resp
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// GetGraph handles GET /graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Engine.Inspect(r.Context())
	if err != nil {
		s.logger.Error("inspect failed", "error", err)
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse(err))
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// GetGraphMermaid handles GET /graph.mmd.
func (s *Server) GetGraphMermaid(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Engine.Inspect(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.mermaid; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(snap, nil))
}

// GetScript handles GET /script: the running graph as a YAML script.
func (s *Server) GetScript(w http.ResponseWriter, r *http.Request) {
	stmts, err := s.Engine.Statements(r.Context())
	if errors.Is(err, domain.ErrNoGraph) {
		s.writeJSON(w, http.StatusNotFound, errorResponse(err))
		return
	}
	if err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse(err))
		return
	}
	data, err := compiler.Encode(stmts)
	if err != nil {
		s.logger.Error("script encode failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse(err))
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(data)
}

// PostScript handles POST /script: the body is a YAML or JSON script.
func (s *Server) PostScript(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, MaxScriptSize+1))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse(err))
		return
	}
	if len(data) > MaxScriptSize {
		s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse(errors.New("script too large")))
		return
	}

	if err := s.Engine.RebuildScript(r.Context(), data); err != nil {
		if domain.IsBuildError(err) {
			s.logger.Debug("script rejected", "error", err)
			s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse(err))
			return
		}
		s.logger.Error("rebuild failed", "error", err)
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetError handles GET /error: the last rebuild error or {"error": null}.
func (s *Server) GetError(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, errorResponse(s.Engine.LastError()))
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "tendril-http",
		"version": strings.TrimSpace(tendril.Version),
	})
}
