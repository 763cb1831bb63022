package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dshills/docingest/internal/embedder"
	"github.com/dshills/docingest/internal/ingest"
	"github.com/dshills/docingest/pkg/types"
)

const (
	// DefaultMaxBodyBytes caps request bodies (16 MiB)
	DefaultMaxBodyBytes int64 = 16 << 20

	shutdownTimeout = 10 * time.Second
)

// Pipeline is the set of operations served over HTTP
type Pipeline interface {
	Embed(ctx context.Context, req ingest.EmbedRequest) (*ingest.EmbedResponse, error)
	Ingest(ctx context.Context, req ingest.IngestRequest) (*ingest.IngestResponse, error)
	Chunk(ctx context.Context, req ingest.ChunkRequest) (*ingest.ChunkResponse, error)
	Embedder() embedder.Embedder
}

// Server exposes a Pipeline as a JSON API
type Server struct {
	pipeline     Pipeline
	logger       *slog.Logger
	maxBodyBytes int64
	router       chi.Router
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request and error logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxBodyBytes caps the size of request bodies
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// New builds the router for p
func New(p Pipeline, opts ...Option) *Server {
	s := &Server{
		pipeline:     p,
		logger:       slog.Default(),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
	})

	r.Get("/healthz", s.handleHealth)
	r.Post("/embed", s.handleEmbed)
	r.Post("/ingest", s.handleIngest)
	r.Post("/chunk", s.handleChunk)

	s.router = r
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

type errorBody struct {
	Error string `json:"error"`
}

type healthBody struct {
	Status    string `json:"status"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Dimension int    `json:"dimension"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	emb := s.pipeline.Embedder()
	writeJSON(w, http.StatusOK, healthBody{
		Status:    "ok",
		Provider:  emb.Provider(),
		Model:     emb.Model(),
		Dimension: emb.Dimension(),
	})
}

func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	var req ingest.EmbedRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.pipeline.Embed(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingest.IngestRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.pipeline.Ingest(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	var req ingest.ChunkRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.pipeline.Chunk(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// decode reads a JSON body into v, answering 400 itself on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "request body too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

// StatusFor maps a pipeline error to an HTTP status code
func StatusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrExtraction):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
