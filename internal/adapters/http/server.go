// Package http exposes a built model over a small JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
	"github.com/aretw0/markov/pkg/table"
	"github.com/go-chi/chi/v5"
)

// Model is the read side of a built model.
type Model interface {
	Domain() domain.Domain
	EmptyHistory() bool
	Generate(ctx context.Context, targetSize int, seed ...int) (domain.Combination, error)
	NewBatch(ctx context.Context, id string, n, targetSize int) (domain.Batch, error)
	Transitions(number int) table.Snapshot
	MostLikelyNext(number int, level table.Level) (int, bool)
}

// maxCount bounds how many combinations one request may ask for.
const maxCount = 1000

// Server serves a Model and, when configured, a CombinationStore.
type Server struct {
	Model   Model
	Store   ports.CombinationStore
	Version string
	logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithStore enables the /batches endpoints.
func WithStore(s ports.CombinationStore) Option {
	return func(srv *Server) {
		srv.Store = s
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(srv *Server) {
		if logger != nil {
			srv.logger = logger
		}
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(srv *Server) {
		srv.Version = strings.TrimSpace(v)
	}
}

// NewRouter creates the chi router for the model. Callers may mount more
// routes (e.g. /metrics) on the result.
func NewRouter(model Model, opts ...Option) chi.Router {
	s := &Server{
		Model:   model,
		Version: "unknown",
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/combinations", s.GetCombinations)
	r.Get("/transitions/{number}", s.GetTransitions)
	r.Get("/next/{number}", s.GetNext)

	if s.Store != nil {
		r.Route("/batches", func(r chi.Router) {
			r.Get("/", s.ListBatches)
			r.Post("/", s.CreateBatch)
			r.Get("/{id}", s.GetBatch)
			r.Delete("/{id}", s.DeleteBatch)
		})
	}
	return r
}

// NewHandler is NewRouter as a plain http.Handler.
func NewHandler(model Model, opts ...Option) http.Handler {
	return NewRouter(model, opts...)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"version":       s.Version,
		"domain":        s.Model.Domain(),
		"empty_history": s.Model.EmptyHistory(),
	})
}

// CombinationsResponse is the body of GET /combinations.
type CombinationsResponse struct {
	Combinations []domain.Combination `json:"combinations"`
}

// GetCombinations handles GET /combinations?count=&size=&seed=.
// With seed (comma separated) a single combination is grown from it.
func (s *Server) GetCombinations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	d := s.Model.Domain()

	count, err := intParam(q.Get("count"), 1)
	if err != nil || count < 1 || count > maxCount {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("count must be between 1 and %d", maxCount))
		return
	}
	size, err := intParam(q.Get("size"), d.DrawSize)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid size: %w", err))
		return
	}

	if raw := q.Get("seed"); raw != "" {
		seed, err := intList(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid seed: %w", err))
			return
		}
		c, err := s.Model.Generate(r.Context(), size, seed...)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, CombinationsResponse{Combinations: []domain.Combination{c}})
		return
	}

	b, err := s.Model.NewBatch(r.Context(), "", count, size)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, CombinationsResponse{Combinations: b.Combinations})
}

// GetTransitions handles GET /transitions/{number}.
func (s *Server) GetTransitions(w http.ResponseWriter, r *http.Request) {
	n, ok := s.numberParam(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.Model.Transitions(n))
}

// NextResponse is the body of GET /next/{number}.
type NextResponse struct {
	Number int         `json:"number"`
	Level  table.Level `json:"level"`
	Next   *int        `json:"next"`
}

// GetNext handles GET /next/{number}?level=. Next is null when the number
// has no recorded successor at that level.
func (s *Server) GetNext(w http.ResponseWriter, r *http.Request) {
	n, ok := s.numberParam(w, r)
	if !ok {
		return
	}
	level, err := table.ParseLevel(r.URL.Query().Get("level"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := NextResponse{Number: n, Level: level}
	if next, found := s.Model.MostLikelyNext(n, level); found {
		resp.Next = &next
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// CreateBatch handles POST /batches?count=&size=: it generates and stores a batch.
func (s *Server) CreateBatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	count, err := intParam(q.Get("count"), 1)
	if err != nil || count < 1 || count > maxCount {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("count must be between 1 and %d", maxCount))
		return
	}
	size, err := intParam(q.Get("size"), s.Model.Domain().DrawSize)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid size: %w", err))
		return
	}

	id := strconv.FormatInt(time.Now().UnixNano(), 36)
	b, err := s.Model.NewBatch(r.Context(), id, count, size)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if err := s.Store.Save(r.Context(), id, &b); err != nil {
		s.logger.Error("failed to save batch", "batch", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("failed to save batch"))
		return
	}
	s.writeJSON(w, http.StatusCreated, b)
}

// ListBatches handles GET /batches.
func (s *Server) ListBatches(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list batches", "err", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("failed to list batches"))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"batches": ids})
}

// GetBatch handles GET /batches/{id}.
func (s *Server) GetBatch(w http.ResponseWriter, r *http.Request) {
	b, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

// DeleteBatch handles DELETE /batches/{id}.
func (s *Server) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) numberParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid number: %w", err))
		return 0, false
	}
	if d := s.Model.Domain(); !d.Contains(n) {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("number %d outside 1-%d", n, d.Max))
		return 0, false
	}
	return n, true
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDomainExhaustion),
		errors.Is(err, domain.ErrInvalidTarget),
		errors.Is(err, domain.ErrInvalidSeed):
		s.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, context.Canceled):
		s.logger.Debug("generation canceled", "err", err)
	default:
		s.logger.Error("generation failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("generation failed"))
	}
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrBatchNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.logger.Error("batch store failed", "err", err)
	s.writeError(w, http.StatusInternalServerError, errors.New("batch store failed"))
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func intList(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
