// Package api exposes the campaign over HTTP: the clock operations,
// manual ledger moves, objective and event management, and the audit
// journal. It is a thin JSON layer; all rules live in the engine and
// ledger packages.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gmtools/campaigner/engine"
	"github.com/gmtools/campaigner/journal"
	"github.com/gmtools/campaigner/ledger"
	"github.com/gmtools/campaigner/proposal"
	"github.com/gmtools/campaigner/store"
)

// Server wires the HTTP routes to the campaign services.
type Server struct {
	store     store.Store
	engine    *engine.Engine
	ledger    *ledger.Service
	proposals proposal.Source
	audit     journal.Reader
}

func NewServer(st store.Store, e *engine.Engine, l *ledger.Service, p proposal.Source, audit journal.Reader) *Server {
	return &Server{store: st, engine: e, ledger: l, proposals: p, audit: audit}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Minute))
	r.Use(requestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/date", s.handleGetDate)
		r.Post("/date", s.handleSetDate)
		r.Post("/advance", s.handleAdvance)

		r.Get("/accounts", s.handleListAccounts)
		r.Post("/accounts", s.handleCreateAccount)
		r.Post("/accounts/{id}/deposit", s.handleDeposit)
		r.Post("/accounts/{id}/withdraw", s.handleWithdraw)
		r.Post("/transfers", s.handleTransfer)

		r.Get("/postings", s.handleListPostings)
		r.Post("/postings", s.handleCreatePosting)

		r.Get("/objectives", s.handleListObjectives)
		r.Post("/objectives", s.handleCreateObjective)
		r.Post("/objectives/{id}/start", s.handleStartObjective)

		r.Get("/events/pending", s.handlePendingEvents)
		r.Post("/events", s.handleCreateEvent)
		r.Post("/events/{id}/outcome", s.handleChooseOutcome)

		r.Get("/journal", s.handleJournal)
	})

	return r
}

// requestLogger logs one line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
