package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/veridex/trustlens/internal/client"
	"github.com/veridex/trustlens/internal/model"
	"github.com/veridex/trustlens/internal/session"
)

// Analyzer runs analyses for the router. *pipeline.Pipeline satisfies
// it.
type Analyzer interface {
	AnalyzeURLWithFallback(ctx context.Context, rawURL string) (*model.Analysis, error)
	AnalyzeText(ctx context.Context, text, subject string) (*model.Analysis, error)
}

type router struct {
	analyzer Analyzer
	session  *session.Session
	logger   *slog.Logger
}

// NewRouter builds the API handler.
func NewRouter(analyzer Analyzer, sess *session.Session, logger *slog.Logger) http.Handler {
	rt := &router{analyzer: analyzer, session: sess, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/analyze", rt.handleAnalyze)
	mux.HandleFunc("GET /api/v1/analyses/current", rt.handleCurrent)
	mux.HandleFunc("POST /api/v1/session/reset", rt.handleReset)
	mux.HandleFunc("GET /healthz", rt.handleHealth)
	return rt.logRequests(mux)
}

type analyzeRequest struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

func (rt *router) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rt.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Take a sequence number before the (slow) analysis so a newer
	// request submitted meanwhile wins the session slot.
	seq := rt.session.Begin()

	var (
		a   *model.Analysis
		err error
	)
	if req.URL != "" {
		a, err = rt.analyzer.AnalyzeURLWithFallback(r.Context(), req.URL)
	} else {
		a, err = rt.analyzer.AnalyzeText(r.Context(), req.Text, "")
	}
	if err != nil {
		rt.writeError(w, statusFor(err), err.Error())
		return
	}

	if !rt.session.Accept(seq, a) {
		rt.logger.Info("dropping stale analysis result", "seq", seq)
	}
	rt.writeJSON(w, http.StatusOK, a)
}

func (rt *router) handleCurrent(w http.ResponseWriter, r *http.Request) {
	a := rt.session.Current()
	if a == nil {
		rt.writeError(w, http.StatusNotFound, "no analysis yet")
		return
	}
	rt.writeJSON(w, http.StatusOK, a)
}

func (rt *router) handleReset(w http.ResponseWriter, r *http.Request) {
	rt.session.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (rt *router) handleHealth(w http.ResponseWriter, r *http.Request) {
	rt.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	var apiErr *client.APIError
	switch {
	case client.IsValidation(err):
		return http.StatusBadRequest
	case client.IsTimeout(err):
		return http.StatusGatewayTimeout
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (rt *router) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		rt.logger.Error("encoding response", "error", err)
	}
}

func (rt *router) writeError(w http.ResponseWriter, status int, msg string) {
	rt.writeJSON(w, status, map[string]string{"error": msg})
}

func (rt *router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		rt.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).String(),
		)
	})
}
