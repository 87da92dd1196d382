// Package chi exposes the chat pipeline over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	chiv5 "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Rafath-b/Customer-Care-Copilot/internal/domain"
	"github.com/Rafath-b/Customer-Care-Copilot/internal/metrics"
	healthuc "github.com/Rafath-b/Customer-Care-Copilot/internal/usecase/health"
)

// Client-facing error messages. Internals never leak to the wire.
const (
	msgEmptyQuery      = "Query is required"
	msgRateLimited     = "Too many requests"
	msgPipelineFailure = "Failed to process your request."
)

// chatPipeline runs one query end to end.
type chatPipeline interface {
	Handle(ctx context.Context, query string) (domain.Reply, error)
}

// healthChecker reports component health.
type healthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server handles the chat API endpoints.
type Server struct {
	chat          chatPipeline
	health        healthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(chat chatPipeline, health healthChecker, log *zap.Logger) *Server {
	s := &Server{
		chat:   chat,
		health: health,
		logger: log,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, msgEmptyQuery),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, msgRateLimited),
	}
	return s
}

// Routes mounts the API endpoints on r.
func (s *Server) Routes(r chiv5.Router) {
	r.Post("/api/chat", s.Chat)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Text    string   `json:"text"`
	Sources []string `json:"sources"`
	Agent   string   `json:"agent"`
	Latency int64    `json:"latency"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Chat handles POST /api/chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// A body the pipeline could never act on is the same failure as a
		// missing query.
		writeError(w, http.StatusBadRequest, msgEmptyQuery)
		return
	}

	reply, err := s.chat.Handle(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	sources := reply.Sources
	if sources == nil {
		sources = []string{}
	}

	metrics.PipelineRequestsTotal.WithLabelValues(string(reply.Agent), "success").Inc()
	writeJSON(w, http.StatusOK, chatResponse{
		Text:    reply.Text,
		Sources: sources,
		Agent:   string(reply.Agent),
		Latency: reply.LatencyMS,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, message)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			if errors.Is(err, domain.ErrEmptyQuery) {
				metrics.PipelineRequestsTotal.WithLabelValues("", "rejected").Inc()
			}
			return
		}
	}

	// Anything else is a pipeline failure. The cause stays in the server
	// log; the client sees one generic message.
	s.logger.Error("pipeline failed", zap.Error(err))
	metrics.PipelineRequestsTotal.WithLabelValues("", "error").Inc()
	writeError(w, http.StatusInternalServerError, msgPipelineFailure)
}
