// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/DubjamMusic/hustlecodex/internal/domain/model"
	"github.com/DubjamMusic/hustlecodex/internal/orchestrator"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ExecuteDirective runs one full competition cycle.
	ExecuteDirective(ctx context.Context, req orchestrator.Request) (orchestrator.Result, error)

	// Execution retrieves a past execution record by id.
	Execution(ctx context.Context, executionID string) (model.ExecutionRecord, error)

	// Leaderboard assembles all periods for all competing teams.
	Leaderboard(ctx context.Context) (model.Leaderboard, error)

	// ResetScores wipes stats for a period or for "all".
	ResetScores(ctx context.Context, period string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	directivesHandler *DirectivesHandler
	executionsHandler *ExecutionsHandler
	boardHandler      *LeaderboardHandler
	adminHandler      *AdminHandler
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithAdminCode sets the code required by the reset endpoint. An empty
// code disables resets entirely.
func WithAdminCode(code string) ServerOption {
	return func(s *Server) {
		s.adminHandler.code = code
	}
}

// WithMaxDirectiveChars caps the accepted directive length; longer
// directives are truncated, not rejected.
func WithMaxDirectiveChars(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.directivesHandler.maxChars = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		directivesHandler: NewDirectivesHandler(deps),
		executionsHandler: NewExecutionsHandler(deps),
		boardHandler:      NewLeaderboardHandler(deps),
		adminHandler:      NewAdminHandler(deps),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/directives", MetricsMiddleware(s.directivesHandler.HandlePostDirective, "directives"))
	mux.HandleFunc("/executions/", MetricsMiddleware(s.executionsHandler.HandleGetExecution, "executions"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.boardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/admin/reset", MetricsMiddleware(s.adminHandler.HandleReset, "admin_reset"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
