// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/DubjamMusic/hustlecodex/internal/adapters/llm"
	"github.com/DubjamMusic/hustlecodex/internal/adapters/statestore"
	"github.com/DubjamMusic/hustlecodex/internal/domain/model"
	"github.com/DubjamMusic/hustlecodex/internal/domain/moderator"
	"github.com/DubjamMusic/hustlecodex/internal/domain/ruleset"
	"github.com/DubjamMusic/hustlecodex/internal/domain/scoring"
	"github.com/DubjamMusic/hustlecodex/internal/orchestrator"
	"github.com/DubjamMusic/hustlecodex/internal/tracker"
	"github.com/DubjamMusic/hustlecodex/pkg/logger"
)

// Service implements the API dependencies for the competition engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	store        statestore.Store
	completer    llm.Completer
	prompts      llm.PromptSource
	validator    *ruleset.Engine
	moderator    *moderator.Moderator
	tracker      *tracker.Tracker
	orchestrator *orchestrator.Orchestrator

	// Configuration
	configDir       string
	retention       time.Duration
	mockMinLatency  time.Duration
	mockMaxLatency  time.Duration
	defaultRuleset  string

	// State
	started    bool
	executions int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConfigDir points the service at the external configuration tree.
func WithConfigDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.configDir = dir
		}
	}
}

// WithRetention bounds execution-record retention.
func WithRetention(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.retention = d
		}
	}
}

// WithMockLatencyRange bounds the mock backend's simulated latency.
func WithMockLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(s *Service) {
		if minLatency >= 0 && maxLatency >= minLatency {
			s.mockMinLatency = minLatency
			s.mockMaxLatency = maxLatency
		}
	}
}

// WithDefaultRuleset names the ruleset used when a request omits one.
func WithDefaultRuleset(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.defaultRuleset = name
		}
	}
}

// WithCompleter swaps the text-generation backend.
func WithCompleter(c llm.Completer) Option {
	return func(s *Service) {
		if c != nil {
			s.completer = c
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		configDir:      "config",
		retention:      24 * time.Hour,
		mockMinLatency: 500 * time.Millisecond,
		mockMaxLatency: 2 * time.Second,
		defaultRuleset: orchestrator.DefaultRuleset,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting competition engine...")

	s.store = statestore.NewMemoryStore(ctx)
	if s.completer == nil {
		s.completer = llm.NewMockCompleter(
			llm.WithLatencyRange(s.mockMinLatency, s.mockMaxLatency),
		)
	}
	s.prompts = llm.NewFilePromptSource(s.configDir)
	s.validator = ruleset.NewEngine(
		ruleset.WithConfigDir(s.configDir),
	)
	s.moderator = moderator.New(
		moderator.WithScorer(scoring.NewScorer(
			scoring.WithConfigDir(s.configDir),
		)),
		moderator.WithConfigDir(s.configDir),
	)
	s.tracker = tracker.New(s.store)
	s.orchestrator = orchestrator.New(
		s.completer, s.prompts, s.validator, s.moderator, s.tracker, s.store,
		orchestrator.WithRetention(s.retention),
	)

	s.started = true
	s.logger.Info(ctx, "competition engine started",
		logger.String("config_dir", s.configDir),
		logger.Duration("retention", s.retention),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping competition engine...")

	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "competition engine stopped")
}

// ExecuteDirective runs one full competition cycle.
func (s *Service) ExecuteDirective(ctx context.Context, req orchestrator.Request) (orchestrator.Result, error) {
	if req.RulesetName == "" {
		req.RulesetName = s.defaultRuleset
	}

	result, err := s.orchestrator.ExecuteDirective(ctx, req)
	if err != nil {
		return orchestrator.Result{}, err
	}

	s.mu.Lock()
	s.executions++
	s.mu.Unlock()

	return result, nil
}

// Execution retrieves a past execution record by id.
func (s *Service) Execution(ctx context.Context, executionID string) (model.ExecutionRecord, error) {
	return s.orchestrator.Execution(ctx, executionID)
}

// Leaderboard assembles all periods for all competing teams.
func (s *Service) Leaderboard(ctx context.Context) (model.Leaderboard, error) {
	return s.orchestrator.Leaderboard(ctx)
}

// TeamStats returns one team's stats for one period.
func (s *Service) TeamStats(ctx context.Context, team model.Team, period model.Period) (model.TeamStats, error) {
	return s.tracker.GetTeamStats(ctx, team, period)
}

// ResetScores wipes stats for a period. Authorization happens at the
// API boundary.
func (s *Service) ResetScores(ctx context.Context, period string) error {
	return s.orchestrator.ResetScores(ctx, period)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":         s.started,
		"executions":      s.executions,
		"config_dir":      s.configDir,
		"retention_hours": s.retention.Hours(),
		"default_ruleset": s.defaultRuleset,
	}
}
