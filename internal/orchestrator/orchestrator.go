// Package orchestrator runs full competition cycles: team execution,
// validation, judgment, performance recording, and trace persistence.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/DubjamMusic/hustlecodex/internal/adapters/llm"
	"github.com/DubjamMusic/hustlecodex/internal/adapters/statestore"
	"github.com/DubjamMusic/hustlecodex/internal/domain/agent"
	"github.com/DubjamMusic/hustlecodex/internal/domain/model"
	"github.com/DubjamMusic/hustlecodex/internal/domain/moderator"
	"github.com/DubjamMusic/hustlecodex/internal/domain/ruleset"
	"github.com/DubjamMusic/hustlecodex/internal/tracker"
	"github.com/DubjamMusic/hustlecodex/pkg/logger"
	"github.com/DubjamMusic/hustlecodex/pkg/metrics"
)

const (
	// DefaultRuleset is validated against when a request names none.
	DefaultRuleset = "default-rules"

	defaultRetention = 24 * time.Hour

	historyKeyPrefix = "history:directives:"
)

// Request parameterizes one cycle.
type Request struct {
	Directive       string
	RulesetName     string
	CompetitionMode bool
	IncludeUltimate bool
}

// Result is everything one cycle produced.
type Result struct {
	ExecutionID string                                  `json:"execution_id"`
	Outputs     map[model.Team][]model.AgentOutput      `json:"outputs,omitempty"`
	Validations map[model.Team][]model.ValidationReport `json:"validations"`
	Judgment    model.ModeratorJudgment                 `json:"judgment"`
	CreatedAt   time.Time                               `json:"created_at"`
}

// Orchestrator coordinates one cycle per ExecuteDirective call.
type Orchestrator struct {
	teams     map[model.Team][]*agent.Agent
	validator *ruleset.Engine
	moderator *moderator.Moderator
	tracker   *tracker.Tracker
	store     statestore.Store
	retention time.Duration
	now       func() time.Time
	log       logger.Logger
}

// Option applies a configuration option to the Orchestrator.
type Option func(*Orchestrator)

// WithRetention bounds how long execution records stay retrievable.
func WithRetention(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.retention = d
		}
	}
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// New builds an Orchestrator, instantiating every rostered agent
// against the given completer and prompt source.
func New(completer llm.Completer, prompts llm.PromptSource, validator *ruleset.Engine, mod *moderator.Moderator, trk *tracker.Tracker, store statestore.Store, opts ...Option) *Orchestrator {
	teams := make(map[model.Team][]*agent.Agent)
	for team, specs := range agent.Roster() {
		members := make([]*agent.Agent, 0, len(specs))
		for _, spec := range specs {
			members = append(members, agent.New(spec, completer, prompts))
		}
		teams[team] = members
	}

	o := &Orchestrator{
		teams:     teams,
		validator: validator,
		moderator: mod,
		tracker:   trk,
		store:     store,
		retention: defaultRetention,
		now:       time.Now,
		log:       logger.Get().Named("orchestrator"),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// ExecuteDirective runs one full cycle. Teams run concurrently with
// each other while agents within a team run in order, each seeing its
// predecessors' outputs. Any agent failure during the scored run fails
// the whole cycle.
func (o *Orchestrator) ExecuteDirective(ctx context.Context, req Request) (Result, error) {
	req.Directive = strings.TrimSpace(req.Directive)
	if req.Directive == "" {
		return Result{}, ErrEmptyDirective
	}
	if req.RulesetName == "" {
		req.RulesetName = DefaultRuleset
	}

	executionID := o.newExecutionID()
	started := o.now()

	o.log.Info(ctx, "starting execution",
		logger.String("execution_id", executionID),
		logger.Bool("competition_mode", req.CompetitionMode),
		logger.Bool("include_ultimate", req.IncludeUltimate),
	)

	o.warmUp(ctx)

	activeTeams := model.CompetingTeams()
	if req.IncludeUltimate {
		activeTeams = append(activeTeams, model.TeamUltimate)
	}

	outputs, err := o.runTeams(ctx, activeTeams, req.Directive)
	if err != nil {
		metrics.RecordCycleError()
		return Result{}, fmt.Errorf("team execution: %w", err)
	}

	validations := o.validateAll(ctx, outputs, req.RulesetName)

	streak := o.currentStreak(ctx)

	judgment := o.moderator.Judge(ctx,
		outputs[model.TeamAlpha], outputs[model.TeamOmega],
		validations[model.TeamAlpha], validations[model.TeamOmega],
		streak,
	)

	if req.CompetitionMode {
		if err := o.recordOutcome(ctx, judgment); err != nil {
			metrics.RecordCycleError()
			return Result{}, fmt.Errorf("record outcome: %w", err)
		}
	}

	result := Result{
		ExecutionID: executionID,
		Outputs:     outputs,
		Validations: validations,
		Judgment:    judgment,
		CreatedAt:   o.now(),
	}

	if err := o.persist(ctx, result); err != nil {
		metrics.RecordCycleError()
		return Result{}, fmt.Errorf("persist execution: %w", err)
	}

	metrics.RecordCycle()
	metrics.RecordCycleDuration(float64(o.now().Sub(started).Milliseconds()))

	o.log.Info(ctx, "execution complete",
		logger.String("execution_id", executionID),
		logger.String("winner", string(judgment.WinningTeam)),
		logger.Duration("elapsed", o.now().Sub(started)),
	)

	return result, nil
}

// warmUp primes prompt caches before every scored run by executing all
// agents on an empty directive. Failures are swallowed; the scored run
// must not depend on warm-up success.
func (o *Orchestrator) warmUp(ctx context.Context) {
	var wg sync.WaitGroup
	for _, members := range o.teams {
		for _, a := range members {
			wg.Add(1)
			go func(a *agent.Agent) {
				defer wg.Done()
				_, _ = a.Execute(ctx, "", agent.Context{})
			}(a)
		}
	}
	wg.Wait()
	o.log.Debug(ctx, "warm-up pass complete")
}

func (o *Orchestrator) runTeams(ctx context.Context, teams []model.Team, directive string) (map[model.Team][]model.AgentOutput, error) {
	var mu sync.Mutex
	outputs := make(map[model.Team][]model.AgentOutput, len(teams))

	g, gctx := errgroup.WithContext(ctx)
	for _, team := range teams {
		team := team
		g.Go(func() error {
			teamOutputs, err := o.runTeam(gctx, team, directive)
			if err != nil {
				return err
			}
			mu.Lock()
			outputs[team] = teamOutputs
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outputs, nil
}

// runTeam executes the team's agents in roster order; agent N sees the
// outputs of agents 1..N-1 and nothing else.
func (o *Orchestrator) runTeam(ctx context.Context, team model.Team, directive string) ([]model.AgentOutput, error) {
	members := o.teams[team]
	outputs := make([]model.AgentOutput, 0, len(members))

	for _, a := range members {
		out, err := a.Execute(ctx, directive, agent.Context{
			Directive:       directive,
			PreviousOutputs: outputs,
			Iteration:       1,
		})
		if err != nil {
			return nil, fmt.Errorf("agent %s (%s): %w", a.Name(), team, err)
		}
		outputs = append(outputs, out)
	}

	return outputs, nil
}

// validateAll checks every output across all teams concurrently.
// Validation never fails a cycle; per-rule errors surface as failing
// results inside the reports.
func (o *Orchestrator) validateAll(ctx context.Context, outputs map[model.Team][]model.AgentOutput, rulesetName string) map[model.Team][]model.ValidationReport {
	var mu sync.Mutex
	var wg sync.WaitGroup
	validations := make(map[model.Team][]model.ValidationReport, len(outputs))

	for team, teamOutputs := range outputs {
		reports := make([]model.ValidationReport, len(teamOutputs))
		validations[team] = reports

		for i, out := range teamOutputs {
			wg.Add(1)
			go func(i int, out model.AgentOutput, reports []model.ValidationReport) {
				defer wg.Done()
				report := o.validator.Validate(ctx, out, rulesetName)
				mu.Lock()
				reports[i] = report
				mu.Unlock()
			}(i, out, reports)
		}
	}
	wg.Wait()

	return validations
}

// currentStreak reads the daily win streaks as a praise hint. Read
// failures are absorbed; the hint is optional.
func (o *Orchestrator) currentStreak(ctx context.Context) *model.Streak {
	for _, team := range model.CompetingTeams() {
		stats, err := o.tracker.GetTeamStats(ctx, team, model.PeriodDaily)
		if err != nil {
			o.log.Warn(ctx, "streak lookup failed", logger.Error(err))
			return nil
		}
		if stats.WinStreak > 0 {
			return &model.Streak{Team: team, Count: stats.WinStreak}
		}
	}
	return nil
}

func (o *Orchestrator) recordOutcome(ctx context.Context, judgment model.ModeratorJudgment) error {
	if err := o.tracker.RecordPerformance(ctx, model.TeamAlpha, judgment.AlphaPerformance, model.PeriodDaily); err != nil {
		return err
	}
	if err := o.tracker.RecordPerformance(ctx, model.TeamOmega, judgment.OmegaPerformance, model.PeriodDaily); err != nil {
		return err
	}
	return o.tracker.RecordWin(ctx, judgment.WinningTeam)
}

func (o *Orchestrator) persist(ctx context.Context, result Result) error {
	record := model.ExecutionRecord{
		ExecutionID: result.ExecutionID,
		Outputs:     result.Outputs,
		Validations: result.Validations,
		Judgment:    result.Judgment,
		CreatedAt:   result.CreatedAt,
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal execution record: %w", err)
	}

	return o.store.Set(ctx, historyKeyPrefix+result.ExecutionID, string(raw), o.retention)
}

// Execution retrieves a past execution record by id. Expired or unknown
// ids return ErrNotFound.
func (o *Orchestrator) Execution(ctx context.Context, executionID string) (model.ExecutionRecord, error) {
	raw, ok, err := o.store.Get(ctx, historyKeyPrefix+executionID)
	if err != nil {
		return model.ExecutionRecord{}, fmt.Errorf("load execution: %w", err)
	}
	if !ok {
		return model.ExecutionRecord{}, fmt.Errorf("%w: %s", ErrNotFound, executionID)
	}

	var record model.ExecutionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return model.ExecutionRecord{}, fmt.Errorf("decode execution record: %w", err)
	}

	return record, nil
}

// Leaderboard delegates to the tracker.
func (o *Orchestrator) Leaderboard(ctx context.Context) (model.Leaderboard, error) {
	return o.tracker.Leaderboard(ctx)
}

// ResetScores delegates to the tracker. Authorization is the caller's
// concern.
func (o *Orchestrator) ResetScores(ctx context.Context, period string) error {
	return o.tracker.ResetStats(ctx, period)
}

func (o *Orchestrator) newExecutionID() string {
	return fmt.Sprintf("exec_%d_%s", o.now().UnixMilli(), uuid.NewString()[:8])
}
