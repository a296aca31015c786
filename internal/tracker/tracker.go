// Package tracker maintains period-scoped team statistics and raw
// performance records on top of the state store.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/DubjamMusic/hustlecodex/internal/adapters/statestore"
	"github.com/DubjamMusic/hustlecodex/internal/domain/model"
	"github.com/DubjamMusic/hustlecodex/pkg/logger"
	"github.com/DubjamMusic/hustlecodex/pkg/metrics"
)

// PeriodAll expands a reset to every period.
const PeriodAll = "all"

// record is one performance snapshot appended to the period list.
type record struct {
	Team          model.Team `json:"team"`
	Quality       float64    `json:"quality_score"`
	Speed         float64    `json:"speed_score"`
	Collaboration float64    `json:"collaboration_score"`
	Innovation    float64    `json:"innovation_score"`
	Total         float64    `json:"total_score"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Tracker records performances and win/loss/tie outcomes. All writes
// are serialized through one mutex so that the two per-team updates of
// a single judgment never interleave with another cycle's.
type Tracker struct {
	store statestore.Store
	now   func() time.Time
	log   logger.Logger

	mu sync.Mutex
}

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// New creates a Tracker over the given store.
func New(store statestore.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		now:   time.Now,
		log:   logger.Get().Named("tracker"),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// RecordPerformance appends a performance snapshot to the period list
// and folds its total into the team's running stats.
func (t *Tracker) RecordPerformance(ctx context.Context, team model.Team, perf model.TeamPerformance, period model.Period) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec := record{
		Team:          team,
		Quality:       perf.Quality,
		Speed:         perf.Speed,
		Collaboration: perf.Collaboration,
		Innovation:    perf.Innovation,
		Total:         perf.Total,
		CreatedAt:     t.now(),
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal performance record: %w", err)
	}

	if err := t.store.AddToList(ctx, t.recordsKey(period), string(raw)); err != nil {
		return fmt.Errorf("append performance record: %w", err)
	}

	stats, err := t.loadStats(ctx, team, period)
	if err != nil {
		return err
	}

	stats.TotalExecutions++
	stats.AverageScore = (stats.AverageScore*float64(stats.TotalExecutions-1) + perf.Total) / float64(stats.TotalExecutions)
	if perf.Total > stats.BestScore {
		stats.BestScore = perf.Total
	}
	stats.LastUpdated = t.now()

	return t.saveStats(ctx, team, period, stats)
}

// RecordWin applies one judgment's outcome to both competing teams
// across all three periods. A win extends the streak; a loss or a tie
// resets it.
func (t *Tracker) RecordWin(ctx context.Context, winner model.Team) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, period := range model.Periods() {
		for _, team := range model.CompetingTeams() {
			if err := t.applyOutcome(ctx, team, period, winner); err != nil {
				return err
			}
		}
	}

	tag := string(winner)
	metrics.RecordJudgment(tag)

	return nil
}

func (t *Tracker) applyOutcome(ctx context.Context, team model.Team, period model.Period, winner model.Team) error {
	stats, err := t.loadStats(ctx, team, period)
	if err != nil {
		return err
	}

	switch {
	case winner == team:
		stats.Wins++
		stats.WinStreak++
	case winner == model.TeamTie:
		stats.Ties++
		stats.WinStreak = 0
	default:
		stats.Losses++
		stats.WinStreak = 0
	}
	stats.LastUpdated = t.now()

	return t.saveStats(ctx, team, period, stats)
}

// GetTeamStats returns the team's stats for the current period key, or
// a zeroed default when none exist yet. The default carries a zero
// LastUpdated so repeated reads of an absent record are identical.
func (t *Tracker) GetTeamStats(ctx context.Context, team model.Team, period model.Period) (model.TeamStats, error) {
	return t.loadStats(ctx, team, period)
}

// Leaderboard assembles all three periods for all competing teams. The
// MVP list is reserved for individual-agent tracking and is empty.
func (t *Tracker) Leaderboard(ctx context.Context) (model.Leaderboard, error) {
	board := model.Leaderboard{
		Daily:       make(map[model.Team]model.TeamStats),
		Monthly:     make(map[model.Team]model.TeamStats),
		Yearly:      make(map[model.Team]model.TeamStats),
		MVPAgents:   []model.AgentRanking{},
		LastUpdated: t.now(),
	}

	targets := map[model.Period]map[model.Team]model.TeamStats{
		model.PeriodDaily:   board.Daily,
		model.PeriodMonthly: board.Monthly,
		model.PeriodYearly:  board.Yearly,
	}

	for period, target := range targets {
		for _, team := range model.CompetingTeams() {
			stats, err := t.loadStats(ctx, team, period)
			if err != nil {
				return model.Leaderboard{}, err
			}
			target[team] = stats
		}
	}

	return board, nil
}

// ResetStats deletes the stats keys and the raw record list for the
// targeted period, or for every period when given PeriodAll.
func (t *Tracker) ResetStats(ctx context.Context, period string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	periods := []model.Period{model.Period(period)}
	if period == PeriodAll {
		periods = model.Periods()
	}

	for _, p := range periods {
		if !model.ValidPeriod(p) {
			return fmt.Errorf("%w: %q", ErrInvalidPeriod, p)
		}

		for _, team := range model.CompetingTeams() {
			if err := t.store.Delete(ctx, t.statsKey(team, p)); err != nil {
				return fmt.Errorf("delete stats for %s/%s: %w", team, p, err)
			}
		}
		if err := t.store.Delete(ctx, t.recordsKey(p)); err != nil {
			return fmt.Errorf("delete records for %s: %w", p, err)
		}

		t.log.Info(ctx, "stats reset", logger.String("period", string(p)))
	}

	return nil
}

func (t *Tracker) loadStats(ctx context.Context, team model.Team, period model.Period) (model.TeamStats, error) {
	raw, ok, err := t.store.Get(ctx, t.statsKey(team, period))
	if err != nil {
		return model.TeamStats{}, fmt.Errorf("load stats: %w", err)
	}
	if !ok {
		return model.TeamStats{Team: team}, nil
	}

	var stats model.TeamStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return model.TeamStats{}, fmt.Errorf("decode stats: %w", err)
	}

	return stats, nil
}

func (t *Tracker) saveStats(ctx context.Context, team model.Team, period model.Period, stats model.TeamStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	if err := t.store.Set(ctx, t.statsKey(team, period), string(raw), 0); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}

	return nil
}

// statsKey derives the period-scoped stats key; stats roll over
// naturally as the date suffix changes.
func (t *Tracker) statsKey(team model.Team, period model.Period) string {
	return fmt.Sprintf("performance:%s:%s:%s", period, team, t.periodSuffix(period))
}

func (t *Tracker) recordsKey(period model.Period) string {
	return fmt.Sprintf("performance:records:%s:%s", period, t.periodSuffix(period))
}

func (t *Tracker) periodSuffix(period model.Period) string {
	now := t.now().UTC()
	switch period {
	case model.PeriodDaily:
		return now.Format("2006-01-02")
	case model.PeriodMonthly:
		return now.Format("2006-01")
	case model.PeriodYearly:
		return now.Format("2006")
	default:
		return now.Format("2006-01-02")
	}
}
