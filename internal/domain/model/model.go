// Package model contains domain models passed between layers.
package model

import "time"

// Team identifies a competing roster of agents.
type Team string

// Fixed team identifiers. TeamUltimate is the exhibition roster and never
// enters the judged comparison.
const (
	TeamAlpha    Team = "alpha"
	TeamOmega    Team = "omega"
	TeamUltimate Team = "ultimate"

	// TeamTie marks a judgment where neither competing team won.
	TeamTie Team = "tie"
)

// CompetingTeams are the rosters the Moderator judges against each other.
func CompetingTeams() []Team {
	return []Team{TeamAlpha, TeamOmega}
}

// Period scopes rolling statistics.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Periods returns all statistic scopes in canonical order.
func Periods() []Period {
	return []Period{PeriodDaily, PeriodMonthly, PeriodYearly}
}

// ValidPeriod reports whether p names a known statistics scope.
func ValidPeriod(p Period) bool {
	switch p {
	case PeriodDaily, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Severity ranks validation rules. Only failed error-severity rules block
// a report from passing.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// OutputMeta carries the known metadata of one agent execution plus an
// open extension map for backend-specific values.
type OutputMeta struct {
	Model     string            `json:"model"`
	Tokens    int               `json:"tokens"`
	Iteration int               `json:"iteration"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// AgentOutput is the immutable result of one agent execution.
// Confidence is always within [0,100].
type AgentOutput struct {
	AgentName      string        `json:"agent_name"`
	Team           Team          `json:"team"`
	Content        string        `json:"content"`
	Confidence     int           `json:"confidence"`
	ProcessingTime time.Duration `json:"processing_time"`
	Meta           OutputMeta    `json:"meta"`
	CreatedAt      time.Time     `json:"created_at"`
}

// RuleResult records one rule's verdict over one output.
type RuleResult struct {
	RuleID     string   `json:"rule_id"`
	RuleName   string   `json:"rule_name"`
	Severity   Severity `json:"severity"`
	Passed     bool     `json:"passed"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// ValidationReport covers one agent output against one ruleset.
// Passed is false iff at least one error-severity rule failed.
type ValidationReport struct {
	Team         Team         `json:"team"`
	AgentName    string       `json:"agent_name"`
	Passed       bool         `json:"passed"`
	Results      []RuleResult `json:"results"`
	OverallScore float64      `json:"overall_score"`
	CreatedAt    time.Time    `json:"created_at"`
}

// HasCriticalFailure reports whether any error-severity rule failed.
func (r ValidationReport) HasCriticalFailure() bool {
	for _, res := range r.Results {
		if res.Severity == SeverityError && !res.Passed {
			return true
		}
	}
	return false
}

// TeamPerformance is the derived aggregate for one team in one cycle.
// All component scores are clamped to [0,100]; Total is their convex
// combination under the configured weights.
type TeamPerformance struct {
	Team          Team     `json:"team"`
	Quality       float64  `json:"quality_score"`
	Speed         float64  `json:"speed_score"`
	Collaboration float64  `json:"collaboration_score"`
	Innovation    float64  `json:"innovation_score"`
	Total         float64  `json:"total_score"`
	Strengths     []string `json:"strengths"`
	Improvements  []string `json:"improvements"`
}

// ModeratorJudgment is the outcome of one judging pass.
type ModeratorJudgment struct {
	WinningTeam      Team            `json:"winning_team"`
	Synthesis        string          `json:"synthesis"`
	AlphaPerformance TeamPerformance `json:"alpha_performance"`
	OmegaPerformance TeamPerformance `json:"omega_performance"`
	Reasoning        string          `json:"reasoning"`
	PraiseMessage    string          `json:"praise_message"`
	ShouldContinue   bool            `json:"should_continue"`
	Confidence       float64         `json:"confidence"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TeamStats holds period-scoped rolling counters for one team.
type TeamStats struct {
	Team            Team      `json:"team"`
	Wins            int       `json:"wins"`
	Losses          int       `json:"losses"`
	Ties            int       `json:"ties"`
	AverageScore    float64   `json:"average_score"`
	TotalExecutions int       `json:"total_executions"`
	WinStreak       int       `json:"win_streak"`
	BestScore       float64   `json:"best_score"`
	LastUpdated     time.Time `json:"last_updated"`
}

// AgentRanking is reserved for future per-agent MVP tracking.
type AgentRanking struct {
	AgentName string  `json:"agent_name"`
	Team      Team    `json:"team"`
	Score     float64 `json:"score"`
	Wins      int     `json:"wins"`
}

// Leaderboard assembles all periods for all competing teams.
type Leaderboard struct {
	Daily       map[Team]TeamStats `json:"daily"`
	Monthly     map[Team]TeamStats `json:"monthly"`
	Yearly      map[Team]TeamStats `json:"yearly"`
	MVPAgents   []AgentRanking     `json:"mvp_agents"`
	LastUpdated time.Time          `json:"last_updated"`
}

// Streak is the optional "current streak" hint handed to the Moderator.
type Streak struct {
	Team  Team `json:"team"`
	Count int  `json:"count"`
}

// ExecutionRecord is the write-once audit trail of one cycle.
type ExecutionRecord struct {
	ExecutionID string                      `json:"execution_id"`
	Outputs     map[Team][]AgentOutput      `json:"outputs"`
	Validations map[Team][]ValidationReport `json:"validations"`
	Judgment    ModeratorJudgment           `json:"judgment"`
	CreatedAt   time.Time                   `json:"created_at"`
}
