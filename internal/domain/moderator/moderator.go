// Package moderator judges one complete cycle: it scores both teams,
// picks a winner, writes the synthesis and praise narratives, and
// decides whether execution should continue.
package moderator

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/DubjamMusic/hustlecodex/internal/domain/model"
	"github.com/DubjamMusic/hustlecodex/internal/domain/scoring"
	"github.com/DubjamMusic/hustlecodex/pkg/logger"
)

const (
	decisiveMargin = 15.0

	confidenceValidationWeight = 0.7
	confidenceDiffMultiplier   = 2.0
	confidenceDiffCap          = 30.0
)

// signature strengths used in praise placeholder substitution.
var teamStrengths = map[model.Team]string{
	model.TeamAlpha: "balanced strategy",
	model.TeamOmega: "aggressive optimization",
}

// Moderator produces the ModeratorJudgment for a cycle.
type Moderator struct {
	scorer    *scoring.Scorer
	templates Templates
	now       func() time.Time
	log       logger.Logger
}

// Option applies a configuration option to the Moderator.
type Option func(*Moderator)

// WithScorer overrides the default scorer.
func WithScorer(s *scoring.Scorer) Option {
	return func(m *Moderator) {
		if s != nil {
			m.scorer = s
		}
	}
}

// WithConfigDir loads praise templates from
// <dir>/competition/praise-templates.yaml, keeping the built-in set on
// any load failure.
func WithConfigDir(dir string) Option {
	return func(m *Moderator) {
		t, err := loadTemplates(dir)
		if err != nil {
			m.log.Warn(context.Background(), "praise templates load failed; using defaults", logger.Error(err))
			return
		}
		m.templates = t
	}
}

// WithTemplates sets the praise templates directly.
func WithTemplates(t Templates) Option {
	return func(m *Moderator) {
		m.templates = t
	}
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Moderator) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a Moderator with default scorer and templates.
func New(opts ...Option) *Moderator {
	m := &Moderator{
		scorer:    scoring.NewScorer(),
		templates: defaultTemplates(),
		now:       time.Now,
		log:       logger.Get().Named("moderator"),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Judge scores both teams, compares them, and assembles the full
// judgment. The streak hint, when present and matching the winner,
// adds a milestone line to the praise message.
func (m *Moderator) Judge(ctx context.Context, alphaOutputs, omegaOutputs []model.AgentOutput, alphaValidations, omegaValidations []model.ValidationReport, streak *model.Streak) model.ModeratorJudgment {
	alphaPerf := m.scorer.TeamPerformance(model.TeamAlpha, alphaOutputs, alphaValidations)
	omegaPerf := m.scorer.TeamPerformance(model.TeamOmega, omegaOutputs, omegaValidations)

	comparison := m.scorer.Compare(alphaPerf, omegaPerf)

	judgment := model.ModeratorJudgment{
		WinningTeam:      comparison.Winner,
		Synthesis:        m.synthesis(comparison.Winner),
		AlphaPerformance: alphaPerf,
		OmegaPerformance: omegaPerf,
		Reasoning:        comparison.Reasoning,
		PraiseMessage:    m.praise(comparison.Winner, alphaPerf.Total, omegaPerf.Total, streak),
		ShouldContinue:   shouldContinue(alphaValidations, omegaValidations),
		Confidence:       confidence(alphaPerf, omegaPerf, alphaValidations, omegaValidations),
		CreatedAt:        m.now(),
	}

	m.log.Debug(ctx, "judgment complete",
		logger.String("winner", string(judgment.WinningTeam)),
		logger.Float64("alpha_score", alphaPerf.Total),
		logger.Float64("omega_score", omegaPerf.Total),
		logger.Float64("confidence", judgment.Confidence),
	)

	return judgment
}

func (m *Moderator) synthesis(winner model.Team) string {
	var sb strings.Builder
	sb.WriteString("## Moderator Synthesis\n\n")

	if winner == model.TeamTie {
		sb.WriteString("Both teams delivered outstanding strategic analyses with remarkable parity. ")
		sb.WriteString("The synthesis combines the best insights from both approaches:\n\n")
	} else {
		fmt.Fprintf(&sb, "%s delivered the superior strategic framework. ", displayName(winner))
		sb.WriteString("However, valuable insights from both teams merit consideration:\n\n")
	}

	sb.WriteString("### Key Strategic Recommendations:\n")
	sb.WriteString("1. Leverage data-driven insights to identify high-value opportunities\n")
	sb.WriteString("2. Implement comprehensive risk management with contingency planning\n")
	sb.WriteString("3. Balance aggressive execution with defensive positioning\n")
	sb.WriteString("4. Establish clear metrics and monitoring systems\n")
	sb.WriteString("5. Maintain flexibility for adaptive response\n\n")

	sb.WriteString("### Integrated Approach:\n")
	sb.WriteString("Combining Team Alpha's methodical risk management with Team Omega's aggressive optimization ")
	sb.WriteString("yields a robust strategy that maximizes opportunity while minimizing exposure to catastrophic failure.\n")

	return sb.String()
}

func (m *Moderator) praise(winner model.Team, alphaScore, omegaScore float64, streak *model.Streak) string {
	if winner == model.TeamTie {
		return strings.Replace(m.templates.Tie[0], "{score}", fmt.Sprintf("%.1f", alphaScore), 1)
	}

	margin := math.Abs(alphaScore - omegaScore)
	winningScore, losingScore := alphaScore, omegaScore
	if winner == model.TeamOmega {
		winningScore, losingScore = omegaScore, alphaScore
	}

	bucket := m.templates.Victory.Close
	if margin > decisiveMargin {
		bucket = m.templates.Victory.Decisive
	}

	r := strings.NewReplacer(
		"{team}", displayName(winner),
		"{margin}", fmt.Sprintf("%.1f", margin),
		"{winning_score}", fmt.Sprintf("%.1f", winningScore),
		"{losing_score}", fmt.Sprintf("%.1f", losingScore),
		"{strength}", teamStrengths[winner],
	)
	praise := r.Replace(bucket[0])

	if streak != nil && streak.Team == winner {
		if milestone, ok := m.templates.StreakMilestones[streak.Count]; ok {
			praise += "\n" + strings.ReplaceAll(milestone, "{team}", displayName(winner))
		}
	}

	return praise
}

// shouldContinue is false when any report carries a failed
// error-severity rule.
func shouldContinue(reportSets ...[]model.ValidationReport) bool {
	for _, reports := range reportSets {
		for _, report := range reports {
			if report.HasCriticalFailure() {
				return false
			}
		}
	}
	return true
}

// confidence blends the mean validation score with the score gap: a
// wider gap means a more certain winner.
func confidence(alphaPerf, omegaPerf model.TeamPerformance, alphaValidations, omegaValidations []model.ValidationReport) float64 {
	validationScore := (meanOverall(alphaValidations) + meanOverall(omegaValidations)) / 2

	diff := math.Abs(alphaPerf.Total - omegaPerf.Total)
	diffConfidence := math.Min(diff*confidenceDiffMultiplier, confidenceDiffCap)

	return math.Min(100, validationScore*confidenceValidationWeight+diffConfidence)
}

func meanOverall(reports []model.ValidationReport) float64 {
	if len(reports) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reports {
		sum += r.OverallScore
	}
	return sum / float64(len(reports))
}

func displayName(t model.Team) string {
	switch t {
	case model.TeamAlpha:
		return "Team Alpha"
	case model.TeamOmega:
		return "Team Omega"
	case model.TeamUltimate:
		return "Team Ultimate"
	default:
		return "Team"
	}
}
