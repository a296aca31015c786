// Package scoring converts raw outputs and validation reports into
// team performance aggregates and compares them.
package scoring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/DubjamMusic/hustlecodex/internal/domain/model"
	"github.com/DubjamMusic/hustlecodex/pkg/logger"
)

// Scoring formula constants.
const (
	qualityValidationWeight = 0.6
	qualityConfidenceWeight = 0.4
	speedPenaltyDivisorMs   = 100.0
	strengthThreshold       = 85.0
	improvementThreshold    = 70.0
	tieThreshold            = 2.0
	differentiatorThreshold = 5.0
)

// Scorer computes TeamPerformance values under configured weights.
type Scorer struct {
	weights  Weights
	assessor Assessor
	log      logger.Logger
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights sets the component weights directly.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// WithConfigDir loads weights from <dir>/competition/scoring-weights.yaml,
// keeping the defaults on any load failure.
func WithConfigDir(dir string) Option {
	return func(s *Scorer) {
		w, err := loadWeights(dir)
		if err != nil {
			s.log.Warn(context.Background(), "scoring weights load failed; using defaults", logger.Error(err))
			return
		}
		s.weights = w
	}
}

// WithAssessor swaps the collaboration/innovation strategy.
func WithAssessor(a Assessor) Option {
	return func(s *Scorer) {
		if a != nil {
			s.assessor = a
		}
	}
}

// NewScorer creates a scorer with default weights and the heuristic
// assessor.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		weights:  DefaultWeights(),
		assessor: NewHeuristicAssessor(),
		log:      logger.Get().Named("scoring"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Weights returns the weights in effect.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// TeamPerformance derives the four component scores and their weighted
// total for one team's cycle. All components are clamped to [0,100], so
// the total is a true convex combination.
func (s *Scorer) TeamPerformance(team model.Team, outputs []model.AgentOutput, validations []model.ValidationReport) model.TeamPerformance {
	if len(outputs) == 0 {
		return model.TeamPerformance{Team: team, Strengths: []string{}, Improvements: []string{}}
	}

	var validationSum float64
	for _, v := range validations {
		validationSum += v.OverallScore
	}
	avgValidation := 0.0
	if len(validations) > 0 {
		avgValidation = validationSum / float64(len(validations))
	}

	var confidenceSum, timeSumMs float64
	for _, out := range outputs {
		confidenceSum += float64(out.Confidence)
		timeSumMs += float64(out.ProcessingTime.Milliseconds())
	}
	avgConfidence := confidenceSum / float64(len(outputs))
	avgTimeMs := timeSumMs / float64(len(outputs))

	quality := clamp(qualityValidationWeight*avgValidation + qualityConfidenceWeight*avgConfidence)
	speed := clamp(100 - avgTimeMs/speedPenaltyDivisorMs)
	collaboration := clamp(s.assessor.Collaboration(outputs))
	innovation := clamp(s.assessor.Innovation(outputs))

	total := quality*s.weights.Quality +
		speed*s.weights.Speed +
		collaboration*s.weights.Collaboration +
		innovation*s.weights.Innovation

	components := orderedComponents(quality, speed, collaboration, innovation)

	return model.TeamPerformance{
		Team:          team,
		Quality:       quality,
		Speed:         speed,
		Collaboration: collaboration,
		Innovation:    innovation,
		Total:         total,
		Strengths:     strengths(components),
		Improvements:  improvements(components),
	}
}

// component pairs a display name with its score.
type component struct {
	name  string
	score float64
}

func orderedComponents(quality, speed, collaboration, innovation float64) []component {
	return []component{
		{name: "quality", score: quality},
		{name: "speed", score: speed},
		{name: "collaboration", score: collaboration},
		{name: "innovation", score: innovation},
	}
}

// strengths labels every component at or above the strength threshold;
// when none qualify, the single highest component is labeled instead.
func strengths(components []component) []string {
	out := []string{}
	for _, c := range components {
		if c.score >= strengthThreshold {
			out = append(out, "Excellent "+c.name)
		}
	}
	if len(out) == 0 {
		best := components[0]
		for _, c := range components[1:] {
			if c.score > best.score {
				best = c
			}
		}
		out = append(out, "Strong "+best.name)
	}
	return out
}

func improvements(components []component) []string {
	out := []string{}
	for _, c := range components {
		if c.score < improvementThreshold {
			out = append(out, "Enhance "+c.name)
		}
	}
	return out
}

// Comparison is the outcome of pitting two performances against each
// other.
type Comparison struct {
	Winner     model.Team // TeamTie when neither side clears the threshold
	AlphaScore float64
	OmegaScore float64
	Reasoning  string
}

// Compare picks a winner with a tie threshold and builds the reasoning
// narrative: margin, key differentiators, winner strengths, loser
// improvement areas.
func (s *Scorer) Compare(a, b model.TeamPerformance) Comparison {
	diff := math.Abs(a.Total - b.Total)

	winner := model.TeamTie
	if diff >= tieThreshold {
		winner = a.Team
		if b.Total > a.Total {
			winner = b.Team
		}
	}

	return Comparison{
		Winner:     winner,
		AlphaScore: a.Total,
		OmegaScore: b.Total,
		Reasoning:  reasoning(a, b, winner),
	}
}

func teamLabel(t model.Team) string {
	if t == "" {
		return "Team"
	}
	return "Team " + strings.ToUpper(string(t[:1])) + string(t[1:])
}

func reasoning(a, b model.TeamPerformance, winner model.Team) string {
	if winner == model.TeamTie {
		return fmt.Sprintf(
			"Both teams delivered exceptional and nearly identical performance. %s scored %.1f while %s scored %.1f. The competition was incredibly close across all dimensions.",
			teamLabel(a.Team), a.Total, teamLabel(b.Team), b.Total,
		)
	}

	winPerf, losePerf := a, b
	if winner == b.Team {
		winPerf, losePerf = b, a
	}
	margin := winPerf.Total - losePerf.Total

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s wins with a score of %.1f vs %.1f (margin: %.1f points).\n\n",
		teamLabel(winner), winPerf.Total, losePerf.Total, margin)

	type differentiator struct {
		name   string
		diff   float64
		leader model.Team
	}

	pairs := []struct {
		name string
		a, b float64
	}{
		{"Quality", a.Quality, b.Quality},
		{"Speed", a.Speed, b.Speed},
		{"Collaboration", a.Collaboration, b.Collaboration},
		{"Innovation", a.Innovation, b.Innovation},
	}

	diffs := make([]differentiator, 0, len(pairs))
	for _, p := range pairs {
		d := differentiator{name: p.name, diff: math.Abs(p.a - p.b), leader: a.Team}
		if p.b > p.a {
			d.leader = b.Team
		}
		if d.diff > differentiatorThreshold {
			diffs = append(diffs, d)
		}
	}
	sort.Slice(diffs, func(i, j int) bool { return diffs[i].diff > diffs[j].diff })

	if len(diffs) > 0 {
		sb.WriteString("Key differentiators:\n")
		for _, d := range diffs {
			fmt.Fprintf(&sb, "- **%s**: %s led by %.1f points\n", d.name, teamLabel(d.leader), d.diff)
		}
	}

	fmt.Fprintf(&sb, "\n**Winning Team Strengths**: %s\n", strings.Join(winPerf.Strengths, ", "))
	if len(losePerf.Improvements) > 0 {
		fmt.Fprintf(&sb, "**Areas for Improvement (%s)**: %s", teamLabel(losePerf.Team), strings.Join(losePerf.Improvements, ", "))
	}

	return sb.String()
}
