package scoring

import (
	"strings"

	"github.com/DubjamMusic/hustlecodex/internal/domain/model"
)

// Assessor scores collaboration and innovation from raw outputs. The
// default is a keyword/length proxy with no semantic grounding; it is an
// interface so a model-backed strategy can replace it wholesale.
type Assessor interface {
	Collaboration(outputs []model.AgentOutput) float64
	Innovation(outputs []model.AgentOutput) float64
}

// Heuristic assessor tuning constants.
const (
	collaborationBase  = 70.0
	collaborationBonus = 10.0
	innovationBase     = 60.0
	innovationKeyword  = 5.0
	innovationLenBonus = 10.0
	longContentChars   = 800
	veryLongChars      = 1200
)

var innovativeKeywords = []string{
	"novel", "innovative", "unique", "breakthrough", "unprecedented",
	"cutting-edge", "revolutionary", "groundbreaking", "unconventional",
}

// HeuristicAssessor is the default placeholder scoring strategy.
type HeuristicAssessor struct{}

// NewHeuristicAssessor returns the default assessor.
func NewHeuristicAssessor() *HeuristicAssessor {
	return &HeuristicAssessor{}
}

// Collaboration rewards outputs that build on the previous teammate's
// work: a reference to the prior agent's name, or connective language.
func (h *HeuristicAssessor) Collaboration(outputs []model.AgentOutput) float64 {
	score := collaborationBase
	for i := 1; i < len(outputs); i++ {
		content := strings.ToLower(outputs[i].Content)
		previous := strings.ToLower(outputs[i-1].AgentName)

		if strings.Contains(content, previous) ||
			strings.Contains(content, "analysis") ||
			strings.Contains(content, "based on") {
			score += collaborationBonus
		}
	}
	return clamp(score)
}

// Innovation counts innovative-language keywords and rewards depth via
// mean content length.
func (h *HeuristicAssessor) Innovation(outputs []model.AgentOutput) float64 {
	score := innovationBase

	totalLen := 0
	for _, out := range outputs {
		content := strings.ToLower(out.Content)
		for _, kw := range innovativeKeywords {
			score += innovationKeyword * float64(strings.Count(content, kw))
		}
		totalLen += len(out.Content)
	}

	if len(outputs) > 0 {
		avgLen := totalLen / len(outputs)
		if avgLen > longContentChars {
			score += innovationLenBonus
		}
		if avgLen > veryLongChars {
			score += innovationLenBonus
		}
	}
	return clamp(score)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
