package ruleset

import (
	"context"
	"strings"

	"github.com/DubjamMusic/hustlecodex/internal/domain/model"
)

// buildCheck maps a rule config to its executable check. Unknown rule ids
// always pass, matching the permissive behavior of the configuration
// format: an unrecognized rule documents intent without blocking.
func buildCheck(rc ruleConfig) CheckFunc {
	switch RuleType(rc.Type) {
	case TypeProgrammatic:
		return programmaticCheck(rc)
	case TypeHeuristic:
		return heuristicCheck(rc.ID)
	}
	return passCheck
}

func programmaticCheck(rc ruleConfig) CheckFunc {
	switch rc.ID {
	case "min_length":
		minChars := rc.MinChars
		if minChars <= 0 {
			minChars = defaultMinChars
		}
		return func(_ context.Context, out model.AgentOutput) (bool, error) {
			return len(out.Content) >= minChars, nil
		}
	case "confidence_present":
		return confidencePresent
	case "structured_format":
		return func(_ context.Context, out model.AgentOutput) (bool, error) {
			return strings.Contains(out.Content, "**") ||
				strings.Contains(out.Content, "##") ||
				strings.Contains(out.Content, "- "), nil
		}
	}
	return passCheck
}

// heuristicCheck returns the cheap local stand-ins for model-backed
// judgment. Each is a plain CheckFunc so a real model call slots in
// without engine changes.
func heuristicCheck(id string) CheckFunc {
	switch id {
	case "logical_consistency":
		return func(_ context.Context, out model.AgentOutput) (bool, error) {
			return len(out.Content) > defaultMinChars && out.Confidence > 50, nil
		}
	case "actionable_insights":
		return func(_ context.Context, out model.AgentOutput) (bool, error) {
			content := strings.ToLower(out.Content)
			return strings.Contains(content, "recommend") ||
				strings.Contains(content, "should") ||
				strings.Contains(content, "strategy"), nil
		}
	case "no_contradictions":
		// Placeholder until a model-backed judge exists.
		return passCheck
	}
	return passCheck
}

func confidencePresent(_ context.Context, out model.AgentOutput) (bool, error) {
	return out.Confidence > 0 && out.Confidence <= 100, nil
}

func passCheck(_ context.Context, _ model.AgentOutput) (bool, error) {
	return true, nil
}

// defaultRules is the built-in fallback installed when a ruleset cannot
// be loaded: minimum content length and confidence presence, both fatal.
func defaultRules() []Rule {
	return []Rule{
		{
			ID:          "min_length",
			Name:        "Minimum Content Length",
			Description: "Output must contain at least 100 characters",
			Type:        TypeProgrammatic,
			Severity:    model.SeverityError,
			Check: func(_ context.Context, out model.AgentOutput) (bool, error) {
				return len(out.Content) >= defaultMinChars, nil
			},
		},
		{
			ID:          "confidence_present",
			Name:        "Confidence Score Present",
			Description: "Output must include a confidence score",
			Type:        TypeProgrammatic,
			Severity:    model.SeverityError,
			Check:       confidencePresent,
		},
	}
}
