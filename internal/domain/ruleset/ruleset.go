// Package ruleset validates agent outputs against named rule lists.
package ruleset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DubjamMusic/hustlecodex/internal/domain/model"
	"github.com/DubjamMusic/hustlecodex/pkg/logger"
	"github.com/DubjamMusic/hustlecodex/pkg/metrics"
)

// Default ruleset configuration constants.
const (
	defaultMinChars = 100
)

// RuleType distinguishes deterministic checks from heuristic ones.
type RuleType string

const (
	// TypeProgrammatic rules are pure predicates over the output.
	TypeProgrammatic RuleType = "programmatic"
	// TypeHeuristic rules stand in for a model-backed judge. The CheckFunc
	// contract is kept async-shaped so a real model call can be swapped in
	// without touching the engine.
	TypeHeuristic RuleType = "llm"
)

// CheckFunc evaluates one rule against one output.
type CheckFunc func(ctx context.Context, out model.AgentOutput) (bool, error)

// Rule is one executable validation rule.
type Rule struct {
	ID          string
	Name        string
	Description string
	Type        RuleType
	Severity    model.Severity
	Check       CheckFunc
}

// ruleConfig mirrors one rule entry in a ruleset YAML file.
type ruleConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Severity    string `yaml:"severity"`
	MinChars    int    `yaml:"min_chars"`
}

// rulesetConfig mirrors a ruleset YAML file.
type rulesetConfig struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Rules       []ruleConfig `yaml:"rules"`
}

// Engine loads named rulesets and validates outputs against them.
type Engine struct {
	dir string
	now func() time.Time
	log logger.Logger

	mu       sync.Mutex
	rulesets map[string][]Rule
}

// NewEngine creates a ruleset engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		dir:      "config",
		now:      time.Now,
		log:      logger.Get().Named("ruleset"),
		rulesets: make(map[string][]Rule),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithConfigDir sets the directory holding rulesets/<name>.yaml files.
func WithConfigDir(dir string) Option {
	return func(e *Engine) {
		if dir != "" {
			e.dir = dir
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// LoadRuleset loads the named rule list from configuration. A load
// failure installs the built-in default rules under that name instead
// of failing.
func (e *Engine) LoadRuleset(ctx context.Context, name string) {
	rules, err := e.readRuleset(name)
	if err != nil {
		e.log.Warn(ctx, "ruleset load failed; installing defaults",
			logger.String("ruleset", name),
			logger.Error(err),
		)
		metrics.RecordErrorByComponent("ruleset", "load_failed")
		rules = defaultRules()
	}

	e.mu.Lock()
	e.rulesets[name] = rules
	e.mu.Unlock()
}

// Install registers a rule list under name, bypassing configuration.
// Later Validate calls for name use these rules as-is.
func (e *Engine) Install(name string, rules []Rule) {
	e.mu.Lock()
	e.rulesets[name] = rules
	e.mu.Unlock()
}

func (e *Engine) readRuleset(name string) ([]Rule, error) {
	path := filepath.Join(e.dir, "rulesets", name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset: %w", err)
	}

	var cfg rulesetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse ruleset: %w", err)
	}

	rules := make([]Rule, 0, len(cfg.Rules))
	for _, rc := range cfg.Rules {
		rules = append(rules, Rule{
			ID:          rc.ID,
			Name:        rc.Name,
			Description: rc.Description,
			Type:        RuleType(rc.Type),
			Severity:    model.Severity(rc.Severity),
			Check:       buildCheck(rc),
		})
	}
	return rules, nil
}

// Validate runs every rule of the named ruleset against the output.
// One rule's failure (error or panic) never aborts the others.
func (e *Engine) Validate(ctx context.Context, out model.AgentOutput, rulesetName string) model.ValidationReport {
	e.mu.Lock()
	rules, ok := e.rulesets[rulesetName]
	e.mu.Unlock()
	if !ok {
		e.LoadRuleset(ctx, rulesetName)
		e.mu.Lock()
		rules = e.rulesets[rulesetName]
		e.mu.Unlock()
	}

	results := make([]model.RuleResult, 0, len(rules))
	passedCount := 0

	for _, rule := range rules {
		passed, err := runCheck(ctx, rule, out)

		res := model.RuleResult{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Severity: rule.Severity,
			Passed:   passed,
		}
		switch {
		case err != nil:
			res.Message = fmt.Sprintf("✗ %s: check failed with error", rule.Name)
			res.Suggestion = "Unable to validate - check failed"
		case passed:
			res.Message = "✓ " + rule.Name
			passedCount++
		default:
			res.Message = fmt.Sprintf("✗ %s: %s", rule.Name, rule.Description)
			res.Suggestion = suggestionFor(rule.ID)
		}
		results = append(results, res)
	}

	overall := 100.0
	if len(rules) > 0 {
		overall = 100 * float64(passedCount) / float64(len(rules))
	}

	passed := true
	for _, r := range results {
		if r.Severity == model.SeverityError && !r.Passed {
			passed = false
			break
		}
	}

	metrics.RecordValidationRun()
	if !passed {
		metrics.RecordValidationFailure()
	}

	return model.ValidationReport{
		Team:         out.Team,
		AgentName:    out.AgentName,
		Passed:       passed,
		Results:      results,
		OverallScore: overall,
		CreatedAt:    e.now(),
	}
}

// runCheck isolates one rule evaluation, converting panics to errors.
func runCheck(ctx context.Context, rule Rule, out model.AgentOutput) (passed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			passed = false
			err = fmt.Errorf("rule %s panicked: %v", rule.ID, r)
		}
	}()
	if rule.Check == nil {
		return true, nil
	}
	return rule.Check(ctx, out)
}

func suggestionFor(ruleID string) string {
	suggestions := map[string]string{
		"min_length":          "Provide more detailed analysis with supporting evidence",
		"confidence_present":  "Include a confidence score (0-100%) in your output",
		"structured_format":   "Use markdown formatting with headers and bullet points",
		"logical_consistency": "Ensure all statements logically support each other",
		"actionable_insights": "Include specific, actionable recommendations",
		"no_contradictions":   "Review output to eliminate contradictory statements",
	}
	if s, ok := suggestions[ruleID]; ok {
		return s
	}
	return "Review and improve this aspect of your output"
}
