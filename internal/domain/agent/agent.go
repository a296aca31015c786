// Package agent defines the directive-analysis agent and its roster.
//
// An agent is a named, role-bound unit that produces one AgentOutput per
// execution. Agents are stateless between invocations except for the
// lazily-loaded system prompt, which is cached for the agent's lifetime.
package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DubjamMusic/hustlecodex/internal/adapters/llm"
	"github.com/DubjamMusic/hustlecodex/internal/domain/model"
	"github.com/DubjamMusic/hustlecodex/pkg/logger"
	"github.com/DubjamMusic/hustlecodex/pkg/metrics"
)

// firstAnalysisMarker is emitted when an agent has no teammate context yet.
const firstAnalysisMarker = "This is the first analysis in the cycle."

// Context carries what an agent sees for one execution.
type Context struct {
	Directive       string
	PreviousOutputs []model.AgentOutput
	Iteration       int
	Meta            map[string]string
}

// Spec is one roster entry. Agents are constructed from this data table
// rather than one type per agent.
type Spec struct {
	Name string
	Team model.Team
	Role string
}

// Agent executes a directive against the text-generation backend.
type Agent struct {
	name string
	team model.Team
	role string

	completer llm.Completer
	prompts   llm.PromptSource
	extractor ConfidenceExtractor

	// System prompt is loaded once; a load failure caches the fallback.
	promptOnce   sync.Once
	systemPrompt string

	now func() time.Time
	log logger.Logger
}

// New constructs an agent from a roster spec.
func New(spec Spec, completer llm.Completer, prompts llm.PromptSource, opts ...Option) *Agent {
	a := &Agent{
		name:      spec.Name,
		team:      spec.Team,
		role:      spec.Role,
		completer: completer,
		prompts:   prompts,
		extractor: NewRegexExtractor(),
		now:       time.Now,
		log:       logger.Get().Named("agent"),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Name returns the agent's unique name within its team.
func (a *Agent) Name() string { return a.name }

// Team returns the agent's team affiliation.
func (a *Agent) Team() model.Team { return a.team }

// Role returns the agent's role description.
func (a *Agent) Role() string { return a.role }

// Execute runs one analysis pass. A backend failure is fatal for the
// caller's cycle; a prompt-load failure is recovered with a fallback.
func (a *Agent) Execute(ctx context.Context, directive string, ec Context) (model.AgentOutput, error) {
	start := a.now()

	a.promptOnce.Do(func() {
		prompt, err := a.prompts.LoadPrompt(ctx, a.team, strings.ToLower(a.name))
		if err != nil {
			a.log.Warn(ctx, "prompt load failed; using fallback",
				logger.String("agent", a.name),
				logger.String("team", string(a.team)),
				logger.Error(err),
			)
			prompt = llm.FallbackPrompt(a.name, a.team)
		}
		a.systemPrompt = prompt
	})

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: a.systemPrompt},
		{Role: llm.RoleUser, Content: buildContext(ec) + "\n\nDirective: " + directive},
	}

	resp, err := a.completer.GenerateCompletion(ctx, messages)
	if err != nil {
		metrics.RecordAgentError()
		return model.AgentOutput{}, fmt.Errorf("agent %s execution failed: %w", a.name, err)
	}

	elapsed := a.now().Sub(start)
	confidence, found := a.extractor.Extract(resp.Content)
	if !found {
		confidence = DefaultConfidence
	}

	metrics.RecordAgentExecution(string(a.team), a.name)
	metrics.RecordAgentLatency(float64(elapsed.Milliseconds()))

	return model.AgentOutput{
		AgentName:      a.name,
		Team:           a.team,
		Content:        resp.Content,
		Confidence:     confidence,
		ProcessingTime: elapsed,
		Meta: model.OutputMeta{
			Model:     resp.Model,
			Tokens:    resp.Usage.TotalTokens,
			Iteration: ec.Iteration,
		},
		CreatedAt: a.now(),
	}, nil
}

// buildContext summarizes teammate outputs produced earlier this cycle.
func buildContext(ec Context) string {
	if len(ec.PreviousOutputs) == 0 {
		return firstAnalysisMarker
	}

	var b strings.Builder
	b.WriteString("Previous team member analyses:")
	for _, out := range ec.PreviousOutputs {
		fmt.Fprintf(&b, "\n\n--- %s (%s) ---\n%s", out.AgentName, out.Team, out.Content)
	}
	return b.String()
}
