package llm

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Default mock backend configuration constants.
const (
	defaultMockModel  = "mock-model"
	defaultRandomSeed = 42
	charsPerToken     = 4
)

// MockCompleter implements Completer with role-keyed canned analyses.
// It optionally simulates backend latency, honoring ctx the same way a
// hosted model client would.
type MockCompleter struct {
	model      string
	minLatency time.Duration
	maxLatency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockCompleter creates a mock backend with configuration options.
func NewMockCompleter(opts ...MockOption) *MockCompleter {
	c := &MockCompleter{
		model: defaultMockModel,
		rng:   rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic seed for reproducible testing
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// MockOption applies a configuration option to the MockCompleter.
type MockOption func(*MockCompleter)

// WithModel sets the model id stamped on responses.
func WithModel(model string) MockOption {
	return func(c *MockCompleter) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLatencyRange enables simulated backend latency.
func WithLatencyRange(minLatency, maxLatency time.Duration) MockOption {
	return func(c *MockCompleter) {
		if minLatency > 0 && maxLatency > minLatency {
			c.minLatency = minLatency
			c.maxLatency = maxLatency
		}
	}
}

// GenerateCompletion produces a canned analysis keyed off the agent name
// mentioned in the system message.
func (c *MockCompleter) GenerateCompletion(ctx context.Context, messages []Message) (Response, error) {
	if c.maxLatency > 0 {
		c.mu.Lock()
		latency := c.minLatency + time.Duration(c.rng.Int63n(int64(c.maxLatency-c.minLatency)))
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return Response{}, fmt.Errorf("completion cancelled: %w", ctx.Err())
		case <-time.After(latency):
		}
	}

	var system, user string
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = m.Content
		case RoleUser:
			user = m.Content
		case RoleAssistant:
			// Prior assistant turns do not steer the canned generators.
		}
	}

	content := generate(system, user)

	promptChars := 0
	for _, m := range messages {
		promptChars += len(m.Content)
	}
	completionTokens := len(content) / charsPerToken

	return Response{
		Content: content,
		Usage: Usage{
			PromptTokens:     promptChars / charsPerToken,
			CompletionTokens: completionTokens,
			TotalTokens:      promptChars/charsPerToken + completionTokens,
		},
		Model:        c.model,
		FinishReason: "stop",
	}, nil
}

// generate picks the canned generator whose agent name appears in the
// system prompt. Unknown agents get a generic analysis.
func generate(system, user string) string {
	lower := strings.ToLower(system)
	for name, gen := range generators {
		if strings.Contains(lower, name) {
			return gen(user)
		}
	}
	return fmt.Sprintf("**Analysis**\n\nAnalysis of: %s\n\nThis is a generic strategic assessment produced for demonstration purposes. The directive was reviewed and no specialist perspective applied.\n\nConfidence: 70%%", user)
}

var generators = map[string]func(string) string{
	"cipher":   cipherResponse,
	"specter":  specterResponse,
	"nexus":    nexusResponse,
	"quantum":  quantumResponse,
	"shadow":   shadowResponse,
	"apex":     apexResponse,
	"synergy":  synergyResponse,
	"sentinel": sentinelResponse,
	"catalyst": catalystResponse,
}

func firstWords(directive string, n int) string {
	words := strings.Fields(directive)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, ", ")
}

func cipherResponse(directive string) string {
	return fmt.Sprintf(`**Key Patterns Identified:**
1. Primary trend: strategic analysis requirement detected
2. Data points suggest need for comprehensive evaluation
3. Pattern correlation indicates multiple stakeholder considerations

**Data Insights:**
- Directive complexity level: medium-high
- Key variables identified: %s
- Emerging patterns suggest a systematic approach is needed

**Recommendations:**
- Specter should evaluate risk factors around timeline and resource constraints
- Nexus should consider long-term strategic implications

Confidence Level: 82%%

Team Alpha's methodical pattern recognition provides a foundation Team Omega's rapid approach might overlook.`, firstWords(directive, 5))
}

func specterResponse(directive string) string {
	return `**Risk Identification:**
1. Assumption risk: the directive may carry implicit assumptions requiring validation
2. Resource risk: implementation complexity could exceed available resources
3. Timeline risk: aggressive timelines may compromise quality

**Vulnerability Analysis:**
Based on Cipher's analysis, stable conditions are assumed; market volatility is not fully addressed.

**Mitigation Strategies:**
1. Implement a phased approach with validation gates
2. Build in a resource contingency of 20-30%
3. Establish early warning indicators for assumption failures

We should recommend continuous monitoring; some unknowns remain.

Confidence: 78%`
}

func nexusResponse(directive string) string {
	return `**Executive Summary:**
Team Alpha recommends a balanced, phased strategy that leverages our analytical insights while carefully managing identified risks.

**Strategic Synthesis:**
Integrating Cipher's pattern analysis with Specter's risk framework yields a clear path forward:
- Leverage identified patterns for strategic positioning
- Implement robust risk mitigation at each phase
- Maintain flexibility for adaptive response

**Recommendations:**
1. Initiate phase one with core capabilities and proven approaches
2. Establish measurement frameworks before scaling
3. Build risk buffers into timeline and resource planning

**Success Metrics:**
- Quality score target: 85+
- Risk mitigation effectiveness: 90%+ of identified risks managed

Confidence: 85%

Team Alpha's integrated strategy delivers more reliable outcomes than aggressive optimization alone.`
}

func quantumResponse(directive string) string {
	return fmt.Sprintf(`**Predictive Insights:**
- 78%% likelihood of successful implementation with an aggressive timeline
- Predictive modeling shows the optimal execution window in the next 4-6 weeks
- Advanced correlation: %s = high-value target

**Opportunity Identification:**
1. First-mover advantage window: 45-day optimal period
2. Competitive gap exploitation: three key areas identified
3. Novel market inefficiency capture with breakthrough potential

**Strategic Advantages:**
A data-driven decision framework is superior to intuition-based analysis; this unprecedented predictive capability enables proactive positioning.

Confidence: 86%%

Team Omega's cutting-edge analytics uncover opportunities a cautious methodology would never identify.`, firstWords(directive, 3))
}

func shadowResponse(directive string) string {
	return `**Catastrophic Risks:**
1. CRITICAL: Quantum's timeline assumptions could fail under stress
2. HIGH: market timing predictions assume stable conditions; black swan events are not modeled
3. MEDIUM: resource availability assumptions may be optimistic

**Assumption Challenges:**
Based on the prior analysis, a 78% success probability still leaves a 22% failure probability. Are we prepared for that?

**Defense Strategies:**
1. Demand model validation with out-of-sample testing
2. Require a 50% resource buffer for worst-case scenarios
3. Establish kill criteria and exit strategies upfront
4. War-game competitive responses before committing

We recommend treating every prediction as revolutionary only after it survives stress-testing.

Confidence: 83%`
}

func apexResponse(directive string) string {
	return `**Executive Synthesis:**
Team Omega's strategy: aggressive excellence. We capitalize on Quantum's predictive advantages while Shadow's paranoia hardens the approach against failure.

**Optimized Strategy:**
- Execute within a 30-day window; faster is better
- Deploy 70% of resources to the high-probability opportunities Quantum identified
- Reserve 30% for Shadow's contingencies; an optimal risk/reward balance
- Run parallel execution streams for unconventional speed

**Success Metrics:**
- ROI target: 2.5x minimum
- Time-to-value: under 30 days
- Quality score: 90+

Based on this analysis, Team Omega should dominate through groundbreaking optimization and ruthless efficiency.

Confidence: 91%`
}

func synergyResponse(directive string) string {
	return fmt.Sprintf(`**Ecosystem Context:**
A multi-stakeholder landscape with diverse perspectives: %s

**Data Insights:**
Cross-functional analysis indicates 2.3x efficiency gains through collaborative approaches, with the optimal balance at 60%% methodical analysis and 40%% innovative execution.

**Collaborative Opportunities:**
- Combine pattern recognition with predictive modeling
- Integrate cautious and paranoid risk frameworks into one robust strategy

We recommend a novel, integrated analysis based on both competing approaches.

Confidence: 88%%`, firstWords(directive, 5))
}

func sentinelResponse(directive string) string {
	return `**Ecosystem Vulnerabilities:**
- Systemic risk: over-reliance on a single team methodology creates blind spots
- Coordination risk: poor cross-functional communication leads to strategy failures
- Adaptation risk: rigid approaches fail when conditions shift rapidly

**Resilience Opportunities:**
1. Diversity advantage: multiple analytical approaches create robust decision-making
2. Collaborative defense: cross-team validation catches errors before they cascade

**Mitigation Framework:**
Based on the ecosystem analysis, we recommend shared risk dashboards, joint response protocols, and continuous learning loops.

Confidence: 84%`
}

func catalystResponse(directive string) string {
	return fmt.Sprintf(`**Ecosystem Vision:**
Cross-functional orchestration for: %s

Rather than choosing between balance and aggression, we orchestrate both through collaborative intelligence. The transformation: competition to collaboration to exponential value.

**Orchestration Framework:**
- Governance: rotating leadership so every perspective influences decisions
- Execution: parallel workstreams with defined integration points
- Learning: post-execution reviews capturing cross-functional insights

**Success Metrics:**
- Collaborative efficiency: 2.5x baseline
- Innovation rate: 3x improvement through unique perspective synthesis

We recommend this strategy as the groundbreaking path to sustainable advantage.

Confidence: 91%%`, firstWords(directive, 5))
}
