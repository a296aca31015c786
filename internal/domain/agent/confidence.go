package agent

import (
	"regexp"
	"strconv"
)

// DefaultConfidence is assumed when no confidence phrase is found.
const DefaultConfidence = 75

// ConfidenceExtractor pulls a confidence percentage out of generated
// content. It is a pluggable strategy: a structured-output backend can
// substitute its own extractor without touching the agent.
type ConfidenceExtractor interface {
	// Extract returns the confidence in [0,100] and whether one was found.
	Extract(content string) (int, bool)
}

// confidencePattern matches "Confidence: 85%" or "Confidence Level: 85%".
var confidencePattern = regexp.MustCompile(`(?i)Confidence(?:\s+Level)?:\s*(\d+)%`)

// RegexExtractor is the default pattern-matching strategy. Admittedly
// brittle: it depends on the backend emitting a specific phrase.
type RegexExtractor struct{}

// NewRegexExtractor returns the default extractor.
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// Extract parses the first confidence phrase, clamped to [0,100].
func (e *RegexExtractor) Extract(content string) (int, bool) {
	m := confidencePattern.FindStringSubmatch(content)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return n, true
}
