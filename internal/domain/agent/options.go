package agent

import (
	"time"

	"github.com/DubjamMusic/hustlecodex/pkg/logger"
)

// Option applies a configuration option to the Agent.
type Option func(*Agent)

// WithConfidenceExtractor swaps the confidence-extraction strategy.
func WithConfidenceExtractor(e ConfidenceExtractor) Option {
	return func(a *Agent) {
		if e != nil {
			a.extractor = e
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger sets a custom logger for the agent.
func WithLogger(log logger.Logger) Option {
	return func(a *Agent) {
		if log != nil {
			a.log = log
		}
	}
}
