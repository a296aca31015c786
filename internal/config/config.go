// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ConfigDir is the root of the external configuration tree
	// (rulesets, scoring weights, praise templates, agent prompts).
	ConfigDir string `koanf:"config_dir"`

	// AdminCode gates the reset endpoint. Empty disables resets.
	AdminCode string `koanf:"admin_code"`

	// RetentionHours bounds how long execution records stay readable.
	RetentionHours int `koanf:"retention_hours"`

	// DefaultRuleset is validated against when a request names none.
	DefaultRuleset string `koanf:"default_ruleset"`

	// MockLatencyMinMS and MockLatencyMaxMS bound the simulated
	// generation latency of the mock backend.
	MockLatencyMinMS int `koanf:"mock_latency_min_ms"`
	MockLatencyMaxMS int `koanf:"mock_latency_max_ms"`

	// MaxDirectiveChars truncates oversized directives at the API
	// boundary.
	MaxDirectiveChars int `koanf:"max_directive_chars"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		ConfigDir:         "config",
		AdminCode:         "",
		RetentionHours:    24,
		DefaultRuleset:    "default-rules",
		MockLatencyMinMS:  500,
		MockLatencyMaxMS:  2000,
		MaxDirectiveChars: 5000,
	}
}
