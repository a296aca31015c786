// Package metrics provides Prometheus metrics for the orchestration engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Cycle metrics - one cycle is a full directive execution
	cyclesTotal     prometheus.Counter
	cycleDuration   prometheus.Histogram
	cycleErrors     prometheus.Counter
	judgmentsByTeam *prometheus.CounterVec

	// Agent metrics
	agentExecutions *prometheus.CounterVec
	agentLatency    prometheus.Histogram
	agentErrors     prometheus.Counter

	// Validation metrics
	validationRuns     prometheus.Counter
	validationFailures prometheus.Counter

	// State store metrics
	storeKeys prometheus.Gauge
	storeOps  *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error breakdowns
	errorsByComponent *prometheus.CounterVec

	// System metrics
	systemMemoryBytes prometheus.Gauge
	systemGoroutines  prometheus.Gauge
	systemGCPause     prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "hustlecodex",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      name,
			Help:      help,
		}
	}

	m.cyclesTotal = prometheus.NewCounter(factory("cycles_total", "Total number of orchestration cycles executed."))
	m.cycleErrors = prometheus.NewCounter(factory("cycle_errors_total", "Total number of orchestration cycles that failed."))
	m.cycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycle_duration_ms",
		Help:      "End-to-end cycle duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	})
	m.judgmentsByTeam = prometheus.NewCounterVec(factory("judgments_total", "Judgment outcomes by winning team (or tie)."), []string{"winner"})

	m.agentExecutions = prometheus.NewCounterVec(factory("agent_executions_total", "Agent executions by team and agent."), []string{"team", "agent"})
	m.agentLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "agent_latency_ms",
		Help:      "Agent execution latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})
	m.agentErrors = prometheus.NewCounter(factory("agent_errors_total", "Agent execution failures during scored runs."))

	m.validationRuns = prometheus.NewCounter(factory("validation_runs_total", "Validation reports produced."))
	m.validationFailures = prometheus.NewCounter(factory("validation_failures_total", "Validation reports with a failed error-severity rule."))

	m.storeKeys = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_keys",
		Help:      "Current number of live keys in the state store.",
	})
	m.storeOps = prometheus.NewCounterVec(factory("store_ops_total", "State store operations by kind."), []string{"op"})

	m.httpRequests = prometheus.NewCounterVec(factory("http_requests_total", "HTTP requests by endpoint, method and status."), []string{"endpoint", "method", "status"})
	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.errorsByComponent = prometheus.NewCounterVec(factory("errors_total", "Errors by component and kind."), []string{"component", "kind"})

	m.systemMemoryBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation in bytes.",
	})
	m.systemGoroutines = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines.",
	})
	m.systemGCPause = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_ms",
		Help:      "Average GC pause time in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.registry.MustRegister(
		m.cyclesTotal, m.cycleErrors, m.cycleDuration, m.judgmentsByTeam,
		m.agentExecutions, m.agentLatency, m.agentErrors,
		m.validationRuns, m.validationFailures,
		m.storeKeys, m.storeOps,
		m.httpRequests, m.httpRequestDuration,
		m.errorsByComponent,
		m.systemMemoryBytes, m.systemGoroutines, m.systemGCPause,
	)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers operating on the global manager.

func RecordCycle()                  { globalManager.cyclesTotal.Inc() }
func RecordCycleError()             { globalManager.cycleErrors.Inc() }
func RecordCycleDuration(ms float64) { globalManager.cycleDuration.Observe(ms) }
func RecordJudgment(winner string)  { globalManager.judgmentsByTeam.WithLabelValues(winner).Inc() }

func RecordAgentExecution(team, agent string) {
	globalManager.agentExecutions.WithLabelValues(team, agent).Inc()
}
func RecordAgentLatency(ms float64) { globalManager.agentLatency.Observe(ms) }
func RecordAgentError()             { globalManager.agentErrors.Inc() }

func RecordValidationRun()     { globalManager.validationRuns.Inc() }
func RecordValidationFailure() { globalManager.validationFailures.Inc() }

func UpdateStoreKeys(n int)    { globalManager.storeKeys.Set(float64(n)) }
func RecordStoreOp(op string)  { globalManager.storeOps.WithLabelValues(op).Inc() }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

func RecordErrorByComponent(component, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}

func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryBytes.Set(float64(bytes)) }
func UpdateSystemGoroutineCount(n int)     { globalManager.systemGoroutines.Set(float64(n)) }
func RecordSystemGCPauseTime(ms float64)   { globalManager.systemGCPause.Observe(ms) }
