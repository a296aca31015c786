package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOptions(t *testing.T) {
	Convey("Given metric manager options", t, func() {
		Convey("When creating option functions", func() {
			Convey("Then they should all be non-nil", func() {
				So(WithNamespace("test"), ShouldNotBeNil)
				So(WithSubsystem("sub"), ShouldNotBeNil)
				So(WithHistogramBuckets([]float64{1, 5, 10}), ShouldNotBeNil)
				So(WithRegistry(prometheus.NewRegistry()), ShouldNotBeNil)
			})
		})

		Convey("When empty values are supplied", func() {
			m := &Manager{namespace: "keep", subsystem: "keep"}
			WithNamespace("")(m)
			WithSubsystem("")(m)
			WithHistogramBuckets(nil)(m)
			WithRegistry(nil)(m)

			Convey("Then existing settings should be kept", func() {
				So(m.namespace, ShouldEqual, "keep")
				So(m.subsystem, ShouldEqual, "keep")
				So(m.histogramBuckets, ShouldBeNil)
				So(m.registry, ShouldBeNil)
			})
		})
	})
}

func TestNewManager(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with options", func() {
			m := NewManager(
				WithRegistry(registry),
				WithNamespace("testns"),
				WithSubsystem("testsub"),
				WithHistogramBuckets([]float64{10, 100, 1000}),
			)

			Convey("Then the manager should be fully initialized", func() {
				So(m, ShouldNotBeNil)
				So(m.namespace, ShouldEqual, "testns")
				So(m.subsystem, ShouldEqual, "testsub")
				So(m.cyclesTotal, ShouldNotBeNil)
				So(m.cycleDuration, ShouldNotBeNil)
				So(m.judgmentsByTeam, ShouldNotBeNil)
				So(m.agentLatency, ShouldNotBeNil)
				So(m.httpRequests, ShouldNotBeNil)
				So(m.systemMemoryBytes, ShouldNotBeNil)
			})

			Convey("Then its collectors should be gatherable", func() {
				m.cyclesTotal.Inc()
				m.judgmentsByTeam.WithLabelValues("alpha").Inc()
				m.cycleDuration.Observe(250)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the package-level manager", t, func() {
		Convey("When recording through the helper functions", func() {
			Convey("Then no call should panic", func() {
				So(func() {
					RecordCycle()
					RecordCycleError()
					RecordCycleDuration(1200)
					RecordJudgment("alpha")
					RecordAgentExecution("alpha", "cipher")
					RecordAgentLatency(340)
					RecordAgentError()
					RecordValidationRun()
					RecordValidationFailure()
					UpdateStoreKeys(7)
					RecordStoreOp("set")
					RecordHTTPRequest("/directives", "POST", "200")
					RecordHTTPRequestDuration("/directives", "POST", "200", 42)
					RecordErrorByComponent("http", "client")
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.5)
				}, ShouldNotPanic)
			})
		})

		Convey("When asking for the registry", func() {
			Convey("Then it should be the global one", func() {
				So(GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}
