package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a private registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("chart"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it registers its collectors on that registry", func() {
				So(m, ShouldNotBeNil)
				m.fetchTotal.WithLabelValues(OutcomeSuccess).Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)

				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_chart_fetch_total"], ShouldBeTrue)
				So(names["test_chart_records_loaded"], ShouldBeTrue)
			})
		})
	})
}

func TestGlobalRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording a fetch", func() {
			before := testutil.ToFloat64(globalManager.fetchTotal.WithLabelValues(OutcomeFailure))
			RecordFetch(OutcomeFailure, 12)
			So(testutil.ToFloat64(globalManager.fetchTotal.WithLabelValues(OutcomeFailure)), ShouldEqual, before+1)
		})

		Convey("When publishing the dataset split", func() {
			UpdateDataset(35, 20, 15)
			So(testutil.ToFloat64(globalManager.recordsLoaded), ShouldEqual, 35)
			So(testutil.ToFloat64(globalManager.recordsDoped), ShouldEqual, 20)
			So(testutil.ToFloat64(globalManager.recordsClean), ShouldEqual, 15)
		})

		Convey("When counting malformed records", func() {
			before := testutil.ToFloat64(globalManager.recordsMalformed)
			RecordMalformed(0)
			RecordMalformed(2)
			So(testutil.ToFloat64(globalManager.recordsMalformed), ShouldEqual, before+2)
		})

		Convey("When recording renders and errors", func() {
			before := testutil.ToFloat64(globalManager.rendersTotal.WithLabelValues("svg"))
			RecordRender("svg", 3)
			RecordRenderError("png")
			So(testutil.ToFloat64(globalManager.rendersTotal.WithLabelValues("svg")), ShouldEqual, before+1)
			So(testutil.ToFloat64(globalManager.renderErrors.WithLabelValues("png")), ShouldBeGreaterThanOrEqualTo, 1)
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				RecordHTTPRequest("page", "GET", "200")
				RecordHTTPRequestDuration("page", "GET", "200", 1.5)
				RecordErrorByEndpoint("chart_svg", "GET", "not_found")
				RecordErrorByType("not_found", "medium")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.2)
			}, ShouldNotPanic)
		})

		Convey("Then the global registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)
		})
	})
}
