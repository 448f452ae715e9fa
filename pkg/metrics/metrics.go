package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	subsystem = "borelog_registry"

	reportsParsedTotal         = "reports_parsed_total"
	uploadDecisionsTotal       = "upload_decisions_total"
	recordVersionsCreatedTotal = "record_versions_created_total"

	parseStatusLabel = "status"
	decisionLabel    = "decision"
)

var reportsParsedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      reportsParsedTotal,
		Help:      "number of borehole report parse attempts by outcome",
	},
	[]string{parseStatusLabel},
)

var uploadDecisionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      uploadDecisionsTotal,
		Help:      "number of pending upload decisions by decision kind",
	},
	[]string{decisionLabel},
)

var recordVersionsCreatedTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      recordVersionsCreatedTotal,
		Help:      "number of borelog record versions written to the document store",
	},
)

func IncreaseReportsParsedMetric(status string) {
	reportsParsedTotalMetric.With(prometheus.Labels{parseStatusLabel: status}).Inc()
}

func IncreaseUploadDecisionsMetric(decision string) {
	uploadDecisionsTotalMetric.With(prometheus.Labels{decisionLabel: decision}).Inc()
}

func IncreaseRecordVersionsCreatedMetric() {
	recordVersionsCreatedTotalMetric.Inc()
}

func init() {
	prometheus.MustRegister(reportsParsedTotalMetric)
	prometheus.MustRegister(uploadDecisionsTotalMetric)
	prometheus.MustRegister(recordVersionsCreatedTotalMetric)
}
