package controllers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	assignmentOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "organigramma_assignment_operations_total",
		Help: "Assignment lifecycle operations by outcome.",
	}, []string{"operation", "outcome"})

	workloadReportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "organigramma_workload_report_duration_seconds",
		Help:    "Time spent building the workload report.",
		Buckets: prometheus.DefBuckets,
	})
)

func observeOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	assignmentOperationsTotal.WithLabelValues(operation, outcome).Inc()
}
