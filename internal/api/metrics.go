package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	diagnosesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fuzzdx_diagnoses_total",
		Help: "Completed diagnoses by defuzzification method and resulting level.",
	}, []string{"method", "level"})

	diagnoseErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fuzzdx_diagnose_errors_total",
		Help: "Rejected diagnose requests by reason.",
	}, []string{"reason"})

	diagnoseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fuzzdx_diagnose_duration_seconds",
		Help:    "End-to-end diagnose request duration.",
		Buckets: prometheus.DefBuckets,
	})
)
