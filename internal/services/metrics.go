package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signalResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forkcast_signal_results_total",
		Help: "Signal provider call outcomes by signal and result.",
	}, []string{"signal", "result"})

	aggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "forkcast_aggregation_duration_seconds",
		Help:    "End-to-end latency of intelligence aggregation runs.",
		Buckets: prometheus.DefBuckets,
	})

	summaryCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forkcast_summary_cache_total",
		Help: "Intelligence summary cache lookups by result.",
	}, []string{"result"})

	activeWeightVersion = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "forkcast_algorithm_weight_version",
		Help: "Version number of the active algorithm weight snapshot.",
	})
)
