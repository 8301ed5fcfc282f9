package service

import "github.com/prometheus/client_golang/prometheus"

var (
	movesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_moves_total",
			Help: "Completed move requests by result",
		},
		[]string{"result"}, // applied, noop, duplicate
	)
	moveFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_move_failures_total",
			Help: "Failed move requests by reason",
		},
		[]string{"reason"}, // not_found, out_of_range, persistence
	)
	moveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "board_move_duration_seconds",
			Help:    "End-to-end latency of applied moves",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(movesTotal, moveFailures, moveDuration)
}
