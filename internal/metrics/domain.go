package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Sessions started, by interview type",
	}, []string{"interview_type"})

	SessionsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_finished_total",
		Help:      "Sessions finished, by risk level",
	}, []string{"risk_level"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Sessions currently held in memory",
	})

	RoundsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rounds_completed_total",
		Help:      "Round completions, by round type",
	}, []string{"round_type"})

	RoundScores = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "round_final_score",
		Help:      "Final round scores after policy adjustment",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	}, []string{"round_type"})

	ProctoringAlerts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proctoring_alerts_total",
		Help:      "Proctoring alerts recorded, by severity",
	}, []string{"severity"})

	RejectedTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rejected_transitions_total",
		Help:      "Switch or complete calls refused by the round state machine",
	}, []string{"operation"})

	SessionsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_evicted_total",
		Help:      "Idle sessions evicted from memory",
	})
)
