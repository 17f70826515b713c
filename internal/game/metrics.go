package game

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crypto_trivia_sessions_started_total",
		Help: "Sessions that reached the playing state.",
	}, []string{"mode"})

	sessionsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crypto_trivia_sessions_completed_total",
		Help: "Sessions that reached the summary state.",
	}, []string{"mode"})

	sessionsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crypto_trivia_sessions_failed_total",
		Help: "Sessions whose question acquisition failed.",
	}, []string{"mode"})
)
