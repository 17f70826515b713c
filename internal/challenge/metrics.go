package challenge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	challengesEncoded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crypto_trivia_challenges_encoded_total",
		Help: "Challenge tokens issued.",
	}, []string{"kind"})

	challengesDecoded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crypto_trivia_challenges_decoded_total",
		Help: "Challenge tokens decoded successfully.",
	}, []string{"kind"})

	decodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crypto_trivia_challenge_decode_failures_total",
		Help: "Challenge tokens rejected as malformed or unresolvable.",
	})
)
