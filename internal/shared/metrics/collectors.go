package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Flows
const (
	FlowBet  = "bet"
	FlowLoto = "loto"
)

var (
	// Submissions conta tentativas de envio por fluxo e resultado
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "submissions_total",
		Help: "Form submissions by flow and outcome.",
	}, []string{"flow", "outcome"})

	// BackendRequestDuration mede as chamadas ao backend externo
	BackendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Latency of calls to the external backend API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "result"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ws_connections",
		Help: "Open WebSocket page connections.",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sessions_active",
		Help: "Page sessions currently held in memory.",
	})
)
