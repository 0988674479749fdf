package agg

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Process-level counters, exposed via /debug/metrics.
var (
	pollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rescueroute_agg_polls_total",
		Help: "Number of engine poll attempts.",
	})
	pollErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rescueroute_agg_poll_errors_total",
		Help: "Number of failed engine polls.",
	})
	streamClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rescueroute_agg_stream_clients",
		Help: "Currently connected SSE and WebSocket clients.",
	})
)
