package sim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Process-level counters, exposed via /debug/metrics.
var (
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rescueroute_sim_ticks_total",
		Help: "Number of simulation ticks executed.",
	})
	missionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rescueroute_sim_missions_completed_total",
		Help: "Number of missions completed since process start.",
	})
	robotsDead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rescueroute_sim_robots_dead_total",
		Help: "Number of robots that ran out of battery.",
	})
	pathFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rescueroute_sim_path_failures_total",
		Help: "Number of A* searches that found no route.",
	})
)
