package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "daily_stats_runs_total",
		Help: "Number of daily stats aggregation runs started.",
	})
	agentsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "daily_stats_agents_processed_total",
		Help: "Number of (agent, date) summaries written.",
	})
	agentFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "daily_stats_agent_failures_total",
		Help: "Number of (agent, date) units that failed.",
	})
	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "daily_stats_run_duration_seconds",
		Help:    "Wall time of one aggregation run.",
		Buckets: prometheus.DefBuckets,
	})
)
