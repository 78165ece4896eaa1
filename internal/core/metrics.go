package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docker_hosts_sync_runs_total",
		Help: "The total number of reconciliation runs started",
	})
	syncFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docker_hosts_sync_failures_total",
		Help: "The total number of reconciliation runs that failed",
	})
	coalescedWakesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docker_hosts_sync_coalesced_wakes_total",
		Help: "The total number of wake-ups collapsed into an already pending run",
	})
	managedEntriesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "docker_hosts_sync_managed_entries",
		Help: "The number of host entries in the managed section",
	})
)
