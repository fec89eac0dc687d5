package supervisor

import "github.com/prometheus/client_golang/prometheus"

var (
	spawnsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "llamactl",
			Subsystem: "supervisor",
			Name:      "spawns_total",
			Help:      "Total number of successfully spawned server processes",
		},
	)

	exitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "llamactl",
			Subsystem: "supervisor",
			Name:      "exits_total",
			Help:      "Total number of observed child exits",
		},
		[]string{"outcome"},
	)

	logEntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "llamactl",
			Subsystem: "supervisor",
			Name:      "log_entries_total",
			Help:      "Total number of captured log entries",
		},
		[]string{"kind"},
	)

	childRunning = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "llamactl",
			Subsystem: "supervisor",
			Name:      "child_running",
			Help:      "1 while a child process is tracked, 0 otherwise",
		},
	)
)

func init() {
	prometheus.MustRegister(spawnsTotal, exitsTotal, logEntriesTotal, childRunning)
}
