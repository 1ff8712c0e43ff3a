package monitoring

import "github.com/prometheus/client_golang/prometheus"

// Prometheus collectors for the wardrobe service, exposed on the metrics
// port via promhttp.
var (
	RemoteSyncAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garderobe_remote_sync_attempts_total",
			Help: "Remote wardrobe document operations attempted, by operation.",
		},
		[]string{"operation"},
	)

	RemoteSyncFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garderobe_remote_sync_failures_total",
			Help: "Remote wardrobe document operations that failed, by operation.",
		},
		[]string{"operation"},
	)

	PlansGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garderobe_plans_generated_total",
			Help: "Week plans generated, by mode (random or ai).",
		},
		[]string{"mode"},
	)

	ActiveStores = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "garderobe_active_stores",
			Help: "Number of per-user wardrobe stores currently loaded.",
		},
	)
)

func init() {
	prometheus.MustRegister(RemoteSyncAttempts, RemoteSyncFailures, PlansGenerated, ActiveStores)
}
