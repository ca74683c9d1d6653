package viewstate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики координатора загрузок. Регистрируются в дефолтном реестре;
// экспозиция (/metrics) — забота встраивающего приложения.
var (
	metricFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reader_client",
		Subsystem: "viewstate",
		Name:      "fetches_total",
		Help:      "Page fetches by outcome (ok|error|stale).",
	}, []string{"result"})

	metricDedupSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "reader_client",
		Subsystem: "viewstate",
		Name:      "fetch_dedup_suppressed_total",
		Help:      "Fetch requests suppressed by the last-dispatched-scope check.",
	})

	metricLoadMoreDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "reader_client",
		Subsystem: "viewstate",
		Name:      "load_more_dropped_total",
		Help:      "Load-more calls dropped by the in-flight guard.",
	})

	metricStaleMutations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "reader_client",
		Subsystem: "viewstate",
		Name:      "stale_mutations_dropped_total",
		Help:      "Mutation confirmations discarded because the scope changed mid-flight.",
	})
)
