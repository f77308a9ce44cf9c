package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	FeedFetches        *prometheus.CounterVec
	AvailabilityCalls  prometheus.Counter
	ReconcileTime      prometheus.Histogram
	DynamicShips       prometheus.Counter
	ItineraryMutations *prometheus.CounterVec
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		FeedFetches: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_fetches_total",
			Help:      "The total number of upstream feed fetches",
		}, []string{"feed"}),
		AvailabilityCalls: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_calls_total",
			Help:      "The total number of availability sub-requests issued",
		}),
		ReconcileTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reconcile_time_seconds",
			Help:      "Time taken to reconcile catalog and availability feeds",
			Buckets:   prometheus.DefBuckets,
		}),
		DynamicShips: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dynamic_ships_total",
			Help:      "The total number of ships synthesized from operator data alone",
		}),
		ItineraryMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "itinerary_mutations_total",
			Help:      "The total number of itinerary mutations",
		}, []string{"op"}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
