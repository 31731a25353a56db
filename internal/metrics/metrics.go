// Package metrics exposes Prometheus counters for the collection and
// analytics pipeline. Served by the HTTP facade at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CollectorRuns counts collection runs, by outcome ("ok"/"error").
	CollectorRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polymarket_collector_runs_total",
		Help: "Collection runs, labeled by outcome.",
	}, []string{"outcome"})

	// EventsCollected counts events upserted by collection runs.
	EventsCollected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_events_collected_total",
		Help: "Events normalized and upserted into the event store.",
	})

	// RecordsRejected counts raw records dropped during normalization.
	RecordsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_records_rejected_total",
		Help: "Raw provider records rejected by normalization.",
	})

	// PricePointsSampled counts stored price observations.
	PricePointsSampled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_price_points_sampled_total",
		Help: "Price points appended to the price store.",
	})

	// AggregationsComputed counts analytics recomputations.
	AggregationsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_aggregations_computed_total",
		Help: "Full analytics recomputations persisted.",
	})

	// TagFallbacks counts collection runs that fell back from the
	// tag-indexed fetch to the category fetch, by reason
	// ("unresolved"/"empty").
	TagFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polymarket_tag_fallbacks_total",
		Help: "Falls back from tag-based to category-based fetch, by reason.",
	}, []string{"reason"})
)
