// Package analytics derives per-event price summaries from the stored
// price series.
package analytics

import (
	"log/slog"
	"time"

	"github.com/rickgao/polymarket-data/internal/metrics"
	"github.com/rickgao/polymarket-data/internal/model"
	"github.com/rickgao/polymarket-data/internal/store"
)

// Aggregator recomputes EventAnalytics records. Every update is a full
// recomputation over the event's window; there is no incremental merge,
// so repeated updates over a fixed price set are idempotent.
type Aggregator struct {
	store  *store.Store
	logger *slog.Logger
}

// New creates an Aggregator over the given store bundle.
func New(st *store.Store, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		store:  st,
		logger: logger,
	}
}

// Update recomputes and persists the analytics for one event.
// Returns ok=false when no such event exists; callers must treat that
// as "no such event", not "no analytics yet". An event with an empty
// price window gets (and caches) an all-unset record, which is a valid
// result distinct from absence.
func (a *Aggregator) Update(eventID string) (model.EventAnalytics, bool) {
	event, ok := a.store.Events.Get(eventID)
	if !ok {
		return model.EventAnalytics{}, false
	}

	// A live market is still moving: compute up to now, not up to a
	// stale end time. Only a resolved event is pinned to its end.
	end := event.EndTime
	if event.Status != model.StatusResolved {
		now := time.Now().UTC()
		end = &now
	}

	result := model.EventAnalytics{EventID: event.EventID}

	var minPt, maxPt, lastPt *model.PricePoint
	for p := range a.store.Prices.InWindow(event.MarketID, event.StartTime, end) {
		// Ties keep the first point in iteration order.
		if minPt == nil || p.Price < minPt.Price {
			minPt = &p
		}
		if maxPt == nil || p.Price > maxPt.Price {
			maxPt = &p
		}
		if lastPt == nil || p.Timestamp.After(lastPt.Timestamp) {
			lastPt = &p
		}
	}

	if lastPt != nil {
		result.MinPrice, result.MinPriceTime = &minPt.Price, &minPt.Timestamp
		result.MaxPrice, result.MaxPriceTime = &maxPt.Price, &maxPt.Timestamp
		result.LastPrice, result.LastPriceTime = &lastPt.Price, &lastPt.Timestamp
	}

	a.store.Analytics.Upsert(result)
	metrics.AggregationsComputed.Inc()

	return result, true
}

// Get returns the cached analytics for an event, computing them on
// first access. ok=false means the event itself does not exist.
func (a *Aggregator) Get(eventID string) (model.EventAnalytics, bool) {
	if cached, ok := a.store.Analytics.Get(eventID); ok {
		return cached, true
	}
	return a.Update(eventID)
}
